package commands

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/modcache/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("modcache %s (commit %s, built %s)\n", build.Version, build.Commit, build.Date)
		},
	}
}
