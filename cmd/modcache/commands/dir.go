package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

func (c *CLI) newDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Print the resolved cache root directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := c.openCache(cmd)
			if err != nil {
				return err
			}
			if !cache.Enabled() {
				return errors.New("cache is disabled")
			}
			cmd.Println(cache.Directory())
			return nil
		},
	}
}
