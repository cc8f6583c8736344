// Package commands implements the CLI commands for inspecting and
// maintaining a module compilation cache directory.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/modcache"
	"github.com/hupe1980/modcache/conf"
)

// CLI represents the command line interface for modcache.
type CLI struct {
	rootCmd *cobra.Command
}

// New creates a new CLI instance.
func New() *CLI {
	rootCmd := &cobra.Command{
		Use:           "modcache",
		Short:         "Inspect and maintain a module compilation cache",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to cache settings file (YAML)")
	rootCmd.PersistentFlags().String("cache-dir", "", "Cache root directory (overrides settings file)")

	c := &CLI{
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newDirCmd())
	rootCmd.AddCommand(c.newStatsCmd())
	rootCmd.AddCommand(c.newPurgeCmd())
	rootCmd.AddCommand(c.newKeyCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut sets the writer for command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

// openCache resolves the cache the command operates on: the settings file if
// one was given, otherwise an enabled cache at --cache-dir or the platform
// default directory.
func (c *CLI) openCache(cmd *cobra.Command) (*modcache.Cache, error) {
	logger := modcache.NewTextLogger(slog.LevelWarn)

	configPath, _ := cmd.Flags().GetString("config")
	dir, _ := cmd.Flags().GetString("cache-dir")

	if configPath != "" {
		settings, err := conf.Load(configPath)
		if err != nil {
			return nil, err
		}
		if dir != "" {
			settings.Directory = dir
		}
		return settings.Cache(modcache.WithLogger(logger)), nil
	}

	opts := []modcache.Option{modcache.WithLogger(logger)}
	if dir != "" {
		opts = append(opts, modcache.WithDirectory(dir))
	}
	return modcache.New(true, opts...), nil
}
