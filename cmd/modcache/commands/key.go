package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/modcache"
)

func (c *CLI) newKeyCmd() *cobra.Command {
	var (
		target          string
		compilerName    string
		compilerVersion string
		debugInfo       bool
		dev             bool
	)

	cmd := &cobra.Command{
		Use:   "key <module-file>",
		Short: "Derive the cache key (and path) for a module binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			// A raw module binary is hashed whole; the key command has no
			// parser to split out individual function bodies.
			key, err := modcache.DeriveKey(modcache.BytesModule(data), nil)
			if err != nil {
				return err
			}
			cmd.Println(key.String())

			cache, err := c.openCache(cmd)
			if err != nil {
				return err
			}
			if cache.Enabled() {
				compiler := modcache.NewIdentity(compilerName, compilerVersion)
				if dev {
					compiler = modcache.DevIdentity(compilerName, compilerVersion)
				}
				cmd.Println(modcache.EntryPath(cache.Directory(), key, target, compiler, debugInfo))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "x86_64-unknown-linux-gnu", "Target triple")
	cmd.Flags().StringVar(&compilerName, "compiler-name", "modcache", "Compiler name")
	cmd.Flags().StringVar(&compilerVersion, "compiler-version", "0.0.0", "Compiler version")
	cmd.Flags().BoolVar(&debugInfo, "debug-info", false, "Resolve the debug-info variant of the entry")
	cmd.Flags().BoolVar(&dev, "dev", false, "Stamp the compiler identity with the executable mtime")

	return cmd
}
