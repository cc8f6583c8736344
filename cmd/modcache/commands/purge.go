package commands

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (c *CLI) newPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove all entries under the cache root",
		Long: "Remove all entries under the cache root. The root directory itself\n" +
			"is kept so a running compiler does not lose its resolved path.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := c.openCache(cmd)
			if err != nil {
				return err
			}
			if !cache.Enabled() {
				return errors.New("cache is disabled")
			}
			root := cache.Directory()

			children, err := os.ReadDir(root)
			if err != nil {
				return err
			}
			removed := 0
			for _, child := range children {
				if err := os.RemoveAll(filepath.Join(root, child.Name())); err != nil {
					return err
				}
				removed++
			}
			cmd.Printf("purged %d top-level entries from %s\n", removed, root)
			return nil
		},
	}
}
