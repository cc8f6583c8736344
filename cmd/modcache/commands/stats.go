package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type dirStats struct {
	entries int
	bytes   int64
}

func (c *CLI) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize cache entries per target and compiler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := c.openCache(cmd)
			if err != nil {
				return err
			}
			if !cache.Enabled() {
				return errors.New("cache is disabled")
			}
			root := cache.Directory()

			// Group by "<target>/<compiler>", the two directory levels
			// above each entry file.
			groups := map[string]*dirStats{}
			err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return nil
				}
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return nil
				}
				parts := strings.Split(filepath.ToSlash(rel), "/")
				if len(parts) != 3 || !strings.HasPrefix(parts[2], "mod-") {
					return nil
				}
				group := parts[0] + "/" + parts[1]
				s := groups[group]
				if s == nil {
					s = &dirStats{}
					groups[group] = s
				}
				info, err := d.Info()
				if err != nil {
					return nil
				}
				s.entries++
				s.bytes += info.Size()
				return nil
			})
			if err != nil {
				return err
			}

			names := make([]string, 0, len(groups))
			for name := range groups {
				names = append(names, name)
			}
			sort.Strings(names)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TARGET/COMPILER\tENTRIES\tBYTES")
			var totalEntries int
			var totalBytes int64
			for _, name := range names {
				s := groups[name]
				fmt.Fprintf(w, "%s\t%d\t%d\n", name, s.entries, s.bytes)
				totalEntries += s.entries
				totalBytes += s.bytes
			}
			fmt.Fprintf(w, "total\t%d\t%d\n", totalEntries, totalBytes)
			return w.Flush()
		},
	}
}
