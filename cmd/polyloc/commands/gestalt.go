package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/polyloc/polyloc/internal/gestalt"
)

// NewGestaltCommand builds `polyloc gestalt`: walks each root's whole
// directory tree and reports inferred platform/tool facts (go-module,
// node-package, cargo-crate, ...) per directory.
func NewGestaltCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gestalt [paths...]",
		Short: "Report inferred platform/tool facts per directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			type row struct {
				dir   string
				facts []string
			}
			var rows []row

			for _, root := range args {
				err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
					if err != nil || !info.IsDir() {
						return nil
					}
					entries, err := os.ReadDir(path)
					if err != nil {
						return nil
					}
					names := make([]string, 0, len(entries))
					for _, e := range entries {
						names = append(names, e.Name())
					}
					if facts := gestalt.Facts(names); len(facts) > 0 {
						rows = append(rows, row{dir: path, facts: facts})
					}
					return nil
				})
				if err != nil {
					return fmt.Errorf("walk %s: %w", root, err)
				}
			}

			sort.Slice(rows, func(i, j int) bool { return rows[i].dir < rows[j].dir })
			w := cmd.OutOrStdout()
			for _, r := range rows {
				fmt.Fprintf(w, "%-50s %v\n", r.dir, r.facts)
			}
			return nil
		},
	}
	return cmd
}
