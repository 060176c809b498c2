package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/cobra"

	"github.com/polyloc/polyloc/internal/sibling"
	"github.com/polyloc/polyloc/internal/walk"
)

// NewDetectCommand builds `polyloc detect`: reports the detected language
// of every file plus the cascade stage that decided it, for diagnosing
// internal/detect's pipeline against a real tree.
func NewDetectCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "detect [paths...]",
		Short: "Report the detected language of each file and why",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			opts, err := walkOpts(cfg)
			if err != nil {
				return err
			}
			pipeline := buildPipeline(cfg)

			type row struct {
				path, lang, reason string
			}
			var mu sync.Mutex
			var rows []row

			visit := func(ctx context.Context, path string, info os.FileInfo, sib *sibling.Snapshot) error {
				buf, err := os.ReadFile(path)
				if err != nil {
					return nil
				}
				res, ok := pipeline.Detect(ctx, path, buf, sib)
				mu.Lock()
				defer mu.Unlock()
				if !ok {
					rows = append(rows, row{path: path, lang: "(absent)", reason: "no match"})
					return nil
				}
				rows = append(rows, row{path: path, lang: res.Lang, reason: res.Reason})
				return nil
			}

			for _, root := range args {
				if err := walk.Walk(cmd.Context(), root, opts, visit); err != nil {
					return fmt.Errorf("walk %s: %w", root, err)
				}
			}

			sort.Slice(rows, func(i, j int) bool { return rows[i].path < rows[j].path })
			w := cmd.OutOrStdout()
			for _, r := range rows {
				fmt.Fprintf(w, "%-50s %-16s %s\n", r.path, r.lang, r.reason)
			}
			return nil
		},
	}

	flags.bindTo(cmd.Flags())
	return cmd
}
