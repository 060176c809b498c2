package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/cobra"

	"github.com/polyloc/polyloc/internal/kernel"
	"github.com/polyloc/polyloc/internal/license"
	"github.com/polyloc/polyloc/internal/sibling"
	"github.com/polyloc/polyloc/internal/walk"
)

// NewLicensesCommand builds `polyloc licenses`: reports the recognized
// SPDX license header, if any, for every file in the tree.
func NewLicensesCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "licenses [paths...]",
		Short: "Report the detected license header per file",
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
			window := cfg.HeaderWindowBytes

			type row struct{ path, spdx string }
			var mu sync.Mutex
			var rows []row

			visit := func(ctx context.Context, path string, info os.FileInfo, sib *sibling.Snapshot) error {
				cf, ok, err := classifyFile(ctx, pipeline, cfg, path, sib)
				if err != nil || !ok {
					return nil
				}

				var spans [][2]int
				sink := commentSpanSink{spans: &spans}
				scanInto(cf.Lang, cf.Buf, kernel.ModeEntity, sink)

				headerText := license.LeadingCommentText(cf.Buf, spans, window)
				spdx, found := license.Sniff(headerText)

				mu.Lock()
				if found {
					rows = append(rows, row{path: path, spdx: spdx})
				} else {
					rows = append(rows, row{path: path, spdx: "(none)"})
				}
				mu.Unlock()
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
				fmt.Fprintf(w, "%-50s %s\n", r.path, r.spdx)
			}
			return nil
		},
	}

	flags.bindTo(cmd.Flags())
	return cmd
}

// commentSpanSink collects just the comment entity spans from an
// entity-mode scan, feeding internal/license's header sniffer without it
// needing to know anything about internal/scan or internal/kernel.
type commentSpanSink struct {
	spans *[][2]int
}

func (s commentSpanSink) Line(kernel.LineEvent) {}

func (s commentSpanSink) Entity(sp kernel.Span) {
	if sp.Kind == kernel.KindComment {
		*s.spans = append(*s.spans, [2]int{sp.Start, sp.End})
	}
}
