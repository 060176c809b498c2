package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/cobra"

	"github.com/polyloc/polyloc/internal/kernel"
	"github.com/polyloc/polyloc/internal/sibling"
	"github.com/polyloc/polyloc/internal/walk"
)

// NewIndividualCommand builds `polyloc individual`: a per-file SLOC/LLOC
// table instead of summary's per-language rollup.
func NewIndividualCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "individual [paths...]",
		Short: "Per-file line-count totals instead of per-language",
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
				path, lang   string
				sloc, lloc   uint64
			}
			var mu sync.Mutex
			var rows []row

			visit := func(ctx context.Context, path string, info os.FileInfo, sib *sibling.Snapshot) error {
				cf, ok, err := classifyFile(ctx, pipeline, cfg, path, sib)
				if err != nil || !ok {
					return nil
				}
				var sloc, lloc uint64
				sinkFn := lineCounterSink(&sloc, &lloc)
				scanInto(cf.Lang, cf.Buf, kernel.ModeCount, sinkFn)

				mu.Lock()
				rows = append(rows, row{path: path, lang: cf.Lang, sloc: sloc, lloc: lloc})
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
				fmt.Fprintf(w, "%-50s %-16s %8d %8d\n", r.path, r.lang, r.sloc, r.lloc)
			}
			return nil
		},
	}

	flags.bindTo(cmd.Flags())
	return cmd
}

// lineCounterSink returns a kernel.Sink that folds LineEvents into sloc
// (every non-blank line) and lloc (code lines only), discarding entity
// spans.
func lineCounterSink(sloc, lloc *uint64) countSink {
	return countSink{sloc: sloc, lloc: lloc}
}

type countSink struct {
	sloc, lloc *uint64
}

func (c countSink) Line(ev kernel.LineEvent) {
	switch ev.Kind {
	case kernel.LineCode:
		*c.sloc++
		*c.lloc++
	case kernel.LineComment:
		*c.sloc++
	}
}

func (c countSink) Entity(kernel.Span) {}
