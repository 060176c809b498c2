package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polyloc/polyloc/internal/aggregate"
	"github.com/polyloc/polyloc/internal/kernel"
	"github.com/polyloc/polyloc/internal/observability"
	"github.com/polyloc/polyloc/internal/sibling"
	"github.com/polyloc/polyloc/internal/walk"
)

// NewSummaryCommand builds `polyloc summary`: per-language line totals and
// a COCOMO estimate over one or more root paths. This is the default
// report most users reach for.
func NewSummaryCommand() *cobra.Command {
	var flags commonFlags
	var serveMetrics string

	cmd := &cobra.Command{
		Use:   "summary [paths...]",
		Short: "Per-language line-count totals and a COCOMO cost estimate",
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
			agg := aggregate.New()

			var diag *observability.DiagnosticsServer
			if serveMetrics != "" {
				diag, _, err = observability.NewDiagnosticsServer(serveMetrics)
				if err != nil {
					return fmt.Errorf("start metrics server: %w", err)
				}
				defer diag.Shutdown(cmd.Context())
				fmt.Fprintf(os.Stderr, "serving metrics on %s\n", diag.Addr())
			}

			visit := func(ctx context.Context, path string, info os.FileInfo, sib *sibling.Snapshot) error {
				cf, ok, err := classifyFile(ctx, pipeline, cfg, path, sib)
				if err != nil || !ok {
					return nil
				}
				sink := agg.NewSink(cf.Lang)
				scanInto(cf.Lang, cf.Buf, kernel.ModeCount, sink)
				return nil
			}

			for _, root := range args {
				if err := walk.Walk(cmd.Context(), root, opts, visit); err != nil {
					return fmt.Errorf("walk %s: %w", root, err)
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), aggregate.Render(agg.Snapshot()))
			return nil
		},
	}

	flags.bindTo(cmd.Flags())
	cmd.Flags().StringVar(&serveMetrics, "serve-metrics", "", "serve a Prometheus /metrics endpoint at this address while scanning")
	return cmd
}
