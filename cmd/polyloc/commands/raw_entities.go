package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polyloc/polyloc/internal/kernel"
	"github.com/polyloc/polyloc/internal/sibling"
	"github.com/polyloc/polyloc/internal/walk"
)

var entityKindNames = map[kernel.Kind]string{
	kernel.KindSpace:      "space",
	kernel.KindAny:        "code",
	kernel.KindComment:    "comment",
	kernel.KindString:     "string",
	kernel.KindNumber:     "number",
	kernel.KindKeyword:    "keyword",
	kernel.KindIdentifier: "identifier",
	kernel.KindOperator:   "operator",
	kernel.KindPreproc:    "preproc",
}

// NewRawEntitiesCommand builds `polyloc raw-entities`: emits every
// entity-mode span a scan produces, one per line, for debugging and for
// tools layered on top of polyloc that want token-level output instead of
// line counts.
func NewRawEntitiesCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "raw-entities [paths...]",
		Short: "Emit entity-mode spans (comments, strings, code) per file",
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
			w := cmd.OutOrStdout()

			visit := func(ctx context.Context, path string, info os.FileInfo, sib *sibling.Snapshot) error {
				cf, ok, err := classifyFile(ctx, pipeline, cfg, path, sib)
				if err != nil || !ok {
					return nil
				}
				sink := printingSink{w: w, path: path}
				scanInto(cf.Lang, cf.Buf, kernel.ModeEntity, sink)
				return nil
			}

			for _, root := range args {
				if err := walk.Walk(cmd.Context(), root, opts, visit); err != nil {
					return fmt.Errorf("walk %s: %w", root, err)
				}
			}
			return nil
		},
	}

	flags.bindTo(cmd.Flags())
	return cmd
}

type printingSink struct {
	w    interface{ Write([]byte) (int, error) }
	path string
}

func (s printingSink) Line(kernel.LineEvent) {}

func (s printingSink) Entity(sp kernel.Span) {
	name, ok := entityKindNames[sp.Kind]
	if !ok {
		name = "other"
	}
	fmt.Fprintf(s.w, "%s\t%s\t%s\t%d\t%d\n", s.path, sp.Lang, name, sp.Start, sp.End)
}
