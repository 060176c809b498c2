package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polyloc/polyloc/internal/kernel"
)

// NewAnnotateCommand builds `polyloc annotate`: reprints a source file with
// its per-line code/comment/blank classification prefixed.
func NewAnnotateCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "annotate <path>",
		Short: "Reprint one source file with a per-line code/comment/blank tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			pipeline := buildPipeline(cfg)
			path := args[0]

			cf, ok, err := classifyFile(cmd.Context(), pipeline, cfg, path, nil)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: language not recognized", path)
			}

			var events []kernel.LineEvent
			sink := lineEventSink{events: &events}
			scanInto(cf.Lang, cf.Buf, kernel.ModeCount, sink)

			w := cmd.OutOrStdout()
			lines := splitLines(cf.Buf, events)
			for i, ev := range events {
				tag := tagFor(ev.Kind)
				fmt.Fprintf(w, "%-7s %d: %s\n", tag, i+1, lines[i])
			}
			return nil
		},
	}

	flags.bindTo(cmd.Flags())
	return cmd
}

type lineEventSink struct {
	events *[]kernel.LineEvent
}

func (s lineEventSink) Line(ev kernel.LineEvent) { *s.events = append(*s.events, ev) }
func (s lineEventSink) Entity(kernel.Span)        {}

func tagFor(k kernel.LineKind) string {
	switch k {
	case kernel.LineCode:
		return "code"
	case kernel.LineComment:
		return "comment"
	default:
		return "blank"
	}
}

// splitLines slices buf according to the byte ranges recorded in events,
// stripping a trailing newline from each for display.
func splitLines(buf []byte, events []kernel.LineEvent) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		end := ev.End
		if end > len(buf) {
			end = len(buf)
		}
		text := string(buf[ev.Start:end])
		for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
			text = text[:len(text)-1]
		}
		out[i] = text
	}
	return out
}
