package embed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyloc/polyloc/internal/embed"
	"github.com/polyloc/polyloc/internal/kernel"
)

type recordingSink struct {
	lines []kernel.LineEvent
}

func (r *recordingSink) Line(ev kernel.LineEvent) { r.lines = append(r.lines, ev) }
func (r *recordingSink) Entity(kernel.Span)        {}

func (r *recordingSink) langCounts() map[string]int {
	out := map[string]int{}
	for _, ev := range r.lines {
		if ev.Kind == kernel.LineCode {
			out[ev.Lang]++
		}
	}
	return out
}

func TestHostPlainTextIsCounted(t *testing.T) {
	src := "<html>\n<body>hello</body>\n</html>\n"
	sink := &recordingSink{}
	embed.New([]byte(src), kernel.ModeCount, sink).Run("html")

	counts := sink.langCounts()
	assert.Equal(t, 3, counts["html"])
	assert.Zero(t, counts["javascript"])
}

func TestScriptBlockDispatchesToJavaScript(t *testing.T) {
	src := "<html>\n<script>\nvar x = 1;\n</script>\n</html>\n"
	sink := &recordingSink{}
	embed.New([]byte(src), kernel.ModeCount, sink).Run("html")

	counts := sink.langCounts()
	assert.Equal(t, 1, counts["javascript"])
	assert.True(t, counts["html"] > 0)
}

func TestStyleBlockDispatchesToCSS(t *testing.T) {
	src := "<html>\n<style>\nbody { color: red; }\n</style>\n</html>\n"
	sink := &recordingSink{}
	embed.New([]byte(src), kernel.ModeCount, sink).Run("html")

	counts := sink.langCounts()
	assert.Equal(t, 1, counts["css"])
}

func TestUnknownHostReturnsNoEvents(t *testing.T) {
	sink := &recordingSink{}
	embed.New([]byte("whatever\n"), kernel.ModeCount, sink).Run("not-a-real-language")
	assert.Empty(t, sink.lines)
}

func TestHTMLCommentIsNotCountedAsCode(t *testing.T) {
	src := "<html>\n<!-- a comment -->\n</html>\n"
	sink := &recordingSink{}
	embed.New([]byte(src), kernel.ModeCount, sink).Run("html")

	var comment int
	for _, ev := range sink.lines {
		if ev.Kind == kernel.LineComment {
			comment++
		}
	}
	require.Equal(t, 1, comment)
}

func TestEntryTagRequiresWholeTagMatch(t *testing.T) {
	src := "<scripter>not a script tag</scripter>\n"
	sink := &recordingSink{}
	embed.New([]byte(src), kernel.ModeCount, sink).Run("html")

	counts := sink.langCounts()
	assert.Zero(t, counts["javascript"])
	assert.True(t, counts["html"] > 0)
}
