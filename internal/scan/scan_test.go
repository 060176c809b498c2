package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polyloc/polyloc/internal/kernel"
	"github.com/polyloc/polyloc/internal/langdef"
	"github.com/polyloc/polyloc/internal/scan"
)

type countingSink struct {
	code, comment, blank int
}

func (s *countingSink) Line(ev kernel.LineEvent) {
	switch ev.Kind {
	case kernel.LineCode:
		s.code++
	case kernel.LineComment:
		s.comment++
	case kernel.LineBlank:
		s.blank++
	}
}

func (s *countingSink) Entity(kernel.Span) {}

func mustLang(t *testing.T, name string) langdef.Lang {
	t.Helper()
	l, ok := langdef.ByName(name)
	if !ok {
		t.Fatalf("language %q not found in table", name)
	}
	return l
}

func TestCFamilyCountsCodeCommentBlank(t *testing.T) {
	src := "int x = 1;\n// a comment\n\n/* block\n   spans */\n"
	sink := &countingSink{}
	scan.Scan(mustLang(t, "c"), []byte(src), kernel.ModeCount, sink)

	assert.Equal(t, 1, sink.code)
	assert.Equal(t, 1, sink.blank)
	assert.Equal(t, 3, sink.comment) // winged line + two lines of the block comment
}

func TestCFamilyStringDoesNotHideCode(t *testing.T) {
	src := "char *s = \"// not a comment\";\n"
	sink := &countingSink{}
	scan.Scan(mustLang(t, "c"), []byte(src), kernel.ModeCount, sink)

	assert.Equal(t, 1, sink.code)
	assert.Equal(t, 0, sink.comment)
}

func TestGoBacktickRawString(t *testing.T) {
	src := "var s = `line one\nline two`\n"
	sink := &countingSink{}
	scan.Scan(mustLang(t, "go"), []byte(src), kernel.ModeCount, sink)

	assert.Equal(t, 2, sink.code)
}

func TestHashLineGeneric(t *testing.T) {
	src := "echo hi # trailing comment\n# whole line\n\n"
	sink := &countingSink{}
	scan.Scan(mustLang(t, "shell"), []byte(src), kernel.ModeCount, sink)

	assert.Equal(t, 1, sink.code)
	assert.Equal(t, 1, sink.comment)
	assert.Equal(t, 1, sink.blank)
}

func TestTripleQuotedDocstringIsComment(t *testing.T) {
	src := "\"\"\"\nmodule docstring\n\"\"\"\nx = 1\n"
	sink := &countingSink{}
	scan.Scan(mustLang(t, "python"), []byte(src), kernel.ModeCount, sink)

	assert.Equal(t, 1, sink.code)
	assert.Equal(t, 3, sink.comment)
}

func TestTripleQuotedSingleLineStringIsCode(t *testing.T) {
	src := "x = \"\"\"inline\"\"\"\n"
	sink := &countingSink{}
	scan.Scan(mustLang(t, "python"), []byte(src), kernel.ModeCount, sink)

	assert.Equal(t, 1, sink.code)
	assert.Equal(t, 0, sink.comment)
}

func TestPerlPodBlockIsComment(t *testing.T) {
	src := "print 1;\n=pod\ndocs here\n=cut\nprint 2;\n"
	sink := &countingSink{}
	scan.Scan(mustLang(t, "perl"), []byte(src), kernel.ModeCount, sink)

	assert.Equal(t, 3, sink.code)
	assert.Equal(t, 2, sink.comment)
}

func TestPascalBraceComment(t *testing.T) {
	src := "writeln('x');\n{ a comment }\n"
	sink := &countingSink{}
	scan.Scan(mustLang(t, "pascal"), []byte(src), kernel.ModeCount, sink)

	assert.Equal(t, 1, sink.code)
	assert.Equal(t, 1, sink.comment)
}

func TestFortranColumnComment(t *testing.T) {
	src := "c this is a comment\n      x = 1\n"
	sink := &countingSink{}
	scan.Scan(mustLang(t, "fortran"), []byte(src), kernel.ModeCount, sink)

	assert.Equal(t, 1, sink.code)
	assert.Equal(t, 1, sink.comment)
}

func TestEntityModeEmitsNoLineEvents(t *testing.T) {
	sink := &countingSink{}
	scan.Scan(mustLang(t, "c"), []byte("int x;\n"), kernel.ModeEntity, sink)
	assert.Zero(t, sink.code+sink.comment+sink.blank)
}
