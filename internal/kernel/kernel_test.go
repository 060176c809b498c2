package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyloc/polyloc/internal/kernel"
)

type recordingSink struct {
	lines    []kernel.LineEvent
	entities []kernel.Span
}

func (r *recordingSink) Line(ev kernel.LineEvent)  { r.lines = append(r.lines, ev) }
func (r *recordingSink) Entity(sp kernel.Span)     { r.entities = append(r.entities, sp) }

func TestEmitNewlineClassifiesCode(t *testing.T) {
	buf := []byte("x\n")
	sink := &recordingSink{}
	k := kernel.New("go", buf, kernel.ModeCount, sink)

	k.MarkCode()
	k.EmitNewline(len(buf))

	require.Len(t, sink.lines, 1)
	assert.Equal(t, kernel.LineCode, sink.lines[0].Kind)
	assert.Equal(t, 0, sink.lines[0].Start)
	assert.Equal(t, len(buf), sink.lines[0].End)
}

func TestMarkCommentNeverDowngradesCode(t *testing.T) {
	sink := &recordingSink{}
	k := kernel.New("go", []byte("x // c\n"), kernel.ModeCount, sink)

	k.MarkCode()
	k.MarkComment()
	k.EmitNewline(7)

	require.Len(t, sink.lines, 1)
	assert.Equal(t, kernel.LineCode, sink.lines[0].Kind)
}

func TestMarkCommentAloneIsComment(t *testing.T) {
	sink := &recordingSink{}
	k := kernel.New("go", []byte("// c\n"), kernel.ModeCount, sink)

	k.MarkComment()
	k.EmitNewline(5)

	require.Len(t, sink.lines, 1)
	assert.Equal(t, kernel.LineComment, sink.lines[0].Kind)
}

func TestEmitNewlineWithNoFlagsIsBlank(t *testing.T) {
	sink := &recordingSink{}
	k := kernel.New("go", []byte("\n"), kernel.ModeCount, sink)

	k.EmitNewline(1)

	require.Len(t, sink.lines, 1)
	assert.Equal(t, kernel.LineBlank, sink.lines[0].Kind)
}

func TestEmitInternalNewlineResetsFlagsAndAdvancesLineStart(t *testing.T) {
	sink := &recordingSink{}
	k := kernel.New("go", []byte("\"a\nb\"\n"), kernel.ModeCount, sink)

	k.MarkCode()
	for i := 0; i < 3; i++ {
		k.Next()
	}
	k.EmitInternalNewline(3)
	assert.Equal(t, 3, k.LineStart())

	code, comment := k.Flags()
	assert.False(t, code)
	assert.False(t, comment)
}

func TestEmitFinalOnlyFiresWithPendingFlags(t *testing.T) {
	sink := &recordingSink{}
	k := kernel.New("go", []byte("x"), kernel.ModeCount, sink)

	k.MarkCode()
	k.EmitFinal(1)

	require.Len(t, sink.lines, 1)
	assert.Equal(t, kernel.LineCode, sink.lines[0].Kind)

	sink2 := &recordingSink{}
	k2 := kernel.New("go", []byte(""), kernel.ModeCount, sink2)
	k2.EmitFinal(0)
	assert.Empty(t, sink2.lines)
}

func TestEmitEntityOnlyInEntityMode(t *testing.T) {
	sink := &recordingSink{}
	k := kernel.New("go", []byte("abc"), kernel.ModeCount, sink)
	k.EmitEntity(kernel.KindComment, 0, 3)
	assert.Empty(t, sink.entities)

	sink2 := &recordingSink{}
	k2 := kernel.New("go", []byte("abc"), kernel.ModeEntity, sink2)
	k2.EmitEntity(kernel.KindComment, 0, 3)
	require.Len(t, sink2.entities, 1)
	assert.Equal(t, kernel.KindComment, sink2.entities[0].Kind)
}

func TestHasPrefixAt(t *testing.T) {
	k := kernel.New("c", []byte("/* x */"), kernel.ModeCount, &recordingSink{})
	assert.True(t, k.HasPrefixAt("/*"))
	assert.False(t, k.HasPrefixAt("*/"))
}

func TestIsSpace(t *testing.T) {
	for _, c := range []byte{' ', '\t', '\r', '\n', '\f'} {
		assert.True(t, kernel.IsSpace(c))
	}
	assert.False(t, kernel.IsSpace('x'))
}
