package aggregate_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyloc/polyloc/internal/aggregate"
	"github.com/polyloc/polyloc/internal/kernel"
)

func TestSinkAccumulatesCodeCommentBlank(t *testing.T) {
	agg := aggregate.New()
	sink := agg.NewSink("go")

	sink.Line(kernel.LineEvent{Lang: "go", Kind: kernel.LineCode})
	sink.Line(kernel.LineEvent{Lang: "go", Kind: kernel.LineComment})
	sink.Line(kernel.LineEvent{Lang: "go", Kind: kernel.LineBlank})

	snap := agg.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "go", snap[0].Lang)
	assert.Equal(t, uint64(1), snap[0].Files)
	assert.Equal(t, uint64(1), snap[0].LLOC)
	assert.Equal(t, uint64(3), snap[0].SLOC)
}

func TestSinkCountsOneFileRegardlessOfLineCount(t *testing.T) {
	agg := aggregate.New()
	sink := agg.NewSink("c")
	for i := 0; i < 10; i++ {
		sink.Line(kernel.LineEvent{Lang: "c", Kind: kernel.LineCode})
	}
	snap := agg.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, uint64(1), snap[0].Files)
	assert.Equal(t, uint64(10), snap[0].SLOC)
}

func TestSnapshotSortedByDescendingSLOCThenName(t *testing.T) {
	agg := aggregate.New()
	big := agg.NewSink("b-lang")
	for i := 0; i < 5; i++ {
		big.Line(kernel.LineEvent{Lang: "b-lang", Kind: kernel.LineCode})
	}
	small := agg.NewSink("a-lang")
	small.Line(kernel.LineEvent{Lang: "a-lang", Kind: kernel.LineCode})
	tie1 := agg.NewSink("z-lang")
	tie1.Line(kernel.LineEvent{Lang: "z-lang", Kind: kernel.LineCode})

	snap := agg.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "b-lang", snap[0].Lang)
	assert.Equal(t, "a-lang", snap[1].Lang)
	assert.Equal(t, "z-lang", snap[2].Lang)
}

func TestAggregatorConcurrentSinksAreSafe(t *testing.T) {
	agg := aggregate.New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink := agg.NewSink("go")
			sink.Line(kernel.LineEvent{Lang: "go", Kind: kernel.LineCode})
		}()
	}
	wg.Wait()

	snap := agg.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, uint64(20), snap[0].Files)
	assert.Equal(t, uint64(20), snap[0].SLOC)
}

func TestSinkCountsOneFilePerEmbeddedLanguage(t *testing.T) {
	agg := aggregate.New()
	sink := agg.NewSink("html")
	sink.Line(kernel.LineEvent{Lang: "html", Kind: kernel.LineCode})
	sink.Line(kernel.LineEvent{Lang: "javascript", Kind: kernel.LineCode})
	sink.Line(kernel.LineEvent{Lang: "javascript", Kind: kernel.LineCode})
	sink.Line(kernel.LineEvent{Lang: "html", Kind: kernel.LineCode})

	snap := agg.Snapshot()
	byLang := map[string]aggregate.Totals{}
	for _, t := range snap {
		byLang[t.Lang] = t
	}
	require.Contains(t, byLang, "html")
	require.Contains(t, byLang, "javascript")
	assert.Equal(t, uint64(1), byLang["html"].Files)
	assert.Equal(t, uint64(1), byLang["javascript"].Files)
	assert.Equal(t, uint64(2), byLang["html"].SLOC)
	assert.Equal(t, uint64(2), byLang["javascript"].SLOC)
}

func TestEstimateCocomoZeroSLOC(t *testing.T) {
	c := aggregate.EstimateCocomo(0)
	assert.Equal(t, uint64(0), c.TotalSLOC)
	assert.Zero(t, c.PersonMonths)
}

func TestEstimateCocomoPositiveSLOC(t *testing.T) {
	c := aggregate.EstimateCocomo(10000)
	assert.Equal(t, uint64(10000), c.TotalSLOC)
	assert.Greater(t, c.PersonMonths, 0.0)
	assert.Greater(t, c.Schedule, 0.0)
	assert.Greater(t, c.People, 0.0)
}

func TestRenderIncludesLanguageRowsAndTotal(t *testing.T) {
	totals := []aggregate.Totals{
		{Lang: "go", SLOC: 100, LLOC: 80, Files: 3},
		{Lang: "python", SLOC: 50, LLOC: 40, Files: 2},
	}
	out := aggregate.Render(totals)
	assert.True(t, strings.Contains(out, "go"))
	assert.True(t, strings.Contains(out, "python"))
	assert.True(t, strings.Contains(out, "TOTAL"))
	assert.True(t, strings.Contains(out, "Estimated Development Effort"))
}
