// Package aggregate accumulates per-language totals from kernel.LineEvent
// streams and renders them as a sorted table plus a COCOMO-style cost
// estimate: a concurrent-safe accumulator fed by many
// internal/walk.Visit callbacks.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/polyloc/polyloc/internal/kernel"
)

// Totals holds one language's accumulated SLOC/LLOC and file count.
type Totals struct {
	Lang  string
	SLOC  uint64
	LLOC  uint64
	Files uint64
}

// Aggregator collects Totals across concurrent file scans. Safe for
// concurrent use by many goroutines sharing one instance, which is how
// internal/walk's per-file visits feed it.
type Aggregator struct {
	mu     sync.Mutex
	byLang map[string]*Totals
}

// New constructs an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{byLang: make(map[string]*Totals)}
}

// Sink adapts one file's scan into an Aggregator update: it implements
// kernel.Sink by counting LineEvents and discarding entity Spans. A single
// file can touch more than one language bucket when its scan embeds a guest
// language (internal/embed), so Sink records one Files increment per
// distinct ev.Lang seen during its lifetime, not one per file.
type Sink struct {
	agg     *Aggregator
	counted map[string]bool
}

// NewSink returns a kernel.Sink that folds one file's scan into agg. lang
// names the file's top-level detected language; embedded guest regions
// within the same scan report their own ev.Lang and are tallied separately.
func (a *Aggregator) NewSink(lang string) *Sink {
	return &Sink{agg: a, counted: map[string]bool{}}
}

func (s *Sink) Line(ev kernel.LineEvent) {
	s.agg.mu.Lock()
	defer s.agg.mu.Unlock()

	t, ok := s.agg.byLang[ev.Lang]
	if !ok {
		t = &Totals{Lang: ev.Lang}
		s.agg.byLang[ev.Lang] = t
	}
	if !s.counted[ev.Lang] {
		t.Files++
		s.counted[ev.Lang] = true
	}
	switch ev.Kind {
	case kernel.LineCode:
		t.SLOC++
		t.LLOC++
	case kernel.LineComment, kernel.LineBlank:
		t.SLOC++
	}
}

// Entity discards entity-mode spans; Aggregator only serves count-mode
// totals. internal/scan callers wanting entity output use their own Sink.
func (s *Sink) Entity(kernel.Span) {}

// Snapshot returns a stable, deterministically ordered copy of the current
// totals: by descending SLOC, then by language name.
func (a *Aggregator) Snapshot() []Totals {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Totals, 0, len(a.byLang))
	for _, t := range a.byLang {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SLOC != out[j].SLOC {
			return out[i].SLOC > out[j].SLOC
		}
		return out[i].Lang < out[j].Lang
	})
	return out
}

// Cocomo holds a COCOMO Basic effort/cost estimate over a total SLOC count,
// using the standard organic-mode constants.
type Cocomo struct {
	TotalSLOC    uint64
	PersonMonths float64
	Schedule     float64 // months
	People       float64
}

// EstimateCocomo computes the organic-mode COCOMO Basic estimate printed
// alongside the per-language table.
func EstimateCocomo(totalSLOC uint64) Cocomo {
	kloc := float64(totalSLOC) / 1000.0
	pm := 2.4 * math.Pow(kloc, 1.05)
	sched := 2.5 * math.Pow(pm, 0.38)
	people := 0.0
	if sched > 0 {
		people = pm / sched
	}
	return Cocomo{TotalSLOC: totalSLOC, PersonMonths: pm, Schedule: sched, People: people}
}

// Render returns a plain-text table with one row per language (language,
// files, SLOC, LLOC), a TOTAL row, and the COCOMO estimate for the summed
// SLOC.
func Render(totals []Totals) string {
	out := "Language                 Files          SLOC          LLOC\n"
	var sumSLOC, sumLLOC, sumFiles uint64
	for _, t := range totals {
		out += fmt.Sprintf("%-24s %6d %13d %13d\n", t.Lang, t.Files, t.SLOC, t.LLOC)
		sumSLOC += t.SLOC
		sumLLOC += t.LLOC
		sumFiles += t.Files
	}
	out += fmt.Sprintf("%-24s %6d %13d %13d\n", "TOTAL", sumFiles, sumSLOC, sumLLOC)
	c := EstimateCocomo(sumSLOC)
	out += fmt.Sprintf("\nTotal Physical Source Lines of Code (SLOC)                = %d\n", c.TotalSLOC)
	out += fmt.Sprintf("Estimated Development Effort (person-months)               = %.2f\n", c.PersonMonths)
	out += fmt.Sprintf("Estimated Schedule (months)                                = %.2f\n", c.Schedule)
	out += fmt.Sprintf("Estimated Average Number of Developers                     = %.2f\n", c.People)
	return out
}
