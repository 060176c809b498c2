// Package detect implements the DetectionPipeline: the cascade of
// increasingly expensive heuristics that names the language of one file,
// given its path, content, and (optionally) its directory's sibling
// snapshot. The cascade order is binary rejection, exact basename, hashbang,
// extension (with content-scoring disambiguation where more than one
// language claims an extension), Emacs mode-line, then an external
// file-type probe.
package detect

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/polyloc/polyloc/internal/langdef"
	"github.com/polyloc/polyloc/internal/sibling"
)

// Result is one file's detection outcome.
type Result struct {
	Lang   string
	Reason string // which cascade stage matched, for the detect subcommand's diagnostics
}

// Pipeline runs the cascade for a batch of files sharing a Prober.
type Pipeline struct {
	Prober Prober
}

// New constructs a Pipeline with the given last-resort Prober. Pass nil to
// skip external probing entirely (absent on everything the in-process
// cascade cannot name).
func New(p Prober) *Pipeline {
	return &Pipeline{Prober: p}
}

// binaryScanWindow bounds how many leading bytes the NUL-byte rejection
// heuristic inspects, mirroring file(1)'s own default sniff window.
const binaryScanWindow = 8000

// Detect classifies one file. buf should hold at least the first
// binaryScanWindow bytes of the file (the whole file is fine too); sib may
// be nil when no directory context is available (e.g. a single streamed
// file).
func (p *Pipeline) Detect(ctx context.Context, path string, buf []byte, sib *sibling.Snapshot) (Result, bool) {
	window := buf
	if len(window) > binaryScanWindow {
		window = window[:binaryScanWindow]
	}
	if bytes.IndexByte(window, 0) >= 0 || looksBinary(window) {
		return Result{}, false
	}

	base := filepath.Base(path)
	if l, ok := basenameIndex[base]; ok {
		return Result{Lang: l.Name, Reason: "basename"}, true
	}

	if firstLine, ok := firstLineOf(buf); ok && strings.HasPrefix(firstLine, "#!") {
		for _, l := range hashbangTable {
			if strings.Contains(firstLine, l.Hashbang) {
				return Result{Lang: l.Name, Reason: "hashbang"}, true
			}
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".in":
		return p.Detect(ctx, strings.TrimSuffix(path, ext), buf, sib)
	case ".inc":
		if bytes.Contains(buf, []byte("?php")) {
			return Result{Lang: "php", Reason: "disambiguator"}, true
		}
		return Result{}, false
	}

	if candidates, ok := extIndex[ext]; ok {
		switch len(candidates) {
		case 0:
			// unreachable: extIndex never stores an empty slice
		case 1:
			c := candidates[0]
			if c.Verifier != nil {
				if c.Verifier(buf) {
					return Result{Lang: c.Name, Reason: "extension"}, true
				}
				break
			}
			return Result{Lang: c.Name, Reason: "extension"}, true
		default:
			if disamb, ok := disambiguators[ext]; ok {
				name := disamb(path, buf, sib)
				return Result{Lang: name, Reason: "disambiguator"}, true
			}
			if name, ok := verifierPick(candidates, buf); ok {
				return Result{Lang: name, Reason: "verifier"}, true
			}
			return Result{Lang: candidates[0].Name, Reason: "extension-default"}, true
		}
	}

	if lang, ok := modeline(buf); ok {
		return Result{Lang: lang, Reason: "modeline"}, true
	}

	if p.Prober != nil {
		if lang, ok := p.Prober.Probe(ctx, path); ok {
			return Result{Lang: lang, Reason: "probe"}, true
		}
	}

	return Result{}, false
}

// verifierPick returns the first candidate whose Verifier accepts buf,
// falling back to the first candidate with no Verifier at all, trying
// each candidate in declared order.
func verifierPick(candidates []langdef.Lang, buf []byte) (string, bool) {
	var fallback string
	for _, c := range candidates {
		if c.Verifier == nil {
			if fallback == "" {
				fallback = c.Name
			}
			continue
		}
		if c.Verifier(buf) {
			return c.Name, true
		}
	}
	if fallback != "" {
		return fallback, true
	}
	if len(candidates) > 0 {
		return candidates[0].Name, true
	}
	return "", false
}

func firstLineOf(buf []byte) (string, bool) {
	i := bytes.IndexByte(buf, '\n')
	if i < 0 {
		return string(buf), len(buf) > 0
	}
	return string(buf[:i]), true
}
