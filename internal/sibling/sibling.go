// Package sibling snapshots one directory's filenames once per walk
// visit and derives the handful of cross-file disambiguation flags that
// internal/detect needs (contains-m, contains-pike-or-pmod, contains-vb),
// computing each at most once per directory no matter how many of that
// directory's files ask for it, following the one-shot-per-key pattern
// golang.org/x/sync/singleflight exists to provide.
package sibling

import (
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Snapshot holds one directory's filenames and memoizes the derived flags
// any file in that directory might need during detection.
type Snapshot struct {
	Dir   string
	Names []string

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]bool
}

// New builds a Snapshot for dir from its already-listed entry names.
// Names is copied; detection flags are computed lazily on first request.
func New(dir string, names []string) *Snapshot {
	cp := make([]string, len(names))
	copy(cp, names)
	return &Snapshot{Dir: dir, Names: cp, cache: make(map[string]bool)}
}

// ContainsM reports whether the directory has any entry named with an
// ".m" extension (the asking file itself included), for the ".m"
// disambiguator.
func (s *Snapshot) ContainsM() bool {
	return s.flag("contains-m", func() bool {
		return s.anySuffix(".m")
	})
}

// ContainsPikeOrPmod reports whether the directory contains a Pike module
// marker (".pike" or ".pmod" suffix), used to bias the ".h" disambiguator
// toward Pike.
func (s *Snapshot) ContainsPikeOrPmod() bool {
	return s.flag("contains-pike-or-pmod", func() bool {
		return s.anySuffix(".pike") || s.anySuffix(".pmod")
	})
}

// ContainsVB reports whether the directory contains a Visual Basic marker
// (".vb", ".vba", ".vbs", ".frm" or ".frx"), used to bias the classic-BASIC
// disambiguator toward modern Visual Basic.
func (s *Snapshot) ContainsVB() bool {
	return s.flag("contains-vb", func() bool {
		return s.anySuffix(".vb") || s.anySuffix(".vba") || s.anySuffix(".vbs") ||
			s.anySuffix(".frm") || s.anySuffix(".frx")
	})
}

// Contains reports whether the directory has an entry with exactly the
// given basename (case-sensitive), used by the ".h" disambiguator to check
// for a same-stem ".m" file.
func (s *Snapshot) Contains(name string) bool {
	for _, n := range s.Names {
		if n == name {
			return true
		}
	}
	return false
}

func (s *Snapshot) anySuffix(suffix string) bool {
	for _, n := range s.Names {
		if strings.EqualFold(filepath.Ext(n), suffix) {
			return true
		}
	}
	return false
}

// flag memoizes a derived boolean under key, computing it at most once per
// Snapshot even if requested concurrently by multiple files in the same
// directory during a parallel walk.
func (s *Snapshot) flag(key string, compute func() bool) bool {
	s.mu.RLock()
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return v
	}
	s.mu.RUnlock()

	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		s.mu.RLock()
		if v, ok := s.cache[key]; ok {
			s.mu.RUnlock()
			return v, nil
		}
		s.mu.RUnlock()
		result := compute()
		s.mu.Lock()
		s.cache[key] = result
		s.mu.Unlock()
		return result, nil
	})
	return v.(bool)
}
