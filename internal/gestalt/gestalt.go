// Package gestalt infers a handful of platform/tool facts about a
// directory tree from the marker files its build systems conventionally
// leave behind (go.mod, package.json, Cargo.toml, CMakeLists.txt,
// configure.ac), the way internal/sibling infers language-disambiguation
// flags from sibling filenames: a small, declarative rule table keyed on
// filename.
package gestalt

import "path/filepath"

// Rule names one platform/tool fact and the marker basenames that imply it.
type Rule struct {
	Fact     string
	Basenames []string
}

// Rules is the ordered set of inference rules; more than one can fire for
// the same directory (e.g. a Go module vendoring a Node-based doc site).
var Rules = []Rule{
	{Fact: "go-module", Basenames: []string{"go.mod"}},
	{Fact: "node-package", Basenames: []string{"package.json"}},
	{Fact: "cargo-crate", Basenames: []string{"Cargo.toml"}},
	{Fact: "cmake-project", Basenames: []string{"CMakeLists.txt"}},
	{Fact: "autotools-project", Basenames: []string{"configure.ac", "configure.in"}},
	{Fact: "python-project", Basenames: []string{"pyproject.toml", "setup.py"}},
	{Fact: "maven-project", Basenames: []string{"pom.xml"}},
	{Fact: "gradle-project", Basenames: []string{"build.gradle", "build.gradle.kts"}},
	{Fact: "make-project", Basenames: []string{"Makefile", "makefile", "GNUmakefile"}},
	{Fact: "git-repo", Basenames: []string{".git"}},
}

// Facts reports every Rule whose markers appear anywhere in names, the
// entries of one directory.
func Facts(names []string) []string {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	var out []string
	for _, r := range Rules {
		for _, b := range r.Basenames {
			if set[b] {
				out = append(out, r.Fact)
				break
			}
		}
	}
	return out
}

// FactsForPath is a convenience wrapper for a single absolute or relative
// path: it reports facts implied by path's own basename alone, for callers
// walking one file at a time rather than a whole directory listing.
func FactsForPath(path string) []string {
	return Facts([]string{filepath.Base(path)})
}
