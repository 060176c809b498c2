// Package langdef holds the declarative tables that drive both detection
// (internal/detect) and counting (internal/scan): for each language, its
// recognized extensions/basenames and the syntax facts a scanner needs
// (comment leaders, string delimiters, statement terminators), split by
// Category instead of by Go struct type so every language lives in one
// ordered slice.
//
// Tables are ordered slices, not maps, because declaration order breaks
// detection and scanner-priority ties.
package langdef

import "regexp"

// Category selects which scan family (internal/scan) counts a language.
type Category int

const (
	// CategoryCFamily covers C-like languages: block comments delimited by
	// two distinct strings, an optional winged comment, C-style strings,
	// and (optionally) backslash escapes.
	CategoryCFamily Category = iota
	// CategoryHashLine covers languages with only a winged comment leader
	// (not necessarily '#') and no block comments.
	CategoryHashLine
	// CategoryTripleQuoted covers Python-like languages with a '#' winged
	// comment and triple-quoted strings that double as block comments.
	CategoryTripleQuoted
	// CategoryPerlLike covers Perl-style '#' comments plus heredocs and POD
	// blocks.
	CategoryPerlLike
	// CategoryPascalLike covers (* *) and optionally { } block comments.
	CategoryPascalLike
	// CategoryFortranLike covers column-position comment leaders matched by
	// regexp pairs (comment / not-a-comment-after-all).
	CategoryFortranLike
	// CategoryMarkup covers host languages that can embed guest languages
	// (HTML, XML, Clearsilver templates) under internal/embed.
	CategoryMarkup
)

// Syntax flags controlling per-language scanner behavior.
type Flag uint

const (
	FlagNone           Flag = 0
	FlagEOLWarn        Flag = 1 << iota // bare newline in string tolerated; internal/scan does not read this flag and always counts such newlines
	FlagCBackslash                      // C-style backslash escapes in strings
	FlagGoBacktick                      // Go-style raw string literal with backtick
)

// Lang is one entry in a language table. Not every field applies to every
// Category; internal/scan reads only the fields its family needs.
type Lang struct {
	Name     string
	Category Category

	// Matching.
	Suffixes  []string // file extensions, leading dot, e.g. ".c"
	Basenames []string // exact basenames, e.g. "Makefile"

	// CategoryCFamily / shared comment syntax.
	CommentLeader  string // block comment opener, e.g. "/*"
	CommentTrailer string // block comment closer, e.g. "*/"
	EOLComment     string // winged comment leader, e.g. "//" or "#" or ";"
	MultiString    string // alternate multi-line string delimiter, e.g. Go's "`"
	Flags          Flag
	Terminator     string // statement terminator, e.g. ";"; not read by internal/scan (LLOC totals count code lines)

	// CategoryPascalLike.
	BraceComments bool // also treat { ... } as a block comment

	// CategoryFortranLike.
	CommentRE   *regexp.Regexp // line matches this ...
	NotCommentRE *regexp.Regexp // ... and not this => comment

	// Verifier disambiguates an extension match against file content.
	// Receives the full buffer. A nil Verifier always passes.
	Verifier func(buf []byte) bool

	// Hashbang is a substring to look for in a "#!" first line, for
	// scripting languages recognized without a distinctive extension.
	Hashbang string
}

// Table is the registry: every known language, in priority order. Built in
// tables.go's init().
var Table []Lang

// ByName finds a language's definition in Table, or reports ok=false.
func ByName(name string) (Lang, bool) {
	for _, l := range Table {
		if l.Name == name {
			return l, true
		}
	}
	return Lang{}, false
}
