package langdef

import (
	"bufio"
	"bytes"
	"regexp"
)

// CountMatchingLines counts how many lines of buf match re. Exported for
// internal/detect's content-scoring disambiguators.
func CountMatchingLines(buf []byte, re *regexp.Regexp) int {
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(buf))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if re.Match(sc.Bytes()) {
			n++
		}
	}
	return n
}

// CountMatches counts non-overlapping occurrences of re anywhere in buf,
// not line by line. Exported for internal/detect's content-scoring
// disambiguators that score the whole buffer rather than per-line hits.
func CountMatches(buf []byte, re *regexp.Regexp) int {
	return len(re.FindAll(buf, -1))
}

func hasAnyLine(buf []byte, res ...*regexp.Regexp) bool {
	sc := bufio.NewScanner(bytes.NewReader(buf))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		for _, re := range res {
			if re.Match(sc.Bytes()) {
				return true
			}
		}
	}
	return false
}

// Regexes shared between a Lang's Verifier and internal/detect's
// content-scoring disambiguators, so both consult exactly one definition of
// "looks like objective-c" etc.
var (
	ReObjCInterface = regexp.MustCompile(`@interface|@end`)
	ReCppTemplate   = regexp.MustCompile(`\b(template|typename|class|namespace)\b`)
	ReCppInclude    = regexp.MustCompile(`^\s*#\s*include\s*[<"](iostream|sstream|fstream|vector|map|set|algorithm|memory|string|thread|mutex|chrono|functional|type_traits)[>"]`)
	RePikeKeyword   = regexp.MustCompile(`\b(inherit|import|constant|mapping|multiset)\b`)
	ReOctaveOnly    = regexp.MustCompile(`\b(endfunction|endwhile|end_try_catch|end_unwind_protect)\b|^\s*#`)
	ReClassicBasic  = regexp.MustCompile(`^\d+\s+\w+`)
	ReLimboSig      = regexp.MustCompile(`\bimplement\b|\binclude\s+"[^"]+";|\bpick\b|case\s*\{`)
)

// reallyOctave reports whether buf looks like Octave rather than MATLAB,
// per the .m disambiguator's octave-only keyword scan.
func reallyOctave(buf []byte) bool {
	return hasAnyLine(buf, ReOctaveOnly)
}

// reallySmalltalk requires co-occurrence of ":=", ": [" and "]." before
// yielding smalltalk.
func reallySmalltalk(buf []byte) bool {
	return bytes.Contains(buf, []byte(":=")) && bytes.Contains(buf, []byte(": [")) && bytes.Contains(buf, []byte("]."))
}

// reallyLimbo applies the .b disambiguator's Limbo heuristic.
func reallyLimbo(buf []byte) bool {
	return hasAnyLine(buf, ReLimboSig)
}

func init() {
	Table = []Lang{
		// --- C family, common extensions first. ---
		{Name: "c", Category: CategoryCFamily, Suffixes: []string{".c", ".h"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn | FlagCBackslash, Terminator: ";"},
		{Name: "cpp", Category: CategoryCFamily, Suffixes: []string{".cpp", ".cxx", ".cc", ".hpp", ".hxx", ".h"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn | FlagCBackslash, Terminator: ";"},
		{Name: "objective-c", Category: CategoryCFamily, Suffixes: []string{".m", ".h"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn | FlagCBackslash, Terminator: ";"},
		{Name: "pike", Category: CategoryCFamily, Suffixes: []string{".pike", ".pmod", ".h"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn | FlagCBackslash, Terminator: ";"},
		{Name: "java", Category: CategoryCFamily, Suffixes: []string{".java"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn | FlagCBackslash, Terminator: ";"},
		{Name: "javascript", Category: CategoryCFamily, Suffixes: []string{".js", ".mjs", ".cjs"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn | FlagCBackslash},
		{Name: "typescript", Category: CategoryCFamily, Suffixes: []string{".ts", ".tsx"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn | FlagCBackslash},
		{Name: "csharp", Category: CategoryCFamily, Suffixes: []string{".cs"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn | FlagCBackslash, Terminator: ";"},
		{Name: "go", Category: CategoryCFamily, Suffixes: []string{".go"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			MultiString: "`", Flags: FlagEOLWarn | FlagCBackslash | FlagGoBacktick},
		{Name: "swift", Category: CategoryCFamily, Suffixes: []string{".swift"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//", Flags: FlagEOLWarn},
		{Name: "rust", Category: CategoryCFamily, Suffixes: []string{".rs"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn, Terminator: ";"},
		{Name: "kotlin", Category: CategoryCFamily, Suffixes: []string{".kt", ".kts"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//", Flags: FlagEOLWarn},
		{Name: "dart", Category: CategoryCFamily, Suffixes: []string{".dart"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn, Terminator: ";"},
		{Name: "css", Category: CategoryCFamily, Suffixes: []string{".css"},
			CommentLeader: "/*", CommentTrailer: "*/", Flags: FlagEOLWarn},
		{Name: "sql", Category: CategoryCFamily, Suffixes: []string{".sql"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "--"},
		{Name: "haskell", Category: CategoryCFamily, Suffixes: []string{".hs"},
			CommentLeader: "{-", CommentTrailer: "-}", EOLComment: "--", Flags: FlagEOLWarn},
		{Name: "d", Category: CategoryCFamily, Suffixes: []string{".d"},
			CommentLeader: "/+", CommentTrailer: "+/", EOLComment: "//",
			Flags: FlagEOLWarn, Terminator: ";"},
		{Name: "lua", Category: CategoryCFamily, Suffixes: []string{".lua"},
			CommentLeader: "--[[", CommentTrailer: "]]", EOLComment: "--", Flags: FlagEOLWarn},
		{Name: "verilog", Category: CategoryCFamily, Suffixes: []string{".v", ".vh"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn, Terminator: ";"},
		{Name: "asm", Category: CategoryCFamily, Suffixes: []string{".asm", ".s", ".S"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: ";", Flags: FlagEOLWarn, Terminator: "\n"},

		// --- winged-comment-only languages (CategoryHashLine). ---
		{Name: "ada", Category: CategoryHashLine, Suffixes: []string{".ada", ".adb", ".ads"}, EOLComment: "--", Terminator: ";"},
		{Name: "makefile", Category: CategoryHashLine, Suffixes: []string{".mk"},
			Basenames: []string{"Makefile", "makefile", "GNUmakefile", "Imakefile"}, EOLComment: "#"},
		{Name: "m4", Category: CategoryHashLine, Suffixes: []string{".m4"}, EOLComment: "#"},
		{Name: "lisp", Category: CategoryHashLine, Suffixes: []string{".lisp", ".lsp", ".cl"}, EOLComment: ";"},
		{Name: "scheme", Category: CategoryHashLine, Suffixes: []string{".scm"}, EOLComment: ";"},
		{Name: "elisp", Category: CategoryHashLine, Suffixes: []string{".el"}, EOLComment: ";"},
		{Name: "clojure", Category: CategoryHashLine, Suffixes: []string{".clj", ".cljc", ".cljs"}, EOLComment: ";"},
		{Name: "cobol", Category: CategoryHashLine, Suffixes: []string{".cbl", ".cob", ".CBL", ".COB"}, EOLComment: "*"},
		{Name: "eiffel", Category: CategoryHashLine, Suffixes: []string{".e"}, EOLComment: "--"},
		{Name: "erlang", Category: CategoryHashLine, Suffixes: []string{".erl"}, EOLComment: "%"},
		{Name: "yaml", Category: CategoryHashLine, Suffixes: []string{".yaml", ".yml"}, EOLComment: "#"},
		{Name: "toml", Category: CategoryHashLine, Suffixes: []string{".toml"}, EOLComment: "#"},

		// --- scripting, recognized by extension or hashbang. ---
		{Name: "shell", Category: CategoryHashLine, Suffixes: []string{".sh", ".bash"}, EOLComment: "#", Hashbang: "sh"},
		{Name: "csh", Category: CategoryHashLine, Suffixes: []string{".csh"}, EOLComment: "#", Hashbang: "csh"},
		{Name: "tcl", Category: CategoryHashLine, Suffixes: []string{".tcl"}, EOLComment: "#", Hashbang: "tclsh"},
		{Name: "awk", Category: CategoryHashLine, Suffixes: []string{".awk"}, EOLComment: "#", Hashbang: "awk"},
		{Name: "sed", Category: CategoryHashLine, Suffixes: []string{".sed"}, EOLComment: "#", Hashbang: "sed"},
		{Name: "ruby", Category: CategoryHashLine, Suffixes: []string{".rb"}, EOLComment: "#", Hashbang: "ruby"},

		// --- Python family (CategoryTripleQuoted). ---
		{Name: "python", Category: CategoryTripleQuoted, Suffixes: []string{".py"}, EOLComment: "#", Hashbang: "python"},

		// --- Perl (CategoryPerlLike). ---
		{Name: "perl", Category: CategoryPerlLike, Suffixes: []string{".pl", ".pm", ".ph"}, EOLComment: "#", Hashbang: "perl"},

		// --- .m / .h ambiguity candidates beyond objective-c (content-scored). ---
		{Name: "matlab", Category: CategoryHashLine, Suffixes: []string{".m"}, EOLComment: "%"},
		{Name: "octave", Category: CategoryHashLine, Suffixes: []string{".m"}, EOLComment: "%", Verifier: reallyOctave},
		{Name: "limbo", Category: CategoryHashLine, Suffixes: []string{".m", ".b"}, EOLComment: "#", Verifier: reallyLimbo},

		// --- Pascal-likes. ---
		{Name: "pascal", Category: CategoryPascalLike, Suffixes: []string{".pas", ".p"}, BraceComments: true, Terminator: ";"},
		{Name: "modula3", Category: CategoryPascalLike, Suffixes: []string{".i3", ".m3", ".ig", ".mg"}, BraceComments: false, Terminator: ";"},

		// --- Fortran-likes, column-sensitive comment detection. ---
		{Name: "fortran90", Category: CategoryFortranLike, Suffixes: []string{".f90", ".f95", ".f03"},
			CommentRE:    regexp.MustCompile(`^([ \t]*!|[ \t]*$)`),
			NotCommentRE: regexp.MustCompile(`^[ \t]*![$](hpf|omp)[$]`)},
		{Name: "fortran", Category: CategoryFortranLike, Suffixes: []string{".f77", ".f"},
			CommentRE:    regexp.MustCompile(`^([c*!]|[ \t]+!|[ \t]*$)`),
			NotCommentRE: regexp.MustCompile(`^[c*!](hpf|omp)[$]`)},
		{Name: "fortran-fixed", Category: CategoryFortranLike, Suffixes: []string{".ftn"},
			CommentRE:    regexp.MustCompile(`^[c*Cc]`),
			NotCommentRE: regexp.MustCompile(`^$`)},
		{Name: "fortran-free", Category: CategoryFortranLike, Suffixes: []string{".f08"},
			CommentRE:    regexp.MustCompile(`^[ \t]*!`),
			NotCommentRE: regexp.MustCompile(`^$`)},

		// --- extension-ambiguous languages requiring a disambiguator
		//     (internal/detect dispatches these; Category here only
		//     matters once internal/scan is asked to count them). ---
		{Name: "clearsilver-template", Category: CategoryMarkup, Suffixes: []string{".cs"}},
		{Name: "cs-aspx", Category: CategoryMarkup, Suffixes: []string{".aspx", ".ascx"}},
		{Name: "vb-aspx", Category: CategoryMarkup, Suffixes: []string{".aspx", ".ascx"}},
		{Name: "classic-basic", Category: CategoryHashLine, Suffixes: []string{".bas", ".bi", ".b"}, EOLComment: "'"},
		{Name: "visualbasic", Category: CategoryHashLine, Suffixes: []string{".bas", ".vb", ".vba", ".vbs", ".frm", ".frx"}, EOLComment: "'"},
		{Name: "structured-basic", Category: CategoryHashLine, Suffixes: []string{".bas", ".bi", ".b"}, EOLComment: "'"},
		{Name: "smalltalk", Category: CategoryHashLine, Suffixes: []string{".st"}, EOLComment: `"`, Verifier: reallySmalltalk},

		// --- markup / embedding hosts. ---
		{Name: "html", Category: CategoryMarkup, Suffixes: []string{".html", ".htm"}},
		{Name: "xml", Category: CategoryMarkup, Suffixes: []string{".xml", ".xsl", ".xslt"}},
		{Name: "php", Category: CategoryCFamily, Suffixes: []string{".php", ".php3", ".php4", ".php5", ".phtml"},
			CommentLeader: "/*", CommentTrailer: "*/", EOLComment: "//",
			Flags: FlagEOLWarn | FlagCBackslash, Terminator: ";"},
		{Name: "clearsilver", Category: CategoryHashLine, EOLComment: "#"},
	}
}
