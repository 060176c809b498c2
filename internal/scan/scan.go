// Package scan implements LanguageScanners: one deterministic scan per
// language Category in internal/langdef, each a byte-level state machine
// built on internal/kernel's primitive actions. One function per Category
// (cFamily, hashLine, tripleQuoted, perlLike, pascalLike, fortranLike) emits
// kernel.LineEvent/kernel.Span through a kernel.Sink, so the same function
// serves every language that shares its comment/string grammar.
package scan

import (
	"bufio"
	"bytes"

	"github.com/polyloc/polyloc/internal/kernel"
	"github.com/polyloc/polyloc/internal/langdef"
)

// scan states: normal code, inside a quoted string, inside a multi-line
// string, inside a backtick raw string, inside a comment.
type state int

const (
	stNormal state = iota
	stString
	stMultiString
	stBacktick
	stComment
)

// Scan runs the appropriate family scanner for lang over buf in the given
// mode, delivering events to sink.
func Scan(lang langdef.Lang, buf []byte, mode kernel.Mode, sink kernel.Sink) {
	switch lang.Category {
	case langdef.CategoryCFamily:
		scanCFamily(lang, buf, mode, sink)
	case langdef.CategoryHashLine:
		scanHashLine(lang, buf, mode, sink)
	case langdef.CategoryTripleQuoted:
		scanTripleQuoted(lang, buf, mode, sink)
	case langdef.CategoryPerlLike:
		scanPerlLike(lang, buf, mode, sink)
	case langdef.CategoryPascalLike:
		scanPascalLike(lang, buf, mode, sink)
	case langdef.CategoryFortranLike:
		scanFortranLike(lang, buf, mode, sink)
	default:
		// CategoryMarkup is driven by internal/embed, not directly here.
	}
}

// scanCFamily implements C-family comments and strings: a block comment
// delimited by CommentLeader/CommentTrailer, an optional winged EOLComment,
// double-quoted strings with optional C backslash escapes, single-quoted
// character literals, and an optional Go-style backtick raw string.
func scanCFamily(lang langdef.Lang, buf []byte, mode kernel.Mode, sink kernel.Sink) {
	k := kernel.New(lang.Name, buf, mode, sink)
	st := stNormal

	hasBlock := lang.CommentLeader != "" && lang.CommentTrailer != ""
	hasEOL := lang.EOLComment != ""
	backslash := lang.Flags&langdef.FlagCBackslash != 0
	backtick := lang.Flags&langdef.FlagGoBacktick != 0

	var entStart int
	var commentIsEOL bool
	markEntityStart := func() { entStart = k.P - 1 }

	for !k.AtEOF() {
		c, _ := k.Next()

		switch st {
		case stNormal:
			switch {
			case c == '"':
				k.MarkCode()
				st = stString
				entStart = k.P - 1
			case backslash && c == '\'':
				k.MarkCode()
				consumeCharLiteral(k)
			case backtick && c == '`':
				k.MarkCode()
				st = stBacktick
				entStart = k.P - 1
			case hasBlock && c == lang.CommentLeader[0] && k.HasPrefixAt(lang.CommentLeader[1:]):
				markEntityStart()
				for i := 0; i < len(lang.CommentLeader)-1; i++ {
					k.Next()
				}
				k.MarkComment()
				st = stComment
				commentIsEOL = false
			case hasEOL && c == lang.EOLComment[0] && k.HasPrefixAt(lang.EOLComment[1:]):
				markEntityStart()
				for i := 0; i < len(lang.EOLComment)-1; i++ {
					k.Next()
				}
				k.MarkComment()
				st = stComment
				commentIsEOL = true
			case c == '\n':
				k.EmitNewline(k.P)
			case !kernel.IsSpace(c):
				k.MarkCode()
				k.EmitEntity(kernel.KindAny, k.P-1, k.P)
			}

		case stString:
			if !kernel.IsSpace(c) {
				k.MarkCode()
			}
			switch {
			case c == '"':
				k.EmitEntity(kernel.KindString, entStart, k.P)
				st = stNormal
			case backslash && c == '\\' && (k.Peek() == '"' || k.Peek() == '\\'):
				k.Next()
			case backslash && c == '\\' && k.Peek() == '\n':
				k.Next()
			case c == '\n':
				// Bare newline in string: counted, but the continuation
				// line stays blank until a non-whitespace byte arrives.
				k.EmitInternalNewline(k.P)
			}

		case stBacktick:
			if c == '`' {
				k.EmitEntity(kernel.KindString, entStart, k.P)
				st = stNormal
			} else if c == '\n' {
				k.EmitInternalNewline(k.P)
			} else if !kernel.IsSpace(c) {
				k.MarkCode()
			}

		case stComment:
			if c == '\n' {
				k.EmitEntity(kernel.KindComment, entStart, k.P)
				if commentIsEOL {
					k.EmitNewline(k.P)
					st = stNormal
				} else {
					k.EmitInternalNewline(k.P)
				}
				continue
			}
			if !kernel.IsSpace(c) {
				k.MarkComment()
			}
			if hasBlock && c == lang.CommentTrailer[0] && k.HasPrefixAt(lang.CommentTrailer[1:]) {
				for i := 0; i < len(lang.CommentTrailer)-1; i++ {
					k.Next()
				}
				k.EmitEntity(kernel.KindComment, entStart, k.P)
				st = stNormal
			}
		}
	}
	k.EmitFinal(k.PE)
}

// consumeCharLiteral eats a 'x' or '\x' character literal after the opening
// quote has already been consumed, without a dedicated state.
func consumeCharLiteral(k *kernel.Kernel) {
	c, ok := k.Next()
	if !ok {
		return
	}
	if c == '\\' {
		c, ok = k.Next()
		if !ok {
			return
		}
	}
	for {
		c, ok = k.Next()
		if !ok || c == '\'' || c == '\n' {
			return
		}
	}
}

// scanHashLine implements the generic winged-comment family: a single
// EOLComment leader (possibly more than one byte, e.g. Ada's "--") and no
// block comments. The language's Terminator is not consulted.
func scanHashLine(lang langdef.Lang, buf []byte, mode kernel.Mode, sink kernel.Sink) {
	k := kernel.New(lang.Name, buf, mode, sink)
	leader := lang.EOLComment
	var entStart int

	lineStartPos := 0
	for lineStartPos <= len(buf) {
		nl := bytes.IndexByte(buf[lineStartPos:], '\n')
		var line []byte
		var lineEnd int
		if nl < 0 {
			line = buf[lineStartPos:]
			lineEnd = len(buf)
		} else {
			line = buf[lineStartPos : lineStartPos+nl]
			lineEnd = lineStartPos + nl + 1
		}

		commentAt := -1
		if leader != "" {
			commentAt = bytes.Index(line, []byte(leader))
		}

		trimmed := bytes.TrimRight(line, " \t\r\f")
		codePart := trimmed
		if commentAt >= 0 {
			codePart = bytes.TrimRight(line[:commentAt], " \t\r\f")
		}

		if len(bytes.TrimLeft(codePart, " \t\r\f")) > 0 {
			k.MarkCode()
			if mode == kernel.ModeEntity {
				entStart = lineStartPos + len(line) - len(bytes.TrimLeft(line, " \t\r\f"))
				k.EmitEntity(kernel.KindAny, entStart, lineStartPos+len(codePart))
			}
		} else if commentAt >= 0 {
			k.MarkComment()
		}
		if commentAt >= 0 {
			k.EmitEntity(kernel.KindComment, lineStartPos+commentAt, lineStartPos+len(line))
		}

		if nl < 0 {
			k.EmitFinal(lineEnd)
			break
		}
		k.EmitNewline(lineEnd)
		lineStartPos = lineEnd
		if lineStartPos >= len(buf) {
			break
		}
	}
}

// scanTripleQuoted implements Python-like counting: a '#' winged comment
// plus triple-quoted ''' / """ strings that double as comments when they
// open a line by themselves.
func scanTripleQuoted(lang langdef.Lang, buf []byte, mode kernel.Mode, sink kernel.Sink) {
	k := kernel.New(lang.Name, buf, mode, sink)
	const dq = `"""`
	const sq = `'''`

	inTriple := false
	tripleIsComment := false
	var tripleDelim string
	var entStart int

	sc := bufio.NewScanner(bytes.NewReader(buf))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	pos := 0
	for sc.Scan() {
		raw := sc.Bytes()
		line := append([]byte(nil), raw...)

		if !inTriple {
			if i := bytes.Index(line, []byte("#")); i >= 0 {
				line = line[:i]
			}
			trimmed := bytes.TrimSpace(line)
			var opened bool
			var delim string
			var openAt int
			if di := bytes.Index(line, []byte(dq)); di >= 0 {
				opened, delim, openAt = true, dq, di
			}
			if si := bytes.Index(line, []byte(sq)); si >= 0 && (!opened || si < openAt) {
				opened, delim, openAt = true, sq, si
			}
			if opened {
				closeAt := bytes.Index(line[openAt+len(delim):], []byte(delim))
				if closeAt >= 0 {
					// Closes on the same line: a single-line triple-quoted
					// string, never a comment by itself.
					k.MarkCode()
					k.EmitEntity(kernel.KindString, pos+openAt, pos+openAt+len(delim)+closeAt+len(delim))
				} else {
					inTriple = true
					tripleDelim = delim
					tripleIsComment = len(bytes.TrimLeft(line[:openAt], " \t")) == 0
					entStart = pos + openAt
					if tripleIsComment {
						hasCode, _ := k.Flags()
						if !hasCode {
							k.MarkComment()
						}
					}
				}
			}
			if len(trimmed) > 0 && !(inTriple && tripleIsComment) {
				k.MarkCode()
			}
		} else {
			if bytes.Contains(line, []byte(tripleDelim)) {
				inTriple = false
				if !tripleIsComment {
					k.MarkCode()
				} else if len(bytes.TrimSpace(line)) > 0 {
					k.MarkComment()
				}
				k.EmitEntity(kernel.KindString, entStart, pos+len(line)+len(tripleDelim))
			} else if len(bytes.TrimSpace(line)) > 0 {
				if tripleIsComment {
					k.MarkComment()
				} else {
					k.MarkCode()
				}
			}
		}

		nlPos := pos + len(raw)
		if nlPos < len(buf) && buf[nlPos] == '\n' {
			k.EmitNewline(nlPos + 1)
			pos = nlPos + 1
		} else {
			pos = nlPos
		}
	}
	k.EmitFinal(len(buf))
}

// scanPerlLike implements '#' comments, heredocs counted as code, and POD
// blocks counted as comment: lines from a \s*=command line up to, but not
// including, the closing =cut line, which itself counts as code.
func scanPerlLike(lang langdef.Lang, buf []byte, mode kernel.Mode, sink kernel.Sink) {
	k := kernel.New(lang.Name, buf, mode, sink)
	var heredoc string
	inPod := false

	sc := bufio.NewScanner(bytes.NewReader(buf))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	pos := 0
	for sc.Scan() {
		raw := sc.Bytes()
		line := append([]byte(nil), raw...)
		if i := bytes.IndexByte(line, '#'); i >= 0 && heredoc == "" {
			line = line[:i]
		}
		trimmed := bytes.TrimSpace(line)

		switch {
		case heredoc != "" && bytes.HasPrefix(trimmed, []byte(heredoc)):
			heredoc = ""
		case heredoc == "" && bytes.Contains(line, []byte("<<")):
			i := bytes.Index(line, []byte("<<"))
			heredoc = string(bytes.Trim(line[i+2:], `< \t"';,`))
		case heredoc == "" && bytes.HasPrefix(trimmed, []byte("=cut")):
			inPod = false
		case heredoc == "" && len(trimmed) > 1 && trimmed[0] == '=' && isAlpha(trimmed[1]):
			inPod = true
		}

		if !inPod && len(trimmed) > 0 {
			k.MarkCode()
		} else if inPod && len(trimmed) > 0 {
			k.MarkComment()
		}

		nlPos := pos + len(raw)
		if nlPos < len(buf) && buf[nlPos] == '\n' {
			k.EmitNewline(nlPos + 1)
			pos = nlPos + 1
		} else {
			pos = nlPos
		}
	}
	k.EmitFinal(len(buf))
}

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// scanPascalLike implements (* *) and optional { } block comments. The
// language's Terminator is not consulted.
func scanPascalLike(lang langdef.Lang, buf []byte, mode kernel.Mode, sink kernel.Sink) {
	k := kernel.New(lang.Name, buf, mode, sink)
	inComment := false
	var entStart int

	for !k.AtEOF() {
		c, _ := k.Next()
		if !inComment {
			switch {
			case lang.BraceComments && c == '{':
				inComment = true
				entStart = k.P - 1
				k.MarkComment()
			case c == '(' && k.Peek() == '*':
				k.Next()
				inComment = true
				entStart = k.P - 2
				k.MarkComment()
			case c == '\n':
				k.EmitNewline(k.P)
			case !kernel.IsSpace(c):
				k.MarkCode()
			}
		} else {
			if !kernel.IsSpace(c) {
				k.MarkComment()
			}
			switch {
			case lang.BraceComments && c == '}':
				inComment = false
				k.EmitEntity(kernel.KindComment, entStart, k.P)
			case c == '*' && k.Peek() == ')':
				k.Next()
				inComment = false
				k.EmitEntity(kernel.KindComment, entStart, k.P)
			case c == '\n':
				k.EmitInternalNewline(k.P)
			}
		}
	}
	k.EmitFinal(k.PE)
}

// scanFortranLike implements column-position comment detection via the
// language's CommentRE/NotCommentRE pair.
func scanFortranLike(lang langdef.Lang, buf []byte, mode kernel.Mode, sink kernel.Sink) {
	k := kernel.New(lang.Name, buf, mode, sink)
	sc := bufio.NewScanner(bytes.NewReader(buf))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	pos := 0
	for sc.Scan() {
		raw := sc.Bytes()
		isComment := lang.CommentRE != nil && lang.CommentRE.Match(raw) && !(lang.NotCommentRE != nil && lang.NotCommentRE.Match(raw))
		trimmed := bytes.TrimSpace(raw)
		switch {
		case isComment && len(trimmed) > 0:
			k.MarkComment()
			k.EmitEntity(kernel.KindComment, pos, pos+len(raw))
		case len(trimmed) > 0:
			k.MarkCode()
			k.EmitEntity(kernel.KindAny, pos, pos+len(raw))
		}

		nlPos := pos + len(raw)
		if nlPos < len(buf) && buf[nlPos] == '\n' {
			k.EmitNewline(nlPos + 1)
			pos = nlPos + 1
		} else {
			pos = nlPos
		}
	}
	k.EmitFinal(len(buf))
}
