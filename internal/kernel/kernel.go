// Package kernel implements ScannerKernel, the runtime shared by every
// per-language scanner in internal/scan. It owns the buffer cursor, the
// current line's tentative classification flags, and the primitive actions
// (mark-code, mark-comment, emit-newline, ...) that grammars invoke so that
// line-accounting semantics are identical across every supported language.
//
// The control-flow shape (a function that scans one state and returns the
// next state to run) follows the state-function lexer pattern used by
// go.followtheprocess.codes/zap's internal/syntax/scanner; the primitive
// actions themselves (mark-code, mark-comment, emit-newline, emit-final)
// generalize the per-character state machine every family scanner builds on.
package kernel

// Kind is an entity kind recognized by a scanner in entity mode.
type Kind int

const (
	KindSpace Kind = iota
	KindAny
	KindComment
	KindString
	KindNumber
	KindKeyword
	KindIdentifier
	KindOperator
	KindPreproc
	KindEscapedNewline
	KindNewline

	// KindInternalNewline is a pseudo-kind naming a newline inside a
	// multi-line entity (string, block comment). No scanner emits it as an
	// entity; such newlines are handled by EmitInternalNewline.
	KindInternalNewline

	// KindCheckBlankEntry is a pseudo-kind naming the blank-entry boundary
	// of an embedded region. No scanner emits it: internal/embed applies
	// the blank-entry rule by choosing where the host and guest regions
	// split.
	KindCheckBlankEntry
)

// LineKind classifies a line event.
type LineKind int

const (
	LineCode LineKind = iota
	LineComment
	LineBlank
)

// Span is an entity span emitted in entity mode: (language, kind, [start,end)).
type Span struct {
	Lang  string
	Kind  Kind
	Start int
	End   int
}

// LineEvent is a line classification emitted in count mode: (language, kind,
// [start,end)), where the range covers the full line including its
// terminating newline, or runs to end-of-buffer for a final unterminated
// line.
type LineEvent struct {
	Lang  string
	Kind  LineKind
	Start int
	End   int
}

// Sink receives classification events as a scanner walks a buffer. A scan
// produces events in strict byte-offset order (§5 Ordering).
type Sink interface {
	Line(ev LineEvent)
	Entity(sp Span)
}

// Mode selects which primitive actions a scan is allowed to invoke: count
// mode emits LineEvents via mark-*/emit-*-newline, entity mode emits Spans
// via emit-entity only (§4.1 Mode selection).
type Mode int

const (
	ModeCount Mode = iota
	ModeEntity
)

// Kernel is one scan's mutable state: buffer pointers, the current line's
// tentative classification flags, and the entity cursor (§4.1 State
// variables). A Kernel is used for exactly one scan of one buffer and is
// never shared across goroutines.
type Kernel struct {
	Buf  []byte
	P    int // current position
	PE   int // logical end of input (== len(Buf) unless truncated by a fault)
	TS   int // start of the currently matched token
	TE   int // end of the currently matched token

	Lang string
	Mode Mode
	Sink Sink

	lineStart        int
	lineContainsCode bool
	wholeLineComment bool
}

// New constructs a Kernel ready to scan buf as language lang in the given
// mode, delivering events to sink.
func New(lang string, buf []byte, mode Mode, sink Sink) *Kernel {
	return &Kernel{
		Buf:  buf,
		P:    0,
		PE:   len(buf),
		Lang: lang,
		Mode: mode,
		Sink: sink,
	}
}

// AtEOF reports whether the cursor has reached the logical end of input.
func (k *Kernel) AtEOF() bool { return k.P >= k.PE }

// Peek returns the byte at the cursor without advancing it, or 0 at EOF.
func (k *Kernel) Peek() byte {
	if k.AtEOF() {
		return 0
	}
	return k.Buf[k.P]
}

// PeekAt returns the byte offset bytes ahead of the cursor, or 0 past EOF.
func (k *Kernel) PeekAt(offset int) byte {
	p := k.P + offset
	if p < 0 || p >= k.PE {
		return 0
	}
	return k.Buf[p]
}

// Next consumes and returns the byte at the cursor, advancing it by one.
// Returns 0, false at EOF.
func (k *Kernel) Next() (byte, bool) {
	if k.AtEOF() {
		return 0, false
	}
	c := k.Buf[k.P]
	k.P++
	return c, true
}

// HasPrefixAt reports whether buf[k.P:] begins with s.
func (k *Kernel) HasPrefixAt(s string) bool {
	end := k.P + len(s)
	if end > len(k.Buf) {
		return false
	}
	return string(k.Buf[k.P:end]) == s
}

// MarkCode sets line-contains-code. Idempotent within a line.
func (k *Kernel) MarkCode() {
	k.lineContainsCode = true
}

// MarkComment sets whole-line-comment unless the line already contains code.
// Never downgrades a code line to comment (§4.1 mark-comment).
func (k *Kernel) MarkComment() {
	if !k.lineContainsCode {
		k.wholeLineComment = true
	}
}

// MarkLineStart sets line-start to the current position if neither flag is
// set yet (§4.1 mark-line-start).
func (k *Kernel) MarkLineStart() {
	if !k.lineContainsCode && !k.wholeLineComment {
		k.lineStart = k.P
	}
}

func (k *Kernel) classify() LineKind {
	switch {
	case k.lineContainsCode:
		return LineCode
	case k.wholeLineComment:
		return LineComment
	default:
		return LineBlank
	}
}

func (k *Kernel) clearFlags() {
	k.lineContainsCode = false
	k.wholeLineComment = false
}

// EmitNewline emits a line event covering [lineStart, te), classifying it
// code > comment > blank, then clears the flags and advances lineStart to
// te (§4.1 emit-newline). No-op in entity mode.
func (k *Kernel) EmitNewline(te int) {
	if k.Mode != ModeCount {
		return
	}
	k.Sink.Line(LineEvent{Lang: k.Lang, Kind: k.classify(), Start: k.lineStart, End: te})
	k.clearFlags()
	k.lineStart = te
}

// EmitInternalNewline emits the same line event as EmitNewline for a
// newline crossed inside a multi-line token, then resets the flags so the
// enclosing token must re-mark the line on any subsequent non-whitespace
// byte, and sets lineStart to the current position (§4.1 emit-internal-newline).
func (k *Kernel) EmitInternalNewline(te int) {
	if k.Mode != ModeCount {
		return
	}
	k.Sink.Line(LineEvent{Lang: k.Lang, Kind: k.classify(), Start: k.lineStart, End: te})
	k.clearFlags()
	k.lineStart = k.P
}

// EmitFinal emits a last line event for [lineStart, pe) if any flag is set
// and the buffer did not end with a newline (§4.1 emit-final).
func (k *Kernel) EmitFinal(pe int) {
	if k.Mode != ModeCount {
		return
	}
	if k.lineContainsCode || k.wholeLineComment {
		k.Sink.Line(LineEvent{Lang: k.Lang, Kind: k.classify(), Start: k.lineStart, End: pe})
	}
	k.clearFlags()
	k.lineStart = pe
}

// EmitEntity emits an entity span unconditionally; valid in either mode but
// only meaningful in entity mode (§4.1 emit-entity).
func (k *Kernel) EmitEntity(kind Kind, ts, te int) {
	if k.Mode != ModeEntity {
		return
	}
	k.Sink.Entity(Span{Lang: k.Lang, Kind: kind, Start: ts, End: te})
}

// LineStart returns the current tentative line-start offset.
func (k *Kernel) LineStart() int { return k.lineStart }

// SetLineStart forcibly repositions lineStart.
func (k *Kernel) SetLineStart(pos int) { k.lineStart = pos }

// Flags returns the current (lineContainsCode, wholeLineComment) pair, so
// a caller can inspect or snapshot the line state.
func (k *Kernel) Flags() (code, comment bool) {
	return k.lineContainsCode, k.wholeLineComment
}

// SetFlags restores a previously snapshotted flag pair.
func (k *Kernel) SetFlags(code, comment bool) {
	k.lineContainsCode = code
	k.wholeLineComment = comment
}

// IsSpace reports whether c is an 8-bit whitespace byte recognized by every
// scanner (space, tab, CR, LF, form-feed). Bytes are processed as 8-bit;
// there is no Unicode normalization.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'
}
