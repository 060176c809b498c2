package detect

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Prober is the last-resort external collaborator consulted when every
// in-process heuristic (extension, hashbang, mode-line, content scoring)
// fails to name a language. Isolating it behind an interface keeps
// internal/detect's own tests hermetic: tests substitute a stub, only the
// CLI wiring (cmd/polyloc) uses ExecProber for real.
type Prober interface {
	Probe(ctx context.Context, path string) (string, bool)
}

// ExecProber shells out to the system's file(1) utility and maps its MIME
// type guess back to a Table language name. It is a process-boundary
// concern no importable Go library replaces; DESIGN.md records this as
// the module's one deliberate stdlib-only (os/exec) component.
type ExecProber struct {
	// LookPath overrides exec.LookPath, for tests; nil uses the real one.
	LookPath func(file string) (string, error)
}

// mimeToLang maps a subset of file(1)'s --brief --mime-type output to a
// Table language name.
var mimeToLang = map[string]string{
	"text/x-c":            "c",
	"text/x-c++":          "cpp",
	"text/x-python":       "python",
	"text/x-perl":         "perl",
	"text/x-shellscript":  "shell",
	"text/x-ruby":         "ruby",
	"text/x-php":          "php",
	"application/xml":     "xml",
	"text/html":           "html",
	"text/x-fortran":      "fortran",
	"text/x-pascal":       "pascal",
	"text/x-java-source":  "java",
	"text/x-makefile":     "makefile",
	"text/x-msdos-batch":  "shell",
	"text/x-awk":          "awk",
	"text/x-tcl":          "tcl",
	"text/x-lisp":         "lisp",
}

// Probe runs `file --brief --mime-type path` and translates its answer.
// Returns ok=false if file(1) is unavailable, errors, or names a MIME type
// this module does not recognize as a source language.
func (p ExecProber) Probe(ctx context.Context, path string) (string, bool) {
	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	binPath, err := lookPath("file")
	if err != nil {
		return "", false
	}
	out, err := exec.CommandContext(ctx, binPath, "--brief", "--mime-type", path).Output()
	if err != nil {
		return "", false
	}
	mime := strings.TrimSpace(string(out))
	if lang, ok := mimeToLang[mime]; ok {
		return lang, true
	}
	return "", false
}

// NativeProber is the dependency-free fallback: a small magic-number table
// that recognizes common binary container formats so the pipeline can at
// least report "absent" (not a source file) instead of guessing wrong,
// grounded on the byte-signature approach in GileBrowser's MIME sniffer.
type NativeProber struct{}

var binaryMagic = [][]byte{
	{0x7f, 'E', 'L', 'F'},       // ELF executable
	{0x89, 'P', 'N', 'G'},       // PNG
	{'G', 'I', 'F', '8'},        // GIF
	{0xff, 0xd8, 0xff},          // JPEG
	{'P', 'K', 0x03, 0x04},      // ZIP (also jar/docx/...)
	{0x1f, 0x8b},                // gzip
	{'%', 'P', 'D', 'F'},        // PDF
	{0xca, 0xfe, 0xba, 0xbe},    // Java class / Mach-O fat binary
	{'M', 'Z'},                  // DOS/PE executable
}

// Probe never names a source language: it always reports ok=false. The
// binaryMagic table is consulted by the pipeline's binary-rejection stage
// (through looksBinary), not by Probe. Real language naming for files
// without a matched extension is left to ExecProber or the caller.
func (NativeProber) Probe(_ context.Context, path string) (string, bool) {
	return "", false
}

// looksBinary reports whether buf's first bytes match a known binary
// signature, independent of the NUL-byte heuristic in pipeline.go.
func looksBinary(buf []byte) bool {
	for _, sig := range binaryMagic {
		if bytes.HasPrefix(buf, sig) {
			return true
		}
	}
	return false
}
