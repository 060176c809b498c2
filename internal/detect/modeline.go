package detect

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/polyloc/polyloc/internal/langdef"
)

// reModeline matches an Emacs file-local variable mode-line, e.g.
// "-*- mode: Python; coding: utf-8 -*-" or the shorthand "-*- C++ -*-".
var reModeline = regexp.MustCompile(`-\*-\s*(?:([^:;]+?)\s*-\*-|.*?\bmode\s*:\s*([A-Za-z0-9_+#-]+).*?-\*-)`)

// modeAliases maps an Emacs mode name (lowercased) to a langdef.Table name,
// for the handful of modes whose spelling diverges from ours.
var modeAliases = map[string]string{
	"c++":          "cpp",
	"c":            "c",
	"objc":         "objective-c",
	"emacs-lisp":   "elisp",
	"lisp":         "lisp",
	"shell-script": "shell",
	"sh":           "shell",
	"perl":         "perl",
	"python":       "python",
	"ruby":         "ruby",
	"makefile":     "makefile",
	"tcl":          "tcl",
	"awk":          "awk",
	"fortran":      "fortran",
	"f90":          "fortran90",
	"pascal":       "pascal",
}

// modeline scans the first few lines of buf for an Emacs mode-line comment
// and, if found and recognized, returns the language name it names.
func modeline(buf []byte) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(buf))
	sc.Buffer(make([]byte, 0, 4096), 4096)
	for i := 0; i < 3 && sc.Scan(); i++ {
		line := sc.Text()
		m := reModeline.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		name := strings.ToLower(strings.TrimSpace(raw))
		if alias, ok := modeAliases[name]; ok {
			return alias, true
		}
		if _, ok := langdef.ByName(name); ok {
			return name, true
		}
	}
	return "", false
}
