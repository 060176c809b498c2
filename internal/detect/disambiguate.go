package detect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/polyloc/polyloc/internal/langdef"
	"github.com/polyloc/polyloc/internal/sibling"
)

// disambiguator resolves a multi-candidate extension to exactly one
// language name, given the file's path, content, and (if known) its
// directory's sibling snapshot. Registered per contested extension in
// disambiguators.
type disambiguator func(path string, buf []byte, sib *sibling.Snapshot) string

// disambiguators holds the content-scoring dispatch table for every
// extension that more than one Table entry claims, in the same style as
// langdef's own Verifier functions: score the content, don't just trust
// the extension.
var disambiguators = map[string]disambiguator{
	".h":    dotH,
	".m":    dotM,
	".b":    dotB,
	".bas":  dotBas,
	".bi":   dotBi,
	".cs":   dotCS,
	".aspx": dotAspx,
	".ascx": dotAspx,
}

// dotH resolves c, cpp, objective-c and pike, all of which claim ".h". A
// same-stem sibling ".m" file is the strongest signal (an Objective-C
// header almost always sits next to its implementation file); absent that,
// objective-c and pike are scored from content before falling back to a
// cpp-vs-c include/keyword scan.
func dotH(path string, buf []byte, sib *sibling.Snapshot) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if sib != nil && sib.Contains(stem+".m") {
		return "objective-c"
	}
	if langdef.CountMatches(buf, langdef.ReObjCInterface) > 1 {
		return "objective-c"
	}
	if sib != nil && sib.ContainsPikeOrPmod() && langdef.RePikeKeyword.Match(buf) {
		return "pike"
	}
	if langdef.CountMatchingLines(buf, langdef.ReCppInclude) > 0 || langdef.ReCppTemplate.Match(buf) {
		return "cpp"
	}
	return "c"
}

// dotM resolves Objective-C, MATLAB, Octave and Limbo, all of which claim
// ".m". Objective-C's @interface/@end is essentially unambiguous; absent
// that, Limbo's module-declaration grammar and Octave's endfunction/#-style
// keywords are checked before falling back to MATLAB as the common case.
func dotM(path string, buf []byte, sib *sibling.Snapshot) string {
	if langdef.ReObjCInterface.Match(buf) {
		return "objective-c"
	}
	if langdef.ReLimboSig.Match(buf) {
		return "limbo"
	}
	if langdef.CountMatchingLines(buf, langdef.ReOctaveOnly) > 0 {
		return "octave"
	}
	if sib != nil && sib.ContainsM() && bytes.Contains(buf, []byte("classdef")) {
		return "matlab"
	}
	return "matlab"
}

// dotB resolves Limbo, classic line-numbered BASIC and structured BASIC,
// all of which claim ".b".
func dotB(path string, buf []byte, sib *sibling.Snapshot) string {
	if langdef.ReLimboSig.Match(buf) {
		return "limbo"
	}
	if langdef.CountMatchingLines(buf, langdef.ReClassicBasic) > 0 {
		return "classic-basic"
	}
	return "structured-basic"
}

// dotBas resolves classic BASIC, Visual Basic and structured BASIC for
// ".bas". Classic-BASIC line numbers take precedence; only when that test
// fails does a sibling Visual Basic marker (".vb"/".vba"/".vbs"/".frm"/
// ".frx") tip the result to visualbasic.
func dotBas(path string, buf []byte, sib *sibling.Snapshot) string {
	if langdef.CountMatchingLines(buf, langdef.ReClassicBasic) > 0 {
		return "classic-basic"
	}
	if sib != nil && sib.ContainsVB() {
		return "visualbasic"
	}
	return "structured-basic"
}

// dotBi resolves classic BASIC and structured BASIC for ".bi", using the
// same line-number heuristic as ".bas" but with no Visual Basic sibling
// check: a ".bi" include file is never itself a Visual Basic source.
func dotBi(path string, buf []byte, sib *sibling.Snapshot) string {
	if langdef.CountMatchingLines(buf, langdef.ReClassicBasic) > 0 {
		return "classic-basic"
	}
	return "structured-basic"
}

// dotCS resolves C# source from Clearsilver template files, both of which
// claim ".cs". Clearsilver's "<?cs" directive marker is distinctive.
func dotCS(path string, buf []byte, sib *sibling.Snapshot) string {
	if bytes.Contains(buf, []byte("<?cs")) {
		return "clearsilver-template"
	}
	return "csharp"
}

// dotAspx resolves the code-behind language of an ASPX/ASCX page from its
// "Language=" page directive attribute. cs-aspx is the default: a page
// with no directive at all, the common case, is C#.
func dotAspx(path string, buf []byte, sib *sibling.Snapshot) string {
	lower := bytes.ToLower(buf)
	if bytes.Contains(lower, []byte(`language="vb"`)) {
		return "vb-aspx"
	}
	return "cs-aspx"
}
