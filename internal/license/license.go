// Package license recognizes a short list of common open-source license
// header SPDX identifiers from a file's leading comment block. It is a
// deliberately scaled-down cousin of google/licenseclassifier's
// commentparser: rather than that package's full comment lexer plus
// corpus-matching classifier, this only needs a yes/no signature match
// against a handful of known headers, so it works directly off the
// entity-mode comment Spans internal/scan already produces instead of
// re-lexing comments itself.
package license

import (
	"bytes"
	"regexp"
)

// Signature pairs an SPDX identifier with a regexp that matches its
// customary header phrasing.
type Signature struct {
	SPDX string
	Re   *regexp.Regexp
}

// Signatures is the ordered list of recognized headers, checked in order
// so a more specific phrasing (e.g. "GPL-3.0" text) is tried before a
// looser one that could also match it.
var Signatures = []Signature{
	{SPDX: "Apache-2.0", Re: regexp.MustCompile(`(?i)apache license,?\s+version 2\.0`)},
	{SPDX: "MPL-2.0", Re: regexp.MustCompile(`(?i)mozilla public license,?\s+v(ersion)?\.?\s*2\.0`)},
	{SPDX: "GPL-3.0", Re: regexp.MustCompile(`(?i)gnu general public license\b.*version 3|gplv3`)},
	{SPDX: "GPL-2.0", Re: regexp.MustCompile(`(?i)gnu general public license\b.*version 2|gplv2`)},
	{SPDX: "LGPL-2.1", Re: regexp.MustCompile(`(?i)gnu lesser general public license\b.*version 2\.1`)},
	{SPDX: "BSD-3-Clause", Re: regexp.MustCompile(`(?i)neither the name of|names of its contributors`)},
	{SPDX: "BSD-2-Clause", Re: regexp.MustCompile(`(?i)redistribution and use in source and binary forms`)},
	{SPDX: "MIT", Re: regexp.MustCompile(`(?i)permission is hereby granted, free of charge`)},
}

// Sniff searches headerText (conventionally the text of a file's leading
// comment block, as extracted by a comment-mode scan) for a recognized
// signature and returns its SPDX identifier, or ok=false if none match.
func Sniff(headerText []byte) (string, bool) {
	for _, s := range Signatures {
		if s.Re.Match(headerText) {
			return s.SPDX, true
		}
	}
	return "", false
}

// LeadingCommentText concatenates the text of comment spans that start
// within the first headerWindow bytes of a file, which is normally enough
// to cover a license header block without scanning the whole file.
func LeadingCommentText(buf []byte, commentSpans [][2]int, headerWindow int) []byte {
	var out bytes.Buffer
	for _, sp := range commentSpans {
		start, end := sp[0], sp[1]
		if start >= headerWindow {
			break
		}
		if end > len(buf) {
			end = len(buf)
		}
		out.Write(buf[start:end])
		out.WriteByte('\n')
	}
	return out.Bytes()
}
