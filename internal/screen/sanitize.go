package screen

import (
	"regexp"
	"strings"
	"unicode"
)

// CSI and OSC sequences. Text reaching a canvas comes from outside the
// program (hostnames, sampler summaries) and must not move the cursor or
// restyle the terminal behind the palette's back.
var escapeSeq = regexp.MustCompile(`\x1b\[[\d;?]*[@-~]|\x1b\][^\x07\x1b]*(\x07|\x1b\\)?|\x1b.`)

// Sanitize strips escape sequences and control characters from s.
func Sanitize(s string) string {
	if strings.ContainsRune(s, '\x1b') {
		s = escapeSeq.ReplaceAllString(s, "")
	}
	if strings.IndexFunc(s, unicode.IsControl) == -1 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
