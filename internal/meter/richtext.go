package meter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sumant1122/perftop/internal/theme"
)

type Segment struct {
	Role theme.Role
	Text string
}

// RichText is display text split into role-tagged segments.
type RichText struct {
	Segments []Segment
}

func (t *RichText) Append(role theme.Role, s string) {
	t.Segments = append(t.Segments, Segment{Role: role, Text: s})
}

func (t *RichText) Appendf(role theme.Role, format string, args ...any) {
	t.Append(role, fmt.Sprintf(format, args...))
}

func (t *RichText) String() string {
	var b strings.Builder
	for _, seg := range t.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

func (t *RichText) Len() int {
	n := 0
	for _, seg := range t.Segments {
		n += utf8.RuneCountInString(seg.Text)
	}
	return n
}

// print writes the segments at x, y, stopping after w cells.
func (t *RichText) print(s Surface, x, y, w int) int {
	written := 0
	for _, seg := range t.Segments {
		if written >= w {
			break
		}
		written += s.PutN(x+written, y, seg.Role, seg.Text, w-written)
	}
	return written
}
