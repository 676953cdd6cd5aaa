package buffer

import "strings"

// NormalizeLineEndings converts every line break in s to '\n'.
//
// A CRLF pair, a bare CR and a bare LF each count as one break, so "\r\r"
// and "\n\n" both produce two breaks while "\r\n" produces one. Text that
// already uses only '\n' is returned unchanged.
func NormalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\r' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('\n')
		if i+1 < len(s) && s[i+1] == '\n' {
			i++
		}
	}
	return b.String()
}
