package rope

import (
	"strings"
	"unicode/utf8"
)

// TextSummary holds aggregated metrics for a text span.
// Summaries form a monoid under Add with the zero value as identity.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the number of Unicode code points.
	Chars int

	// Lines is the number of '\n' characters.
	Lines int
}

// ComputeSummary computes the summary for a string.
func ComputeSummary(s string) TextSummary {
	return TextSummary{
		Bytes: len(s),
		Chars: utf8.RuneCountInString(s),
		Lines: strings.Count(s, "\n"),
	}
}

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
	}
}

// IsEmpty returns true if the summary describes no text.
func (s TextSummary) IsEmpty() bool {
	return s.Chars == 0
}

// charToByte converts a character index within s to a byte offset.
// Indices past the end map to len(s).
func charToByte(s string, char int) int {
	if char <= 0 {
		return 0
	}
	offset := 0
	for i := 0; i < char && offset < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return offset
}
