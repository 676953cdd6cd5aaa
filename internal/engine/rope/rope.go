package rope

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Errors returned by rope operations.
var (
	// ErrOutOfRange indicates a character or line index outside the rope.
	ErrOutOfRange = errors.New("rope: index out of range")

	// ErrInvalidRange indicates a range whose start is after its end.
	ErrInvalidRange = errors.New("rope: invalid range")
)

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode(nil)}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return Rope{root: buildFromChunks(splitIntoChunks(sanitize(s)))}
}

// buildFromChunks builds a balanced tree bottom-up.
func buildFromChunks(chunks []Chunk) *Node {
	var nodes []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		nodes = append(nodes, newLeafNode(append([]Chunk(nil), chunks[i:end]...)))
	}
	if len(nodes) == 1 {
		return nodes[0]
	}
	return trim(fromChildren(nodes))
}

// sanitize replaces invalid UTF-8 so that character counts stay additive.
func sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

func (r Rope) node() *Node {
	if r.root == nil {
		return newLeafNode(nil)
	}
	return r.root
}

// LenChars returns the number of characters in the rope.
func (r Rope) LenChars() int {
	return r.node().summary.Chars
}

// LenBytes returns the UTF-8 byte length of the rope.
func (r Rope) LenBytes() int {
	return r.node().summary.Bytes
}

// LineCount returns the number of lines, which is one more than the
// number of newline characters.
func (r Rope) LineCount() int {
	return r.node().summary.Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.LenChars() == 0
}

// Summary returns the aggregated metrics for the whole rope.
func (r Rope) Summary() TextSummary {
	return r.node().summary
}

// Height returns the height of the tree. An empty or single-leaf rope has
// height 0.
func (r Rope) Height() int {
	return int(r.node().height)
}

// String returns the full text of the rope.
func (r Rope) String() string {
	var b strings.Builder
	b.Grow(r.LenBytes())
	appendRange(&b, r.node(), 0, r.LenChars())
	return b.String()
}

// Slice returns the text in the character range [start, end).
func (r Rope) Slice(start, end int) (string, error) {
	if err := r.checkRange(start, end); err != nil {
		return "", err
	}
	var b strings.Builder
	appendRange(&b, r.node(), start, end)
	return b.String(), nil
}

// CharAt returns the character at index i.
func (r Rope) CharAt(i int) (rune, error) {
	if i < 0 || i >= r.LenChars() {
		return 0, ErrOutOfRange
	}
	return charAt(r.node(), i), nil
}

// LineToChar returns the character index where line begins.
func (r Rope) LineToChar(line int) (int, error) {
	if line < 0 || line >= r.LineCount() {
		return 0, ErrOutOfRange
	}
	if line == 0 {
		return 0, nil
	}
	return newlineIndex(r.node(), line) + 1, nil
}

// CharToLine returns the line containing character index i. The index
// equal to LenChars is valid and maps to the last line.
func (r Rope) CharToLine(i int) (int, error) {
	if i < 0 || i > r.LenChars() {
		return 0, ErrOutOfRange
	}
	return newlinesBefore(r.node(), i), nil
}

// Insert inserts text at character index i.
func (r Rope) Insert(i int, text string) (Rope, error) {
	if i < 0 || i > r.LenChars() {
		return r, ErrOutOfRange
	}
	if len(text) == 0 {
		return r, nil
	}
	left, right := splitNode(r.node(), i)
	middle := FromString(text).node()
	root := joinNodes(joinNodes(left, middle), right)
	return Rope{root: trim(root)}, nil
}

// Delete removes the characters in [start, end).
func (r Rope) Delete(start, end int) (Rope, error) {
	if err := r.checkRange(start, end); err != nil {
		return r, err
	}
	if start == end {
		return r, nil
	}
	left, rest := splitNode(r.node(), start)
	_, right := splitNode(rest, end-start)
	return Rope{root: trim(joinNodes(left, right))}, nil
}

// Split splits the rope at character index i.
func (r Rope) Split(i int) (Rope, Rope, error) {
	if i < 0 || i > r.LenChars() {
		return r, New(), ErrOutOfRange
	}
	left, right := splitNode(r.node(), i)
	return Rope{root: trim(left)}, Rope{root: trim(right)}, nil
}

// Concat returns the concatenation of r and other.
func (r Rope) Concat(other Rope) Rope {
	return Rope{root: trim(joinNodes(r.node(), other.node()))}
}

func (r Rope) checkRange(start, end int) error {
	if start > end {
		return ErrInvalidRange
	}
	if start < 0 || end > r.LenChars() {
		return ErrOutOfRange
	}
	return nil
}
