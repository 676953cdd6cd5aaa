package cursor

import "fmt"

// Position is a cursor location. Line and Col are both 0-indexed and
// counted in characters.
type Position struct {
	Line int
	Col  int
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Line, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Col < other.Col:
		return -1
	case p.Col > other.Col:
		return 1
	}
	return 0
}
