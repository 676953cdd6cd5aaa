package buffer

import (
	"sync"

	"github.com/dshills/quill/internal/engine/rope"
)

// Buffer wraps a Rope with line-oriented editor functionality.
// All methods are safe for concurrent use.
type Buffer struct {
	mu       sync.RWMutex
	rope     rope.Rope
	revision uint64
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{rope: rope.New()}
}

// NewBufferFromString creates a buffer holding text as-is.
func NewBufferFromString(text string) *Buffer {
	return &Buffer{rope: rope.FromString(text)}
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// LenChars returns the number of characters in the buffer.
func (b *Buffer) LenChars() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LenChars()
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.LenChars() == 0
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineCount()
}

// Revision returns a counter bumped by every applied edit.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineStart returns the character index where line begins.
func (b *Buffer) LineStart(line int) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, err := b.rope.LineToChar(line)
	return start, err == nil
}

// LineLen returns the number of characters on line, excluding any
// trailing '\n' or '\r'. Lines outside the buffer have length 0.
func (b *Buffer) LineLen(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end, ok := b.lineBounds(line)
	if !ok {
		return 0
	}
	return end - start
}

// BreakLen returns the number of terminator characters ending line.
// The last line has none.
func (b *Buffer) BreakLen(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, end, ok := b.lineBounds(line)
	if !ok {
		return 0
	}
	next, err := b.rope.LineToChar(line + 1)
	if err != nil {
		return b.rope.LenChars() - end
	}
	return next - end
}

// LineText returns the text of line without its terminator.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end, ok := b.lineBounds(line)
	if !ok {
		return ""
	}
	s, _ := b.rope.Slice(start, end)
	return s
}

// LineRunes returns the characters of line without its terminator.
func (b *Buffer) LineRunes(line int) []rune {
	return []rune(b.LineText(line))
}

// CharAt returns the character at index i.
func (b *Buffer) CharAt(i int) (rune, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, err := b.rope.CharAt(i)
	return r, err == nil
}

// CharToLine returns the line containing character index i.
func (b *Buffer) CharToLine(i int) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	line, err := b.rope.CharToLine(i)
	return line, err == nil
}

// Insert inserts text at character index. It reports false and leaves
// the buffer untouched when index is out of range.
func (b *Buffer) Insert(index int, text string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, err := b.rope.Insert(index, text)
	if err != nil {
		return false
	}
	if text != "" {
		b.rope = r
		b.revision++
	}
	return true
}

// Delete removes the characters in [start, end). It reports false and
// leaves the buffer untouched when the range is invalid.
func (b *Buffer) Delete(start, end int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, err := b.rope.Delete(start, end)
	if err != nil {
		return false
	}
	if start != end {
		b.rope = r
		b.revision++
	}
	return true
}

// lineBounds returns the character range of line with trailing '\n' and
// '\r' characters excluded. Callers must hold the lock.
func (b *Buffer) lineBounds(line int) (start, end int, ok bool) {
	start, err := b.rope.LineToChar(line)
	if err != nil {
		return 0, 0, false
	}
	end, err = b.rope.LineToChar(line + 1)
	if err != nil {
		end = b.rope.LenChars()
	}
	for end > start {
		c, _ := b.rope.CharAt(end - 1)
		if c != '\n' && c != '\r' {
			break
		}
		end--
	}
	return start, end, true
}
