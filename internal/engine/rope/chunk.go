package rope

import "unicode/utf8"

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk represents a bounded string stored in leaf nodes.
// Chunks are immutable once created.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{
		data:    s,
		summary: ComputeSummary(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// SplitAt splits a chunk at a character index, returning two chunks.
func (c Chunk) SplitAt(char int) (Chunk, Chunk) {
	if char <= 0 {
		return Chunk{}, c
	}
	if char >= c.summary.Chars {
		return c, Chunk{}
	}
	offset := charToByte(c.data, char)
	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	var chunks []Chunk
	remaining := s
	for len(remaining) > 0 {
		if len(remaining) <= MaxChunkSize {
			chunks = append(chunks, NewChunk(remaining))
			break
		}
		cut := findBoundary(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:cut]))
		remaining = remaining[cut:]
	}
	return chunks
}

// findBoundary returns a rune boundary at or just after target, preferring
// the position after a nearby newline.
func findBoundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	end := min(target+MinChunkSize/4, len(s))
	for i := target; i < end; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	pos := target
	for pos < len(s) && !utf8.RuneStart(s[pos]) {
		pos++
	}
	return pos
}

// mergeChunks drops empty chunks and coalesces neighbours whose combined
// size stays within MaxChunkSize.
func mergeChunks(chunks []Chunk) []Chunk {
	out := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		if c.IsEmpty() {
			continue
		}
		if n := len(out); n > 0 && len(out[n-1].data)+len(c.data) <= MaxChunkSize {
			out[n-1] = NewChunk(out[n-1].data + c.data)
			continue
		}
		out = append(out, c)
	}
	return out
}
