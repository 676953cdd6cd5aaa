// Package rope provides an immutable, character-indexed rope for text storage.
//
// A rope is a balanced B+ tree whose leaves hold bounded UTF-8 chunks and
// whose internal nodes cache aggregated metrics (bytes, characters and
// newlines). Positions are counted in characters (Unicode code points), so
// callers never deal with byte offsets.
//
// Key features:
//   - O(log n) insertion, deletion and access by character or line
//   - Immutable operations return new ropes; originals are never modified
//   - All leaves sit at the same depth; joins descend the taller tree's edge
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r, _ = r.Insert(5, ",")   // "hello, world"
//	r, _ = r.Delete(0, 7)     // "world"
//	text := r.String()        // "world"
//
// Invalid UTF-8 is replaced with U+FFFD on the way in, which keeps
// character counts additive across chunk boundaries.
package rope
