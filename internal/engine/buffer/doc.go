// Package buffer provides the editor's document: a character-indexed text
// buffer built on the rope data structure.
//
// The buffer package provides:
//
//   - Bounds-checked insertion and deletion by character index
//   - Line queries whose lengths exclude the line terminator
//   - Line ending normalisation for pasted text
//   - Revision tracking for change detection
//
// Out-of-range edits are rejected before anything is mutated; the edit
// methods report whether they applied instead of returning an error, so
// callers can treat a bad index as a no-op.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(5, ",")
//	buf.Delete(0, 7)
//	n := buf.LineLen(0)
package buffer
