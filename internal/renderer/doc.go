// Package renderer provides the display layer for the quill editor.
//
// The renderer is responsible for:
//   - Drawing the visible slice of each document line into a backend
//   - Showing whitespace and indentation structure
//   - Placing the terminal cursor
//
// Indentation presentation: every space renders as a middle dot. Inside a
// line's leading run of spaces a guide glyph marks each tab stop and the
// cell background is banded by indent depth, cycling through a palette.
// Line terminators are never drawn. Depth is taken from absolute columns,
// so scrolling sideways does not shift the bands.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.SetBuffer(doc)
//	r.SetViewport(view)
//	r.SetCursorProvider(controller)
//	r.Render()
package renderer
