package renderer

import (
	"github.com/dshills/quill/internal/renderer/backend"
	"github.com/dshills/quill/internal/renderer/viewport"
)

// BufferReader provides read access to document lines.
type BufferReader interface {
	// LineRunes returns the characters of a line without its terminator.
	LineRunes(line int) []rune

	// LineCount returns the total number of lines.
	LineCount() int
}

// CursorProvider reports where the terminal cursor belongs.
type CursorProvider interface {
	// ScreenCursor returns the screen cell of the editing cursor.
	ScreenCursor() (x, y int)
}

// Renderer draws a document window into a backend.
type Renderer struct {
	backend backend.Backend
	buf     BufferReader
	view    *viewport.Viewport
	cursor  CursorProvider
	opts    Options
}

// New creates a renderer drawing into b.
func New(b backend.Backend, opts Options) *Renderer {
	return &Renderer{
		backend: b,
		opts:    opts.normalize(),
	}
}

// SetBuffer sets the document to render.
func (r *Renderer) SetBuffer(buf BufferReader) {
	r.buf = buf
}

// SetViewport sets the window onto the document.
func (r *Renderer) SetViewport(v *viewport.Viewport) {
	r.view = v
}

// SetCursorProvider sets the source of the terminal cursor position.
// Without one the cursor is hidden.
func (r *Renderer) SetCursorProvider(c CursorProvider) {
	r.cursor = c
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return r.opts
}

// SetOptions replaces the renderer options.
func (r *Renderer) SetOptions(opts Options) {
	r.opts = opts.normalize()
}

// Render draws one complete frame and presents it.
func (r *Renderer) Render() {
	r.backend.Clear()

	if r.buf != nil && r.view != nil {
		top := r.view.TopLine()
		left := r.view.LeftColumn()
		last := min(top+r.view.Height(), r.buf.LineCount())

		for line := top; line < last; line++ {
			r.drawLine(line-top, left, r.buf.LineRunes(line))
		}
	}

	if r.cursor != nil {
		r.backend.ShowCursor(r.cursor.ScreenCursor())
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()
}

// drawLine draws the in-window slice of one line at screen row y.
func (r *Renderer) drawLine(y, left int, runes []rune) {
	from, to := r.view.VisibleColumns(len(runes))
	indent := indentEnd(runes)

	for col := from; col < to; col++ {
		r.backend.SetCell(col-left, y, r.cellFor(runes[col], col, indent))
	}
}
