package cursor

import (
	"io"
	"log/slog"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer/viewport"
)

// DefaultTabWidth is the indentation step used by Tab, Backspace dedent
// and smart Home.
const DefaultTabWidth = 4

// Controller applies cursor and editing intents to a document.
// It is not safe for concurrent use.
type Controller struct {
	doc      *buffer.Buffer
	view     *viewport.Viewport
	logger   *slog.Logger
	tabWidth int

	pos     Position
	desired int
}

// Option configures a Controller.
type Option func(*Controller)

// WithTabWidth sets the indentation step. Values below 1 are ignored.
func WithTabWidth(width int) Option {
	return func(c *Controller) {
		if width > 0 {
			c.tabWidth = width
		}
	}
}

// WithLogger sets the logger used to report rejected edits.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController creates a controller with the cursor at (0, 0).
func NewController(doc *buffer.Buffer, view *viewport.Viewport, opts ...Option) *Controller {
	c := &Controller{
		doc:      doc,
		view:     view,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tabWidth: DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Document returns the document being edited.
func (c *Controller) Document() *buffer.Buffer {
	return c.doc
}

// Viewport returns the viewport the controller keeps in sync.
func (c *Controller) Viewport() *viewport.Viewport {
	return c.view
}

// Position returns the cursor position.
func (c *Controller) Position() Position {
	return c.pos
}

// DesiredCol returns the sticky column used by vertical movement.
func (c *Controller) DesiredCol() int {
	return c.desired
}

// TabWidth returns the current indentation step.
func (c *Controller) TabWidth() int {
	return c.tabWidth
}

// SetTabWidth changes the indentation step. Values below 1 are ignored.
func (c *Controller) SetTabWidth(width int) {
	if width > 0 {
		c.tabWidth = width
	}
}

// ScreenCursor returns the cell the cursor maps to.
func (c *Controller) ScreenCursor() (x, y int) {
	return c.view.ToScreen(c.pos.Line, c.pos.Col)
}

// MoveUp moves one line up, keeping the desired column.
func (c *Controller) MoveUp() {
	if c.pos.Line > 0 {
		c.pos.Line--
	}
	c.pos.Col = min(c.desired, c.doc.LineLen(c.pos.Line))
	c.follow()
}

// MoveDown moves one line down, keeping the desired column.
func (c *Controller) MoveDown() {
	if c.pos.Line < c.lastLine() {
		c.pos.Line++
	}
	c.pos.Col = min(c.desired, c.doc.LineLen(c.pos.Line))
	c.follow()
}

// MoveLeft moves one character left, wrapping to the end of the previous
// line.
func (c *Controller) MoveLeft() {
	switch {
	case c.pos.Col > 0:
		c.pos.Col--
	case c.pos.Line > 0:
		c.pos.Line--
		c.pos.Col = c.doc.LineLen(c.pos.Line)
	}
	c.settle()
}

// MoveRight moves one character right, wrapping to the start of the next
// line when there is one.
func (c *Controller) MoveRight() {
	switch {
	case c.pos.Col < c.doc.LineLen(c.pos.Line):
		c.pos.Col++
	case c.pos.Line < c.lastLine():
		c.pos.Line++
		c.pos.Col = 0
	}
	c.settle()
}

// Home implements smart home. From column 0 it jumps to the first
// non-space character. From inside the leading indentation, or on a line
// without any, it goes to column 0. From anywhere past the indentation it
// returns to the first non-space character.
func (c *Controller) Home() {
	indent := firstNonSpace(c.doc.LineRunes(c.pos.Line))
	switch {
	case c.pos.Col == 0:
		c.pos.Col = max(indent, 0)
	case indent < 0 || c.pos.Col <= indent:
		c.pos.Col = 0
	default:
		c.pos.Col = indent
	}
	c.settle()
}

// DocumentStart moves to (0, 0) and resets both viewport anchors.
func (c *Controller) DocumentStart() {
	c.pos = Position{}
	c.desired = 0
	c.view.SetOrigin(0, 0)
}

// End moves past the last character of the line.
func (c *Controller) End() {
	c.pos.Col = c.doc.LineLen(c.pos.Line)
	c.settle()
}

// DocumentEnd moves past the last character of the document. An empty
// document leaves the cursor at (0, 0).
func (c *Controller) DocumentEnd() {
	if c.doc.IsEmpty() {
		return
	}
	c.pos.Line = c.lastLine()
	c.pos.Col = c.doc.LineLen(c.pos.Line)
	c.settle()
}

// Resize applies new window dimensions, moving the viewport only as far
// as needed to keep the cursor visible.
func (c *Controller) Resize(width, height int) {
	c.view.ResizeFollow(width, height, c.pos.Line, c.pos.Col)
}

// ScrollLines scrolls the viewport vertically without moving the cursor.
func (c *Controller) ScrollLines(delta int) {
	c.view.ScrollBy(delta, c.doc.LineCount())
}

// ScrollCols scrolls the viewport horizontally without moving the cursor.
func (c *Controller) ScrollCols(delta int) {
	c.view.ScrollHorizontalBy(delta)
}

// ClickAt places the cursor at the document position under screen cell
// (x, y), clamped to the document.
func (c *Controller) ClickAt(x, y int) {
	line, col := c.view.ScreenToBuffer(x, y)
	c.pos.Line = min(line, c.lastLine())
	c.pos.Col = min(col, c.doc.LineLen(c.pos.Line))
	c.settle()
}

func (c *Controller) lastLine() int {
	return c.doc.LineCount() - 1
}

// settle records the current column as the desired one and follows it.
func (c *Controller) settle() {
	c.desired = c.pos.Col
	c.follow()
}

func (c *Controller) follow() {
	c.view.Follow(c.pos.Line, c.pos.Col)
}

// firstNonSpace returns the index of the first rune that is not ' ', or
// -1 if there is none.
func firstNonSpace(line []rune) int {
	for i, r := range line {
		if r != ' ' {
			return i
		}
	}
	return -1
}
