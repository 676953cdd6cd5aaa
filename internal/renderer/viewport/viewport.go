// Package viewport maps document positions onto the visible window.
//
// A Viewport is an anchor (first visible line and column) plus the window
// size in cells. It follows the cursor with the smallest anchor shift that
// keeps it visible and never recentres.
package viewport

import "sync"

// Viewport represents the visible portion of the buffer.
type Viewport struct {
	mu sync.RWMutex

	// Position in buffer (first visible line and column)
	topLine    int
	leftColumn int

	// Size in screen cells
	width  int
	height int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1 to prevent underflow.
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:  max(width, 1),
		height: max(height, 1),
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// LeftColumn returns the first visible column.
func (v *Viewport) LeftColumn() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.leftColumn
}

// SetOrigin moves the anchor. Negative values clamp to 0.
func (v *Viewport) SetOrigin(topLine, leftColumn int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = max(topLine, 0)
	v.leftColumn = max(leftColumn, 0)
}

// SetLeftColumn moves the horizontal anchor only.
func (v *Viewport) SetLeftColumn(col int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.leftColumn = max(col, 0)
}

// Resize updates the viewport size without moving the anchor.
// Width and height are clamped to a minimum of 1 to prevent underflow.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// IsPositionVisible returns true if the position is within the viewport.
func (v *Viewport) IsPositionVisible(line, col int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visible(line, col)
}

func (v *Viewport) visible(line, col int) bool {
	return line >= v.topLine && line < v.topLine+v.height &&
		col >= v.leftColumn && col < v.leftColumn+v.width
}

// ToScreen converts buffer coordinates to screen coordinates. Positions
// outside the window are clamped to the nearest edge cell.
func (v *Viewport) ToScreen(line, col int) (x, y int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	x = clamp(col-v.leftColumn, 0, v.width-1)
	y = clamp(line-v.topLine, 0, v.height-1)
	return x, y
}

// ScreenToBuffer converts screen coordinates to buffer coordinates.
func (v *Viewport) ScreenToBuffer(x, y int) (line, col int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine + max(y, 0), v.leftColumn + max(x, 0)
}

// Follow shifts the anchor by the minimum needed to make the position
// visible. It reports whether the anchor moved.
func (v *Viewport) Follow(line, col int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.follow(line, col)
}

func (v *Viewport) follow(line, col int) bool {
	top, left := v.topLine, v.leftColumn

	switch {
	case line < v.topLine:
		v.topLine = max(line, 0)
	case line >= v.topLine+v.height:
		v.topLine = line - v.height + 1
	}
	switch {
	case col < v.leftColumn:
		v.leftColumn = max(col, 0)
	case col >= v.leftColumn+v.width:
		v.leftColumn = col - v.width + 1
	}

	return top != v.topLine || left != v.leftColumn
}

// ResizeFollow applies a new size and then moves the anchor inward only as
// far as needed to keep the position visible.
func (v *Viewport) ResizeFollow(width, height, line, col int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
	v.follow(line, col)
}

// VisibleLine reports whether a document line falls inside the window.
func (v *Viewport) VisibleLine(line int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return line >= v.topLine && line < v.topLine+v.height
}

// VisibleColumns returns the half-open range of columns of a line of the
// given length that fall inside the window.
func (v *Viewport) VisibleColumns(lineLen int) (from, to int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	from = min(v.leftColumn, lineLen)
	to = min(v.leftColumn+v.width, lineLen)
	return from, to
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
