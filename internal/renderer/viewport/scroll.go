package viewport

// ScrollAmount selects how far a single scroll gesture moves the anchor.
type ScrollAmount uint8

const (
	// ScrollShort is the default step.
	ScrollShort ScrollAmount = iota
	// ScrollLong is the accelerated step.
	ScrollLong
)

// ScrollSteps holds the number of cells moved per gesture.
type ScrollSteps struct {
	Short int
	Long  int
}

// DefaultScrollSteps moves one cell for a short scroll and ten for a long one.
var DefaultScrollSteps = ScrollSteps{Short: 1, Long: 10}

// Step returns the cell count for amount.
func (s ScrollSteps) Step(amount ScrollAmount) int {
	if amount == ScrollLong {
		return s.Long
	}
	return s.Short
}

// ScrollBy scrolls vertically by delta lines. The anchor saturates at 0
// and never passes the last of lineCount lines.
func (v *Viewport) ScrollBy(delta, lineCount int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = clamp(v.topLine+delta, 0, max(lineCount-1, 0))
}

// ScrollHorizontalBy scrolls horizontally by delta columns, saturating at 0.
func (v *Viewport) ScrollHorizontalBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.leftColumn = max(v.leftColumn+delta, 0)
}
