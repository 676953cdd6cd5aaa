package cursor

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer/viewport"
)

func newTestController(text string, width, height int) *Controller {
	return NewController(buffer.NewBufferFromString(text), viewport.NewViewport(width, height))
}

// place puts the cursor at p as if the user had navigated there.
func place(c *Controller, p Position) {
	c.pos = p
	c.desired = p.Col
	c.follow()
}

func assertVisible(t *testing.T, c *Controller) {
	t.Helper()
	v := c.Viewport()
	if !v.IsPositionVisible(c.pos.Line, c.pos.Col) {
		t.Fatalf("cursor %v not visible in viewport at (%d, %d) size %dx%d",
			c.pos, v.TopLine(), v.LeftColumn(), v.Width(), v.Height())
	}
}

func TestVerticalMoveKeepsDesiredColumn(t *testing.T) {
	c := newTestController("abc\ndefgh\ni", 80, 24)
	place(c, Position{Line: 1, Col: 5})

	c.MoveDown()
	if diff := cmp.Diff(Position{Line: 2, Col: 1}, c.Position()); diff != "" {
		t.Errorf("Down position mismatch (-want +got):\n%s", diff)
	}
	if c.DesiredCol() != 5 {
		t.Errorf("DesiredCol() = %d, want 5", c.DesiredCol())
	}

	c.MoveUp()
	if diff := cmp.Diff(Position{Line: 1, Col: 5}, c.Position()); diff != "" {
		t.Errorf("Up position mismatch (-want +got):\n%s", diff)
	}

	c.MoveUp()
	if diff := cmp.Diff(Position{Line: 0, Col: 3}, c.Position()); diff != "" {
		t.Errorf("Up position mismatch (-want +got):\n%s", diff)
	}
}

func TestVerticalMoveClampsAtEdges(t *testing.T) {
	c := newTestController("abc\ndefgh\ni", 80, 24)
	place(c, Position{Line: 0, Col: 2})

	c.MoveUp()
	if diff := cmp.Diff(Position{Line: 0, Col: 2}, c.Position()); diff != "" {
		t.Errorf("Up at top (-want +got):\n%s", diff)
	}

	place(c, Position{Line: 2, Col: 1})
	c.MoveDown()
	if diff := cmp.Diff(Position{Line: 2, Col: 1}, c.Position()); diff != "" {
		t.Errorf("Down at bottom (-want +got):\n%s", diff)
	}
}

func TestHorizontalMoves(t *testing.T) {
	tests := []struct {
		name  string
		start Position
		move  func(*Controller)
		want  Position
	}{
		{"left within line", Position{1, 2}, (*Controller).MoveLeft, Position{1, 1}},
		{"left wraps to previous end", Position{1, 0}, (*Controller).MoveLeft, Position{0, 3}},
		{"left at origin", Position{0, 0}, (*Controller).MoveLeft, Position{0, 0}},
		{"right within line", Position{0, 1}, (*Controller).MoveRight, Position{0, 2}},
		{"right wraps to next start", Position{0, 3}, (*Controller).MoveRight, Position{1, 0}},
		{"right at document end", Position{2, 1}, (*Controller).MoveRight, Position{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController("abc\ndefgh\ni", 80, 24)
			place(c, tt.start)
			tt.move(c)
			if diff := cmp.Diff(tt.want, c.Position()); diff != "" {
				t.Errorf("position mismatch (-want +got):\n%s", diff)
			}
			if c.DesiredCol() != c.Position().Col {
				t.Errorf("DesiredCol() = %d, want %d", c.DesiredCol(), c.Position().Col)
			}
		})
	}
}

func TestHome(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want int
	}{
		{"from zero to indent", "    foo", 0, 4},
		{"at indent to zero", "    foo", 4, 0},
		{"inside indent to zero", "    foo", 2, 0},
		{"past indent to indent", "    foo", 6, 4},
		{"no indent", "foo", 2, 0},
		{"no indent at zero", "foo", 0, 0},
		{"only spaces", "      ", 3, 0},
		{"empty line", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(tt.line, 80, 24)
			place(c, Position{0, tt.col})
			c.Home()
			if c.Position().Col != tt.want {
				t.Errorf("Home() col = %d, want %d", c.Position().Col, tt.want)
			}
		})
	}
}

func TestDocumentStartAndEnd(t *testing.T) {
	c := newTestController(strings.Repeat("line\n", 50)+"last line", 5, 10)

	c.DocumentEnd()
	if diff := cmp.Diff(Position{50, 9}, c.Position()); diff != "" {
		t.Errorf("DocumentEnd (-want +got):\n%s", diff)
	}
	assertVisible(t, c)

	c.DocumentStart()
	if diff := cmp.Diff(Position{0, 0}, c.Position()); diff != "" {
		t.Errorf("DocumentStart (-want +got):\n%s", diff)
	}
	if c.Viewport().TopLine() != 0 || c.Viewport().LeftColumn() != 0 {
		t.Error("DocumentStart should reset both anchors")
	}
}

func TestDocumentEndOnEmptyDocument(t *testing.T) {
	c := newTestController("", 80, 24)
	c.DocumentEnd()
	if diff := cmp.Diff(Position{0, 0}, c.Position()); diff != "" {
		t.Errorf("DocumentEnd on empty document (-want +got):\n%s", diff)
	}
}

func TestEnd(t *testing.T) {
	c := newTestController("abc\r\ndefgh", 80, 24)
	c.End()
	if c.Position().Col != 3 {
		t.Errorf("End() col = %d, want 3 (terminator excluded)", c.Position().Col)
	}
}

func TestViewportShiftsOneLineAtEdge(t *testing.T) {
	c := newTestController(strings.Repeat("x\n", 20), 10, 5)
	place(c, Position{4, 0})

	c.MoveDown()
	if c.Viewport().TopLine() != 1 {
		t.Errorf("TopLine() = %d, want 1", c.Viewport().TopLine())
	}
	c.MoveDown()
	if c.Viewport().TopLine() != 2 {
		t.Errorf("TopLine() = %d, want 2", c.Viewport().TopLine())
	}

	place(c, Position{2, 0})
	c.MoveUp()
	if c.Viewport().TopLine() != 1 {
		t.Errorf("TopLine() = %d, want 1", c.Viewport().TopLine())
	}
}

func TestResize(t *testing.T) {
	c := newTestController(strings.Repeat("0123456789\n", 30), 20, 20)
	place(c, Position{15, 8})

	c.Resize(5, 10)
	assertVisible(t, c)
	if c.Viewport().TopLine() != 6 || c.Viewport().LeftColumn() != 4 {
		t.Errorf("anchor = (%d, %d), want (6, 4)", c.Viewport().TopLine(), c.Viewport().LeftColumn())
	}
}

func TestScrollDoesNotMoveCursor(t *testing.T) {
	c := newTestController(strings.Repeat("x\n", 40), 10, 5)
	c.ScrollLines(10)
	c.ScrollCols(3)
	if diff := cmp.Diff(Position{0, 0}, c.Position()); diff != "" {
		t.Errorf("scroll moved cursor (-want +got):\n%s", diff)
	}
	if c.Viewport().TopLine() != 10 || c.Viewport().LeftColumn() != 3 {
		t.Errorf("anchor = (%d, %d), want (10, 3)", c.Viewport().TopLine(), c.Viewport().LeftColumn())
	}
}

func TestClickAt(t *testing.T) {
	c := newTestController("abc\ndefgh\ni", 80, 24)

	c.ClickAt(4, 1)
	if diff := cmp.Diff(Position{1, 4}, c.Position()); diff != "" {
		t.Errorf("click inside text (-want +got):\n%s", diff)
	}
	c.ClickAt(30, 20)
	if diff := cmp.Diff(Position{2, 1}, c.Position()); diff != "" {
		t.Errorf("click past text (-want +got):\n%s", diff)
	}
	if c.DesiredCol() != 1 {
		t.Errorf("DesiredCol() = %d, want 1", c.DesiredCol())
	}
}

// TestVerticalMoveProperty checks that any run of vertical moves keeps the
// column at min(desired, line length) with the desired column untouched.
func TestVerticalMoveProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = strings.Repeat("x", rng.Intn(30))
	}
	c := newTestController(strings.Join(lines, "\n"), 12, 6)
	place(c, Position{20, len(lines[20])})
	desired := c.DesiredCol()

	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 {
			c.MoveUp()
		} else {
			c.MoveDown()
		}
		p := c.Position()
		if want := min(desired, len(lines[p.Line])); p.Col != want {
			t.Fatalf("step %d: col = %d, want %d", i, p.Col, want)
		}
		if c.DesiredCol() != desired {
			t.Fatalf("step %d: desired changed to %d", i, c.DesiredCol())
		}
		assertVisible(t, c)
	}
}
