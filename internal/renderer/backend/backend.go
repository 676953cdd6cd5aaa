// Package backend provides terminal backend abstraction for the renderer.
package backend

import (
	"errors"
	"time"

	"github.com/dshills/quill/internal/renderer/core"
)

// ErrClosed is returned once the backend can no longer deliver input.
var ErrClosed = errors.New("backend: input closed")

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventResize:
		return "resize"
	case EventPaste:
		return "paste"
	default:
		return "none"
	}
}

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int

	// Paste event fields
	PasteText string
}

// KeyEvent builds a key event.
func KeyEvent(key Key, r rune, mod ModMask) Event {
	return Event{Type: EventKey, Key: key, Rune: r, Mod: mod}
}

// RuneEvent builds a key event for a printable character.
func RuneEvent(r rune) Event {
	return KeyEvent(KeyRune, r, ModNone)
}

// MouseEvent builds a mouse event.
func MouseEvent(x, y int, button MouseButton, mod ModMask) Event {
	return Event{Type: EventMouse, MouseX: x, MouseY: y, MouseButton: button, Mod: mod}
}

// ResizeEvent builds a resize event.
func ResizeEvent(width, height int) Event {
	return Event{Type: EventResize, Width: width, Height: height}
}

// PasteEvent builds a paste event carrying the whole pasted text.
func PasteEvent(text string) Event {
	return Event{Type: EventPaste, PasteText: text}
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlJ
	KeyCtrlQ
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
)

// Backend defines the interface for terminal/display backends.
// Implementations handle actual drawing to the terminal or other display surfaces.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// Must be called when done with the backend.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at the given position.
	// Returns an empty cell for positions outside the terminal.
	GetCell(x, y int) core.Cell

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent returns the next pending event without blocking. The
	// boolean is false when nothing is pending.
	PollEvent() (Event, bool, error)

	// WaitEvent blocks until an event is pending or the timeout elapses.
	// It does not consume the event. A closed input is reported by the
	// next PollEvent rather than here.
	WaitEvent(timeout time.Duration) error
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	shows         int
	events        []Event
	closed        bool
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{width: width, height: height}
	b.allocate()
	return b
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = core.EmptyCell()
		}
	}
}

func (b *NullBackend) Init() error {
	b.allocate()
	return nil
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

// Resize changes the grid size and queues the matching resize event.
func (b *NullBackend) Resize(width, height int) {
	b.width, b.height = width, height
	b.allocate()
	b.events = append(b.events, ResizeEvent(width, height))
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) core.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

func (b *NullBackend) Clear() {
	empty := core.EmptyCell()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = empty
		}
	}
}

func (b *NullBackend) Show() {
	b.shows++
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int {
	return b.shows
}

// Row returns the runes of screen row y.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	runes := make([]rune, b.width)
	for x, c := range b.cells[y] {
		runes[x] = c.Rune
	}
	return string(runes)
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

// Cursor returns the cursor position and visibility.
func (b *NullBackend) Cursor() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// PostEvent queues an event for PollEvent.
func (b *NullBackend) PostEvent(event Event) {
	b.events = append(b.events, event)
}

// Close makes the backend report ErrClosed once queued events are drained.
func (b *NullBackend) Close() {
	b.closed = true
}

func (b *NullBackend) PollEvent() (Event, bool, error) {
	if len(b.events) > 0 {
		ev := b.events[0]
		b.events = b.events[1:]
		return ev, true, nil
	}
	if b.closed {
		return Event{}, false, ErrClosed
	}
	return Event{}, false, nil
}

// WaitEvent returns immediately; the null backend has no clock to wait on.
func (b *NullBackend) WaitEvent(time.Duration) error {
	return nil
}
