package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quill/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
//
// tcell events are pumped into a buffered channel by a goroutine started
// in Init. PollEvent and WaitEvent read from that channel and must be
// called from a single goroutine.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	raw      chan tcell.Event
	quit     chan struct{}
	stopOnce sync.Once

	queue  []Event
	paste  pasteCoalescer
	closed bool
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing tcell screen, such as a
// simulation screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		raw:    make(chan tcell.Event, 256),
		quit:   make(chan struct{}),
	}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	t.screen.EnableMouse()
	t.screen.EnablePaste()
	t.screen.HideCursor()

	go t.screen.ChannelEvents(t.raw, t.quit)
	return nil
}

func (t *Terminal) Shutdown() {
	t.stopOnce.Do(func() {
		close(t.quit)

		t.mu.Lock()
		defer t.mu.Unlock()
		t.screen.DisablePaste()
		t.screen.DisableMouse()
		t.screen.Fini()
	})
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return core.Cell{
		Rune:  mainc,
		Width: core.RuneWidth(mainc),
		Style: convertTcellStyle(style),
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// PollEvent returns the next translated event without blocking.
func (t *Terminal) PollEvent() (Event, bool, error) {
	for len(t.queue) == 0 {
		if t.closed {
			t.paste.end()
			if ev, ok := t.paste.take(); ok {
				return ev, true, nil
			}
			return Event{}, false, ErrClosed
		}
		select {
		case ev, ok := <-t.raw:
			if !ok {
				t.closed = true
				continue
			}
			t.accept(ev)
		default:
			if ev, ok := t.paste.take(); ok {
				return ev, true, nil
			}
			return Event{}, false, nil
		}
	}

	ev := t.queue[0]
	t.queue = t.queue[1:]
	return ev, true, nil
}

// WaitEvent blocks until input arrives or timeout elapses.
func (t *Terminal) WaitEvent(timeout time.Duration) error {
	if len(t.queue) > 0 || t.closed || t.paste.Pending() {
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-t.raw:
		if !ok {
			t.closed = true
			return nil
		}
		t.accept(ev)
	case <-timer.C:
	}
	return nil
}

// accept translates one tcell event into the queue, routing keys typed
// during a bracketed paste into the paste coalescer.
func (t *Terminal) accept(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventPaste:
		if e.Start() {
			t.paste.begin()
		} else {
			t.paste.end()
		}
		return
	case *tcell.EventKey:
		if t.paste.Active() {
			t.paste.addKey(convertEvent(e))
			return
		}
	}

	out := convertEvent(ev)
	if out.Type == EventNone {
		return
	}
	if pasted, ok := t.paste.take(); ok {
		t.queue = append(t.queue, pasted)
	}
	t.queue = append(t.queue, out)
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(convertColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(convertColor(s.Background))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}

	return style
}

func convertColor(c core.Color) tcell.Color {
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertTcellStyle converts tcell.Style back to our Style.
func convertTcellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()

	s := core.Style{
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
		Attributes: core.AttrNone,
	}

	if attrs&tcell.AttrBold != 0 {
		s.Attributes |= core.AttrBold
	}
	if attrs&tcell.AttrDim != 0 {
		s.Attributes |= core.AttrDim
	}
	if attrs&tcell.AttrItalic != 0 {
		s.Attributes |= core.AttrItalic
	}
	if attrs&tcell.AttrUnderline != 0 {
		s.Attributes |= core.AttrUnderline
	}
	if attrs&tcell.AttrReverse != 0 {
		s.Attributes |= core.AttrReverse
	}

	return s
}

// convertTcellColor converts tcell.Color to our Color.
func convertTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}

	if tc >= tcell.ColorValid && tc < tcell.ColorIsRGB {
		return core.ColorFromIndex(uint8(tc - tcell.ColorValid))
	}

	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return KeyEvent(convertKey(e.Key()), e.Rune(), convertMod(e.Modifiers()))

	case *tcell.EventMouse:
		x, y := e.Position()
		return MouseEvent(x, y, convertMouseButton(e.Buttons()), convertMod(e.Modifiers()))

	case *tcell.EventResize:
		w, h := e.Size()
		return ResizeEvent(w, h)

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyInsert:
		return KeyInsert
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyCtrlJ:
		return KeyCtrlJ
	case tcell.KeyCtrlQ:
		return KeyCtrlQ
	default:
		return KeyNone
	}
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}

// convertMouseButton converts tcell button mask to our MouseButton.
// Wheel motion wins over a held button so scrolling while dragging
// still scrolls.
func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	case b&tcell.WheelLeft != 0:
		return MouseWheelLeft
	case b&tcell.WheelRight != 0:
		return MouseWheelRight
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseMiddle
	case b&tcell.Button3 != 0:
		return MouseRight
	default:
		return MouseNone
	}
}
