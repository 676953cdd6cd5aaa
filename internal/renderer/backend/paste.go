package backend

import "strings"

// pasteCoalescer gathers the key events delivered between bracketed paste
// markers into a single paste. A paste that ends is held back until the
// input is drained so that back-to-back pastes merge into one event.
type pasteCoalescer struct {
	active  bool
	pending bool
	text    strings.Builder
}

// begin marks the start of a paste, continuing a held-back one if any.
func (p *pasteCoalescer) begin() {
	p.active = true
}

// end marks the end of a paste.
func (p *pasteCoalescer) end() {
	if p.active {
		p.active = false
		p.pending = true
	}
}

// Active reports whether a paste is in progress.
func (p *pasteCoalescer) Active() bool {
	return p.active
}

// Pending reports whether a completed paste is waiting to be taken.
func (p *pasteCoalescer) Pending() bool {
	return p.pending
}

// addKey records a key event received during a paste. Line breaks are
// kept as the raw characters the terminal sent.
func (p *pasteCoalescer) addKey(ev Event) {
	switch ev.Key {
	case KeyRune:
		p.text.WriteRune(ev.Rune)
	case KeyEnter:
		p.text.WriteByte('\r')
	case KeyCtrlJ:
		p.text.WriteByte('\n')
	case KeyTab:
		p.text.WriteByte('\t')
	}
}

// take returns the completed paste, if any, as a paste event. Nothing is
// returned while a continuation paste is still open.
func (p *pasteCoalescer) take() (Event, bool) {
	if !p.pending || p.active {
		return Event{}, false
	}
	text := p.text.String()
	p.text.Reset()
	p.pending = false
	return PasteEvent(text), true
}
