package app

import (
	"github.com/dshills/quill/internal/loop"
	"github.com/dshills/quill/internal/renderer/backend"
	"github.com/dshills/quill/internal/renderer/viewport"
)

// handleInput processes a backend event and routes it appropriately.
func (app *Application) handleInput(ev backend.Event) loop.Command {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventMouse:
		return app.handleMouse(ev)
	case backend.EventResize:
		app.cursor.Resize(ev.Width, ev.Height)
		return loop.RequestRedraw()
	case backend.EventPaste:
		app.cursor.Paste(ev.PasteText)
		return loop.RequestRedraw()
	default:
		return loop.None()
	}
}

// handleKey maps keys onto cursor operations.
func (app *Application) handleKey(ev backend.Event) loop.Command {
	c := app.cursor
	ctrl := ev.Mod.Has(backend.ModCtrl)

	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlQ:
		return loop.RequestExit(loop.Success())
	case backend.KeyUp:
		c.MoveUp()
	case backend.KeyDown:
		c.MoveDown()
	case backend.KeyLeft:
		c.MoveLeft()
	case backend.KeyRight:
		c.MoveRight()
	case backend.KeyHome:
		if ctrl {
			c.DocumentStart()
		} else {
			c.Home()
		}
	case backend.KeyEnd:
		if ctrl {
			c.DocumentEnd()
		} else {
			c.End()
		}
	case backend.KeyTab:
		c.InsertTab()
	case backend.KeyEnter, backend.KeyCtrlJ:
		c.InsertNewline()
	case backend.KeyBackspace:
		c.Backspace()
	case backend.KeyDelete:
		c.Delete()
	case backend.KeyRune:
		if ctrl {
			return loop.None()
		}
		c.InsertChar(ev.Rune)
	default:
		return loop.None()
	}
	return loop.RequestRedraw()
}

// handleMouse scrolls on wheel motion and places the cursor on a left
// button press. Alt selects the long step; Shift moves the vertical
// wheel onto the horizontal axis.
func (app *Application) handleMouse(ev backend.Event) loop.Command {
	amount := viewport.ScrollShort
	if ev.Mod.Has(backend.ModAlt) {
		amount = viewport.ScrollLong
	}
	n := app.scroll.Step(amount)
	shift := ev.Mod.Has(backend.ModShift)

	switch ev.MouseButton {
	case backend.MouseWheelUp:
		if shift {
			app.cursor.ScrollCols(-n)
		} else {
			app.cursor.ScrollLines(-n)
		}
	case backend.MouseWheelDown:
		if shift {
			app.cursor.ScrollCols(n)
		} else {
			app.cursor.ScrollLines(n)
		}
	case backend.MouseWheelLeft:
		app.cursor.ScrollCols(-n)
	case backend.MouseWheelRight:
		app.cursor.ScrollCols(n)
	case backend.MouseLeft:
		app.cursor.ClickAt(ev.MouseX, ev.MouseY)
	default:
		return loop.None()
	}
	return loop.RequestRedraw()
}
