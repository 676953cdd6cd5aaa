package cursor

import (
	"strings"
	"unicode"

	"github.com/dshills/quill/internal/engine/buffer"
)

// InsertChar inserts r at the cursor and advances past it. Control
// characters, including line breaks, are ignored.
func (c *Controller) InsertChar(r rune) {
	if unicode.IsControl(r) {
		return
	}
	if !c.insert(string(r)) {
		return
	}
	c.pos.Col++
	c.settle()
}

// InsertNewline splits the line at the cursor and moves to the start of
// the new line.
func (c *Controller) InsertNewline() {
	if !c.insert("\n") {
		return
	}
	c.pos.Line++
	c.pos.Col = 0
	c.view.SetLeftColumn(0)
	c.settle()
}

// InsertTab inserts spaces up to the next tab stop strictly after the
// cursor column.
func (c *Controller) InsertTab() {
	n := c.tabWidth - c.pos.Col%c.tabWidth
	if !c.insert(strings.Repeat(" ", n)) {
		return
	}
	c.pos.Col += n
	c.settle()
}

// Backspace deletes backwards. When only spaces precede the cursor it
// dedents to the previous tab stop in one step. At column 0 it joins the
// line with the previous one.
func (c *Controller) Backspace() {
	idx, ok := c.index()
	if !ok {
		return
	}

	switch {
	case c.pos.Col > 0:
		runes := c.doc.LineRunes(c.pos.Line)
		if c.pos.Col > len(runes) {
			return
		}
		n := 1
		if onlySpaces(runes[:c.pos.Col]) {
			n = c.pos.Col - (c.pos.Col-1)/c.tabWidth*c.tabWidth
		}
		if !c.remove(idx-n, idx) {
			return
		}
		c.pos.Col -= n

	case c.pos.Line > 0:
		prev := c.pos.Line - 1
		col := c.doc.LineLen(prev)
		if !c.remove(idx-c.doc.BreakLen(prev), idx) {
			return
		}
		c.pos.Line = prev
		c.pos.Col = col
		c.view.SetLeftColumn(col + 1 - c.view.Width())

	default:
		return
	}
	c.settle()
}

// Delete removes the character under the cursor. At the end of a line it
// joins the next line onto this one.
func (c *Controller) Delete() {
	idx, ok := c.index()
	if !ok {
		return
	}
	n := 1
	if c.pos.Col >= c.doc.LineLen(c.pos.Line) {
		n = c.doc.BreakLen(c.pos.Line)
	}
	if n == 0 || !c.remove(idx, idx+n) {
		return
	}
	c.settle()
}

// Paste inserts text at the cursor with its line endings normalised and
// moves the cursor to the end of the inserted text.
func (c *Controller) Paste(text string) {
	text = buffer.NormalizeLineEndings(text)
	if text == "" || !c.insert(text) {
		return
	}
	for _, r := range text {
		if r == '\n' {
			c.pos.Line++
			c.pos.Col = 0
			continue
		}
		c.pos.Col++
	}
	c.settle()
}

// index returns the character index of the cursor.
func (c *Controller) index() (int, bool) {
	start, ok := c.doc.LineStart(c.pos.Line)
	if !ok {
		c.logger.Debug("cursor line outside document", "pos", c.pos.String())
		return 0, false
	}
	return start + c.pos.Col, true
}

func (c *Controller) insert(text string) bool {
	idx, ok := c.index()
	if !ok {
		return false
	}
	if !c.doc.Insert(idx, text) {
		c.logger.Debug("insert rejected", "index", idx, "pos", c.pos.String())
		return false
	}
	return true
}

func (c *Controller) remove(start, end int) bool {
	if !c.doc.Delete(start, end) {
		c.logger.Debug("delete rejected", "start", start, "end", end, "pos", c.pos.String())
		return false
	}
	return true
}

func onlySpaces(runes []rune) bool {
	for _, r := range runes {
		if r != ' ' {
			return false
		}
	}
	return true
}
