package renderer

import "github.com/dshills/quill/internal/renderer/core"

// indentEnd returns the column where a line's leading spaces end. A line
// made only of spaces is indentation throughout.
func indentEnd(line []rune) int {
	for i, r := range line {
		if r != ' ' {
			return i
		}
	}
	return len(line)
}

// cellFor returns the cell drawn for the character at absolute column col
// of a line whose indentation ends at indent.
func (r *Renderer) cellFor(ch rune, col, indent int) core.Cell {
	base := core.DefaultStyle()

	switch {
	case ch == ' ' && col < indent:
		depth := col / r.opts.TabWidth
		style := base.
			WithForeground(r.opts.WhitespaceColor).
			WithBackground(r.opts.IndentColors[depth%len(r.opts.IndentColors)])
		glyph := r.opts.SpaceGlyph
		if col%r.opts.TabWidth == 0 {
			glyph = r.opts.GuideGlyph
		}
		return core.NewStyledCell(glyph, style)

	case ch == ' ':
		return core.NewStyledCell(r.opts.SpaceGlyph, base.WithForeground(r.opts.WhitespaceColor))

	case core.RuneWidth(ch) == 0:
		return core.EmptyCell()

	default:
		return core.NewStyledCell(ch, base)
	}
}
