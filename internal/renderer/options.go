package renderer

import "github.com/dshills/quill/internal/renderer/core"

// Default glyphs.
const (
	DefaultSpaceGlyph = '·'
	DefaultGuideGlyph = '┆'
)

// DefaultIndentColors is the background cycle used for indentation bands,
// from the shallowest level outward.
var DefaultIndentColors = []core.Color{
	core.ColorFromRGB(68, 17, 10),
	core.ColorFromRGB(70, 34, 6),
	core.ColorFromRGB(69, 58, 2),
	core.ColorFromRGB(7, 40, 24),
	core.ColorFromRGB(16, 30, 51),
	core.ColorFromRGB(26, 14, 45),
}

// Options configures the renderer.
type Options struct {
	// Glyphs
	SpaceGlyph rune // Drawn for every space
	GuideGlyph rune // Drawn at each tab stop inside indentation

	// Indentation
	TabWidth     int          // Columns per indent level
	IndentColors []core.Color // Background cycle by indent depth

	// Colors
	WhitespaceColor core.Color // Foreground for space and guide glyphs
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		SpaceGlyph:      DefaultSpaceGlyph,
		GuideGlyph:      DefaultGuideGlyph,
		TabWidth:        4,
		IndentColors:    DefaultIndentColors,
		WhitespaceColor: core.ColorDarkGray,
	}
}

// normalize fills in zero values with defaults.
func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.SpaceGlyph == 0 {
		o.SpaceGlyph = d.SpaceGlyph
	}
	if o.GuideGlyph == 0 {
		o.GuideGlyph = d.GuideGlyph
	}
	if o.TabWidth < 1 {
		o.TabWidth = d.TabWidth
	}
	if len(o.IndentColors) == 0 {
		o.IndentColors = d.IndentColors
	}
	if o.WhitespaceColor == (core.Color{}) {
		o.WhitespaceColor = d.WhitespaceColor
	}
	return o
}
