package core

import "testing"

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{"#44110A", ColorFromRGB(0x44, 0x11, 0x0A), false},
		{"10223a", ColorFromRGB(0x10, 0x22, 0x3A), false},
		{"#fff", ColorFromRGB(255, 255, 255), false},
		{"#12345", Color{}, true},
		{"#zzzzzz", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ColorFromHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ColorFromHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ColorFromHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	if ColorDefault.String() != "default" {
		t.Errorf("ColorDefault.String() = %q", ColorDefault.String())
	}
	if ColorDarkGray.String() != "idx(8)" {
		t.Errorf("ColorDarkGray.String() = %q", ColorDarkGray.String())
	}
	if got := ColorFromRGB(68, 17, 10).String(); got != "#44110A" {
		t.Errorf("String() = %q", got)
	}
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().WithForeground(ColorDarkGray).WithBackground(ColorFromRGB(1, 2, 3))
	if s.Foreground != ColorDarkGray || s.Background != ColorFromRGB(1, 2, 3) {
		t.Errorf("unexpected style %+v", s)
	}
	if s.Attributes.Has(AttrBold) {
		t.Error("style should carry no attributes")
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'·', 1},
		{'┆', 1},
		{'世', 2},
		{'\n', 0},
		{0x7F, 0},
	}

	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestNewStyledCell(t *testing.T) {
	c := NewStyledCell('世', DefaultStyle())
	if c.Width != 2 {
		t.Errorf("Width = %d, want 2", c.Width)
	}
	if e := EmptyCell(); e.Rune != ' ' || e.Width != 1 {
		t.Errorf("EmptyCell() = %+v", e)
	}
}
