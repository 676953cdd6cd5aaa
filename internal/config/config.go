package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete editor configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Loop    LoopConfig    `toml:"loop" yaml:"loop"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// EditorConfig holds editing and scrolling settings.
type EditorConfig struct {
	// TabWidth is the number of columns between tab stops.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`

	// ShortScroll is the number of lines or columns one wheel step moves.
	ShortScroll int `toml:"short_scroll" yaml:"short_scroll"`

	// LongScroll is the wheel step while Alt is held.
	LongScroll int `toml:"long_scroll" yaml:"long_scroll"`
}

// LoopConfig holds event loop scheduling. A zero interval means the tick
// only runs on request.
type LoopConfig struct {
	UpdateInterval Duration `toml:"update_interval" yaml:"update_interval"`
	RenderInterval Duration `toml:"render_interval" yaml:"render_interval"`

	// IdleWait bounds how long an idle loop sleeps waiting for input.
	// Zero makes the loop poll continuously.
	IdleWait Duration `toml:"idle_wait" yaml:"idle_wait"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty discards logs, since the terminal
	// belongs to the editor.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:    4,
			ShortScroll: 1,
			LongScroll:  10,
		},
		Loop: LoopConfig{
			UpdateInterval: 0,
			RenderInterval: Duration(16 * time.Millisecond),
			IdleWait:       Duration(16 * time.Millisecond),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// logLevels are the accepted Logging.Level values.
var logLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	positive := func(path string, v int) {
		if v < 1 {
			errs = append(errs, &ValidationError{Path: path, Value: v, Message: "must be at least 1"})
		}
	}
	positive("editor.tab_width", c.Editor.TabWidth)
	positive("editor.short_scroll", c.Editor.ShortScroll)
	positive("editor.long_scroll", c.Editor.LongScroll)

	durations := []struct {
		path string
		d    Duration
	}{
		{"loop.update_interval", c.Loop.UpdateInterval},
		{"loop.render_interval", c.Loop.RenderInterval},
		{"loop.idle_wait", c.Loop.IdleWait},
	}
	for _, d := range durations {
		if d.d < 0 {
			errs = append(errs, &ValidationError{Path: d.path, Value: d.d, Message: "must not be negative"})
		}
	}

	if !logLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Value:   c.Logging.Level,
			Message: "must be debug, info, warn or error",
		})
	}

	return errors.Join(errs...)
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Duration is a time.Duration written as a string such as "16ms".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the duration in time.Duration notation.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// ParseDuration parses a duration string. A bare "0" is accepted.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return 0, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return Duration(v), nil
}
