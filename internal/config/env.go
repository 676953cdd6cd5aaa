package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QUILL_"

// envSetting maps one environment variable onto a config field.
type envSetting struct {
	name  string
	apply func(cfg *Config, value string) error
}

func intSetting(field func(*Config) *int) func(*Config, string) error {
	return func(cfg *Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		*field(cfg) = n
		return nil
	}
}

func durationSetting(field func(*Config) *Duration) func(*Config, string) error {
	return func(cfg *Config, value string) error {
		d, err := ParseDuration(value)
		if err != nil {
			return err
		}
		*field(cfg) = d
		return nil
	}
}

func stringSetting(field func(*Config) *string) func(*Config, string) error {
	return func(cfg *Config, value string) error {
		*field(cfg) = value
		return nil
	}
}

var envSettings = []envSetting{
	{"TAB_WIDTH", intSetting(func(c *Config) *int { return &c.Editor.TabWidth })},
	{"SHORT_SCROLL", intSetting(func(c *Config) *int { return &c.Editor.ShortScroll })},
	{"LONG_SCROLL", intSetting(func(c *Config) *int { return &c.Editor.LongScroll })},
	{"UPDATE_INTERVAL", durationSetting(func(c *Config) *Duration { return &c.Loop.UpdateInterval })},
	{"RENDER_INTERVAL", durationSetting(func(c *Config) *Duration { return &c.Loop.RenderInterval })},
	{"IDLE_WAIT", durationSetting(func(c *Config) *Duration { return &c.Loop.IdleWait })},
	{"LOG_LEVEL", stringSetting(func(c *Config) *string { return &c.Logging.Level })},
	{"LOG_FILE", stringSetting(func(c *Config) *string { return &c.Logging.File })},
}

// EnvNames returns the names of all recognised environment variables.
func EnvNames() []string {
	names := make([]string, len(envSettings))
	for i, s := range envSettings {
		names[i] = EnvPrefix + s.name
	}
	return names
}

// applyEnv applies every set QUILL_* variable to cfg. An empty value is
// treated as set.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, s := range envSettings {
		name := EnvPrefix + s.name
		value, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.apply(cfg, value); err != nil {
			return &ParseError{
				Path:    "$" + name,
				Message: fmt.Sprintf("bad value %q: %v", value, err),
				Err:     err,
			}
		}
	}
	return nil
}
