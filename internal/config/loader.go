package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the user config dir.
const DefaultFileName = "config.toml"

// DefaultPath returns $XDG_CONFIG_HOME/quill/config.toml, or the
// platform equivalent. It returns "" when no config dir is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", DefaultFileName)
}

// Loader builds a Config from defaults, a file and the environment.
type Loader struct {
	path   string
	lookup func(string) (string, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLookupEnv replaces os.LookupEnv, mainly for tests.
func WithLookupEnv(lookup func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		if lookup != nil {
			l.lookup = lookup
		}
	}
}

// NewLoader creates a loader for the file at path. An empty path skips
// the file layer.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{
		path:   path,
		lookup: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the config file path.
func (l *Loader) Path() string {
	return l.path
}

// Load returns a validated configuration.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if l.path != "" {
		if err := LoadFile(l.path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, l.lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes the file at path over cfg. Settings absent from the
// file keep their current values. A missing file leaves cfg untouched.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Decode(path, data, cfg)
}

// Decode parses data over cfg using the format implied by name's
// extension.
func Decode(name string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return decodeTOML(name, data, cfg)
	case ".yaml", ".yml":
		return decodeYAML(name, data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

func decodeTOML(name string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: name, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func decodeYAML(name string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return &ParseError{Path: name, Message: err.Error(), Err: err}
	}
	return nil
}
