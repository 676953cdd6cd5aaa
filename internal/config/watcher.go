package config

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a single config file.
//
// The file's directory is watched rather than the file itself, so
// editors that save by renaming a temporary file over the original are
// still seen.
type Watcher struct {
	path   string
	fsw    *fsnotify.Watcher
	logger *slog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the watcher's logger.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher starts watching path. The file need not exist yet, but its
// directory must.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:   abs,
		fsw:    fsw,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Poll drains pending notifications without blocking and reports whether
// any of them touched the config file.
func (w *Watcher) Poll() (bool, error) {
	changed := false
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return changed, ErrWatcherClosed
			}
			if w.relevant(ev) {
				w.logger.Debug("config file changed", "path", ev.Name, "op", ev.Op.String())
				changed = true
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return changed, ErrWatcherClosed
			}
			return changed, fmt.Errorf("watching %s: %w", w.path, err)
		default:
			return changed, nil
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) || ev.Op.Has(fsnotify.Remove)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
