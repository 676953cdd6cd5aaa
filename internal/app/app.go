package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/cursor"
	"github.com/dshills/quill/internal/loop"
	"github.com/dshills/quill/internal/renderer"
	"github.com/dshills/quill/internal/renderer/backend"
	"github.com/dshills/quill/internal/renderer/viewport"
)

// reloadInterval is the update tick used to poll for config changes
// when the configured update rate is on demand.
const reloadInterval = 500 * time.Millisecond

// Options configures an Application.
type Options struct {
	// Config is the starting configuration. Nil uses config.Default().
	Config *config.Config

	// ConfigPath is watched and reloaded on change when set.
	ConfigPath string

	// Backend draws and delivers input. Nil uses a tcell terminal.
	Backend backend.Backend

	// Logger receives editor logs. Nil discards them.
	Logger *slog.Logger

	// Clock drives frame timing. Nil uses the real clock.
	Clock clockwork.Clock
}

// Application is the editor.
type Application struct {
	cfg     *config.Config
	loader  *config.Loader
	watcher *config.Watcher

	backend  backend.Backend
	doc      *buffer.Buffer
	view     *viewport.Viewport
	cursor   *cursor.Controller
	renderer *renderer.Renderer
	scroll   viewport.ScrollSteps

	logger  *slog.Logger
	clock   clockwork.Clock
	running bool
}

// New creates an application. The backend is not initialised until Run.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	logger := opts.Logger
	if logger == nil {
		logger = DiscardLogger()
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	b := opts.Backend
	if b == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return nil, &InitError{Component: "backend", Err: err}
		}
		b = term
	}

	app := &Application{
		cfg:     cfg,
		backend: b,
		doc:     buffer.NewBuffer(),
		logger:  logger,
		clock:   clock,
	}

	app.view = viewport.NewViewport(b.Size())
	app.cursor = cursor.NewController(app.doc, app.view,
		cursor.WithTabWidth(cfg.Editor.TabWidth),
		cursor.WithLogger(WithComponent(logger, "cursor")),
	)
	app.renderer = renderer.New(b, app.rendererOptions())
	app.renderer.SetBuffer(app.doc)
	app.renderer.SetViewport(app.view)
	app.renderer.SetCursorProvider(app.cursor)
	app.scroll = scrollSteps(cfg)

	if opts.ConfigPath != "" {
		app.loader = config.NewLoader(opts.ConfigPath)
		w, err := config.NewWatcher(opts.ConfigPath, config.WithWatcherLogger(WithComponent(logger, "config")))
		if err != nil {
			logger.Warn("config reload disabled", "path", opts.ConfigPath, "error", err)
		} else {
			app.watcher = w
		}
	}

	return app, nil
}

// Run initialises the backend and runs the event loop until exit. The
// backend is shut down before Run returns.
func (app *Application) Run(ctx context.Context) (loop.Outcome, error) {
	if app.running {
		return loop.Failure(1), ErrAlreadyRunning
	}
	app.running = true
	defer func() { app.running = false }()

	if err := app.backend.Init(); err != nil {
		return loop.Failure(1), &InitError{Component: "backend", Err: err}
	}
	defer app.shutdown()

	app.cursor.Resize(app.backend.Size())

	l := loop.New(app.backend, app, app.loopSettings(),
		loop.WithClock(app.clock),
		loop.WithLogger(WithComponent(app.logger, "loop")),
	)
	out, err := l.Run(ctx)
	if err != nil {
		app.logger.Error("editor failed", "error", err)
		return out, err
	}
	return out, nil
}

func (app *Application) shutdown() {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logger.Warn("closing config watcher", "error", err)
		}
		app.watcher = nil
	}
	app.backend.Shutdown()
}

// HandleEvent implements loop.Handler.
func (app *Application) HandleEvent(ev loop.Event) (loop.Command, error) {
	switch ev.Kind {
	case loop.Begin:
		if app.watcher != nil && ev.Settings != nil && ev.Settings.UpdateRate.IsOnDemand() {
			ev.Settings.UpdateRate = loop.Every(reloadInterval)
		}
		app.logger.Info("editor started")
		return loop.RequestRedraw(), nil

	case loop.Input:
		return app.handleInput(ev.Input), nil

	case loop.Update:
		return app.pollConfig(), nil

	case loop.Render:
		app.renderer.Render()
		return loop.None(), nil

	case loop.ExitRequested:
		return loop.Proceed(), nil

	case loop.Exiting:
		app.logger.Info("editor exiting", "outcome", ev.Outcome.String())
		return loop.None(), nil
	}
	return loop.None(), nil
}

// Document returns the edited document.
func (app *Application) Document() *buffer.Buffer {
	return app.doc
}

// Cursor returns the cursor controller.
func (app *Application) Cursor() *cursor.Controller {
	return app.cursor
}

// Viewport returns the visible window.
func (app *Application) Viewport() *viewport.Viewport {
	return app.view
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	return app.cfg
}

func (app *Application) loopSettings() loop.Settings {
	return loop.Settings{
		UpdateRate: loop.Every(app.cfg.Loop.UpdateInterval.Std()),
		RenderRate: loop.Every(app.cfg.Loop.RenderInterval.Std()),
		IdleWait:   app.cfg.Loop.IdleWait.Std(),
	}
}

func (app *Application) rendererOptions() renderer.Options {
	opts := renderer.DefaultOptions()
	opts.TabWidth = app.cfg.Editor.TabWidth
	return opts
}

func scrollSteps(cfg *config.Config) viewport.ScrollSteps {
	return viewport.ScrollSteps{Short: cfg.Editor.ShortScroll, Long: cfg.Editor.LongScroll}
}

// pollConfig reloads the config file when it changed. Only editor
// settings take effect live; loop timing is fixed for the run.
func (app *Application) pollConfig() loop.Command {
	if app.watcher == nil {
		return loop.None()
	}

	changed, err := app.watcher.Poll()
	if err != nil {
		app.logger.Warn("config watcher failed", "error", err)
		_ = app.watcher.Close()
		app.watcher = nil
		return loop.None()
	}
	if !changed {
		return loop.None()
	}

	cfg, err := app.loader.Load()
	if err != nil {
		app.logger.Warn("config reload rejected", "path", app.loader.Path(), "error", err)
		return loop.None()
	}

	cfg.Loop = app.cfg.Loop
	app.cfg = cfg
	app.cursor.SetTabWidth(cfg.Editor.TabWidth)
	app.renderer.SetOptions(app.rendererOptions())
	app.scroll = scrollSteps(cfg)
	app.logger.Info("config reloaded", "path", app.loader.Path(), "tab_width", cfg.Editor.TabWidth)
	return loop.RequestRedraw()
}
