package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/engine/cursor"
	"github.com/dshills/quill/internal/loop"
	"github.com/dshills/quill/internal/renderer/backend"
)

// trackingBackend counts lifecycle calls on top of a NullBackend.
type trackingBackend struct {
	*backend.NullBackend
	initErr   error
	pollErr   error
	shutdowns int
}

func (b *trackingBackend) Init() error {
	if b.initErr != nil {
		return b.initErr
	}
	return b.NullBackend.Init()
}

func (b *trackingBackend) Shutdown() {
	b.shutdowns++
}

func (b *trackingBackend) PollEvent() (backend.Event, bool, error) {
	ev, ok, err := b.NullBackend.PollEvent()
	if !ok && err == nil && b.pollErr != nil {
		return backend.Event{}, false, b.pollErr
	}
	return ev, ok, err
}

func newTestApp(t *testing.T, width, height int) (*Application, *backend.NullBackend) {
	t.Helper()
	nb := backend.NewNullBackend(width, height)
	app, err := New(Options{Backend: nb})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app, nb
}

func input(app *Application, events ...backend.Event) loop.Command {
	var cmd loop.Command
	for _, ev := range events {
		c, _ := app.HandleEvent(loop.Event{Kind: loop.Input, Input: ev})
		cmd = cmd.With(c)
	}
	return cmd
}

func key(k backend.Key) backend.Event {
	return backend.KeyEvent(k, 0, backend.ModNone)
}

func ctrlKey(k backend.Key) backend.Event {
	return backend.KeyEvent(k, 0, backend.ModCtrl)
}

func wheel(b backend.MouseButton, mod backend.ModMask) backend.Event {
	return backend.MouseEvent(0, 0, b, mod)
}

func TestRunTypesRendersAndExits(t *testing.T) {
	tb := &trackingBackend{NullBackend: backend.NewNullBackend(10, 3)}
	for _, r := range "hi" {
		tb.PostEvent(backend.RuneEvent(r))
	}
	tb.PostEvent(key(backend.KeyEnter))
	tb.PostEvent(backend.RuneEvent('x'))
	tb.PostEvent(key(backend.KeyEscape))

	app, err := New(Options{Backend: tb})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	out, err := app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !out.IsSuccess() {
		t.Errorf("outcome = %v, want success", out)
	}
	if got := app.Document().Text(); got != "hi\nx" {
		t.Errorf("Text() = %q, want %q", got, "hi\nx")
	}
	if got := tb.Row(0); got != "hi        " {
		t.Errorf("row 0 = %q", got)
	}
	if x, y, visible := tb.Cursor(); x != 1 || y != 1 || !visible {
		t.Errorf("Cursor() = (%d, %d, %v), want (1, 1, true)", x, y, visible)
	}
	if tb.shutdowns != 1 {
		t.Errorf("Shutdown called %d times, want 1", tb.shutdowns)
	}
}

func TestRunInitFailure(t *testing.T) {
	tb := &trackingBackend{
		NullBackend: backend.NewNullBackend(10, 3),
		initErr:     errors.New("no tty"),
	}
	app, err := New(Options{Backend: tb})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = app.Run(context.Background())
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "backend" {
		t.Fatalf("Run() error = %v, want backend InitError", err)
	}
	if tb.shutdowns != 0 {
		t.Error("Shutdown should not run when Init failed")
	}
}

func TestRunShutsDownOnInputFailure(t *testing.T) {
	tb := &trackingBackend{
		NullBackend: backend.NewNullBackend(10, 3),
		pollErr:     errors.New("read failed"),
	}
	app, err := New(Options{Backend: tb})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	out, err := app.Run(context.Background())
	var inputErr *loop.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("Run() error = %v, want *loop.InputError", err)
	}
	if out.IsSuccess() {
		t.Error("outcome should be a failure")
	}
	if tb.shutdowns != 1 {
		t.Errorf("Shutdown called %d times, want 1", tb.shutdowns)
	}
}

func TestRunClosedInput(t *testing.T) {
	nb := backend.NewNullBackend(10, 3)
	nb.Close()
	app, err := New(Options{Backend: nb})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, err := app.Run(context.Background()); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Run() error = %v, want ErrClosed", err)
	}
}

func TestRunInterrupted(t *testing.T) {
	app, _ := newTestApp(t, 10, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := app.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != loop.Interrupted {
		t.Errorf("outcome = %v, want interrupted", out)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.TabWidth = 0
	_, err := New(Options{Config: cfg, Backend: backend.NewNullBackend(1, 1)})
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "config" {
		t.Errorf("New() error = %v, want config InitError", err)
	}
}

func TestExitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   backend.Event
	}{
		{"escape", key(backend.KeyEscape)},
		{"ctrl+q", backend.KeyEvent(backend.KeyCtrlQ, 0, backend.ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, 10, 3)
			cmd := input(app, tt.ev)
			if cmd.Exit == nil || !cmd.Exit.IsSuccess() {
				t.Errorf("command = %+v, want success exit", cmd)
			}
		})
	}
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		name   string
		events []backend.Event
		want   cursor.Position
	}{
		{"down", []backend.Event{key(backend.KeyDown)}, cursor.Position{Line: 2, Col: 3}},
		{"up", []backend.Event{key(backend.KeyUp)}, cursor.Position{Line: 0, Col: 3}},
		{"left", []backend.Event{key(backend.KeyLeft)}, cursor.Position{Line: 1, Col: 2}},
		{"right wraps", []backend.Event{key(backend.KeyEnd), key(backend.KeyRight)}, cursor.Position{Line: 2, Col: 0}},
		{"home", []backend.Event{key(backend.KeyHome)}, cursor.Position{Line: 1, Col: 2}},
		{"end", []backend.Event{key(backend.KeyEnd)}, cursor.Position{Line: 1, Col: 6}},
		{"ctrl+home", []backend.Event{ctrlKey(backend.KeyHome)}, cursor.Position{Line: 0, Col: 0}},
		{"ctrl+end", []backend.Event{ctrlKey(backend.KeyEnd)}, cursor.Position{Line: 2, Col: 4}},
		{"tab", []backend.Event{key(backend.KeyTab)}, cursor.Position{Line: 1, Col: 4}},
		{"enter", []backend.Event{key(backend.KeyEnter)}, cursor.Position{Line: 2, Col: 0}},
		{"ctrl+j", []backend.Event{key(backend.KeyCtrlJ)}, cursor.Position{Line: 2, Col: 0}},
		{"backspace", []backend.Event{key(backend.KeyBackspace)}, cursor.Position{Line: 1, Col: 2}},
		{"rune", []backend.Event{backend.RuneEvent('z')}, cursor.Position{Line: 1, Col: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, 80, 24)
			input(app, backend.PasteEvent("abcd\n  efgh\nijkl"))
			app.Cursor().MoveUp()
			input(app, key(backend.KeyLeft))
			// Cursor now at (1, 3).

			cmd := input(app, tt.events...)
			if diff := cmp.Diff(tt.want, app.Cursor().Position()); diff != "" {
				t.Errorf("position (-want +got):\n%s", diff)
			}
			if !cmd.Redraw {
				t.Error("key should request a redraw")
			}
		})
	}
}

func TestDeleteKey(t *testing.T) {
	app, _ := newTestApp(t, 80, 24)
	input(app, backend.PasteEvent("abc"), ctrlKey(backend.KeyHome), key(backend.KeyDelete))
	if got := app.Document().Text(); got != "bc" {
		t.Errorf("Text() = %q, want %q", got, "bc")
	}
}

func TestIgnoredKeys(t *testing.T) {
	app, _ := newTestApp(t, 80, 24)
	cmd := input(app,
		backend.KeyEvent(backend.KeyRune, 'a', backend.ModCtrl),
		key(backend.KeyInsert),
		key(backend.KeyNone),
	)
	if !cmd.IsNone() {
		t.Errorf("command = %+v, want none", cmd)
	}
	if !app.Document().IsEmpty() {
		t.Errorf("Text() = %q, want empty", app.Document().Text())
	}
}

func TestPasteEvent(t *testing.T) {
	app, _ := newTestApp(t, 80, 24)
	cmd := input(app, backend.PasteEvent("a\r\nb\rc\nd"))
	if got := app.Document().Text(); got != "a\nb\nc\nd" {
		t.Errorf("Text() = %q", got)
	}
	if diff := cmp.Diff(cursor.Position{Line: 3, Col: 1}, app.Cursor().Position()); diff != "" {
		t.Errorf("position (-want +got):\n%s", diff)
	}
	if !cmd.Redraw {
		t.Error("paste should request a redraw")
	}
}

func TestMouseScroll(t *testing.T) {
	app, _ := newTestApp(t, 10, 5)
	input(app, backend.PasteEvent(strings.Repeat("line\n", 100)), ctrlKey(backend.KeyHome))

	steps := []struct {
		name    string
		ev      backend.Event
		top     int
		leftCol int
	}{
		{"wheel down", wheel(backend.MouseWheelDown, backend.ModNone), 1, 0},
		{"alt wheel down", wheel(backend.MouseWheelDown, backend.ModAlt), 11, 0},
		{"wheel up", wheel(backend.MouseWheelUp, backend.ModNone), 10, 0},
		{"shift wheel down", wheel(backend.MouseWheelDown, backend.ModShift), 10, 1},
		{"alt shift wheel down", wheel(backend.MouseWheelDown, backend.ModAlt|backend.ModShift), 10, 11},
		{"shift wheel up", wheel(backend.MouseWheelUp, backend.ModShift), 10, 10},
		{"wheel left", wheel(backend.MouseWheelLeft, backend.ModNone), 10, 9},
		{"alt wheel left saturates", wheel(backend.MouseWheelLeft, backend.ModAlt), 10, 0},
		{"wheel right", wheel(backend.MouseWheelRight, backend.ModNone), 10, 1},
		{"alt wheel up saturates", wheel(backend.MouseWheelUp, backend.ModAlt), 0, 1},
	}

	for _, s := range steps {
		cmd := input(app, s.ev)
		v := app.Viewport()
		if v.TopLine() != s.top || v.LeftColumn() != s.leftCol {
			t.Errorf("%s: anchor = (%d, %d), want (%d, %d)", s.name, v.TopLine(), v.LeftColumn(), s.top, s.leftCol)
		}
		if !cmd.Redraw {
			t.Errorf("%s: scroll should request a redraw", s.name)
		}
	}
	if diff := cmp.Diff(cursor.Position{}, app.Cursor().Position()); diff != "" {
		t.Errorf("scrolling moved the cursor (-want +got):\n%s", diff)
	}
}

func TestMouseScrollUsesConfiguredSteps(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.ShortScroll = 3
	cfg.Editor.LongScroll = 7
	app, err := New(Options{Config: cfg, Backend: backend.NewNullBackend(10, 5)})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	input(app, backend.PasteEvent(strings.Repeat("\n", 50)), ctrlKey(backend.KeyHome))

	input(app, wheel(backend.MouseWheelDown, backend.ModNone))
	if app.Viewport().TopLine() != 3 {
		t.Errorf("TopLine() = %d, want 3", app.Viewport().TopLine())
	}
	input(app, wheel(backend.MouseWheelDown, backend.ModAlt))
	if app.Viewport().TopLine() != 10 {
		t.Errorf("TopLine() = %d, want 10", app.Viewport().TopLine())
	}
}

func TestMouseClick(t *testing.T) {
	app, _ := newTestApp(t, 80, 24)
	input(app, backend.PasteEvent("abc\ndefgh"))

	input(app, backend.MouseEvent(2, 1, backend.MouseLeft, backend.ModNone))
	if diff := cmp.Diff(cursor.Position{Line: 1, Col: 2}, app.Cursor().Position()); diff != "" {
		t.Errorf("position (-want +got):\n%s", diff)
	}

	if cmd := input(app, backend.MouseEvent(0, 0, backend.MouseRight, backend.ModNone)); !cmd.IsNone() {
		t.Errorf("right button command = %+v, want none", cmd)
	}
}

func TestResizeEvent(t *testing.T) {
	app, _ := newTestApp(t, 80, 24)
	cmd := input(app, backend.ResizeEvent(40, 10))
	if app.Viewport().Width() != 40 || app.Viewport().Height() != 10 {
		t.Errorf("viewport = %dx%d, want 40x10", app.Viewport().Width(), app.Viewport().Height())
	}
	if !cmd.Redraw {
		t.Error("resize should request a redraw")
	}
}

func TestLifecycleEvents(t *testing.T) {
	app, nb := newTestApp(t, 10, 3)

	settings := loop.Settings{UpdateRate: loop.OnDemand}
	cmd, err := app.HandleEvent(loop.Event{Kind: loop.Begin, Settings: &settings})
	if err != nil || !cmd.Redraw {
		t.Errorf("Begin = %+v, %v; want redraw", cmd, err)
	}
	if !settings.UpdateRate.IsOnDemand() {
		t.Error("Begin should leave the update rate alone without a watcher")
	}

	cmd, _ = app.HandleEvent(loop.Event{Kind: loop.ExitRequested, Outcome: loop.Success()})
	if cmd.Cancel {
		t.Error("ExitRequested should proceed")
	}

	if _, err := app.HandleEvent(loop.Event{Kind: loop.Render}); err != nil {
		t.Fatalf("Render error = %v", err)
	}
	if nb.Shows() != 1 {
		t.Errorf("Shows() = %d, want 1", nb.Shows())
	}

	if cmd, _ := app.HandleEvent(loop.Event{Kind: loop.Update}); !cmd.IsNone() {
		t.Errorf("Update without watcher = %+v, want none", cmd)
	}
}

func TestConfigReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	app, err := New(Options{ConfigPath: path, Backend: backend.NewNullBackend(10, 3)})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.shutdown()

	settings := loop.Settings{UpdateRate: loop.OnDemand}
	_, _ = app.HandleEvent(loop.Event{Kind: loop.Begin, Settings: &settings})
	if settings.UpdateRate.IsOnDemand() {
		t.Error("Begin should enable periodic updates while watching config")
	}

	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 2\nshort_scroll = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for app.Cursor().TabWidth() != 2 {
		if time.Now().After(deadline) {
			t.Fatal("config change was not applied")
		}
		_, _ = app.HandleEvent(loop.Event{Kind: loop.Update})
		time.Sleep(10 * time.Millisecond)
	}
	if app.Config().Editor.ShortScroll != 5 {
		t.Errorf("ShortScroll = %d, want 5", app.Config().Editor.ShortScroll)
	}

	// A broken file keeps the running configuration.
	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	end := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(end) {
		_, _ = app.HandleEvent(loop.Event{Kind: loop.Update})
		time.Sleep(10 * time.Millisecond)
	}
	if app.Cursor().TabWidth() != 2 {
		t.Errorf("TabWidth() = %d, want 2 after rejected reload", app.Cursor().TabWidth())
	}
}
