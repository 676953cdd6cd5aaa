// Package main is the entry point for the quill editor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

var errNotTerminal = errors.New("quill must run in a terminal")

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit status.
func run(args []string) int {
	status := 0
	cmd := newRootCmd(&status)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if status == 0 {
			status = 1
		}
	}
	return status
}

type flags struct {
	configPath     string
	logLevel       string
	logFile        string
	updateInterval time.Duration
	renderInterval time.Duration
	idleWait       time.Duration
}

func newRootCmd(status *int) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "quill",
		Short: "A small terminal text editor",
		Long: `quill edits an in-memory document in the terminal.

Settings are read from the config file, then QUILL_* environment
variables, then flags. Press Esc or Ctrl+Q to quit.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := loadConfig(cmd, &f)
			if err != nil {
				return err
			}
			code, err := edit(cmd.Context(), cfg, path)
			*status = code
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "Path to configuration file (default $XDG_CONFIG_HOME/quill/config.toml)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	fs.DurationVar(&f.updateInterval, "update-interval", 0, "Update tick period (0 for on demand)")
	fs.DurationVar(&f.renderInterval, "render-interval", 0, "Render tick period (0 for on demand)")
	fs.DurationVar(&f.idleWait, "idle-wait", 0, "Longest idle sleep between iterations (0 polls continuously)")

	return cmd
}

// loadConfig layers the config file and environment, then any flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, string, error) {
	path := f.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.NewLoader(path).Load()
	if err != nil {
		return nil, "", err
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("log-file") {
		cfg.Logging.File = f.logFile
	}
	if changed("update-interval") {
		cfg.Loop.UpdateInterval = config.Duration(f.updateInterval)
	}
	if changed("render-interval") {
		cfg.Loop.RenderInterval = config.Duration(f.renderInterval)
	}
	if changed("idle-wait") {
		cfg.Loop.IdleWait = config.Duration(f.idleWait)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// edit runs the editor and returns its exit status.
func edit(ctx context.Context, cfg *config.Config, configPath string) (int, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return 1, errNotTerminal
	}

	logger, closer, err := app.NewLogger(cfg.Logging)
	if err != nil {
		return 1, err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	editor, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
	})
	if err != nil {
		return 1, err
	}

	out, err := editor.Run(ctx)
	if err != nil {
		return out.ExitStatus(), err
	}
	return out.ExitStatus(), nil
}
