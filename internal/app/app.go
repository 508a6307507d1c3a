package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/scrapster/internal/cli"
	"github.com/agbru/scrapster/internal/config"
	"github.com/agbru/scrapster/internal/counters"
	apperrors "github.com/agbru/scrapster/internal/errors"
	"github.com/agbru/scrapster/internal/logging"
	"github.com/agbru/scrapster/internal/ui"
)

// Application represents the scrapster application instance.
type Application struct {
	Config    config.AppConfig
	Source    counters.Source
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSource sets the counter source instead of resolving -source.
func WithSource(src counters.Source) AppOption {
	return func(a *Application) { a.Source = src }
}

// WithLogger sets the application logger instead of the console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "scrapster"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Source == nil && cfg.Completion == "" {
		src, err := counters.New(cfg.Source, cfg.ProcRoot)
		if err != nil {
			fmt.Fprintln(errWriter, "Error:", err)
			return nil, err
		}
		app.Source = src
	}
	if app.Logger == nil {
		app.Logger = newLogger(cfg, errWriter)
	}
	return app, nil
}

// newLogger picks the log format: JSON lines next to -json output, the
// console writer otherwise.
func newLogger(cfg config.AppConfig, w io.Writer) logging.Logger {
	if cfg.JSON {
		return logging.NewLogger(w, "scrapster", logLevel(cfg))
	}
	return logging.NewConsoleLogger(w, "scrapster", logLevel(cfg), cfg.NoColor)
}

// logLevel maps the output flags to a log level: debug with -v, errors only
// when the output is meant for scripts.
func logLevel(cfg config.AppConfig) zerolog.Level {
	switch {
	case cfg.Verbose:
		return zerolog.DebugLevel
	case cfg.Quiet || cfg.JSON:
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor || a.Config.JSON)
	return a.runSample(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, counters.Available()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (-h was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
