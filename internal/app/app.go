package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/intcalc/internal/cli"
	"github.com/agbru/intcalc/internal/config"
	apperrors "github.com/agbru/intcalc/internal/errors"
	"github.com/agbru/intcalc/internal/logging"
	"github.com/agbru/intcalc/internal/metrics"
	"github.com/agbru/intcalc/internal/orchestration"
	"github.com/agbru/intcalc/internal/toolkit"
	"github.com/agbru/intcalc/internal/ui"
)

// Application represents the intcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   toolkit.OperationFactory
	ErrWriter io.Writer
	// In feeds the REPL.
	In       io.Reader
	Logger   logging.Logger
	Recorder *metrics.Recorder
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom OperationFactory for the application.
func WithFactory(f toolkit.OperationFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger replaces the console logger built from --log-level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r *metrics.Recorder) AppOption {
	return func(a *Application) { a.Recorder = r }
}

// WithInput sets the REPL input.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = toolkit.NewDefaultFactory()
	}

	programName := "intcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, orchestration.Selectors(app.Factory))
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, apperrors.NewConfigError("%v", err)
		}
		app.Logger = logging.NewConsoleLogger(errWriter, "intcalc", level)
	}
	if app.Recorder == nil {
		app.Recorder = metrics.NewRecorder()
	}
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	var code int
	switch {
	case a.Config.List:
		cli.DisplayCatalogue(out, a.Factory.GetAll(), a.Config.NoColor)
		return apperrors.ExitSuccess
	case a.Config.REPL:
		code = a.runREPL(out)
	case a.Config.Sweep && a.Config.TUI:
		code = a.runSweepDashboard(ctx, out)
	case a.Config.Sweep:
		code = a.runSweep(ctx, out)
	default:
		code = a.runEvaluate(ctx, out)
	}

	if a.Config.Metrics {
		a.writeMetrics(out)
	}
	return code
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, orchestration.Selectors(a.Factory)); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultOp: a.Config.Op,
		Timeout:   a.Config.Timeout,
		Details:   a.Config.Details,
		NoColor:   a.Config.NoColor,
	}, a.executeOptions()...)
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// writeMetrics prints the Prometheus exposition of this run. Go runtime
// families are included in verbose mode only.
func (a *Application) writeMetrics(out io.Writer) {
	if !a.Config.Quiet {
		fmt.Fprintf(out, "\n--- Metrics ---\n")
	}
	if err := a.Recorder.WriteText(out, a.Config.Verbose); err != nil {
		a.Logger.Error("writing metrics failed", err)
	}
}

func (a *Application) executeOptions() []orchestration.ExecuteOption {
	return []orchestration.ExecuteOption{
		orchestration.WithRecorder(a.Recorder),
		orchestration.WithLogger(a.Logger),
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
