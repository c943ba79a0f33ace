package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/intcalc/internal/cli"
	apperrors "github.com/agbru/intcalc/internal/errors"
	"github.com/agbru/intcalc/internal/format"
	"github.com/agbru/intcalc/internal/logging"
	"github.com/agbru/intcalc/internal/orchestration"
	"github.com/agbru/intcalc/internal/toolkit"
	"github.com/agbru/intcalc/internal/tui"
)

// lifecycle bounds ctx by the configured timeout and by SIGINT/SIGTERM.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runEvaluate evaluates the selected operations on the positional arguments
// and compares the variants.
func (a *Application) runEvaluate(ctx context.Context, out io.Writer) int {
	if len(a.Config.Args) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: no arguments given. Try --list to see the operations and their arguments.\n")
		return apperrors.ExitErrorConfig
	}

	ops := orchestration.GetOperationsToRun(a.Config.Op, len(a.Config.Args), a.Factory)
	if len(ops) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: no operation %q takes %d argument(s).\n", a.Config.Op, len(a.Config.Args))
		return apperrors.ExitErrorConfig
	}

	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(ops, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	a.Logger.Debug("evaluating",
		logging.String("selector", a.Config.Op),
		logging.Int("operations", len(ops)),
		logging.String("args", fmt.Sprint(a.Config.Args)))
	results := orchestration.ExecuteEvaluations(ctx, ops, a.Config.Args, progressReporter, progressOut, a.executeOptions()...)

	presOpts := orchestration.PresentationOptions{
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
		Quiet:   a.Config.Quiet,
	}
	var presenter orchestration.ResultPresenter = cli.CLIResultPresenter{}
	var errHandler orchestration.ErrorHandler = cli.CLIResultPresenter{}
	if a.Config.Quiet {
		quiet := cli.QuietResultPresenter{ErrWriter: a.ErrWriter}
		presenter, errHandler = quiet, quiet
	}

	code := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, errHandler, out)
	a.Logger.Info("evaluation finished", logging.Int("exit_code", code))
	return code
}

// sweepOperation resolves the single operation a sweep runs. ok is false
// when the selector matches zero or several operations.
func (a *Application) sweepOperation() (op toolkit.Operation, ok bool) {
	ops := orchestration.GetOperationsToRun(a.Config.Op, len(a.Config.Args)+1, a.Factory)
	if len(ops) != 1 {
		fmt.Fprintf(a.ErrWriter, "Error: sweep mode needs exactly one operation, %q selects %d.\n", a.Config.Op, len(ops))
		return nil, false
	}
	return ops[0], true
}

// runSweepDashboard runs a sweep behind the interactive dashboard.
func (a *Application) runSweepDashboard(ctx context.Context, out io.Writer) int {
	op, ok := a.sweepOperation()
	if !ok {
		return apperrors.ExitErrorConfig
	}

	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	code := tui.Run(ctx, tui.SweepRequest{
		Op:      op,
		From:    a.Config.SweepFrom,
		To:      a.Config.SweepTo,
		Rest:    a.Config.Args,
		Options: a.executeOptions(),
	}, a.Config.NoColor, a.In, out)
	a.Logger.Info("sweep dashboard closed",
		logging.String("operation", op.Name()),
		logging.Int("exit_code", code))
	return code
}

// runSweep evaluates one operation over a range of first arguments.
func (a *Application) runSweep(ctx context.Context, out io.Writer) int {
	op, ok := a.sweepOperation()
	if !ok {
		return apperrors.ExitErrorConfig
	}

	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		fmt.Fprintf(out, "\n--- Starting Execution ---\n")
	}

	w := bufio.NewWriter(out)
	visit := func(p orchestration.SweepPoint) {
		if a.Config.Quiet {
			fmt.Fprintf(w, "%d %d\n", p.Args[0], p.Value)
			return
		}
		note := ""
		if !p.Valid {
			note = "  [sentinel]"
		}
		fmt.Fprintf(w, "%s = %s%s\n", cli.FormatCall(op.Name(), p.Args), format.FormatInt32(p.Value), note)
	}

	stats, err := orchestration.Sweep(ctx, op, a.Config.SweepFrom, a.Config.SweepTo, a.Config.Args, visit, a.executeOptions()...)
	if flushErr := w.Flush(); flushErr != nil {
		a.Logger.Error("writing sweep output failed", flushErr)
	}
	a.Logger.Info("sweep finished",
		logging.String("operation", op.Name()),
		logging.Int("count", stats.Count),
		logging.Int("sentinels", stats.Sentinels),
		logging.Float64("seconds", stats.Duration.Seconds()))

	if err != nil {
		if a.Config.Quiet {
			return cli.QuietResultPresenter{ErrWriter: a.ErrWriter}.HandleError(err, stats.Duration, out)
		}
		if apperrors.IsContextError(err) {
			fmt.Fprintf(out, "\nSweep interrupted after %d value(s).\n", stats.Count)
		} else {
			fmt.Fprintf(out, "\nSweep stopped after %d value(s).\n", stats.Count)
		}
		return cli.CLIResultPresenter{}.HandleError(err, stats.Duration, out)
	}

	if !a.Config.Quiet {
		fmt.Fprintf(out, "\nSwept %d value(s) in %s, %d sentinel result(s).\n",
			stats.Count, format.FormatExecutionDuration(stats.Duration), stats.Sentinels)
	}
	return apperrors.ExitSuccess
}
