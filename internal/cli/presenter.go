package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/intcalc/internal/errors"
	"github.com/agbru/intcalc/internal/format"
	"github.com/agbru/intcalc/internal/orchestration"
	"github.com/agbru/intcalc/internal/progress"
	"github.com/agbru/intcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing evaluations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numOperations int, out io.Writer) {
	DisplayProgress(wg, progressChan, numOperations, out)
}

// CLIColorProvider implements apperrors.ColorProvider with the current theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

func durationCell(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// PresentComparisonTable displays operation names, durations, values and
// status in a table. Padding is computed by hand since the cells carry ANSI
// color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.EvaluationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameW, durW, valW := len("Operation"), len("Duration"), len("Value")
	for _, res := range results {
		nameW = max(nameW, len(res.Name))
		durW = max(durW, len(durationCell(res.Duration)))
		if res.Err == nil {
			valW = max(valW, len(format.FormatInt32(res.Value)))
		}
	}

	fmt.Fprintf(out, "%sOperation%s%s   %sDuration%s%s   %sValue%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", nameW-len("Operation")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", durW-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", valW-len("Value")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		value := "-"
		var status string
		switch {
		case res.Err != nil:
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		case !res.Valid:
			value = format.FormatInt32(res.Value)
			status = fmt.Sprintf("%s⚠ Sentinel%s", ui.ColorYellow(), ui.ColorReset())
		default:
			value = format.FormatInt32(res.Value)
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := durationCell(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", nameW-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", durW-len(duration)),
			padRight(value, valW-len(value)),
			status)
	}
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays one result with DisplayResult.
func (CLIResultPresenter) PresentResult(result orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts.Details, out)
}

// PresentDivergence lists the variants of a family that disagree because of
// a sentinel path.
func (CLIResultPresenter) PresentDivergence(family string, results []orchestration.EvaluationResult, out io.Writer) {
	fmt.Fprintf(out, "\n%sExpected divergence in family %s%s: at least one variant rejects this input.\n",
		ui.ColorYellow(), family, ui.ColorReset())
	for _, r := range results {
		path := ui.ColorGreen() + "valid" + ui.ColorReset()
		if !r.Valid {
			path = ui.ColorYellow() + "sentinel" + ui.ColorReset()
		}
		fmt.Fprintf(out, "  %s%s%s = %s  [%s]\n", ui.ColorBlue(), FormatCall(r.Name, r.Args), ui.ColorReset(),
			format.FormatInt32(r.Value), path)
	}
}

// HandleError maps an evaluation error to an exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// QuietResultPresenter prints bare values for scripts. Messages from
// HandleError go to ErrWriter.
type QuietResultPresenter struct {
	ErrWriter io.Writer
}

var (
	_ orchestration.ResultPresenter = QuietResultPresenter{}
	_ orchestration.ErrorHandler    = QuietResultPresenter{}
)

// PresentComparisonTable prints nothing.
func (QuietResultPresenter) PresentComparisonTable([]orchestration.EvaluationResult, io.Writer) {}

// PresentResult prints the value alone.
func (QuietResultPresenter) PresentResult(result orchestration.EvaluationResult, _ orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintln(out, result.Value)
}

// PresentDivergence prints one "name value" line per variant.
func (QuietResultPresenter) PresentDivergence(_ string, results []orchestration.EvaluationResult, out io.Writer) {
	for _, r := range results {
		fmt.Fprintf(out, "%s %d\n", r.Name, r.Value)
	}
}

// HandleError writes an uncolored status to ErrWriter.
func (q QuietResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	w := q.ErrWriter
	if w == nil {
		w = io.Discard
	}
	return apperrors.HandleCalculationError(err, duration, w, noColor{})
}

type noColor struct{}

func (noColor) Red() string    { return "" }
func (noColor) Yellow() string { return "" }
func (noColor) Reset() string  { return "" }
