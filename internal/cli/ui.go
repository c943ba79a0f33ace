//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/intcalc/internal/format"
	"github.com/agbru/intcalc/internal/orchestration"
	"github.com/agbru/intcalc/internal/progress"
	"github.com/agbru/intcalc/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so that DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState holds the progress of each concurrent evaluation and their
// average.
type ProgressState struct {
	progresses    []float64
	numOperations int
}

// NewProgressState creates a ProgressState tracking numOperations evaluations.
func NewProgressState(numOperations int) *ProgressState {
	return &ProgressState{
		progresses:    make([]float64, numOperations),
		numOperations: numOperations,
	}
}

// Update records a new progress value for an evaluation. Out-of-range
// indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the average progress (0.0 to 1.0).
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numOperations == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numOperations)
}

// Done returns the number of evaluations that reported completion.
func (ps *ProgressState) Done() int {
	n := 0
	for _, p := range ps.progresses {
		if p >= 1.0 {
			n++
		}
	}
	return n
}

// progressBar renders a textual progress bar of the given width.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0.0), 1.0)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress shows a spinner and an aggregated progress bar until
// progressChan is closed, then prints the final state and calls wg.Done.
//
// Parameters:
//   - wg: Signaled when the display has finished.
//   - progressChan: Progress updates from the evaluations.
//   - numOperations: The number of evaluations being tracked.
//   - out: The writer for the spinner and the final line.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numOperations int, out io.Writer) {
	defer wg.Done()
	if numOperations <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressState(numOperations)
	s := newSpinner(spinner.WithWriter(out))
	suffix := func() string {
		avg := state.CalculateAverage()
		return fmt.Sprintf(" Evaluating %d/%d %s %6.2f%%",
			state.Done(), numOperations, progressBar(avg, ProgressBarWidth), avg*100)
	}
	s.UpdateSuffix(suffix())
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				avg := state.CalculateAverage()
				fmt.Fprintf(out, "%s✓%s %d/%d evaluations finished %s %6.2f%%\n",
					ui.ColorGreen(), ui.ColorReset(), state.Done(), numOperations,
					progressBar(avg, ProgressBarWidth), avg*100)
				return
			}
			state.Update(update.OperationIndex, update.Value)
			s.UpdateSuffix(suffix())
		case <-ticker.C:
			s.UpdateSuffix(suffix())
		}
	}
}

// FormatCall renders an evaluation as name(a, b).
func FormatCall(name string, args []int32) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%d", a)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// DisplayResult prints the result of an evaluation.
//
// Parameters:
//   - res: The evaluation to display.
//   - details: Adds family, input path, duration and alternate bases.
//   - out: The destination writer.
func DisplayResult(res orchestration.EvaluationResult, details bool, out io.Writer) {
	fmt.Fprintf(out, "\n%s%s%s = %s%s%s", ui.ColorBlue(), FormatCall(res.Name, res.Args), ui.ColorReset(),
		ui.ColorGreen(), format.FormatInt32(res.Value), ui.ColorReset())
	if !res.Valid {
		fmt.Fprintf(out, " %s(sentinel: input outside the operation's domain)%s", ui.ColorYellow(), ui.ColorReset())
	}
	fmt.Fprintln(out)

	if !details {
		return
	}
	path := "regular"
	if !res.Valid {
		path = "sentinel"
	}
	fmt.Fprintf(out, "%sDetailed result:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Family:         %s%s%s\n", ui.ColorCyan(), res.Family, ui.ColorReset())
	fmt.Fprintf(out, "  Input path:     %s%s%s\n", ui.ColorCyan(), path, ui.ColorReset())
	fmt.Fprintf(out, "  Evaluation time: %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())
	fmt.Fprintf(out, "  Hexadecimal:    %s%#x%s\n", ui.ColorCyan(), uint32(res.Value), ui.ColorReset())
	fmt.Fprintf(out, "  Binary:         %s%032b%s\n", ui.ColorCyan(), uint32(res.Value), ui.ColorReset())
}
