package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/intcalc/internal/progress"
)

// EvaluationResult encapsulates the outcome of a single operation evaluation.
// It serves as the shared domain type between orchestration and presentation layers.
type EvaluationResult struct {
	// Name is the identifier of the operation (e.g. "power-recursive").
	Name string
	// Family is the family the operation belongs to (e.g. "power").
	Family string
	// Args are the arguments the operation was called with.
	Args []int32
	// Value is the returned value. It is meaningless if Err is set.
	Value int32
	// Valid is false when the input took the operation's sentinel path.
	Valid bool
	// Duration is the time taken by the evaluation.
	Duration time.Duration
	// Err contains any error that occurred during the evaluation.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// Verbose presents every variant of a family, not only the fastest.
	Verbose bool
	// Details asks the presenter for extended information on each result.
	Details bool
	// Quiet suppresses the status lines written by AnalyzeComparisonResults.
	Quiet bool
}

// ProgressReporter defines the interface for displaying evaluation progress.
// Implementations handle the visual representation of progress (spinners,
// progress bars) while the orchestration layer coordinates the evaluations.
type ProgressReporter interface {
	// DisplayProgress consumes progress updates until progressChan is
	// closed, then calls wg.Done.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates.
	//   - numOperations: The number of concurrent operations being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numOperations int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numOperations int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numOperations int, out io.Writer) {
	f(wg, progressChan, numOperations, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ResultPresenter defines the interface for presenting evaluation results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []EvaluationResult, out io.Writer)

	// PresentResult displays the agreed result of a family.
	PresentResult(result EvaluationResult, opts PresentationOptions, out io.Writer)

	// PresentDivergence displays a family whose variants disagree because
	// at least one of them took its sentinel path.
	PresentDivergence(family string, results []EvaluationResult, out io.Writer)
}

// ErrorHandler handles evaluation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// Recorder receives evaluation metrics. *metrics.Recorder satisfies it.
type Recorder interface {
	Begin()
	End()
	Observe(operation string, valid bool, d time.Duration)
}

// NullRecorder discards every observation.
type NullRecorder struct{}

// Begin does nothing.
func (NullRecorder) Begin() {}

// End does nothing.
func (NullRecorder) End() {}

// Observe discards the observation.
func (NullRecorder) Observe(string, bool, time.Duration) {}
