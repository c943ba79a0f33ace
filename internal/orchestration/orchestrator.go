package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/intcalc/internal/errors"
	"github.com/agbru/intcalc/internal/logging"
	"github.com/agbru/intcalc/internal/progress"
	"github.com/agbru/intcalc/internal/toolkit"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. Each evaluation sends at most this many updates, so senders never
// block on a slow reporter.
const ProgressBufferMultiplier = 5

// TracerName is the instrumentation scope of the evaluation spans.
const TracerName = "github.com/agbru/intcalc/internal/orchestration"

type executeOptions struct {
	recorder Recorder
	tracer   trace.Tracer
	logger   logging.Logger
}

// ExecuteOption configures ExecuteEvaluations and Sweep.
type ExecuteOption func(*executeOptions)

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) ExecuteOption {
	return func(o *executeOptions) { o.recorder = r }
}

// WithTracer sets the tracer used for evaluation spans. The default is the
// global provider's tracer.
func WithTracer(t trace.Tracer) ExecuteOption {
	return func(o *executeOptions) { o.tracer = t }
}

// WithLogger sets the logger for per-evaluation debug records.
func WithLogger(l logging.Logger) ExecuteOption {
	return func(o *executeOptions) { o.logger = l }
}

func newExecuteOptions(opts []ExecuteOption) executeOptions {
	o := executeOptions{recorder: NullRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(TracerName)
	}
	if o.logger == nil {
		o.logger = logging.NewLogger(io.Discard, "orchestration")
	}
	return o
}

// ExecuteEvaluations orchestrates the concurrent evaluation of one or more
// operations on the same arguments.
//
// Every operation runs in its own goroutine. When ctx ends before an
// operation returns, its result carries a TimeoutError (deadline) or
// context.Canceled and the function keeps running in the background until it
// returns, since toolkit functions cannot be interrupted.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - ops: The operations to evaluate.
//   - args: The arguments passed to every operation.
//   - progressReporter: The progress reporter (NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//   - opts: Metrics, tracing and logging options.
//
// Returns:
//   - []EvaluationResult: One result per operation, in the order of ops.
func ExecuteEvaluations(ctx context.Context, ops []toolkit.Operation, args []int32, progressReporter ProgressReporter, out io.Writer, opts ...ExecuteOption) []EvaluationResult {
	o := newExecuteOptions(opts)
	g, ctx := errgroup.WithContext(ctx)
	results := make([]EvaluationResult, len(ops))
	progressChan := make(chan progress.ProgressUpdate, len(ops)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(ops), out)

	for i, op := range ops {
		g.Go(func() error {
			progressChan <- progress.ProgressUpdate{OperationIndex: i, Value: 0}
			results[i] = evaluate(ctx, op, args, o)
			progressChan <- progress.ProgressUpdate{OperationIndex: i, Value: 1}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

type evaluation struct {
	value    int32
	err      error
	duration time.Duration
}

// evaluate runs a single operation inside a span and waits for it or for ctx.
func evaluate(ctx context.Context, op toolkit.Operation, args []int32, o executeOptions) EvaluationResult {
	ctx, span := o.tracer.Start(ctx, op.Name(), trace.WithAttributes(
		attribute.String("intcalc.family", op.Family()),
		attribute.IntSlice("intcalc.args", toInts(args)),
	))
	defer span.End()

	res := EvaluationResult{
		Name:   op.Name(),
		Family: op.Family(),
		Args:   append([]int32(nil), args...),
		Valid:  op.Valid(args),
	}

	done := make(chan evaluation, 1)
	start := time.Now()
	go func() {
		o.recorder.Begin()
		v, err := op.Evaluate(args)
		d := time.Since(start)
		o.recorder.End()
		if err != nil {
			err = apperrors.CalculationError{Operation: op.Name(), Cause: err}
		} else {
			o.recorder.Observe(op.Name(), res.Valid, d)
		}
		done <- evaluation{value: v, err: err, duration: d}
	}()

	select {
	case ev := <-done:
		res.Value, res.Err, res.Duration = ev.value, ev.err, ev.duration
	case <-ctx.Done():
		res.Duration = time.Since(start)
		res.Err = contextError(ctx, op.Name(), start)
	}

	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
		o.logger.Debug("evaluation failed",
			logging.String("operation", op.Name()),
			logging.Err(res.Err))
		return res
	}
	span.SetAttributes(
		attribute.Int64("intcalc.result", int64(res.Value)),
		attribute.Bool("intcalc.valid", res.Valid),
	)
	o.logger.Debug("evaluation done",
		logging.String("operation", op.Name()),
		logging.Int32("value", res.Value),
		logging.String("duration", res.Duration.String()))
	return res
}

// contextError converts the end of ctx into the error reported for the
// operation started at start.
func contextError(ctx context.Context, name string, start time.Time) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		limit := time.Since(start)
		if deadline, ok := ctx.Deadline(); ok {
			limit = deadline.Sub(start)
		}
		return apperrors.TimeoutError{Operation: name, Limit: limit.Round(time.Millisecond)}
	}
	return apperrors.WrapError(ctx.Err(), "evaluation of %s interrupted", name)
}

func toInts(args []int32) []int {
	out := make([]int, len(args))
	for i, a := range args {
		out[i] = int(a)
	}
	return out
}

// AnalyzeComparisonResults processes the results of one or more operations
// and generates a summary report.
//
// It sorts the results (successes first, then by duration), displays the
// comparison table and checks, family by family, that the variants agree.
// Variants that disagree while all of them consider the input valid are an
// inconsistency. When at least one of them took its sentinel path the
// disagreement is expected and reported as a divergence.
//
// Parameters:
//   - results: The evaluation results to analyze.
//   - opts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: Maps the first error to an exit code when nothing succeeded.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []EvaluationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sortResults(results)

	var firstError error
	successCount := 0
	for _, r := range results {
		if r.Err != nil {
			if firstError == nil {
				firstError = r.Err
			}
			continue
		}
		successCount++
	}

	presenter.PresentComparisonTable(results, out)
	status := func(format string, a ...any) {
		if !opts.Quiet {
			fmt.Fprintf(out, format, a...)
		}
	}

	if successCount == 0 {
		status("\nGlobal Status: Failure. No operation could complete the evaluation.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	families := GroupByFamily(results)
	var mismatched []string
	for _, fam := range families {
		if fam.Agree() {
			continue
		}
		if fam.AllValid() {
			mismatched = append(mismatched, fam.Name)
		}
	}
	if len(mismatched) > 0 {
		status("\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the variants of: %v\n", mismatched)
		return apperrors.ExitErrorMismatch
	}

	status("\nGlobal Status: Success. All valid results are consistent.\n")
	for _, fam := range families {
		switch {
		case !fam.Agree():
			presenter.PresentDivergence(fam.Name, fam.Results, out)
		case opts.Verbose:
			for _, r := range fam.Results {
				presenter.PresentResult(r, opts, out)
			}
		default:
			presenter.PresentResult(fam.Results[0], opts, out)
		}
	}
	return apperrors.ExitSuccess
}

// sortResults orders successes first, then by increasing duration. Ties keep
// their relative order.
func sortResults(results []EvaluationResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})
}

// FamilyResults holds the successful results of one family.
type FamilyResults struct {
	Name    string
	Results []EvaluationResult
}

// Agree reports whether every variant returned the same value.
func (f FamilyResults) Agree() bool {
	for _, r := range f.Results[1:] {
		if r.Value != f.Results[0].Value {
			return false
		}
	}
	return true
}

// AllValid reports whether every variant took its regular path.
func (f FamilyResults) AllValid() bool {
	for _, r := range f.Results {
		if !r.Valid {
			return false
		}
	}
	return true
}

// GroupByFamily groups the successful results by family, sorted by family
// name. Within a family the results keep their order. Failed results are
// skipped and families with no success are omitted.
func GroupByFamily(results []EvaluationResult) []FamilyResults {
	index := make(map[string]int)
	var families []FamilyResults
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		i, ok := index[r.Family]
		if !ok {
			i = len(families)
			index[r.Family] = i
			families = append(families, FamilyResults{Name: r.Family})
		}
		families[i].Results = append(families[i].Results, r)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].Name < families[j].Name })
	return families
}
