package orchestration

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/intcalc/internal/errors"
	"github.com/agbru/intcalc/internal/logging"
	"github.com/agbru/intcalc/internal/toolkit"
)

// SweepPoint is one evaluation of a sweep.
type SweepPoint struct {
	Args  []int32
	Value int32
	Valid bool
}

// SweepStats summarizes a sweep, complete or interrupted.
type SweepStats struct {
	Operation string
	// Count is the number of points evaluated.
	Count int
	// Sentinels counts the points whose input took the sentinel path.
	Sentinels int
	Duration  time.Duration
}

// Sweep evaluates op(x, rest...) for every x in [from, to] in increasing
// order and calls visit with each point. visit runs on the caller's
// goroutine.
//
// The context is checked between points. A point already running when ctx
// ends finishes in the background and is discarded; the returned error is
// then a TimeoutError or wraps context.Canceled, and the stats cover the
// points visited so far.
func Sweep(ctx context.Context, op toolkit.Operation, from, to int32, rest []int32, visit func(SweepPoint), opts ...ExecuteOption) (SweepStats, error) {
	o := newExecuteOptions(opts)
	stats := SweepStats{Operation: op.Name()}
	if from > to {
		return stats, apperrors.ValidationError{Field: "sweep", Message: "from must not exceed to"}
	}
	if want := toolkit.Arity(op); len(rest)+1 != want {
		return stats, apperrors.ValidationError{
			Field:   op.Name(),
			Message: "sweep needs one argument less than the operation's arity",
		}
	}

	ctx, span := o.tracer.Start(ctx, "sweep "+op.Name(), trace.WithAttributes(
		attribute.Int64("intcalc.sweep.from", int64(from)),
		attribute.Int64("intcalc.sweep.to", int64(to)),
		attribute.IntSlice("intcalc.args", toInts(rest)),
	))
	defer span.End()

	points := make(chan SweepPoint)
	failed := make(chan error, 1)
	start := time.Now()
	go produceSweep(ctx, op, from, to, rest, o.recorder, points, failed)

	for {
		select {
		case p, ok := <-points:
			if !ok {
				stats.Duration = time.Since(start)
				span.SetAttributes(attribute.Int("intcalc.sweep.count", stats.Count))
				o.logger.Debug("sweep done",
					logging.String("operation", op.Name()),
					logging.Int("count", stats.Count),
					logging.Int("sentinels", stats.Sentinels))
				return stats, nil
			}
			stats.Count++
			if !p.Valid {
				stats.Sentinels++
			}
			visit(p)
		case err := <-failed:
			stats.Duration = time.Since(start)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return stats, err
		case <-ctx.Done():
			stats.Duration = time.Since(start)
			err := contextError(ctx, op.Name(), start)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return stats, err
		}
	}
}

// produceSweep evaluates the sweep points and sends them on points, which it
// closes when the range is exhausted. It stops early once ctx is done.
func produceSweep(ctx context.Context, op toolkit.Operation, from, to int32, rest []int32, recorder Recorder, points chan<- SweepPoint, failed chan<- error) {
	args := make([]int32, 1+len(rest))
	copy(args[1:], rest)
	// int64 so that to == math.MaxInt32 terminates.
	for x := int64(from); x <= int64(to); x++ {
		if ctx.Err() != nil {
			return
		}
		args[0] = int32(x)
		valid := op.Valid(args)
		recorder.Begin()
		t0 := time.Now()
		v, err := op.Evaluate(args)
		recorder.End()
		if err != nil {
			failed <- apperrors.CalculationError{Operation: op.Name(), Cause: err}
			return
		}
		recorder.Observe(op.Name(), valid, time.Since(t0))

		p := SweepPoint{Args: append([]int32(nil), args...), Value: v, Valid: valid}
		select {
		case points <- p:
		case <-ctx.Done():
			return
		}
	}
	close(points)
}
