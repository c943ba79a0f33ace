package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/intcalc/internal/orchestration"
	"github.com/agbru/intcalc/internal/toolkit"
)

// Tally accumulates sweep points as they are visited. The sweep goroutine
// writes it and the view samples it on every tick.
type Tally struct {
	mu        sync.Mutex
	count     int
	sentinels int
	last      orchestration.SweepPoint
}

// TallySnapshot is a consistent copy of a Tally.
type TallySnapshot struct {
	Count     int
	Sentinels int
	// Last is the most recent point. Its Args are nil before the first one.
	Last orchestration.SweepPoint
}

// Visit records p. It has the signature expected by orchestration.Sweep.
func (t *Tally) Visit(p orchestration.SweepPoint) {
	t.mu.Lock()
	t.count++
	if !p.Valid {
		t.sentinels++
	}
	t.last = p
	t.mu.Unlock()
}

// Snapshot returns the current totals.
func (t *Tally) Snapshot() TallySnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TallySnapshot{Count: t.count, Sentinels: t.sentinels, Last: t.last}
}

// SweepRequest describes the sweep shown by the view.
type SweepRequest struct {
	Op       toolkit.Operation
	From, To int32
	// Rest holds the arguments after the swept one.
	Rest    []int32
	Options []orchestration.ExecuteOption
}

// Total returns the number of points in the range.
func (r SweepRequest) Total() int {
	return int(int64(r.To) - int64(r.From) + 1)
}

// SweepDoneMsg is sent when orchestration.Sweep returns.
type SweepDoneMsg struct {
	Stats orchestration.SweepStats
	Err   error
}

// TickMsg triggers a refresh of the live figures.
type TickMsg time.Time

// RefreshInterval is the sampling period of the view.
const RefreshInterval = 200 * time.Millisecond

// sweepCmd runs the sweep feeding tally and reports its outcome.
func sweepCmd(ctx context.Context, req SweepRequest, tally *Tally) tea.Cmd {
	return func() tea.Msg {
		stats, err := orchestration.Sweep(ctx, req.Op, req.From, req.To, req.Rest, tally.Visit, req.Options...)
		return SweepDoneMsg{Stats: stats, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
