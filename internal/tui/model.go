// Package tui shows a sweep as a live bubbletea dashboard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/intcalc/internal/cli"
	apperrors "github.com/agbru/intcalc/internal/errors"
	"github.com/agbru/intcalc/internal/format"
	"github.com/agbru/intcalc/internal/orchestration"
)

const (
	rateHistory  = 40
	barWidth     = 30
	defaultWidth = 72
)

// plainColors renders error messages without escape sequences.
type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }

// Model is the bubbletea model of the live sweep view.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	req    SweepRequest
	keys   KeyMap

	tally     *Tally
	snap      TallySnapshot
	rates     *RingBuffer
	lastCount int
	lastTick  time.Time

	start    time.Time
	elapsed  time.Duration
	paused   bool
	done     bool
	stats    orchestration.SweepStats
	errText  string
	exitCode int
	width    int
}

// NewModel creates a view for req. The sweep starts when the program calls
// Init and stops when ctx is done or the user quits.
func NewModel(ctx context.Context, req SweepRequest) Model {
	ctx, cancel := context.WithCancel(ctx)
	now := time.Now()
	return Model{
		ctx:      ctx,
		cancel:   cancel,
		req:      req,
		keys:     DefaultKeyMap(),
		tally:    &Tally{},
		rates:    NewRingBuffer(rateHistory),
		lastTick: now,
		start:    now,
		exitCode: apperrors.ExitErrorCanceled,
		width:    defaultWidth,
	}
}

// Init starts the sweep and the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(sweepCmd(m.ctx, m.req, m.tally), tickCmd())
}

// Update handles key presses, ticks and the sweep outcome.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			if !m.done {
				m.paused = !m.paused
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		now := time.Time(msg)
		m.elapsed = now.Sub(m.start)
		if !m.paused {
			m.sample(now)
		}
		return m, tickCmd()

	case SweepDoneMsg:
		m.done = true
		m.paused = false
		m.stats = msg.Stats
		m.elapsed = msg.Stats.Duration
		m.snap = m.tally.Snapshot()
		m.exitCode = apperrors.ExitSuccess
		if msg.Err != nil {
			var sb strings.Builder
			m.exitCode = apperrors.HandleCalculationError(msg.Err, msg.Stats.Duration, &sb, plainColors{})
			m.errText = strings.TrimSpace(sb.String())
		}
		return m, nil
	}
	return m, nil
}

// sample refreshes the snapshot and records the evaluation rate since the
// previous tick.
func (m *Model) sample(now time.Time) {
	m.snap = m.tally.Snapshot()
	if dt := now.Sub(m.lastTick).Seconds(); dt > 0 {
		m.rates.Push(float64(m.snap.Count-m.lastCount) / dt)
	}
	m.lastCount = m.snap.Count
	m.lastTick = now
}

// ExitCode returns the process exit code for the sweep. It is
// ExitErrorCanceled until the sweep has finished.
func (m Model) ExitCode() int { return m.exitCode }

// Done reports whether the sweep has finished.
func (m Model) Done() bool { return m.done }

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	title := titleStyle.Render("intcalc sweep · " + m.req.Op.Name())
	clock := dimStyle.Render("Elapsed: " + format.FormatExecutionDuration(m.elapsed.Truncate(time.Millisecond)))
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(clock)-4, 1)
	b.WriteString(title + strings.Repeat(" ", gap) + clock + "\n\n")

	total := m.req.Total()
	ratio := 0.0
	if total > 0 {
		ratio = float64(m.snap.Count) / float64(total)
	}
	b.WriteString(renderBar(ratio) + fmt.Sprintf(" %5.1f%%\n\n", ratio*100))

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Range", fmt.Sprintf("%s .. %s", format.FormatInt32(m.req.From), format.FormatInt32(m.req.To)))
	row("Evaluated", fmt.Sprintf("%s / %s", formatCount(m.snap.Count), formatCount(total)))
	sentinels := formatCount(m.snap.Sentinels)
	if m.snap.Count > 0 {
		sentinels += fmt.Sprintf(" (%.2f%%)", float64(m.snap.Sentinels)/float64(m.snap.Count)*100)
	}
	row("Sentinels", sentinels)
	row("Rate", formatCount(int(m.rates.Last()))+"/s")
	if m.snap.Last.Args != nil {
		row("Last", fmt.Sprintf("%s = %s", cli.FormatCall(m.req.Op.Name(), m.snap.Last.Args), format.FormatInt32(m.snap.Last.Value)))
	}
	if m.rates.Len() > 1 {
		b.WriteString(labelStyle.Render("History") + sparklineStyle.Render(RenderSparkline(m.rates.Slice())) + "\n")
	}
	b.WriteString("\n" + m.statusLine() + "\n")

	panel := panelStyle.Width(max(m.width-2, 20)).Render(strings.TrimRight(b.String(), "\n"))
	return panel + "\n" + dimStyle.Render(m.helpLine()) + "\n"
}

func (m Model) statusLine() string {
	switch {
	case m.done && m.errText != "":
		return statusErrorStyle.Render(m.errText)
	case m.done:
		return statusDoneStyle.Render(fmt.Sprintf("Done: %s value(s) in %s",
			formatCount(m.stats.Count), format.FormatExecutionDuration(m.stats.Duration)))
	case m.paused:
		return statusPausedStyle.Render("Display frozen, sweep still running")
	default:
		return statusRunningStyle.Render("Running")
	}
}

func (m Model) helpLine() string {
	parts := make([]string, 0, 2)
	for _, k := range m.keys.ShortHelp() {
		if m.done && k.Help().Key == m.keys.Pause.Help().Key {
			continue
		}
		parts = append(parts, k.Help().Key+" "+k.Help().Desc)
	}
	return strings.Join(parts, " · ")
}

func renderBar(ratio float64) string {
	ratio = min(max(ratio, 0), 1)
	filled := int(ratio * barWidth)
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", barWidth-filled))
}

func formatCount(n int) string {
	return format.FormatNumberString(strconv.Itoa(n))
}

// Run shows the live view of req until the user quits and returns the exit
// code of the sweep. Quitting before the sweep ends yields
// ExitErrorCanceled. When ctx ends the view closes at once.
func Run(ctx context.Context, req SweepRequest, noColor bool, in io.Reader, out io.Writer) int {
	initStyles(noColor)
	model := NewModel(ctx, req)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return apperrors.ExitErrorTimeout
		case ctx.Err() != nil:
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if fm, ok := final.(Model); ok {
		return fm.ExitCode()
	}
	return apperrors.ExitErrorGeneric
}
