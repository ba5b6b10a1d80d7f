package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/EmundoT/apim-governance/internal/core"
)

var (
	progressStyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	progressStyleSuccess = lipgloss.NewStyle().Foreground(colorPassed)
	progressStyleErr     = lipgloss.NewStyle().Foreground(colorFailed)
)

// NewProgressTracker picks a tracker for the output mode: nothing for quiet/JSON, a live
// bar on a terminal, plain lines otherwise. Progress always goes to stderr.
func NewProgressTracker(mode core.OutputMode, total int, label string) core.ProgressTracker {
	if mode != core.OutputNormal {
		return NewNoOpProgressTracker()
	}
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return NewBarProgressTracker(total, label)
	}
	return NewTextProgressTracker(os.Stderr, total, label)
}

// ========================================
// Bubbletea Progress Model
// ========================================

// progressModel renders a fetch-progress bar.
type progressModel struct {
	current int
	total   int
	label   string
	last    string
	done    bool
	err     error
	width   int
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case progressIncrementMsg:
		m.current++
		m.last = msg.message
	case progressSetTotalMsg:
		m.total = msg.total
	case progressCompleteMsg:
		m.done = true
		return m, tea.Quit
	case progressFailMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	switch {
	case m.err != nil:
		return progressStyleErr.Render(fmt.Sprintf("✗ %s (failed: %v)", m.label, m.err)) + "\n"
	case m.done:
		return progressStyleSuccess.Render(fmt.Sprintf("✓ %s (%d/%d)", m.label, m.current, m.total)) + "\n"
	}

	barWidth := 40
	if m.width > 0 && m.width < 80 {
		barWidth = 20
	}
	filled := 0
	if m.total > 0 {
		filled = m.current * barWidth / m.total
	}
	if filled > barWidth {
		filled = barWidth
	}

	status := fmt.Sprintf("[%s%s] %d/%d", strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), m.current, m.total)
	if m.last != "" {
		status += " " + m.last
	}
	return progressStyleTitle.Render(m.label) + "\n" + status + "\n"
}

// ========================================
// Bubbletea Messages
// ========================================

type progressIncrementMsg struct {
	message string
}

type progressSetTotalMsg struct {
	total int
}

type progressCompleteMsg struct{}

type progressFailMsg struct {
	err error
}

// ========================================
// BarProgressTracker
// ========================================

// BarProgressTracker drives progressModel in a background bubbletea program.
type BarProgressTracker struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// NewBarProgressTracker starts the progress program on stderr.
func NewBarProgressTracker(total int, label string) *BarProgressTracker {
	m := progressModel{total: total, label: label, width: 80}
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr), tea.WithInput(nil))

	t := &BarProgressTracker{program: p, done: make(chan struct{})}
	go func() {
		_, _ = p.Run()
		close(t.done)
	}()
	return t
}

// Increment advances the bar, showing message beside it.
func (t *BarProgressTracker) Increment(message string) {
	t.program.Send(progressIncrementMsg{message: message})
}

// SetTotal sets the total count for the progress tracker.
func (t *BarProgressTracker) SetTotal(total int) {
	t.program.Send(progressSetTotalMsg{total: total})
}

// Complete renders the final state and waits for the program to exit.
func (t *BarProgressTracker) Complete() {
	t.finish(progressCompleteMsg{})
}

// Fail renders the failure and waits for the program to exit.
func (t *BarProgressTracker) Fail(err error) {
	t.finish(progressFailMsg{err: err})
}

func (t *BarProgressTracker) finish(msg tea.Msg) {
	t.once.Do(func() {
		t.program.Send(msg)
		select {
		case <-t.done:
		case <-time.After(time.Second):
			t.program.Kill()
		}
	})
}

// ========================================
// Text Progress (Non-TTY)
// ========================================

// TextProgressTracker writes one line per step.
type TextProgressTracker struct {
	w       io.Writer
	current int
	total   int
	label   string
}

// NewTextProgressTracker creates a new text progress tracker writing to w.
func NewTextProgressTracker(w io.Writer, total int, label string) *TextProgressTracker {
	fmt.Fprintf(w, "Starting: %s (0/%d)\n", label, total)
	return &TextProgressTracker{w: w, total: total, label: label}
}

// Increment updates progress with a message.
func (t *TextProgressTracker) Increment(message string) {
	t.current++
	line := fmt.Sprintf("  [%d/%d]", t.current, t.total)
	if message != "" {
		line += " " + message
	}
	fmt.Fprintln(t.w, line)
}

// SetTotal sets the total count for the progress tracker.
func (t *TextProgressTracker) SetTotal(total int) {
	t.total = total
}

// Complete marks the operation as complete.
func (t *TextProgressTracker) Complete() {
	fmt.Fprintf(t.w, "✓ %s: Completed (%d/%d)\n", t.label, t.current, t.total)
}

// Fail marks the operation as failed with an error.
func (t *TextProgressTracker) Fail(err error) {
	fmt.Fprintf(t.w, "✗ %s: Failed - %v\n", t.label, err)
}

// ========================================
// No-Op Progress (Quiet/JSON)
// ========================================

// NoOpProgressTracker does nothing (for quiet/JSON/testing modes)
type NoOpProgressTracker struct{}

// NewNoOpProgressTracker creates a new no-op progress tracker
func NewNoOpProgressTracker() *NoOpProgressTracker {
	return &NoOpProgressTracker{}
}

// Increment does nothing (no-op implementation).
func (t *NoOpProgressTracker) Increment(_ string) {}

// SetTotal does nothing (no-op implementation).
func (t *NoOpProgressTracker) SetTotal(_ int) {}

// Complete does nothing (no-op implementation).
func (t *NoOpProgressTracker) Complete() {}

// Fail does nothing (no-op implementation).
func (t *NoOpProgressTracker) Fail(_ error) {}
