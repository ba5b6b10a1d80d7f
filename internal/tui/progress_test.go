package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/EmundoT/apim-governance/internal/core"
)

func TestNewProgressTracker_NonNormalModes(t *testing.T) {
	for _, mode := range []core.OutputMode{core.OutputQuiet, core.OutputJSON} {
		if _, ok := NewProgressTracker(mode, 3, "Fetching compliance").(*NoOpProgressTracker); !ok {
			t.Errorf("mode %v: expected NoOpProgressTracker", mode)
		}
	}
}

// TestNoOpProgressTracker verifies no-op tracker doesn't panic
func TestNoOpProgressTracker(_ *testing.T) {
	tracker := NewNoOpProgressTracker()
	tracker.SetTotal(3)
	tracker.Increment("a1")
	tracker.Fail(errors.New("x"))
	tracker.Complete()
}

func TestTextProgressTracker(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTextProgressTracker(&buf, 2, "Fetching compliance")
	tracker.Increment("a1")
	tracker.Increment("")
	tracker.Complete()

	want := "Starting: Fetching compliance (0/2)\n" +
		"  [1/2] a1\n" +
		"  [2/2]\n" +
		"✓ Fetching compliance: Completed (2/2)\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestTextProgressTracker_SetTotalAndFail(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTextProgressTracker(&buf, 0, "op")
	tracker.SetTotal(4)
	tracker.Increment("x")
	tracker.Fail(errors.New("backend unreachable"))

	out := buf.String()
	if !strings.Contains(out, "[1/4] x") {
		t.Errorf("SetTotal not applied, got: %q", out)
	}
	if !strings.Contains(out, "✗ op: Failed - backend unreachable") {
		t.Errorf("missing failure line, got: %q", out)
	}
}

// --- progressModel direct tests ---

func TestProgressModel_Update(t *testing.T) {
	var m tea.Model = progressModel{total: 2, label: "Fetching"}

	m, cmd := m.Update(tea.WindowSizeMsg{Width: 60})
	if cmd != nil {
		t.Error("WindowSizeMsg should not return a cmd")
	}
	if m.(progressModel).width != 60 {
		t.Errorf("width = %d, want 60", m.(progressModel).width)
	}

	m, _ = m.Update(progressSetTotalMsg{total: 3})
	m, _ = m.Update(progressIncrementMsg{message: "a1"})
	pm := m.(progressModel)
	if pm.total != 3 || pm.current != 1 || pm.last != "a1" {
		t.Errorf("model = %+v", pm)
	}

	m, cmd = m.Update(progressCompleteMsg{})
	if !m.(progressModel).done || cmd == nil {
		t.Error("complete should mark done and quit")
	}
}

func TestProgressModel_UpdateFail(t *testing.T) {
	testErr := errors.New("timeout")
	m, cmd := progressModel{total: 1, label: "x"}.Update(progressFailMsg{err: testErr})
	if m.(progressModel).err != testErr || cmd == nil {
		t.Error("fail should record the error and quit")
	}
}

func TestProgressModel_View(t *testing.T) {
	tests := []struct {
		name  string
		model progressModel
		want  []string
	}{
		{"in progress", progressModel{total: 10, current: 5, label: "Fetching", last: "a5", width: 80}, []string{"Fetching", "5/10", "a5"}},
		{"narrow", progressModel{total: 10, current: 5, label: "Fetching", width: 60}, []string{"5/10"}},
		{"overfull", progressModel{total: 2, current: 5, label: "Fetching"}, []string{"5/2"}},
		{"done", progressModel{total: 3, current: 3, label: "Fetching", done: true}, []string{"✓ Fetching", "3/3"}},
		{"failed", progressModel{total: 3, label: "Fetching", err: errors.New("timeout")}, []string{"failed", "timeout"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tt.model.View()
			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("View missing %q, got: %q", w, view)
				}
			}
		})
	}
}
