package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/EmundoT/apim-governance/internal/core"
	"github.com/EmundoT/apim-governance/internal/types"
)

// complianceLoadedMsg carries the outcome of the fetch started for generation gen.
type complianceLoadedMsg struct {
	gen     uint64
	summary types.ComplianceSummary
	err     error
}

// ComplianceModel is the interactive compliance screen. Switching artifacts supersedes the
// in-flight fetch: results of older generations are dropped on arrival.
type ComplianceModel struct {
	ctx       context.Context
	client    core.GovernanceClient
	logger    *zap.Logger
	lifecycle *core.RequestLifecycle

	artifacts []types.ArtifactRef
	index     int
	state     types.ComplianceState
	spinner   spinner.Model
	quitting  bool
}

// NewComplianceModel creates the screen positioned at artifacts[start].
func NewComplianceModel(ctx context.Context, client core.GovernanceClient, artifacts []types.ArtifactRef, start int, logger *zap.Logger) ComplianceModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	if start < 0 || start >= len(artifacts) {
		start = 0
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleDim

	return ComplianceModel{
		ctx:       ctx,
		client:    client,
		logger:    logger,
		lifecycle: &core.RequestLifecycle{},
		artifacts: artifacts,
		index:     start,
		spinner:   sp,
	}
}

// Init starts loading the first artifact.
func (m ComplianceModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return reloadMsg{} })
}

// reloadMsg asks the model to (re)load the selected artifact.
type reloadMsg struct{}

// current returns the selected artifact.
func (m ComplianceModel) current() types.ArtifactRef {
	if len(m.artifacts) == 0 {
		return types.ArtifactRef{}
	}
	return m.artifacts[m.index]
}

// load supersedes any in-flight fetch and starts one for the selected artifact.
func (m ComplianceModel) load() (ComplianceModel, tea.Cmd) {
	artifact := m.current()
	if artifact.ID == "" {
		return m, nil
	}
	if artifact.Revision {
		m.lifecycle.Cancel()
		m.state = types.ComplianceState{Summary: core.FallbackSummary(artifact.ID), Skipped: true}
		return m, nil
	}

	ctx, gen := m.lifecycle.Begin(m.ctx)
	m.state = types.ComplianceState{Summary: core.FallbackSummary(artifact.ID), Loading: true}

	client := m.client
	return m, func() tea.Msg {
		summary, err := core.FetchComplianceSummary(ctx, client, artifact.ID)
		return complianceLoadedMsg{gen: gen, summary: summary, err: err}
	}
}

// Update handles key presses, fetch results and spinner ticks.
func (m ComplianceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.lifecycle.Cancel()
			m.quitting = true
			return m, tea.Quit
		case "n", "right", "l":
			if len(m.artifacts) > 1 {
				m.index = (m.index + 1) % len(m.artifacts)
				return m.load()
			}
		case "p", "left", "h":
			if len(m.artifacts) > 1 {
				m.index = (m.index - 1 + len(m.artifacts)) % len(m.artifacts)
				return m.load()
			}
		case "r":
			return m.load()
		}
		return m, nil

	case reloadMsg:
		return m.load()

	case complianceLoadedMsg:
		return m.resolve(msg), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resolve applies msg if it belongs to the latest request.
func (m ComplianceModel) resolve(msg complianceLoadedMsg) ComplianceModel {
	if !m.lifecycle.IsCurrent(msg.gen) {
		return m
	}
	m.lifecycle.Finish(msg.gen)

	id := m.current().ID
	switch {
	case core.IsCancelled(msg.err):
		m.state.Loading = false
	case msg.err != nil:
		m.logger.Error("fetch compliance failed", zap.String("artifact_id", id), zap.Error(msg.err))
		m.state = types.ComplianceState{Summary: core.FallbackSummary(id), Err: msg.err}
	default:
		m.state = types.ComplianceState{Summary: msg.summary}
	}
	return m
}

// State returns what the screen currently shows.
func (m ComplianceModel) State() types.ComplianceState {
	return m.state
}

// View renders the screen.
func (m ComplianceModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.artifacts) == 0 {
		return styleDim.Render("No artifacts tracked.") + "\n"
	}

	var b strings.Builder
	b.WriteString(styleDim.Render(fmt.Sprintf("Artifact %d/%d", m.index+1, len(m.artifacts))) + "\n\n")
	if m.state.Loading {
		b.WriteString(m.spinner.View() + " ")
	}
	b.WriteString(RenderComplianceState(m.state, m.current()))
	b.WriteString("\n\n" + styleDim.Render("n next • p previous • r reload • q quit") + "\n")
	return b.String()
}

// RunComplianceScreen opens the interactive compliance screen until the user quits.
func RunComplianceScreen(ctx context.Context, client core.GovernanceClient, artifacts []types.ArtifactRef, start int, logger *zap.Logger) error {
	if len(artifacts) == 0 {
		return fmt.Errorf("no artifacts configured (add one with 'apim-gov artifact add <id>')")
	}
	m := NewComplianceModel(ctx, client, artifacts, start, logger)
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("compliance screen: %w", err)
	}
	return nil
}
