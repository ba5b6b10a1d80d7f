package core

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/EmundoT/apim-governance/internal/types"
)

// ComplianceView holds the displayed compliance state of one artifact at a time.
//
// Each Load starts at most one fetch and supersedes the previous one. Only the latest
// request's summary (or its fallback) is ever applied; cancelled requests change nothing.
type ComplianceView struct {
	client    GovernanceClient
	logger    *zap.Logger
	lifecycle RequestLifecycle

	mu       sync.Mutex
	state    types.ComplianceState
	onChange func(types.ComplianceState)
	wg       sync.WaitGroup

	// notifyMu orders deliveries; notified is the newest generation delivered.
	notifyMu sync.Mutex
	notified uint64
}

// NewComplianceView creates a view backed by client. A nil logger disables diagnostics.
func NewComplianceView(client GovernanceClient, logger *zap.Logger) *ComplianceView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplianceView{client: client, logger: logger}
}

// OnChange registers fn to receive every state the view applies, in apply order.
// A state from a superseded request is never delivered after a newer one.
// fn must not call Load, Reload or Close.
func (v *ComplianceView) OnChange(fn func(types.ComplianceState)) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// State returns a snapshot of the displayed state.
func (v *ComplianceView) State() types.ComplianceState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Load switches the view to artifact and starts fetching it.
// Revisions are never evaluated: the view shows a skipped state without a request.
func (v *ComplianceView) Load(ctx context.Context, artifact types.ArtifactRef) {
	v.mu.Lock()
	reqCtx, gen := v.lifecycle.Begin(ctx)
	if artifact.Revision {
		v.lifecycle.Finish(gen)
		v.state = types.ComplianceState{Summary: FallbackSummary(artifact.ID), Skipped: true}
		state, notify := v.state, v.onChange
		v.mu.Unlock()
		v.deliver(gen, state, notify)
		return
	}
	v.state = types.ComplianceState{Summary: FallbackSummary(artifact.ID), Loading: true}
	state, notify := v.state, v.onChange
	v.wg.Add(1)
	v.mu.Unlock()

	v.deliver(gen, state, notify)

	go func() {
		defer v.wg.Done()
		summary, err := FetchComplianceSummary(reqCtx, v.client, artifact.ID)
		v.resolve(gen, artifact.ID, summary, err)
	}()
}

// resolve applies a fetch result if gen is still the latest request.
func (v *ComplianceView) resolve(gen uint64, artifactID string, summary types.ComplianceSummary, err error) {
	v.mu.Lock()
	if !v.lifecycle.IsCurrent(gen) {
		v.mu.Unlock()
		return
	}
	v.lifecycle.Finish(gen)

	switch {
	case IsCancelled(err):
		// Cancelled without being superseded (parent context ended): keep what is shown.
		v.state.Loading = false
	case err != nil:
		v.logger.Error("fetch compliance failed",
			zap.String("artifact_id", artifactID),
			zap.Error(err))
		v.state = types.ComplianceState{Summary: FallbackSummary(artifactID), Err: err}
	default:
		v.state = types.ComplianceState{Summary: summary}
	}
	state, notify := v.state, v.onChange
	v.mu.Unlock()

	v.deliver(gen, state, notify)
}

// deliver passes state to notify unless a newer generation was already delivered.
func (v *ComplianceView) deliver(gen uint64, state types.ComplianceState, notify func(types.ComplianceState)) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()
	if gen < v.notified {
		return
	}
	v.notified = gen
	if notify != nil {
		notify(state)
	}
}

// Reload fetches the current artifact again.
func (v *ComplianceView) Reload(ctx context.Context) {
	v.mu.Lock()
	ref := types.ArtifactRef{ID: v.state.Summary.ArtifactID, Revision: v.state.Skipped}
	v.mu.Unlock()
	if ref.ID == "" {
		return
	}
	v.Load(ctx, ref)
}

// Close cancels any in-flight request and waits for its goroutine to exit.
func (v *ComplianceView) Close() {
	v.mu.Lock()
	v.lifecycle.Cancel()
	v.mu.Unlock()
	v.wg.Wait()
}
