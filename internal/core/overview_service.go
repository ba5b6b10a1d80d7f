package core

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/EmundoT/apim-governance/internal/types"
)

// OverviewResult is the compliance outcome of one configured artifact.
type OverviewResult struct {
	Artifact types.ArtifactRef
	Summary  types.ComplianceSummary
	Skipped  bool
	Err      error
}

// OverviewService fetches compliance summaries for many artifacts concurrently.
type OverviewService struct {
	client     GovernanceClient
	maxWorkers int
	logger     *zap.Logger
}

// NewOverviewService creates an overview service. workers <= 0 means NumCPU;
// the pool is capped to avoid flooding the backend.
func NewOverviewService(client GovernanceClient, workers int, logger *zap.Logger) *OverviewService {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > maxOverviewWorkers {
		workers = maxOverviewWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverviewService{client: client, maxWorkers: workers, logger: logger}
}

// Workers returns the effective pool size.
func (s *OverviewService) Workers() int {
	return s.maxWorkers
}

// Run fetches every artifact. Results are in input order. A failing artifact gets the
// fallback summary and its error; it never aborts the others. Revisions are skipped.
// ctx cancels the whole run: outstanding artifacts report the context error.
func (s *OverviewService) Run(ctx context.Context, artifacts []types.ArtifactRef, progress ProgressTracker) []OverviewResult {
	if progress == nil {
		progress = noopProgress{}
	}
	results := make([]OverviewResult, len(artifacts))
	if len(artifacts) == 0 {
		progress.Complete()
		return results
	}
	progress.SetTotal(len(artifacts))

	// Trackers are not required to be safe for concurrent use.
	var progressMu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(s.maxWorkers)

	for i, artifact := range artifacts {
		i, artifact := i, artifact
		g.Go(func() error {
			results[i] = s.fetchOne(ctx, artifact)
			progressMu.Lock()
			progress.Increment(artifact.ID)
			progressMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	progress.Complete()
	return results
}

func (s *OverviewService) fetchOne(ctx context.Context, artifact types.ArtifactRef) OverviewResult {
	if artifact.Revision {
		return OverviewResult{Artifact: artifact, Summary: FallbackSummary(artifact.ID), Skipped: true}
	}
	if err := ctx.Err(); err != nil {
		return OverviewResult{Artifact: artifact, Summary: FallbackSummary(artifact.ID), Err: err}
	}

	summary, err := FetchComplianceSummary(ctx, s.client, artifact.ID)
	if err != nil && !IsCancelled(err) {
		s.logger.Error("fetch compliance failed",
			zap.String("artifact_id", artifact.ID),
			zap.Error(err))
	}
	return OverviewResult{Artifact: artifact, Summary: summary, Err: err}
}

// OverviewTotals sums counts over successful results.
func OverviewTotals(results []OverviewResult) (counts types.StatusCounts, failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		counts.Passed += r.Summary.Counts.Passed
		counts.Failed += r.Summary.Counts.Failed
	}
	return counts, failed
}
