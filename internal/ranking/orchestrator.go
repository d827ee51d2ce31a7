package ranking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"recruiter-platform/internal/storage"
	"recruiter-platform/pkg/metrics"
)

// Orchestrator runs one ranking request end to end: reset the caller's
// cancellation flag, trigger discovery, honor a cancellation signalled while
// discovery ran, score whatever is still unranked, then return the joined
// result set (which includes rankings from earlier runs).
type Orchestrator struct {
	store     Store
	discovery Discovery
	scheduler BatchRunner
	cancels   *CancellationRegistry
	logger    *zap.Logger
}

func NewOrchestrator(store Store, discovery Discovery, scheduler BatchRunner, cancels *CancellationRegistry, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		discovery: discovery,
		scheduler: scheduler,
		cancels:   cancels,
		logger:    logger,
	}
}

// Run executes the pipeline for one JD on behalf of one user. A cancellation
// observed after discovery returns an empty result set and no error; any
// other failure outside the scoring fan-out aborts the whole request.
func (o *Orchestrator) Run(ctx context.Context, jdID, prompt, userID string) ([]*storage.RankedCandidate, error) {
	o.cancels.ResetForNewRun(userID)
	metrics.RankingRuns.Inc()

	o.logger.Info("starting ranking run",
		zap.String("jd_id", jdID),
		zap.String("user_id", userID),
	)

	// The discovery step is atomic from this pipeline's point of view:
	// cancellation cannot interrupt it, only skip what follows.
	if _, err := o.discovery.Discover(ctx, jdID, prompt, userID); err != nil {
		return nil, fmt.Errorf("candidate discovery: %w", err)
	}

	if o.cancels.IsCancelled(userID) {
		metrics.RankingCancellations.Inc()
		o.logger.Info("ranking cancelled before scoring",
			zap.String("jd_id", jdID),
			zap.String("user_id", userID),
		)
		return []*storage.RankedCandidate{}, nil
	}

	jd, err := o.store.GetJobDescription(ctx, jdID)
	if err != nil {
		return nil, fmt.Errorf("fetch job description %s: %w", jdID, err)
	}

	unranked, err := o.store.ListUnrankedCandidates(ctx, jdID)
	if err != nil {
		return nil, fmt.Errorf("fetch unranked candidates: %w", err)
	}

	if len(unranked) > 0 {
		o.logger.Info("scoring unranked candidates",
			zap.String("jd_id", jdID),
			zap.Int("count", len(unranked)),
		)
		o.scheduler.ScoreAll(ctx, unranked, jd, userID)
	} else {
		o.logger.Info("no new unranked candidates", zap.String("jd_id", jdID))
	}

	// Always return the full joined set: rankings persist across runs.
	results, err := o.store.ListRankedCandidates(ctx, jdID)
	if err != nil {
		return nil, fmt.Errorf("fetch ranked results: %w", err)
	}
	return results, nil
}
