package ranking

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"recruiter-platform/internal/storage"
)

const (
	defaultBatchSize     = 3
	defaultBatchCooldown = 5 * time.Second
)

// BatchScheduler partitions candidates into fixed-size batches and scores each
// batch concurrently. A batch fully completes (including failures) before the
// next one starts, and a cool-down runs between batches to stay polite to the
// scoring API. Cancellation is not re-checked here: once scoring starts, the
// run finishes every candidate.
type BatchScheduler struct {
	scorer   CandidateScorer
	size     int
	cooldown time.Duration
	sleep    SleepFunc
	logger   *zap.Logger
}

func NewBatchScheduler(scorer CandidateScorer, logger *zap.Logger, size int, cooldown time.Duration) *BatchScheduler {
	if size <= 0 {
		size = defaultBatchSize
	}
	if cooldown <= 0 {
		cooldown = defaultBatchCooldown
	}
	return &BatchScheduler{
		scorer:   scorer,
		size:     size,
		cooldown: cooldown,
		sleep:    sleepContext,
		logger:   logger,
	}
}

// ScoreAll scores every candidate, persisting a ranking row per candidate as
// a side effect. Failures are isolated per candidate by the scorer, so one
// bad profile never aborts its batch.
func (b *BatchScheduler) ScoreAll(ctx context.Context, candidates []*storage.Candidate, jd *storage.JobDescription, userID string) {
	for start := 0; start < len(candidates); start += b.size {
		end := min(start+b.size, len(candidates))
		batch := candidates[start:end]

		b.logger.Info("processing batch",
			zap.String("jd_id", jd.JDID),
			zap.Int("batch", start/b.size+1),
			zap.Int("size", len(batch)),
		)

		var wg sync.WaitGroup
		for _, c := range batch {
			wg.Add(1)
			go func(c *storage.Candidate) {
				defer wg.Done()
				b.scorer.ScoreOne(ctx, c, jd, userID)
			}(c)
		}
		wg.Wait()

		if end < len(candidates) {
			if err := b.sleep(ctx, b.cooldown); err != nil {
				b.logger.Warn("batch cool-down interrupted", zap.Error(err))
				return
			}
		}
	}
}
