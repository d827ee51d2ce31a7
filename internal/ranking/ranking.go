// Package ranking implements the candidate ranking pipeline: discovery of
// candidates for a job description, batched LLM scoring with retries, and
// retrieval of the joined ranked results. Cancellation is cooperative and
// checked once, between discovery and scoring.
package ranking

import (
	"context"
	"time"

	"recruiter-platform/internal/storage"
)

// ScoreResponse is the structured verdict returned by the scoring model for
// one candidate.
type ScoreResponse struct {
	MatchScore float64  `json:"match_score"`
	Verdict    string   `json:"verdict"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Reasoning  string   `json:"reasoning"`
}

// ScoringClient calls the LLM that scores a candidate against a JD. It is
// treated as unreliable: timeouts and malformed output come back as errors.
type ScoringClient interface {
	Score(ctx context.Context, prompt string) (*ScoreResponse, error)
}

// Store is the persistence surface the pipeline needs. *storage.DB satisfies it.
type Store interface {
	GetJobDescription(ctx context.Context, jdID string) (*storage.JobDescription, error)
	ListUnrankedCandidates(ctx context.Context, jdID string) ([]*storage.Candidate, error)
	InsertRanking(ctx context.Context, r *storage.Ranking) error
	ListRankedCandidates(ctx context.Context, jdID string) ([]*storage.RankedCandidate, error)
}

// RankingStore is the subset of Store the scorer writes through.
type RankingStore interface {
	InsertRanking(ctx context.Context, r *storage.Ranking) error
}

// Discovery triggers the external deep-search step. Returned candidates are
// already persisted by that step; the pipeline re-reads them via the
// unranked anti-join.
type Discovery interface {
	Discover(ctx context.Context, jdID, prompt, userID string) ([]*storage.Candidate, error)
}

// CandidateScorer scores one candidate and persists the outcome.
type CandidateScorer interface {
	ScoreOne(ctx context.Context, c *storage.Candidate, jd *storage.JobDescription, userID string) *storage.Ranking
}

// BatchRunner scores a set of candidates in batches, persisting as it goes.
type BatchRunner interface {
	ScoreAll(ctx context.Context, candidates []*storage.Candidate, jd *storage.JobDescription, userID string)
}

// SleepFunc pauses for d or returns early with the context's error. Injected
// so tests run without real delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
