package ranking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"recruiter-platform/internal/storage"
	"recruiter-platform/pkg/metrics"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 5 * time.Second

	evaluationFailedPrefix = "Evaluation failed: "
	maxErrorMessageRunes   = 1000
)

// RetryingScorer scores one candidate with bounded retries and always leaves
// exactly one ranking row behind: a scored row on success, an error row once
// retries are exhausted. It never returns a failure to the scheduler; the
// only silent outcome is the double fault where even the error row cannot be
// persisted, which is logged and skipped so the candidate is picked up again
// by the next run's anti-join.
type RetryingScorer struct {
	client      ScoringClient
	store       RankingStore
	maxAttempts int
	retryDelay  time.Duration
	sleep       SleepFunc
	logger      *zap.Logger
}

func NewRetryingScorer(client ScoringClient, store RankingStore, logger *zap.Logger, maxAttempts int, retryDelay time.Duration) *RetryingScorer {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	return &RetryingScorer{
		client:      client,
		store:       store,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		sleep:       sleepContext,
		logger:      logger,
	}
}

// ScoreOne evaluates a single candidate against the JD and persists the
// outcome. The returned record is nil only on a double fault.
func (s *RetryingScorer) ScoreOne(ctx context.Context, c *storage.Candidate, jd *storage.JobDescription, userID string) *storage.Ranking {
	prompt := buildScoringPrompt(jd, FormatCandidate(c))

	var rec *storage.Ranking
	attempt := 0
	err := withRetry(ctx, s.maxAttempts, s.retryDelay, s.sleep, func(ctx context.Context) error {
		attempt++
		resp, err := s.client.Score(ctx, prompt)
		if err != nil {
			s.logger.Warn("scoring attempt failed",
				zap.String("resume_id", c.ResumeID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		if resp == nil {
			return errors.New("empty scoring response")
		}

		r := &storage.Ranking{
			UserID:     userID,
			JDID:       jd.JDID,
			ResumeID:   c.ResumeID,
			MatchScore: roundScore(clampScore(resp.MatchScore)),
			Strengths:  formatRationale(resp),
		}
		if err := s.store.InsertRanking(ctx, r); err != nil {
			s.logger.Warn("ranking insert failed",
				zap.String("resume_id", c.ResumeID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		rec = r
		return nil
	})

	if err == nil {
		metrics.CandidatesRanked.WithLabelValues("scored").Inc()
		s.logger.Info("candidate scored",
			zap.String("resume_id", c.ResumeID),
			zap.Float64("match_score", rec.MatchScore),
		)
		return rec
	}

	// Retries exhausted: persist a terminal error row instead of failing the run.
	s.logger.Error("all scoring attempts failed, saving error row",
		zap.String("resume_id", c.ResumeID),
		zap.Error(err),
	)
	errRow := &storage.Ranking{
		UserID:     userID,
		JDID:       jd.JDID,
		ResumeID:   c.ResumeID,
		MatchScore: 0.00,
		Strengths:  evaluationFailedPrefix + truncateRunes(err.Error(), maxErrorMessageRunes),
	}
	if dbErr := s.store.InsertRanking(ctx, errRow); dbErr != nil {
		metrics.CandidatesRanked.WithLabelValues("skipped").Inc()
		s.logger.Error("failed to insert error row",
			zap.String("resume_id", c.ResumeID),
			zap.Error(dbErr),
		)
		return nil
	}
	metrics.CandidatesRanked.WithLabelValues("failed").Inc()
	return errRow
}

func buildScoringPrompt(jd *storage.JobDescription, candidateText string) string {
	var b strings.Builder
	b.WriteString("You are an expert technical recruiter. Evaluate how well the candidate below matches the job description.\n\n")
	b.WriteString("Job Title: ")
	b.WriteString(jd.Title())
	b.WriteString("\n\nJob Description:\n")
	b.WriteString(jd.ParsedSummary)
	b.WriteString("\n\nCandidate Profile:\n")
	b.WriteString(candidateText)
	b.WriteString("\n\nScore the match from 0 to 100 and justify it. ")
	b.WriteString("Return a single JSON object with exactly these keys: ")
	b.WriteString(`"match_score" (number), "verdict" (short string), "strengths" (list of strings), "weaknesses" (list of strings), "reasoning" (string).`)
	return b.String()
}

// formatRationale renders the model's verdict as the labeled sections stored
// in the strengths column and shown to recruiters.
func formatRationale(resp *ScoreResponse) string {
	verdict := resp.Verdict
	if verdict == "" {
		verdict = "N/A"
	}
	reasoning := resp.Reasoning
	if reasoning == "" {
		reasoning = "No reasoning provided."
	}
	return fmt.Sprintf("**Verdict:** %s\n\n**Strengths:**\n%s\n\n**Weaknesses/Gaps:**\n%s\n\n**Reasoning:**\n%s",
		verdict, bulletList(resp.Strengths), bulletList(resp.Weaknesses), reasoning)
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "None identified."
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}

func clampScore(score float64) float64 {
	return math.Max(0.0, math.Min(100.0, score))
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
