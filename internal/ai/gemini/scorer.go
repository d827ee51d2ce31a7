package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"recruiter-platform/internal/ranking"
)

// Score sends a scoring prompt to Gemini and parses the structured verdict.
// Malformed responses are returned as errors; the ranking scorer treats them
// as attempt failures and retries.
func (c *Client) Score(ctx context.Context, prompt string) (*ranking.ScoreResponse, error) {
	raw, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseScoreResponse(raw)
}

func parseScoreResponse(raw string) (*ranking.ScoreResponse, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("no response from scoring model")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse scoring response: %w", err)
	}

	score := coerceFloat(data["match_score"])
	if math.IsNaN(score) {
		return nil, fmt.Errorf("scoring response has no numeric match_score")
	}

	return &ranking.ScoreResponse{
		MatchScore: score,
		Verdict:    coerceString(data["verdict"]),
		Strengths:  coerceStringList(data["strengths"]),
		Weaknesses: coerceStringList(data["weaknesses"]),
		Reasoning:  coerceString(data["reasoning"]),
	}, nil
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	default:
		if v == nil {
			return ""
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

func coerceStringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
