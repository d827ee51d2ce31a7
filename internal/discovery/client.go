// Package discovery integrates the external candidate search agent and the
// LinkedIn profile URL lookup.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"recruiter-platform/internal/storage"
	pkghttp "recruiter-platform/pkg/http"
)

// Deep research runs can take a while; the agent streams nothing back until
// it has persisted every discovered candidate.
const defaultDiscoveryTimeout = 10 * time.Minute

// Client calls the external deep-search agent that discovers candidates for
// a JD and persists them as resume rows before returning.
type Client struct {
	httpc   *pkghttp.Client
	baseURL string
	logger  *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		httpc:   pkghttp.NewClient(defaultDiscoveryTimeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

type discoverRequest struct {
	JDID   string `json:"jd_id"`
	Prompt string `json:"prompt"`
	UserID string `json:"user_id"`
}

// Discover triggers a search run for the JD and returns the candidates the
// agent found (already persisted by the agent). An unconfigured base URL is
// a no-op so the ranking pipeline can run against previously uploaded
// resumes alone.
func (c *Client) Discover(ctx context.Context, jdID, prompt, userID string) ([]*storage.Candidate, error) {
	if c.baseURL == "" {
		c.logger.Debug("discovery agent not configured, skipping search step")
		return nil, nil
	}

	c.logger.Info("starting candidate discovery",
		zap.String("jd_id", jdID),
		zap.String("user_id", userID),
	)

	resp, err := c.httpc.PostJSON(ctx, c.baseURL+"/search", discoverRequest{
		JDID:   jdID,
		Prompt: prompt,
		UserID: userID,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery agent request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("discovery agent error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var candidates []*storage.Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("decode discovery response: %w", err)
	}

	c.logger.Info("discovery finished",
		zap.String("jd_id", jdID),
		zap.Int("found", len(candidates)),
	)
	return candidates, nil
}
