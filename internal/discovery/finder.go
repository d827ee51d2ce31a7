package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	pkghttp "recruiter-platform/pkg/http"
)

const serpAPIEndpoint = "https://serpapi.com/search"

// ErrProfileNotFound means the search ran but no LinkedIn profile matched.
var ErrProfileNotFound = errors.New("discovery: linkedin profile not found")

// Finder looks up LinkedIn profile URLs for candidates via SerpApi. Without
// an API key every lookup reports not found.
type Finder struct {
	apiKey string
	httpc  *pkghttp.Client
	logger *zap.Logger
}

func NewFinder(apiKey string, logger *zap.Logger) *Finder {
	if apiKey == "" {
		logger.Info("profile finder initialized without SerpApi key, lookups will report not found")
	}
	return &Finder{
		apiKey: apiKey,
		httpc:  pkghttp.NewClient(15 * time.Second),
		logger: logger,
	}
}

// SearchProfile returns the normalized LinkedIn URL for a candidate, or
// ErrProfileNotFound when the search yields nothing usable.
func (f *Finder) SearchProfile(ctx context.Context, candidateName, currentCompany string) (string, error) {
	if f.apiKey == "" {
		return "", ErrProfileNotFound
	}
	if candidateName == "" || currentCompany == "" {
		return "", ErrProfileNotFound
	}

	query := fmt.Sprintf("%q %q site:linkedin.com/in", candidateName, currentCompany)
	params := url.Values{
		"q":       {query},
		"api_key": {f.apiKey},
		"engine":  {"google"},
		"num":     {"5"},
	}

	f.logger.Debug("executing SerpApi search", zap.String("candidate", candidateName))

	resp, err := f.httpc.Get(ctx, serpAPIEndpoint+"?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("serpapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("serpapi error: status %d", resp.StatusCode)
	}

	var result struct {
		OrganicResults []struct {
			Link string `json:"link"`
		} `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode serpapi response: %w", err)
	}

	for _, r := range result.OrganicResults {
		if strings.Contains(r.Link, "linkedin.com/in/") || strings.Contains(r.Link, "linkedin.com/pub/") {
			normalized := NormalizeLinkedInURL(r.Link)
			f.logger.Debug("found LinkedIn URL", zap.String("url", normalized))
			return normalized, nil
		}
	}
	return "", ErrProfileNotFound
}

// NormalizeLinkedInURL cleans and standardizes a LinkedIn URL: forces an
// https scheme, strips query params and any trailing slash.
func NormalizeLinkedInURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}
	if idx := strings.Index(raw, "?"); idx != -1 {
		raw = raw[:idx]
	}
	return strings.TrimRight(raw, "/")
}
