package discovery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"recruiter-platform/internal/storage"
)

func TestDiscoverUnconfigured(t *testing.T) {
	c := NewClient("", zap.NewNop())
	candidates, err := c.Discover(context.Background(), "jd-1", "prompt", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidates != nil {
		t.Fatalf("expected nil candidates, got %v", candidates)
	}
}

func TestDiscover(t *testing.T) {
	var gotBody discoverRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode([]*storage.Candidate{
			{ResumeID: "res-1", PersonName: "Jane Doe"},
			{ResumeID: "res-2", PersonName: "John Roe"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	candidates, err := c.Discover(context.Background(), "jd-1", "find Go engineers", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if gotBody.JDID != "jd-1" || gotBody.Prompt != "find Go engineers" || gotBody.UserID != "u1" {
		t.Fatalf("request body = %+v", gotBody)
	}
}

func TestDiscoverAgentError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "agent exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	_, err := c.Discover(context.Background(), "jd-1", "", "u1")
	if err == nil || !strings.Contains(err.Error(), "status 502") {
		t.Fatalf("expected status error, got %v", err)
	}
	if !strings.Contains(err.Error(), "agent exploded") {
		t.Fatalf("expected agent body in error, got %v", err)
	}
}
