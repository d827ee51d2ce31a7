package gemini

import (
	"strings"
	"testing"
)

func TestParseScoreResponse(t *testing.T) {
	raw := `{
		"match_score": 87.5,
		"verdict": "Strong match",
		"strengths": ["Go", "Postgres"],
		"weaknesses": ["No k8s"],
		"reasoning": "Solid backend profile."
	}`
	resp, err := parseScoreResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.MatchScore != 87.5 {
		t.Errorf("match_score = %v, want 87.5", resp.MatchScore)
	}
	if resp.Verdict != "Strong match" {
		t.Errorf("verdict = %q", resp.Verdict)
	}
	if len(resp.Strengths) != 2 || resp.Strengths[0] != "Go" {
		t.Errorf("strengths = %v", resp.Strengths)
	}
	if len(resp.Weaknesses) != 1 {
		t.Errorf("weaknesses = %v", resp.Weaknesses)
	}
}

func TestParseScoreResponseFenced(t *testing.T) {
	raw := "```json\n{\"match_score\": \"72\", \"verdict\": \"OK\"}\n```"
	resp, err := parseScoreResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.MatchScore != 72 {
		t.Errorf("match_score = %v, want 72 (string coercion)", resp.MatchScore)
	}
}

func TestParseScoreResponseMissingScore(t *testing.T) {
	for _, raw := range []string{
		`{"verdict": "OK"}`,
		`{"match_score": "not a number"}`,
		`{"match_score": null}`,
	} {
		if _, err := parseScoreResponse(raw); err == nil {
			t.Errorf("expected error for %s", raw)
		}
	}
}

func TestParseScoreResponseMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json at all", "{trunc"} {
		if _, err := parseScoreResponse(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestCoerceStringList(t *testing.T) {
	got := coerceStringList([]any{"a", "", 42.0, map[string]any{"k": "v"}})
	if len(got) != 3 {
		t.Fatalf("got %v", got)
	}
	if got[1] != "42" {
		t.Errorf("number not stringified: %v", got)
	}
	if !strings.Contains(got[2], `"k":"v"`) {
		t.Errorf("object not marshalled: %v", got)
	}
	if coerceStringList("not a list") != nil {
		t.Error("non-list should yield nil")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                        `{"a":1}`,
		"```json\n{\"a\":1}\n```":          `{"a":1}`,
		"```\n{\"a\":1}\n```":              `{"a":1}`,
		"  \n```json\n{\"a\":1}\n```\n  ":  `{"a":1}`,
		"`{\"a\":1}`":                      `{"a":1}`,
	}
	for in, want := range cases {
		if got := extractJSON(in); got != want {
			t.Errorf("extractJSON(%q) = %q, want %q", in, got, want)
		}
	}
}
