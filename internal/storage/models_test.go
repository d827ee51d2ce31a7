package storage

import "testing"

func TestJobDescriptionTitle(t *testing.T) {
	cases := []struct {
		summary string
		want    string
	}{
		{"Senior Go Engineer\nBuild backend services.", "Senior Go Engineer"},
		{"  Senior Go Engineer  ", "Senior Go Engineer"},
		{"One-liner summary", "One-liner summary"},
		{"", "Untitled Role"},
		{"\nStarts with newline", "Untitled Role"},
		{"   \nwhitespace first line", "Untitled Role"},
	}
	for _, tc := range cases {
		jd := &JobDescription{ParsedSummary: tc.summary}
		if got := jd.Title(); got != tc.want {
			t.Errorf("Title(%q) = %q, want %q", tc.summary, got, tc.want)
		}
	}
}
