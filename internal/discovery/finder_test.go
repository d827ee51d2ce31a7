package discovery

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestNormalizeLinkedInURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.linkedin.com/in/jane-doe/", "https://www.linkedin.com/in/jane-doe"},
		{"http://linkedin.com/in/jane-doe?utm_source=google", "http://linkedin.com/in/jane-doe"},
		{"//www.linkedin.com/in/jane-doe", "https://www.linkedin.com/in/jane-doe"},
		{"linkedin.com/in/jane-doe", "https://linkedin.com/in/jane-doe"},
		{"  https://linkedin.com/in/jane-doe  ", "https://linkedin.com/in/jane-doe"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeLinkedInURL(tc.in); got != tc.want {
			t.Errorf("NormalizeLinkedInURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSearchProfileWithoutKey(t *testing.T) {
	f := NewFinder("", zap.NewNop())
	_, err := f.SearchProfile(context.Background(), "Jane Doe", "Acme")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestSearchProfileRequiresNameAndCompany(t *testing.T) {
	f := NewFinder("key", zap.NewNop())
	for _, pair := range [][2]string{{"", "Acme"}, {"Jane", ""}, {"", ""}} {
		_, err := f.SearchProfile(context.Background(), pair[0], pair[1])
		if !errors.Is(err, ErrProfileNotFound) {
			t.Errorf("name=%q company=%q: expected ErrProfileNotFound, got %v", pair[0], pair[1], err)
		}
	}
}
