package ranking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"recruiter-platform/internal/storage"
)

// FormatCandidate renders a candidate record as a stable text block for the
// scoring prompt. The same record always produces byte-identical output, so
// retried attempts score against the same prompt.
func FormatCandidate(c *storage.Candidate) string {
	var parts []string

	if c.PersonName != "" {
		parts = append(parts, "Name: "+c.PersonName)
	}
	if c.Role != "" {
		parts = append(parts, "Role: "+c.Role)
	}
	if c.Company != "" {
		parts = append(parts, "Company: "+c.Company)
	}

	if summary := bytes.TrimSpace(c.Summary); len(summary) > 0 && string(summary) != "null" {
		var obj map[string]any
		if err := json.Unmarshal(summary, &obj); err == nil && obj != nil {
			if v, ok := obj["skills"]; ok {
				parts = append(parts, "Skills: "+renderValue(v))
			}
			if v, ok := obj["experience"]; ok {
				parts = append(parts, "Experience: "+renderExperience(v))
			}
			if v, ok := obj["education"]; ok {
				parts = append(parts, "Education: "+renderValue(v))
			}
		} else {
			// Not a JSON object: treat the stored content as opaque text.
			var text string
			if err := json.Unmarshal(summary, &text); err != nil {
				text = string(summary)
			}
			parts = append(parts, "Summary: "+text)
		}
	}

	if len(parts) == 0 {
		return "Limited profile information"
	}
	return strings.Join(parts, "\n")
}

func renderExperience(v any) string {
	entries, ok := v.([]any)
	if !ok {
		return renderValue(v)
	}
	rendered := make([]string, 0, len(entries))
	for _, e := range entries {
		rendered = append(rendered, renderValue(e))
	}
	return strings.Join(rendered, "; ")
}

// renderValue stringifies a decoded JSON value deterministically: strings
// pass through, everything else is re-marshalled (object keys come out
// sorted).
func renderValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
