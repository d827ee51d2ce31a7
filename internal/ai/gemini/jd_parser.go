package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Maximum JD text forwarded to the model; longer uploads are truncated.
const maxJDTextLen = 120000

// JDExtraction holds the fields parsed out of a job description upload.
type JDExtraction struct {
	Location           string `json:"location"`
	JobType            string `json:"job_type"`
	ExperienceRequired string `json:"experience_required"`
	Summary            string `json:"jd_parsed_summary"`
}

var allowedJobTypes = map[string]bool{
	"Full Time":  true,
	"Part Time":  true,
	"Internship": true,
	"Contract":   true,
}

// ParseJobDescription extracts the structured JD fields from raw text.
func (c *Client) ParseJobDescription(ctx context.Context, text string) (*JDExtraction, error) {
	if len(text) > maxJDTextLen {
		text = text[:maxJDTextLen]
	}

	prompt := fmt.Sprintf(`You are an expert job description parser. Extract the following fields from the provided job description text:

- location: City/State/Country if present; else null/empty
- job_type: One of ['Full Time', 'Part Time', 'Internship', 'Contract'] if you can infer, else null/empty
- experience_required: Return as short free text, e.g. '2-3 years', '5+ years', or null/empty
- jd_parsed_summary: 2-4 sentence summary capturing the role, seniority, key responsibilities, and core skills.

If a field is not present, return it as an empty string.
Return strictly as compact JSON with keys: location, job_type, experience_required, jd_parsed_summary.

Job Description Text:
---
%s
---`, text)

	raw, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseJDExtraction(raw)
}

func parseJDExtraction(raw string) (*JDExtraction, error) {
	var out JDExtraction
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("parse jd extraction: %w", err)
	}

	out.Location = strings.TrimSpace(out.Location)
	out.JobType = strings.TrimSpace(out.JobType)
	out.ExperienceRequired = strings.TrimSpace(out.ExperienceRequired)
	out.Summary = strings.TrimSpace(out.Summary)

	if !allowedJobTypes[out.JobType] {
		out.JobType = ""
	}

	return &out, nil
}
