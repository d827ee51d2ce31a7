// Package llm holds the OpenAI chat-completions client used for resume
// parsing. JD parsing and candidate scoring go through Gemini instead; see
// internal/ai/gemini.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"

	// Resumes can be long and slower models take their time.
	defaultTimeout = 120 * time.Second

	maxResumeTextLen = 120000
)

const resumeSystemPrompt = `You are an expert resume parser. Extract a comprehensive JSON profile and key fields from the resume text.

Return strictly valid JSON with these top-level keys:
- person_name: string (best guess, full name; empty if unknown)
- role: string (current or most recent role title; empty if unknown)
- company: string (current or most recent company; empty if unknown)
- profile_url: string (LinkedIn or personal site if present; empty if unknown)
- json_content: object with detailed fields:
  - contact: { emails: [..], phones: [..], locations: [..], links: [..] }
  - summary: string (professional summary)
  - skills: { hard_skills: [..], soft_skills: [..], tools: [..], languages: [..] }
  - education: [ { degree, field, institution, start_date, end_date, location, gpa } ]
  - experience: [
      { title, company, location, start_date, end_date, current, bullets: [..], achievements: [..], skills: [..] }
    ]
  - projects: [ { name, description, technologies: [..], links: [..] } ]
  - certifications: [ { name, issuer, date } ]
  - publications: [ { title, venue, date, link } ]
  - awards: [ { name, issuer, date } ]
  - extras: { volunteer: [..], interests: [..] }

Rules:
- Use empty strings, empty arrays, or nulls where information is missing.
- Normalize dates to ISO-like 'YYYY-MM' when possible, else original text.
- Do not invent data; infer conservatively from the text.`

type Service struct {
	apiKey   string
	model    string
	endpoint string
	timeout  time.Duration
	logger   *zap.Logger
}

// ResumeExtraction is the parsed resume: display fields plus the full
// structured profile stored as-is in the resume row.
type ResumeExtraction struct {
	PersonName  string          `json:"person_name"`
	Role        string          `json:"role"`
	Company     string          `json:"company"`
	ProfileURL  string          `json:"profile_url"`
	JSONContent json.RawMessage `json:"json_content"`
}

func NewService(apiKey, model string, logger *zap.Logger) *Service {
	return &Service{
		apiKey:   apiKey,
		model:    model,
		endpoint: openAIEndpoint,
		timeout:  defaultTimeout,
		logger:   logger,
	}
}

// ParseResume extracts structured candidate fields from resume text.
func (s *Service) ParseResume(ctx context.Context, resumeText string) (*ResumeExtraction, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}
	if len(resumeText) > maxResumeTextLen {
		resumeText = resumeText[:maxResumeTextLen]
	}

	userPrompt := fmt.Sprintf("Resume Text:\n---\n%s\n---", resumeText)

	content, err := s.chatCompletion(ctx, resumeSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var extraction ResumeExtraction
	if err := json.Unmarshal([]byte(content), &extraction); err != nil {
		return nil, fmt.Errorf("failed to parse resume extraction JSON: %w", err)
	}

	extraction.PersonName = strings.TrimSpace(extraction.PersonName)
	extraction.Role = strings.TrimSpace(extraction.Role)
	extraction.Company = strings.TrimSpace(extraction.Company)
	extraction.ProfileURL = strings.TrimSpace(extraction.ProfileURL)
	if len(extraction.JSONContent) == 0 {
		extraction.JSONContent = json.RawMessage("{}")
	}

	return &extraction, nil
}

func (s *Service) chatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"response_format": map[string]string{"type": "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	s.logger.Debug("openai request", zap.String("model", s.model), zap.Int("body_bytes", len(jsonData)))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenAI response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return result.Choices[0].Message.Content, nil
}
