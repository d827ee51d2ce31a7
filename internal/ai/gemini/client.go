// Package gemini wraps the Google GenAI client for candidate scoring and job
// description parsing.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"recruiter-platform/internal/logger"
)

const (
	defaultModel = "gemini-1.5-pro-latest"

	// Generation settings for structured outputs.
	generationTemperature = 0.4
	maxOutputTokens       = 4096

	maxLogPreview = 200
)

// Client wraps the GenAI client with the settings this service uses for all
// Gemini calls.
type Client struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger
}

func NewClient(ctx context.Context, apiKey, model string, log *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Client{client: client, modelName: model, logger: log}, nil
}

func (c *Client) Model() string {
	return c.modelName
}

// generateJSON sends the prompt and returns the raw response text. The model
// is asked for a JSON response; callers parse it. A non-STOP finish reason is
// an error so truncated or filtered completions surface as attempt failures.
func (c *Client) generateJSON(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](generationTemperature),
		MaxOutputTokens:  maxOutputTokens,
		ResponseMIMEType: "application/json",
	}

	c.logger.Debug("gemini request",
		zap.String("model", c.modelName),
		zap.Int("prompt_length", len(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, maxLogPreview)),
	)

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini api returned no candidates")
	}
	if reason := resp.Candidates[0].FinishReason; reason != genai.FinishReasonStop {
		return "", fmt.Errorf("gemini returned non-standard finish reason: %s", reason)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	c.logger.Debug("gemini response",
		zap.Int("response_length", len(output)),
		zap.String("response_preview", logger.TruncateForLog(output, maxLogPreview)),
	)

	return output, nil
}

// extractJSON strips markdown code fences the model sometimes wraps around
// JSON payloads.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
