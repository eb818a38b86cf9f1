// Package ai provides the Gemini-backed sender used by the estimation
// pipeline.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tonsuu/tonsuu/internal/config"
)

// ErrNoAPIKey indicates the Gemini API key was not configured.
var ErrNoAPIKey = errors.New("gemini api key required")

// Gemini sends vision prompts to a Gemini model. It implements
// pipeline.Sender.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini sender from the configuration. The caller owns
// the client and must call Close when done.
func NewGemini(ctx context.Context, cfg *config.GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: set %s", ErrNoAPIKey, config.EnvGeminiAPIKey)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	// Estimation prompts need deterministic numeric output.
	model.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}

	return &Gemini{client: client, model: model}, nil
}

// Send submits the prompt with the attached images and returns the model's
// text response.
func (g *Gemini) Send(ctx context.Context, prompt string, images [][]byte) (string, error) {
	parts := make([]genai.Part, 0, len(images)+1)
	parts = append(parts, genai.Text(prompt))
	for _, img := range images {
		parts = append(parts, &genai.Blob{
			MIMEType: http.DetectContentType(img),
			Data:     img,
		})
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini send: %w", err)
	}

	text := collectText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini send: empty response")
	}
	return text, nil
}

// Close releases the underlying client connection.
func (g *Gemini) Close() error {
	return g.client.Close()
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	var out string
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				out += string(t)
			}
		}
	}
	return out
}

func ptrFloat32(v float32) *float32 { return &v }
