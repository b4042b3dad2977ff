package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/nurtureai/nurtureai/internal/vision"
)

// generator is the part of *genai.GenerativeModel the analyzer uses.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiAnalyzer struct {
	model  generator
	client *genai.Client
}

// NewGeminiAnalyzer opens a Gemini client for modelName. The caller must Close
// the analyzer.
func NewGeminiAnalyzer(ctx context.Context, apiKey, modelName string) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiAnalyzer{
		model:  client.GenerativeModel(modelName),
		client: client,
	}, nil
}

func (a *GeminiAnalyzer) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

// buildParts orders the request as template, image, question. Gemini rejects
// empty text parts, so a blank question is left out.
func buildParts(req vision.Request) []genai.Part {
	parts := []genai.Part{
		genai.Text(req.Prompt),
		genai.Blob{MIMEType: vision.NormaliseMIME(req.MimeType), Data: req.Image},
	}
	if req.Question != "" {
		parts = append(parts, genai.Text(req.Question))
	}
	return parts
}

func (a *GeminiAnalyzer) Analyze(ctx context.Context, req vision.Request) (string, error) {
	resp, err := a.model.GenerateContent(ctx, buildParts(req)...)
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return "", fmt.Errorf("gemini refused the request: %w", err)
		}
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content found in gemini response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini response contained no text")
	}
	return sb.String(), nil
}
