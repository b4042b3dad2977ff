package claude

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/nurtureai/nurtureai/internal/vision"
)

// maxTokens covers the longest template's 6-8 sentence answer with room to spare.
const maxTokens = 1024

type ClaudeAnalyzer struct {
	model  string
	client *anthropic.Client
}

func NewClaudeAnalyzer(apiKey, model string) *ClaudeAnalyzer {
	return newClaudeAnalyzer(apiKey, model)
}

func newClaudeAnalyzer(apiKey, model string, opts ...anthropic.ClientOption) *ClaudeAnalyzer {
	return &ClaudeAnalyzer{
		model:  model,
		client: anthropic.NewClient(apiKey, opts...),
	}
}

// buildMessages constructs the single user turn: template, image, question.
func buildMessages(req vision.Request) []anthropic.Message {
	content := []anthropic.MessageContent{
		anthropic.NewTextMessageContent(req.Prompt),
		anthropic.NewImageMessageContent(anthropic.MessageContentSource{
			Type:      anthropic.MessagesContentSourceTypeBase64,
			MediaType: vision.NormaliseMIME(req.MimeType),
			Data:      base64.StdEncoding.EncodeToString(req.Image),
		}),
	}
	// The API rejects empty text blocks.
	if req.Question != "" {
		content = append(content, anthropic.NewTextMessageContent(req.Question))
	}
	return []anthropic.Message{{Role: anthropic.RoleUser, Content: content}}
}

func (a *ClaudeAnalyzer) Analyze(ctx context.Context, req vision.Request) (string, error) {
	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxTokens,
		Messages:  buildMessages(req),
	})
	if err != nil {
		var apiErr *anthropic.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("claude returned %s: %s", apiErr.Type, apiErr.Message)
		}
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	for _, blk := range resp.Content {
		if blk.Type == anthropic.MessagesContentTypeText {
			return blk.GetText(), nil
		}
	}
	return "", fmt.Errorf("claude response contained no text")
}
