// Package backend picks the vision.Analyzer named by VISION_BACKEND.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nurtureai/nurtureai/internal/config"
	"github.com/nurtureai/nurtureai/internal/vision"
	claudevision "github.com/nurtureai/nurtureai/internal/vision/claude"
	geminivision "github.com/nurtureai/nurtureai/internal/vision/gemini"
	ollamavision "github.com/nurtureai/nurtureai/internal/vision/ollama"
)

// New returns the configured analyzer and a func releasing its resources.
// A backend without its API key yields vision.Unconfigured so callers can
// still start and report the problem per request.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (vision.Analyzer, func(), error) {
	switch cfg.VisionBackend {
	case "gemini", "":
		if cfg.GoogleAPIKey == "" {
			logger.Warn("GOOGLE_API_KEY is not set; analysis requests will fail")
			return vision.Unconfigured{Backend: "gemini", EnvVar: "GOOGLE_API_KEY"}, func() {}, nil
		}
		a, err := geminivision.NewGeminiAnalyzer(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, fmt.Errorf("gemini client: %w", err)
		}
		logger.Info("using Gemini vision backend", "model", cfg.GeminiModel)
		return a, func() {
			if err := a.Close(); err != nil {
				logger.Error("failed to close gemini client", "error", err)
			}
		}, nil
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Warn("CLAUDE_API_KEY is not set; analysis requests will fail")
			return vision.Unconfigured{Backend: "claude", EnvVar: "CLAUDE_API_KEY"}, func() {}, nil
		}
		logger.Info("using Claude vision backend", "model", cfg.ClaudeModel)
		return claudevision.NewClaudeAnalyzer(cfg.ClaudeAPIKey, cfg.ClaudeModel), func() {}, nil
	case "ollama":
		logger.Info("using Ollama vision backend", "host", cfg.OllamaHost, "model", cfg.OllamaModel)
		return ollamavision.NewOllamaAnalyzer(cfg.OllamaHost, cfg.OllamaModel), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown VISION_BACKEND %q", cfg.VisionBackend)
	}
}
