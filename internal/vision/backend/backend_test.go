package backend

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurtureai/nurtureai/internal/config"
	"github.com/nurtureai/nurtureai/internal/vision"
	claudevision "github.com/nurtureai/nurtureai/internal/vision/claude"
	ollamavision "github.com/nurtureai/nurtureai/internal/vision/ollama"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewMissingKeyIsUnconfigured(t *testing.T) {
	for _, name := range []string{"gemini", "claude"} {
		t.Run(name, func(t *testing.T) {
			a, cleanup, err := New(context.Background(), &config.Config{VisionBackend: name}, discardLogger())
			require.NoError(t, err)
			defer cleanup()

			_, err = a.Analyze(context.Background(), vision.Request{})
			assert.ErrorIs(t, err, vision.ErrMissingCredential)
		})
	}
}

func TestNewClaude(t *testing.T) {
	a, cleanup, err := New(context.Background(), &config.Config{VisionBackend: "claude", ClaudeAPIKey: "k", ClaudeModel: "m"}, discardLogger())
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &claudevision.ClaudeAnalyzer{}, a)
}

func TestNewOllama(t *testing.T) {
	a, cleanup, err := New(context.Background(), &config.Config{VisionBackend: "ollama", OllamaHost: "http://localhost:11434", OllamaModel: "llava"}, discardLogger())
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &ollamavision.OllamaAnalyzer{}, a)
}

func TestNewUnknownBackend(t *testing.T) {
	_, _, err := New(context.Background(), &config.Config{VisionBackend: "dalle"}, discardLogger())
	assert.Error(t, err)
}
