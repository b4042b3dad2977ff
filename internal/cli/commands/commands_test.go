package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurtureai/nurtureai/internal/config"
	"github.com/nurtureai/nurtureai/internal/prompt"
	"github.com/nurtureai/nurtureai/internal/service"
	"github.com/nurtureai/nurtureai/internal/vision"
)

type stubVision struct {
	text  string
	err   error
	calls []vision.Request
}

func (s *stubVision) Analyze(_ context.Context, req vision.Request) (string, error) {
	s.calls = append(s.calls, req)
	return s.text, s.err
}

// run executes the root command with args in an isolated working directory
// and returns everything written to stdout.
func run(t *testing.T, vis vision.Analyzer, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	prevColor := color.NoColor
	color.NoColor = true
	prevAnalyzer := newAnalyzer
	newAnalyzer = func(context.Context, *config.Config, *slog.Logger) (vision.Analyzer, func(), error) {
		return vis, func() {}, nil
	}
	t.Cleanup(func() {
		color.NoColor = prevColor
		newAnalyzer = prevAnalyzer
		analyzeCategory, analyzePro, analyzeImage, analyzeQuestion, analyzeVerbose = "food", false, "", "", false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeImage(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

var jpegData = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

func TestAnalyzePrintsResult(t *testing.T) {
	t.Setenv("WHATSAPP_CHAT_NUMBER", "15556389843")
	vis := &stubVision{text: "❌ Not Safe - Contains retinol."}
	img := writeImage(t, jpegData)

	out, err := run(t, vis, "analyze", "--category", "cosmetic", "--pro", "--image", img, "--question", "Okay while pregnant?")
	require.NoError(t, err)

	require.Len(t, vis.calls, 1)
	assert.Equal(t, prompt.CosmeticProfessional, vis.calls[0].Prompt)
	assert.Equal(t, "Okay while pregnant?", vis.calls[0].Question)
	assert.Equal(t, "image/jpeg", vis.calls[0].MimeType)

	assert.Contains(t, out, "❌ NOT SAFE Not Safe - Contains retinol.")
	assert.Contains(t, out, "Please consult a healthcare professional for personalized advice.")
	assert.Contains(t, out, "Share on WhatsApp: https://wa.me/?text=")
	assert.Contains(t, out, "Chat with NurtureAI: https://wa.me/15556389843?text=")
}

func TestAnalyzeMissingImage(t *testing.T) {
	vis := &stubVision{text: "unused"}

	out, err := run(t, vis, "analyze", "--category", "food")
	assert.ErrorIs(t, err, service.ErrMissingImage)
	assert.Contains(t, out, "Please upload an image to analyze")
	assert.Empty(t, vis.calls)
}

func TestAnalyzeInvalidCategory(t *testing.T) {
	vis := &stubVision{text: "unused"}

	_, err := run(t, vis, "analyze", "--category", "toys", "--image", writeImage(t, jpegData))
	assert.Error(t, err)
	assert.Empty(t, vis.calls)
}

func TestAnalyzeModelFailure(t *testing.T) {
	vis := &stubVision{err: errors.New("quota exceeded")}

	out, err := run(t, vis, "analyze", "-c", "drug", "-i", writeImage(t, jpegData))
	var invErr *service.InvocationError
	assert.ErrorAs(t, err, &invErr)
	assert.Contains(t, out, "An unexpected error occurred: quota exceeded")
}

func TestChatLink(t *testing.T) {
	t.Setenv("WHATSAPP_CHAT_NUMBER", "+15556389843")
	t.Setenv("WHATSAPP_CHAT_GREETING", "hi there")

	out, err := run(t, nil, "chat-link")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/15556389843?text=hi%20there\n", out)
}

func TestChatLinkNotConfigured(t *testing.T) {
	t.Setenv("WHATSAPP_CHAT_NUMBER", "")

	out, err := run(t, nil, "chat-link")
	assert.Error(t, err)
	assert.Contains(t, out, "No chat number configured")
}
