package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurtureai/nurtureai/internal/domain"
	"github.com/nurtureai/nurtureai/internal/links"
	"github.com/nurtureai/nurtureai/internal/prompt"
	"github.com/nurtureai/nurtureai/internal/report"
	"github.com/nurtureai/nurtureai/internal/vision"
)

var (
	jpegData = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pngData  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
)

// stubVision is a minimal vision.Analyzer for tests. It records every call.
type stubVision struct {
	text  string
	err   error
	calls []vision.Request
	wait  bool
}

func (s *stubVision) Analyze(ctx context.Context, req vision.Request) (string, error) {
	s.calls = append(s.calls, req)
	if s.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.text, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, vis vision.Analyzer) *AnalysisService {
	t.Helper()
	lb, err := links.NewBuilder("15556389843", "hello")
	require.NoError(t, err)
	return NewAnalysisService(vis, lb, time.Second, discardLogger())
}

func TestAnalyzeFoodRegular(t *testing.T) {
	vis := &stubVision{text: "✅ Safe. Contains pasteurised milk."}
	svc := newTestService(t, vis)

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Category:  domain.CategoryFood,
		Expertise: domain.ExpertiseRegular,
		Image:     domain.Image{Data: jpegData, MimeType: "image/jpeg"},
		Question:  "Is this safe during pregnancy?",
	})
	require.NoError(t, err)

	require.Len(t, vis.calls, 1)
	call := vis.calls[0]
	assert.Equal(t, prompt.FoodRegular, call.Prompt)
	assert.Equal(t, jpegData, call.Image)
	assert.Equal(t, "image/jpeg", call.MimeType)
	assert.Equal(t, "Is this safe during pregnancy?", call.Question)

	assert.Equal(t, 1, strings.Count(result.Text, report.Disclaimer))
	assert.Equal(t, result.Text, result.Sections.String())
	assert.Equal(t, report.Disclaimer, result.Sections.Disclaimer)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "nurtureai_food_item_analysis.txt", result.FileName)
	assert.Equal(t, "https://wa.me/15556389843?text=hello", result.ChatLink)
	assert.True(t, strings.HasPrefix(result.ShareLink, "https://wa.me/?text=NurtureAI%20Analysis%20Results%20for%20food%20item"))

	segs := result.MainSegments()
	require.NotEmpty(t, segs)
	assert.Equal(t, report.VerdictSafe, segs[0].Verdict)
}

func TestAnalyzeCaloriesIgnoresExpertiseAndVerdicts(t *testing.T) {
	for _, level := range []domain.ExpertiseLevel{domain.ExpertiseRegular, domain.ExpertiseProfessional} {
		vis := &stubVision{text: "1. Salad - 150 calories ✅\nTotal: 150 calories ❌"}
		svc := newTestService(t, vis)

		result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
			Category:  domain.CategoryCalories,
			Expertise: level,
			Image:     domain.Image{Data: pngData, MimeType: "image/png"},
		})
		require.NoError(t, err)

		require.Len(t, vis.calls, 1)
		assert.Equal(t, prompt.Calories, vis.calls[0].Prompt)
		assert.Equal(t, "image/png", vis.calls[0].MimeType)

		segs := result.MainSegments()
		require.Len(t, segs, 1)
		assert.Equal(t, report.VerdictNone, segs[0].Verdict)
		assert.Equal(t, result.Sections.Main, segs[0].Text)
	}
}

func TestAnalyzeMissingImage(t *testing.T) {
	vis := &stubVision{text: "unused"}
	svc := newTestService(t, vis)

	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Category:  domain.CategoryDrug,
		Expertise: domain.ExpertiseRegular,
	})
	assert.ErrorIs(t, err, ErrMissingImage)
	assert.Empty(t, vis.calls)
}

func TestAnalyzeUnsupportedImage(t *testing.T) {
	vis := &stubVision{text: "unused"}
	svc := newTestService(t, vis)

	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Category:  domain.CategoryCosmetic,
		Expertise: domain.ExpertiseRegular,
		Image:     domain.Image{Data: []byte("%PDF-1.4 not an image"), MimeType: "image/jpeg"},
	})
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Empty(t, vis.calls)
}

func TestAnalyzeUsesDetectedMIME(t *testing.T) {
	vis := &stubVision{text: "ok"}
	svc := newTestService(t, vis)

	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Category:  domain.CategoryFood,
		Expertise: domain.ExpertiseProfessional,
		Image:     domain.Image{Data: pngData, MimeType: "image/jpeg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", vis.calls[0].MimeType)
	assert.Equal(t, prompt.FoodProfessional, vis.calls[0].Prompt)
}

func TestAnalyzeInvocationFailureThenRecovery(t *testing.T) {
	vis := &stubVision{err: errors.New("dial tcp: connection refused")}
	svc := newTestService(t, vis)

	req := domain.AnalysisRequest{
		Category:  domain.CategoryDrug,
		Expertise: domain.ExpertiseProfessional,
		Image:     domain.Image{Data: jpegData},
	}

	_, err := svc.Analyze(context.Background(), req)
	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Contains(t, invErr.Error(), "connection refused")

	vis.err = nil
	vis.text = "❌ Not Safe - Contains isotretinoin."
	result, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "isotretinoin")
	assert.Len(t, vis.calls, 2)
}

func TestAnalyzeTimeout(t *testing.T) {
	vis := &stubVision{wait: true}
	lb, err := links.NewBuilder("", "")
	require.NoError(t, err)
	svc := NewAnalysisService(vis, lb, 20*time.Millisecond, discardLogger())

	_, err = svc.Analyze(context.Background(), domain.AnalysisRequest{
		Category:  domain.CategoryFood,
		Expertise: domain.ExpertiseRegular,
		Image:     domain.Image{Data: jpegData},
	})
	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "did not respond within 20ms")
}

func TestAnalyzeMissingCredential(t *testing.T) {
	svc := newTestService(t, vision.Unconfigured{Backend: "gemini", EnvVar: "GOOGLE_API_KEY"})

	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Category:  domain.CategoryFood,
		Expertise: domain.ExpertiseRegular,
		Image:     domain.Image{Data: jpegData},
	})
	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.ErrorIs(t, err, vision.ErrMissingCredential)
}

func TestAnalyzeInvalidEnumIsInvocationError(t *testing.T) {
	vis := &stubVision{text: "unused"}
	svc := newTestService(t, vis)

	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Category:  domain.Category(42),
		Expertise: domain.ExpertiseRegular,
		Image:     domain.Image{Data: jpegData},
	})
	var invErr *InvocationError
	assert.ErrorAs(t, err, &invErr)
	assert.Empty(t, vis.calls)
}

func TestFileName(t *testing.T) {
	tests := map[domain.Category]string{
		domain.CategoryFood:     "nurtureai_food_item_analysis.txt",
		domain.CategoryDrug:     "nurtureai_medicine_drug_analysis.txt",
		domain.CategoryCosmetic: "nurtureai_cosmetic_product_analysis.txt",
		domain.CategoryCalories: "nurtureai_meal_or_food_items_analysis.txt",
	}
	for c, want := range tests {
		assert.Equal(t, want, FileName(c))
	}
}

func TestDetectImageType(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantMIME string
		wantOK   bool
	}{
		{"JPEG", jpegData, "image/jpeg", true},
		{"PNG", pngData, "image/png", true},
		{"GIF", []byte("GIF89a"), "", false},
		{"WebP", append([]byte("RIFF\x00\x00\x00\x00WEBP"), make([]byte, 10)...), "", false},
		{"PDF disguised as image", []byte("%PDF-1.4 malicious content"), "", false},
		{"empty", []byte{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, ok := DetectImageType(tt.data)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMIME, mime)
		})
	}
}
