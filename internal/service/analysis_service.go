package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/nurtureai/nurtureai/internal/domain"
	"github.com/nurtureai/nurtureai/internal/links"
	"github.com/nurtureai/nurtureai/internal/prompt"
	"github.com/nurtureai/nurtureai/internal/report"
	"github.com/nurtureai/nurtureai/internal/vision"
)

var (
	// ErrMissingImage is returned before any model call when no image was supplied.
	ErrMissingImage = errors.New("please upload an image to analyze")
	// ErrUnsupportedImage is returned before any model call when the upload is
	// not a JPEG or PNG.
	ErrUnsupportedImage = errors.New("unsupported image format, upload a JPEG or PNG")
)

// InvocationError wraps every failure after input validation. The message is
// the detail shown to the user.
type InvocationError struct {
	Err error
}

func (e *InvocationError) Error() string { return e.Err.Error() }
func (e *InvocationError) Unwrap() error { return e.Err }

// linkBuilder is the subset of links.Builder that AnalysisService requires.
type linkBuilder interface {
	ShareLink(text string) string
	ChatLink() string
}

type AnalysisService struct {
	visionAPI vision.Analyzer
	links     linkBuilder
	timeout   time.Duration
	logger    *slog.Logger
}

// NewAnalysisService wires the model invoker and link builder. A timeout of
// zero leaves the model call bounded only by ctx.
func NewAnalysisService(visionAPI vision.Analyzer, lb linkBuilder, timeout time.Duration, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		visionAPI: visionAPI,
		links:     lb,
		timeout:   timeout,
		logger:    logger,
	}
}

// ChatLink is the configured chat deep link, or "" when none is configured.
func (s *AnalysisService) ChatLink() string {
	return s.links.ChatLink()
}

// Result is a finished analysis ready for presentation.
type Result struct {
	ID        uuid.UUID
	Category  domain.Category
	Expertise domain.ExpertiseLevel
	Text      string
	Sections  report.Sections
	ShareLink string
	ChatLink  string
	FileName  string
}

// MainSegments is the main content split around verdict glyphs. Categories
// that do not mark verdicts get a single plain segment.
func (r *Result) MainSegments() []report.Segment {
	if !r.Category.MarksVerdicts() {
		if r.Sections.Main == "" {
			return nil
		}
		return []report.Segment{{Text: r.Sections.Main}}
	}
	return report.Segments(r.Sections.Main)
}

// Analyze validates req, sends it to the vision model with the selected
// template and returns the finished result. Validation failures return
// ErrMissingImage or ErrUnsupportedImage; everything else is an
// *InvocationError.
func (s *AnalysisService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*Result, error) {
	id := uuid.New()

	if len(req.Image.Data) == 0 {
		s.logger.Info("submission rejected", "submission_id", id, "reason", "missing image")
		return nil, ErrMissingImage
	}

	mimeType, ok := DetectImageType(req.Image.Data)
	if !ok {
		s.logger.Info("submission rejected", "submission_id", id, "reason", "unsupported image", "declared_mime_type", req.Image.MimeType)
		return nil, ErrUnsupportedImage
	}
	if req.Image.MimeType != "" && req.Image.MimeType != mimeType {
		s.logger.Debug("declared mime type differs from content", "submission_id", id, "declared", req.Image.MimeType, "detected", mimeType)
	}

	s.logger.Info("analysis started",
		"submission_id", id,
		"category", req.Category.String(),
		"expertise", req.Expertise.String(),
		"mime_type", mimeType,
		"bytes", len(req.Image.Data),
	)

	template, err := prompt.Select(req.Category, req.Expertise)
	if err != nil {
		return nil, s.fail(id, err)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.visionAPI.Analyze(callCtx, vision.Request{
		Prompt:   template,
		Image:    req.Image.Data,
		MimeType: mimeType,
		Question: strings.TrimSpace(req.Question),
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("model did not respond within %s: %w", s.timeout, err)
		}
		return nil, s.fail(id, err)
	}
	s.logger.Info("analysis complete", "submission_id", id, "duration_ms", time.Since(start).Milliseconds(), "chars", len(text))

	finished := report.Finish(text)
	return &Result{
		ID:        id,
		Category:  req.Category,
		Expertise: req.Expertise,
		Text:      finished,
		Sections:  report.Split(finished),
		ShareLink: s.links.ShareLink(links.ShareMessage(req.Category, finished)),
		ChatLink:  s.links.ChatLink(),
		FileName:  FileName(req.Category),
	}, nil
}

func (s *AnalysisService) fail(id uuid.UUID, err error) error {
	s.logger.Error("analysis failed", "submission_id", id, "error", err)
	return &InvocationError{Err: err}
}

// FileName is the download name for a category's result, e.g.
// nurtureai_medicine_drug_analysis.txt.
func FileName(c domain.Category) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(c.Subject()) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	return "nurtureai_" + b.String() + "_analysis.txt"
}

// allowedImageTypes is the set of MIME types accepted for uploaded photos.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// DetectImageType sniffs data and returns its MIME type when it is an
// accepted image format, or ("", false) otherwise.
func DetectImageType(data []byte) (string, bool) {
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}
