package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/nurtureai/nurtureai/internal/domain"
	"github.com/nurtureai/nurtureai/internal/service"
)

const (
	maxPhotoSize    = 20 * 1024 * 1024 // 20 MB
	maxDownloadSize = 1 * 1024 * 1024
	maxQuestionLen  = 1000
)

// User-facing messages for each failure class.
const (
	msgMissingImage     = "⚠️ Please upload an image to analyze"
	msgUnsupportedImage = "⚠️ Unsupported image format. Please upload a JPEG or PNG image"
	msgUnexpected       = "An unexpected error occurred: "
	msgTooLarge         = "⚠️ The image is too large. Please upload an image under 20 MB"
	msgInvalidForm      = "⚠️ The form could not be read. Please try again"
)

type pageData struct {
	Categories []domain.Category
	Levels     []domain.ExpertiseLevel
	Selected   domain.Category
	Expertise  domain.ExpertiseLevel
	Question   string
	Result     *service.Result
	Error      string
	ChatLink   string
}

func (s *Server) newPageData() pageData {
	return pageData{
		Categories: domain.Categories,
		Levels:     []domain.ExpertiseLevel{domain.ExpertiseRegular, domain.ExpertiseProfessional},
		Selected:   domain.CategoryFood,
		Expertise:  domain.ExpertiseRegular,
		ChatLink:   s.service.ChatLink(),
	}
}

// handleIndex renders the form. The category and question query parameters
// preselect the form; category radios use them to refresh the
// category-specific hints without losing the typed question.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData()
	q := r.URL.Query()
	if c, err := domain.ParseCategory(q.Get("category")); err == nil {
		data.Selected = c
	}
	if e, err := domain.ParseExpertise(q.Get("expertise")); err == nil {
		data.Expertise = e
	}
	if question := q.Get("question"); utf8.RuneCountInString(question) <= maxQuestionLen {
		data.Question = question
	}
	if err := s.renderPage(w, http.StatusOK, data, "base.html", "pages/index.html", "partials/result.html"); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData()

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize+1024*1024)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			data.Error = msgTooLarge
			s.respond(w, r, http.StatusRequestEntityTooLarge, data)
			return
		}
		data.Error = msgInvalidForm
		s.respond(w, r, http.StatusBadRequest, data)
		return
	}

	req, err := s.readSubmission(r)
	data.Question = req.Question
	if req.Category != 0 {
		data.Selected = req.Category
	}
	if req.Expertise != 0 {
		data.Expertise = req.Expertise
	}
	if err != nil {
		data.Error = "⚠️ " + err.Error()
		s.respond(w, r, http.StatusBadRequest, data)
		return
	}

	status := http.StatusOK
	result, err := s.service.Analyze(r.Context(), req)
	var invErr *service.InvocationError
	switch {
	case err == nil:
		data.Result = result
	case errors.Is(err, service.ErrMissingImage):
		status = http.StatusBadRequest
		data.Error = msgMissingImage
	case errors.Is(err, service.ErrUnsupportedImage):
		status = http.StatusBadRequest
		data.Error = msgUnsupportedImage
	case errors.As(err, &invErr):
		status = http.StatusBadGateway
		data.Error = msgUnexpected + invErr.Error()
	default:
		status = http.StatusInternalServerError
		data.Error = msgUnexpected + err.Error()
	}
	s.respond(w, r, status, data)
}

// respond renders the result partial for htmx requests and the full page
// otherwise. htmx only swaps 2xx responses, so partial updates always carry
// 200 and the error is shown inline.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	if r.Header.Get("HX-Request") == "true" {
		if err := s.renderPartial(w, http.StatusOK, "partials/result.html", data); err != nil {
			s.logger.Error("render partial failed", "error", err)
		}
		return
	}
	if err := s.renderPage(w, status, data, "base.html", "pages/index.html", "partials/result.html"); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

// readSubmission pulls the analysis request out of a parsed multipart form.
// A missing image is not an error here; the service reports it.
func (s *Server) readSubmission(r *http.Request) (domain.AnalysisRequest, error) {
	var req domain.AnalysisRequest

	category, err := domain.ParseCategory(r.FormValue("category"))
	if err != nil {
		return req, err
	}
	req.Category = category

	expertise, err := domain.ParseExpertise(r.FormValue("expertise"))
	if err != nil {
		return req, err
	}
	req.Expertise = expertise

	question := strings.TrimSpace(r.FormValue("question"))
	if utf8.RuneCountInString(question) > maxQuestionLen {
		return req, fmt.Errorf("question is too long, keep it under %d characters", maxQuestionLen)
	}
	req.Question = question

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return req, fmt.Errorf("failed to read image: %w", err)
	}
	defer closeWithLog(file, "upload file", s.logger)

	imageData, err := io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("failed to read image: %w", err)
	}

	req.Image = domain.Image{Data: imageData, MimeType: header.Header.Get("Content-Type")}
	return req, nil
}

// handleDownload returns a result as a plain-text attachment. The text comes
// back from the page because results are never stored server-side.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDownloadSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	category, err := domain.ParseCategory(r.PostFormValue("category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	text := r.PostFormValue("result")
	if text == "" {
		http.Error(w, "result required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": service.FileName(category)}))
	if _, err := io.WriteString(w, text); err != nil {
		s.logger.Error("write download failed", "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
