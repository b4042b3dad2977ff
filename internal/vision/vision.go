package vision

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingCredential is returned by an analyzer whose backend has no API key.
var ErrMissingCredential = errors.New("model API credential is not configured")

// Request is one multimodal generation call: the instruction template, the
// image, and the user's question, sent to the model in that order.
type Request struct {
	Prompt   string
	Image    []byte
	MimeType string
	Question string
}

// Analyzer sends a Request to a vision model and returns its text verbatim.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (string, error)
}

// Unconfigured is the Analyzer used when the selected backend is missing its
// credential. Every call fails, so the server still starts and reports the
// problem per submission.
type Unconfigured struct {
	Backend string
	EnvVar  string
}

func (u Unconfigured) Analyze(context.Context, Request) (string, error) {
	return "", fmt.Errorf("%s backend: set %s: %w", u.Backend, u.EnvVar, ErrMissingCredential)
}

// NormaliseMIME maps an upload MIME type to one every backend accepts.
// Unknown types are coerced to jpeg; callers validate before this layer.
func NormaliseMIME(mimeType string) string {
	switch mimeType {
	case "image/png", "image/gif", "image/webp":
		return mimeType
	default:
		return "image/jpeg"
	}
}
