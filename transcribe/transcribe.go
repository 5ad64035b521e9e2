// Package transcribe is the speech-recognition boundary: it turns audio into
// recognized utterance text for the annotation engine. Recognition itself is
// delegated to an external service behind the Backend interface.
package transcribe

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Result is the recognized text for one audio input.
type Result struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"` // seconds
}

// Backend is a pluggable speech-recognition service.
type Backend interface {
	Transcribe(ctx context.Context, audioPath string) (Result, error)
}

// Utterance is one recognized stretch of speech handed to the annotator.
type Utterance struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUtterance trims and validates recognized text and stamps it with an id
// used to name the pipeline's log artifacts.
func NewUtterance(text string) (Utterance, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Utterance{}, errors.New("empty utterance")
	}
	return Utterance{
		ID:        uuid.NewString(),
		Text:      trimmed,
		CreatedAt: time.Now().UTC(),
	}, nil
}
