package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// whisperBackend posts audio to an OpenAI-compatible
// /v1/audio/transcriptions endpoint: OpenAI itself or a local whisper server
// speaking the same API.
type whisperBackend struct {
	endpoint string
	apiKey   string
	model    string
	language string
	client   *http.Client
}

// NewWhisperBackend builds a backend for the given endpoint. apiKey may be
// empty for local servers that skip authentication.
func NewWhisperBackend(endpoint, apiKey, model string) Backend {
	return &whisperBackend{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		language: "ja",
		client:   &http.Client{Timeout: 5 * time.Minute},
	}
}

type whisperResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

func (w *whisperBackend) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", w.model); err != nil {
		return Result{}, err
	}
	if err := mw.WriteField("language", w.language); err != nil {
		return Result{}, err
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return Result{}, err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return Result{}, err
	}
	if err := mw.Close(); err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, &body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if w.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.apiKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{}, fmt.Errorf("transcription failed: %s: %s", resp.Status, bytes.TrimSpace(msg))
	}

	var parsed whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, fmt.Errorf("parse transcription response: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"audio":    audioPath,
		"language": parsed.Language,
		"duration": parsed.Duration,
	}).Debug("transcription complete")

	return Result{Text: parsed.Text, Language: parsed.Language, Duration: parsed.Duration}, nil
}
