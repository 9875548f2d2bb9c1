package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultEndpoint is the OpenAI-compatible audio transcription endpoint.
const DefaultEndpoint = "https://api.groq.com/openai/v1/audio/transcriptions"

// DefaultModel is the speech-to-text model submitted with each segment.
const DefaultModel = "whisper-large-v3"

var (
	// ErrBadResponse means the service body was not JSON or carried no text
	// field. Recoverable per segment.
	ErrBadResponse = errors.New("malformed transcription response")
)

// Transcriber converts one short audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// WhisperClient calls a Whisper-style transcription service with one audio
// file per request.
type WhisperClient struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// WhisperConfig configures the transcription client. Zero values fall back to
// the Groq endpoint and whisper-large-v3.
type WhisperConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// NewWhisperClient creates a transcription client.
func NewWhisperClient(cfg WhisperConfig) *WhisperClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &WhisperClient{
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

// Transcribe submits the audio file and returns the text field of the JSON
// response. A non-JSON body or a body without a text field returns
// ErrBadResponse.
func (c *WhisperClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open segment: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy segment: %w", err)
	}
	if err := writer.WriteField("model", c.model); err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription error %s: %s", resp.Status, truncate(string(respBody), 256))
	}

	var payload map[string]any
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return "", errors.Join(ErrBadResponse, err)
	}
	text, ok := payload["text"].(string)
	if !ok {
		return "", ErrBadResponse
	}

	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
