package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"voice-server/internal/observability"

	"github.com/openai/openai-go"
	openaiOption "github.com/openai/openai-go/option"
)

// ErrTranscriptionRejected wraps any non-2xx answer from the transcription endpoint.
var ErrTranscriptionRejected = errors.New("transcription service rejected the request")

// TranscriptionConfig holds configuration for the transcription client.
type TranscriptionConfig struct {
	APIKey     string
	BaseURL    string // e.g. "https://api.openai.com/v1/"
	Model      string // e.g. "whisper-1"
	HTTPClient *http.Client
}

type TranscriptionClient struct {
	model   string
	options []openaiOption.RequestOption
	logger  *observability.Logger
}

func NewTranscriptionClient(cfg TranscriptionConfig, logger *observability.Logger) *TranscriptionClient {
	// An empty key is passed through as-is so the service rejects the call.
	options := []openaiOption.RequestOption{
		openaiOption.WithAPIKey(cfg.APIKey),
		openaiOption.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		options = append(options, openaiOption.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		options = append(options, openaiOption.WithHTTPClient(cfg.HTTPClient))
	}

	model := cfg.Model
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}

	return &TranscriptionClient{
		model:   model,
		options: options,
		logger:  logger,
	}
}

// Transcribe uploads audio as a multipart "file" part and returns the service's text field,
// which is empty when the response carried none.
func (c *TranscriptionClient) Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error) {
	client := openai.NewClient(c.options...)

	params := openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(c.model),
		File:  openai.File(bytes.NewReader(audio), filename, contentType),
	}
	resp, err := client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: status %d: %w", ErrTranscriptionRejected, apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("transcription request failed: %w", err)
	}

	c.logger.Debug(ctx, fmt.Sprintf("transcription returned %d characters", len(resp.Text)))
	return resp.Text, nil
}
