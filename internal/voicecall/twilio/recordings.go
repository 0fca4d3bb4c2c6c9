package twilio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"voice-server/internal/observability"
)

const (
	wavExtension       = ".wav"
	defaultContentType = "audio/wav"

	// bodies of failed downloads are logged, keep them short
	maxErrorBodyBytes = 4 << 10
)

// Recording is a downloaded call recording.
type Recording struct {
	URL         string
	ContentType string
	Audio       []byte
}

// StatusError is returned when the recording host answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recording fetch returned status %d: %s", e.StatusCode, e.Body)
}

// AudioURL returns the WAV download URL for a RecordingUrl callback value.
func AudioURL(recordingURL string) string {
	if strings.HasSuffix(recordingURL, wavExtension) {
		return recordingURL
	}
	return recordingURL + wavExtension
}

type RecordingClientConfig struct {
	AccountSID string
	AuthToken  string
	HTTPClient *http.Client
}

// RecordingClient downloads recordings, authenticating with the account credentials
// when both are configured.
type RecordingClient struct {
	accountSID string
	authToken  string
	httpClient *http.Client
	logger     *observability.Logger
}

func NewRecordingClient(cfg RecordingClientConfig, logger *observability.Logger) *RecordingClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RecordingClient{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		httpClient: httpClient,
		logger:     logger,
	}
}

// FetchRecording downloads the WAV rendition of recordingURL.
func (c *RecordingClient) FetchRecording(ctx context.Context, recordingURL string) (Recording, error) {
	audioURL := AudioURL(recordingURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return Recording{}, fmt.Errorf("failed to create recording request: %w", err)
	}
	if c.accountSID != "" && c.authToken != "" {
		req.SetBasicAuth(c.accountSID, c.authToken)
	} else {
		c.logger.Debug(ctx, "recording credentials not configured, fetching without authorization")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Recording{}, fmt.Errorf("recording request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return Recording{}, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return Recording{}, fmt.Errorf("failed to read recording body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return Recording{
		URL:         audioURL,
		ContentType: contentType,
		Audio:       audio,
	}, nil
}
