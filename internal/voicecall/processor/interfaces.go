package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"voice-server/internal/voicecall/twilio"
)

// RecordingFetcher downloads the audio behind a RecordingUrl callback value.
type RecordingFetcher interface {
	FetchRecording(ctx context.Context, recordingURL string) (twilio.Recording, error)
}

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error)
}
