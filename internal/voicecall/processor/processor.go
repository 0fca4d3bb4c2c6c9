package processor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"voice-server/internal/clients/openai"
	"voice-server/internal/observability"
	"voice-server/internal/voicecall/twilio"
)

const (
	recordingFilename   = "recording.wav"
	noTranscriptMessage = "Sorry, I could not transcribe your message."

	StageFetchRecording = "fetch_recording"
	StageTranscribe     = "transcribe"
)

// RecordingCallback is the subset of the recording status callback the pipeline reads.
// Only RecordingURL is required; the rest is carried into log context.
type RecordingCallback struct {
	RecordingURL      string
	CallSID           string
	RecordingSID      string
	RecordingDuration string
}

// CallbackFromValues reads a callback from form fields.
func CallbackFromValues(values url.Values) RecordingCallback {
	return RecordingCallback{
		RecordingURL:      values.Get("RecordingUrl"),
		CallSID:           values.Get("CallSid"),
		RecordingSID:      values.Get("RecordingSid"),
		RecordingDuration: values.Get("RecordingDuration"),
	}
}

type VoiceCallProcessor struct {
	fetcher     RecordingFetcher
	transcriber Transcriber
	metrics     *observability.Metrics
	logger      *observability.Logger
}

func NewVoiceCallProcessor(fetcher RecordingFetcher, transcriber Transcriber, metrics *observability.Metrics, logger *observability.Logger) *VoiceCallProcessor {
	return &VoiceCallProcessor{
		fetcher:     fetcher,
		transcriber: transcriber,
		metrics:     metrics,
		logger:      logger,
	}
}

// ProcessRecording downloads the recording, transcribes it and returns the sanitized
// transcript. Each stage stops the pipeline on failure; nothing is retried.
func (v *VoiceCallProcessor) ProcessRecording(ctx context.Context, callback RecordingCallback) Outcome {
	ctx = callbackContext(ctx, callback)

	if callback.RecordingURL == "" {
		v.logger.Warn(ctx, "recording callback without RecordingUrl")
		return Outcome{Reason: ReasonMissingRecording, Err: ErrMissingRecording}
	}

	start := time.Now()
	recording, err := v.fetcher.FetchRecording(ctx, callback.RecordingURL)
	v.metrics.ObserveStage(StageFetchRecording, time.Since(start))
	if err != nil {
		var statusErr *twilio.StatusError
		if errors.As(err, &statusErr) {
			ctx = observability.WithFields(ctx,
				observability.Field{Key: "status_code", Value: statusErr.StatusCode},
				observability.Field{Key: "response_body", Value: statusErr.Body},
			)
			v.logger.Error(ctx, "failed to fetch recording", err)
			return Outcome{Reason: ReasonFetchFailed, Err: err}
		}
		v.logger.Error(ctx, "recording fetch errored", err)
		return Unexpected(fmt.Errorf("fetch recording: %w", err))
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "audio_bytes", Value: len(recording.Audio)},
		observability.Field{Key: "audio_content_type", Value: recording.ContentType},
	)

	start = time.Now()
	text, err := v.transcriber.Transcribe(ctx, recording.Audio, recordingFilename, recording.ContentType)
	v.metrics.ObserveStage(StageTranscribe, time.Since(start))
	if err != nil {
		if errors.Is(err, openai.ErrTranscriptionRejected) {
			v.logger.Error(ctx, "transcription service error", err)
			return Outcome{Reason: ReasonTranscriptionFailed, Err: err}
		}
		v.logger.Error(ctx, "transcription request errored", err)
		return Unexpected(fmt.Errorf("transcribe recording: %w", err))
	}

	if text == "" {
		v.logger.Warn(ctx, "transcription returned no text")
		text = noTranscriptMessage
	}

	v.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "transcript_length", Value: len(text)},
	), "recording transcribed")

	return Outcome{Reason: ReasonNone, Text: SanitizeTranscript(text)}
}

var transcriptReplacer = strings.NewReplacer("&", " and ", "<", "", ">", "")

// SanitizeTranscript replaces "&" with " and " and drops angle brackets.
// The output is still escaped by the TwiML builder; this keeps spoken text identical
// to what callers have always heard.
func SanitizeTranscript(text string) string {
	return transcriptReplacer.Replace(text)
}

func callbackContext(ctx context.Context, callback RecordingCallback) context.Context {
	fields := make([]observability.Field, 0, 4)
	if callback.CallSID != "" {
		fields = append(fields, observability.Field{Key: "call_sid", Value: callback.CallSID})
	}
	if callback.RecordingSID != "" {
		fields = append(fields, observability.Field{Key: "recording_sid", Value: callback.RecordingSID})
	}
	if callback.RecordingDuration != "" {
		fields = append(fields, observability.Field{Key: "recording_duration", Value: callback.RecordingDuration})
	}
	if callback.RecordingURL != "" {
		fields = append(fields, observability.Field{Key: "recording_url", Value: callback.RecordingURL})
	}
	if len(fields) == 0 {
		return ctx
	}
	return observability.WithFields(ctx, fields...)
}
