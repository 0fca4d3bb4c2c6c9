package bootstrap

import (
	"context"
	"voice-server/internal/clients/openai"
	"voice-server/internal/config"
	"voice-server/internal/observability"
	voiceCallHandler "voice-server/internal/voicecall/handler"
	voiceCallProcessor "voice-server/internal/voicecall/processor"
	"voice-server/internal/voicecall/twilio"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Logger   *observability.Logger
	Registry *prometheus.Registry
	Metrics  *observability.Metrics

	// Handlers
	VoiceCallHandler voiceCallHandler.Handler
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = observability.NewMetrics(deps.Registry)

	if !cfg.Twilio.HasRecordingCredentials() {
		logger.Warn(ctx, "twilio credentials incomplete, recordings will be fetched without authorization")
	}
	if cfg.OpenAI.APIKey == "" {
		logger.Warn(ctx, "OPENAI_API_KEY is empty, transcription requests will be rejected")
	}

	// Initialize clients
	recordingClient := twilio.NewRecordingClient(twilio.RecordingClientConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
	}, logger)

	transcriptionClient := openai.NewTranscriptionClient(openai.TranscriptionConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
	}, logger)

	// Initialize voice call processor and handler
	voiceCallProc := voiceCallProcessor.NewVoiceCallProcessor(recordingClient, transcriptionClient, deps.Metrics, logger)
	deps.VoiceCallHandler = voiceCallHandler.New(voiceCallProc, deps.Metrics, logger, voiceCallHandler.Config{
		Voice:        cfg.Voice.Name,
		CallbackPath: cfg.Voice.CallbackPath,
	})

	return deps, nil
}

// Cleanup flushes buffered log entries
func (d *Dependencies) Cleanup() {
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}
}
