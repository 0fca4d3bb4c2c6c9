package handler

import (
	"net/http"
	"voice-server/internal/observability"
	"voice-server/internal/voicecall/processor"

	"github.com/gin-gonic/gin"
)

// Served when the TwiML builder itself fails so the call still gets a playable document.
const staticFallbackTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response><Say>Something went wrong. Please try again later.</Say></Response>`

type Config struct {
	Voice        string
	CallbackPath string
}

type Handler struct {
	voiceProcessor *processor.VoiceCallProcessor
	metrics        *observability.Metrics
	logger         *observability.Logger
	voice          string
	callbackPath   string
}

func New(voiceProcessor *processor.VoiceCallProcessor, metrics *observability.Metrics, logger *observability.Logger, cfg Config) Handler {
	return Handler{
		voiceProcessor: voiceProcessor,
		metrics:        metrics,
		logger:         logger,
		voice:          cfg.Voice,
		callbackPath:   cfg.CallbackPath,
	}
}

// writeTwiML always answers 200 with a TwiML body.
func (h *Handler) writeTwiML(c *gin.Context, doc string, err error) {
	if err != nil {
		h.logger.Error(c.Request.Context(), "failed to render twiml", err)
		doc = staticFallbackTwiML
	}
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, doc)
}
