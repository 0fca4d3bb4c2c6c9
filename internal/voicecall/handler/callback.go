package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"voice-server/internal/voicecall/processor"
	"voice-server/internal/voicecall/twilio"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	json "github.com/goccy/go-json"
)

// HandleRecordingCallback processes the provider's recording callback and always answers
// 200 with TwiML: the transcript on success, a fallback sentence otherwise.
// A panic anywhere in processing or rendering is answered with the generic apology.
func (h *Handler) HandleRecordingCallback(c *gin.Context) {
	ctx := c.Request.Context()
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error(ctx, "Recovered from panic", fmt.Errorf("panic while handling recording callback: %v", r))
			if c.Writer.Written() {
				return
			}
			c.Header("Content-Type", "text/xml")
			c.String(http.StatusOK, staticFallbackTwiML)
		}
	}()

	outcome := h.processCallback(ctx, c)
	h.metrics.ObserveOutcome(outcome.Reason.String())

	var (
		doc string
		err error
	)
	if outcome.Succeeded() {
		doc, err = twilio.ReplyDocument(outcome.Text, h.voice)
	} else {
		doc, err = twilio.SpeechDocument(outcome.Reason.FallbackMessage())
	}
	h.writeTwiML(c, doc, err)
}

func (h *Handler) processCallback(ctx context.Context, c *gin.Context) processor.Outcome {
	values, err := h.readCallbackValues(ctx, c)
	if err != nil {
		h.logger.Error(ctx, "failed to read recording callback", err)
		return processor.Unexpected(err)
	}

	return h.voiceProcessor.ProcessRecording(ctx, processor.CallbackFromValues(values))
}

// readCallbackValues returns the already parsed form when a middleware populated it,
// otherwise reads the raw body and decodes it as JSON or URL-encoded form data.
// Undecodable bodies yield whatever fields could be recovered.
func (h *Handler) readCallbackValues(ctx context.Context, c *gin.Context) (url.Values, error) {
	if len(c.Request.PostForm) > 0 {
		return c.Request.PostForm, nil
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read callback body: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return url.Values{}, nil
	}

	if c.ContentType() == binding.MIMEJSON {
		values, err := jsonValues(raw)
		if err != nil {
			h.logger.InfoWithError(ctx, "ignoring undecodable JSON callback body", err)
			return url.Values{}, nil
		}
		return values, nil
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		h.logger.InfoWithError(ctx, "callback body partially decoded", err)
	}
	return values, nil
}

func jsonValues(raw []byte) (url.Values, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode JSON callback: %w", err)
	}

	values := make(url.Values, len(fields))
	for key, value := range fields {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			values.Set(key, v)
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}
	return values, nil
}
