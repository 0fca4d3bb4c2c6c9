package handler

import (
	"fmt"
	"net/http"
	"strings"
	"voice-server/internal/observability"
	"voice-server/internal/voicecall/twilio"

	"github.com/gin-gonic/gin"
)

// HandleEntry answers the inbound call webhook with a greeting and a Record verb that
// posts the recording back to this service.
func (h *Handler) HandleEntry(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodPost {
		c.String(http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	actionURL := ExternalBaseURL(c.Request) + h.callbackPath
	ctx := observability.WithFields(c.Request.Context(),
		observability.Field{Key: "action_url", Value: actionURL},
	)
	h.logger.Info(ctx, fmt.Sprintf("answering call, recording callback %s", actionURL))

	doc, err := twilio.EntryDocument(actionURL, h.voice)
	h.writeTwiML(c, doc, err)
}

// ExternalBaseURL rebuilds the scheme and host the provider used to reach us, preferring
// proxy forwarding headers. Only the first X-Forwarded-Proto entry is used.
func ExternalBaseURL(r *http.Request) string {
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}

	proto, _, _ := strings.Cut(r.Header.Get("X-Forwarded-Proto"), ",")
	proto = strings.TrimSpace(proto)
	if proto == "" {
		proto = "https"
	}

	return proto + "://" + host
}
