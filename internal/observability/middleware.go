package observability

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader        = "X-Request-ID"
	twilioIdempotencyToken = "I-Twilio-Idempotency-Token"
	twilioSignatureHeader  = "X-Twilio-Signature"
)

// paths polled by probes and scrapers are not request-logged
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// GetRealClientIP extracts the caller IP from the first X-Forwarded-For entry.
// Webhooks usually arrive through a tunnel or edge proxy that appends to this header.
// Falls back to c.ClientIP() if the header is not present.
func GetRealClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return c.ClientIP()
}

// Middleware tags each request with a request id and webhook metadata, logs one line
// per completed request and turns handler panics into a 500.
func Middleware(l *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = fmt.Sprintf("req-%s", uuid.New().String())
			c.Request.Header.Set(requestIDHeader, requestID)
		}
		c.Header(requestIDHeader, requestID)

		ctx := WithFields(c.Request.Context(),
			Field{"request_id", requestID},
			Field{"path", c.Request.URL.Path},
			Field{"method", c.Request.Method},
			Field{"client_ip", GetRealClientIP(c)},
			Field{"user_agent", c.Request.UserAgent()},
			Field{"twilio_signed", c.GetHeader(twilioSignatureHeader) != ""},
		)
		if token := c.GetHeader(twilioIdempotencyToken); token != "" {
			ctx = WithFields(ctx, Field{"twilio_idempotency_token", token})
		}
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				l.Error(ctx, "Recovered from panic", fmt.Errorf("reason: %+v", r))
				c.AbortWithStatus(http.StatusInternalServerError)
			}
			if quietPaths[c.Request.URL.Path] {
				return
			}
			l.Info(WithFields(ctx,
				Field{"status", c.Writer.Status()},
				Field{"response_bytes", c.Writer.Size()},
				Field{"latency_ms", time.Since(start).Milliseconds()},
			), "Request processed")
		}()
		c.Next()
	}
}
