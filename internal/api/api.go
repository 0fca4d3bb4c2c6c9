package api

import (
	"net/http"
	"voice-server/internal/observability"
	voiceCallHandler "voice-server/internal/voicecall/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	voiceCallHandler voiceCallHandler.Handler
	metrics          *observability.Metrics
	callbackPath     string
}

func New(router *gin.RouterGroup, handler voiceCallHandler.Handler, metrics *observability.Metrics, callbackPath string) API {
	return API{
		router:           router,
		voiceCallHandler: handler,
		metrics:          metrics,
		callbackPath:     callbackPath,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.GET("/metrics", gin.WrapH(a.metrics.Handler()))

	// every method reaches the entry handler so it can answer 405 itself
	a.router.Any("/entry", a.voiceCallHandler.HandleEntry)
	a.router.POST(a.callbackPath, a.voiceCallHandler.HandleRecordingCallback)
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
