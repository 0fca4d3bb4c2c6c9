package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"voice-server/internal/bootstrap"
	"voice-server/internal/config"
	"voice-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		OpenAI: config.OpenAIConfig{
			BaseURL: "http://127.0.0.1:1/v1/",
			Model:   config.DefaultTranscriptionModel,
		},
		Voice: config.VoiceConfig{
			Name:         config.DefaultVoiceName,
			CallbackPath: "/twilio/recording",
		},
		Server: config.ServerConfig{Port: config.DefaultServerPort},
	}
	logger := observability.NewLogger()

	deps, err := bootstrap.Initialize(context.Background(), cfg, logger)
	require.NoError(t, err)

	srv := New(cfg, deps, logger)
	srv.Setup()
	return srv
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestRoutes_Health(t *testing.T) {
	w := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}

func TestRoutes_EntryUsesConfiguredCallbackPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/entry", nil)
	req.Host = "abc.ngrok.app"

	w := serve(newTestServer(t), req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `action="https://abc.ngrok.app/twilio/recording"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRoutes_EntryRejectsOtherMethods(t *testing.T) {
	w := serve(newTestServer(t), httptest.NewRequest(http.MethodDelete, "/entry", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method not allowed", w.Body.String())
}

func TestRoutes_CallbackAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/twilio/recording", strings.NewReader("CallSid=CA1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(srv, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Recording not found. Please try again.")

	w = serve(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `voicecall_recordings_total{outcome="missing_recording"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRoutes_DefaultCallbackPathNotRouted(t *testing.T) {
	w := serve(newTestServer(t), httptest.NewRequest(http.MethodPost, "/callback", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownGracePeriod + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServe_ReturnsNilWhenClosedExternally(t *testing.T) {
	srv := newTestServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.serve(context.Background(), listener) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.httpServer.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after the server was closed")
	}
}
