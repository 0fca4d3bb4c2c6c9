package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrInvalidEnvironmentVariable = errors.New("invalid environment variable")

const (
	DefaultOpenAIBaseURL      = "https://api.openai.com/v1/"
	DefaultTranscriptionModel = "whisper-1"
	DefaultVoiceName          = "alice"
	DefaultServerPort         = 8080
	DefaultCallbackPath       = "/callback"
)

// Config holds all application configuration
type Config struct {
	Twilio TwilioConfig
	OpenAI OpenAIConfig
	Voice  VoiceConfig
	Server ServerConfig
}

// TwilioConfig holds the credentials used to download call recordings.
// Both values must be set for the Basic authorization header to be sent.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
}

// OpenAIConfig holds transcription service settings
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// VoiceConfig holds TwiML rendering settings
type VoiceConfig struct {
	Name         string
	CallbackPath string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// HasRecordingCredentials reports whether both Twilio credentials are present.
func (t TwilioConfig) HasRecordingCredentials() bool {
	return t.AccountSID != "" && t.AuthToken != ""
}

// Load reads configuration from the process environment. No variable is required.
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Twilio.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.Twilio.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")

	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAI.BaseURL = withTrailingSlash(getEnvWithDefault("OPENAI_BASE_URL", DefaultOpenAIBaseURL))
	cfg.OpenAI.Model = getEnvWithDefault("TRANSCRIPTION_MODEL", DefaultTranscriptionModel)

	cfg.Voice.Name = getEnvWithDefault("VOICE_NAME", DefaultVoiceName)
	cfg.Voice.CallbackPath = getEnvWithDefault("CALLBACK_PATH", DefaultCallbackPath)
	if !strings.HasPrefix(cfg.Voice.CallbackPath, "/") {
		cfg.Voice.CallbackPath = "/" + cfg.Voice.CallbackPath
	}

	serverPort := getEnvWithDefault("SERVER_PORT", strconv.Itoa(DefaultServerPort))
	port, err := strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT %q: %w", serverPort, ErrInvalidEnvironmentVariable)
	}
	cfg.Server.Port = port

	return cfg, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// openai-go resolves request paths relative to the base URL, so it must end with a slash.
func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
