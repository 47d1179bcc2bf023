package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full configuration surface. Missing Firebase or Gemini
// values are not fatal: the server falls back to the embedded seed collection
// and to the local assistant reply, and reports the degraded capabilities on
// its status endpoint.
type Config struct {
	Port     string
	Firebase FirebaseConfig
	Gemini   GeminiConfig

	// AssistantMinInterval throttles assistant requests: at most one every
	// interval, replacing the original UI's in-flight busy flag.
	AssistantMinInterval time.Duration
}

// FirebaseConfig covers both the listing store (project ID) and the identity
// boundary (web API key).
type FirebaseConfig struct {
	ProjectID string
	WebAPIKey string
}

// GeminiConfig holds settings for the shopping assistant model.
type GeminiConfig struct {
	APIKey  string
	ModelID string
}

func Load() (*Config, error) {
	// Missing .env files are acceptable when configuration comes from the
	// environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		slog.Info("Defaulting to port", "port", port)
	}

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		slog.Warn("FIREBASE_PROJECT_ID not set, serving the embedded seed collection with live sync disabled")
	}

	webAPIKey := os.Getenv("FIREBASE_WEB_API_KEY")
	if webAPIKey == "" {
		slog.Warn("FIREBASE_WEB_API_KEY not set, admin sign-in will be unavailable")
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		slog.Warn("GEMINI_API_KEY not set, assistant will use the local fallback reply")
	}

	modelID := os.Getenv("GEMINI_MODEL")
	if modelID == "" {
		modelID = "gemini-2.0-flash"
	}

	assistantIntervalStr := os.Getenv("ASSISTANT_MIN_INTERVAL")
	if assistantIntervalStr == "" {
		assistantIntervalStr = "2s"
	}
	assistantInterval, err := time.ParseDuration(assistantIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ASSISTANT_MIN_INTERVAL %q: %w", assistantIntervalStr, err)
	}

	return &Config{
		Port: port,
		Firebase: FirebaseConfig{
			ProjectID: projectID,
			WebAPIKey: webAPIKey,
		},
		Gemini: GeminiConfig{
			APIKey:  geminiKey,
			ModelID: modelID,
		},
		AssistantMinInterval: assistantInterval,
	}, nil
}

// LiveSyncEnabled reports whether the listing store can be reached at all.
func (c *Config) LiveSyncEnabled() bool {
	return c.Firebase.ProjectID != ""
}

// AuthEnabled reports whether admin sign-in is configured.
func (c *Config) AuthEnabled() bool {
	return c.Firebase.WebAPIKey != ""
}
