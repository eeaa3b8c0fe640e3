package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/aarush-luthra/Government-Scheme/internal/utils"
)

// Config carries the handful of knobs the client needs. Values come from the
// environment with an optional .env file loaded first.
type Config struct {
	// BackendURL is the base URL of the scheme-assistant backend.
	BackendURL string
	// DataDir holds the client store database and session blob.
	DataDir string
	// DefaultLanguage overrides the stored language preference when set via
	// ASSISTANT_LANG. Empty means no override: the stored preference wins,
	// then the process locale.
	DefaultLanguage string
	// HTTPTimeout bounds every backend call.
	HTTPTimeout time.Duration
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := utils.SafeEnv("ASSISTANT_DATA_DIR", "")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".scheme-assistant")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}

	return &Config{
		BackendURL:      utils.SafeEnv("ASSISTANT_BACKEND_URL", "http://localhost:8000"),
		DataDir:         dataDir,
		DefaultLanguage: utils.SafeEnv("ASSISTANT_LANG", ""),
		HTTPTimeout:     time.Duration(utils.SafeEnvInt("ASSISTANT_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
	}, nil
}

// StorePath returns the sqlite file backing the persistent client store.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "client_store.db")
}

// SessionPath returns the sealed session blob location.
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.bin")
}
