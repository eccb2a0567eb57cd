// Package config holds the runtime configuration: defaults, optional JSON
// config file, command-line overrides, and the API credential check.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// PlaceholderAPIKey is the "unset" sentinel used when no credential is
// configured anywhere.
const PlaceholderAPIKey = "YOUR_OPENAI_API_KEY"

// EnvAPIKey is the environment variable consulted for the credential.
const EnvAPIKey = "OPENAI_API_KEY"

// ErrMissingCredential indicates no usable API key was configured. It is
// fatal at startup.
var ErrMissingCredential = errors.New("transcription API key not configured")

// Config holds configurable parameters.
type Config struct {
	APIEndpoint    string  `json:"API_ENDPOINT"`
	Token          string  `json:"TOKEN"`
	Model          string  `json:"MODEL"`
	Language       string  `json:"LANGUAGE"`
	Prompt         string  `json:"PROMPT"`
	TextPath       string  `json:"TEXT_PATH"`
	Channels       int     `json:"CHANNELS"`
	SampleRate     int     `json:"SAMPLING_RATE"`
	ChunkSize      int     `json:"CHUNK_SIZE"`
	RequestTimeout int     `json:"REQUEST_TIMEOUT"`
	MaxRetry       int     `json:"MAX_RETRY"`
	RetryBaseDelay float64 `json:"RETRY_BASE_DELAY"`
	EnableHTTP2    bool    `json:"ENABLE_HTTP2"`
	VerifySSL      bool    `json:"VERIFY_SSL"`
	Notification   bool    `json:"NOTIFICATION"`
	SettleDelayMS  int     `json:"SETTLE_DELAY_MS"`
}

// DefaultConfig returns a Config with default values. Audio settings match
// what the Whisper API expects: mono 16 kHz 16-bit PCM.
func DefaultConfig() Config {
	return Config{
		APIEndpoint:    "https://api.openai.com/v1/audio/transcriptions",
		Token:          "",
		Model:          "whisper-1",
		Language:       "",
		Prompt:         "",
		TextPath:       "text",
		Channels:       1,
		SampleRate:     16000,
		ChunkSize:      1024,
		RequestTimeout: 30,
		MaxRetry:       3,
		RetryBaseDelay: 0.5,
		EnableHTTP2:    true,
		VerifySSL:      true,
		Notification:   true,
		SettleDelayMS:  100,
	}
}

// Load loads config from a JSON file if a path is provided.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveToken fills cfg.Token from the environment when the config did not
// set one. The placeholder value counts as unset.
func ResolveToken(cfg *Config) error {
	if cfg.Token != "" && cfg.Token != PlaceholderAPIKey {
		return nil
	}
	token := os.Getenv(EnvAPIKey)
	if token == "" {
		token = PlaceholderAPIKey
	}
	if token == PlaceholderAPIKey {
		return fmt.Errorf("%w: set %s or the TOKEN config field", ErrMissingCredential, EnvAPIKey)
	}
	cfg.Token = token
	return nil
}

// Validate verifies config fields and returns an error if any value is invalid.
func Validate(cfg *Config) error {
	if cfg.APIEndpoint == "" {
		return fmt.Errorf("API_ENDPOINT must not be empty")
	}
	if cfg.Channels != 1 {
		return fmt.Errorf("invalid CHANNELS: %d (capture is mono only)", cfg.Channels)
	}
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("invalid SAMPLING_RATE: %d (must be > 0)", cfg.SampleRate)
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("invalid CHUNK_SIZE: %d (must be > 0)", cfg.ChunkSize)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("invalid REQUEST_TIMEOUT: %d (must be > 0)", cfg.RequestTimeout)
	}
	if cfg.MaxRetry < 1 {
		return fmt.Errorf("invalid MAX_RETRY: %d (must be >= 1)", cfg.MaxRetry)
	}
	if cfg.RetryBaseDelay < 0 {
		return fmt.Errorf("invalid RETRY_BASE_DELAY: %v (must be >= 0)", cfg.RetryBaseDelay)
	}
	if cfg.SettleDelayMS < 0 {
		return fmt.Errorf("invalid SETTLE_DELAY_MS: %d (must be >= 0)", cfg.SettleDelayMS)
	}
	return nil
}
