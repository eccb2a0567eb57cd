package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveToken(t *testing.T) {
	t.Run("env_set", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "sk-test-123")
		cfg := DefaultConfig()
		if err := ResolveToken(&cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Token != "sk-test-123" {
			t.Fatalf("expected token from env, got %q", cfg.Token)
		}
	})

	t.Run("env_unset", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		cfg := DefaultConfig()
		err := ResolveToken(&cfg)
		if !errors.Is(err, ErrMissingCredential) {
			t.Fatalf("expected ErrMissingCredential, got %v", err)
		}
	})

	t.Run("env_placeholder", func(t *testing.T) {
		t.Setenv(EnvAPIKey, PlaceholderAPIKey)
		cfg := DefaultConfig()
		if err := ResolveToken(&cfg); !errors.Is(err, ErrMissingCredential) {
			t.Fatalf("expected ErrMissingCredential for placeholder, got %v", err)
		}
	})

	t.Run("config_token_wins", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		cfg := DefaultConfig()
		cfg.Token = "sk-from-config"
		if err := ResolveToken(&cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Token != "sk-from-config" {
			t.Fatalf("expected config token kept, got %q", cfg.Token)
		}
	})
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"MODEL": "whisper-large", "MAX_RETRY": 5, "NOTIFICATION": false}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "whisper-large" {
		t.Fatalf("expected model override, got %q", cfg.Model)
	}
	if cfg.MaxRetry != 5 {
		t.Fatalf("expected MaxRetry 5, got %d", cfg.MaxRetry)
	}
	if cfg.Notification {
		t.Fatal("expected Notification false")
	}
	// Untouched fields keep defaults.
	if cfg.SampleRate != 16000 || cfg.ChunkSize != 1024 {
		t.Fatalf("defaults lost: rate=%d chunk=%d", cfg.SampleRate, cfg.ChunkSize)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty_endpoint", func(c *Config) { c.APIEndpoint = "" }, false},
		{"stereo", func(c *Config) { c.Channels = 2 }, false},
		{"zero_rate", func(c *Config) { c.SampleRate = 0 }, false},
		{"zero_chunk", func(c *Config) { c.ChunkSize = 0 }, false},
		{"zero_timeout", func(c *Config) { c.RequestTimeout = 0 }, false},
		{"zero_retry", func(c *Config) { c.MaxRetry = 0 }, false},
		{"negative_delay", func(c *Config) { c.RetryBaseDelay = -1 }, false},
		{"negative_settle", func(c *Config) { c.SettleDelayMS = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := Validate(&cfg)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestFlagsApply(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse([]string{"-model", "custom", "-timeout", "10", "-notify=false"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := DefaultConfig()
	f.Apply(fs, &cfg)

	if cfg.Model != "custom" {
		t.Fatalf("expected model custom, got %q", cfg.Model)
	}
	if cfg.RequestTimeout != 10 {
		t.Fatalf("expected timeout 10, got %d", cfg.RequestTimeout)
	}
	if cfg.Notification {
		t.Fatal("expected notifications disabled")
	}
	// Flags left at their defaults must not clobber config values.
	if cfg.MaxRetry != 3 {
		t.Fatalf("unset flag overwrote MaxRetry: %d", cfg.MaxRetry)
	}
}
