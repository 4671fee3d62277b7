package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:                 "8080",
		ReadTimeout:          10 * time.Second,
		WriteTimeout:         30 * time.Second,
		ShutdownTimeout:      10 * time.Second,
		SQLiteDBPath:         "./test.db",
		SessionDuration:      24 * time.Hour,
		CacheSize:            64,
		CacheTTL:             time.Minute,
		CacheCleanupInterval: time.Minute,
		RateLimitRPS:         20,
		RateLimitBurst:       40,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "session duration too short",
			mutate:      func(c *Config) { c.SessionDuration = time.Second },
			wantErr:     true,
			errorString: "must be at least 1 minute",
		},
		{
			name:        "cache size too small",
			mutate:      func(c *Config) { c.CacheSize = 0 },
			wantErr:     true,
			errorString: "invalid dashboard cache size 0",
		},
		{
			name:        "burst below rate",
			mutate:      func(c *Config) { c.RateLimitBurst = 5 },
			wantErr:     true,
			errorString: "must be at least the per-second rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	// Keep Validate's directory probe out of the package dir.
	t.Setenv("SQLITE_DB_PATH", t.TempDir()+"/fintrack.db")
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Port)
	}
	if cfg.SessionDuration != 30*24*time.Hour {
		t.Errorf("default session duration = %v, want 720h", cfg.SessionDuration)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_RPS", "50")
	t.Setenv("DASHBOARD_CACHE_TTL", "90s")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("PORT override not applied: %q", cfg.Port)
	}
	if cfg.RateLimitRPS != 50 {
		t.Errorf("RATE_LIMIT_RPS override not applied: %d", cfg.RateLimitRPS)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("DASHBOARD_CACHE_TTL override not applied: %v", cfg.CacheTTL)
	}
	if !cfg.SecureCookies {
		t.Error("SECURE_COOKIES override not applied")
	}
	if cfg.LogLevel.String() != "DEBUG" {
		t.Errorf("LOG_LEVEL override not applied: %v", cfg.LogLevel)
	}
}
