package config

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "SESSION_TTL", "LOG_LEVEL", "GAME_DURATION", "TICK_INTERVAL", "PANIC_THRESHOLD"} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr %q, want :8080", cfg.Addr())
	}
	if cfg.LogLevel != zerolog.InfoLevel {
		t.Errorf("LogLevel %v, want info", cfg.LogLevel)
	}
	if cfg.GameDuration != 20*time.Second {
		t.Errorf("GameDuration %v, want 20s", cfg.GameDuration)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("TickInterval %v, want 1s", cfg.TickInterval)
	}
	if cfg.PanicThreshold != 5*time.Second {
		t.Errorf("PanicThreshold %v, want 5s", cfg.PanicThreshold)
	}
	if cfg.SessionTTL != DefaultSessionTTL {
		t.Errorf("SessionTTL %v, want %v", cfg.SessionTTL, DefaultSessionTTL)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GAME_DURATION", "1m")
	t.Setenv("TICK_INTERVAL", "500ms")
	t.Setenv("PANIC_THRESHOLD", "10s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "9090" || cfg.SessionTTL != 5*time.Minute {
		t.Errorf("Port %q SessionTTL %v", cfg.Port, cfg.SessionTTL)
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Errorf("LogLevel %v, want debug", cfg.LogLevel)
	}
	settings := cfg.GameSettings()
	if settings.Duration != time.Minute || settings.Interval != 500*time.Millisecond || settings.PanicThreshold != 10*time.Second {
		t.Errorf("GameSettings %+v", settings)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"unparsable duration": {"GAME_DURATION", "soon"},
		"negative interval":   {"TICK_INTERVAL", "-1s"},
		"panic too long":      {"PANIC_THRESHOLD", "30s"},
		"bad level":           {"LOG_LEVEL", "loud"},
		"zero ttl":            {"SESSION_TTL", "0s"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := FromEnv()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("err %v, want ErrInvalid", err)
			}
		})
	}
}
