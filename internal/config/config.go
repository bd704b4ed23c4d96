// Package config loads runtime settings from the environment, with an
// optional .env file for development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"guessword/internal/game"
	"guessword/pkg/realtime"
)

// Config holds everything cmd/web needs to start.
type Config struct {
	Port           string
	LogLevel       zerolog.Level
	GameDuration   time.Duration
	TickInterval   time.Duration
	PanicThreshold time.Duration
	SessionTTL     time.Duration
}

// DefaultSessionTTL is how long a finished or ended session is kept.
const DefaultSessionTTL = 30 * time.Minute

var ErrInvalid = errors.New("invalid configuration")

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port: getEnv("PORT", "8080"),
	}

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalid, err)
	}
	cfg.LogLevel = level

	if cfg.GameDuration, err = durationEnv("GAME_DURATION", game.DefaultDuration); err != nil {
		return Config{}, err
	}
	if cfg.TickInterval, err = durationEnv("TICK_INTERVAL", realtime.DefaultTickInterval); err != nil {
		return Config{}, err
	}
	if cfg.PanicThreshold, err = durationEnv("PANIC_THRESHOLD", game.DefaultPanicThreshold); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", DefaultSessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.PanicThreshold >= cfg.GameDuration {
		return Config{}, fmt.Errorf("%w: PANIC_THRESHOLD %v must be shorter than GAME_DURATION %v",
			ErrInvalid, cfg.PanicThreshold, cfg.GameDuration)
	}
	return cfg, nil
}

// GameSettings maps the countdown fields onto session settings.
func (c Config) GameSettings() game.Settings {
	return game.Settings{
		Duration:       c.GameDuration,
		Interval:       c.TickInterval,
		PanicThreshold: c.PanicThreshold,
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, key, d)
	}
	return d, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
