package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"bodypuzzle/internal/puzzle"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Addr       string
	SessionTTL time.Duration
	Game       puzzle.Config
}

// Load reads an optional .env file, then the environment. Missing or
// malformed values fall back to defaults and out-of-range ones are clamped.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("config: reading %s: %v", name, err)
		}
	}
	return FromLookup(os.Getenv)
}

// FromLookup builds a Config from a getenv-style lookup.
func FromLookup(getenv func(string) string) Config {
	game := puzzle.DefaultConfig()

	duration := parseInt(getenv("GAME_DURATION"), game.Duration)
	if duration < 10 {
		duration = 10
	}
	if duration > 600 {
		duration = 600
	}
	game.Duration = duration

	snap := parseFloat(getenv("SNAP_MULTIPLIER"), game.SnapMultiplier)
	if snap < 0.5 {
		snap = 0.5
	}
	if snap > 3 {
		snap = 3
	}
	game.SnapMultiplier = snap

	graceMs := parseInt(getenv("GRACE_DELAY_MS"), int(game.GraceDelay/time.Millisecond))
	if graceMs < 0 {
		graceMs = 0
	}
	if graceMs > 5000 {
		graceMs = 5000
	}
	game.GraceDelay = time.Duration(graceMs) * time.Millisecond

	ttl := 2 * time.Hour
	if raw := strings.TrimSpace(getenv("SESSION_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	addr := ":" + strings.TrimSpace(getenv("PORT"))
	if addr == ":" {
		addr = ":8080"
	}

	return Config{
		Addr:       addr,
		SessionTTL: ttl,
		Game:       game,
	}
}

func parseInt(value string, fallback int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloat(value string, fallback float64) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
