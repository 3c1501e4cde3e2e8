package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookup(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg := FromLookup(lookup(nil))
	if cfg.Addr != ":8080" {
		t.Errorf("Addr %q, want :8080", cfg.Addr)
	}
	if cfg.Game.Duration != 120 {
		t.Errorf("Duration %d, want 120", cfg.Game.Duration)
	}
	if cfg.Game.SnapMultiplier != 1.2 {
		t.Errorf("SnapMultiplier %v, want 1.2", cfg.Game.SnapMultiplier)
	}
	if cfg.Game.GraceDelay != 500*time.Millisecond {
		t.Errorf("GraceDelay %v, want 500ms", cfg.Game.GraceDelay)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL %v, want 2h", cfg.SessionTTL)
	}
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg := FromLookup(lookup(map[string]string{
		"PORT":            "9000",
		"GAME_DURATION":   "60",
		"SNAP_MULTIPLIER": "1.5",
		"GRACE_DELAY_MS":  "0",
		"SESSION_TTL":     "30m",
	}))
	if cfg.Addr != ":9000" {
		t.Errorf("Addr %q, want :9000", cfg.Addr)
	}
	if cfg.Game.Duration != 60 {
		t.Errorf("Duration %d, want 60", cfg.Game.Duration)
	}
	if cfg.Game.SnapMultiplier != 1.5 {
		t.Errorf("SnapMultiplier %v, want 1.5", cfg.Game.SnapMultiplier)
	}
	if cfg.Game.GraceDelay != 0 {
		t.Errorf("GraceDelay %v, want 0", cfg.Game.GraceDelay)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL %v, want 30m", cfg.SessionTTL)
	}
}

func TestFromLookup_ClampsAndFallsBack(t *testing.T) {
	cfg := FromLookup(lookup(map[string]string{
		"GAME_DURATION":   "3",
		"SNAP_MULTIPLIER": "abc",
		"GRACE_DELAY_MS":  "-5",
		"SESSION_TTL":     "forever",
	}))
	if cfg.Game.Duration != 10 {
		t.Errorf("Duration %d, want clamped 10", cfg.Game.Duration)
	}
	if cfg.Game.SnapMultiplier != 1.2 {
		t.Errorf("SnapMultiplier %v, want fallback 1.2", cfg.Game.SnapMultiplier)
	}
	if cfg.Game.GraceDelay != 0 {
		t.Errorf("GraceDelay %v, want 0", cfg.Game.GraceDelay)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL %v, want fallback 2h", cfg.SessionTTL)
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("GAME_DURATION=45\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GAME_DURATION", "")
	os.Unsetenv("GAME_DURATION")

	cfg := Load(path)
	if cfg.Game.Duration != 45 {
		t.Errorf("Duration %d, want 45 from env file", cfg.Game.Duration)
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	t.Setenv("GAME_DURATION", "90")
	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.Game.Duration != 90 {
		t.Errorf("Duration %d, want 90", cfg.Game.Duration)
	}
}
