package puzzle

import (
	"time"

	"bodypuzzle/internal/board"
	"bodypuzzle/pkg/realtime"
)

const (
	DefaultDuration   = 120 // seconds
	DefaultReward     = 10
	DefaultPenalty    = 2
	DefaultGraceDelay = 500 * time.Millisecond
)

// Config carries every tunable of a session. It is passed explicitly into
// session construction; nothing reads ambient globals.
type Config struct {
	Duration       int // whole seconds
	TickInterval   time.Duration
	SnapMultiplier float64
	Viewbox        board.Viewbox
	GraceDelay     time.Duration
	Reward         int
	Penalty        int
}

// DefaultConfig returns the reference game configuration.
func DefaultConfig() Config {
	return Config{
		Duration:       DefaultDuration,
		TickInterval:   realtime.DefaultTickInterval,
		SnapMultiplier: board.DefaultSnapMultiplier,
		Viewbox:        board.DefaultViewbox,
		GraceDelay:     DefaultGraceDelay,
		Reward:         DefaultReward,
		Penalty:        DefaultPenalty,
	}
}

// withDefaults fills zero or invalid fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Duration <= 0 {
		c.Duration = d.Duration
	}
	if c.TickInterval <= 0 {
		c.TickInterval = d.TickInterval
	}
	if c.SnapMultiplier <= 0 {
		c.SnapMultiplier = d.SnapMultiplier
	}
	if c.Viewbox.Width <= 0 || c.Viewbox.Height <= 0 {
		c.Viewbox = d.Viewbox
	}
	if c.GraceDelay < 0 {
		c.GraceDelay = 0
	}
	if c.Reward <= 0 {
		c.Reward = d.Reward
	}
	if c.Penalty < 0 {
		c.Penalty = d.Penalty
	}
	return c
}
