// Package sim provides the tick-based simulation loop, the player command
// surface, and read-only state snapshots for observers.
package sim

import (
	"log/slog"
	"time"
)

// DefaultInterval is the base tick cadence (10 Hz). The core is correct for
// any dt; this is just the cadence the enclosing loop drives it at.
const DefaultInterval = 100 * time.Millisecond

// Engine drives the simulation forward at a fixed cadence.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval
	Running  bool

	// OnTick runs every tick with the simulated time step in seconds.
	OnTick func(tick uint64, dt float64)

	// OnSecond runs once per simulated second, for periodic reporting.
	OnSecond func(tick uint64)
}

// NewEngine creates a simulation engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: DefaultInterval,
	}
}

// Run starts the simulation loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed, "interval", e.Interval)

	for e.Running {
		if e.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.Step()

		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick)
}

// Stop halts the simulation loop.
func (e *Engine) Stop() {
	e.Running = false
}

// Step advances the simulation by exactly one tick. Exposed so tests and
// offline runs can drive the engine without the pacing loop.
func (e *Engine) Step() {
	e.Tick++

	dt := e.Interval.Seconds()
	if e.OnTick != nil {
		e.OnTick(e.Tick, dt)
	}

	if e.OnSecond != nil {
		if per := uint64(time.Second / e.Interval); per > 0 && e.Tick%per == 0 {
			e.OnSecond(e.Tick)
		}
	}
}
