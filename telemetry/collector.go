// Package telemetry provides windowed session statistics, milestones, perf timing and CSV output.
package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	spawns        int
	spawnFailures int
	merges        int
	pushes        int
	pushTicks     int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordSpawn records a galaxy spawn.
func (c *Collector) RecordSpawn() {
	c.spawns++
}

// RecordSpawnFailed records a spawn that found no free spot.
func (c *Collector) RecordSpawnFailed() {
	c.spawnFailures++
}

// RecordMerge records one galaxy absorbing another.
func (c *Collector) RecordMerge() {
	c.merges++
}

// RecordPush records the start of a push.
func (c *Collector) RecordPush() {
	c.pushes++
}

// RecordPushTick records a tick with the pusher held down.
func (c *Collector) RecordPushTick() {
	c.pushTicks++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the universe state captured when a window is flushed.
type Sample struct {
	Population    int
	MaxBodies     int
	Score         int
	Rate          float64
	MaxRate       float64
	TotalDiameter float64
	Diameters     []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, s Sample) WindowStats {
	mean, p50, p90, maxD := ComputeDiameterStats(s.Diameters)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Population:    s.Population,
		MaxBodies:     s.MaxBodies,
		Score:         s.Score,
		Rate:          s.Rate,
		MaxRate:       s.MaxRate,
		TotalDiameter: s.TotalDiameter,

		Spawns:        c.spawns,
		SpawnFailures: c.spawnFailures,
		Merges:        c.merges,
		Pushes:        c.pushes,
		PushTimeSec:   float64(c.pushTicks) * c.dt,

		DiameterMean: mean,
		DiameterP50:  p50,
		DiameterP90:  p90,
		DiameterMax:  maxD,
	}

	c.windowStartTick = currentTick
	c.clearCounters()

	return stats
}

// Reset starts a fresh window at tick zero.
func (c *Collector) Reset() {
	c.windowStartTick = 0
	c.clearCounters()
}

func (c *Collector) clearCounters() {
	c.spawns = 0
	c.spawnFailures = 0
	c.merges = 0
	c.pushes = 0
	c.pushTicks = 0
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
