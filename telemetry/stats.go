package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// State at window end
	Population    int     `csv:"population"`
	MaxBodies     int     `csv:"max_bodies"`
	Score         int     `csv:"score"`
	Rate          float64 `csv:"rate"`
	MaxRate       float64 `csv:"max_rate"`
	TotalDiameter float64 `csv:"total_diameter"`

	// Events during window
	Spawns        int     `csv:"spawns"`
	SpawnFailures int     `csv:"spawn_failures"`
	Merges        int     `csv:"merges"`
	Pushes        int     `csv:"pushes"`
	PushTimeSec   float64 `csv:"push_time"`

	// Diameter distribution (sampled at window end)
	DiameterMean float64 `csv:"diameter_mean"`
	DiameterP50  float64 `csv:"diameter_p50"`
	DiameterP90  float64 `csv:"diameter_p90"`
	DiameterMax  float64 `csv:"diameter_max"`
}

// ComputeDiameterStats returns the mean, median, 90th percentile and maximum
// of the given diameters. Quantiles are empirical. Returns zeros for an
// empty slice.
func ComputeDiameterStats(values []float64) (mean, p50, p90, maxD float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	maxD = floats.Max(sorted)

	return mean, p50, p90, maxD
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Int("max_bodies", s.MaxBodies),
		slog.Int("score", s.Score),
		slog.Float64("rate", s.Rate),
		slog.Float64("max_rate", s.MaxRate),
		slog.Float64("total_diameter", s.TotalDiameter),
		slog.Int("spawns", s.Spawns),
		slog.Int("spawn_failures", s.SpawnFailures),
		slog.Int("merges", s.Merges),
		slog.Int("pushes", s.Pushes),
		slog.Float64("push_time", s.PushTimeSec),
		slog.Float64("diameter_mean", s.DiameterMean),
		slog.Float64("diameter_p50", s.DiameterP50),
		slog.Float64("diameter_p90", s.DiameterP90),
		slog.Float64("diameter_max", s.DiameterMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"population", s.Population,
		"max_bodies", s.MaxBodies,
		"score", s.Score,
		"rate", s.Rate,
		"max_rate", s.MaxRate,
		"spawns", s.Spawns,
		"spawn_failures", s.SpawnFailures,
		"merges", s.Merges,
		"pushes", s.Pushes,
		"diameter_p50", s.DiameterP50,
		"diameter_max", s.DiameterMax,
	)
}
