package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"
)

// EventType identifies a universe event.
type EventType uint8

const (
	EventSpawned EventType = iota
	EventSpawnFailed
	EventMerged
	EventPushStarted
	EventPushStopped
	EventScoreChanged
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventSpawned:
		return "spawned"
	case EventSpawnFailed:
		return "spawn_failed"
	case EventMerged:
		return "merged"
	case EventPushStarted:
		return "push_started"
	case EventPushStopped:
		return "push_stopped"
	case EventScoreChanged:
		return "score_changed"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is something that happened during a tick. Frontends read the
// events of the last tick to play effects; telemetry counts them.
type Event struct {
	Type     EventType
	Tick     int64
	ID       uint32  // spawned galaxy or merge survivor
	OtherID  uint32  // absorbed galaxy
	Position r3.Vec  // where it happened
	Value    float64 // diameter, score or rate depending on Type
}

// LogValue implements slog.LogValuer.
func (e Event) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", e.Type.String()),
		slog.Int64("tick", e.Tick),
		slog.Any("id", e.ID),
		slog.Any("other_id", e.OtherID),
		slog.Float64("value", e.Value),
	)
}

// Result summarizes a finished session.
type Result struct {
	Score         int
	MaxRate       float64
	MaxBodies     int
	FinalDiameter float64
	Ticks         int64
	Duration      float64 // simulated seconds
}

// LogValue implements slog.LogValuer.
func (r Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("score", r.Score),
		slog.Float64("max_rate", r.MaxRate),
		slog.Int("max_bodies", r.MaxBodies),
		slog.Float64("final_diameter", r.FinalDiameter),
		slog.Int64("ticks", r.Ticks),
		slog.Float64("duration_sec", r.Duration),
	)
}
