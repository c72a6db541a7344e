package telemetry

import (
	"fmt"
	"log/slog"
)

// MilestoneType identifies the type of milestone.
type MilestoneType string

const (
	MilestonePopulationPeak MilestoneType = "population_peak"
	MilestoneNearCollapse   MilestoneType = "near_collapse"
	MilestoneRateRecord     MilestoneType = "rate_record"
)

// nearCollapseFraction matches the diameter where galaxies start to pulse.
const nearCollapseFraction = 0.85

// Milestone is a notable moment in a session.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Tick        int64         `csv:"tick"`
	Description string        `csv:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"tick", m.Tick,
		"description", m.Description,
	)
}

// MilestoneDetector watches window stats for notable moments.
type MilestoneDetector struct {
	collapseSize float64

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	bestPeak     int
	nearCollapse bool
}

// NewMilestoneDetector creates a detector with the given history size.
func NewMilestoneDetector(historySize int, collapseSize float64) *MilestoneDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &MilestoneDetector{
		collapseSize: collapseSize,
		history:      make([]WindowStats, historySize),
		historySize:  historySize,
	}
}

// Check analyzes the latest stats and returns any triggered milestones.
func (md *MilestoneDetector) Check(stats WindowStats) []Milestone {
	var milestones []Milestone

	if m := md.checkPopulationPeak(stats); m != nil {
		milestones = append(milestones, *m)
	}
	if m := md.checkNearCollapse(stats); m != nil {
		milestones = append(milestones, *m)
	}
	if m := md.checkRateRecord(stats); m != nil {
		milestones = append(milestones, *m)
	}

	md.history[md.historyIdx] = stats
	md.historyIdx = (md.historyIdx + 1) % md.historySize
	if md.historyIdx == 0 {
		md.historyFull = true
	}

	return milestones
}

// Reset forgets everything seen so far.
func (md *MilestoneDetector) Reset() {
	clear(md.history)
	md.historyIdx = 0
	md.historyFull = false
	md.bestPeak = 0
	md.nearCollapse = false
}

func (md *MilestoneDetector) getHistory() []WindowStats {
	if md.historyFull {
		return md.history
	}
	return md.history[:md.historyIdx]
}

func (md *MilestoneDetector) previous() (WindowStats, bool) {
	if !md.historyFull && md.historyIdx == 0 {
		return WindowStats{}, false
	}
	idx := (md.historyIdx - 1 + md.historySize) % md.historySize
	return md.history[idx], true
}

// checkPopulationPeak fires when the population falls after reaching a new record.
func (md *MilestoneDetector) checkPopulationPeak(stats WindowStats) *Milestone {
	prev, ok := md.previous()
	if !ok || prev.Population < 3 || prev.Population <= md.bestPeak {
		return nil
	}
	if stats.Population >= prev.Population {
		return nil
	}

	md.bestPeak = prev.Population
	return &Milestone{
		Type:        MilestonePopulationPeak,
		Tick:        prev.WindowEndTick,
		Description: fmt.Sprintf("Population peaked at %d galaxies", prev.Population),
	}
}

// checkNearCollapse fires once when the largest galaxy starts to pulse.
func (md *MilestoneDetector) checkNearCollapse(stats WindowStats) *Milestone {
	if md.nearCollapse || md.collapseSize <= 0 {
		return nil
	}
	if stats.DiameterMax < nearCollapseFraction*md.collapseSize {
		return nil
	}

	md.nearCollapse = true
	return &Milestone{
		Type:        MilestoneNearCollapse,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Largest galaxy reached diameter %.2f of %.2f", stats.DiameterMax, md.collapseSize),
	}
}

// checkRateRecord fires when the score rate beats every recent window by 25%.
func (md *MilestoneDetector) checkRateRecord(stats WindowStats) *Milestone {
	history := md.getHistory()
	if len(history) < 3 || stats.Rate <= 0 {
		return nil
	}

	var best float64
	for _, h := range history {
		best = max(best, h.Rate)
	}
	if best <= 0 || stats.Rate < best*1.25 {
		return nil
	}

	return &Milestone{
		Type:        MilestoneRateRecord,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Score rate %.3f is %.1fx the recent best (%.3f)", stats.Rate, stats.Rate/best, best),
	}
}
