package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of a universe tick.
type Phase uint8

const (
	PhaseGrowth Phase = iota
	PhaseSpawn
	PhasePairwise
	PhaseIntegrate
	PhaseRemoval
	PhaseScore
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{
	"growth", "spawn", "pairwise", "integrate", "removal", "score", "telemetry",
}

func (p Phase) String() string {
	if p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases lists the tick phases in execution order.
var Phases = []Phase{
	PhaseGrowth, PhaseSpawn, PhasePairwise, PhaseIntegrate,
	PhaseRemoval, PhaseScore, PhaseTelemetry,
}

type tickTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
	pairs  int
}

// PerfCollector times universe ticks over a ring of the most recent ticks.
// The pairwise pass is quadratic in the galaxy count, so each tick also
// records how many pairs it visited.
type PerfCollector struct {
	ring   []tickTiming
	next   int
	filled int

	cur        tickTiming
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	now func() time.Time
}

// NewPerfCollector creates a collector over the last window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]tickTiming, window), now: time.Now}
}

// StartTick begins a tick.
func (p *PerfCollector) StartTick() {
	p.cur = tickTiming{}
	p.inPhase = false
	p.tickStart = p.now()
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	if phase >= numPhases {
		return
	}
	p.phase, p.phaseStart, p.inPhase = phase, now, true
}

// CountPairs records the number of galaxies entering the pairwise pass.
func (p *PerfCollector) CountPairs(bodies int) {
	if bodies > 1 {
		p.cur.pairs = bodies * (bodies - 1) / 2
	}
}

// EndTick closes the tick and stores it in the ring.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.filled = min(p.filled+1, len(p.ring))
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// PerfStats summarises the ticks currently in the ring.
type PerfStats struct {
	Ticks          int
	MeanTick       time.Duration
	P95Tick        time.Duration
	TicksPerSecond float64

	PhaseMean [numPhases]time.Duration
	PhasePct  [numPhases]float64 // share of total tick time

	MeanPairs float64
	PairCost  time.Duration // pairwise phase time per visited pair; 0 without pairs
}

// Stats aggregates the ring.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.filled}
	if p.filled == 0 {
		return s
	}

	ticks := make([]float64, p.filled)
	var phaseSum [numPhases]time.Duration
	var total time.Duration
	pairs := 0
	for i, tt := range p.ring[:p.filled] {
		ticks[i] = float64(tt.total)
		total += tt.total
		pairs += tt.pairs
		for ph, d := range tt.phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.filled)
	s.MeanTick = time.Duration(stat.Mean(ticks, nil))
	slices.Sort(ticks)
	s.P95Tick = time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil))
	if s.MeanTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.MeanTick)
	}
	for ph := range phaseSum {
		s.PhaseMean[ph] = phaseSum[ph] / n
		if total > 0 {
			s.PhasePct[ph] = float64(phaseSum[ph]) / float64(total) * 100
		}
	}

	s.MeanPairs = float64(pairs) / float64(p.filled)
	if pairs > 0 {
		s.PairCost = phaseSum[PhasePairwise] / time.Duration(pairs)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("mean_tick_us", s.MeanTick.Microseconds()),
		slog.Int64("p95_tick_us", s.P95Tick.Microseconds()),
		slog.Float64("mean_pairs", s.MeanPairs),
		slog.Int64("pair_ns", s.PairCost.Nanoseconds()),
	}
	for _, ph := range Phases {
		if s.PhasePct[ph] > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one line of perf.csv.
type PerfRow struct {
	WindowEnd    int64   `csv:"window_end"`
	Ticks        int     `csv:"ticks"`
	MeanTickUS   int64   `csv:"mean_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	MeanPairs    float64 `csv:"mean_pairs"`
	PairNS       int64   `csv:"pair_ns"`
	GrowthPct    float64 `csv:"growth_pct"`
	SpawnPct     float64 `csv:"spawn_pct"`
	PairwisePct  float64 `csv:"pairwise_pct"`
	IntegratePct float64 `csv:"integrate_pct"`
	RemovalPct   float64 `csv:"removal_pct"`
	ScorePct     float64 `csv:"score_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// Row flattens the stats for the window ending at windowEnd.
func (s PerfStats) Row(windowEnd int64) PerfRow {
	return PerfRow{
		WindowEnd:    windowEnd,
		Ticks:        s.Ticks,
		MeanTickUS:   s.MeanTick.Microseconds(),
		P95TickUS:    s.P95Tick.Microseconds(),
		MeanPairs:    s.MeanPairs,
		PairNS:       s.PairCost.Nanoseconds(),
		GrowthPct:    s.PhasePct[PhaseGrowth],
		SpawnPct:     s.PhasePct[PhaseSpawn],
		PairwisePct:  s.PhasePct[PhasePairwise],
		IntegratePct: s.PhasePct[PhaseIntegrate],
		RemovalPct:   s.PhasePct[PhaseRemoval],
		ScorePct:     s.PhasePct[PhaseScore],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
