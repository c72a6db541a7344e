package telemetry

import (
	"testing"
	"time"
)

// fakeClock only moves when advanced.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }
func (c *fakeClock) now() time.Time         { return c.t }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(window)
	pc.now = clk.now
	return pc, clk
}

func TestPerfCollectorPhaseShares(t *testing.T) {
	pc, clk := newTestCollector(10)

	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSpawn)
		clk.advance(25 * time.Microsecond)
		pc.StartPhase(PhasePairwise)
		pc.CountPairs(5)
		clk.advance(75 * time.Microsecond)
		pc.EndTick()
	}

	s := pc.Stats()
	if s.Ticks != 4 {
		t.Fatalf("Ticks = %d, want 4", s.Ticks)
	}
	if s.MeanTick != 100*time.Microsecond {
		t.Errorf("MeanTick = %v, want 100µs", s.MeanTick)
	}
	if s.PhaseMean[PhasePairwise] != 75*time.Microsecond {
		t.Errorf("pairwise mean = %v, want 75µs", s.PhaseMean[PhasePairwise])
	}
	if s.PhasePct[PhaseSpawn] != 25 || s.PhasePct[PhasePairwise] != 75 {
		t.Errorf("pct spawn/pairwise = %v/%v, want 25/75", s.PhasePct[PhaseSpawn], s.PhasePct[PhasePairwise])
	}
	if s.PhasePct[PhaseRemoval] != 0 {
		t.Errorf("removal pct = %v, want 0", s.PhasePct[PhaseRemoval])
	}
	if s.TicksPerSecond != 10000 {
		t.Errorf("TicksPerSecond = %v, want 10000", s.TicksPerSecond)
	}
}

func TestPerfCollectorPairCost(t *testing.T) {
	tests := []struct {
		name      string
		bodies    int
		wantPairs float64
		wantCost  time.Duration
	}{
		{"none", 0, 0, 0},
		{"single", 1, 0, 0},
		{"two", 2, 1, 60 * time.Microsecond},
		{"five", 5, 10, 6 * time.Microsecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, clk := newTestCollector(4)
			pc.StartTick()
			pc.StartPhase(PhasePairwise)
			pc.CountPairs(tt.bodies)
			clk.advance(60 * time.Microsecond)
			pc.EndTick()

			s := pc.Stats()
			if s.MeanPairs != tt.wantPairs {
				t.Errorf("MeanPairs = %v, want %v", s.MeanPairs, tt.wantPairs)
			}
			if s.PairCost != tt.wantCost {
				t.Errorf("PairCost = %v, want %v", s.PairCost, tt.wantCost)
			}
		})
	}
}

func TestPerfCollectorRingKeepsLatest(t *testing.T) {
	pc, clk := newTestCollector(5)

	for i := 1; i <= 12; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseIntegrate)
		clk.advance(time.Duration(i) * time.Microsecond)
		pc.EndTick()
	}

	s := pc.Stats()
	if s.Ticks != 5 {
		t.Fatalf("Ticks = %d, want 5", s.Ticks)
	}
	// Ticks 8..12 remain.
	if s.MeanTick != 10*time.Microsecond {
		t.Errorf("MeanTick = %v, want 10µs", s.MeanTick)
	}
	if s.P95Tick != 12*time.Microsecond {
		t.Errorf("P95Tick = %v, want 12µs", s.P95Tick)
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	s := NewPerfCollector(10).Stats()
	if s.Ticks != 0 || s.MeanTick != 0 || s.PairCost != 0 {
		t.Errorf("empty stats = %+v, want zero", s)
	}
}

func TestPhaseString(t *testing.T) {
	if got := PhasePairwise.String(); got != "pairwise" {
		t.Errorf("PhasePairwise = %q", got)
	}
	if got := Phase(200).String(); got != "unknown" {
		t.Errorf("Phase(200) = %q", got)
	}
}

func TestPerfStatsRow(t *testing.T) {
	s := PerfStats{
		Ticks:    3,
		MeanTick: 200 * time.Microsecond,
		PairCost: 40 * time.Nanosecond,
	}
	s.PhasePct[PhasePairwise] = 60
	s.PhasePct[PhaseIntegrate] = 30

	row := s.Row(600)
	if row.WindowEnd != 600 || row.Ticks != 3 {
		t.Errorf("WindowEnd/Ticks = %d/%d, want 600/3", row.WindowEnd, row.Ticks)
	}
	if row.MeanTickUS != 200 || row.PairNS != 40 {
		t.Errorf("MeanTickUS/PairNS = %d/%d, want 200/40", row.MeanTickUS, row.PairNS)
	}
	if row.PairwisePct != 60 || row.IntegratePct != 30 || row.GrowthPct != 0 {
		t.Errorf("pct = %v/%v/%v, want 60/30/0", row.PairwisePct, row.IntegratePct, row.GrowthPct)
	}
}
