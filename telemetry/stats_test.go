package telemetry

import (
	"math"
	"testing"
)

func TestComputeDiameterStats(t *testing.T) {
	tests := []struct {
		name                   string
		values                 []float64
		mean, p50, p90, maxVal float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{1.2}, 1.2, 1.2, 1.2, 1.2},
		{"unsorted", []float64{4, 1, 3, 2}, 2.5, 2, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p50, p90, maxD := ComputeDiameterStats(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(p50-tt.p50) > 1e-9 {
				t.Errorf("p50 = %v, want %v", p50, tt.p50)
			}
			if math.Abs(p90-tt.p90) > 1e-9 {
				t.Errorf("p90 = %v, want %v", p90, tt.p90)
			}
			if math.Abs(maxD-tt.maxVal) > 1e-9 {
				t.Errorf("max = %v, want %v", maxD, tt.maxVal)
			}
		})
	}
}

func TestComputeDiameterStatsLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeDiameterStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("WindowDurationTicks = %d, want 10", c.WindowDurationTicks())
	}

	c.RecordSpawn()
	c.RecordSpawn()
	c.RecordSpawnFailed()
	c.RecordMerge()
	c.RecordPush()
	for i := 0; i < 5; i++ {
		c.RecordPushTick()
	}

	if c.ShouldFlush(9) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(10) {
		t.Fatal("should flush when the window ends")
	}

	stats := c.Flush(10, Sample{Population: 3, MaxBodies: 4, Score: 7, Diameters: []float64{1, 2, 3}})
	if stats.Spawns != 2 || stats.SpawnFailures != 1 || stats.Merges != 1 || stats.Pushes != 1 {
		t.Errorf("counters = %d/%d/%d/%d, want 2/1/1/1", stats.Spawns, stats.SpawnFailures, stats.Merges, stats.Pushes)
	}
	if math.Abs(stats.PushTimeSec-0.5) > 1e-9 {
		t.Errorf("PushTimeSec = %v, want 0.5", stats.PushTimeSec)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("SimTimeSec = %v, want 1.0", stats.SimTimeSec)
	}
	if stats.DiameterMax != 3 || stats.Population != 3 {
		t.Errorf("DiameterMax = %v, Population = %d", stats.DiameterMax, stats.Population)
	}

	// Next window starts clean
	if c.ShouldFlush(15) {
		t.Error("window should restart at the flush tick")
	}
	next := c.Flush(20, Sample{})
	if next.Spawns != 0 || next.Merges != 0 || next.WindowStartTick != 10 {
		t.Errorf("next window = %+v, want zero counters starting at 10", next)
	}
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	c.RecordMerge()
	c.Flush(10, Sample{})
	c.RecordMerge()
	c.Reset()

	if !c.ShouldFlush(10) {
		t.Error("reset should restart the window at tick 0")
	}
	if stats := c.Flush(10, Sample{}); stats.Merges != 0 {
		t.Errorf("Merges = %d after reset, want 0", stats.Merges)
	}
}
