package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lambda/components"
)

func newGrowthWorld() (*ecs.World, *ecs.Map2[components.Transform, components.Galaxy]) {
	w := ecs.NewWorld()
	return w, ecs.NewMap2[components.Transform, components.Galaxy](w)
}

func TestGrowthTaskGrowsLinearly(t *testing.T) {
	w, m := newGrowthWorld()
	e := m.NewEntity(&components.Transform{}, &components.Galaxy{Diameter: 1.2})

	s := NewScheduler(w)
	s.Start(e, NewGrowthTask(e, m, 1.5))

	_, g := m.Get(e)
	if !g.Spawning || g.Diameter != 0 {
		t.Fatalf("after start: spawning=%v diameter=%v, want true 0", g.Spawning, g.Diameter)
	}

	s.Tick(0.75) // half way
	_, g = m.Get(e)
	if math.Abs(g.Diameter-0.6) > 1e-9 {
		t.Errorf("diameter after 0.75s = %v, want 0.6", g.Diameter)
	}
	if !g.Spawning {
		t.Error("should still be spawning half way")
	}

	s.Tick(0.8)
	tr, g := m.Get(e)
	if g.Spawning {
		t.Error("should have finished spawning")
	}
	if g.Diameter != 1.2 || tr.Scale != 1.2 {
		t.Errorf("final diameter/scale = %v/%v, want 1.2", g.Diameter, tr.Scale)
	}
	if s.Len() != 0 {
		t.Errorf("scheduler has %d tasks, want 0", s.Len())
	}
}

func TestGrowthTaskNeverShrinks(t *testing.T) {
	w, m := newGrowthWorld()
	e := m.NewEntity(&components.Transform{}, &components.Galaxy{Diameter: 1})

	s := NewScheduler(w)
	s.Start(e, NewGrowthTask(e, m, 1.5))

	prev := 0.0
	for i := 0; i < 200 && s.Len() > 0; i++ {
		s.Tick(1.0 / 60.0)
		_, g := m.Get(e)
		if g.Diameter < prev {
			t.Fatalf("tick %d: diameter shrank %v -> %v", i, prev, g.Diameter)
		}
		prev = g.Diameter
	}
	if prev != 1 {
		t.Errorf("final diameter = %v, want 1", prev)
	}
}

func TestSchedulerCancelsDeadOwner(t *testing.T) {
	w, m := newGrowthWorld()
	e := m.NewEntity(&components.Transform{}, &components.Galaxy{Diameter: 1})

	s := NewScheduler(w)
	s.Start(e, NewGrowthTask(e, m, 1.5))

	w.RemoveEntity(e)
	s.Tick(0.1) // must not touch the removed entity

	if s.Len() != 0 {
		t.Errorf("scheduler has %d tasks, want 0", s.Len())
	}
}

type countTask struct {
	steps int
	limit int
}

func (c *countTask) Step(dt float64) bool {
	c.steps++
	return c.steps >= c.limit
}

func TestSchedulerRunsTasksUntilDone(t *testing.T) {
	w := ecs.NewWorld()
	m := ecs.NewMap1[components.Galaxy](w)
	owner := m.NewEntity(&components.Galaxy{})

	short := &countTask{limit: 1}
	long := &countTask{limit: 3}
	s := NewScheduler(w)
	s.Start(owner, short)
	s.Start(owner, long)

	for i := 0; i < 5; i++ {
		s.Tick(0.016)
	}

	if short.steps != 1 {
		t.Errorf("short task stepped %d times, want 1", short.steps)
	}
	if long.steps != 3 {
		t.Errorf("long task stepped %d times, want 3", long.steps)
	}

	s.Start(owner, &countTask{limit: 10})
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", s.Len())
	}
}
