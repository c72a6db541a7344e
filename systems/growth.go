package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lambda/components"
)

// Task is a resumable per-tick job. Step advances it by dt and reports
// whether it has finished.
type Task interface {
	Step(dt float64) (done bool)
}

type scheduled struct {
	owner ecs.Entity
	task  Task
}

// Scheduler advances tasks once per tick. A task whose owner entity is no
// longer alive is dropped before it resumes.
type Scheduler struct {
	world *ecs.World
	tasks []scheduled
}

// NewScheduler creates a scheduler bound to a world.
func NewScheduler(w *ecs.World) *Scheduler {
	return &Scheduler{world: w}
}

// Start registers a task owned by the given entity.
func (s *Scheduler) Start(owner ecs.Entity, t Task) {
	s.tasks = append(s.tasks, scheduled{owner: owner, task: t})
}

// Tick resumes every live task once.
func (s *Scheduler) Tick(dt float64) {
	kept := s.tasks[:0]
	for _, st := range s.tasks {
		if !s.world.Alive(st.owner) {
			continue
		}
		if st.task.Step(dt) {
			continue
		}
		kept = append(kept, st)
	}
	// Clear the tail so finished tasks can be collected
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = scheduled{}
	}
	s.tasks = kept
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Clear drops all pending tasks.
func (s *Scheduler) Clear() {
	s.tasks = s.tasks[:0]
}

// GrowthTask grows a freshly spawned galaxy from nothing to its target
// diameter at a constant rate.
type GrowthTask struct {
	entity ecs.Entity
	mapper *ecs.Map2[components.Transform, components.Galaxy]
	size   float64
	step   float64 // diameter per second
}

// NewGrowthTask puts the galaxy into the spawning state and returns the task
// that grows it over duration seconds.
func NewGrowthTask(e ecs.Entity, mapper *ecs.Map2[components.Transform, components.Galaxy], duration float64) *GrowthTask {
	tr, g := mapper.Get(e)
	g.Spawning = true
	if g.Target <= 0 {
		g.Target = g.Diameter
	}
	g.Diameter = 0
	tr.Scale = 0

	step := g.Target
	if duration > 0 {
		step = g.Target / duration
	}
	return &GrowthTask{entity: e, mapper: mapper, step: step}
}

// Step advances the growth by dt.
func (t *GrowthTask) Step(dt float64) bool {
	tr, g := t.mapper.Get(t.entity)

	t.size += t.step * dt
	if t.size >= g.Target {
		g.Diameter = g.Target
		tr.Scale = g.Target
		g.Spawning = false
		return true
	}

	g.Diameter = t.size
	tr.Scale = t.size
	return false
}
