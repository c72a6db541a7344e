package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/lambda/components"
	"github.com/pthm-cable/lambda/config"
	"github.com/pthm-cable/lambda/systems"
	"github.com/pthm-cable/lambda/telemetry"
)

// GroundCaster maps screen points onto the ground plane.
type GroundCaster interface {
	ScreenToGround(sx, sy float64) (r3.Vec, bool)
	Viewport() (w, h float64)
}

// PhaseTimer is told when each phase of a tick begins and how many
// galaxies enter the pairwise pass.
type PhaseTimer interface {
	StartPhase(phase telemetry.Phase)
	CountPairs(bodies int)
}

// Input is the pointer state sampled once per tick.
type Input struct {
	PushHeld           bool
	PointerX, PointerY float64 // screen pixels
}

// BodyView is a read-only snapshot of one galaxy for presentation.
type BodyView struct {
	ID       uint32
	Position r3.Vec
	Angle    float64 // degrees
	Scale    float64
	Diameter float64
	Target   float64 // diameter when fully grown
	Speed    float64 // ground speed, units per second
	Spin     float64 // degrees per second
	Tint     components.Tint
	Spawning bool
}

// Name returns the display name of the galaxy.
func (b BodyView) Name() string {
	return fmt.Sprintf("Galaxy_%d", b.ID)
}

// Universe owns the galaxies and advances them once per tick.
type Universe struct {
	cfg    *config.Config
	caster GroundCaster
	rng    *rand.Rand
	timer  PhaseTimer

	world     *ecs.World
	bodyMap   *ecs.Map3[components.Transform, components.Motion, components.Galaxy]
	growthMap *ecs.Map2[components.Transform, components.Galaxy]
	scheduler *systems.Scheduler

	// Insertion order drives pair order
	order    []ecs.Entity
	bodies   []systems.Body
	removals map[ecs.Entity]struct{}

	// Ground lookup for placement and picking, rebuilt lazily
	grid      *systems.SpatialGrid
	gridDirty bool
	hits      []systems.Body

	pushActive bool
	pushPos    r3.Vec

	spawnCountdown float64
	score          float64
	lastScore      int
	delta          float64
	maxRate        float64
	maxBodies      int
	totalDiameter  float64
	hud            string

	nextID  uint32
	tick    int64
	elapsed float64

	over     bool
	gameOver chan Result
	events   []Event
}

// NewUniverse creates an empty universe. The first spawn happens after
// spawn.initial_countdown seconds.
func NewUniverse(cfg *config.Config, caster GroundCaster, rng *rand.Rand) *Universe {
	u := &Universe{
		cfg:      cfg,
		caster:   caster,
		rng:      rng,
		removals: make(map[ecs.Entity]struct{}),
		grid:     systems.NewSpatialGrid(cfg.Universe.GridHalfExtent, cfg.Universe.GridCell),
	}
	u.Reset()
	return u
}

// SetPhaseTimer installs a timer that receives phase boundaries. nil disables it.
func (u *Universe) SetPhaseTimer(t PhaseTimer) {
	u.timer = t
}

// Reset drops every galaxy and zeroes the score. A fresh game-over channel
// is created, so listeners must call GameOver again after a reset.
func (u *Universe) Reset() {
	u.world = ecs.NewWorld()
	u.bodyMap = ecs.NewMap3[components.Transform, components.Motion, components.Galaxy](u.world)
	u.growthMap = ecs.NewMap2[components.Transform, components.Galaxy](u.world)
	u.scheduler = systems.NewScheduler(u.world)

	u.order = u.order[:0]
	u.bodies = u.bodies[:0]
	clear(u.removals)
	u.invalidateGrid()

	u.pushActive = false
	u.pushPos = r3.Vec{}

	u.spawnCountdown = u.cfg.Spawn.InitialCountdown
	u.score = 0
	u.lastScore = 0
	u.delta = 0
	u.maxRate = 0
	u.maxBodies = 0
	u.totalDiameter = 0
	u.hud = formatHUD(0, 0)

	u.nextID = 0
	u.tick = 0
	u.elapsed = 0

	u.over = false
	u.gameOver = make(chan Result, 1)
	u.events = u.events[:0]
}

// Update advances the universe by dt seconds. It does nothing once the game is over.
func (u *Universe) Update(dt float64, in Input) {
	u.events = u.events[:0]
	if u.over {
		return
	}
	u.tick++
	u.elapsed += dt
	u.invalidateGrid()

	u.phase(telemetry.PhaseGrowth)
	u.scheduler.Tick(dt)

	u.phase(telemetry.PhaseSpawn)
	u.updateSpawnTimer(dt)

	u.updatePusher(in)

	u.phase(telemetry.PhasePairwise)
	u.collectBodies()
	if u.timer != nil {
		u.timer.CountPairs(len(u.bodies))
	}
	u.pairwise(dt)

	u.phase(telemetry.PhaseIntegrate)
	u.integrate(dt)
	u.invalidateGrid()

	u.phase(telemetry.PhaseRemoval)
	u.removeAbsorbed()

	u.phase(telemetry.PhaseScore)
	if n := len(u.order); n > u.maxBodies {
		u.maxBodies = n
	}
	u.updateScore(dt)
	u.checkGameOver()
}

func (u *Universe) phase(p telemetry.Phase) {
	if u.timer != nil {
		u.timer.StartPhase(p)
	}
}

// updateSpawnTimer counts down and spawns when the countdown has run out.
func (u *Universe) updateSpawnTimer(dt float64) {
	if u.spawnCountdown > 0 {
		u.spawnCountdown -= dt
		return
	}
	u.spawnGalaxy()
	u.spawnCountdown = randRange(u.rng, u.cfg.Spawn.IntervalMin, u.cfg.Spawn.IntervalMax)
}

// updatePusher samples the pointer and emits edge events.
func (u *Universe) updatePusher(in Input) {
	active := false
	if in.PushHeld {
		if hit, ok := u.caster.ScreenToGround(in.PointerX, in.PointerY); ok {
			active = true
			u.pushPos = hit
		}
	}

	switch {
	case active && !u.pushActive:
		u.emit(Event{Type: EventPushStarted, Position: u.pushPos})
	case !active && u.pushActive:
		u.emit(Event{Type: EventPushStopped, Position: u.pushPos})
	}
	u.pushActive = active
}

// collectBodies refreshes the component views for this tick.
// Must run after spawning, which is the only structural change before removal.
func (u *Universe) collectBodies() {
	u.bodies = u.bodies[:0]
	for _, e := range u.order {
		tr, mo, g := u.bodyMap.Get(e)
		u.bodies = append(u.bodies, systems.Body{Entity: e, Transform: tr, Motion: mo, Galaxy: g})
	}
}

// pairwise runs the interaction law over every unordered pair once.
// A galaxy absorbed earlier in the pass takes no further part in it.
func (u *Universe) pairwise(dt float64) {
	uc := u.cfg.Universe
	for i := 0; i < len(u.bodies); i++ {
		a := u.bodies[i]
		if u.tagged(a.Entity) {
			continue
		}
		for j := i + 1; j < len(u.bodies); j++ {
			b := u.bodies[j]
			if u.tagged(b.Entity) {
				continue
			}

			result := systems.UpdateVelocities(a, b, uc.MergeFactor, uc.Attraction, dt)
			if !result.Merged() {
				continue
			}

			survivor, absorbed := a, b
			if result == systems.InteractionAbsorbA {
				survivor, absorbed = b, a
			}
			u.removals[absorbed.Entity] = struct{}{}
			u.emit(Event{
				Type:     EventMerged,
				ID:       survivor.Galaxy.ID,
				OtherID:  absorbed.Galaxy.ID,
				Position: survivor.Transform.Position,
				Value:    survivor.Galaxy.Diameter,
			})

			if absorbed.Entity == a.Entity {
				break
			}
		}
	}
}

func (u *Universe) tagged(e ecs.Entity) bool {
	_, ok := u.removals[e]
	return ok
}

// integrate moves every galaxy, absorbed ones included, and sums their
// diameters. Only survivors feel the pusher.
func (u *Universe) integrate(dt float64) {
	uc := u.cfg.Universe
	total := 0.0
	for _, b := range u.bodies {
		if u.pushActive && !u.tagged(b.Entity) {
			b.ApplyPush(u.pushPos, uc.PushStrength, dt)
		}
		total += b.Update(dt, uc.VelocityDiffusion, uc.CollapseSize)
	}
	u.totalDiameter = total
}

// removeAbsorbed deletes tagged galaxies in a second pass, after the
// views are no longer needed.
func (u *Universe) removeAbsorbed() {
	if len(u.removals) == 0 {
		return
	}
	for e := range u.removals {
		if u.world.Alive(e) {
			u.world.RemoveEntity(e)
		}
	}
	u.order = compact(u.order, u.removals)
	clear(u.removals)
	u.bodies = u.bodies[:0]
	u.invalidateGrid()
}

func (u *Universe) invalidateGrid() {
	u.gridDirty = true
}

// ensureGrid rebuilds the spatial grid if anything moved since the last build.
func (u *Universe) ensureGrid() {
	if !u.gridDirty {
		return
	}
	u.grid.Clear()
	for _, e := range u.order {
		tr, mo, g := u.bodyMap.Get(e)
		u.grid.Insert(systems.Body{Entity: e, Transform: tr, Motion: mo, Galaxy: g})
	}
	u.gridDirty = false
}

// updateScore accrues score at a rate proportional to the total diameter
// and the number of galaxies beyond the first.
func (u *Universe) updateScore(dt float64) {
	n := len(u.order)
	u.delta = u.cfg.Universe.ScoreScale * u.totalDiameter * float64(max(0, n-1))
	u.score += u.delta * dt
	u.maxRate = math.Max(u.maxRate, u.delta)

	if s := int(u.score); s != u.lastScore {
		u.lastScore = s
		u.hud = formatHUD(s, u.delta)
		u.emit(Event{Type: EventScoreChanged, Value: u.score})
	}
}

// checkGameOver ends the session once everything has merged into a single
// galaxy at least as large as the peak population.
func (u *Universe) checkGameOver() {
	if len(u.order) != 1 || u.maxBodies <= 1 {
		return
	}
	_, _, g := u.bodyMap.Get(u.order[0])
	if g.Diameter < float64(u.maxBodies) {
		return
	}

	u.over = true
	res := u.Result()
	u.emit(Event{Type: EventGameOver, ID: g.ID, Value: float64(res.Score)})
	select {
	case u.gameOver <- res:
	default:
	}
}

func (u *Universe) emit(ev Event) {
	ev.Tick = u.tick
	u.events = append(u.events, ev)
}

func formatHUD(score int, delta float64) string {
	return fmt.Sprintf("%d (d=%.3f Hz)", score, delta)
}

// GameOver returns the channel that receives the result when the game ends.
// It fires at most once per session.
func (u *Universe) GameOver() <-chan Result {
	return u.gameOver
}

// Over reports whether the game has ended.
func (u *Universe) Over() bool {
	return u.over
}

// Result summarizes the session so far.
func (u *Universe) Result() Result {
	var final float64
	if len(u.order) == 1 {
		_, _, g := u.bodyMap.Get(u.order[0])
		final = g.Diameter
	}
	return Result{
		Score:         int(u.score),
		MaxRate:       u.maxRate,
		MaxBodies:     u.maxBodies,
		FinalDiameter: final,
		Ticks:         u.tick,
		Duration:      u.elapsed,
	}
}

// Events returns the events of the last tick. The slice is reused.
func (u *Universe) Events() []Event {
	return u.events
}

// Score returns the integer score.
func (u *Universe) Score() int { return int(u.score) }

// MaxRate returns the highest score rate seen this session.
func (u *Universe) MaxRate() float64 { return u.maxRate }

// Rate returns the current score rate.
func (u *Universe) Rate() float64 { return u.delta }

// HUD returns the score line shown to the player.
func (u *Universe) HUD() string { return u.hud }

// Count returns the number of galaxies.
func (u *Universe) Count() int { return len(u.order) }

// MaxBodies returns the population high-water mark of this session.
func (u *Universe) MaxBodies() int { return u.maxBodies }

// TotalDiameter returns the summed diameter from the last tick.
func (u *Universe) TotalDiameter() float64 { return u.totalDiameter }

// Tick returns the number of ticks since the last reset.
func (u *Universe) Tick() int64 { return u.tick }

// Elapsed returns the simulated seconds since the last reset.
func (u *Universe) Elapsed() float64 { return u.elapsed }

// Pusher returns the pusher position and whether it is active.
func (u *Universe) Pusher() (r3.Vec, bool) {
	return u.pushPos, u.pushActive
}

// Bodies appends a view of every galaxy in insertion order to dst.
func (u *Universe) Bodies(dst []BodyView) []BodyView {
	for _, e := range u.order {
		tr, mo, g := u.bodyMap.Get(e)
		dst = append(dst, viewOf(tr, mo, g))
	}
	return dst
}

func viewOf(tr *components.Transform, mo *components.Motion, g *components.Galaxy) BodyView {
	return BodyView{
		ID:       g.ID,
		Position: tr.Position,
		Angle:    tr.Angle,
		Scale:    tr.Scale,
		Diameter: g.Diameter,
		Target:   g.Target,
		Speed:    r3.Norm(mo.Velocity),
		Spin:     mo.RotationSpeed,
		Tint:     g.Tint,
		Spawning: g.Spawning,
	}
}

// Diameters appends every galaxy diameter to dst.
func (u *Universe) Diameters(dst []float64) []float64 {
	for _, e := range u.order {
		_, _, g := u.bodyMap.Get(e)
		dst = append(dst, g.Diameter)
	}
	return dst
}

// GalaxyAt returns the galaxy covering the ground point p. When several
// overlap, the last inserted one wins.
func (u *Universe) GalaxyAt(p r3.Vec) (BodyView, bool) {
	u.ensureGrid()
	u.hits = u.grid.QueryInto(u.hits[:0], p, 0)

	var best *systems.Body
	for i := range u.hits {
		if best == nil || u.hits[i].Galaxy.ID > best.Galaxy.ID {
			best = &u.hits[i]
		}
	}
	if best == nil {
		return BodyView{}, false
	}
	return viewOf(best.Transform, best.Motion, best.Galaxy), true
}
