package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/lambda/config"
	"github.com/pthm-cable/lambda/game"
)

// unfinishedPenalty is added for every seed whose universe never consolidated.
const unfinishedPenalty = 2.0

// runResult holds the outcome of one headless game.
type runResult struct {
	seconds   float64 // simulated seconds until consolidation, or the cap
	completed bool
	score     int
	maxBodies int
}

// Evaluation aggregates all seeds of one parameter vector.
type Evaluation struct {
	Fitness     float64
	MeanSeconds float64
	Completed   int
	MeanScore   float64
}

// FitnessEvaluator runs headless games and scores how close their
// consolidation time is to a target.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int64
	seeds      []int64
	baseConfig *config.Config
	target     float64 // seconds

	mu   sync.Mutex
	last Evaluation
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config, targetSec float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     targetSec,
	}
}

// Last returns the details of the most recent evaluation.
func (fe *FitnessEvaluator) Last() Evaluation {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runGame(x, s)
		}(i, seed)
	}
	wg.Wait()

	ev := fe.score(results)

	fe.mu.Lock()
	fe.last = ev
	fe.mu.Unlock()

	return ev.Fitness
}

// score folds per-seed results into an Evaluation.
func (fe *FitnessEvaluator) score(results []runResult) Evaluation {
	errs := make([]float64, len(results))
	secs := make([]float64, len(results))
	scores := make([]float64, len(results))
	completed := 0

	for i, r := range results {
		secs[i] = r.seconds
		scores[i] = float64(r.score)
		errs[i] = math.Abs(math.Log(max(r.seconds, 1e-3) / fe.target))
		if r.completed {
			completed++
		} else {
			errs[i] += unfinishedPenalty
		}
	}

	return Evaluation{
		Fitness:     stat.Mean(errs, nil),
		MeanSeconds: stat.Mean(secs, nil),
		Completed:   completed,
		MeanScore:   stat.Mean(scores, nil),
	}
}

// runGame plays one headless game with the scripted pusher.
func (fe *FitnessEvaluator) runGame(x []float64, seed int64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 60,
		AutoPush:       true,
		Config:         cfg,
	})
	defer g.Unload()

	for g.Sessions() == 0 && g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	if res, ok := g.Session().LastResult(); ok {
		return runResult{seconds: res.Duration, completed: true, score: res.Score, maxBodies: res.MaxBodies}
	}
	u := g.Universe()
	return runResult{seconds: u.Elapsed(), score: u.Score(), maxBodies: u.MaxBodies()}
}

// copyConfig returns a copy of the base config. Config holds only values.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
