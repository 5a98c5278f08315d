package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/hideseek/config"
	"github.com/pthm-cable/hideseek/game"
)

// FitnessEvaluator runs headless games and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	layout     *game.MapSpec
	mapName    string
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastCaught  float64 // Mean hiders caught in the most recent Evaluate call
	lastAborted int     // Aborted runs in the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator for one map.
func NewFitnessEvaluator(params *ParamVector, layout *game.MapSpec, mapName string, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		layout:      layout,
		mapName:     mapName,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestFitness returns the lowest fitness seen so far.
func (fe *FitnessEvaluator) BestFitness() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestFitness
}

// LastCaught returns the mean catches from the most recent evaluation.
func (fe *FitnessEvaluator) LastCaught() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCaught
}

// LastAborted returns the number of aborted runs in the most recent evaluation.
func (fe *FitnessEvaluator) LastAborted() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastAborted
}

// Evaluate computes fitness for a raw parameter vector (lower = better):
// the negated mean final score over all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]game.Result, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runGame(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var totalScore, totalCaught float64
	aborted := 0
	for _, r := range results {
		totalScore += float64(r.Score)
		totalCaught += float64(r.Caught)
		if r.Outcome == game.Aborted {
			aborted++
		}
	}

	n := float64(len(fe.seeds))
	fitness := -totalScore / n

	fe.mu.Lock()
	fe.bestFitness = min(fe.bestFitness, fitness)
	fe.lastCaught = totalCaught / n
	fe.lastAborted = aborted
	fe.mu.Unlock()

	return fitness
}

// runGame plays one headless game. cfg is shared read-only between runs.
func (fe *FitnessEvaluator) runGame(cfg *config.Config, seed int64) game.Result {
	g, err := game.NewGame(fe.layout, cfg, game.Options{Seed: seed, MapName: fe.mapName})
	if err != nil {
		return game.Result{Outcome: game.Aborted, Score: cfg.Game.StartScore, Err: err}
	}
	return g.Run(fe.maxTicks)
}

// copyConfig creates a copy of the base config. Config holds only values,
// so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
