package main

import (
	"slices"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/treevolution/config"
	"github.com/pthm-cable/treevolution/game"
	"github.com/pthm-cable/treevolution/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	minPlants  int
	baseConfig *config.Config

	mu        sync.Mutex
	lastSeeds []float64 // mean living plants per seed from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, minPlants int, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		minPlants:  minPlants,
		baseConfig: baseCfg,
	}
}

// LastSeedPlants returns the per-seed mean living plant counts of the most
// recent evaluation, in seed order.
func (fe *FitnessEvaluator) LastSeedPlants() []float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return slices.Clone(fe.lastSeeds)
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean number of living plants over all stats windows
// after the first, averaged across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = meanPlants(fe.runSimulation(cfg, s))
		}(i, seed)
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastSeeds = results
	fe.mu.Unlock()

	if len(results) == 0 {
		return 0
	}
	return -floats.Sum(results) / float64(len(results))
}

// runSimulation runs one headless simulation and returns its stats windows.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) []telemetry.WindowStats {
	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:           seed,
		MinPlants:      fe.minPlants,
		Headless:       true,
		StepsPerUpdate: 100,
	})
	if err != nil {
		return nil
	}
	defer g.Unload()

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) {
		windows = append(windows, s)
	})

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// meanPlants averages the living plant count, skipping the first window
// while the floor is still filling the habitat.
func meanPlants(windows []telemetry.WindowStats) float64 {
	if len(windows) > 1 {
		windows = windows[1:]
	}
	if len(windows) == 0 {
		return 0
	}
	var sum float64
	for _, w := range windows {
		sum += float64(w.Plants)
	}
	return sum / float64(len(windows))
}
