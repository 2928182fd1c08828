// Package main provides CMA-ES tuning of habitat parameters for a large,
// stable living plant population.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/treevolution/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 20000, "Simulation duration in ticks per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	minPlants := flag.Int("min-plants", -1, "Population floor during runs (-1 = width/10)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	base := config.Cfg()

	floor := *minPlants
	if floor < 0 {
		floor = base.Derived.DefaultMinimum
	}

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, int32(*maxTicks), evalSeeds, floor, base)

	logFile, err := os.Create(filepath.Join(*outputDir, "optimize_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	prog, err := newProgress(params, base, *outputDir, *maxEvals, logFile, os.Stdout)
	if err != nil {
		log.Fatalf("failed to write log header: %v", err)
	}

	// Evaluations run sequentially; each one already runs its seeds in parallel.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			fitness := evaluator.Evaluate(params.Denormalize(x))
			if _, err := prog.record(params.Clamp(params.Denormalize(x)), evaluator.LastSeedPlants()); err != nil {
				log.Printf("failed to record evaluation: %v", err)
			}
			return fitness
		},
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + 3*params.Dim()/2
	}

	fmt.Printf("Tuning %d habitat parameters: population=%d, max_evals=%d, %d seeds x %d ticks, floor %d plants\n",
		params.Dim(), popSize, *maxEvals, *seeds, *maxTicks, floor)

	_, err = optimize.Minimize(problem, params.Normalize(params.DefaultVector()),
		&optimize.Settings{FuncEvaluations: *maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize})
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	prog.summary()
}
