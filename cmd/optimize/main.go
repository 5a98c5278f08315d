// Package main searches the heat and flare constants for the values that
// maximise the seeker's mean final score on a map, using Nelder-Mead.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/hideseek/config"
	"github.com/pthm-cable/hideseek/game"
)

// EvalRecord is one row of optimize_log.csv.
type EvalRecord struct {
	Eval                int     `csv:"eval"`
	Fitness             float64 `csv:"fitness"`
	MeanCaught          float64 `csv:"mean_caught"`
	Aborted             int     `csv:"aborted"`
	Sighting            float64 `csv:"sighting"`
	HiderAlarm          float64 `csv:"hider_alarm"`
	FlareSeekerLevel    float64 `csv:"flare_seeker_level"`
	FlareHiderIncrement float64 `csv:"flare_hider_increment"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	mapPath := flag.String("map", "", "Map file to optimize on")
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 0, "Tick cap per game (0 = map time limit)")
	seeds := flag.Int("seeds", 5, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *mapPath == "" || *outputDir == "" {
		log.Fatal("--map and --output are required")
	}

	// Games log every catch and flare; keep only problems.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	layout, err := game.LoadMap(*mapPath)
	if err != nil {
		log.Fatalf("failed to load map: %v", err)
	}

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, layout, filepath.Base(*mapPath), *maxTicks, evalSeeds, baseCfg)

	// Search in normalized space, starting from the base config.
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	headerWritten := false
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			rec := []EvalRecord{{
				Eval:                evalCount,
				Fitness:             fitness,
				MeanCaught:          evaluator.LastCaught(),
				Aborted:             evaluator.LastAborted(),
				Sighting:            clamped[0],
				HiderAlarm:          clamped[1],
				FlareSeekerLevel:    clamped[2],
				FlareHiderIncrement: clamped[3],
			}}
			var werr error
			if headerWritten {
				werr = gocsv.MarshalWithoutHeaders(rec, logFile)
			} else {
				werr = gocsv.Marshal(rec, logFile)
				headerWritten = true
			}
			if werr != nil {
				log.Printf("failed to write log row: %v", werr)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(max(*maxEvals-evalCount, 0)) * avgPerEval

			fmt.Printf("Eval %d/%d: score=%.1f caught=%.2f (best=%.1f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, -fitness, evaluator.LastCaught(), -bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential; each evaluation runs its seeds in parallel
	}
	method := &optimize.NelderMead{
		SimplexSize: 0.2,
	}

	fmt.Printf("Starting Nelder-Mead optimization with %d parameters, max_evals=%d\n", params.Dim(), *maxEvals)
	fmt.Printf("Map: %s, seeds per evaluation: %d\n", *mapPath, *seeds)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best mean score: %.1f\n", -evaluator.BestFitness())

	fmt.Println("\nBest parameters:")
	for i, p := range params.Specs {
		fmt.Printf("  %s: %.0f\n", p.Path, bestParams[i])
	}

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
