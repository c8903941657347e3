// Package main climbs the fitness landscape from every design's start
// position and reports the local peaks it reaches. With -retarget it
// writes a config whose design targets are those peaks.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/pixelrace/components"
	"github.com/pthm-cable/pixelrace/config"
	"github.com/pthm-cable/pixelrace/systems"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxEvals := flag.Int("max-evals", 200, "Maximum landscape evaluations per design")
	outputDir := flag.String("output", "", "Output directory for results")
	retarget := flag.Bool("retarget", false, "Write a config with each target moved to its climbed peak")
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
	cfg := config.Cfg()

	hf, err := systems.TerrainFromConfig(cfg.Landscape).Build()
	if err != nil {
		log.Fatalf("failed to build landscape: %v", err)
	}

	logFile, err := os.Create(filepath.Join(*outputDir, "peakfind_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	var evals []Evaluation
	c := &climber{
		hf:       hf,
		maxEvals: *maxEvals,
		onEval:   func(e Evaluation) { evals = append(evals, e) },
	}

	climbs := make([]Climb, 0, len(cfg.Designs))
	for _, d := range cfg.Designs {
		start := components.Position{X: d.Start.X, Y: d.Start.Y}
		result, err := c.climb(d.ID, start)
		if err != nil {
			log.Fatalf("%v", err)
		}
		climbs = append(climbs, result)
		fmt.Printf("%-14s start=(%5.1f,%5.1f) peak=(%5.2f,%5.2f) height=%.3f evals=%d\n",
			d.ID, start.X, start.Y, result.Peak.X, result.Peak.Y, result.Height, result.Evals)
	}

	if err := gocsv.MarshalFile(&evals, logFile); err != nil {
		log.Fatalf("failed to write evaluation log: %v", err)
	}

	peaksFile, err := os.Create(filepath.Join(*outputDir, "peaks.csv"))
	if err != nil {
		log.Fatalf("failed to create peaks file: %v", err)
	}
	defer peaksFile.Close()
	if err := gocsv.MarshalFile(&climbs, peaksFile); err != nil {
		log.Fatalf("failed to write peaks: %v", err)
	}

	optimal := hf.OptimalPosition()
	fmt.Printf("\nGrid optimum: (%.0f,%.0f) height=%.3f\n", optimal.X, optimal.Y, hf.At(int(optimal.X), int(optimal.Y)))

	if !*retarget {
		return
	}
	retargeted, _ := config.Load(*configPath)
	applyPeaks(retargeted, climbs)

	configOutPath := filepath.Join(*outputDir, "retargeted_config.yaml")
	if err := retargeted.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write retargeted config: %v", err)
	} else {
		fmt.Printf("Retargeted config saved to: %s\n", configOutPath)
	}
}

// applyPeaks moves each design's target to the peak climbed from its start.
func applyPeaks(cfg *config.Config, climbs []Climb) {
	for _, c := range climbs {
		i, ok := cfg.Derived.DesignIndex[c.DesignID]
		if !ok {
			continue
		}
		cfg.Designs[i].Target = config.PointConfig{X: c.Peak.X, Y: c.Peak.Y}
	}
}
