package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/pixelrace/config"
	"github.com/pthm-cable/pixelrace/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output per-generation stats via slog")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	snapshotEvery := flag.Int("snapshot-every", 0, "Also snapshot every N generations (0 = bookmarks only)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	generations := flag.Int("generations", 0, "Override the number of generations (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *generations > 0 {
		cfg.Race.Generations = *generations
	}

	g, err := game.NewGameWithOptions(cfg, game.Options{
		LogStats:      *logStats,
		SnapshotDir:   *snapshotDir,
		SnapshotEvery: *snapshotEvery,
		OutputDir:     *outputDir,
	})
	if err != nil {
		slog.Error("failed to start race", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	if err := g.Run(); err != nil {
		slog.Error("failed to write results", "error", err)
		g.Unload()
		os.Exit(1)
	}
}
