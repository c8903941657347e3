// Package game drives a precomputed race generation by generation and
// feeds each step to telemetry.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/pixelrace/config"
	"github.com/pthm-cable/pixelrace/race"
	"github.com/pthm-cable/pixelrace/telemetry"
)

// Options configures a run.
type Options struct {
	LogStats    bool
	SnapshotDir string // empty disables snapshots
	OutputDir   string // empty disables CSV output
	// SnapshotEvery saves a plain snapshot every N generations (0 = bookmarks only).
	SnapshotEvery int
}

// Game holds the state of one race playback.
type Game struct {
	cfg      *config.Config
	timeline *race.Timeline
	playback *race.Playback

	logStats      bool
	snapshotDir   string
	snapshotEvery int

	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	bookmarks        []telemetry.Bookmark

	started bool

	// statsCallback receives every generation's stats when set.
	statsCallback func(telemetry.GenerationStats)
}

// NewGameWithOptions builds the race timeline from cfg and prepares output.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	tl, err := race.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("building race: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}
	if err := om.WriteLandscape(tl.HeightField()); err != nil {
		om.Close()
		return nil, err
	}

	g := &Game{
		cfg:           cfg,
		timeline:      tl,
		playback:      race.NewPlayback(tl, cfg.Race.TrailLength),
		logStats:      opts.LogStats || cfg.Telemetry.LogStats,
		snapshotDir:   opts.SnapshotDir,
		snapshotEvery: opts.SnapshotEvery,
		outputManager: om,
		bookmarkDetector: telemetry.NewBookmarkDetector(
			tl.Total(),
			cfg.Telemetry.SummitThreshold,
			cfg.Telemetry.PhotoFinishMargin,
		),
	}
	if g.snapshotDir == "" && cfg.Telemetry.WriteSnapshots && om != nil {
		g.snapshotDir = om.Dir()
	}

	optimal := tl.HeightField().OptimalPosition()
	slog.Info("race ready",
		"designs", len(tl.Candidates()),
		"generations", tl.Total(),
		"optimal_x", optimal.X,
		"optimal_y", optimal.Y,
		"output_dir", om.Dir(),
	)
	return g, nil
}

// SetStatsCallback registers fn to receive each generation's stats.
func (g *Game) SetStatsCallback(fn func(telemetry.GenerationStats)) {
	g.statsCallback = fn
}

// UpdateHeadless processes the current generation and advances to the next.
// Returns false once the final generation has been processed.
func (g *Game) UpdateHeadless() bool {
	if !g.started {
		g.started = true
		g.flushTelemetry()
		return !g.playback.Done()
	}
	if !g.playback.Step() {
		return false
	}
	g.flushTelemetry()
	return !g.playback.Done()
}

// Run plays the whole race and writes the final standings.
func (g *Game) Run() error {
	for g.UpdateHeadless() {
	}
	return g.finish()
}

// finish logs and writes the final rankings.
func (g *Game) finish() error {
	rankings := g.timeline.FinalRankings()
	for _, r := range rankings {
		slog.Info("final_rank", "rank", r.Rank, "design", r.DesignID, "fitness", r.Fitness)
	}
	winner, _ := g.playback.Winner()
	slog.Info("race finished",
		"winner", winner.ID,
		"fitness", winner.Fitness,
		"resonance_ghz", winner.Resonance,
		"bookmarks", len(g.bookmarks),
	)
	return g.outputManager.WriteRankings(rankings)
}

// Unload closes any open output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Generation returns the generation currently shown.
func (g *Game) Generation() int {
	return g.playback.Generation()
}

// Timeline returns the precomputed race.
func (g *Game) Timeline() *race.Timeline {
	return g.timeline
}

// Playback returns the playback cursor.
func (g *Game) Playback() *race.Playback {
	return g.playback
}

// Bookmarks returns the bookmarks found so far.
func (g *Game) Bookmarks() []telemetry.Bookmark {
	return g.bookmarks
}
