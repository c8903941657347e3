package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/pixelrace/config"
	"github.com/pthm-cable/pixelrace/telemetry"
)

func TestHeadlessRunVisitsEveryGeneration(t *testing.T) {
	cfg := config.Default()
	cfg.Race.Generations = 10

	g, err := NewGameWithOptions(cfg, Options{})
	if err != nil {
		t.Fatalf("NewGameWithOptions failed: %v", err)
	}
	defer g.Unload()

	var seen []int
	g.SetStatsCallback(func(s telemetry.GenerationStats) {
		seen = append(seen, s.Generation)
	})

	if err := g.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(seen) != 11 {
		t.Fatalf("stats callback called %d times, want 11", len(seen))
	}
	for i, gen := range seen {
		if gen != i {
			t.Errorf("call %d reported generation %d", i, gen)
		}
	}
	if g.Generation() != 10 {
		t.Errorf("Generation() = %d, want 10", g.Generation())
	}
	if g.UpdateHeadless() {
		t.Error("UpdateHeadless should report false after the race ends")
	}
}

func TestRunWritesOutput(t *testing.T) {
	dir := t.TempDir()
	snapDir := filepath.Join(dir, "snapshots")

	g, err := NewGameWithOptions(config.Default(), Options{
		OutputDir:   filepath.Join(dir, "out"),
		SnapshotDir: snapDir,
	})
	if err != nil {
		t.Fatalf("NewGameWithOptions failed: %v", err)
	}
	if err := g.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	g.Unload()

	for _, name := range []string{"config.yaml", "landscape.csv", "generations.csv", "designs.csv", "bookmarks.csv", "rankings.csv"} {
		if _, err := os.Stat(filepath.Join(dir, "out", name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	if len(g.Bookmarks()) == 0 {
		t.Fatal("default race should produce bookmarks")
	}
	entries, err := os.ReadDir(snapDir)
	if err != nil {
		t.Fatalf("reading snapshot dir: %v", err)
	}
	if len(entries) == 0 {
		t.Error("expected bookmark snapshots to be written")
	}
}

func TestNewGameRejectsEmptyRoster(t *testing.T) {
	cfg := config.Default()
	cfg.Designs = nil
	if _, err := NewGameWithOptions(cfg, Options{}); err == nil {
		t.Error("expected error for a race with no designs")
	}
}
