package game

import (
	"log/slog"

	"github.com/pthm-cable/pixelrace/telemetry"
)

// flushTelemetry records the current generation and handles bookmarks.
func (g *Game) flushTelemetry() {
	snap := g.playback.Current()
	stats := telemetry.ComputeGenerationStats(snap)

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write generation stats", "error", err)
		}
		if err := g.outputManager.WriteDesigns(telemetry.DesignRecords(snap)); err != nil {
			slog.Error("failed to write designs", "error", err)
		}
	}

	bookmarks := g.bookmarkDetector.Check(snap)
	for _, bm := range bookmarks {
		g.bookmarks = append(g.bookmarks, bm)
		if g.logStats {
			bm.LogBookmark()
		}

		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}

		// Save snapshot on bookmark
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}

	if len(bookmarks) == 0 && g.snapshotDir != "" && g.snapshotEvery > 0 && snap.Generation%g.snapshotEvery == 0 {
		g.saveSnapshot(nil)
	}
}

// saveSnapshot creates and saves a snapshot of the current generation.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := telemetry.NewSnapshot(g.timeline, g.playback.Generation())
	snapshot.Bookmark = bookmark

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "generation", g.playback.Generation())
}
