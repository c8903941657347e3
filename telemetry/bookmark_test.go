package telemetry

import (
	"testing"

	"github.com/pthm-cable/pixelrace/config"
	"github.com/pthm-cable/pixelrace/race"
)

func countType(bookmarks []Bookmark, bt BookmarkType) int {
	n := 0
	for _, b := range bookmarks {
		if b.Type == bt {
			n++
		}
	}
	return n
}

func TestBookmarkLeadChange(t *testing.T) {
	bd := NewBookmarkDetector(10, 0.95, 0.01)

	if got := bd.Check(testSnapshot(0, 0.5, 0.3)); countType(got, BookmarkLeadChange) != 0 {
		t.Errorf("first snapshot should not report a lead change, got %v", got)
	}
	if got := bd.Check(testSnapshot(1, 0.6, 0.4)); countType(got, BookmarkLeadChange) != 0 {
		t.Errorf("unchanged leader reported a lead change: %v", got)
	}

	got := bd.Check(testSnapshot(2, 0.6, 0.7))
	if countType(got, BookmarkLeadChange) != 1 {
		t.Fatalf("expected one lead change, got %v", got)
	}
	if got[0].DesignID != "b" || got[0].Generation != 2 {
		t.Errorf("lead change = %+v, want design b at generation 2", got[0])
	}
}

func TestBookmarkSummitOnce(t *testing.T) {
	bd := NewBookmarkDetector(10, 0.9, 0.01)

	got := bd.Check(testSnapshot(0, 0.95, 0.5))
	if countType(got, BookmarkSummit) != 1 {
		t.Fatalf("expected one summit, got %v", got)
	}
	got = bd.Check(testSnapshot(1, 0.97, 0.5))
	if countType(got, BookmarkSummit) != 0 {
		t.Errorf("summit repeated for the same design: %v", got)
	}
	got = bd.Check(testSnapshot(2, 0.97, 0.92))
	if countType(got, BookmarkSummit) != 1 || got[len(got)-1].DesignID != "b" {
		t.Errorf("expected summit for b, got %v", got)
	}
}

func TestBookmarkPhotoFinish(t *testing.T) {
	tests := []struct {
		name    string
		fitness []float64
		want    int
	}{
		{"tie", []float64{0.8, 0.8}, 1},
		{"within margin", []float64{0.80, 0.795}, 1},
		{"clear winner", []float64{0.9, 0.5}, 0},
		{"single design", []float64{0.9}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(5, 2, 0.01)
			got := bd.Check(testSnapshot(5, tt.fitness...))
			if n := countType(got, BookmarkPhotoFinish); n != tt.want {
				t.Errorf("photo finishes = %d, want %d (%v)", n, tt.want, got)
			}
		})
	}

	// Only the final generation can be a photo finish
	bd := NewBookmarkDetector(5, 2, 0.01)
	if got := bd.Check(testSnapshot(4, 0.8, 0.8)); countType(got, BookmarkPhotoFinish) != 0 {
		t.Errorf("photo finish reported before the final generation: %v", got)
	}
}

func TestDetectBookmarksDefaultRace(t *testing.T) {
	cfg := config.Default()
	tl, err := race.NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}

	bookmarks := DetectBookmarks(tl, cfg.Telemetry.SummitThreshold, cfg.Telemetry.PhotoFinishMargin)

	last := -1
	for _, b := range bookmarks {
		if b.Generation < last {
			t.Fatalf("bookmarks out of order: %d after %d", b.Generation, last)
		}
		last = b.Generation
	}

	// Beta and zeta both finish on the summit
	var finish *Bookmark
	for i := range bookmarks {
		if bookmarks[i].Type == BookmarkPhotoFinish {
			finish = &bookmarks[i]
		}
	}
	if finish == nil {
		t.Fatal("expected a photo finish in the default race")
	}
	if finish.Generation != tl.Total() || finish.DesignID != tl.WinnerID() {
		t.Errorf("photo finish = %+v, want winner %s at generation %d", *finish, tl.WinnerID(), tl.Total())
	}
	if countType(bookmarks, BookmarkSummit) < 2 {
		t.Errorf("expected at least two summits, got %d", countType(bookmarks, BookmarkSummit))
	}
}
