package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/pixelrace/race"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkLeadChange  BookmarkType = "lead_change"
	BookmarkSummit      BookmarkType = "summit"
	BookmarkPhotoFinish BookmarkType = "photo_finish"
)

// Bookmark marks a generation worth jumping to during playback.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Generation  int          `csv:"generation" json:"generation"`
	DesignID    string       `csv:"design" json:"design_id"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"design", b.DesignID,
		"description", b.Description,
	)
}

// BookmarkDetector finds notable moments while walking a timeline in order.
type BookmarkDetector struct {
	summitThreshold   float64
	photoFinishMargin float64
	total             int

	prevLeader string
	summited   map[string]bool
}

// NewBookmarkDetector creates a detector for a race of total generations.
// A design reaching summitThreshold fitness for the first time is a summit;
// a final top-two gap at or below photoFinishMargin is a photo finish.
func NewBookmarkDetector(total int, summitThreshold, photoFinishMargin float64) *BookmarkDetector {
	return &BookmarkDetector{
		summitThreshold:   summitThreshold,
		photoFinishMargin: photoFinishMargin,
		total:             total,
		summited:          make(map[string]bool),
	}
}

// Check analyzes the next snapshot and returns any triggered bookmarks.
// Snapshots must be passed in generation order.
func (bd *BookmarkDetector) Check(s *race.Snapshot) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkLeadChange(s); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	bookmarks = append(bookmarks, bd.checkSummits(s)...)
	if b := bd.checkPhotoFinish(s); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.prevLeader = s.LeaderID
	return bookmarks
}

func (bd *BookmarkDetector) checkLeadChange(s *race.Snapshot) *Bookmark {
	if bd.prevLeader == "" || s.LeaderID == bd.prevLeader {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkLeadChange,
		Generation:  s.Generation,
		DesignID:    s.LeaderID,
		Description: fmt.Sprintf("%s overtakes %s", s.LeaderID, bd.prevLeader),
	}
}

func (bd *BookmarkDetector) checkSummits(s *race.Snapshot) []Bookmark {
	var bookmarks []Bookmark
	for _, d := range s.Designs {
		if bd.summited[d.ID] || d.Fitness < bd.summitThreshold {
			continue
		}
		bd.summited[d.ID] = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkSummit,
			Generation:  s.Generation,
			DesignID:    d.ID,
			Description: fmt.Sprintf("%s reaches fitness %.3f (%.2f GHz)", d.ID, d.Fitness, d.Resonance),
		})
	}
	return bookmarks
}

func (bd *BookmarkDetector) checkPhotoFinish(s *race.Snapshot) *Bookmark {
	if s.Generation != bd.total || len(s.Designs) < 2 {
		return nil
	}
	r := race.Rank(s)
	gap := r[0].Fitness - r[1].Fitness
	if gap > bd.photoFinishMargin {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPhotoFinish,
		Generation:  s.Generation,
		DesignID:    r[0].DesignID,
		Description: fmt.Sprintf("%s edges %s by %.4f", r[0].DesignID, r[1].DesignID, gap),
	}
}

// DetectBookmarks walks a whole timeline.
func DetectBookmarks(tl *race.Timeline, summitThreshold, photoFinishMargin float64) []Bookmark {
	bd := NewBookmarkDetector(tl.Total(), summitThreshold, photoFinishMargin)
	var all []Bookmark
	for g := 0; g <= tl.Total(); g++ {
		all = append(all, bd.Check(tl.Snapshot(g))...)
	}
	return all
}
