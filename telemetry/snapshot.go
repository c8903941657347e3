package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/pixelrace/components"
	"github.com/pthm-cable/pixelrace/race"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is a self-contained JSON dump of one generation, with enough
// landscape context for an external renderer.
type Snapshot struct {
	Version int `json:"version"`

	TotalGenerations int                 `json:"total_generations"`
	FieldWidth       int                 `json:"field_width"`
	FieldHeight      int                 `json:"field_height"`
	OptimalPosition  components.Position `json:"optimal_position"`

	Generation race.Snapshot `json:"generation"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// NewSnapshot captures generation g of a timeline.
func NewSnapshot(tl *race.Timeline, g int) *Snapshot {
	hf := tl.HeightField()
	return &Snapshot{
		Version:          SnapshotVersion,
		TotalGenerations: tl.Total(),
		FieldWidth:       hf.Width(),
		FieldHeight:      hf.Height(),
		OptimalPosition:  hf.OptimalPosition(),
		Generation:       *tl.Snapshot(g),
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%03d", snapshot.Generation.Generation)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%03d_%s", snapshot.Generation.Generation, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	return &snapshot, nil
}
