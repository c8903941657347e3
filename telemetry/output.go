package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/pixelrace/config"
	"github.com/pthm-cable/pixelrace/race"
	"github.com/pthm-cable/pixelrace/systems"
)

// OutputManager handles structured race output with CSV logging.
type OutputManager struct {
	dir             string
	generationsFile *os.File
	designsFile     *os.File
	bookmarkFile    *os.File

	// Track if headers have been written
	generationsHeaderWritten bool
	designsHeaderWritten     bool
	bookmarkHeaderWritten    bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}
	om.generationsFile = f

	f, err = os.Create(filepath.Join(dir, "designs.csv"))
	if err != nil {
		om.generationsFile.Close()
		return nil, fmt.Errorf("creating designs.csv: %w", err)
	}
	om.designsFile = f

	f, err = os.Create(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		om.generationsFile.Close()
		om.designsFile.Close()
		return nil, fmt.Errorf("creating bookmarks.csv: %w", err)
	}
	om.bookmarkFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// appendCSV writes records, including the header on the first call only.
func appendCSV(f *os.File, headerWritten *bool, records interface{}) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// WriteStats writes a generation stats record to generations.csv.
func (om *OutputManager) WriteStats(stats GenerationStats) error {
	if om == nil {
		return nil
	}
	if err := appendCSV(om.generationsFile, &om.generationsHeaderWritten, []GenerationStats{stats}); err != nil {
		return fmt.Errorf("writing generation stats: %w", err)
	}
	return nil
}

// WriteDesigns writes one row per design to designs.csv.
func (om *OutputManager) WriteDesigns(records []DesignRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if err := appendCSV(om.designsFile, &om.designsHeaderWritten, records); err != nil {
		return fmt.Errorf("writing designs: %w", err)
	}
	return nil
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := appendCSV(om.bookmarkFile, &om.bookmarkHeaderWritten, []Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// WriteRankings saves the final standings to rankings.csv.
func (om *OutputManager) WriteRankings(rankings []race.Ranking) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "rankings.csv"))
	if err != nil {
		return fmt.Errorf("creating rankings.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rankings, f); err != nil {
		return fmt.Errorf("writing rankings: %w", err)
	}
	return nil
}

// LandscapeCell is one row of landscape.csv.
type LandscapeCell struct {
	X      int     `csv:"x"`
	Y      int     `csv:"y"`
	Height float64 `csv:"height"`
}

// WriteLandscape saves every cell of the height field to landscape.csv.
func (om *OutputManager) WriteLandscape(hf *systems.HeightField) error {
	if om == nil || hf == nil {
		return nil
	}
	cells := make([]LandscapeCell, 0, hf.Width()*hf.Height())
	for y := 0; y < hf.Height(); y++ {
		for x := 0; x < hf.Width(); x++ {
			cells = append(cells, LandscapeCell{X: x, Y: y, Height: hf.At(x, y)})
		}
	}

	f, err := os.Create(filepath.Join(om.dir, "landscape.csv"))
	if err != nil {
		return fmt.Errorf("creating landscape.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(cells, f); err != nil {
		return fmt.Errorf("writing landscape: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.generationsFile, om.designsFile, om.bookmarkFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
