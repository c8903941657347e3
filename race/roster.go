package race

import (
	"fmt"

	"github.com/pthm-cable/pixelrace/components"
	"github.com/pthm-cable/pixelrace/config"
	"github.com/pthm-cable/pixelrace/systems"
)

// Candidate is one design entered in the race.
type Candidate struct {
	Design components.Design
	Path   components.Path
}

// NewCandidate validates a pixel layout and derives the design seed.
func NewCandidate(id, name, color string, start, target components.Position, pixels [][]int) (Candidate, error) {
	base, err := components.GenomeFromRows(pixels)
	if err != nil {
		return Candidate{}, fmt.Errorf("design %q: %w", id, err)
	}
	return Candidate{
		Design: components.Design{
			ID:    id,
			Name:  name,
			Color: color,
			Seed:  systems.SeedFromID(id),
			Base:  base,
		},
		Path: components.Path{Start: start, Target: target},
	}, nil
}

// RosterFromConfig builds candidates in configured order.
func RosterFromConfig(designs []config.DesignConfig) ([]Candidate, error) {
	roster := make([]Candidate, 0, len(designs))
	for _, d := range designs {
		c, err := NewCandidate(
			d.ID, d.Name, d.Color,
			components.Position{X: d.Start.X, Y: d.Start.Y},
			components.Position{X: d.Target.X, Y: d.Target.Y},
			d.Pixels,
		)
		if err != nil {
			return nil, err
		}
		roster = append(roster, c)
	}
	return roster, nil
}
