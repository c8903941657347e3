package race

import (
	"github.com/pthm-cable/pixelrace/components"
	"github.com/pthm-cable/pixelrace/systems"
)

// DesignState is one design's state in one generation.
type DesignState struct {
	ID        string              `json:"id"`
	Position  components.Position `json:"position"`
	Fitness   float64             `json:"fitness"`
	Resonance float64             `json:"resonance"` // GHz
	Curve     systems.Curve       `json:"curve"`
	Genome    components.Genome   `json:"genome"`
}

// PixelsOn counts the enabled pixels of the design's genome.
func (d DesignState) PixelsOn() int {
	return d.Genome.PixelsOn()
}

// Snapshot is the state of every design in one generation.
// Designs are in roster order.
type Snapshot struct {
	Generation int           `json:"generation"`
	Designs    []DesignState `json:"designs"`
	LeaderID   string        `json:"leader_id"`
}

// Design looks up a design's state by id.
func (s *Snapshot) Design(id string) (DesignState, bool) {
	for _, d := range s.Designs {
		if d.ID == id {
			return d, true
		}
	}
	return DesignState{}, false
}

// Leader returns the state of the generation's best design.
func (s *Snapshot) Leader() DesignState {
	d, _ := s.Design(s.LeaderID)
	return d
}

// leaderOf returns the design with strictly greatest fitness; the earliest
// design in roster order wins ties.
func leaderOf(designs []DesignState) string {
	if len(designs) == 0 {
		return ""
	}
	best := 0
	for i := 1; i < len(designs); i++ {
		if designs[i].Fitness > designs[best].Fitness {
			best = i
		}
	}
	return designs[best].ID
}
