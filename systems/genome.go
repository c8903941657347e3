package systems

import "github.com/pthm-cable/pixelrace/components"

// Mutator produces cosmetic per-generation variants of a pixel genome.
// Its output never feeds back into fitness.
type Mutator struct {
	Rate float64 // flip probability at generation 0
}

// Probability returns the flip probability at a generation. It decays
// linearly from Rate to 0 at the final generation.
func (m Mutator) Probability(generation, total int) float64 {
	return m.Rate * (1 - Progress(generation, total))
}

// Mutate returns base with cells flipped by a deterministic draw keyed on
// (seed, generation, row, col). Feed cells are always 1.
func (m Mutator) Mutate(base components.Genome, generation, total int, seed uint32) components.Genome {
	p := m.Probability(generation, total)

	out := base
	for i := range out {
		for j := range out[i] {
			if components.IsFeed(i, j) {
				out[i][j] = 1
				continue
			}
			if p > 0 && unitHash(seed, generation, i, j) < p {
				out[i][j] ^= 1
			}
		}
	}
	return out
}

// WithFeed returns base with the feed cells forced on.
func WithFeed(base components.Genome) components.Genome {
	out := base
	for i := range out {
		for j := range out[i] {
			if components.IsFeed(i, j) {
				out[i][j] = 1
			}
		}
	}
	return out
}
