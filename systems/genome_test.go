package systems

import (
	"testing"

	"github.com/pthm-cable/pixelrace/components"
)

func checkerboard() components.Genome {
	var g components.Genome
	for i := range g {
		for j := range g[i] {
			g[i][j] = uint8((i + j) % 2)
		}
	}
	return g
}

func TestMutateKeepsFeed(t *testing.T) {
	m := Mutator{Rate: 0.1}
	var empty components.Genome // feed cells start off

	for _, id := range []string{"design-alpha", "design-beta", "x"} {
		seed := SeedFromID(id)
		for g := 0; g <= 60; g++ {
			out := m.Mutate(empty, g, 60, seed)
			for j := 0; j < components.GenomeSize; j++ {
				if components.IsFeed(0, j) && out[0][j] != 1 {
					t.Fatalf("%s generation %d: feed cell (0,%d) = %d", id, g, j, out[0][j])
				}
			}
		}
	}
}

func TestMutateFinalGenerationIsBase(t *testing.T) {
	m := Mutator{Rate: 0.1}
	base := WithFeed(checkerboard())

	out := m.Mutate(base, 60, 60, SeedFromID("design-gamma"))
	if out != base {
		t.Errorf("final generation should not mutate:\n%s\nvs base\n%s", out, base)
	}
}

func TestMutateDeterministic(t *testing.T) {
	m := Mutator{Rate: 0.1}
	base := checkerboard()
	seed := SeedFromID("design-delta")

	for g := 0; g < 60; g += 5 {
		if m.Mutate(base, g, 60, seed) != m.Mutate(base, g, 60, seed) {
			t.Fatalf("generation %d not reproducible", g)
		}
	}
}

func TestMutateDoesNotTouchBase(t *testing.T) {
	m := Mutator{Rate: 1}
	base := checkerboard()
	before := base

	_ = m.Mutate(base, 0, 60, 1)
	if base != before {
		t.Error("Mutate modified its input")
	}
}

func TestMutationRateDecays(t *testing.T) {
	m := Mutator{Rate: 0.1}

	if p := m.Probability(0, 60); p != 0.1 {
		t.Errorf("Probability(0) = %v, want 0.1", p)
	}
	if p := m.Probability(60, 60); p != 0 {
		t.Errorf("Probability(60) = %v, want 0", p)
	}

	// Count flips over many seeds: early generations flip more than late ones.
	base := checkerboard()
	flips := func(g int) int {
		n := 0
		for s := uint32(0); s < 200; s++ {
			out := m.Mutate(base, g, 60, s)
			for i := 1; i < components.GenomeSize; i++ {
				for j := range out[i] {
					if out[i][j] != base[i][j] {
						n++
					}
				}
			}
		}
		return n
	}
	early, late := flips(0), flips(54)
	if early <= late {
		t.Errorf("expected more flips early (%d) than late (%d)", early, late)
	}
	// 200 seeds * 90 cells * 0.1 = 1800 expected flips at generation 0.
	if early < 1200 || early > 2400 {
		t.Errorf("generation 0 flips = %d, want roughly 1800", early)
	}
}

func TestUnitHashRange(t *testing.T) {
	for s := uint32(0); s < 50; s++ {
		for a := 0; a < 10; a++ {
			v := unitHash(s, a, a*3, a*7)
			if v < 0 || v >= 1 {
				t.Fatalf("unitHash out of range: %v", v)
			}
		}
	}
}
