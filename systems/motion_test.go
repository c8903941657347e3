package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/pixelrace/components"
)

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.0625},
		{0.5, 0.5},
		{0.75, 0.9375},
		{1, 1},
	}
	for _, tt := range tests {
		if got := EaseInOutCubic(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("EaseInOutCubic(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// Symmetric about 0.5
	for x := 0.0; x <= 0.5; x += 0.05 {
		a := EaseInOutCubic(x)
		b := 1 - EaseInOutCubic(1-x)
		if math.Abs(a-b) > 1e-12 {
			t.Errorf("not symmetric at %v: %v vs %v", x, a, b)
		}
	}
}

func testMotion() Motion {
	return Motion{MaxX: 49, MaxY: 49, JitterAmplitude: 2, PhaseStep: 0.5}
}

func TestPositionAtEndpoints(t *testing.T) {
	m := testMotion()
	path := components.Path{
		Start:  components.Position{X: 5, Y: 5},
		Target: components.Position{X: 45, Y: 45},
	}
	seed := SeedFromID("design-alpha")

	start := m.PositionAt(seed, path, 0, 60)
	if math.Abs(start.X-5) > 2 || math.Abs(start.Y-5) > 2 {
		t.Errorf("generation 0 at %v, want within jitter of (5,5)", start)
	}

	end := m.PositionAt(seed, path, 60, 60)
	if end.X != 45 || end.Y != 45 {
		t.Errorf("final generation at %v, want exactly (45,45)", end)
	}
}

func TestPositionAtStaysInBounds(t *testing.T) {
	m := testMotion()
	path := components.Path{
		Start:  components.Position{X: 0, Y: 49},
		Target: components.Position{X: 49, Y: 0},
	}

	for _, id := range []string{"a", "b", "design-gamma", "design-zeta"} {
		seed := SeedFromID(id)
		for g := 0; g <= 60; g++ {
			p := m.PositionAt(seed, path, g, 60)
			if p.X < 0 || p.X > 49 || p.Y < 0 || p.Y > 49 {
				t.Fatalf("%s generation %d out of bounds: %v", id, g, p)
			}
		}
	}
}

func TestPositionAtJitterDecays(t *testing.T) {
	m := testMotion()
	path := components.Path{
		Start:  components.Position{X: 20, Y: 20},
		Target: components.Position{X: 30, Y: 30},
	}
	seed := SeedFromID("design-beta")

	for g := 0; g <= 60; g++ {
		eased := EaseInOutCubic(Progress(g, 60))
		ideal := path.Start.Lerp(path.Target, eased)
		p := m.PositionAt(seed, path, g, 60)
		limit := 2*(1-eased) + 1e-9
		if math.Abs(p.X-ideal.X) > limit || math.Abs(p.Y-ideal.Y) > limit {
			t.Errorf("generation %d: offset (%v,%v) exceeds %v", g, p.X-ideal.X, p.Y-ideal.Y, limit)
		}
	}
}

func TestPositionAtDeterministic(t *testing.T) {
	m := testMotion()
	path := components.Path{Start: components.Position{X: 10, Y: 25}, Target: components.Position{X: 33, Y: 33}}
	seed := SeedFromID("design-zeta")

	for g := 0; g <= 60; g += 7 {
		if a, b := m.PositionAt(seed, path, g, 60), m.PositionAt(seed, path, g, 60); a != b {
			t.Errorf("generation %d not reproducible: %v vs %v", g, a, b)
		}
	}
}

func TestStartPositionClamps(t *testing.T) {
	m := testMotion()
	p := m.StartPosition(components.Path{Start: components.Position{X: -3, Y: 60}})
	if p.X != 0 || p.Y != 49 {
		t.Errorf("StartPosition = %v, want {0 49}", p)
	}
}

func TestProgress(t *testing.T) {
	if Progress(0, 60) != 0 || Progress(60, 60) != 1 || Progress(90, 60) != 1 || Progress(-1, 60) != 0 {
		t.Error("Progress should clamp to [0,1]")
	}
	if math.Abs(Progress(15, 60)-0.25) > 1e-12 {
		t.Errorf("Progress(15,60) = %v, want 0.25", Progress(15, 60))
	}
}
