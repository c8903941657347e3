package systems

import (
	"math"
	"testing"
)

func TestResonanceFromFitness(t *testing.T) {
	tests := []struct {
		fitness float64
		want    float64
	}{
		{0, 4.9},
		{1, 2.16},
		{0.5, 3.53},
		{-0.5, 4.9}, // clamped
		{1.5, 2.16}, // clamped
	}

	for _, tt := range tests {
		got := ResonanceFromFitness(tt.fitness)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ResonanceFromFitness(%v) = %v, want %v", tt.fitness, got, tt.want)
		}
	}
}

func TestResonanceMonotonic(t *testing.T) {
	prev := ResonanceFromFitness(0)
	for f := 0.01; f <= 1.0; f += 0.01 {
		r := ResonanceFromFitness(f)
		if r >= prev {
			t.Fatalf("resonance not decreasing at fitness %v: %v >= %v", f, r, prev)
		}
		prev = r
	}
}

func TestResponseCurveSamples(t *testing.T) {
	for _, f := range []float64{0, 0.3, 1, 2, -1} {
		c := ResponseCurve(f)
		if len(c.Frequency) != 100 || len(c.S11) != 100 {
			t.Fatalf("fitness %v: got %d/%d samples, want 100", f, len(c.Frequency), len(c.S11))
		}
		if math.Abs(c.Frequency[0]-1.5) > 1e-12 || math.Abs(c.Frequency[99]-5.5) > 1e-12 {
			t.Errorf("frequency span = [%v, %v], want [1.5, 5.5]", c.Frequency[0], c.Frequency[99])
		}
		for i := 1; i < len(c.Frequency); i++ {
			if c.Frequency[i] <= c.Frequency[i-1] {
				t.Fatalf("frequency not strictly increasing at %d", i)
			}
		}
	}
}

func TestResponseCurveDip(t *testing.T) {
	tests := []struct {
		fitness   float64
		minDepth  float64 // dip should reach at least this deep
		resonance float64
	}{
		{0, -15, 4.9},
		{1, -30, 2.16},
	}

	for _, tt := range tests {
		c := ResponseCurve(tt.fitness)
		idx := c.MinIndex()
		if c.S11[idx] > tt.minDepth+3 {
			t.Errorf("fitness %v: deepest point %v dB, want near %v", tt.fitness, c.S11[idx], tt.minDepth)
		}
		// Dip sits within one bandwidth of the resonance.
		if math.Abs(c.Frequency[idx]-tt.resonance) > 0.25 {
			t.Errorf("fitness %v: dip at %v GHz, want near %v", tt.fitness, c.Frequency[idx], tt.resonance)
		}
	}
}

func TestResponseCurveDeterministic(t *testing.T) {
	a := ResponseCurve(0.42)
	b := ResponseCurve(0.42)
	for i := range a.S11 {
		if a.S11[i] != b.S11[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a.S11[i], b.S11[i])
		}
	}

	// Curves own their frequency slices.
	a.Frequency[0] = 99
	if b.Frequency[0] == 99 {
		t.Error("curves share frequency storage")
	}
}

func TestCustomBandSampleCount(t *testing.T) {
	band := DefaultBand
	band.Samples = 17
	s := NewSynthesizer(band)
	c := s.Curve(0.5)
	if len(c.Frequency) != 17 || len(c.S11) != 17 {
		t.Errorf("got %d samples, want 17", len(c.S11))
	}
}
