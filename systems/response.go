package systems

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/pixelrace/config"
)

// Band describes the synthetic S11 response model.
type Band struct {
	StartFrequency  float64 // resonance in GHz at fitness 0
	TargetFrequency float64 // resonance in GHz at fitness 1
	MinFrequency    float64
	MaxFrequency    float64
	Samples         int
	BaselineDB      float64
	ShallowDepthDB  float64 // dip depth at fitness 0
	DeepDepthDB     float64 // dip depth at fitness 1
	WideBandwidth   float64 // GHz at fitness 0
	NarrowBandwidth float64 // GHz at fitness 1
	RippleDB        float64
	RippleFrequency float64
}

// DefaultBand is the reference response model: a dip that moves from
// 4.9 GHz toward the 2.16 GHz target over a 1.5-5.5 GHz sweep.
var DefaultBand = Band{
	StartFrequency:  4.9,
	TargetFrequency: 2.16,
	MinFrequency:    1.5,
	MaxFrequency:    5.5,
	Samples:         100,
	BaselineDB:      -3,
	ShallowDepthDB:  -15,
	DeepDepthDB:     -30,
	WideBandwidth:   0.25,
	NarrowBandwidth: 0.15,
	RippleDB:        0.5,
	RippleFrequency: 8,
}

// BandFromConfig converts the response section of a config.
func BandFromConfig(rc config.ResponseConfig) Band {
	return Band{
		StartFrequency:  rc.StartFrequency,
		TargetFrequency: rc.TargetFrequency,
		MinFrequency:    rc.MinFrequency,
		MaxFrequency:    rc.MaxFrequency,
		Samples:         rc.Samples,
		BaselineDB:      rc.BaselineDB,
		ShallowDepthDB:  rc.ShallowDepthDB,
		DeepDepthDB:     rc.DeepDepthDB,
		WideBandwidth:   rc.WideBandwidth,
		NarrowBandwidth: rc.NarrowBandwidth,
		RippleDB:        rc.RippleDB,
		RippleFrequency: rc.RippleFrequency,
	}
}

// Curve is a sampled frequency response.
type Curve struct {
	Frequency []float64 `json:"frequency"` // GHz, strictly increasing
	S11       []float64 `json:"s11"`       // dB
}

// MinIndex returns the index of the deepest point of the curve.
func (c Curve) MinIndex() int {
	if len(c.S11) == 0 {
		return -1
	}
	return floats.MinIdx(c.S11)
}

// Synthesizer maps fitness to resonance and S11 curves.
type Synthesizer struct {
	band  Band
	freqs []float64
}

// NewSynthesizer precomputes the frequency samples of a band.
func NewSynthesizer(b Band) *Synthesizer {
	n := max(b.Samples, 2)
	freqs := floats.Span(make([]float64, n), b.MinFrequency, b.MaxFrequency)
	return &Synthesizer{band: b, freqs: freqs}
}

// Band returns the model parameters.
func (s *Synthesizer) Band() Band { return s.band }

// Frequencies returns a copy of the frequency samples.
func (s *Synthesizer) Frequencies() []float64 {
	return append([]float64(nil), s.freqs...)
}

// Resonance interpolates linearly from the start frequency at fitness 0
// to the target frequency at fitness 1. Fitness is clamped to [0, 1].
func (s *Synthesizer) Resonance(fitness float64) float64 {
	f := clamp01(fitness)
	return lerp(s.band.StartFrequency, s.band.TargetFrequency, f)
}

// Curve synthesizes the S11 response for a fitness value: a Gaussian dip
// at the resonance that deepens and narrows as fitness rises, over a flat
// baseline with a fixed ripple. The output always has Samples points.
func (s *Synthesizer) Curve(fitness float64) Curve {
	f := clamp01(fitness)
	b := s.band

	resonance := s.Resonance(f)
	depth := lerp(b.ShallowDepthDB, b.DeepDepthDB, f)
	bandwidth := lerp(b.WideBandwidth, b.NarrowBandwidth, f)
	twoSigmaSq := 2 * bandwidth * bandwidth

	s11 := make([]float64, len(s.freqs))
	for i, freq := range s.freqs {
		delta := freq - resonance
		dip := (depth - b.BaselineDB) * math.Exp(-(delta*delta)/twoSigmaSq)
		ripple := math.Sin(freq*b.RippleFrequency) * b.RippleDB
		s11[i] = b.BaselineDB + dip + ripple
	}

	return Curve{Frequency: s.Frequencies(), S11: s11}
}

var defaultSynth = NewSynthesizer(DefaultBand)

// ResonanceFromFitness maps fitness to resonance using DefaultBand.
func ResonanceFromFitness(fitness float64) float64 {
	return defaultSynth.Resonance(fitness)
}

// ResponseCurve synthesizes an S11 curve using DefaultBand.
func ResponseCurve(fitness float64) Curve {
	return defaultSynth.Curve(fitness)
}
