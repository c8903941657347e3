package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/pixelrace/race"
)

// GenerationStats holds aggregated statistics for one generation.
type GenerationStats struct {
	Generation int    `csv:"generation"`
	LeaderID   string `csv:"leader"`

	LeaderFitness   float64 `csv:"leader_fitness"`
	LeaderResonance float64 `csv:"leader_resonance"`

	// Fitness distribution across designs
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessMin  float64 `csv:"fitness_min"`
	FitnessMax  float64 `csv:"fitness_max"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`

	ResonanceMean float64 `csv:"resonance_mean"`
	PixelsOnMean  float64 `csv:"pixels_on_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeGenerationStats summarizes a snapshot.
func ComputeGenerationStats(s *race.Snapshot) GenerationStats {
	gs := GenerationStats{
		Generation: s.Generation,
		LeaderID:   s.LeaderID,
	}
	n := len(s.Designs)
	if n == 0 {
		return gs
	}

	fitness := make([]float64, n)
	resonance := make([]float64, n)
	pixels := make([]float64, n)
	for i, d := range s.Designs {
		fitness[i] = d.Fitness
		resonance[i] = d.Resonance
		pixels[i] = float64(d.PixelsOn())
	}

	leader := s.Leader()
	gs.LeaderFitness = leader.Fitness
	gs.LeaderResonance = leader.Resonance

	gs.FitnessMean, gs.FitnessStd = stat.PopMeanStdDev(fitness, nil)
	gs.FitnessMin = floats.Min(fitness)
	gs.FitnessMax = floats.Max(fitness)
	gs.ResonanceMean = stat.Mean(resonance, nil)
	gs.PixelsOnMean = stat.Mean(pixels, nil)

	sorted := make([]float64, n)
	copy(sorted, fitness)
	sort.Float64s(sorted)
	gs.FitnessP10 = Percentile(sorted, 0.10)
	gs.FitnessP50 = Percentile(sorted, 0.50)
	gs.FitnessP90 = Percentile(sorted, 0.90)

	return gs
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.String("leader", s.LeaderID),
		slog.Float64("leader_fitness", s.LeaderFitness),
		slog.Float64("leader_resonance", s.LeaderResonance),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_min", s.FitnessMin),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Float64("resonance_mean", s.ResonanceMean),
		slog.Float64("pixels_on_mean", s.PixelsOnMean),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation_stats", slog.Any("stats", s))
}

// DesignRecord is one design's row in designs.csv.
type DesignRecord struct {
	Generation int     `csv:"generation"`
	DesignID   string  `csv:"design"`
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
	Fitness    float64 `csv:"fitness"`
	Resonance  float64 `csv:"resonance_ghz"`
	DipDB      float64 `csv:"dip_db"`  // deepest S11 sample
	DipGHz     float64 `csv:"dip_ghz"` // frequency of the deepest sample
	PixelsOn   int     `csv:"pixels_on"`
	Leader     bool    `csv:"leader"`
}

// DesignRecords flattens a snapshot into CSV rows in roster order.
func DesignRecords(s *race.Snapshot) []DesignRecord {
	records := make([]DesignRecord, len(s.Designs))
	for i, d := range s.Designs {
		r := DesignRecord{
			Generation: s.Generation,
			DesignID:   d.ID,
			X:          d.Position.X,
			Y:          d.Position.Y,
			Fitness:    d.Fitness,
			Resonance:  d.Resonance,
			PixelsOn:   d.PixelsOn(),
			Leader:     d.ID == s.LeaderID,
		}
		if idx := d.Curve.MinIndex(); idx >= 0 {
			r.DipDB = d.Curve.S11[idx]
			r.DipGHz = d.Curve.Frequency[idx]
		}
		records[i] = r
	}
	return records
}
