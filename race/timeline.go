// Package race precomputes a generation-by-generation timeline of designs
// climbing the fitness landscape.
package race

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pixelrace/components"
	"github.com/pthm-cable/pixelrace/config"
	"github.com/pthm-cable/pixelrace/systems"
)

// Configuration errors. A timeline is never built partially.
var (
	ErrNoDesigns      = errors.New("race needs at least one design")
	ErrBadGenerations = errors.New("generation count must be positive")
	ErrDuplicateID    = errors.New("duplicate design id")
)

// Options control how designs move and mutate.
type Options struct {
	Generations     int
	JitterAmplitude float64
	JitterPhaseStep float64
	MutationRate    float64
	AnchorStart     bool // generation 0 is the exact start position and base genome
}

// DefaultOptions matches the reference race.
var DefaultOptions = Options{
	Generations:     60,
	JitterAmplitude: 2,
	JitterPhaseStep: 0.5,
	MutationRate:    0.1,
	AnchorStart:     true,
}

// OptionsFromConfig converts the race section of a config.
func OptionsFromConfig(rc config.RaceConfig) Options {
	return Options{
		Generations:     rc.Generations,
		JitterAmplitude: rc.JitterAmplitude,
		JitterPhaseStep: rc.JitterPhaseStep,
		MutationRate:    rc.MutationRate,
		AnchorStart:     rc.AnchorStart,
	}
}

// Timeline is the complete, immutable sequence of generation snapshots.
// It is built once and only read afterwards.
type Timeline struct {
	field      *systems.HeightField
	synth      *systems.Synthesizer
	candidates []Candidate
	total      int
	snapshots  []Snapshot
	rankings   []Ranking
}

// NewFromConfig builds the landscape, roster and timeline described by cfg.
func NewFromConfig(cfg *config.Config) (*Timeline, error) {
	field, err := systems.TerrainFromConfig(cfg.Landscape).Build()
	if err != nil {
		return nil, fmt.Errorf("building landscape: %w", err)
	}
	roster, err := RosterFromConfig(cfg.Designs)
	if err != nil {
		return nil, fmt.Errorf("building roster: %w", err)
	}
	synth := systems.NewSynthesizer(systems.BandFromConfig(cfg.Response))
	return Build(roster, field, synth, OptionsFromConfig(cfg.Race))
}

// Build evaluates every candidate for generations 0..opts.Generations
// inclusive and returns the finished timeline.
func Build(candidates []Candidate, field *systems.HeightField, synth *systems.Synthesizer, opts Options) (*Timeline, error) {
	if len(candidates) == 0 {
		return nil, ErrNoDesigns
	}
	if opts.Generations <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadGenerations, opts.Generations)
	}
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if seen[c.Design.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, c.Design.ID)
		}
		seen[c.Design.ID] = true
	}

	b := newBuilder(field, synth, opts)
	for i, c := range candidates {
		b.spawn(i, c)
	}

	snapshots := make([]Snapshot, 0, opts.Generations+1)
	for g := 0; g <= opts.Generations; g++ {
		b.step(g)
		snapshots = append(snapshots, b.collect(g, len(candidates)))
	}

	tl := &Timeline{
		field:      field,
		synth:      synth,
		candidates: append([]Candidate(nil), candidates...),
		total:      opts.Generations,
		snapshots:  snapshots,
	}
	tl.rankings = Rank(&tl.snapshots[tl.total])
	return tl, nil
}

// builder steps an ECS world of design entities one generation at a time.
type builder struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Design, components.Path, components.Trial]
	filter *ecs.Filter3[components.Design, components.Path, components.Trial]

	field   *systems.HeightField
	synth   *systems.Synthesizer
	motion  systems.Motion
	mutator systems.Mutator
	opts    Options
}

func newBuilder(field *systems.HeightField, synth *systems.Synthesizer, opts Options) *builder {
	world := ecs.NewWorld()
	return &builder{
		world:   world,
		mapper:  ecs.NewMap3[components.Design, components.Path, components.Trial](world),
		filter:  ecs.NewFilter3[components.Design, components.Path, components.Trial](world),
		field:   field,
		synth:   synth,
		motion:  systems.NewMotion(field, opts.JitterAmplitude, opts.JitterPhaseStep),
		mutator: systems.Mutator{Rate: opts.MutationRate},
		opts:    opts,
	}
}

// spawn creates the entity for a candidate. The roster index is kept on
// the Design so snapshots list designs in roster order.
func (b *builder) spawn(index int, c Candidate) {
	design := c.Design
	design.Index = index
	if design.Seed == 0 {
		design.Seed = systems.SeedFromID(design.ID)
	}
	path := c.Path
	trial := components.Trial{Generation: -1}
	b.mapper.NewEntity(&design, &path, &trial)
}

// step moves every design to generation g. Fitness is always read off the
// landscape at the new position; the genome never influences it.
func (b *builder) step(g int) {
	total := b.opts.Generations
	anchored := b.opts.AnchorStart && g == 0

	query := b.filter.Query()
	for query.Next() {
		design, path, trial := query.Get()

		trial.Generation = g
		if anchored {
			trial.Position = b.motion.StartPosition(*path)
			trial.Genome = systems.WithFeed(design.Base)
		} else {
			trial.Position = b.motion.PositionAt(design.Seed, *path, g, total)
			trial.Genome = b.mutator.Mutate(design.Base, g, total, design.Seed)
		}
		trial.Fitness = b.field.HeightAt(trial.Position.X, trial.Position.Y)
		trial.Resonance = b.synth.Resonance(trial.Fitness)
	}
}

// collect copies the world state into an immutable snapshot.
func (b *builder) collect(g, count int) Snapshot {
	designs := make([]DesignState, count)

	query := b.filter.Query()
	for query.Next() {
		design, _, trial := query.Get()
		designs[design.Index] = DesignState{
			ID:        design.ID,
			Position:  trial.Position,
			Fitness:   trial.Fitness,
			Resonance: trial.Resonance,
			Curve:     b.synth.Curve(trial.Fitness),
			Genome:    trial.Genome,
		}
	}

	return Snapshot{
		Generation: g,
		Designs:    designs,
		LeaderID:   leaderOf(designs),
	}
}

// Total returns the final generation index.
func (tl *Timeline) Total() int { return tl.total }

// Len returns the number of snapshots, Total()+1.
func (tl *Timeline) Len() int { return len(tl.snapshots) }

// HeightField returns the landscape the race runs on.
func (tl *Timeline) HeightField() *systems.HeightField { return tl.field }

// HeightAt samples the landscape.
func (tl *Timeline) HeightAt(x, y float64) float64 { return tl.field.HeightAt(x, y) }

// Synthesizer returns the response model used for every snapshot.
func (tl *Timeline) Synthesizer() *systems.Synthesizer { return tl.synth }

// Candidates returns a copy of the roster.
func (tl *Timeline) Candidates() []Candidate {
	return append([]Candidate(nil), tl.candidates...)
}

// Candidate looks up a roster entry by id.
func (tl *Timeline) Candidate(id string) (Candidate, bool) {
	for _, c := range tl.candidates {
		if c.Design.ID == id {
			return c, true
		}
	}
	return Candidate{}, false
}

// Snapshot returns generation g, clamped to [0, Total()].
// The returned snapshot must not be modified.
func (tl *Timeline) Snapshot(g int) *Snapshot {
	g = max(0, min(g, tl.total))
	return &tl.snapshots[g]
}

// Final returns the last generation.
func (tl *Timeline) Final() *Snapshot { return &tl.snapshots[tl.total] }

// WinnerID returns the leader of the final generation.
func (tl *Timeline) WinnerID() string { return tl.Final().LeaderID }

// FinalRankings returns the final generation ordered by descending fitness.
func (tl *Timeline) FinalRankings() []Ranking {
	return append([]Ranking(nil), tl.rankings...)
}

// Rank returns a design's final rank, or 0 if the id is unknown.
func (tl *Timeline) Rank(id string) int {
	for _, r := range tl.rankings {
		if r.DesignID == id {
			return r.Rank
		}
	}
	return 0
}
