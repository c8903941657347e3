// Package components defines the data attached to each racing design.
// The same types serve as ECS components while a timeline is built.
package components

// Design is the immutable identity of a racing antenna design.
type Design struct {
	Index int    // position in the configured roster; breaks fitness ties
	ID    string // stable identifier, e.g. "design-beta"
	Name  string
	Color string // presentation only
	Seed  uint32 // derived from ID; drives jitter phase and mutation draws
	Base  Genome // initial pixel layout
}

// Path is the fixed start and target of a design on the landscape.
type Path struct {
	Start  Position
	Target Position
}

// Trial is a design's state in the generation currently being evaluated.
type Trial struct {
	Generation int
	Position   Position
	Fitness    float64
	Resonance  float64 // GHz
	Genome     Genome
}
