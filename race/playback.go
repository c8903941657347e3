package race

import "github.com/pthm-cable/pixelrace/components"

// DefaultTrailLength is the number of recent positions kept per design.
const DefaultTrailLength = 20

// Playback is a cursor over a timeline. It holds no timers: callers decide
// when to Step, and rewinding only moves the cursor.
type Playback struct {
	tl       *Timeline
	gen      int
	trailLen int
	trails   map[string][]components.Position
}

// NewPlayback creates a cursor at generation 0.
func NewPlayback(tl *Timeline, trailLength int) *Playback {
	if trailLength <= 0 {
		trailLength = DefaultTrailLength
	}
	p := &Playback{tl: tl, trailLen: trailLength}
	p.Reset()
	return p
}

// Generation returns the current generation index.
func (p *Playback) Generation() int { return p.gen }

// Current returns the snapshot under the cursor.
func (p *Playback) Current() *Snapshot { return p.tl.Snapshot(p.gen) }

// Done reports whether the cursor reached the final generation.
func (p *Playback) Done() bool { return p.gen >= p.tl.Total() }

// Progress returns the fraction of the race played so far.
func (p *Playback) Progress() float64 {
	return float64(p.gen) / float64(p.tl.Total())
}

// Step advances one generation. It returns false once the race is over.
func (p *Playback) Step() bool {
	if p.Done() {
		return false
	}
	p.gen++
	p.push(p.Current())
	return true
}

// Seek moves the cursor to generation g (clamped) and rebuilds the trails
// from the generations leading up to it.
func (p *Playback) Seek(g int) {
	g = max(0, min(g, p.tl.Total()))
	p.gen = g
	p.trails = make(map[string][]components.Position, len(p.tl.candidates))
	for i := max(0, g-p.trailLen+1); i <= g; i++ {
		p.push(p.tl.Snapshot(i))
	}
}

// Reset rewinds to generation 0.
func (p *Playback) Reset() { p.Seek(0) }

// Trail returns the recent positions of a design, oldest first.
func (p *Playback) Trail(id string) []components.Position {
	return append([]components.Position(nil), p.trails[id]...)
}

// Winner returns the final leader once the race is over.
func (p *Playback) Winner() (DesignState, bool) {
	if !p.Done() {
		return DesignState{}, false
	}
	return p.tl.Final().Leader(), true
}

func (p *Playback) push(s *Snapshot) {
	for _, d := range s.Designs {
		trail := append(p.trails[d.ID], d.Position)
		if len(trail) > p.trailLen {
			trail = trail[len(trail)-p.trailLen:]
		}
		p.trails[d.ID] = trail
	}
}
