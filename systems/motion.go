package systems

import (
	"math"

	"github.com/pthm-cable/pixelrace/components"
)

// EaseInOutCubic is the standard cubic ease, symmetric about 0.5.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Motion moves designs from start to target across the generation budget.
type Motion struct {
	MaxX, MaxY      float64 // positions are clamped into [0, MaxX] x [0, MaxY]
	JitterAmplitude float64 // per axis, in cells
	PhaseStep       float64 // jitter phase advance per generation, radians
}

// NewMotion creates a motion model bounded by a height field.
func NewMotion(hf *HeightField, jitterAmplitude, phaseStep float64) Motion {
	return Motion{
		MaxX:            float64(hf.Width() - 1),
		MaxY:            float64(hf.Height() - 1),
		JitterAmplitude: jitterAmplitude,
		PhaseStep:       phaseStep,
	}
}

// Progress returns generation/total clamped to [0, 1].
func Progress(generation, total int) float64 {
	if total <= 0 {
		return 1
	}
	return clamp01(float64(generation) / float64(total))
}

// Jitter returns the undamped wobble of a design at a generation. The
// phase depends only on the design seed and the generation number.
func (m Motion) Jitter(seed uint32, generation int) components.Position {
	phase := float64(seed%256) + float64(generation)*m.PhaseStep
	return components.Position{
		X: math.Sin(phase) * m.JitterAmplitude,
		Y: math.Cos(phase) * m.JitterAmplitude,
	}
}

// PositionAt eases a design from path.Start to path.Target and adds jitter
// scaled by (1 - eased progress), so the final generation lands exactly on
// the target. The result is clamped to the field bounds.
func (m Motion) PositionAt(seed uint32, path components.Path, generation, total int) components.Position {
	eased := EaseInOutCubic(Progress(generation, total))
	base := path.Start.Lerp(path.Target, eased)

	damp := 1 - eased
	if damp > 0 {
		j := m.Jitter(seed, generation)
		base.X += j.X * damp
		base.Y += j.Y * damp
	}

	return components.Position{
		X: clamp(base.X, 0, m.MaxX),
		Y: clamp(base.Y, 0, m.MaxY),
	}
}

// StartPosition is the jitter-free generation 0 position.
func (m Motion) StartPosition(path components.Path) components.Position {
	return components.Position{
		X: clamp(path.Start.X, 0, m.MaxX),
		Y: clamp(path.Start.Y, 0, m.MaxY),
	}
}
