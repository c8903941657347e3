package main

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/pixelrace/components"
	"github.com/pthm-cable/pixelrace/systems"
)

// Evaluation is one probe of the landscape during a climb.
type Evaluation struct {
	DesignID string  `csv:"design"`
	Eval     int     `csv:"eval"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Height   float64 `csv:"height"`
}

// Climb is the result of a local search from one start position.
type Climb struct {
	DesignID string              `csv:"design"`
	Start    components.Position `csv:"-"`
	Peak     components.Position `csv:"-"`
	PeakX    float64             `csv:"peak_x"`
	PeakY    float64             `csv:"peak_y"`
	Height   float64             `csv:"height"`
	Evals    int                 `csv:"evals"`
}

// climber runs Nelder-Mead on the bilinear height field. Coordinates are
// normalized to the unit square and clamped back onto the grid.
type climber struct {
	hf       *systems.HeightField
	maxEvals int
	onEval   func(Evaluation)
}

func (c *climber) denormalize(x []float64) components.Position {
	return c.hf.Clamp(components.Position{
		X: x[0] * float64(c.hf.Width()-1),
		Y: x[1] * float64(c.hf.Height()-1),
	})
}

// climb searches for the nearest local maximum of the field from start.
func (c *climber) climb(id string, start components.Position) (Climb, error) {
	evals := 0
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			p := c.denormalize(x)
			h := c.hf.HeightAt(p.X, p.Y)
			evals++
			if c.onEval != nil {
				c.onEval(Evaluation{DesignID: id, Eval: evals, X: p.X, Y: p.Y, Height: h})
			}
			return -h
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: c.maxEvals,
		Concurrent:      0, // Sequential evaluation
	}
	method := &optimize.NelderMead{SimplexSize: 0.05}

	initX := []float64{
		start.X / float64(c.hf.Width()-1),
		start.Y / float64(c.hf.Height()-1),
	}

	// Hitting the evaluation cap ends with a usable result and no error.
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		return Climb{}, fmt.Errorf("climbing from %s: %w", id, err)
	}

	peak := c.denormalize(result.X)
	return Climb{
		DesignID: id,
		Start:    start,
		Peak:     peak,
		PeakX:    peak.X,
		PeakY:    peak.Y,
		Height:   -result.F,
		Evals:    evals,
	}, nil
}
