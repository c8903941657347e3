package systems

import (
	"errors"
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/pixelrace/components"
	"github.com/pthm-cable/pixelrace/config"
)

// ErrFieldSize is returned when a terrain has no cells.
var ErrFieldSize = errors.New("height field dimensions must be positive")

// Peak is one Gaussian bump of the fitness terrain.
type Peak struct {
	X, Y      float64 // grid coordinates of the centre
	Amplitude float64
	Spread    float64 // standard deviation in cells
}

// Ripple is the low-amplitude sin*cos texture added to every cell.
type Ripple struct {
	Amplitude float64
	Frequency float64
}

// DefaultRipple is the texture used by BuildHeightField.
var DefaultRipple = Ripple{Amplitude: 0.05, Frequency: 0.3}

// Texture is an optional seeded simplex noise layer. Amplitude 0 disables it.
type Texture struct {
	Seed      int64
	Scale     float64
	Amplitude float64
}

// Terrain describes how to generate a height field.
type Terrain struct {
	Width, Height int
	Peaks         []Peak
	Ripple        Ripple
	Texture       Texture
}

// TerrainFromConfig converts the landscape section of a config.
func TerrainFromConfig(lc config.LandscapeConfig) Terrain {
	peaks := make([]Peak, len(lc.Peaks))
	for i, p := range lc.Peaks {
		peaks[i] = Peak{X: p.X, Y: p.Y, Amplitude: p.Amplitude, Spread: p.Spread}
	}
	return Terrain{
		Width:   lc.Width,
		Height:  lc.Height,
		Peaks:   peaks,
		Ripple:  Ripple{Amplitude: lc.RippleAmplitude, Frequency: lc.RippleFrequency},
		Texture: Texture{Seed: lc.Texture.Seed, Scale: lc.Texture.Scale, Amplitude: lc.Texture.Amplitude},
	}
}

// HeightField is an immutable grid of fitness values in [0, 1].
type HeightField struct {
	width, height int
	grid          *mat.Dense // rows are y, columns are x
	optimal       components.Position
}

// BuildHeightField generates a field from Gaussian peaks plus the default ripple.
func BuildHeightField(width, height int, peaks []Peak) (*HeightField, error) {
	return Terrain{Width: width, Height: height, Peaks: peaks, Ripple: DefaultRipple}.Build()
}

// Build generates the height field. Each cell is the sum of every peak's
// Gaussian contribution plus ripple and texture, clamped to [0, 1].
// Overlapping peaks may clip at 1.
func (t Terrain) Build() (*HeightField, error) {
	if t.Width < 1 || t.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrFieldSize, t.Width, t.Height)
	}

	var noise opensimplex.Noise
	if t.Texture.Amplitude != 0 {
		noise = opensimplex.New(t.Texture.Seed)
	}

	grid := mat.NewDense(t.Height, t.Width, nil)
	for i := 0; i < t.Width; i++ {
		for j := 0; j < t.Height; j++ {
			x, y := float64(i), float64(j)

			h := 0.0
			for _, p := range t.Peaks {
				dx := x - p.X
				dy := y - p.Y
				distSq := dx*dx + dy*dy
				h += p.Amplitude * math.Exp(-distSq/(2*p.Spread*p.Spread))
			}

			h += math.Sin(x*t.Ripple.Frequency) * math.Cos(y*t.Ripple.Frequency) * t.Ripple.Amplitude

			if noise != nil {
				h += noise.Eval2(x*t.Texture.Scale, y*t.Texture.Scale) * t.Texture.Amplitude
			}

			grid.Set(j, i, clamp01(h))
		}
	}

	hf := &HeightField{width: t.Width, height: t.Height, grid: grid}
	hf.optimal = hf.findOptimal(t.Peaks)
	return hf, nil
}

// findOptimal returns the highest cell. Clipping can flatten the summit
// into a plateau, so ties go to the cell nearest the tallest peak.
func (hf *HeightField) findOptimal(peaks []Peak) components.Position {
	raw := hf.grid.RawMatrix()
	best := floats.Max(raw.Data)

	var anchor components.Position
	tallest := math.Inf(-1)
	for _, p := range peaks {
		if p.Amplitude > tallest {
			tallest = p.Amplitude
			anchor = components.Position{X: p.X, Y: p.Y}
		}
	}

	var optimal components.Position
	bestDist := math.Inf(1)
	for j := 0; j < hf.height; j++ {
		for i := 0; i < hf.width; i++ {
			if hf.grid.At(j, i) < best {
				continue
			}
			cell := components.Position{X: float64(i), Y: float64(j)}
			if d := cell.Distance(anchor); d < bestDist {
				bestDist = d
				optimal = cell
			}
		}
	}
	return optimal
}

// Width returns the number of columns.
func (hf *HeightField) Width() int { return hf.width }

// Height returns the number of rows.
func (hf *HeightField) Height() int { return hf.height }

// OptimalPosition returns the grid coordinates of the global maximum.
func (hf *HeightField) OptimalPosition() components.Position { return hf.optimal }

// At returns the stored value of grid cell (x, y).
func (hf *HeightField) At(x, y int) float64 {
	return hf.grid.At(y, x)
}

// Rows returns a copy of the field as rows indexed [y][x], for renderers.
func (hf *HeightField) Rows() [][]float64 {
	rows := make([][]float64, hf.height)
	for j := range rows {
		rows[j] = mat.Row(nil, j, hf.grid)
	}
	return rows
}

// Clamp constrains a position to the grid bounds.
func (hf *HeightField) Clamp(p components.Position) components.Position {
	return components.Position{
		X: clamp(p.X, 0, float64(hf.width-1)),
		Y: clamp(p.Y, 0, float64(hf.height-1)),
	}
}

// HeightAt returns the bilinearly interpolated height at continuous
// coordinates. Out-of-range coordinates clamp to the nearest edge.
func (hf *HeightField) HeightAt(x, y float64) float64 {
	cx := clamp(x, 0, float64(hf.width-1))
	cy := clamp(y, 0, float64(hf.height-1))

	x0 := int(math.Floor(cx))
	y0 := int(math.Floor(cy))
	x1 := min(x0+1, hf.width-1)
	y1 := min(y0+1, hf.height-1)

	tx := cx - float64(x0)
	ty := cy - float64(y0)

	h00 := hf.At(x0, y0)
	h10 := hf.At(x1, y0)
	h01 := hf.At(x0, y1)
	h11 := hf.At(x1, y1)

	a := lerp(h00, h10, tx)
	b := lerp(h01, h11, tx)
	return lerp(a, b, ty)
}

// WorldPoint is a renderer-space coordinate. Y is up.
type WorldPoint struct {
	X, Y, Z float64
}

// ToWorld maps grid coordinates into a box of the given extent centred on
// the origin, lifting the point by its height times heightScale.
func (hf *HeightField) ToWorld(x, y, extent, heightScale float64) WorldPoint {
	return WorldPoint{
		X: (x/float64(hf.width) - 0.5) * extent,
		Y: hf.HeightAt(x, y) * heightScale,
		Z: (y/float64(hf.height) - 0.5) * extent,
	}
}
