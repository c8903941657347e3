// Package main renders race charts to PNG: the S11 curves of every design
// at one generation, or each design's fitness over the whole race.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pthm-cable/pixelrace/config"
	"github.com/pthm-cable/pixelrace/race"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", "s11", "Chart to draw: s11 or fitness")
	generation := flag.Int("generation", -1, "Generation for the s11 chart (-1 = final)")
	out := flag.String("out", "race.png", "Output PNG path")
	width := flag.Float64("width", 8, "Image width in inches")
	height := flag.Float64("height", 5, "Image height in inches")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	tl, err := race.NewFromConfig(config.Cfg())
	if err != nil {
		log.Fatalf("failed to build race: %v", err)
	}

	var p *plot.Plot
	switch *mode {
	case "s11":
		g := *generation
		if g < 0 {
			g = tl.Total()
		}
		p, err = s11Plot(tl, g)
	case "fitness":
		p, err = fitnessPlot(tl)
	default:
		log.Fatalf("unknown mode %q (want s11 or fitness)", *mode)
	}
	if err != nil {
		log.Fatalf("failed to build plot: %v", err)
	}

	if err := p.Save(vg.Length(*width)*vg.Inch, vg.Length(*height)*vg.Inch, *out); err != nil {
		log.Fatalf("failed to save plot: %v", err)
	}
	log.Printf("wrote %s", *out)
}

// s11Plot draws the return loss of every design at generation g.
func s11Plot(tl *race.Timeline, g int) (*plot.Plot, error) {
	snap := tl.Snapshot(g)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("S11 at generation %d (leader %s)", snap.Generation, snap.LeaderID)
	p.X.Label.Text = "Frequency (GHz)"
	p.Y.Label.Text = "S11 (dB)"
	p.Add(plotter.NewGrid())

	for i, d := range snap.Designs {
		pts := make(plotter.XYs, len(d.Curve.S11))
		for j := range d.Curve.S11 {
			pts[j].X = d.Curve.Frequency[j]
			pts[j].Y = d.Curve.S11[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = designColor(tl.Candidates()[i].Design.Color)
		if d.ID == snap.LeaderID {
			line.Width = vg.Points(2.5)
		}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s %.2f GHz", d.ID, d.Resonance), line)
	}

	// Mark the target resonance
	target := tl.Synthesizer().Band().TargetFrequency
	marker, err := plotter.NewLine(plotter.XYs{{X: target, Y: p.Y.Min}, {X: target, Y: 0}})
	if err != nil {
		return nil, err
	}
	marker.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(marker)

	p.Legend.Top = false
	p.Legend.Left = true
	return p, nil
}

// fitnessPlot draws every design's fitness across the race.
func fitnessPlot(tl *race.Timeline) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Fitness over %d generations (winner %s)", tl.Total(), tl.WinnerID())
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Add(plotter.NewGrid())

	for i, c := range tl.Candidates() {
		pts := make(plotter.XYs, tl.Len())
		for g := 0; g <= tl.Total(); g++ {
			pts[g].X = float64(g)
			pts[g].Y = tl.Snapshot(g).Designs[i].Fitness
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = designColor(c.Design.Color)
		p.Add(line)
		p.Legend.Add(c.Design.Name, line)
	}

	p.Legend.Top = false
	p.Legend.Left = false
	return p, nil
}

// designColor parses "#rrggbb", falling back to black.
func designColor(hex string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
