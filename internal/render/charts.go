package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
	"github.com/fluidx-lab/musclesim/internal/muscle"
)

func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(22)
	p.Title.Padding = vg.Points(12)

	p.X.Label.TextStyle.Font.Size = vg.Points(18)
	p.Y.Label.TextStyle.Font.Size = vg.Points(18)
	p.X.Label.Padding = vg.Points(10)
	p.Y.Label.Padding = vg.Points(10)

	p.X.LineStyle.Width = vg.Points(2.2)
	p.Y.LineStyle.Width = vg.Points(2.2)
	p.X.Padding = vg.Points(20)
	p.Y.Padding = vg.Points(20)

	p.X.Tick.LineStyle.Width = vg.Points(2.0)
	p.Y.Tick.LineStyle.Width = vg.Points(2.0)
	p.X.Tick.Length = vg.Points(8)
	p.Y.Tick.Length = vg.Points(8)

	p.X.Tick.Label.Font.Size = vg.Points(14)
	p.Y.Tick.Label.Font.Size = vg.Points(14)

	p.X.Tick.Marker = limitedTicker(10, "%.1f")
	p.Y.Tick.Marker = limitedTicker(10, "%.2f")
}

func savePlotPNG(p *plot.Plot, widthIn, heightIn float64, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	w := vg.Length(widthIn) * vg.Inch
	h := vg.Length(heightIn) * vg.Inch

	c := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(150),
	)
	dc := draw.New(c)
	p.Draw(dc)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(f); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}

func saveLinePlot(outDir, filename, title, ylabel string, xs, ys []float64) error {
	if len(xs) != len(ys) || len(xs) == 0 {
		return fmt.Errorf("plot data invalid")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time [s]"
	p.Y.Label.Text = ylabel
	stylePlot(p)

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2.0)
	p.Add(line)

	return savePlotPNG(p, 8.0, 5.0, filepath.Join(outDir, filename))
}

// SaveCharts writes summary plots of the run: length, strain, radius,
// velocity and pressure over time.
func SaveCharts(outDir string, result *dynamo.Result, p muscle.Params) error {
	n := result.Samples()
	if n == 0 {
		return fmt.Errorf("nothing to chart: empty trajectory")
	}

	lengths := result.Component(0)
	velocities := result.Component(1)
	strains := make([]float64, n)
	radii := make([]float64, n)
	pressures := make([]float64, n)
	for i := 0; i < n; i++ {
		g := p.GeometryAt(lengths[i])
		strains[i] = g.Strain
		radii[i] = g.Radius * 1000
		pressures[i] = result.Pressures[i] / 1e6
	}

	charts := []struct {
		file, title, ylabel string
		ys                  []float64
	}{
		{"length.png", "Muscle Length", "length [m]", lengths},
		{"strain.png", "Axial Strain", "strain [-]", strains},
		{"radius.png", "Wall Radius", "radius [mm]", radii},
		{"velocity.png", "End Velocity", "velocity [m/s]", velocities},
		{"pressure.png", "Drive Pressure", "pressure [MPa]", pressures},
	}
	for _, c := range charts {
		if err := saveLinePlot(outDir, c.file, c.title, c.ylabel, result.Times, c.ys); err != nil {
			return fmt.Errorf("chart %s: %w", c.file, err)
		}
	}
	return nil
}
