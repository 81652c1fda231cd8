package render

import (
	"fmt"
	"image"
	"math"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
	"github.com/fluidx-lab/musclesim/internal/muscle"
)

// FrameSample is one video frame's worth of trajectory data.
type FrameSample struct {
	Index    int
	Time     float64
	Length   float64
	Velocity float64
	Pressure float64
	Geo      muscle.Geometry
}

// Downsample picks one trajectory sample per video frame. Frame f shows
// the sample nearest t = f/fps; a 25 s run at 30 fps yields 750 frames.
func Downsample(result *dynamo.Result, p muscle.Params, fps int) []FrameSample {
	n := result.Samples()
	if n == 0 || fps <= 0 {
		return nil
	}

	dt := 0.0
	if n >= 2 {
		dt = result.Times[1] - result.Times[0]
	}
	duration := float64(n) * dt

	frames := int(math.Round(duration * float64(fps)))
	if frames < 1 {
		frames = 1
	}

	out := make([]FrameSample, 0, frames)
	for f := 0; f < frames; f++ {
		idx := 0
		if dt > 0 {
			idx = int(math.Round(float64(f) / float64(fps) / dt))
			if idx >= n {
				idx = n - 1
			}
		}
		length := result.States[idx][0]
		out = append(out, FrameSample{
			Index:    f,
			Time:     result.Times[idx],
			Length:   length,
			Velocity: result.States[idx][1],
			Pressure: result.Pressures[idx],
			Geo:      p.GeometryAt(length),
		})
	}
	return out
}

// Scene lays out the frame: muscle side view in the upper part, numeric
// readouts top left, and a full-run timeline strip with a moving cursor
// at the bottom. The strip polylines are precomputed once per run.
type Scene struct {
	W, H  int
	Rings int

	params   muscle.Params
	duration float64

	scale   float64 // px per m
	anchorX float64
	centerY float64

	strip      image.Rectangle
	stripXs    []float64
	pressureYs []float64
	strainYs   []float64
	zeroStrain float64 // y of strain 0 inside the strip, NaN if outside
}

func NewScene(p muscle.Params, result *dynamo.Result, w, h, rings int) *Scene {
	s := &Scene{
		W:      w,
		H:      h,
		Rings:  rings,
		params: p,
	}

	n := result.Samples()
	dt := 0.0
	if n >= 2 {
		dt = result.Times[1] - result.Times[0]
	}
	s.duration = float64(n) * dt

	// The muscle must fit at its longest, plus the load block.
	maxLen := 1.2 * p.RestLength
	if p.MaxStroke > 0 {
		maxLen = p.MaxStroke * p.RestLength
	}
	s.anchorX = 0.13 * float64(w)
	s.centerY = 0.38 * float64(h)
	s.scale = 0.62 * float64(w) / maxLen

	s.strip = image.Rect(int(0.08*float64(w)), int(0.60*float64(h)), int(0.94*float64(w)), int(0.90*float64(h)))
	s.buildStrip(result)
	return s
}

// buildStrip projects the full-resolution pressure and strain series
// onto the strip, one point per pixel column.
func (s *Scene) buildStrip(result *dynamo.Result) {
	n := result.Samples()
	cols := s.strip.Dx()
	if n == 0 || cols < 2 {
		return
	}

	pMax := 0.0
	sMin, sMax := math.Inf(1), math.Inf(-1)
	strain := make([]float64, n)
	for i := 0; i < n; i++ {
		if result.Pressures[i] > pMax {
			pMax = result.Pressures[i]
		}
		strain[i] = s.params.GeometryAt(result.States[i][0]).Strain
		if strain[i] < sMin {
			sMin = strain[i]
		}
		if strain[i] > sMax {
			sMax = strain[i]
		}
	}
	if pMax <= 0 {
		pMax = 1
	}
	pad := 0.1 * (sMax - sMin)
	if pad < 1e-9 {
		pad = 0.05
	}
	sLo, sHi := sMin-pad, sMax+pad

	s.stripXs = make([]float64, cols)
	s.pressureYs = make([]float64, cols)
	s.strainYs = make([]float64, cols)
	for c := 0; c < cols; c++ {
		idx := c * (n - 1) / (cols - 1)
		s.stripXs[c] = float64(s.strip.Min.X + c)
		s.pressureYs[c] = s.mapY(result.Pressures[idx], 0, 1.1*pMax)
		s.strainYs[c] = s.mapY(strain[idx], sLo, sHi)
	}

	s.zeroStrain = math.NaN()
	if sLo < 0 && sHi > 0 {
		s.zeroStrain = s.mapY(0, sLo, sHi)
	}
}

func (s *Scene) mapY(v, lo, hi float64) float64 {
	frac := (v - lo) / (hi - lo)
	return float64(s.strip.Max.Y) - frac*float64(s.strip.Dy())
}

// DrawFrame renders one frame into img, which must match the scene size.
func (s *Scene) DrawFrame(img *image.RGBA, f FrameSample) {
	fill(img, colBackground)
	s.drawMuscle(img, f)
	s.drawReadouts(img, f)
	s.drawStrip(img, f)
}

func (s *Scene) drawMuscle(img *image.RGBA, f FrameSample) {
	lengthPx := f.Length * s.scale
	radiusPx := f.Geo.Radius * s.scale
	cy := s.centerY
	endX := s.anchorX + lengthPx

	// anchor wall
	drawRectFilled(img, s.anchorX-9, cy, 18, 0.24*float64(s.H), colAnchor)

	// tube body with a rounded free end
	drawRectFilled(img, s.anchorX+lengthPx/2, cy, lengthPx, 2*radiusPx, colMuscle)
	drawCircleFilled(img, endX, cy, radiusPx, colMuscle)

	// rings ride along with the wall as it contracts
	for i := 1; i <= s.Rings; i++ {
		x := s.anchorX + lengthPx*float64(i)/float64(s.Rings+1)
		drawRectFilled(img, x, cy, 3, 2*radiusPx+6, colRing)
	}

	// rod and load block hanging off the free end
	blockHalf := 20.0
	rodLen := 16.0
	drawThickLine(img, endX+radiusPx, cy, endX+radiusPx+rodLen, cy, 3, colAnchor)
	drawRectFilled(img, endX+radiusPx+rodLen+blockHalf, cy, 2*blockHalf, 2*blockHalf, colLoad)
}

func (s *Scene) drawReadouts(img *image.RGBA, f FrameSample) {
	x := int(0.025 * float64(s.W))
	y := 28
	step := 18

	lines := []string{
		fmt.Sprintf("t      = %6.2f s", f.Time),
		fmt.Sprintf("P      = %6.2f MPa", f.Pressure/1e6),
		fmt.Sprintf("L      = %6.2f cm", f.Length*100),
		fmt.Sprintf("strain = %+6.2f %%", f.Geo.Strain*100),
		fmt.Sprintf("r      = %6.2f mm", f.Geo.Radius*1000),
	}
	for i, line := range lines {
		drawText(img, x, y+i*step, colText, line)
	}
}

func (s *Scene) drawStrip(img *image.RGBA, f FrameSample) {
	cx := float64(s.strip.Min.X+s.strip.Max.X) / 2
	cy := float64(s.strip.Min.Y+s.strip.Max.Y) / 2
	drawRectFilled(img, cx, cy, float64(s.strip.Dx()), float64(s.strip.Dy()), colStrip)

	// zero-strain gridline, dotted
	if !math.IsNaN(s.zeroStrain) {
		for x := s.strip.Min.X; x < s.strip.Max.X; x += 6 {
			img.SetRGBA(x, int(s.zeroStrain), colAxis)
		}
	}

	drawPolyline(img, s.stripXs, s.pressureYs, colPressure)
	drawPolyline(img, s.stripXs, s.strainYs, colStrain)

	// axes
	drawRectFilled(img, float64(s.strip.Min.X), cy, 2, float64(s.strip.Dy()), colAxis)
	drawRectFilled(img, cx, float64(s.strip.Max.Y), float64(s.strip.Dx()), 2, colAxis)

	// cursor at the current time
	if s.duration > 0 {
		x := float64(s.strip.Min.X) + f.Time/s.duration*float64(s.strip.Dx())
		drawRectFilled(img, x, cy, 2, float64(s.strip.Dy()), colCursor)
	}

	// legend and time labels
	drawText(img, s.strip.Min.X+8, s.strip.Min.Y+16, colPressure, "pressure")
	drawText(img, s.strip.Min.X+80, s.strip.Min.Y+16, colStrain, "strain")
	drawText(img, s.strip.Min.X, s.strip.Max.Y+18, colTextDim, "0s")
	endLabel := fmt.Sprintf("%.0fs", s.duration)
	drawText(img, s.strip.Max.X-7*len(endLabel), s.strip.Max.Y+18, colTextDim, endLabel)
}
