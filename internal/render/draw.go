package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	colBackground = color.RGBA{18, 22, 30, 255}
	colStrip      = color.RGBA{26, 31, 42, 255}
	colMuscle     = color.RGBA{70, 130, 220, 255}
	colRing       = color.RGBA{210, 215, 225, 255}
	colAnchor     = color.RGBA{120, 126, 138, 255}
	colLoad       = color.RGBA{168, 112, 62, 255}
	colText       = color.RGBA{232, 234, 238, 255}
	colTextDim    = color.RGBA{140, 146, 158, 255}
	colPressure   = color.RGBA{235, 90, 90, 255}
	colStrain     = color.RGBA{95, 170, 255, 255}
	colCursor     = color.RGBA{240, 240, 240, 255}
	colAxis       = color.RGBA{90, 96, 108, 255}
)

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func drawRectFilled(img *image.RGBA, cx, cy, w, h float64, c color.RGBA) {
	minX := int(math.Round(cx - w/2))
	maxX := int(math.Round(cx + w/2))
	minY := int(math.Round(cy - h/2))
	maxY := int(math.Round(cy + h/2))

	b := img.Bounds()
	if minX < b.Min.X {
		minX = b.Min.X
	}
	if maxX > b.Max.X {
		maxX = b.Max.X
	}
	if minY < b.Min.Y {
		minY = b.Min.Y
	}
	if maxY > b.Max.Y {
		maxY = b.Max.Y
	}

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func drawCircleFilled(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	minX := int(math.Floor(cx - r))
	maxX := int(math.Ceil(cx + r))
	minY := int(math.Floor(cy - r))
	maxY := int(math.Ceil(cy + r))

	rsq := r * r
	b := img.Bounds()

	for y := minY; y <= maxY; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := minX; x <= maxX; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			dx := (float64(x) + 0.5) - cx
			dy := (float64(y) + 0.5) - cy
			if dx*dx+dy*dy <= rsq {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawThickLine stamps small circles along the segment.
func drawThickLine(img *image.RGBA, x1, y1, x2, y2, width float64, c color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Hypot(dx, dy)
	if dist < 1e-6 {
		drawCircleFilled(img, x1, y1, width/2, c)
		return
	}
	steps := int(dist / 0.8)
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		drawCircleFilled(img, x1+t*dx, y1+t*dy, width/2, c)
	}
}

// drawPolyline connects the points with 1px vertical spans per column,
// which is enough for dense time series.
func drawPolyline(img *image.RGBA, xs, ys []float64, c color.RGBA) {
	for i := 1; i < len(xs); i++ {
		drawSegment(img, xs[i-1], ys[i-1], xs[i], ys[i], c)
	}
}

func drawSegment(img *image.RGBA, x1, y1, x2, y2 float64, c color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps < 1 {
		steps = 1
	}
	b := img.Bounds()
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(x1 + t*dx))
		y := int(math.Round(y1 + t*dy))
		if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawText renders s with the fixed 7x13 face; y is the text baseline.
func drawText(img *image.RGBA, x, y int, c color.RGBA, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
