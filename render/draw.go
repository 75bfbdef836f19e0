package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster primitives. Everything draws straight into an *image.RGBA with
// bounds clipping at the pixel level; the compositor clips nothing up front.

func setPx(img *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Over)
}

// drawLine is a float DDA; endpoints may lie off-canvas.
func drawLine(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		setPx(img, int(x0), int(y0), c)
		return
	}
	sx, sy := dx/float64(steps), dy/float64(steps)
	x, y := x0, y0
	for i := 0; i <= steps; i++ {
		setPx(img, int(x), int(y), c)
		x += sx
		y += sy
	}
}

func drawPolyline(img *image.RGBA, pts [][2]float64, c color.RGBA) {
	for i := 1; i < len(pts); i++ {
		drawLine(img, pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], c)
	}
}

// drawDashed draws a polyline with a dash/gap pattern carried across
// segment joints.
func drawDashed(img *image.RGBA, pts [][2]float64, c color.RGBA, dash, gap float64) {
	pen := true
	remain := dash
	for i := 1; i < len(pts); i++ {
		x0, y0 := pts[i-1][0], pts[i-1][1]
		x1, y1 := pts[i][0], pts[i][1]
		segLen := math.Hypot(x1-x0, y1-y0)
		if segLen == 0 {
			continue
		}
		ux, uy := (x1-x0)/segLen, (y1-y0)/segLen
		for travelled := 0.0; travelled < segLen; {
			step := math.Min(remain, segLen-travelled)
			if pen {
				drawLine(img, x0+ux*travelled, y0+uy*travelled,
					x0+ux*(travelled+step), y0+uy*(travelled+step), c)
			}
			travelled += step
			remain -= step
			if remain <= 0 {
				pen = !pen
				if pen {
					remain = dash
				} else {
					remain = gap
				}
			}
		}
	}
}

func drawRectOutline(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	drawLine(img, float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Min.Y), c)
	drawLine(img, float64(r.Max.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y), c)
	drawLine(img, float64(r.Max.X), float64(r.Max.Y), float64(r.Min.X), float64(r.Max.Y), c)
	drawLine(img, float64(r.Min.X), float64(r.Max.Y), float64(r.Min.X), float64(r.Min.Y), c)
}

func drawCircle(img *image.RGBA, cx, cy, radius float64, c color.RGBA) {
	if radius <= 0 {
		return
	}
	segments := 64
	prevX := cx + radius
	prevY := cy
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x := cx + radius*math.Cos(a)
		y := cy + radius*math.Sin(a)
		drawLine(img, prevX, prevY, x, y, c)
		prevX, prevY = x, y
	}
}

// drawArrowHead draws two barbs at (x,y) for a vector pointing along
// (dirX,dirY), which must be a unit vector.
func drawArrowHead(img *image.RGBA, x, y, dirX, dirY float64, size float64, c color.RGBA) {
	for _, sign := range []float64{1, -1} {
		a := math.Atan2(dirY, dirX) + sign*2.6 // ~150° off the shaft
		drawLine(img, x, y, x+size*math.Cos(a), y+size*math.Sin(a), c)
	}
}

var textFace = basicfont.Face7x13

func textWidth(s string) int {
	d := font.Drawer{Face: textFace}
	return d.MeasureString(s).Round()
}

// drawText renders s with its baseline at (x,y).
func drawText(img *image.RGBA, x, y int, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: textFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
