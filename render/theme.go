package render

import "image/color"

// Palette carries the layer colors for one theme. The dark tactical theme
// intentionally draws no basemap; the light theme composites tiles under a
// dimming veil.
type Palette struct {
	ShowBasemap bool

	Background color.RGBA
	TileFailed color.RGBA
	Veil       color.RGBA

	GridMinor    color.RGBA
	GridMajor    color.RGBA
	GridBoundary color.RGBA
	GridLabel    color.RGBA

	RangeRing color.RGBA
	Boundary  color.RGBA
	Sea       color.RGBA
	Airspace  color.RGBA

	AdminLabel color.RGBA
	Crosshair  color.RGBA

	Trail     color.RGBA
	Predicted color.RGBA
	Velocity  color.RGBA
	Marker    color.RGBA
	LabelText color.RGBA

	RiskBox [4]color.RGBA // indexed by clamped risk level
}

var palettes = map[string]Palette{
	"dark": {
		ShowBasemap:  false,
		Background:   color.RGBA{R: 10, G: 14, B: 18, A: 255},
		TileFailed:   color.RGBA{R: 16, G: 20, B: 24, A: 255},
		Veil:         color.RGBA{A: 0},
		GridMinor:    color.RGBA{R: 32, G: 44, B: 52, A: 255},
		GridMajor:    color.RGBA{R: 52, G: 70, B: 82, A: 255},
		GridBoundary: color.RGBA{R: 86, G: 112, B: 128, A: 255},
		GridLabel:    color.RGBA{R: 110, G: 140, B: 156, A: 255},
		RangeRing:    color.RGBA{R: 44, G: 64, B: 58, A: 255},
		Boundary:     color.RGBA{R: 188, G: 62, B: 62, A: 255},
		Sea:          color.RGBA{R: 48, G: 96, B: 140, A: 255},
		Airspace:     color.RGBA{R: 170, G: 140, B: 48, A: 255},
		AdminLabel:   color.RGBA{R: 150, G: 164, B: 176, A: 255},
		Crosshair:    color.RGBA{R: 90, G: 200, B: 140, A: 255},
		Trail:        color.RGBA{R: 70, G: 110, B: 96, A: 255},
		Predicted:    color.RGBA{R: 196, G: 176, B: 86, A: 255},
		Velocity:     color.RGBA{R: 120, G: 220, B: 160, A: 255},
		Marker:       color.RGBA{R: 230, G: 240, B: 244, A: 255},
		LabelText:    color.RGBA{R: 212, G: 222, B: 228, A: 255},
		RiskBox: [4]color.RGBA{
			{R: 96, G: 118, B: 110, A: 255},
			{R: 120, G: 160, B: 90, A: 255},
			{R: 214, G: 160, B: 60, A: 255},
			{R: 226, G: 70, B: 62, A: 255},
		},
	},
	"light": {
		ShowBasemap:  true,
		Background:   color.RGBA{R: 232, G: 236, B: 238, A: 255},
		TileFailed:   color.RGBA{R: 214, G: 218, B: 220, A: 255},
		Veil:         color.RGBA{R: 255, G: 255, B: 255, A: 70},
		GridMinor:    color.RGBA{R: 196, G: 204, B: 208, A: 255},
		GridMajor:    color.RGBA{R: 150, G: 162, B: 170, A: 255},
		GridBoundary: color.RGBA{R: 96, G: 112, B: 124, A: 255},
		GridLabel:    color.RGBA{R: 88, G: 104, B: 116, A: 255},
		RangeRing:    color.RGBA{R: 150, G: 176, B: 164, A: 255},
		Boundary:     color.RGBA{R: 176, G: 44, B: 44, A: 255},
		Sea:          color.RGBA{R: 52, G: 108, B: 166, A: 255},
		Airspace:     color.RGBA{R: 168, G: 130, B: 24, A: 255},
		AdminLabel:   color.RGBA{R: 66, G: 76, B: 84, A: 255},
		Crosshair:    color.RGBA{R: 18, G: 128, B: 76, A: 255},
		Trail:        color.RGBA{R: 120, G: 150, B: 138, A: 255},
		Predicted:    color.RGBA{R: 158, G: 134, B: 34, A: 255},
		Velocity:     color.RGBA{R: 24, G: 140, B: 86, A: 255},
		Marker:       color.RGBA{R: 28, G: 34, B: 38, A: 255},
		LabelText:    color.RGBA{R: 30, G: 38, B: 44, A: 255},
		RiskBox: [4]color.RGBA{
			{R: 120, G: 136, B: 130, A: 255},
			{R: 96, G: 140, B: 62, A: 255},
			{R: 196, G: 138, B: 30, A: 255},
			{R: 200, G: 40, B: 34, A: 255},
		},
	},
}

// PaletteFor resolves a theme name, falling back to dark.
func PaletteFor(theme string) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes["dark"]
}

// dimmed pulls a color toward the background; used to de-emphasize
// non-focused tracks while one is focused.
func dimmed(c, bg color.RGBA, keep float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*keep + float64(b)*(1-keep))
	}
	return color.RGBA{
		R: mix(c.R, bg.R),
		G: mix(c.G, bg.G),
		B: mix(c.B, bg.B),
		A: 255,
	}
}
