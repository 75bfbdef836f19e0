package tiles

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlaceholderProvider generates neutral tiles locally. It serves as the
// offline tile source and keeps tests free of network I/O.
type PlaceholderProvider struct {
	// Annotate draws the tile key onto the tile when set.
	Annotate bool
}

var placeholderFill = map[string]color.RGBA{
	"dark":  {R: 24, G: 28, B: 34, A: 255},
	"light": {R: 224, G: 228, B: 232, A: 255},
}

// GetTile renders a flat tile in the theme's neutral color.
func (p *PlaceholderProvider) GetTile(theme string, tile Tile) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 256, 256))

	fill, ok := placeholderFill[theme]
	if !ok {
		fill = placeholderFill["dark"]
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)

	border := color.RGBA{R: 70, G: 74, B: 80, A: 255}
	for _, rect := range []image.Rectangle{
		image.Rect(0, 0, 256, 1),
		image.Rect(0, 255, 256, 256),
		image.Rect(0, 0, 1, 256),
		image.Rect(255, 0, 256, 256),
	} {
		draw.Draw(img, rect, &image.Uniform{border}, image.Point{}, draw.Src)
	}

	if p.Annotate {
		annotate(img, fmt.Sprintf("%d/%d/%d", tile.Zoom, tile.X, tile.Y))
	}
	return img, nil
}

func annotate(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 140, G: 144, B: 150, A: 255}),
		Face: face,
	}
	w := d.MeasureString(text).Round()
	d.Dot = fixed.Point26_6{
		X: fixed.I((256 - w) / 2),
		Y: fixed.I(128 + face.Metrics().Height.Round()/2),
	}
	d.DrawString(text)
}
