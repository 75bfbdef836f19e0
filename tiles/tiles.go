// Package tiles manages the asynchronous basemap tile cache. Tiles are keyed
// by (theme, zoom, x, y), fetched once with a single fallback attempt, and
// kept for the process lifetime; a theme change clears the cache wholesale.
package tiles

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/argosdef/tacmap/geo"
)

// Tile identifies one basemap tile.
type Tile struct {
	Zoom, X, Y int
}

// Constrained clamps the tile coordinates into the valid range for its zoom.
func (t Tile) Constrained() Tile {
	maxTile := int(math.Pow(2, float64(t.Zoom))) - 1
	if t.X < 0 {
		t.X = 0
	} else if t.X > maxTile {
		t.X = maxTile
	}
	if t.Y < 0 {
		t.Y = 0
	} else if t.Y > maxTile {
		t.Y = maxTile
	}
	return t
}

// At returns the tile containing a geographic point.
func At(p geo.Point, zoom int) Tile {
	x, y := geo.ToWorld(p, zoom)
	return Tile{Zoom: zoom, X: int(x) / geo.TileSize, Y: int(y) / geo.TileSize}.Constrained()
}

// Visible enumerates the tiles covering a canvas centered on a point, with a
// one-tile buffer ring.
func Visible(center geo.Point, zoom int, size image.Point) []Tile {
	centerTile := At(center, zoom)
	tilesX := size.X/geo.TileSize + 2
	tilesY := size.Y/geo.TileSize + 2

	startX := centerTile.X - tilesX/2
	startY := centerTile.Y - tilesY/2

	out := make([]Tile, 0, tilesX*tilesY)
	for x := startX; x < startX+tilesX; x++ {
		for y := startY; y < startY+tilesY; y++ {
			out = append(out, Tile{Zoom: zoom, X: x, Y: y}.Constrained())
		}
	}
	return out
}

// Key returns the cache key of a tile under a theme.
func Key(theme string, t Tile) string {
	return fmt.Sprintf("%s/%d/%d/%d", theme, t.Zoom, t.X, t.Y)
}

// State tracks a tile load lifecycle.
type State int

const (
	Pending State = iota
	Loaded
	Failed
)

// Handle is the cached entry for one tile. A handle is created on first
// request and transitions Pending→Loaded or Pending→Failed exactly once.
type Handle struct {
	Tile Tile

	mu    sync.RWMutex
	state State
	img   image.Image
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Image returns the decoded tile image, or nil unless Loaded.
func (h *Handle) Image() image.Image {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.img
}

func (h *Handle) complete(img image.Image, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ok {
		h.state = Loaded
		h.img = img
	} else {
		h.state = Failed
	}
}
