package tiles

import (
	"image"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/argosdef/tacmap/tiles/worker"
)

// Provider supplies tile images for a theme.
type Provider interface {
	GetTile(theme string, tile Tile) (image.Image, error)
}

// Cache owns the tile handles. Get never blocks: it returns the handle
// immediately and schedules the fetch on first sight. Every state transition
// fires the onChange callback so the owner can schedule a re-render. Handles
// are never evicted mid-session; SetTheme clears them wholesale.
type Cache struct {
	primary  Provider
	fallback Provider
	pool     *worker.Pool
	group    singleflight.Group

	// OnResult, when set, observes fetch outcomes: "primary", "fallback"
	// or "failed".
	OnResult func(outcome string)

	mu       sync.Mutex
	theme    string
	handles  map[string]*Handle
	onChange func()
}

// NewCache builds a cache over a primary provider and an optional fallback.
func NewCache(theme string, primary, fallback Provider, pool *worker.Pool) *Cache {
	return &Cache{
		primary:  primary,
		fallback: fallback,
		pool:     pool,
		theme:    theme,
		handles:  make(map[string]*Handle),
	}
}

// SetOnChange registers the re-render trigger.
func (c *Cache) SetOnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Theme returns the active theme.
func (c *Cache) Theme() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// SetTheme switches themes and drops every cached handle: tile content is
// theme-dependent. In-flight fetches for the old theme are not cancelled;
// they complete against handles no longer queried.
func (c *Cache) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if theme == c.theme {
		return
	}
	c.theme = theme
	c.handles = make(map[string]*Handle)
}

// Len reports the number of cached handles.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.handles)
}

// Get returns the handle for a tile under the active theme, creating it and
// starting its load on first request. Repeated calls for the same tile return
// the same handle.
func (c *Cache) Get(tile Tile) *Handle {
	tile = tile.Constrained()

	c.mu.Lock()
	key := Key(c.theme, tile)
	if h, ok := c.handles[key]; ok {
		c.mu.Unlock()
		return h
	}
	h := &Handle{Tile: tile}
	c.handles[key] = h
	theme := c.theme
	c.mu.Unlock()

	fetch := func() { c.fetch(theme, key, tile, h) }
	if c.pool != nil {
		c.pool.Submit(fetch)
	} else {
		go fetch()
	}
	return h
}

func (c *Cache) fetch(theme, key string, tile Tile, h *Handle) {
	type result struct {
		img     image.Image
		outcome string
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		img, err := c.primary.GetTile(theme, tile)
		if err == nil {
			return result{img: img, outcome: "primary"}, nil
		}
		slog.Debug("primary tile fetch failed", "key", key, "err", err)
		if c.fallback != nil {
			if img, ferr := c.fallback.GetTile(theme, tile); ferr == nil {
				return result{img: img, outcome: "fallback"}, nil
			}
		}
		return nil, err
	})

	if err != nil {
		slog.Warn("tile fetch failed", "key", key, "err", err)
		h.complete(nil, false)
		c.report("failed")
	} else {
		r := v.(result)
		h.complete(r.img, true)
		c.report(r.outcome)
	}
	c.notify()
}

func (c *Cache) report(outcome string) {
	if c.OnResult != nil {
		c.OnResult(outcome)
	}
}

func (c *Cache) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
