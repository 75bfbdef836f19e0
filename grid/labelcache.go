package grid

// labelCacheLimit bounds the number of cached cell labels.
const labelCacheLimit = 256

type labelKey struct {
	zone, zoomBucket int
	col, row         int
}

// labelCache memoizes cell labels across frames. Bounded; the oldest entry
// is evicted once the limit is reached.
type labelCache struct {
	limit   int
	entries map[labelKey]Label
	order   []labelKey
}

func newLabelCache(limit int) *labelCache {
	return &labelCache{
		limit:   limit,
		entries: make(map[labelKey]Label, limit),
	}
}

func (c *labelCache) get(zone, zoomBucket, col, row int, build func() Label) Label {
	key := labelKey{zone: zone, zoomBucket: zoomBucket, col: col, row: row}
	if l, ok := c.entries[key]; ok {
		return l
	}
	l := build()
	if len(c.entries) >= c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = l
	c.order = append(c.order, key)
	return l
}

func (c *labelCache) len() int { return len(c.entries) }
