package tiles

import (
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	calls atomic.Int32
	fail  bool
	delay time.Duration
}

func (s *stubProvider) GetTile(theme string, tile Tile) (image.Image, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.fail {
		return nil, errors.New("boom")
	}
	return image.NewRGBA(image.Rect(0, 0, 256, 256)), nil
}

func waitState(t *testing.T, h *Handle, want State) {
	t.Helper()
	require.Eventually(t, func() bool { return h.State() == want },
		2*time.Second, 5*time.Millisecond)
}

func TestGetReturnsSameHandle(t *testing.T) {
	c := NewCache("dark", &stubProvider{}, nil, nil)
	tile := Tile{Zoom: 11, X: 1745, Y: 792}

	a := c.Get(tile)
	b := c.Get(tile)
	assert.Same(t, a, b, "requests for one key share a handle")
	assert.Equal(t, 1, c.Len())
}

func TestPendingThenLoaded(t *testing.T) {
	p := &stubProvider{delay: 20 * time.Millisecond}
	c := NewCache("dark", p, nil, nil)

	h := c.Get(Tile{Zoom: 11, X: 1, Y: 2})
	assert.Equal(t, Pending, h.State())
	assert.Nil(t, h.Image())

	waitState(t, h, Loaded)
	assert.NotNil(t, h.Image())
}

func TestFallbackUsedOnce(t *testing.T) {
	primary := &stubProvider{fail: true}
	fallback := &stubProvider{}
	c := NewCache("dark", primary, fallback, nil)

	var outcomes []string
	c.OnResult = func(o string) { outcomes = append(outcomes, o) }

	h := c.Get(Tile{Zoom: 11, X: 1, Y: 2})
	waitState(t, h, Loaded)

	assert.Equal(t, int32(1), primary.calls.Load())
	assert.Equal(t, int32(1), fallback.calls.Load())
	assert.Equal(t, []string{"fallback"}, outcomes)
}

func TestFailedWhenBothProvidersFail(t *testing.T) {
	c := NewCache("dark", &stubProvider{fail: true}, &stubProvider{fail: true}, nil)

	h := c.Get(Tile{Zoom: 11, X: 1, Y: 2})
	waitState(t, h, Failed)
	assert.Nil(t, h.Image())

	// Failed tiles stay failed; no retry storm.
	again := c.Get(Tile{Zoom: 11, X: 1, Y: 2})
	assert.Same(t, h, again)
	assert.Equal(t, Failed, again.State())
}

func TestStateChangeFiresOnChange(t *testing.T) {
	c := NewCache("dark", &stubProvider{}, nil, nil)
	var fired atomic.Int32
	c.SetOnChange(func() { fired.Add(1) })

	h := c.Get(Tile{Zoom: 11, X: 1, Y: 2})
	waitState(t, h, Loaded)
	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestSetThemeClearsWholesale(t *testing.T) {
	c := NewCache("dark", &stubProvider{}, nil, nil)
	h := c.Get(Tile{Zoom: 11, X: 1, Y: 2})
	waitState(t, h, Loaded)

	c.SetTheme("light")
	assert.Equal(t, 0, c.Len())

	// Same tile under the new theme is a fresh handle.
	h2 := c.Get(Tile{Zoom: 11, X: 1, Y: 2})
	assert.NotSame(t, h, h2)

	// Setting the same theme again keeps the cache.
	waitState(t, h2, Loaded)
	c.SetTheme("light")
	assert.Equal(t, 1, c.Len())
}

func TestPlaceholderProviderThemes(t *testing.T) {
	p := &PlaceholderProvider{}
	dark, err := p.GetTile("dark", Tile{Zoom: 3, X: 1, Y: 1})
	require.NoError(t, err)
	light, err := p.GetTile("light", Tile{Zoom: 3, X: 1, Y: 1})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 256, 256), dark.Bounds())
	assert.NotEqual(t, dark.At(128, 128), light.At(128, 128))
}

func TestHTTPProviderURL(t *testing.T) {
	p := NewHTTPProvider(map[string]string{
		"dark": "https://tiles.example.net/dark/{z}/{x}/{y}.png",
	})
	url, err := p.URL("dark", Tile{Zoom: 11, X: 1745, Y: 792})
	require.NoError(t, err)
	assert.Equal(t, "https://tiles.example.net/dark/11/1745/792.png", url)

	_, err = p.URL("sepia", Tile{})
	assert.Error(t, err)
}
