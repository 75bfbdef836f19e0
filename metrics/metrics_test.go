package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewEngine(reg)
	require.NoError(t, err)

	_, err = NewEngine(reg)
	assert.Error(t, err, "double registration must surface")
}

func TestNilEngineIsSafe(t *testing.T) {
	var e *Engine
	e.ObserveFrame(5 * time.Millisecond)
	e.TileResult("primary")
	e.GridRecompute()
}

func TestHandlerServesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	e, err := NewEngine(reg)
	require.NoError(t, err)

	e.TileResult("fallback")
	e.ObserveFrame(2 * time.Millisecond)
	e.GridRecompute()

	rec := httptest.NewRecorder()
	e.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `map_tile_fetches_total{outcome="fallback"} 1`)
	assert.Contains(t, body, "map_frame_render_seconds")
	assert.Contains(t, body, "map_grid_recomputes_total 1")
}
