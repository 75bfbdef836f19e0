package tiles

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// HTTPProvider fetches tiles from a slippy-map tile server. URL templates are
// per theme and use {z}/{x}/{y} placeholders.
type HTTPProvider struct {
	client    *http.Client
	templates map[string]string
	userAgent string
}

// NewHTTPProvider builds a provider from theme → URL template.
func NewHTTPProvider(templates map[string]string) *HTTPProvider {
	return &HTTPProvider{
		client:    &http.Client{Timeout: 10 * time.Second},
		templates: templates,
		userAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
	}
}

// URL expands the template for a theme and tile.
func (p *HTTPProvider) URL(theme string, tile Tile) (string, error) {
	tpl, ok := p.templates[theme]
	if !ok {
		return "", fmt.Errorf("no tile source for theme %q", theme)
	}
	r := strings.NewReplacer(
		"{z}", fmt.Sprint(tile.Zoom),
		"{x}", fmt.Sprint(tile.X),
		"{y}", fmt.Sprint(tile.Y),
	)
	return r.Replace(tpl), nil
}

// GetTile downloads and decodes one tile.
func (p *HTTPProvider) GetTile(theme string, tile Tile) (image.Image, error) {
	url, err := p.URL(theme, tile)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "image/webp,*/*")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	slog.Debug("tile loaded", "url", url)
	return img, nil
}
