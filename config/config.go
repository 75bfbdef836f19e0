// Package config loads console configuration from YAML with defaults tuned
// for the Korean peninsula operating area.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Console holds all configuration for the map console.
type Console struct {
	// Display
	Theme          string `yaml:"theme"`       // "dark" or "light"
	LabelLevel     int    `yaml:"label_level"` // 0 none .. 3 settlement
	SpeedMode      bool   `yaml:"speed_mode"`
	ShowGrid       bool   `yaml:"show_grid"`
	ShowGridLabels bool   `yaml:"show_grid_labels"`
	ShowRings      bool   `yaml:"show_rings"`

	// View
	StartLat  float64 `yaml:"start_lat"`
	StartLon  float64 `yaml:"start_lon"`
	StartZoom int     `yaml:"start_zoom"`
	MinZoom   int     `yaml:"min_zoom"`
	MaxZoom   int     `yaml:"max_zoom"`
	Region    Region  `yaml:"region"`

	// Tiles
	TileSources map[string]string `yaml:"tile_sources"` // theme -> URL template with {z}/{x}/{y}
	TileWorkers int               `yaml:"tile_workers"`

	// Overlays
	OverlayFile string `yaml:"overlay_file"`

	// Observability
	MetricsAddr string `yaml:"metrics_addr"` // empty disables the endpoint
}

// Region is the operational bounding box for the view center.
type Region struct {
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
	MinLon float64 `yaml:"min_lon"`
	MaxLon float64 `yaml:"max_lon"`
}

// DefaultConsole returns console config with sensible defaults.
func DefaultConsole() Console {
	return Console{
		Theme:          "dark",
		LabelLevel:     2,
		ShowGrid:       true,
		ShowGridLabels: true,
		ShowRings:      false,
		StartLat:       37.5665,
		StartLon:       126.9780,
		StartZoom:      11,
		MinZoom:        5,
		MaxZoom:        17,
		Region: Region{
			MinLat: 32, MaxLat: 44,
			MinLon: 122, MaxLon: 132,
		},
		TileSources: map[string]string{
			"light": "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		},
		TileWorkers: 4,
		MetricsAddr: "",
	}
}

// LoadConsole loads console config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadConsole(path string) (Console, error) {
	cfg := DefaultConsole()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the renderer cannot work with.
func (c Console) Validate() error {
	if c.Theme != "dark" && c.Theme != "light" {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if c.LabelLevel < 0 || c.LabelLevel > 3 {
		return fmt.Errorf("label_level %d out of range 0..3", c.LabelLevel)
	}
	if c.MinZoom > c.MaxZoom {
		return fmt.Errorf("min_zoom %d above max_zoom %d", c.MinZoom, c.MaxZoom)
	}
	if c.StartZoom < c.MinZoom || c.StartZoom > c.MaxZoom {
		return fmt.Errorf("start_zoom %d outside %d..%d", c.StartZoom, c.MinZoom, c.MaxZoom)
	}
	if c.Region.MinLat >= c.Region.MaxLat || c.Region.MinLon >= c.Region.MaxLon {
		return fmt.Errorf("region is empty")
	}
	if c.TileWorkers < 1 {
		return fmt.Errorf("tile_workers must be at least 1")
	}
	return nil
}
