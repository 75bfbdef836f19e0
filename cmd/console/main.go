// Command console runs the tactical map display.
package main

import (
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/argosdef/tacmap/config"
	"github.com/argosdef/tacmap/geo"
	"github.com/argosdef/tacmap/mapview"
	"github.com/argosdef/tacmap/metrics"
	"github.com/argosdef/tacmap/overlay"
	"github.com/argosdef/tacmap/render"
	"github.com/argosdef/tacmap/tiles"
	"github.com/argosdef/tacmap/tiles/worker"
	"github.com/argosdef/tacmap/viewport"
)

var (
	configFile  string
	themeFlag   string
	overlayFlag string
	speedFlag   bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Tactical map console",
	Long:  `Renders a pannable tactical map with a military grid, basemap tiles, overlays and live track display.`,
	RunE:  runConsole,
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "console.yaml", "Config file path")
	rootCmd.Flags().StringVarP(&themeFlag, "theme", "t", "", "Override theme (dark or light)")
	rootCmd.Flags().StringVarP(&overlayFlag, "overlay", "o", "", "Override overlay GeoJSON path")
	rootCmd.Flags().BoolVar(&speedFlag, "speed", false, "Start in speed mode")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runConsole(cmd *cobra.Command, args []string) error {
	if verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.LoadConsole(configFile)
	if err != nil {
		return err
	}
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}
	if overlayFlag != "" {
		cfg.OverlayFile = overlayFlag
	}
	if speedFlag {
		cfg.SpeedMode = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	eng, err := metrics.NewEngine(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if cfg.MetricsAddr != "" {
		go func() {
			slog.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, eng.Handler()); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	pool := worker.NewPool(cfg.TileWorkers)
	defer pool.Shutdown()

	var primary tiles.Provider = &tiles.PlaceholderProvider{}
	if len(cfg.TileSources) > 0 {
		primary = tiles.NewHTTPProvider(cfg.TileSources)
	}
	cache := tiles.NewCache(cfg.Theme, primary, &tiles.PlaceholderProvider{Annotate: true}, pool)
	cache.OnResult = eng.TileResult

	var overlays *overlay.Set
	if cfg.OverlayFile != "" {
		overlays, err = overlay.LoadFile(cfg.OverlayFile)
		if err != nil {
			slog.Warn("overlay load failed, continuing without", "path", cfg.OverlayFile, "error", err)
			overlays = nil
		} else {
			slog.Info("overlay loaded", "path", cfg.OverlayFile, "polylines", len(overlays.Polylines))
		}
	}
	if msg := overlays.Advisory(); msg != "" {
		slog.Warn(msg)
	}

	view := viewport.New(
		geo.NewPoint(cfg.StartLat, cfg.StartLon),
		cfg.StartZoom,
		image.Pt(1024, 768),
		cfg.MinZoom, cfg.MaxZoom,
		viewport.Region{
			MinLat: cfg.Region.MinLat, MaxLat: cfg.Region.MaxLat,
			MinLon: cfg.Region.MinLon, MaxLon: cfg.Region.MaxLon,
		},
	)

	opts := render.Options{
		Theme:          cfg.Theme,
		LabelLevel:     cfg.LabelLevel,
		ShowGrid:       cfg.ShowGrid,
		ShowGridLabels: cfg.ShowGridLabels,
		ShowRings:      cfg.ShowRings,
		SpeedMode:      cfg.SpeedMode,
	}

	refresh := make(chan struct{}, 1)
	mv := mapview.New(view, cache, overlays, eng, opts, render.New(cache, eng), refresh)

	go func() {
		w := new(app.Window)
		w.Option(app.Title("tacmap console"), app.Size(unit.Dp(1024), unit.Dp(768)))

		go func() {
			for range refresh {
				w.Invalidate()
			}
		}()

		var ops op.Ops
		for {
			switch e := w.Event().(type) {
			case app.DestroyEvent:
				os.Exit(0)
			case app.FrameEvent:
				gtx := app.NewContext(&ops, e)
				mv.Layout(gtx)
				e.Frame(gtx.Ops)
			}
		}
	}()
	app.Main()
	return nil
}
