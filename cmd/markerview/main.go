// Command markerview shows a marker layer in the terminal.
//
// Markers are drawn as braille dots. Arrow keys (or hjkl) pan, + and - zoom,
// d toggles debug outlines and q quits. Hovering and clicking a marker shows
// it in the status line.
//
// Usage:
//
//	markerview [-config markerview.toml] [-markers points.geojson] [-watch]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/paulmach/orb"

	"github.com/gogpu/markers"
	"github.com/gogpu/markers/render"
)

func main() {
	var (
		configPath = flag.String("config", "markerview.toml", "configuration file")
		markerPath = flag.String("markers", "", "GeoJSON file of points")
		count      = flag.Int("count", 0, "number of random markers when no file is given")
		zoom       = flag.Float64("zoom", 0, "initial zoom level")
		debug      = flag.Bool("debug", false, "outline marker hit boxes")
		watch      = flag.Bool("watch", false, "reload the marker file when it changes")
		logFile    = flag.String("log", "", "write logs to this file")
	)
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(*configPath, !set["config"])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if set["markers"] {
		cfg.Markers = *markerPath
	}
	if set["count"] {
		cfg.Count = *count
	}
	if set["zoom"] {
		cfg.Zoom = *zoom
	}
	if set["debug"] {
		cfg.Debug = *debug
	}
	if set["watch"] {
		cfg.Watch = *watch
	}
	if set["log"] {
		cfg.LogFile = *logFile
	}
	if err := cfg.validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config) error {
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ms, err := loadMarkers(cfg)
	if err != nil {
		return err
	}
	a, err := buildAtlas(context.Background(), cfg.Icons)
	if err != nil {
		return err
	}

	sched := render.NewManualScheduler()
	layer, err := markers.New(
		markers.WithScheduler(sched),
		markers.WithBufferFactor(cfg.BufferFactor),
		markers.WithFrameBudget(cfg.FrameBudget.Duration),
		markers.WithDebugDrawing(cfg.Debug),
	)
	if err != nil {
		return err
	}
	layer.SetAtlas(a)
	layer.SetMarkers(ms)

	var w *fsnotify.Watcher
	if cfg.Watch && cfg.Markers != "" {
		w, err = fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer w.Close()
		if err := w.Add(cfg.Markers); err != nil {
			return fmt.Errorf("watch %s: %w", cfg.Markers, err)
		}
	}

	m := newModel(cfg, layer, sched, a, w)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

func loadMarkers(cfg config) ([]markers.Marker, error) {
	if cfg.Markers != "" {
		return readMarkers(cfg.Markers)
	}
	return randomMarkers(cfg.Count, cfg.Seed, orb.Point(cfg.Center), 0.3), nil
}

// setupLogging sends logs to the configured file. The terminal belongs to
// the program, so without a file nothing is logged.
func setupLogging(cfg config) (func(), error) {
	if cfg.LogFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	markers.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})))
	return func() {
		markers.SetLogger(nil)
		_ = f.Close()
	}, nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

