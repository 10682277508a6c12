package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// duration is a time.Duration written as a string in TOML, e.g. "10ms".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// config is the markerview configuration file.
type config struct {
	// Markers is a GeoJSON file of points. When empty, Count random markers
	// are generated around Center.
	Markers string `toml:"markers"`
	Count   int    `toml:"count"`
	Seed    uint64 `toml:"seed"`

	Center [2]float64 `toml:"center"` // lon, lat
	Zoom   float64    `toml:"zoom"`

	// Icons lists image files for the atlas. When empty a pin is drawn.
	Icons []string `toml:"icons"`

	BufferFactor float64  `toml:"buffer_factor"`
	FrameBudget  duration `toml:"frame_budget"`
	Debug        bool     `toml:"debug"`
	Watch        bool     `toml:"watch"`

	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

func defaultConfig() config {
	return config{
		Count:        10000,
		Seed:         1,
		Center:       [2]float64{37.62, 55.75},
		Zoom:         9,
		BufferFactor: 0.5,
		FrameBudget:  duration{10 * time.Millisecond},
		LogLevel:     "info",
	}
}

// loadConfig reads path over the defaults. A missing file is not an error
// when optional is true.
func loadConfig(path string, optional bool) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch {
	case c.Count < 0:
		return errors.New("count must not be negative")
	case c.BufferFactor < 0:
		return errors.New("buffer_factor must not be negative")
	case c.FrameBudget.Duration <= 0:
		return errors.New("frame_budget must be positive")
	case c.Zoom < 0 || c.Zoom > 22:
		return errors.New("zoom must be within [0, 22]")
	}
	return nil
}
