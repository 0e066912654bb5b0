// Package config loads composer settings from a yaml file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/world-composer/internal/compose"
	"github.com/talgya/world-composer/internal/filler"
	"github.com/talgya/world-composer/internal/placement"
	"github.com/talgya/world-composer/internal/routing"
)

// Config mirrors the yaml file. Zero values fall back to defaults.
type Config struct {
	Seed              int64   `yaml:"seed"`
	MaxRetries        int     `yaml:"max_retries"`
	MandatoryPriority int     `yaml:"mandatory_priority"`
	Margin            int     `yaml:"margin"`
	LandRadius        int     `yaml:"land_radius"`
	CoastRoughness    float64 `yaml:"coast_roughness"`
	MountainAdjacency int     `yaml:"mountain_adjacency"`
	ContinentDepth    int     `yaml:"continent_depth"`
	MaxTraversal      int     `yaml:"max_traversal"`

	DBPath       string `yaml:"db_path"`
	SnapshotPath string `yaml:"snapshot_path"`
	LogLevel     string `yaml:"log_level"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	p := placement.DefaultConfig()
	f := filler.DefaultConfig()
	r := routing.DefaultConfig()
	return Config{
		Seed:              42,
		MaxRetries:        p.MaxRetries,
		MandatoryPriority: p.MandatoryPriority,
		Margin:            f.Margin,
		LandRadius:        f.LandRadius,
		CoastRoughness:    f.CoastRoughness,
		MountainAdjacency: f.MountainAdjacency,
		ContinentDepth:    f.ContinentDepth,
		MaxTraversal:      r.MaxTraversal,
		LogLevel:          "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize clamps values into usable ranges.
func (c *Config) Normalize() {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.MandatoryPriority < 0 {
		c.MandatoryPriority = 0
	}
	if c.MandatoryPriority > 10 {
		c.MandatoryPriority = 10
	}
	if c.Margin < 0 {
		c.Margin = 0
	}
	if c.LandRadius < 0 {
		c.LandRadius = 0
	}
	if c.CoastRoughness < 0 {
		c.CoastRoughness = 0
	}
	if c.MountainAdjacency < 1 {
		c.MountainAdjacency = 1
	}
	if c.MountainAdjacency > 6 {
		c.MountainAdjacency = 6
	}
	if c.ContinentDepth < 0 {
		c.ContinentDepth = 0
	}
	if c.MaxTraversal <= 0 {
		c.MaxTraversal = routing.DefaultConfig().MaxTraversal
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Options converts the file settings into composer options.
func (c Config) Options() compose.Options {
	return compose.Options{
		Seed: c.Seed,
		Placement: placement.Config{
			MaxRetries:        c.MaxRetries,
			MandatoryPriority: c.MandatoryPriority,
		},
		Filler: filler.Config{
			Margin:            c.Margin,
			LandRadius:        c.LandRadius,
			CoastRoughness:    c.CoastRoughness,
			MountainAdjacency: c.MountainAdjacency,
			ContinentDepth:    c.ContinentDepth,
		},
		Routing: routing.Config{MaxTraversal: c.MaxTraversal},
	}
}

// SlogLevel maps LogLevel onto a slog level; unknown names mean info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
