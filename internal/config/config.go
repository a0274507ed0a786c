// Package config loads estimator settings from an optional YAML file and
// the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/powdercalc/pkg/estimate"
	"github.com/philipparndt/powdercalc/pkg/orientation"
	"github.com/philipparndt/powdercalc/pkg/pricing"
)

const (
	EnvConfig   = "POWDERCALC_CONFIG"
	EnvCurrency = "POWDERCALC_CURRENCY"
	EnvPort     = "PORT"

	defaultPort = "8080"
)

// File is the YAML settings document. Unset fields keep their defaults.
type File struct {
	Currency      string                    `yaml:"currency"`
	IncludeGlaze  *bool                     `yaml:"include_glaze"`
	WallMargin    *float64                  `yaml:"wall_margin"`
	ObjectSpacing *float64                  `yaml:"object_spacing"`
	Orientation   string                    `yaml:"orientation"`
	Prices        map[string]pricing.Prices `yaml:"prices"`
}

// Config holds the resolved settings and where they came from.
type Config struct {
	// Path is the settings file that was read, empty when none was.
	Path     string
	Port     string
	Settings estimate.Settings
}

// Load resolves settings from defaults, then the file at path (or
// $POWDERCALC_CONFIG when path is empty), then the environment.
func Load(path string) (Config, error) {
	cfg := Config{
		Port:     os.Getenv(EnvPort),
		Settings: estimate.DefaultSettings(),
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		f, err := Decode(bytes.NewReader(data))
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if err := f.Apply(&cfg.Settings); err != nil {
			return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
		}
		cfg.Path = path
	}

	if c := os.Getenv(EnvCurrency); c != "" {
		cfg.Settings.Currency = pricing.ParseCurrency(c)
	}

	if err := cfg.Settings.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode reads a settings document, rejecting unknown keys. An empty
// document is valid.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	return f, nil
}

// Apply overlays the fields set in f onto s
func (f File) Apply(s *estimate.Settings) error {
	if f.Currency != "" {
		s.Currency = pricing.ParseCurrency(f.Currency)
	}
	if f.IncludeGlaze != nil {
		s.IncludeGlaze = *f.IncludeGlaze
	}
	if f.WallMargin != nil {
		s.Packing.WallMargin = *f.WallMargin
	}
	if f.ObjectSpacing != nil {
		s.Packing.ObjectSpacing = *f.ObjectSpacing
	}
	if f.Orientation != "" {
		t, err := orientation.ParseType(f.Orientation)
		if err != nil {
			return err
		}
		s.Orientation = t
	}

	if len(f.Prices) == 0 {
		return nil
	}
	s.Pricing = s.Pricing.Clone()
	codes := make([]string, 0, len(f.Prices))
	for code := range f.Prices {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if err := s.Pricing.Set(pricing.ParseCurrency(code), f.Prices[code]); err != nil {
			return fmt.Errorf("prices for %s: %w", code, err)
		}
	}
	return nil
}
