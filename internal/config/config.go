// Package config loads editor settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"geoedit/internal/dataset"
)

// Config holds the tunables of the editing session and its boundaries.
type Config struct {
	// Degrees of rotation per screen cell dragged.
	RotationSensitivity float64 `yaml:"rotation_sensitivity"`
	// Metres of altitude per screen cell dragged vertically.
	AltitudeSensitivity float64 `yaml:"altitude_sensitivity"`
	// Lon/lat offset applied to duplicated points.
	DuplicateOffset  float64 `yaml:"duplicate_offset"`
	SchemaSampleRows int     `yaml:"schema_sample_rows"`

	DBPath  string `yaml:"db_path"`
	LogFile string `yaml:"log_file"`

	// Column names used when a file's headers cannot be auto-detected.
	Mapping dataset.Mapping `yaml:"mapping"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		RotationSensitivity: 0.5,
		AltitudeSensitivity: 0.5,
		DuplicateOffset:     0.0001,
		SchemaSampleRows:    dataset.DefaultSampleRows,
		DBPath:              "geoedit.db",
		LogFile:             "geoedit.log",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the session cannot work with.
func (c Config) Validate() error {
	switch {
	case c.RotationSensitivity <= 0:
		return errors.New("config: rotation_sensitivity must be positive")
	case c.AltitudeSensitivity <= 0:
		return errors.New("config: altitude_sensitivity must be positive")
	case c.DuplicateOffset < 0:
		return errors.New("config: duplicate_offset must not be negative")
	case c.SchemaSampleRows <= 0:
		return errors.New("config: schema_sample_rows must be positive")
	}
	return nil
}

// Save writes c as YAML.
func (c Config) Save(path string) error {
	b, err := yaml.Marshal(&c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// MappingFor detects the coordinate columns of headers. Names set in the
// configuration take precedence over detection.
func (c Config) MappingFor(headers []string) dataset.Mapping {
	d := dataset.DetectMapping(headers)
	o := c.Mapping
	pick := func(over, det string) string {
		if over != "" {
			return over
		}
		return det
	}
	return dataset.Mapping{
		Lat:         pick(o.Lat, d.Lat),
		Lon:         pick(o.Lon, d.Lon),
		Alt:         pick(o.Alt, d.Alt),
		Heading:     pick(o.Heading, d.Heading),
		GimbalPitch: pick(o.GimbalPitch, d.GimbalPitch),
	}
}
