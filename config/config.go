// Package config loads the optional YAML run configuration. An empty path
// yields the defaults, so a configuration file is never required.
package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/satoshi-pes/geoloc/geodesy"
)

// Policy names for rows whose distances do not intersect.
const (
	PolicyClamp = "clamp" // return the in-plane point, flagged approx
	PolicyFail  = "fail"  // no coordinate, status no-intersection
)

type Config struct {
	// EarthRadiusM is the spherical model radius in meters. Absent or
	// zero selects the mean Earth radius default.
	EarthRadiusM   float64 `yaml:"earth_radius_m"`
	NoIntersection string  `yaml:"no_intersection"`
	Workers        int     `yaml:"workers"`
	InputDelim     string  `yaml:"input_delim"`
	OutputDelim    string  `yaml:"output_delim"`
}

// Load reads the YAML file at path, applies defaults, and validates. An
// empty path skips the file and returns the defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	}

	if cfg.EarthRadiusM < 0 {
		return Config{}, fmt.Errorf("earth_radius_m must not be negative (0 means the default)")
	}
	if cfg.EarthRadiusM == 0 {
		cfg.EarthRadiusM = geodesy.EarthRadius
	}

	if cfg.NoIntersection == "" {
		cfg.NoIntersection = PolicyClamp
	}
	if cfg.NoIntersection != PolicyClamp && cfg.NoIntersection != PolicyFail {
		return Config{}, fmt.Errorf("no_intersection must be %q or %q", PolicyClamp, PolicyFail)
	}

	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("workers must be >= 0")
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}

	if cfg.InputDelim == "" {
		cfg.InputDelim = ","
	}
	if cfg.OutputDelim == "" {
		cfg.OutputDelim = "\t"
	}
	for name, d := range map[string]string{"input_delim": cfg.InputDelim, "output_delim": cfg.OutputDelim} {
		if utf8.RuneCountInString(d) != 1 {
			return Config{}, fmt.Errorf("%s must be exactly one character", name)
		}
	}

	return cfg, nil
}

// Clamp reports whether non-intersecting rows get a clamped approximate
// coordinate instead of a failure status.
func (c Config) Clamp() bool {
	return c.NoIntersection == PolicyClamp
}

// InputComma returns the input field delimiter as a rune.
func (c Config) InputComma() rune {
	r, _ := utf8.DecodeRuneInString(c.InputDelim)
	return r
}

// OutputComma returns the output field delimiter as a rune.
func (c Config) OutputComma() rune {
	r, _ := utf8.DecodeRuneInString(c.OutputDelim)
	return r
}
