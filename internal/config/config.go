package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/schrodinger/internal/wave"
)

const (
	DefaultXLeft   = -5.0
	DefaultXRight  = 5.0
	DefaultPoints  = 501
	DefaultSamples = 1000
	DefaultTol     = 1e-6
	DefaultWorkers = 1
)

var ErrInvalidConfig = errors.New("config: invalid problem")

// Config describes one shooting problem: a potential on a grid and the
// states to solve on it.
type Config struct {
	Potential string             `yaml:"potential"`
	Params    map[string]float64 `yaml:"params,omitempty"`
	Units     string             `yaml:"units"`
	Scheme    string             `yaml:"scheme"`
	Grid      GridConfig         `yaml:"grid"`
	Search    SearchConfig       `yaml:"search"`
	States    []StateConfig      `yaml:"states"`
}

type GridConfig struct {
	XLeft  float64 `yaml:"x_left"`
	XRight float64 `yaml:"x_right"`
	Points int     `yaml:"points"`
}

type SearchConfig struct {
	Samples int     `yaml:"samples"`
	Tol     float64 `yaml:"tol"`
	Workers int     `yaml:"workers"`
}

// StateConfig asks for the state with Nodes nodes inside [EMin, EMax].
type StateConfig struct {
	Nodes int     `yaml:"nodes"`
	EMin  float64 `yaml:"e_min"`
	EMax  float64 `yaml:"e_max"`
}

func DefaultConfig() *Config {
	return &Config{
		Potential: "harmonic",
		Units:     wave.Dimensionless.String(),
		Scheme:    "numerov",
		Grid: GridConfig{
			XLeft:  DefaultXLeft,
			XRight: DefaultXRight,
			Points: DefaultPoints,
		},
		Search: SearchConfig{
			Samples: DefaultSamples,
			Tol:     DefaultTol,
			Workers: DefaultWorkers,
		},
		States: []StateConfig{{Nodes: 0, EMin: 0, EMax: 2}},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.States = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if len(cfg.States) == 0 {
		cfg.States = DefaultConfig().States
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets can be edited safely.
func (c *Config) Clone() *Config {
	out := *c
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	out.States = append([]StateConfig(nil), c.States...)
	return &out
}

func (c *Config) UnitSystem() (wave.Units, error) {
	return wave.ParseUnits(c.Units)
}

func (c *Config) Validate() error {
	if c.Potential == "" {
		return fmt.Errorf("%w: potential is required", ErrInvalidConfig)
	}
	if _, err := c.UnitSystem(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	g := c.Grid
	if g.Points < wave.MinPoints {
		return fmt.Errorf("%w: grid needs at least %d points, got %d", ErrInvalidConfig, wave.MinPoints, g.Points)
	}
	if !finite(g.XLeft) || !finite(g.XRight) || g.XLeft >= g.XRight {
		return fmt.Errorf("%w: grid needs x_left < x_right, got [%g, %g]", ErrInvalidConfig, g.XLeft, g.XRight)
	}

	s := c.Search
	if s.Samples < 2 {
		return fmt.Errorf("%w: search needs at least 2 samples, got %d", ErrInvalidConfig, s.Samples)
	}
	if !(s.Tol > 0) {
		return fmt.Errorf("%w: tol must be positive, got %g", ErrInvalidConfig, s.Tol)
	}
	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, s.Workers)
	}

	if len(c.States) == 0 {
		return fmt.Errorf("%w: no states requested", ErrInvalidConfig)
	}
	for i, st := range c.States {
		if st.Nodes < 0 {
			return fmt.Errorf("%w: state %d has negative node count", ErrInvalidConfig, i)
		}
		if !finite(st.EMin) || !finite(st.EMax) || st.EMin >= st.EMax {
			return fmt.Errorf("%w: state %d needs e_min < e_max, got [%g, %g]", ErrInvalidConfig, i, st.EMin, st.EMax)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
