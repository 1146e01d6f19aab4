package config

import (
	"fmt"
	"sort"
	"strings"
)

var hydrogenGrid = GridConfig{XLeft: 1e-6, XRight: 40, Points: 4001}

var Presets = map[string]map[string]*Config{
	"harmonic": {
		"ground": {
			Potential: "harmonic", Params: map[string]float64{"k": 1}, Units: "dimensionless", Scheme: "numerov",
			Grid:   GridConfig{XLeft: -5, XRight: 5, Points: 501},
			Search: SearchConfig{Samples: 1000, Tol: 1e-6, Workers: 1},
			States: []StateConfig{{Nodes: 0, EMin: 0, EMax: 2}},
		},
		"atomic": {
			Potential: "harmonic", Params: map[string]float64{"k": 0.5}, Units: "atomic", Scheme: "numerov",
			Grid:   GridConfig{XLeft: -5, XRight: 5, Points: 501},
			Search: SearchConfig{Samples: 1000, Tol: 1e-6, Workers: 1},
			States: []StateConfig{{Nodes: 0, EMin: 0, EMax: 2}, {Nodes: 1, EMin: 1, EMax: 3}},
		},
		"ladder": {
			Potential: "harmonic", Params: map[string]float64{"k": 1}, Units: "dimensionless", Scheme: "numerov",
			Grid:   GridConfig{XLeft: -5, XRight: 5, Points: 501},
			Search: SearchConfig{Samples: 1000, Tol: 1e-6, Workers: 4},
			States: []StateConfig{
				{Nodes: 0, EMin: 0, EMax: 2},
				{Nodes: 1, EMin: 2, EMax: 4},
				{Nodes: 2, EMin: 4, EMax: 6},
				{Nodes: 3, EMin: 6, EMax: 8},
			},
		},
	},
	"hydrogen": {
		"1s": {
			Potential: "hydrogen", Params: map[string]float64{"z": 1, "l": 0}, Units: "atomic", Scheme: "numerov",
			Grid:   hydrogenGrid,
			Search: SearchConfig{Samples: 1000, Tol: 1e-6, Workers: 4},
			States: []StateConfig{{Nodes: 0, EMin: -0.7, EMax: -0.3}, {Nodes: 1, EMin: -0.2, EMax: -0.1}},
		},
		"2p": {
			Potential: "hydrogen", Params: map[string]float64{"z": 1, "l": 1}, Units: "atomic", Scheme: "numerov",
			Grid:   hydrogenGrid,
			Search: SearchConfig{Samples: 1000, Tol: 1e-6, Workers: 4},
			States: []StateConfig{{Nodes: 0, EMin: -0.2, EMax: -0.1}},
		},
	},
	"doublewell": {
		"split": {
			Potential: "doublewell", Params: map[string]float64{"a": 1, "b": 2}, Units: "dimensionless", Scheme: "numerov",
			Grid:   GridConfig{XLeft: -4, XRight: 4, Points: 801},
			Search: SearchConfig{Samples: 1000, Tol: 1e-6, Workers: 4},
			States: []StateConfig{{Nodes: 0, EMin: 0, EMax: 4}, {Nodes: 1, EMin: 0, EMax: 4}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(potential, preset string) *Config {
	potentialPresets, ok := Presets[potential]
	if !ok {
		return nil
	}
	cfg, ok := potentialPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// Lookup resolves a "potential/preset" reference.
func Lookup(ref string) (*Config, error) {
	potential, preset, ok := strings.Cut(ref, "/")
	if !ok {
		return nil, fmt.Errorf("config: preset %q is not of the form potential/name", ref)
	}
	cfg := GetPreset(potential, preset)
	if cfg == nil {
		return nil, fmt.Errorf("config: unknown preset %q", ref)
	}
	return cfg, nil
}

func ListPresets(potential string) []string {
	potentialPresets, ok := Presets[potential]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(potentialPresets))
	for name := range potentialPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetRefs lists every preset as "potential/name".
func PresetRefs() []string {
	var refs []string
	for potential := range Presets {
		for _, name := range ListPresets(potential) {
			refs = append(refs, potential+"/"+name)
		}
	}
	sort.Strings(refs)
	return refs
}
