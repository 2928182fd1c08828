package main

import (
	"github.com/pthm-cable/treevolution/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before it is applied

	set func(cfg *config.Config, v float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Energy
			{Name: "sun_power", Path: "energy.sun_power", Min: 0.2, Max: 4.0, Default: 1.0,
				set: func(c *config.Config, v float64) { c.Energy.SunPower = v }},
			{Name: "cell_sustain_cost", Path: "energy.cell_sustain_cost", Min: 0.01, Max: 0.5, Default: 0.1,
				set: func(c *config.Config, v float64) { c.Energy.CellSustainCost = v }},
			{Name: "lifetime_factor", Path: "energy.lifetime_factor", Min: 0, Max: 0.2, Default: 0.05,
				set: func(c *config.Config, v float64) { c.Energy.LifetimeFactor = v }},
			// Growth
			{Name: "cell_growth_cost", Path: "growth.cell_growth_cost", Min: 0.5, Max: 8.0, Default: 2.0,
				set: func(c *config.Config, v float64) { c.Growth.CellGrowthCost = v }},
			{Name: "root_connection_decay", Path: "growth.root_connection_decay", Min: 0.5, Max: 0.99, Default: 0.9,
				set: func(c *config.Config, v float64) { c.Growth.RootConnectionDecay = v }},
			// Genetics
			{Name: "mutation_rate", Path: "genome.mutation_rate", Min: 0.001, Max: 0.1, Default: 0.01,
				set: func(c *config.Config, v float64) { c.Genome.MutationRate = v }},
			// Lifecycle
			{Name: "seed_spawn_rate", Path: "lifecycle.seed_spawn_rate", Min: 0.01, Max: 0.5, Default: 0.1,
				set: func(c *config.Config, v float64) { c.Lifecycle.SeedSpawnRate = v }},
			{Name: "base_max_age", Path: "lifecycle.base_max_age", Min: 20, Max: 400, Default: 100, Integer: true,
				set: func(c *config.Config, v float64) { c.Lifecycle.BaseMaxAge = int(v) }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds. Integer parameters are rounded.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = float64(int(val + 0.5))
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		spec.set(cfg, clamped[i])
	}
	cfg.Refresh()
}
