// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	// Seed for the habitat RNG (0 = time-based).
	Seed int64 `yaml:"seed"`

	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Genome     GenomeConfig     `yaml:"genome"`
	Response   ResponseConfig   `yaml:"response"`
	Growth     GrowthConfig     `yaml:"growth"`
	Light      LightConfig      `yaml:"light"`
	Energy     EnergyConfig     `yaml:"energy"`
	Lifecycle  LifecycleConfig  `yaml:"lifecycle"`
	Parallel   ParallelConfig   `yaml:"parallel"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Screen     ScreenConfig     `yaml:"screen"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the grid dimensions.
// The grid wraps horizontally; row 0 is the ground and row Height-1 the canopy.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds population floor parameters.
type PopulationConfig struct {
	Minimum int `yaml:"minimum"` // Seeds are spawned one per tick while the total count is below this
}

// GenomeConfig holds genetic sequence parameters.
type GenomeConfig struct {
	Size         int     `yaml:"size"`          // Number of 16-bit values per genome
	MutationRate float64 `yaml:"mutation_rate"` // Per-value replacement probability for offspring
}

// ResponseConfig holds growth-rule decoding parameters.
type ResponseConfig struct {
	ClusterCount          int     `yaml:"cluster_count"`           // Response clusters per plant
	HeightThresholdChance float64 `yaml:"height_threshold_chance"` // Chance a response carries a height gate
}

// GrowthConfig holds growth economics.
type GrowthConfig struct {
	CellGrowthCost      float64 `yaml:"cell_growth_cost"`      // Base energy cost of one new cell
	RootConnectionDecay float64 `yaml:"root_connection_decay"` // Trunk connection multiplier per step from root
	MaxGrowthsPerTick   int     `yaml:"max_growths_per_tick"`  // Growths applied per plant per tick
}

// LightConfig holds sunlight propagation rates.
type LightConfig struct {
	LeafAbsorbRate  float64 `yaml:"leaf_absorb_rate"`  // Fraction of incoming light a leaf captures
	TrunkAbsorbRate float64 `yaml:"trunk_absorb_rate"` // Fraction of incoming light a trunk or dead cell blocks
}

// EnergyConfig holds energy bookkeeping parameters.
type EnergyConfig struct {
	Default         float64 `yaml:"default"`           // Starting energy of a fresh seed
	LifetimeFactor  float64 `yaml:"lifetime_factor"`   // Extra offspring energy per tick of parent age
	SunPower        float64 `yaml:"sun_power"`         // Energy per unit of absorbed light
	CellSustainCost float64 `yaml:"cell_sustain_cost"` // Upkeep per owned cell per tick
	SeedDrain       float64 `yaml:"seed_drain"`        // Energy lost per tick by a waiting grounded seed
	StarvationDeath bool    `yaml:"starvation_death"`  // Plants with negative energy die
}

// LifecycleConfig holds aging, reproduction and decay parameters.
type LifecycleConfig struct {
	BaseMaxAge         int     `yaml:"base_max_age"`
	MaxAgeCellModifier int     `yaml:"max_age_cell_modifier"` // Extra lifetime per owned cell
	SeedSpawnRate      float64 `yaml:"seed_spawn_rate"`       // Chance per dead cell to release a seed
	DeadCellRemoveRate float64 `yaml:"dead_cell_remove_rate"` // Chance per tick a dead marker decays
	SeedDrift          int     `yaml:"seed_drift"`            // Max horizontal drift per tick of an airborne seed
}

// ParallelConfig holds worker pool parameters.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // Minimum item count before a phase fans out
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
	PerfWindow  int `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// ScreenConfig holds display settings for the graphical front end.
type ScreenConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	TargetFPS      int     `yaml:"target_fps"`
	TicksPerSecond int     `yaml:"ticks_per_second"`
	CellSize       float64 `yaml:"cell_size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cells           int     // World.Width * World.Height
	MaxLeafAbsorbed float64 // Light.LeafAbsorbRate, the brightest a leaf can get
	DefaultMinimum  int     // World.Width / 10, the front end's default population floor
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports every invalid parameter.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %dx%d", c.World.Width, c.World.Height))
	}
	if c.Population.Minimum < 0 {
		errs = append(errs, fmt.Errorf("population.minimum must not be negative, got %d", c.Population.Minimum))
	}
	if c.Genome.Size <= 0 {
		errs = append(errs, fmt.Errorf("genome.size must be positive, got %d", c.Genome.Size))
	}
	if c.Response.ClusterCount <= 0 {
		errs = append(errs, fmt.Errorf("response.cluster_count must be positive, got %d", c.Response.ClusterCount))
	}
	if c.Growth.CellGrowthCost < 0 {
		errs = append(errs, fmt.Errorf("growth.cell_growth_cost must not be negative, got %v", c.Growth.CellGrowthCost))
	}
	if c.Growth.RootConnectionDecay <= 0 || c.Growth.RootConnectionDecay >= 1 {
		errs = append(errs, fmt.Errorf("growth.root_connection_decay must be in (0,1), got %v", c.Growth.RootConnectionDecay))
	}
	if c.Growth.MaxGrowthsPerTick < 0 {
		errs = append(errs, fmt.Errorf("growth.max_growths_per_tick must not be negative, got %d", c.Growth.MaxGrowthsPerTick))
	}
	if c.Lifecycle.SeedDrift < 0 {
		errs = append(errs, fmt.Errorf("lifecycle.seed_drift must not be negative, got %d", c.Lifecycle.SeedDrift))
	}

	unit := []struct {
		name string
		v    float64
	}{
		{"genome.mutation_rate", c.Genome.MutationRate},
		{"response.height_threshold_chance", c.Response.HeightThresholdChance},
		{"light.leaf_absorb_rate", c.Light.LeafAbsorbRate},
		{"light.trunk_absorb_rate", c.Light.TrunkAbsorbRate},
		{"lifecycle.seed_spawn_rate", c.Lifecycle.SeedSpawnRate},
		{"lifecycle.dead_cell_remove_rate", c.Lifecycle.DeadCellRemoveRate},
	}
	for _, u := range unit {
		if u.v < 0 || u.v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0,1], got %v", u.name, u.v))
		}
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Cells = c.World.Width * c.World.Height
	c.Derived.MaxLeafAbsorbed = c.Light.LeafAbsorbRate
	c.Derived.DefaultMinimum = c.World.Width / 10
}

// Refresh recomputes derived values after fields were edited in code.
func (c *Config) Refresh() {
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
