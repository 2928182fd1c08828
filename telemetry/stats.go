package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population at window end
	Plants    int `csv:"plants"`
	Airborne  int `csv:"airborne"`
	Grounded  int `csv:"grounded"`
	DeadCells int `csv:"dead_cells"`

	// Events during window
	Germinations   int `csv:"germinations"`
	Deaths         int `csv:"deaths"`
	SeedsSpawned   int `csv:"seeds_spawned"`
	SeedsInjected  int `csv:"seeds_injected"` // Floor and manual spawns
	SeedsStarved   int `csv:"seeds_starved"`
	Growths        int `csv:"growths"`
	GrowthsBlocked int `csv:"growths_blocked"`

	// Sunlight accounting, summed over columns and ticks
	LightAbsorbed float64 `csv:"light_absorbed"`
	LightBlocked  float64 `csv:"light_blocked"`
	LightEscaped  float64 `csv:"light_escaped"`
	LightEntered  float64 `csv:"light_entered"` // One unit per column per tick

	// Plant energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Plant size distribution
	CellsMean float64 `csv:"cells_mean"`
	CellsP90  float64 `csv:"cells_p90"`
	CellsMax  float64 `csv:"cells_max"`

	LeafFraction  float64 `csv:"leaf_fraction"`
	AgeMean       float64 `csv:"age_mean"`
	MaxGeneration int     `csv:"max_generation"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Percentile returns the empirical p-quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Summarize computes the population mean, standard deviation, percentiles
// and maximum of values. The input is not modified.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  floats.Max(sorted),
	}
}

// LightBalance reports absorbed+blocked+escaped minus entered. Zero within
// rounding when sunlight is conserved.
func (s WindowStats) LightBalance() float64 {
	return floats.Sum([]float64{s.LightAbsorbed, s.LightBlocked, s.LightEscaped}) - s.LightEntered
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("plants", s.Plants),
		slog.Int("airborne", s.Airborne),
		slog.Int("grounded", s.Grounded),
		slog.Int("dead_cells", s.DeadCells),
		slog.Int("germinations", s.Germinations),
		slog.Int("deaths", s.Deaths),
		slog.Int("seeds_spawned", s.SeedsSpawned),
		slog.Int("seeds_injected", s.SeedsInjected),
		slog.Int("seeds_starved", s.SeedsStarved),
		slog.Int("growths", s.Growths),
		slog.Int("growths_blocked", s.GrowthsBlocked),
		slog.Float64("light_absorbed", s.LightAbsorbed),
		slog.Float64("light_blocked", s.LightBlocked),
		slog.Float64("light_escaped", s.LightEscaped),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("cells_mean", s.CellsMean),
		slog.Float64("cells_max", s.CellsMax),
		slog.Float64("leaf_fraction", s.LeafFraction),
		slog.Float64("age_mean", s.AgeMean),
		slog.Int("max_generation", s.MaxGeneration),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"plants", s.Plants,
		"airborne", s.Airborne,
		"grounded", s.Grounded,
		"dead_cells", s.DeadCells,
		"germinations", s.Germinations,
		"deaths", s.Deaths,
		"seeds_spawned", s.SeedsSpawned,
		"seeds_starved", s.SeedsStarved,
		"growths", s.Growths,
		"energy_mean", s.EnergyMean,
		"energy_p10", s.EnergyP10,
		"energy_p50", s.EnergyP50,
		"energy_p90", s.EnergyP90,
		"cells_mean", s.CellsMean,
		"cells_max", s.CellsMax,
		"leaf_fraction", s.LeafFraction,
		"max_generation", s.MaxGeneration,
	)
}
