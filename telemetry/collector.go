package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	windowStartTick     int32

	// Event counters for current window
	germinations   int
	deaths         int
	seedsSpawned   int
	seedsInjected  int
	seedsStarved   int
	growths        int
	growthsBlocked int

	lightAbsorbed float64
	lightBlocked  float64
	lightEscaped  float64
	lightEntered  float64
}

// PopulationSnapshot is the habitat state sampled when a window closes.
type PopulationSnapshot struct {
	Plants, Airborne, Grounded, DeadCells int

	Energies   []float64 // One per rooted plant
	CellCounts []float64
	Ages       []float64

	Leaves, Trunks int
	MaxGeneration  int
}

// NewCollector creates a collector that closes a window every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: int32(windowTicks)}
}

func (c *Collector) RecordGermination()         { c.germinations++ }
func (c *Collector) RecordDeath()               { c.deaths++ }
func (c *Collector) RecordSeedSpawned()         { c.seedsSpawned++ }
func (c *Collector) RecordSeedInjected()        { c.seedsInjected++ }
func (c *Collector) RecordSeedStarved()         { c.seedsStarved++ }
func (c *Collector) RecordGrowths(n int)        { c.growths += n }
func (c *Collector) RecordGrowthsBlocked(n int) { c.growthsBlocked += n }

// RecordLight adds one sunlight pass. columns is the number of columns lit.
func (c *Collector) RecordLight(absorbed, blocked, escaped float64, columns int) {
	c.lightAbsorbed += absorbed
	c.lightBlocked += blocked
	c.lightEscaped += escaped
	c.lightEntered += float64(columns)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, pop PopulationSnapshot) WindowStats {
	energy := Summarize(pop.Energies)
	cells := Summarize(pop.CellCounts)
	ages := Summarize(pop.Ages)

	var leafFraction float64
	if total := pop.Leaves + pop.Trunks; total > 0 {
		leafFraction = float64(pop.Leaves) / float64(total)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Plants:    pop.Plants,
		Airborne:  pop.Airborne,
		Grounded:  pop.Grounded,
		DeadCells: pop.DeadCells,

		Germinations:   c.germinations,
		Deaths:         c.deaths,
		SeedsSpawned:   c.seedsSpawned,
		SeedsInjected:  c.seedsInjected,
		SeedsStarved:   c.seedsStarved,
		Growths:        c.growths,
		GrowthsBlocked: c.growthsBlocked,

		LightAbsorbed: c.lightAbsorbed,
		LightBlocked:  c.lightBlocked,
		LightEscaped:  c.lightEscaped,
		LightEntered:  c.lightEntered,

		EnergyMean: energy.Mean,
		EnergyStd:  energy.Std,
		EnergyP10:  energy.P10,
		EnergyP50:  energy.P50,
		EnergyP90:  energy.P90,

		CellsMean: cells.Mean,
		CellsP90:  cells.P90,
		CellsMax:  cells.Max,

		LeafFraction:  leafFraction,
		AgeMean:       ages.Mean,
		MaxGeneration: pop.MaxGeneration,
	}

	// Reset for next window
	*c = Collector{
		windowDurationTicks: c.windowDurationTicks,
		windowStartTick:     currentTick,
	}

	return stats
}
