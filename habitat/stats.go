package habitat

import (
	"github.com/pthm-cable/treevolution/components"
	"github.com/pthm-cable/treevolution/telemetry"
)

// Stats closes the current telemetry window and returns its statistics.
func (h *Habitat) Stats() telemetry.WindowStats {
	pop := telemetry.PopulationSnapshot{
		Plants:     len(h.plants),
		Airborne:   h.airborne.Len(),
		Grounded:   h.GroundedCount(),
		DeadCells:  len(h.deadCells),
		Energies:   make([]float64, len(h.plants)),
		CellCounts: make([]float64, len(h.plants)),
		Ages:       make([]float64, len(h.plants)),
	}
	for i, p := range h.plants {
		pop.Energies[i] = p.Energy()
		pop.CellCounts[i] = float64(p.CellCount())
		pop.Ages[i] = float64(p.Age())
		pop.Leaves += p.CountKind(components.Leaf)
		pop.Trunks += p.CountKind(components.Trunk)
		pop.MaxGeneration = max(pop.MaxGeneration, p.Generation())
	}
	return h.collector.Flush(h.tick, pop)
}

// FlushStats returns the window statistics once a full window has elapsed.
func (h *Habitat) FlushStats() (telemetry.WindowStats, bool) {
	if !h.collector.ShouldFlush(h.tick) {
		return telemetry.WindowStats{}, false
	}
	return h.Stats(), true
}

// PerfStats returns phase timings over the recent ticks.
func (h *Habitat) PerfStats() telemetry.PerfStats {
	return h.perf.Stats()
}

// RecordFrame feeds frame timing from a graphical front end into the perf collector.
func (h *Habitat) RecordFrame() {
	h.perf.RecordFrame()
}
