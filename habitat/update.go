package habitat

import (
	"slices"

	"github.com/pthm-cable/treevolution/components"
	"github.com/pthm-cable/treevolution/flora"
	"github.com/pthm-cable/treevolution/telemetry"
)

// Update advances the habitat by one tick. Phases run in a fixed order and
// each one completes, including its parallel work, before the next begins.
func (h *Habitat) Update() {
	h.perf.StartTick()

	// 1. Population floor
	h.perf.StartPhase(telemetry.PhasePopulationFloor)
	if h.TotalPlantCount() < h.minimumPlants {
		h.SpawnPlant()
	}

	// 2. Aging
	h.perf.StartPhase(telemetry.PhaseAging)
	h.pool.run(len(h.plants), func(start, end int) {
		for _, p := range h.plants[start:end] {
			p.IncreaseAge()
		}
	})

	// 3. Growth
	h.perf.StartPhase(telemetry.PhaseGrowth)
	h.updateGrowth()

	// 4. Death and seeding
	h.perf.StartPhase(telemetry.PhaseDeath)
	h.updateDeaths()

	// 5. Grid rebuild
	h.perf.StartPhase(telemetry.PhaseGridRebuild)
	h.rebuildGrid()

	// 6. Sunlight
	h.perf.StartPhase(telemetry.PhaseSunlight)
	h.updateSunlight()

	// 7. Energy settlement
	h.perf.StartPhase(telemetry.PhaseSettlement)
	h.settleEnergy()

	// 8. Dead cell decay
	h.perf.StartPhase(telemetry.PhaseDecay)
	rate := h.cfg.Lifecycle.DeadCellRemoveRate
	kept := h.deadCells[:0]
	for _, pos := range h.deadCells {
		if h.rng.Float64() >= rate {
			kept = append(kept, pos)
		}
	}
	h.deadCells = kept

	// 9. Selection refresh
	h.perf.StartPhase(telemetry.PhaseSelection)
	h.refreshSelection()

	// Everything below only moves seeds; the grid may now change for display.

	// 10. Seed flight
	h.perf.StartPhase(telemetry.PhaseSeedFlight)
	h.updateSeedFlight()

	// 11. Germination
	h.perf.StartPhase(telemetry.PhaseGermination)
	h.updateGermination()

	// 12. Seed overlay
	h.perf.StartPhase(telemetry.PhaseOverlay)
	h.airborne.each(func(pos components.GridPos, _ *flora.Seed) {
		h.grid[h.index(pos)] = components.CellType{Kind: components.Seed}
	})

	h.perf.EndTick()
	h.tick++
}

// updateGrowth collects each plant's proposals in parallel, keeps those whose
// target is inside the rows and empty in the current grid, then applies up to
// MaxGrowthsPerTick per plant chosen uniformly without replacement.
func (h *Habitat) updateGrowth() {
	n := len(h.plants)
	for len(h.proposals) < n {
		h.proposals = append(h.proposals, nil)
	}
	h.proposals = h.proposals[:n]
	if cap(h.rawCounts) < n {
		h.rawCounts = make([]int, n)
	}
	h.rawCounts = h.rawCounts[:n]

	// Compute: reads the grid, writes only slot i.
	h.pool.run(n, func(start, end int) {
		for i := start; i < end; i++ {
			props := h.plants[i].GrowthProposals(h.proposals[i][:0], h.cfg)
			h.rawCounts[i] = len(props)
			kept := props[:0]
			for _, pr := range props {
				if !h.inRows(pr.Target.Y) {
					continue
				}
				pr.Target = pr.Target.Wrap(h.width)
				if !h.grid[h.index(pr.Target)].IsEmpty() {
					continue
				}
				kept = append(kept, pr)
			}
			h.proposals[i] = kept
		}
	})

	// Apply: single-threaded, all randomness drawn here.
	maxGrowths := h.cfg.Growth.MaxGrowthsPerTick
	for i, p := range h.plants {
		cands := h.proposals[i]
		h.collector.RecordGrowthsBlocked(h.rawCounts[i] - len(cands))

		h.chosen = h.chosen[:0]
		for len(h.chosen) < maxGrowths && len(cands) > 0 {
			j := h.rng.IntN(len(cands))
			pick := cands[j]
			cands[j] = cands[len(cands)-1]
			cands = cands[:len(cands)-1]

			// Two parents may propose the same target; a plant grows it once.
			if slices.Contains(h.chosen, pick.Target) {
				continue
			}
			h.chosen = append(h.chosen, pick.Target)
			p.AddCell(pick.Target, pick.Cell, pick.ResponseIx)
			p.GiveEnergy(-pick.Cost)
		}
		h.collector.RecordGrowths(len(h.chosen))
	}
}

// updateDeaths removes dead plants. Each of their cells may release an
// offspring seed, and every cell position becomes a dead marker.
func (h *Habitat) updateDeaths() {
	spawnRate := h.cfg.Lifecycle.SeedSpawnRate
	alive := h.plants[:0]
	for _, p := range h.plants {
		if !p.IsDead(h.cfg) {
			alive = append(alive, p)
			continue
		}
		for _, c := range p.Cells() {
			if h.rng.Float64() < spawnRate {
				h.airborne.add(p.NewOffspring(h.newID(), c.Pos, h.rng, h.cfg))
				h.collector.RecordSeedSpawned()
			}
		}
		for _, c := range p.Cells() {
			h.deadCells = append(h.deadCells, c.Pos)
		}
		h.collector.RecordDeath()
	}
	clear(h.plants[len(alive):])
	h.plants = alive
}

// rebuildGrid clears the grid and writes trunks, then leaves, then dead
// markers where no living cell claimed the slot.
func (h *Habitat) rebuildGrid() {
	clear(h.grid)
	for _, kind := range []components.CellKind{components.Trunk, components.Leaf} {
		for _, p := range h.plants {
			for _, c := range p.Cells() {
				if c.Cell.Kind == kind {
					h.grid[h.index(c.Pos)] = c.Cell
				}
			}
		}
	}
	dead := components.CellType{Kind: components.Dead}
	for _, pos := range h.deadCells {
		if i := h.index(pos); h.grid[i].IsEmpty() {
			h.grid[i] = dead
		}
	}
}

// updateSunlight lights every column independently.
func (h *Habitat) updateSunlight() {
	leafRate := h.cfg.Light.LeafAbsorbRate
	trunkRate := h.cfg.Light.TrunkAbsorbRate
	h.pool.run(h.width, func(start, end int) {
		for x := start; x < end; x++ {
			a, b, e := propagateLight(h.column(x), leafRate, trunkRate)
			h.light[x] = [3]float64{a, b, e}
		}
	})

	var absorbed, blocked, escaped float64
	for _, l := range h.light {
		absorbed += l[0]
		blocked += l[1]
		escaped += l[2]
	}
	h.collector.RecordLight(absorbed, blocked, escaped, h.width)
}

// settleEnergy credits each plant with the light its leaves captured in the
// grid and charges upkeep for every owned cell.
func (h *Habitat) settleEnergy() {
	sunPower := h.cfg.Energy.SunPower
	upkeep := h.cfg.Energy.CellSustainCost
	h.pool.run(len(h.plants), func(start, end int) {
		for _, p := range h.plants[start:end] {
			var gained float64
			for _, c := range p.Cells() {
				if c.Cell.Kind != components.Leaf {
					continue
				}
				if g := h.grid[h.index(c.Pos)]; g.Kind == components.Leaf {
					gained += sunPower * g.SunAbsorbed
				}
			}
			p.GiveEnergy(gained - upkeep*float64(p.CellCount()))
		}
	})
}

// updateSeedFlight drops airborne seeds one row and buffers the ones that
// landed under their column.
func (h *Habitat) updateSeedFlight() {
	d := h.cfg.Lifecycle.SeedDrift
	drift := func() int { return h.rng.IntN(2*d+1) - d }

	h.landed = h.airborne.fall(h.width, drift, h.landed[:0])
	for _, s := range h.landed {
		x := s.Pos().X
		h.grounded[x] = append(h.grounded[x], s)
	}
	clear(h.landed)
}

// updateGermination roots the richest buffered seed of every column whose
// ground cell is empty, then drains the rest and drops exhausted ones.
func (h *Habitat) updateGermination() {
	for x, buf := range h.grounded {
		if len(buf) == 0 || !h.CellAt(x, 0).IsEmpty() {
			continue
		}
		best := 0
		for i, s := range buf {
			if s.Energy() > buf[best].Energy() {
				best = i
			}
		}
		seed := buf[best]
		h.grounded[x] = slices.Delete(buf, best, best+1)
		h.plants = append(h.plants, seed.CreateRoot())
		h.collector.RecordGermination()
	}

	drain := h.cfg.Energy.SeedDrain
	for x, buf := range h.grounded {
		kept := buf[:0]
		for _, s := range buf {
			s.GiveEnergy(-drain)
			if s.Energy() <= 0 {
				h.collector.RecordSeedStarved()
				continue
			}
			kept = append(kept, s)
		}
		clear(buf[len(kept):])
		h.grounded[x] = kept
	}
}
