package flora

import (
	"math/rand/v2"

	"github.com/pthm-cable/treevolution/components"
	"github.com/pthm-cable/treevolution/config"
	"github.com/pthm-cable/treevolution/genome"
)

// Plant is a rooted organism. It owns at least its root cell.
type Plant struct {
	id         uint64
	cells      []components.PlantCell
	pos        components.GridPos
	energy     float64
	age        int
	generation int
	genome     *genome.Genome
	clusters   []genome.ResponseCluster
}

// GrowthProposal is one candidate new cell.
type GrowthProposal struct {
	Target     components.GridPos
	ResponseIx int
	Cell       components.CellType
	Cost       float64
}

func (p *Plant) ID() uint64                      { return p.id }
func (p *Plant) Pos() components.GridPos         { return p.pos }
func (p *Plant) Energy() float64                 { return p.energy }
func (p *Plant) Age() int                        { return p.age }
func (p *Plant) Generation() int                 { return p.generation }
func (p *Plant) Genome() *genome.Genome          { return p.genome }
func (p *Plant) CellCount() int                  { return len(p.cells) }
func (p *Plant) Cell(i int) components.PlantCell { return p.cells[i] }

// Cells returns the owned cells in insertion order. Callers must not modify the slice.
func (p *Plant) Cells() []components.PlantCell { return p.cells }

// CountKind returns how many owned cells are of kind k.
func (p *Plant) CountKind(k components.CellKind) int {
	n := 0
	for _, c := range p.cells {
		if c.Cell.Kind == k {
			n++
		}
	}
	return n
}

// CellIndexAt returns the index of the cell at pos, or -1.
func (p *Plant) CellIndexAt(pos components.GridPos) int {
	for i, c := range p.cells {
		if c.Pos == pos {
			return i
		}
	}
	return -1
}

// AddCell appends a cell.
func (p *Plant) AddCell(pos components.GridPos, cell components.CellType, responseIx int) {
	p.cells = append(p.cells, components.PlantCell{Pos: pos, Cell: cell, ResponseIx: responseIx})
}

// GiveEnergy adds amount (negative to spend).
func (p *Plant) GiveEnergy(amount float64) { p.energy += amount }

// IncreaseAge advances the plant's age by one tick.
func (p *Plant) IncreaseAge() { p.age++ }

// MaxAge is the age past which the plant dies. Larger plants live longer.
func (p *Plant) MaxAge(cfg *config.Config) int {
	return cfg.Lifecycle.BaseMaxAge + cfg.Lifecycle.MaxAgeCellModifier*len(p.cells)
}

// IsDead reports whether the plant has outlived its max age, or starved
// when starvation death is enabled.
func (p *Plant) IsDead(cfg *config.Config) bool {
	if p.age > p.MaxAge(cfg) {
		return true
	}
	return cfg.Energy.StarvationDeath && p.energy < 0
}

// GrowthProposals appends a proposal for every active response of every
// trunk cell. Leaves never grow. A grown trunk's connection is the parent's
// scaled by the decay factor, and the cost scales with the parent's inverse
// connection. Targets are neither wrapped nor checked against the grid.
func (p *Plant) GrowthProposals(dst []GrowthProposal, cfg *config.Config) []GrowthProposal {
	var fired []genome.Activation
	for _, cell := range p.cells {
		if cell.Cell.Kind != components.Trunk {
			continue
		}
		rc := cell.Cell.RootConnection
		cluster := &p.clusters[cell.ResponseIx]

		fired = cluster.Activate(fired[:0], cell.Pos, p.energy, rc, cfg.Growth.CellGrowthCost)
		for _, a := range fired {
			newCell := a.Cell
			if newCell.Kind == components.Trunk {
				newCell.RootConnection = rc * cfg.Growth.RootConnectionDecay
			}
			dst = append(dst, GrowthProposal{
				Target:     a.Target,
				ResponseIx: a.ResponseIx,
				Cell:       newCell,
				Cost:       cfg.Growth.CellGrowthCost / rc,
			})
		}
	}
	return dst
}

// NewOffspring returns a seed at pos carrying one mutated copy of the
// plant's genome. Older parents endow more energy.
func (p *Plant) NewOffspring(id uint64, pos components.GridPos, rng *rand.Rand, cfg *config.Config) *Seed {
	child := p.genome.CreateOffspring(cfg.Genome.MutationRate, rng)
	s := NewSeedFromGenome(id, pos, child, cfg)
	s.energy = cfg.Energy.Default + float64(p.age)*cfg.Energy.LifetimeFactor
	s.generation = p.generation + 1
	return s
}
