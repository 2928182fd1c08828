// Package flora implements the plant organism: an un-rooted Seed that drifts
// and waits to germinate, and the rooted Plant it becomes.
package flora

import (
	"fmt"
	"math/rand/v2"

	"github.com/pthm-cable/treevolution/components"
	"github.com/pthm-cable/treevolution/config"
	"github.com/pthm-cable/treevolution/genome"
)

// Seed is a plant that has not rooted yet. It cannot grow or die of age;
// the habitat drops it once its energy runs out.
type Seed struct {
	id         uint64
	pos        components.GridPos
	energy     float64
	generation int
	genome     *genome.Genome
	clusters   []genome.ResponseCluster
}

// DecodeParams builds genome decode parameters from the configuration.
func DecodeParams(cfg *config.Config) genome.DecodeParams {
	return genome.DecodeParams{
		ClusterCount:          cfg.Response.ClusterCount,
		HeightThresholdChance: cfg.Response.HeightThresholdChance,
		GridHeight:            cfg.World.Height,
	}
}

// NewSeed returns a seed with a fresh random genome and default energy.
func NewSeed(id uint64, pos components.GridPos, rng *rand.Rand, cfg *config.Config) *Seed {
	return NewSeedFromGenome(id, pos, genome.New(cfg.Genome.Size, rng), cfg)
}

// NewSeedFromGenome decodes the response clusters of g and wraps it in a seed.
func NewSeedFromGenome(id uint64, pos components.GridPos, g *genome.Genome, cfg *config.Config) *Seed {
	return &Seed{
		id:       id,
		pos:      pos,
		energy:   cfg.Energy.Default,
		genome:   g,
		clusters: genome.DecodeClusters(g, DecodeParams(cfg)),
	}
}

func (s *Seed) ID() uint64                         { return s.id }
func (s *Seed) Pos() components.GridPos            { return s.pos }
func (s *Seed) Energy() float64                    { return s.energy }
func (s *Seed) Generation() int                    { return s.generation }
func (s *Seed) Genome() *genome.Genome             { return s.genome }
func (s *Seed) Clusters() []genome.ResponseCluster { return s.clusters }

// SetPos moves the seed.
func (s *Seed) SetPos(pos components.GridPos) { s.pos = pos }

// GiveEnergy adds amount (negative to drain).
func (s *Seed) GiveEnergy(amount float64) { s.energy += amount }

// CreateRoot turns the seed into a rooted plant with a single trunk cell at
// its position. The seed must be on the ground row and must not be reused.
func (s *Seed) CreateRoot() *Plant {
	if s.pos.Y != 0 {
		panic(fmt.Sprintf("flora: seed %d cannot root at %v, not on the ground", s.id, s.pos))
	}
	return &Plant{
		id:         s.id,
		pos:        s.pos,
		energy:     s.energy,
		generation: s.generation,
		genome:     s.genome,
		clusters:   s.clusters,
		cells: []components.PlantCell{
			{Pos: s.pos, Cell: components.NewRoot(), ResponseIx: 0},
		},
	}
}
