// Package habitat implements the plant world: a grid that wraps horizontally,
// its rooted plants, airborne and grounded seeds, decaying dead cells, and
// the tick that advances them.
package habitat

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pthm-cable/treevolution/components"
	"github.com/pthm-cable/treevolution/config"
	"github.com/pthm-cable/treevolution/flora"
	"github.com/pthm-cable/treevolution/telemetry"
)

// Habitat owns the grid and every organism in it.
// It is not safe for concurrent use; Update parallelizes internally.
type Habitat struct {
	cfg    *config.Config
	rng    *rand.Rand
	width  int
	height int

	// Column-major; inside a column index 0 is the canopy row.
	grid []components.CellType

	plants    []*flora.Plant
	airborne  *seedStore
	grounded  [][]*flora.Seed // one buffer per column
	deadCells []components.GridPos

	minimumPlants int
	selection     selection

	tick   int32
	nextID uint64

	pool      *workerPool
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	// Per-tick scratch
	proposals [][]flora.GrowthProposal
	rawCounts []int
	chosen    []components.GridPos
	landed    []*flora.Seed
	light     [][3]float64
}

// New creates a habitat of the given size with default parameters.
func New(width, height int) *Habitat {
	cfg := config.Default()
	cfg.World.Width = width
	cfg.World.Height = height
	cfg.Refresh()
	return NewWithConfig(cfg)
}

// NewWithConfig creates a habitat from cfg. The config is copied.
// It panics if cfg is invalid.
func NewWithConfig(cfg *config.Config) *Habitat {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("habitat: invalid config: %v", err))
	}
	cfg = cfg.Clone()
	cfg.Refresh()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w, h := cfg.World.Width, cfg.World.Height
	return &Habitat{
		cfg:           cfg,
		rng:           rand.New(rand.NewPCG(uint64(seed), 0)),
		width:         w,
		height:        h,
		grid:          make([]components.CellType, w*h),
		airborne:      newSeedStore(),
		grounded:      make([][]*flora.Seed, w),
		minimumPlants: cfg.Population.Minimum,
		pool:          newWorkerPool(cfg.Parallel.Workers, cfg.Parallel.Threshold),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		light:         make([][3]float64, w),
	}
}

// Close stops the worker pool. The habitat can still be used afterwards;
// workers restart on demand.
func (h *Habitat) Close() {
	h.pool.stopWorkers()
}

func (h *Habitat) Width() int             { return h.width }
func (h *Habitat) Height() int            { return h.height }
func (h *Habitat) Tick() int32            { return h.tick }
func (h *Habitat) Config() *config.Config { return h.cfg }
func (h *Habitat) MinimumPlants() int     { return h.minimumPlants }
func (h *Habitat) PlantCount() int        { return len(h.plants) }
func (h *Habitat) AirborneCount() int     { return h.airborne.Len() }
func (h *Habitat) DeadCellCount() int     { return len(h.deadCells) }
func (h *Habitat) Plants() []*flora.Plant { return h.plants }

// GroundedCount returns the number of landed seeds waiting to germinate.
func (h *Habitat) GroundedCount() int {
	n := 0
	for _, col := range h.grounded {
		n += len(col)
	}
	return n
}

// TotalPlantCount returns rooted plants plus airborne and grounded seeds.
func (h *Habitat) TotalPlantCount() int {
	return len(h.plants) + h.airborne.Len() + h.GroundedCount()
}

// SetMinimumPlants sets the population floor checked at the start of every tick.
func (h *Habitat) SetMinimumPlants(n int) {
	h.minimumPlants = max(n, 0)
}

// SpawnPlant puts a fresh random seed into the air at a random column of the
// top row. Nothing happens if that cell is occupied.
func (h *Habitat) SpawnPlant() bool {
	pos := components.GridPos{X: h.rng.IntN(h.width), Y: h.height - 1}
	if !h.grid[h.index(pos)].IsEmpty() {
		return false
	}
	h.airborne.add(flora.NewSeed(h.newID(), pos, h.rng, h.cfg))
	h.collector.RecordSeedInjected()
	return true
}

// CellAt returns the cell at (x, y). x wraps; y must be inside the grid.
func (h *Habitat) CellAt(x, y int) components.CellType {
	return h.grid[h.index(components.GridPos{X: x, Y: y})]
}

// RGBData returns 3 bytes per cell in storage order: all rows of column 0
// from the canopy down, then column 1, and so on.
func (h *Habitat) RGBData() []byte {
	return h.AppendRGB(make([]byte, 0, len(h.grid)*3))
}

// AppendRGB appends the RGB bytes of every cell to dst in storage order.
func (h *Habitat) AppendRGB(dst []byte) []byte {
	rate := h.cfg.Derived.MaxLeafAbsorbed
	for _, c := range h.grid {
		dst = components.AppendRGB(dst, c, rate)
	}
	return dst
}

// index maps a grid position to its storage slot. It panics when y is out of range.
func (h *Habitat) index(p components.GridPos) int {
	if p.Y < 0 || p.Y >= h.height {
		panic(fmt.Sprintf("habitat: row %d outside grid of height %d", p.Y, h.height))
	}
	p = p.Wrap(h.width)
	return p.X*h.height + (h.height - 1 - p.Y)
}

func (h *Habitat) inRows(y int) bool {
	return y >= 0 && y < h.height
}

// column returns the storage slice of column x, canopy first.
func (h *Habitat) column(x int) []components.CellType {
	return h.grid[x*h.height : (x+1)*h.height]
}

func (h *Habitat) newID() uint64 {
	h.nextID++
	return h.nextID
}
