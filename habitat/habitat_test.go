package habitat

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/pthm-cable/treevolution/components"
	"github.com/pthm-cable/treevolution/config"
	"github.com/pthm-cable/treevolution/flora"
	"github.com/pthm-cable/treevolution/genome"
)

func testConfig(width, height int) *config.Config {
	cfg := config.Default()
	cfg.Seed = 1
	cfg.World.Width = width
	cfg.World.Height = height
	cfg.Lifecycle.SeedDrift = 0
	cfg.Population.Minimum = 0
	cfg.Refresh()
	return cfg
}

func newTestHabitat(t *testing.T, cfg *config.Config) *Habitat {
	t.Helper()
	h := NewWithConfig(cfg)
	t.Cleanup(h.Close)
	return h
}

// rootedPlant returns a plant rooted at column x.
func rootedPlant(h *Habitat, x int) *flora.Plant {
	rng := rand.New(rand.NewPCG(uint64(x)+1, 0))
	return flora.NewSeed(h.newID(), components.GridPos{X: x, Y: 0}, rng, h.cfg).CreateRoot()
}

// leafEverywhere decodes to clusters whose four responses all grow a leaf,
// without a height gate, once the plant holds cell_growth_cost energy.
var leafEverywhere = []uint16{0, 0, math.MaxUint16, math.MaxUint16, math.MaxUint16}

// plantFromValues roots a plant at column x whose genome is values.
func plantFromValues(h *Habitat, x int, values []uint16, energy float64) *flora.Plant {
	s := flora.NewSeedFromGenome(h.newID(), components.GridPos{X: x, Y: 0}, genome.FromValues(values), h.cfg)
	s.GiveEnergy(energy - s.Energy())
	return s.CreateRoot()
}

func airborneColumn(t *testing.T, h *Habitat) int {
	t.Helper()
	col := -1
	h.airborne.each(func(pos components.GridPos, _ *flora.Seed) { col = pos.X })
	if col < 0 {
		t.Fatal("no airborne seed")
	}
	return col
}

func TestPropagateLight(t *testing.T) {
	leaf := components.NewLeaf()
	trunk := components.NewRoot()
	dead := components.CellType{Kind: components.Dead}
	seed := components.CellType{Kind: components.Seed}
	empty := components.CellType{}

	tests := []struct {
		name         string
		column       []components.CellType
		wantAbsorbed float64
		wantBlocked  float64
		wantExiting  float64
	}{
		{"all empty", []components.CellType{empty, empty, empty}, 0, 0, 1},
		{"seed passes", []components.CellType{seed, seed}, 0, 0, 1},
		{"single leaf", []components.CellType{leaf}, 0.4, 0, 0.6},
		{"leaf trunk leaf", []components.CellType{leaf, trunk, leaf}, 0.592, 0.12, 0.288},
		{"dead blocks like trunk", []components.CellType{dead, empty, trunk}, 0, 0.36, 0.64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := append([]components.CellType(nil), tt.column...)
			a, b, e := propagateLight(col, 0.4, 0.2)

			if math.Abs(a-tt.wantAbsorbed) > 1e-9 || math.Abs(b-tt.wantBlocked) > 1e-9 || math.Abs(e-tt.wantExiting) > 1e-9 {
				t.Errorf("propagateLight = (%v, %v, %v), want (%v, %v, %v)",
					a, b, e, tt.wantAbsorbed, tt.wantBlocked, tt.wantExiting)
			}
			if math.Abs(a+b+e-1) > 1e-9 {
				t.Errorf("light not conserved: %v", a+b+e)
			}

			var stored float64
			for _, c := range col {
				if c.Kind == components.Leaf {
					stored += c.SunAbsorbed
				}
			}
			if math.Abs(stored-a) > 1e-9 {
				t.Errorf("leaves stored %v, absorbed %v", stored, a)
			}
		})
	}
}

func TestSeedFallsAndGerminates(t *testing.T) {
	h := newTestHabitat(t, testConfig(10, 5))

	if !h.SpawnPlant() {
		t.Fatal("SpawnPlant on an empty grid failed")
	}
	col := airborneColumn(t, h)

	for tick := 1; tick <= 4; tick++ {
		h.Update()
		if h.AirborneCount() != 1 || h.PlantCount() != 0 || h.GroundedCount() != 0 {
			t.Fatalf("tick %d: airborne=%d plants=%d grounded=%d, want 1/0/0",
				tick, h.AirborneCount(), h.PlantCount(), h.GroundedCount())
		}
		if got := h.CellAt(col, 5-1-tick); got.Kind != components.Seed {
			t.Errorf("tick %d: seed not drawn at row %d, found %v", tick, 4-tick, got.Kind)
		}
	}

	h.Update()
	if h.PlantCount() != 1 || h.AirborneCount() != 0 || h.GroundedCount() != 0 {
		t.Fatalf("after landing: plants=%d airborne=%d grounded=%d, want 1/0/0",
			h.PlantCount(), h.AirborneCount(), h.GroundedCount())
	}

	p := h.Plants()[0]
	if p.CellCount() != 1 || p.CountKind(components.Trunk) != 1 {
		t.Errorf("new plant has %d cells (%d trunks), want a single trunk", p.CellCount(), p.CountKind(components.Trunk))
	}
	if p.Pos() != (components.GridPos{X: col, Y: 0}) {
		t.Errorf("rooted at %v, want (%d, 0)", p.Pos(), col)
	}
	if p.IsDead(h.Config()) {
		t.Error("fresh plant reports dead")
	}

	h.Update()
	if got := h.CellAt(col, 0); got.Kind != components.Trunk || got.RootConnection != 1 {
		t.Errorf("ground cell = %+v, want root trunk", got)
	}
}

func TestPopulationFloor(t *testing.T) {
	h := newTestHabitat(t, testConfig(10, 5))

	h.Update()
	if h.TotalPlantCount() != 0 {
		t.Fatalf("count without floor = %d, want 0", h.TotalPlantCount())
	}

	h.SetMinimumPlants(3)
	before := h.TotalPlantCount()
	h.Update()
	if got := h.TotalPlantCount(); got != before+1 {
		t.Errorf("count after one tick below floor = %d, want %d", got, before+1)
	}

	h.SetMinimumPlants(-4)
	if h.MinimumPlants() != 0 {
		t.Errorf("negative minimum stored as %d", h.MinimumPlants())
	}
}

func TestSpawnPlantBlockedByOccupiedCell(t *testing.T) {
	h := newTestHabitat(t, testConfig(1, 3))
	h.grid[h.index(components.GridPos{X: 0, Y: 2})] = components.CellType{Kind: components.Dead}

	if h.SpawnPlant() {
		t.Error("spawn succeeded on an occupied top cell")
	}
	if h.AirborneCount() != 0 {
		t.Errorf("airborne = %d, want 0", h.AirborneCount())
	}
}

func TestDeadCellDecay(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		wantLeft int
	}{
		{"always removed", 1.0, 0},
		{"never removed", 0.0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(6, 4)
			cfg.Lifecycle.DeadCellRemoveRate = tt.rate
			h := newTestHabitat(t, cfg)
			h.deadCells = []components.GridPos{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}

			h.Update()
			if h.DeadCellCount() != tt.wantLeft {
				t.Fatalf("after one tick: %d dead cells, want %d", h.DeadCellCount(), tt.wantLeft)
			}
			for i := 0; i < 10; i++ {
				h.Update()
			}
			if h.DeadCellCount() != tt.wantLeft {
				t.Errorf("after eleven ticks: %d dead cells, want %d", h.DeadCellCount(), tt.wantLeft)
			}
		})
	}
}

func TestRebuildLeafWinsOverTrunk(t *testing.T) {
	h := newTestHabitat(t, testConfig(8, 6))

	a := rootedPlant(h, 2)
	a.AddCell(components.GridPos{X: 3, Y: 2}, components.NewLeaf(), 0)
	b := rootedPlant(h, 5)
	b.AddCell(components.GridPos{X: 3, Y: 2}, components.NewTrunk(0.5), 0)
	h.plants = append(h.plants, a, b)

	h.deadCells = []components.GridPos{{X: 2, Y: 0}, {X: 7, Y: 4}}
	h.rebuildGrid()

	if got := h.CellAt(3, 2); got.Kind != components.Leaf {
		t.Errorf("contested cell = %v, want leaf", got.Kind)
	}
	if got := h.CellAt(2, 0); got.Kind != components.Trunk {
		t.Errorf("dead marker under a living root: got %v, want trunk", got.Kind)
	}
	if got := h.CellAt(7, 4); got.Kind != components.Dead {
		t.Errorf("free dead marker: got %v, want dead", got.Kind)
	}
}

func TestDeathReleasesSeedsAndMarkers(t *testing.T) {
	cfg := testConfig(6, 4)
	cfg.Lifecycle.BaseMaxAge = 0
	cfg.Lifecycle.MaxAgeCellModifier = 0
	cfg.Lifecycle.SeedSpawnRate = 1
	cfg.Lifecycle.DeadCellRemoveRate = 0
	cfg.Growth.MaxGrowthsPerTick = 0
	h := newTestHabitat(t, cfg)

	p := rootedPlant(h, 2)
	p.AddCell(components.GridPos{X: 2, Y: 1}, components.NewLeaf(), 0)
	h.plants = append(h.plants, p)

	h.Update()

	if h.PlantCount() != 0 {
		t.Fatalf("plants = %d, want 0", h.PlantCount())
	}
	if h.DeadCellCount() != 2 {
		t.Errorf("dead cells = %d, want 2", h.DeadCellCount())
	}
	// The seed released at ground level lands on the dead root and waits;
	// the other has fallen onto the ground row and is drawn there.
	if h.GroundedCount() != 1 || h.AirborneCount() != 1 {
		t.Errorf("grounded=%d airborne=%d, want 1/1", h.GroundedCount(), h.AirborneCount())
	}
	if got := h.CellAt(2, 1); got.Kind != components.Dead {
		t.Errorf("former leaf cell = %v, want dead", got.Kind)
	}
	if got := h.CellAt(2, 0); got.Kind != components.Seed {
		t.Errorf("ground cell = %v, want the falling seed drawn over the dead root", got.Kind)
	}
}

func TestGroundedSeedsStarve(t *testing.T) {
	cfg := testConfig(3, 3)
	cfg.Energy.Default = 1
	cfg.Energy.SeedDrain = 0.4
	cfg.Lifecycle.DeadCellRemoveRate = 0
	h := newTestHabitat(t, cfg)

	h.deadCells = []components.GridPos{{X: 1, Y: 0}}
	s := flora.NewSeed(h.newID(), components.GridPos{X: 1, Y: 0}, h.rng, h.cfg)
	h.airborne.add(s)

	h.Update() // lands on the dead cell and drains to 0.6
	if h.GroundedCount() != 1 {
		t.Fatalf("grounded = %d, want 1", h.GroundedCount())
	}
	h.Update() // 0.2
	h.Update() // -0.2, dropped
	if h.GroundedCount() != 0 {
		t.Errorf("grounded = %d, want starved seed dropped", h.GroundedCount())
	}
}

func TestRGBData(t *testing.T) {
	h := newTestHabitat(t, testConfig(3, 4))

	data := h.RGBData()
	if len(data) != 3*4*3 {
		t.Fatalf("len = %d, want %d", len(data), 3*4*3)
	}
	for i, b := range data {
		if b != 255 {
			t.Fatalf("byte %d = %d, want 255 for an empty grid", i, b)
		}
	}

	dead := components.CellType{Kind: components.Dead}
	h.grid[h.index(components.GridPos{X: 0, Y: 3})] = dead // column 0, canopy
	h.grid[h.index(components.GridPos{X: 1, Y: 0})] = dead // column 1, ground

	data = h.RGBData()
	if data[0] != 130 {
		t.Errorf("first cell byte = %d, want the canopy of column 0 to be dead", data[0])
	}
	if got := data[(1*4+3)*3]; got != 130 {
		t.Errorf("column 1 ground byte = %d, want 130", got)
	}
}

func TestSelection(t *testing.T) {
	h := newTestHabitat(t, testConfig(10, 5))
	p := rootedPlant(h, 4)
	p.AddCell(components.GridPos{X: 4, Y: 1}, components.NewLeaf(), 0)
	h.plants = append(h.plants, p)
	h.rebuildGrid()

	if _, ok := h.FocusInformation(); ok {
		t.Error("focus information without a selection")
	}

	h.SelectPos(components.GridPos{X: 14, Y: 0}) // wraps to column 4
	info, ok := h.FocusInformation()
	if !ok {
		t.Fatal("selection on a root did not resolve")
	}
	if info["cell_count"] != "2" || info["cell_type"] != "trunk" || info["root_connection"] != "1.0000" {
		t.Errorf("focus = %v", info)
	}
	if _, ok := info["energy"]; !ok {
		t.Error("focus is missing energy")
	}

	h.SelectPos(components.GridPos{X: 4, Y: 1})
	info, ok = h.FocusInformation()
	if !ok || info["cell_type"] != "leaf" {
		t.Errorf("leaf selection = %v, %v", info, ok)
	}
	if _, has := info["root_connection"]; has {
		t.Error("leaf focus should not report root connection")
	}

	// Empty cells keep the position until the next tick clears it.
	h.SelectPos(components.GridPos{X: 0, Y: 3})
	if _, ok := h.FocusInformation(); ok {
		t.Error("empty cell resolved to a plant")
	}
	if _, active := h.Selection(); !active {
		t.Error("selection dropped before the tick")
	}
	h.Update()
	if _, active := h.Selection(); active {
		t.Error("selection on an empty cell survived a tick")
	}

	h.SelectPos(components.GridPos{X: 4, Y: 9})
	if _, active := h.Selection(); active {
		t.Error("selection outside the rows was kept")
	}
}

func TestSimulationInvariants(t *testing.T) {
	cfg := testConfig(40, 20)
	cfg.Lifecycle.SeedDrift = 1
	cfg.Population.Minimum = 12
	cfg.Parallel.Threshold = 2
	cfg.Parallel.Workers = 4
	cfg.Telemetry.StatsWindow = 50
	h := newTestHabitat(t, cfg)

	for tick := 0; tick < 400; tick++ {
		h.Update()

		grounded := 0
		for x, col := range h.grounded {
			for _, s := range col {
				if s.Pos() != (components.GridPos{X: x, Y: 0}) {
					t.Fatalf("tick %d: grounded seed at %v buffered under column %d", tick, s.Pos(), x)
				}
			}
			grounded += len(col)
		}
		if got, want := h.TotalPlantCount(), h.PlantCount()+h.AirborneCount()+grounded; got != want {
			t.Fatalf("tick %d: total %d != %d", tick, got, want)
		}

		for _, p := range h.Plants() {
			if p.CellCount() == 0 {
				t.Fatalf("tick %d: plant %d has no cells", tick, p.ID())
			}
			seen := make(map[components.GridPos]bool, p.CellCount())
			for _, c := range p.Cells() {
				if c.Pos.X < 0 || c.Pos.X >= 40 || c.Pos.Y < 0 || c.Pos.Y >= 20 {
					t.Fatalf("tick %d: cell outside grid at %v", tick, c.Pos)
				}
				if seen[c.Pos] {
					t.Fatalf("tick %d: plant %d owns %v twice", tick, p.ID(), c.Pos)
				}
				seen[c.Pos] = true
				if c.Cell.Kind == components.Trunk && (c.Cell.RootConnection <= 0 || c.Cell.RootConnection > 1) {
					t.Fatalf("tick %d: root connection %v out of range", tick, c.Cell.RootConnection)
				}
			}
		}

		if stats, ok := h.FlushStats(); ok {
			if math.Abs(stats.LightBalance()) > 1e-6 {
				t.Fatalf("tick %d: sunlight not conserved, balance %v", tick, stats.LightBalance())
			}
			if stats.LightEntered != float64(50*40) {
				t.Fatalf("tick %d: light entered %v, want %v", tick, stats.LightEntered, 50*40)
			}
		}
	}

	if h.Tick() != 400 {
		t.Errorf("Tick() = %d, want 400", h.Tick())
	}
}

func TestNewPanicsOnInvalidSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero width")
		}
	}()
	New(0, 5)
}

func TestGrowth(t *testing.T) {
	type pos = components.GridPos

	tests := []struct {
		name          string
		width, height int
		rootX         int
		maxGrowths    int
		energy        float64
		blocked       map[pos]components.CellKind
		candidates    []pos
		wantAdded     int
	}{
		{
			name: "all open", width: 5, height: 4, rootX: 2, maxGrowths: 10, energy: 100,
			candidates: []pos{{X: 2, Y: 1}, {X: 3, Y: 0}, {X: 1, Y: 0}},
			wantAdded:  3,
		},
		{
			name: "capped per tick", width: 5, height: 4, rootX: 2, maxGrowths: 2, energy: 100,
			candidates: []pos{{X: 2, Y: 1}, {X: 3, Y: 0}, {X: 1, Y: 0}},
			wantAdded:  2,
		},
		{
			name: "left target wraps", width: 5, height: 4, rootX: 0, maxGrowths: 10, energy: 100,
			candidates: []pos{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 4, Y: 0}},
			wantAdded:  3,
		},
		{
			name: "seed overlay and dead cell block", width: 5, height: 4, rootX: 2, maxGrowths: 10, energy: 100,
			blocked:    map[pos]components.CellKind{{X: 2, Y: 1}: components.Seed, {X: 3, Y: 0}: components.Dead},
			candidates: []pos{{X: 1, Y: 0}},
			wantAdded:  1,
		},
		{
			name: "single row drops vertical targets", width: 5, height: 1, rootX: 2, maxGrowths: 10, energy: 100,
			candidates: []pos{{X: 3, Y: 0}, {X: 1, Y: 0}},
			wantAdded:  2,
		},
		{
			name: "not enough energy", width: 5, height: 4, rootX: 2, maxGrowths: 10, energy: 1.5,
			wantAdded: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.width, tt.height)
			cfg.Growth.MaxGrowthsPerTick = tt.maxGrowths
			cfg.Growth.CellGrowthCost = 2
			cfg.Energy.SunPower = 0
			cfg.Energy.CellSustainCost = 0
			h := newTestHabitat(t, cfg)

			p := plantFromValues(h, tt.rootX, leafEverywhere, tt.energy)
			h.plants = append(h.plants, p)
			h.rebuildGrid()
			// Left over from the previous tick's overlay.
			for at, kind := range tt.blocked {
				h.grid[h.index(at)] = components.CellType{Kind: kind}
			}

			h.Update()

			if got := p.CellCount() - 1; got != tt.wantAdded {
				t.Fatalf("added %d cells, want %d", got, tt.wantAdded)
			}
			if want := tt.energy - float64(tt.wantAdded)*2; math.Abs(p.Energy()-want) > 1e-9 {
				t.Errorf("energy = %v, want %v", p.Energy(), want)
			}
			if root := p.Cell(0).Pos; root != (pos{X: tt.rootX, Y: 0}) {
				t.Errorf("root moved to %v", root)
			}

			seen := make(map[pos]bool)
			for _, c := range p.Cells()[1:] {
				if c.Cell.Kind != components.Leaf {
					t.Errorf("grown cell at %v is %v, want leaf", c.Pos, c.Cell.Kind)
				}
				if seen[c.Pos] {
					t.Errorf("cell %v grown twice", c.Pos)
				}
				seen[c.Pos] = true
				if !slices.Contains(tt.candidates, c.Pos) {
					t.Errorf("grew at %v, want one of %v", c.Pos, tt.candidates)
				}
			}
		})
	}
}

func TestGerminationPicksRichestSeed(t *testing.T) {
	tests := []struct {
		name        string
		drain       float64
		groundTaken bool
		wantRooted  float64 // < 0: nothing roots
		wantLeft    []float64
	}{
		{"richest roots", 0.4, false, 5, []float64{0.6, 2.6}},
		{"ground taken", 0.4, true, -1, []float64{0.6, 4.6, 2.6}},
		{"drain starves the poorest", 1, false, 5, []float64{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(4, 3)
			cfg.Energy.SeedDrain = tt.drain
			h := newTestHabitat(t, cfg)

			var richest uint64
			for _, e := range []float64{1, 5, 3} {
				s := flora.NewSeed(h.newID(), components.GridPos{X: 1, Y: 0}, h.rng, h.cfg)
				s.GiveEnergy(e - s.Energy())
				if e == 5 {
					richest = s.ID()
				}
				h.grounded[1] = append(h.grounded[1], s)
			}
			if tt.groundTaken {
				h.grid[h.index(components.GridPos{X: 1, Y: 0})] = components.CellType{Kind: components.Dead}
			}

			h.updateGermination()

			if tt.wantRooted < 0 {
				if h.PlantCount() != 0 {
					t.Fatalf("plants = %d, want 0", h.PlantCount())
				}
			} else {
				if h.PlantCount() != 1 {
					t.Fatalf("plants = %d, want 1", h.PlantCount())
				}
				p := h.Plants()[0]
				if p.ID() != richest || p.Energy() != tt.wantRooted {
					t.Errorf("rooted plant %d with energy %v, want %d with %v", p.ID(), p.Energy(), richest, tt.wantRooted)
				}
				if p.Pos() != (components.GridPos{X: 1, Y: 0}) {
					t.Errorf("rooted at %v, want (1, 0)", p.Pos())
				}
			}

			left := h.grounded[1]
			if len(left) != len(tt.wantLeft) {
				t.Fatalf("%d seeds left, want %d", len(left), len(tt.wantLeft))
			}
			for i, s := range left {
				if math.Abs(s.Energy()-tt.wantLeft[i]) > 1e-9 {
					t.Errorf("seed %d energy = %v, want %v", i, s.Energy(), tt.wantLeft[i])
				}
			}
		})
	}
}

func TestEnergySettlement(t *testing.T) {
	type pos = components.GridPos

	tests := []struct {
		name     string
		width    int
		leaves   []pos // owned by the plant rooted at column 0
		shade    []pos // leaves of a second plant rooted at column 1
		wantGain float64
	}{
		{"root and leaf", 1, []pos{{X: 0, Y: 1}}, nil, 2*0.4 - 2*0.1},
		{"root only", 1, nil, nil, -0.1},
		{"leaf under another plant's leaf", 2, []pos{{X: 0, Y: 1}}, []pos{{X: 0, Y: 2}}, 2*0.6*0.4 - 2*0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.width, 3)
			cfg.Energy.SunPower = 2
			cfg.Energy.CellSustainCost = 0.1
			cfg.Growth.MaxGrowthsPerTick = 0
			h := newTestHabitat(t, cfg)

			p := rootedPlant(h, 0)
			for _, at := range tt.leaves {
				p.AddCell(at, components.NewLeaf(), 0)
			}
			h.plants = append(h.plants, p)
			if tt.shade != nil {
				other := rootedPlant(h, 1)
				for _, at := range tt.shade {
					other.AddCell(at, components.NewLeaf(), 0)
				}
				h.plants = append(h.plants, other)
			}
			before := p.Energy()

			h.Update()

			if gain := p.Energy() - before; math.Abs(gain-tt.wantGain) > 1e-9 {
				t.Errorf("energy gain = %v, want %v", gain, tt.wantGain)
			}
		})
	}
}

func TestRGBUsesConfiguredLeafRate(t *testing.T) {
	cfg := testConfig(1, 3)
	cfg.Light.LeafAbsorbRate = 0.5
	cfg.Growth.MaxGrowthsPerTick = 0
	h := newTestHabitat(t, cfg)

	p := rootedPlant(h, 0)
	p.AddCell(components.GridPos{X: 0, Y: 1}, components.NewLeaf(), 0)
	p.AddCell(components.GridPos{X: 0, Y: 2}, components.NewLeaf(), 0)
	h.plants = append(h.plants, p)
	h.Update()

	// The lower leaf gets half the light and is drawn half faded.
	shaded := h.CellAt(0, 1)
	if math.Abs(shaded.SunAbsorbed-0.25) > 1e-9 {
		t.Fatalf("shaded leaf absorbed %v, want 0.25", shaded.SunAbsorbed)
	}
	want := components.Color(shaded, 0.5)
	data := h.RGBData()
	if got := data[3:6]; got[0] != want.R || got[1] != want.G || got[2] != want.B {
		t.Errorf("shaded leaf rgb = %v, want %v", got, want)
	}
}
