// Package game wires the habitat to telemetry output and, in graphical mode,
// to the raylib renderer and UI.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/treevolution/camera"
	"github.com/pthm-cable/treevolution/config"
	"github.com/pthm-cable/treevolution/habitat"
	"github.com/pthm-cable/treevolution/renderer"
	"github.com/pthm-cable/treevolution/telemetry"
	"github.com/pthm-cable/treevolution/ui"
)

// maxCatchUpTicks bounds how many ticks one frame may run after a stall.
const maxCatchUpTicks = 8

// Options configures a game instance.
type Options struct {
	Seed           int64  // Overrides the config seed when non-zero
	MinPlants      int    // Population floor; negative = config value
	LogStats       bool   // Log each stats window via slog
	OutputDir      string // Directory for CSV logs and config snapshot (empty = none)
	Headless       bool
	StepsPerUpdate int // Ticks per UpdateHeadless call, or per timer step in graphical mode
}

// Game holds the habitat and everything that observes or draws it.
type Game struct {
	cfg *config.Config
	hab *habitat.Habitat

	logStats         bool
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	statsCallback    func(telemetry.WindowStats)
	stepsPerUpdate   int
	paused           bool

	// Graphics (nil in headless mode)
	timer        *FixedStep
	camera       *camera.Camera
	gridRenderer *renderer.GridRenderer
	hud          *ui.HUD
	perfPanel    *ui.PerfPanel
	controls     *ui.ControlsPanel
	focusPanel   *ui.FocusPanel
	showPerf     bool
	rgb          []byte

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game over a fresh habitat built from cfg.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	cfg = cfg.Clone()
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:              cfg,
		hab:              habitat.NewWithConfig(cfg),
		logStats:         opts.LogStats,
		outputManager:    om,
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		stepsPerUpdate:   max(opts.StepsPerUpdate, 1),
	}
	if opts.MinPlants >= 0 {
		g.hab.SetMinimumPlants(opts.MinPlants)
	}

	if !opts.Headless {
		g.initGraphics()
	}

	return g, nil
}

// initGraphics sets up camera, renderer and panels. The raylib window must exist.
func (g *Game) initGraphics() {
	sc := g.cfg.Screen
	g.screenWidth = float32(sc.Width)
	g.screenHeight = float32(sc.Height)

	g.timer = NewFixedStep(sc.TicksPerSecond)
	g.camera = camera.New(g.screenWidth, g.screenHeight, g.hab.Width(), g.hab.Height(), float32(sc.CellSize))
	g.gridRenderer = renderer.NewGridRenderer()
	g.gridRenderer.Init(g.hab.Width(), g.hab.Height())
	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(int32(g.screenWidth)-250, 10, 240)
	g.focusPanel = ui.NewFocusPanel(int32(g.screenWidth)-250, 170, 240)
	g.perfPanel = ui.NewPerfPanel(10, 112)
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Habitat returns the simulated habitat.
func (g *Game) Habitat() *habitat.Habitat {
	return g.hab
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.hab.Tick()
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// UpdateHeadless advances the simulation by StepsPerUpdate ticks.
func (g *Game) UpdateHeadless() {
	for range g.stepsPerUpdate {
		g.step()
	}
}

// Update handles input and advances the simulation at the configured tick rate.
func (g *Game) Update() {
	g.handleInput()
	g.hab.RecordFrame()

	if g.paused {
		return
	}
	for i := 0; i < maxCatchUpTicks && g.timer.ShouldStep(); i++ {
		for range g.stepsPerUpdate {
			g.step()
		}
	}
}

// step runs one habitat tick and flushes telemetry when a window closes.
func (g *Game) step() {
	g.hab.Update()
	g.flushTelemetry()
}

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.gridRenderer != nil {
		g.gridRenderer.Unload()
	}
	g.hab.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
