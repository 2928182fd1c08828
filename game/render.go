package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/treevolution/ui"
)

const controlsLegend = "[Enter] Spawn  [Space] Pause  [</>] Speed  [Arrows/Wheel] Pan/Zoom  [Click] Select  [C] Clear  [Tab] Controls  [P] Perf"

// Draw renders the habitat and UI for one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.Color{R: 10, G: 12, B: 16, A: 255})

	g.rgb = g.hab.AppendRGB(g.rgb[:0])
	g.gridRenderer.Update(g.rgb, g.hab.Width(), g.hab.Height())
	g.gridRenderer.Draw(g.camera)

	if pos, ok := g.hab.Selection(); ok {
		g.gridRenderer.DrawSelection(g.camera, pos.X, pos.Y)
	}

	g.drawUI()
}

// drawUI draws the HUD and panels and applies control panel changes.
func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Title:     "Treevolution",
		Plants:    g.hab.PlantCount(),
		Airborne:  g.hab.AirborneCount(),
		Grounded:  g.hab.GroundedCount(),
		DeadCells: g.hab.DeadCellCount(),
		MinPlants: g.hab.MinimumPlants(),
		Tick:      g.hab.Tick(),
		TPS:       g.timer.TPS() * g.stepsPerUpdate,
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
	})
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	res := g.controls.Draw(g.hab.MinimumPlants(), max(g.hab.Width(), g.hab.MinimumPlants()), g.paused)
	g.applyControls(res)

	g.focusPanel.Draw(g.hab.FocusInformation())

	if g.showPerf {
		g.perfPanel.Draw(g.hab.PerfStats())
	}
}

// applyControls applies one frame of control panel results.
func (g *Game) applyControls(res ui.ControlsResult) {
	if res.MinPlants != g.hab.MinimumPlants() {
		g.hab.SetMinimumPlants(res.MinPlants)
	}
	if res.Spawn {
		g.hab.SpawnPlant()
	}
	if res.TogglePause {
		g.paused = !g.paused
	}
	if res.ClearSelection {
		g.hab.ClearSelection()
	}
}
