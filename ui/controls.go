package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsResult reports what the user changed in the controls panel this frame.
type ControlsResult struct {
	MinPlants      int
	Spawn          bool
	TogglePause    bool
	ClearSelection bool
}

// ControlsPanel renders the population floor slider and action buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies on the panel, so clicks on it
// are not treated as grid selections.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x < float32(c.x+c.width) &&
		y >= float32(c.y) && y < float32(c.y+c.height())
}

func (c *ControlsPanel) height() int32 {
	return c.renderer.Theme.Padding*2 + 120
}

// Draw renders the controls panel. minPlants is the current floor and
// maxPlants the slider's upper bound.
func (c *ControlsPanel) Draw(minPlants, maxPlants int, paused bool) ControlsResult {
	res := ControlsResult{MinPlants: minPlants}
	if !c.visible {
		return res
	}

	r := c.renderer
	padding := r.Theme.Padding
	c.renderer.DrawPanel(c.x, c.y, c.width, c.height())

	x := float32(c.x + padding)
	y := c.y + padding
	inner := float32(c.width - padding*2)

	rl.DrawText("Controls", int32(x), y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	rl.DrawText(fmt.Sprintf("Minimum plants: %d", minPlants), int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	v := gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: float32(y), Width: inner - 60, Height: 16},
		"0", fmt.Sprintf("%d", maxPlants),
		float32(minPlants), 0, float32(maxPlants),
	)
	res.MinPlants = int(v + 0.5)
	y += 26

	bw := (inner - 10) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: bw, Height: 26}, "Spawn plant") {
		res.Spawn = true
	}
	if gui.Button(rl.Rectangle{X: x + bw + 10, Y: float32(y), Width: bw, Height: 26}, toggleText(paused, "Resume", "Pause")) {
		res.TogglePause = true
	}
	y += 32
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 22}, "Clear selection") {
		res.ClearSelection = true
	}

	return res
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
