// Package renderer draws the habitat grid with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/treevolution/camera"
)

// GridRenderer uploads the habitat colors to a texture once per frame and
// draws it through the camera, repeating it horizontally as the grid wraps.
type GridRenderer struct {
	tex    rl.Texture2D
	texW   int
	texH   int
	pixels []color.RGBA

	initialized bool
}

// NewGridRenderer creates a new grid renderer.
func NewGridRenderer() *GridRenderer {
	return &GridRenderer{}
}

// Init creates the grid texture (must be called after raylib window is created).
func (r *GridRenderer) Init(gridW, gridH int) {
	if r.initialized {
		return
	}

	r.texW = gridW
	r.texH = gridH

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.initialized = true
}

// Update uploads new cell colors. rgb is the habitat's column-major RGB data.
func (r *GridRenderer) Update(rgb []byte, w, h int) {
	if !r.initialized {
		r.Init(w, h)
	}
	if w != r.texW || h != r.texH || len(rgb) != w*h*3 {
		return
	}
	r.pixels = Pixels(r.pixels, rgb, w, h)
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the grid texture through the camera.
func (r *GridRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}

	cs := cam.CellSize()
	top := cam.Top()
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
	for _, x := range cam.Tiles() {
		dstRect := rl.Rectangle{X: x, Y: top, Width: float32(r.texW) * cs, Height: float32(r.texH) * cs}
		rl.DrawTexturePro(r.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
	}
}

// DrawSelection outlines the selected cell.
func (r *GridRenderer) DrawSelection(cam *camera.Camera, gx, gy int) {
	cs := cam.CellSize()
	rect := rl.Rectangle{X: cam.ColumnScreenX(gx), Y: cam.RowScreenY(gy), Width: cs, Height: cs}
	rl.DrawRectangleLinesEx(rect, 2, rl.Yellow)
}

// Unload frees GPU resources.
func (r *GridRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
