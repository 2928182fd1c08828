// Package camera provides a 2D camera system for viewport control.
package camera

import "math"

// Camera controls the viewport into the habitat grid.
// The grid wraps horizontally and is anchored to the bottom of the screen,
// so the ground row always sits on the bottom edge.
type Camera struct {
	// X is the grid column shown at the left edge of the viewport
	X float32

	// Zoom level (1.0 = BaseCell pixels per cell)
	Zoom float32

	// BaseCell is the cell size in pixels at zoom 1
	BaseCell float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Grid dimensions in cells
	GridW, GridH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera showing column 0 at the left edge with 1:1 zoom.
func New(viewportW, viewportH float32, gridW, gridH int, baseCell float32) *Camera {
	c := &Camera{
		Zoom:      1.0,
		BaseCell:  baseCell,
		ViewportW: viewportW,
		ViewportH: viewportH,
		GridW:     float32(gridW),
		GridH:     float32(gridH),
		MaxZoom:   8.0,
	}
	c.updateMinZoom()
	return c
}

// CellSize returns the on-screen size of one cell in pixels.
func (c *Camera) CellSize() float32 {
	return c.BaseCell * c.Zoom
}

// ColumnScreenX returns the screen x of the left edge of grid column gx.
func (c *Camera) ColumnScreenX(gx int) float32 {
	return mod(float32(gx)-c.X, c.GridW) * c.CellSize()
}

// RowScreenY returns the screen y of the top edge of grid row gy (0 = ground).
func (c *Camera) RowScreenY(gy int) float32 {
	return c.ViewportH - float32(gy+1)*c.CellSize()
}

// ScreenToGrid converts screen coordinates to a grid cell.
// ok is false when the point lies above the canopy or below the ground.
func (c *Camera) ScreenToGrid(sx, sy float32) (gx, gy int, ok bool) {
	cs := c.CellSize()
	gx = int(mod(c.X+sx/cs, c.GridW))
	if gx >= int(c.GridW) {
		gx = 0
	}
	fy := (c.ViewportH - sy) / cs
	if fy < 0 || fy >= c.GridH {
		return gx, 0, false
	}
	return gx, int(fy), true
}

// Tiles returns the screen x of every horizontal copy of the grid needed to
// cover the viewport, left to right.
func (c *Camera) Tiles() []float32 {
	span := c.GridW * c.CellSize()
	if span <= 0 {
		return nil
	}
	var xs []float32
	for x := -c.X * c.CellSize(); x < c.ViewportW; x += span {
		xs = append(xs, x)
	}
	return xs
}

// Top returns the screen y of the top edge of the canopy row.
func (c *Camera) Top() float32 {
	return c.ViewportH - c.GridH*c.CellSize()
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateMinZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// Pan moves the camera horizontally by the given delta in screen pixels.
// Wraps around the grid width.
func (c *Camera) Pan(dx float32) {
	c.X = mod(c.X+dx/c.CellSize(), c.GridW)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.SetZoom(1.0)
}

// updateMinZoom lets a full grid width fit the viewport when zoomed out.
func (c *Camera) updateMinZoom() {
	c.MinZoom = 1.0
	if c.GridW > 0 && c.BaseCell > 0 {
		if fit := c.ViewportW / (c.GridW * c.BaseCell); fit < c.MinZoom {
			c.MinZoom = fit
		}
	}
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
