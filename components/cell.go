// Package components defines the value types shared by the simulation packages.
package components

import "fmt"

// CellKind identifies which state a grid cell holds.
type CellKind uint8

const (
	Empty CellKind = iota
	Leaf
	Trunk
	Dead
	Seed
)

func (k CellKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Leaf:
		return "leaf"
	case Trunk:
		return "trunk"
	case Dead:
		return "dead"
	case Seed:
		return "seed"
	}
	return fmt.Sprintf("CellKind(%d)", uint8(k))
}

// CellType is the content of one grid cell.
// SunAbsorbed is only meaningful for leaves and RootConnection only for trunks.
type CellType struct {
	Kind           CellKind
	SunAbsorbed    float64 // Light captured this tick, in [0, leaf absorb rate]
	RootConnection float64 // Link strength back to the root, in (0, 1]
}

// NewLeaf returns a leaf that has not absorbed any light yet.
func NewLeaf() CellType {
	return CellType{Kind: Leaf}
}

// NewTrunk returns a trunk cell with the given root connection.
func NewTrunk(rootConnection float64) CellType {
	return CellType{Kind: Trunk, RootConnection: rootConnection}
}

// NewRoot returns the first trunk cell of a plant.
func NewRoot() CellType {
	return NewTrunk(1)
}

// IsEmpty reports whether nothing occupies the cell.
func (c CellType) IsEmpty() bool { return c.Kind == Empty }

// IsLiving reports whether the cell belongs to a living plant.
func (c CellType) IsLiving() bool { return c.Kind == Leaf || c.Kind == Trunk }

// GridPos is an integer grid coordinate. Y = 0 is the ground row.
type GridPos struct {
	X, Y int
}

// Add returns p offset by (dx, dy).
func (p GridPos) Add(dx, dy int) GridPos {
	return GridPos{X: p.X + dx, Y: p.Y + dy}
}

// Wrap returns p with X folded into [0, width).
func (p GridPos) Wrap(width int) GridPos {
	x := p.X % width
	if x < 0 {
		x += width
	}
	return GridPos{X: x, Y: p.Y}
}

func (p GridPos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
