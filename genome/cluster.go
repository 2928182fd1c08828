package genome

import "github.com/pthm-cable/treevolution/components"

// Direction indexes the four responses of a cluster.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var directionOffsets = [4]components.GridPos{
	Up:    {X: 0, Y: 1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: -1},
	Left:  {X: -1, Y: 0},
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "invalid"
}

// Offset returns the relative grid step for the direction.
func (d Direction) Offset() components.GridPos { return directionOffsets[d] }

// ResponseCluster bundles the four directional responses consulted by a growing trunk cell.
type ResponseCluster [4]Response

// Activation is one fired response: where to grow, what, and which cluster the new cell consults.
type Activation struct {
	Target     components.GridPos
	ResponseIx int
	Cell       components.CellType
}

// NewResponseCluster decodes up, right, down and left in that order.
func NewResponseCluster(g *Genome, p DecodeParams) ResponseCluster {
	var c ResponseCluster
	for d := range c {
		c[d] = NewResponse(g, p)
	}
	return c
}

// DecodeClusters decodes the full cluster table of a plant.
func DecodeClusters(g *Genome, p DecodeParams) []ResponseCluster {
	clusters := make([]ResponseCluster, p.ClusterCount)
	for i := range clusters {
		clusters[i] = NewResponseCluster(g, p)
	}
	return clusters
}

// Response returns the rule bound to direction d.
func (c *ResponseCluster) Response(d Direction) Response { return c[d] }

// Activate evaluates all four responses for a parent at pos and appends the
// fired ones to dst in up, right, down, left order. Targets are not wrapped
// or bounds checked.
func (c *ResponseCluster) Activate(dst []Activation, pos components.GridPos, energy, rootConnection, growthCost float64) []Activation {
	for d, r := range c {
		if !r.IsActive(pos, energy, rootConnection, growthCost) {
			continue
		}
		off := Direction(d).Offset()
		dst = append(dst, Activation{
			Target:     pos.Add(off.X, off.Y),
			ResponseIx: r.TargetCluster,
			Cell:       r.CellType(),
		})
	}
	return dst
}
