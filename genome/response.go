package genome

import (
	"math"

	"github.com/pthm-cable/treevolution/components"
)

// DecodeParams controls how raw genome values are turned into responses.
type DecodeParams struct {
	ClusterCount          int     // Response clusters per plant; cluster indices are taken modulo this
	HeightThresholdChance float64 // Chance that a response carries a height gate
	GridHeight            int     // Scales the height gate fraction to rows
}

// Response is one directional growth rule.
type Response struct {
	TargetCluster   int                 // Cluster the grown cell consults
	HeightThreshold int                 // 0 = no gate
	GrowthBias      float64             // >= 1; larger is cheaper
	TargetKind      components.CellKind // Leaf or Trunk
}

// NewResponse decodes one response. The read order is fixed: cluster index,
// threshold fraction, threshold chance check, growth bias fraction, cell type.
func NewResponse(g *Genome, p DecodeParams) Response {
	var r Response
	r.TargetCluster = int(g.ParseValue()) % p.ClusterCount

	threshold := g.ParseValueNormalized()
	if g.ParseValueNormalized() <= p.HeightThresholdChance {
		r.HeightThreshold = int(threshold * float64(p.GridHeight))
	}

	// The fraction lives in (0, 1]; a raw zero reads as the smallest step.
	frac := math.Max(float64(g.ParseValue()), 1) / math.MaxUint16
	r.GrowthBias = 1 / frac

	if g.ParseBool() {
		r.TargetKind = components.Leaf
	} else {
		r.TargetKind = components.Trunk
	}
	return r
}

// IsActive reports whether the response fires for a parent cell at pos.
// Cost grows as the plant's bias shrinks and as the parent's root connection weakens.
func (r Response) IsActive(pos components.GridPos, energy, rootConnection, growthCost float64) bool {
	heightReached := r.HeightThreshold == 0 || pos.Y >= r.HeightThreshold
	enoughEnergy := energy >= growthCost/r.GrowthBias/rootConnection
	return heightReached && enoughEnergy
}

// CellType returns the cell this response grows. Trunks start at full
// connection; callers rescale it relative to the parent.
func (r Response) CellType() components.CellType {
	if r.TargetKind == components.Leaf {
		return components.NewLeaf()
	}
	return components.NewRoot()
}
