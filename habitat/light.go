package habitat

import "github.com/pthm-cable/treevolution/components"

// propagateLight runs one unit of sunlight down a column, canopy first.
// Leaves store what they capture; trunks and dead cells block a share that
// is discarded. absorbed+blocked+exiting equals 1 up to rounding.
func propagateLight(column []components.CellType, leafRate, trunkRate float64) (absorbed, blocked, exiting float64) {
	energy := 1.0
	for i := range column {
		c := &column[i]
		switch c.Kind {
		case components.Leaf:
			c.SunAbsorbed = energy * leafRate
			energy -= c.SunAbsorbed
			absorbed += c.SunAbsorbed
		case components.Trunk, components.Dead:
			b := energy * trunkRate
			energy -= b
			blocked += b
		}
	}
	return absorbed, blocked, energy
}
