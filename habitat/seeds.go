package habitat

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/treevolution/components"
	"github.com/pthm-cable/treevolution/flora"
)

// airborne is the ECS payload of a seed still in flight.
type airborne struct {
	seed *flora.Seed
}

// seedStore keeps airborne seeds as entities with a position and a payload.
type seedStore struct {
	world  *ecs.World
	mapper *ecs.Map2[components.GridPos, airborne]
	filter *ecs.Filter2[components.GridPos, airborne]
	count  int

	landed []ecs.Entity // scratch for removals after a query
}

func newSeedStore() *seedStore {
	world := ecs.NewWorld()
	return &seedStore{
		world:  world,
		mapper: ecs.NewMap2[components.GridPos, airborne](world),
		filter: ecs.NewFilter2[components.GridPos, airborne](world),
	}
}

// add puts s into the air at its current position.
func (st *seedStore) add(s *flora.Seed) {
	pos := s.Pos()
	st.mapper.NewEntity(&pos, &airborne{seed: s})
	st.count++
}

// Len returns the number of airborne seeds.
func (st *seedStore) Len() int { return st.count }

// each calls fn for every airborne seed.
func (st *seedStore) each(fn func(pos components.GridPos, s *flora.Seed)) {
	query := st.filter.Query()
	for query.Next() {
		pos, a := query.Get()
		fn(*pos, a.seed)
	}
}

// fall moves every seed one row down with a horizontal step drawn by drift,
// wrapping x to width. Seeds that pass below the ground row are placed on
// row 0 at their drifted column, removed from the store and returned.
func (st *seedStore) fall(width int, drift func() int, dst []*flora.Seed) []*flora.Seed {
	st.landed = st.landed[:0]

	query := st.filter.Query()
	for query.Next() {
		pos, a := query.Get()
		next := components.GridPos{X: pos.X + drift(), Y: pos.Y - 1}.Wrap(width)
		if next.Y < 0 {
			next.Y = 0
			st.landed = append(st.landed, query.Entity())
			dst = append(dst, a.seed)
		}
		*pos = next
		a.seed.SetPos(next)
	}

	// The world is locked while a query is open; remove afterwards.
	for _, e := range st.landed {
		st.world.RemoveEntity(e)
		st.count--
	}
	return dst
}
