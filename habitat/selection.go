package habitat

import (
	"strconv"

	"github.com/pthm-cable/treevolution/components"
	"github.com/pthm-cable/treevolution/flora"
)

// selection tracks a grid position picked by the user and the plant cell
// currently found there. It follows grid content, not a plant handle.
type selection struct {
	active  bool
	pos     components.GridPos
	plant   *flora.Plant
	cellIdx int
}

// SelectPos selects the grid position pos. x wraps; a row outside the grid
// clears the selection. The position is resolved against the current grid
// right away and again at every tick.
func (h *Habitat) SelectPos(pos components.GridPos) {
	if !h.inRows(pos.Y) {
		h.ClearSelection()
		return
	}
	h.selection = selection{active: true, pos: pos.Wrap(h.width)}
	h.resolveSelection()
}

// ClearSelection drops the current selection.
func (h *Habitat) ClearSelection() {
	h.selection = selection{}
}

// Selection returns the selected position, if any.
func (h *Habitat) Selection() (components.GridPos, bool) {
	return h.selection.pos, h.selection.active
}

// SelectedPlant returns the plant the selection resolved to, or nil.
func (h *Habitat) SelectedPlant() *flora.Plant {
	return h.selection.plant
}

// refreshSelection re-resolves the selection after the grid was rebuilt and
// clears it when the cell no longer holds a living plant.
func (h *Habitat) refreshSelection() {
	if !h.selection.active {
		return
	}
	if !h.resolveSelection() {
		h.ClearSelection()
	}
}

// resolveSelection finds the plant whose cell at the selected position
// matches what the grid shows there.
func (h *Habitat) resolveSelection() bool {
	s := &h.selection
	s.plant, s.cellIdx = nil, -1

	cell := h.grid[h.index(s.pos)]
	if !cell.IsLiving() {
		return false
	}
	for _, p := range h.plants {
		if i := p.CellIndexAt(s.pos); i >= 0 && p.Cell(i).Cell.Kind == cell.Kind {
			s.plant, s.cellIdx = p, i
			return true
		}
	}
	return false
}

// FocusInformation describes the selected plant. ok is false when nothing
// is selected or the selection did not resolve to a living plant.
func (h *Habitat) FocusInformation() (info map[string]string, ok bool) {
	s := h.selection
	if !s.active || s.plant == nil {
		return nil, false
	}
	p := s.plant
	cell := p.Cell(s.cellIdx)

	info = map[string]string{
		"id":          strconv.FormatUint(p.ID(), 10),
		"energy":      strconv.FormatFloat(p.Energy(), 'f', 2, 64),
		"cell_count":  strconv.Itoa(p.CellCount()),
		"age":         strconv.Itoa(p.Age()),
		"max_age":     strconv.Itoa(p.MaxAge(h.cfg)),
		"generation":  strconv.Itoa(p.Generation()),
		"leaf_count":  strconv.Itoa(p.CountKind(components.Leaf)),
		"trunk_count": strconv.Itoa(p.CountKind(components.Trunk)),
		"cell_type":   cell.Cell.Kind.String(),
		"position":    s.pos.String(),
	}
	if cell.Cell.Kind == components.Trunk {
		info["root_connection"] = strconv.FormatFloat(cell.Cell.RootConnection, 'f', 4, 64)
	}
	return info, true
}
