package components

// PlantCell is one cell owned by a plant.
// ResponseIx selects the response cluster consulted when this cell grows.
type PlantCell struct {
	Pos        GridPos
	Cell       CellType
	ResponseIx int
}
