package ui

import "strconv"

// FocusPanel shows the selected plant's details.
type FocusPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewFocusPanel creates a new focus panel.
func NewFocusPanel(x, y, width int32) *FocusPanel {
	return &FocusPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (f *FocusPanel) SetPosition(x, y int32) {
	f.x = x
	f.y = y
}

// Draw renders the panel for the given focus information. Nothing is drawn
// when ok is false.
func (f *FocusPanel) Draw(info map[string]string, ok bool) {
	if !ok {
		return
	}
	r := f.renderer
	padding := r.Theme.Padding
	rows := FocusRows(info)

	height := padding*2 + r.Theme.LineHeight*int32(len(rows)+2) + 4
	r.DrawPanel(f.x, f.y, f.width, height)

	y := r.DrawSectionHeader(f.x+padding, f.y+padding, "Selected Plant")
	y = r.DrawRows(f.x+padding, y, rows)

	age, errA := strconv.ParseFloat(info["age"], 32)
	maxAge, errM := strconv.ParseFloat(info["max_age"], 32)
	if errA == nil && errM == nil {
		r.DrawRatioBar(f.x+padding, y, "Lifetime", float32(age), float32(maxAge), f.width-padding*2)
	}
}
