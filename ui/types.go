// Package ui draws the heads-up display and controls for the habitat viewer.
// Panels read plain data structs so the habitat package stays free of
// drawing code.
package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// FieldDescriptor maps a focus information key to a display label.
type FieldDescriptor struct {
	Key   string
	Label string
}

// FocusFields lists the focus panel rows in display order.
var FocusFields = []FieldDescriptor{
	{Key: "id", Label: "Plant"},
	{Key: "generation", Label: "Generation"},
	{Key: "energy", Label: "Energy"},
	{Key: "age", Label: "Age"},
	{Key: "max_age", Label: "Max age"},
	{Key: "cell_count", Label: "Cells"},
	{Key: "leaf_count", Label: "Leaves"},
	{Key: "trunk_count", Label: "Trunks"},
	{Key: "cell_type", Label: "Cell"},
	{Key: "position", Label: "Position"},
	{Key: "root_connection", Label: "Root conn."},
}

// Row is one label/value line of a panel.
type Row struct {
	Label string
	Value string
}

// FocusRows orders the focus information for display. Keys missing from info
// are skipped; keys not named in FocusFields are appended sorted by key.
func FocusRows(info map[string]string) []Row {
	rows := make([]Row, 0, len(info))
	seen := make(map[string]bool, len(FocusFields))
	for _, f := range FocusFields {
		seen[f.Key] = true
		if v, ok := info[f.Key]; ok {
			rows = append(rows, Row{Label: f.Label, Value: v})
		}
	}
	var extra []string
	for k := range info {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	for _, k := range extra {
		rows = append(rows, Row{Label: k, Value: info[k]})
	}
	return rows
}
