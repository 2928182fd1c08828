package ui

import "testing"

func TestFocusRowsOrder(t *testing.T) {
	info := map[string]string{
		"energy":     "3.50",
		"id":         "7",
		"cell_type":  "Leaf",
		"zz_extra":   "1",
		"aa_extra":   "2",
		"generation": "4",
	}

	rows := FocusRows(info)
	want := []Row{
		{"Plant", "7"},
		{"Generation", "4"},
		{"Energy", "3.50"},
		{"Cell", "Leaf"},
		{"aa_extra", "2"},
		{"zz_extra", "1"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d: %v", len(want), len(rows), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: expected %v, got %v", i, want[i], rows[i])
		}
	}
}

func TestFocusRowsEmpty(t *testing.T) {
	if rows := FocusRows(nil); len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}

func TestToggleText(t *testing.T) {
	tests := []struct {
		on   bool
		want string
	}{
		{true, "Resume"},
		{false, "Pause"},
	}
	for _, tt := range tests {
		if got := toggleText(tt.on, "Resume", "Pause"); got != tt.want {
			t.Errorf("toggleText(%v): expected %q, got %q", tt.on, tt.want, got)
		}
	}
}
