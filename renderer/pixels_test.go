package renderer

import (
	"image/color"
	"testing"
)

func TestPixelsTransposesColumns(t *testing.T) {
	// 2 columns, 3 rows; byte value encodes (column, storage row).
	w, h := 2, 3
	rgb := make([]byte, 0, w*h*3)
	for x := 0; x < w; x++ {
		for r := 0; r < h; r++ {
			v := byte(x*10 + r)
			rgb = append(rgb, v, v, v)
		}
	}

	px := Pixels(nil, rgb, w, h)
	if len(px) != w*h {
		t.Fatalf("expected %d pixels, got %d", w*h, len(px))
	}
	for r := 0; r < h; r++ {
		for x := 0; x < w; x++ {
			want := byte(x*10 + r)
			got := px[r*w+x]
			if got != (color.RGBA{R: want, G: want, B: want, A: 255}) {
				t.Errorf("pixel (%d,%d): expected %d, got %v", x, r, want, got)
			}
		}
	}
}

func TestPixelsReusesBuffer(t *testing.T) {
	buf := make([]color.RGBA, 0, 16)
	px := Pixels(buf, make([]byte, 4*3), 2, 2)
	if &px[0] != &buf[:1][0] {
		t.Error("expected buffer to be reused")
	}
}

func TestPixelsShortInput(t *testing.T) {
	px := Pixels(nil, []byte{1, 2, 3}, 2, 2)
	if len(px) != 4 {
		t.Fatalf("expected 4 pixels, got %d", len(px))
	}
	if px[0] != (color.RGBA{}) {
		t.Errorf("short input should leave pixels untouched, got %v", px[0])
	}
}
