package renderer

import "image/color"

// Pixels converts column-major RGB cell data (each column stored canopy
// first) into a row-major RGBA image of w by h pixels with the canopy on
// row 0. dst is reused when it has room.
func Pixels(dst []color.RGBA, rgb []byte, w, h int) []color.RGBA {
	n := w * h
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]
	if len(rgb) < n*3 {
		return dst
	}
	for x := 0; x < w; x++ {
		for r := 0; r < h; r++ {
			src := (x*h + r) * 3
			dst[r*w+x] = color.RGBA{R: rgb[src], G: rgb[src+1], B: rgb[src+2], A: 255}
		}
	}
	return dst
}
