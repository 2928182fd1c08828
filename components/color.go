package components

import "image/color"

// Palette, as normalized RGB.
var (
	colorEmpty    = [3]float64{1, 1, 1}
	colorLeaf     = [3]float64{0, 0.894, 0.188}
	colorDeadLeaf = [3]float64{0.729, 0.557, 0.137}
	colorTrunk    = [3]float64{0.498, 0.416, 0.310}
	colorSeed     = [3]float64{0.992, 0.976, 0}
	colorDead     = [3]float64{0.51, 0.51, 0.51}
)

// Color resolves the display color of a cell. Leaves fade from green to
// dried brown as their share of the maximum absorbable light drops.
func Color(c CellType, leafAbsorbRate float64) color.RGBA {
	switch c.Kind {
	case Leaf:
		f := 0.0
		if leafAbsorbRate > 0 {
			f = clamp01(c.SunAbsorbed / leafAbsorbRate)
		}
		var mixed [3]float64
		for i := range mixed {
			mixed[i] = colorLeaf[i]*f + colorDeadLeaf[i]*(1-f)
		}
		return toRGBA(mixed)
	case Trunk:
		return toRGBA(colorTrunk)
	case Seed:
		return toRGBA(colorSeed)
	case Dead:
		return toRGBA(colorDead)
	default:
		return toRGBA(colorEmpty)
	}
}

// AppendRGB appends the three color bytes of c to dst.
func AppendRGB(dst []byte, c CellType, leafAbsorbRate float64) []byte {
	rgba := Color(c, leafAbsorbRate)
	return append(dst, rgba.R, rgba.G, rgba.B)
}

func toRGBA(c [3]float64) color.RGBA {
	return color.RGBA{R: uint8(c[0] * 255), G: uint8(c[1] * 255), B: uint8(c[2] * 255), A: 255}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
