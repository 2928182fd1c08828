// Package genome implements the genetic encoding of a plant and the
// growth rules decoded from it.
package genome

import (
	"math"
	"math/rand/v2"
)

// Genome is a fixed-length sequence of random 16-bit values read through a
// circular cursor. Reads never fail: past the end they restart at index 0.
type Genome struct {
	data   []uint16
	cursor int
}

// New returns a genome of size uniformly random values.
func New(size int, rng *rand.Rand) *Genome {
	if size <= 0 {
		panic("genome: size must be positive")
	}
	data := make([]uint16, size)
	for i := range data {
		data[i] = randomValue(rng)
	}
	return &Genome{data: data}
}

// FromValues wraps an explicit value sequence. The slice is copied.
func FromValues(values []uint16) *Genome {
	if len(values) == 0 {
		panic("genome: empty value sequence")
	}
	return &Genome{data: append([]uint16(nil), values...)}
}

// Len returns the number of values in the genome.
func (g *Genome) Len() int { return len(g.data) }

// Cursor returns the index of the next value to be read.
func (g *Genome) Cursor() int { return g.cursor }

// Reset moves the cursor back to the first value.
func (g *Genome) Reset() { g.cursor = 0 }

// Value returns the value at index i without moving the cursor.
func (g *Genome) Value(i int) uint16 { return g.data[i] }

// ParseValue consumes one raw value.
func (g *Genome) ParseValue() uint16 {
	v := g.data[g.cursor]
	g.cursor = (g.cursor + 1) % len(g.data)
	return v
}

// ParseValueNormalized consumes one value scaled to [0, 1].
func (g *Genome) ParseValueNormalized() float64 {
	return float64(g.ParseValue()) / math.MaxUint16
}

// ParseBool consumes one value and reports whether it lies in the upper half.
func (g *Genome) ParseBool() bool {
	return g.ParseValueNormalized() >= 0.5
}

// CreateOffspring returns a mutated copy. Each value is independently
// replaced by a fresh random value with probability rate. The copy's
// cursor starts at 0 regardless of the parent's.
func (g *Genome) CreateOffspring(rate float64, rng *rand.Rand) *Genome {
	data := make([]uint16, len(g.data))
	for i, v := range g.data {
		if rng.Float64() < rate {
			v = randomValue(rng)
		}
		data[i] = v
	}
	return &Genome{data: data}
}

// Diff counts the positions where g and other hold different values.
func (g *Genome) Diff(other *Genome) int {
	n := min(len(g.data), len(other.data))
	diff := max(len(g.data), len(other.data)) - n
	for i := 0; i < n; i++ {
		if g.data[i] != other.data[i] {
			diff++
		}
	}
	return diff
}

func randomValue(rng *rand.Rand) uint16 {
	return uint16(rng.Uint32() >> 16)
}
