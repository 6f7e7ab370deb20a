package metcolour

import "fmt"

// RGB is a single sampled colour: red, green and blue channel values.
// Channels are conventionally 0-255 but no bounds are enforced.
type RGB [3]int

// Palette is an ordered sample of representative colours from one image.
type Palette []RGB

// String formats the colour as "rgb(R, G, B)" using the literal channel values.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c[0], c[1], c[2])
}

// IsMonochrome reports whether all three channels are equal (grey, black or white).
func (c RGB) IsMonochrome() bool {
	return c[0] == c[1] && c[1] == c[2]
}

// IndexOfMax returns the index of the largest of the three values.
// The leading index only moves on a strictly greater value, so ties
// resolve to the earliest index and an all-equal triple yields 0.
func IndexOfMax(v [3]int) int {
	maxIndex := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[maxIndex] {
			maxIndex = i
		}
	}
	return maxIndex
}
