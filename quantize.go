package metcolour

import (
	"errors"
	"fmt"
	"image"

	"github.com/EdlinOrg/prominentcolor"
)

// Quantizer reduces an image to representative colours.
type Quantizer interface {
	// DominantColour returns the most prevalent colour.
	DominantColour(img image.Image) (RGB, error)
	// Palette returns up to n representative colours, most prevalent first.
	Palette(img image.Image, n int) (Palette, error)
}

// ProminentQuantizer clusters pixels with k-means via prominentcolor.
// The whole frame is sampled (no cropping) and no background is masked out.
type ProminentQuantizer struct {
	// ResizeTo is the width images are scaled to before clustering
	// (default: prominentcolor.DefaultSize).
	ResizeTo uint
}

// dominantSampleSize is the cluster count used to pick the dominant colour.
const dominantSampleSize = 5

// DominantColour returns the centroid of the largest of five clusters.
func (q *ProminentQuantizer) DominantColour(img image.Image) (RGB, error) {
	items, err := q.cluster(img, dominantSampleSize)
	if err != nil {
		return RGB{}, err
	}

	best := 0
	for i := range items {
		if items[i].Cnt > items[best].Cnt {
			best = i
		}
	}
	return itemRGB(items[best]), nil
}

// Palette returns the centroids of n clusters ordered by cluster size.
func (q *ProminentQuantizer) Palette(img image.Image, n int) (Palette, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: palette size must be at least 1, got %d", ErrInvalidArgument, n)
	}
	items, err := q.cluster(img, n)
	if err != nil {
		return nil, err
	}

	p := make(Palette, len(items))
	for i, it := range items {
		p[i] = itemRGB(it)
	}
	return p, nil
}

func (q *ProminentQuantizer) cluster(img image.Image, k int) ([]prominentcolor.ColorItem, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", ErrInvalidArgument)
	}
	size := q.ResizeTo
	if size == 0 {
		size = prominentcolor.DefaultSize
	}

	items, err := prominentcolor.KmeansWithAll(k, img, prominentcolor.ArgumentNoCropping, size, nil)
	if err != nil {
		return nil, fmt.Errorf("prominentcolor: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("prominentcolor: no colours found")
	}
	return items, nil
}

func itemRGB(it prominentcolor.ColorItem) RGB {
	return RGB{int(it.Color.R), int(it.Color.G), int(it.Color.B)}
}
