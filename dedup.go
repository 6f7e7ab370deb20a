package metcolour

import (
	"image"
	"sync"

	"github.com/corona10/goimagehash"
)

// duplicateDistance is the Hamming distance between two dHash values below
// which images count as the same photograph.
const duplicateDistance = 10

type seenImage struct {
	objectID int
	hash     *goimagehash.ImageHash
}

// duplicateFilter remembers the perceptual hash of every accepted image in a
// batch. It is safe for concurrent use.
type duplicateFilter struct {
	mu   sync.Mutex
	seen []seenImage
}

// check returns the object id of an earlier, perceptually identical image.
// Otherwise img is recorded under objectID and ok is false. Images that
// cannot be hashed are never treated as duplicates.
func (f *duplicateFilter) check(objectID int, img image.Image) (dupOf int, ok bool) {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return 0, false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.seen {
		dist, err := hash.Distance(s.hash)
		if err == nil && dist < duplicateDistance {
			return s.objectID, true
		}
	}

	f.seen = append(f.seen, seenImage{objectID: objectID, hash: hash})
	return 0, false
}
