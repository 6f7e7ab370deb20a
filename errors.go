package metcolour

import (
	"errors"
	"fmt"
)

// Sentinel errors. Test with errors.Is.
var (
	ErrInvalidArgument = errors.New("metcolour: invalid argument")
	ErrEmptyPalette    = fmt.Errorf("%w: empty palette", ErrInvalidArgument)
	ErrNoObjects       = errors.New("metcolour: there are no images")
	ErrCatalog         = errors.New("metcolour: can't get department info")
	ErrNotFound        = errors.New("metcolour: not found")
	ErrNetwork         = errors.New("metcolour: network error")
	ErrNoImage         = errors.New("metcolour: object has no preview image")
	ErrDecode          = errors.New("metcolour: can't decode image")
)

// Retrieval stages reported by RetrievalError.
const (
	StageMetadata = "metadata"
	StagePixels   = "pixels"
	StageDecode   = "decode"
	StageQuantize = "quantize"
)

// RetrievalError reports that one image could not be fetched or sampled.
// The batch skips the image and moves on.
type RetrievalError struct {
	ObjectID int
	Stage    string
	Err      error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("metcolour: object %d: %s: %v", e.ObjectID, e.Stage, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// IsRetrievalError reports whether err is (or wraps) a *RetrievalError.
func IsRetrievalError(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}
