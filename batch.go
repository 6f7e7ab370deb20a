package metcolour

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BatchOpts configures ProcessDepartment.
// Zero values mean: no limit, sequential processing, no duplicate filtering.
type BatchOpts struct {
	Limit       int  // process at most this many objects (0 = all)
	Concurrency int  // parallel images (<= 1 = one at a time, in catalog order)
	Dedup       bool // drop images perceptually identical to an earlier one
}

// ProcessDepartment classifies every object image of a catalog department.
//
// Objects that fail with a *RetrievalError are logged and skipped, so a partial
// result set is still a success. The call fails when the catalog listing fails,
// when it is empty (ErrNoObjects), or on ErrInvalidArgument from the classifier.
// Results are returned in catalog order regardless of Concurrency.
func (cfg *Config) ProcessDepartment(ctx context.Context, departmentID int, opts BatchOpts) ([]ImageResult, error) {
	cfg.defaults()

	ids, err := cfg.Catalog.ObjectIDs(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: department %d: %w", ErrCatalog, departmentID, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: department %d", ErrNoObjects, departmentID)
	}
	if opts.Limit > 0 && len(ids) > opts.Limit {
		ids = ids[:opts.Limit]
	}

	var dedup *duplicateFilter
	if opts.Dedup {
		dedup = &duplicateFilter{}
	}

	slots := make([]*ImageResult, len(ids))

	if opts.Concurrency <= 1 {
		for i, id := range ids {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := cfg.processOne(ctx, i, id, dedup)
			if err != nil {
				return nil, err
			}
			slots[i] = res
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Concurrency)
		for i, id := range ids {
			g.Go(func() error {
				res, err := cfg.processOne(gctx, i, id, dedup)
				slots[i] = res
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	results := make([]ImageResult, 0, len(ids))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	cfg.Logger.Info("metcolour: department processed",
		"department", departmentID, "objects", len(ids), "images", len(results))
	return results, nil
}

// processOne handles a single batch entry. It returns (nil, nil) for skipped
// images and a non-nil error only when the whole batch must stop.
// Recovers from panics so one broken image cannot take the batch down.
func (cfg *Config) processOne(ctx context.Context, index, objectID int, dedup *duplicateFilter) (res *ImageResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			if cfg.OnPanic != nil {
				cfg.OnPanic("processImage", r)
			}
			cfg.Logger.Error("metcolour: panic while processing image", "index", index+1, "object", objectID, "panic", r)
			res, err = nil, nil
		}
	}()

	cfg.Logger.Info("metcolour: processing image", "index", index+1, "object", objectID)

	result, img, err := cfg.processObject(ctx, objectID)
	if err != nil {
		cfg.emit(ImageEvent{Index: index + 1, ObjectID: objectID, Err: err})
		if errors.Is(err, ErrInvalidArgument) {
			return nil, err
		}
		cfg.Logger.Warn("metcolour: can't get image", "index", index+1, "object", objectID, "error", err.Error())
		return nil, nil
	}

	if dedup != nil && img != nil {
		if dupOf, ok := dedup.check(objectID, img); ok {
			cfg.Logger.Debug("metcolour: duplicate image skipped", "object", objectID, "duplicate_of", dupOf)
			cfg.emit(ImageEvent{Index: index + 1, ObjectID: objectID})
			return nil, nil
		}
	}

	cfg.emit(ImageEvent{Index: index + 1, ObjectID: objectID, Result: &result})
	return &result, nil
}

func (cfg *Config) emit(ev ImageEvent) {
	if cfg.OnImage != nil {
		cfg.OnImage(ev)
	}
}
