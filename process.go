package metcolour

import (
	"context"
	"fmt"
	"image"
	"strconv"
)

// Process fetches one catalog object and its preview image and classifies it.
//
// Catalog, download, decode and quantization failures are returned as
// *RetrievalError; nothing is retried. An empty palette from the Quantizer
// yields ErrEmptyPalette, which is not a retrieval error.
func (cfg *Config) Process(ctx context.Context, objectID int) (ImageResult, error) {
	res, _, err := cfg.processObject(ctx, objectID)
	return res, err
}

func (cfg *Config) processObject(ctx context.Context, objectID int) (ImageResult, image.Image, error) {
	cfg.defaults()

	fail := func(stage string, err error) (ImageResult, image.Image, error) {
		return ImageResult{}, nil, &RetrievalError{ObjectID: objectID, Stage: stage, Err: err}
	}

	meta, err := cfg.Catalog.Object(ctx, objectID)
	if err != nil {
		return fail(StageMetadata, err)
	}
	if meta.PrimaryImageSmall == "" {
		return fail(StageMetadata, ErrNoImage)
	}

	data, err := cfg.Pixels.Download(ctx, meta.PrimaryImageSmall)
	if err != nil {
		return fail(StagePixels, err)
	}

	img, err := DecodeImage(data)
	if err != nil {
		return fail(StageDecode, err)
	}

	dominant, err := cfg.Quantizer.DominantColour(img)
	if err != nil {
		return fail(StageQuantize, err)
	}
	palette, err := cfg.Quantizer.Palette(img, cfg.PaletteSize)
	if err != nil {
		return fail(StageQuantize, err)
	}

	primary, err := ClassifyPalette(palette)
	if err != nil {
		return ImageResult{}, nil, fmt.Errorf("object %d: %w", objectID, err)
	}

	canonicalID := meta.ObjectID
	if canonicalID == 0 {
		canonicalID = objectID
	}

	res := ImageResult{
		ID:                    strconv.Itoa(canonicalID),
		URL:                   meta.PrimaryImageSmall,
		DominantColour:        dominant.String(),
		DominantPrimaryColour: primary,
	}
	if cfg.ExtractRights {
		res.Rights = ExtractRightsMetadata(data).Summary()
	}

	cfg.Logger.Debug("metcolour: classified",
		"object", objectID, "dominant", res.DominantColour, "primary", primary.String(), "palette", len(palette))
	return res, img, nil
}
