package metcolour

import (
	"context"
	"fmt"
	"image"
	"sync"
)

type fakeCatalog struct {
	ids     []int
	listErr error
	objects map[int]*ObjectMetadata
}

func (c *fakeCatalog) ObjectIDs(_ context.Context, _ int) ([]int, error) {
	return c.ids, c.listErr
}

func (c *fakeCatalog) Object(_ context.Context, id int) (*ObjectMetadata, error) {
	meta, ok := c.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: object %d", ErrNotFound, id)
	}
	return meta, nil
}

type fakePixels struct {
	mu    sync.Mutex
	data  map[string][]byte
	calls int
}

func (p *fakePixels) Download(_ context.Context, url string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	data, ok := p.data[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNetwork, url)
	}
	return data, nil
}

// fakeQuantizer returns fixed colours regardless of the image.
type fakeQuantizer struct {
	dominant RGB
	palette  Palette
	err      error
}

func (q *fakeQuantizer) DominantColour(image.Image) (RGB, error) { return q.dominant, q.err }

func (q *fakeQuantizer) Palette(_ image.Image, n int) (Palette, error) {
	if q.err != nil {
		return nil, q.err
	}
	if len(q.palette) > n {
		return q.palette[:n], nil
	}
	return q.palette, nil
}

// objectURL is the preview URL used for object id in the fakes.
func objectURL(id int) string {
	return fmt.Sprintf("https://images.example/%d.png", id)
}

// newFakeConfig wires fakes for the given object ids; each id gets the same PNG.
func newFakeConfig(png []byte, ids ...int) (*Config, *fakeCatalog, *fakePixels) {
	cat := &fakeCatalog{ids: ids, objects: map[int]*ObjectMetadata{}}
	pix := &fakePixels{data: map[string][]byte{}}
	for _, id := range ids {
		cat.objects[id] = &ObjectMetadata{ObjectID: id, PrimaryImageSmall: objectURL(id)}
		pix.data[objectURL(id)] = png
	}
	cfg := &Config{
		Catalog:   cat,
		Pixels:    pix,
		Quantizer: &fakeQuantizer{dominant: RGB{200, 10, 10}, palette: Palette{{200, 10, 10}, {1, 1, 1}, {150, 20, 5}}},
	}
	return cfg, cat, pix
}

type panicQuantizer struct{}

func (panicQuantizer) DominantColour(image.Image) (RGB, error) { panic("quantizer exploded") }

func (panicQuantizer) Palette(image.Image, int) (Palette, error) { panic("quantizer exploded") }
