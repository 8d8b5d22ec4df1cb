package core

import (
	"fmt"

	"github.com/kpfaulkner/avif-go/image"
	"github.com/kpfaulkner/avif-go/util"
)

// BufferAllocator hands out the float storage an image is decoded into.
type BufferAllocator interface {
	Alloc(img *image.FloatImage) ([]float32, error)
	Release(buf []float32)
}

// PoolAllocator recycles buffers of identical size and refuses images
// larger than MaxPixels.
type PoolAllocator struct {
	MaxPixels int
	pool      *util.SlicePool[float32]
}

func NewPoolAllocator(maxPixels int) *PoolAllocator {
	return &PoolAllocator{
		MaxPixels: maxPixels,
		pool:      util.NewSlicePool[float32](),
	}
}

func (pa *PoolAllocator) Alloc(img *image.FloatImage) ([]float32, error) {
	if img.Width <= 0 || img.Height <= 0 {
		return nil, fmt.Errorf("cannot allocate %dx%d image: %w", img.Width, img.Height, ErrCacheFull)
	}
	if pa.MaxPixels > 0 && img.Width*img.Height > pa.MaxPixels {
		return nil, fmt.Errorf("%dx%d exceeds limit of %d pixels: %w", img.Width, img.Height, pa.MaxPixels, ErrCacheFull)
	}
	return pa.pool.Get(img.BufferSize()), nil
}

func (pa *PoolAllocator) Release(buf []float32) {
	pa.pool.Put(buf)
}

func (pa *PoolAllocator) Metrics() (hits, misses int64) {
	return pa.pool.GetMetrics()
}
