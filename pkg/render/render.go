package render

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"sync/atomic"

	"github.com/anvilrender/tracer/pkg/integrator"
)

// Options configures a render pass (spec §4.6, §4.5).
type Options struct {
	TileWidth       int
	TileHeight      int
	NumWorkers      int
	MaxDepth        int
	SamplesPerPixel int // total budget, accumulated across passes
	SamplesPerPass  int // samples folded into the framebuffer per Integrate call
}

// DefaultOptions mirrors the tile size and depth the retrieved teacher's
// progressive renderer defaulted to.
func DefaultOptions() Options {
	return Options{
		TileWidth:       32,
		TileHeight:      32,
		NumWorkers:      0,
		MaxDepth:        8,
		SamplesPerPixel: 64,
		SamplesPerPass:  1,
	}
}

// Stats reports coverage of a completed render (spec renderer.RenderStats
// idiom, adapted: no adaptive sampling, so every pixel gets the same
// sample count).
type Stats struct {
	TotalPixels  int
	TotalTiles   int
	SamplesTaken int
}

// Renderer ties a camera, an integrator and a tile-parallel worker pool
// together into "render a camera into a pixel buffer" (spec OVERVIEW).
type Renderer struct {
	Camera      *Camera
	Integrator  *integrator.Integrator
	Framebuffer *Framebuffer
	pool        *WorkerPool
	options     Options
}

// New builds a renderer for the given camera/scene integrator at the
// camera's configured resolution.
func New(camera *Camera, integ *integrator.Integrator, opts Options) *Renderer {
	return &Renderer{
		Camera:      camera,
		Integrator:  integ,
		Framebuffer: NewFramebuffer(camera.Width, camera.Height),
		pool:        NewWorkerPool(opts.NumWorkers),
		options:     opts,
	}
}

// RenderPass dispatches one pass of SamplesPerPass samples per pixel
// across the tile grid, folding the result into the framebuffer's
// running mean. Cancellation is cooperative via quit (spec §5): workers
// check it at the start of each pixel and leave partial tiles as their
// last-written values.
func (r *Renderer) RenderPass(ctx context.Context, quit *atomic.Bool) (Stats, error) {
	tiles := NewTileGrid(r.Camera.Width, r.Camera.Height, r.options.TileWidth, r.options.TileHeight)

	samplesTaken := int32(0)
	err := r.pool.Run(ctx, tiles, quit, func(ctx context.Context, tile Tile, rng *rand.Rand) error {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if quit != nil && quit.Load() {
					return nil
				}
				colour := r.Integrator.Integrate(r.Camera, x, y, r.options.MaxDepth, r.options.SamplesPerPass, rng)
				r.Framebuffer.AddSample(x, y, colour)
				atomic.AddInt32(&samplesTaken, int32(r.options.SamplesPerPass))
			}
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("render: %w", err)
	}

	return Stats{
		TotalPixels:  r.Camera.Width * r.Camera.Height,
		TotalTiles:   len(tiles),
		SamplesTaken: int(samplesTaken),
	}, nil
}

// RenderToCompletion runs passes until SamplesPerPixel total samples have
// been folded into every pixel, or the quit flag is raised between
// passes.
func (r *Renderer) RenderToCompletion(ctx context.Context, quit *atomic.Bool) (Stats, error) {
	var final Stats
	taken := 0
	for taken < r.options.SamplesPerPixel {
		if quit != nil && quit.Load() {
			break
		}
		stats, err := r.RenderPass(ctx, quit)
		if err != nil {
			return stats, err
		}
		final.TotalPixels = stats.TotalPixels
		final.TotalTiles = stats.TotalTiles
		final.SamplesTaken += stats.SamplesTaken
		taken += r.options.SamplesPerPass
	}
	return final, nil
}

// Image returns the current framebuffer contents as an 8-bit raster,
// suitable for JPEG encoding (spec §6 "render-to-file output").
func (r *Renderer) Image() *image.RGBA {
	return r.Framebuffer.ToImage()
}
