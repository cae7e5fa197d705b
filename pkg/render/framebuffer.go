package render

import (
	"image"
	"image/color"
	"math"

	"github.com/anvilrender/tracer/pkg/core"
)

// Framebuffer is the running-mean pixel accumulator. Tiles partition the
// raster so no two workers ever touch the same pixel; per spec §5 that
// makes per-pixel updates lock-free as long as each pixel is only ever
// written by the single worker owning its tile.
type Framebuffer struct {
	Width, Height int
	accum         []core.Vec3
	samples       []int
}

// NewFramebuffer allocates a zeroed accumulator for a width x height image.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:   width,
		Height:  height,
		accum:   make([]core.Vec3, width*height),
		samples: make([]int, width*height),
	}
}

func (f *Framebuffer) index(x, y int) int { return y*f.Width + x }

// AddSample folds one more sample into pixel (x, y)'s running mean.
func (f *Framebuffer) AddSample(x, y int, c core.Vec3) {
	i := f.index(x, y)
	f.accum[i] = f.accum[i].Add(c)
	f.samples[i]++
}

// At returns the current averaged colour for pixel (x, y).
func (f *Framebuffer) At(x, y int) core.Vec3 {
	i := f.index(x, y)
	if f.samples[i] == 0 {
		return core.Vec3{}
	}
	return f.accum[i].Multiply(1 / float64(f.samples[i]))
}

// SampleCount reports how many samples pixel (x, y) has accumulated.
func (f *Framebuffer) SampleCount(x, y int) int {
	return f.samples[f.index(x, y)]
}

// ToImage renders the current accumulator to an 8-bit sRGB-gamma RGBA
// image, clamping each channel to [0,1] before gamma correction and
// writing non-finite colours as black (spec §7).
func (f *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			if !isFiniteVec(c) {
				c = core.Vec3{}
			}
			c = c.Clamp(0, 1).GammaCorrect(2.2)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * c.X),
				G: uint8(255 * c.Y),
				B: uint8(255 * c.Z),
				A: 255,
			})
		}
	}
	return img
}

func isFiniteVec(c core.Vec3) bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) &&
		!math.IsNaN(c.Y) && !math.IsInf(c.Y, 0) &&
		!math.IsNaN(c.Z) && !math.IsInf(c.Z, 0)
}
