// Package texture implements 2D and cube-map nearest-neighbour sampling
// over byte or float pixel data (spec C2).
package texture

import (
	"fmt"
	"math"

	"github.com/anvilrender/tracer/pkg/core"
)

// PixelFormat tags a texture's backing storage. Fixing this convention
// resolves the source's ambiguity between byte and float layouts (spec §9
// Open Questions): interleaved RGBA, top-left origin, selected explicitly
// per texture rather than inferred.
type PixelFormat int

const (
	// Byte textures store 4 uint8 channels per pixel, [0,255].
	Byte PixelFormat = iota
	// Float textures store 4 float32 channels per pixel, typically HDR.
	Float
)

// Texture2D is a 2D image sampled with nearest-neighbour lookup. Pixel
// (0,0) is the top-left corner; rows are stored left-to-right, top-to-
// bottom (interleaved RGBA).
type Texture2D struct {
	Width, Height int
	Format        PixelFormat
	BytePixels    []uint8   // len = Width*Height*4, valid when Format == Byte
	FloatPixels   []float32 // len = Width*Height*4, valid when Format == Float
}

// NewByteTexture2D wraps an interleaved RGBA8 byte buffer.
func NewByteTexture2D(w, h int, pixels []uint8) (*Texture2D, error) {
	if len(pixels) != w*h*4 {
		return nil, fmt.Errorf("texture: byte buffer length %d does not match %dx%d RGBA8", len(pixels), w, h)
	}
	return &Texture2D{Width: w, Height: h, Format: Byte, BytePixels: pixels}, nil
}

// NewFloatTexture2D wraps an interleaved RGBA32F float buffer.
func NewFloatTexture2D(w, h int, pixels []float32) (*Texture2D, error) {
	if len(pixels) != w*h*4 {
		return nil, fmt.Errorf("texture: float buffer length %d does not match %dx%d RGBA32F", len(pixels), w, h)
	}
	return &Texture2D{Width: w, Height: h, Format: Float, FloatPixels: pixels}, nil
}

// residenceSize reports the byte footprint of the texture's backing
// buffer, used by the material manager to account for resident texture
// memory (spec §4.4 "residence_size()").
func (t *Texture2D) residenceSize() int {
	switch t.Format {
	case Byte:
		return len(t.BytePixels)
	case Float:
		return len(t.FloatPixels) * 4
	default:
		return 0
	}
}

// ResidenceSize exposes residenceSize for package material.
func (t *Texture2D) ResidenceSize() int { return t.residenceSize() }

// Sample looks up the nearest texel for uv (wrapped into [0,1) on both
// axes) and returns an RGBA color in [0,1] per channel.
func (t *Texture2D) Sample(uv core.Vec2) (r, g, b, a float64) {
	u := wrap01(uv.X)
	v := wrap01(uv.Y)

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	idx := (y*t.Width + x) * 4

	switch t.Format {
	case Byte:
		p := t.BytePixels[idx : idx+4]
		return float64(p[0]) / 255, float64(p[1]) / 255, float64(p[2]) / 255, float64(p[3]) / 255
	case Float:
		p := t.FloatPixels[idx : idx+4]
		return float64(p[0]), float64(p[1]), float64(p[2]), float64(p[3])
	default:
		return 0, 0, 0, 0
	}
}

// SampleRGB is a convenience wrapper returning the first 3 channels.
func (t *Texture2D) SampleRGB(uv core.Vec2) core.Vec3 {
	r, g, b, _ := t.Sample(uv)
	return core.NewVec3(r, g, b)
}

func wrap01(x float64) float64 {
	x = math.Mod(x, 1.0)
	if x < 0 {
		x += 1.0
	}
	return x
}
