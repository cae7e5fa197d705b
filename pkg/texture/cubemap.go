package texture

import (
	"fmt"
	"math"

	"github.com/anvilrender/tracer/pkg/core"
)

// Face indexes a cube-map face in the scene file order: +X, -X, +Y, -Y,
// +Z, -Z (spec §6 GLOBALS.*.Skybox).
type Face int

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// CubeMap samples an environment map from a world-space direction: the
// skybox sampled on escape (spec §3 Sun, §4.5 step 2/8).
type CubeMap struct {
	faces [6]*Texture2D
}

// NewCubeMap wraps six equally-sized textures into a cube map. All six
// must share width, height and pixel format (spec §6 "all six must be the
// same width × height × RGBA-8").
func NewCubeMap(faces [6]*Texture2D) (*CubeMap, error) {
	w, h, format := faces[0].Width, faces[0].Height, faces[0].Format
	for i, f := range faces {
		if f.Width != w || f.Height != h || f.Format != format {
			return nil, fmt.Errorf("texture: cube map face %d does not match face 0's dimensions/format", i)
		}
	}
	return &CubeMap{faces: faces}, nil
}

// FaceUV resolves a world-space direction to a face index and UV
// coordinate within that face (spec §8 round-trip: each face centre
// direction resolves to its face with uv = (0.5, 0.5)).
func FaceUV(dir core.Vec3) (Face, core.Vec2) {
	ax, ay, az := math.Abs(dir.X), math.Abs(dir.Y), math.Abs(dir.Z)

	var face Face
	var u, v, ma float64
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if dir.X > 0 {
			face = PosX
			u, v = -dir.Z, -dir.Y
		} else {
			face = NegX
			u, v = dir.Z, -dir.Y
		}
	case ay >= ax && ay >= az:
		ma = ay
		if dir.Y > 0 {
			face = PosY
			u, v = dir.X, dir.Z
		} else {
			face = NegY
			u, v = dir.X, -dir.Z
		}
	default:
		ma = az
		if dir.Z > 0 {
			face = PosZ
			u, v = dir.X, -dir.Y
		} else {
			face = NegZ
			u, v = -dir.X, -dir.Y
		}
	}

	uv := core.NewVec2(0.5*(u/ma+1), 0.5*(v/ma+1))
	return face, uv
}

// Sample resolves dir to a face and UV and nearest-neighbour samples it.
func (c *CubeMap) Sample(dir core.Vec3) core.Vec3 {
	face, uv := FaceUV(dir.Normalize())
	return c.faces[face].SampleRGB(uv)
}
