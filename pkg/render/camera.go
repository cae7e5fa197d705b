// Package render owns the tile scheduler, worker pool and camera (C8, C9):
// everything that turns a built scene and an integrator into a pixel
// buffer. Grounded in the retrieved teacher's renderer package, adapted
// from its fixed-viewport Camera/WorkerPool/ProgressiveRaytracer trio to
// the pose+intrinsics camera and round-robin worker pool this spec calls
// for (see DESIGN.md).
package render

import (
	"math"
	"math/rand"

	"github.com/anvilrender/tracer/pkg/core"
)

// DefaultUp is the world-up vector used when no scene-file camera or
// explicit up vector is available.
var DefaultUp = core.NewVec3(0, 1, 0)

// Camera holds pose (position, direction, up) and intrinsics (aspect,
// near/far planes, vertical field of view, resolution) and generates
// jittered primary rays (spec §4.7).
type Camera struct {
	Position  core.Vec3
	Direction core.Vec3 // unit forward
	Up        core.Vec3 // unit up

	Aspect    float64
	Near, Far float64
	VFov      float64 // radians
	Width     int
	Height    int
}

// NewCamera normalises direction/up and derives an orthogonal basis.
func NewCamera(position, direction, up core.Vec3, aspect, near, far, vfov float64, width, height int) *Camera {
	return &Camera{
		Position:  position,
		Direction: direction.Normalize(),
		Up:        up.Normalize(),
		Aspect:    aspect,
		Near:      near,
		Far:       far,
		VFov:      vfov,
		Width:     width,
		Height:    height,
	}
}

// basis returns the camera's (right, up, forward) orthonormal frame.
func (c *Camera) basis() (right, up, forward core.Vec3) {
	forward = c.Direction.Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// GenerateRay produces a jittered primary ray through pixel (px, py),
// implementing integrator.Camera. The NDC offset is rotated into the
// camera basis and scaled by the vertical field of view (spec §4.5
// step 1).
func (c *Camera) GenerateRay(px, py int, rng *rand.Rand) core.Ray {
	right, up, forward := c.basis()

	jx, jy := rng.Float64(), rng.Float64()
	ndcX := (float64(px)+jx)/float64(c.Width) - 0.5
	ndcY := (float64(py)+jy)/float64(c.Height) - 0.5

	scale := 2 * math.Tan(c.VFov/2)
	dir := right.Multiply(ndcX * c.Aspect * scale).
		Add(up.Multiply(ndcY * scale)).
		Add(forward).
		Normalize()

	return core.NewRay(c.Position, dir, c.Far)
}

// MoveForward/Back/Left/Right/Up/Down translate the camera's position
// along its own basis vectors (spec §4.7 "relative moves").
func (c *Camera) MoveForward(d float64) { c.Position = c.Position.Add(c.Direction.Multiply(d)) }
func (c *Camera) MoveBack(d float64)    { c.MoveForward(-d) }

func (c *Camera) MoveRight(d float64) {
	right, _, _ := c.basis()
	c.Position = c.Position.Add(right.Multiply(d))
}
func (c *Camera) MoveLeft(d float64) { c.MoveRight(-d) }

func (c *Camera) MoveUp(d float64) {
	_, up, _ := c.basis()
	c.Position = c.Position.Add(up.Multiply(d))
}
func (c *Camera) MoveDown(d float64) { c.MoveUp(-d) }

// Pitch rotates the view direction around the camera's local right axis.
func (c *Camera) Pitch(radians float64) {
	right, _, _ := c.basis()
	c.Direction = rotateAroundAxis(c.Direction, right, radians).Normalize()
	c.Up = rotateAroundAxis(c.Up, right, radians).Normalize()
}

// Yaw rotates the view direction around the camera's local up axis.
func (c *Camera) Yaw(radians float64) {
	_, up, _ := c.basis()
	c.Direction = rotateAroundAxis(c.Direction, up, radians).Normalize()
}

// RotateWorldUp rotates the view direction and up vector around the
// global vertical (0,1,0), e.g. for a free-look horizontal pan.
func (c *Camera) RotateWorldUp(radians float64) {
	worldUp := core.NewVec3(0, 1, 0)
	c.Direction = rotateAroundAxis(c.Direction, worldUp, radians).Normalize()
	c.Up = rotateAroundAxis(c.Up, worldUp, radians).Normalize()
}

// rotateAroundAxis applies Rodrigues' rotation formula to v around a
// unit axis by the given angle in radians.
func rotateAroundAxis(v, axis core.Vec3, radians float64) core.Vec3 {
	cosT := math.Cos(radians)
	sinT := math.Sin(radians)
	return v.Multiply(cosT).
		Add(axis.Cross(v).Multiply(sinT)).
		Add(axis.Multiply(axis.Dot(v) * (1 - cosT)))
}
