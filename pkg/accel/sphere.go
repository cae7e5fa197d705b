package accel

import (
	"math"

	"github.com/anvilrender/tracer/pkg/core"
)

// Sphere is the lower-level intersector for an implicit sphere centred at
// the local-space origin (spec §3 Implicit Sphere Primitive).
type Sphere struct {
	Radius float64
}

// NewSphere returns a sphere of the given radius.
func NewSphere(radius float64) *Sphere {
	return &Sphere{Radius: radius}
}

// Bounds returns the sphere's local-space bounding box.
func (s *Sphere) Bounds() core.AABB {
	r := s.Radius
	return core.NewAABB(core.NewVec3(-r, -r, -r), core.NewVec3(r, r, r))
}

// Intersect solves the ray/sphere quadratic in the standard geometric
// form and returns the nearer non-negative root. If the ray origin is
// inside the sphere (the near root comes out negative, far root
// positive), the root is clamped to zero rather than stepping out to the
// far root (spec §4.1).
func (s *Sphere) Intersect(ray core.Ray, bsrdf core.BSRDFRef) (core.InterpolatedVertex, float64, bool) {
	oc := ray.Origin
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return core.InterpolatedVertex{}, 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	root1 := (-halfB - sqrtD) / a
	root2 := (-halfB + sqrtD) / a
	if root2 < 0 {
		return core.InterpolatedVertex{}, 0, false
	}

	t := root1
	if root1 < 0 {
		t = 0
	}
	if ray.TMax > 0 && t > ray.TMax {
		return core.InterpolatedVertex{}, 0, false
	}

	pos := ray.At(t)
	n := pos.Multiply(1 / s.Radius)

	azimuth := math.Atan2(n.Z, n.X)
	uv := core.NewVec2(azimuth/(2*math.Pi)+0.5, n.Y*0.5+0.5)

	return core.InterpolatedVertex{
		Position: pos,
		Normal:   n,
		UV:       uv,
		Color:    core.NewVec3(1, 1, 1),
		BSRDF:    bsrdf,
	}, t, true
}
