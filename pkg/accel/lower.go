package accel

import "github.com/anvilrender/tracer/pkg/core"

// LowerLevel is the per-primitive intersector contract shared by
// TriangleMesh and Sphere: intersect a local-space ray and return an
// interpolated vertex (spec §4.1).
type LowerLevel interface {
	Bounds() core.AABB
	Intersect(ray core.Ray, bsrdf core.BSRDFRef) (core.InterpolatedVertex, float64, bool)
}

var (
	_ LowerLevel = (*TriangleMesh)(nil)
	_ LowerLevel = (*Sphere)(nil)
)
