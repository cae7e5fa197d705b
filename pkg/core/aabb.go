package core

import "math"

// Containment is the result of classifying one AABB against another.
type Containment int

const (
	Disjoint Containment = iota
	Partial
	FullyContained
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// IntersectDistance returns the nearest positive entry distance of ray
// against the box using the slab method, or +Inf on a miss. tMin is not
// clamped to zero when the ray origin lies inside the box, matching the
// source's behaviour (spec §9 Open Questions) — a caller that wants a
// "0 if inside" distance must clamp the result itself.
func (aabb AABB) IntersectDistance(ray Ray) float64 {
	tMin, tMax := math.Inf(-1), ray.TMax
	if tMax <= 0 {
		tMax = math.Inf(1)
	}

	for axis := 0; axis < 3; axis++ {
		var min, max, origin, direction float64

		switch axis {
		case 0: // X axis
			min = aabb.Min.X
			max = aabb.Max.X
			origin = ray.Origin.X
			direction = ray.Direction.X
		case 1: // Y axis
			min = aabb.Min.Y
			max = aabb.Max.Y
			origin = ray.Origin.Y
			direction = ray.Direction.Y
		case 2: // Z axis
			min = aabb.Min.Z
			max = aabb.Max.Z
			origin = ray.Origin.Z
			direction = ray.Direction.Z
		}

		// Handle parallel rays (direction near zero)
		if math.Abs(direction) < 1e-8 {
			if origin < min || origin > max {
				return math.Inf(1)
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMax < tMin {
			return math.Inf(1)
		}
	}

	if tMax < 0 {
		return math.Inf(1)
	}
	return tMin
}

// Hit is a boolean convenience wrapper over IntersectDistance for
// traversal code that only needs to know whether the box was pierced
// within [tMin, tMax].
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	ray.TMax = tMax
	d := aabb.IntersectDistance(ray)
	return !math.IsInf(d, 1) && d >= tMin && d <= tMax
}

// IntersectsRay reports whether ray pierces the box within [0, ray.TMax].
func (aabb AABB) IntersectsRay(ray Ray) bool {
	return !math.IsInf(aabb.IntersectDistance(ray), 1)
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}

// ContainsPoint reports whether p lies within the box, inclusive of the
// boundary.
func (aabb AABB) ContainsPoint(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// Contains classifies other against aabb: Disjoint (no overlap), Partial
// (some but not all of other lies inside aabb), or FullyContained. This
// backs the oct-tree build rule in pkg/accel (spec §4.3): a candidate stays
// at the current node if it is Partial against every child, and descends
// into whichever child FullyContains it.
func (aabb AABB) Contains(other AABB) Containment {
	if other.Max.X < aabb.Min.X || other.Min.X > aabb.Max.X ||
		other.Max.Y < aabb.Min.Y || other.Min.Y > aabb.Max.Y ||
		other.Max.Z < aabb.Min.Z || other.Min.Z > aabb.Max.Z {
		return Disjoint
	}

	if other.Min.X >= aabb.Min.X && other.Max.X <= aabb.Max.X &&
		other.Min.Y >= aabb.Min.Y && other.Max.Y <= aabb.Max.Y &&
		other.Min.Z >= aabb.Min.Z && other.Max.Z <= aabb.Max.Z {
		return FullyContained
	}

	return Partial
}

// Transform applies an affine transform to the box's 8 corners and
// rebounds to a new axis-aligned box, used to bring a mesh-local AABB into
// world space for the upper-level oct-tree (spec §4.2).
func (aabb AABB) Transform(t Transform) AABB {
	corners := [8]Vec3{
		{aabb.Min.X, aabb.Min.Y, aabb.Min.Z},
		{aabb.Max.X, aabb.Min.Y, aabb.Min.Z},
		{aabb.Min.X, aabb.Max.Y, aabb.Min.Z},
		{aabb.Max.X, aabb.Max.Y, aabb.Min.Z},
		{aabb.Min.X, aabb.Min.Y, aabb.Max.Z},
		{aabb.Max.X, aabb.Min.Y, aabb.Max.Z},
		{aabb.Min.X, aabb.Max.Y, aabb.Max.Z},
		{aabb.Max.X, aabb.Max.Y, aabb.Max.Z},
	}

	out := NewAABBFromPoints(t.Point(corners[0]))
	for _, c := range corners[1:] {
		p := t.Point(c)
		out.Min = MinComponents(out.Min, p)
		out.Max = MaxComponents(out.Max, p)
	}
	return out
}
