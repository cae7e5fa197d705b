package core

// Ray is a geometric ray in local or world space: an origin, a unit
// direction, and a maximum travel distance. The integrator keeps the
// radiance payload, throughput and IoR stack out of this type — they
// are path state, not geometry, and lower/upper level intersectors never
// need them.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMax      float64
}

// NewRay creates a ray with the given origin, direction and max distance.
func NewRay(origin, direction Vec3, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: tMax}
}

// NewRayTo creates a ray from origin toward target, with TMax set to the
// distance between them (useful for shadow rays).
func NewRayTo(origin, target Vec3) Ray {
	delta := target.Subtract(origin)
	dist := delta.Length()
	if dist == 0 {
		return Ray{Origin: origin, Direction: Vec3{X: 0, Y: 0, Z: 1}, TMax: 0}
	}
	return Ray{Origin: origin, Direction: delta.Multiply(1 / dist), TMax: dist}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Offset returns a copy of the ray whose origin has been nudged by eps along
// the direction d, used to avoid self-intersection on the next bounce
// (spec §4.5 step 8: offset by ε·L).
func (r Ray) Offset(d Vec3, eps float64) Ray {
	r.Origin = r.Origin.Add(d.Multiply(eps))
	return r
}
