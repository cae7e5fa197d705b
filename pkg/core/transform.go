package core

import "github.com/go-gl/mathgl/mgl64"

// Transform is a rigid-plus-scale affine transform: a world matrix and its
// inverse, carried together so entries never have to re-invert per
// intersection (spec §4.2's per-instance world/inverse pair).
type Transform struct {
	World    mgl64.Mat4
	Inverse  mgl64.Mat4
	Normal   mgl64.Mat4 // inverse-transpose of the 3x3 linear part, for normals
}

// NewTransform builds a Transform from translation, rotation (as a
// quaternion, matching the scene file's INSTANCE.Rotation field) and a
// uniform or per-axis scale.
func NewTransform(translation Vec3, rotation mgl64.Quat, scale Vec3) Transform {
	t := mgl64.Translate3D(translation.X, translation.Y, translation.Z)
	r := rotation.Mat4()
	s := mgl64.Scale3D(scale.X, scale.Y, scale.Z)
	world := t.Mul4(r).Mul4(s)
	return transformFromMat4(world)
}

// Identity returns the identity transform.
func Identity() Transform {
	return transformFromMat4(mgl64.Ident4())
}

func transformFromMat4(world mgl64.Mat4) Transform {
	inv := world.Inv()
	normal := inv.Transpose()
	return Transform{World: world, Inverse: inv, Normal: normal}
}

// Point transforms a point by the world matrix (translation included).
func (t Transform) Point(p Vec3) Vec3 {
	v := t.World.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// InversePoint transforms a point by the inverse matrix, bringing a
// world-space point into local space.
func (t Transform) InversePoint(p Vec3) Vec3 {
	v := t.Inverse.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Vector transforms a direction vector (translation excluded).
func (t Transform) Vector(v Vec3) Vec3 {
	r := t.World.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return Vec3{X: r[0], Y: r[1], Z: r[2]}
}

// InverseVector transforms a direction vector by the inverse matrix.
func (t Transform) InverseVector(v Vec3) Vec3 {
	r := t.Inverse.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return Vec3{X: r[0], Y: r[1], Z: r[2]}
}

// NormalVector transforms a surface normal by the inverse-transpose of the
// linear part, which is what keeps a normal perpendicular to its surface
// under non-uniform scale.
func (t Transform) NormalVector(n Vec3) Vec3 {
	r := t.Normal.Mul4x1(mgl64.Vec4{n.X, n.Y, n.Z, 0})
	return Vec3{X: r[0], Y: r[1], Z: r[2]}.Normalize()
}

// RayToLocal transforms a ray from world space into this transform's local
// space. The direction is only rotated, not scaled: it is renormalised
// after the inverse transform so a non-uniform scale on the instance
// can't be confused with ray length (spec §4.2 "numeric care"). Distances
// measured in local space are therefore not directly comparable to world
// distances — callers must recompute the hit distance in world space
// after transforming the hit position back.
func (t Transform) RayToLocal(r Ray) Ray {
	return Ray{
		Origin:    t.InversePoint(r.Origin),
		Direction: t.InverseVector(r.Direction).Normalize(),
		TMax:      r.TMax,
	}
}
