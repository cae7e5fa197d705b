package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNewAABBFromPointsBounds(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, -2, 3), NewVec3(-1, 5, 0), NewVec3(2, 0, -4))
	assert.Equal(t, NewVec3(-1, -2, -4), box.Min)
	assert.Equal(t, NewVec3(2, 5, 3), box.Max)
}

func TestAABBIntersectDistanceHitsFromOutside(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	r := NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1), math.Inf(1))
	d := box.IntersectDistance(r)
	assert.InDelta(t, 4.0, d, 1e-9)
}

func TestAABBIntersectDistanceMiss(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	r := NewRay(NewVec3(5, 5, -5), NewVec3(0, 0, 1), math.Inf(1))
	d := box.IntersectDistance(r)
	assert.True(t, math.IsInf(d, 1))
}

func TestAABBIntersectsRayConvenienceWrapper(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	hit := NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1), math.Inf(1))
	miss := NewRay(NewVec3(5, 5, -5), NewVec3(0, 0, 1), math.Inf(1))
	assert.True(t, box.IntersectsRay(hit))
	assert.False(t, box.IntersectsRay(miss))
}

func TestAABBUnion(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, -1, -1), NewVec3(0.5, 0.5, 0.5))
	u := a.Union(b)
	assert.Equal(t, NewVec3(-1, -1, -1), u.Min)
	assert.Equal(t, NewVec3(1, 1, 1), u.Max)
}

func TestAABBSurfaceAreaOfUnitCube(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	assert.InDelta(t, 6.0, box.SurfaceArea(), 1e-9)
}

func TestAABBLongestAxis(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(10, 1, 2))
	assert.Equal(t, 0, box.LongestAxis())
}

func TestAABBIsValid(t *testing.T) {
	assert.True(t, NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)).IsValid())
	assert.False(t, NewAABB(NewVec3(1, 1, 1), NewVec3(0, 0, 0)).IsValid())
}

func TestAABBContainsClassification(t *testing.T) {
	outer := NewAABB(NewVec3(-10, -10, -10), NewVec3(10, 10, 10))
	inner := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	partial := NewAABB(NewVec3(5, 5, 5), NewVec3(20, 20, 20))
	disjoint := NewAABB(NewVec3(100, 100, 100), NewVec3(200, 200, 200))

	assert.Equal(t, FullyContained, outer.Contains(inner))
	assert.Equal(t, Partial, outer.Contains(partial))
	assert.Equal(t, Disjoint, outer.Contains(disjoint))
}

func TestAABBContainsPoint(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	assert.True(t, box.ContainsPoint(NewVec3(0.5, 0.5, 0.5)))
	assert.False(t, box.ContainsPoint(NewVec3(2, 0, 0)))
}

func TestAABBTransformRebounds(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	tr := NewTransform(NewVec3(5, 0, 0), mgl64.QuatIdent(), NewVec3(1, 1, 1))
	moved := box.Transform(tr)
	assert.InDelta(t, 4, moved.Min.X, 1e-9)
	assert.InDelta(t, 6, moved.Max.X, 1e-9)
}
