package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3AddSubtract(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)
	assert.Equal(t, NewVec3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, -3, -3), a.Subtract(b))
}

func TestVec3DotAndCross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	assert.Equal(t, 0.0, x.Dot(y))
	assert.Equal(t, NewVec3(0, 0, 1), x.Cross(y))
}

func TestVec3NormalizeZeroVectorStaysZero(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3NormalizeUnitLength(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	assert.InDelta(t, 1.0, v.Length(), 1e-9)
}

func TestVec3ReflectAboutNormal(t *testing.T) {
	incoming := NewVec3(1, -1, 0)
	normal := NewVec3(0, 1, 0)
	reflected := incoming.Reflect(normal)
	assert.InDelta(t, 1, reflected.X, 1e-9)
	assert.InDelta(t, 1, reflected.Y, 1e-9)
}

func TestVec3RefractTotalInternalReflection(t *testing.T) {
	// grazing incidence from a dense to a less dense medium triggers TIR
	incoming := NewVec3(0.99, -0.1411, 0).Normalize()
	normal := NewVec3(0, 1, 0)
	_, ok := incoming.Refract(normal, 1.5)
	assert.False(t, ok)
}

func TestVec3RefractStraightThrough(t *testing.T) {
	incoming := NewVec3(0, -1, 0)
	normal := NewVec3(0, 1, 0)
	refracted, ok := incoming.Refract(normal, 1.0)
	assert.True(t, ok)
	assert.InDelta(t, 0, refracted.X, 1e-9)
	assert.InDelta(t, -1, refracted.Y, 1e-9)
}

func TestVec3ClampBounds(t *testing.T) {
	v := NewVec3(-1, 0.5, 2)
	clamped := v.Clamp(0, 1)
	assert.Equal(t, NewVec3(0, 0.5, 1), clamped)
}

func TestMinMaxComponents(t *testing.T) {
	a := NewVec3(1, 5, -2)
	b := NewVec3(3, 2, -4)
	assert.Equal(t, NewVec3(1, 2, -4), MinComponents(a, b))
	assert.Equal(t, NewVec3(3, 5, -2), MaxComponents(a, b))
}

func TestVec3EqualsToleratesFloatNoise(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(1+1e-12, 2, 3)
	assert.True(t, a.Equals(b))
}

func TestVec3RotateAroundZ(t *testing.T) {
	v := NewVec3(1, 0, 0)
	rotated := v.Rotate(NewVec3(0, 0, math.Pi/2))
	assert.InDelta(t, 0, rotated.X, 1e-9)
	assert.InDelta(t, 1, rotated.Y, 1e-9)
}

func TestVec3Luminance(t *testing.T) {
	white := NewVec3(1, 1, 1)
	assert.InDelta(t, 1.0, white.Luminance(), 1e-9)
}
