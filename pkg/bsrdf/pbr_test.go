package bsrdf

import (
	"testing"

	"github.com/anvilrender/tracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestFresnelSchlickAtNormalIncidenceReturnsF0(t *testing.T) {
	f0 := core.NewVec3(0.04, 0.04, 0.04)
	f := FresnelSchlick(1.0, f0)
	assert.InDelta(t, 0.04, f.X, 1e-9)
}

func TestFresnelSchlickGrazingAngleApproachesWhite(t *testing.T) {
	f0 := core.NewVec3(0.04, 0.04, 0.04)
	f := FresnelSchlick(0.0, f0)
	assert.InDelta(t, 1.0, f.X, 1e-9)
}

func TestSmithGGXMaskingShadowingZeroBelowHorizon(t *testing.T) {
	assert.Equal(t, 0.0, SmithGGXMaskingShadowing(-0.1, 0.5, 0.3))
	assert.Equal(t, 0.0, SmithGGXMaskingShadowing(0.5, -0.1, 0.3))
}

func TestDisneyDiffuseIsPositiveForValidAngles(t *testing.T) {
	v := DisneyDiffuse(0.8, 0.6, 0.7, 0.5)
	assert.Greater(t, v, 0.0)
}

func TestSpecularGGXZeroWhenBelowHorizon(t *testing.T) {
	f0 := core.NewVec3(0.04, 0.04, 0.04)
	res := SpecularGGX(-0.1, 0.5, 0.9, 0.8, 0.3, f0)
	assert.Equal(t, core.Vec3{}, res)
}

func TestSpecularGGXPositiveAboveHorizon(t *testing.T) {
	f0 := core.NewVec3(0.9, 0.9, 0.9)
	res := SpecularGGX(0.8, 0.8, 0.95, 0.9, 0.1, f0)
	assert.Greater(t, res.X, 0.0)
}

func TestRoughnessToAlphaMonotonicallyIncreasing(t *testing.T) {
	low := RoughnessToAlpha(0.1)
	high := RoughnessToAlpha(0.9)
	assert.Less(t, low, high)
}
