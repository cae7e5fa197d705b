package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcentricSampleDiskStaysWithinUnitDisk(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		p := ConcentricSampleDisk(rng.Float64(), rng.Float64())
		assert.LessOrEqual(t, p.X*p.X+p.Y*p.Y, 1.0+1e-9)
	}
}

func TestConcentricSampleDiskOriginMapsToOrigin(t *testing.T) {
	p := ConcentricSampleDisk(0.5, 0.5)
	assert.Equal(t, Vec2{}, p)
}

func TestRandomCosineDirectionIsUnitLengthInUpperHemisphere(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		d := RandomCosineDirection(rng)
		assert.InDelta(t, 1.0, d.Length(), 1e-9)
		assert.GreaterOrEqual(t, d.Z, 0.0)
	}
}

func TestCosineHemispherePDFAtPole(t *testing.T) {
	assert.InDelta(t, 1.0/math.Pi, CosineHemispherePDF(1.0), 1e-9)
}

func TestNewONBProducesOrthonormalBasis(t *testing.T) {
	onb := NewONB(NewVec3(0, 1, 0))
	assert.InDelta(t, 1.0, onb.Tangent.Length(), 1e-9)
	assert.InDelta(t, 1.0, onb.Bitangent.Length(), 1e-9)
	assert.InDelta(t, 0.0, onb.Tangent.Dot(onb.Bitangent), 1e-9)
	assert.InDelta(t, 0.0, onb.Tangent.Dot(onb.Normal), 1e-9)
	assert.InDelta(t, 0.0, onb.Bitangent.Dot(onb.Normal), 1e-9)
}

func TestONBToWorldAndToLocalRoundTrip(t *testing.T) {
	onb := NewONB(NewVec3(0.3, 0.9, 0.1))
	local := NewVec3(0.2, -0.4, 0.8)
	world := onb.ToWorld(local)
	back := onb.ToLocal(world)
	assert.InDelta(t, local.X, back.X, 1e-9)
	assert.InDelta(t, local.Y, back.Y, 1e-9)
	assert.InDelta(t, local.Z, back.Z, 1e-9)
}

func TestPowerHeuristicFavorsLowerVariancePDF(t *testing.T) {
	w := PowerHeuristic(1, 2.0, 1, 1.0)
	assert.Greater(t, w, 0.5)
}

func TestPowerHeuristicZeroPDFReturnsZero(t *testing.T) {
	assert.Equal(t, 0.0, PowerHeuristic(1, 0, 1, 1.0))
}

func TestBalanceHeuristicSumsToOneAcrossStrategies(t *testing.T) {
	a := BalanceHeuristic(1, 2.0, 1, 3.0)
	b := BalanceHeuristic(1, 3.0, 1, 2.0)
	assert.InDelta(t, 1.0, a+b, 1e-9)
}

func TestSphereConePDFFallsBackInsideSphere(t *testing.T) {
	got := SphereConePDF(1.0, 2.0)
	want := SphereUniformPDF(2.0)
	assert.InDelta(t, want, got, 1e-9)
}

func TestSphereConePDFPositiveOutsideSphere(t *testing.T) {
	got := SphereConePDF(10.0, 2.0)
	assert.Greater(t, got, 0.0)
}
