package bsrdf

import (
	"math"
	"math/rand"

	"github.com/anvilrender/tracer/pkg/core"
)

// DistributionKind tags the microfacet distribution used by a Specular or
// Transmissive BSRDF (spec §3).
type DistributionKind int

const (
	CosWeightedHemisphere DistributionKind = iota
	Beckmann
)

// BeckmannD evaluates the Beckmann normal distribution function at a
// tangent-frame half vector whose cosine to the pole is nDotH.
func BeckmannD(alpha, nDotH float64) float64 {
	if nDotH <= 0 {
		return 0
	}
	cos2 := nDotH * nDotH
	cos4 := cos2 * cos2
	tan2 := (1 - cos2) / cos2
	return math.Exp(-tan2/(alpha*alpha)) / (math.Pi * alpha * alpha * cos4)
}

// SampleBeckmannH importance-samples a half vector in the tangent frame
// (pole = +Z) from the Beckmann distribution with the given alpha.
func SampleBeckmannH(rng *rand.Rand, alpha float64) core.Vec3 {
	u1, u2 := rng.Float64(), rng.Float64()
	theta := math.Atan(math.Sqrt(-alpha * alpha * math.Log(1-u1)))
	phi := 2 * math.Pi * u2

	sinTheta := math.Sin(theta)
	return core.Vec3{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: math.Cos(theta),
	}
}

// BeckmannPdfH is the solid-angle PDF of a half vector sampled by
// SampleBeckmannH.
func BeckmannPdfH(alpha, nDotH float64) float64 {
	return BeckmannD(alpha, nDotH) * nDotH
}
