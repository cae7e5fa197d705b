// Package bsrdf implements microfacet-distribution importance sampling
// and the tagged BSRDF variant (spec C4): Diffuse, Specular, Light and
// Transmissive lobes, each returning (direction, pdf, energy) in the
// surface tangent frame. Grounded in the original renderer's
// Render/{BSRDF,Distributions,PBR}.cpp, which this package ports the
// formulas from; the microfacet math here has no counterpart in the
// retrieved Go teacher's Lambertian/mirror material package.
package bsrdf

import (
	"math"

	"github.com/anvilrender/tracer/pkg/core"
)

// FresnelSchlick returns the Schlick approximation of the Fresnel
// reflectance at normal-incidence reflectance f0, given the cosine
// between the view/light direction and the half vector.
func FresnelSchlick(cosTheta float64, f0 core.Vec3) core.Vec3 {
	c := clamp01(1 - cosTheta)
	c5 := c * c * c * c * c
	return f0.Add(core.NewVec3(1, 1, 1).Subtract(f0).Multiply(c5))
}

// SmithGGXMaskingShadowing is the separable Smith masking-shadowing term
// for the GGX distribution, G = G1(NdotV)*G1(NdotL).
func SmithGGXMaskingShadowing(nDotV, nDotL, alpha float64) float64 {
	return smithGGXG1(nDotV, alpha) * smithGGXG1(nDotL, alpha)
}

func smithGGXG1(nDotX, alpha float64) float64 {
	if nDotX <= 0 {
		return 0
	}
	a2 := alpha * alpha
	return 2 * nDotX / (nDotX + math.Sqrt(a2+(1-a2)*nDotX*nDotX))
}

// DisneyDiffuse evaluates the energy-bias/energy-factor Disney diffuse
// term (Frostbite's re-derivation), which reduces Lambertian retro-
// reflection loss at grazing angles without costing an extra sample.
func DisneyDiffuse(nDotV, nDotL, vDotH, roughness float64) float64 {
	energyBias := lerp(0, 0.5, roughness)
	energyFactor := lerp(1.0, 1.0/1.51, roughness)

	fd90 := energyBias + 2*vDotH*vDotH*roughness - 1
	lightScatter := 1 + fd90*schlickWeight(nDotL)
	viewScatter := 1 + fd90*schlickWeight(nDotV)

	return lightScatter * viewScatter * energyFactor / math.Pi
}

// SpecularGGX evaluates the Cook-Torrance microfacet BRDF (D*G*F /
// 4*NdotV*NdotL) for the GGX/Beckmann-compatible masking term above.
func SpecularGGX(nDotV, nDotL, nDotH, vDotH, alpha float64, f0 core.Vec3) core.Vec3 {
	if nDotV <= 0 || nDotL <= 0 {
		return core.Vec3{}
	}
	d := BeckmannD(alpha, nDotH)
	g := SmithGGXMaskingShadowing(nDotV, nDotL, alpha)
	f := FresnelSchlick(vDotH, f0)
	denom := 4 * nDotV * nDotL
	if denom <= 1e-8 {
		return core.Vec3{}
	}
	return f.Multiply(d * g / denom)
}

// RoughnessToAlpha remaps a perceptual [0,1] roughness to the Beckmann
// distribution's alpha parameter via the standard polynomial fit.
func RoughnessToAlpha(roughness float64) float64 {
	r := math.Max(roughness, 1e-3)
	x := math.Log(r)
	return 1.62142 + 0.819955*x + 0.1734*x*x + 0.0171201*x*x*x + 0.000640711*x*x*x*x
}

func schlickWeight(cosTheta float64) float64 {
	c := clamp01(1 - cosTheta)
	return c * c * c * c * c
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
