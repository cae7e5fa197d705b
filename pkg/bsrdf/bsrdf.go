package bsrdf

import (
	"math"
	"math/rand"

	"github.com/anvilrender/tracer/pkg/core"
	"github.com/anvilrender/tracer/pkg/material"
)

// BSRDF is the tagged variant over {Diffuse, Specular, Light,
// Transmissive}, each carrying a material id and (except Light) a
// microfacet distribution tag (spec §3, §4.4). It implements
// core.BSRDFRef so an upper-level Entry can hold one without pkg/core
// importing this package.
type BSRDF struct {
	VariantKind  core.BSRDFKind
	Distribution DistributionKind
	MaterialID   material.ID
	Manager      *material.Manager
}

// New returns a BSRDF bound to the given material.
func New(kind core.BSRDFKind, dist DistributionKind, matID material.ID, mgr *material.Manager) *BSRDF {
	return &BSRDF{VariantKind: kind, Distribution: dist, MaterialID: matID, Manager: mgr}
}

// Kind reports the BSRDF's variant tag.
func (b *BSRDF) Kind() core.BSRDFKind { return b.VariantKind }

// Sample draws an outgoing direction per the variant's rule (spec §4.4).
// All sampling happens in the surface tangent frame built from (view,
// hit.Normal); the caller receives a world-space direction.
func (b *BSRDF) Sample(rng *rand.Rand, hit core.InterpolatedVertex, view core.Vec3, iorStack *core.IORStack) (core.Vec3, float64, core.Vec3) {
	evalMat := b.Manager.Evaluate(b.MaterialID, hit.UV)
	onb := buildTangentFrame(view, hit.Normal)
	localView := onb.ToLocal(view)

	switch b.VariantKind {
	case core.BSRDFLight:
		return core.Vec3{}, 1, evalMat.Emissive

	case core.BSRDFDiffuse:
		local := core.RandomCosineDirection(rng)
		nDotL := local.Z
		nDotV := math.Max(localView.Z, 1e-4)
		h := localView.Add(local).Normalize()
		vDotH := math.Max(localView.Dot(h), 0)

		pdf := core.CosineHemispherePDF(nDotL)
		factor := DisneyDiffuse(nDotV, nDotL, vDotH, evalMat.Roughness) // already includes the 1/pi normalisation
		energy := evalMat.Diffuse.Multiply(factor)
		return onb.ToWorld(local), pdf, energy

	case core.BSRDFSpecular:
		alpha := RoughnessToAlpha(evalMat.Roughness)
		h := SampleBeckmannH(rng, alpha)
		local := reflectAbout(localView, h)
		if local.Z <= 0 {
			return core.Vec3{}, 0, core.Vec3{}
		}
		nDotV := localView.Z
		nDotL := local.Z
		nDotH := h.Z
		vDotH := math.Max(localView.Dot(h), 0)

		jacobian := 2 * vDotH
		if jacobian <= 1e-6 {
			return core.Vec3{}, 0, core.Vec3{}
		}
		pdf := BeckmannPdfH(alpha, nDotH) / jacobian
		energy := SpecularGGX(nDotV, nDotL, nDotH, vDotH, alpha, evalMat.Specular)
		return onb.ToWorld(local), pdf, energy

	case core.BSRDFTransmissive:
		return b.sampleTransmissive(rng, evalMat, onb, localView, iorStack)

	default:
		return core.Vec3{}, 0, core.Vec3{}
	}
}

func (b *BSRDF) sampleTransmissive(rng *rand.Rand, evalMat material.EvaluatedMaterial, onb core.ONB, localView core.Vec3, iorStack *core.IORStack) (core.Vec3, float64, core.Vec3) {
	mat, _ := b.Manager.Get(b.MaterialID)
	matIOR := 1.5
	if mat != nil && mat.IOR > 0 {
		matIOR = mat.IOR
	}

	alpha := RoughnessToAlpha(evalMat.Roughness)
	h := SampleBeckmannH(rng, alpha)
	entering := localView.Z > 0
	if !entering {
		h = h.Negate()
	}

	etaFrom := iorStack.Top()
	etaTo := matIOR
	if !entering {
		etaFrom, etaTo = matIOR, etaFrom
	}
	eta := etaFrom / etaTo

	vDotH := math.Abs(localView.Dot(h))
	f0 := core.NewVec3(
		((etaFrom-etaTo)/(etaFrom+etaTo))*((etaFrom-etaTo)/(etaFrom+etaTo)),
		((etaFrom-etaTo)/(etaFrom+etaTo))*((etaFrom-etaTo)/(etaFrom+etaTo)),
		((etaFrom-etaTo)/(etaFrom+etaTo))*((etaFrom-etaTo)/(etaFrom+etaTo)),
	)
	fresnel := FresnelSchlick(vDotH, f0)

	refracted, ok := localView.Refract(h, eta)
	if !ok {
		// Total internal reflection: reflect about h instead.
		local := reflectAbout(localView, h)
		if local.Z*localView.Z <= 0 {
			return core.Vec3{}, 0, core.Vec3{}
		}
		nDotH := math.Abs(h.Z)
		jacobian := 2 * vDotH
		if jacobian <= 1e-6 {
			return core.Vec3{}, 0, core.Vec3{}
		}
		pdf := BeckmannPdfH(alpha, nDotH) / jacobian
		return onb.ToWorld(local), pdf, fresnel
	}

	if entering {
		iorStack.Push(matIOR)
	} else {
		iorStack.Pop()
	}

	lDotH := math.Abs(refracted.Dot(h))
	nDotH := math.Abs(h.Z)
	pdfH := BeckmannPdfH(alpha, nDotH)
	denom := etaFrom*vDotH + etaTo*lDotH
	jacobian := (etaTo * etaTo * lDotH) / math.Max(denom*denom, 1e-8)
	pdf := pdfH * jacobian

	transparency := 1.0
	if mat != nil && mat.Transparency > 0 {
		transparency = mat.Transparency
	}
	transmittance := core.NewVec3(1, 1, 1).Subtract(fresnel).Multiply(transparency)

	return onb.ToWorld(refracted), pdf, transmittance
}

func reflectAbout(v, h core.Vec3) core.Vec3 {
	return h.Multiply(2 * v.Dot(h)).Subtract(v)
}

// buildTangentFrame builds the tangent frame from (V, N): if |V.N| > 0.95
// the normal and view are nearly parallel, so the fallback helper axis
// (1,0,0) or (0,0,1), whichever is less parallel to N, is used to derive
// the tangent instead (spec §4.4).
func buildTangentFrame(view, normal core.Vec3) core.ONB {
	n := normal.Normalize()
	if math.Abs(view.Dot(n)) <= 0.95 {
		tangent := view.Cross(n).Normalize()
		bitangent := n.Cross(tangent)
		return core.ONB{Tangent: tangent, Bitangent: bitangent, Normal: n}
	}

	helper := core.NewVec3(1, 0, 0)
	if math.Abs(n.Dot(helper)) > math.Abs(n.Dot(core.NewVec3(0, 0, 1))) {
		helper = core.NewVec3(0, 0, 1)
	}
	tangent := helper.Cross(n).Normalize()
	bitangent := n.Cross(tangent)
	return core.ONB{Tangent: tangent, Bitangent: bitangent, Normal: n}
}

var _ core.BSRDFRef = (*BSRDF)(nil)
