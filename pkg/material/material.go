// Package material implements the material evaluator (spec C3): mapping
// a (material id, uv) pair to a common EvaluatedMaterial, dispatched
// through a small tagged variant rather than a class hierarchy (spec §9
// design notes).
package material

import (
	"github.com/anvilrender/tracer/pkg/core"
	"github.com/anvilrender/tracer/pkg/texture"
)

// Kind tags the material variant (spec §3).
type Kind int

const (
	SmoothMetal Kind = iota
	RoughMetal
	MattPlastic
	Emissive
	MetalnessRoughness
	SpecularGloss
	ConstantMetalnessRoughness
	ConstantDiffuseSpecular
)

// dielectricF0 is the default specular reflectance at normal incidence
// used for non-metallic dielectrics (roughly glass/plastic, ~4% IOR 1.5).
var dielectricF0 = core.NewVec3(0.04, 0.04, 0.04)

// Material is the tagged variant over every material flavour the scene
// file can describe (spec §3, §6). Transparent variants carry a
// transparency factor and an index of refraction consumed by the
// Transmissive BSRDF.
type Material struct {
	Kind Kind

	Transparent  bool
	Transparency float64
	IOR          float64

	// Texture-backed fields (nil for constant variants).
	AlbedoTex    *texture.Texture2D
	MetalnessTex *texture.Texture2D
	RoughnessTex *texture.Texture2D
	EmissiveTex  *texture.Texture2D
	DiffuseTex   *texture.Texture2D
	SpecularTex  *texture.Texture2D
	GlossTex     *texture.Texture2D
	NormalTex    *texture.Texture2D

	// Constant fields (used by the Constant* and Smooth/Rough/Matt
	// variants, which are always constant-parameter).
	ConstAlbedo    core.Vec3
	ConstMetalness float64
	ConstRoughness float64
	ConstEmissive  core.Vec3
	ConstDiffuse   core.Vec3
	ConstSpecular  core.Vec3
}

// EvaluatedMaterial is the common shape every Material variant evaluates
// to at a given uv (spec §3).
type EvaluatedMaterial struct {
	Diffuse  core.Vec3
	Specular core.Vec3
	Roughness float64
	Normal   core.Vec3
	Emissive core.Vec3
}

// residenceSize sums the byte footprint of every texture this material
// keeps resident (spec §4.4 "residence_size()").
func (m *Material) residenceSize() int {
	total := 0
	for _, t := range []*texture.Texture2D{m.AlbedoTex, m.MetalnessTex, m.RoughnessTex, m.EmissiveTex, m.DiffuseTex, m.SpecularTex, m.GlossTex, m.NormalTex} {
		if t != nil {
			total += t.ResidenceSize()
		}
	}
	return total
}

// Evaluate dispatches through the material's Kind to produce an
// EvaluatedMaterial at uv.
func (m *Material) Evaluate(uv core.Vec2) EvaluatedMaterial {
	switch m.Kind {
	case SmoothMetal:
		return EvaluatedMaterial{
			Specular:  m.ConstAlbedo,
			Roughness: 0,
			Normal:    core.NewVec3(0, 0, 1),
		}
	case RoughMetal:
		return EvaluatedMaterial{
			Specular:  m.ConstAlbedo,
			Roughness: m.ConstRoughness,
			Normal:    core.NewVec3(0, 0, 1),
		}
	case MattPlastic:
		return EvaluatedMaterial{
			Diffuse:   m.ConstAlbedo,
			Specular:  dielectricF0,
			Roughness: m.ConstRoughness,
			Normal:    core.NewVec3(0, 0, 1),
		}
	case Emissive:
		return EvaluatedMaterial{
			Emissive: m.ConstEmissive,
			Normal:   core.NewVec3(0, 0, 1),
		}
	case MetalnessRoughness:
		albedo := m.AlbedoTex.SampleRGB(uv)
		metalness, _, _, _ := m.MetalnessTex.Sample(uv)
		roughness, _, _, _ := m.RoughnessTex.Sample(uv)
		return EvaluatedMaterial{
			Diffuse:   albedo.Multiply(1 - metalness),
			Specular:  lerpVec3(dielectricF0, albedo, metalness),
			Roughness: roughness,
			Normal:    m.sampleNormal(uv),
			Emissive:  m.sampleEmissive(uv),
		}
	case SpecularGloss:
		gloss, _, _, _ := m.GlossTex.Sample(uv)
		return EvaluatedMaterial{
			Diffuse:   m.DiffuseTex.SampleRGB(uv),
			Specular:  m.SpecularTex.SampleRGB(uv),
			Roughness: 1 - gloss,
			Normal:    m.sampleNormal(uv),
			Emissive:  m.sampleEmissive(uv),
		}
	case ConstantMetalnessRoughness:
		return EvaluatedMaterial{
			Diffuse:   m.ConstAlbedo.Multiply(1 - m.ConstMetalness),
			Specular:  lerpVec3(dielectricF0, m.ConstAlbedo, m.ConstMetalness),
			Roughness: m.ConstRoughness,
			Normal:    core.NewVec3(0, 0, 1),
			Emissive:  m.ConstEmissive,
		}
	case ConstantDiffuseSpecular:
		return EvaluatedMaterial{
			Diffuse:   m.ConstDiffuse,
			Specular:  m.ConstSpecular,
			Roughness: m.ConstRoughness,
			Normal:    core.NewVec3(0, 0, 1),
			Emissive:  m.ConstEmissive,
		}
	default:
		return EvaluatedMaterial{Normal: core.NewVec3(0, 0, 1)}
	}
}

func (m *Material) sampleEmissive(uv core.Vec2) core.Vec3 {
	if m.EmissiveTex == nil {
		return core.Vec3{}
	}
	return m.EmissiveTex.SampleRGB(uv)
}

func (m *Material) sampleNormal(uv core.Vec2) core.Vec3 {
	if m.NormalTex == nil {
		return core.NewVec3(0, 0, 1)
	}
	r, g, b, _ := m.NormalTex.Sample(uv)
	return core.NewVec3(r*2-1, g*2-1, b*2-1).Normalize()
}

func lerpVec3(a, b core.Vec3, t float64) core.Vec3 {
	return a.Multiply(1 - t).Add(b.Multiply(t))
}
