package material

import (
	"testing"

	"github.com/anvilrender/tracer/pkg/core"
	"github.com/anvilrender/tracer/pkg/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateSmoothMetalIsMirrorLike(t *testing.T) {
	mat := &Material{Kind: SmoothMetal, ConstAlbedo: core.NewVec3(0.9, 0.9, 0.9)}
	ev := mat.Evaluate(core.Vec2{})
	assert.Equal(t, core.NewVec3(0.9, 0.9, 0.9), ev.Specular)
	assert.Equal(t, 0.0, ev.Roughness)
}

func TestEvaluateMattPlasticUsesDielectricF0(t *testing.T) {
	mat := &Material{Kind: MattPlastic, ConstAlbedo: core.NewVec3(0.5, 0.1, 0.2), ConstRoughness: 0.8}
	ev := mat.Evaluate(core.Vec2{})
	assert.Equal(t, core.NewVec3(0.5, 0.1, 0.2), ev.Diffuse)
	assert.Equal(t, dielectricF0, ev.Specular)
	assert.Equal(t, 0.8, ev.Roughness)
}

func TestEvaluateEmissiveCarriesNoDiffuseOrSpecular(t *testing.T) {
	mat := &Material{Kind: Emissive, ConstEmissive: core.NewVec3(5, 5, 5)}
	ev := mat.Evaluate(core.Vec2{})
	assert.Equal(t, core.NewVec3(5, 5, 5), ev.Emissive)
	assert.Equal(t, core.Vec3{}, ev.Diffuse)
}

func TestEvaluateConstantMetalnessRoughnessLerpsSpecular(t *testing.T) {
	mat := &Material{Kind: ConstantMetalnessRoughness, ConstAlbedo: core.NewVec3(1, 1, 1), ConstMetalness: 1.0, ConstRoughness: 0.3}
	ev := mat.Evaluate(core.Vec2{})
	assert.Equal(t, core.Vec3{}, ev.Diffuse) // fully metallic: no diffuse left
	assert.Equal(t, core.NewVec3(1, 1, 1), ev.Specular)
}

func TestEvaluateConstantDiffuseSpecularPassesThrough(t *testing.T) {
	mat := &Material{Kind: ConstantDiffuseSpecular, ConstDiffuse: core.NewVec3(0.2, 0.3, 0.4), ConstSpecular: core.NewVec3(0.1, 0.1, 0.1), ConstRoughness: 0.5}
	ev := mat.Evaluate(core.Vec2{})
	assert.Equal(t, core.NewVec3(0.2, 0.3, 0.4), ev.Diffuse)
	assert.Equal(t, core.NewVec3(0.1, 0.1, 0.1), ev.Specular)
}

func TestEvaluateMetalnessRoughnessSamplesTextures(t *testing.T) {
	albedo, err := texture.NewByteTexture2D(1, 1, []uint8{255, 255, 255, 255})
	require.NoError(t, err)
	metalness, err := texture.NewFloatTexture2D(1, 1, []float32{1, 0, 0, 0})
	require.NoError(t, err)
	roughness, err := texture.NewFloatTexture2D(1, 1, []float32{0.4, 0, 0, 0})
	require.NoError(t, err)

	mat := &Material{Kind: MetalnessRoughness, AlbedoTex: albedo, MetalnessTex: metalness, RoughnessTex: roughness}
	ev := mat.Evaluate(core.NewVec2(0.5, 0.5))
	assert.InDelta(t, 0.4, ev.Roughness, 1e-6)
	assert.Equal(t, core.NewVec3(0, 0, 0), ev.Diffuse) // fully metallic
}

func TestEvaluateUnknownKindFallsBackToDefaultNormal(t *testing.T) {
	mat := &Material{Kind: Kind(99)}
	ev := mat.Evaluate(core.Vec2{})
	assert.Equal(t, core.NewVec3(0, 0, 1), ev.Normal)
}

func TestResidenceSizeSumsOnlyNonNilTextures(t *testing.T) {
	albedo, _ := texture.NewByteTexture2D(1, 1, make([]uint8, 4))
	mat := &Material{Kind: MetalnessRoughness, AlbedoTex: albedo}
	assert.Equal(t, 4, mat.residenceSize())
}
