package texture

import (
	"testing"

	"github.com/anvilrender/tracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteTexture2DRejectsWrongLength(t *testing.T) {
	_, err := NewByteTexture2D(2, 2, []uint8{0, 0, 0, 0})
	assert.Error(t, err)
}

func TestNewFloatTexture2DRejectsWrongLength(t *testing.T) {
	_, err := NewFloatTexture2D(2, 2, []float32{0})
	assert.Error(t, err)
}

func TestByteTexture2DSampleReadsCorrectTexel(t *testing.T) {
	pixels := make([]uint8, 2*2*4)
	// texel (1, 0) is red
	pixels[(0*2+1)*4+0] = 255
	pixels[(0*2+1)*4+3] = 255
	tex, err := NewByteTexture2D(2, 2, pixels)
	require.NoError(t, err)

	r, g, b, a := tex.Sample(core.NewVec2(0.75, 0.25))
	assert.InDelta(t, 1.0, r, 1e-9)
	assert.InDelta(t, 0.0, g, 1e-9)
	assert.InDelta(t, 0.0, b, 1e-9)
	assert.InDelta(t, 1.0, a, 1e-9)
}

func TestTexture2DSampleWrapsUV(t *testing.T) {
	pixels := make([]uint8, 2*2*4)
	pixels[0] = 100 // texel (0,0)
	tex, err := NewByteTexture2D(2, 2, pixels)
	require.NoError(t, err)

	r1, _, _, _ := tex.Sample(core.NewVec2(0.1, 0.1))
	r2, _, _, _ := tex.Sample(core.NewVec2(1.1, 1.1))
	assert.Equal(t, r1, r2)
}

func TestFloatTextureSamplePassesThroughRawValues(t *testing.T) {
	pixels := make([]float32, 1*1*4)
	pixels[0], pixels[1], pixels[2], pixels[3] = 2.5, 3.5, 4.5, 1.0
	tex, err := NewFloatTexture2D(1, 1, pixels)
	require.NoError(t, err)

	r, g, b, a := tex.Sample(core.NewVec2(0.5, 0.5))
	assert.Equal(t, 2.5, r)
	assert.Equal(t, 3.5, g)
	assert.Equal(t, 4.5, b)
	assert.Equal(t, 1.0, a)
}

func TestResidenceSizeByteAndFloat(t *testing.T) {
	byteTex, _ := NewByteTexture2D(1, 1, make([]uint8, 4))
	floatTex, _ := NewFloatTexture2D(1, 1, make([]float32, 4))
	assert.Equal(t, 4, byteTex.ResidenceSize())
	assert.Equal(t, 16, floatTex.ResidenceSize())
}
