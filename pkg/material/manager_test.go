package material

import (
	"testing"

	"github.com/anvilrender/tracer/pkg/core"
	"github.com/anvilrender/tracer/pkg/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerAddAssignsIncreasingIDs(t *testing.T) {
	mgr := NewManager()
	id1 := mgr.Add(&Material{Kind: Emissive, ConstEmissive: core.NewVec3(1, 1, 1)})
	id2 := mgr.Add(&Material{Kind: MattPlastic})
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, mgr.Count())
}

func TestManagerEvaluateKnownID(t *testing.T) {
	mgr := NewManager()
	id := mgr.Add(&Material{Kind: Emissive, ConstEmissive: core.NewVec3(2, 2, 2)})
	ev := mgr.Evaluate(id, core.Vec2{})
	assert.Equal(t, core.NewVec3(2, 2, 2), ev.Emissive)
}

func TestManagerEvaluateUnknownIDReturnsDefault(t *testing.T) {
	mgr := NewManager()
	ev := mgr.Evaluate(ID(999), core.Vec2{})
	assert.Equal(t, core.NewVec3(0, 0, 1), ev.Normal)
	assert.Equal(t, core.Vec3{}, ev.Diffuse)
}

func TestManagerGet(t *testing.T) {
	mgr := NewManager()
	mat := &Material{Kind: MattPlastic}
	id := mgr.Add(mat)

	got, ok := mgr.Get(id)
	require.True(t, ok)
	assert.Same(t, mat, got)

	_, ok = mgr.Get(ID(12345))
	assert.False(t, ok)
}

func TestManagerResidentBytesAccumulates(t *testing.T) {
	mgr := NewManager()
	albedo, _ := texture.NewByteTexture2D(2, 2, make([]uint8, 16))
	mgr.Add(&Material{Kind: MetalnessRoughness, AlbedoTex: albedo})
	assert.Equal(t, 16, mgr.ResidentBytes())

	mgr.Add(&Material{Kind: MattPlastic})
	assert.Equal(t, 16, mgr.ResidentBytes())
}
