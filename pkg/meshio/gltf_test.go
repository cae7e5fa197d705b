package meshio

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestGLTF(t *testing.T, path string) {
	t.Helper()
	doc := gltf.NewDocument()

	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	positionAccessor := modeler.WritePosition(doc, positions)

	indices := []uint32{0, 1, 2}
	indexAccessor := modeler.WriteIndices(doc, indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Primitives: []*gltf.Primitive{
			{
				Indices: &indexAccessor,
				Attributes: map[string]uint32{
					"POSITION": positionAccessor,
				},
			},
		},
	})

	require.NoError(t, gltf.Save(doc, path))
}

func TestLoadGLTFParsesPositionsAndIndices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.gltf")
	writeTestGLTF(t, path)

	mesh, err := LoadGLTF(path)
	require.NoError(t, err)

	require.Len(t, mesh.Positions, 3)
	assert.InDelta(t, 1, mesh.Positions[1].X, 1e-6)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.Nil(t, mesh.Normals)
}

func TestLoadGLTFRejectsMissingFile(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.gltf")
	assert.Error(t, err)
}

func TestLoadGLTFRejectsDocumentWithNoMeshes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.gltf")
	doc := gltf.NewDocument()
	require.NoError(t, gltf.Save(doc, path))

	_, err := LoadGLTF(path)
	assert.Error(t, err)
}
