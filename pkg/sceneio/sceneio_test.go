package sceneio

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkyboxFaces(t *testing.T, dir string) [6]string {
	t.Helper()
	names := []string{"px", "nx", "py", "ny", "pz", "nz"}
	var paths [6]string
	for i, name := range names {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				img.SetRGBA(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
			}
		}
		path := filepath.Join(dir, name+".png")
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
		paths[i] = name + ".png"
	}
	return paths
}

func writeTriMesh(t *testing.T, path string) {
	t.Helper()
	header := "ply\n" +
		"format binary_little_endian 1.0\n" +
		"element vertex 3\n" +
		"property float x\n" +
		"property float y\n" +
		"property float z\n" +
		"element face 1\n" +
		"property list uchar uint vertex_indices\n" +
		"end_header\n"

	var buf bytes.Buffer
	buf.WriteString(header)
	verts := [][3]float32{{-10, -10, 0}, {10, -10, 0}, {0, 10, 0}}
	for _, v := range verts {
		for _, f := range v {
			require.NoError(t, binary.Write(&buf, binary.LittleEndian, f))
		}
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint8(3)))
	for _, idx := range []uint32{0, 1, 2} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, idx))
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestLoadBuildsSceneWithMeshMaterialAndCamera(t *testing.T) {
	dir := t.TempDir()
	faces := writeSkyboxFaces(t, dir)
	writeTriMesh(t, filepath.Join(dir, "tri.ply"))

	sceneJSON := `{
		"GLOBALS": {"world": {"Skybox": ["` + faces[0] + `","` + faces[1] + `","` + faces[2] + `","` + faces[3] + `","` + faces[4] + `","` + faces[5] + `"]}},
		"MESH": {"triangle": {"Path": "tri.ply"}},
		"MATERIALS": {"red": {"Type": "Constant", "Albedo": [1,0,0], "Emmissive": [0,0,0]}},
		"INSTANCE": {"tri1": {"Asset": "triangle", "Material": "red", "Position": [0,0,5]}},
		"CAMERA": {"main": {"Position": [0,0,-5], "Direction": [0,0,1], "Aspect": 1.5, "NearPlane": 0.01, "FarPlane": 100, "FOV": 1.0}}
	}`
	scenePath := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(scenePath, []byte(sceneJSON), 0644))

	loaded, err := Load(scenePath)
	require.NoError(t, err)
	require.NotNil(t, loaded.Scene)
	assert.Equal(t, 1, loaded.Scene.Upper.EntryCount())
	assert.Equal(t, 1, loaded.Scene.Materials.Count())

	cam, ok := loaded.Cameras["main"]
	require.True(t, ok)
	assert.InDelta(t, 1.5, cam.Aspect, 1e-9)
}

func TestLoadFailsWithoutSkybox(t *testing.T) {
	dir := t.TempDir()
	writeTriMesh(t, filepath.Join(dir, "tri.ply"))

	sceneJSON := `{
		"MESH": {"triangle": {"Path": "tri.ply"}},
		"INSTANCE": {"tri1": {"Asset": "triangle"}}
	}`
	scenePath := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(scenePath, []byte(sceneJSON), 0644))

	_, err := Load(scenePath)
	assert.Error(t, err)
}

func TestLoadFailsForInstanceWithUnknownAsset(t *testing.T) {
	dir := t.TempDir()
	faces := writeSkyboxFaces(t, dir)

	sceneJSON := `{
		"GLOBALS": {"world": {"Skybox": ["` + faces[0] + `","` + faces[1] + `","` + faces[2] + `","` + faces[3] + `","` + faces[4] + `","` + faces[5] + `"]}},
		"INSTANCE": {"tri1": {"Asset": "nonexistent"}}
	}`
	scenePath := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(scenePath, []byte(sceneJSON), 0644))

	_, err := Load(scenePath)
	assert.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/scene.json")
	assert.Error(t, err)
}
