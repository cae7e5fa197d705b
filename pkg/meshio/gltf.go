package meshio

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/anvilrender/tracer/pkg/core"
)

// LoadGLTF imports the first mesh primitive of a glTF or GLB document's
// first mesh into a Mesh. Scenes with multiple meshes/primitives are
// outside this importer's scope; a scene file that needs
// more than one submesh lists each as its own MESH entry.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open glTF %s: %w", path, err)
	}
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, fmt.Errorf("meshio: %s has no mesh primitives", path)
	}
	prim := doc.Meshes[0].Primitives[0]

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("meshio: %s primitive has no POSITION attribute", path)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("meshio: read positions in %s: %w", path, err)
	}

	mesh := &Mesh{Positions: make([]core.Vec3, len(positions))}
	for i, p := range positions {
		mesh.Positions[i] = core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2]))
	}

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("meshio: read normals in %s: %w", path, err)
		}
		mesh.Normals = make([]core.Vec3, len(normals))
		for i, n := range normals {
			mesh.Normals[i] = core.NewVec3(float64(n[0]), float64(n[1]), float64(n[2]))
		}
	}

	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("meshio: read uvs in %s: %w", path, err)
		}
		mesh.UVs = make([]core.Vec2, len(uvs))
		for i, uv := range uvs {
			mesh.UVs[i] = core.NewVec2(float64(uv[0]), float64(uv[1]))
		}
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("meshio: read indices in %s: %w", path, err)
		}
		mesh.Indices = indices
	} else {
		mesh.Indices = make([]uint32, len(mesh.Positions))
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(i)
		}
	}

	return mesh, nil
}
