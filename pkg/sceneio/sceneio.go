// Package sceneio parses the JSON-like scene description (spec §6) and
// wires it into a scene.Builder: meshes are imported through pkg/meshio,
// images through pkg/imageio, asset paths resolved case-insensitively
// through pkg/fsindex, and instance transforms built with
// github.com/go-gl/mathgl/mgl64 quaternions via core.NewTransform.
package sceneio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/anvilrender/tracer/pkg/accel"
	"github.com/anvilrender/tracer/pkg/bsrdf"
	"github.com/anvilrender/tracer/pkg/core"
	"github.com/anvilrender/tracer/pkg/fsindex"
	"github.com/anvilrender/tracer/pkg/imageio"
	"github.com/anvilrender/tracer/pkg/material"
	"github.com/anvilrender/tracer/pkg/meshio"
	"github.com/anvilrender/tracer/pkg/render"
	"github.com/anvilrender/tracer/pkg/scene"
	"github.com/anvilrender/tracer/pkg/texture"
)

// document mirrors the scene file's top-level shape (spec §6).
type document struct {
	Globals   map[string]globalsEntry   `json:"GLOBALS"`
	Mesh      map[string]meshEntry      `json:"MESH"`
	Materials map[string]materialEntry  `json:"MATERIALS"`
	Instance  map[string]instanceEntry  `json:"INSTANCE"`
	Camera    map[string]cameraEntry    `json:"CAMERA"`
}

type globalsEntry struct {
	Skybox [6]string `json:"Skybox"`
}

type meshEntry struct {
	Path string `json:"Path"`
}

type materialEntry struct {
	Type string `json:"Type"`

	Albedo    json.RawMessage `json:"Albedo"`
	Metalness json.RawMessage `json:"Metalness"`
	Roughness json.RawMessage `json:"Roughness"`
	Emissive  json.RawMessage `json:"Emissive"`
	// Emmissive is the Constant variant's misspelling of Emissive.
	Emmissive json.RawMessage `json:"Emmissive"`
	Diffuse   json.RawMessage `json:"Diffuse"`
	Specular  json.RawMessage `json:"Specular"`
	Gloss     json.RawMessage `json:"Gloss"`
}

func (e materialEntry) emissiveField() json.RawMessage {
	if len(e.Emmissive) > 0 {
		return e.Emmissive
	}
	return e.Emissive
}

type instanceEntry struct {
	Asset    string     `json:"Asset"`
	Position *[3]float64 `json:"Position"`
	Scale    *[3]float64 `json:"Scale"`
	Rotation *[4]float64 `json:"Rotation"`
	Material string     `json:"Material"`
}

type cameraEntry struct {
	Position  [3]float64 `json:"Position"`
	Direction [3]float64 `json:"Direction"`
	Aspect    float64    `json:"Aspect"`
	NearPlane float64    `json:"NearPlane"`
	FarPlane  float64    `json:"FarPlane"`
	FOV       float64    `json:"FOV"`
}

// Loaded is the result of loading a scene file: the built scene plus
// every named camera it declared (spec §6 "CAMERA.<name>").
type Loaded struct {
	Scene   *scene.Scene
	Cameras map[string]*render.Camera
}

// Load reads and builds the scene at path. Asset paths (mesh files,
// texture images, skybox faces) are resolved case-insensitively
// relative to the scene file's directory.
func Load(path string) (*Loaded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sceneio: read %s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("sceneio: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	index, err := fsindex.Build(dir)
	if err != nil {
		return nil, fmt.Errorf("sceneio: index assets under %s: %w", dir, err)
	}

	builder := scene.NewBuilder()

	sun, err := loadSun(doc.Globals, dir, index)
	if err != nil {
		return nil, err
	}
	builder.SetSun(sun)

	meshes, err := loadMeshes(doc.Mesh, dir, index)
	if err != nil {
		return nil, err
	}

	materials, err := loadMaterials(doc.Materials, builder.Materials(), dir, index)
	if err != nil {
		return nil, err
	}

	if err := addInstances(doc.Instance, builder, meshes, materials); err != nil {
		return nil, err
	}

	built, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("sceneio: %w", err)
	}

	cameras := make(map[string]*render.Camera, len(doc.Camera))
	for name, c := range doc.Camera {
		cameras[name] = buildCamera(c)
	}

	return &Loaded{Scene: built, Cameras: cameras}, nil
}

func resolveAsset(dir string, index *fsindex.Index, rel string) string {
	if resolved, ok := index.Resolve(rel); ok {
		return resolved
	}
	return filepath.Join(dir, rel)
}

func loadSun(globals map[string]globalsEntry, dir string, index *fsindex.Index) (*scene.Sun, error) {
	for _, g := range globals {
		var faces [6]string
		for i, p := range g.Skybox {
			faces[i] = resolveAsset(dir, index, p)
		}
		cubeMap, err := imageio.LoadSkybox(faces)
		if err != nil {
			return nil, fmt.Errorf("sceneio: load skybox: %w", err)
		}
		return &scene.Sun{CubeMap: cubeMap}, nil
	}
	return nil, fmt.Errorf("sceneio: scene file has no GLOBALS.*.Skybox entry")
}

func loadMeshes(entries map[string]meshEntry, dir string, index *fsindex.Index) (map[string]accel.LowerLevel, error) {
	result := make(map[string]accel.LowerLevel, len(entries))
	for name, e := range entries {
		lower, err := loadOneMesh(e.Path, dir, index)
		if err != nil {
			return nil, fmt.Errorf("sceneio: mesh %q: %w", name, err)
		}
		result[name] = lower
	}
	return result, nil
}

func loadOneMesh(path, dir string, index *fsindex.Index) (accel.LowerLevel, error) {
	resolved := resolveAsset(dir, index, path)
	switch filepath.Ext(resolved) {
	case ".gltf", ".glb":
		mesh, err := meshio.LoadGLTF(resolved)
		if err != nil {
			return nil, err
		}
		return accel.NewTriangleMesh(mesh.Positions, mesh.Normals, mesh.UVs, mesh.Colors, mesh.Indices)
	case ".ply":
		mesh, err := meshio.LoadPLY(resolved)
		if err != nil {
			return nil, err
		}
		return accel.NewTriangleMesh(mesh.Positions, mesh.Normals, mesh.UVs, mesh.Colors, mesh.Indices)
	default:
		return nil, fmt.Errorf("unrecognised mesh format %q", resolved)
	}
}

func loadMaterials(entries map[string]materialEntry, mgr *material.Manager, dir string, index *fsindex.Index) (map[string]material.ID, error) {
	result := make(map[string]material.ID, len(entries))
	for name, e := range entries {
		mat, err := buildMaterial(e, dir, index)
		if err != nil {
			return nil, fmt.Errorf("sceneio: material %q: %w", name, err)
		}
		result[name] = mgr.Add(mat)
	}
	return result, nil
}

func buildMaterial(e materialEntry, dir string, index *fsindex.Index) (*material.Material, error) {
	switch e.Type {
	case "Metalic":
		albedo, err := loadTextureField(e.Albedo, dir, index)
		if err != nil {
			return nil, err
		}
		metalness, err := loadTextureField(e.Metalness, dir, index)
		if err != nil {
			return nil, err
		}
		roughness, err := loadTextureField(e.Roughness, dir, index)
		if err != nil {
			return nil, err
		}
		emissive, _ := loadTextureField(e.Emissive, dir, index)
		return &material.Material{
			Kind:         material.MetalnessRoughness,
			AlbedoTex:    albedo,
			MetalnessTex: metalness,
			RoughnessTex: roughness,
			EmissiveTex:  emissive,
		}, nil

	case "Gloss":
		diffuse, err := loadTextureField(e.Diffuse, dir, index)
		if err != nil {
			return nil, err
		}
		specular, err := loadTextureField(e.Specular, dir, index)
		if err != nil {
			return nil, err
		}
		gloss, err := loadTextureField(e.Gloss, dir, index)
		if err != nil {
			return nil, err
		}
		emissive, _ := loadTextureField(e.Emissive, dir, index)
		return &material.Material{
			Kind:        material.SpecularGloss,
			DiffuseTex:  diffuse,
			SpecularTex: specular,
			GlossTex:    gloss,
			EmissiveTex: emissive,
		}, nil

	case "Constant":
		albedo, err := vec3Field(e.Albedo, core.Vec3{})
		if err != nil {
			return nil, err
		}
		metalness, err := scalarField(e.Metalness, 0)
		if err != nil {
			return nil, err
		}
		roughness, err := scalarField(e.Roughness, 0)
		if err != nil {
			return nil, err
		}
		emissive, err := vec3Field(e.emissiveField(), core.Vec3{})
		if err != nil {
			return nil, err
		}
		return &material.Material{
			Kind:           material.ConstantMetalnessRoughness,
			ConstAlbedo:    albedo,
			ConstMetalness: metalness,
			ConstRoughness: roughness,
			ConstEmissive:  emissive,
		}, nil

	default:
		return nil, fmt.Errorf("unrecognised material type %q", e.Type)
	}
}

// loadTextureField decodes a material field that is either absent, or a
// JSON string naming an image file to load as a texture (spec §6
// "Metalic accepts Albedo, Metalness, Roughness, Emissive (image
// paths)").
func loadTextureField(raw json.RawMessage, dir string, index *fsindex.Index) (*texture.Texture2D, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var path string
	if err := json.Unmarshal(raw, &path); err != nil {
		return nil, fmt.Errorf("expected an image path: %w", err)
	}
	return imageio.Load(resolveAsset(dir, index, path))
}

func vec3Field(raw json.RawMessage, fallback core.Vec3) (core.Vec3, error) {
	if len(raw) == 0 {
		return fallback, nil
	}
	var xyz [3]float64
	if err := json.Unmarshal(raw, &xyz); err != nil {
		return core.Vec3{}, fmt.Errorf("expected [r,g,b]: %w", err)
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

func scalarField(raw json.RawMessage, fallback float64) (float64, error) {
	if len(raw) == 0 {
		return fallback, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("expected a number: %w", err)
	}
	return v, nil
}

func addInstances(entries map[string]instanceEntry, builder *scene.Builder, meshes map[string]accel.LowerLevel, materials map[string]material.ID) error {
	for name, e := range entries {
		lower, ok := meshes[e.Asset]
		if !ok {
			return fmt.Errorf("sceneio: instance %q references unknown asset %q", name, e.Asset)
		}

		position := core.Vec3{}
		if e.Position != nil {
			position = core.NewVec3(e.Position[0], e.Position[1], e.Position[2])
		}
		scaleVec := core.NewVec3(1, 1, 1)
		if e.Scale != nil {
			scaleVec = core.NewVec3(e.Scale[0], e.Scale[1], e.Scale[2])
		}
		rotation := mgl64.QuatIdent()
		if e.Rotation != nil {
			r := e.Rotation
			rotation = mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
		}
		transform := core.NewTransform(position, rotation, scaleVec)

		var bsrdfRef core.BSRDFRef
		if e.Material != "" {
			matID, ok := materials[e.Material]
			if !ok {
				return fmt.Errorf("sceneio: instance %q references unknown material %q", name, e.Material)
			}
			mat, _ := builder.Materials().Get(matID)
			bsrdfRef = bsrdf.New(kindForMaterial(mat), bsrdf.Beckmann, matID, builder.Materials())
		}

		builder.AddInstance(lower, transform, bsrdfRef)
	}
	return nil
}

func kindForMaterial(mat *material.Material) core.BSRDFKind {
	if mat == nil {
		return core.BSRDFDiffuse
	}
	switch mat.Kind {
	case material.Emissive:
		return core.BSRDFLight
	case material.SmoothMetal, material.RoughMetal:
		return core.BSRDFSpecular
	default:
		return core.BSRDFDiffuse
	}
}

func buildCamera(c cameraEntry) *render.Camera {
	position := core.NewVec3(c.Position[0], c.Position[1], c.Position[2])
	direction := core.NewVec3(c.Direction[0], c.Direction[1], c.Direction[2])
	if direction.IsZero() {
		direction = core.NewVec3(0, 0, 1)
	}
	up := core.NewVec3(0, 1, 0)
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return render.NewCamera(position, direction, up, aspect, c.NearPlane, c.FarPlane, c.FOV, 0, 0)
}
