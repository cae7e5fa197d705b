// Package meshio imports triangle soups from mesh files (PLY, glTF/GLB)
// into the per-vertex attribute buffers accel.NewTriangleMesh consumes
// (spec §6 "MESH.<name>.Path: path to a mesh file, triangulated on
// import"). The PLY reader is grounded in the retrieved teacher's
// loaders.LoadPLY; glTF import is new, grounded in the rest of the
// example pack's use of github.com/qmuntal/gltf (see DESIGN.md).
package meshio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/anvilrender/tracer/pkg/core"
)

// Mesh is the triangulated, per-vertex-attribute result of importing a
// mesh file, ready to hand to accel.NewTriangleMesh.
type Mesh struct {
	Positions []core.Vec3
	Normals   []core.Vec3
	UVs       []core.Vec2
	Colors    []core.Vec3
	Indices   []uint32
}

type plyProperty struct {
	name     string
	dataType string
	isList   bool
	listType string
}

type plyHeader struct {
	format      string
	vertexCount int
	faceCount   int
	vertexProps []plyProperty
	faceProps   []plyProperty
}

// LoadPLY reads a binary-little-endian PLY file into a Mesh. ASCII and
// big-endian PLY are not supported (see DESIGN.md).
func LoadPLY(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open %s: %w", path, err)
	}
	defer file.Close()

	header, headerSize, err := parsePLYHeader(file)
	if err != nil {
		return nil, fmt.Errorf("meshio: parse header of %s: %w", path, err)
	}
	if header.format != "binary_little_endian" {
		return nil, fmt.Errorf("meshio: unsupported PLY format %q in %s", header.format, path)
	}
	if _, err := file.Seek(int64(headerSize), io.SeekStart); err != nil {
		return nil, fmt.Errorf("meshio: seek past header in %s: %w", path, err)
	}

	mesh, err := readPLYBinary(file, header)
	if err != nil {
		return nil, fmt.Errorf("meshio: read %s: %w", path, err)
	}
	return mesh, nil
}

func parsePLYHeader(r io.Reader) (*plyHeader, int, error) {
	header := &plyHeader{}
	scanner := bufio.NewScanner(r)
	bytesRead := 0
	currentElement := ""

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		bytesRead += len(scanner.Bytes()) + 1

		if line == "end_header" {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 2 {
				header.format = parts[1]
			}
		case "element":
			if len(parts) >= 3 {
				count, err := strconv.Atoi(parts[2])
				if err != nil {
					return nil, 0, fmt.Errorf("bad element count %q", parts[2])
				}
				currentElement = parts[1]
				switch currentElement {
				case "vertex":
					header.vertexCount = count
				case "face":
					header.faceCount = count
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, 0, err
			}
			switch currentElement {
			case "vertex":
				header.vertexProps = append(header.vertexProps, prop)
			case "face":
				header.faceProps = append(header.faceProps, prop)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return header, bytesRead, nil
}

// parsePLYProperty parses "<type> <name>" or "list <count-type>
// <element-type> <name>". listType records the count's width, which is
// what readPLYBinary uses to read each face's vertex count; the element
// width itself is not tracked since indices are always read as uint32.
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) < 2 {
		return plyProperty{}, fmt.Errorf("meshio: invalid property definition")
	}
	if parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, fmt.Errorf("meshio: invalid list property definition")
		}
		return plyProperty{isList: true, listType: parts[1], name: parts[3]}, nil
	}
	return plyProperty{dataType: parts[0], name: parts[1]}, nil
}

func plyTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 4
	}
}

func readPLYBinary(r io.Reader, header *plyHeader) (*Mesh, error) {
	vertexSize := 0
	for _, p := range header.vertexProps {
		if !p.isList {
			vertexSize += plyTypeSize(p.dataType)
		}
	}

	vertexData := make([]byte, vertexSize*header.vertexCount)
	if _, err := io.ReadFull(r, vertexData); err != nil {
		return nil, fmt.Errorf("read vertex data: %w", err)
	}

	mesh := &Mesh{
		Positions: make([]core.Vec3, header.vertexCount),
	}
	var normals []core.Vec3
	var uvs []core.Vec2
	var colors []core.Vec3

	for i := 0; i < header.vertexCount; i++ {
		offset := i * vertexSize
		values := make(map[string]float64, len(header.vertexProps))
		cursor := offset
		for _, p := range header.vertexProps {
			size := plyTypeSize(p.dataType)
			values[p.name] = readPLYScalar(vertexData[cursor:cursor+size], p.dataType)
			cursor += size
		}

		mesh.Positions[i] = core.NewVec3(values["x"], values["y"], values["z"])
		if _, ok := values["nx"]; ok {
			if normals == nil {
				normals = make([]core.Vec3, header.vertexCount)
			}
			normals[i] = core.NewVec3(values["nx"], values["ny"], values["nz"])
		}
		if u, ok := values["u"]; ok {
			if uvs == nil {
				uvs = make([]core.Vec2, header.vertexCount)
			}
			uvs[i] = core.NewVec2(u, values["v"])
		} else if s, ok := values["s"]; ok {
			if uvs == nil {
				uvs = make([]core.Vec2, header.vertexCount)
			}
			uvs[i] = core.NewVec2(s, values["t"])
		}
		if red, ok := values["red"]; ok {
			if colors == nil {
				colors = make([]core.Vec3, header.vertexCount)
			}
			colors[i] = core.NewVec3(red/255, values["green"]/255, values["blue"]/255)
		}
	}
	mesh.Normals = normals
	mesh.UVs = uvs
	mesh.Colors = colors

	buf := bufio.NewReaderSize(r, 1<<20)
	for i := 0; i < header.faceCount; i++ {
		for _, prop := range header.faceProps {
			if prop.isList && prop.name == "vertex_indices" {
				count, err := readPLYListCount(buf, prop.listType)
				if err != nil {
					return nil, fmt.Errorf("face %d vertex count: %w", i, err)
				}
				if count != 3 {
					return nil, fmt.Errorf("face %d: only triangles supported, got %d vertices", i, count)
				}
				var idx [3]uint32
				for j := 0; j < 3; j++ {
					v, err := readPLYListCount(buf, "uint32")
					if err != nil {
						return nil, fmt.Errorf("face %d index %d: %w", i, j, err)
					}
					idx[j] = uint32(v)
				}
				mesh.Indices = append(mesh.Indices, idx[0], idx[1], idx[2])
			} else {
				size := plyTypeSize(prop.dataType)
				scratch := make([]byte, size)
				if _, err := io.ReadFull(buf, scratch); err != nil {
					return nil, fmt.Errorf("skip face property %s: %w", prop.name, err)
				}
			}
		}
	}

	return mesh, nil
}

func readPLYListCount(r io.Reader, dataType string) (int, error) {
	switch dataType {
	case "uchar", "uint8":
		var v uint8
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return int(v), nil
	case "int", "int32":
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return int(v), nil
	default: // uint32 and the common index width
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return int(v), nil
	}
}

func readPLYScalar(data []byte, dataType string) float64 {
	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(data)))
	case "double", "float64":
		return math.Float64frombits(binary.LittleEndian.Uint64(data))
	case "uchar", "uint8":
		return float64(data[0])
	case "char", "int8":
		return float64(int8(data[0]))
	case "short", "int16":
		return float64(int16(binary.LittleEndian.Uint16(data)))
	case "ushort", "uint16":
		return float64(binary.LittleEndian.Uint16(data))
	case "int", "int32":
		return float64(int32(binary.LittleEndian.Uint32(data)))
	case "uint", "uint32":
		return float64(binary.LittleEndian.Uint32(data))
	default:
		return 0
	}
}
