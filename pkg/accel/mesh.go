package accel

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/anvilrender/tracer/pkg/core"
)

// TriangleMesh is the lower-level intersector for a triangulated mesh: an
// indexed vertex soup plus a per-triangle oct-tree (spec §4.1, §4.3 — "a
// SAH-style binary BVH is an acceptable alternative"; an oct-tree is used
// here so the lower and upper levels share one builder).
type TriangleMesh struct {
	Positions []core.Vec3
	Normals   []core.Vec3
	UVs       []core.Vec2
	Colors    []core.Vec3
	Indices   []uint32 // triples: triangle i uses Indices[3i:3i+3]

	triBounds []core.AABB
	triNormal []core.Vec3
	triArea   []float64
	tree      *OctTree
}

// NewTriangleMesh validates the index buffer and builds the per-triangle
// oct-tree. Positions must be finite and every index must reference a
// valid vertex (spec §3 Triangle Mesh Primitive invariants).
func NewTriangleMesh(positions, normals []core.Vec3, uvs []core.Vec2, colors []core.Vec3, indices []uint32) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("accel: index buffer length %d is not a multiple of 3", len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("accel: index %d out of range for %d positions", idx, len(positions))
		}
	}
	for i, p := range positions {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsInf(p.Z, 0) {
			return nil, fmt.Errorf("accel: position %d is not finite", i)
		}
	}

	m := &TriangleMesh{Positions: positions, Normals: normals, UVs: uvs, Colors: colors, Indices: indices}
	triCount := len(indices) / 3
	m.triBounds = make([]core.AABB, triCount)
	m.triNormal = make([]core.Vec3, triCount)
	m.triArea = make([]float64, triCount)

	for i := 0; i < triCount; i++ {
		v0, v1, v2 := m.triangleVerts(i)
		m.triBounds[i] = core.NewAABBFromPoints(v0, v1, v2)
		edge1 := v1.Subtract(v0)
		edge2 := v2.Subtract(v0)
		cross := edge1.Cross(edge2)
		m.triArea[i] = cross.Length() * 0.5
		m.triNormal[i] = cross.Normalize()
	}

	rootBounds := core.NewAABBFromPoints(positions...)
	candidates := make([]uint32, triCount)
	for i := range candidates {
		candidates[i] = uint32(i)
	}
	m.tree = BuildOctTree(rootBounds, candidates, func(idx uint32) core.AABB {
		return m.triBounds[idx]
	})

	return m, nil
}

func (m *TriangleMesh) triangleVerts(tri int) (v0, v1, v2 core.Vec3) {
	i0, i1, i2 := m.Indices[tri*3], m.Indices[tri*3+1], m.Indices[tri*3+2]
	return m.Positions[i0], m.Positions[i1], m.Positions[i2]
}

// Bounds returns the mesh's local-space bounding box.
func (m *TriangleMesh) Bounds() core.AABB {
	return m.tree.Bounds()
}

// Intersect finds the closest triangle hit by ray in local space and
// returns the interpolated vertex at that point. bsrdf is attached to the
// result for the caller to propagate (the mesh itself doesn't own a
// BSRDF — its owning upper-level entry does, per spec §3 ownership).
func (m *TriangleMesh) Intersect(ray core.Ray, bsrdf core.BSRDFRef) (core.InterpolatedVertex, float64, bool) {
	bestT := ray.TMax
	if bestT <= 0 {
		bestT = math.Inf(1)
	}
	bestTri := -1
	var bestU, bestV float64

	m.tree.Query(ray, func(idx uint32) {
		tri := int(idx)
		v0, v1, v2 := m.triangleVerts(tri)
		t, u, v, ok := intersectTriangleMollerTrumbore(ray, v0, v1, v2)
		if ok && t > 1e-8 && t < bestT {
			bestT = t
			bestTri = tri
			bestU, bestV = u, v
		}
	})

	if bestTri < 0 {
		return core.InterpolatedVertex{}, 0, false
	}

	i0, i1, i2 := m.Indices[bestTri*3], m.Indices[bestTri*3+1], m.Indices[bestTri*3+2]
	w0, w1, w2 := 1-bestU-bestV, bestU, bestV

	pos := ray.At(bestT)

	var normal core.Vec3
	if len(m.Normals) > 0 {
		normal = m.Normals[i0].Multiply(w0).
			Add(m.Normals[i1].Multiply(w1)).
			Add(m.Normals[i2].Multiply(w2)).
			Normalize()
	} else {
		normal = m.triNormal[bestTri]
	}

	var uv core.Vec2
	if len(m.UVs) > 0 {
		uv = m.UVs[i0].Multiply(w0).Add(m.UVs[i1].Multiply(w1)).Add(m.UVs[i2].Multiply(w2))
	}

	var color core.Vec3
	if len(m.Colors) > 0 {
		color = m.Colors[i0].Multiply(w0).Add(m.Colors[i1].Multiply(w1)).Add(m.Colors[i2].Multiply(w2))
	} else {
		color = core.NewVec3(1, 1, 1)
	}

	return core.InterpolatedVertex{
		Position: pos,
		Normal:   normal,
		UV:       uv,
		Color:    color,
		BSRDF:    bsrdf,
	}, bestT, true
}

// intersectTriangleMollerTrumbore is the standard watertight-ish ray/
// triangle test, returning the ray parameter t and barycentric (u, v) with
// the implied third weight 1-u-v (spec §3 barycentric interpolation).
func intersectTriangleMollerTrumbore(ray core.Ray, v0, v1, v2 core.Vec3) (t, u, v float64, ok bool) {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	pvec := ray.Direction.Cross(edge2)
	det := edge1.Dot(pvec)
	if math.Abs(det) < 1e-12 {
		return 0, 0, 0, false
	}
	invDet := 1.0 / det
	tvec := ray.Origin.Subtract(v0)
	u = tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}
	qvec := tvec.Cross(edge1)
	v = ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}
	t = edge2.Dot(qvec) * invDet
	return t, u, v, t > 0
}

// AreaLightSample is the result of sampling emissive mesh geometry toward
// a shading point (spec §4.1).
type AreaLightSample struct {
	Point      core.Vec3
	Normal     core.Vec3
	SolidAngle float64
}

// SampleAreaLight samples the mesh as an area light visible from
// shadingPoint: for every front-facing triangle it draws a uniform
// barycentric point, accumulates the triangle's solid-angle contribution,
// then picks one sample with probability proportional to its solid angle.
// It reports failure if no triangle faces the shading point.
func (m *TriangleMesh) SampleAreaLight(shadingPoint core.Vec3, rng *rand.Rand) (AreaLightSample, bool) {
	type candidate struct {
		point      core.Vec3
		normal     core.Vec3
		solidAngle float64
	}
	var candidates []candidate
	total := 0.0

	triCount := len(m.Indices) / 3
	for tri := 0; tri < triCount; tri++ {
		v0, v1, v2 := m.triangleVerts(tri)
		faceN := m.triNormal[tri]
		area := m.triArea[tri]
		if area <= 0 {
			continue
		}

		xi1, xi2 := rng.Float64(), rng.Float64()
		sqrtXi1 := math.Sqrt(xi1)
		b0 := 1 - sqrtXi1
		b1 := xi2 * sqrtXi1
		b2 := 1 - b0 - b1

		point := v0.Multiply(b0).Add(v1.Multiply(b1)).Add(v2.Multiply(b2))
		toShading := shadingPoint.Subtract(point)
		dist2 := toShading.LengthSquared()
		if dist2 <= 1e-12 {
			continue
		}
		omega := toShading.Multiply(1 / math.Sqrt(dist2)) // -ω in spec notation: points light -> shading point

		cosAtLight := faceN.Dot(omega)
		if cosAtLight <= 0 {
			continue // not front-facing with respect to the shading point
		}

		solidAngle := cosAtLight * area / dist2
		if solidAngle <= 0 {
			continue
		}

		candidates = append(candidates, candidate{point: point, normal: faceN, solidAngle: solidAngle})
		total += solidAngle
	}

	if len(candidates) == 0 || total <= 0 {
		return AreaLightSample{}, false
	}

	pick := rng.Float64() * total
	for _, c := range candidates {
		pick -= c.solidAngle
		if pick <= 0 {
			return AreaLightSample{Point: c.point, Normal: c.normal, SolidAngle: total}, true
		}
	}
	last := candidates[len(candidates)-1]
	return AreaLightSample{Point: last.point, Normal: last.normal, SolidAngle: total}, true
}
