package accel

import (
	"fmt"

	"github.com/anvilrender/tracer/pkg/core"
)

// Entry is an upper-level instance: a world transform, its owned handle to
// a lower-level structure, and an owned handle to a BSRDF (spec §3
// Upper-Level Entry). Entries are created at scene-build and destroyed
// with the scene.
type Entry struct {
	Transform core.Transform
	Lower     LowerLevel
	BSRDF     core.BSRDFRef
}

// UpperIndex is the scene-level oct-tree over transformed instances (spec
// §4.2). Entries are appended with AddEntry, then Build computes
// world-space bounds and constructs the oct-tree; AddEntry must not be
// called concurrently with Build.
type UpperIndex struct {
	entries     []Entry
	worldBounds []core.AABB
	tree        *OctTree
}

// NewUpperIndex returns an empty index ready to accept entries.
func NewUpperIndex() *UpperIndex {
	return &UpperIndex{}
}

// AddEntry appends a new instance. Not safe to call concurrently with
// Build or with intersection queries.
func (u *UpperIndex) AddEntry(lower LowerLevel, transform core.Transform, bsrdf core.BSRDFRef) {
	u.entries = append(u.entries, Entry{Transform: transform, Lower: lower, BSRDF: bsrdf})
}

// Build computes each entry's world-space bounds, unions them for the
// root, and constructs an oct-tree over {world_bounds, &entry} pairs.
// Returns a BuildError-flavoured error if there are no entries (spec §7).
func (u *UpperIndex) Build() error {
	if len(u.entries) == 0 {
		return fmt.Errorf("accel: cannot build an upper-level index with no entries")
	}

	u.worldBounds = make([]core.AABB, len(u.entries))
	for i, e := range u.entries {
		u.worldBounds[i] = e.Lower.Bounds().Transform(e.Transform)
	}

	root := u.worldBounds[0]
	for _, b := range u.worldBounds[1:] {
		root = root.Union(b)
	}

	candidates := make([]uint32, len(u.entries))
	for i := range candidates {
		candidates[i] = uint32(i)
	}

	u.tree = BuildOctTree(root, candidates, func(idx uint32) core.AABB {
		return u.worldBounds[idx]
	})
	return nil
}

// ClosestIntersection routes ray through every candidate entry the
// oct-tree pierces, intersects each in its local frame, and returns the
// hit whose world-space position is closest to the ray origin (spec
// §4.2).
func (u *UpperIndex) ClosestIntersection(ray core.Ray) (core.InterpolatedVertex, float64, bool) {
	bestDist := ray.TMax
	if bestDist <= 0 {
		bestDist = -1 // unbounded: any positive distance beats it on first hit
	}
	var best core.InterpolatedVertex
	found := false

	u.tree.Query(ray, func(idx uint32) {
		entry := u.entries[idx]
		localRay := entry.Transform.RayToLocal(ray)

		hit, _, ok := entry.Lower.Intersect(localRay, entry.BSRDF)
		if !ok {
			return
		}

		worldPos := entry.Transform.Point(hit.Position)
		worldNormal := entry.Transform.NormalVector(hit.Normal)
		dist := worldPos.Subtract(ray.Origin).Length()

		if bestDist >= 0 && dist >= bestDist {
			return
		}

		hit.Position = worldPos
		hit.Normal = worldNormal
		best = hit
		bestDist = dist
		found = true
	})

	return best, bestDist, found
}

// AllIntersections is identical to ClosestIntersection but returns every
// hit the query produces, not just the nearest (spec §4.2).
func (u *UpperIndex) AllIntersections(ray core.Ray) []core.InterpolatedVertex {
	var hits []core.InterpolatedVertex

	u.tree.Query(ray, func(idx uint32) {
		entry := u.entries[idx]
		localRay := entry.Transform.RayToLocal(ray)

		hit, _, ok := entry.Lower.Intersect(localRay, entry.BSRDF)
		if !ok {
			return
		}

		hit.Position = entry.Transform.Point(hit.Position)
		hit.Normal = entry.Transform.NormalVector(hit.Normal)
		hits = append(hits, hit)
	})

	return hits
}

// EntryCount returns the number of entries added so far.
func (u *UpperIndex) EntryCount() int {
	return len(u.entries)
}

// Bounds returns the union world-space bounds computed at Build, or a
// zero AABB before Build has run.
func (u *UpperIndex) Bounds() core.AABB {
	if u.tree == nil {
		return core.AABB{}
	}
	return u.tree.Bounds()
}
