package accel

import (
	"github.com/anvilrender/tracer/pkg/core"
)

// octNode is one node in the arena: a local-or-world-space AABB, the
// candidate indices retained at this node (the leaf test is "has items"),
// and up to 8 child node ids.
type octNode struct {
	bounds   core.AABB
	items    []uint32
	children [8]NodeID
}

// OctTree is a shared oct-tree shape used by both the lower-level mesh
// index (triangle indices as items) and the upper-level scene index
// (entry indices as items). Construction is driven entirely by a
// caller-supplied bounds lookup so the same builder serves both without
// duplicating the recursive split logic (spec §4.3).
type OctTree struct {
	nodes []octNode
	root  NodeID
}

// BuildOctTree constructs an oct-tree over candidates (arbitrary index
// values, typically 0..n-1) whose bounds are given by boundsOf. rootBounds
// is the union of every candidate's bounds (the caller computes this, since
// only the caller knows how to union domain-specific bounds cheaply).
func BuildOctTree(rootBounds core.AABB, candidates []uint32, boundsOf func(uint32) core.AABB) *OctTree {
	t := &OctTree{}
	t.root = t.build(rootBounds, candidates, boundsOf, 0, DefaultMaxDepth)
	return t
}

func (t *OctTree) build(bounds core.AABB, candidates []uint32, boundsOf func(uint32) core.AABB, depth, maxDepth int) NodeID {
	if len(candidates) == 0 {
		return InvalidNode
	}

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, octNode{bounds: bounds})

	parentSize := bounds.Size()

	var retained, remaining []uint32
	for _, c := range candidates {
		cb := boundsOf(c)
		axis := cb.LongestAxis()
		longest := axisComponent(cb.Size(), axis)
		parentAxisExtent := axisComponent(parentSize, axis)
		if parentAxisExtent > 0 && longest > 0.5*parentAxisExtent {
			retained = append(retained, c)
		} else {
			remaining = append(remaining, c)
		}
	}

	if depth >= maxDepth {
		retained = append(retained, remaining...)
		remaining = nil
	}

	childBounds := octantsOf(bounds)
	var childCandidates [8][]uint32
	for _, c := range remaining {
		cb := boundsOf(c)
		matched := -1
		for i := 0; i < 8; i++ {
			if childBounds[i].Contains(cb) == core.FullyContained {
				matched = i
				break
			}
		}
		if matched == -1 {
			// Partial overlap with every sub-space: stays at this node.
			retained = append(retained, c)
		} else {
			childCandidates[matched] = append(childCandidates[matched], c)
		}
	}

	var children [8]NodeID
	for i := 0; i < 8; i++ {
		children[i] = t.build(childBounds[i], childCandidates[i], boundsOf, depth+1, maxDepth)
	}

	t.nodes[id] = octNode{bounds: bounds, items: retained, children: children}
	return id
}

// octantsOf splits bounds at its center into 8 equal child boxes.
func octantsOf(bounds core.AABB) [8]core.AABB {
	c := bounds.Center()
	min, max := bounds.Min, bounds.Max
	var out [8]core.AABB
	for i := 0; i < 8; i++ {
		lo := core.NewVec3(min.X, min.Y, min.Z)
		hi := core.NewVec3(c.X, c.Y, c.Z)
		if i&1 != 0 {
			lo.X, hi.X = c.X, max.X
		}
		if i&2 != 0 {
			lo.Y, hi.Y = c.Y, max.Y
		}
		if i&4 != 0 {
			lo.Z, hi.Z = c.Z, max.Z
		}
		out[i] = core.NewAABB(lo, hi)
	}
	return out
}

func axisComponent(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Query invokes visit for every candidate index retained in a node whose
// bounds the ray pierces, descending into every child whose bounds are
// also pierced. The result is a superset of the exhaustive linear-scan
// result for the ray (spec §8): nodes are never skipped based on item
// content, only on bounds.
func (t *OctTree) Query(ray core.Ray, visit func(idx uint32)) {
	t.queryNode(t.root, ray, visit)
}

func (t *OctTree) queryNode(id NodeID, ray core.Ray, visit func(uint32)) {
	if id == InvalidNode {
		return
	}
	n := &t.nodes[id]
	if !n.bounds.IntersectsRay(ray) {
		return
	}
	for _, item := range n.items {
		visit(item)
	}
	for _, child := range n.children {
		t.queryNode(child, ray, visit)
	}
}

// Bounds returns the root bounding box, or an invalid (zero) AABB if the
// tree is empty.
func (t *OctTree) Bounds() core.AABB {
	if t.root == InvalidNode {
		return core.AABB{}
	}
	return t.nodes[t.root].bounds
}

// IsEmpty reports whether the tree holds no candidates at all.
func (t *OctTree) IsEmpty() bool {
	return t.root == InvalidNode
}
