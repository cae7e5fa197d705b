// Package accel implements the two-level acceleration structure: a
// per-instance lower-level intersector (mesh oct-tree or implicit sphere) and a
// scene-level upper-level oct-tree that routes rays across transformed
// instances.
package accel

// NodeID indexes into a node arena. The sentinel InvalidNode (all bits set)
// marks "no node" without needing a pointer or an extra bool.
type NodeID uint32

// InvalidNode is the sentinel id for "no node here".
const InvalidNode NodeID = ^NodeID(0)

// DefaultMaxDepth is the oct-tree recursion cutoff (spec §4.3): beyond
// this depth all remaining candidates are retained at the leaf rather than
// split further.
const DefaultMaxDepth = 32
