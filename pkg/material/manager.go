package material

import "github.com/anvilrender/tracer/pkg/core"

// ID is a monotonically increasing material identifier handed out by the
// Manager (spec §4.4 "add(material) -> MaterialId").
type ID uint64

// Manager exclusively owns every Material in a scene, keyed by ID (spec
// §3 ownership, §9 "the manager owns materials keyed by id, and every
// BSRDF carries a plain id plus a borrow of the manager").
type Manager struct {
	materials map[ID]*Material
	nextID    ID
	resident  int
}

// NewManager returns an empty material manager.
func NewManager() *Manager {
	return &Manager{materials: make(map[ID]*Material)}
}

// Add takes ownership of mat, accounts for its texture residency, and
// returns a fresh id.
func (mgr *Manager) Add(mat *Material) ID {
	id := mgr.nextID
	mgr.nextID++
	mgr.materials[id] = mat
	mgr.resident += mat.residenceSize()
	return id
}

// Evaluate dispatches (id, uv) to the material's Evaluate method. An
// unknown id evaluates to the zero material (normal (0,0,1), everything
// else black) rather than panicking — material lookup failures are a
// scene-build bug, not a per-sample recoverable condition, and the scene
// builder is expected to never hand the integrator an id it didn't add.
func (mgr *Manager) Evaluate(id ID, uv core.Vec2) EvaluatedMaterial {
	mat, ok := mgr.materials[id]
	if !ok {
		return EvaluatedMaterial{Normal: core.NewVec3(0, 0, 1)}
	}
	return mat.Evaluate(uv)
}

// Get returns the material for id, if present.
func (mgr *Manager) Get(id ID) (*Material, bool) {
	mat, ok := mgr.materials[id]
	return mat, ok
}

// ResidentBytes returns the total byte footprint of every texture
// currently resident across all owned materials.
func (mgr *Manager) ResidentBytes() int {
	return mgr.resident
}

// Count returns the number of materials currently owned.
func (mgr *Manager) Count() int {
	return len(mgr.materials)
}
