// Package scene assembles the upper-level index, material manager, light
// list and sun into the read-only structure the integrator renders
// against (spec §3 ownership, §5 shared-state discipline).
package scene

import (
	"fmt"
	"math/rand"

	"github.com/anvilrender/tracer/pkg/accel"
	"github.com/anvilrender/tracer/pkg/core"
	"github.com/anvilrender/tracer/pkg/material"
	"github.com/anvilrender/tracer/pkg/texture"
)

// Light is a world-transform plus a shared reference to one emissive
// lower-level structure (spec §3). It shares its Lower handle with the
// upper-level Entry the emissive instance also registered, rather than
// owning a second copy.
type Light struct {
	Transform core.Transform
	Lower     accel.LowerLevel
}

// areaLightSampler is satisfied by lower-level structures that can sample
// themselves as emissive geometry (currently *accel.TriangleMesh; sphere
// lights are not sampled directly and simply report no candidate).
type areaLightSampler interface {
	SampleAreaLight(shadingPoint core.Vec3, rng *rand.Rand) (accel.AreaLightSample, bool)
}

// SampleDirect samples this light's geometry toward a world-space
// shading point, doing the local/world transform bookkeeping so the
// integrator only deals in world space (spec §4.1, §4.5 step 4).
func (l *Light) SampleDirect(worldShadingPoint core.Vec3, rng *rand.Rand) (point, normal core.Vec3, solidAngle float64, ok bool) {
	sampler, isSamplable := l.Lower.(areaLightSampler)
	if !isSamplable {
		return core.Vec3{}, core.Vec3{}, 0, false
	}

	localShading := l.Transform.InversePoint(worldShadingPoint)
	sample, sampled := sampler.SampleAreaLight(localShading, rng)
	if !sampled {
		return core.Vec3{}, core.Vec3{}, 0, false
	}

	worldPoint := l.Transform.Point(sample.Point)
	worldNormal := l.Transform.NormalVector(sample.Normal)
	return worldPoint, worldNormal, sample.SolidAngle, true
}

// Sun is the always-present environment cube map plus an optional
// directional source (spec §3).
type Sun struct {
	CubeMap        *texture.CubeMap
	HasDirectional bool
	Direction      core.Vec3 // unit, points FROM the sun TOWARD the scene
	Color          core.Vec3
}

// Scene is the fully built, read-only-during-render scene graph (spec §5:
// "the upper-level structure, all lower-level structures, the material
// manager, the light list, and the sun are read-only after build() and
// may be shared by reference across workers without locking").
type Scene struct {
	Upper     *accel.UpperIndex
	Materials *material.Manager
	Lights    []*Light
	Sun       *Sun
}

// LightCount is the denominator used by the integrator's uniform light
// selection (spec §4.5 step 4: light_count = len(lights) + (sun?1:0)).
func (s *Scene) LightCount() int {
	n := len(s.Lights)
	if s.Sun != nil && s.Sun.HasDirectional {
		n++
	}
	return n
}

// Builder accumulates entries and lights before a single Build call
// freezes the scene (spec §4.2 "add_entry is not concurrent with build").
type Builder struct {
	upper     *accel.UpperIndex
	materials *material.Manager
	lights    []*Light
	sun       *Sun
}

// NewBuilder returns an empty scene builder backed by a fresh material
// manager.
func NewBuilder() *Builder {
	return &Builder{
		upper:     accel.NewUpperIndex(),
		materials: material.NewManager(),
	}
}

// Materials exposes the builder's material manager so callers can Add
// materials before wiring instances to them.
func (b *Builder) Materials() *material.Manager {
	return b.materials
}

// AddInstance registers one instance: a lower-level structure, its world
// transform, and the BSRDF it scatters with. If the BSRDF is a Light
// variant the instance is also registered as an area light, sharing the
// same lower-level handle (spec §3 Light).
func (b *Builder) AddInstance(lower accel.LowerLevel, transform core.Transform, bsrdf core.BSRDFRef) {
	b.upper.AddEntry(lower, transform, bsrdf)
	if bsrdf != nil && bsrdf.Kind() == core.BSRDFLight {
		b.lights = append(b.lights, &Light{Transform: transform, Lower: lower})
	}
}

// SetSun installs the mandatory environment cube map and optional
// directional source.
func (b *Builder) SetSun(sun *Sun) {
	b.sun = sun
}

// Build freezes the scene: computes upper-level bounds and constructs
// its oct-tree. Returns a BuildError-flavoured error if there are no
// instances or no sun cube map (spec §7 BuildError).
func (b *Builder) Build() (*Scene, error) {
	if b.sun == nil || b.sun.CubeMap == nil {
		return nil, fmt.Errorf("scene: build requires an environment cube map")
	}
	if err := b.upper.Build(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &Scene{
		Upper:     b.upper,
		Materials: b.materials,
		Lights:    b.lights,
		Sun:       b.sun,
	}, nil
}
