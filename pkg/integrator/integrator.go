// Package integrator implements Monte-Carlo path tracing with
// direct-light sampling and Russian-roulette termination (spec C7).
package integrator

import (
	"math"
	"math/rand"

	"github.com/anvilrender/tracer/pkg/core"
	"github.com/anvilrender/tracer/pkg/scene"
)

// selfIntersectionEpsilon offsets the next bounce's ray origin to avoid
// re-hitting the surface it just left (spec §4.5 step 8).
const selfIntersectionEpsilon = 0.01

// russianRouletteMinDepth is the depth after which Russian roulette may
// terminate a path (spec §4.5 step 7).
const russianRouletteMinDepth = 2

// Camera is the minimal contract the integrator needs from C9: generate
// a jittered primary ray for a pixel.
type Camera interface {
	GenerateRay(px, py int, rng *rand.Rand) core.Ray
}

// Integrator ties the upper-level structure, material evaluator and BSRDF
// sampling together into the path-tracing estimator (spec §4.5).
type Integrator struct {
	Scene *scene.Scene
}

// New returns an integrator bound to a built, read-only scene.
func New(s *scene.Scene) *Integrator {
	return &Integrator{Scene: s}
}

// Integrate returns the average of samplesPerCall independent path
// samples for pixel (px, py). Accumulation across repeated calls (the
// running mean) is the caller's responsibility.
func (in *Integrator) Integrate(camera Camera, px, py, maxDepth, samplesPerCall int, rng *rand.Rand) core.Vec3 {
	sum := core.Vec3{}
	for i := 0; i < samplesPerCall; i++ {
		sum = sum.Add(in.samplePath(camera, px, py, maxDepth, rng))
	}
	avg := sum.Multiply(1.0 / float64(samplesPerCall))
	return clampFinite(avg)
}

func (in *Integrator) samplePath(camera Camera, px, py, maxDepth int, rng *rand.Rand) core.Vec3 {
	ray := camera.GenerateRay(px, py, rng)
	iorStack := core.NewIORStack()

	payload := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for depth := 0; depth < maxDepth; depth++ {
		hit, _, ok := in.Scene.Upper.ClosestIntersection(ray)
		if !ok {
			payload = payload.Add(throughput.MultiplyVec(in.Scene.Sun.CubeMap.Sample(ray.Direction)))
			return payload
		}

		view := ray.Direction.Negate()

		if hit.BSRDF.Kind() == core.BSRDFLight {
			_, _, emissive := hit.BSRDF.Sample(rng, hit, view, iorStack)
			payload = payload.Add(throughput.MultiplyVec(emissive))
			return payload
		}

		in.sampleDirectLight(hit, view, throughput, iorStack, rng, &payload)

		dir, pdf, brdf := hit.BSRDF.Sample(rng, hit, view, iorStack)
		if pdf <= 0 {
			return payload
		}

		cosTheta := math.Abs(dir.Dot(hit.Normal))
		throughput = throughput.MultiplyVec(brdf).Multiply(cosTheta / pdf)

		if depth > russianRouletteMinDepth {
			q := math.Max(throughput.X, math.Max(throughput.Y, throughput.Z))
			q = math.Min(q, 1.0)
			if rng.Float64() > q {
				return payload
			}
			if q > 1e-8 {
				throughput = throughput.Multiply(1 / q)
			}
		}

		ray = core.NewRay(hit.Position, dir, 0).Offset(dir, selfIntersectionEpsilon)
	}

	return payload
}

// sampleDirectLight implements spec §4.5 step 4: with probability
// 1/light_count, pick one light uniformly and add its contribution if
// unoccluded.
func (in *Integrator) sampleDirectLight(hit core.InterpolatedVertex, view core.Vec3, throughput core.Vec3, iorStack *core.IORStack, rng *rand.Rand, payload *core.Vec3) {
	lightCount := in.Scene.LightCount()
	if lightCount == 0 {
		return
	}
	if rng.Float64() >= 1.0/float64(lightCount) {
		return
	}

	hasSun := in.Scene.Sun != nil && in.Scene.Sun.HasDirectional
	pickSun := hasSun && (len(in.Scene.Lights) == 0 || rng.Intn(lightCount) == 0)

	if pickSun {
		in.sampleSun(hit, view, throughput, iorStack, rng, payload)
		return
	}

	if len(in.Scene.Lights) == 0 {
		return
	}
	light := in.Scene.Lights[rng.Intn(len(in.Scene.Lights))]
	in.sampleAreaLight(light, hit, view, throughput, iorStack, rng, payload)
}

func (in *Integrator) sampleSun(hit core.InterpolatedVertex, view core.Vec3, throughput core.Vec3, iorStack *core.IORStack, rng *rand.Rand, payload *core.Vec3) {
	sun := in.Scene.Sun
	toSun := sun.Direction.Negate()
	nDotL := hit.Normal.Dot(toSun)
	if nDotL <= 0 {
		return
	}

	shadowOrigin := hit.Position.Add(hit.Normal.Multiply(selfIntersectionEpsilon))
	shadowRay := core.NewRay(shadowOrigin, toSun, 0)
	if _, _, occluded := in.Scene.Upper.ClosestIntersection(shadowRay); occluded {
		return
	}

	_, _, brdf := hit.BSRDF.Sample(rng, hit, view, iorStack)
	contribution := throughput.MultiplyVec(brdf).MultiplyVec(sun.Color).Multiply(nDotL / float64(in.Scene.LightCount()))
	*payload = payload.Add(contribution)
}

func (in *Integrator) sampleAreaLight(light *scene.Light, hit core.InterpolatedVertex, view core.Vec3, throughput core.Vec3, iorStack *core.IORStack, rng *rand.Rand, payload *core.Vec3) {
	point, lightNormal, solidAngle, ok := light.SampleDirect(hit.Position, rng)
	if !ok {
		return
	}

	toLight := point.Subtract(hit.Position)
	dist := toLight.Length()
	if dist <= 1e-8 {
		return
	}
	omega := toLight.Multiply(1 / dist)

	nDotL := hit.Normal.Dot(omega)
	if nDotL <= 0 {
		return
	}
	_ = lightNormal // already folded into solidAngle by accel.SampleAreaLight

	shadowOrigin := hit.Position.Add(hit.Normal.Multiply(selfIntersectionEpsilon))
	shadowRay := core.NewRay(shadowOrigin, omega, dist-2*selfIntersectionEpsilon)
	shadowHit, _, hitSomething := in.Scene.Upper.ClosestIntersection(shadowRay)
	if hitSomething && shadowHit.BSRDF.Kind() != core.BSRDFLight {
		return
	}

	_, _, brdf := hit.BSRDF.Sample(rng, hit, view, iorStack)
	var emissive core.Vec3
	if hitSomething {
		_, _, emissive = shadowHit.BSRDF.Sample(rng, shadowHit, omega.Negate(), iorStack)
	}

	contribution := throughput.MultiplyVec(brdf).MultiplyVec(emissive).
		Multiply(nDotL * solidAngle / float64(in.Scene.LightCount()))
	*payload = payload.Add(contribution)
}

func clampFinite(c core.Vec3) core.Vec3 {
	if math.IsNaN(c.X) || math.IsInf(c.X, 0) ||
		math.IsNaN(c.Y) || math.IsInf(c.Y, 0) ||
		math.IsNaN(c.Z) || math.IsInf(c.Z, 0) {
		return core.Vec3{}
	}
	return c
}
