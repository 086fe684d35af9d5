// Package scene owns the primitives and lights of a scene, dispatches
// intersection queries (through the BSP tree when one has been built),
// and hosts the recursive radiance evaluator.
//
// Grounded on the teacher's closestHit/traceRay control flow in
// raytracer.go and on original_source/src/rayscene/Scene.cpp's
// closestIntersection (AABB pre-test, squared-distance tracking, the
// 1e-4 early exit) and raycast (the reflection-offset-and-recurse shape).
package scene

import (
	"math"

	"github.com/gorouter-labs/raybsp/bsp"
	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/intersection"
	"github.com/gorouter-labs/raybsp/material"
	"github.com/gorouter-labs/raybsp/primitive"
)

// earlyExitDistSq is the squared-distance threshold below which
// ClosestIntersection stops scanning candidates and returns the current
// hit, per spec.md §4.4 step 5.
const earlyExitDistSq = 1e-4

// Scene exclusively owns all primitives and lights; the BSP tree (once
// built by Prepare) holds only non-owning references into Objects.
type Scene struct {
	Objects []*primitive.Primitive
	Lights  []material.Light

	Ambient geom.Vec3

	// MaxCastCount bounds the recursion depth of Raycast (Reflections
	// depth in spec.md's terminology). 0 disables reflection entirely.
	MaxCastCount int

	tree *bsp.Node
}

// Prepare bakes every object's Transform into world-space cached geometry
// and bounding boxes, then builds the BSP tree. It must be called once,
// after every object is added and before any rendering begins; neither
// the cached geometry nor the tree is mutated afterward.
func (s *Scene) Prepare() {
	for _, obj := range s.Objects {
		obj.ApplyTransform()
	}
	s.tree = bsp.Build(s.Objects)
}

// SceneLights implements intersection.Occluder.
func (s *Scene) SceneLights() []intersection.Light {
	return s.Lights
}

// GlobalAmbient implements intersection.Occluder's ambient accessor.
func (s *Scene) GlobalAmbient() geom.Vec3 {
	return s.Ambient
}

// candidates returns the primitives the tree (if built) believes the ray
// might strike, or every object if the tree hasn't been built yet.
func (s *Scene) candidates(r geom.Ray) []*primitive.Primitive {
	if s.tree == nil {
		return s.Objects
	}
	return s.tree.FindIntersections(r, nil)
}

// ClosestIntersection finds the closest candidate the ray strikes under
// the given culling mode. It implements intersection.Occluder so that
// material.Material can cast shadow rays without importing this package.
func (s *Scene) ClosestIntersection(r geom.Ray, culling intersection.Culling) (intersection.Hit, bool) {
	var closest intersection.Hit
	closestDistSq := -1.0
	found := false

	for _, obj := range s.candidates(r) {
		if !obj.BoundingBox().Intersects(r) {
			continue
		}
		hit, ok := obj.Intersects(r, culling)
		if !ok {
			continue
		}
		distSq := hit.Position.Sub(r.Origin).LengthSquared()
		if !found || distSq < closestDistSq {
			found = true
			closestDistSq = distSq
			hit.Distance = math.Sqrt(distSq)
			closest = hit
			if closestDistSq < earlyExitDistSq {
				break
			}
		}
	}
	return closest, found
}

// Raycast is the recursive radiance evaluator: it shades the closest hit
// along ray with local illumination, then recurses into the mirror
// reflection direction while castCount stays below maxCastCount and the
// struck material has a positive reflection coefficient.
func (s *Scene) Raycast(ray, cameraRay geom.Ray, castCount int) geom.Vec3 {
	hit, ok := s.ClosestIntersection(ray, intersection.CullingFront)
	if !ok {
		return geom.Vec3{}
	}
	hit.View = cameraRay.Origin.Sub(hit.Position).Normalize()

	if hit.Mat == nil {
		return geom.Vec3{}
	}

	color := hit.Mat.Render(ray, cameraRay, &hit, s)

	mat, ok := hit.Mat.(*material.Material)
	if ok && castCount < s.MaxCastCount && mat.CReflection > 0 {
		reflectDir := ray.Direction.Reflect(hit.Normal)
		reflectOrigin := hit.Position.Add(reflectDir.Scale(geom.CompareEpsilon))
		reflectRay := geom.Ray{Origin: reflectOrigin, Direction: reflectDir}

		reflectColor := s.Raycast(reflectRay, cameraRay, castCount+1)
		color = color.Add(reflectColor.Scale(mat.CReflection))
	}

	return color
}
