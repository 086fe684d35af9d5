// Package primitive implements the closed set of ray-intersectable scene
// geometry: spheres, planes, triangles, and the mesh loader-side
// aggregate that decomposes into triangles.
//
// Per design note 1 in spec.md §9, this is a tagged variant rather than an
// interface: Primitive holds a pointer to exactly one of Sphere, Plane, or
// Triangle and dispatches on whichever field is non-nil. The BSP tree's
// leaves hold *Primitive references into the scene's object slice.
package primitive

import (
	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/intersection"
	"github.com/gorouter-labs/raybsp/material"
)

// Primitive is a tagged union over the closed set of intersectable scene
// objects.
type Primitive struct {
	Sphere   *Sphere
	Plane    *Plane
	Triangle *Triangle
}

// Intersects dispatches to the wrapped primitive's intersection test.
// All variants return false for t <= 0 (behind the ray origin) and, on a
// hit, return a Hit with Mat, Position and Normal set; Distance is left
// for the caller to fill in once the closest candidate is known.
func (p Primitive) Intersects(r geom.Ray, culling intersection.Culling) (intersection.Hit, bool) {
	switch {
	case p.Sphere != nil:
		return p.Sphere.Intersects(r, culling)
	case p.Plane != nil:
		return p.Plane.Intersects(r, culling)
	case p.Triangle != nil:
		return p.Triangle.Intersects(r, culling)
	default:
		return intersection.Hit{}, false
	}
}

// BoundingBox returns the tightest AABB of the primitive's current
// world-space extent, valid only after ApplyTransform has been called.
func (p Primitive) BoundingBox() geom.AABB {
	switch {
	case p.Sphere != nil:
		return p.Sphere.BoundingBox()
	case p.Plane != nil:
		return p.Plane.BoundingBox()
	case p.Triangle != nil:
		return p.Triangle.BoundingBox()
	default:
		return geom.EmptyAABB()
	}
}

// ApplyTransform bakes the primitive's Transform into its cached
// world-space geometry and bounding box.
func (p Primitive) ApplyTransform() {
	switch {
	case p.Sphere != nil:
		p.Sphere.ApplyTransform()
	case p.Plane != nil:
		p.Plane.ApplyTransform()
	case p.Triangle != nil:
		p.Triangle.ApplyTransform()
	}
}

// Center returns the representative position used by the BSP build's
// median-split partition. For Sphere and Plane this is the Transform's
// position; for Triangle it is the world-space centroid.
func (p Primitive) Center() geom.Vec3 {
	switch {
	case p.Sphere != nil:
		return p.Sphere.Transform.GetPosition()
	case p.Plane != nil:
		return p.Plane.Transform.GetPosition()
	case p.Triangle != nil:
		return p.Triangle.Centroid()
	default:
		return geom.Vec3{}
	}
}

// Material returns the primitive's material.
func (p Primitive) Material() *material.Material {
	switch {
	case p.Sphere != nil:
		return p.Sphere.Material
	case p.Plane != nil:
		return p.Plane.Material
	case p.Triangle != nil:
		return p.Triangle.Material
	default:
		return nil
	}
}
