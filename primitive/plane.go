package primitive

import (
	"math"

	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/intersection"
	"github.com/gorouter-labs/raybsp/material"
)

// Plane is an infinite surface defined, in object space, by Point and
// Normal; Transform maps both into world space. Not present in the
// teacher or in original_source's retrieved files — built fresh from
// spec.md §4.2's equation and culling table.
type Plane struct {
	Transform geom.Transform
	Point     geom.Vec3
	Normal    geom.Vec3 // unit, object-space
	Material  *material.Material

	worldPoint  geom.Vec3
	worldNormal geom.Vec3
	boundingBox geom.AABB
}

func (p *Plane) ApplyTransform() {
	p.worldPoint = p.Transform.Apply(p.Point)
	// The normal goes through the affine transform's linear part (scale,
	// then rotation; no translation) and is then renormalized.
	p.worldNormal = p.Transform.Apply(p.Normal).Sub(p.Transform.Apply(geom.Vec3{})).Normalize()
	p.boundingBox = planeBoundingBox(p.worldPoint, p.worldNormal)
}

// planeBoundingBox bounds an infinite plane tightly on the axis its
// normal is most aligned with, and with +/-inf on the other two, per
// spec.md §3's Plane AABB invariant.
func planeBoundingBox(point, normal geom.Vec3) geom.AABB {
	inf := math.Inf(1)
	minV := geom.Vec3{X: -inf, Y: -inf, Z: -inf}
	maxV := geom.Vec3{X: inf, Y: inf, Z: inf}

	ax, ay, az := math.Abs(normal.X), math.Abs(normal.Y), math.Abs(normal.Z)
	switch {
	case ax >= ay && ax >= az:
		minV.X, maxV.X = point.X, point.X
	case ay >= ax && ay >= az:
		minV.Y, maxV.Y = point.Y, point.Y
	default:
		minV.Z, maxV.Z = point.Z, point.Z
	}
	return geom.AABB{Min: minV, Max: maxV}
}

func (p *Plane) BoundingBox() geom.AABB {
	return p.boundingBox
}

// Intersects solves dot(d, n)*t = dot(p - o, n). CullingFront rejects
// when dot(d, n) > -epsilon (ray not approaching the front face);
// CullingBack rejects when dot(d, n) < epsilon.
func (p *Plane) Intersects(ray geom.Ray, culling intersection.Culling) (intersection.Hit, bool) {
	denom := ray.Direction.Dot(p.worldNormal)

	if culling == intersection.CullingFront && denom > -intersection.PlaneAxisEpsilon {
		return intersection.Hit{}, false
	}
	if culling == intersection.CullingBack && denom < intersection.PlaneAxisEpsilon {
		return intersection.Hit{}, false
	}

	numer := p.worldPoint.Sub(ray.Origin).Dot(p.worldNormal)
	t := numer / denom

	if t <= 0 {
		return intersection.Hit{}, false
	}

	return intersection.Hit{
		Position: ray.At(t),
		Normal:   p.worldNormal,
		Mat:      p.Material,
	}, true
}
