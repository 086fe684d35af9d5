package primitive

import (
	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/intersection"
	"github.com/gorouter-labs/raybsp/material"
)

// Triangle is defined in object space by vertices A, B, C; tA/tB/tC are
// the cached world-space vertices, populated by ApplyTransform.
//
// Grounded closely on original_source/src/rayscene/Triangle.cpp: the same
// world-space vertex caching, the same three edge-cross sidedness tests,
// and the same culling epsilon.
type Triangle struct {
	Transform geom.Transform
	A, B, C   geom.Vec3
	Material  *material.Material

	tA, tB, tC  geom.Vec3
	normal      geom.Vec3
	boundingBox geom.AABB
}

func (t *Triangle) ApplyTransform() {
	t.tA = t.Transform.Apply(t.A)
	t.tB = t.Transform.Apply(t.B)
	t.tC = t.Transform.Apply(t.C)
	t.normal = t.tB.Sub(t.tA).Cross(t.tC.Sub(t.tA)).Normalize()

	box := geom.NewAABB(t.tA, t.tB)
	t.boundingBox = box.Subsume(geom.NewAABB(t.tC, t.tC))
}

func (t *Triangle) BoundingBox() geom.AABB {
	return t.boundingBox
}

// Centroid is the world-space average of the three cached vertices, used
// by the BSP build as this triangle's representative center.
func (t *Triangle) Centroid() geom.Vec3 {
	return t.tA.Add(t.tB).Add(t.tC).Scale(1.0 / 3.0)
}

// Intersects computes the plane normal from the cached world-space
// vertices, applies the same sidedness culling as Plane, then tests
// point-in-triangle with three edge/cross tests each required to have a
// non-negative dot with the normal.
func (t *Triangle) Intersects(ray geom.Ray, culling intersection.Culling) (intersection.Hit, bool) {
	denom := ray.Direction.Dot(t.normal)

	if culling == intersection.CullingFront && denom > -intersection.PlaneAxisEpsilon {
		return intersection.Hit{}, false
	}
	if culling == intersection.CullingBack && denom < intersection.PlaneAxisEpsilon {
		return intersection.Hit{}, false
	}

	numer := t.tA.Sub(ray.Origin).Dot(t.normal)
	tParam := numer / denom
	if tParam <= 0 {
		return intersection.Hit{}, false
	}

	q := ray.At(tParam)

	ba := t.tB.Sub(t.tA)
	qa := q.Sub(t.tA)
	if ba.Cross(qa).Dot(t.normal) < 0 {
		return intersection.Hit{}, false
	}

	cb := t.tC.Sub(t.tB)
	qb := q.Sub(t.tB)
	if cb.Cross(qb).Dot(t.normal) < 0 {
		return intersection.Hit{}, false
	}

	ac := t.tA.Sub(t.tC)
	qc := q.Sub(t.tC)
	if ac.Cross(qc).Dot(t.normal) < 0 {
		return intersection.Hit{}, false
	}

	return intersection.Hit{
		Position: q,
		Normal:   t.normal,
		Mat:      t.Material,
	}, true
}
