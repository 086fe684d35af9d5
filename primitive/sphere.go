package primitive

import (
	"math"

	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/intersection"
	"github.com/gorouter-labs/raybsp/material"
)

// Sphere is centered at Transform.Position (object space origin maps to
// the world-space center) with object-space Radius.
//
// Grounded on the teacher's Sphere.Intersect in raytracer.go: the
// center-offset/t_ca/t_hc quadratic solve is the same shape, generalized
// to honor culling, which the teacher's single-sided spheres never
// needed: the culling mode selects the near or the far root.
type Sphere struct {
	Transform geom.Transform
	Radius    float64
	Material  *material.Material

	worldCenter geom.Vec3
	worldRadius float64
	boundingBox geom.AABB
}

func (s *Sphere) ApplyTransform() {
	s.worldCenter = s.Transform.Apply(geom.Vec3{})
	s.worldRadius = s.Radius * maxComponent(s.Transform.Scale)
	r := geom.Vec3{X: s.worldRadius, Y: s.worldRadius, Z: s.worldRadius}
	s.boundingBox = geom.NewAABB(s.worldCenter.Sub(r), s.worldCenter.Add(r))
}

func (s *Sphere) BoundingBox() geom.AABB {
	return s.boundingBox
}

func maxComponent(v geom.Vec3) float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// Intersects solves ||o + t*d - c||^2 = r^2. CullingFront picks the near
// (outside-to-inside, entering) root; CullingBack picks the far
// (inside-to-outside, exiting) root. Either way, a non-positive root is
// "no hit" (behind the ray origin).
func (s *Sphere) Intersects(ray geom.Ray, culling intersection.Culling) (intersection.Hit, bool) {
	l := s.worldCenter.Sub(ray.Origin)
	tca := l.Dot(ray.Direction)
	lengthSq := l.LengthSquared()
	radiusSq := s.worldRadius * s.worldRadius

	thcSq := radiusSq - (lengthSq - tca*tca)
	if thcSq < 0 {
		return intersection.Hit{}, false
	}
	thc := math.Sqrt(thcSq)

	var t float64
	if culling == intersection.CullingBack {
		t = tca + thc
	} else {
		t = tca - thc
	}
	if t <= 0 {
		return intersection.Hit{}, false
	}

	pos := ray.At(t)
	normal := pos.Sub(s.worldCenter).Normalize()
	return intersection.Hit{
		Position: pos,
		Normal:   normal,
		Mat:      s.Material,
	}, true
}
