package primitive

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/intersection"
)

var approxOpts = cmpopts.EquateApprox(1e-6, 0.0)

func unitSphere() *Sphere {
	s := &Sphere{
		Transform: geom.Transform{Position: geom.Vec3{X: 0, Y: 0, Z: -5}, Scale: geom.Vec3{X: 1, Y: 1, Z: 1}},
		Radius:    1.0,
	}
	s.ApplyTransform()
	return s
}

func TestSphereIntersectsAlongAxis(t *testing.T) {
	s := unitSphere()
	ray := geom.NewRay(geom.Vec3{}, geom.Vec3{X: 0, Y: 0, Z: -1})
	hit, ok := s.Intersects(ray, intersection.CullingFront)
	if !ok {
		t.Fatalf("Intersects() = false, want true")
	}
	want := geom.Vec3{X: 0, Y: 0, Z: -4}
	if diff := cmp.Diff(hit.Position, want, approxOpts); diff != "" {
		t.Errorf("Position mismatch (-got +want):\n%s", diff)
	}
}

func TestSphereMissesOffAxis(t *testing.T) {
	s := unitSphere()
	ray := geom.NewRay(geom.Vec3{X: 10, Y: 10, Z: 0}, geom.Vec3{X: 0, Y: 0, Z: -1})
	_, ok := s.Intersects(ray, intersection.CullingFront)
	if ok {
		t.Errorf("Intersects() = true, want false")
	}
}

func TestSphereTangentRayNormalPerpendicular(t *testing.T) {
	s := unitSphere()
	// Tangent ray: passes the sphere at exactly radius distance from the
	// center, parallel to the sphere's central axis.
	ray := geom.NewRay(geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 0, Z: -1})
	hit, ok := s.Intersects(ray, intersection.CullingFront)
	if !ok {
		t.Fatalf("Intersects() = false, want true (tangent ray)")
	}
	dot := hit.Normal.Dot(ray.Direction)
	if math.Abs(dot) > 1e-6 {
		t.Errorf("tangent hit normal not perpendicular to ray direction: dot = %v", dot)
	}
}

func TestSphereBehindRayIsNoHit(t *testing.T) {
	s := unitSphere()
	ray := geom.NewRay(geom.Vec3{X: 0, Y: 0, Z: -10}, geom.Vec3{X: 0, Y: 0, Z: -1})
	_, ok := s.Intersects(ray, intersection.CullingFront)
	if ok {
		t.Errorf("Intersects() = true, want false (sphere is behind the ray)")
	}
}

func unitPlane() *Plane {
	p := &Plane{
		Transform: geom.Transform{Scale: geom.Vec3{X: 1, Y: 1, Z: 1}},
		Point:     geom.Vec3{X: 0, Y: 0, Z: 0},
		Normal:    geom.Vec3{X: 0, Y: 1, Z: 0},
	}
	p.ApplyTransform()
	return p
}

func TestPlaneIntersectsFromAbove(t *testing.T) {
	p := unitPlane()
	ray := geom.NewRay(geom.Vec3{X: 0, Y: 5, Z: 0}, geom.Vec3{X: 0, Y: -1, Z: 0})
	hit, ok := p.Intersects(ray, intersection.CullingFront)
	if !ok {
		t.Fatalf("Intersects() = false, want true")
	}
	if diff := cmp.Diff(hit.Position, geom.Vec3{}, approxOpts); diff != "" {
		t.Errorf("Position mismatch (-got +want):\n%s", diff)
	}
}

func TestPlaneParallelRayIsNoHit(t *testing.T) {
	p := unitPlane()
	ray := geom.NewRay(geom.Vec3{X: 0, Y: 5, Z: 0}, geom.Vec3{X: 1, Y: 0, Z: 0})
	_, ok := p.Intersects(ray, intersection.CullingFront)
	if ok {
		t.Errorf("Intersects() = true, want false (ray parallel to plane)")
	}
}

func flatTriangle() *Triangle {
	tri := &Triangle{
		Transform: geom.Transform{Scale: geom.Vec3{X: 1, Y: 1, Z: 1}},
		A:         geom.Vec3{X: -1, Y: -1, Z: 0},
		B:         geom.Vec3{X: 1, Y: -1, Z: 0},
		C:         geom.Vec3{X: 0, Y: 1, Z: 0},
	}
	tri.ApplyTransform()
	return tri
}

func TestTriangleIntersectsCenter(t *testing.T) {
	tri := flatTriangle()
	ray := geom.NewRay(geom.Vec3{X: 0, Y: 0, Z: 5}, geom.Vec3{X: 0, Y: 0, Z: -1})
	_, ok := tri.Intersects(ray, intersection.CullingFront)
	if !ok {
		t.Errorf("Intersects() = false, want true")
	}
}

func TestTriangleMissesOutsideEdge(t *testing.T) {
	tri := flatTriangle()
	ray := geom.NewRay(geom.Vec3{X: 5, Y: 5, Z: 5}, geom.Vec3{X: 0, Y: 0, Z: -1})
	_, ok := tri.Intersects(ray, intersection.CullingFront)
	if ok {
		t.Errorf("Intersects() = true, want false")
	}
}

func TestTriangleEdgeHitIsStable(t *testing.T) {
	tri := flatTriangle()
	// A ray aimed exactly at the midpoint of edge AB should resolve the
	// same way on every call (implementation-defined but deterministic).
	ray := geom.NewRay(geom.Vec3{X: 0, Y: -1, Z: 5}, geom.Vec3{X: 0, Y: 0, Z: -1})
	_, firstOK := tri.Intersects(ray, intersection.CullingFront)
	for i := 0; i < 10; i++ {
		_, ok := tri.Intersects(ray, intersection.CullingFront)
		if ok != firstOK {
			t.Errorf("Intersects() result unstable across repeated calls")
		}
	}
}

func TestMeshDecomposeProducesOneTriangePerFace(t *testing.T) {
	m := &Mesh{
		Transform: geom.Identity(),
		Faces: [][3]geom.Vec3{
			{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
			{{X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}},
		},
	}
	got := m.Decompose()
	if len(got) != 2 {
		t.Fatalf("Decompose() produced %d triangles, want 2", len(got))
	}
}
