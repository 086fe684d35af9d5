package material

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/intersection"
)

var approxOpts = cmpopts.EquateApprox(1e-9, 0.0)

// fakeOccluder is a minimal intersection.Occluder for testing Material.Render
// in isolation from the scene package.
type fakeOccluder struct {
	lights  []Light
	ambient geom.Vec3
	blocked bool
}

func (f *fakeOccluder) ClosestIntersection(r geom.Ray, culling intersection.Culling) (intersection.Hit, bool) {
	if f.blocked {
		return intersection.Hit{Distance: 0.1}, true
	}
	return intersection.Hit{}, false
}

func (f *fakeOccluder) SceneLights() []Light     { return f.lights }
func (f *fakeOccluder) GlobalAmbient() geom.Vec3 { return f.ambient }

func TestRenderAmbientOnlyWhenNoLights(t *testing.T) {
	m := &Material{CAmbient: geom.RGB(1, 1, 1)}
	occluder := &fakeOccluder{ambient: geom.RGB(0.2, 0.2, 0.2)}
	hit := &intersection.Hit{
		Position: geom.Vec3{X: 0, Y: 0, Z: 0},
		Normal:   geom.Vec3{X: 0, Y: 1, Z: 0},
		View:     geom.Vec3{X: 0, Y: 1, Z: 0},
	}
	ray := geom.Ray{}
	got := m.Render(ray, ray, hit, occluder)
	want := geom.RGB(0.2, 0.2, 0.2)
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("Render() mismatch (-got +want):\n%s", diff)
	}
}

func TestRenderDiffuseFacesLight(t *testing.T) {
	m := &Material{CDiffuse: geom.RGB(1, 1, 1)}
	occluder := &fakeOccluder{
		lights: []Light{{Position: geom.Vec3{X: 0, Y: 5, Z: 0}, Color: geom.RGB(1, 1, 1), Intensity: 1}},
	}
	hit := &intersection.Hit{
		Position: geom.Vec3{X: 0, Y: 0, Z: 0},
		Normal:   geom.Vec3{X: 0, Y: 1, Z: 0},
		View:     geom.Vec3{X: 0, Y: 1, Z: 0},
	}
	ray := geom.Ray{}
	got := m.Render(ray, ray, hit, occluder)
	if got.X <= 0 {
		t.Errorf("Render() = %v, want positive diffuse contribution facing the light", got)
	}
}

func TestRenderShadowedSkipsLight(t *testing.T) {
	m := &Material{CDiffuse: geom.RGB(1, 1, 1)}
	occluder := &fakeOccluder{
		lights:  []Light{{Position: geom.Vec3{X: 0, Y: 5, Z: 0}, Color: geom.RGB(1, 1, 1), Intensity: 1}},
		blocked: true,
	}
	hit := &intersection.Hit{
		Position: geom.Vec3{X: 0, Y: 0, Z: 0},
		Normal:   geom.Vec3{X: 0, Y: 1, Z: 0},
		View:     geom.Vec3{X: 0, Y: 1, Z: 0},
	}
	ray := geom.Ray{}
	got := m.Render(ray, ray, hit, occluder)
	want := geom.Vec3{}
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("Render() mismatch (-got +want):\n%s", diff)
	}
}
