package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approxOpts = cmpopts.EquateApprox(1e-7, 0.0)

func TestNormalizeSimple(t *testing.T) {
	tests := []struct {
		v    Vec3
		want Vec3
	}{
		{v: Vec3{X: 2, Y: 0, Z: 0}, want: Vec3{X: 1, Y: 0, Z: 0}},
		{v: Vec3{X: 0, Y: -12, Z: 5}, want: Vec3{X: 0, Y: -12.0 / 13, Z: 5.0 / 13}},
		{v: Vec3{X: 3, Y: 4, Z: 0}, want: Vec3{X: 3.0 / 5.0, Y: 4.0 / 5.0, Z: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			got := tt.v.Normalize()
			if diff := cmp.Diff(got, tt.want, approxOpts); diff != "" {
				t.Errorf("Vec3.Normalize() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestNormalizeZeroVectorReturnsZero(t *testing.T) {
	got := Vec3{}.Normalize()
	if diff := cmp.Diff(got, Vec3{}, approxOpts); diff != "" {
		t.Errorf("Vec3{}.Normalize() mismatch (-got +want):\n%s", diff)
	}
}

func TestNormalizeIsUnitLength(t *testing.T) {
	tests := []struct {
		v Vec3
	}{
		{v: Vec3{X: 2, Y: 0, Z: 0}},
		{v: Vec3{X: 12, Y: 14, Z: 23}},
		{v: Vec3{X: 0, Y: 83, Z: 0.32}},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			got := tt.v.Normalize().Length()
			if diff := cmp.Diff(got, 1.0, approxOpts); diff != "" {
				t.Errorf("Vec3.Length() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestReflect(t *testing.T) {
	// A ray going straight down reflecting off a flat upward normal should
	// bounce straight back up.
	incoming := Vec3{X: 0, Y: -1, Z: 0}
	normal := Vec3{X: 0, Y: 1, Z: 0}
	got := incoming.Reflect(normal)
	want := Vec3{X: 0, Y: 1, Z: 0}
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("Vec3.Reflect() mismatch (-got +want):\n%s", diff)
	}
}

func TestCross(t *testing.T) {
	x := Vec3{X: 1, Y: 0, Z: 0}
	y := Vec3{X: 0, Y: 1, Z: 0}
	got := x.Cross(y)
	want := Vec3{X: 0, Y: 0, Z: 1}
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("Vec3.Cross() mismatch (-got +want):\n%s", diff)
	}
}

func TestInverse(t *testing.T) {
	v := Vec3{X: 2, Y: 4, Z: 0.5}
	got := v.Inverse()
	want := Vec3{X: 0.5, Y: 0.25, Z: 2}
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("Vec3.Inverse() mismatch (-got +want):\n%s", diff)
	}
}
