package geom

import "math"

// parallelEpsilon is the threshold below which a ray direction component is
// treated as parallel to the corresponding slab.
const parallelEpsilon = 1e-12

// AABB is an axis-aligned bounding box with the invariant Min.c <= Max.c on
// every axis.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a box that subsumes nothing yet: Min is +inf, Max is
// -inf on every axis, so the first Subsume call establishes real bounds.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

// NewAABB builds a box from two corner points, taking the component-wise
// min/max so the caller doesn't need to know which corner is which.
func NewAABB(a, b Vec3) AABB {
	return AABB{
		Min: Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)},
		Max: Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)},
	}
}

// Subsume widens the box to also contain other, returning the result.
func (b AABB) Subsume(other AABB) AABB {
	return AABB{
		Min: Vec3{
			math.Min(b.Min.X, other.Min.X),
			math.Min(b.Min.Y, other.Min.Y),
			math.Min(b.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			math.Max(b.Max.X, other.Max.X),
			math.Max(b.Max.Y, other.Max.Y),
			math.Max(b.Max.Z, other.Max.Z),
		},
	}
}

// GetMin and GetMax exist alongside the Min/Max fields to mirror the
// original C++ accessor-method API that callers outside this package may
// expect to find named this way.
func (b AABB) GetMin() Vec3 { return b.Min }
func (b AABB) GetMax() Vec3 { return b.Max }

// Center returns the midpoint of the box, for callers that want a cheap
// representative point (e.g. as a BSP split-axis key on
// an infinite plane's finite axis).
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns Max - Min on each axis.
func (b AABB) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// Intersects runs the slab test: true iff the entry t of the far face is
// >= the exit t of the near face, and that exit t is >= 0. A direction
// component with |d| < parallelEpsilon is treated as parallel to that
// slab: the ray passes the test on that axis iff the origin already lies
// within [Min.c, Max.c].
func (b AABB) Intersects(r Ray) bool {
	tMin, tMax := math.Inf(-1), math.Inf(1)

	axes := [3]struct{ o, d, lo, hi float64 }{
		{r.Origin.X, r.Direction.X, b.Min.X, b.Max.X},
		{r.Origin.Y, r.Direction.Y, b.Min.Y, b.Max.Y},
		{r.Origin.Z, r.Direction.Z, b.Min.Z, b.Max.Z},
	}
	for _, a := range axes {
		if math.Abs(a.d) < parallelEpsilon {
			if a.o < a.lo || a.o > a.hi {
				return false
			}
			continue
		}
		invD := 1.0 / a.d
		t0 := (a.lo - a.o) * invD
		t1 := (a.hi - a.o) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return false
		}
	}
	return tMax >= 0
}
