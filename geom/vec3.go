// Package geom implements the math kernel shared by every other package in
// the renderer: vectors, rays, axis-aligned bounding boxes, and affine
// transforms.
package geom

import (
	"fmt"
	"math"
)

// CompareEpsilon is the tolerance used for vector equality tests and for
// the reflection-ray self-intersection offset.
const CompareEpsilon = 1e-4

// Vec3 is an ordered triple of finite doubles. Values are immutable from the
// caller's perspective: every method returns a new Vec3 rather than
// mutating the receiver.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) String() string {
	return fmt.Sprintf("Vec3(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

// RGB constructs a Vec3 from normalized RGB values in [0.0, 1.0].
func RGB(r, g, b float64) Vec3 {
	return Vec3{X: r, Y: g, Z: b}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Mul multiplies two vectors component-wise.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div divides by s using a single reciprocal multiply.
func (v Vec3) Div(s float64) Vec3 {
	inv := 1.0 / s
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalize returns the zero vector when LengthSquared is exactly 0,
// otherwise one sqrt and a reciprocal-multiply scale.
func (v Vec3) Normalize() Vec3 {
	lenSq := v.LengthSquared()
	if lenSq == 0 {
		return Vec3{}
	}
	return v.Scale(1.0 / math.Sqrt(lenSq))
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Inverse returns the component-wise reciprocal.
func (v Vec3) Inverse() Vec3 {
	return Vec3{1.0 / v.X, 1.0 / v.Y, 1.0 / v.Z}
}

// Reflect reflects v about unit normal n: v - 2*(v.n)*n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

func (v Vec3) IsZero() bool {
	return v.X == 0.0 && v.Y == 0.0 && v.Z == 0.0
}

// Equal compares two vectors within CompareEpsilon on each axis.
func (v Vec3) Equal(o Vec3) bool {
	return math.Abs(v.X-o.X) < CompareEpsilon &&
		math.Abs(v.Y-o.Y) < CompareEpsilon &&
		math.Abs(v.Z-o.Z) < CompareEpsilon
}

// RGBA implements the image/color.Color interface so a Vec3 can be written
// directly into an image.Image.
func (v Vec3) RGBA() (r, g, b, a uint32) {
	const max = 0xffff
	return uint32(clamp01(v.X) * max), uint32(clamp01(v.Y) * max), uint32(clamp01(v.Z) * max), max
}

// Clamp returns v with each component clamped to [0, 1].
func (v Vec3) Clamp() Vec3 {
	return Vec3{clamp01(v.X), clamp01(v.Y), clamp01(v.Z)}
}

func clamp01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
