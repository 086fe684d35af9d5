package geom

import "fmt"

// Ray is a half-line starting at Origin and heading in Direction, which is
// always unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay normalizes dir at construction.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray(Origin: %v, Direction: %v)", r.Origin, r.Direction)
}
