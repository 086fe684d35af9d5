// Package intersection defines the hit record produced by primitive
// intersection tests and the narrow interfaces that let the material and
// scene packages collaborate without an import cycle between them:
// material.Material implements Shader, and scene.Scene implements
// Occluder.
package intersection

import "github.com/gorouter-labs/raybsp/geom"

// Culling selects which surface orientation is hit-eligible.
type Culling int

const (
	// CullingFront accepts only front-facing surfaces: the ray entering
	// from outside an object, or striking the side of a plane/triangle
	// its normal points toward.
	CullingFront Culling = iota
	// CullingBack accepts only back-facing surfaces: the ray exiting an
	// object from inside, or striking the side facing away from the
	// normal. Used for shadow rays cast toward a light.
	CullingBack
)

// PlaneAxisEpsilon is the sidedness-test tolerance Plane and Triangle
// apply to dot(ray.Direction, normal) when culling, per spec.md §4.2/§6.
const PlaneAxisEpsilon = 1e-6

// Hit carries everything the shading and reflection logic needs about a
// ray/primitive intersection.
type Hit struct {
	// Position is the world-space point where the ray struck the surface.
	Position geom.Vec3
	// Normal is a unit vector, oriented away from the surface on the side
	// facing the ray's origin for spheres, and the geometric normal for
	// planes and triangles.
	Normal geom.Vec3
	// Distance is ||Position - ray.Origin||, filled in by the caller once
	// the closest candidate hit is known.
	Distance float64
	// View is a unit vector from Position back toward the camera ray's
	// origin.
	View geom.Vec3
	// Mat is the material of the struck surface.
	Mat Shader
}

// Light is a point light source: position, color, and intensity.
// Defined here rather than in package material so that Occluder can expose
// the scene's lights without material importing scene (which itself must
// import material to store Material values on its primitives).
type Light struct {
	Position  geom.Vec3
	Color     geom.Vec3
	Intensity float64
}

// Occluder answers closest-hit queries and exposes ambient scene state.
// scene.Scene implements this so material.Material can shade and cast
// shadow rays without the material package importing scene.
type Occluder interface {
	ClosestIntersection(r geom.Ray, culling Culling) (Hit, bool)
	SceneLights() []Light
	GlobalAmbient() geom.Vec3
}

// Shader computes local illumination at a hit point. material.Material
// implements this.
type Shader interface {
	Render(ray, cameraRay geom.Ray, hit *Hit, occluder Occluder) geom.Vec3
}
