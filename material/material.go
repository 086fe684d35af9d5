// Package material implements local illumination (ambient + diffuse +
// specular) and the reflection coefficient consulted by the scene's
// recursive radiance evaluator.
//
// Grounded on the teacher's computeLighting in raytracer.go: the ambient
// term, the per-light diffuse-plus-Blinn-Phong-specular accumulation loop,
// and the shadow test are all carried over, generalized from a single
// Color/Kd/Ks pair to the three independent color channels spec.md's
// Material type names.
package material

import (
	"math"

	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/intersection"
)

// Light is an alias so callers of this package can write material.Light
// without reaching into intersection, even though the type is defined
// there to break the material/scene import cycle.
type Light = intersection.Light

// Material holds the local-shading parameters for a surface.
type Material struct {
	CAmbient  geom.Vec3
	CDiffuse  geom.Vec3
	CSpecular geom.Vec3
	Shininess float64

	// CReflection is the mirror reflection coefficient, in [0,1].
	CReflection float64
}

// shadowEpsilon offsets the shadow ray's origin off the surface so it
// doesn't immediately re-intersect the surface it was cast from.
const shadowEpsilon = 1e-4

// Render computes ambient + per-light diffuse + per-light specular
// shading at hit, casting a shadow ray toward each light with
// CullingBack.
func (m *Material) Render(ray, cameraRay geom.Ray, hit *intersection.Hit, occluder intersection.Occluder) geom.Vec3 {
	color := m.CAmbient.Mul(occluder.GlobalAmbient())

	for _, light := range occluder.SceneLights() {
		lightToHit := light.Position.Sub(hit.Position)
		distToLight := lightToHit.Length()
		lightDir := lightToHit.Normalize()

		if inShadow(hit, occluder, lightDir, distToLight) {
			continue
		}

		diff := math.Max(0, hit.Normal.Dot(lightDir))
		diffuse := m.CDiffuse.Mul(light.Color).Scale(diff * light.Intensity)

		h := hit.View.Add(lightDir).Normalize()
		specAngle := math.Max(0, hit.Normal.Dot(h))
		specular := m.CSpecular.Mul(light.Color).Scale(math.Pow(specAngle, m.Shininess) * light.Intensity)

		color = color.Add(diffuse).Add(specular)
	}

	return color
}

// inShadow casts a ray from the hit point toward the light and reports
// whether something occludes it before the light is reached.
func inShadow(hit *intersection.Hit, occluder intersection.Occluder, lightDir geom.Vec3, distToLight float64) bool {
	shadowOrigin := hit.Position.Add(hit.Normal.Scale(shadowEpsilon))
	shadowRay := geom.Ray{Origin: shadowOrigin, Direction: lightDir}
	shadowHit, ok := occluder.ClosestIntersection(shadowRay, intersection.CullingBack)
	if !ok {
		return false
	}
	return shadowHit.Distance < distToLight
}
