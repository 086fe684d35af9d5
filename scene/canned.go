package scene

import (
	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/material"
	"github.com/gorouter-labs/raybsp/primitive"
)

// Canned builds a small fixed scene for quick manual smoke runs when no
// scene file is given on the command line — three spheres over a ground
// plane, lit by one point light. Adapted from the teacher's
// ExampleScene1 (examples.go): the glass/fuzzy/reflective-sphere trio is
// reshaped into cAmbient/cDiffuse/cSpecular/cReflection materials, and
// the oversized "ground sphere" is replaced with an actual Plane, now
// that one exists.
func Canned() *Scene {
	redSphere := &material.Material{
		CAmbient:    geom.RGB(0.1, 0.02, 0.02),
		CDiffuse:    geom.RGB(0.8, 0.2, 0.2),
		CSpecular:   geom.RGB(0.9, 0.9, 0.9),
		Shininess:   64,
		CReflection: 0.3,
	}
	blueSphere := &material.Material{
		CAmbient:  geom.RGB(0.02, 0.02, 0.1),
		CDiffuse:  geom.RGB(0.2, 0.2, 0.8),
		CSpecular: geom.RGB(0.4, 0.4, 0.4),
		Shininess: 16,
	}
	greenSphere := &material.Material{
		CAmbient:    geom.RGB(0.02, 0.1, 0.02),
		CDiffuse:    geom.RGB(0.2, 0.8, 0.2),
		CSpecular:   geom.RGB(0.7, 0.7, 0.7),
		Shininess:   32,
		CReflection: 0.8,
	}
	ground := &material.Material{
		CAmbient: geom.RGB(0.08, 0.08, 0.08),
		CDiffuse: geom.RGB(0.8, 0.8, 0.8),
	}

	return &Scene{
		Objects: []*primitive.Primitive{
			{Sphere: &primitive.Sphere{
				Transform: geom.Transform{Position: geom.Vec3{X: 0, Y: 0, Z: -5}, Scale: geom.Vec3{X: 1, Y: 1, Z: 1}},
				Radius:    1.0,
				Material:  redSphere,
			}},
			{Sphere: &primitive.Sphere{
				Transform: geom.Transform{Position: geom.Vec3{X: 2, Y: 0, Z: -8}, Scale: geom.Vec3{X: 1, Y: 1, Z: 1}},
				Radius:    1.0,
				Material:  blueSphere,
			}},
			{Sphere: &primitive.Sphere{
				Transform: geom.Transform{Position: geom.Vec3{X: -2, Y: 0, Z: -6}, Scale: geom.Vec3{X: 1, Y: 1, Z: 1}},
				Radius:    1.0,
				Material:  greenSphere,
			}},
			{Plane: &primitive.Plane{
				Transform: geom.Identity(),
				Point:     geom.Vec3{X: 0, Y: -1, Z: 0},
				Normal:    geom.Vec3{X: 0, Y: 1, Z: 0},
				Material:  ground,
			}},
		},
		Lights: []material.Light{
			{Position: geom.Vec3{X: 5, Y: 5, Z: 0}, Color: geom.RGB(1, 1, 1), Intensity: 1},
		},
		Ambient:      geom.RGB(0.05, 0.05, 0.05),
		MaxCastCount: 5,
	}
}
