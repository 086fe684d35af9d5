package sceneio

import (
	"fmt"
	"math"

	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/material"
	"github.com/gorouter-labs/raybsp/primitive"
	"github.com/gorouter-labs/raybsp/scene"
	"github.com/gorouter-labs/raybsp/sceneerr"

	"github.com/gorouter-labs/raybsp/internal/gml"
)

// FromGML converts a GML render call's arguments into the same
// scene.Scene a JSON scene file would produce, so the legacy GML
// front-end feeds the one renderer instead of a parallel implementation.
//
// GML's surface functions compute a color and Kd/Ks/shininess triple
// per hit point (see evaluator.go's computeSphereSurface-equivalent
// surface-call convention: push face/u/v, apply the closure, pop
// kd/ks/n and a color). material.Material has no hook for a per-point
// procedural surface, so each sphere's surface function is sampled once,
// at a representative point on its equator (u=0.25, v=0.5), to produce
// one static Material. A surface function whose result varies with
// face/u/v is therefore rendered with the color and coefficients it
// returns at that single sample point.
func FromGML(e *gml.EvalState, args *gml.RenderArgs) (*scene.Scene, error) {
	objects, err := convertSceneObjects(e, []gml.SceneObject{args.Scene})
	if err != nil {
		return nil, fmt.Errorf("sceneio: gml: %w: %v", sceneerr.ErrParse, err)
	}

	lights := make([]material.Light, 0, len(args.Lights))
	for _, l := range args.Lights {
		lights = append(lights, material.Light{
			Position:  pointToVec(l.Position),
			Color:     pointToVec(l.Color),
			Intensity: 1,
		})
	}

	ambient := geom.Vec3{}
	if args.AmbientLight != nil {
		ambient = pointToVec(*args.AmbientLight)
	}

	depth := args.Depth
	if depth <= 0 {
		depth = defaultReflections
	}

	return &scene.Scene{
		Objects:      objects,
		Lights:       lights,
		Ambient:      ambient,
		MaxCastCount: depth,
	}, nil
}

func convertSceneObjects(e *gml.EvalState, pending []gml.SceneObject) ([]*primitive.Primitive, error) {
	var result []*primitive.Primitive
	for len(pending) > 0 {
		obj := pending[0]
		pending = pending[1:]

		switch typed := obj.(type) {
		case *gml.Sphere:
			mat, err := sampleSurface(e, typed.SurfaceFn)
			if err != nil {
				return nil, err
			}
			result = append(result, &primitive.Primitive{Sphere: &primitive.Sphere{
				Transform: geom.Transform{
					Position: pointToVec(typed.Center),
					Scale:    geom.Vec3{X: 1, Y: 1, Z: 1},
				},
				Radius:   float64(typed.Radius),
				Material: mat,
			}})
		case *gml.Union:
			pending = append(pending, typed.Objects...)
		default:
			return nil, fmt.Errorf("unsupported GML scene object type %T", obj)
		}
	}
	return result, nil
}

// sampleSurface evaluates a GML sphere surface function once at u=0.25,
// v=0.5 (the sphere's equator, facing the camera by convention) and
// turns its (color, kd, ks, shininess) result into a static Material.
func sampleSurface(e *gml.EvalState, fn gml.VClosure) (*material.Material, error) {
	const u, v = 0.25, 0.5

	e.Push(gml.VInt(0))
	e.Push(gml.VReal(u))
	e.Push(gml.VReal(v))

	savedEnv := e.Env
	e.Env = fn.Env
	err := e.Eval(fn.Code)
	e.Env = savedEnv
	if err != nil {
		return nil, fmt.Errorf("evaluating surface function: %w", err)
	}

	kd, ks, n, err := gml.Pop3[gml.VReal](e)
	if err != nil {
		return nil, err
	}
	color, err := gml.PopValue[gml.Point](e)
	if err != nil {
		return nil, err
	}

	base := pointToVec(color)
	return &material.Material{
		CAmbient:  base.Scale(0.1),
		CDiffuse:  base.Scale(math.Max(0, float64(kd))),
		CSpecular: geom.RGB(1, 1, 1).Scale(math.Max(0, float64(ks))),
		Shininess: math.Max(1, float64(n)),
	}, nil
}

func pointToVec(p gml.Point) geom.Vec3 {
	return geom.Vec3{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}
