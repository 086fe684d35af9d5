// Package sceneio loads scene.Scene values from external descriptions:
// the JSON scene format of spec.md §6, Wavefront OBJ meshes referenced
// from it, and the legacy GML scene-description language the teacher
// shipped an interpreter for.
//
// No third-party JSON library is wired in here — none of the retrieved
// example repos imports one for a scene/config file this shape, so
// encoding/json is used directly (see SPEC_FULL.md's ambient-stack
// rationale).
package sceneio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/material"
	"github.com/gorouter-labs/raybsp/primitive"
	"github.com/gorouter-labs/raybsp/scene"
	"github.com/gorouter-labs/raybsp/sceneerr"
)

// defaultReflections is the camera.reflections fallback per spec.md §6.
const defaultReflections = 5

type sceneFile struct {
	Camera struct {
		Position    *[3]float64 `json:"position"`
		Reflections *int        `json:"reflections"`
	} `json:"camera"`
	Image struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"image"`
	GlobalAmbient [3]float64              `json:"globalAmbient"`
	Lights        []lightSpec             `json:"lights"`
	Materials     map[string]materialSpec `json:"materials"`
	Objects       []objectSpec            `json:"objects"`
}

type lightSpec struct {
	Position  [3]float64 `json:"position"`
	Color     [3]float64 `json:"color"`
	Intensity float64    `json:"intensity"`
}

type materialSpec struct {
	Ambient    [3]float64 `json:"ambient"`
	Diffuse    [3]float64 `json:"diffuse"`
	Specular   [3]float64 `json:"specular"`
	Shininess  float64    `json:"shininess"`
	Reflection float64    `json:"reflection"`
}

type transformSpec struct {
	Position [3]float64  `json:"position"`
	Rotation [3]float64  `json:"rotation"`
	Scale    *[3]float64 `json:"scale"`
}

type objectSpec struct {
	Type      string        `json:"type"`
	Transform transformSpec `json:"transform"`
	Material  string        `json:"material"`

	Radius   float64      `json:"radius"`
	Normal   [3]float64   `json:"normal"`
	Point    [3]float64   `json:"point"`
	Vertices [][3]float64 `json:"vertices"`
	Obj      string       `json:"obj"`
}

// Document is the parsed result of a scene file: the scene itself, plus
// the image dimensions the camera should render at (these live outside
// scene.Scene, which knows nothing about pixels).
type Document struct {
	Scene          *scene.Scene
	CameraPosition geom.Vec3
	Width, Height  int
}

// LoadJSON reads and parses a scene.json file at path, resolving material
// references and loading any referenced OBJ meshes relative to path's
// directory.
func LoadJSON(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("sceneio: %s: %w", path, sceneerr.ErrInputNotFound)
		}
		return nil, fmt.Errorf("sceneio: read %s: %w", path, err)
	}

	var sf sceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("sceneio: parse %s: %v: %w", path, err, sceneerr.ErrParse)
	}

	materials := make(map[string]*material.Material, len(sf.Materials))
	for name, ms := range sf.Materials {
		materials[name] = &material.Material{
			CAmbient:    vecOf(ms.Ambient),
			CDiffuse:    vecOf(ms.Diffuse),
			CSpecular:   vecOf(ms.Specular),
			Shininess:   ms.Shininess,
			CReflection: ms.Reflection,
		}
	}

	objects := make([]*primitive.Primitive, 0, len(sf.Objects))
	for i, spec := range sf.Objects {
		mat, ok := materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("sceneio: object %d: material %q undefined: %w", i, spec.Material, sceneerr.ErrParse)
		}
		transform := transformOf(spec.Transform)

		switch spec.Type {
		case "sphere":
			if spec.Radius <= 0 {
				return nil, fmt.Errorf("sceneio: object %d: non-positive sphere radius: %w", i, sceneerr.ErrParse)
			}
			objects = append(objects, &primitive.Primitive{Sphere: &primitive.Sphere{
				Transform: transform,
				Radius:    spec.Radius,
				Material:  mat,
			}})
		case "plane":
			normal := vecOf(spec.Normal)
			if normal.IsZero() {
				return nil, fmt.Errorf("sceneio: object %d: zero plane normal: %w", i, sceneerr.ErrParse)
			}
			objects = append(objects, &primitive.Primitive{Plane: &primitive.Plane{
				Transform: transform,
				Point:     vecOf(spec.Point),
				Normal:    normal.Normalize(),
				Material:  mat,
			}})
		case "triangle":
			if len(spec.Vertices) != 3 {
				return nil, fmt.Errorf("sceneio: object %d: triangle needs exactly 3 vertices, got %d: %w", i, len(spec.Vertices), sceneerr.ErrParse)
			}
			a, b, c := vecOf(spec.Vertices[0]), vecOf(spec.Vertices[1]), vecOf(spec.Vertices[2])
			if b.Sub(a).Cross(c.Sub(a)).IsZero() {
				return nil, fmt.Errorf("sceneio: object %d: degenerate (zero-area) triangle: %w", i, sceneerr.ErrParse)
			}
			objects = append(objects, &primitive.Primitive{Triangle: &primitive.Triangle{
				Transform: transform,
				A:         a,
				B:         b,
				C:         c,
				Material:  mat,
			}})
		case "mesh":
			if spec.Obj == "" {
				return nil, fmt.Errorf("sceneio: object %d: mesh missing \"obj\" path: %w", i, sceneerr.ErrParse)
			}
			mesh, err := LoadOBJ(resolveRelative(path, spec.Obj), transform, mat)
			if err != nil {
				return nil, err
			}
			for _, tri := range mesh.Decompose() {
				objects = append(objects, &primitive.Primitive{Triangle: tri})
			}
		default:
			return nil, fmt.Errorf("sceneio: object %d: unknown type %q: %w", i, spec.Type, sceneerr.ErrParse)
		}
	}

	lights := make([]material.Light, 0, len(sf.Lights))
	for _, l := range sf.Lights {
		lights = append(lights, material.Light{
			Position:  vecOf(l.Position),
			Color:     vecOf(l.Color),
			Intensity: l.Intensity,
		})
	}

	reflections := defaultReflections
	if sf.Camera.Reflections != nil {
		reflections = *sf.Camera.Reflections
	}

	cameraPos := geom.Vec3{X: 0, Y: 0, Z: -1}
	if sf.Camera.Position != nil {
		cameraPos = vecOf(*sf.Camera.Position)
	}

	s := &scene.Scene{
		Objects:      objects,
		Lights:       lights,
		Ambient:      vecOf(sf.GlobalAmbient),
		MaxCastCount: reflections,
	}

	return &Document{
		Scene:          s,
		CameraPosition: cameraPos,
		Width:          sf.Image.Width,
		Height:         sf.Image.Height,
	}, nil
}

func vecOf(a [3]float64) geom.Vec3 {
	return geom.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

func transformOf(ts transformSpec) geom.Transform {
	scale := geom.Vec3{X: 1, Y: 1, Z: 1}
	if ts.Scale != nil {
		scale = vecOf(*ts.Scale)
	}
	return geom.Transform{
		Position: vecOf(ts.Position),
		Rotation: vecOf(ts.Rotation),
		Scale:    scale,
	}
}
