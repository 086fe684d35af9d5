package sceneio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/material"
	"github.com/gorouter-labs/raybsp/primitive"
	"github.com/gorouter-labs/raybsp/sceneerr"
)

// resolveRelative resolves objPath relative to the directory of the
// scene file at sceneFilePath, so scenes can reference meshes with a
// path relative to themselves rather than to the process's cwd.
func resolveRelative(sceneFilePath, objPath string) string {
	if filepath.IsAbs(objPath) {
		return objPath
	}
	return filepath.Join(filepath.Dir(sceneFilePath), objPath)
}

// LoadOBJ reads a Wavefront OBJ file's vertex ("v x y z") and face
// ("f a b c ...") records and returns a Mesh sharing transform and
// material across every face. Faces with more than three vertices are
// fan-triangulated around the first vertex, the conventional choice for
// a renderer with no notion of concave polygons.
func LoadOBJ(path string, transform geom.Transform, mat *material.Material) (*primitive.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("sceneio: mesh %s: %w", path, sceneerr.ErrInputNotFound)
		}
		return nil, fmt.Errorf("sceneio: mesh %s: %w", path, err)
	}
	defer f.Close()

	var vertices []geom.Vec3
	var faces [][3]geom.Vec3

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("sceneio: %s:%d: %v: %w", path, lineNo, err, sceneerr.ErrParse)
			}
			vertices = append(vertices, v)
		case "f":
			idx, err := parseFaceIndices(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("sceneio: %s:%d: %v: %w", path, lineNo, err, sceneerr.ErrParse)
			}
			for _, tri := range fanTriangulate(idx) {
				face, err := resolveFace(tri, vertices)
				if err != nil {
					return nil, fmt.Errorf("sceneio: %s:%d: %v: %w", path, lineNo, err, sceneerr.ErrParse)
				}
				faces = append(faces, face)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("sceneio: read %s: %w", path, err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("sceneio: %s has no faces: %w", path, sceneerr.ErrParse)
	}

	return &primitive.Mesh{
		Transform: transform,
		Faces:     faces,
		Material:  mat,
	}, nil
}

func parseVertex(fields []string) (geom.Vec3, error) {
	if len(fields) < 3 {
		return geom.Vec3{}, fmt.Errorf("vertex record needs 3 coordinates, got %d", len(fields))
	}
	coords := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geom.Vec3{}, fmt.Errorf("bad vertex coordinate %q: %v", fields[i], err)
		}
		coords[i] = v
	}
	return geom.Vec3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// parseFaceIndices parses "f" record fields, each of which may be a bare
// vertex index or the OBJ "v/vt/vn" slash-separated form. Only the
// vertex index is used.
func parseFaceIndices(fields []string) ([]int, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face record needs at least 3 vertices, got %d", len(fields))
	}
	idx := make([]int, len(fields))
	for i, field := range fields {
		vertexPart := field
		if slash := strings.IndexByte(field, '/'); slash >= 0 {
			vertexPart = field[:slash]
		}
		n, err := strconv.Atoi(vertexPart)
		if err != nil {
			return nil, fmt.Errorf("bad face vertex index %q: %v", field, err)
		}
		idx[i] = n
	}
	return idx, nil
}

// fanTriangulate splits an n-gon face into n-2 triangles, all sharing
// the polygon's first vertex.
func fanTriangulate(idx []int) [][3]int {
	tris := make([][3]int, 0, len(idx)-2)
	for i := 1; i < len(idx)-1; i++ {
		tris = append(tris, [3]int{idx[0], idx[i], idx[i+1]})
	}
	return tris
}

// resolveFace looks up a face's three 1-based (or negative, relative)
// OBJ vertex indices in the accumulated vertex list.
func resolveFace(idx [3]int, vertices []geom.Vec3) ([3]geom.Vec3, error) {
	var face [3]geom.Vec3
	for i, n := range idx {
		v, err := vertexAt(n, vertices)
		if err != nil {
			return face, err
		}
		face[i] = v
	}
	return face, nil
}

func vertexAt(n int, vertices []geom.Vec3) (geom.Vec3, error) {
	var i int
	switch {
	case n > 0:
		i = n - 1
	case n < 0:
		i = len(vertices) + n
	default:
		return geom.Vec3{}, fmt.Errorf("vertex index 0 is invalid in OBJ (1-based)")
	}
	if i < 0 || i >= len(vertices) {
		return geom.Vec3{}, fmt.Errorf("vertex index %d out of range (have %d vertices)", n, len(vertices))
	}
	return vertices[i], nil
}
