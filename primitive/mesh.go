package primitive

import (
	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/material"
)

// Mesh is a loader-side aggregate: an ordered sequence of object-space
// triangle vertices sharing one Transform and Material. It is never
// itself an intersection target — Decompose flattens it into individual
// Triangle primitives before the BSP tree is built, per spec.md §9 design
// note 3 ("The tree should see triangles, not meshes").
type Mesh struct {
	Transform geom.Transform
	// Faces is a flat list of object-space vertex triples, one per
	// triangle face.
	Faces    [][3]geom.Vec3
	Material *material.Material
}

// Decompose returns one Triangle per face, each carrying the mesh's
// shared Transform and Material.
func (m *Mesh) Decompose() []*Triangle {
	triangles := make([]*Triangle, 0, len(m.Faces))
	for _, face := range m.Faces {
		triangles = append(triangles, &Triangle{
			Transform: m.Transform,
			A:         face[0],
			B:         face[1],
			C:         face[2],
			Material:  m.Material,
		})
	}
	return triangles
}
