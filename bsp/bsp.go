// Package bsp implements the BSP-AABB tree: a binary spatial index over
// scene primitives that accelerates ray-candidate queries.
//
// Grounded directly on original_source/src/rayscene/BSPNode.cpp and
// BSPTree.cpp. The original contains two conflicting chooseSplitAxis
// implementations in different copies of BSPNode.cpp — one a data-driven
// longest-extent rule, one a `static` round-robin counter. Per spec.md
// §9's explicit resolution of this Open Question, this package implements
// only the longest-extent rule; the round-robin counter is not carried
// over (see DESIGN.md).
package bsp

import (
	"sort"

	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/primitive"
)

// MaxDepth bounds tree depth to prevent runaway recursion.
const MaxDepth = 20

// MaxLeafObjects is the object count at or below which a node becomes a
// leaf rather than splitting further.
const MaxLeafObjects = 4

// Node is a single node of the tree: either an internal node owning
// exactly two children, or a leaf owning a slice of primitive references.
type Node struct {
	boundingBox geom.AABB
	leaf        bool
	objects     []*primitive.Primitive
	left, right *Node
}

// Build constructs a tree from a flat slice of primitive references.
// Depth starts at 0.
func Build(objects []*primitive.Primitive) *Node {
	return build(objects, 0)
}

func build(objects []*primitive.Primitive, depth int) *Node {
	n := &Node{boundingBox: boundsOf(objects)}

	if len(objects) <= MaxLeafObjects || depth >= MaxDepth {
		n.leaf = true
		n.objects = objects
		return n
	}

	axis := chooseSplitAxis(n.boundingBox)
	left, right := partition(objects, axis)

	if len(left) == 0 || len(right) == 0 {
		n.leaf = true
		n.objects = objects
		return n
	}

	n.left = build(left, depth+1)
	n.right = build(right, depth+1)
	return n
}

func boundsOf(objects []*primitive.Primitive) geom.AABB {
	box := geom.EmptyAABB()
	for _, obj := range objects {
		box = box.Subsume(obj.BoundingBox())
	}
	return box
}

// chooseSplitAxis picks the axis with the largest extent on box, breaking
// ties X > Y > Z.
func chooseSplitAxis(box geom.AABB) int {
	extent := box.Extent()
	axis := 0
	largest := extent.X
	if extent.Y > largest {
		axis = 1
		largest = extent.Y
	}
	if extent.Z > largest {
		axis = 2
	}
	return axis
}

func axisValue(v geom.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// partition splits objects by the median of their centers on axis:
// centers strictly below the median go left, the rest go right.
func partition(objects []*primitive.Primitive, axis int) (left, right []*primitive.Primitive) {
	centers := make([]float64, len(objects))
	for i, obj := range objects {
		centers[i] = axisValue(obj.Center(), axis)
	}
	sorted := append([]float64(nil), centers...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]

	for i, obj := range objects {
		if centers[i] < median {
			left = append(left, obj)
		} else {
			right = append(right, obj)
		}
	}
	return left, right
}

// FindIntersections appends every primitive reference stored in a leaf
// whose bounding box the ray might hit to out. It makes no promise about
// ordering and performs no early termination — callers test each
// candidate's own geometry and track the closest hit themselves.
func (n *Node) FindIntersections(r geom.Ray, out []*primitive.Primitive) []*primitive.Primitive {
	if n == nil || !n.boundingBox.Intersects(r) {
		return out
	}
	if n.leaf {
		return append(out, n.objects...)
	}
	out = n.left.FindIntersections(r, out)
	out = n.right.FindIntersections(r, out)
	return out
}

// BoundingBox returns the node's AABB, the subsume of every primitive
// bounding box beneath it.
func (n *Node) BoundingBox() geom.AABB {
	return n.boundingBox
}

// IsLeaf reports whether n is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.leaf
}
