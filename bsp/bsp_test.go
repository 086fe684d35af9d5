package bsp

import (
	"testing"

	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/primitive"
)

func sphereAt(x, y, z float64) *primitive.Primitive {
	s := &primitive.Sphere{
		Transform: geom.Transform{Position: geom.Vec3{X: x, Y: y, Z: z}, Scale: geom.Vec3{X: 1, Y: 1, Z: 1}},
		Radius:    0.5,
	}
	s.ApplyTransform()
	return &primitive.Primitive{Sphere: s}
}

func TestBuildIsAPartitionOfTheInput(t *testing.T) {
	var objects []*primitive.Primitive
	for i := 0; i < 50; i++ {
		objects = append(objects, sphereAt(float64(i), 0, 0))
	}
	root := Build(objects)

	seen := map[*primitive.Primitive]int{}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			for _, obj := range n.objects {
				seen[obj]++
			}
			return
		}
		walk(n.left)
		walk(n.right)
	}
	walk(root)

	if len(seen) != len(objects) {
		t.Fatalf("tree contains %d distinct objects, want %d", len(seen), len(objects))
	}
	for obj, count := range seen {
		if count != 1 {
			t.Errorf("object %v appears in %d leaves, want exactly 1", obj, count)
		}
	}
}

func TestFindIntersectionsMissesEmptyRegion(t *testing.T) {
	var objects []*primitive.Primitive
	for i := 0; i < 20; i++ {
		objects = append(objects, sphereAt(float64(i)*10, 0, 0))
	}
	root := Build(objects)

	ray := geom.NewRay(geom.Vec3{X: 0, Y: 1000, Z: 0}, geom.Vec3{X: 0, Y: 1, Z: 0})
	got := root.FindIntersections(ray, nil)
	if len(got) != 0 {
		t.Errorf("FindIntersections() returned %d candidates for a ray far from every object, want 0", len(got))
	}
}

func TestFindIntersectionsHitsCandidateNearRay(t *testing.T) {
	var objects []*primitive.Primitive
	for i := 0; i < 20; i++ {
		objects = append(objects, sphereAt(float64(i)*10, 0, 0))
	}
	root := Build(objects)

	target := objects[7]
	ray := geom.NewRay(geom.Vec3{X: 70, Y: 0, Z: -10}, geom.Vec3{X: 0, Y: 0, Z: 1})
	got := root.FindIntersections(ray, nil)
	found := false
	for _, obj := range got {
		if obj == target {
			found = true
		}
	}
	if !found {
		t.Errorf("FindIntersections() did not return the object the ray passes through")
	}
}

func TestSmallInputIsALeaf(t *testing.T) {
	objects := []*primitive.Primitive{sphereAt(0, 0, 0), sphereAt(1, 0, 0)}
	root := Build(objects)
	if !root.IsLeaf() {
		t.Errorf("IsLeaf() = false, want true for an input at or below MaxLeafObjects")
	}
}
