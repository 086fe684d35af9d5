package camera

import (
	"testing"

	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/material"
	"github.com/gorouter-labs/raybsp/primitive"
	"github.com/gorouter-labs/raybsp/scene"
)

func testScene() *scene.Scene {
	mat := &material.Material{CAmbient: geom.RGB(0.5, 0.5, 0.5), CDiffuse: geom.RGB(0.5, 0.1, 0.1)}
	s := &scene.Scene{
		Objects: []*primitive.Primitive{{Sphere: &primitive.Sphere{
			Transform: geom.Transform{Position: geom.Vec3{X: 0, Y: 0, Z: -5}, Scale: geom.Vec3{X: 1, Y: 1, Z: 1}},
			Radius:    1,
			Material:  mat,
		}}},
		Lights:       []material.Light{{Position: geom.Vec3{X: 5, Y: 5, Z: 0}, Color: geom.RGB(1, 1, 1), Intensity: 1}},
		Ambient:      geom.RGB(0.1, 0.1, 0.1),
		MaxCastCount: 3,
	}
	return s
}

func TestRowBandsCoverEveryRowExactlyOnce(t *testing.T) {
	bands := rowBands(101, 8)
	seen := make([]int, 101)
	for _, b := range bands {
		for r := b.min; r < b.max; r++ {
			seen[r]++
		}
	}
	for r, count := range seen {
		if count != 1 {
			t.Errorf("row %d covered %d times, want exactly 1", r, count)
		}
	}
}

func TestRowBandsFirstBandsGetExtraRow(t *testing.T) {
	bands := rowBands(10, 3)
	// 10 / 3 = 3 remainder 1: first band gets 4 rows, the rest 3.
	if got := bands[0].max - bands[0].min; got != 4 {
		t.Errorf("first band size = %d, want 4", got)
	}
	for i := 1; i < len(bands); i++ {
		if got := bands[i].max - bands[i].min; got != 3 {
			t.Errorf("band %d size = %d, want 3", i, got)
		}
	}
}

func TestRenderParallelMatchesSingleThreaded(t *testing.T) {
	opts := Options{WidthPx: 40, HeightPx: 30}

	single := Render(testScene(), Default(), Options{WidthPx: opts.WidthPx, HeightPx: opts.HeightPx, Threads: 1})
	parallel := Render(testScene(), Default(), Options{WidthPx: opts.WidthPx, HeightPx: opts.HeightPx, Threads: 8})

	if single.Bounds() != parallel.Bounds() {
		t.Fatalf("bounds mismatch: %v vs %v", single.Bounds(), parallel.Bounds())
	}
	for y := 0; y < opts.HeightPx; y++ {
		for x := 0; x < opts.WidthPx; x++ {
			sr, sg, sb, sa := single.At(x, y).RGBA()
			pr, pg, pb, pa := parallel.At(x, y).RGBA()
			if sr != pr || sg != pg || sb != pb || sa != pa {
				t.Fatalf("pixel (%d,%d) differs between single and parallel render: (%d,%d,%d,%d) vs (%d,%d,%d,%d)",
					x, y, sr, sg, sb, sa, pr, pg, pb, pa)
			}
		}
	}
}

func TestRenderProducesCorrectBounds(t *testing.T) {
	img := Render(testScene(), Default(), Options{WidthPx: 64, HeightPx: 48})
	want := 64 * 48
	if got := img.Bounds().Dx() * img.Bounds().Dy(); got != want {
		t.Errorf("image has %d pixels, want %d", got, want)
	}
}
