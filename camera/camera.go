// Package camera generates primary rays through a pinhole camera and
// parallelizes pixel computation into row bands.
//
// Pixel-to-world mapping and the recursion entry point are grounded on
// the teacher's Render in raytracer.go. Row-band parallel dispatch is new
// (the teacher's Render is single-threaded): the runtime.NumCPU()-sized
// worker pool and row-striping loop are grounded on
// dfc1ce20_PaBochka-go-raytracing__main.go.go's main(), and propagating a
// worker panic to the joining goroutine follows the channel-based
// fan-in/fan-out shape in internal/prim/ssim.go's SSIM.
package camera

import (
	"image"
	"runtime"
	"sync"

	"github.com/gorouter-labs/raybsp/geom"
	"github.com/gorouter-labs/raybsp/scene"
)

// defaultParallelism is the fallback worker count when the host doesn't
// report a usable value for runtime.NumCPU(), per spec.md §4.6.
const defaultParallelism = 4

// Options configures a render pass.
type Options struct {
	WidthPx, HeightPx int

	// Threads selects the row-band worker count. 0 or a negative value
	// resolves to runtime.NumCPU() (fallback defaultParallelism); 1
	// disables parallelism entirely, corresponding to the USE_THREADING=off
	// build switch in spec.md §6.
	Threads int
}

// Camera sits at a fixed eye position and looks down +Z through an image
// plane of width 1.0 one unit in front of the eye (z = 0 for the default
// eye).
type Camera struct {
	Position geom.Vec3
}

// Default returns the camera spec.md §4.6 describes: eye at (0, 0, -1).
func Default() Camera {
	return Camera{Position: geom.Vec3{X: 0, Y: 0, Z: -1}}
}

// Render calls scene.Prepare once, then dispatches row bands across
// opts.Threads workers (each owning disjoint rows, so no locking is
// needed on the output image), and blocks until every worker has
// returned.
func Render(s *scene.Scene, cam Camera, opts Options) *image.RGBA {
	s.Prepare()

	img := image.NewRGBA(image.Rect(0, 0, opts.WidthPx, opts.HeightPx))

	workers := resolveWorkerCount(opts.Threads)
	bands := rowBands(opts.HeightPx, workers)

	var wg sync.WaitGroup
	panics := make(chan any, len(bands))

	for _, band := range bands {
		wg.Add(1)
		go func(band rowBand) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panics <- r
				}
			}()
			renderRows(img, s, cam, opts, band)
		}(band)
	}
	wg.Wait()
	close(panics)

	if p, ok := <-panics; ok {
		panic(p)
	}

	return img
}

// resolveWorkerCount implements the USE_THREADING contract: opts.Threads
// == 1 forces a single worker; 0 or a negative value resolves to hardware
// parallelism with a fallback of defaultParallelism.
func resolveWorkerCount(threads int) int {
	if threads < 0 {
		threads = 0
	}
	if threads == 1 {
		return 1
	}
	if threads > 1 {
		return threads
	}
	n := runtime.NumCPU()
	if n <= 0 {
		n = defaultParallelism
	}
	return n
}

type rowBand struct {
	min, max int
}

// rowBands partitions [0, height) into n bands as evenly as possible; the
// first height%n bands get one extra row, per spec.md §4.6.
func rowBands(height, n int) []rowBand {
	if n <= 0 {
		n = 1
	}
	if n > height {
		n = height
	}
	if n == 0 {
		return nil
	}
	base := height / n
	extra := height % n

	bands := make([]rowBand, 0, n)
	row := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		bands = append(bands, rowBand{min: row, max: row + size})
		row += size
	}
	return bands
}

func renderRows(img *image.RGBA, s *scene.Scene, cam Camera, opts Options, band rowBand) {
	width, height := opts.WidthPx, opts.HeightPx
	aspect := float64(width) / float64(height)
	viewHeight := 1.0 / aspect

	for y := band.min; y < band.max; y++ {
		for x := 0; x < width; x++ {
			xCoord := -0.5 + (float64(x)+0.5)*(1.0/float64(width))
			yCoord := (viewHeight / 2) - (float64(y)+0.5)*(viewHeight/float64(height))

			// The image plane sits one unit in front of the eye along
			// +Z, so at the default eye position (0,0,-1) this target is
			// exactly (xCoord, yCoord, 0) as spec.md §4.6 describes.
			target := cam.Position.Add(geom.Vec3{X: xCoord, Y: yCoord, Z: 1})
			ray := geom.NewRay(cam.Position, target.Sub(cam.Position))

			color := s.Raycast(ray, ray, 0)
			img.Set(x, y, color.Clamp())
		}
	}
}
