// The raytracer command renders a JSON scene description to a PNG file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/gorouter-labs/raybsp/camera"
	"github.com/gorouter-labs/raybsp/internal/gml"
	"github.com/gorouter-labs/raybsp/scene"
	"github.com/gorouter-labs/raybsp/sceneerr"
	"github.com/gorouter-labs/raybsp/sceneio"
)

var threads = flag.Int("threads", 0, "row-band worker count (0 = hardware parallelism, 1 = single-threaded)")

const (
	cannedWidth  = 1024
	cannedHeight = 768
)

func main() {
	flag.Parse()
	args := flag.Args()

	if len(args) == 0 {
		renderCanned()
		return
	}
	if len(args) != 2 {
		log.Fatal("usage: raytracer [-threads N] <scene.json> <output.png>")
	}

	inPath, outPath := args[0], args[1]

	img, err := render(inPath)
	if err != nil {
		if errors.Is(err, sceneerr.ErrInputNotFound) {
			log.Fatalf("%s: not found", inPath)
		}
		log.Fatal(err)
	}

	if err := writePNG(img, outPath); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s\n", outPath)
}

func render(inPath string) (*image.RGBA, error) {
	if strings.HasSuffix(inPath, ".gml") {
		return renderGMLFile(inPath)
	}

	doc, err := sceneio.LoadJSON(inPath)
	if err != nil {
		return nil, err
	}
	cam := camera.Default()
	cam.Position = doc.CameraPosition
	return camera.Render(doc.Scene, cam, camera.Options{
		WidthPx:  doc.Width,
		HeightPx: doc.Height,
		Threads:  *threads,
	}), nil
}

func renderGMLFile(path string) (*image.RGBA, error) {
	prog, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, sceneerr.ErrInputNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	tokens, err := gml.NewParser(string(prog)).Parse()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, sceneerr.ErrParse, err)
	}

	evalState := gml.NewEvalState()
	var rendered *image.RGBA
	evalState.Render = func(e *gml.EvalState, args *gml.RenderArgs) error {
		s, err := sceneio.FromGML(e, args)
		if err != nil {
			return err
		}
		width, height := args.Width, args.Height
		if width <= 0 {
			width = cannedWidth
		}
		if height <= 0 {
			height = cannedHeight
		}
		rendered = camera.Render(s, camera.Default(), camera.Options{WidthPx: width, HeightPx: height, Threads: *threads})
		return nil
	}

	if err := evalState.Eval(tokens); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, sceneerr.ErrParse, err)
	}
	if rendered == nil {
		return nil, fmt.Errorf("%s: %w: GML program did not call render", path, sceneerr.ErrParse)
	}
	return rendered, nil
}

func renderCanned() {
	img := camera.Render(scene.Canned(), camera.Default(), camera.Options{
		WidthPx:  cannedWidth,
		HeightPx: cannedHeight,
		Threads:  *threads,
	})
	const outPath = "canned.png"
	if err := writePNG(img, outPath); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s\n", outPath)
}

func writePNG(img *image.RGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", sceneerr.ErrOutputWrite, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("%w: %v", sceneerr.ErrOutputWrite, err)
	}
	return nil
}
