package main

import (
	"bytes"
	"embed"
	"errors"
	"image/png"
	"os"
	"os/exec"
	"path"
	"testing"

	"github.com/gorouter-labs/raybsp/internal/prim"
	"github.com/gorouter-labs/raybsp/sceneerr"
)

//go:embed testdata/scenes/*.json testdata/scenes/*.obj
var sceneFixtures embed.FS

//go:embed testdata/goldens/*.png
var goldenFixtures embed.FS

// rmseTolerance is the acceptance threshold for the golden-image
// scenarios: an independently computed reference render (see
// testdata/gen_goldens.py) must agree with this renderer's output to
// within this many 8-bit levels, root-mean-square, across every channel.
const rmseTolerance = 1.0

func TestRenderGoldenScenes(t *testing.T) {
	cases := []string{
		"iso-sphere-on-plane",
		"two-spheres-on-plane",
		"two-triangles-on-plane",
		"monkey-on-plane",
	}

	for _, name := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			scenePath := path.Join(dir, name+".json")
			extractFixtureAt(t, sceneFixtures, "testdata/scenes/"+name+".json", scenePath)
			if name == "monkey-on-plane" {
				// LoadJSON resolves "obj" relative to the scene file's
				// directory, so the referenced mesh must sit alongside
				// the extracted scene file.
				extractFixtureAt(t, sceneFixtures, "testdata/scenes/monkey.obj", path.Join(dir, "monkey.obj"))
			}

			got, err := render(scenePath)
			if err != nil {
				t.Fatalf("render(%q): %v", scenePath, err)
			}

			goldenBytes, err := goldenFixtures.ReadFile("testdata/goldens/" + name + ".png")
			if err != nil {
				t.Fatalf("reading golden: %v", err)
			}
			want, err := png.Decode(bytes.NewReader(goldenBytes))
			if err != nil {
				t.Fatalf("decoding golden: %v", err)
			}

			rmse, err := prim.RMSE(got, want)
			if err != nil {
				t.Fatalf("RMSE: %v", err)
			}
			if rmse >= rmseTolerance {
				t.Errorf("RMSE = %.4f, want < %.4f", rmse, rmseTolerance)
			}
		})
	}
}

func TestRenderEmptyScene(t *testing.T) {
	scenePath := path.Join(t.TempDir(), "empty.json")
	extractFixtureAt(t, sceneFixtures, "testdata/scenes/empty.json", scenePath)

	img, err := render(scenePath)
	if err != nil {
		t.Fatalf("render(%q): %v", scenePath, err)
	}

	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	black := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r == 0 && g == 0 && b == 0 {
				black++
			}
		}
	}
	if frac := float64(black) / float64(total); frac < 0.90 {
		t.Errorf("black pixel fraction = %.4f, want >= 0.90", frac)
	}
}

func TestRenderMissingScene(t *testing.T) {
	_, err := render("testdata/scenes/nonexistent.json")
	if err == nil {
		t.Fatal("render of a nonexistent scene file succeeded, want error")
	}
	if !errors.Is(err, sceneerr.ErrInputNotFound) {
		t.Errorf("error = %v, want wrapping sceneerr.ErrInputNotFound", err)
	}
}

// TestMissingSceneCLIExitCode exercises the actual command-line surface:
// a nonexistent scene file should make the binary exit non-zero and
// leave no output file behind.
func TestMissingSceneCLIExitCode(t *testing.T) {
	outPath := path.Join(t.TempDir(), "out.png")

	cmd := exec.Command("go", "run", ".", "testdata/scenes/nonexistent.json", outPath)
	err := cmd.Run()
	if err == nil {
		t.Fatal("command succeeded, want non-zero exit code")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *exec.ExitError", err)
	}
	if exitErr.ExitCode() == 0 {
		t.Errorf("exit code = 0, want non-zero")
	}

	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Errorf("output file %s was created, want none", outPath)
	}
}

// extractFixtureAt writes an embedded fixture out to dst (so LoadJSON,
// which resolves scene and mesh paths via os.ReadFile, can see it as a
// regular file).
func extractFixtureAt(t *testing.T, fs embed.FS, name, dst string) {
	t.Helper()
	data, err := fs.ReadFile(name)
	if err != nil {
		t.Fatalf("reading embedded fixture %s: %v", name, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		t.Fatalf("writing fixture to %s: %v", dst, err)
	}
}
