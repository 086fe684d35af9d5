// Package sceneerr defines the error kinds surfaced at the CLI boundary:
// a missing/unreadable scene file, a malformed scene description, a
// degenerate-geometry input, and an output write failure. The renderer
// packages (geom, primitive, bsp, scene, camera) never return errors —
// numerical edge cases resolve to "no hit" instead, per spec.md §7.
//
// Grounded on the teacher's fmt.Errorf("...: %w", err) wrapping idiom,
// used throughout raytracer.go's ParseAndRenderGML and
// internal/gml/evaluator.go.
package sceneerr

import "errors"

var (
	// ErrInputNotFound indicates the scene file is missing or unreadable.
	ErrInputNotFound = errors.New("scene file not found")
	// ErrParse indicates malformed JSON or a reference to an undefined
	// material.
	ErrParse = errors.New("scene parse error")
	// ErrGeometry indicates a degenerate primitive (zero-area triangle,
	// zero-radius sphere) or a non-unit normal. Per spec.md §7 this is
	// surfaced to the caller wrapped in ErrParse unless the loader can
	// silently repair it (a non-zero, non-unit normal is normalized on
	// ingest rather than rejected).
	ErrGeometry = errors.New("degenerate geometry")
	// ErrOutputWrite indicates PNG encoding or file-write failure.
	ErrOutputWrite = errors.New("output write error")
	// ErrInternal indicates an invariant violation in tree build or
	// shading — a bug in this program, not a bad input.
	ErrInternal = errors.New("internal error")
)
