package mesh

import "brushkit/internal/core/brep"

// Options configures the triangulator. Both fields answer Open Questions
// spec.md §9 leaves to the implementation (SPEC_FULL.md §9).
type Options struct {
	// SnapPositions rounds every emitted position to the nearest integer
	// world unit, masking sub-voxel drift accumulated over many clips.
	// Off by default: the spec treats this as a policy choice, not a
	// mandated behavior.
	SnapPositions bool

	// Winding is the vertex-ring winding every triangulated face is
	// corrected to (spec.md §4.D).
	Winding brep.Winding
}

// DefaultOptions returns the zero-policy configuration: no snapping,
// counter-clockwise winding (the convention most GL pipelines expect for
// front faces).
func DefaultOptions() Options {
	return Options{
		SnapPositions: false,
		Winding:       brep.WindingCCW,
	}
}
