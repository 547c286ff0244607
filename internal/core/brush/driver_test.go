package brush

import (
	"errors"
	"testing"

	"brushkit/internal/core/errs"
	"brushkit/internal/core/mapfile"
	"brushkit/internal/core/mesh"
	"brushkit/internal/core/texture"

	"github.com/go-gl/mathgl/mgl32"
)

func cubeBrush(half float32) mapfile.Brush {
	face := func(p1, p2, p3, u, v mgl32.Vec3) mapfile.BrushFace {
		return mapfile.BrushFace{
			P1: p1, P2: p2, P3: p3,
			Texture: "dev/concrete",
			U:       u, OffsetU: 0,
			V: v, OffsetV: 0,
			ScaleU: 1, ScaleV: 1,
		}
	}
	h := half
	return mapfile.Brush{Faces: []mapfile.BrushFace{
		face(mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{-h, h, -h}, mgl32.Vec3{h, -h, -h}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}),   // bottom (z=-h, normal -Z... approx)
		face(mgl32.Vec3{-h, -h, h}, mgl32.Vec3{h, -h, h}, mgl32.Vec3{-h, h, h}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}),      // top
		face(mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{h, -h, -h}, mgl32.Vec3{-h, -h, h}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}),  // -Y
		face(mgl32.Vec3{-h, h, -h}, mgl32.Vec3{-h, h, h}, mgl32.Vec3{h, h, -h}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}),     // +Y
		face(mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{-h, -h, h}, mgl32.Vec3{-h, h, -h}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}),  // -X
		face(mgl32.Vec3{h, -h, -h}, mgl32.Vec3{h, h, -h}, mgl32.Vec3{h, -h, h}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}),     // +X
	}}
}

func TestBuildBrushProducesGeometry(t *testing.T) {
	registry := texture.NewRegistry()
	store, err := BuildBrush(cubeBrush(32), registry, DefaultOptions(), 0)
	if err != nil {
		t.Fatalf("BuildBrush returned error: %v", err)
	}

	nonClipped := 0
	for _, f := range store.Faces {
		if !f.Clipped {
			nonClipped++
		}
	}
	if nonClipped == 0 {
		t.Fatal("expected at least one non-clipped face from a well-formed cube brush")
	}
}

func TestBuildBrushEmptyAfterClipIsEmptyPolytope(t *testing.T) {
	// A single face plane at x = -2^20 keeps only x <= -2^20, beyond the
	// seed cube's -X side, so every vertex is clipped away: spec.md §8 scenario 3 and
	// §4.F's "empty intersection" wording both name this EmptyPolytope.
	far := float32(1 << 20)
	b := mapfile.Brush{Faces: []mapfile.BrushFace{{
		P1: mgl32.Vec3{-far, 0, 0}, P2: mgl32.Vec3{-far, 1, 0}, P3: mgl32.Vec3{-far, 0, 1},
		Texture: "dev/concrete",
		U:       mgl32.Vec3{1, 0, 0}, V: mgl32.Vec3{0, 1, 0},
		ScaleU: 1, ScaleV: 1,
	}}}

	registry := texture.NewRegistry()
	_, err := BuildBrush(b, registry, DefaultOptions(), 0)
	if err == nil {
		t.Fatal("expected an EmptyPolytope error for a brush clipped away entirely")
	}
	var e *errs.Error
	if !errors.As(err, &e) || e.Kind != errs.EmptyPolytope {
		t.Fatalf("expected EmptyPolytope, got %v", err)
	}
}

func TestBuildEntityCollectsErrorsButReturnsBestEffortGroup(t *testing.T) {
	far := float32(1 << 20)
	clippedAway := mapfile.Brush{Faces: []mapfile.BrushFace{{
		P1: mgl32.Vec3{-far, 0, 0}, P2: mgl32.Vec3{-far, 1, 0}, P3: mgl32.Vec3{-far, 0, 1},
		Texture: "dev/concrete",
		U:       mgl32.Vec3{1, 0, 0}, V: mgl32.Vec3{0, 1, 0},
		ScaleU: 1, ScaleV: 1,
	}}}

	registry := texture.NewRegistry()
	entity := mapfile.Entity{
		ClassName: "worldspawn",
		Brushes: []mapfile.Brush{
			cubeBrush(32),
			clippedAway,
		},
	}

	group, buildErrors := BuildEntity(entity, registry, DefaultOptions(), mesh.DefaultOptions())
	if len(buildErrors) == 0 {
		t.Fatal("expected at least one error from the fully-clipped second brush")
	}
	if len(group.Meshes()) == 0 {
		t.Fatal("expected the well-formed first brush to still contribute geometry")
	}
}

func TestBuildEntityReportsEmptyPolytopeWhenNoFaceTriangulates(t *testing.T) {
	// A brush with no face lines leaves all six seed-cube faces non-clipped
	// but with nil Data, so every survivor skips triangulation, exercising
	// BuildEntity's last-resort EmptyPolytope check on a brush that
	// BuildBrush itself considered well-formed.
	registry := texture.NewRegistry()
	if _, err := BuildBrush(mapfile.Brush{}, registry, DefaultOptions(), 0); err != nil {
		t.Fatalf("BuildBrush returned error: %v", err)
	}

	entity := mapfile.Entity{ClassName: "worldspawn", Brushes: []mapfile.Brush{{}}}
	group, buildErrors := BuildEntity(entity, registry, DefaultOptions(), mesh.DefaultOptions())
	if len(group.Meshes()) != 0 {
		t.Fatal("expected no face to triangulate when every Data is nil")
	}
	var e *errs.Error
	if len(buildErrors) != 1 || !errors.As(buildErrors[0], &e) || e.Kind != errs.EmptyPolytope {
		t.Fatalf("expected one EmptyPolytope error from BuildEntity, got %v", buildErrors)
	}
}

func TestCoordinateSwapExchangesYAndZ(t *testing.T) {
	opts := Options{CoordinateSwap: true}
	got := opts.swap(mgl32.Vec3{1, 2, 3})
	want := mgl32.Vec3{1, 3, 2}
	if got != want {
		t.Fatalf("swap() = %v, want %v", got, want)
	}
}

func TestCoordinateSwapOffIsIdentity(t *testing.T) {
	opts := Options{CoordinateSwap: false}
	got := opts.swap(mgl32.Vec3{1, 2, 3})
	if got != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("swap() with CoordinateSwap off should be identity, got %v", got)
	}
}
