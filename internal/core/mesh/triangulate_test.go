package mesh

import (
	"testing"

	"brushkit/internal/core/brep"
	"brushkit/internal/core/texture"

	"github.com/go-gl/mathgl/mgl32"
)

func cubeWithProjections() *brep.Store {
	s := brep.New()
	s.SeedCube(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	for i := range s.Faces {
		s.Faces[i].Data = &UVProjection{
			Texture: texture.ID(1),
			U:       mgl32.Vec3{1, 0, 0},
			V:       mgl32.Vec3{0, 1, 0},
			SU:      1, SV: 1,
		}
	}
	return s
}

func TestTriangulateFaceEmitsTriangleFan(t *testing.T) {
	s := cubeWithProjections()
	group := NewGroup()

	if emitted := TriangulateFace(s, 0, group, DefaultOptions()); !emitted {
		t.Fatal("expected TriangulateFace to report emitted geometry")
	}

	meshes := group.Meshes()
	if len(meshes) != 1 {
		t.Fatalf("expected one mesh group, got %d", len(meshes))
	}
	acc := meshes[0]
	if acc.VertexCount() != 4 {
		t.Fatalf("expected 4 vertices for a quad face, got %d", acc.VertexCount())
	}
	if len(acc.Indices) != 6 { // 2 triangles
		t.Fatalf("expected 6 indices (2 triangles), got %d", len(acc.Indices))
	}
}

func TestTriangulateFaceSkipsClippedFace(t *testing.T) {
	s := cubeWithProjections()
	s.Faces[0].Clipped = true
	group := NewGroup()

	if emitted := TriangulateFace(s, 0, group, DefaultOptions()); emitted {
		t.Fatal("a clipped face should not report emitted geometry")
	}
	if len(group.Meshes()) != 0 {
		t.Fatal("a clipped face should contribute no geometry")
	}
}

func TestTriangulateFaceSkipsFaceWithoutUVProjection(t *testing.T) {
	s := cubeWithProjections()
	s.Faces[0].Data = nil
	group := NewGroup()

	if emitted := TriangulateFace(s, 0, group, DefaultOptions()); emitted {
		t.Fatal("a face with no UVProjection should not report emitted geometry")
	}
	if len(group.Meshes()) != 0 {
		t.Fatal("a face with no UVProjection should contribute no geometry")
	}
}

func TestTriangulateFaceGroupsByTexture(t *testing.T) {
	s := cubeWithProjections()
	s.Faces[1].Data = &UVProjection{Texture: texture.ID(2), U: mgl32.Vec3{1, 0, 0}, V: mgl32.Vec3{0, 1, 0}, SU: 1, SV: 1}
	group := NewGroup()

	TriangulateFace(s, 0, group, DefaultOptions())
	TriangulateFace(s, 1, group, DefaultOptions())

	meshes := group.Meshes()
	if len(meshes) != 2 {
		t.Fatalf("expected two distinct texture groups, got %d", len(meshes))
	}
}

func TestTriangulateFaceSnapsPositionsWhenEnabled(t *testing.T) {
	s := brep.New()
	s.SeedCube(mgl32.Vec3{-1.4, -1.4, -1.4}, mgl32.Vec3{1.4, 1.4, 1.4})
	for i := range s.Faces {
		s.Faces[i].Data = &UVProjection{Texture: texture.ID(1), U: mgl32.Vec3{1, 0, 0}, V: mgl32.Vec3{0, 1, 0}, SU: 1, SV: 1}
	}
	group := NewGroup()
	opts := Options{SnapPositions: true, Winding: brep.WindingCCW}

	TriangulateFace(s, 0, group, opts)

	acc := group.Meshes()[0]
	for _, p := range acc.Positions {
		for _, c := range [3]float32{p.X(), p.Y(), p.Z()} {
			if c != float32(int(c)) {
				t.Errorf("position component %v was not snapped to an integer", c)
			}
		}
	}
}
