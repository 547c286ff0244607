package mesh

import (
	"testing"

	"brushkit/internal/core/texture"

	"github.com/go-gl/mathgl/mgl32"
)

func TestUVProjectionAppliesScaleAndOffset(t *testing.T) {
	proj := UVProjection{
		Texture: texture.Hash("tex/brick"),
		U:       mgl32.Vec3{1, 0, 0},
		V:       mgl32.Vec3{0, 1, 0},
		SU:      0.5, SV: 2,
		OU: 10, OV: -4,
	}

	got := proj.Project(mgl32.Vec3{4, 3, 0})
	want := mgl32.Vec2{4*0.5 + 10, 3*2 - 4}
	if got != want {
		t.Fatalf("Project() = %v, want %v", got, want)
	}
}

func TestGroupAccumulatorFirstSeenOrder(t *testing.T) {
	g := NewGroup()
	a := g.Accumulator(texture.ID(2))
	b := g.Accumulator(texture.ID(1))
	a.AddVertex(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec4{}, mgl32.Vec2{})
	b.AddVertex(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec4{}, mgl32.Vec2{})

	meshes := g.Meshes()
	if len(meshes) != 2 || meshes[0].Texture != texture.ID(2) || meshes[1].Texture != texture.ID(1) {
		t.Fatalf("Meshes() did not preserve first-seen order: %+v", meshes)
	}
}

func TestGroupMeshesExcludesEmptyAccumulators(t *testing.T) {
	g := NewGroup()
	g.Accumulator(texture.ID(1)) // never given any vertices
	if len(g.Meshes()) != 0 {
		t.Fatal("an accumulator with no vertices should be excluded from Meshes()")
	}
}

func TestAccumulatorInterleavedLayout(t *testing.T) {
	acc := &Accumulator{}
	acc.AddVertex(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0}, mgl32.Vec4{1, 0, 0, 0}, mgl32.Vec2{0.5, 0.25})

	out := acc.Interleaved()
	if len(out) != VertexStride {
		t.Fatalf("Interleaved() length = %d, want %d", len(out), VertexStride)
	}
	want := []float32{1, 2, 3, 0, 1, 0, 1, 0, 0, 0, 0.5, 0.25}
	for i, v := range want {
		if out[i] != v {
			t.Errorf("Interleaved()[%d] = %v, want %v", i, out[i], v)
		}
	}
}
