package mesh

import (
	"brushkit/internal/core/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// Accumulator is one texture's worth of triangle-mesh data, ready for direct
// GPU vertex/index buffer upload (spec.md §4.E, §6 "Output").
type Accumulator struct {
	Texture   texture.ID
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Tangents  []mgl32.Vec4
	UVs       []mgl32.Vec2

	// Indices enumerates triangles by three 16-bit indices per spec.md §6,
	// matching the original's (unsigned short) index casts. A single brush's
	// face count never comes close to the 65536-vertex ceiling this implies
	// per accumulator; a map with a texture spanning more vertices than that
	// would need widening, which is not a scale this demo targets.
	Indices []uint16
}

// VertexCount returns the number of vertices accumulated so far, used as the
// base-vertex offset for a face about to be appended.
func (a *Accumulator) VertexCount() int {
	return len(a.Positions)
}

// AddVertex appends one vertex's attributes.
func (a *Accumulator) AddVertex(position, normal mgl32.Vec3, tangent mgl32.Vec4, uv mgl32.Vec2) {
	a.Positions = append(a.Positions, position)
	a.Normals = append(a.Normals, normal)
	a.Tangents = append(a.Tangents, tangent)
	a.UVs = append(a.UVs, uv)
}

// AddTriangle appends one triangle's vertex indices.
func (a *Accumulator) AddTriangle(i0, i1, i2 int) {
	a.Indices = append(a.Indices, uint16(i0), uint16(i1), uint16(i2))
}

// VertexStride is the number of float32s per vertex in Interleaved's output:
// position (3) + normal (3) + tangent (4) + uv (2).
const VertexStride = 12

// Interleaved packs every vertex attribute into one flat buffer in
// position/normal/tangent/uv order, matching spec.md §6's "direct upload to
// a GPU vertex/index buffer."
func (a *Accumulator) Interleaved() []float32 {
	out := make([]float32, 0, len(a.Positions)*VertexStride)
	for i := range a.Positions {
		p, n, t, uv := a.Positions[i], a.Normals[i], a.Tangents[i], a.UVs[i]
		out = append(out,
			p.X(), p.Y(), p.Z(),
			n.X(), n.Y(), n.Z(),
			t.X(), t.Y(), t.Z(), t.W(),
			uv.X(), uv.Y(),
		)
	}
	return out
}

// Group maps texture identity to its accumulator, inserting one on first
// use. Grouping key equality is the interned texture.ID (an integer
// comparison), per spec.md §4.E's "hash once at parse time and compare
// integers."
type Group struct {
	byTexture map[texture.ID]*Accumulator
	order     []texture.ID
}

// NewGroup returns an empty Group.
func NewGroup() *Group {
	return &Group{byTexture: make(map[texture.ID]*Accumulator)}
}

// Accumulator returns the accumulator for id, creating it (and recording
// first-seen order) if this is the first face using that texture.
func (g *Group) Accumulator(id texture.ID) *Accumulator {
	if acc, ok := g.byTexture[id]; ok {
		return acc
	}
	acc := &Accumulator{Texture: id}
	g.byTexture[id] = acc
	g.order = append(g.order, id)
	return acc
}

// Meshes returns the accumulated per-texture meshes in first-seen order,
// excluding any accumulator that ended up with no vertices (a texture
// referenced by a face line whose brush contributed no visible geometry).
func (g *Group) Meshes() []*Accumulator {
	meshes := make([]*Accumulator, 0, len(g.order))
	for _, id := range g.order {
		acc := g.byTexture[id]
		if len(acc.Positions) == 0 {
			continue
		}
		meshes = append(meshes, acc)
	}
	return meshes
}
