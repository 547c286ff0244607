// Package brep implements the boundary-representation mesh store and the
// polytope clipper that builds it one half-space at a time (spec.md §3,
// §4.B, §4.C). Indices into the three pools are the only cross-references;
// nothing is ever deleted, only soft-marked "clipped" (spec.md §9).
package brep

import "github.com/go-gl/mathgl/mgl32"

// NoFace is the sentinel written into an Edge's face slot while it has no
// second incident face yet, or permanently for an edge that (transiently,
// mid-construction) borders only one face.
const NoFace = -1

// Vertex is a point in the polytope being built. distance is scratch state:
// it is only meaningful for the duration of a single Clip call, cached in
// the vertex pass and read back in the edge pass (spec.md §4.C step 1-2).
type Vertex struct {
	Position mgl32.Vec3
	Clipped  bool
	distance float32
}

// Edge is an ordered pair of vertex indices bounding exactly two faces.
// Both F0 and F1 are valid face indices once construction completes; NoFace
// only appears transiently while a new edge is being attached to its second
// face.
type Edge struct {
	V0, V1  int
	F0, F1  int
	Clipped bool
}

// Face is an unordered set of edge indices bounding one planar convex
// polygon, plus the plane normal and opaque per-face user data (UV
// projection parameters, texture identity — owned by package mesh).
type Face struct {
	Edges   []int
	Normal  mgl32.Vec3
	Data    any
	Clipped bool
}

// Store owns the three growable pools. Insertions never invalidate earlier
// indices; there is no deletion API, only the Clipped flags on Vertex,
// Edge, and Face.
type Store struct {
	Vertices []Vertex
	Edges    []Edge
	Faces    []Face

	// occursScratch is the face-closure pass's per-vertex occurrence
	// counter (spec.md §5's scratch arena, reset and reused across every
	// Clip call in a brush's clipping session rather than reallocated).
	occursScratch []int
}

// New returns an empty Store. Use SeedCube to populate it with the initial
// bounding polytope.
func New() *Store {
	return &Store{}
}

// AddVertex appends a new vertex at position and returns its index.
func (s *Store) AddVertex(position mgl32.Vec3) int {
	s.Vertices = append(s.Vertices, Vertex{Position: position})
	return len(s.Vertices) - 1
}

// AddEdge appends a new edge (v0, v1) with no incident faces yet (both
// slots NoFace) and returns its index. The caller attaches it to its one or
// two faces via Attach.
func (s *Store) AddEdge(v0, v1 int) int {
	s.Edges = append(s.Edges, Edge{V0: v0, V1: v1, F0: NoFace, F1: NoFace})
	return len(s.Edges) - 1
}

// AddFace appends a new face with the given normal and user data and an
// empty edge list, and returns its index.
func (s *Store) AddFace(normal mgl32.Vec3, data any) int {
	s.Faces = append(s.Faces, Face{Normal: normal, Data: data})
	return len(s.Faces) - 1
}

// Attach appends edge to face's edge list and writes face into the first
// free incidence slot (F0 then F1) of edge. It panics if both of edge's
// face slots are already occupied — spec.md §7's InvariantViolation
// condition, surfaced here as a programmer error because Attach is never
// called with a bad edge except from a bug in the clipper itself.
func (s *Store) Attach(face, edge int) {
	f := &s.Faces[face]
	f.Edges = append(f.Edges, edge)

	e := &s.Edges[edge]
	switch {
	case e.F0 == NoFace:
		e.F0 = face
	case e.F1 == NoFace:
		e.F1 = face
	default:
		panic("brep: Attach called on an edge that already has two incident faces")
	}
}

// Detach removes edge from face's edge list. If the list becomes empty,
// face is marked Clipped (spec.md §4.B).
func (s *Store) Detach(face, edge int) {
	f := &s.Faces[face]
	for i, e := range f.Edges {
		if e == edge {
			last := len(f.Edges) - 1
			f.Edges[i] = f.Edges[last]
			f.Edges = f.Edges[:last]
			break
		}
	}
	if len(f.Edges) == 0 {
		f.Clipped = true
	}
}

// SeedCube resets the store to the canonical 8-vertex/12-edge/6-face
// axis-aligned cube spanning [min, max], with each face's userdata left nil
// and normal pointing outward. The vertex/edge/face layout is copied
// numerically from pt_clip.h's ptc_init_bounds so adjacency is deterministic.
func (s *Store) SeedCube(min, max mgl32.Vec3) {
	s.Vertices = make([]Vertex, 0, 8)
	s.Edges = make([]Edge, 0, 12)
	s.Faces = make([]Face, 0, 6)

	addV := func(x, y, z float32) int { return s.AddVertex(mgl32.Vec3{x, y, z}) }
	v0 := addV(min.X(), min.Y(), min.Z()) // front bottom left
	v1 := addV(min.X(), max.Y(), min.Z()) // front top left
	v2 := addV(max.X(), max.Y(), min.Z()) // front top right
	v3 := addV(max.X(), min.Y(), min.Z()) // front bottom right
	v4 := addV(min.X(), min.Y(), max.Z()) // back bottom left
	v5 := addV(min.X(), max.Y(), max.Z()) // back top left
	v6 := addV(max.X(), max.Y(), max.Z()) // back top right
	v7 := addV(max.X(), min.Y(), max.Z()) // back bottom right
	_ = v0

	// Edge indices below are positional: e0 is s.Edges[0], etc. Each edge
	// names the two faces it bounds, assigned after the faces exist.
	type edgeSpec struct{ a, b int }
	specs := []edgeSpec{
		{v0, v3}, // 0 front-bottom
		{v1, v2}, // 1 front-top
		{v0, v1}, // 2 front-left
		{v2, v3}, // 3 front-right
		{v4, v7}, // 4 back-bottom
		{v5, v6}, // 5 back-top
		{v4, v5}, // 6 back-left
		{v6, v7}, // 7 back-right
		{v0, v4}, // 8 side-bottom-left
		{v1, v5}, // 9 side-top-left
		{v3, v7}, // 10 side-bottom-right
		{v2, v6}, // 11 side-top-right
	}
	for _, e := range specs {
		s.AddEdge(e.a, e.b)
	}

	front := s.AddFace(mgl32.Vec3{0, 0, -1}, nil)
	back := s.AddFace(mgl32.Vec3{0, 0, 1}, nil)
	left := s.AddFace(mgl32.Vec3{-1, 0, 0}, nil)
	right := s.AddFace(mgl32.Vec3{1, 0, 0}, nil)
	top := s.AddFace(mgl32.Vec3{0, 1, 0}, nil)
	bottom := s.AddFace(mgl32.Vec3{0, -1, 0}, nil)

	// Reset the edge list built implicitly by AddFace (empty) and rebuild
	// it via Attach so F0/F1 incidence is filled in consistently with the
	// canonical layout (pt_clip.h's ptc__init_face/ptc__init_edge assign
	// both at once; Attach gets us the same result through the store's own
	// public API).
	faceEdges := [6][4]int{
		{0, 1, 2, 3},   // front
		{4, 5, 6, 7},   // back
		{2, 6, 8, 9},   // left
		{3, 7, 10, 11}, // right
		{1, 5, 9, 11},  // top
		{0, 4, 8, 10},  // bottom
	}
	faces := [6]int{front, back, left, right, top, bottom}
	for fi, face := range faces {
		for _, ei := range faceEdges[fi] {
			s.Attach(face, ei)
		}
	}
}
