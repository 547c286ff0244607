package mesh

import (
	"brushkit/internal/core/brep"
	"brushkit/pkg/mathutil"

	"github.com/go-gl/mathgl/mgl32"
)

// TriangulateFace is spec.md §4.D: it walks faceIdx's boundary into a wound
// vertex ring, projects each ring vertex through its UV basis, and appends
// a triangle fan into the accumulator for the face's texture (fetched or
// created via group). It reports whether it actually appended any geometry,
// so a caller iterating every non-clipped face of a brush can tell a
// structurally-present-but-numerically-empty face apart from a real one.
//
// Faces whose Data was never set to a *UVProjection are skipped (an
// untextured leftover seed-cube face that survived an open brush) rather
// than treated as an error: spec.md §4.F only calls EmptyPolytope/
// DegenerateBrush fatal-or-warning conditions at the brush level, not at
// individual untextured faces.
func TriangulateFace(store *brep.Store, faceIdx int, group *Group, opts Options) bool {
	face := &store.Faces[faceIdx]
	if face.Clipped {
		return false
	}
	proj, ok := face.Data.(*UVProjection)
	if !ok {
		return false
	}

	ring := store.FaceVertices(faceIdx, opts.Winding)
	k := len(ring) - 1
	if k < 3 {
		return false // degenerate: a coplanar leftover face with no real loop
	}

	acc := group.Accumulator(proj.Texture)
	base := acc.VertexCount()

	tangent := mgl32.Vec4{proj.U.X(), proj.U.Y(), proj.U.Z(), 0}

	for i := 0; i < k; i++ {
		rawPosition := store.Vertices[ring[i]].Position
		position := rawPosition
		if opts.SnapPositions {
			position = snapVec3(position)
		}
		uv := proj.Project(rawPosition)
		acc.AddVertex(position, face.Normal, tangent, uv)
	}

	for i := 1; i < k-1; i++ {
		acc.AddTriangle(base, base+i, base+i+1)
	}

	return true
}

func snapVec3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mathutil.RoundToInt(v.X()),
		mathutil.RoundToInt(v.Y()),
		mathutil.RoundToInt(v.Z()),
	}
}
