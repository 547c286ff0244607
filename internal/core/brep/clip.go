package brep

import (
	"brushkit/internal/core/errs"
	"brushkit/internal/core/geom"
)

// Clip mutates s so that the set of non-clipped vertices/edges/faces
// describes the intersection of the previous polytope with the half-space
// { p : plane.SignedDistance(p) <= 0 }. The new face closing the cut
// carries plane.Normal and data. brushIndex is only used to attribute a
// returned InvariantViolation error to the brush being built.
//
// Idempotent: clipping by the same plane twice has no further effect after
// the first call, because the new face's vertices all lie on the plane, so
// clipping by it again clips nothing (spec.md §4.C).
func (s *Store) Clip(plane geom.Plane, data any, brushIndex int) error {
	clippedCount, totalCount := s.clipVertices(plane)
	if clippedCount == 0 {
		return nil
	}

	s.splitEdges()

	if clippedCount == totalCount {
		// Every remaining vertex fell beyond the plane: nothing of the
		// polytope survives this half-space, so there is no new face to
		// close. splitEdges already detached every remaining edge from its
		// faces, which (via Store.Detach) marks every face Clipped too —
		// this is spec.md §4.F's EmptyPolytope condition.
		return nil
	}

	newFace := s.AddFace(plane.Normal, data)
	return s.closeFaces(newFace, brushIndex)
}

// clipVertices is spec.md §4.C step 1: compute and snap signed distances,
// mark vertices beyond +Epsilon as clipped, and report how many of the
// non-clipped vertices were clipped versus the total considered.
func (s *Store) clipVertices(plane geom.Plane) (clippedCount, totalCount int) {
	for i := range s.Vertices {
		v := &s.Vertices[i]
		if v.Clipped {
			continue
		}
		totalCount++
		v.distance = plane.SignedDistance(v.Position)

		switch {
		case v.distance >= geom.Epsilon:
			v.Clipped = true
			clippedCount++
		case v.distance >= -geom.Epsilon:
			v.distance = 0
		}
	}
	return clippedCount, totalCount
}

// splitEdges is spec.md §4.C step 2: fully-clipped edges are marked clipped
// and detached from their faces; half-clipped edges are split at the plane
// and have their clipped endpoint replaced by the new on-plane vertex.
func (s *Store) splitEdges() {
	for i := range s.Edges {
		e := &s.Edges[i]
		if e.Clipped {
			continue
		}

		v0 := &s.Vertices[e.V0]
		v1 := &s.Vertices[e.V1]

		switch {
		case v0.Clipped && v1.Clipped:
			e.Clipped = true
			s.Detach(e.F0, i)
			s.Detach(e.F1, i)
		case !v0.Clipped && !v1.Clipped:
			// Fully visible, or coplanar with the plane: nothing to do.
		default:
			t := geom.SplitParameter(v0.distance, v1.distance)
			mid := geom.Lerp(v0.Position, v1.Position, t)
			newVertex := s.AddVertex(mid)
			if v0.Clipped {
				e.V0 = newVertex
			} else {
				e.V1 = newVertex
			}
		}
	}
}

// closeFaces is spec.md §4.C step 3: for every non-clipped face whose loop
// was broken by the cut, find its two loose endpoints (vertices occurring
// in only one of the face's remaining edges) and close the loop with one
// new edge shared between the face and newFace.
//
// Per spec.md §9's explicit guidance, the per-vertex occurrence count used
// to find endpoints is a scratch buffer sized to the vertex pool rather
// than a field mutated on Vertex itself, keeping Vertex free of aliasing
// hazards across faces processed in the same pass. The buffer lives on
// Store and is reset-and-reused across every Clip call in a session
// instead of being reallocated per call (spec.md §5's scratch arena).
func (s *Store) closeFaces(newFace int, brushIndex int) error {
	if len(s.occursScratch) < len(s.Vertices) {
		s.occursScratch = make([]int, len(s.Vertices))
	}
	occurs := s.occursScratch[:len(s.Vertices)]
	for i := range occurs {
		occurs[i] = 0
	}

	for faceIdx := range s.Faces {
		if s.Faces[faceIdx].Clipped || faceIdx == newFace {
			continue
		}
		face := &s.Faces[faceIdx]

		for _, edgeIdx := range face.Edges {
			e := s.Edges[edgeIdx]
			occurs[e.V0] = 0
			occurs[e.V1] = 0
		}
		for _, edgeIdx := range face.Edges {
			e := s.Edges[edgeIdx]
			occurs[e.V0]++
			occurs[e.V1]++
		}

		var endpoints [2]int
		endpoints[0], endpoints[1] = -1, -1
		found := 0

		for _, edgeIdx := range face.Edges {
			e := s.Edges[edgeIdx]
			for _, v := range [2]int{e.V0, e.V1} {
				if occurs[v] != 1 {
					continue
				}
				if endpoints[0] == v || endpoints[1] == v {
					continue // already recorded this endpoint from its other edge
				}
				if found >= 2 {
					return errs.Invariant(brushIndex,
						"face %d has more than two open-chain endpoints after clip", faceIdx)
				}
				endpoints[found] = v
				found++
			}
		}

		if found == 0 {
			continue // face untouched by this cut (fully visible or fully coplanar)
		}
		if found != 2 {
			return errs.Invariant(brushIndex,
				"face %d has %d open-chain endpoints after clip, expected 2", faceIdx, found)
		}

		newEdge := s.AddEdge(endpoints[0], endpoints[1])
		s.Attach(faceIdx, newEdge)
		s.Attach(newFace, newEdge)
	}

	return nil
}
