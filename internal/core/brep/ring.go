package brep

import "github.com/go-gl/mathgl/mgl32"

// Winding selects the traversal direction FaceVertices should return,
// relative to a face's stored normal as seen from outside the polytope
// (spec.md §4.D).
type Winding int

const (
	WindingAny Winding = iota
	WindingCW
	WindingCCW
)

// FaceVertices walks face's edge loop into an ordered vertex ring
// [u0, u1, ..., uk-1, u0], corrected to the requested winding. It is
// spec.md §4.B's face_vertices operation, algorithm defined in §4.D.
//
// The ring is built by starting from the face's first edge and repeatedly
// finding an edge sharing exactly one vertex with the current tail (and
// whose other vertex isn't the one just visited), which is O(k) per step
// and O(k^2) overall — acceptable for the k <= ~12 typical of a brush face
// clipped by a handful of planes (pt_clip.h's ptc_get_vertices, same
// algorithm).
func (s *Store) FaceVertices(faceIdx int, winding Winding) []int {
	face := &s.Faces[faceIdx]
	k := len(face.Edges)
	if k == 0 {
		return nil
	}

	ring := make([]int, k+1)
	first := s.Edges[face.Edges[0]]
	ring[0], ring[1] = first.V0, first.V1

	for i := 1; i < k; i++ {
		tail := ring[i]
		prev := ring[i-1]
		next := -1
		for _, edgeIdx := range face.Edges {
			e := s.Edges[edgeIdx]
			switch {
			case e.V0 == tail && e.V1 != prev:
				next = e.V1
			case e.V1 == tail && e.V0 != prev:
				next = e.V0
			default:
				continue
			}
			break
		}
		ring[i+1] = next
	}

	if winding != WindingAny && s.ringWinding(ring, face.Normal) != winding {
		reverseRing(ring)
	}
	return ring
}

// ringWinding computes the signed-area-proxy normal accumulator
// Σ(pi × pi+1) over consecutive ring positions and compares its sign
// against face normal to classify the ring's current winding.
func (s *Store) ringWinding(ring []int, normal mgl32.Vec3) Winding {
	var accumulator mgl32.Vec3
	for i := 0; i < len(ring)-1; i++ {
		p0 := s.Vertices[ring[i]].Position
		p1 := s.Vertices[ring[i+1]].Position
		accumulator = accumulator.Add(p0.Cross(p1))
	}
	if accumulator.Dot(normal) > 0 {
		return WindingCCW
	}
	return WindingCW
}

// reverseRing reverses a closed ring [u0..uk-1, u0] in place. Because the
// first and last elements are both u0, the reversed ring [u0, uk-1, ..., u1,
// u0] is still closed on the original start vertex.
func reverseRing(ring []int) {
	k := len(ring) - 1
	for i, j := 0, k; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}
