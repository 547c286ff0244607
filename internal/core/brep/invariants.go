package brep

import "brushkit/internal/core/geom"

// CheckAdjacencySymmetry verifies spec.md §8's adjacency-symmetry property:
// every non-clipped edge's two face indices each list that edge in their
// own edge list.
func (s *Store) CheckAdjacencySymmetry() []string {
	var problems []string
	for ei, e := range s.Edges {
		if e.Clipped {
			continue
		}
		for _, fi := range [2]int{e.F0, e.F1} {
			if fi == NoFace {
				problems = append(problems, "edge has an unattached face slot")
				continue
			}
			if !containsInt(s.Faces[fi].Edges, ei) {
				problems = append(problems, "edge not listed by its incident face")
			}
		}
	}
	return problems
}

// CheckClosedLoops verifies spec.md §8's closed-loop property: every vertex
// referenced by a non-clipped face's edges occurs in exactly two of them.
func (s *Store) CheckClosedLoops() []string {
	var problems []string
	occurs := map[int]int{}
	for fi, f := range s.Faces {
		if f.Clipped {
			continue
		}
		for k := range occurs {
			delete(occurs, k)
		}
		for _, ei := range f.Edges {
			e := s.Edges[ei]
			occurs[e.V0]++
			occurs[e.V1]++
		}
		for v, count := range occurs {
			if count != 2 {
				problems = append(problems, faceLoopProblem(fi, v, count))
			}
		}
	}
	return problems
}

// CheckHalfSpaceClosure verifies spec.md §8's half-space-closure property:
// every non-clipped vertex satisfies plane.SignedDistance(v) <= +Epsilon
// for every plane already applied.
func (s *Store) CheckHalfSpaceClosure(planes []geom.Plane) []string {
	var problems []string
	for vi, v := range s.Vertices {
		if v.Clipped {
			continue
		}
		for _, p := range planes {
			if p.SignedDistance(v.Position) > geom.Epsilon {
				problems = append(problems, vertexOutsideProblem(vi))
			}
		}
	}
	return problems
}

// EulerCharacteristic counts non-clipped vertices, edges, and faces and
// returns V - E + F, which spec.md §8 requires to equal 2 for a convex
// polytope.
func (s *Store) EulerCharacteristic() int {
	v, e, f := 0, 0, 0
	for _, vv := range s.Vertices {
		if !vv.Clipped {
			v++
		}
	}
	for _, ee := range s.Edges {
		if !ee.Clipped {
			e++
		}
	}
	for _, ff := range s.Faces {
		if !ff.Clipped {
			f++
		}
	}
	return v - e + f
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func faceLoopProblem(face, vertex, count int) string {
	return "face " + itoa(face) + " vertex " + itoa(vertex) + " occurs " + itoa(count) + " times, expected 2"
}

func vertexOutsideProblem(vertex int) string {
	return "vertex " + itoa(vertex) + " lies outside an already-applied half-space"
}

// itoa avoids pulling in strconv for this tiny, hot-path-adjacent
// diagnostic formatting.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
