// Package geom provides the half-space plane primitives the clipper and
// mesher build on: signed distance and segment/plane intersection.
package geom

import "github.com/go-gl/mathgl/mgl32"

// Epsilon is the world-unit tolerance used to snap near-zero signed
// distances to exactly zero. Matches pt_clip.h's EPSILON.
const Epsilon = 0.01

// Plane is the half-space { p : Normal·p <= C }. Normal need not be unit
// length — pt_map.h derives it from a cross product of the three winding
// points on a face line and never normalizes it, and SignedDistance works
// correctly either way as long as Epsilon is understood to be in the same
// scale as Normal's magnitude.
type Plane struct {
	Normal mgl32.Vec3
	C      float32
}

// SignedDistance returns Normal·p - C. Positive means p is on the clipped
// side of the plane, negative means it is on the kept side.
func (p Plane) SignedDistance(position mgl32.Vec3) float32 {
	return p.Normal.Dot(position) - p.C
}

// PlaneFromPoints builds the plane through three non-collinear points,
// oriented so that Normal = (p1-p2) x (p1-p3), matching the Valve-220 face
// line convention (spec.md §6). The returned normal is not normalized.
func PlaneFromPoints(p1, p2, p3 mgl32.Vec3) Plane {
	n := p1.Sub(p2).Cross(p1.Sub(p3))
	return Plane{Normal: n, C: n.Dot(p1)}
}

// SplitParameter returns t such that the point (1-t)*v0 + t*v1 lies on the
// plane, given the signed distances d0, d1 of v0 and v1 (which must have
// opposite sign). See spec.md §4.A.
func SplitParameter(d0, d1 float32) float32 {
	return d0 / (d0 - d1)
}

// Lerp returns the point (1-t)*from + t*to.
func Lerp(from, to mgl32.Vec3, t float32) mgl32.Vec3 {
	return from.Mul(1 - t).Add(to.Mul(t))
}
