package brep

import (
	"testing"

	"brushkit/internal/core/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// halfSpacePlane returns the plane { p : normal.p <= c }.
func halfSpacePlane(normal mgl32.Vec3, c float32) geom.Plane {
	return geom.Plane{Normal: normal, C: c}
}

func TestClipBisectingPlaneAddsOneFace(t *testing.T) {
	s := seedUnitCube()
	faceCountBefore := len(s.Faces)

	// Clip everything with X > 0, keeping the left half of the cube.
	plane := halfSpacePlane(mgl32.Vec3{1, 0, 0}, 0)
	if err := s.Clip(plane, nil, 0); err != nil {
		t.Fatalf("Clip returned error: %v", err)
	}

	if len(s.Faces) != faceCountBefore+1 {
		t.Fatalf("expected exactly one new face, have %d (was %d)", len(s.Faces), faceCountBefore)
	}

	newFace := len(s.Faces) - 1
	if s.Faces[newFace].Clipped {
		t.Fatal("newly added closing face should not be Clipped")
	}

	for _, v := range s.Vertices {
		if !v.Clipped && v.Position.X() > geom.Epsilon {
			t.Errorf("vertex %+v survived clip but lies outside the kept half-space", v.Position)
		}
	}

	if problems := s.CheckAdjacencySymmetry(); len(problems) != 0 {
		t.Fatalf("adjacency symmetry violated after clip: %v", problems)
	}
	if problems := s.CheckClosedLoops(); len(problems) != 0 {
		t.Fatalf("closed loop invariant violated after clip: %v", problems)
	}
	if got := s.EulerCharacteristic(); got != 2 {
		t.Fatalf("V-E+F = %d after clip, want 2", got)
	}
}

func TestClipOutsidePlaneClipsNothing(t *testing.T) {
	s := seedUnitCube()
	facesBefore := len(s.Faces)

	// A plane entirely beyond the cube's extent: nothing is clipped.
	plane := halfSpacePlane(mgl32.Vec3{1, 0, 0}, 100)
	if err := s.Clip(plane, nil, 0); err != nil {
		t.Fatalf("Clip returned error: %v", err)
	}

	if len(s.Faces) != facesBefore {
		t.Fatalf("expected no new face for a non-intersecting plane, have %d (was %d)", len(s.Faces), facesBefore)
	}
}

func TestClipIsIdempotent(t *testing.T) {
	s := seedUnitCube()
	plane := halfSpacePlane(mgl32.Vec3{1, 0, 0}, 0)

	if err := s.Clip(plane, nil, 0); err != nil {
		t.Fatalf("first clip returned error: %v", err)
	}
	facesAfterFirst := len(s.Faces)

	if err := s.Clip(plane, nil, 0); err != nil {
		t.Fatalf("second clip returned error: %v", err)
	}
	if len(s.Faces) != facesAfterFirst {
		t.Fatalf("clipping by the same plane twice should add no further faces, have %d (was %d)",
			len(s.Faces), facesAfterFirst)
	}
}

func TestClipFullyInsidePlaneClipsEverything(t *testing.T) {
	s := seedUnitCube()

	// Keep only points with X <= -100: clips every vertex of the unit cube.
	plane := halfSpacePlane(mgl32.Vec3{1, 0, 0}, -100)
	if err := s.Clip(plane, nil, 0); err != nil {
		t.Fatalf("Clip returned error: %v", err)
	}

	for _, v := range s.Vertices {
		if !v.Clipped {
			t.Fatalf("expected every original vertex to be clipped, found survivor at %+v", v.Position)
		}
	}
	for fi, f := range s.Faces {
		if !f.Clipped {
			t.Errorf("face %d should be Clipped once every vertex is clipped (EmptyPolytope)", fi)
		}
	}
	for ei, e := range s.Edges {
		if !e.Clipped {
			t.Errorf("edge %d should be Clipped once every vertex is clipped (EmptyPolytope)", ei)
		}
	}
}

func TestClipThreeAxisPlanesKeepsClosedPolytope(t *testing.T) {
	s := seedUnitCube()
	planes := []geom.Plane{
		halfSpacePlane(mgl32.Vec3{1, 0, 0}, 0),
		halfSpacePlane(mgl32.Vec3{0, 1, 0}, 0),
		halfSpacePlane(mgl32.Vec3{0, 0, 1}, 0),
	}
	for i, p := range planes {
		if err := s.Clip(p, nil, 0); err != nil {
			t.Fatalf("clip %d returned error: %v", i, err)
		}
	}

	if got := s.EulerCharacteristic(); got != 2 {
		t.Fatalf("V-E+F = %d after three clips, want 2", got)
	}
	if problems := s.CheckHalfSpaceClosure(planes); len(problems) != 0 {
		t.Fatalf("half-space closure violated: %v", problems)
	}
}
