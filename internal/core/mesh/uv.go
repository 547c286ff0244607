// Package mesh triangulates brep faces into GPU-upload-ready, per-texture
// indexed triangle meshes (spec.md §4.D, §4.E).
package mesh

import (
	"brushkit/internal/core/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// UVProjection is the per-face data a brush driver attaches to a brep.Face
// (its Data field) before triangulating it: the texture it's drawn with and
// the basis used to project world positions to UV coordinates (spec.md
// §4.D). `rot` from the map format is not applied: Valve-220 basis vectors
// already carry the rotation, so the parser only keeps it in
// mapfile.BrushFace.Rotation and it has no field here.
type UVProjection struct {
	Texture texture.ID
	U, V    mgl32.Vec3
	SU, SV  float32
	OU, OV  float32
}

// Project maps a world position to a UV coordinate using this basis
// (spec.md §4.D: u = (p·U)*su + ou, v = (p·V)*sv + ov).
func (p UVProjection) Project(position mgl32.Vec3) mgl32.Vec2 {
	u := position.Dot(p.U)*p.SU + p.OU
	v := position.Dot(p.V)*p.SV + p.OV
	return mgl32.Vec2{u, v}
}
