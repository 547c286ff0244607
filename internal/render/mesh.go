// Package render uploads brushkit's per-texture mesh accumulators to the
// GPU and drives a small free-fly viewer, the "external collaborator" demo
// surface spec.md §1 calls out as outside the core's scope (SPEC_FULL.md
// §11's domain-stack wiring for go-gl/gl + go-gl/glfw).
package render

import (
	"brushkit/internal/core/mesh"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// BrushMesh owns the OpenGL buffers uploaded from one mesh.Accumulator.
type BrushMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	TextureID  uint32 // the texture.ID this mesh was grouped by, for a flat-color uniform
}

// NewBrushMesh uploads acc's interleaved vertex buffer and index buffer and
// configures the position/normal/tangent/uv vertex attribute layout. Returns
// nil for an accumulator with no vertices.
func NewBrushMesh(acc *mesh.Accumulator) *BrushMesh {
	if acc == nil || len(acc.Positions) == 0 {
		return nil
	}

	vertices := acc.Interleaved()

	m := &BrushMesh{
		IndexCount: int32(len(acc.Indices)),
		TextureID:  uint32(acc.Texture),
	}

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(acc.Indices)*2, gl.Ptr(acc.Indices), gl.STATIC_DRAW)

	stride := int32(mesh.VertexStride * 4)

	// Position attribute (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	// Tangent attribute (location 2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	// UV attribute (location 3)
	gl.VertexAttribPointerWithOffset(3, 2, gl.FLOAT, false, stride, 10*4)
	gl.EnableVertexAttribArray(3)

	gl.BindVertexArray(0)

	return m
}

// Draw renders the mesh.
func (m *BrushMesh) Draw() {
	if m == nil || m.VAO == 0 {
		return
	}
	gl.BindVertexArray(m.VAO)
	gl.DrawElements(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_SHORT, nil)
	gl.BindVertexArray(0)
}

// Delete releases the mesh's OpenGL buffers.
func (m *BrushMesh) Delete() {
	if m == nil {
		return
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
		m.EBO = 0
	}
}

// MeshSet owns one BrushMesh per texture group produced by a mesh.Group,
// the render-side analogue of the teacher's ChunkRenderer but keyed by
// texture identity instead of chunk ID.
type MeshSet struct {
	meshes []*BrushMesh
}

// NewMeshSet uploads every non-empty accumulator in group.
func NewMeshSet(group *mesh.Group) *MeshSet {
	set := &MeshSet{}
	for _, acc := range group.Meshes() {
		if m := NewBrushMesh(acc); m != nil {
			set.meshes = append(set.meshes, m)
		}
	}
	return set
}

// Draw renders every mesh in the set.
func (s *MeshSet) Draw() {
	for _, m := range s.meshes {
		m.Draw()
	}
}

// Meshes exposes the set's per-texture meshes in upload order, for callers
// that need to set a per-mesh uniform (e.g. a texture-color swatch) before
// each draw call instead of using the set's own undifferentiated Draw.
func (s *MeshSet) Meshes() []*BrushMesh {
	return s.meshes
}

// Cleanup releases every mesh's OpenGL buffers.
func (s *MeshSet) Cleanup() {
	for _, m := range s.meshes {
		m.Delete()
	}
	s.meshes = nil
}
