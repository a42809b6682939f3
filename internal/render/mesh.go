package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh is a static vertex buffer with interleaved position and normal.
type Mesh struct {
	vao   uint32
	vbo   uint32
	count int32
}

func newMesh(vertices []float32) *Mesh {
	m := &Mesh{count: int32(len(vertices) / 6)}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)

	gl.BindVertexArray(0)
	return m
}

// Draw issues the draw call.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
}

// Destroy releases GL resources.
func (m *Mesh) Destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		m.vao = 0
	}
}

// NewPortalMesh builds the portal surface: an oval in the XY plane with
// half extents 0.5 x 0.5 (the node's scale stretches it), facing +Z.
func NewPortalMesh(segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	verts := make([]float32, 0, segments*6*3)
	for i := 0; i < segments; i++ {
		a0 := 2 * math32.Pi * float32(i) / float32(segments)
		a1 := 2 * math32.Pi * float32(i+1) / float32(segments)
		// Triangle fan around the center, normal +Z.
		verts = append(verts,
			0, 0, 0, 0, 0, 1,
			0.5*math32.Cos(a0), 0.5*math32.Sin(a0), 0, 0, 0, 1,
			0.5*math32.Cos(a1), 0.5*math32.Sin(a1), 0, 0, 0, 1,
		)
	}
	return newMesh(verts)
}

// NewBoxMesh builds an axis-aligned box with the given half extents,
// outward normals, centered at the origin.
func NewBoxMesh(hx, hy, hz float32) *Mesh {
	faces := []struct {
		n       [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
	}

	verts := make([]float32, 0, 6*6*6)
	push := func(p [3]float32, n [3]float32) {
		verts = append(verts, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	for _, f := range faces {
		push(f.corners[0], f.n)
		push(f.corners[1], f.n)
		push(f.corners[2], f.n)
		push(f.corners[0], f.n)
		push(f.corners[2], f.n)
		push(f.corners[3], f.n)
	}
	return newMesh(verts)
}
