package storyglyph

import "unsafe"

// Vertex is one point of the panel's textured triangle stream: screen
// position, atlas UV, and premultiplied-friendly RGBA color. The layout
// matches the GPU vertex buffer byte for byte.
type Vertex struct {
	X, Y       float32
	U, V       float32
	R, G, B, A float32
}

const (
	// VertexSize is the byte stride of one Vertex in the GPU buffer.
	VertexSize = int(unsafe.Sizeof(Vertex{}))

	// VerticesPerQuad is two triangles per rectangle.
	VerticesPerQuad = 6

	// DefaultMaxVertices caps the per-frame vertex stream.
	DefaultMaxVertices = 65536
)

// frame accumulates one rebuild's vertex stream. Quads that would push the
// stream past max are counted in dropped instead of appended.
type frame struct {
	verts   []Vertex
	max     int
	dropped int
}

func newFrame(max int) *frame {
	return &frame{verts: make([]Vertex, 0, 1024), max: max}
}

func (f *frame) reset() {
	f.verts = f.verts[:0]
	f.dropped = 0
}

// addQuad appends the two triangles of an axis-aligned rectangle. Vertex
// order is TL,TR,BL / TR,BR,BL.
func (f *frame) addQuad(x, y, w, h float64, u0, v0, u1, v1 float32, c Color) {
	if len(f.verts)+VerticesPerQuad > f.max {
		f.dropped++
		return
	}

	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+h)

	tl := Vertex{X: x0, Y: y0, U: u0, V: v0, R: c.R, G: c.G, B: c.B, A: c.A}
	tr := Vertex{X: x1, Y: y0, U: u1, V: v0, R: c.R, G: c.G, B: c.B, A: c.A}
	bl := Vertex{X: x0, Y: y1, U: u0, V: v1, R: c.R, G: c.G, B: c.B, A: c.A}
	br := Vertex{X: x1, Y: y1, U: u1, V: v1, R: c.R, G: c.G, B: c.B, A: c.A}

	f.verts = append(f.verts, tl, tr, bl, tr, br, bl)
}

// vertexBytes reinterprets the vertex slice as its GPU upload bytes.
// The returned slice aliases v.
func vertexBytes(v []Vertex) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*VertexSize)
}
