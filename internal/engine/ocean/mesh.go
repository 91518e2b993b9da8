package ocean

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one ocean surface vertex as laid out in the GPU buffer.
type Vertex struct {
	Position mgl32.Vec3 // displaced position
	Normal   mgl32.Vec3
	Original mgl32.Vec3 // rest position
	TexCoord mgl32.Vec2
	Foam     float32 // [0,1]
}

// Vertex attribute layout, in bytes.
const (
	VertexStride   = 12 * 4
	OffsetPosition = 0
	OffsetNormal   = 3 * 4
	OffsetOriginal = 6 * 4
	OffsetTexCoord = 9 * 4
	OffsetFoam     = 11 * 4
)

// Mesh is the render grid: the M×N simulation grid tiled Repeat×Repeat times.
// Its vertex count never changes after construction.
type Mesh struct {
	M, N    int // simulation grid
	Repeat  int
	Segment float32 // world distance between neighbouring vertices

	Width, Height int // vertices per row / column

	Vertices []Vertex
	Indices  []uint32

	// Per simulation cell scratch, reused every tick.
	normals  []mgl32.Vec3
	breaking []bool
}

// NewMesh builds the rest-state mesh centred on the origin in the XZ plane.
func NewMesh(m, n, repeat int, segment float32) *Mesh {
	w, h := m*repeat, n*repeat

	mesh := &Mesh{
		M:        m,
		N:        n,
		Repeat:   repeat,
		Segment:  segment,
		Width:    w,
		Height:   h,
		Vertices: make([]Vertex, w*h),
		normals:  make([]mgl32.Vec3, m*n),
		breaking: make([]bool, m*n),
	}

	halfW := segment * float32(w-1) * 0.5
	halfH := segment * float32(h-1) * 0.5
	up := mgl32.Vec3{0, 1, 0}

	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			rest := mgl32.Vec3{float32(i)*segment - halfW, 0, float32(j)*segment - halfH}
			mesh.Vertices[i+j*w] = Vertex{
				Position: rest,
				Original: rest,
				Normal:   up,
				TexCoord: mgl32.Vec2{texCoord(i, w), texCoord(j, h)},
			}
		}
	}

	if w > 1 && h > 1 {
		mesh.Indices = make([]uint32, 0, (w-1)*(h-1)*6)
		for j := 0; j < h-1; j++ {
			for i := 0; i < w-1; i++ {
				v := uint32(i + j*w)
				row := uint32(w)
				mesh.Indices = append(mesh.Indices,
					v, v+row, v+1,
					v+row, v+row+1, v+1,
				)
			}
		}
	}

	return mesh
}

func texCoord(i, n int) float32 {
	if n <= 1 {
		return 0
	}
	return float32(i) / float32(n-1)
}

// VertexCount returns the number of vertices in the buffer.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Rest puts every vertex back in its rest state and clears the foam.
func (m *Mesh) Rest() {
	up := mgl32.Vec3{0, 1, 0}
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = v.Original
		v.Normal = up
		v.Foam = 0
	}
}

// Bounds returns the rest-state extent of the mesh in X and Z.
func (m *Mesh) Bounds() (minX, minZ, maxX, maxZ float32) {
	first := m.Vertices[0].Original
	last := m.Vertices[len(m.Vertices)-1].Original
	return first.X(), first.Z(), last.X(), last.Z()
}
