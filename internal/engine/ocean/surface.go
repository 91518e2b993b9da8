package ocean

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultChopScale is the visual multiplier applied to horizontal chop.
const DefaultChopScale = 0.8

// SurfaceParams controls how spatial fields are mapped onto the mesh.
type SurfaceParams struct {
	Scale          float64 // transform scale, reused by the foam divergence proxy
	ChopScale      float32
	FoamSlopeRatio float64
	FoamFade       float32
	FoamRise       float32
}

// Synthesize rewrites every vertex position, normal and foam amount from the
// fields of one tick.
func (m *Mesh) Synthesize(f *Fields, p SurfaceParams) {
	for _, fld := range []*Field{f.Height, f.ChopX, f.ChopZ} {
		if fld.M != m.M || fld.N != m.N {
			panic(fmt.Errorf("%w: field %dx%d, mesh grid %dx%d", ErrTopologyMismatch, fld.M, fld.N, m.M, m.N))
		}
	}
	if len(m.Vertices) != m.Width*m.Height || m.Width != m.M*m.Repeat || m.Height != m.N*m.Repeat {
		panic(fmt.Errorf("%w: %d vertices for %dx%d grid repeated %d times", ErrTopologyMismatch, len(m.Vertices), m.M, m.N, m.Repeat))
	}

	disp := func(i, j int) mgl32.Vec3 {
		return mgl32.Vec3{
			p.ChopScale * float32(f.ChopX.At(i, j)),
			float32(f.Height.At(i, j)),
			p.ChopScale * float32(f.ChopZ.At(i, j)),
		}
	}

	m.accumulateNormals(disp)
	m.detectBreaking(f, p)

	for j := 0; j < m.Height; j++ {
		z := j % m.N
		for i := 0; i < m.Width; i++ {
			x := i % m.M
			cell := x*m.N + z
			v := &m.Vertices[i+j*m.Width]

			v.Position = v.Original.Add(disp(x, z))

			if n := m.normals[cell]; n.Len() > 0 {
				v.Normal = n.Normalize()
			} else {
				v.Normal = mgl32.Vec3{0, 1, 0}
			}

			delta := -p.FoamFade
			if m.breaking[cell] {
				delta = p.FoamRise
			}
			v.Foam = min(max(v.Foam+delta, 0), 1)
		}
	}
}

// accumulateNormals sums the face normals of the two triangles of every grid
// cell into the three corners each touches. Neighbours wrap at the edges.
func (m *Mesh) accumulateNormals(disp func(i, j int) mgl32.Vec3) {
	clear(m.normals)

	seg := m.Segment
	stepZ := mgl32.Vec3{0, 0, seg}
	stepX := mgl32.Vec3{seg, 0, 0}
	stepXZ := mgl32.Vec3{seg, 0, seg}

	for i := 0; i < m.M; i++ {
		ip := (i + 1) % m.M
		for j := 0; j < m.N; j++ {
			jp := (j + 1) % m.N

			v0 := disp(i, j)
			v1 := stepZ.Add(disp(i, jp))
			v2 := stepX.Add(disp(ip, j))
			v3 := stepXZ.Add(disp(ip, jp))

			a := faceNormal(v1.Sub(v0), v2.Sub(v0))
			m.addNormal(i, j, a)
			m.addNormal(i, jp, a)
			m.addNormal(ip, j, a)

			b := faceNormal(v1.Sub(v3), v1.Sub(v2))
			m.addNormal(i, jp, b)
			m.addNormal(ip, j, b)
			m.addNormal(ip, jp, b)
		}
	}
}

func (m *Mesh) addNormal(i, j int, n mgl32.Vec3) {
	idx := i*m.N + j
	m.normals[idx] = m.normals[idx].Add(n)
}

func faceNormal(a, b mgl32.Vec3) mgl32.Vec3 {
	c := a.Cross(b)
	l := c.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return c.Mul(1 / l)
}

// detectBreaking flags cells whose horizontal divergence proxy shows strong
// convergence.
func (m *Mesh) detectBreaking(f *Fields, p SurfaceParams) {
	for x := 0; x < m.M; x++ {
		for z := 0; z < m.N; z++ {
			jxx := p.Scale * (f.ChopX.At(x, z) - f.ChopX.At(x-1, z))
			jzz := p.Scale * (f.ChopZ.At(x, z) - f.ChopZ.At(x, z-1))
			m.breaking[x*m.N+z] = min(jxx, jzz) < -p.FoamSlopeRatio
		}
	}
}
