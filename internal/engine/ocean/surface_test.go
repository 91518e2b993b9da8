package ocean

import (
	"math/rand/v2"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatFields(m, n int) *Fields {
	return &Fields{Height: NewField(m, n), ChopX: NewField(m, n), ChopZ: NewField(m, n)}
}

func randomFields(m, n int, rng *rand.Rand, amp float64) *Fields {
	f := flatFields(m, n)
	for _, fld := range []*Field{f.Height, f.ChopX, f.ChopZ} {
		for i := range fld.Data {
			fld.Data[i] = (rng.Float64()*2 - 1) * amp
		}
	}
	return f
}

func defaultParams() SurfaceParams {
	return SurfaceParams{Scale: 0.02, ChopScale: DefaultChopScale, FoamSlopeRatio: 0.07, FoamFade: 0.1, FoamRise: 0.1}
}

func TestVertexLayout(t *testing.T) {
	var v Vertex
	assert.Equal(t, uintptr(VertexStride), unsafe.Sizeof(v))
	assert.Equal(t, uintptr(OffsetPosition), unsafe.Offsetof(v.Position))
	assert.Equal(t, uintptr(OffsetNormal), unsafe.Offsetof(v.Normal))
	assert.Equal(t, uintptr(OffsetOriginal), unsafe.Offsetof(v.Original))
	assert.Equal(t, uintptr(OffsetTexCoord), unsafe.Offsetof(v.TexCoord))
	assert.Equal(t, uintptr(OffsetFoam), unsafe.Offsetof(v.Foam))
}

func TestNewMeshLayout(t *testing.T) {
	mesh := NewMesh(4, 2, 3, 10)

	require.Equal(t, 12, mesh.Width)
	require.Equal(t, 6, mesh.Height)
	require.Equal(t, 72, mesh.VertexCount())
	assert.Len(t, mesh.Indices, 11*5*6)

	first := mesh.Vertices[0]
	assert.Equal(t, mgl32.Vec3{-55, 0, -25}, first.Original)
	assert.Equal(t, first.Original, first.Position)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, first.Normal)
	assert.Equal(t, mgl32.Vec2{0, 0}, first.TexCoord)

	last := mesh.Vertices[len(mesh.Vertices)-1]
	assert.Equal(t, mgl32.Vec3{55, 0, 25}, last.Original)
	assert.Equal(t, mgl32.Vec2{1, 1}, last.TexCoord)

	// Neighbour along X is one segment away.
	assert.Equal(t, float32(10), mesh.Vertices[1].Original.X()-first.Original.X())

	// First quad: {v, v+W, v+1}, {v+W, v+W+1, v+1}
	assert.Equal(t, []uint32{0, 12, 1, 12, 13, 1}, mesh.Indices[:6])

	minX, minZ, maxX, maxZ := mesh.Bounds()
	assert.Equal(t, []float32{-55, -25, 55, 25}, []float32{minX, minZ, maxX, maxZ})
}

func TestSynthesizeFlatSurface(t *testing.T) {
	mesh := NewMesh(4, 4, 2, 10)
	mesh.Synthesize(flatFields(4, 4), defaultParams())

	for idx, v := range mesh.Vertices {
		assert.Equal(t, v.Original, v.Position, "vertex %d", idx)
		assert.InDelta(t, 0, v.Normal.Sub(mgl32.Vec3{0, 1, 0}).Len(), 1e-6, "vertex %d", idx)
		assert.Equal(t, float32(0), v.Foam)
	}
}

func TestSynthesizeDisplacement(t *testing.T) {
	const m, n = 4, 4
	mesh := NewMesh(m, n, 1, 10)
	f := flatFields(m, n)
	f.Height.Data[1*n+2] = 3
	f.ChopX.Data[1*n+2] = 1
	f.ChopZ.Data[1*n+2] = -2

	p := defaultParams()
	mesh.Synthesize(f, p)

	// mesh index is x + z·W, field index is x·N + z
	v := mesh.Vertices[1+2*mesh.Width]
	want := v.Original.Add(mgl32.Vec3{0.8, 3, -1.6})
	assert.InDelta(t, 0, v.Position.Sub(want).Len(), 1e-6)
}

func TestSynthesizeNormalsTiltWithSlope(t *testing.T) {
	const m, n = 8, 8
	mesh := NewMesh(m, n, 1, 1)
	f := flatFields(m, n)
	// A single raised cell: its +X neighbour sees a surface falling toward +X.
	f.Height.Data[3*n+3] = 0.5

	mesh.Synthesize(f, defaultParams())

	for idx, v := range mesh.Vertices {
		assert.InDelta(t, 1, v.Normal.Len(), 1e-5, "vertex %d not unit length", idx)
		assert.Greater(t, v.Normal.Y(), float32(0), "vertex %d faces down", idx)
	}

	east := mesh.Vertices[4+3*mesh.Width]
	west := mesh.Vertices[2+3*mesh.Width]
	assert.Greater(t, east.Normal.X(), float32(0))
	assert.Less(t, west.Normal.X(), float32(0))
}

func TestAccumulateNormalsSumsIncidentFaces(t *testing.T) {
	mesh := NewMesh(2, 2, 1, 1)
	mesh.accumulateNormals(func(i, j int) mgl32.Vec3 { return mgl32.Vec3{} })

	// Flat grid: every cell contributes two unit up-normals to its corners and
	// with wrapping each vertex is touched by six faces.
	for idx, nrm := range mesh.normals {
		assert.InDelta(t, 0, nrm.Sub(mgl32.Vec3{0, 6, 0}).Len(), 1e-6, "cell %d", idx)
	}
}

func TestFoamStaysBounded(t *testing.T) {
	const m, n = 8, 8
	rng := rand.New(rand.NewPCG(1, 2))
	mesh := NewMesh(m, n, 2, 10)
	p := defaultParams()
	p.FoamRise = 0.35
	p.FoamFade = 0.05

	for tick := 0; tick < 200; tick++ {
		// Alternate calm and violent stretches.
		amp := 0.0
		if (tick/20)%2 == 1 {
			amp = 500
		}
		mesh.Synthesize(randomFields(m, n, rng, amp), p)

		for idx, v := range mesh.Vertices {
			require.GreaterOrEqual(t, v.Foam, float32(0), "tick %d vertex %d", tick, idx)
			require.LessOrEqual(t, v.Foam, float32(1), "tick %d vertex %d", tick, idx)
		}
	}
}

func TestFoamRisesOnConvergence(t *testing.T) {
	const m, n = 4, 4
	mesh := NewMesh(m, n, 1, 10)
	f := flatFields(m, n)
	// X chop drops sharply between x=1 and x=2 in every row, Z chop between
	// z=1 and z=2 in every column.
	for x := 0; x < m; x++ {
		for z := 0; z < n; z++ {
			if x >= 2 {
				f.ChopX.Data[x*n+z] = -10
			}
			if z >= 2 {
				f.ChopZ.Data[x*n+z] = -10
			}
		}
	}

	p := defaultParams()
	for tick := 0; tick < 15; tick++ {
		mesh.Synthesize(f, p)
	}

	breaking := mesh.Vertices[2+2*mesh.Width]
	calm := mesh.Vertices[1+1*mesh.Width]
	assert.Equal(t, float32(1), breaking.Foam)
	assert.Equal(t, float32(0), calm.Foam)

	// Once the convergence goes away the foam fades out again.
	flat := flatFields(m, n)
	for tick := 0; tick < 5; tick++ {
		mesh.Synthesize(flat, p)
	}
	assert.InDelta(t, 0.5, mesh.Vertices[2+2*mesh.Width].Foam, 1e-5)
}

func TestTilesMatchAtSeams(t *testing.T) {
	const m, n, r = 8, 4, 3
	rng := rand.New(rand.NewPCG(9, 9))
	mesh := NewMesh(m, n, r, 10)

	for tick := 0; tick < 3; tick++ {
		mesh.Synthesize(randomFields(m, n, rng, 4), defaultParams())

		for j := 0; j < mesh.Height; j++ {
			for i := 0; i+m < mesh.Width; i++ {
				a := mesh.Vertices[i+j*mesh.Width]
				b := mesh.Vertices[i+m+j*mesh.Width]
				da, db := a.Position.Sub(a.Original), b.Position.Sub(b.Original)
				assert.InDelta(t, 0, da.Sub(db).Len(), 1e-4)
				assert.Equal(t, a.Normal, b.Normal)
				assert.Equal(t, a.Foam, b.Foam)
			}
		}
		for j := 0; j+n < mesh.Height; j++ {
			for i := 0; i < mesh.Width; i++ {
				a := mesh.Vertices[i+j*mesh.Width]
				b := mesh.Vertices[i+(j+n)*mesh.Width]
				da, db := a.Position.Sub(a.Original), b.Position.Sub(b.Original)
				assert.InDelta(t, 0, da.Sub(db).Len(), 1e-4)
				assert.Equal(t, a.Normal, b.Normal)
			}
		}
	}
}

func TestSynthesizeTopologyMismatchPanics(t *testing.T) {
	mesh := NewMesh(4, 4, 2, 10)
	assert.Panics(t, func() { mesh.Synthesize(flatFields(8, 4), defaultParams()) })

	mesh.Vertices = mesh.Vertices[:10]
	assert.Panics(t, func() { mesh.Synthesize(flatFields(4, 4), defaultParams()) })
}
