// Package scene holds the OpenGL renderers for objects in the world.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/acqua/internal/engine/lighting"
	"github.com/Faultbox/acqua/internal/engine/ocean"
	"github.com/Faultbox/acqua/internal/engine/scene/shaders"
	"github.com/Faultbox/acqua/internal/engine/shader"
	"github.com/Faultbox/acqua/internal/logger"
)

// OceanLook holds the shading constants of the surface.
type OceanLook struct {
	SunDir       mgl32.Vec3
	DeepColor    mgl32.Vec3
	ShallowColor mgl32.Vec3
	SkyColor     mgl32.Vec3
	FoamColor    mgl32.Vec3
	FogDensity   float32
}

// DefaultOceanLook returns a clear-day palette.
func DefaultOceanLook() OceanLook {
	return OceanLook{
		SunDir:       lighting.Sun{Azimuth: 160, Elevation: 35}.Direction(),
		DeepColor:    mgl32.Vec3{0.01, 0.09, 0.18},
		ShallowColor: mgl32.Vec3{0.05, 0.32, 0.42},
		SkyColor:     mgl32.Vec3{0.62, 0.74, 0.85},
		FoamColor:    mgl32.Vec3{0.95, 0.97, 1.0},
		FogDensity:   0.00035,
	}
}

// OceanRenderer owns the GPU copy of an ocean mesh. It implements
// ocean.VertexSink: every tick the whole vertex buffer is overwritten in place.
type OceanRenderer struct {
	program *shader.Program

	vao uint32
	vbo uint32
	ebo uint32

	vertexCount int
	indexCount  int32

	Look  OceanLook
	Model mgl32.Mat4

	log *zap.Logger
}

// NewOceanRenderer compiles the ocean shaders and allocates buffers sized for
// mesh. The rest-state vertices are uploaded once so the first frame draws
// before the first tick.
func NewOceanRenderer(mesh *ocean.Mesh) (*OceanRenderer, error) {
	program, err := shader.NewProgram(shaders.OceanVertexShader, shaders.OceanFragmentShader,
		"uModel", "uViewProj", "uCameraPos", "uSunDir",
		"uDeepColor", "uShallowColor", "uSkyColor", "uFoamColor", "uFogDensity")
	if err != nil {
		return nil, fmt.Errorf("ocean shader: %w", err)
	}

	r := &OceanRenderer{
		program:     program,
		vertexCount: mesh.VertexCount(),
		indexCount:  int32(len(mesh.Indices)),
		Look:        DefaultOceanLook(),
		Model:       mgl32.Ident4(),
		log:         logger.Named("renderer"),
	}
	r.createBuffers(mesh)

	r.log.Info("ocean renderer ready",
		zap.Int("vertices", r.vertexCount),
		zap.Int32("indices", r.indexCount),
	)
	return r, nil
}

func (r *OceanRenderer) createBuffers(mesh *ocean.Mesh) {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*ocean.VertexStride,
		unsafe.Pointer(&mesh.Vertices[0]), gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4,
		unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	attribs := []struct {
		size   int32
		offset uintptr
	}{
		{3, ocean.OffsetPosition},
		{3, ocean.OffsetNormal},
		{3, ocean.OffsetOriginal},
		{2, ocean.OffsetTexCoord},
		{1, ocean.OffsetFoam},
	}
	for loc, a := range attribs {
		gl.VertexAttribPointerWithOffset(uint32(loc), a.size, gl.FLOAT, false, ocean.VertexStride, a.offset)
		gl.EnableVertexAttribArray(uint32(loc))
	}

	gl.BindVertexArray(0)
}

// UpdateVertexData overwrites the GPU vertex buffer. The slice length must
// match the mesh the renderer was built for.
func (r *OceanRenderer) UpdateVertexData(vertices []ocean.Vertex) {
	if len(vertices) != r.vertexCount {
		r.log.Error("vertex count changed",
			zap.Int("want", r.vertexCount),
			zap.Int("got", len(vertices)),
		)
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*ocean.VertexStride, unsafe.Pointer(&vertices[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws the surface.
func (r *OceanRenderer) Render(viewProj mgl32.Mat4, cameraPos mgl32.Vec3) {
	if r.vao == 0 {
		return
	}

	p := r.program
	p.Use()
	p.SetMat4("uModel", r.Model)
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uCameraPos", cameraPos)
	p.SetVec3("uSunDir", r.Look.SunDir)
	p.SetVec3("uDeepColor", r.Look.DeepColor)
	p.SetVec3("uShallowColor", r.Look.ShallowColor)
	p.SetVec3("uSkyColor", r.Look.SkyColor)
	p.SetVec3("uFoamColor", r.Look.FoamColor)
	p.SetFloat("uFogDensity", r.Look.FogDensity)

	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (r *OceanRenderer) Destroy() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.program != nil {
		r.program.Delete()
	}
}
