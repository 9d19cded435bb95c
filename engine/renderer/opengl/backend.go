package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/navview/engine/core"
	"github.com/spaghettifunk/navview/engine/math"
	"github.com/spaghettifunk/navview/engine/renderer/metadata"
)

const initialGeometryCapacity = 4096

// OpenGLRenderer draws geometry buffers with an OpenGL 4.1 core context. The
// context must be current on the calling thread.
type OpenGLRenderer struct {
	shaderSource ShaderSource
	shader       *OpenGLShader

	ids        *core.IdentifierPool
	geometries []*OpenGLGeometry

	initialized bool
	FrameNumber uint64
}

func New(shaderSource ShaderSource) *OpenGLRenderer {
	return &OpenGLRenderer{
		shaderSource: shaderSource,
		ids:          core.NewIdentifierPool(initialGeometryCapacity),
		geometries:   make([]*OpenGLGeometry, 0, initialGeometryCapacity),
	}
}

func (r *OpenGLRenderer) Initialize(appName string) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	core.LogInfo("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
	core.LogInfo("OpenGL vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	core.LogInfo("OpenGL renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))

	shader, err := NewShader(BUILTIN_SHADER_NAME_GEOMETRY, r.shaderSource)
	if err != nil {
		// keep running, frames are cleared but nothing is drawn
		core.LogError("failed to create the geometry shader: %s", err)
	}
	r.shader = shader

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	r.initialized = true
	core.LogInfo("OpenGL renderer initialized for `%s`", appName)
	return nil
}

func (r *OpenGLRenderer) Shutdown() error {
	if !r.initialized {
		return nil
	}
	for id, g := range r.geometries {
		if g == nil {
			continue
		}
		g.destroy()
		r.geometries[id] = nil
		_ = r.ids.Release(uint32(id))
	}
	if r.shader != nil {
		r.shader.Destroy()
		r.shader = nil
	}
	r.initialized = false
	return nil
}

func (r *OpenGLRenderer) BeginFrame(clear math.Vec4, width, height uint32) error {
	if !r.initialized {
		return core.ErrBackendNotInitialized
	}
	gl.ClearColor(clear.X, clear.Y, clear.Z, clear.W)
	gl.Viewport(0, 0, int32(width), int32(height))
	// depth writes must be on for the depth clear to take effect
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.shader != nil {
		r.shader.Use()
	}
	return nil
}

func (r *OpenGLRenderer) EndFrame() error {
	gl.UseProgram(0)
	r.FrameNumber++
	return nil
}

func (r *OpenGLRenderer) SetWireframe(enabled bool) {
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (r *OpenGLRenderer) SetDepthWrite(enabled bool) {
	gl.DepthMask(enabled)
}

func (r *OpenGLRenderer) SetViewProjection(mvp math.Mat4) {
	if r.shader == nil || r.shader.MvpLocation < 0 {
		return
	}
	gl.UniformMatrix4fv(r.shader.MvpLocation, 1, false, &mvp.Data[0])
}

func (r *OpenGLRenderer) CreateGeometry(g *metadata.GeometryBuffer) error {
	if !r.initialized {
		return core.ErrBackendNotInitialized
	}
	if g.IsEmpty() {
		return fmt.Errorf("%w: buffer %s has no vertices", core.ErrGeometryUpload, g.ID)
	}

	// drop errors raised by earlier calls
	for gl.GetError() != gl.NO_ERROR {
	}

	id := r.ids.Acquire(g)
	geometry := newOpenGLGeometry(g)
	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		geometry.destroy()
		_ = r.ids.Release(id)
		return fmt.Errorf("%w: buffer %s: GL error 0x%x", core.ErrGeometryUpload, g.ID, errCode)
	}

	for int(id) >= len(r.geometries) {
		r.geometries = append(r.geometries, nil)
	}
	r.geometries[id] = geometry
	g.InternalID = id
	return nil
}

func (r *OpenGLRenderer) DestroyGeometry(g *metadata.GeometryBuffer) {
	geometry := r.lookup(g)
	if geometry == nil {
		core.LogWarn("destroy of unknown geometry %s (internal id %d)", g.ID, g.InternalID)
		return
	}
	geometry.destroy()
	r.geometries[g.InternalID] = nil
	if err := r.ids.Release(g.InternalID); err != nil {
		core.LogWarn(err.Error())
	}
}

func (r *OpenGLRenderer) DrawGeometry(g *metadata.GeometryBuffer) {
	if r.shader == nil {
		return
	}
	if geometry := r.lookup(g); geometry != nil {
		geometry.draw()
	}
}

// lookup returns the handles uploaded for g, checking the id still belongs to it.
func (r *OpenGLRenderer) lookup(g *metadata.GeometryBuffer) *OpenGLGeometry {
	if int(g.InternalID) >= len(r.geometries) {
		return nil
	}
	if owner, ok := r.ids.Owner(g.InternalID).(*metadata.GeometryBuffer); !ok || owner != g {
		return nil
	}
	return r.geometries[g.InternalID]
}
