package renderer

import (
	"github.com/spaghettifunk/navview/engine/math"
	"github.com/spaghettifunk/navview/engine/renderer/metadata"
)

// RendererBackend is the graphics API the geometry pool drives. The pool owns
// the draw order and the buffer lifecycle, the backend owns GPU handles.
type RendererBackend interface {
	Initialize(appName string) error
	Shutdown() error
	// BeginFrame clears colour and depth and sets the viewport.
	BeginFrame(clear math.Vec4, width, height uint32) error
	EndFrame() error
	SetWireframe(enabled bool)
	SetDepthWrite(enabled bool)
	SetViewProjection(mvp math.Mat4)
	// CreateGeometry allocates the GPU storage of g and sets g.InternalID.
	CreateGeometry(g *metadata.GeometryBuffer) error
	// DestroyGeometry is only called for uploaded buffers.
	DestroyGeometry(g *metadata.GeometryBuffer)
	DrawGeometry(g *metadata.GeometryBuffer)
}
