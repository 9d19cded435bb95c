package debugdraw

import (
	"github.com/spaghettifunk/navview/engine/core"
	"github.com/spaghettifunk/navview/engine/math"
)

/** @brief The primitive kinds a batch can be announced as. */
type PrimitiveType uint8

const (
	PrimitivePoints PrimitiveType = iota
	PrimitiveLines
	PrimitiveTris
	PrimitiveQuads
)

func (p PrimitiveType) String() string {
	switch p {
	case PrimitivePoints:
		return "points"
	case PrimitiveLines:
		return "lines"
	case PrimitiveTris:
		return "tris"
	case PrimitiveQuads:
		return "quads"
	default:
		return "unknown"
	}
}

const (
	/**
	 * @brief Line batches announced with this width are helper lines (inner
	 * polygon boundaries) and are never drawn.
	 */
	IgnoredLineSize float32 = 1.5
	ignoredLineTolerance    = 0.001
)

/** @brief The renderer operations the adapter forwards batches to. */
type GeometrySink interface {
	AddSphere(position math.Vec3, radius float32, level int)
	AddLines(vertices []math.Vec3, indices []uint32)
	AddMesh(vertices []math.Vec3, indices []uint32, steep bool)
}

/**
 * @brief The immediate mode drawing protocol used by navigation mesh
 * tooling: Begin, any number of Vertex calls, End.
 */
type DebugDraw interface {
	DepthMask(state bool)
	Texture(state bool)
	Begin(prim PrimitiveType, size float32)
	Vertex(pos [3]float32, colour uint32)
	VertexXYZ(x, y, z float32, colour uint32)
	VertexUV(pos [3]float32, colour uint32, uv [2]float32)
	End()
}

/**
 * @brief Collects one batch at a time, sharing identical positions, and
 * turns it into renderer geometry on End.
 */
type Adapter struct {
	sink GeometrySink

	prim  PrimitiveType
	size  float32
	steep bool

	unique   map[math.Vec3]uint32
	vertices []math.Vec3
	indices  []uint32
	colours  []uint32
}

func NewAdapter(sink GeometrySink) *Adapter {
	return &Adapter{
		sink:   sink,
		prim:   PrimitivePoints,
		size:   1.0,
		unique: make(map[math.Vec3]uint32),
	}
}

// DepthMask is accepted for compatibility, depth state belongs to the renderer.
func (a *Adapter) DepthMask(state bool) {}

// Texture is accepted for compatibility, nothing is textured.
func (a *Adapter) Texture(state bool) {}

// SetSteep tags the following triangle batches as too steep to walk on.
func (a *Adapter) SetSteep(steep bool) {
	a.steep = steep
}

func (a *Adapter) Steep() bool {
	return a.steep
}

// Begin starts a new batch, dropping anything left from the previous one.
func (a *Adapter) Begin(prim PrimitiveType, size float32) {
	a.prim = prim
	a.size = size
	clear(a.unique)
	a.vertices = a.vertices[:0]
	a.indices = a.indices[:0]
	a.colours = a.colours[:0]
}

func (a *Adapter) Vertex(pos [3]float32, colour uint32) {
	a.VertexXYZ(pos[0], pos[1], pos[2], colour)
}

// VertexXYZ appends a vertex. A position already seen in this batch reuses
// its index and keeps its first colour.
func (a *Adapter) VertexXYZ(x, y, z float32, colour uint32) {
	v := math.NewVec3(x, y, z)
	if idx, ok := a.unique[v]; ok {
		a.indices = append(a.indices, idx)
		return
	}
	idx := uint32(len(a.vertices))
	a.vertices = append(a.vertices, v)
	a.indices = append(a.indices, idx)
	a.unique[v] = idx
	a.colours = append(a.colours, colour)
}

// VertexUV ignores uv.
func (a *Adapter) VertexUV(pos [3]float32, colour uint32, uv [2]float32) {
	a.VertexXYZ(pos[0], pos[1], pos[2], colour)
}

// End forwards the batch to the sink.
func (a *Adapter) End() {
	if a.prim == PrimitiveLines && math.Abs(a.size-IgnoredLineSize) < ignoredLineTolerance {
		return
	}
	if len(a.vertices) == 0 {
		return
	}

	// the sink keeps its own copies, the buffers here are reused by Begin
	switch a.prim {
	case PrimitivePoints:
		for _, v := range a.vertices {
			a.sink.AddSphere(v, a.size*0.5, 0)
		}
	case PrimitiveLines:
		a.sink.AddLines(a.vertices, a.indices)
	case PrimitiveTris:
		a.sink.AddMesh(a.vertices, a.indices, a.steep)
	case PrimitiveQuads:
		if len(a.indices)%4 != 0 {
			core.LogDebug("quad batch with %d indices dropped", len(a.indices))
			return
		}
		tris := make([]uint32, 0, len(a.indices)/4*6)
		for i := 0; i+3 < len(a.indices); i += 4 {
			tris = append(tris,
				a.indices[i], a.indices[i+1], a.indices[i+2],
				a.indices[i], a.indices[i+2], a.indices[i+3])
		}
		a.sink.AddMesh(a.vertices, tris, a.steep)
	default:
		core.LogWarn("unknown primitive type %d", a.prim)
	}
}

// BatchColours returns the colour of every unique vertex of the current batch.
func (a *Adapter) BatchColours() []uint32 {
	return a.colours
}

// RGBA packs a colour the way the drawing protocol expects it.
func RGBA(r, g, b, alpha uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(alpha)<<24
}

var _ DebugDraw = (*Adapter)(nil)
