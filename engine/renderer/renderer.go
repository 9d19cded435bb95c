package renderer

import (
	"fmt"

	"github.com/spaghettifunk/navview/engine/core"
	"github.com/spaghettifunk/navview/engine/math"
	"github.com/spaghettifunk/navview/engine/renderer/metadata"
	"github.com/spaghettifunk/navview/engine/renderer/shapes"
)

const (
	// PathSphereRadius and PathSphereLevel describe the marker put on every
	// waypoint of a path.
	PathSphereRadius float32 = 1.5
	PathSphereLevel  int     = 1

	arrowHeadLength float32 = 1.0
	arrowHeadWidth  float32 = 0.5
	maxArrowHeads           = 1024
)

// Viewer is what the pool needs from a camera to draw and to pick.
type Viewer interface {
	GetViewMatrix() math.Mat4
	GetProjectionMatrix() math.Mat4
	GetPickRay(screenX, screenY float32) math.Ray
}

// HitResult is the closest triangle crossed by a pick ray.
type HitResult struct {
	Position      math.Vec3
	UserParameter uint32
	Distance      float32
	Category      metadata.Category
}

type renderPass struct {
	depthWrite bool
	categories []metadata.Category
}

// Opaque geometry first, then the translucent layers without depth writes so
// they do not hide each other, then the debug markers on top.
var renderPasses = []renderPass{
	{
		depthWrite: true,
		categories: []metadata.Category{
			metadata.CategoryTerrain,
			metadata.CategoryWmo,
			metadata.CategoryDoodad,
			metadata.CategoryGameObject,
		},
	},
	{
		depthWrite: false,
		categories: []metadata.Category{
			metadata.CategoryLiquid,
			metadata.CategoryNavMesh,
		},
	},
	{
		depthWrite: true,
		categories: []metadata.Category{
			metadata.CategorySphere,
			metadata.CategoryLine,
			metadata.CategoryArrow,
		},
	},
}

// Renderer owns every geometry buffer of the viewer. Buffers are built on the
// CPU when inserted and uploaded lazily by the first frame that draws them.
// It is not safe for concurrent use.
type Renderer struct {
	backend RendererBackend
	palette metadata.Palette
	flags   metadata.RenderFlags

	buffers [metadata.CategoryCount][]*metadata.GeometryBuffer
	wmos    map[uint32]struct{}
	doodads map[uint32]struct{}

	initialized bool
}

type Option func(*Renderer)

// WithPalette overrides the default colours. Buffers keep the colour they
// were inserted with.
func WithPalette(p metadata.Palette) Option {
	return func(r *Renderer) {
		r.palette = p
	}
}

func WithRenderFlags(f metadata.RenderFlags) Option {
	return func(r *Renderer) {
		r.flags = f
	}
}

func New(backend RendererBackend, opts ...Option) *Renderer {
	r := &Renderer{
		backend: backend,
		palette: metadata.DefaultPalette(),
		flags:   metadata.DefaultRenderFlags(),
		wmos:    make(map[uint32]struct{}),
		doodads: make(map[uint32]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Initialize(appName string) error {
	if r.initialized {
		return nil
	}
	if err := r.backend.Initialize(appName); err != nil {
		return fmt.Errorf("failed to initialize renderer backend: %w", err)
	}
	r.initialized = true
	core.LogInfo("renderer initialized")
	return nil
}

// Shutdown releases the GPU resources of every buffer, then the backend.
// Calling it again does nothing.
func (r *Renderer) Shutdown() error {
	if !r.initialized {
		return nil
	}
	r.ClearAll()
	r.initialized = false
	if err := r.backend.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown renderer backend: %w", err)
	}
	core.LogInfo("renderer shutdown")
	return nil
}

func (r *Renderer) Palette() metadata.Palette {
	return r.palette
}

// InsertBuffer builds one new buffer in category. Every vertex gets colour
// and a +Z normal, replaced by the face normal of its last triangle when
// generateNormals is set. Primitives referencing missing vertices are dropped.
func (r *Renderer) InsertBuffer(category metadata.Category, colour math.Vec4, vertices []math.Vec3, indices []uint32, userParameter uint32, generateNormals bool) {
	if category >= metadata.CategoryCount {
		core.LogWarn("insert into unknown category %d ignored", category)
		return
	}

	topology := metadata.TopologyTriangles
	if category == metadata.CategoryLine || category == metadata.CategoryArrow {
		topology = metadata.TopologyLines
	}
	buffer := metadata.NewGeometryBuffer(category, topology, userParameter)

	var normals []math.Vec3
	if generateNormals && topology == metadata.TopologyTriangles && len(indices) >= 3 {
		normals = math.GenerateFaceNormals(vertices, indices, math.NewVec3WorldUp())
	}

	buffer.Vertices = make([]metadata.ColoredVertex, len(vertices))
	for i, v := range vertices {
		normal := math.NewVec3WorldUp()
		if normals != nil {
			normal = normals[i]
		}
		buffer.Vertices[i] = metadata.ColoredVertex{
			Position: v,
			Normal:   normal,
			Colour:   colour,
		}
	}

	buffer.Indices = sanitizeIndices(indices, uint32(len(vertices)), topology.IndicesPerPrimitive())
	if len(indices) > 0 && len(buffer.Indices) == 0 {
		// nothing drawable is left, and drawing the vertices unindexed would
		// show primitives the caller never asked for
		core.LogWarn("geometry buffer %s (%s) has no valid primitive, keeping it empty", buffer.ID, category)
		buffer.Vertices = nil
	} else if len(buffer.Indices) != len(indices) {
		core.LogDebug("geometry buffer %s (%s): dropped %d invalid indices", buffer.ID, category, len(indices)-len(buffer.Indices))
	}

	r.buffers[category] = append(r.buffers[category], buffer)
}

// sanitizeIndices keeps the complete primitives whose indices are all below
// vertexCount, in their original order.
func sanitizeIndices(indices []uint32, vertexCount uint32, stride int) []uint32 {
	out := make([]uint32, 0, len(indices)-len(indices)%stride)
	for i := 0; i+stride <= len(indices); i += stride {
		valid := true
		for _, idx := range indices[i : i+stride] {
			if idx >= vertexCount {
				valid = false
				break
			}
		}
		if valid {
			out = append(out, indices[i:i+stride]...)
		}
	}
	return out
}

func (r *Renderer) insert(category metadata.Category, vertices []math.Vec3, indices []uint32, userParameter uint32, generateNormals bool) {
	r.InsertBuffer(category, r.palette.Categories[category], vertices, indices, userParameter, generateNormals)
}

// AddTerrain adds a terrain chunk. areaID comes back from hit tests.
func (r *Renderer) AddTerrain(vertices []math.Vec3, indices []uint32, areaID uint32) {
	r.insert(metadata.CategoryTerrain, vertices, indices, areaID, true)
}

func (r *Renderer) AddLiquid(vertices []math.Vec3, indices []uint32) {
	r.insert(metadata.CategoryLiquid, vertices, indices, 0, true)
}

// AddWmo adds the geometry of a WMO instance and records its id. Callers
// check HasWmo first, duplicates are not rejected.
func (r *Renderer) AddWmo(id uint32, vertices []math.Vec3, indices []uint32) {
	r.wmos[id] = struct{}{}
	r.insert(metadata.CategoryWmo, vertices, indices, id, true)
}

// AddDoodad adds the geometry of a doodad instance and records its id.
func (r *Renderer) AddDoodad(id uint32, vertices []math.Vec3, indices []uint32) {
	r.doodads[id] = struct{}{}
	r.insert(metadata.CategoryDoodad, vertices, indices, id, true)
}

// AddMesh adds navigation mesh polygons, in the steep colour when steep is set.
func (r *Renderer) AddMesh(vertices []math.Vec3, indices []uint32, steep bool) {
	colour := r.palette.Categories[metadata.CategoryNavMesh]
	if steep {
		colour = r.palette.NavMeshSteep
	}
	r.InsertBuffer(metadata.CategoryNavMesh, colour, vertices, indices, 0, true)
}

// AddLines adds line segments, indices taken in pairs.
func (r *Renderer) AddLines(vertices []math.Vec3, indices []uint32) {
	r.insert(metadata.CategoryLine, vertices, indices, 0, false)
}

func (r *Renderer) AddGameObject(vertices []math.Vec3, indices []uint32) {
	r.insert(metadata.CategoryGameObject, vertices, indices, 0, true)
}

// AddSphere adds an icosphere marker.
func (r *Renderer) AddSphere(position math.Vec3, radius float32, level int) {
	vertices, indices := shapes.GenerateIcosphere(position, radius, level)
	r.insert(metadata.CategorySphere, vertices, indices, 0, true)
}

// AddPath marks every waypoint with a sphere and joins them with one line
// buffer. Paths with less than two points are ignored.
func (r *Renderer) AddPath(path []math.Vec3) {
	if len(path) < 2 {
		return
	}

	for _, p := range path {
		r.AddSphere(p, PathSphereRadius, PathSphereLevel)
	}

	vertices := make([]math.Vec3, 0, 2*(len(path)-1))
	indices := make([]uint32, 0, 2*(len(path)-1))
	for i := 0; i+1 < len(path); i++ {
		vertices = append(vertices, path[i], path[i+1])
		indices = append(indices, uint32(2*i), uint32(2*i+1))
	}
	r.AddLines(vertices, indices)
}

// AddArrows draws a line from start to end with a chevron pointing at end
// every step units, and one at end. A non positive step only puts the head
// at end.
func (r *Renderer) AddArrows(start, end math.Vec3, step float32) {
	vertices := []math.Vec3{start, end}
	indices := []uint32{0, 1}

	shaft := end.Sub(start)
	length := shaft.Length()
	if length > math.K_FLOAT_EPSILON {
		dir := shaft.MulScalar(1.0 / length)
		side := dir.Cross(math.NewVec3WorldUp())
		if side.Length() < math.K_FLOAT_EPSILON {
			// vertical arrow
			side = dir.Cross(math.NewVec3Right())
		}
		side = side.Normalize().MulScalar(arrowHeadWidth)
		back := dir.MulScalar(-arrowHeadLength)

		head := func(tip math.Vec3) {
			base := uint32(len(vertices))
			vertices = append(vertices, tip, tip.Add(back).Add(side), tip.Add(back).Sub(side))
			indices = append(indices, base, base+1, base, base+2)
		}

		if step > 0 {
			if length/step > maxArrowHeads {
				step = length / maxArrowHeads
			}
			for d := step; d < length; d += step {
				head(start.Add(dir.MulScalar(d)))
			}
		}
		head(end)
	}

	r.insert(metadata.CategoryArrow, vertices, indices, 0, false)
}

func (r *Renderer) HasWmo(id uint32) bool {
	_, ok := r.wmos[id]
	return ok
}

func (r *Renderer) HasDoodad(id uint32) bool {
	_, ok := r.doodads[id]
	return ok
}

// Buffers returns the buffers of category in insertion order. The slice is
// owned by the renderer.
func (r *Renderer) Buffers(category metadata.Category) []*metadata.GeometryBuffer {
	if category >= metadata.CategoryCount {
		return nil
	}
	return r.buffers[category]
}

// BufferCount returns the number of buffers across all categories.
func (r *Renderer) BufferCount() int {
	n := 0
	for _, list := range r.buffers {
		n += len(list)
	}
	return n
}

func (r *Renderer) upload(buffer *metadata.GeometryBuffer) {
	if buffer.Uploaded || buffer.UploadFailed || buffer.IsEmpty() {
		return
	}
	if err := r.backend.CreateGeometry(buffer); err != nil {
		// not retried, the frame goes on without it
		buffer.UploadFailed = true
		core.LogError("failed to upload geometry buffer %s (%s): %s", buffer.ID, buffer.Category, err)
		return
	}
	buffer.Uploaded = true
}

func (r *Renderer) release(buffer *metadata.GeometryBuffer) {
	if !buffer.Uploaded {
		return
	}
	r.backend.DestroyGeometry(buffer)
	buffer.Uploaded = false
	buffer.InternalID = 0
}

func (r *Renderer) draw(buffer *metadata.GeometryBuffer) {
	if !buffer.Uploaded || buffer.IsEmpty() {
		return
	}
	r.backend.DrawGeometry(buffer)
}

// Render draws one frame of every enabled category as seen by viewer.
func (r *Renderer) Render(viewer Viewer, width, height uint32) error {
	if !r.initialized {
		return core.ErrBackendNotInitialized
	}

	if err := r.backend.BeginFrame(r.palette.Background, width, height); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}

	mvp := viewer.GetProjectionMatrix().Mul(viewer.GetViewMatrix())
	r.backend.SetViewProjection(mvp)
	r.backend.SetWireframe(r.flags.Wireframe)

	for _, pass := range renderPasses {
		r.backend.SetDepthWrite(pass.depthWrite)
		for _, category := range pass.categories {
			if !r.IsCategoryEnabled(category) {
				continue
			}
			for _, buffer := range r.buffers[category] {
				r.upload(buffer)
				r.draw(buffer)
			}
		}
	}

	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("failed to end frame: %w", err)
	}
	return nil
}

// ClearBuffers releases and forgets every buffer of category.
func (r *Renderer) ClearBuffers(category metadata.Category) {
	if category >= metadata.CategoryCount {
		return
	}
	for _, buffer := range r.buffers[category] {
		r.release(buffer)
	}
	r.buffers[category] = nil
}

// ClearAll empties every category and both instance registries.
func (r *Renderer) ClearAll() {
	for c := metadata.Category(0); c < metadata.CategoryCount; c++ {
		r.ClearBuffers(c)
	}
	clear(r.wmos)
	clear(r.doodads)
}

// ClearSprites removes the debug markers: spheres, lines and arrows.
func (r *Renderer) ClearSprites() {
	r.ClearBuffers(metadata.CategorySphere)
	r.ClearBuffers(metadata.CategoryLine)
	r.ClearBuffers(metadata.CategoryArrow)
}

func (r *Renderer) ClearGameObjects() {
	r.ClearBuffers(metadata.CategoryGameObject)
}

func (r *Renderer) SetWireframe(enabled bool) {
	r.flags.Wireframe = enabled
}

func (r *Renderer) Wireframe() bool {
	return r.flags.Wireframe
}

// SetCategoryEnabled shows or hides a map geometry category from the next
// frame on. Markers and game objects are always drawn.
func (r *Renderer) SetCategoryEnabled(category metadata.Category, enabled bool) {
	switch category {
	case metadata.CategoryTerrain:
		r.flags.Terrain = enabled
	case metadata.CategoryLiquid:
		r.flags.Liquid = enabled
	case metadata.CategoryWmo:
		r.flags.Wmo = enabled
	case metadata.CategoryDoodad:
		r.flags.Doodad = enabled
	case metadata.CategoryNavMesh:
		r.flags.NavMesh = enabled
	default:
		core.LogWarn("category `%s` cannot be toggled", category)
	}
}

func (r *Renderer) IsCategoryEnabled(category metadata.Category) bool {
	switch category {
	case metadata.CategoryTerrain:
		return r.flags.Terrain
	case metadata.CategoryLiquid:
		return r.flags.Liquid
	case metadata.CategoryWmo:
		return r.flags.Wmo
	case metadata.CategoryDoodad:
		return r.flags.Doodad
	case metadata.CategoryNavMesh:
		return r.flags.NavMesh
	default:
		return category < metadata.CategoryCount
	}
}

func (r *Renderer) ApplyRenderFlags(flags metadata.RenderFlags) {
	r.flags = flags
}

func (r *Renderer) RenderFlags() metadata.RenderFlags {
	return r.flags
}

// HitTest casts the pick ray of viewer through the screen position and
// returns the closest triangle hit among the categories in mask. Every
// triangle is tested. On equal distances the first one found wins.
func (r *Renderer) HitTest(viewer Viewer, screenX, screenY float32, mask metadata.CategoryMask) (HitResult, bool) {
	ray := viewer.GetPickRay(screenX, screenY)

	result := HitResult{Distance: math.K_INFINITY}
	found := false

	for c := metadata.Category(0); c < metadata.CategoryCount; c++ {
		if !mask.Has(c) {
			continue
		}
		for _, buffer := range r.buffers[c] {
			if buffer.Topology != metadata.TopologyTriangles {
				continue
			}
			count := uint32(len(buffer.Vertices))
			for i := 0; i+2 < len(buffer.Indices); i += 3 {
				i0, i1, i2 := buffer.Indices[i], buffer.Indices[i+1], buffer.Indices[i+2]
				if i0 >= count || i1 >= count || i2 >= count {
					continue
				}
				t, ok := math.IntersectRayTriangle(ray,
					buffer.Vertices[i0].Position,
					buffer.Vertices[i1].Position,
					buffer.Vertices[i2].Position)
				if !ok || t >= result.Distance {
					continue
				}
				result = HitResult{
					Position:      ray.PointAt(t),
					UserParameter: buffer.UserParameter,
					Distance:      t,
					Category:      c,
				}
				found = true
			}
		}
	}

	if !found {
		return HitResult{}, false
	}
	return result, true
}
