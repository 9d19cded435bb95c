package renderer

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/navview/engine/core"
	"github.com/spaghettifunk/navview/engine/math"
	"github.com/spaghettifunk/navview/engine/renderer/components"
	"github.com/spaghettifunk/navview/engine/renderer/debugdraw"
	"github.com/spaghettifunk/navview/engine/renderer/metadata"
	"github.com/spaghettifunk/navview/engine/renderer/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawCall struct {
	buffer     *metadata.GeometryBuffer
	depthWrite bool
	wireframe  bool
}

// recordingBackend stands in for the GPU and remembers what it was asked to do.
type recordingBackend struct {
	initialized   bool
	shutdownCalls int

	frames     int
	clear      math.Vec4
	width      uint32
	height     uint32
	mvp        math.Mat4
	depthWrite bool
	wireframe  bool

	nextID    uint32
	created   map[*metadata.GeometryBuffer]int
	destroyed map[*metadata.GeometryBuffer]int
	draws     []drawCall

	failCategory *metadata.Category
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		created:   make(map[*metadata.GeometryBuffer]int),
		destroyed: make(map[*metadata.GeometryBuffer]int),
	}
}

func (b *recordingBackend) Initialize(appName string) error {
	b.initialized = true
	return nil
}

func (b *recordingBackend) Shutdown() error {
	b.shutdownCalls++
	return nil
}

func (b *recordingBackend) BeginFrame(clear math.Vec4, width, height uint32) error {
	b.frames++
	b.clear = clear
	b.width = width
	b.height = height
	b.draws = b.draws[:0]
	return nil
}

func (b *recordingBackend) EndFrame() error { return nil }

func (b *recordingBackend) SetWireframe(enabled bool) { b.wireframe = enabled }

func (b *recordingBackend) SetDepthWrite(enabled bool) { b.depthWrite = enabled }

func (b *recordingBackend) SetViewProjection(mvp math.Mat4) { b.mvp = mvp }

func (b *recordingBackend) CreateGeometry(g *metadata.GeometryBuffer) error {
	b.created[g]++
	if b.failCategory != nil && *b.failCategory == g.Category {
		return core.ErrGeometryUpload
	}
	b.nextID++
	g.InternalID = b.nextID
	return nil
}

func (b *recordingBackend) DestroyGeometry(g *metadata.GeometryBuffer) {
	b.destroyed[g]++
}

func (b *recordingBackend) DrawGeometry(g *metadata.GeometryBuffer) {
	b.draws = append(b.draws, drawCall{buffer: g, depthWrite: b.depthWrite, wireframe: b.wireframe})
}

func (b *recordingBackend) drawnCategories() []metadata.Category {
	out := make([]metadata.Category, 0, len(b.draws))
	for _, d := range b.draws {
		out = append(out, d.buffer.Category)
	}
	return out
}

func newTestRenderer(t *testing.T, opts ...Option) (*Renderer, *recordingBackend) {
	t.Helper()
	backend := newRecordingBackend()
	r := New(backend, opts...)
	require.NoError(t, r.Initialize("navview-test"))
	return r, backend
}

var (
	triangle        = []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	triangleIndices = []uint32{0, 1, 2}
)

// quad returns two triangles covering [minX,maxX]x[minY,maxY] at height z.
func quad(minX, minY, maxX, maxY, z float32) ([]math.Vec3, []uint32) {
	return []math.Vec3{
		{X: minX, Y: minY, Z: z},
		{X: maxX, Y: minY, Z: z},
		{X: maxX, Y: maxY, Z: z},
		{X: minX, Y: maxY, Z: z},
	}, []uint32{0, 1, 2, 0, 2, 3}
}

func fillEveryCategory(r *Renderer) {
	r.AddArrows(math.NewVec3(0, 0, 0), math.NewVec3(5, 0, 0), 0)
	r.AddLines([]math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}}, []uint32{0, 1})
	r.AddSphere(math.NewVec3(0, 0, 0), 1, 0)
	r.AddMesh(triangle, triangleIndices, false)
	r.AddLiquid(triangle, triangleIndices)
	r.AddGameObject(triangle, triangleIndices)
	r.AddDoodad(3, triangle, triangleIndices)
	r.AddWmo(2, triangle, triangleIndices)
	r.AddTerrain(triangle, triangleIndices, 1)
}

func TestRenderLayering(t *testing.T) {
	r, backend := newTestRenderer(t)
	fillEveryCategory(r)

	camera := components.NewCamera()
	require.NoError(t, r.Render(camera, 1024, 768))

	assert.Equal(t, []metadata.Category{
		metadata.CategoryTerrain,
		metadata.CategoryWmo,
		metadata.CategoryDoodad,
		metadata.CategoryGameObject,
		metadata.CategoryLiquid,
		metadata.CategoryNavMesh,
		metadata.CategorySphere,
		metadata.CategoryLine,
		metadata.CategoryArrow,
	}, backend.drawnCategories())

	for _, d := range backend.draws {
		translucent := d.buffer.Category == metadata.CategoryLiquid || d.buffer.Category == metadata.CategoryNavMesh
		assert.Equal(t, !translucent, d.depthWrite, "depth write of %s", d.buffer.Category)
		assert.False(t, d.wireframe)
	}
	assert.True(t, backend.depthWrite, "depth write is restored for the next frame")

	assert.Equal(t, metadata.DefaultPalette().Background, backend.clear)
	assert.Equal(t, uint32(1024), backend.width)
	assert.Equal(t, uint32(768), backend.height)
	assert.Equal(t, camera.GetProjectionMatrix().Mul(camera.GetViewMatrix()), backend.mvp)
}

func TestRenderWithoutInitialize(t *testing.T) {
	r := New(newRecordingBackend())
	err := r.Render(components.NewCamera(), 800, 600)
	assert.ErrorIs(t, err, core.ErrBackendNotInitialized)
}

func TestUploadIsLazyAndHappensOnce(t *testing.T) {
	r, backend := newTestRenderer(t)
	r.AddTerrain(triangle, triangleIndices, 0)
	r.AddWmo(9, triangle, triangleIndices)

	assert.Empty(t, backend.created, "nothing is uploaded before the first frame")
	for _, b := range r.Buffers(metadata.CategoryTerrain) {
		assert.False(t, b.Uploaded)
	}

	camera := components.NewCamera()
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Render(camera, 800, 600))
		assert.Len(t, backend.draws, 2)
	}

	require.Len(t, backend.created, 2)
	for b, n := range backend.created {
		assert.Equal(t, 1, n)
		assert.True(t, b.Uploaded)
		assert.NotZero(t, b.InternalID)
	}
}

func TestBuffersInsertedBetweenFramesAreUploaded(t *testing.T) {
	r, backend := newTestRenderer(t)
	camera := components.NewCamera()

	r.AddTerrain(triangle, triangleIndices, 0)
	require.NoError(t, r.Render(camera, 800, 600))
	r.AddSphere(math.NewVec3(1, 1, 1), 2, 1)
	require.NoError(t, r.Render(camera, 800, 600))

	assert.Len(t, backend.created, 2)
	assert.Len(t, backend.draws, 2)
}

func TestUploadFailureSkipsOnlyThatBuffer(t *testing.T) {
	r, backend := newTestRenderer(t)
	failing := metadata.CategoryDoodad
	backend.failCategory = &failing

	r.AddTerrain(triangle, triangleIndices, 0)
	r.AddDoodad(4, triangle, triangleIndices)

	camera := components.NewCamera()
	require.NoError(t, r.Render(camera, 800, 600))
	require.NoError(t, r.Render(camera, 800, 600))

	assert.Equal(t, []metadata.Category{metadata.CategoryTerrain}, backend.drawnCategories())

	doodad := r.Buffers(metadata.CategoryDoodad)[0]
	assert.True(t, doodad.UploadFailed)
	assert.False(t, doodad.Uploaded)
	assert.Equal(t, 1, backend.created[doodad], "a failed upload is not retried")

	r.ClearAll()
	assert.Zero(t, backend.destroyed[doodad])
}

func TestEmptyBufferIsNeverUploaded(t *testing.T) {
	r, backend := newTestRenderer(t)
	r.AddTerrain(nil, nil, 5)
	require.Equal(t, 1, r.BufferCount())

	require.NoError(t, r.Render(components.NewCamera(), 800, 600))
	assert.Empty(t, backend.created)
	assert.Empty(t, backend.draws)
}

func TestCategoryToggles(t *testing.T) {
	r, backend := newTestRenderer(t)
	fillEveryCategory(r)
	camera := components.NewCamera()

	for _, c := range []metadata.Category{
		metadata.CategoryTerrain,
		metadata.CategoryLiquid,
		metadata.CategoryWmo,
		metadata.CategoryDoodad,
		metadata.CategoryNavMesh,
	} {
		r.SetCategoryEnabled(c, false)
	}
	// not toggleable, stays visible
	r.SetCategoryEnabled(metadata.CategorySphere, false)
	r.SetCategoryEnabled(metadata.CategoryGameObject, false)
	r.SetWireframe(true)

	require.NoError(t, r.Render(camera, 800, 600))
	assert.Equal(t, []metadata.Category{
		metadata.CategoryGameObject,
		metadata.CategorySphere,
		metadata.CategoryLine,
		metadata.CategoryArrow,
	}, backend.drawnCategories())
	for _, d := range backend.draws {
		assert.True(t, d.wireframe)
	}

	// hidden buffers are not uploaded either
	for _, b := range r.Buffers(metadata.CategoryTerrain) {
		assert.False(t, b.Uploaded)
	}

	r.ApplyRenderFlags(metadata.DefaultRenderFlags())
	assert.False(t, r.Wireframe())
	require.NoError(t, r.Render(camera, 800, 600))
	assert.Len(t, backend.draws, 9)
}

func TestInsertBufferVertices(t *testing.T) {
	r, _ := newTestRenderer(t)
	colour := math.NewVec4(0.1, 0.2, 0.3, 0.4)

	// clockwise seen from +Z, so the face normal is -Z
	vertices := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 5, Y: 5, Z: 5}}
	r.InsertBuffer(metadata.CategoryGameObject, colour, vertices, []uint32{0, 1, 2}, 77, true)
	r.InsertBuffer(metadata.CategoryGameObject, colour, vertices, []uint32{0, 1, 2}, 78, false)

	buffers := r.Buffers(metadata.CategoryGameObject)
	require.Len(t, buffers, 2)

	withNormals := buffers[0]
	assert.Equal(t, uint32(77), withNormals.UserParameter)
	assert.Equal(t, metadata.TopologyTriangles, withNormals.Topology)
	require.Len(t, withNormals.Vertices, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, vertices[i], withNormals.Vertices[i].Position)
		assert.Equal(t, colour, withNormals.Vertices[i].Colour)
		assert.Equal(t, math.NewVec3(0, 0, -1), withNormals.Vertices[i].Normal)
	}
	// not part of any triangle
	assert.Equal(t, math.NewVec3(0, 0, 1), withNormals.Vertices[3].Normal)

	for _, v := range buffers[1].Vertices {
		assert.Equal(t, math.NewVec3(0, 0, 1), v.Normal)
	}
}

func TestInsertBufferDropsInvalidPrimitives(t *testing.T) {
	r, _ := newTestRenderer(t)
	vertices := []math.Vec3{{X: 0}, {X: 1}, {Y: 1}, {Z: 1}}

	r.InsertBuffer(metadata.CategoryTerrain, math.NewVec4(1, 1, 1, 1), vertices, []uint32{0, 1, 2, 0, 1, 9, 2, 3, 1, 2, 3}, 0, true)
	b := r.Buffers(metadata.CategoryTerrain)[0]
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 1}, b.Indices)
	for _, idx := range b.Indices {
		assert.Less(t, int(idx), len(b.Vertices))
	}

	r.AddLines(vertices, []uint32{0, 1, 4, 2, 3})
	lines := r.Buffers(metadata.CategoryLine)[0]
	assert.Equal(t, metadata.TopologyLines, lines.Topology)
	assert.Equal(t, []uint32{0, 1}, lines.Indices)

	// nothing valid left
	r.AddGameObject(vertices, []uint32{7, 8, 9})
	g := r.Buffers(metadata.CategoryGameObject)[0]
	assert.True(t, g.IsEmpty())
	assert.False(t, g.IsIndexed())
}

func TestInsertNeverMutatesExistingBuffers(t *testing.T) {
	r, _ := newTestRenderer(t)
	vertices := []math.Vec3{{X: 0}, {X: 1}, {Y: 1}}
	r.AddLiquid(vertices, triangleIndices)
	first := r.Buffers(metadata.CategoryLiquid)[0]
	before := append([]metadata.ColoredVertex(nil), first.Vertices...)

	vertices[0] = math.NewVec3(100, 100, 100)
	r.AddLiquid(vertices, triangleIndices)

	require.Len(t, r.Buffers(metadata.CategoryLiquid), 2)
	assert.Equal(t, before, first.Vertices)
}

func TestMeshColours(t *testing.T) {
	palette := metadata.DefaultPalette()
	palette.Categories[metadata.CategoryNavMesh] = math.NewVec4(0, 1, 0, 1)
	r, _ := newTestRenderer(t, WithPalette(palette))

	r.AddMesh(triangle, triangleIndices, false)
	r.AddMesh(triangle, triangleIndices, true)

	meshes := r.Buffers(metadata.CategoryNavMesh)
	require.Len(t, meshes, 2)
	assert.Equal(t, math.NewVec4(0, 1, 0, 1), meshes[0].Vertices[0].Colour)
	assert.Equal(t, palette.NavMeshSteep, meshes[1].Vertices[0].Colour)
}

func TestInstanceRegistries(t *testing.T) {
	r, _ := newTestRenderer(t)

	assert.False(t, r.HasWmo(10))
	r.AddWmo(10, triangle, triangleIndices)
	r.AddWmo(10, triangle, triangleIndices)
	r.AddDoodad(20, triangle, triangleIndices)

	assert.True(t, r.HasWmo(10))
	assert.False(t, r.HasWmo(20))
	assert.True(t, r.HasDoodad(20))
	assert.False(t, r.HasDoodad(10))
	assert.Len(t, r.Buffers(metadata.CategoryWmo), 2, "duplicates are accepted")
	assert.Equal(t, uint32(10), r.Buffers(metadata.CategoryWmo)[1].UserParameter)

	r.ClearBuffers(metadata.CategoryWmo)
	assert.True(t, r.HasWmo(10), "clearing a category keeps the registry")

	r.ClearAll()
	assert.False(t, r.HasWmo(10))
	assert.False(t, r.HasDoodad(20))
	assert.Zero(t, r.BufferCount())
}

func TestClearReleasesUploadedBuffers(t *testing.T) {
	r, backend := newTestRenderer(t)
	fillEveryCategory(r)
	require.NoError(t, r.Render(components.NewCamera(), 800, 600))

	spheres := r.Buffers(metadata.CategorySphere)
	terrain := r.Buffers(metadata.CategoryTerrain)

	r.ClearSprites()
	assert.Empty(t, r.Buffers(metadata.CategorySphere))
	assert.Empty(t, r.Buffers(metadata.CategoryLine))
	assert.Empty(t, r.Buffers(metadata.CategoryArrow))
	assert.Len(t, r.Buffers(metadata.CategoryTerrain), 1)
	assert.Equal(t, 1, backend.destroyed[spheres[0]])
	assert.False(t, spheres[0].Uploaded)
	assert.Zero(t, backend.destroyed[terrain[0]])

	r.ClearGameObjects()
	assert.Empty(t, r.Buffers(metadata.CategoryGameObject))
	assert.Len(t, r.Buffers(metadata.CategoryLiquid), 1)

	// a buffer that never reached the GPU has nothing to release
	r.AddTerrain(triangle, triangleIndices, 0)
	pending := r.Buffers(metadata.CategoryTerrain)[1]
	r.ClearBuffers(metadata.CategoryTerrain)
	assert.Zero(t, backend.destroyed[pending])
	assert.Equal(t, 1, backend.destroyed[terrain[0]])
}

func TestShutdownReleasesEverythingOnce(t *testing.T) {
	r, backend := newTestRenderer(t)
	fillEveryCategory(r)
	require.NoError(t, r.Render(components.NewCamera(), 800, 600))
	require.Len(t, backend.created, 9)

	require.NoError(t, r.Shutdown())
	require.NoError(t, r.Shutdown())

	assert.Equal(t, 1, backend.shutdownCalls)
	assert.Len(t, backend.destroyed, 9)
	for b, n := range backend.destroyed {
		assert.Equal(t, 1, n, "buffer %s", b.ID)
	}
	assert.Zero(t, r.BufferCount())
	assert.ErrorIs(t, r.Render(components.NewCamera(), 800, 600), core.ErrBackendNotInitialized)
}

func TestAddPath(t *testing.T) {
	r, _ := newTestRenderer(t)

	r.AddPath(nil)
	r.AddPath([]math.Vec3{{X: 1, Y: 2, Z: 3}})
	assert.Zero(t, r.BufferCount())

	path := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}, {X: 10, Y: 10, Z: 2}}
	r.AddPath(path)

	spheres := r.Buffers(metadata.CategorySphere)
	require.Len(t, spheres, 3)
	wantVertices, wantIndices := shapes.GenerateIcosphere(path[1], PathSphereRadius, PathSphereLevel)
	require.Len(t, spheres[1].Vertices, len(wantVertices))
	assert.Equal(t, wantIndices, spheres[1].Indices)
	for i, v := range wantVertices {
		assert.Equal(t, v, spheres[1].Vertices[i].Position)
	}

	lines := r.Buffers(metadata.CategoryLine)
	require.Len(t, lines, 1)
	assert.Equal(t, []uint32{0, 1, 2, 3}, lines[0].Indices)
	got := make([]math.Vec3, 0, 4)
	for _, v := range lines[0].Vertices {
		got = append(got, v.Position)
	}
	assert.Equal(t, []math.Vec3{path[0], path[1], path[1], path[2]}, got)
}

func TestAddArrows(t *testing.T) {
	r, _ := newTestRenderer(t)
	start := math.NewVec3(0, 0, 0)
	end := math.NewVec3(10, 0, 0)

	r.AddArrows(start, end, 0)
	r.AddArrows(start, end, 3)
	r.AddArrows(start, math.NewVec3(0, 0, 10), 0)

	arrows := r.Buffers(metadata.CategoryArrow)
	require.Len(t, arrows, 3)

	headOnly := arrows[0]
	assert.Equal(t, metadata.TopologyLines, headOnly.Topology)
	assert.Len(t, headOnly.Vertices, 2+3)
	assert.Len(t, headOnly.Indices, 2+4)
	assert.Equal(t, end, headOnly.Vertices[2].Position)

	// heads at 3, 6, 9 and at the end
	stepped := arrows[1]
	assert.Len(t, stepped.Vertices, 2+4*3)
	assert.Len(t, stepped.Indices, 2+4*4)
	for i, d := range []float32{3, 6, 9, 10} {
		tip := stepped.Vertices[2+3*i].Position
		assert.True(t, tip.Compare(math.NewVec3(d, 0, 0), 1e-5), "tip %d at %v", i, tip)
		for _, barb := range stepped.Vertices[3+3*i : 5+3*i] {
			assert.Less(t, barb.Position.Sub(tip).Dot(math.NewVec3(1, 0, 0)), float32(0), "barbs point back")
		}
	}

	vertical := arrows[2]
	require.Len(t, vertical.Vertices, 5)
	for _, v := range vertical.Vertices {
		p := v.Position
		assert.False(t, math32.IsNaN(p.X) || math32.IsNaN(p.Y) || math32.IsNaN(p.Z), "vertical arrow vertex %v", p)
	}
	assert.NotEqual(t, vertical.Vertices[3].Position, vertical.Vertices[4].Position)
}

func TestHitTest(t *testing.T) {
	camera := components.NewCamera()
	camera.Move(math.NewVec3(0, 0, 50))

	t.Run("single quad", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		v, i := quad(-10, -20, 30, 10, 0)
		r.AddTerrain(v, i, 42)

		hit, ok := r.HitTest(camera, 400, 300, metadata.MaskAll)
		require.True(t, ok)
		assert.True(t, hit.Position.Compare(math.NewVec3(0, 0, 0), 1e-2), "got %v", hit.Position)
		assert.Equal(t, uint32(42), hit.UserParameter)
		assert.Equal(t, metadata.CategoryTerrain, hit.Category)
		assert.InDelta(t, 50, hit.Distance, 1e-2)
	})

	t.Run("closest wins and mask filters", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		v, i := quad(-10, -20, 30, 10, 0)
		r.AddTerrain(v, i, 42)
		v, i = quad(-10, -20, 30, 10, 10)
		r.AddWmo(5, v, i)

		hit, ok := r.HitTest(camera, 400, 300, metadata.MaskCollidable)
		require.True(t, ok)
		assert.Equal(t, uint32(5), hit.UserParameter)
		assert.Equal(t, metadata.CategoryWmo, hit.Category)
		assert.InDelta(t, 40, hit.Distance, 1e-2)

		hit, ok = r.HitTest(camera, 400, 300, metadata.CategoryTerrain.Flag())
		require.True(t, ok)
		assert.Equal(t, uint32(42), hit.UserParameter)

		_, ok = r.HitTest(camera, 400, 300, metadata.CategoryNavMesh.Flag())
		assert.False(t, ok)
		_, ok = r.HitTest(camera, 400, 300, metadata.MaskNone)
		assert.False(t, ok)
	})

	t.Run("ties keep the first buffer", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		v, i := quad(-10, -20, 30, 10, 0)
		r.AddTerrain(v, i, 1)
		r.AddTerrain(v, i, 2)

		for n := 0; n < 5; n++ {
			hit, ok := r.HitTest(camera, 400, 300, metadata.MaskAll)
			require.True(t, ok)
			assert.Equal(t, uint32(1), hit.UserParameter)
		}
	})

	t.Run("geometry behind the camera", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		v, i := quad(-10, -20, 30, 10, 60)
		r.AddTerrain(v, i, 1)

		_, ok := r.HitTest(camera, 400, 300, metadata.MaskAll)
		assert.False(t, ok)
	})

	t.Run("lines are not pickable", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		r.AddLines([]math.Vec3{{Z: 100}, {Z: -100}, {X: 1}}, []uint32{0, 1, 2, 0})
		r.AddArrows(math.NewVec3(0, 0, 40), math.NewVec3(0, 0, -40), 5)

		_, ok := r.HitTest(camera, 400, 300, metadata.MaskAll)
		assert.False(t, ok)
	})

	t.Run("markers are pickable", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		r.AddPath([]math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 100, Y: 0, Z: 0}})

		hit, ok := r.HitTest(camera, 400, 300, metadata.CategorySphere.Flag())
		require.True(t, ok)
		// facets sit a little inside the radius
		assert.InDelta(t, 50-PathSphereRadius, hit.Distance, 0.4)
	})

	t.Run("nothing after clear", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		v, i := quad(-10, -20, 30, 10, 0)
		r.AddTerrain(v, i, 42)
		r.ClearAll()

		_, ok := r.HitTest(camera, 400, 300, metadata.MaskAll)
		assert.False(t, ok)
	})
}

func TestInitializeWrapsBackendError(t *testing.T) {
	r := New(failingBackend{newRecordingBackend()})
	err := r.Initialize("navview-test")
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.NoError(t, r.Shutdown())
}

var errBoom = errors.New("no device")

type failingBackend struct {
	*recordingBackend
}

func (failingBackend) Initialize(appName string) error {
	return errBoom
}

var _ debugdraw.GeometrySink = (*Renderer)(nil)
