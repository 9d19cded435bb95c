package testbed

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/navview/engine"
	"github.com/spaghettifunk/navview/engine/assets/loaders"
	"github.com/spaghettifunk/navview/engine/core"
	"github.com/spaghettifunk/navview/engine/math"
	"github.com/spaghettifunk/navview/engine/renderer"
	"github.com/spaghettifunk/navview/engine/renderer/debugdraw"
	"github.com/spaghettifunk/navview/engine/renderer/metadata"
	"github.com/spaghettifunk/navview/engine/systems"
)

const (
	startSphereRadius = 3.0
	startSphereLevel  = 2

	heightSphereRadius = 0.75
	heightSphereLevel  = 1

	// the camera looks at a freshly loaded tile from this offset
	tileViewOffset = 300.0
)

// NewWorldFunc creates the map and navigation data of a map.
type NewWorldFunc func(info MapInfo) (MapSource, Navigator, error)

// NewProceduralWorld is the default NewWorldFunc.
func NewProceduralWorld(info MapInfo) (MapSource, Navigator, error) {
	m := NewProceduralMap(info)
	return m, NewProceduralNavigator(m), nil
}

type MapViewer struct {
	*engine.Game
	newWorld NewWorldFunc
}

type viewerState struct {
	selectedMap int
	world       MapSource
	navigator   Navigator

	hasStart   bool
	startPoint math.Vec3

	// last tile loaded, -1 before the first one
	tileX, tileY int
	// neighbour tiles built in the background for the current map
	prefetched int

	cameraStep float32
	wheelStep  float32

	width  uint32
	height uint32

	handles map[core.EventCode][]uint32
}

func NewMapViewer(cfg *loaders.Config, assetsDir, configPath string) *MapViewer {
	mv := &MapViewer{
		Game: &engine.Game{
			ApplicationConfig: engine.NewApplicationConfig(cfg, assetsDir, configPath),
			Config:            cfg,
			State: &viewerState{
				selectedMap: -1,
				tileX:       -1,
				tileY:       -1,
				cameraStep:  cfg.Camera.Step,
				wheelStep:   cfg.Camera.WheelStep,
				handles:     make(map[core.EventCode][]uint32),
			},
		},
		newWorld: NewProceduralWorld,
	}

	mv.FnInitialize = mv.Initialize
	mv.FnUpdate = mv.Update
	mv.FnOnResize = mv.OnResize
	mv.FnShutdown = mv.Shutdown

	return mv
}

func (v *MapViewer) state() *viewerState {
	return v.State.(*viewerState)
}

func (v *MapViewer) Initialize() error {
	core.LogDebug("MapViewer Initialize fn....")

	if v.Renderer == nil || v.Camera == nil {
		return fmt.Errorf("the engine did not provide a renderer and a camera")
	}

	v.register(core.EVENT_CODE_KEY_PRESSED, v.onKey)
	v.register(core.EVENT_CODE_BUTTON_PRESSED, v.onButton)
	v.register(core.EVENT_CODE_BUTTON_RELEASED, v.onButton)
	v.register(core.EVENT_CODE_MOUSE_MOVED, v.onMouseMove)
	v.register(core.EVENT_CODE_MOUSE_WHEEL, v.onMouseWheel)
	v.register(core.EVENT_CODE_CONFIG_RELOADED, v.onConfigReloaded)

	if !v.ChangeMap(0) {
		return fmt.Errorf("failed to load map `%s`", AvailableMaps[0].Name)
	}
	v.LoadTile(TileOrigin, TileOrigin)
	return nil
}

func (v *MapViewer) register(code core.EventCode, fn core.FnOnEvent) {
	state := v.state()
	if handle := core.EventRegister(code, fn); handle != 0 {
		state.handles[code] = append(state.handles[code], handle)
	}
}

// Update moves the camera while movement keys are held, one step per frame.
func (v *MapViewer) Update(deltaTime float64) error {
	state := v.state()
	step := state.cameraStep

	if core.InputIsKeyDown(core.KEY_W) {
		v.Camera.MoveIn(step)
	}
	if core.InputIsKeyDown(core.KEY_S) {
		v.Camera.MoveIn(-step)
	}
	if core.InputIsKeyDown(core.KEY_D) {
		v.Camera.MoveRight(step)
	}
	if core.InputIsKeyDown(core.KEY_A) {
		v.Camera.MoveRight(-step)
	}
	if core.InputIsKeyDown(core.KEY_Q) {
		v.Camera.MoveUp(step)
	}
	if core.InputIsKeyDown(core.KEY_E) {
		v.Camera.MoveUp(-step)
	}
	if core.InputIsKeyDown(core.KEY_SPACE) {
		v.Camera.MoveVertical(step)
	}
	if core.InputIsKeyDown(core.KEY_X) {
		v.Camera.MoveVertical(-step)
	}
	return nil
}

func (v *MapViewer) OnResize(width uint32, height uint32) error {
	state := v.state()
	state.width = width
	state.height = height
	return nil
}

func (v *MapViewer) Shutdown() error {
	for code, handles := range v.state().handles {
		for _, h := range handles {
			core.EventUnregister(code, h)
		}
	}
	clear(v.state().handles)
	return nil
}

// ChangeMap drops every buffer and switches to AvailableMaps[index].
func (v *MapViewer) ChangeMap(index int) bool {
	if index < 0 || index >= len(AvailableMaps) {
		return false
	}
	state := v.state()
	state.hasStart = false
	state.tileX, state.tileY = -1, -1
	state.prefetched = 0
	v.Renderer.ClearAll()

	info := AvailableMaps[index]
	world, navigator, err := v.newWorld(info)
	if err != nil {
		core.LogError("failed to load map `%s`: %s", info.Name, err)
		return false
	}
	state.selectedMap = index
	state.world = world
	state.navigator = navigator
	core.LogInfo("Loaded map: %s", info.Name)
	return true
}

// LoadTile adds the geometry and navigation mesh of a tile and points the
// camera at it.
func (v *MapViewer) LoadTile(x, y int) bool {
	state := v.state()
	if state.world == nil || !state.world.HasTile(x, y) {
		core.LogWarn("tile (%d, %d) not found", x, y)
		return false
	}
	tile, err := state.world.Tile(x, y)
	if err != nil {
		core.LogError(err.Error())
		return false
	}

	for cx := 0; cx < ChunksPerTile; cx++ {
		for cy := 0; cy < ChunksPerTile; cy++ {
			chunk := tile.Chunk(cx, cy)
			if chunk == nil {
				continue
			}
			v.Renderer.AddTerrain(chunk.Terrain.Vertices, chunk.Terrain.Indices, chunk.AreaID)
			if !chunk.Liquid.IsEmpty() {
				v.Renderer.AddLiquid(chunk.Liquid.Vertices, chunk.Liquid.Indices)
			}

			for _, id := range chunk.Doodads {
				if v.Renderer.HasDoodad(id) {
					continue
				}
				doodad, ok := state.world.Doodad(id)
				if !ok {
					continue
				}
				v.Renderer.AddDoodad(id, doodad.Vertices, doodad.Indices)
			}

			for _, id := range chunk.Wmos {
				if v.Renderer.HasWmo(id) {
					continue
				}
				wmo, ok := state.world.Wmo(id)
				if !ok {
					continue
				}
				v.Renderer.AddWmo(id, wmo.Vertices, wmo.Indices)
				if !wmo.Liquid.IsEmpty() {
					v.Renderer.AddLiquid(wmo.Liquid.Vertices, wmo.Liquid.Indices)
				}
				// the doodad set of a WMO is tracked under the WMO id
				if !v.Renderer.HasDoodad(id) && !wmo.DoodadSet.IsEmpty() {
					v.Renderer.AddDoodad(id, wmo.DoodadSet.Vertices, wmo.DoodadSet.Indices)
				}
			}
		}
	}

	if state.navigator != nil && state.navigator.LoadTile(x, y) {
		state.navigator.DrawTile(debugdraw.NewAdapter(v.Renderer), x, y)
	}

	state.tileX, state.tileY = x, y
	center := tile.Center()
	v.Camera.Move(center.Add(math.NewVec3(tileViewOffset, tileViewOffset, tileViewOffset)))
	v.Camera.LookAt(center)
	core.LogInfo("Loaded tile (%d, %d) of %s", x, y, state.world.Name())

	v.prefetchNeighbours(x, y)
	return true
}

// prefetchNeighbours builds the tiles around x, y on the job workers so that
// loading one of them later only costs the upload.
func (v *MapViewer) prefetchNeighbours(x, y int) {
	if v.Jobs == nil {
		return
	}
	state := v.state()
	world := state.world

	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nx, ny := x+d[0], y+d[1]
		if !world.HasTile(nx, ny) {
			continue
		}
		err := v.Jobs.Submit(systems.JobTask{
			Name: fmt.Sprintf("prefetch tile (%d, %d)", nx, ny),
			OnStart: func(interface{}) (interface{}, error) {
				return world.Tile(nx, ny)
			},
			OnComplete: func(interface{}) {
				// the map may have changed meanwhile
				if state.world == world {
					state.prefetched++
				}
			},
		})
		if err != nil {
			core.LogWarn("tile prefetch skipped: %s", err)
			return
		}
	}
}

// HandleClick runs a left click at a screen position. Without shift it sets
// the path start, or finds a path from it. With shift it reports what is
// under the cursor.
func (v *MapViewer) HandleClick(x, y float32, shift bool) {
	state := v.state()

	if shift {
		hit, ok := v.Renderer.HitTest(v.Camera, x, y, metadata.MaskCollidable)
		if !ok {
			return
		}
		core.LogInfo(v.describeHit(hit))
		return
	}

	hit, ok := v.Renderer.HitTest(v.Camera, x, y, metadata.CategoryNavMesh.Flag())
	if !ok {
		return
	}
	v.Renderer.ClearSprites()

	if state.hasStart && state.navigator != nil {
		if path, found := state.navigator.FindPath(state.startPoint, hit.Position); found {
			v.Renderer.AddPath(path)
			core.LogInfo("Path found with %d waypoints", len(path))
		} else {
			core.LogInfo("Failed to find path")
		}
		state.hasStart = false
		return
	}

	state.hasStart = true
	state.startPoint = hit.Position
	v.Renderer.AddSphere(hit.Position, startSphereRadius, startSphereLevel)
	core.LogInfo("Start point set")
}

func (v *MapViewer) describeHit(hit renderer.HitResult) string {
	state := v.state()
	p := hit.Position

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hit %s at (%.3f, %.3f, %.3f)\n", hit.Category, p.X, p.Y, p.Z)
	tileX, tileY, chunkX, chunkY := WorldToTile(p)
	fmt.Fprintf(&sb, "Tile: (%d, %d) Chunk: (%d, %d)\n", tileX, tileY, chunkX, chunkY)

	if state.navigator != nil {
		if zone, area, ok := state.navigator.ZoneAndArea(p); ok {
			fmt.Fprintf(&sb, "Zone: %d Area: %d\n", zone, area)
		}
		if heights, ok := state.navigator.FindHeights(p.X, p.Y); ok {
			fmt.Fprintf(&sb, "Found %d height values:\n", len(heights))
			for _, h := range heights {
				fmt.Fprintf(&sb, "  %.3f\n", h)
			}
		}
	}
	return sb.String()
}

// SearchHeights marks every surface height at x, y with a small sphere.
func (v *MapViewer) SearchHeights(x, y float32) int {
	state := v.state()
	if state.navigator == nil {
		return 0
	}
	heights, ok := state.navigator.FindHeights(x, y)
	if !ok {
		core.LogInfo("No heights at (%.3f, %.3f)", x, y)
		return 0
	}

	v.Renderer.ClearSprites()
	for _, h := range heights {
		v.Renderer.AddSphere(math.NewVec3(x, y, h), heightSphereRadius, heightSphereLevel)
	}
	core.LogInfo("Heights at (%.3f, %.3f): %v", x, y, heights)
	return len(heights)
}

// toggles for the number keys, in key order
var categoryKeys = map[core.KeyCode]metadata.Category{
	core.KEY_1: metadata.CategoryTerrain,
	core.KEY_2: metadata.CategoryLiquid,
	core.KEY_3: metadata.CategoryWmo,
	core.KEY_4: metadata.CategoryDoodad,
	core.KEY_5: metadata.CategoryNavMesh,
}

func (v *MapViewer) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	state := v.state()

	if category, ok := categoryKeys[ke.KeyCode]; ok {
		enabled := !v.Renderer.IsCategoryEnabled(category)
		v.Renderer.SetCategoryEnabled(category, enabled)
		core.LogDebug("%s %s", category, map[bool]string{true: "shown", false: "hidden"}[enabled])
		return
	}

	switch ke.KeyCode {
	case core.KEY_F:
		v.Renderer.SetWireframe(!v.Renderer.Wireframe())
	case core.KEY_M:
		next := (state.selectedMap + 1) % len(AvailableMaps)
		if v.ChangeMap(next) {
			v.LoadTile(TileOrigin, TileOrigin)
		}
	case core.KEY_H:
		pos := v.Camera.GetPosition()
		v.SearchHeights(pos.X, pos.Y)
	case core.KEY_UP, core.KEY_DOWN, core.KEY_LEFT, core.KEY_RIGHT:
		v.loadNeighbourTile(ke.KeyCode)
	}
}

// loadNeighbourTile loads the tile next to the last loaded one.
func (v *MapViewer) loadNeighbourTile(key core.KeyCode) {
	state := v.state()
	if state.tileX < 0 {
		return
	}
	tileX, tileY := state.tileX, state.tileY
	switch key {
	case core.KEY_UP:
		tileY--
	case core.KEY_DOWN:
		tileY++
	case core.KEY_LEFT:
		tileX--
	case core.KEY_RIGHT:
		tileX++
	}
	if validTile(tileX, tileY) {
		v.LoadTile(tileX, tileY)
	}
}

func (v *MapViewer) onButton(context core.EventContext) {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	pressed := context.Type == core.EVENT_CODE_BUTTON_PRESSED

	switch me.Button {
	case core.BUTTON_LEFT:
		if pressed {
			v.HandleClick(me.PosX, me.PosY, me.Shift)
		}
	case core.BUTTON_RIGHT:
		if pressed {
			v.Camera.BeginMousePan(me.PosX, me.PosY)
		} else {
			v.Camera.EndMousePan()
		}
		if v.Window != nil {
			v.Window.SetCursorCaptured(pressed)
		}
	}
}

func (v *MapViewer) onMouseMove(context core.EventContext) {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		return
	}
	if v.Camera.IsMousePanning() {
		v.Camera.UpdateMousePan(me.PosX, me.PosY)
	}
}

func (v *MapViewer) onMouseWheel(context core.EventContext) {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		return
	}
	v.Camera.MoveIn(me.Scroll * v.state().wheelStep)
}

func (v *MapViewer) onConfigReloaded(context core.EventContext) {
	cfg, ok := context.Data.(*loaders.Config)
	if !ok {
		return
	}
	state := v.state()
	state.cameraStep = cfg.Camera.Step
	state.wheelStep = cfg.Camera.WheelStep
}
