package testbed

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spaghettifunk/navview/engine/math"
	"github.com/spaghettifunk/navview/engine/renderer/debugdraw"
	"github.com/spaghettifunk/navview/engine/renderer/shapes"
)

const (
	// tiles TileOrigin-tileSpan .. TileOrigin+tileSpan-1 exist on every map
	tileSpan = 2

	terrainSegments = 8
	waterLevel      = -12.0

	doodadHalfWidth = 2.0
	doodadHeight    = 12.0

	wmoHalfWidth  = 20.0
	wmoHeight     = 25.0
	wmoIDBase     = 0x100000
	wmoPoolHeight = 0.5

	navCellsPerTile = 32
	navHeightOffset = 0.25
	// polygons whose normal is closer than this to the horizon are steep
	navMaxSlopeCos = 0.8
	navPathStep    = 15.0
)

var (
	navWalkableColour = debugdraw.RGBA(0, 192, 255, 64)
	navSteepColour    = debugdraw.RGBA(128, 128, 128, 192)
	navBorderColour   = debugdraw.RGBA(0, 48, 64, 220)
)

// ProceduralMap generates rolling terrain with lakes, a doodad on some chunks
// and a WMO in the middle of every tile. The shape depends on the map id.
type ProceduralMap struct {
	info  MapInfo
	phase float32

	mutex   sync.Mutex
	tiles   map[[2]int]*Tile
	doodads map[uint32]*Mesh
	wmos    map[uint32]*Wmo
}

func NewProceduralMap(info MapInfo) *ProceduralMap {
	return &ProceduralMap{
		info:    info,
		phase:   float32(info.ID) * 0.37,
		tiles:   make(map[[2]int]*Tile),
		doodads: make(map[uint32]*Mesh),
		wmos:    make(map[uint32]*Wmo),
	}
}

func (p *ProceduralMap) Name() string {
	return p.info.Name
}

func (p *ProceduralMap) HasTile(x, y int) bool {
	return x >= TileOrigin-tileSpan && x < TileOrigin+tileSpan &&
		y >= TileOrigin-tileSpan && y < TileOrigin+tileSpan
}

// Height returns the terrain height at a world position.
func (p *ProceduralMap) Height(x, y float32) float32 {
	return 40.0*math.Sin(x/45.0+p.phase)*math.Cos(y/60.0-p.phase) +
		6.0*math.Sin((x+y)/23.0)
}

func (p *ProceduralMap) Tile(x, y int) (*Tile, error) {
	if !p.HasTile(x, y) {
		return nil, fmt.Errorf("map `%s` has no tile (%d, %d)", p.info.Name, x, y)
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()

	key := [2]int{x, y}
	if tile, ok := p.tiles[key]; ok {
		return tile, nil
	}

	tile := &Tile{X: x, Y: y, Bounds: TileBounds(x, y)}
	tile.Bounds.Min.Z = math.K_INFINITY
	tile.Bounds.Max.Z = -math.K_INFINITY

	wmoID := p.buildWmo(x, y)
	for cx := 0; cx < ChunksPerTile; cx++ {
		for cy := 0; cy < ChunksPerTile; cy++ {
			chunk := p.buildChunk(x, y, cx, cy)
			if (cx == ChunksPerTile/2 || cx == ChunksPerTile/2-1) && (cy == ChunksPerTile/2 || cy == ChunksPerTile/2-1) {
				chunk.Wmos = append(chunk.Wmos, wmoID)
			}
			for _, v := range chunk.Terrain.Vertices {
				tile.Bounds.Min.Z = min(tile.Bounds.Min.Z, v.Z)
				tile.Bounds.Max.Z = max(tile.Bounds.Max.Z, v.Z)
			}
			tile.Chunks[cx][cy] = chunk
		}
	}

	// doodads standing on a chunk border are referenced by both chunks
	for cx := ChunksPerTile - 2; cx >= 0; cx-- {
		for cy := 0; cy < ChunksPerTile; cy++ {
			if ids := tile.Chunks[cx][cy].Doodads; len(ids) > 0 {
				next := tile.Chunks[cx+1][cy]
				next.Doodads = append(next.Doodads, ids...)
			}
		}
	}

	p.tiles[key] = tile
	return tile, nil
}

func (p *ProceduralMap) Doodad(id uint32) (*Mesh, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	m, ok := p.doodads[id]
	return m, ok
}

func (p *ProceduralMap) Wmo(id uint32) (*Wmo, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	w, ok := p.wmos[id]
	return w, ok
}

func (p *ProceduralMap) buildChunk(x, y, cx, cy int) *Chunk {
	bounds := ChunkBounds(x, y, cx, cy)
	_, area := areaAt(x, y, cx, cy)
	chunk := &Chunk{AreaID: area}

	chunk.Terrain.Vertices, chunk.Terrain.Indices = shapes.GenerateGrid(bounds.Min, ChunkSize, ChunkSize, terrainSegments, terrainSegments, p.Height)

	lowest := float32(math.K_INFINITY)
	for _, v := range chunk.Terrain.Vertices {
		lowest = min(lowest, v.Z)
	}
	if lowest < waterLevel {
		origin := math.NewVec3(bounds.Min.X, bounds.Min.Y, waterLevel)
		chunk.Liquid.Vertices, chunk.Liquid.Indices = shapes.GenerateGrid(origin, ChunkSize, ChunkSize, 1, 1, nil)
	}

	if (cx*7+cy*3+x+y)%5 == 0 {
		id := doodadID(x, y, cx, cy)
		center := bounds.Min.Add(bounds.Max).MulScalar(0.5)
		ground := p.Height(center.X, center.Y)
		vertices, indices := shapes.GenerateBox(math.Extents3D{
			Min: math.NewVec3(center.X-doodadHalfWidth, center.Y-doodadHalfWidth, ground),
			Max: math.NewVec3(center.X+doodadHalfWidth, center.Y+doodadHalfWidth, ground+doodadHeight),
		})
		p.doodads[id] = &Mesh{Vertices: vertices, Indices: indices}
		chunk.Doodads = append(chunk.Doodads, id)
	}
	return chunk
}

// buildWmo places a building with a roof pool and four crates in the middle
// of the tile.
func (p *ProceduralMap) buildWmo(x, y int) uint32 {
	id := uint32(wmoIDBase + x*TilesPerMap + y)
	if _, ok := p.wmos[id]; ok {
		return id
	}

	footprint := wmoFootprint(x, y)
	ground := p.Height(footprint.Min.X+wmoHalfWidth, footprint.Min.Y+wmoHalfWidth)
	footprint.Min.Z = ground
	footprint.Max.Z = ground + wmoHeight

	wmo := &Wmo{}
	wmo.Vertices, wmo.Indices = shapes.GenerateBox(footprint)

	roof := footprint.Max.Z
	poolOrigin := math.NewVec3(footprint.Min.X+wmoHalfWidth/2, footprint.Min.Y+wmoHalfWidth/2, roof+wmoPoolHeight)
	wmo.Liquid.Vertices, wmo.Liquid.Indices = shapes.GenerateGrid(poolOrigin, wmoHalfWidth, wmoHalfWidth, 2, 2, nil)

	for _, corner := range [][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		cx := footprint.Min.X + 2 + corner[0]*(2*wmoHalfWidth-4)
		cy := footprint.Min.Y + 2 + corner[1]*(2*wmoHalfWidth-4)
		v, i := shapes.GenerateBox(math.Extents3D{
			Min: math.NewVec3(cx-1, cy-1, roof),
			Max: math.NewVec3(cx+1, cy+1, roof+2),
		})
		wmo.DoodadSet.Vertices, wmo.DoodadSet.Indices = shapes.Merge(wmo.DoodadSet.Vertices, wmo.DoodadSet.Indices, v, i)
	}

	p.wmos[id] = wmo
	return id
}

func wmoFootprint(x, y int) math.Extents3D {
	bounds := TileBounds(x, y)
	center := bounds.Min.Add(bounds.Max).MulScalar(0.5)
	return math.Extents3D{
		Min: math.NewVec3(center.X-wmoHalfWidth, center.Y-wmoHalfWidth, 0),
		Max: math.NewVec3(center.X+wmoHalfWidth, center.Y+wmoHalfWidth, 0),
	}
}

func doodadID(x, y, cx, cy int) uint32 {
	return uint32((x*TilesPerMap+y)*ChunksPerTile*ChunksPerTile+cx*ChunksPerTile+cy) + 1
}

// areaAt splits every tile in one zone of 4x4 areas.
func areaAt(x, y, cx, cy int) (zone, area uint32) {
	zone = uint32(x*TilesPerMap+y) + 1
	area = zone*16 + uint32(cx/4)*4 + uint32(cy/4)
	return zone, area
}

// ProceduralNavigator builds a navigation mesh draped over a ProceduralMap
// and walks straight lines on it.
type ProceduralNavigator struct {
	world  *ProceduralMap
	loaded map[[2]int]struct{}
}

func NewProceduralNavigator(world *ProceduralMap) *ProceduralNavigator {
	return &ProceduralNavigator{
		world:  world,
		loaded: make(map[[2]int]struct{}),
	}
}

func (n *ProceduralNavigator) LoadTile(x, y int) bool {
	if !n.world.HasTile(x, y) {
		return false
	}
	n.loaded[[2]int{x, y}] = struct{}{}
	return true
}

func (n *ProceduralNavigator) isLoaded(x, y int) bool {
	_, ok := n.loaded[[2]int{x, y}]
	return ok
}

func (n *ProceduralNavigator) navHeight(x, y float32) float32 {
	return n.world.Height(x, y) + navHeightOffset
}

func (n *ProceduralNavigator) DrawTile(dd SteepDrawer, x, y int) {
	if !n.isLoaded(x, y) {
		return
	}

	bounds := TileBounds(x, y)
	step := TileSize / navCellsPerTile
	corner := func(i, j int) math.Vec3 {
		px := bounds.Min.X + float32(i)*step
		py := bounds.Min.Y + float32(j)*step
		return math.NewVec3(px, py, n.navHeight(px, py))
	}

	var walkable, steep [][3]math.Vec3
	for j := 0; j < navCellsPerTile; j++ {
		for i := 0; i < navCellsPerTile; i++ {
			v00, v10, v01, v11 := corner(i, j), corner(i+1, j), corner(i, j+1), corner(i+1, j+1)
			for _, tri := range [][3]math.Vec3{{v00, v10, v11}, {v00, v11, v01}} {
				normal := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Normalize()
				if normal.Z < navMaxSlopeCos {
					steep = append(steep, tri)
				} else {
					walkable = append(walkable, tri)
				}
			}
		}
	}

	emit := func(tris [][3]math.Vec3, colour uint32) {
		dd.Begin(debugdraw.PrimitiveTris, 1.0)
		for _, tri := range tris {
			for _, v := range tri {
				dd.VertexXYZ(v.X, v.Y, v.Z, colour)
			}
		}
		dd.End()
	}

	dd.SetSteep(false)
	emit(walkable, navWalkableColour)

	// inner cell edges are helper lines
	dd.Begin(debugdraw.PrimitiveLines, debugdraw.IgnoredLineSize)
	for j := 1; j < navCellsPerTile; j++ {
		a, b := corner(0, j), corner(navCellsPerTile, j)
		dd.VertexXYZ(a.X, a.Y, a.Z, navBorderColour)
		dd.VertexXYZ(b.X, b.Y, b.Z, navBorderColour)
	}
	dd.End()

	// outer tile border
	dd.Begin(debugdraw.PrimitiveLines, 2.5)
	for k := 0; k < navCellsPerTile; k++ {
		for _, edge := range [][2]math.Vec3{
			{corner(k, 0), corner(k+1, 0)},
			{corner(k, navCellsPerTile), corner(k+1, navCellsPerTile)},
			{corner(0, k), corner(0, k+1)},
			{corner(navCellsPerTile, k), corner(navCellsPerTile, k+1)},
		} {
			dd.VertexXYZ(edge[0].X, edge[0].Y, edge[0].Z, navBorderColour)
			dd.VertexXYZ(edge[1].X, edge[1].Y, edge[1].Z, navBorderColour)
		}
	}
	dd.End()

	dd.SetSteep(true)
	emit(steep, navSteepColour)
	dd.SetSteep(false)
}

// FindPath follows the mesh surface on a straight line. Both ends and
// everything between them must lie on loaded tiles.
func (n *ProceduralNavigator) FindPath(start, end math.Vec3) ([]math.Vec3, bool) {
	flat := math.NewVec3(end.X-start.X, end.Y-start.Y, 0)
	length := flat.Length()
	steps := int(length / navPathStep)

	path := make([]math.Vec3, 0, steps+2)
	path = append(path, start)
	for s := 1; s <= steps; s++ {
		d := float32(s) * navPathStep
		if d >= length {
			break
		}
		p := start.Add(flat.MulScalar(d / length))
		p.Z = n.navHeight(p.X, p.Y)
		path = append(path, p)
	}
	path = append(path, end)

	for _, p := range path {
		tx, ty, _, _ := WorldToTile(p)
		if !n.isLoaded(tx, ty) {
			return nil, false
		}
	}
	return path, true
}

// FindHeights returns every surface height at x, y in ascending order: the
// ground and, inside the tile building, its roof.
func (n *ProceduralNavigator) FindHeights(x, y float32) ([]float32, bool) {
	tx, ty, _, _ := WorldToTile(math.NewVec3(x, y, 0))
	if !n.isLoaded(tx, ty) {
		return nil, false
	}

	heights := []float32{n.navHeight(x, y)}
	footprint := wmoFootprint(tx, ty)
	if x >= footprint.Min.X && x <= footprint.Max.X && y >= footprint.Min.Y && y <= footprint.Max.Y {
		if wmo, ok := n.world.Wmo(uint32(wmoIDBase + tx*TilesPerMap + ty)); ok {
			roof := -math.K_INFINITY
			for _, v := range wmo.Vertices {
				roof = max(roof, v.Z)
			}
			heights = append(heights, roof)
		}
	}
	sort.Slice(heights, func(i, j int) bool { return heights[i] < heights[j] })
	return heights, true
}

func (n *ProceduralNavigator) ZoneAndArea(p math.Vec3) (zone, area uint32, ok bool) {
	tx, ty, cx, cy := WorldToTile(p)
	if !n.isLoaded(tx, ty) {
		return 0, 0, false
	}
	zone, area = areaAt(tx, ty, cx, cy)
	return zone, area, true
}

var (
	_ MapSource = (*ProceduralMap)(nil)
	_ Navigator = (*ProceduralNavigator)(nil)
)
