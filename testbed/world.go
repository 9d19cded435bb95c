package testbed

import (
	"github.com/spaghettifunk/navview/engine/math"
	"github.com/spaghettifunk/navview/engine/renderer/debugdraw"
)

const (
	// TileSize is the world size of one map tile along X and Y.
	TileSize float32 = 533.33333
	// ChunksPerTile is the number of chunks along each side of a tile.
	ChunksPerTile = 16
	ChunkSize     = TileSize / ChunksPerTile
	// TileOrigin is the tile index of the world origin. Tiles run from 0 to
	// 2*TileOrigin-1 on both axes.
	TileOrigin  = 32
	TilesPerMap = 2 * TileOrigin
)

// WorldToTile returns the tile holding pos and the chunk inside that tile.
// Tile X grows towards -Y and tile Y towards -X.
func WorldToTile(pos math.Vec3) (tileX, tileY, chunkX, chunkY int) {
	fx := TileOrigin - pos.Y/TileSize
	fy := TileOrigin - pos.X/TileSize

	tileX = int(math.Floor(fx))
	tileY = int(math.Floor(fy))
	chunkX = int(math.Floor((fx - float32(tileX)) * ChunksPerTile))
	chunkY = int(math.Floor((fy - float32(tileY)) * ChunksPerTile))

	// float rounding on the far edge
	chunkX = min(chunkX, ChunksPerTile-1)
	chunkY = min(chunkY, ChunksPerTile-1)
	return tileX, tileY, chunkX, chunkY
}

// TileBounds returns the X/Y extents of a tile. Z is left at zero.
func TileBounds(tileX, tileY int) math.Extents3D {
	maxX := (TileOrigin - float32(tileY)) * TileSize
	maxY := (TileOrigin - float32(tileX)) * TileSize
	return math.Extents3D{
		Min: math.NewVec3(maxX-TileSize, maxY-TileSize, 0),
		Max: math.NewVec3(maxX, maxY, 0),
	}
}

// ChunkBounds returns the X/Y extents of a chunk of a tile.
func ChunkBounds(tileX, tileY, chunkX, chunkY int) math.Extents3D {
	tile := TileBounds(tileX, tileY)
	maxX := tile.Max.X - float32(chunkY)*ChunkSize
	maxY := tile.Max.Y - float32(chunkX)*ChunkSize
	return math.Extents3D{
		Min: math.NewVec3(maxX-ChunkSize, maxY-ChunkSize, 0),
		Max: math.NewVec3(maxX, maxY, 0),
	}
}

func validTile(x, y int) bool {
	return x >= 0 && y >= 0 && x < TilesPerMap && y < TilesPerMap
}

// Mesh is plain triangle list geometry.
type Mesh struct {
	Vertices []math.Vec3
	Indices  []uint32
}

func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Vertices) == 0
}

// Wmo is a world model instance with its own liquids and doodad set.
type Wmo struct {
	Mesh
	Liquid    Mesh
	DoodadSet Mesh
}

type Chunk struct {
	Terrain Mesh
	Liquid  Mesh
	AreaID  uint32
	Doodads []uint32
	Wmos    []uint32
}

type Tile struct {
	X, Y   int
	Bounds math.Extents3D
	Chunks [ChunksPerTile][ChunksPerTile]*Chunk
}

func (t *Tile) Chunk(chunkX, chunkY int) *Chunk {
	if chunkX < 0 || chunkY < 0 || chunkX >= ChunksPerTile || chunkY >= ChunksPerTile {
		return nil
	}
	return t.Chunks[chunkX][chunkY]
}

// Center is the middle of the tile bounds, Z included.
func (t *Tile) Center() math.Vec3 {
	return t.Bounds.Min.Add(t.Bounds.Max).MulScalar(0.5)
}

// MapSource provides the collision geometry of a map. Tile may be called
// from several goroutines at once.
type MapSource interface {
	Name() string
	HasTile(x, y int) bool
	Tile(x, y int) (*Tile, error)
	Doodad(id uint32) (*Mesh, bool)
	Wmo(id uint32) (*Wmo, bool)
}

// SteepDrawer is a debug drawer that can tag polygons as too steep.
type SteepDrawer interface {
	debugdraw.DebugDraw
	SetSteep(steep bool)
}

// Navigator answers navigation queries on a map.
type Navigator interface {
	LoadTile(x, y int) bool
	// DrawTile emits the polygons of a loaded tile, walkable ones first and
	// then the steep ones.
	DrawTile(dd SteepDrawer, x, y int)
	FindPath(start, end math.Vec3) ([]math.Vec3, bool)
	FindHeights(x, y float32) ([]float32, bool)
	ZoneAndArea(p math.Vec3) (zone, area uint32, ok bool)
}

type MapInfo struct {
	ID   uint32
	Name string
}

var AvailableMaps = []MapInfo{
	{0, "Azeroth"}, {1, "Kalimdor"},
	{13, "Test"}, {30, "Alterac Valley"},
	{33, "Shadowfang Keep"}, {34, "Stormwind Stockades"},
	{43, "Wailing Caverns"}, {90, "Gnomeregan"},
	{229, "Blackrock Spire"}, {429, "Dire Maul"},
	{489, "Warsong Gulch"}, {529, "Arathi Basin"},
	{530, "Outland"}, {562, "Blade's Edge Arena"},
	{571, "Northrend"}, {603, "Ulduar"},
}
