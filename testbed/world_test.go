package testbed

import (
	"testing"

	"github.com/spaghettifunk/navview/engine/math"
	"github.com/spaghettifunk/navview/engine/renderer/debugdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldToTile(t *testing.T) {
	tests := []struct {
		name                           string
		pos                            math.Vec3
		tileX, tileY, chunkX, chunkY int
	}{
		{"just below the origin", math.NewVec3(-1, -1, 0), 32, 32, 0, 0},
		{"just above the origin", math.NewVec3(1, 1, 0), 31, 31, 15, 15},
		{"one tile along -Y", math.NewVec3(-1, -TileSize-1, 0), 33, 32, 0, 0},
		{"second chunk", math.NewVec3(-1, -ChunkSize-1, 0), 32, 32, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, ty, cx, cy := WorldToTile(tt.pos)
			assert.Equal(t, tt.tileX, tx)
			assert.Equal(t, tt.tileY, ty)
			assert.Equal(t, tt.chunkX, cx)
			assert.Equal(t, tt.chunkY, cy)
		})
	}
}

func TestChunkBoundsMatchWorldToTile(t *testing.T) {
	for _, c := range [][4]int{{32, 32, 0, 0}, {31, 33, 5, 11}, {30, 30, 15, 15}, {33, 31, 8, 2}} {
		b := ChunkBounds(c[0], c[1], c[2], c[3])
		assert.InDelta(t, float64(ChunkSize), float64(b.Max.X-b.Min.X), 1e-3)
		assert.InDelta(t, float64(ChunkSize), float64(b.Max.Y-b.Min.Y), 1e-3)

		center := b.Min.Add(b.Max).MulScalar(0.5)
		tx, ty, cx, cy := WorldToTile(center)
		assert.Equal(t, c, [4]int{tx, ty, cx, cy})
	}
}

func TestProceduralMapTiles(t *testing.T) {
	m := NewProceduralMap(AvailableMaps[0])
	assert.Equal(t, "Azeroth", m.Name())
	assert.True(t, m.HasTile(TileOrigin, TileOrigin))
	assert.True(t, m.HasTile(TileOrigin-tileSpan, TileOrigin+tileSpan-1))
	assert.False(t, m.HasTile(TileOrigin+tileSpan, TileOrigin))

	_, err := m.Tile(0, 0)
	assert.Error(t, err)

	tile, err := m.Tile(TileOrigin, TileOrigin)
	require.NoError(t, err)
	again, err := m.Tile(TileOrigin, TileOrigin)
	require.NoError(t, err)
	assert.Same(t, tile, again)

	assert.Less(t, tile.Bounds.Min.Z, tile.Bounds.Max.Z)
	assert.Nil(t, tile.Chunk(ChunksPerTile, 0))

	wmoRefs := 0
	for cx := 0; cx < ChunksPerTile; cx++ {
		for cy := 0; cy < ChunksPerTile; cy++ {
			chunk := tile.Chunk(cx, cy)
			require.NotNil(t, chunk)
			assert.Len(t, chunk.Terrain.Vertices, (terrainSegments+1)*(terrainSegments+1))
			assert.Len(t, chunk.Terrain.Indices, terrainSegments*terrainSegments*6)
			_, area := areaAt(TileOrigin, TileOrigin, cx, cy)
			assert.Equal(t, area, chunk.AreaID)

			for _, id := range chunk.Doodads {
				_, ok := m.Doodad(id)
				assert.True(t, ok)
			}
			for _, id := range chunk.Wmos {
				wmo, ok := m.Wmo(id)
				require.True(t, ok)
				assert.False(t, wmo.IsEmpty())
				assert.False(t, wmo.Liquid.IsEmpty())
				assert.False(t, wmo.DoodadSet.IsEmpty())
				wmoRefs++
			}
		}
	}
	assert.Equal(t, 4, wmoRefs)

	// (0, 2) owns a doodad that (1, 2) references too
	owner := tile.Chunk(0, 2)
	require.NotEmpty(t, owner.Doodads)
	assert.Contains(t, tile.Chunk(1, 2).Doodads, owner.Doodads[0])
}

type sinkCall struct {
	kind  string
	steep bool
	verts int
}

type recordingSink struct {
	calls []sinkCall
}

func (s *recordingSink) AddSphere(position math.Vec3, radius float32, level int) {
	s.calls = append(s.calls, sinkCall{kind: "sphere"})
}

func (s *recordingSink) AddLines(vertices []math.Vec3, indices []uint32) {
	s.calls = append(s.calls, sinkCall{kind: "lines", verts: len(vertices)})
}

func (s *recordingSink) AddMesh(vertices []math.Vec3, indices []uint32, steep bool) {
	s.calls = append(s.calls, sinkCall{kind: "mesh", steep: steep, verts: len(vertices)})
}

func TestNavigatorDrawTile(t *testing.T) {
	nav := NewProceduralNavigator(NewProceduralMap(AvailableMaps[1]))
	sink := &recordingSink{}
	adapter := debugdraw.NewAdapter(sink)

	// nothing before the tile is loaded
	nav.DrawTile(adapter, TileOrigin, TileOrigin)
	assert.Empty(t, sink.calls)

	assert.False(t, nav.LoadTile(0, 0))
	require.True(t, nav.LoadTile(TileOrigin, TileOrigin))
	nav.DrawTile(adapter, TileOrigin, TileOrigin)

	require.GreaterOrEqual(t, len(sink.calls), 2)
	assert.Equal(t, sinkCall{kind: "mesh", steep: false, verts: sink.calls[0].verts}, sink.calls[0])
	assert.Greater(t, sink.calls[0].verts, 0)

	// helper lines are dropped, only the border comes through
	lines := 0
	seenSteep := false
	for _, c := range sink.calls {
		switch c.kind {
		case "lines":
			lines++
		case "mesh":
			if c.steep {
				seenSteep = true
			} else {
				assert.False(t, seenSteep, "walkable polygons after steep ones")
			}
		}
	}
	assert.Equal(t, 1, lines)
	assert.False(t, adapter.Steep())
}

func TestNavigatorFindPath(t *testing.T) {
	nav := NewProceduralNavigator(NewProceduralMap(AvailableMaps[0]))
	require.True(t, nav.LoadTile(TileOrigin, TileOrigin))

	bounds := TileBounds(TileOrigin, TileOrigin)
	start := bounds.Min.Add(math.NewVec3(50, 50, 0))
	end := bounds.Min.Add(math.NewVec3(250, 150, 0))

	path, ok := nav.FindPath(start, end)
	require.True(t, ok)
	assert.Equal(t, start, path[0])
	assert.Equal(t, end, path[len(path)-1])
	assert.Greater(t, len(path), 2)
	for i := 1; i+1 < len(path); i++ {
		flat := math.NewVec3(path[i].X-path[i-1].X, path[i].Y-path[i-1].Y, 0)
		assert.InDelta(t, navPathStep, float64(flat.Length()), 1e-2)
	}

	// the neighbour tile is not loaded
	_, ok = nav.FindPath(start, start.Add(math.NewVec3(-TileSize, 0, 0)))
	assert.False(t, ok)
}

func TestNavigatorHeightsAndAreas(t *testing.T) {
	world := NewProceduralMap(AvailableMaps[0])
	_, err := world.Tile(TileOrigin, TileOrigin)
	require.NoError(t, err)
	nav := NewProceduralNavigator(world)

	center := TileBounds(TileOrigin, TileOrigin)
	mid := center.Min.Add(center.Max).MulScalar(0.5)

	_, ok := nav.FindHeights(mid.X, mid.Y)
	assert.False(t, ok)
	_, _, ok = nav.ZoneAndArea(mid)
	assert.False(t, ok)

	require.True(t, nav.LoadTile(TileOrigin, TileOrigin))

	heights, ok := nav.FindHeights(mid.X, mid.Y)
	require.True(t, ok)
	require.Len(t, heights, 2)
	assert.Less(t, heights[0], heights[1])
	assert.InDelta(t, float64(world.Height(mid.X, mid.Y)+navHeightOffset), float64(heights[0]), 1e-4)

	heights, ok = nav.FindHeights(center.Min.X+10, center.Min.Y+10)
	require.True(t, ok)
	assert.Len(t, heights, 1)

	p := center.Min.Add(math.NewVec3(10, 10, 0))
	zone, area, ok := nav.ZoneAndArea(p)
	require.True(t, ok)
	_, _, cx, cy := WorldToTile(p)
	wantZone, wantArea := areaAt(TileOrigin, TileOrigin, cx, cy)
	assert.Equal(t, wantZone, zone)
	assert.Equal(t, wantArea, area)
}
