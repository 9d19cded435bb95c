package metadata

import (
	"github.com/spaghettifunk/navview/engine/math"
)

/** @brief The colours used for every category, plus the clear colour. */
type Palette struct {
	Categories [CategoryCount]math.Vec4
	/** @brief Navigation mesh polygons that are too steep to walk on. */
	NavMeshSteep math.Vec4
	Background   math.Vec4
}

/** @brief Returns the built in colour scheme. */
func DefaultPalette() Palette {
	p := Palette{
		NavMeshSteep: math.NewVec4(0.3, 0.3, 0.3, 0.75),
		Background:   math.NewVec4(0.6, 0.55, 0.55, 1.0),
	}
	p.Categories[CategoryTerrain] = math.NewVec4(0.5, 0.8, 0.5, 1.0)
	p.Categories[CategoryLiquid] = math.NewVec4(0.25, 0.28, 0.9, 0.5)
	p.Categories[CategoryWmo] = math.NewVec4(1.0, 0.95, 0.0, 1.0)
	p.Categories[CategoryDoodad] = math.NewVec4(1.0, 0.0, 0.0, 1.0)
	p.Categories[CategoryNavMesh] = math.NewVec4(1.0, 1.0, 1.0, 0.75)
	p.Categories[CategorySphere] = math.NewVec4(1.0, 0.5, 0.25, 0.75)
	p.Categories[CategoryLine] = math.NewVec4(0.5, 0.25, 0.0, 1.0)
	p.Categories[CategoryArrow] = math.NewVec4(0.5, 0.25, 0.0, 1.0)
	p.Categories[CategoryGameObject] = math.NewVec4(0.8, 0.5, 0.1, 1.0)
	return p
}

/** @brief The user toggles that take effect on the next rendered frame. */
type RenderFlags struct {
	Wireframe bool
	Terrain   bool
	Liquid    bool
	Wmo       bool
	Doodad    bool
	NavMesh   bool
}

/** @brief Everything visible, filled polygons. */
func DefaultRenderFlags() RenderFlags {
	return RenderFlags{
		Terrain: true,
		Liquid:  true,
		Wmo:     true,
		Doodad:  true,
		NavMesh: true,
	}
}
