package metadata

import (
	"fmt"
	"strings"
)

/** @brief The kind of geometry a buffer holds. Drives colour, draw order and picking. */
type Category uint8

const (
	CategoryTerrain Category = iota
	CategoryLiquid
	CategoryWmo
	CategoryDoodad
	CategoryNavMesh
	CategorySphere
	CategoryLine
	CategoryArrow
	CategoryGameObject
	CategoryCount
)

var categoryNames = [CategoryCount]string{
	"terrain",
	"liquid",
	"wmo",
	"doodad",
	"mesh",
	"sphere",
	"line",
	"arrow",
	"game_object",
}

func (c Category) String() string {
	if c >= CategoryCount {
		return fmt.Sprintf("category(%d)", uint8(c))
	}
	return categoryNames[c]
}

/** @brief Flag returns the mask bit of the category. */
func (c Category) Flag() CategoryMask {
	return CategoryMask(1) << c
}

/** @brief The renderer allows hiding only map geometry categories. */
func (c Category) Toggleable() bool {
	switch c {
	case CategoryTerrain, CategoryLiquid, CategoryWmo, CategoryDoodad, CategoryNavMesh:
		return true
	default:
		return false
	}
}

// ParseCategory resolves a category from its config name.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return CategoryCount, fmt.Errorf("unknown geometry category `%s`", name)
}

/** @brief A set of categories, bit i being Category(i). */
type CategoryMask uint32

const (
	MaskNone CategoryMask = 0
	// MaskCollidable is what a walking unit can stand on or collide with.
	MaskCollidable = CategoryMask(1)<<CategoryTerrain | CategoryMask(1)<<CategoryWmo | CategoryMask(1)<<CategoryDoodad
	MaskAll        = CategoryMask(1)<<CategoryCount - 1
)

func (m CategoryMask) Has(c Category) bool {
	return m&c.Flag() != 0
}

// NewCategoryMask combines the flags of the given categories.
func NewCategoryMask(categories ...Category) CategoryMask {
	m := MaskNone
	for _, c := range categories {
		m |= c.Flag()
	}
	return m
}
