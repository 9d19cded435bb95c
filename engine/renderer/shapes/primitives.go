package shapes

import (
	"github.com/spaghettifunk/navview/engine/core"
	"github.com/spaghettifunk/navview/engine/math"
)

// HeightFunc returns the height of a surface at the given world X/Y.
type HeightFunc func(x, y float32) float32

/**
 * @brief Generates an axis aligned box. Each face gets its own four
 * vertices so flat face normals stay sharp along the edges.
 *
 * @param extents The minimum and maximum corners of the box.
 * @return The vertex positions and the triangle list indices.
 */
func GenerateBox(extents math.Extents3D) ([]math.Vec3, []uint32) {
	lo, hi := extents.Min, extents.Max
	if lo.X == hi.X || lo.Y == hi.Y || lo.Z == hi.Z {
		core.LogWarn("box has a zero sized axis (%v - %v), faces will be degenerate", lo, hi)
	}

	// Corners of every face, counter-clockwise seen from outside.
	faces := [6][4]math.Vec3{
		// Top
		{{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z}},
		// Bottom
		{{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: lo.X, Y: hi.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z}},
		// Right
		{{X: hi.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: hi.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z}},
		// Left
		{{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: lo.X, Y: lo.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: lo.Z}},
		// Back
		{{X: lo.X, Y: hi.Y, Z: lo.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z}, {X: hi.X, Y: hi.Y, Z: hi.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z}},
		// Front
		{{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z}, {X: lo.X, Y: lo.Y, Z: hi.Z}},
	}

	vertices := make([]math.Vec3, 0, 4*6)
	indices := make([]uint32, 0, 6*6)
	for _, face := range faces {
		base := uint32(len(vertices))
		vertices = append(vertices, face[:]...)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

/**
 * @brief Generates a regular grid on the X/Y plane starting at origin,
 * lifted by height. Triangles face +Z.
 *
 * @param origin The minimum X/Y corner. Its Z is used when height is nil.
 * @param width The size of the grid along X.
 * @param depth The size of the grid along Y.
 * @param xSegments The number of quads along X. Values below 1 act as 1.
 * @param ySegments The number of quads along Y. Values below 1 act as 1.
 * @param height The surface height, nil for a flat grid at origin.Z.
 */
func GenerateGrid(origin math.Vec3, width, depth float32, xSegments, ySegments int, height HeightFunc) ([]math.Vec3, []uint32) {
	xSegments = max(xSegments, 1)
	ySegments = max(ySegments, 1)

	stepX := width / float32(xSegments)
	stepY := depth / float32(ySegments)
	row := uint32(xSegments + 1)

	vertices := make([]math.Vec3, 0, (xSegments+1)*(ySegments+1))
	for j := 0; j <= ySegments; j++ {
		for i := 0; i <= xSegments; i++ {
			x := origin.X + float32(i)*stepX
			y := origin.Y + float32(j)*stepY
			z := origin.Z
			if height != nil {
				z = height(x, y)
			}
			vertices = append(vertices, math.NewVec3(x, y, z))
		}
	}

	indices := make([]uint32, 0, xSegments*ySegments*6)
	for j := uint32(0); j < uint32(ySegments); j++ {
		for i := uint32(0); i < uint32(xSegments); i++ {
			v00 := j*row + i
			v10 := v00 + 1
			v01 := v00 + row
			v11 := v01 + 1
			indices = append(indices, v00, v10, v11, v00, v11, v01)
		}
	}
	return vertices, indices
}

// Merge appends the second mesh to the first, rebasing its indices.
func Merge(vertices []math.Vec3, indices []uint32, otherVertices []math.Vec3, otherIndices []uint32) ([]math.Vec3, []uint32) {
	base := uint32(len(vertices))
	vertices = append(vertices, otherVertices...)
	for _, i := range otherIndices {
		indices = append(indices, base+i)
	}
	return vertices, indices
}
