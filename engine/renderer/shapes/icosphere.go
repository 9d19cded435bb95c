package shapes

import (
	"github.com/spaghettifunk/navview/engine/math"
)

// icosahedronIndices lists the 20 faces of the base icosahedron, wound
// counter-clockwise when seen from outside.
var icosahedronIndices = []uint32{
	0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
	1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
	3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
	4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
}

/**
 * @brief Generates an icosphere around center. Every subdivision level splits
 * each triangle into four, pushing the three new edge midpoints out onto the
 * sphere. Midpoints are not shared between neighbouring triangles, so at
 * level L the mesh has 20*4^L triangles and 12 + sum(60*4^k, k<L) vertices.
 *
 * @param center The centre of the sphere.
 * @param radius The distance of every vertex from the centre.
 * @param level The number of subdivision passes. Negative values act as 0.
 * @return The vertex positions and the triangle list indices.
 */
func GenerateIcosphere(center math.Vec3, radius float32, level int) ([]math.Vec3, []uint32) {
	if level < 0 {
		level = 0
	}

	t := (1.0 + math.Sqrt(5.0)) / 2.0
	project := func(dir math.Vec3) math.Vec3 {
		return center.Add(dir.Normalize().MulScalar(radius))
	}

	// Each level adds three vertices per triangle of the level before it.
	vertexCount := 12
	triangles := 20
	for l := 0; l < level; l++ {
		vertexCount += 3 * triangles
		triangles *= 4
	}

	vertices := make([]math.Vec3, 0, vertexCount)
	for _, v := range []math.Vec3{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	} {
		vertices = append(vertices, project(v))
	}

	indices := make([]uint32, len(icosahedronIndices))
	copy(indices, icosahedronIndices)

	for l := 0; l < level; l++ {
		next := make([]uint32, 0, len(indices)*4)
		for i := 0; i+2 < len(indices); i += 3 {
			v0, v1, v2 := indices[i], indices[i+1], indices[i+2]
			p0, p1, p2 := vertices[v0], vertices[v1], vertices[v2]

			m01 := uint32(len(vertices))
			vertices = append(vertices, project(midpoint(p0, p1).Sub(center)))
			m12 := uint32(len(vertices))
			vertices = append(vertices, project(midpoint(p1, p2).Sub(center)))
			m20 := uint32(len(vertices))
			vertices = append(vertices, project(midpoint(p2, p0).Sub(center)))

			next = append(next,
				v0, m01, m20,
				v1, m12, m01,
				v2, m20, m12,
				m01, m12, m20,
			)
		}
		indices = next
	}

	return vertices, indices
}

func midpoint(a, b math.Vec3) math.Vec3 {
	return a.Add(b).MulScalar(0.5)
}
