package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFaceNormals(t *testing.T) {
	positions := []Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, // CCW seen from +Z
		{0, 0, 5}, {0, 1, 5}, {1, 0, 5}, // CW seen from +Z
	}
	indices := []uint32{0, 1, 2, 3, 4, 5}

	normals := GenerateFaceNormals(positions, indices, NewVec3Zero())
	require.Len(t, normals, len(positions))
	for i := 0; i < 3; i++ {
		assert.Equal(t, NewVec3(0, 0, 1), normals[i])
	}
	for i := 3; i < 6; i++ {
		assert.Equal(t, NewVec3(0, 0, -1), normals[i])
	}
}

func TestGenerateFaceNormalsSharedVertexTakesLastTriangle(t *testing.T) {
	positions := []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	// second triangle (0, 3, 1) lies in the XZ plane
	normals := GenerateFaceNormals(positions, []uint32{0, 1, 2, 0, 3, 1}, NewVec3Zero())

	assert.Equal(t, NewVec3(0, 0, 1), normals[2])
	assert.True(t, normals[0].Compare(NewVec3(0, 1, 0), 1e-6), "got %v", normals[0])
}

func TestGenerateFaceNormalsSkipsBadIndices(t *testing.T) {
	positions := []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	normals := GenerateFaceNormals(positions, []uint32{0, 1, 9, 0, 1}, NewVec3WorldUp())
	for _, n := range normals {
		assert.Equal(t, NewVec3WorldUp(), n)
	}
}

func TestIntersectRayTriangle(t *testing.T) {
	v0 := NewVec3(-1, -1, 0)
	v1 := NewVec3(1, -1, 0)
	v2 := NewVec3(0, 1, 0)

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"straight down", Ray{NewVec3(0, 0, 10), NewVec3(0, 0, -1)}, true, 10},
		{"from below", Ray{NewVec3(0, 0, -3), NewVec3(0, 0, 1)}, true, 3},
		{"pointing away", Ray{NewVec3(0, 0, 10), NewVec3(0, 0, 1)}, false, 0},
		{"outside", Ray{NewVec3(5, 5, 10), NewVec3(0, 0, -1)}, false, 0},
		{"parallel", Ray{NewVec3(0, 0, 1), NewVec3(1, 0, 0)}, false, 0},
		{"origin on the plane", Ray{NewVec3(0, 0, 0), NewVec3(0, 0, -1)}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := IntersectRayTriangle(tt.ray, v0, v1, v2)
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.InDelta(t, tt.wantT, d, 1e-5)
				p := tt.ray.PointAt(d)
				assert.InDelta(t, 0, p.Z, 1e-5)
			}
		})
	}
}
