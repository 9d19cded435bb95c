package math

const (
	// RayEpsilon is the tolerance used both for parallel rays and for the
	// minimum accepted hit distance.
	RayEpsilon float32 = 1e-5
)

// GenerateFaceNormals assigns the face normal of every complete triangle to
// its three vertices. Triangles referencing out of range vertices are
// skipped. Shared vertices keep the normal of the last triangle that
// touches them, vertices used by no triangle get fallback.
func GenerateFaceNormals(positions []Vec3, indices []uint32, fallback Vec3) []Vec3 {
	normals := make([]Vec3, len(positions))
	for i := range normals {
		normals[i] = fallback
	}
	count := uint32(len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]
		if i0 >= count || i1 >= count || i2 >= count {
			continue
		}

		edge1 := positions[i1].Sub(positions[i0])
		edge2 := positions[i2].Sub(positions[i0])

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		normal := edge1.Cross(edge2).Normalize()
		normals[i0] = normal
		normals[i1] = normal
		normals[i2] = normal
	}
	return normals
}

// IntersectRayTriangle returns the distance along ray at which it crosses
// the triangle (v0, v1, v2), using the Möller–Trumbore algorithm. Hits at or
// behind the ray origin are rejected.
func IntersectRayTriangle(ray Ray, v0, v1, v2 Vec3) (float32, bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -RayEpsilon && a < RayEpsilon {
		// parallel to the triangle plane
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t <= RayEpsilon {
		return 0, false
	}
	return t, true
}

// PointAt returns the point at distance t along the ray.
func (r Ray) PointAt(t float32) Vec3 {
	return r.Origin.Add(r.Direction.MulScalar(t))
}
