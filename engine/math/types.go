package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector. It is comparable, so it can be used
// directly as a map key when exact positional equality is wanted.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief a 4x4 matrix stored in column-major order, Data[col*4+row].
 * This is the layout expected by OpenGL uniform uploads.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief A ray in world space. Direction is expected to be unit length.
 */
type Ray struct {
	/** @brief The point the ray starts from. */
	Origin Vec3
	/** @brief The unit direction of the ray. */
	Direction Vec3
}
