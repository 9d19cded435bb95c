package metadata

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/navview/engine/math"
)

/**
 * @brief Represents a single vertex as uploaded to the GPU. The layout is
 * tightly packed float32: position, normal, colour.
 */
type ColoredVertex struct {
	/** @brief The position of the vertex */
	Position math.Vec3
	/** @brief The normal of the vertex. Zero when normals were not generated. */
	Normal math.Vec3
	/** @brief The colour of the vertex. */
	Colour math.Vec4
}

/** @brief The size in bytes of one ColoredVertex. */
const ColoredVertexSize = (3 + 3 + 4) * 4

/** @brief How the index list of a geometry buffer is interpreted. */
type Topology uint8

const (
	/** @brief Every three indices form a triangle. */
	TopologyTriangles Topology = iota
	/** @brief Every two indices form a line segment. */
	TopologyLines
)

/** @brief The number of indices forming one primitive. */
func (t Topology) IndicesPerPrimitive() int {
	if t == TopologyLines {
		return 2
	}
	return 3
}

func (t Topology) String() string {
	if t == TopologyLines {
		return "lines"
	}
	return "triangles"
}

/**
 * @brief A batch of coloured geometry owned by the renderer. Every index is
 * smaller than len(Vertices) and len(Indices) is a multiple of the topology's
 * primitive size.
 */
type GeometryBuffer struct {
	/** @brief Unique identifier, used in logs. */
	ID uuid.UUID
	/** @brief The category the buffer was inserted under. */
	Category Category
	/** @brief How Indices are assembled into primitives. */
	Topology Topology
	/** @brief Caller supplied value returned by hit tests (area id, model id, ...). */
	UserParameter uint32
	/** @brief The vertices of the buffer. */
	Vertices []ColoredVertex
	/** @brief The indices of the buffer. May be empty. */
	Indices []uint32
	/** @brief The internal identifier, used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief True while GPU resources exist for this buffer. */
	Uploaded bool
	/** @brief Set when an upload attempt failed, to avoid retrying every frame. */
	UploadFailed bool
}

/** @brief Creates a buffer with a fresh identifier. */
func NewGeometryBuffer(category Category, topology Topology, userParameter uint32) *GeometryBuffer {
	return &GeometryBuffer{
		ID:            uuid.New(),
		Category:      category,
		Topology:      topology,
		UserParameter: userParameter,
	}
}

/** @brief True when the buffer has nothing to upload or draw. */
func (g *GeometryBuffer) IsEmpty() bool {
	return len(g.Vertices) == 0
}

/** @brief True when the buffer is drawn with an index list. */
func (g *GeometryBuffer) IsIndexed() bool {
	return len(g.Indices) > 0
}
