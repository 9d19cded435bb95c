package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/navview/engine/renderer/metadata"
)

const (
	positionAttribute = 0
	normalAttribute   = 1
	colourAttribute   = 2

	normalOffset = 3 * 4
	colourOffset = 6 * 4
)

/**
 * @brief Internal GPU handles of one uploaded geometry buffer.
 */
type OpenGLGeometry struct {
	VAO uint32
	VBO uint32
	/** @brief Zero when the buffer is drawn without indices. */
	EBO uint32
	/** @brief GL_TRIANGLES or GL_LINES. */
	Mode        uint32
	VertexCount int32
	IndexCount  int32
}

func newOpenGLGeometry(g *metadata.GeometryBuffer) *OpenGLGeometry {
	geometry := &OpenGLGeometry{
		Mode:        gl.TRIANGLES,
		VertexCount: int32(len(g.Vertices)),
		IndexCount:  int32(len(g.Indices)),
	}
	if g.Topology == metadata.TopologyLines {
		geometry.Mode = gl.LINES
	}

	gl.GenVertexArrays(1, &geometry.VAO)
	gl.BindVertexArray(geometry.VAO)

	gl.GenBuffers(1, &geometry.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, geometry.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*metadata.ColoredVertexSize, gl.Ptr(g.Vertices), gl.STATIC_DRAW)

	if g.IsIndexed() {
		gl.GenBuffers(1, &geometry.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, geometry.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)
	}

	gl.VertexAttribPointerWithOffset(positionAttribute, 3, gl.FLOAT, false, metadata.ColoredVertexSize, 0)
	gl.EnableVertexAttribArray(positionAttribute)
	gl.VertexAttribPointerWithOffset(normalAttribute, 3, gl.FLOAT, false, metadata.ColoredVertexSize, normalOffset)
	gl.EnableVertexAttribArray(normalAttribute)
	gl.VertexAttribPointerWithOffset(colourAttribute, 4, gl.FLOAT, false, metadata.ColoredVertexSize, colourOffset)
	gl.EnableVertexAttribArray(colourAttribute)

	gl.BindVertexArray(0)
	return geometry
}

func (g *OpenGLGeometry) draw() {
	gl.BindVertexArray(g.VAO)
	if g.EBO != 0 {
		gl.DrawElements(g.Mode, g.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(g.Mode, 0, g.VertexCount)
	}
	gl.BindVertexArray(0)
}

func (g *OpenGLGeometry) destroy() {
	if g.VAO != 0 {
		gl.DeleteVertexArrays(1, &g.VAO)
	}
	if g.VBO != 0 {
		gl.DeleteBuffers(1, &g.VBO)
	}
	if g.EBO != 0 {
		gl.DeleteBuffers(1, &g.EBO)
	}
	g.VAO, g.VBO, g.EBO = 0, 0, 0
}
