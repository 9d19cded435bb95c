package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/navview/engine/core"
)

const (
	BUILTIN_SHADER_NAME_GEOMETRY = "geometry"

	mvpUniformName = "mvp"
)

// ShaderSource provides the GLSL text of a shader stage, e.g. "geometry.vert".
type ShaderSource interface {
	LoadShaderSource(name string) (string, error)
}

/**
 * @brief The linked program used for every geometry buffer.
 */
type OpenGLShader struct {
	Name        string
	Program     uint32
	MvpLocation int32
}

func NewShader(name string, source ShaderSource) (*OpenGLShader, error) {
	vertSrc, err := source.LoadShaderSource(name + ".vert")
	if err != nil {
		return nil, err
	}
	fragSrc, err := source.LoadShaderSource(name + ".frag")
	if err != nil {
		return nil, err
	}

	vert, err := compileShaderStage(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%s.vert: %w", name, err)
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShaderStage(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%s.frag: %w", name, err)
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("%s: %w: %s", name, core.ErrShaderLink, strings.TrimRight(log, "\x00"))
	}

	shader := &OpenGLShader{
		Name:        name,
		Program:     program,
		MvpLocation: gl.GetUniformLocation(program, gl.Str(mvpUniformName+"\x00")),
	}
	if shader.MvpLocation < 0 {
		core.LogWarn("shader `%s` has no `%s` uniform", name, mvpUniformName)
	}
	return shader, nil
}

func (s *OpenGLShader) Use() {
	gl.UseProgram(s.Program)
}

func (s *OpenGLShader) Destroy() {
	if s.Program != 0 {
		gl.DeleteProgram(s.Program)
		s.Program = 0
	}
}

func compileShaderStage(src string, stage uint32) (uint32, error) {
	shader := gl.CreateShader(stage)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", core.ErrShaderCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
