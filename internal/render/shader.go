// Package render holds the OpenGL-facing pieces of the game: shader
// programs, camera projections, portal surface materials and the few
// meshes the prototype needs.
package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"

	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// Program wraps a linked GLSL program and caches uniform locations.
type Program struct {
	id       uint32
	uniforms map[string]int32
}

// NewProgram compiles vertex and fragment sources and links them.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(frag)

	id := gl.CreateProgram()
	gl.AttachShader(id, vert)
	gl.AttachShader(id, frag)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(id, logLen, nil, &log[0])
		gl.DeleteProgram(id)
		return nil, errors.Errorf("link: %s", string(log))
	}

	return &Program{id: id, uniforms: make(map[string]int32)}, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, errors.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Uniform returns the cached location of the named uniform, or -1 if the
// uniform is inactive.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// SetMat4 uploads a matrix uniform.
func (p *Program) SetMat4(name string, m *gmath.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, m.Ptr())
}

// SetVec3 uploads a vec3 uniform.
func (p *Program) SetVec3(name string, v gmath.Vec3) {
	gl.Uniform3f(p.Uniform(name), v.X, v.Y, v.Z)
}

// SetVec2 uploads a vec2 uniform.
func (p *Program) SetVec2(name string, x, y float32) {
	gl.Uniform2f(p.Uniform(name), x, y)
}

// SetFloat uploads a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Uniform(name), v)
}

// SetInt uploads an int uniform, used for sampler bindings.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Uniform(name), v)
}

// Destroy deletes the program.
func (p *Program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
