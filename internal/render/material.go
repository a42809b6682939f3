package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	gmath "github.com/Faultbox/portalgame/pkg/math"
)

const surfaceVertexShader = `
#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
uniform mat4 uModel;
uniform mat4 uViewProj;
out vec3 vNormal;
void main() {
    vNormal = mat3(uModel) * aNormal;
    gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
}
`

// The open surface samples the paired camera's render target with screen
// coordinates. The paired camera already renders the scene from the
// matching point of view behind the other portal, so a screen-space
// lookup lines the image up with the hole in the wall.
const openPortalFragmentShader = `
#version 410 core
uniform sampler2D uPortalTexture;
uniform vec2 uScreenSize;
out vec4 fragColor;
void main() {
    vec2 uv = gl_FragCoord.xy / uScreenSize;
    fragColor = vec4(texture(uPortalTexture, uv).rgb, 1.0);
}
`

const closedPortalFragmentShader = `
#version 410 core
uniform float uTime;
uniform vec3 uColor;
in vec3 vNormal;
out vec4 fragColor;
void main() {
    float pulse = 0.75 + 0.25 * sin(uTime * 3.0);
    fragColor = vec4(uColor * pulse, 1.0);
}
`

const flatFragmentShader = `
#version 410 core
uniform vec3 uColor;
in vec3 vNormal;
out vec4 fragColor;
void main() {
    vec3 lightDir = normalize(vec3(0.4, 1.0, 0.2));
    float diffuse = 0.35 + 0.65 * max(dot(normalize(vNormal), lightDir), 0.0);
    fragColor = vec4(uColor * diffuse, 1.0);
}
`

// OpenPortalMaterial draws a portal surface textured with the paired
// camera's framebuffer. Both faces are visible, so culling is disabled
// while drawing.
type OpenPortalMaterial struct {
	prog    *Program
	Texture uint32
}

// NewOpenPortalMaterial compiles the open-surface program.
func NewOpenPortalMaterial() (*OpenPortalMaterial, error) {
	prog, err := NewProgram(surfaceVertexShader, openPortalFragmentShader)
	if err != nil {
		return nil, err
	}
	return &OpenPortalMaterial{prog: prog}, nil
}

// Bind prepares the material for drawing.
func (m *OpenPortalMaterial) Bind(model, viewProj *gmath.Mat4, screenW, screenH int32) {
	m.prog.Use()
	m.prog.SetMat4("uModel", model)
	m.prog.SetMat4("uViewProj", viewProj)
	m.prog.SetVec2("uScreenSize", float32(screenW), float32(screenH))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, m.Texture)
	m.prog.SetInt("uPortalTexture", 0)
	gl.Disable(gl.CULL_FACE)
}

// Unbind restores state the material changed.
func (m *OpenPortalMaterial) Unbind() {
	gl.Enable(gl.CULL_FACE)
}

// Destroy releases the program.
func (m *OpenPortalMaterial) Destroy() {
	m.prog.Destroy()
}

// ClosedPortalMaterial draws a half-open portal as a pulsing tinted oval
// until its pair exists.
type ClosedPortalMaterial struct {
	prog  *Program
	Color gmath.Vec3
}

// NewClosedPortalMaterial compiles the closed-surface program.
func NewClosedPortalMaterial(color gmath.Vec3) (*ClosedPortalMaterial, error) {
	prog, err := NewProgram(surfaceVertexShader, closedPortalFragmentShader)
	if err != nil {
		return nil, err
	}
	return &ClosedPortalMaterial{prog: prog, Color: color}, nil
}

// Bind prepares the material for drawing.
func (m *ClosedPortalMaterial) Bind(model, viewProj *gmath.Mat4, time float32) {
	m.prog.Use()
	m.prog.SetMat4("uModel", model)
	m.prog.SetMat4("uViewProj", viewProj)
	m.prog.SetFloat("uTime", time)
	m.prog.SetVec3("uColor", m.Color)
	gl.Disable(gl.CULL_FACE)
}

// Unbind restores state the material changed.
func (m *ClosedPortalMaterial) Unbind() {
	gl.Enable(gl.CULL_FACE)
}

// Destroy releases the program.
func (m *ClosedPortalMaterial) Destroy() {
	m.prog.Destroy()
}

// FlatMaterial draws level geometry and props with a single diffuse
// color and a fixed directional light.
type FlatMaterial struct {
	prog *Program
}

// NewFlatMaterial compiles the flat-shaded program.
func NewFlatMaterial() (*FlatMaterial, error) {
	prog, err := NewProgram(surfaceVertexShader, flatFragmentShader)
	if err != nil {
		return nil, err
	}
	return &FlatMaterial{prog: prog}, nil
}

// Bind prepares the material for drawing with the given color.
func (m *FlatMaterial) Bind(model, viewProj *gmath.Mat4, color gmath.Vec3) {
	m.prog.Use()
	m.prog.SetMat4("uModel", model)
	m.prog.SetMat4("uViewProj", viewProj)
	m.prog.SetVec3("uColor", color)
}

// Destroy releases the program.
func (m *FlatMaterial) Destroy() {
	m.prog.Destroy()
}
