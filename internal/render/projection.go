package render

import (
	"github.com/chewxy/math32"

	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// Projection produces a clip matrix for a camera.
type Projection interface {
	Matrix() gmath.Mat4
	SetAspect(aspect float32)
}

// PerspectiveProjection is a right-handed perspective projection with an
// infinite far plane. Depth maps the near plane to 0 and infinity to 1.
type PerspectiveProjection struct {
	FovY   float32
	Aspect float32
	Near   float32
}

// NewPerspectiveProjection returns a projection with the usual defaults.
func NewPerspectiveProjection() *PerspectiveProjection {
	return &PerspectiveProjection{
		FovY:   math32.Pi / 4,
		Aspect: 16.0 / 9.0,
		Near:   0.1,
	}
}

// Matrix returns the projection matrix.
func (p *PerspectiveProjection) Matrix() gmath.Mat4 {
	return gmath.PerspectiveInfinite(p.FovY, p.Aspect, p.Near)
}

// SetAspect updates the aspect ratio, typically after a window resize.
func (p *PerspectiveProjection) SetAspect(aspect float32) {
	p.Aspect = aspect
}

// obliqueBaseNear is the near distance of the unmodified matrix the
// oblique clip plane replaces. Its value barely matters because the near
// plane is about to be overwritten, but it must be positive.
const obliqueBaseNear = 0.5

// ObliqueProjection is a perspective projection whose near clipping plane
// is replaced by an arbitrary camera-space plane. Portal cameras use it
// to clip everything between the destination portal surface and the
// virtual camera floating behind it.
//
// Math from http://www.terathon.com/lengyel/Lengyel-Oblique.pdf
type ObliqueProjection struct {
	FovY   float32
	Aspect float32

	// ClipPlane is (n.x, n.y, n.z, d) in camera space with the normal
	// pointing into the visible half-space.
	ClipPlane gmath.Vec4
}

// NewObliqueProjection returns an oblique projection whose clip plane
// starts out as a conventional near plane at 0.1.
func NewObliqueProjection() *ObliqueProjection {
	return &ObliqueProjection{
		FovY:      math32.Pi / 4,
		Aspect:    16.0 / 9.0,
		ClipPlane: gmath.Vec4{0, 0, -1, -0.1},
	}
}

// Matrix returns the projection matrix with the oblique near plane. The
// depth row of the base matrix is rescaled so that the clip plane maps to
// depth 0 while the opposite frustum corner keeps its depth.
func (p *ObliqueProjection) Matrix() gmath.Mat4 {
	proj := gmath.PerspectiveInfinite(p.FovY, p.Aspect, obliqueBaseNear)

	c := p.ClipPlane
	q := proj.Inverse().MulVec4(gmath.Vec4{
		math32.Copysign(1, c[0]),
		math32.Copysign(1, c[1]),
		1,
		1,
	})
	a := proj.Row(3).Dot(q) / c.Dot(q)
	proj.SetRow(2, c.Scale(a))

	return proj
}

// SetAspect updates the aspect ratio.
func (p *ObliqueProjection) SetAspect(aspect float32) {
	p.Aspect = aspect
}
