package render

import (
	"testing"

	"github.com/chewxy/math32"

	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// ndcDepth projects a camera-space point and returns z_clip / w_clip.
func ndcDepth(m gmath.Mat4, p gmath.Vec3) float32 {
	clip := m.MulVec4(gmath.Vec4{p.X, p.Y, p.Z, 1})
	return clip[2] / clip[3]
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := NewPerspectiveProjection()
	m := p.Matrix()

	near := ndcDepth(m, gmath.Vec3{Z: -p.Near})
	if math32.Abs(near) > 1e-5 {
		t.Errorf("near plane depth: got %v, want 0", near)
	}
	far := ndcDepth(m, gmath.Vec3{Z: -10000})
	if far < 0.99 || far > 1.0001 {
		t.Errorf("far depth: got %v, want ~1", far)
	}
}

func TestObliqueMatchesPlainNearPlane(t *testing.T) {
	// A clip plane that coincides with the base near plane must
	// reproduce the unmodified projection.
	ob := NewObliqueProjection()
	ob.ClipPlane = gmath.Vec4{0, 0, -1, -obliqueBaseNear}

	got := ob.Matrix()
	want := gmath.PerspectiveInfinite(ob.FovY, ob.Aspect, obliqueBaseNear)
	for i := 0; i < 16; i++ {
		if math32.Abs(got[i]-want[i]) > 1e-5 {
			t.Fatalf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestObliquePlaneMapsToDepthZero(t *testing.T) {
	normal := gmath.Vec3{X: 0.3, Y: -0.1, Z: -1}.Normalize()
	anchor := gmath.Vec3{X: 0.2, Y: 0.1, Z: -2}

	ob := NewObliqueProjection()
	ob.ClipPlane = gmath.Vec4{normal.X, normal.Y, normal.Z, -normal.Dot(anchor)}
	m := ob.Matrix()

	// Points on the clip plane sit exactly at depth 0.
	tangent := normal.Cross(gmath.Vec3Y).Normalize()
	for _, offset := range []float32{0, 0.5, -0.7} {
		p := anchor.Add(tangent.Scale(offset))
		if d := ndcDepth(m, p); math32.Abs(d) > 1e-4 {
			t.Errorf("on-plane point %v: depth %v, want 0", p, d)
		}
	}

	// A point past the plane has positive depth, a point between the
	// plane and the camera has negative depth and gets clipped.
	behind := anchor.Add(normal.Scale(2))
	if d := ndcDepth(m, behind); d <= 0 {
		t.Errorf("point past plane: depth %v, want > 0", d)
	}
	front := anchor.Sub(normal.Scale(0.5))
	if d := ndcDepth(m, front); d >= 0 {
		t.Errorf("point before plane: depth %v, want < 0", d)
	}
}

func TestObliqueSetAspect(t *testing.T) {
	ob := NewObliqueProjection()
	ob.SetAspect(2)
	if ob.Aspect != 2 {
		t.Errorf("aspect: got %v, want 2", ob.Aspect)
	}
}
