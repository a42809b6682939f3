package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	if result != (Vec3{11, 22, 33}) {
		t.Errorf("TransformPoint: got %v, want {11 22 33}", result)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(math32.Pi / 2)
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if !vecNear(result, Vec3{0, 0, -1}, 0.001) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()

	if tr[3] != 1 || tr[7] != 2 || tr[11] != 3 {
		t.Errorf("Transpose moved translation to row 4: got %v", tr)
	}
	back := tr.Transpose()
	if back != m {
		t.Error("double transpose should return original")
	}
}

func TestRowSetRow(t *testing.T) {
	m := Identity()
	m.SetRow(2, Vec4{1, 2, 3, 4})
	if m.Row(2) != (Vec4{1, 2, 3, 4}) {
		t.Errorf("Row(2): got %v, want {1 2 3 4}", m.Row(2))
	}
	// Other rows untouched
	if m.Row(0) != (Vec4{1, 0, 0, 0}) {
		t.Errorf("Row(0) disturbed: got %v", m.Row(0))
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(3, -1, 2).Mul(RotateY(0.7)).Mul(ScaleUniform(2))
	inv := m.Inverse()
	id := m.Mul(inv)

	want := Identity()
	for i := 0; i < 16; i++ {
		if abs(id[i]-want[i]) > 0.0001 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, id[i], want[i])
		}
	}
}

func TestPerspectiveDepthBounds(t *testing.T) {
	near, far := float32(0.5), float32(100.0)
	proj := Perspective(math32.Pi/4, 16.0/9.0, near, far)

	// Finite-far GL convention: near plane at NDC z = -1, far at +1.
	p := proj.TransformPoint(Vec3{0, 0, -near})
	if abs(p.Z+1) > 0.001 {
		t.Errorf("near-plane point NDC z: got %f, want -1", p.Z)
	}
	p = proj.TransformPoint(Vec3{0, 0, -far})
	if abs(p.Z-1) > 0.001 {
		t.Errorf("far-plane point NDC z: got %f, want 1", p.Z)
	}

	mid := proj.TransformPoint(Vec3{0, 0, -10})
	if mid.Z <= -1 || mid.Z >= 1 {
		t.Errorf("in-frustum point NDC z out of range: %f", mid.Z)
	}
}

func TestPerspectiveInfinite(t *testing.T) {
	proj := PerspectiveInfinite(math32.Pi/4, 16.0/9.0, 0.5)

	// A point on the near plane maps to NDC z = 0 under the [0,1] depth
	// convention, and distant points approach 1.
	p := proj.TransformPoint(Vec3{0, 0, -0.5})
	if abs(p.Z) > 0.001 {
		t.Errorf("near-plane point NDC z: got %f, want 0", p.Z)
	}

	far := proj.TransformPoint(Vec3{0, 0, -1e6})
	if far.Z < 0.99 {
		t.Errorf("far point NDC z: got %f, want ~1", far.Z)
	}
}
