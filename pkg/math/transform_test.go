package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestTransformApply(t *testing.T) {
	trf := Transform{
		Translation: Vec3{10, 0, 0},
		Rotation:    QuatRotationY(math32.Pi / 2),
		Scale:       2,
	}

	// (0,0,-1) scaled to (0,0,-2), rotated 90 around Y to (-2,0,0),
	// translated to (8,0,0).
	got := trf.Apply(Vec3{0, 0, -1})
	if !vecNear(got, Vec3{8, 0, 0}, 0.0001) {
		t.Errorf("Apply: got %v, want {8 0 0}", got)
	}
}

func TestTransformMulMatchesMatrix(t *testing.T) {
	a := Transform{
		Translation: Vec3{1, 2, 3},
		Rotation:    QuatFromAxisAngle(Vec3{0, 1, 1}.Normalize(), 0.9),
		Scale:       1.5,
	}
	b := Transform{
		Translation: Vec3{-4, 0, 2},
		Rotation:    QuatRotationY(0.4),
		Scale:       1,
	}
	p := Vec3{0.5, -1, 2}

	viaTransform := a.Mul(b).Apply(p)
	viaMatrix := a.Matrix().Mul(b.Matrix()).TransformPoint(p)
	if !vecNear(viaTransform, viaMatrix, 0.001) {
		t.Errorf("compose: transform %v vs matrix %v", viaTransform, viaMatrix)
	}
}

func TestTransformInverse(t *testing.T) {
	trf := Transform{
		Translation: Vec3{3, -2, 7},
		Rotation:    QuatFromAxisAngle(Vec3{1, 0, 1}.Normalize(), 1.1),
		Scale:       2,
	}
	p := Vec3{1, 2, 3}

	back := trf.Inverse().Apply(trf.Apply(p))
	if !vecNear(back, p, 0.001) {
		t.Errorf("inverse round trip: got %v, want %v", back, p)
	}
}

func TestTransformAxes(t *testing.T) {
	trf := NewTransform()
	if !vecNear(trf.Forward(), Vec3NegZ, 0.0001) {
		t.Errorf("identity forward: got %v, want -Z", trf.Forward())
	}
	if !vecNear(trf.Back(), Vec3Z, 0.0001) {
		t.Errorf("identity back: got %v, want +Z", trf.Back())
	}
	if !vecNear(trf.Up(), Vec3Y, 0.0001) {
		t.Errorf("identity up: got %v, want +Y", trf.Up())
	}

	// Yawed half a turn, forward flips.
	trf.Rotation = QuatRotationY(math32.Pi)
	if !vecNear(trf.Forward(), Vec3Z, 0.0001) {
		t.Errorf("yawed forward: got %v, want +Z", trf.Forward())
	}
}

func TestTransformLookAt(t *testing.T) {
	trf := TransformFromTranslation(Vec3{0, 0, 0})
	trf.LookAt(Vec3{0, 0, 5}, Vec3Y)

	// Forward points at the target.
	if !vecNear(trf.Forward(), Vec3Z, 0.0001) {
		t.Errorf("look at +Z: forward got %v", trf.Forward())
	}
}
