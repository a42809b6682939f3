package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestQuatIdentityMulVec3(t *testing.T) {
	v := Vec3{1, 2, 3}
	result := QuatIdentity().MulVec3(v)
	if !vecNear(result, v, 0.0001) {
		t.Errorf("identity rotation: got %v, want %v", result, v)
	}
}

func TestQuatRotationY180(t *testing.T) {
	q := QuatRotationY(math32.Pi)
	result := q.MulVec3(Vec3{0, 0, -1})
	if !vecNear(result, Vec3{0, 0, 1}, 0.0001) {
		t.Errorf("180 yaw of -Z: got %v, want +Z", result)
	}
	// Y axis is preserved
	up := q.MulVec3(Vec3Y)
	if !vecNear(up, Vec3Y, 0.0001) {
		t.Errorf("180 yaw of +Y: got %v, want +Y", up)
	}
}

func TestQuatMulComposes(t *testing.T) {
	// Two quarter turns around Y equal one half turn.
	quarter := QuatRotationY(math32.Pi / 2)
	half := quarter.Mul(quarter)

	a := half.MulVec3(Vec3X)
	b := QuatRotationY(math32.Pi).MulVec3(Vec3X)
	if !vecNear(a, b, 0.0001) {
		t.Errorf("composed rotation: got %v, want %v", a, b)
	}
}

func TestQuatInverse(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 0}.Normalize(), 0.8)
	v := Vec3{3, -2, 5}
	back := q.Inverse().MulVec3(q.MulVec3(v))
	if !vecNear(back, v, 0.0001) {
		t.Errorf("inverse round trip: got %v, want %v", back, v)
	}
}

func TestQuatMulVec3MatchesMatrix(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0.3, -0.5, 0.8}.Normalize(), 1.2)
	v := Vec3{1, 2, 3}

	direct := q.MulVec3(v)
	viaMat := q.ToMat4().TransformPoint(v)
	if !vecNear(direct, viaMat, 0.0001) {
		t.Errorf("quat vs matrix rotation: got %v, want %v", direct, viaMat)
	}
}

func TestQuatLookRotation(t *testing.T) {
	// Looking along -X: forward should become -X, up stays +Y.
	q := QuatLookRotation(Vec3{-1, 0, 0}, Vec3Y)

	fwd := q.MulVec3(Vec3NegZ)
	if !vecNear(fwd, Vec3{-1, 0, 0}, 0.0001) {
		t.Errorf("look rotation forward: got %v, want -X", fwd)
	}
	up := q.MulVec3(Vec3Y)
	if !vecNear(up, Vec3Y, 0.0001) {
		t.Errorf("look rotation up: got %v, want +Y", up)
	}
}

func TestQuatLookRotationDegenerate(t *testing.T) {
	// Forward parallel to up must not produce NaN.
	q := QuatLookRotation(Vec3Y, Vec3Y)
	fwd := q.MulVec3(Vec3NegZ)
	if fwd.X != fwd.X || fwd.Y != fwd.Y || fwd.Z != fwd.Z {
		t.Error("degenerate look rotation produced NaN")
	}
	if abs(fwd.Length()-1) > 0.001 {
		t.Errorf("degenerate look rotation length: got %f", fwd.Length())
	}
}

func TestQuatSlerpEndpoints(t *testing.T) {
	a := QuatIdentity()
	b := QuatRotationY(math32.Pi / 2)

	if got := a.Slerp(b, 0); abs(got.Dot(a)) < 0.9999 {
		t.Errorf("slerp t=0: got %v", got)
	}
	if got := a.Slerp(b, 1); abs(got.Dot(b)) < 0.9999 {
		t.Errorf("slerp t=1: got %v", got)
	}
}
