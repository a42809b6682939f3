package math

import "testing"

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func vecNear(a, b Vec3, eps float32) bool {
	return a.AbsDiffEq(b, eps)
}

func TestVec3AddSub(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	sum := a.Add(b)
	if sum != (Vec3{5, 7, 9}) {
		t.Errorf("Add: got %v, want {5 7 9}", sum)
	}

	diff := b.Sub(a)
	if diff != (Vec3{3, 3, 3}) {
		t.Errorf("Sub: got %v, want {3 3 3}", diff)
	}
}

func TestVec3Cross(t *testing.T) {
	// X cross Y = Z
	result := Vec3X.Cross(Vec3Y)
	if result != Vec3Z {
		t.Errorf("X cross Y: got %v, want %v", result, Vec3Z)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	if abs(n.Length()-1) > 0.0001 {
		t.Errorf("normalized length: got %f, want 1", n.Length())
	}

	// Zero vector normalizes to zero, not NaN
	z := Vec3{}.Normalize()
	if z != (Vec3{}) {
		t.Errorf("zero normalize: got %v, want zero", z)
	}
}

func TestVec3ProjectOnto(t *testing.T) {
	v := Vec3{2, 3, 0}
	p := v.ProjectOnto(Vec3Y)
	if p != (Vec3{0, 3, 0}) {
		t.Errorf("ProjectOnto Y: got %v, want {0 3 0}", p)
	}
}

func TestVec3AbsDiffEq(t *testing.T) {
	a := Vec3{1, 1, 1}
	b := Vec3{1.0005, 0.9995, 1}
	if !a.AbsDiffEq(b, 0.001) {
		t.Error("expected vectors within tolerance")
	}
	if a.AbsDiffEq(b, 0.0001) {
		t.Error("expected vectors outside tolerance")
	}
}

func TestPlaneFromPointNormal(t *testing.T) {
	plane := PlaneFromPointNormal(Vec3{0, 2, 0}, Vec3Y)

	// Point on the plane has zero signed distance
	if d := plane.DistanceToPlane(Vec3{5, 2, -3}); abs(d) > 0.0001 {
		t.Errorf("on-plane distance: got %f, want 0", d)
	}
	// Point one unit along the normal is at distance 1
	if d := plane.DistanceToPlane(Vec3{0, 3, 0}); abs(d-1) > 0.0001 {
		t.Errorf("off-plane distance: got %f, want 1", d)
	}
}
