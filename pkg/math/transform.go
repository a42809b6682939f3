package math

// Transform is a rigid transform with uniform scale: translate, rotate
// and scale, applied to points as translation + rotation*(scale*p).
type Transform struct {
	Translation Vec3
	Rotation    Quat
	Scale       float32
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{Rotation: QuatIdentity(), Scale: 1}
}

// TransformFromTranslation returns a pure translation transform.
func TransformFromTranslation(t Vec3) Transform {
	return Transform{Translation: t, Rotation: QuatIdentity(), Scale: 1}
}

// TransformFromRotation returns a pure rotation transform.
func TransformFromRotation(r Quat) Transform {
	return Transform{Rotation: r, Scale: 1}
}

// Forward returns the local -Z axis in world space.
func (t Transform) Forward() Vec3 {
	return t.Rotation.MulVec3(Vec3NegZ)
}

// Back returns the local +Z axis in world space.
func (t Transform) Back() Vec3 {
	return t.Rotation.MulVec3(Vec3Z)
}

// Up returns the local +Y axis in world space.
func (t Transform) Up() Vec3 {
	return t.Rotation.MulVec3(Vec3Y)
}

// Down returns the local -Y axis in world space.
func (t Transform) Down() Vec3 {
	return t.Rotation.MulVec3(Vec3Y.Neg())
}

// Right returns the local +X axis in world space.
func (t Transform) Right() Vec3 {
	return t.Rotation.MulVec3(Vec3X)
}

// Left returns the local -X axis in world space.
func (t Transform) Left() Vec3 {
	return t.Rotation.MulVec3(Vec3X.Neg())
}

// Apply transforms a point from local to world space.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Rotation.MulVec3(p.Scale(t.Scale)).Add(t.Translation)
}

// Mul composes two transforms: the result applies other first, then t.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		Translation: t.Apply(other.Translation),
		Rotation:    t.Rotation.Mul(other.Rotation),
		Scale:       t.Scale * other.Scale,
	}
}

// Inverse returns the inverse transform. Scale must be non-zero.
func (t Transform) Inverse() Transform {
	invScale := 1 / t.Scale
	invRot := t.Rotation.Inverse()
	return Transform{
		Translation: invRot.MulVec3(t.Translation.Neg()).Scale(invScale),
		Rotation:    invRot,
		Scale:       invScale,
	}
}

// LookAt orients the transform so its forward (-Z) axis points from its
// translation toward target, with +Y as close to up as possible.
func (t *Transform) LookAt(target, up Vec3) {
	dir := target.Sub(t.Translation)
	if dir.Length() == 0 {
		return
	}
	t.Rotation = QuatLookRotation(dir, up)
}

// Matrix returns the transform as a column-major matrix (T * R * S).
func (t Transform) Matrix() Mat4 {
	m := t.Rotation.ToMat4()
	for i := 0; i < 12; i++ {
		m[i] *= t.Scale
	}
	m[12] = t.Translation.X
	m[13] = t.Translation.Y
	m[14] = t.Translation.Z
	return m
}
