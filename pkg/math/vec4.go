package math

// Vec4 is a 4-component vector. It doubles as a homogeneous plane
// equation (Nx, Ny, Nz, D) where N is the plane normal.
type Vec4 [4]float32

// XYZ returns the first three components as a Vec3.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Dot returns the 4D dot product.
func (v Vec4) Dot(other Vec4) float32 {
	return v[0]*other[0] + v[1]*other[1] + v[2]*other[2] + v[3]*other[3]
}

// Scale returns v * scalar.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// PlaneFromPointNormal builds the homogeneous plane equation for the
// plane with the given (normalized) normal passing through point.
func PlaneFromPointNormal(point, normal Vec3) Vec4 {
	return Vec4{normal.X, normal.Y, normal.Z, -normal.Dot(point)}
}

// DistanceToPlane returns the signed distance from point to the plane.
func (v Vec4) DistanceToPlane(point Vec3) float32 {
	return v.XYZ().Dot(point) + v[3]
}
