package physics

import (
	gomath "math"

	"github.com/Faultbox/portalgame/pkg/math"
)

// Ray is a ray in 3D space with origin and normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners, swapping axes as needed so
// Min < Max.
func NewAABB(min, max math.Vec3) AABB {
	if min.X > max.X {
		min.X, max.X = max.X, min.X
	}
	if min.Y > max.Y {
		min.Y, max.Y = max.Y, min.Y
	}
	if min.Z > max.Z {
		min.Z, max.Z = max.Z, min.Z
	}
	return AABB{Min: min, Max: max}
}

// Hit describes the nearest ray intersection.
type Hit struct {
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
}

// intersectAABB runs the slab test against box. It returns the entry
// distance, the axis (0..2) whose slab produced it, and whether the ray
// started inside the box. For a ray starting inside, the exit distance
// and exit axis are reported instead. ok is false on a miss.
func (r Ray) intersectAABB(box AABB) (t float32, axis int, inside, ok bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	axisIn, axisOut := -1, -1

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	min := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	max := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] != 0 {
			t1 := (min[i] - origin[i]) / dir[i]
			t2 := (max[i] - origin[i]) / dir[i]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
				axisIn = i
			}
			if t2 < tmax {
				tmax = t2
				axisOut = i
			}
		} else if origin[i] < min[i] || origin[i] > max[i] {
			return 0, 0, false, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false, false
	}
	if tmin < 0 {
		// Started inside: report the exit distance.
		return tmax, axisOut, true, true
	}
	return tmin, axisIn, false, true
}
