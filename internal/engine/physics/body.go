package physics

import "github.com/Faultbox/portalgame/pkg/math"

// BodyID is a handle into the world's body arena.
type BodyID int32

// NoBody is the invalid body handle.
const NoBody BodyID = -1

// Body is a simulated rigid body or sensor volume.
type Body struct {
	Transform math.Transform
	Linvel    math.Vec3
	Angvel    math.Vec3
	Groups    CollisionGroups

	// HalfExtents is the body's box collider in local units; the
	// transform's uniform scale applies on top of it.
	HalfExtents math.Vec3

	// Kinematic bodies move by their velocities but ignore gravity; the
	// teleport engine parks the player here briefly around a crossing so
	// the exit boost carries them clear of the portal volume.
	Kinematic bool

	// Sensor volumes generate contact events instead of colliding.
	Sensor bool

	alive bool
}

// Radius returns the body's bounding-sphere radius in world units.
func (b *Body) Radius() float32 {
	return b.HalfExtents.Scale(b.Transform.Scale).Length()
}
