// Package physics provides the collision and rigid-body collaborator for
// the portal prototype: group-filtered ray casts against static level
// geometry, velocity integration for dynamic bodies, and sensor overlap
// events. It is a deliberately small stand-in for a full physics engine;
// there is no contact resolution.
package physics

// Group is a collision-group bitmask.
type Group uint32

// Collision groups used across the prototype.
const (
	GroupWalls Group = 1 << iota
	GroupProps
	GroupPortal
	GroupPlayer
	GroupRaycast
	GroupGround
	GroupDoorSensor
	GroupTransitionSensor
)

// GroupAll matches every group.
const GroupAll = ^Group(0)

// GroupStatic is the level geometry eligible for portal placement.
const GroupStatic = GroupWalls | GroupGround

// CollisionGroups pairs a body's own memberships with the groups it is
// allowed to collide with.
type CollisionGroups struct {
	Memberships Group
	Filter      Group
}
