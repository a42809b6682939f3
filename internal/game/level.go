package game

import (
	"github.com/Faultbox/portalgame/internal/engine/physics"
	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// levelBox is one rendered chamber box. Physics uses the matching
// static collider; the model matrix bakes the box's size.
type levelBox struct {
	model gmath.Mat4
	color gmath.Vec3
}

func boxModel(center, half gmath.Vec3) gmath.Mat4 {
	m := gmath.Translate(center.X, center.Y, center.Z)
	m[0] = half.X * 2
	m[5] = half.Y * 2
	m[10] = half.Z * 2
	return m
}

// buildChamber creates the test chamber: a 12x12 room with a raised
// platform, plus two loose cubes to throw through portals.
func (g *Game) buildChamber() {
	type slab struct {
		center gmath.Vec3
		half   gmath.Vec3
		group  physics.Group
		color  gmath.Vec3
	}

	wallColor := gmath.Vec3{X: 0.55, Y: 0.55, Z: 0.6}
	floorColor := gmath.Vec3{X: 0.4, Y: 0.42, Z: 0.45}

	slabs := []slab{
		{gmath.Vec3{Y: -0.25}, gmath.Vec3{X: 6, Y: 0.25, Z: 6}, physics.GroupGround, floorColor},
		{gmath.Vec3{Y: 4.25}, gmath.Vec3{X: 6, Y: 0.25, Z: 6}, physics.GroupWalls, wallColor},
		{gmath.Vec3{Z: -6.25, Y: 2}, gmath.Vec3{X: 6, Y: 2.25, Z: 0.25}, physics.GroupWalls, wallColor},
		{gmath.Vec3{Z: 6.25, Y: 2}, gmath.Vec3{X: 6, Y: 2.25, Z: 0.25}, physics.GroupWalls, wallColor},
		{gmath.Vec3{X: -6.25, Y: 2}, gmath.Vec3{X: 0.25, Y: 2.25, Z: 6}, physics.GroupWalls, wallColor},
		{gmath.Vec3{X: 6.25, Y: 2}, gmath.Vec3{X: 0.25, Y: 2.25, Z: 6}, physics.GroupWalls, wallColor},
		// Raised platform in a corner, portal-eligible on all faces.
		{gmath.Vec3{X: 3.5, Y: 0.5, Z: -3.5}, gmath.Vec3{X: 1.5, Y: 0.5, Z: 1.5}, physics.GroupGround, floorColor},
	}

	for _, s := range slabs {
		g.world.AddStatic(physics.NewAABB(s.center.Sub(s.half), s.center.Add(s.half)), s.group)
		g.level = append(g.level, levelBox{model: boxModel(s.center, s.half), color: s.color})
	}

	propSpots := []gmath.Vec3{
		{X: -2, Y: 0.5, Z: -2},
		{X: 2, Y: 0.5, Z: 2},
	}
	for _, at := range propSpots {
		id := g.world.AddBody(physics.Body{
			Transform:   gmath.TransformFromTranslation(at),
			Groups:      physics.CollisionGroups{Memberships: physics.GroupProps, Filter: physics.GroupAll},
			HalfExtents: gmath.Vec3{X: 0.3, Y: 0.3, Z: 0.3},
		})
		g.props = append(g.props, id)
	}
}
