package portal

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/portalgame/internal/engine/audio"
	"github.com/Faultbox/portalgame/internal/engine/physics"
	"github.com/Faultbox/portalgame/internal/engine/scene"
	"github.com/Faultbox/portalgame/internal/logger"
	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// ErrNoSurface is returned by Fire when the aim ray hits no static
// geometry a portal can be placed on.
var ErrNoSurface = errors.New("no portal surface along the aim ray")

const (
	// zFightingOffset lifts the portal off its surface so the surface
	// polygon does not flicker through it.
	zFightingOffset = 0.001

	// portalScale stretches the unit portal mesh and sensor to its
	// world size.
	portalScale = 2.0

	maxFireDistance = 1000.0
)

// Fire shoots a portal from the player camera along its aim direction.
// A hit on static level geometry replaces the slot's existing portal;
// a miss leaves the pair untouched and returns ErrNoSurface.
func (e *Engine) Fire(slot Slot) error {
	camTrf := e.graph.World(e.player.EyeNode())
	origin := camTrf.Translation
	aim := camTrf.Forward()

	hit, ok := e.world.CastRay(origin, aim, maxFireDistance, true, physics.GroupStatic)
	if !ok {
		if e.audio != nil {
			e.audio.Play(audio.SoundPortalDenied)
		}
		return ErrNoSurface
	}

	center := hit.Point.Add(hit.Normal.Scale(zFightingOffset))
	up, orientation := e.portalUpAxis(hit.Normal, camTrf)
	translation := AdjustOriginToObstacles(e.world, center, hit.Normal, up, e.cfg.ObstacleRayLength)

	// Face the portal into the surface, then sink it by the mesh depth
	// so the clip plane coincides with the wall.
	trf := gmath.TransformFromTranslation(translation)
	trf.LookAt(translation.Sub(hit.Normal), up)
	trf.Scale = portalScale
	trf.Translation = trf.Translation.Add(trf.Forward().Scale(e.cfg.MeshDepth))

	e.replacePortal(slot, trf, orientation)

	logger.Info("portal placed",
		zap.String("slot", slot.String()),
		zap.Float32("x", trf.Translation.X),
		zap.Float32("y", trf.Translation.Y),
		zap.Float32("z", trf.Translation.Z),
		zap.Bool("horizontal", orientation == OrientationHorizontal),
	)
	if e.audio != nil {
		e.audio.Play(audio.SoundPortalFire)
	}
	return nil
}

// portalUpAxis picks the portal's up direction for a given surface
// normal. On a floor or ceiling the up direction follows the aim so the
// portal faces the player; on a wall it is the world vertical projected
// onto the surface.
func (e *Engine) portalUpAxis(normal gmath.Vec3, camTrf gmath.Transform) (gmath.Vec3, Orientation) {
	if normal.Abs().AbsDiffEq(gmath.Vec3Y, e.cfg.VerticalTolerance) {
		aim := camTrf.Forward()
		up := aim.Sub(aim.ProjectOnto(normal))
		if up.Length() < 1e-4 {
			// Aim is parallel to the normal, which happens when the
			// camera looks straight down or up. Use the body's facing
			// instead; it stays horizontal.
			facing := e.world.Body(e.player.Body).Transform.Forward()
			up = facing.Sub(facing.ProjectOnto(normal))
		}
		if up.Length() < 1e-4 {
			up = gmath.Vec3X
		}
		return up.Normalize(), OrientationHorizontal
	}

	proj := gmath.Vec3Y.ProjectOnto(normal)
	return gmath.Vec3Y.Sub(proj).Normalize(), OrientationOther
}

// replacePortal tears down the slot's previous portal, if any, and
// installs the new one.
func (e *Engine) replacePortal(slot Slot, trf gmath.Transform, orientation Orientation) {
	if old := e.portals[slot]; old != nil {
		logger.Info("despawning previous portal", zap.String("slot", slot.String()))
		if old.Camera != nil {
			e.cameras.Remove(old.Camera)
			e.graph.Remove(old.Camera.Node)
		}
		e.graph.Remove(old.Node)
		e.world.RemoveBody(old.Sensor)

		// Bodies gated by the old portal get their filters back unless
		// the other portal still holds them.
		for id := range e.contacts[slot] {
			e.restoreFilter(slot, id)
		}
		e.contacts[slot] = make(map[physics.BodyID]struct{})
	}

	node := e.graph.AddNode(scene.NoNode, trf)
	sensor := e.world.AddBody(physics.Body{
		Transform:   trf,
		Sensor:      true,
		HalfExtents: gmath.Vec3{X: 0.5, Y: 0.5, Z: e.cfg.MeshDepth / 2},
		Groups: physics.CollisionGroups{
			Memberships: physics.GroupPortal,
			Filter:      physics.GroupPlayer | physics.GroupProps,
		},
	})

	e.portals[slot] = &Portal{
		Slot:        slot,
		Orientation: orientation,
		Node:        node,
		Sensor:      sensor,
	}
}
