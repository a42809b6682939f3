package portal

import (
	"go.uber.org/zap"

	"github.com/Faultbox/portalgame/internal/engine/audio"
	"github.com/Faultbox/portalgame/internal/engine/physics"
	"github.com/Faultbox/portalgame/internal/logger"
	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// clipOffset is the vector from the portal's clip plane to the object.
// Crossing is detected when the object is close to the plane and on the
// far side of it, i.e. past the wall surface.
func clipOffset(pos gmath.Vec3, portal gmath.Transform, meshDepth float32) gmath.Vec3 {
	return pos.Sub(portal.Translation).Add(portal.Forward().Scale(meshDepth))
}

// teleportProps moves registered props that crossed a portal plane to
// the linked portal, rotating their velocities along. Each prop crosses
// at most one portal per frame: arriving on the out side of the
// destination puts it behind that portal's plane, so the crossing test
// cannot immediately fire again.
func (e *Engine) teleportProps() {
	a, b := e.portals[SlotA], e.portals[SlotB]
	if a == nil || b == nil {
		return
	}
	ta := e.graph.World(a.Node)
	tb := e.graph.World(b.Node)

	var aToB, bToA *gmath.Transform
	for id := range e.teleportables {
		body := e.world.Body(id)
		if body == nil {
			continue
		}
		pos := body.Transform.Translation
		aClip := clipOffset(pos, ta, e.cfg.MeshDepth)
		bClip := clipOffset(pos, tb, e.cfg.MeshDepth)

		if aClip.Length() < e.cfg.PropProximity {
			if aClip.Dot(ta.Forward()) > 0 {
				if aToB == nil {
					t := PortalToPortal(ta, tb, e.cfg.MeshDepth)
					aToB = &t
				}
				teleportBody(body, *aToB)
				logger.Info("teleported prop", zap.String("from", SlotA.String()))
			}
		} else if bClip.Length() < e.cfg.PropProximity && bClip.Dot(tb.Forward()) > 0 {
			if bToA == nil {
				t := PortalToPortal(tb, ta, e.cfg.MeshDepth)
				bToA = &t
			}
			teleportBody(body, *bToA)
			logger.Info("teleported prop", zap.String("from", SlotB.String()))
		}
	}
}

func teleportBody(body *physics.Body, t gmath.Transform) {
	body.Transform = t.Mul(body.Transform)
	body.Linvel = t.Rotation.MulVec3(body.Linvel)
	body.Angvel = t.Rotation.MulVec3(body.Angvel)
}

// teleportPlayer handles the player crossing. Unlike props the player
// body must stay upright, so the raw transform goes through the camera
// correction, and the exit velocity is redirected along the destination
// portal's outward axis with a minimum outbound speed so the player
// always clears the portal volume.
func (e *Engine) teleportPlayer() {
	a, b := e.portals[SlotA], e.portals[SlotB]
	if a == nil || b == nil {
		return
	}
	body := e.world.Body(e.player.Body)
	if body == nil {
		return
	}
	ta := e.graph.World(a.Node)
	tb := e.graph.World(b.Node)

	pos := body.Transform.Translation
	aClip := clipOffset(pos, ta, e.cfg.MeshDepth)
	bClip := clipOffset(pos, tb, e.cfg.MeshDepth)

	if aClip.Length() < e.cfg.PlayerProximity {
		if aClip.Dot(ta.Forward()) > 0 {
			e.teleportPlayerThrough(SlotA, ta, tb)
		}
	} else if bClip.Length() < e.cfg.PlayerProximity && bClip.Dot(tb.Forward()) > 0 {
		e.teleportPlayerThrough(SlotB, tb, ta)
	}
}

func (e *Engine) teleportPlayerThrough(from Slot, src, dst gmath.Transform) {
	body := e.world.Body(e.player.Body)
	camLocal := e.graph.Local(e.player.Anchor)
	t := PortalToPortal(src, dst, e.cfg.MeshDepth)

	playerTrf := body.Transform
	// World rotation the camera would have without the upright snap;
	// the roll animation starts there.
	rawCamRot := t.Mul(playerTrf).Rotation.Mul(camLocal.Rotation)

	pitch, corrected := AdjustPlayerCameraOnTeleport(t, &playerTrf, camLocal)
	body.Transform = playerTrf
	e.graph.SetLocal(e.player.Root, playerTrf)

	out := dst.Back()
	moved := t.Rotation.MulVec3(body.Linvel)
	body.Linvel = out.Scale(moved.Length())
	if body.Linvel.Dot(out) < e.cfg.MinOutboundSpeed {
		body.Linvel = body.Linvel.Add(out.Scale(e.cfg.MinOutboundSpeed))
	}

	if corrected {
		e.player.Pitch = pitch
		end := camLocal.Rotation
		start := playerTrf.Rotation.Inverse().Mul(rawCamRot)
		camLocal.Rotation = start
		e.roll = NewRollAnimation(start, end, e.cfg.RollDuration)
		e.player.CameraLock = true
	}

	// Park the body kinematic for a short window so the solver does not
	// shove it back through the portal it just left.
	body.Kinematic = true
	e.kinematicRemaining = e.cfg.KinematicWindow

	logger.Info("teleported player", zap.String("from", from.String()))
	if e.audio != nil {
		e.audio.Play(audio.SoundTeleport)
	}
}
