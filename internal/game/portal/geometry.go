// Package portal implements paired portals: placement on level
// geometry, the virtual cameras that render each portal's view of the
// other side, and teleportation of props and the player between them.
//
// Conventions:
//
//   - A portal's origin is at the center of its sensor volume, pushed
//     into the surface so the clip plane coincides with the wall.
//   - The portal's forward axis points into the surface; its back axis
//     is the outward surface normal.
package portal

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/portalgame/internal/engine/physics"
	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// PortalToPortal returns the rigid transform that maps poses near the
// render portal to the equivalent poses behind the linked portal. An
// extra half-turn around the linked portal's vertical axis makes the
// result face out of the destination rather than into it.
//
// The composition walks: world -> render portal local -> clip offset ->
// half-turn -> linked portal local -> world.
func PortalToPortal(render, linked gmath.Transform, meshDepth float32) gmath.Transform {
	renderClipToLocal := gmath.TransformFromTranslation(render.Forward().Scale(meshDepth))
	linkedLocalToClip := gmath.TransformFromTranslation(linked.Back().Scale(meshDepth))
	halfTurn := gmath.TransformFromRotation(gmath.QuatRotationY(math32.Pi))

	return linkedLocalToClip.
		Mul(linked).
		Mul(halfTurn).
		Mul(render.Inverse()).
		Mul(renderClipToLocal)
}

// PortalPlane returns the portal's clip plane in world space as
// (n.x, n.y, n.z, d). The normal is the outward surface normal and the
// plane passes through the portal surface, meshDepth behind the origin.
func PortalPlane(trf gmath.Transform, meshDepth float32) gmath.Vec4 {
	normal := trf.Back()
	position := trf.Translation.Add(normal.Scale(meshDepth))
	return gmath.Vec4{normal.X, normal.Y, normal.Z, -normal.Dot(position)}
}

// AdjustOriginToObstacles nudges a portal origin away from nearby
// geometry so the portal does not clip into a floor, ceiling or corner.
// Rays are cast along the portal plane: down before up, then left
// before right, each correction pushing the origin the missing
// clearance in the opposite direction.
func AdjustOriginToObstacles(world *physics.World, base, impactNormal, up gmath.Vec3, reach float32) gmath.Vec3 {
	corrected := base
	right := up.Cross(impactNormal)
	left := right.Neg()
	down := up.Neg()

	if hit, ok := world.CastRay(corrected, down, reach, false, physics.GroupStatic); ok {
		corrected = corrected.Add(up.Scale(reach - hit.Distance))
	} else if hit, ok := world.CastRay(corrected, up, reach, false, physics.GroupStatic); ok {
		corrected = corrected.Add(down.Scale(reach - hit.Distance))
	}

	if hit, ok := world.CastRay(corrected, left, reach, false, physics.GroupStatic); ok {
		corrected = corrected.Add(right.Scale(reach - hit.Distance))
	} else if hit, ok := world.CastRay(corrected, right, reach, false, physics.GroupStatic); ok {
		corrected = corrected.Add(left.Scale(reach - hit.Distance))
	}

	return corrected
}

// AdjustPlayerCameraOnTeleport applies the teleport transform to the
// player root and corrects the orientation afterwards:
//
//   - The root is transformed normally and the resulting look direction
//     noted.
//   - If the root is no longer upright, it is snapped back upright with
//     its yaw preserving the horizontal component of the look direction.
//   - The vertical component of the look direction moves onto the
//     camera as pitch.
//
// Returns the corrected pitch and whether a correction was applied; the
// caller owns the roll animation that hides the snap.
func AdjustPlayerCameraOnTeleport(teleport gmath.Transform, player, camLocal *gmath.Transform) (pitch float32, corrected bool) {
	*player = teleport.Mul(*player)
	if player.Up().AbsDiffEq(gmath.Vec3Y, 0.001) {
		return 0, false
	}

	newLook := teleport.Rotation.MulVec3(camLocal.Forward())
	player.Rotation = gmath.QuatIdentity()

	horizontal := gmath.Vec3{X: newLook.X, Z: newLook.Z}
	if horizontal.Length() > 0.001 {
		player.LookAt(player.Translation.Add(horizontal), gmath.Vec3Y)
	}

	vertical := gmath.Vec3{Y: newLook.Y, Z: newLook.Z}
	if vertical.Length() > 0.001 {
		dir := newLook.Normalize()
		pitch = -math32.Asin(clampf(dir.Y, -1, 1))
		camLocal.Rotation = gmath.QuatFromAxisAngle(gmath.Vec3X, -pitch)
	}
	return pitch, true
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
