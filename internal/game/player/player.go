// Package player implements the first person controller: a dynamic
// capsule-like body for movement and collision, with a camera hanging
// off an anchor node at eye height.
package player

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/portalgame/internal/config"
	"github.com/Faultbox/portalgame/internal/engine/input"
	"github.com/Faultbox/portalgame/internal/engine/physics"
	"github.com/Faultbox/portalgame/internal/engine/scene"
	"github.com/Faultbox/portalgame/internal/render"
	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// mouseAngvelMultiplier converts mouse motion into yaw angular velocity
// on the body. Negative because positive mouse X aims right, which is a
// negative rotation around +Y.
const mouseAngvelMultiplier = -75.0

// Controller is the player: body, transform nodes and view camera.
type Controller struct {
	Body   physics.BodyID
	Root   scene.NodeID
	Anchor scene.NodeID
	Camera *render.Camera

	Yaw   float32
	Pitch float32

	// CameraLock hands the camera's rotational freedom to the roll
	// animation after a teleport; mouse aim resumes when it clears.
	CameraLock bool

	cfg config.PlayerConfig
}

// Spawn creates the player at the given position. The body is a dynamic
// box roughly the size of a capsule; the camera anchor sits at eye
// height relative to the body center and the camera is a child of the
// anchor so pitch stays off the body.
func Spawn(world *physics.World, graph *scene.Graph, cameras *render.Cameras, cfg config.PlayerConfig, at gmath.Vec3) *Controller {
	body := physics.Body{
		Transform:   gmath.TransformFromTranslation(at),
		Groups:      physics.CollisionGroups{Memberships: physics.GroupPlayer, Filter: physics.GroupAll},
		HalfExtents: gmath.Vec3{X: 0.4, Y: cfg.Height / 2, Z: 0.4},
	}
	id := world.AddBody(body)

	root := graph.AddNode(scene.NoNode, gmath.TransformFromTranslation(at))
	anchorOffset := gmath.Vec3{Y: cfg.EyeHeight - cfg.Height/2}
	anchor := graph.AddNode(root, gmath.TransformFromTranslation(anchorOffset))
	camNode := graph.AddNode(anchor, gmath.NewTransform())

	camera := &render.Camera{
		Node:       camNode,
		Projection: render.NewPerspectiveProjection(),
		Priority:   0,
	}
	cameras.Add(camera)

	return &Controller{
		Body:   id,
		Root:   root,
		Anchor: anchor,
		Camera: camera,
		cfg:    cfg,
	}
}

// ProcessInput turns one frame of input into body velocities and camera
// rotation. Horizontal velocity is set directly from the aim direction;
// vertical velocity is preserved so gravity and jumps behave.
func (c *Controller) ProcessInput(frame input.Frame, world *physics.World, graph *scene.Graph) {
	body := world.Body(c.Body)
	if body == nil {
		return
	}

	speed := c.cfg.Speed
	if frame.Sprint {
		speed *= c.cfg.SprintMultiplier
	}

	vel := gmath.Vec3{Y: body.Linvel.Y}

	forward := body.Transform.Forward()
	if frame.Forward && !frame.Backward {
		vel.X += speed * forward.X
		vel.Z += speed * forward.Z
	} else if frame.Backward && !frame.Forward {
		vel.X -= speed * forward.X
		vel.Z -= speed * forward.Z
	}

	left := body.Transform.Left()
	if frame.StrafeLeft && !frame.StrafeRight {
		vel.X += speed * left.X
		vel.Z += speed * left.Z
	} else if frame.StrafeRight && !frame.StrafeLeft {
		vel.X -= speed * left.X
		vel.Z -= speed * left.Z
	}

	if frame.JumpPressed {
		vel.Y = c.cfg.JumpSpeed
	}
	body.Linvel = vel

	// Yaw goes on the body as angular velocity so physics sees the
	// rotation; pitch goes on the camera anchor so the body stays
	// vertical.
	if frame.MouseDX != 0 || frame.MouseDY != 0 {
		sens := c.cfg.MouseSensitivity
		c.Yaw += frame.MouseDX * sens
		c.Pitch += frame.MouseDY * sens
		c.Pitch = clampf(c.Pitch, -math32.Pi/2, math32.Pi/2)

		if !c.CameraLock {
			body.Angvel.Y = frame.MouseDX * sens * mouseAngvelMultiplier
			if local := graph.Local(c.Anchor); local != nil {
				local.Rotation = gmath.QuatFromAxisAngle(gmath.Vec3X, -c.Pitch)
			}
		}
	} else {
		body.Angvel.Y = 0
	}
}

// SyncFromBody copies the body's physics transform onto the root node.
// Runs every frame after the physics step, before Propagate.
func (c *Controller) SyncFromBody(world *physics.World, graph *scene.Graph) {
	body := world.Body(c.Body)
	if body == nil {
		return
	}
	graph.SetLocal(c.Root, body.Transform)
}

// EyeNode returns the node whose world transform is the player's view.
func (c *Controller) EyeNode() scene.NodeID {
	return c.Camera.Node
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
