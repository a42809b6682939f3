package portal

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/portalgame/internal/config"
	"github.com/Faultbox/portalgame/internal/engine/audio"
	"github.com/Faultbox/portalgame/internal/engine/framebuffer"
	"github.com/Faultbox/portalgame/internal/engine/input"
	"github.com/Faultbox/portalgame/internal/engine/physics"
	"github.com/Faultbox/portalgame/internal/engine/scene"
	"github.com/Faultbox/portalgame/internal/game/player"
	"github.com/Faultbox/portalgame/internal/logger"
	"github.com/Faultbox/portalgame/internal/render"
	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// Engine owns the two portal slots and runs the per-frame portal
// pipeline. Stage order matters: firing reshapes the pair, cameras sync
// against this frame's transforms, collision gating reacts to sensor
// events, and teleports run last so a crossing is seen at most once.
type Engine struct {
	cfg     config.PortalConfig
	world   *physics.World
	graph   *scene.Graph
	cameras *render.Cameras
	player  *player.Controller
	audio   *audio.Manager

	portals [2]*Portal
	targets [2]*framebuffer.Framebuffer

	teleportables map[physics.BodyID]struct{}
	contacts      [2]map[physics.BodyID]struct{}

	roll               *RollAnimation
	kinematicRemaining time.Duration
}

// NewEngine creates the portal engine. audioMgr may be nil to run
// silent, as the tests do.
func NewEngine(cfg config.PortalConfig, world *physics.World, graph *scene.Graph, cameras *render.Cameras, plr *player.Controller, audioMgr *audio.Manager) *Engine {
	return &Engine{
		cfg:           cfg,
		world:         world,
		graph:         graph,
		cameras:       cameras,
		player:        plr,
		audio:         audioMgr,
		teleportables: make(map[physics.BodyID]struct{}),
		contacts: [2]map[physics.BodyID]struct{}{
			make(map[physics.BodyID]struct{}),
			make(map[physics.BodyID]struct{}),
		},
	}
}

// SetRenderTargets hands the engine the offscreen targets the portal
// cameras draw into. Cameras created before this point pick them up.
func (e *Engine) SetRenderTargets(a, b *framebuffer.Framebuffer) {
	e.targets[SlotA] = a
	e.targets[SlotB] = b
	for _, p := range e.portals {
		if p != nil && p.Camera != nil {
			p.Target = e.targets[p.Slot]
			p.Camera.Target = e.targets[p.Slot]
		}
	}
}

// AddTeleportable registers a prop body as teleportable through portals.
// The player is always teleportable and is handled separately.
func (e *Engine) AddTeleportable(id physics.BodyID) {
	e.teleportables[id] = struct{}{}
}

// Portal returns the portal in the given slot, or nil if not placed.
func (e *Engine) Portal(slot Slot) *Portal {
	return e.portals[slot]
}

// Open reports whether both portals are placed and linked.
func (e *Engine) Open() bool {
	return e.portals[SlotA] != nil && e.portals[SlotB] != nil
}

// Rolling reports whether the post-teleport roll animation is running.
func (e *Engine) Rolling() bool {
	return e.roll != nil
}

// Tick runs one frame of the portal pipeline.
func (e *Engine) Tick(dt time.Duration, frame input.Frame) {
	if frame.FirePortalA {
		if err := e.Fire(SlotA); err != nil {
			logger.Debug("portal shot missed", zap.String("slot", SlotA.String()), zap.Error(err))
		}
	}
	if frame.FirePortalB {
		if err := e.Fire(SlotB); err != nil {
			logger.Debug("portal shot missed", zap.String("slot", SlotB.String()), zap.Error(err))
		}
	}

	e.ensureCameras()
	e.syncCameras()
	e.processContacts()
	e.teleportProps()
	e.teleportPlayer()
	e.advanceRoll(dt)
	e.advanceKinematic(dt)
}

// ensureCameras lazily creates a virtual camera for any portal that
// does not have one yet.
func (e *Engine) ensureCameras() {
	for _, p := range e.portals {
		if p == nil || p.Camera != nil {
			continue
		}
		camNode := e.graph.AddNode(scene.NoNode, gmath.NewTransform())
		p.Target = e.targets[p.Slot]
		p.Camera = &render.Camera{
			Node:       camNode,
			Projection: render.NewObliqueProjection(),
			Target:     p.Target,
			// Render before the main camera, which samples the result.
			Priority: -1 - int(p.Slot),
		}
		e.cameras.Add(p.Camera)
	}
}

func (e *Engine) advanceRoll(dt time.Duration) {
	if e.roll == nil {
		return
	}
	rotation, done := e.roll.Advance(dt)
	if local := e.graph.Local(e.player.Anchor); local != nil {
		local.Rotation = rotation
	}
	if done {
		e.roll = nil
		e.player.CameraLock = false
		logger.Info("roll animation completed")
	}
}

func (e *Engine) advanceKinematic(dt time.Duration) {
	if e.kinematicRemaining <= 0 {
		return
	}
	e.kinematicRemaining -= dt
	if e.kinematicRemaining <= 0 {
		if body := e.world.Body(e.player.Body); body != nil {
			body.Kinematic = false
		}
	}
}
