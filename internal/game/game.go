// Package game wires the engine pieces into the playable prototype: a
// test chamber, the first person controller and the portal pair.
package game

import (
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/portalgame/internal/config"
	"github.com/Faultbox/portalgame/internal/engine/audio"
	"github.com/Faultbox/portalgame/internal/engine/framebuffer"
	"github.com/Faultbox/portalgame/internal/engine/input"
	"github.com/Faultbox/portalgame/internal/engine/physics"
	"github.com/Faultbox/portalgame/internal/engine/scene"
	"github.com/Faultbox/portalgame/internal/engine/window"
	"github.com/Faultbox/portalgame/internal/game/player"
	"github.com/Faultbox/portalgame/internal/game/portal"
	"github.com/Faultbox/portalgame/internal/logger"
	"github.com/Faultbox/portalgame/internal/render"
	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// Game is the running prototype.
type Game struct {
	cfg     *config.Config
	running bool
	elapsed float32

	window  *window.Window
	input   *input.Input
	audio   *audio.Manager
	world   *physics.World
	graph   *scene.Graph
	cameras *render.Cameras
	player  *player.Controller
	portals *portal.Engine

	level []levelBox
	props []physics.BodyID

	boxMesh    *render.Mesh
	propMesh   *render.Mesh
	portalMesh *render.Mesh

	flat       *render.FlatMaterial
	openMats   [2]*render.OpenPortalMaterial
	closedMats [2]*render.ClosedPortalMaterial
	portalFBs  [2]*framebuffer.Framebuffer
}

// New creates the game: window and GL context first, then the physics
// world, the chamber, the player and the portal engine.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{cfg: cfg}

	var err error
	g.window, err = window.New("Portal Prototype", cfg.Graphics.Width, cfg.Graphics.Height, cfg.Graphics.Fullscreen, cfg.Graphics.VSync)
	if err != nil {
		return nil, errors.Wrap(err, "creating window")
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	g.input = input.New()

	g.audio = audio.New()
	if err := g.audio.Init(); err != nil {
		// Sound is not worth dying for.
		logger.Warn("audio unavailable", zap.Error(err))
	}
	g.audio.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	g.audio.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	g.audio.SetMuted(cfg.Audio.Muted)

	g.world = physics.NewWorld()
	g.world.Gravity = gmath.Vec3{Y: -9.81}
	g.graph = scene.NewGraph()
	g.cameras = &render.Cameras{}

	g.buildChamber()

	g.player = player.Spawn(g.world, g.graph, g.cameras, cfg.Player, gmath.Vec3{Y: 1.2})
	g.player.Camera.Projection.SetAspect(float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height))
	g.graph.Propagate()

	g.portals = portal.NewEngine(cfg.Portal, g.world, g.graph, g.cameras, g.player, g.audio)
	for _, id := range g.props {
		g.portals.AddTeleportable(id)
	}

	for i := range g.portalFBs {
		g.portalFBs[i], err = framebuffer.New(int32(cfg.Portal.RenderTargetWidth), int32(cfg.Portal.RenderTargetHeight))
		if err != nil {
			g.Close()
			return nil, errors.Wrapf(err, "portal render target %d", i)
		}
	}
	g.portals.SetRenderTargets(g.portalFBs[0], g.portalFBs[1])

	if err := g.initRenderResources(); err != nil {
		g.Close()
		return nil, err
	}

	logger.Info("game initialized")
	return g, nil
}

func (g *Game) initRenderResources() error {
	g.boxMesh = render.NewBoxMesh(0.5, 0.5, 0.5)
	g.propMesh = render.NewBoxMesh(0.3, 0.3, 0.3)
	g.portalMesh = render.NewPortalMesh(32)

	var err error
	if g.flat, err = render.NewFlatMaterial(); err != nil {
		return errors.Wrap(err, "flat material")
	}
	for i := range g.openMats {
		if g.openMats[i], err = render.NewOpenPortalMaterial(); err != nil {
			return errors.Wrap(err, "open portal material")
		}
		g.openMats[i].Texture = g.portalFBs[i].ColorTexture()
	}
	colors := [2]gmath.Vec3{
		{X: 1, Y: 0.7, Z: 0.2},
		{X: 0.2, Y: 0.78, Z: 1},
	}
	for i := range g.closedMats {
		if g.closedMats[i], err = render.NewClosedPortalMaterial(colors[i]); err != nil {
			return errors.Wrap(err, "closed portal material")
		}
	}
	return nil
}

// Run drives the main loop until quit.
func (g *Game) Run() error {
	g.running = true
	last := time.Now()

	logger.Info("starting game loop")
	for g.running {
		now := time.Now()
		dt := now.Sub(last)
		last = now

		if g.input.Update() {
			g.running = false
			break
		}
		frame := g.input.Frame()

		if w, h, ok := g.input.Resized(); ok && h > 0 {
			g.player.Camera.Projection.SetAspect(float32(w) / float32(h))
		}

		g.elapsed += float32(dt.Seconds())

		g.player.ProcessInput(frame, g.world, g.graph)
		g.world.Step(float32(dt.Seconds()))
		g.player.SyncFromBody(g.world, g.graph)
		g.graph.Propagate()

		g.portals.Tick(dt, frame)
		// The portal pipeline moves its camera nodes; propagate again
		// so rendering sees their fresh world transforms.
		g.graph.Propagate()

		g.renderFrame()
		g.window.SwapBuffers()
	}
	return nil
}

func (g *Game) renderFrame() {
	winW, winH := g.window.Size()

	for _, cam := range g.cameras.Ordered() {
		var vw, vh int32
		if cam.Target != nil {
			cam.Target.Bind()
			cam.Target.Clear(0.02, 0.02, 0.04, 1)
			vw, vh = cam.Target.Size()
		} else {
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			vw, vh = int32(winW), int32(winH)
			gl.Viewport(0, 0, vw, vh)
			gl.ClearColor(0.02, 0.02, 0.04, 1)
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		}

		viewProj := cam.ViewProjection(g.graph)
		g.drawScene(&viewProj, cam == g.cameras.Main(), vw, vh)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// drawScene renders the chamber and props. Portal surfaces are only
// visible to the main camera: the virtual cameras must see through the
// hole, not the hole's own texture.
func (g *Game) drawScene(viewProj *gmath.Mat4, withPortals bool, vw, vh int32) {
	for _, box := range g.level {
		g.flat.Bind(&box.model, viewProj, box.color)
		g.boxMesh.Draw()
	}

	for _, id := range g.props {
		body := g.world.Body(id)
		if body == nil {
			continue
		}
		model := body.Transform.Matrix()
		g.flat.Bind(&model, viewProj, gmath.Vec3{X: 0.8, Y: 0.3, Z: 0.3})
		g.propMesh.Draw()
	}

	if !withPortals {
		return
	}
	for _, slot := range []portal.Slot{portal.SlotA, portal.SlotB} {
		p := g.portals.Portal(slot)
		if p == nil {
			continue
		}
		surface := g.graph.World(p.Node)
		surface.Translation = surface.Translation.Add(surface.Back().Scale(g.cfg.Portal.MeshDepth))
		model := surface.Matrix()

		if g.portals.Open() {
			mat := g.openMats[slot]
			mat.Bind(&model, viewProj, vw, vh)
			g.portalMesh.Draw()
			mat.Unbind()
		} else {
			mat := g.closedMats[slot]
			mat.Bind(&model, viewProj, g.elapsed)
			g.portalMesh.Draw()
			mat.Unbind()
		}
	}
}

// Close releases everything in reverse creation order.
func (g *Game) Close() {
	logger.Info("closing game")

	for _, m := range []*render.Mesh{g.boxMesh, g.propMesh, g.portalMesh} {
		if m != nil {
			m.Destroy()
		}
	}
	if g.flat != nil {
		g.flat.Destroy()
	}
	for i := range g.openMats {
		if g.openMats[i] != nil {
			g.openMats[i].Destroy()
		}
		if g.closedMats[i] != nil {
			g.closedMats[i].Destroy()
		}
	}
	for _, fb := range g.portalFBs {
		if fb != nil {
			fb.Destroy()
		}
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
