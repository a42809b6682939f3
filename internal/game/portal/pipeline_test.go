package portal

import (
	"testing"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/portalgame/internal/config"
	"github.com/Faultbox/portalgame/internal/engine/input"
	"github.com/Faultbox/portalgame/internal/engine/physics"
	"github.com/Faultbox/portalgame/internal/engine/scene"
	"github.com/Faultbox/portalgame/internal/game/player"
	"github.com/Faultbox/portalgame/internal/render"
	gmath "github.com/Faultbox/portalgame/pkg/math"
)

type rig struct {
	world   *physics.World
	graph   *scene.Graph
	cameras *render.Cameras
	player  *player.Controller
	engine  *Engine
}

// newRig builds a test chamber: floor, a wall in front of the player at
// z=-5 and a wall to the right at x=5. The player spawns at the origin
// aiming down -Z.
func newRig() *rig {
	world := physics.NewWorld()
	world.AddStatic(physics.NewAABB(gmath.Vec3{X: -20, Y: -1, Z: -20}, gmath.Vec3{X: 20, Y: 0, Z: 20}), physics.GroupGround)
	world.AddStatic(physics.NewAABB(gmath.Vec3{X: -20, Y: -1, Z: -6}, gmath.Vec3{X: 20, Y: 10, Z: -5}), physics.GroupWalls)
	world.AddStatic(physics.NewAABB(gmath.Vec3{X: 5, Y: -1, Z: -20}, gmath.Vec3{X: 6, Y: 10, Z: 20}), physics.GroupWalls)

	graph := scene.NewGraph()
	cameras := &render.Cameras{}
	plr := player.Spawn(world, graph, cameras, config.Default().Player, gmath.Vec3{Y: 1})
	graph.Propagate()

	engine := NewEngine(config.Default().Portal, world, graph, cameras, plr, nil)
	return &rig{world: world, graph: graph, cameras: cameras, player: plr, engine: engine}
}

// aimPitch points the player camera up or down and refreshes world
// transforms.
func (r *rig) aimPitch(pitch float32) {
	r.graph.Local(r.player.Anchor).Rotation = gmath.QuatFromAxisAngle(gmath.Vec3X, -pitch)
	r.graph.Propagate()
}

// openPair places portal A on the front wall and portal B on the floor.
func (r *rig) openPair(t *testing.T) {
	t.Helper()
	if err := r.engine.Fire(SlotA); err != nil {
		t.Fatalf("fire A: %v", err)
	}
	r.aimPitch(math32.Pi / 2)
	if err := r.engine.Fire(SlotB); err != nil {
		t.Fatalf("fire B: %v", err)
	}
	r.aimPitch(0)
	r.engine.Tick(16*time.Millisecond, input.Frame{})
}

func eyeHeight() float32 {
	cfg := config.Default().Player
	return 1 + cfg.EyeHeight - cfg.Height/2
}

func TestFirePlacesWallPortal(t *testing.T) {
	r := newRig()
	if err := r.engine.Fire(SlotA); err != nil {
		t.Fatalf("fire: %v", err)
	}

	p := r.engine.Portal(SlotA)
	if p == nil {
		t.Fatal("portal not placed")
	}
	if p.Orientation != OrientationOther {
		t.Error("wall portal should have orientation Other")
	}

	trf := *r.graph.Local(p.Node)
	depth := config.Default().Portal.MeshDepth
	want := gmath.Vec3{Y: eyeHeight(), Z: -5 + zFightingOffset - depth}
	if !trf.Translation.AbsDiffEq(want, 1e-3) {
		t.Errorf("portal origin: got %v, want %v", trf.Translation, want)
	}
	if !trf.Back().AbsDiffEq(gmath.Vec3Z, 1e-4) {
		t.Errorf("portal back: got %v, want +Z", trf.Back())
	}
	if trf.Scale != portalScale {
		t.Errorf("portal scale: got %v", trf.Scale)
	}

	sensor := r.world.Body(p.Sensor)
	if sensor == nil || !sensor.Sensor {
		t.Fatal("portal sensor body missing")
	}
	if sensor.Groups.Memberships != physics.GroupPortal {
		t.Errorf("sensor memberships: got %v", sensor.Groups.Memberships)
	}
}

func TestFireOnFloorIsHorizontal(t *testing.T) {
	r := newRig()
	r.aimPitch(math32.Pi / 2)
	if err := r.engine.Fire(SlotB); err != nil {
		t.Fatalf("fire: %v", err)
	}

	p := r.engine.Portal(SlotB)
	if p.Orientation != OrientationHorizontal {
		t.Error("floor portal should be horizontal")
	}
	trf := *r.graph.Local(p.Node)
	if !trf.Back().AbsDiffEq(gmath.Vec3Y, 1e-4) {
		t.Errorf("floor portal back: got %v, want +Y", trf.Back())
	}
}

func TestFireMissReturnsErrNoSurface(t *testing.T) {
	r := newRig()
	// Turn the player around: nothing behind them for 1000 units.
	body := r.world.Body(r.player.Body)
	body.Transform.Rotation = gmath.QuatRotationY(math32.Pi)
	r.player.SyncFromBody(r.world, r.graph)
	r.graph.Propagate()

	if err := r.engine.Fire(SlotA); err != ErrNoSurface {
		t.Fatalf("want ErrNoSurface, got %v", err)
	}
	if r.engine.Portal(SlotA) != nil {
		t.Error("missed shot placed a portal")
	}
}

func TestRefireReplacesPortal(t *testing.T) {
	r := newRig()
	r.engine.Tick(16*time.Millisecond, input.Frame{FirePortalA: true})
	if got := len(r.cameras.Ordered()); got != 2 {
		t.Fatalf("cameras after first shot: got %d, want 2", got)
	}
	first := r.engine.Portal(SlotA)
	firstSensor := first.Sensor

	r.aimPitch(math32.Pi / 2)
	r.engine.Tick(16*time.Millisecond, input.Frame{FirePortalA: true})

	second := r.engine.Portal(SlotA)
	if second.Orientation != OrientationHorizontal {
		t.Error("refire did not replace the portal")
	}
	if got := len(r.cameras.Ordered()); got != 2 {
		t.Errorf("cameras after refire: got %d, want 2 (no leak)", got)
	}
	// The old sensor is gone; the handle may have been recycled for the
	// new portal, in which case it must now be the new sensor.
	if body := r.world.Body(firstSensor); body != nil && firstSensor != second.Sensor {
		t.Error("old portal sensor still alive")
	}
}

func TestCameraSyncMirrorsMainCamera(t *testing.T) {
	r := newRig()
	r.openPair(t)

	a := r.engine.Portal(SlotA)
	b := r.engine.Portal(SlotB)
	if a.Camera == nil || b.Camera == nil {
		t.Fatal("portal cameras not created")
	}

	depth := config.Default().Portal.MeshDepth
	ta := r.graph.World(a.Node)
	tb := r.graph.World(b.Node)
	mainCam := r.graph.World(r.player.EyeNode())

	want := PortalToPortal(ta, tb, depth).Mul(mainCam)
	got := *r.graph.Local(a.Camera.Node)
	if !got.Translation.AbsDiffEq(want.Translation, 1e-4) {
		t.Errorf("camera translation: got %v, want %v", got.Translation, want.Translation)
	}
	if !got.Forward().AbsDiffEq(want.Forward(), 1e-4) {
		t.Errorf("camera forward: got %v, want %v", got.Forward(), want.Forward())
	}

	// The oblique clip plane is unit-length and holds the linked
	// portal's surface in camera space.
	proj, ok := a.Camera.Projection.(*render.ObliqueProjection)
	if !ok {
		t.Fatal("portal camera does not use an oblique projection")
	}
	if n := proj.ClipPlane.XYZ().Length(); math32.Abs(n-1) > 1e-4 {
		t.Errorf("clip plane normal length: got %v", n)
	}
	view := got.Matrix().Inverse()
	surface := tb.Translation.Add(tb.Back().Scale(depth)).Add(tb.Up().Scale(0.3))
	camSpace := view.TransformPoint(surface)
	if d := proj.ClipPlane.DistanceToPlane(camSpace); math32.Abs(d) > 1e-3 {
		t.Errorf("linked surface point off clip plane by %v", d)
	}
}

func TestPlayerTeleportCrossesOnce(t *testing.T) {
	r := newRig()
	r.openPair(t)
	cfg := config.Default().Portal

	body := r.world.Body(r.player.Body)
	// Just past the wall portal's clip plane, moving into it.
	body.Transform.Translation = gmath.Vec3{Y: eyeHeight(), Z: -5.2}
	body.Linvel = gmath.Vec3{Z: -2}
	r.player.SyncFromBody(r.world, r.graph)
	r.graph.Propagate()

	r.engine.Tick(16*time.Millisecond, input.Frame{})

	// The player came out of the floor portal.
	if body.Transform.Translation.Y < 0 || body.Transform.Translation.Z < -1 {
		t.Fatalf("player did not arrive at the floor portal: %v", body.Transform.Translation)
	}
	if !body.Transform.Up().AbsDiffEq(gmath.Vec3Y, 1e-3) {
		t.Errorf("player not upright after teleport: %v", body.Transform.Up())
	}
	if out := body.Linvel.Dot(gmath.Vec3Y); out < cfg.MinOutboundSpeed-1e-4 {
		t.Errorf("outbound speed %v below minimum %v", out, cfg.MinOutboundSpeed)
	}
	if !body.Kinematic {
		t.Error("player should be kinematic right after a teleport")
	}
	if !r.engine.Rolling() || !r.player.CameraLock {
		t.Error("roll animation with camera lock should be running")
	}

	// A second tick must not teleport again: the player is now on the
	// non-crossing side of the floor portal's plane.
	after := body.Transform.Translation
	r.engine.Tick(16*time.Millisecond, input.Frame{})
	if !body.Transform.Translation.AbsDiffEq(after, 1e-5) {
		t.Errorf("player teleported twice: %v -> %v", after, body.Transform.Translation)
	}

	// Roll animation and kinematic window both run out.
	r.engine.Tick(cfg.RollDuration+cfg.KinematicWindow, input.Frame{})
	if r.engine.Rolling() || r.player.CameraLock {
		t.Error("roll animation should be finished")
	}
	if body.Kinematic {
		t.Error("kinematic window should have expired")
	}
}

func TestPropTeleportRotatesVelocity(t *testing.T) {
	r := newRig()
	r.openPair(t)

	prop := r.world.AddBody(physics.Body{
		Transform:   gmath.TransformFromTranslation(gmath.Vec3{Y: eyeHeight(), Z: -5.3}),
		Linvel:      gmath.Vec3{Z: -4},
		Angvel:      gmath.Vec3{Z: 1},
		Groups:      physics.CollisionGroups{Memberships: physics.GroupProps, Filter: physics.GroupAll},
		HalfExtents: gmath.Vec3{X: 0.3, Y: 0.3, Z: 0.3},
	})
	r.engine.AddTeleportable(prop)

	r.engine.Tick(16*time.Millisecond, input.Frame{})

	body := r.world.Body(prop)
	// Wall portal faces -Z into the wall, floor portal's out axis is +Y:
	// the velocity flips through the half turn and exits upward.
	if !body.Linvel.AbsDiffEq(gmath.Vec3{Y: 4}, 1e-3) {
		t.Errorf("prop velocity: got %v, want (0, 4, 0)", body.Linvel)
	}
	if !body.Angvel.AbsDiffEq(gmath.Vec3{Y: -1}, 1e-3) {
		t.Errorf("prop angular velocity: got %v, want (0, -1, 0)", body.Angvel)
	}
	if body.Transform.Translation.Z < -1 {
		t.Errorf("prop did not move to the floor portal: %v", body.Transform.Translation)
	}
}

func TestGatingRelaxesAndRestoresFilters(t *testing.T) {
	r := newRig()
	r.openPair(t)

	// Inside the wall portal's sensor volume but on the outside of its
	// clip plane, so it gates without teleporting.
	prop := r.world.AddBody(physics.Body{
		Transform:   gmath.TransformFromTranslation(gmath.Vec3{Y: eyeHeight(), Z: -4.8}),
		Groups:      physics.CollisionGroups{Memberships: physics.GroupProps, Filter: physics.GroupAll},
		HalfExtents: gmath.Vec3{X: 0.3, Y: 0.3, Z: 0.3},
	})
	r.engine.AddTeleportable(prop)

	r.world.Step(0.01)
	r.engine.Tick(16*time.Millisecond, input.Frame{})

	body := r.world.Body(prop)
	want := r.engine.Portal(SlotA).FilterCollisions()
	if body.Groups.Filter != want {
		t.Errorf("filter in portal volume: got %v, want %v", body.Groups.Filter, want)
	}

	body.Transform.Translation = gmath.Vec3{Y: eyeHeight(), Z: -2}
	r.world.Step(0.01)
	r.engine.Tick(16*time.Millisecond, input.Frame{})

	if body.Groups.Filter != physics.GroupAll {
		t.Errorf("filter after leaving: got %v, want all", body.Groups.Filter)
	}
}

func TestPortalUpAxisVerticalBoundary(t *testing.T) {
	r := newRig()
	camTrf := r.graph.World(r.player.EyeNode())
	tol := config.Default().Portal.VerticalTolerance

	cases := []struct {
		name   string
		normal gmath.Vec3
		want   Orientation
	}{
		{"inside tolerance", gmath.Vec3{X: tol * 0.5, Y: 1}.Normalize(), OrientationHorizontal},
		{"outside tolerance", gmath.Vec3{X: tol * 3, Y: 1}.Normalize(), OrientationOther},
		{"45 degree slope", gmath.Vec3{Y: 1, Z: 1}.Normalize(), OrientationOther},
		{"ceiling", gmath.Vec3Y.Neg(), OrientationHorizontal},
	}
	for _, c := range cases {
		up, got := r.engine.portalUpAxis(c.normal, camTrf)
		if got != c.want {
			t.Errorf("%s: orientation got %v, want %v", c.name, got, c.want)
		}
		if d := math32.Abs(up.Length() - 1); d > 1e-4 {
			t.Errorf("%s: up axis not unit length: %v", c.name, up)
		}
		if d := math32.Abs(up.Dot(c.normal)); d > 1e-3 {
			t.Errorf("%s: up axis not on the surface: dot %v", c.name, d)
		}
	}
}

func TestGatingKeepsRemainingEntityRelaxed(t *testing.T) {
	r := newRig()
	r.openPair(t)

	// Two props share the wall portal's sensor volume. When one leaves,
	// only that one gets its filter back; restoring both would let the
	// remaining prop collide with the wall it is halfway through.
	spawn := func(z float32) physics.BodyID {
		id := r.world.AddBody(physics.Body{
			Transform:   gmath.TransformFromTranslation(gmath.Vec3{Y: eyeHeight(), Z: z}),
			Groups:      physics.CollisionGroups{Memberships: physics.GroupProps, Filter: physics.GroupAll},
			HalfExtents: gmath.Vec3{X: 0.3, Y: 0.3, Z: 0.3},
		})
		r.engine.AddTeleportable(id)
		return id
	}
	first := spawn(-4.8)
	second := spawn(-4.7)

	r.world.Step(0.01)
	r.engine.Tick(16*time.Millisecond, input.Frame{})

	relaxed := r.engine.Portal(SlotA).FilterCollisions()
	if r.world.Body(first).Groups.Filter != relaxed || r.world.Body(second).Groups.Filter != relaxed {
		t.Fatal("both props should be gated while inside the sensor")
	}

	r.world.Body(first).Transform.Translation = gmath.Vec3{Y: eyeHeight(), Z: -2}
	r.world.Step(0.01)
	r.engine.Tick(16*time.Millisecond, input.Frame{})

	if got := r.world.Body(first).Groups.Filter; got != physics.GroupAll {
		t.Errorf("departed prop filter: got %v, want all", got)
	}
	if got := r.world.Body(second).Groups.Filter; got != relaxed {
		t.Errorf("remaining prop filter: got %v, want %v", got, relaxed)
	}
}

func TestFilterCollisionsByOrientation(t *testing.T) {
	wall := &Portal{Orientation: OrientationOther}
	if got := wall.FilterCollisions(); got&physics.GroupWalls != 0 || got&physics.GroupGround == 0 {
		t.Errorf("wall portal filter: got %v, want walls off, ground on", got)
	}
	floor := &Portal{Orientation: OrientationHorizontal}
	if got := floor.FilterCollisions(); got&physics.GroupGround != 0 || got&physics.GroupWalls == 0 {
		t.Errorf("floor portal filter: got %v, want ground off, walls on", got)
	}
	if wall.RestoreCollisions() != physics.GroupAll {
		t.Error("restore filter should match everything")
	}
}

func TestRollAnimationEndsExactly(t *testing.T) {
	start := gmath.QuatFromAxisAngle(gmath.Vec3Z, 1.2)
	end := gmath.QuatIdentity()
	anim := NewRollAnimation(start, end, 300*time.Millisecond)

	rot, done := anim.Advance(100 * time.Millisecond)
	if done {
		t.Fatal("animation finished too early")
	}
	if rot == start || rot == end {
		t.Error("mid-animation rotation should be between endpoints")
	}

	rot, done = anim.Advance(500 * time.Millisecond)
	if !done {
		t.Fatal("animation should be done")
	}
	if rot != end {
		t.Errorf("final rotation: got %v, want exactly end", rot)
	}
}
