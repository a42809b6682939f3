package player

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/portalgame/internal/config"
	"github.com/Faultbox/portalgame/internal/engine/input"
	"github.com/Faultbox/portalgame/internal/engine/physics"
	"github.com/Faultbox/portalgame/internal/engine/scene"
	"github.com/Faultbox/portalgame/internal/render"
	gmath "github.com/Faultbox/portalgame/pkg/math"
)

func spawnTestPlayer() (*Controller, *physics.World, *scene.Graph) {
	world := physics.NewWorld()
	graph := scene.NewGraph()
	cameras := &render.Cameras{}
	c := Spawn(world, graph, cameras, config.Default().Player, gmath.Vec3{Y: 1})
	return c, world, graph
}

func TestSpawnWiring(t *testing.T) {
	c, world, graph := spawnTestPlayer()

	body := world.Body(c.Body)
	if body == nil {
		t.Fatal("player body missing")
	}
	if body.Groups.Memberships != physics.GroupPlayer {
		t.Errorf("memberships: got %v, want player", body.Groups.Memberships)
	}
	if body.Groups.Filter != physics.GroupAll {
		t.Errorf("filter: got %v, want all", body.Groups.Filter)
	}

	graph.Propagate()
	cfg := config.Default().Player
	eye := graph.World(c.EyeNode()).Translation
	wantY := 1 + cfg.EyeHeight - cfg.Height/2
	if math32.Abs(eye.Y-wantY) > 1e-5 {
		t.Errorf("eye height: got %v, want %v", eye.Y, wantY)
	}
}

func TestForwardMovementPreservesVertical(t *testing.T) {
	c, world, graph := spawnTestPlayer()
	body := world.Body(c.Body)
	body.Linvel = gmath.Vec3{Y: -2}

	c.ProcessInput(input.Frame{Forward: true}, world, graph)

	cfg := config.Default().Player
	forward := body.Transform.Forward()
	if math32.Abs(body.Linvel.X-cfg.Speed*forward.X) > 1e-5 ||
		math32.Abs(body.Linvel.Z-cfg.Speed*forward.Z) > 1e-5 {
		t.Errorf("horizontal velocity: got %+v", body.Linvel)
	}
	if body.Linvel.Y != -2 {
		t.Errorf("vertical velocity not preserved: got %v", body.Linvel.Y)
	}
}

func TestSprintMultiplier(t *testing.T) {
	c, world, graph := spawnTestPlayer()
	body := world.Body(c.Body)

	c.ProcessInput(input.Frame{Forward: true, Sprint: true}, world, graph)

	cfg := config.Default().Player
	want := cfg.Speed * cfg.SprintMultiplier
	if got := body.Linvel.XZ().Length(); math32.Abs(got-want) > 1e-4 {
		t.Errorf("sprint speed: got %v, want %v", got, want)
	}
}

func TestOpposedKeysCancel(t *testing.T) {
	c, world, graph := spawnTestPlayer()
	body := world.Body(c.Body)

	c.ProcessInput(input.Frame{Forward: true, Backward: true}, world, graph)
	if got := body.Linvel.XZ().Length(); got != 0 {
		t.Errorf("opposed keys moved the player: %v", got)
	}
}

func TestJumpSetsVerticalVelocity(t *testing.T) {
	c, world, graph := spawnTestPlayer()
	body := world.Body(c.Body)

	c.ProcessInput(input.Frame{JumpPressed: true}, world, graph)
	if body.Linvel.Y != config.Default().Player.JumpSpeed {
		t.Errorf("jump velocity: got %v", body.Linvel.Y)
	}
}

func TestPitchClamped(t *testing.T) {
	c, world, graph := spawnTestPlayer()

	c.ProcessInput(input.Frame{MouseDY: 1e6}, world, graph)
	if c.Pitch != math32.Pi/2 {
		t.Errorf("pitch not clamped: got %v", c.Pitch)
	}
	c.ProcessInput(input.Frame{MouseDY: -1e7}, world, graph)
	if c.Pitch != -math32.Pi/2 {
		t.Errorf("pitch not clamped low: got %v", c.Pitch)
	}
}

func TestCameraLockFreezesAim(t *testing.T) {
	c, world, graph := spawnTestPlayer()
	body := world.Body(c.Body)
	c.CameraLock = true

	before := *graph.Local(c.Anchor)
	c.ProcessInput(input.Frame{MouseDX: 100, MouseDY: 100}, world, graph)

	if body.Angvel.Y != 0 {
		t.Errorf("locked camera still yaws: %v", body.Angvel.Y)
	}
	after := *graph.Local(c.Anchor)
	if before.Rotation != after.Rotation {
		t.Error("locked camera anchor rotated")
	}
}

func TestSyncFromBody(t *testing.T) {
	c, world, graph := spawnTestPlayer()
	body := world.Body(c.Body)
	body.Transform.Translation = gmath.Vec3{X: 3, Y: 2, Z: -1}

	c.SyncFromBody(world, graph)
	graph.Propagate()

	if got := graph.World(c.Root).Translation; !got.AbsDiffEq(body.Transform.Translation, 1e-6) {
		t.Errorf("root not synced: got %+v", got)
	}
}
