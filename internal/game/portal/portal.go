package portal

import (
	"github.com/Faultbox/portalgame/internal/engine/framebuffer"
	"github.com/Faultbox/portalgame/internal/engine/physics"
	"github.com/Faultbox/portalgame/internal/engine/scene"
	"github.com/Faultbox/portalgame/internal/render"
)

// Slot identifies one of the two portals.
type Slot int

// The two portal slots, fired with the left and right mouse button.
const (
	SlotA Slot = iota
	SlotB
)

// Other returns the paired slot.
func (s Slot) Other() Slot {
	return 1 - s
}

func (s Slot) String() string {
	if s == SlotA {
		return "A"
	}
	return "B"
}

// Orientation enumerates the surface cases that are handled differently.
type Orientation int

const (
	// OrientationOther is a portal on a wall or any non-vertical-normal
	// surface.
	OrientationOther Orientation = iota
	// OrientationHorizontal is a portal on the ground or a ceiling.
	OrientationHorizontal
)

// Portal is one placed portal: a scene node carrying the surface
// transform, a sensor volume detecting teleport candidates, and a
// virtual camera rendering the view through the linked portal.
type Portal struct {
	Slot        Slot
	Orientation Orientation

	Node   scene.NodeID
	Sensor physics.BodyID

	// Camera renders the linked portal's viewpoint into Target. Created
	// lazily once a render target exists; nil until then.
	Camera *render.Camera
	Target *framebuffer.Framebuffer
}

// FilterCollisions returns the collision filter applied to a body while
// it stands inside this portal's volume. The surface the portal sits on
// is dropped so the body can pass through it: ground for a horizontal
// portal, walls otherwise. Dropping both would let the player fall
// through the floor while standing in a wall portal.
func (p *Portal) FilterCollisions() physics.Group {
	switch p.Orientation {
	case OrientationHorizontal:
		return physics.GroupPlayer | physics.GroupProps | physics.GroupPortal | physics.GroupWalls
	default:
		return physics.GroupPlayer | physics.GroupProps | physics.GroupPortal | physics.GroupGround
	}
}

// RestoreCollisions returns the filter a body gets back once it leaves
// every portal volume.
func (p *Portal) RestoreCollisions() physics.Group {
	return physics.GroupAll
}
