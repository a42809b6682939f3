package render

import (
	"sort"

	"github.com/Faultbox/portalgame/internal/engine/framebuffer"
	"github.com/Faultbox/portalgame/internal/engine/scene"
	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// Camera renders the scene from a node's point of view into a target.
// A nil Target means the default framebuffer, i.e. the screen.
type Camera struct {
	Node       scene.NodeID
	Projection Projection
	Target     *framebuffer.Framebuffer

	// Priority orders rendering. Lower priorities render first, so
	// offscreen portal views use negative priorities and the player's
	// view, which samples their textures, renders last at 0.
	Priority int
}

// View returns the view matrix for the camera's current node transform.
func (c *Camera) View(g *scene.Graph) gmath.Mat4 {
	return g.World(c.Node).Matrix().Inverse()
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection(g *scene.Graph) gmath.Mat4 {
	proj := c.Projection.Matrix()
	view := c.View(g)
	return proj.Mul(view)
}

// Cameras is the set of active cameras, kept sorted by priority.
type Cameras struct {
	list []*Camera
}

// Add registers a camera.
func (cs *Cameras) Add(c *Camera) {
	cs.list = append(cs.list, c)
	sort.SliceStable(cs.list, func(i, j int) bool {
		return cs.list[i].Priority < cs.list[j].Priority
	})
}

// Remove unregisters a camera.
func (cs *Cameras) Remove(c *Camera) {
	for i, other := range cs.list {
		if other == c {
			cs.list = append(cs.list[:i], cs.list[i+1:]...)
			return
		}
	}
}

// Ordered returns the cameras in render order.
func (cs *Cameras) Ordered() []*Camera {
	return cs.list
}

// Main returns the highest-priority camera that renders to the screen,
// or nil if there is none.
func (cs *Cameras) Main() *Camera {
	for i := len(cs.list) - 1; i >= 0; i-- {
		if cs.list[i].Target == nil {
			return cs.list[i]
		}
	}
	return nil
}
