package portal

import (
	"github.com/Faultbox/portalgame/internal/render"
	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// syncCameras repositions both virtual cameras every frame. Each
// portal's camera mirrors the player camera through the portal pair and
// clips against the destination portal's surface plane.
func (e *Engine) syncCameras() {
	a, b := e.portals[SlotA], e.portals[SlotB]
	if a == nil || b == nil || a.Camera == nil || b.Camera == nil {
		return
	}

	mainCam := e.graph.World(e.player.EyeNode())
	ta := e.graph.World(a.Node)
	tb := e.graph.World(b.Node)

	e.syncCamera(a, ta, tb, mainCam)
	e.syncCamera(b, tb, ta, mainCam)
}

func (e *Engine) syncCamera(p *Portal, self, linked, mainCam gmath.Transform) {
	camTrf := PortalToPortal(self, linked, e.cfg.MeshDepth).Mul(mainCam)
	e.graph.SetLocal(p.Camera.Node, camTrf)

	// The clip plane lives on the linked portal's surface. Transforming
	// a plane into camera space takes the inverse transpose of the view
	// matrix, which is the transpose of the camera matrix.
	plane := PortalPlane(linked, e.cfg.MeshDepth)
	camSpace := camTrf.Matrix().Transpose().MulVec4(plane)
	if n := camSpace.XYZ().Length(); n > 0 {
		camSpace = camSpace.Scale(1 / n)
	}

	if proj, ok := p.Camera.Projection.(*render.ObliqueProjection); ok {
		proj.ClipPlane = camSpace
	}
}
