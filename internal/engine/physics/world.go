package physics

import (
	"github.com/Faultbox/portalgame/pkg/math"
)

// ContactKind distinguishes overlap start from overlap end.
type ContactKind uint8

// Contact event kinds.
const (
	ContactStarted ContactKind = iota
	ContactStopped
)

// ContactEvent reports a sensor overlap transition. Sensor is always the
// sensor volume, Other the overlapping body.
type ContactEvent struct {
	Kind   ContactKind
	Sensor BodyID
	Other  BodyID
}

type overlapKey struct {
	sensor BodyID
	other  BodyID
}

// StaticCollider is an immovable level-geometry box.
type StaticCollider struct {
	Box         AABB
	Memberships Group
}

// World owns all simulated bodies and static level geometry.
//
// The timestep is capped at MaxDt and split into Substeps integration
// sub-steps, so fast-moving bodies cannot skip across a portal volume in
// a single long frame.
type World struct {
	MaxDt    float32
	Substeps int
	Gravity  math.Vec3

	bodies   []Body
	statics  []StaticCollider
	overlaps map[overlapKey]struct{}
	events   []ContactEvent
}

// NewWorld creates a world with the prototype's default timestep: dt
// capped at 1/20s, four sub-steps per step.
func NewWorld() *World {
	return &World{
		MaxDt:    1.0 / 20.0,
		Substeps: 4,
		overlaps: make(map[overlapKey]struct{}),
	}
}

// AddStatic registers an immovable collider box.
func (w *World) AddStatic(box AABB, memberships Group) {
	w.statics = append(w.statics, StaticCollider{Box: box, Memberships: memberships})
}

// AddBody adds a body and returns its handle.
func (w *World) AddBody(b Body) BodyID {
	b.alive = true
	if b.Transform.Scale == 0 {
		b.Transform.Scale = 1
	}
	for i := range w.bodies {
		if !w.bodies[i].alive {
			w.bodies[i] = b
			return BodyID(i)
		}
	}
	w.bodies = append(w.bodies, b)
	return BodyID(len(w.bodies) - 1)
}

// Body returns the body for a handle, or nil if it has been removed.
func (w *World) Body(id BodyID) *Body {
	if id < 0 || int(id) >= len(w.bodies) || !w.bodies[id].alive {
		return nil
	}
	return &w.bodies[id]
}

// RemoveBody destroys a body. Any overlaps it participated in emit stop
// events so filter state can be restored by the listeners.
func (w *World) RemoveBody(id BodyID) {
	b := w.Body(id)
	if b == nil {
		return
	}
	for key := range w.overlaps {
		if key.sensor == id || key.other == id {
			delete(w.overlaps, key)
			w.events = append(w.events, ContactEvent{
				Kind:   ContactStopped,
				Sensor: key.sensor,
				Other:  key.other,
			})
		}
	}
	b.alive = false
}

// CastRay casts against static geometry whose memberships intersect
// filter and returns the nearest hit within maxDist. With solid set, a
// ray starting inside a collider hits immediately at distance zero;
// otherwise it hits the collider's boundary from within.
func (w *World) CastRay(origin, dir math.Vec3, maxDist float32, solid bool, filter Group) (Hit, bool) {
	ray := Ray{Origin: origin, Direction: dir.Normalize()}

	best := Hit{Distance: maxDist}
	found := false
	for _, s := range w.statics {
		if s.Memberships&filter == 0 {
			continue
		}
		t, axis, inside, ok := ray.intersectAABB(s.Box)
		if !ok {
			continue
		}
		if inside && solid {
			return Hit{
				Point:    origin,
				Normal:   ray.Direction.Neg(),
				Distance: 0,
			}, true
		}
		if t > best.Distance || (found && t == best.Distance) {
			continue
		}
		best = Hit{
			Point:    origin.Add(ray.Direction.Scale(t)),
			Normal:   slabNormal(ray.Direction, axis, inside),
			Distance: t,
		}
		found = true
	}
	return best, found
}

// slabNormal derives the outward surface normal for a slab-test hit.
func slabNormal(dir math.Vec3, axis int, inside bool) math.Vec3 {
	var n math.Vec3
	var d float32
	switch axis {
	case 0:
		d = dir.X
		n = math.Vec3X
	case 1:
		d = dir.Y
		n = math.Vec3Y
	default:
		d = dir.Z
		n = math.Vec3Z
	}
	// Entry faces oppose the ray; exit faces (inside hits) align with it.
	if (d > 0) != inside {
		return n.Neg()
	}
	return n
}

// Step advances the simulation. dt above MaxDt is clamped, then split
// into Substeps integration sub-steps. Overlap transitions detected
// after integration are queued as contact events.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	if dt > w.MaxDt {
		dt = w.MaxDt
	}
	substeps := w.Substeps
	if substeps < 1 {
		substeps = 1
	}
	h := dt / float32(substeps)

	for s := 0; s < substeps; s++ {
		for i := range w.bodies {
			b := &w.bodies[i]
			if !b.alive || b.Sensor {
				continue
			}
			if !b.Kinematic {
				b.Linvel = b.Linvel.Add(w.Gravity.Scale(h))
			}
			b.Transform.Translation = b.Transform.Translation.Add(b.Linvel.Scale(h))
			if speed := b.Angvel.Length(); speed > 1e-6 {
				spin := math.QuatFromAxisAngle(b.Angvel.Normalize(), speed*h)
				b.Transform.Rotation = spin.Mul(b.Transform.Rotation).Normalize()
			}
		}
	}

	w.updateOverlaps()
}

// DrainContacts returns the contact events queued since the last drain.
func (w *World) DrainContacts() []ContactEvent {
	events := w.events
	w.events = nil
	return events
}

// updateOverlaps recomputes sensor/body overlap pairs and emits start and
// stop events for the transitions.
func (w *World) updateOverlaps() {
	current := make(map[overlapKey]struct{})
	for si := range w.bodies {
		sensor := &w.bodies[si]
		if !sensor.alive || !sensor.Sensor {
			continue
		}
		for bi := range w.bodies {
			b := &w.bodies[bi]
			if bi == si || !b.alive || b.Sensor {
				continue
			}
			if sensor.Groups.Filter&b.Groups.Memberships == 0 ||
				b.Groups.Filter&sensor.Groups.Memberships == 0 {
				continue
			}
			if sensorOverlaps(sensor, b) {
				current[overlapKey{sensor: BodyID(si), other: BodyID(bi)}] = struct{}{}
			}
		}
	}

	for key := range current {
		if _, had := w.overlaps[key]; !had {
			w.events = append(w.events, ContactEvent{Kind: ContactStarted, Sensor: key.sensor, Other: key.other})
		}
	}
	for key := range w.overlaps {
		if _, has := current[key]; !has {
			w.events = append(w.events, ContactEvent{Kind: ContactStopped, Sensor: key.sensor, Other: key.other})
		}
	}
	w.overlaps = current
}

// sensorOverlaps tests the body's bounding sphere against the sensor's
// oriented box.
func sensorOverlaps(sensor, b *Body) bool {
	rel := b.Transform.Translation.Sub(sensor.Transform.Translation)
	local := math.Vec3{
		X: rel.Dot(sensor.Transform.Right()),
		Y: rel.Dot(sensor.Transform.Up()),
		Z: rel.Dot(sensor.Transform.Back()),
	}
	half := sensor.HalfExtents.Scale(sensor.Transform.Scale)
	r := b.Radius()
	return abs32(local.X) <= half.X+r &&
		abs32(local.Y) <= half.Y+r &&
		abs32(local.Z) <= half.Z+r
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
