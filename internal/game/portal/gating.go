package portal

import (
	"github.com/Faultbox/portalgame/internal/engine/physics"
)

// processContacts reacts to portal sensor overlaps. A body entering a
// portal volume has its collision filter relaxed so it can pass through
// the portal's surface; the filter is restored only once the body has
// left every portal volume. Each portal tracks its own contact set, so
// standing in both portals at once cannot restore the filter early.
func (e *Engine) processContacts() {
	events := e.world.DrainContacts()
	if !e.Open() {
		return
	}

	for _, ev := range events {
		slot, ok := e.slotForSensor(ev.Sensor)
		if !ok || !e.teleportable(ev.Other) {
			continue
		}
		switch ev.Kind {
		case physics.ContactStarted:
			e.contacts[slot][ev.Other] = struct{}{}
			if body := e.world.Body(ev.Other); body != nil {
				body.Groups.Filter = e.portals[slot].FilterCollisions()
			}
		case physics.ContactStopped:
			if _, held := e.contacts[slot][ev.Other]; !held {
				// Stale event from a despawned portal whose body slot
				// was recycled.
				continue
			}
			delete(e.contacts[slot], ev.Other)
			e.restoreFilter(slot, ev.Other)
		}
	}
}

// restoreFilter resets a body's collision filter after it left the
// given portal's volume. If the other portal still holds the body, its
// filter applies instead of the full restore.
func (e *Engine) restoreFilter(slot Slot, id physics.BodyID) {
	body := e.world.Body(id)
	if body == nil {
		return
	}
	other := slot.Other()
	if _, held := e.contacts[other][id]; held && e.portals[other] != nil {
		body.Groups.Filter = e.portals[other].FilterCollisions()
		return
	}
	body.Groups.Filter = e.portals[slot].RestoreCollisions()
}

func (e *Engine) slotForSensor(id physics.BodyID) (Slot, bool) {
	for _, p := range e.portals {
		if p != nil && p.Sensor == id {
			return p.Slot, true
		}
	}
	return 0, false
}

func (e *Engine) teleportable(id physics.BodyID) bool {
	if id == e.player.Body {
		return true
	}
	_, ok := e.teleportables[id]
	return ok
}
