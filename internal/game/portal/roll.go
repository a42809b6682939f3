package portal

import (
	"time"

	gmath "github.com/Faultbox/portalgame/pkg/math"
)

// RollAnimation slerps the camera anchor from the rolled orientation a
// teleport left it in back to the corrected upright orientation. While
// one is running the controller's camera is locked.
type RollAnimation struct {
	start     gmath.Quat
	end       gmath.Quat
	duration  time.Duration
	remaining time.Duration
}

// NewRollAnimation creates an animation from start to end over duration.
func NewRollAnimation(start, end gmath.Quat, duration time.Duration) *RollAnimation {
	return &RollAnimation{
		start:     start,
		end:       end,
		duration:  duration,
		remaining: duration,
	}
}

// Advance steps the animation by dt and returns the rotation to apply.
// done reports completion; the final rotation is exactly end.
func (a *RollAnimation) Advance(dt time.Duration) (rotation gmath.Quat, done bool) {
	if dt > a.remaining {
		return a.end, true
	}
	elapsed := a.duration - a.remaining + dt
	s := float32(elapsed.Seconds() / a.duration.Seconds())
	a.remaining -= dt
	return a.start.Slerp(a.end, s), false
}
