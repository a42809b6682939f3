// Package input handles SDL2 input events and maps them to game actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a game-level input action.
type Action int

// Game actions.
const (
	ActionForward Action = iota
	ActionBackward
	ActionStrafeLeft
	ActionStrafeRight
	ActionJump
	ActionSprint
	ActionFirePortalA
	ActionFirePortalB
	actionCount
)

// Input polls SDL events into per-frame action state. Fire actions are
// edge-triggered: JustPressed reports them for the frame of the key-down
// only, so holding a mouse button fires a single portal.
type Input struct {
	held        [actionCount]bool
	justPressed [actionCount]bool

	mouseDX, mouseDY float32
	quit             bool
	resized          bool
	width, height    int
}

// New creates a new input handler and enables relative mouse mode for
// first-person aiming.
func New() *Input {
	_ = sdl.SetRelativeMouseMode(true)
	return &Input{}
}

// Update polls SDL events. Returns true if the game should quit.
func (i *Input) Update() bool {
	for a := range i.justPressed {
		i.justPressed[a] = false
	}
	i.mouseDX, i.mouseDY = 0, 0
	i.resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.resized = true
				i.width = int(e.Data1)
				i.height = int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if action, ok := keyAction(e.Keysym.Scancode); ok {
				if e.Type == sdl.KEYDOWN {
					i.press(action)
				} else if e.Type == sdl.KEYUP {
					i.held[action] = false
				}
			}
			if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				i.quit = true
			}

		case *sdl.MouseMotionEvent:
			i.mouseDX += float32(e.XRel)
			i.mouseDY += float32(e.YRel)

		case *sdl.MouseButtonEvent:
			if action, ok := buttonAction(e.Button); ok {
				if e.Type == sdl.MOUSEBUTTONDOWN {
					i.press(action)
				} else if e.Type == sdl.MOUSEBUTTONUP {
					i.held[action] = false
				}
			}
		}
	}

	return i.quit
}

func (i *Input) press(a Action) {
	if !i.held[a] {
		i.justPressed[a] = true
	}
	i.held[a] = true
}

// Pressed reports whether the action is currently held.
func (i *Input) Pressed(a Action) bool {
	return i.held[a]
}

// JustPressed reports whether the action transitioned to pressed this
// frame. It is consumed implicitly: the next Update clears it.
func (i *Input) JustPressed(a Action) bool {
	return i.justPressed[a]
}

// MouseDelta returns the relative mouse motion accumulated this frame.
func (i *Input) MouseDelta() (dx, dy float32) {
	return i.mouseDX, i.mouseDY
}

// Resized reports a window resize this frame along with the new size.
func (i *Input) Resized() (w, h int, ok bool) {
	return i.width, i.height, i.resized
}

// Frame is a plain snapshot of one frame of input, decoupled from SDL so
// consumers can be driven directly in tests.
type Frame struct {
	Forward, Backward        bool
	StrafeLeft, StrafeRight  bool
	Sprint                   bool
	JumpPressed              bool
	FirePortalA, FirePortalB bool
	MouseDX, MouseDY         float32
}

// Frame snapshots the current action state.
func (i *Input) Frame() Frame {
	return Frame{
		Forward:     i.held[ActionForward],
		Backward:    i.held[ActionBackward],
		StrafeLeft:  i.held[ActionStrafeLeft],
		StrafeRight: i.held[ActionStrafeRight],
		Sprint:      i.held[ActionSprint],
		JumpPressed: i.justPressed[ActionJump],
		FirePortalA: i.justPressed[ActionFirePortalA],
		FirePortalB: i.justPressed[ActionFirePortalB],
		MouseDX:     i.mouseDX,
		MouseDY:     i.mouseDY,
	}
}

func keyAction(code sdl.Scancode) (Action, bool) {
	switch code {
	case sdl.SCANCODE_W:
		return ActionForward, true
	case sdl.SCANCODE_S:
		return ActionBackward, true
	case sdl.SCANCODE_A:
		return ActionStrafeLeft, true
	case sdl.SCANCODE_D:
		return ActionStrafeRight, true
	case sdl.SCANCODE_SPACE:
		return ActionJump, true
	case sdl.SCANCODE_LSHIFT:
		return ActionSprint, true
	default:
		return 0, false
	}
}

func buttonAction(button uint8) (Action, bool) {
	switch button {
	case sdl.BUTTON_LEFT:
		return ActionFirePortalA, true
	case sdl.BUTTON_RIGHT:
		return ActionFirePortalB, true
	default:
		return 0, false
	}
}
