// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/portalgame/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Window wraps the SDL2 window and its OpenGL context.
type Window struct {
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// New creates a window with an OpenGL 4.1 core context.
func New(title string, width, height int, fullscreen, vsync bool) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, errors.Wrap(err, "SDL_Init")
	}

	// Attributes must be set before the window exists. 4.1 core is the
	// highest profile available on macOS.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	w := &Window{}
	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(width),
		int32(height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "SDL_CreateWindow")
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, errors.Wrap(err, "SDL_GL_CreateContext")
	}

	if err := gl.Init(); err != nil {
		w.Close()
		return nil, errors.Wrap(err, "loading OpenGL functions")
	}

	if vsync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable vsync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	logger.Info("window created",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("fullscreen", fullscreen),
		zap.Bool("vsync", vsync),
	)
	return w, nil
}

// Close destroys the window and shuts down SDL2.
func (w *Window) Close() {
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the current window size.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}
