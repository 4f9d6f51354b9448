// Package sdlwindow opens runtime windows with SDL2.
package sdlwindow

import (
	"github.com/akai-engine/akai/akai"
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	vk "github.com/vulkan-go/vulkan"
)

// Window is an SDL2 window created with Vulkan support. Escape or a quit
// event marks it for closing.
type Window struct {
	handle *sdl.Window
	title  string
	closed bool
}

var _ akai.Window = (*Window)(nil)

// New initializes SDL video, loads the Vulkan library through SDL and
// opens a window. Call from the main thread.
func New(title string, width, height uint32) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, errors.Wrap(err, "sdl.Init failed")
	}
	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "sdl.VulkanLoadLibrary failed")
	}
	vk.SetGetInstanceProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err := vk.Init(); err != nil {
		sdl.VulkanUnloadLibrary()
		sdl.Quit()
		return nil, errors.Wrap(err, "vk.Init failed")
	}

	handle, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height),
		sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.VulkanUnloadLibrary()
		sdl.Quit()
		return nil, errors.Wrap(err, "sdl.CreateWindow failed")
	}
	return &Window{
		handle: handle,
		title:  title,
	}, nil
}

func (w *Window) Title() string {
	return w.title
}

func (w *Window) Extent() vk.Extent2D {
	width, height := w.handle.VulkanGetDrawableSize()
	return vk.Extent2D{
		Width:  uint32(width),
		Height: uint32(height),
	}
}

func (w *Window) RequiredInstanceExtensions() []string {
	return w.handle.VulkanGetInstanceExtensions()
}

func (w *Window) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	surfPtr, err := w.handle.VulkanCreateSurface(instance)
	if err != nil {
		return vk.NullSurface, err
	}
	return vk.SurfaceFromPointer(uintptr(surfPtr)), nil
}

func (w *Window) ShouldClose() bool {
	return w.closed
}

func (w *Window) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			if t.Keysym.Sym == sdl.K_ESCAPE {
				w.closed = true
			}
		case *sdl.QuitEvent:
			w.closed = true
		}
	}
}

// Destroy closes the window and shuts SDL down.
func (w *Window) Destroy() {
	if w.handle == nil {
		return
	}
	w.handle.Destroy()
	w.handle = nil
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
}
