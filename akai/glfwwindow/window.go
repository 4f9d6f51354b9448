// Package glfwwindow opens runtime windows with GLFW.
package glfwwindow

import (
	"github.com/akai-engine/akai/akai"
	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// Window is a non-resizable GLFW window without a client API.
type Window struct {
	handle *glfw.Window
	title  string
}

var _ akai.Window = (*Window)(nil)

// New initializes GLFW and the Vulkan loader it provides, then opens
// a window. Call from the main thread.
func New(title string, width, height uint32) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw.Init failed")
	}
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		glfw.Terminate()
		return nil, errors.New("GetInstanceProcAddress is nil")
	}
	vk.SetGetInstanceProcAddr(procAddr)
	if err := vk.Init(); err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "vk.Init failed")
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	handle, err := glfw.CreateWindow(int(width), int(height), title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "glfw.CreateWindow failed")
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
	width, height := w.handle.GetFramebufferSize()
	return vk.Extent2D{
		Width:  uint32(width),
		Height: uint32(height),
	}
}

func (w *Window) RequiredInstanceExtensions() []string {
	return w.handle.GetRequiredInstanceExtensions()
}

func (w *Window) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	surfPtr, err := w.handle.CreateWindowSurface(instance, nil)
	if err != nil {
		return vk.NullSurface, err
	}
	return vk.SurfaceFromPointer(surfPtr), nil
}

func (w *Window) ShouldClose() bool {
	return w.handle.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	if w.handle == nil {
		return
	}
	w.handle.Destroy()
	w.handle = nil
	glfw.Terminate()
}
