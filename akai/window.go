package akai

import vk "github.com/vulkan-go/vulkan"

// Window is the windowing layer the runtime draws into. It owns the
// native window; surfaces created from it are owned by the caller.
type Window interface {
	Title() string
	// Extent is the current framebuffer size in pixels.
	Extent() vk.Extent2D
	RequiredInstanceExtensions() []string
	CreateSurface(instance vk.Instance) (vk.Surface, error)
	ShouldClose() bool
	PollEvents()
	Destroy()
}
