package akai

import (
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Options configures the runtime window and the Vulkan objects behind it.
type Options struct {
	// Title of the window, also used as the Vulkan application name.
	Title string
	// Width and Height of the window in pixels.
	Width  uint32
	Height uint32

	// PreferredFormat is used when the surface reports it, or reports no
	// preference at all.
	PreferredFormat vk.Format
	// ImageCount is the desired number of swapchain images. Zero means
	// one more than the surface minimum.
	ImageCount uint32

	// Validation enables the debug report extension and Layers.
	Validation bool
	Layers     []string

	// FrameRate is the number of event pump ticks per second.
	FrameRate int
}

func DefaultOptions() Options {
	return Options{
		Title:           "Akai engine",
		Width:           800,
		Height:          600,
		PreferredFormat: vk.FormatB8g8r8a8Unorm,
		Layers:          []string{"VK_LAYER_KHRONOS_validation"},
		FrameRate:       60,
	}
}

func (o Options) Validate() error {
	if len(o.Title) == 0 {
		return errors.New("options: empty window title")
	}
	if o.Width == 0 || o.Height == 0 {
		return errors.Newf("options: invalid window size %dx%d", o.Width, o.Height)
	}
	if o.FrameRate <= 0 {
		return errors.Newf("options: invalid frame rate %d", o.FrameRate)
	}
	return nil
}

func (o Options) layers() []string {
	if !o.Validation {
		return nil
	}
	return o.Layers
}
