package akai

import (
	"github.com/cockroachdb/errors"
	as "github.com/vulkan-go/asche"
	vk "github.com/vulkan-go/vulkan"
)

// SwapchainSupport is what a surface reports for one GPU.
type SwapchainSupport struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

// SwapchainParams are the negotiated swapchain settings.
type SwapchainParams struct {
	Format         vk.SurfaceFormat
	PresentMode    vk.PresentMode
	ImageCount     uint32
	Extent         vk.Extent2D
	PreTransform   vk.SurfaceTransformFlagBits
	CompositeAlpha vk.CompositeAlphaFlagBits
}

// Dimensions reports the negotiated size and format.
func (p SwapchainParams) Dimensions() *as.SwapchainDimensions {
	return &as.SwapchainDimensions{
		Width:  p.Extent.Width,
		Height: p.Extent.Height,
		Format: p.Format.Format,
	}
}

// Choose negotiates the swapchain settings for a window of the given size.
func (ss SwapchainSupport) Choose(opts Options, window vk.Extent2D) (SwapchainParams, error) {
	format, err := ss.ChooseSurfaceFormat(opts.PreferredFormat)
	if err != nil {
		return SwapchainParams{}, err
	}
	return SwapchainParams{
		Format:         format,
		PresentMode:    ss.ChoosePresentMode(),
		ImageCount:     ss.ChooseImageCount(opts.ImageCount),
		Extent:         ss.ChooseExtent(window),
		PreTransform:   ss.ChoosePreTransform(),
		CompositeAlpha: ss.ChooseCompositeAlpha(),
	}, nil
}

// ChooseSurfaceFormat returns the preferred format when reported and the
// first reported format otherwise. A lone undefined format means the
// surface has no preference.
func (ss SwapchainSupport) ChooseSurfaceFormat(preferred vk.Format) (vk.SurfaceFormat, error) {
	if len(ss.Formats) == 0 {
		return vk.SurfaceFormat{}, errors.New("surface reports no pixel formats")
	}
	if len(ss.Formats) == 1 && ss.Formats[0].Format == vk.FormatUndefined {
		format := ss.Formats[0]
		format.Format = preferred
		return format, nil
	}
	for _, f := range ss.Formats {
		if f.Format == preferred {
			return f, nil
		}
	}
	return ss.Formats[0], nil
}

// ChoosePresentMode prefers mailbox and falls back to FIFO, which every
// driver supports.
func (ss SwapchainSupport) ChoosePresentMode() vk.PresentMode {
	for _, m := range ss.PresentModes {
		if m == vk.PresentModeMailbox {
			return m
		}
	}
	return vk.PresentModeFifo
}

// ChooseImageCount clamps the desired count into the surface bounds.
// A maximum of zero means there is no upper bound.
func (ss SwapchainSupport) ChooseImageCount(desired uint32) uint32 {
	caps := ss.Capabilities
	count := caps.MinImageCount + 1
	if desired > count {
		count = desired
	}
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

// ChooseExtent uses the surface's current extent unless the surface lets
// the swapchain decide, in which case the window size is clamped into the
// supported range.
func (ss SwapchainSupport) ChooseExtent(window vk.Extent2D) vk.Extent2D {
	caps := ss.Capabilities
	if caps.CurrentExtent.Width != vk.MaxUint32 {
		return caps.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clampUint32(window.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clampUint32(window.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

func (ss SwapchainSupport) ChoosePreTransform() vk.SurfaceTransformFlagBits {
	caps := ss.Capabilities
	identity := vk.SurfaceTransformIdentityBit
	if vk.SurfaceTransformFlagBits(caps.SupportedTransforms)&identity != 0 {
		return identity
	}
	return caps.CurrentTransform
}

var compositeAlphaOrder = []vk.CompositeAlphaFlagBits{
	vk.CompositeAlphaOpaqueBit,
	vk.CompositeAlphaPreMultipliedBit,
	vk.CompositeAlphaPostMultipliedBit,
	vk.CompositeAlphaInheritBit,
}

func (ss SwapchainSupport) ChooseCompositeAlpha() vk.CompositeAlphaFlagBits {
	for _, bit := range compositeAlphaOrder {
		if ss.Capabilities.SupportedCompositeAlpha&vk.CompositeAlphaFlags(bit) != 0 {
			return bit
		}
	}
	return vk.CompositeAlphaOpaqueBit
}

func clampUint32(v, lo, hi uint32) uint32 {
	if hi > 0 && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
