package akai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func testSupport() SwapchainSupport {
	return SwapchainSupport{
		Capabilities: vk.SurfaceCapabilities{
			MinImageCount:           2,
			MaxImageCount:           8,
			CurrentExtent:           vk.Extent2D{Width: 800, Height: 600},
			MinImageExtent:          vk.Extent2D{Width: 1, Height: 1},
			MaxImageExtent:          vk.Extent2D{Width: 4096, Height: 4096},
			SupportedTransforms:     vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit),
			CurrentTransform:        vk.SurfaceTransformIdentityBit,
			SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit),
		},
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox},
	}
}

func TestChooseSurfaceFormat(t *testing.T) {
	ss := testSupport()

	f, err := ss.ChooseSurfaceFormat(vk.FormatB8g8r8a8Unorm)
	require.NoError(t, err)
	assert.Equal(t, vk.FormatB8g8r8a8Unorm, f.Format)

	f, err = ss.ChooseSurfaceFormat(vk.FormatR16g16b16a16Sfloat)
	require.NoError(t, err)
	assert.Equal(t, vk.FormatR8g8b8a8Srgb, f.Format, "falls back to the first reported format")
}

func TestChooseSurfaceFormatUndefined(t *testing.T) {
	ss := SwapchainSupport{Formats: []vk.SurfaceFormat{
		{Format: vk.FormatUndefined, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}}
	f, err := ss.ChooseSurfaceFormat(vk.FormatB8g8r8a8Unorm)
	require.NoError(t, err)
	assert.Equal(t, vk.FormatB8g8r8a8Unorm, f.Format)
	assert.Equal(t, vk.ColorSpaceSrgbNonlinear, f.ColorSpace)
}

func TestChooseSurfaceFormatNone(t *testing.T) {
	_, err := SwapchainSupport{}.ChooseSurfaceFormat(vk.FormatB8g8r8a8Unorm)
	assert.Error(t, err)
}

func TestChoosePresentMode(t *testing.T) {
	ss := testSupport()
	assert.Equal(t, vk.PresentModeMailbox, ss.ChoosePresentMode())

	ss.PresentModes = []vk.PresentMode{vk.PresentModeImmediate, vk.PresentModeFifoRelaxed}
	assert.Equal(t, vk.PresentModeFifo, ss.ChoosePresentMode())

	ss.PresentModes = nil
	assert.Equal(t, vk.PresentModeFifo, ss.ChoosePresentMode())
}

func TestChooseImageCount(t *testing.T) {
	tests := []struct {
		name     string
		min, max uint32
		desired  uint32
		expected uint32
	}{
		{"one over minimum", 2, 8, 0, 3},
		{"clamped to maximum", 3, 3, 0, 3},
		{"unbounded maximum", 2, 0, 0, 3},
		{"desired above minimum", 2, 8, 5, 5},
		{"desired above maximum", 2, 4, 6, 4},
		{"desired unbounded", 1, 0, 16, 16},
		{"desired below minimum", 4, 8, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss := SwapchainSupport{Capabilities: vk.SurfaceCapabilities{
				MinImageCount: tt.min,
				MaxImageCount: tt.max,
			}}
			assert.Equal(t, tt.expected, ss.ChooseImageCount(tt.desired))
		})
	}
}

func TestChooseExtent(t *testing.T) {
	ss := testSupport()
	window := vk.Extent2D{Width: 1920, Height: 1080}
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, ss.ChooseExtent(window),
		"the surface's current extent wins")

	ss.Capabilities.CurrentExtent = vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32}
	assert.Equal(t, window, ss.ChooseExtent(window))

	ss.Capabilities.MaxImageExtent = vk.Extent2D{Width: 1280, Height: 720}
	assert.Equal(t, vk.Extent2D{Width: 1280, Height: 720}, ss.ChooseExtent(window))

	ss.Capabilities.MinImageExtent = vk.Extent2D{Width: 64, Height: 64}
	assert.Equal(t, vk.Extent2D{Width: 64, Height: 64}, ss.ChooseExtent(vk.Extent2D{}))
}

func TestChoosePreTransform(t *testing.T) {
	ss := testSupport()
	assert.Equal(t, vk.SurfaceTransformIdentityBit, ss.ChoosePreTransform())

	ss.Capabilities.SupportedTransforms = vk.SurfaceTransformFlags(vk.SurfaceTransformRotate90Bit)
	ss.Capabilities.CurrentTransform = vk.SurfaceTransformRotate90Bit
	assert.Equal(t, vk.SurfaceTransformRotate90Bit, ss.ChoosePreTransform())
}

func TestChooseCompositeAlpha(t *testing.T) {
	ss := testSupport()
	assert.Equal(t, vk.CompositeAlphaOpaqueBit, ss.ChooseCompositeAlpha())

	ss.Capabilities.SupportedCompositeAlpha = vk.CompositeAlphaFlags(
		vk.CompositeAlphaInheritBit | vk.CompositeAlphaPostMultipliedBit)
	assert.Equal(t, vk.CompositeAlphaPostMultipliedBit, ss.ChooseCompositeAlpha())

	ss.Capabilities.SupportedCompositeAlpha = 0
	assert.Equal(t, vk.CompositeAlphaOpaqueBit, ss.ChooseCompositeAlpha())
}

func TestChoose(t *testing.T) {
	opts := DefaultOptions()
	params, err := testSupport().Choose(opts, vk.Extent2D{Width: opts.Width, Height: opts.Height})
	require.NoError(t, err)

	assert.Equal(t, vk.FormatB8g8r8a8Unorm, params.Format.Format)
	assert.Equal(t, vk.PresentModeMailbox, params.PresentMode)
	assert.Equal(t, uint32(3), params.ImageCount)
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, params.Extent)
	assert.Equal(t, vk.SurfaceTransformIdentityBit, params.PreTransform)
	assert.Equal(t, vk.CompositeAlphaOpaqueBit, params.CompositeAlpha)

	dim := params.Dimensions()
	assert.Equal(t, uint32(800), dim.Width)
	assert.Equal(t, uint32(600), dim.Height)
	assert.Equal(t, vk.FormatB8g8r8a8Unorm, dim.Format)
}

func TestChooseWithoutFormats(t *testing.T) {
	ss := testSupport()
	ss.Formats = nil
	_, err := ss.Choose(DefaultOptions(), vk.Extent2D{Width: 800, Height: 600})
	assert.Error(t, err)
}
