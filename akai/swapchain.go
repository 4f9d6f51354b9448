package akai

import (
	"log"

	vk "github.com/vulkan-go/vulkan"
)

// Swapchain is the set of presentable images negotiated for a surface.
type Swapchain struct {
	handle vk.Swapchain
	images []vk.Image
	ref    *shared

	Params SwapchainParams
}

func NewSwapchain(opts Options, device *Device, window Window, surface *Surface) (*Swapchain, error) {
	support, err := surface.Support(device.PhysicalDevice())
	if err != nil {
		return nil, err
	}
	params, err := support.Choose(opts, window.Extent())
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] swapchain: %d images (surface allows %d-%d), %dx%d, format %d, present mode %d",
		params.ImageCount, support.Capabilities.MinImageCount, support.Capabilities.MaxImageCount,
		params.Extent.Width, params.Extent.Height, params.Format.Format, params.PresentMode)

	createInfo := &vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface.Handle(),
		MinImageCount:    params.ImageCount,
		ImageFormat:      params.Format.Format,
		ImageColorSpace:  params.Format.ColorSpace,
		ImageExtent:      params.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     params.PreTransform,
		CompositeAlpha:   params.CompositeAlpha,
		PresentMode:      params.PresentMode,
		Clipped:          vk.True,
		OldSwapchain:     vk.NullSwapchain,
	}
	sc := &Swapchain{Params: params}
	dev := device.Handle()
	ret := vk.CreateSwapchain(dev, createInfo, nil, &sc.handle)
	if err := vkCheck(ret, "vkCreateSwapchainKHR"); err != nil {
		return nil, err
	}
	if sc.images, err = swapchainImages(dev, sc.handle); err != nil {
		vk.DestroySwapchain(dev, sc.handle, nil)
		return nil, err
	}
	sc.ref = newShared("swapchain", func() {
		vk.DestroySwapchain(dev, sc.handle, nil)
		sc.handle = vk.NullSwapchain
		sc.images = nil
	}, device.ref, surface.ref)
	return sc, nil
}

func swapchainImages(dev vk.Device, swapchain vk.Swapchain) ([]vk.Image, error) {
	var count uint32
	err := vkCheck(vk.GetSwapchainImages(dev, swapchain, &count, nil), "vkGetSwapchainImagesKHR")
	if err != nil {
		return nil, err
	}
	images := make([]vk.Image, count)
	err = vkCheck(vk.GetSwapchainImages(dev, swapchain, &count, images), "vkGetSwapchainImagesKHR")
	if err != nil {
		return nil, err
	}
	return images[:count], nil
}

func (sc *Swapchain) Handle() vk.Swapchain {
	return sc.handle
}

func (sc *Swapchain) Images() []vk.Image {
	return sc.images
}

func (sc *Swapchain) Destroy() {
	if sc == nil || sc.ref == nil {
		return
	}
	sc.ref.drop()
	sc.ref = nil
}
