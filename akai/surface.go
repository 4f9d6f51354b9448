package akai

import (
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Surface binds a window to the driver's presentation support.
type Surface struct {
	handle vk.Surface
	ref    *shared
}

func NewSurface(instance *Instance, window Window) (*Surface, error) {
	handle, err := window.CreateSurface(instance.Handle())
	if err != nil {
		return nil, errors.Wrap(err, "vkCreateWindowSurface failed")
	}
	if handle == vk.NullSurface {
		return nil, errors.New("vkCreateWindowSurface returned a null surface")
	}
	s := &Surface{handle: handle}
	vkInstance := instance.Handle()
	s.ref = newShared("surface", func() {
		vk.DestroySurface(vkInstance, s.handle, nil)
		s.handle = vk.NullSurface
	}, instance.ref)
	return s, nil
}

func (s *Surface) Handle() vk.Surface {
	return s.handle
}

func (s *Surface) Destroy() {
	if s == nil || s.ref == nil {
		return
	}
	s.ref.drop()
	s.ref = nil
}

func (s *Surface) SupportsPresent(gpu vk.PhysicalDevice, queueFamily uint32) bool {
	var supported vk.Bool32
	ret := vk.GetPhysicalDeviceSurfaceSupport(gpu, queueFamily, s.handle, &supported)
	return !isError(ret) && supported == vk.Bool32(vk.True)
}

func (s *Surface) Capabilities(gpu vk.PhysicalDevice) (vk.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	ret := vk.GetPhysicalDeviceSurfaceCapabilities(gpu, s.handle, &caps)
	if err := vkCheck(ret, "vkGetPhysicalDeviceSurfaceCapabilitiesKHR"); err != nil {
		return caps, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	return caps, nil
}

func (s *Surface) Formats(gpu vk.PhysicalDevice) ([]vk.SurfaceFormat, error) {
	var count uint32
	ret := vk.GetPhysicalDeviceSurfaceFormats(gpu, s.handle, &count, nil)
	if err := vkCheck(ret, "vkGetPhysicalDeviceSurfaceFormatsKHR"); err != nil {
		return nil, err
	}
	formats := make([]vk.SurfaceFormat, count)
	ret = vk.GetPhysicalDeviceSurfaceFormats(gpu, s.handle, &count, formats)
	if err := vkCheck(ret, "vkGetPhysicalDeviceSurfaceFormatsKHR"); err != nil {
		return nil, err
	}
	formats = formats[:count]
	for i := range formats {
		formats[i].Deref()
	}
	return formats, nil
}

func (s *Surface) PresentModes(gpu vk.PhysicalDevice) ([]vk.PresentMode, error) {
	var count uint32
	ret := vk.GetPhysicalDeviceSurfacePresentModes(gpu, s.handle, &count, nil)
	if err := vkCheck(ret, "vkGetPhysicalDeviceSurfacePresentModesKHR"); err != nil {
		return nil, err
	}
	modes := make([]vk.PresentMode, count)
	ret = vk.GetPhysicalDeviceSurfacePresentModes(gpu, s.handle, &count, modes)
	if err := vkCheck(ret, "vkGetPhysicalDeviceSurfacePresentModesKHR"); err != nil {
		return nil, err
	}
	return modes[:count], nil
}

// Support collects everything the swapchain parameter selection needs.
func (s *Surface) Support(gpu vk.PhysicalDevice) (SwapchainSupport, error) {
	var (
		support SwapchainSupport
		err     error
	)
	if support.Capabilities, err = s.Capabilities(gpu); err != nil {
		return support, err
	}
	if support.Formats, err = s.Formats(gpu); err != nil {
		return support, err
	}
	if support.PresentModes, err = s.PresentModes(gpu); err != nil {
		return support, err
	}
	return support, nil
}
