package akai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestGraphicsPresentFamily(t *testing.T) {
	graphics := vk.QueueFlags(vk.QueueGraphicsBit)
	compute := vk.QueueFlags(vk.QueueComputeBit)
	families := []vk.QueueFamilyProperties{
		{QueueFlags: compute, QueueCount: 1},
		{QueueFlags: graphics | compute, QueueCount: 0},
		{QueueFlags: graphics, QueueCount: 4},
		{QueueFlags: graphics | compute, QueueCount: 1},
	}

	idx, ok := graphicsPresentFamily(families, []bool{true, true, false, true})
	assert.True(t, ok)
	assert.Equal(t, uint32(3), idx)

	idx, ok = graphicsPresentFamily(families, []bool{true, true, true, true})
	assert.True(t, ok)
	assert.Equal(t, uint32(2), idx)

	_, ok = graphicsPresentFamily(families, []bool{true, true, false, false})
	assert.False(t, ok)

	_, ok = graphicsPresentFamily(families, nil)
	assert.False(t, ok)
}

func TestPickCandidate(t *testing.T) {
	_, ok := pickCandidate(nil)
	assert.False(t, ok)

	integrated := gpuCandidate{index: 0, family: 0, deviceType: vk.PhysicalDeviceTypeIntegratedGpu}
	discrete := gpuCandidate{index: 1, family: 2, deviceType: vk.PhysicalDeviceTypeDiscreteGpu}
	cpu := gpuCandidate{index: 2, family: 0, deviceType: vk.PhysicalDeviceTypeCpu}

	c, ok := pickCandidate([]gpuCandidate{integrated, discrete, cpu})
	assert.True(t, ok)
	assert.Equal(t, discrete, c)

	c, ok = pickCandidate([]gpuCandidate{cpu, integrated})
	assert.True(t, ok)
	assert.Equal(t, cpu, c)
}

func TestMissingNames(t *testing.T) {
	available := []string{"VK_KHR_surface", "VK_KHR_swapchain"}
	assert.Empty(t, missingNames([]string{"VK_KHR_swapchain"}, available))
	assert.Equal(t, []string{"VK_LAYER_KHRONOS_validation"},
		missingNames([]string{"VK_KHR_surface", "VK_LAYER_KHRONOS_validation"}, available))
	assert.Equal(t, []string{"VK_KHR_swapchain"}, missingNames(deviceExtensions, nil))
}
