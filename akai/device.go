package akai

import (
	vk "github.com/vulkan-go/vulkan"
)

var deviceExtensions = []string{
	"VK_KHR_swapchain",
}

// Device is the application's logical connection to a GPU.
type Device struct {
	handle      vk.Device
	gpu         vk.PhysicalDevice
	queue       vk.Queue
	queueFamily uint32
	ref         *shared
}

func NewDevice(instance *Instance, gpu vk.PhysicalDevice, queueFamily uint32) (*Device, error) {
	queueCreateInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: queueFamily,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}
	deviceCreateInfo := &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueCreateInfos)),
		PQueueCreateInfos:       queueCreateInfos,
		EnabledExtensionCount:   uint32(len(deviceExtensions)),
		PpEnabledExtensionNames: safeStrings(deviceExtensions),
		EnabledLayerCount:       uint32(len(instance.Layers)),
		PpEnabledLayerNames:     safeStrings(instance.Layers),
	}
	d := &Device{
		gpu:         gpu,
		queueFamily: queueFamily,
	}
	if err := vkCheck(vk.CreateDevice(gpu, deviceCreateInfo, nil, &d.handle), "vkCreateDevice"); err != nil {
		return nil, err
	}
	vk.GetDeviceQueue(d.handle, queueFamily, 0, &d.queue)
	d.ref = newShared("device", d.release, instance.ref)
	return d, nil
}

func (d *Device) release() {
	vk.DeviceWaitIdle(d.handle)
	vk.DestroyDevice(d.handle, nil)
	d.handle = nil
}

func (d *Device) Handle() vk.Device {
	return d.handle
}

func (d *Device) PhysicalDevice() vk.PhysicalDevice {
	return d.gpu
}

func (d *Device) Queue() vk.Queue {
	return d.queue
}

func (d *Device) QueueFamily() uint32 {
	return d.queueFamily
}

func (d *Device) WaitIdle() error {
	return vkCheck(vk.DeviceWaitIdle(d.handle), "vkDeviceWaitIdle")
}

func (d *Device) Destroy() {
	if d == nil || d.ref == nil {
		return
	}
	d.ref.drop()
	d.ref = nil
}

func deviceExtensionNames(gpu vk.PhysicalDevice) ([]string, error) {
	var count uint32
	err := vkCheck(vk.EnumerateDeviceExtensionProperties(gpu, "", &count, nil), "vkEnumerateDeviceExtensionProperties")
	if err != nil {
		return nil, err
	}
	exts := make([]vk.ExtensionProperties, count)
	err = vkCheck(vk.EnumerateDeviceExtensionProperties(gpu, "", &count, exts), "vkEnumerateDeviceExtensionProperties")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, ext := range exts {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

func deviceLayerNames(gpu vk.PhysicalDevice) ([]string, error) {
	var count uint32
	err := vkCheck(vk.EnumerateDeviceLayerProperties(gpu, &count, nil), "vkEnumerateDeviceLayerProperties")
	if err != nil {
		return nil, err
	}
	layers := make([]vk.LayerProperties, count)
	err = vkCheck(vk.EnumerateDeviceLayerProperties(gpu, &count, layers), "vkEnumerateDeviceLayerProperties")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, layer := range layers {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}
