package akai

import (
	"log"
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

const engineName = "akai"

// Instance is the connection to the Vulkan driver.
type Instance struct {
	handle vk.Instance
	debug  vk.DebugReportCallback
	ref    *shared

	Extensions []string
	Layers     []string
}

func NewInstance(opts Options, window Window) (*Instance, error) {
	extensions := window.RequiredInstanceExtensions()
	if opts.Validation {
		extensions = append(extensions, "VK_EXT_debug_report")
	}
	layers := opts.layers()
	if len(layers) > 0 {
		available, err := instanceLayers()
		if err != nil {
			return nil, err
		}
		if missing := missingNames(layers, available); len(missing) > 0 {
			return nil, errors.Newf("vkCreateInstance: layers not available: %v", missing)
		}
	}

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(1, 0, 0),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PApplicationName:   safeString(opts.Title),
		PEngineName:        safeString(engineName),
	}
	createInfo := &vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     safeStrings(layers),
	}

	v := &Instance{
		Extensions: extensions,
		Layers:     layers,
	}
	if err := vkCheck(vk.CreateInstance(createInfo, nil, &v.handle), "vkCreateInstance"); err != nil {
		return nil, err
	}
	if err := vk.InitInstance(v.handle); err != nil {
		vk.DestroyInstance(v.handle, nil)
		return nil, errors.Wrap(err, "vk.InitInstance failed")
	}
	if opts.Validation {
		ret := vk.CreateDebugReportCallback(v.handle, &vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
			PfnCallback: debugReport,
		}, nil, &v.debug)
		if err := vkCheck(ret, "vkCreateDebugReportCallbackEXT"); err != nil {
			log.Println("[WARN]", err)
			v.debug = vk.NullDebugReportCallback
		}
	}
	v.ref = newShared("instance", v.release)
	return v, nil
}

func (v *Instance) release() {
	if v.debug != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(v.handle, v.debug, nil)
		v.debug = vk.NullDebugReportCallback
	}
	vk.DestroyInstance(v.handle, nil)
	v.handle = nil
}

// Handle returns the native instance.
func (v *Instance) Handle() vk.Instance {
	return v.handle
}

// Destroy drops the caller's ownership. The native instance goes away
// once every surface and device created from it is destroyed too.
func (v *Instance) Destroy() {
	if v == nil || v.ref == nil {
		return
	}
	v.ref.drop()
	v.ref = nil
}

// PhysicalDevices lists the GPUs visible to the instance.
func (v *Instance) PhysicalDevices() ([]vk.PhysicalDevice, error) {
	var gpuCount uint32
	err := vkCheck(vk.EnumeratePhysicalDevices(v.handle, &gpuCount, nil), "vkEnumeratePhysicalDevices")
	if err != nil {
		return nil, err
	}
	if gpuCount == 0 {
		return nil, errors.New("vkEnumeratePhysicalDevices: no GPUs found on the system")
	}
	gpuList := make([]vk.PhysicalDevice, gpuCount)
	err = vkCheck(vk.EnumeratePhysicalDevices(v.handle, &gpuCount, gpuList), "vkEnumeratePhysicalDevices")
	if err != nil {
		return nil, err
	}
	return gpuList[:gpuCount], nil
}

// PickPhysicalDevice returns a GPU with a queue family that can both
// render and present to surface, together with that family's index.
func (v *Instance) PickPhysicalDevice(surface *Surface) (vk.PhysicalDevice, uint32, error) {
	gpus, err := v.PhysicalDevices()
	if err != nil {
		return nil, 0, err
	}
	candidates := make([]gpuCandidate, 0, len(gpus))
	for i, gpu := range gpus {
		exts, err := deviceExtensionNames(gpu)
		if err != nil || len(missingNames(deviceExtensions, exts)) > 0 {
			continue
		}
		families := queueFamilies(gpu)
		supported := make([]bool, len(families))
		for idx := range families {
			supported[idx] = surface.SupportsPresent(gpu, uint32(idx))
		}
		family, ok := graphicsPresentFamily(families, supported)
		if !ok {
			continue
		}
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(gpu, &props)
		props.Deref()
		candidates = append(candidates, gpuCandidate{
			index:      i,
			family:     family,
			deviceType: props.DeviceType,
		})
	}
	best, ok := pickCandidate(candidates)
	if !ok {
		return nil, 0, errors.New("no GPU can render and present to the window surface")
	}
	return gpus[best.index], best.family, nil
}

type gpuCandidate struct {
	index      int
	family     uint32
	deviceType vk.PhysicalDeviceType
}

// pickCandidate prefers the first discrete GPU and falls back to the
// first candidate of any kind.
func pickCandidate(candidates []gpuCandidate) (gpuCandidate, bool) {
	if len(candidates) == 0 {
		return gpuCandidate{}, false
	}
	for _, c := range candidates {
		if c.deviceType == vk.PhysicalDeviceTypeDiscreteGpu {
			return c, true
		}
	}
	return candidates[0], true
}

func queueFamilies(gpu vk.PhysicalDevice) []vk.QueueFamilyProperties {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, families)
	for i := range families {
		families[i].Deref()
	}
	return families
}

// graphicsPresentFamily finds the first family with the graphics bit
// whose present support is reported in supported.
func graphicsPresentFamily(families []vk.QueueFamilyProperties, supported []bool) (uint32, bool) {
	graphics := vk.QueueFlags(vk.QueueGraphicsBit)
	for i, family := range families {
		if family.QueueCount == 0 || family.QueueFlags&graphics == 0 {
			continue
		}
		if i < len(supported) && supported[i] {
			return uint32(i), true
		}
	}
	return 0, false
}

func instanceLayers() ([]string, error) {
	var count uint32
	err := vkCheck(vk.EnumerateInstanceLayerProperties(&count, nil), "vkEnumerateInstanceLayerProperties")
	if err != nil {
		return nil, err
	}
	layers := make([]vk.LayerProperties, count)
	err = vkCheck(vk.EnumerateInstanceLayerProperties(&count, layers), "vkEnumerateInstanceLayerProperties")
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

func instanceExtensions() ([]string, error) {
	var count uint32
	err := vkCheck(vk.EnumerateInstanceExtensionProperties("", &count, nil), "vkEnumerateInstanceExtensionProperties")
	if err != nil {
		return nil, err
	}
	exts := make([]vk.ExtensionProperties, count)
	err = vkCheck(vk.EnumerateInstanceExtensionProperties("", &count, exts), "vkEnumerateInstanceExtensionProperties")
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

func missingNames(wanted, available []string) []string {
	have := make(map[string]struct{}, len(available))
	for _, name := range available {
		have[name] = struct{}{}
	}
	var missing []string
	for _, name := range wanted {
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func debugReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		log.Printf("[ERROR %d] %s on layer %s", messageCode, pMessage, pLayerPrefix)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		log.Printf("[WARN %d] %s on layer %s", messageCode, pMessage, pLayerPrefix)
	default:
		log.Printf("[INFO %d] %s on layer %s", messageCode, pMessage, pLayerPrefix)
	}
	return vk.Bool32(vk.False)
}
