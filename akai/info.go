package akai

import (
	"fmt"
	"io"

	vk "github.com/vulkan-go/vulkan"
	"github.com/xlab/tablewriter"
)

// Info is a snapshot of the driver objects behind an application.
type Info struct {
	DeviceName    string
	VendorID      uint32
	DeviceType    vk.PhysicalDeviceType
	APIVersion    uint32
	DriverVersion uint32
	GPUCount      int
	QueueFamily   uint32

	Capabilities vk.SurfaceCapabilities
	FormatCount  int
	Swapchain    SwapchainParams
	ImageCount   int

	InstanceExtensions []string
	DeviceExtensions   []string
	InstanceLayers     []string
	DeviceLayers       []string
}

func CollectInfo(a *Application) (Info, error) {
	gpu := a.PhysicalDevice()
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(gpu, &props)
	props.Deref()

	info := Info{
		DeviceName:    vk.ToString(props.DeviceName[:]),
		VendorID:      props.VendorID,
		DeviceType:    props.DeviceType,
		APIVersion:    props.ApiVersion,
		DriverVersion: props.DriverVersion,
		QueueFamily:   a.Device().QueueFamily(),
		Swapchain:     a.Swapchain().Params,
		ImageCount:    len(a.Swapchain().Images()),
	}
	gpus, err := a.Instance().PhysicalDevices()
	if err != nil {
		return info, err
	}
	info.GPUCount = len(gpus)
	support, err := a.Surface().Support(gpu)
	if err != nil {
		return info, err
	}
	info.Capabilities = support.Capabilities
	info.FormatCount = len(support.Formats)
	if info.InstanceExtensions, err = instanceExtensions(); err != nil {
		return info, err
	}
	if info.InstanceLayers, err = instanceLayers(); err != nil {
		return info, err
	}
	if info.DeviceExtensions, err = deviceExtensionNames(gpu); err != nil {
		return info, err
	}
	if info.DeviceLayers, err = deviceLayerNames(gpu); err != nil {
		return info, err
	}
	return info, nil
}

func (info Info) Table() string {
	table := tablewriter.CreateTable()
	table.UTF8Box()
	table.AddTitle("VULKAN PROPERTIES AND SURFACE CAPABILITES")
	table.AddRow("Physical Device Name", info.DeviceName)
	table.AddRow("Physical Device Vendor", fmt.Sprintf("%x", info.VendorID))
	if info.DeviceType != vk.PhysicalDeviceTypeOther {
		table.AddRow("Physical Device Type", physicalDeviceType(info.DeviceType))
	}
	table.AddRow("Physical GPUs", info.GPUCount)
	table.AddRow("API Version", vk.Version(info.APIVersion))
	table.AddRow("Driver Version", vk.Version(info.DriverVersion))
	table.AddRow("Queue family", info.QueueFamily)

	caps := info.Capabilities
	table.AddSeparator()
	table.AddRow("Image count", fmt.Sprintf("%d - %d",
		caps.MinImageCount, caps.MaxImageCount))
	table.AddRow("Array layers", fmt.Sprintf("%d", caps.MaxImageArrayLayers))
	table.AddRow("Image size (current)", fmt.Sprintf("%dx%d",
		caps.CurrentExtent.Width, caps.CurrentExtent.Height))
	table.AddRow("Image size (extent)", fmt.Sprintf("%dx%d - %dx%d",
		caps.MinImageExtent.Width, caps.MinImageExtent.Height,
		caps.MaxImageExtent.Width, caps.MaxImageExtent.Height))
	table.AddRow("Usage flags", fmt.Sprintf("%02x", caps.SupportedUsageFlags))
	table.AddRow("Current transform", fmt.Sprintf("%02x", caps.CurrentTransform))
	table.AddRow("Allowed transforms", fmt.Sprintf("%02x", caps.SupportedTransforms))
	table.AddRow("Surface formats", info.FormatCount)

	sc := info.Swapchain
	table.AddSeparator()
	table.AddRow("SWAPCHAIN", "")
	table.AddRow("Images", fmt.Sprintf("%d (requested %d)", info.ImageCount, sc.ImageCount))
	table.AddRow("Extent", fmt.Sprintf("%dx%d", sc.Extent.Width, sc.Extent.Height))
	table.AddRow("Format", fmt.Sprintf("%d", sc.Format.Format))
	table.AddRow("Color space", fmt.Sprintf("%d", sc.Format.ColorSpace))
	table.AddRow("Present mode", presentModeName(sc.PresentMode))

	addNames(table, "INSTANCE EXTENSIONS", info.InstanceExtensions)
	addNames(table, "DEVICE EXTENSIONS", info.DeviceExtensions)
	addNames(table, "INSTANCE LAYERS", info.InstanceLayers)
	addNames(table, "DEVICE LAYERS", info.DeviceLayers)
	return table.Render()
}

func addNames(table *tablewriter.Table, title string, names []string) {
	if len(names) == 0 {
		return
	}
	table.AddSeparator()
	table.AddRow(title, "")
	for i, name := range names {
		table.AddRow(i+1, name)
	}
}

// PrintInfo writes the diagnostics table for a to w.
func PrintInfo(w io.Writer, a *Application) error {
	info, err := CollectInfo(a)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "\n\n"+info.Table())
	return err
}

func physicalDeviceType(dev vk.PhysicalDeviceType) string {
	switch dev {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "Integrated GPU"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "Discrete GPU"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "Virtual GPU"
	case vk.PhysicalDeviceTypeCpu:
		return "CPU"
	case vk.PhysicalDeviceTypeOther:
		return "Other"
	default:
		return "Unknown"
	}
}

func presentModeName(mode vk.PresentMode) string {
	switch mode {
	case vk.PresentModeImmediate:
		return "Immediate"
	case vk.PresentModeMailbox:
		return "Mailbox"
	case vk.PresentModeFifo:
		return "FIFO"
	case vk.PresentModeFifoRelaxed:
		return "FIFO relaxed"
	default:
		return fmt.Sprintf("Unknown (%d)", mode)
	}
}
