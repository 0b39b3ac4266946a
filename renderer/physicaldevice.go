package renderer

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type PhysicalDevice struct {
	DeviceName                 string
	VKPhysicalDevice           vk.PhysicalDevice
	VKPhysicalDeviceProperties vk.PhysicalDeviceProperties
}

func (p *PhysicalDevice) String() string {
	return p.DeviceName
}

func (p *PhysicalDevice) QueueFamilies() (QueueFamilySlice, error) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &count, nil)
	if count == 0 {
		return nil, nil
	}

	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &count, props)

	ret := make(QueueFamilySlice, count)
	for i, qp := range props {
		ret[i] = &QueueFamily{Index: i, PhysicalDevice: p, VKQueueFamilyProperties: qp}
		ret[i].VKQueueFamilyProperties.Deref()
	}
	return ret, nil
}

// SupportedExtensions returns the device-level extensions this physical
// device advertises.
func (p *PhysicalDevice) SupportedExtensions() ([]string, error) {
	var count uint32
	err := vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, nil))
	if err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	err = vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, props))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, e := range props {
		e.Deref()
		names = append(names, vk.ToString(e.ExtensionName[:]))
	}
	return names, nil
}

// SupportsExtensions reports whether every named device extension is
// available.
func (p *PhysicalDevice) SupportsExtensions(names []string) (bool, error) {
	available, err := p.SupportedExtensions()
	if err != nil {
		return false, err
	}
	for _, want := range names {
		found := false
		for _, have := range available {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

func (p *PhysicalDevice) GetSurfaceCapabilities(surface vk.Surface) (*vk.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(p.VKPhysicalDevice, surface, &caps))
	if err != nil {
		return nil, err
	}
	return &caps, nil
}

func (p *PhysicalDevice) GetSurfaceFormats(surface vk.Surface) ([]vk.SurfaceFormat, error) {
	var count uint32
	err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, nil))
	if err != nil {
		return nil, err
	}
	formats := make([]vk.SurfaceFormat, count)
	err = vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, formats))
	if err != nil {
		return nil, err
	}
	return formats, nil
}

// selectSurfaceFormat requires BGRA8-unorm with sRGB-nonlinear color space.
// There is no fallback negotiation: anything else fails with
// ErrNoSurfaceFormatFound.
func (p *PhysicalDevice) selectSurfaceFormat(surface vk.Surface) (vk.SurfaceFormat, error) {
	formats, err := p.GetSurfaceFormats(surface)
	if err != nil {
		return vk.SurfaceFormat{}, err
	}
	for _, f := range formats {
		f.Deref()
		if f.Format == vk.FormatB8g8r8a8Unorm && f.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return f, nil
		}
	}
	return vk.SurfaceFormat{}, ErrNoSurfaceFormatFound
}

func (p *PhysicalDevice) VKPhysicalDeviceMemoryProperties() vk.PhysicalDeviceMemoryProperties {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(p.VKPhysicalDevice, &memoryProperties)
	return memoryProperties
}

// selectHostMemoryType picks the memory type backing the combined
// vertex/index/texture allocation: it must be host-visible and sit on a heap
// of at least minHeapBytes; a type that is additionally device-local is
// preferred. Fails with ErrNoValidMemoryTypes when no host-visible type
// meets the size floor.
func (p *PhysicalDevice) selectHostMemoryType() (uint32, error) {
	mp := p.VKPhysicalDeviceMemoryProperties()
	mp.Deref()

	heapSize := func(idx uint32) uint64 {
		h := mp.MemoryHeaps[idx]
		h.Deref()
		return uint64(h.Size)
	}

	const hostVisible = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)
	const deviceLocal = vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)

	best := int64(-1)
	var i uint32
	for i = 0; i < mp.MemoryTypeCount; i++ {
		mt := mp.MemoryTypes[i]
		mt.Deref()
		if mt.PropertyFlags&hostVisible == 0 {
			continue
		}
		if heapSize(mt.HeapIndex) < minHeapBytes {
			continue
		}
		if mt.PropertyFlags&deviceLocal != 0 {
			logger().Debug("selected device-local host-visible memory type", "index", i)
			return i, nil
		}
		if best < 0 {
			best = int64(i)
		}
	}
	if best < 0 {
		return 0, ErrNoValidMemoryTypes
	}
	logger().Debug("selected host-visible memory type", "index", best)
	return uint32(best), nil
}

// FindMemoryType locates a memory type satisfying the given requirement
// bits and property flags.
func (p *PhysicalDevice) FindMemoryType(memoryTypeBits uint32, properties vk.MemoryPropertyFlagBits) (uint32, error) {
	mp := p.VKPhysicalDeviceMemoryProperties()
	mp.Deref()

	var i uint32
	for i = 0; i < mp.MemoryTypeCount; i++ {
		mt := mp.MemoryTypes[i]
		mt.Deref()
		if memoryTypeBits&(1<<i) != 0 &&
			vk.MemoryPropertyFlagBits(mt.PropertyFlags)&properties == properties {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no matching memory type found: %w", ErrNoValidMemoryTypes)
}

// CreateLogicalDevice creates a logical device with a single queue from the
// given family, used for both graphics submission and presentation.
func (p *PhysicalDevice) CreateLogicalDevice(qf *QueueFamily, extensions []string) (*Device, error) {
	queueCreateInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: uint32(qf.Index),
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}

	var deviceFeatures vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(p.VKPhysicalDevice, &deviceFeatures)

	exts := safeStrings(extensions)

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    1,
		PQueueCreateInfos:       []vk.DeviceQueueCreateInfo{queueCreateInfo},
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{deviceFeatures},
		EnabledExtensionCount:   uint32(len(exts)),
		PpEnabledExtensionNames: exts,
	}

	var ldevice vk.Device
	err := vk.Error(vk.CreateDevice(p.VKPhysicalDevice, &deviceCreateInfo, nil, &ldevice))
	if err != nil {
		return nil, fmt.Errorf("creating logical device: %w", err)
	}

	return &Device{PhysicalDevice: p, VKDevice: ldevice}, nil
}
