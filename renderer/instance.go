package renderer

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// Platform surface extensions in selection priority order. A Linux host may
// advertise several; the compositor-native path wins over the X protocol
// ones, and XCB over Xlib.
var platformSurfaceExtensions = []string{
	"VK_KHR_wayland_surface",
	"VK_KHR_xcb_surface",
	"VK_KHR_xlib_surface",
}

const genericSurfaceExtension = "VK_KHR_surface"

// InitDriver loads the Vulkan entry points through the given
// vkGetInstanceProcAddr pointer, typically obtained from the windowing
// layer (glfw.GetVulkanGetInstanceProcAddress). It fails fast when the
// driver is unavailable.
func InitDriver(getProcAddr unsafe.Pointer) error {
	vk.SetGetInstanceProcAddr(getProcAddr)
	if err := vk.Init(); err != nil {
		return fmt.Errorf("%w: %v", ErrDriverUnavailable, err)
	}
	return nil
}

// SupportedInstanceExtensions returns the instance-level extensions the
// loader advertises.
func SupportedInstanceExtensions() ([]string, error) {
	var count uint32
	err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil))
	if err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	err = vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, props))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, p := range props {
		p.Deref()
		names = append(names, vk.ToString(p.ExtensionName[:]))
	}
	return names, nil
}

// SupportedLayers returns the instance layers the loader advertises.
func SupportedLayers() ([]string, error) {
	var count uint32
	err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil))
	if err != nil {
		return nil, err
	}
	props := make([]vk.LayerProperties, count)
	err = vk.Error(vk.EnumerateInstanceLayerProperties(&count, props))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, p := range props {
		p.Deref()
		names = append(names, vk.ToString(p.LayerName[:]))
	}
	return names, nil
}

// selectSurfaceExtensions picks the minimum required surface extension set
// from the advertised instance extensions: the generic surface extension
// plus exactly one platform extension, chosen by priority.
func selectSurfaceExtensions(available []string) ([]string, error) {
	has := func(name string) bool {
		for _, a := range available {
			if a == name {
				return true
			}
		}
		return false
	}

	if !has(genericSurfaceExtension) {
		return nil, fmt.Errorf("%w: %s missing", ErrNoSurfaceExtension, genericSurfaceExtension)
	}
	for _, ext := range platformSurfaceExtensions {
		if has(ext) {
			return []string{genericSurfaceExtension, ext}, nil
		}
	}
	return nil, ErrNoSurfaceExtension
}

// Instance wraps the native Vulkan instance.
type Instance struct {
	VKInstance vk.Instance
}

func (i *Instance) Destroy() {
	vk.DestroyInstance(i.VKInstance, nil)
}

// createInstance creates the Vulkan instance with the minimum required
// extension set. No validation layers are enabled unless requested.
func createInstance(appName string, extensions, layers []string) (*Instance, error) {
	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(1, 0, 0),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PApplicationName:   safeString(appName),
		PEngineName:        safeString("fontana-renderer"),
	}

	exts := safeStrings(extensions)
	lays := safeStrings(layers)

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(exts)),
		PpEnabledExtensionNames: exts,
		EnabledLayerCount:       uint32(len(lays)),
		PpEnabledLayerNames:     lays,
	}

	instance := &Instance{}
	err := vk.Error(vk.CreateInstance(&createInfo, nil, &instance.VKInstance))
	if err != nil {
		return nil, fmt.Errorf("creating instance: %w", err)
	}
	vk.InitInstance(instance.VKInstance)

	return instance, nil
}

// PhysicalDevices returns the physical devices known to this instance.
func (i *Instance) PhysicalDevices() ([]*PhysicalDevice, error) {
	var count uint32
	err := vk.Error(vk.EnumeratePhysicalDevices(i.VKInstance, &count, nil))
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	devices := make([]vk.PhysicalDevice, count)
	err = vk.Error(vk.EnumeratePhysicalDevices(i.VKInstance, &count, devices))
	if err != nil {
		return nil, err
	}

	ret := make([]*PhysicalDevice, count)
	for j, device := range devices {
		ret[j] = &PhysicalDevice{}
		ret[j].VKPhysicalDevice = device
		vk.GetPhysicalDeviceProperties(device, &ret[j].VKPhysicalDeviceProperties)
		ret[j].VKPhysicalDeviceProperties.Deref()
		ret[j].DeviceName = vk.ToString(ret[j].VKPhysicalDeviceProperties.DeviceName[:])
	}
	return ret, nil
}
