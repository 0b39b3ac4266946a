package renderer

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// DeviceMemory wraps a Vulkan memory allocation. The engine keeps its
// host-visible allocations persistently mapped; writes through the mapped
// pointer are visible to the next GPU submission, relying on the coherency
// of the selected memory type.
type DeviceMemory struct {
	Device         *Device
	VKDeviceMemory vk.DeviceMemory
	Size           uint64
	Ptr            unsafe.Pointer
}

func (d *DeviceMemory) Destroy() {
	if d.Ptr != nil {
		d.Unmap()
	}
	vk.FreeMemory(d.Device.VKDevice, d.VKDeviceMemory, nil)
}

// Map maps the entirety of this memory and remembers the pointer.
func (d *DeviceMemory) Map() (unsafe.Pointer, error) {
	var res unsafe.Pointer
	err := vk.Error(vk.MapMemory(d.Device.VKDevice, d.VKDeviceMemory, 0, vk.DeviceSize(d.Size), 0, &res))
	if err != nil {
		return nil, err
	}
	d.Ptr = res
	return res, nil
}

func (d *DeviceMemory) Unmap() {
	d.Ptr = nil
	vk.UnmapMemory(d.Device.VKDevice, d.VKDeviceMemory)
}

// Bytes returns the mapped region as a byte slice. The memory must be
// mapped first.
func (d *DeviceMemory) Bytes() []byte {
	if d.Ptr == nil {
		return nil
	}
	const m = 0x7fffffff
	return (*[m]byte)(d.Ptr)[: d.Size : d.Size]
}
