package renderer

import (
	vk "github.com/vulkan-go/vulkan"
)

// VKCreateFence creates a native fence, optionally pre-signaled. Per-frame
// fences start signaled so the first wait on each slot returns immediately.
func (d *Device) VKCreateFence(signaled bool) (vk.Fence, error) {
	fenceCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if signaled {
		fenceCreateInfo.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}

	var fence vk.Fence
	err := vk.Error(vk.CreateFence(d.VKDevice, &fenceCreateInfo, nil, &fence))
	if err != nil {
		return vk.NullFence, err
	}
	return fence, nil
}

func (d *Device) VKDestroyFence(f vk.Fence) {
	vk.DestroyFence(d.VKDevice, f, nil)
}

// WaitForFence blocks indefinitely until the fence signals. Device loss is
// treated as fatal elsewhere, so an unbounded wait is acceptable here.
func (d *Device) WaitForFence(f vk.Fence) error {
	return vk.Error(vk.WaitForFences(d.VKDevice, 1, []vk.Fence{f}, vk.True, vk.MaxUint64))
}

// WaitForAllFences blocks until every fence in the slice signals. An empty
// slice is a no-op.
func (d *Device) WaitForAllFences(fences []vk.Fence) error {
	if len(fences) == 0 {
		return nil
	}
	return vk.Error(vk.WaitForFences(d.VKDevice, uint32(len(fences)), fences, vk.True, vk.MaxUint64))
}

func (d *Device) ResetFence(f vk.Fence) error {
	return vk.Error(vk.ResetFences(d.VKDevice, 1, []vk.Fence{f}))
}
