package renderer

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// createDescriptorSetLayout builds the single layout: binding 0 is a
// combined image+sampler visible to the fragment stage. The same layout
// handle is shared by every descriptor set.
func createDescriptorSetLayout(d *Device) (vk.DescriptorSetLayout, error) {
	binding := vk.DescriptorSetLayoutBinding{
		Binding:         0,
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
	}

	createInfo := &vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: 1,
		PBindings:    []vk.DescriptorSetLayoutBinding{binding},
	}

	var layout vk.DescriptorSetLayout
	err := vk.Error(vk.CreateDescriptorSetLayout(d.VKDevice, createInfo, nil, &layout))
	if err != nil {
		return layout, fmt.Errorf("creating descriptor set layout: %w", err)
	}
	return layout, nil
}

func createDescriptorPool(d *Device, maxSets int) (vk.DescriptorPool, error) {
	poolSize := vk.DescriptorPoolSize{
		Type:            vk.DescriptorTypeCombinedImageSampler,
		DescriptorCount: uint32(maxSets),
	}

	createInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       uint32(maxSets),
		PoolSizeCount: 1,
		PPoolSizes:    []vk.DescriptorPoolSize{poolSize},
	}

	var pool vk.DescriptorPool
	err := vk.Error(vk.CreateDescriptorPool(d.VKDevice, &createInfo, nil, &pool))
	if err != nil {
		return pool, fmt.Errorf("creating descriptor pool: %w", err)
	}
	return pool, nil
}

// allocateAtlasDescriptorSets allocates count sets from the pool, one per
// swapchain image, all using the same layout and all pointing at the single
// shared atlas.
func allocateAtlasDescriptorSets(d *Device, pool vk.DescriptorPool, layout vk.DescriptorSetLayout,
	count int, atlasView vk.ImageView, sampler vk.Sampler) ([]vk.DescriptorSet, error) {

	layouts := make([]vk.DescriptorSetLayout, count)
	for i := range layouts {
		layouts[i] = layout
	}

	allocateInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: uint32(count),
		PSetLayouts:        layouts,
	}

	sets := make([]vk.DescriptorSet, count)
	err := vk.Error(vk.AllocateDescriptorSets(d.VKDevice, &allocateInfo, &sets[0]))
	if err != nil {
		return nil, fmt.Errorf("allocating descriptor sets: %w", err)
	}

	imageInfo := vk.DescriptorImageInfo{
		ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
		ImageView:   atlasView,
		Sampler:     sampler,
	}

	writes := make([]vk.WriteDescriptorSet, count)
	for i := range sets {
		writes[i] = vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          sets[i],
			DstBinding:      0,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
			PImageInfo:      []vk.DescriptorImageInfo{imageInfo},
		}
	}
	vk.UpdateDescriptorSets(d.VKDevice, uint32(count), writes, 0, nil)

	return sets, nil
}
