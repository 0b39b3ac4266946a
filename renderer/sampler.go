package renderer

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// createAtlasSampler builds the one sampler used by every draw: nearest
// filtering, clamp-to-edge addressing, no anisotropy, no mips. Texel centers
// are addressed directly so linear filtering would only bleed neighbours.
func createAtlasSampler(d *Device) (vk.Sampler, error) {
	createInfo := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               vk.FilterNearest,
		MinFilter:               vk.FilterNearest,
		AddressModeU:            vk.SamplerAddressModeClampToEdge,
		AddressModeV:            vk.SamplerAddressModeClampToEdge,
		AddressModeW:            vk.SamplerAddressModeClampToEdge,
		AnisotropyEnable:        vk.False,
		MaxAnisotropy:           1.0,
		BorderColor:             vk.BorderColorIntOpaqueBlack,
		UnnormalizedCoordinates: vk.False,
		CompareEnable:           vk.False,
		CompareOp:               vk.CompareOpAlways,
		MipmapMode:              vk.SamplerMipmapModeNearest,
		MipLodBias:              0.0,
		MinLod:                  0.0,
		MaxLod:                  0.0,
	}

	var sampler vk.Sampler
	err := vk.Error(vk.CreateSampler(d.VKDevice, &createInfo, nil, &sampler))
	if err != nil {
		return sampler, fmt.Errorf("creating atlas sampler: %w", err)
	}
	return sampler, nil
}
