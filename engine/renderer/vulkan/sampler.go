package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

// maxSamplerLod leaves the mip chain unclamped, the value of VK_LOD_CLAMP_NONE.
const maxSamplerLod float32 = 1000.0

func vulkanError(call string, result vk.Result) error {
	return fmt.Errorf("%s failed with %s", call, VulkanResultString(result, true))
}

func vulkanFilter(filter metadata.TextureFilter) vk.Filter {
	if filter == metadata.TextureFilterModeNearest {
		return vk.FilterNearest
	}
	return vk.FilterLinear
}

func vulkanMipmapMode(filter metadata.TextureFilter) vk.SamplerMipmapMode {
	if filter == metadata.TextureFilterModeLinear {
		return vk.SamplerMipmapModeLinear
	}
	return vk.SamplerMipmapModeNearest
}

func vulkanAddressMode(repeat metadata.TextureRepeat) vk.SamplerAddressMode {
	switch repeat {
	case metadata.TextureRepeatMirroredRepeat:
		return vk.SamplerAddressModeMirroredRepeat
	case metadata.TextureRepeatClampToEdge:
		return vk.SamplerAddressModeClampToEdge
	case metadata.TextureRepeatClampToBorder:
		return vk.SamplerAddressModeClampToBorder
	default:
		return vk.SamplerAddressModeRepeat
	}
}

func (d *VulkanDevice) samplerCreateInfo(state metadata.SamplerState) vk.SamplerCreateInfo {
	info := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               vulkanFilter(state.MagFilter),
		MinFilter:               vulkanFilter(state.MinFilter),
		MipmapMode:              vulkanMipmapMode(state.MipFilter),
		AddressModeU:            vulkanAddressMode(state.RepeatU),
		AddressModeV:            vulkanAddressMode(state.RepeatV),
		AddressModeW:            vulkanAddressMode(state.RepeatW),
		AnisotropyEnable:        vk.False,
		MaxAnisotropy:           1.0,
		BorderColor:             vk.BorderColorIntOpaqueBlack,
		UnnormalizedCoordinates: vk.False,
		CompareEnable:           vk.False,
		CompareOp:               vk.CompareOpAlways,
		MipLodBias:              0.0,
		MinLod:                  0.0,
		MaxLod:                  0.0,
	}
	if state.MipFilter != metadata.TextureFilterModeNone {
		info.MaxLod = maxSamplerLod
	}
	if state.MaxAnisotropy > 1 && d.MaxSamplerAnisotropy > 1 {
		info.AnisotropyEnable = vk.True
		info.MaxAnisotropy = float32(state.MaxAnisotropy)
		if info.MaxAnisotropy > d.MaxSamplerAnisotropy {
			info.MaxAnisotropy = d.MaxSamplerAnisotropy
		}
	}
	return info
}

// CreateSampler creates a vk.Sampler for state.
func (d *VulkanDevice) CreateSampler(state metadata.SamplerState) (interface{}, error) {
	info := d.samplerCreateInfo(state)

	var sampler vk.Sampler
	if err := d.locks.SafeCall(SamplerManagement, func() error {
		result := vk.CreateSampler(d.LogicalDevice, &info, d.Allocator, &sampler)
		if !VulkanResultIsSuccess(result) {
			return vulkanError("vkCreateSampler", result)
		}
		return nil
	}); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	core.LogDebug("vulkan sampler created")
	return sampler, nil
}

func (d *VulkanDevice) DestroySampler(handle interface{}) {
	sampler, ok := handle.(vk.Sampler)
	if !ok || sampler == nil {
		return
	}
	d.locks.SafeCall(SamplerManagement, func() error {
		vk.DestroySampler(d.LogicalDevice, sampler, d.Allocator)
		return nil
	})
}
