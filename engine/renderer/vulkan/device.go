package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/animotion/engine/renderer/metadata"
)

// VulkanDevice is the part of a logical device the animation layer needs:
// creating and destroying samplers for the textures it binds.
type VulkanDevice struct {
	LogicalDevice vk.Device
	Allocator     *vk.AllocationCallbacks
	// MaxSamplerAnisotropy is the device limit, 0 when anisotropic
	// filtering is not enabled on the device.
	MaxSamplerAnisotropy float32

	locks *VulkanLockPool
}

var _ metadata.SamplerDevice = &VulkanDevice{}

func NewVulkanDevice(device vk.Device, allocator *vk.AllocationCallbacks, limits vk.PhysicalDeviceLimits) *VulkanDevice {
	limits.Deref()
	return &VulkanDevice{
		LogicalDevice:        device,
		Allocator:            allocator,
		MaxSamplerAnisotropy: limits.MaxSamplerAnisotropy,
		locks:                NewVulkanLockPool(),
	}
}
