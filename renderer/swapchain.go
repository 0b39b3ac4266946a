package renderer

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Swapchain struct {
	Extent      vk.Extent2D
	Format      vk.Format
	Device      *Device
	VKSwapchain vk.Swapchain
}

func (s *Swapchain) Destroy() {
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
}

// GetImages fetches the presentable images owned by the swapchain.
func (s *Swapchain) GetImages() ([]vk.Image, error) {
	var imageCount uint32
	err := vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, nil))
	if err != nil {
		return nil, err
	}

	images := make([]vk.Image, imageCount)
	err = vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, images))
	if err != nil {
		return nil, err
	}
	return images, nil
}

// CreateImageView creates a 2D color view over one swapchain image.
func (s *Swapchain) CreateImageView(image vk.Image) (vk.ImageView, error) {
	createInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   s.Format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleR,
			G: vk.ComponentSwizzleG,
			B: vk.ComponentSwizzleB,
			A: vk.ComponentSwizzleA,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var view vk.ImageView
	err := vk.Error(vk.CreateImageView(s.Device.VKDevice, createInfo, nil, &view))
	if err != nil {
		return view, fmt.Errorf("creating swapchain image view: %w", err)
	}
	return view, nil
}

// createSwapchain creates the swapchain: image count = surface minimum + 1,
// exclusive sharing on the single queue family, identity pre-transform,
// opaque composite alpha, FIFO (vsync-locked) presentation, clipped. A
// surface that cannot present with the identity transform is an
// unrecoverable configuration, not a recoverable state.
//
// On recreation the old swapchain handle is passed through for a smooth
// transition; the caller destroys it afterwards.
func (d *Device) createSwapchain(surface vk.Surface, fallbackExtent vk.Extent2D, old *Swapchain) (*Swapchain, error) {
	format, err := d.PhysicalDevice.selectSurfaceFormat(surface)
	if err != nil {
		return nil, err
	}

	caps, err := d.PhysicalDevice.GetSurfaceCapabilities(surface)
	if err != nil {
		return nil, err
	}
	caps.Deref()

	if caps.SupportedTransforms&vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit) == 0 {
		return nil, ErrSurfaceTransformUnsupported
	}

	var extent vk.Extent2D
	caps.CurrentExtent.Deref()
	if caps.CurrentExtent.Width == vk.MaxUint32 {
		extent = fallbackExtent
	} else {
		extent = caps.CurrentExtent
	}

	imageCount := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && imageCount > caps.MaxImageCount {
		imageCount = caps.MaxImageCount
	}

	createInfo := &vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    imageCount,
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     vk.SurfaceTransformIdentityBit,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      vk.PresentModeFifo,
		Clipped:          vk.True,
		OldSwapchain:     vk.NullSwapchain,
	}
	if old != nil {
		createInfo.OldSwapchain = old.VKSwapchain
	}

	var swapchain vk.Swapchain
	err = vk.Error(vk.CreateSwapchain(d.VKDevice, createInfo, nil, &swapchain))
	if err != nil {
		return nil, fmt.Errorf("creating swapchain: %w", err)
	}

	logger().Debug("swapchain created",
		"width", extent.Width, "height", extent.Height, "images", imageCount)

	return &Swapchain{
		VKSwapchain: swapchain,
		Device:      d,
		Extent:      extent,
		Format:      format.Format,
	}, nil
}
