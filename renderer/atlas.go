package renderer

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

const atlasChannels = 4

// PixelView is a mutable window onto the texture atlas's host-mapped
// backing memory. External collaborators (a font rasterizer, for example)
// write RGBA float pixels through it directly; the engine owns the image
// itself. Pix holds Width*Height*4 float32s in row-major order.
type PixelView struct {
	Width  int
	Height int
	Pix    []float32
}

// Set writes one RGBA texel. Out-of-bounds coordinates are ignored.
func (p *PixelView) Set(x, y int, r, g, b, a float32) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return
	}
	i := (y*p.Width + x) * atlasChannels
	p.Pix[i+0] = r
	p.Pix[i+1] = g
	p.Pix[i+2] = b
	p.Pix[i+3] = a
}

// At reads one RGBA texel. Out-of-bounds coordinates read as zero.
func (p *PixelView) At(x, y int) (r, g, b, a float32) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return 0, 0, 0, 0
	}
	i := (y*p.Width + x) * atlasChannels
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3]
}

// FillRect fills the given sub-rectangle with one color, clipped to the
// view bounds.
func (p *PixelView) FillRect(x, y, w, h int, r, g, b, a float32) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			p.Set(xx, yy, r, g, b, a)
		}
	}
}

// Clear fills every texel with transparent black, then re-writes the
// reserved sentinel so colored quads keep sampling opaque white at (1,1)
// no matter how often collaborators clear the surface.
func (p *PixelView) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0
	}
	p.writeSentinel()
}

// writeSentinel sets the final (bottom-right) texel to fully opaque white.
func (p *PixelView) writeSentinel() {
	p.Set(p.Width-1, p.Height-1, 1, 1, 1, 1)
}

// Atlas is the single shared texture surface all quads sample from. One
// fixed-size 2D image in host-visible device memory, mapped for direct
// writes, viewed as a single-layer array so the sampler type holds if it is
// ever extended to multiple layers.
type Atlas struct {
	Device *Device
	Size   int

	VKImage vk.Image
	Memory  *DeviceMemory
	VKView  vk.ImageView

	view     PixelView
	prepared bool
}

// createAtlas creates the atlas image, binds it to memory of the selected
// host-visible type, maps it, and initializes the pixel contents (all
// transparent black plus the sentinel texel).
func createAtlas(d *Device, size int, memoryTypeIndex uint32) (*Atlas, error) {
	imageInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Extent: vk.Extent3D{
			Width:  uint32(size),
			Height: uint32(size),
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Format:        vk.FormatR32g32b32a32Sfloat,
		Tiling:        vk.ImageTilingLinear,
		InitialLayout: vk.ImageLayoutUndefined,
		Usage:         vk.ImageUsageFlags(vk.ImageUsageSampledBit | vk.ImageUsageTransferDstBit),
		Samples:       vk.SampleCount1Bit,
		SharingMode:   vk.SharingModeExclusive,
	}

	var image vk.Image
	err := vk.Error(vk.CreateImage(d.VKDevice, &imageInfo, nil, &image))
	if err != nil {
		return nil, fmt.Errorf("creating atlas image: %w", err)
	}

	var mr vk.MemoryRequirements
	vk.GetImageMemoryRequirements(d.VKDevice, image, &mr)
	mr.Deref()

	typeIndex := memoryTypeIndex
	if mr.MemoryTypeBits&(1<<typeIndex) == 0 {
		// The preselected type cannot back this image; fall back to any
		// host-visible type the image accepts.
		typeIndex, err = d.PhysicalDevice.FindMemoryType(mr.MemoryTypeBits,
			vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)
		if err != nil {
			vk.DestroyImage(d.VKDevice, image, nil)
			return nil, err
		}
	}

	memory, err := d.AllocateFromType(uint64(mr.Size), typeIndex)
	if err != nil {
		vk.DestroyImage(d.VKDevice, image, nil)
		return nil, err
	}

	err = vk.Error(vk.BindImageMemory(d.VKDevice, image, memory.VKDeviceMemory, 0))
	if err != nil {
		memory.Destroy()
		vk.DestroyImage(d.VKDevice, image, nil)
		return nil, fmt.Errorf("binding atlas memory: %w", err)
	}

	ptr, err := memory.Map()
	if err != nil {
		memory.Destroy()
		vk.DestroyImage(d.VKDevice, image, nil)
		return nil, fmt.Errorf("mapping atlas memory: %w", err)
	}

	a := &Atlas{
		Device:  d,
		Size:    size,
		VKImage: image,
		Memory:  memory,
		view: PixelView{
			Width:  size,
			Height: size,
			Pix:    floatSpan(ptr, size*size*atlasChannels),
		},
	}
	a.view.Clear()

	a.VKView, err = a.createView()
	if err != nil {
		a.Destroy()
		return nil, err
	}

	return a, nil
}

func (a *Atlas) createView() (vk.ImageView, error) {
	createInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    a.VKImage,
		ViewType: vk.ImageViewType2dArray,
		Format:   vk.FormatR32g32b32a32Sfloat,
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
	err := vk.Error(vk.CreateImageView(a.Device.VKDevice, createInfo, nil, &view))
	if err != nil {
		return view, fmt.Errorf("creating atlas view: %w", err)
	}
	return view, nil
}

// View returns the mutable pixel view collaborators write through.
func (a *Atlas) View() *PixelView {
	return &a.view
}

// prepareForSampling transitions the image to shader-read-only layout. The
// barrier is recorded and submitted synchronously on the same queue used
// for draw submissions (no queue-ownership transfer is implemented), and
// executes once, not per frame.
func (a *Atlas) prepareForSampling(pool *CommandPool, queue *Queue) error {
	if a.prepared {
		return nil
	}

	cmd, err := pool.AllocateBuffer()
	if err != nil {
		return err
	}
	defer pool.FreeBuffers([]*CommandBuffer{cmd})

	if err := cmd.BeginOneTime(); err != nil {
		return err
	}

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           vk.ImageLayoutUndefined,
		NewLayout:           vk.ImageLayoutShaderReadOnlyOptimal,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               a.VKImage,
		SrcAccessMask:       vk.AccessFlags(vk.AccessHostWriteBit),
		DstAccessMask:       vk.AccessFlags(vk.AccessShaderReadBit),
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	vk.CmdPipelineBarrier(cmd.VK(),
		vk.PipelineStageFlags(vk.PipelineStageHostBit),
		vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
		0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})

	if err := cmd.End(); err != nil {
		return err
	}
	if err := queue.SubmitWaitIdle(cmd); err != nil {
		return fmt.Errorf("atlas layout transition: %w", err)
	}

	a.prepared = true
	return nil
}

func (a *Atlas) Destroy() {
	if a.VKView != vk.NullImageView {
		vk.DestroyImageView(a.Device.VKDevice, a.VKView, nil)
		a.VKView = vk.NullImageView
	}
	if a.Memory != nil {
		a.Memory.Destroy()
		a.Memory = nil
	}
	vk.DestroyImage(a.Device.VKDevice, a.VKImage, nil)
}

func floatSpan(ptr unsafe.Pointer, count int) []float32 {
	const m = 1 << 26
	return (*[m]float32)(ptr)[:count:count]
}
