package renderer

import (
	"fmt"
	"time"

	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
	lin "github.com/xlab/linmath"
)

const validationLayerName = "VK_LAYER_KHRONOS_validation"

// Engine owns every Vulkan object the renderer needs, created once in
// dependency order and destroyed in reverse. There is no global state; an
// Engine is an explicit context passed around by the caller.
//
// The engine draws nothing on its own. The application registers an OnDraw
// callback that re-emits its full quad set through the QuadWriter; the
// callback runs only when a redraw has been requested, and the resulting
// geometry is presented every frame until the next redraw.
type Engine struct {
	Config Config

	Window    *glfw.Window
	Instance  *Instance
	VKSurface vk.Surface

	PhysicalDevice *PhysicalDevice
	Device         *Device

	// One queue serves both graphics submission and presentation.
	Queue       *Queue
	CommandPool *CommandPool

	// memoryTypeIndex backs both the geometry buffer and the atlas.
	memoryTypeIndex uint32

	// Combined geometry buffer: the index range sits at offset 0 and is
	// written once; the vertex arena follows at vertexBase.
	geometryBuffer *Buffer
	geometryMemory *DeviceMemory
	vertexBase     uint64
	writer         *QuadWriter

	atlas   *Atlas
	sampler vk.Sampler

	descriptorLayout vk.DescriptorSetLayout
	descriptorPool   vk.DescriptorPool
	descriptorSets   []vk.DescriptorSet

	renderPass     vk.RenderPass
	pipelineLayout vk.PipelineLayout
	pipeline       vk.Pipeline

	swapchain      *Swapchain
	images         []vk.Image
	imageViews     []vk.ImageView
	framebuffers   []vk.Framebuffer
	commandBuffers []*CommandBuffer

	imageAvailable []vk.Semaphore
	renderFinished []vk.Semaphore
	inFlight       []vk.Fence
	// imagesInFlight maps each swapchain image to the slot fence of its
	// last submission, so re-recording that image's command buffer can
	// wait for the submission to retire even when it came from another
	// slot. NullFence marks an image never yet submitted.
	imagesInFlight []vk.Fence
	frameSlot      int

	redraw  bool
	resized bool

	// Single registration slot; a later OnResize replaces the earlier one.
	onResize func(width, height uint32)
	onDraw   func(*QuadWriter) error
}

// NewEngine brings up the full rendering context against an existing GLFW
// window: driver, instance, surface, device, geometry arena, atlas,
// pipeline, swapchain and frame synchronization. The SPIR-V blobs are the
// vertex and fragment stages of the one pipeline the engine ever uses.
//
// Initialization is strict: any missing capability fails with one of the
// package's sentinel errors rather than falling back.
func NewEngine(cfg Config, window *glfw.Window, vertSPIRV, fragSPIRV []byte) (*Engine, error) {
	cfg.fillDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	e := &Engine{Config: cfg, Window: window}
	if err := e.init(vertSPIRV, fragSPIRV); err != nil {
		e.Destroy()
		return nil, err
	}
	return e, nil
}

func (e *Engine) init(vertSPIRV, fragSPIRV []byte) error {
	if err := InitDriver(glfw.GetVulkanGetInstanceProcAddress()); err != nil {
		return err
	}

	available, err := SupportedInstanceExtensions()
	if err != nil {
		return err
	}
	extensions, err := selectSurfaceExtensions(available)
	if err != nil {
		return err
	}

	var layers []string
	if e.Config.Validation {
		supported, err := SupportedLayers()
		if err != nil {
			return err
		}
		for _, l := range supported {
			if l == validationLayerName {
				layers = append(layers, validationLayerName)
			}
		}
		if len(layers) == 0 {
			logger().Warn("validation requested but layer unavailable", "layer", validationLayerName)
		}
	}

	e.Instance, err = createInstance(e.Config.AppName, extensions, layers)
	if err != nil {
		return err
	}

	surface, err := e.Window.CreateWindowSurface(e.Instance.VKInstance, nil)
	if err != nil {
		return fmt.Errorf("creating window surface: %w", err)
	}
	e.VKSurface = vk.SurfaceFromPointer(surface)

	if err := e.selectDevice(); err != nil {
		return err
	}

	e.CommandPool, err = e.Device.CreateCommandPool(e.Queue.QueueFamily)
	if err != nil {
		return err
	}

	if err := e.createGeometry(); err != nil {
		return err
	}

	e.atlas, err = createAtlas(e.Device, e.Config.AtlasSize, e.memoryTypeIndex)
	if err != nil {
		return err
	}
	if err := e.atlas.prepareForSampling(e.CommandPool, e.Queue); err != nil {
		return err
	}

	e.sampler, err = createAtlasSampler(e.Device)
	if err != nil {
		return err
	}
	e.descriptorLayout, err = createDescriptorSetLayout(e.Device)
	if err != nil {
		return err
	}

	e.swapchain, err = e.Device.createSwapchain(e.VKSurface, e.windowExtent(), nil)
	if err != nil {
		return err
	}
	e.writer.SetExtent(e.swapchain.Extent.Width, e.swapchain.Extent.Height)

	e.renderPass, err = createRenderPass(e.Device, e.swapchain.Format)
	if err != nil {
		return err
	}
	e.pipelineLayout, err = createPipelineLayout(e.Device, e.descriptorLayout)
	if err != nil {
		return err
	}

	vert, err := e.Device.CreateShaderModule(vertSPIRV)
	if err != nil {
		return err
	}
	defer vert.Destroy()
	frag, err := e.Device.CreateShaderModule(fragSPIRV)
	if err != nil {
		return err
	}
	defer frag.Destroy()

	e.pipeline, err = createQuadPipeline(e.Device, e.pipelineLayout, e.renderPass, vert, frag)
	if err != nil {
		return err
	}

	if err := e.createPerImageObjects(); err != nil {
		return err
	}
	if err := e.createSyncObjects(); err != nil {
		return err
	}

	logger().Info("engine initialized",
		"device", e.PhysicalDevice.DeviceName,
		"quads", e.Config.MaxQuads,
		"atlas", e.Config.AtlasSize)

	return nil
}

// selectDevice picks the first physical device offering the swapchain
// extension and a queue family that is both graphics-capable and able to
// present to the surface, then builds the logical device, its single queue,
// and the host memory type selection.
func (e *Engine) selectDevice() error {
	deviceExtensions := []string{"VK_KHR_swapchain"}

	physicalDevices, err := e.Instance.PhysicalDevices()
	if err != nil {
		return fmt.Errorf("enumerating physical devices: %w", err)
	}

	var memoryErr error
	for _, pd := range physicalDevices {
		ok, err := pd.SupportsExtensions(deviceExtensions)
		if err != nil || !ok {
			continue
		}

		families, err := pd.QueueFamilies()
		if err != nil {
			continue
		}
		usable := families.FilterGraphicsAndPresent(e.VKSurface)
		if len(usable) == 0 {
			continue
		}

		memoryType, err := pd.selectHostMemoryType()
		if err != nil {
			memoryErr = err
			continue
		}

		device, err := pd.CreateLogicalDevice(usable[0], deviceExtensions)
		if err != nil {
			return err
		}

		e.PhysicalDevice = pd
		e.Device = device
		e.Queue = device.GetQueue(usable[0])
		e.memoryTypeIndex = memoryType
		logger().Info("physical device selected", "name", pd.DeviceName)
		return nil
	}
	// A device that qualified on everything but the memory floor reports
	// the memory error, which is the more precise diagnosis.
	if memoryErr != nil {
		return memoryErr
	}
	return ErrNoSuitablePhysicalDevice
}

// createGeometry allocates one host-mapped buffer holding both the static
// index range and the vertex arena, writes the full index pattern once, and
// builds the QuadWriter over the mapped vertex span.
func (e *Engine) createGeometry() error {
	indexBytes := uint64(e.Config.MaxQuads * indicesPerQuad * 2)
	vertexBytes := uint64(e.Config.MaxQuads*vertsPerQuad) * uint64(vertexStride)

	e.vertexBase = alignUp(indexBytes, uint64(vertexStride))
	total := e.vertexBase + vertexBytes

	buffer, err := e.Device.CreateBuffer(total,
		vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit|vk.BufferUsageIndexBufferBit))
	if err != nil {
		return err
	}
	e.geometryBuffer = buffer

	mr := buffer.VKMemoryRequirements()
	mr.Deref()
	typeIndex := e.memoryTypeIndex
	if mr.MemoryTypeBits&(1<<typeIndex) == 0 {
		typeIndex, err = e.Device.PhysicalDevice.FindMemoryType(mr.MemoryTypeBits,
			vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)
		if err != nil {
			return err
		}
	}

	e.geometryMemory, err = e.Device.AllocateFromType(uint64(mr.Size), typeIndex)
	if err != nil {
		return err
	}
	if err := buffer.Bind(e.geometryMemory, 0); err != nil {
		return err
	}

	ptr, err := e.geometryMemory.Map()
	if err != nil {
		return err
	}

	indices := indexSpan(ptr, e.Config.MaxQuads*indicesPerQuad)
	writeQuadIndices(indices, e.Config.MaxQuads)

	vertexPtr := unsafeAdd(ptr, e.vertexBase)
	e.writer = NewQuadWriter(vertexSpan(vertexPtr, e.Config.MaxQuads*vertsPerQuad))

	return nil
}

// createPerImageObjects builds everything sized by the swapchain image
// count: views, framebuffers, command buffers, descriptor pool and sets.
func (e *Engine) createPerImageObjects() error {
	images, err := e.swapchain.GetImages()
	if err != nil {
		return err
	}
	e.images = images

	e.imageViews = make([]vk.ImageView, len(images))
	for i, image := range images {
		e.imageViews[i], err = e.swapchain.CreateImageView(image)
		if err != nil {
			return err
		}
	}

	e.framebuffers = make([]vk.Framebuffer, len(images))
	for i, view := range e.imageViews {
		createInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      e.renderPass,
			AttachmentCount: 1,
			PAttachments:    []vk.ImageView{view},
			Width:           e.swapchain.Extent.Width,
			Height:          e.swapchain.Extent.Height,
			Layers:          1,
		}
		err = vk.Error(vk.CreateFramebuffer(e.Device.VKDevice, &createInfo, nil, &e.framebuffers[i]))
		if err != nil {
			return fmt.Errorf("creating framebuffer %d: %w", i, err)
		}
	}

	e.commandBuffers, err = e.CommandPool.AllocateBuffers(len(images))
	if err != nil {
		return err
	}

	e.imagesInFlight = make([]vk.Fence, len(images))
	for i := range e.imagesInFlight {
		e.imagesInFlight[i] = vk.NullFence
	}

	e.descriptorPool, err = createDescriptorPool(e.Device, len(images))
	if err != nil {
		return err
	}
	e.descriptorSets, err = allocateAtlasDescriptorSets(e.Device, e.descriptorPool,
		e.descriptorLayout, len(images), e.atlas.VKView, e.sampler)
	return err
}

func (e *Engine) destroyPerImageObjects() {
	if e.descriptorPool != vk.NullDescriptorPool {
		vk.DestroyDescriptorPool(e.Device.VKDevice, e.descriptorPool, nil)
		e.descriptorPool = vk.NullDescriptorPool
		e.descriptorSets = nil
	}
	if len(e.commandBuffers) > 0 {
		e.CommandPool.FreeBuffers(e.commandBuffers)
		e.commandBuffers = nil
	}
	e.imagesInFlight = nil
	for _, fb := range e.framebuffers {
		vk.DestroyFramebuffer(e.Device.VKDevice, fb, nil)
	}
	e.framebuffers = nil
	for _, view := range e.imageViews {
		vk.DestroyImageView(e.Device.VKDevice, view, nil)
	}
	e.imageViews = nil
	e.images = nil
}

func (e *Engine) createSyncObjects() error {
	n := e.Config.FramesInFlight
	e.imageAvailable = make([]vk.Semaphore, n)
	e.renderFinished = make([]vk.Semaphore, n)
	e.inFlight = make([]vk.Fence, n)

	var err error
	for i := 0; i < n; i++ {
		if e.imageAvailable[i], err = e.Device.VKCreateSemaphore(); err != nil {
			return err
		}
		if e.renderFinished[i], err = e.Device.VKCreateSemaphore(); err != nil {
			return err
		}
		if e.inFlight[i], err = e.Device.VKCreateFence(true); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) destroySyncObjects() {
	for _, s := range e.imageAvailable {
		e.Device.VKDestroySemaphore(s)
	}
	for _, s := range e.renderFinished {
		e.Device.VKDestroySemaphore(s)
	}
	for _, f := range e.inFlight {
		e.Device.VKDestroyFence(f)
	}
	e.imageAvailable = nil
	e.renderFinished = nil
	e.inFlight = nil
}

func (e *Engine) windowExtent() vk.Extent2D {
	width, height := e.Window.GetFramebufferSize()
	return vk.Extent2D{Width: uint32(width), Height: uint32(height)}
}

// Quads returns the writer applications emit geometry through. Valid for
// the engine's whole lifetime; slots it hands out become stale after the
// next Reset.
func (e *Engine) Quads() *QuadWriter {
	return e.writer
}

// Atlas returns the mutable pixel view onto the shared texture surface.
// After writing, request a redraw so the new texels are sampled.
func (e *Engine) Atlas() *PixelView {
	return e.atlas.View()
}

// OnDraw registers the geometry regeneration callback. The callback runs
// with the writer already reset and must re-emit the full quad set.
func (e *Engine) OnDraw(fn func(*QuadWriter) error) {
	e.onDraw = fn
}

// OnResize registers the resize observer. A single slot: registering again
// replaces the previous observer.
func (e *Engine) OnResize(fn func(width, height uint32)) {
	e.onResize = fn
}

// RequestRedraw marks the quad set dirty. The next Run iteration invokes
// OnDraw before drawing; without a request, previously emitted geometry is
// presented unchanged.
func (e *Engine) RequestRedraw() {
	e.redraw = true
}

// NotifyResized marks the swapchain stale. Wire this to the window's
// framebuffer-size callback; the next frame recreates the swapchain before
// drawing.
func (e *Engine) NotifyResized() {
	e.resized = true
}

// RecreateSwapchain synchronously rebuilds the swapchain and everything
// sized by it. The render pass and pipeline survive: the pass depends only
// on the surface format, and viewport and scissor are dynamic state.
func (e *Engine) RecreateSwapchain() error {
	e.Device.WaitIdle()

	e.destroyPerImageObjects()

	old := e.swapchain
	next, err := e.Device.createSwapchain(e.VKSurface, e.windowExtent(), old)
	old.Destroy()
	if err != nil {
		return err
	}
	e.swapchain = next

	if err := e.createPerImageObjects(); err != nil {
		return err
	}

	e.writer.SetExtent(next.Extent.Width, next.Extent.Height)
	e.frameSlot = 0
	e.resized = false
	e.redraw = true

	if e.onResize != nil {
		e.onResize(next.Extent.Width, next.Extent.Height)
	}

	logger().Debug("swapchain recreated",
		"width", next.Extent.Width, "height", next.Extent.Height)
	return nil
}

// recordCommandBuffer re-records the command buffer for one swapchain image
// from scratch: one render pass instance, the quad pipeline, the shared
// geometry buffer, and a single indexed draw covering every quad written
// since the last Reset.
func (e *Engine) recordCommandBuffer(cmd *CommandBuffer, imageIndex uint32) error {
	if err := cmd.Reset(); err != nil {
		return err
	}
	if err := cmd.Begin(); err != nil {
		return err
	}

	clear := e.Config.ClearColor
	clearValues := []vk.ClearValue{
		vk.NewClearValue([]float32{clear[0], clear[1], clear[2], clear[3]}),
	}

	beginInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  e.renderPass,
		Framebuffer: e.framebuffers[imageIndex],
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{},
			Extent: e.swapchain.Extent,
		},
		ClearValueCount: 1,
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(cmd.VK(), &beginInfo, vk.SubpassContentsInline)

	vk.CmdBindPipeline(cmd.VK(), vk.PipelineBindPointGraphics, e.pipeline)

	viewport := vk.Viewport{
		Width:    float32(e.swapchain.Extent.Width),
		Height:   float32(e.swapchain.Extent.Height),
		MaxDepth: 1.0,
	}
	vk.CmdSetViewport(cmd.VK(), 0, 1, []vk.Viewport{viewport})

	scissor := vk.Rect2D{Extent: e.swapchain.Extent}
	vk.CmdSetScissor(cmd.VK(), 0, 1, []vk.Rect2D{scissor})

	vk.CmdBindDescriptorSets(cmd.VK(), vk.PipelineBindPointGraphics, e.pipelineLayout,
		0, 1, []vk.DescriptorSet{e.descriptorSets[imageIndex]}, 0, nil)

	vk.CmdBindVertexBuffers(cmd.VK(), 0, 1,
		[]vk.Buffer{e.geometryBuffer.VKBuffer}, []vk.DeviceSize{vk.DeviceSize(e.vertexBase)})
	vk.CmdBindIndexBuffer(cmd.VK(), e.geometryBuffer.VKBuffer, 0, vk.IndexTypeUint16)

	if e.writer.Used() > 0 {
		vk.CmdDrawIndexed(cmd.VK(), uint32(e.writer.Used()*indicesPerQuad), 1, 0, 0, 0)
	}

	vk.CmdEndRenderPass(cmd.VK())
	return cmd.End()
}

// DrawFrame runs one iteration of the frame loop: wait on the current
// slot's fence, acquire an image, re-record that image's command buffer,
// submit, present, and advance the slot. A stale or suboptimal swapchain is
// recreated synchronously and the frame dropped; any other failure is fatal
// and returned as a distinct error kind.
func (e *Engine) DrawFrame() error {
	slot := e.frameSlot

	if err := e.Device.WaitForFence(e.inFlight[slot]); err != nil {
		return fmt.Errorf("waiting for frame fence: %w", err)
	}

	var imageIndex uint32
	res := vk.AcquireNextImage(e.Device.VKDevice, e.swapchain.VKSwapchain,
		vk.MaxUint64, e.imageAvailable[slot], vk.NullFence, &imageIndex)
	switch classifyFrameResult(res) {
	case frameRecreate:
		return e.RecreateSwapchain()
	case frameFatal:
		return fatalFrameError("acquiring swapchain image", res)
	}

	// The acquired image's command buffer may have last been submitted
	// from another slot; wait for that submission to retire before
	// resetting and re-recording it.
	if e.imagesInFlight[imageIndex] != vk.NullFence {
		if err := e.Device.WaitForFence(e.imagesInFlight[imageIndex]); err != nil {
			return fmt.Errorf("waiting for image fence: %w", err)
		}
	}
	e.imagesInFlight[imageIndex] = e.inFlight[slot]

	if err := e.Device.ResetFence(e.inFlight[slot]); err != nil {
		return fmt.Errorf("resetting frame fence: %w", err)
	}

	if err := e.recordCommandBuffer(e.commandBuffers[imageIndex], imageIndex); err != nil {
		return fmt.Errorf("recording frame: %w", err)
	}

	submitInfo := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{e.imageAvailable[slot]},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{e.commandBuffers[imageIndex].VKCommandBuffer},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{e.renderFinished[slot]},
	}}

	res = vk.QueueSubmit(e.Queue.VKQueue, 1, submitInfo, e.inFlight[slot])
	if res != vk.Success {
		return fatalFrameError("submitting frame", res)
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{e.renderFinished[slot]},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{e.swapchain.VKSwapchain},
		PImageIndices:      []uint32{imageIndex},
	}

	res = vk.QueuePresent(e.Queue.VKQueue, &presentInfo)
	switch classifyFrameResult(res) {
	case frameRecreate:
		return e.RecreateSwapchain()
	case frameFatal:
		return fatalFrameError("presenting frame", res)
	}

	e.frameSlot = (slot + 1) % e.Config.FramesInFlight
	return nil
}

// Run drives the loop until the window closes or a fatal error occurs:
// poll events, recreate on resize, regenerate geometry when a redraw is
// pending, draw, then sleep out the remainder of the frame interval.
func (e *Engine) Run() error {
	interval := e.Config.frameInterval()

	for !e.Window.ShouldClose() {
		start := time.Now()
		glfw.PollEvents()

		extent := e.windowExtent()
		if extent.Width == 0 || extent.Height == 0 {
			// Minimized; nothing to present.
			time.Sleep(interval)
			continue
		}

		if e.resized {
			if err := e.RecreateSwapchain(); err != nil {
				return err
			}
		}

		if e.redraw && e.onDraw != nil {
			// The vertex arena is a single host-mapped region shared by
			// every in-flight frame. All pending submissions must retire
			// before the CPU rewrites it, or the rewrite races the GPU's
			// vertex fetch on the other slot.
			if err := e.Device.WaitForAllFences(e.inFlight); err != nil {
				return fmt.Errorf("draining in-flight frames: %w", err)
			}
			e.writer.Reset()
			if err := e.onDraw(e.writer); err != nil {
				return fmt.Errorf("regenerating geometry: %w", err)
			}
			e.redraw = false
		}

		if err := e.DrawFrame(); err != nil {
			return err
		}

		if elapsed := time.Since(start); elapsed < interval {
			time.Sleep(interval - elapsed)
		}
	}

	e.Device.WaitIdle()
	return nil
}

// Destroy tears the engine down in reverse dependency order. Safe to call
// on a partially initialized engine.
func (e *Engine) Destroy() {
	if e.Device != nil {
		e.Device.WaitIdle()

		e.destroySyncObjects()
		e.destroyPerImageObjects()

		if e.pipeline != vk.NullPipeline {
			vk.DestroyPipeline(e.Device.VKDevice, e.pipeline, nil)
			e.pipeline = vk.NullPipeline
		}
		if e.pipelineLayout != vk.NullPipelineLayout {
			vk.DestroyPipelineLayout(e.Device.VKDevice, e.pipelineLayout, nil)
			e.pipelineLayout = vk.NullPipelineLayout
		}
		if e.renderPass != vk.NullRenderPass {
			vk.DestroyRenderPass(e.Device.VKDevice, e.renderPass, nil)
			e.renderPass = vk.NullRenderPass
		}
		if e.swapchain != nil {
			e.swapchain.Destroy()
			e.swapchain = nil
		}
		if e.descriptorLayout != vk.NullDescriptorSetLayout {
			vk.DestroyDescriptorSetLayout(e.Device.VKDevice, e.descriptorLayout, nil)
			e.descriptorLayout = vk.NullDescriptorSetLayout
		}
		if e.sampler != vk.NullSampler {
			vk.DestroySampler(e.Device.VKDevice, e.sampler, nil)
			e.sampler = vk.NullSampler
		}
		if e.atlas != nil {
			e.atlas.Destroy()
			e.atlas = nil
		}
		if e.geometryMemory != nil {
			e.geometryMemory.Destroy()
			e.geometryMemory = nil
		}
		if e.geometryBuffer != nil {
			e.geometryBuffer.Destroy()
			e.geometryBuffer = nil
		}
		if e.CommandPool != nil {
			e.CommandPool.Destroy()
			e.CommandPool = nil
		}
		e.Device.Destroy()
		e.Device = nil
	}
	if e.Instance != nil {
		if e.VKSurface != vk.NullSurface {
			vk.DestroySurface(e.Instance.VKInstance, e.VKSurface, nil)
			e.VKSurface = vk.NullSurface
		}
		e.Instance.Destroy()
		e.Instance = nil
	}
}

// RGBA builds a vertex color vector from 8-bit channel values.
func RGBA(r, g, b, a uint8) lin.Vec4 {
	return lin.Vec4{
		float32(r) / 255.0,
		float32(g) / 255.0,
		float32(b) / 255.0,
		float32(a) / 255.0,
	}
}
