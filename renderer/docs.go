// Package renderer is a minimal real-time 2D quad renderer built directly on
// Vulkan. It owns the full lifecycle of the GPU resources needed to draw
// textured and colored quads to a window: instance and device setup, the
// swapchain and its framebuffers, double-buffered frame synchronization, a
// bump-allocated quad geometry arena in host-visible memory, and per-frame
// command recording.
//
// The renderer draws axis-aligned quads only, all sampling from a single
// shared texture atlas. Collaborators such as a font rasterizer write pixels
// into the atlas through PixelView and emit quads through QuadWriter; they
// never own GPU resources themselves.
//
// All state lives in an explicit Engine value, so multiple engines can
// coexist in one process. A single OS thread must drive the frame loop; GPU
// work is the only concurrency, bounded by the per-frame fences.
//
// Basic usage:
//
//	engine, err := renderer.NewEngine(renderer.DefaultConfig(), window, vertSPIRV, fragSPIRV)
//	// ...
//	engine.OnDraw(func(w *renderer.QuadWriter) error {
//	    return w.ColoredQuad(renderer.ScreenExtent{X: 10, Y: 10, Width: 100, Height: 100}, red)
//	})
//	engine.RequestRedraw()
//	err = engine.Run()
//	engine.Destroy()
package renderer
