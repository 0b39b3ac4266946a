package renderer

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
	lin "github.com/xlab/linmath"
)

// Vertex is one corner of a quad face: position in normalized device
// coordinates, texture coordinate into the shared atlas, and an RGBA color
// the fragment shader multiplies with the sampled texel. Tightly packed,
// 8 float32s.
type Vertex struct {
	Pos   lin.Vec2
	Tex   lin.Vec2
	Color lin.Vec4
}

const (
	vertsPerQuad   = 4
	indicesPerQuad = 6
)

var vertexStride = uint32(unsafe.Sizeof(Vertex{}))

func vertexBindingDescription() vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   0,
		Stride:    vertexStride,
		InputRate: vk.VertexInputRateVertex,
	}
}

func vertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{Binding: 0, Location: 0, Format: vk.FormatR32g32Sfloat, Offset: 0},
		{Binding: 0, Location: 1, Format: vk.FormatR32g32Sfloat, Offset: uint32(unsafe.Sizeof(lin.Vec2{}))},
		{Binding: 0, Location: 2, Format: vk.FormatR32g32b32a32Sfloat, Offset: uint32(unsafe.Sizeof(lin.Vec2{})) * 2},
	}
}

// writeQuadIndices fills dst with the index pattern for every quad slot up
// to capacity. Quads never share vertices, so the pattern for quad i is
// always {4i, 4i+1, 4i+2, 4i, 4i+2, 4i+3}: two triangles over four corners.
// Indices are generated once for the buffer's entire capacity and never
// regenerate.
func writeQuadIndices(dst []uint16, capacity int) {
	for i := 0; i < capacity; i++ {
		base := uint16(i * vertsPerQuad)
		j := i * indicesPerQuad
		dst[j+0] = base
		dst[j+1] = base + 1
		dst[j+2] = base + 2
		dst[j+3] = base
		dst[j+4] = base + 2
		dst[j+5] = base + 3
	}
}

// ScreenExtent is an axis-aligned rectangle in window pixel coordinates,
// origin at the top-left.
type ScreenExtent struct {
	X, Y          float32
	Width, Height float32
}

// TextureExtent is a rectangle in normalized atlas coordinates.
type TextureExtent struct {
	U, V          float32
	Width, Height float32
}

// QuadWriter is a fixed-capacity bump allocator over the quad vertex arena.
// Slots it hands out are views directly into host-visible GPU-mapped
// memory: writing a vertex is immediately visible to the next submission,
// with no staging buffer or upload step. The per-frame fence wait is what
// keeps the CPU from overwriting regions the GPU may still be reading.
//
// A QuadWriter is not safe for concurrent use.
type QuadWriter struct {
	verts  []Vertex
	used   int
	scaleX float32
	scaleY float32
}

// NewQuadWriter creates a writer over a vertex span holding a multiple of
// four vertices. The span may be GPU-mapped memory or a plain slice; the
// engine builds its writer over the mapped arena, and a writer over a plain
// slice is useful for offscreen emission in tests.
func NewQuadWriter(verts []Vertex) *QuadWriter {
	return &QuadWriter{verts: verts, scaleX: 1, scaleY: 1}
}

// SetExtent updates the pixel-to-NDC scale factors. The engine calls this
// on init and whenever the swapchain extent changes; quads emitted after a
// resize are normalized against the new extent.
func (w *QuadWriter) SetExtent(width, height uint32) {
	w.scaleX = 2.0 / float32(width)
	w.scaleY = 2.0 / float32(height)
}

// Scale returns the current {2/width, 2/height} normalization factors.
func (w *QuadWriter) Scale() (x, y float32) {
	return w.scaleX, w.scaleY
}

// Capacity returns the fixed quad capacity of the arena.
func (w *QuadWriter) Capacity() int {
	return len(w.verts) / vertsPerQuad
}

// Used returns how many quads have been written since the last Reset.
func (w *QuadWriter) Used() int {
	return w.used
}

// Remaining returns how many quad slots are left.
func (w *QuadWriter) Remaining() int {
	return w.Capacity() - w.used
}

// Reset sets the cursor back to zero. Memory contents are not erased; stale
// quads are simply excluded from the render count. The engine resets the
// writer at the start of every geometry regeneration pass, so callers
// re-emit their full quad set on each redraw.
func (w *QuadWriter) Reset() {
	w.used = 0
}

// Quad allocates one quad slot and returns its four vertices for direct
// writes. Fails with ErrOutOfCapacity when the arena is exhausted.
func (w *QuadWriter) Quad() ([]Vertex, error) {
	return w.Quads(1)
}

// Quads allocates n consecutive quad slots, returning a span of n*4
// vertices. Fails with ErrOutOfCapacity when fewer than n slots remain; the
// arena never grows.
func (w *QuadWriter) Quads(n int) ([]Vertex, error) {
	if n < 0 || w.used+n > w.Capacity() {
		return nil, ErrOutOfCapacity
	}
	base := w.used * vertsPerQuad
	w.used += n
	return w.verts[base : base+n*vertsPerQuad : base+n*vertsPerQuad], nil
}

// TexturedQuad emits a quad covering dst in screen space, sampling src from
// the atlas, tinted by color. Corners are written clockwise from the
// top-left, matching the pipeline's front-face winding.
func (w *QuadWriter) TexturedQuad(dst ScreenExtent, src TextureExtent, color lin.Vec4) error {
	v, err := w.Quad()
	if err != nil {
		return err
	}

	x0 := dst.X*w.scaleX - 1
	y0 := dst.Y*w.scaleY - 1
	x1 := (dst.X+dst.Width)*w.scaleX - 1
	y1 := (dst.Y+dst.Height)*w.scaleY - 1

	u0, v0 := src.U, src.V
	u1, v1 := src.U+src.Width, src.V+src.Height

	v[0] = Vertex{Pos: lin.Vec2{x0, y0}, Tex: lin.Vec2{u0, v0}, Color: color}
	v[1] = Vertex{Pos: lin.Vec2{x1, y0}, Tex: lin.Vec2{u1, v0}, Color: color}
	v[2] = Vertex{Pos: lin.Vec2{x1, y1}, Tex: lin.Vec2{u1, v1}, Color: color}
	v[3] = Vertex{Pos: lin.Vec2{x0, y1}, Tex: lin.Vec2{u0, v1}, Color: color}
	return nil
}

// ColoredQuad emits a solid-color quad. All four corners sample texture
// coordinate (1,1) — the atlas's reserved opaque-white sentinel texel — so
// the same pipeline renders colored and textured quads without a second
// shader path.
func (w *QuadWriter) ColoredQuad(dst ScreenExtent, color lin.Vec4) error {
	return w.TexturedQuad(dst, TextureExtent{U: 1, V: 1, Width: 0, Height: 0}, color)
}

// vertexSpan reinterprets mapped memory as a vertex slice.
func vertexSpan(ptr unsafe.Pointer, count int) []Vertex {
	const m = 1 << 24
	return (*[m]Vertex)(ptr)[:count:count]
}

// indexSpan reinterprets mapped memory as an index slice.
func indexSpan(ptr unsafe.Pointer, count int) []uint16 {
	const m = 1 << 26
	return (*[m]uint16)(ptr)[:count:count]
}
