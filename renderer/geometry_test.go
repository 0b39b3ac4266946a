package renderer

import (
	"errors"
	"testing"
	"unsafe"

	lin "github.com/xlab/linmath"
)

func TestVertexLayout(t *testing.T) {
	if unsafe.Sizeof(Vertex{}) != 32 {
		t.Errorf("vertex size = %d, want 32", unsafe.Sizeof(Vertex{}))
	}

	attrs := vertexAttributeDescriptions()
	if len(attrs) != 3 {
		t.Fatalf("attribute count = %d, want 3", len(attrs))
	}
	if attrs[0].Offset != 0 || attrs[1].Offset != 8 || attrs[2].Offset != 16 {
		t.Errorf("attribute offsets = %d %d %d, want 0 8 16",
			attrs[0].Offset, attrs[1].Offset, attrs[2].Offset)
	}
}

func TestWriteQuadIndices(t *testing.T) {
	const capacity = 1024
	indices := make([]uint16, capacity*indicesPerQuad)
	writeQuadIndices(indices, capacity)

	cases := []struct {
		quad int
		want [6]uint16
	}{
		{0, [6]uint16{0, 1, 2, 0, 2, 3}},
		{513, [6]uint16{2052, 2053, 2054, 2052, 2054, 2055}},
		{1023, [6]uint16{4092, 4093, 4094, 4092, 4094, 4095}},
	}
	for _, c := range cases {
		got := indices[c.quad*indicesPerQuad : c.quad*indicesPerQuad+indicesPerQuad]
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Errorf("quad %d indices = %v, want %v", c.quad, got, c.want)
				break
			}
		}
	}
}

func TestQuadWriterCapacity(t *testing.T) {
	const capacity = 8
	w := NewQuadWriter(make([]Vertex, capacity*vertsPerQuad))

	if w.Capacity() != capacity {
		t.Fatalf("capacity = %d, want %d", w.Capacity(), capacity)
	}

	if _, err := w.Quads(capacity); err != nil {
		t.Fatalf("full allocation failed: %v", err)
	}
	if w.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", w.Remaining())
	}

	_, err := w.Quad()
	if !errors.Is(err, ErrOutOfCapacity) {
		t.Errorf("over-allocation error = %v, want ErrOutOfCapacity", err)
	}

	w.Reset()
	if w.Used() != 0 || w.Remaining() != capacity {
		t.Errorf("after reset used=%d remaining=%d", w.Used(), w.Remaining())
	}
	if _, err := w.Quads(capacity); err != nil {
		t.Errorf("allocation after reset failed: %v", err)
	}
}

func TestQuadWriterPartialOverflow(t *testing.T) {
	w := NewQuadWriter(make([]Vertex, 4*vertsPerQuad))

	if _, err := w.Quads(3); err != nil {
		t.Fatalf("allocating 3 of 4: %v", err)
	}
	// A request larger than what remains must fail without consuming slots.
	if _, err := w.Quads(2); !errors.Is(err, ErrOutOfCapacity) {
		t.Errorf("error = %v, want ErrOutOfCapacity", err)
	}
	if w.Used() != 3 {
		t.Errorf("failed request advanced cursor: used = %d, want 3", w.Used())
	}
	if _, err := w.Quad(); err != nil {
		t.Errorf("final slot should still allocate: %v", err)
	}
}

func near(got lin.Vec2, wantX, wantY float32) bool {
	const eps = 1e-5
	dx, dy := got[0]-wantX, got[1]-wantY
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx < eps && dy < eps
}

func TestTexturedQuadNDC(t *testing.T) {
	w := NewQuadWriter(make([]Vertex, 4*vertsPerQuad))
	w.SetExtent(640, 1040)

	err := w.TexturedQuad(
		ScreenExtent{X: 0, Y: 0, Width: 320, Height: 520},
		TextureExtent{U: 0, V: 0, Width: 0.5, Height: 0.5},
		lin.Vec4{1, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	v := w.verts[:4]
	// Top-left corner maps to (-1,-1); the quad covers half the extent so
	// the opposite corner lands at (0,0).
	if !near(v[0].Pos, -1, -1) {
		t.Errorf("top-left = %v, want {-1 -1}", v[0].Pos)
	}
	if !near(v[2].Pos, 0, 0) {
		t.Errorf("bottom-right = %v, want {0 0}", v[2].Pos)
	}
	// Clockwise winding: TL, TR, BR, BL.
	if !near(v[1].Pos, 0, -1) || !near(v[3].Pos, -1, 0) {
		t.Errorf("winding: v1=%v v3=%v", v[1].Pos, v[3].Pos)
	}
	if v[2].Tex != (lin.Vec2{0.5, 0.5}) {
		t.Errorf("bottom-right uv = %v, want {0.5 0.5}", v[2].Tex)
	}
}

func TestQuadWriterRescale(t *testing.T) {
	w := NewQuadWriter(make([]Vertex, 2*vertsPerQuad))

	w.SetExtent(1280, 720)
	if err := w.TexturedQuad(ScreenExtent{X: 640, Y: 360, Width: 0, Height: 0},
		TextureExtent{}, lin.Vec4{}); err != nil {
		t.Fatal(err)
	}
	if !near(w.verts[0].Pos, 0, 0) {
		t.Errorf("center of 1280x720 = %v, want {0 0}", w.verts[0].Pos)
	}

	// Same pixel position normalizes differently after a resize.
	w.SetExtent(640, 1040)
	if err := w.TexturedQuad(ScreenExtent{X: 640, Y: 360, Width: 0, Height: 0},
		TextureExtent{}, lin.Vec4{}); err != nil {
		t.Fatal(err)
	}
	if !near(w.verts[4].Pos, 1, 360*2.0/1040-1) {
		t.Errorf("rescaled position = %v", w.verts[4].Pos)
	}
}

func TestColoredQuadSentinelUV(t *testing.T) {
	w := NewQuadWriter(make([]Vertex, 1*vertsPerQuad))
	w.SetExtent(100, 100)

	if err := w.ColoredQuad(ScreenExtent{X: 10, Y: 10, Width: 20, Height: 20},
		lin.Vec4{1, 0, 0, 1}); err != nil {
		t.Fatal(err)
	}
	for i, v := range w.verts[:4] {
		if v.Tex != (lin.Vec2{1, 1}) {
			t.Errorf("corner %d uv = %v, want {1 1}", i, v.Tex)
		}
		if v.Color != (lin.Vec4{1, 0, 0, 1}) {
			t.Errorf("corner %d color = %v", i, v.Color)
		}
	}
}
