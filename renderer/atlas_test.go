package renderer

import "testing"

func newTestPixelView(size int) *PixelView {
	return &PixelView{
		Width:  size,
		Height: size,
		Pix:    make([]float32, size*size*atlasChannels),
	}
}

func TestPixelViewSentinel(t *testing.T) {
	p := newTestPixelView(16)
	p.Clear()

	r, g, b, a := p.At(15, 15)
	if r != 1 || g != 1 || b != 1 || a != 1 {
		t.Errorf("sentinel texel = %v %v %v %v, want opaque white", r, g, b, a)
	}

	// Every other texel starts transparent black.
	if r, g, b, a := p.At(0, 0); r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("texel (0,0) = %v %v %v %v, want zero", r, g, b, a)
	}

	// The sentinel survives a second clear after arbitrary writes.
	p.FillRect(0, 0, 16, 16, 0.5, 0.5, 0.5, 0.5)
	p.Clear()
	if r, _, _, _ := p.At(15, 15); r != 1 {
		t.Error("sentinel lost after fill and clear")
	}
}

func TestPixelViewBounds(t *testing.T) {
	p := newTestPixelView(4)
	p.Clear()

	// Out-of-bounds writes are dropped, not wrapped.
	p.Set(-1, 0, 9, 9, 9, 9)
	p.Set(4, 0, 9, 9, 9, 9)
	p.Set(0, 4, 9, 9, 9, 9)
	for _, v := range p.Pix[:atlasChannels] {
		if v != 0 {
			t.Fatal("out-of-bounds write corrupted texel (0,0)")
		}
	}

	if r, g, b, a := p.At(100, 100); r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("out-of-bounds read = %v %v %v %v, want zero", r, g, b, a)
	}
}

func TestPixelViewFillRectClipped(t *testing.T) {
	p := newTestPixelView(8)
	p.FillRect(6, 6, 4, 4, 1, 0, 0, 1)

	if r, _, _, _ := p.At(7, 7); r != 1 {
		t.Error("in-bounds portion of clipped fill missing")
	}
	if r, _, _, _ := p.At(5, 5); r != 0 {
		t.Error("fill leaked outside requested rectangle")
	}
}

func TestPixelViewRowMajor(t *testing.T) {
	p := newTestPixelView(4)
	p.Set(2, 1, 0.25, 0.5, 0.75, 1)

	i := (1*4 + 2) * atlasChannels
	if p.Pix[i] != 0.25 || p.Pix[i+3] != 1 {
		t.Errorf("texel (2,1) not at row-major offset %d", i)
	}
}
