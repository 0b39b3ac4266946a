package text

import (
	"errors"
	"testing"

	lin "github.com/xlab/linmath"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/kdchambers/fontana-examples/renderer"
)

func newTestView(size int) *renderer.PixelView {
	v := &renderer.PixelView{
		Width:  size,
		Height: size,
		Pix:    make([]float32, size*size*4),
	}
	v.Clear()
	return v
}

func newTestFace(t *testing.T, atlasSize int) (*Face, *renderer.PixelView) {
	t.Helper()
	view := newTestView(atlasSize)
	face, err := NewFace(goregular.TTF, 16, view)
	if err != nil {
		t.Fatal(err)
	}
	return face, view
}

func TestShelfPacker(t *testing.T) {
	p := shelfPacker{width: 32, height: 20}

	x, y, ok := p.pack(16, 8)
	if !ok || x != 0 || y != 0 {
		t.Fatalf("first pack = (%d,%d,%v)", x, y, ok)
	}
	x, y, ok = p.pack(16, 8)
	if !ok || x != 16 || y != 0 {
		t.Fatalf("second pack = (%d,%d,%v)", x, y, ok)
	}
	// Row full: wraps to a new shelf.
	x, y, ok = p.pack(16, 8)
	if !ok || x != 0 || y != 8 {
		t.Fatalf("third pack = (%d,%d,%v)", x, y, ok)
	}
	// Taller than the remaining height.
	if _, _, ok := p.pack(16, 16); ok {
		t.Error("pack past atlas height must fail")
	}
	// Wider than the atlas can ever hold.
	if _, _, ok := p.pack(64, 4); ok {
		t.Error("oversized pack must fail")
	}
}

func TestGlyphCaching(t *testing.T) {
	face, _ := newTestFace(t, 256)

	g1, err := face.Glyph('A')
	if err != nil {
		t.Fatal(err)
	}
	g2, err := face.Glyph('A')
	if err != nil {
		t.Fatal(err)
	}
	if g1 != g2 {
		t.Error("repeated lookup rasterized a second copy")
	}
	if g1.Advance <= 0 || g1.Width <= 0 || g1.Height <= 0 {
		t.Errorf("degenerate glyph: %+v", g1)
	}
	if g1.Region.U < 0 || g1.Region.U+g1.Region.Width > 1 {
		t.Errorf("glyph region out of range: %+v", g1.Region)
	}
}

func TestGlyphCoverageWritten(t *testing.T) {
	face, view := newTestFace(t, 256)

	g, err := face.Glyph('M')
	if err != nil {
		t.Fatal(err)
	}

	x0 := int(g.Region.U * float32(view.Width))
	y0 := int(g.Region.V * float32(view.Height))
	covered := false
	for yy := 0; yy < g.Height && !covered; yy++ {
		for xx := 0; xx < g.Width; xx++ {
			if _, _, _, a := view.At(x0+xx, y0+yy); a > 0 {
				covered = true
				break
			}
		}
	}
	if !covered {
		t.Error("rasterized glyph has no coverage in the atlas")
	}
}

func TestGlyphCellSizedByInk(t *testing.T) {
	face, _ := newTestFace(t, 256)

	dash, err := face.Glyph('-')
	if err != nil {
		t.Fatal(err)
	}
	tail, err := face.Glyph('g')
	if err != nil {
		t.Fatal(err)
	}
	// Cells follow the ink box, not the line height: a dash packs far
	// shorter than a descender.
	if dash.Height >= tail.Height {
		t.Errorf("dash cell %dpx tall, descender cell %dpx; want dash shorter", dash.Height, tail.Height)
	}

	up, err := face.Glyph('A')
	if err != nil {
		t.Fatal(err)
	}
	if up.BearingY >= 0 {
		t.Errorf("ink above the baseline must have a negative vertical bearing, got %d", up.BearingY)
	}
	if tail.BearingY+tail.Height <= 0 {
		t.Errorf("descender cell must extend below the baseline, got bottom %d", tail.BearingY+tail.Height)
	}
}

func TestGlyphPaddingRingClear(t *testing.T) {
	face, view := newTestFace(t, 256)

	// The one-texel padding ring around each cell must stay transparent:
	// any coverage there means the ink box outgrew the cell.
	for _, r := range "Wjg@," {
		g, err := face.Glyph(r)
		if err != nil {
			t.Fatal(err)
		}
		x0 := int(g.Region.U * float32(view.Width))
		y0 := int(g.Region.V * float32(view.Height))
		for xx := 0; xx < g.Width; xx++ {
			for _, yy := range []int{0, g.Height - 1} {
				if _, _, _, a := view.At(x0+xx, y0+yy); a != 0 {
					t.Fatalf("rune %q: ink in padding at (%d,%d)", r, xx, yy)
				}
			}
		}
		for yy := 0; yy < g.Height; yy++ {
			for _, xx := range []int{0, g.Width - 1} {
				if _, _, _, a := view.At(x0+xx, y0+yy); a != 0 {
					t.Fatalf("rune %q: ink in padding at (%d,%d)", r, xx, yy)
				}
			}
		}
	}
}

func TestSentinelSurvivesRasterization(t *testing.T) {
	face, view := newTestFace(t, 64)

	// Fill the atlas until it refuses more glyphs.
	for r := rune('!'); r < '!'+80; r++ {
		if _, err := face.Glyph(r); err != nil {
			if !errors.Is(err, ErrAtlasFull) {
				t.Fatalf("unexpected error: %v", err)
			}
			break
		}
	}

	r, g, b, a := view.At(view.Width-1, view.Height-1)
	if r != 1 || g != 1 || b != 1 || a != 1 {
		t.Errorf("sentinel texel = %v %v %v %v, want opaque white", r, g, b, a)
	}
}

func TestAtlasFull(t *testing.T) {
	face, _ := newTestFace(t, 32)

	var err error
	for r := rune('a'); r <= 'z'; r++ {
		if _, err = face.Glyph(r); err != nil {
			break
		}
	}
	if !errors.Is(err, ErrAtlasFull) {
		t.Errorf("error = %v, want ErrAtlasFull", err)
	}
}

func TestMeasure(t *testing.T) {
	face, _ := newTestFace(t, 256)

	empty, err := face.Measure("")
	if err != nil || empty != 0 {
		t.Errorf("Measure(\"\") = %d, %v", empty, err)
	}

	one, err := face.Measure("i")
	if err != nil {
		t.Fatal(err)
	}
	two, err := face.Measure("ii")
	if err != nil {
		t.Fatal(err)
	}
	if two != one*2 {
		t.Errorf("Measure(ii) = %d, want %d", two, one*2)
	}
}

func TestDrawString(t *testing.T) {
	face, _ := newTestFace(t, 256)

	w := renderer.NewQuadWriter(make([]renderer.Vertex, 16*4))
	w.SetExtent(640, 480)

	if err := face.DrawString(w, "ab cd", 10, 100, lin.Vec4{1, 1, 1, 1}); err != nil {
		t.Fatal(err)
	}
	// The space advances the pen without spending a quad slot.
	if w.Used() != 4 {
		t.Errorf("quads used = %d, want 4", w.Used())
	}
}

func TestDrawStringCapacity(t *testing.T) {
	face, _ := newTestFace(t, 256)

	w := renderer.NewQuadWriter(make([]renderer.Vertex, 2*4))
	w.SetExtent(640, 480)
	err := face.DrawString(w, "abcdef", 0, 50, lin.Vec4{1, 1, 1, 1})
	if !errors.Is(err, renderer.ErrOutOfCapacity) {
		t.Errorf("error = %v, want renderer.ErrOutOfCapacity", err)
	}
	if w.Used() != 2 {
		t.Errorf("quads written before failure = %d, want 2", w.Used())
	}
}
