package text

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	lin "github.com/xlab/linmath"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/kdchambers/fontana-examples/renderer"
)

// Glyph is one rasterized character resident in the atlas.
type Glyph struct {
	// Region locates the glyph in normalized atlas coordinates.
	Region renderer.TextureExtent

	// Width and Height are the glyph cell size in pixels. The cell is
	// sized by the glyph's ink bounds, not its advance, so overhanging
	// ink is never clipped.
	Width  int
	Height int

	// BearingX and BearingY offset the cell's top-left corner from the
	// pen position on the baseline, in pixels. BearingY is negative for
	// ink above the baseline.
	BearingX int
	BearingY int

	// Advance is the pen movement after this glyph, in pixels.
	Advance int
}

// Face binds a TrueType font at a fixed pixel size to a region of the
// renderer's atlas. Not safe for concurrent use.
type Face struct {
	face    font.Face
	view    *renderer.PixelView
	packer  shelfPacker
	glyphs  map[rune]*Glyph
	ascent  int
	descent int
	padding int
}

// NewFace parses TTF data and prepares a face rendering at pixelSize. The
// bottom row of the atlas is left untouched so the reserved sentinel texel
// can never be overwritten by glyph coverage.
func NewFace(ttf []byte, pixelSize float64, view *renderer.PixelView) (*Face, error) {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	face := truetype.NewFace(parsed, &truetype.Options{
		Size:    pixelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	metrics := face.Metrics()
	return &Face{
		face: face,
		view: view,
		packer: shelfPacker{
			width:  view.Width,
			height: view.Height - 1,
		},
		glyphs:  make(map[rune]*Glyph),
		ascent:  metrics.Ascent.Ceil(),
		descent: metrics.Descent.Ceil(),
		padding: 1,
	}, nil
}

// LineHeight returns the baseline-to-baseline distance in pixels.
func (f *Face) LineHeight() int {
	return f.ascent + f.descent
}

// Ascent returns the distance from the baseline to the top of the tallest
// glyph cell.
func (f *Face) Ascent() int {
	return f.ascent
}

// Glyph returns the atlas-resident glyph for r, rasterizing and packing it
// on first use. Fails with ErrAtlasFull when no atlas space remains.
func (f *Face) Glyph(r rune) (*Glyph, error) {
	if g, ok := f.glyphs[r]; ok {
		return g, nil
	}

	g, err := f.rasterize(r)
	if err != nil {
		return nil, err
	}
	f.glyphs[r] = g
	return g, nil
}

// rasterize draws one rune into an alpha image sized by the glyph's ink
// bounds, packs a cell for it, and writes coverage into the atlas as white
// texels with the coverage in the alpha channel. Tinting happens in the
// fragment shader via the vertex color.
func (f *Face) rasterize(r rune) (*Glyph, error) {
	bounds, adv26, ok := f.face.GlyphBounds(r)
	if !ok {
		bounds, adv26, _ = f.face.GlyphBounds('?')
	}
	advance := adv26.Ceil()
	if advance < 1 {
		advance = 1
	}

	// The ink box can extend past the advance (overhangs, descenders),
	// so the cell is sized from the bounds with a padding ring around it.
	minX := bounds.Min.X.Floor()
	minY := bounds.Min.Y.Floor()
	inkW := bounds.Max.X.Ceil() - minX
	inkH := bounds.Max.Y.Ceil() - minY
	if inkW < 1 {
		inkW = 1
	}
	if inkH < 1 {
		inkH = 1
	}
	width := inkW + f.padding*2
	height := inkH + f.padding*2

	img := image.NewAlpha(image.Rect(0, 0, width, height))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Alpha{A: 255}),
		Face: f.face,
		Dot: fixed.Point26_6{
			X: fixed.I(f.padding - minX),
			Y: fixed.I(f.padding - minY),
		},
	}
	drawer.DrawString(string(r))

	x, y, ok := f.packer.pack(width, height)
	if !ok {
		return nil, fmt.Errorf("%w: rune %q", ErrAtlasFull, r)
	}

	for yy := 0; yy < height; yy++ {
		for xx := 0; xx < width; xx++ {
			a := float32(img.AlphaAt(xx, yy).A) / 255.0
			f.view.Set(x+xx, y+yy, 1, 1, 1, a)
		}
	}

	aw := float32(f.view.Width)
	ah := float32(f.view.Height)
	return &Glyph{
		Region: renderer.TextureExtent{
			U:      float32(x) / aw,
			V:      float32(y) / ah,
			Width:  float32(width) / aw,
			Height: float32(height) / ah,
		},
		Width:    width,
		Height:   height,
		BearingX: minX - f.padding,
		BearingY: minY - f.padding,
		Advance:  advance,
	}, nil
}

// Measure returns the pixel width of s without emitting anything.
func (f *Face) Measure(s string) (int, error) {
	width := 0
	for _, r := range s {
		g, err := f.Glyph(r)
		if err != nil {
			return 0, err
		}
		width += g.Advance
	}
	return width, nil
}

// DrawString emits one textured quad per visible rune of s through w. The
// point (x, y) is the baseline origin of the first glyph in window pixels.
// Capacity exhaustion in the quad arena propagates as
// renderer.ErrOutOfCapacity; quads emitted before the failure remain
// written.
func (f *Face) DrawString(w *renderer.QuadWriter, s string, x, y float32, col lin.Vec4) error {
	pen := x

	for _, r := range s {
		g, err := f.Glyph(r)
		if err != nil {
			return err
		}
		if r != ' ' {
			dst := renderer.ScreenExtent{
				X:      pen + float32(g.BearingX),
				Y:      y + float32(g.BearingY),
				Width:  float32(g.Width),
				Height: float32(g.Height),
			}
			if err := w.TexturedQuad(dst, g.Region, col); err != nil {
				return err
			}
		}
		pen += float32(g.Advance)
	}
	return nil
}
