package text

import "errors"

// ErrAtlasFull is returned when a glyph cannot be packed into the remaining
// atlas space. The atlas never grows and glyphs are never evicted.
var ErrAtlasFull = errors.New("text: glyph atlas full")

// shelfPacker places rectangles left to right in rows, opening a new row
// when the current one fills. Good enough for glyphs, which share similar
// heights within one face.
type shelfPacker struct {
	width  int
	height int
	x      int
	y      int
	rowH   int
}

// pack reserves a w by h region, returning its top-left corner. Fails when
// the rectangle does not fit in the remaining space.
func (s *shelfPacker) pack(w, h int) (int, int, bool) {
	if w > s.width || h > s.height {
		return 0, 0, false
	}
	if s.x+w > s.width {
		s.x = 0
		s.y += s.rowH
		s.rowH = 0
	}
	if s.y+h > s.height {
		return 0, 0, false
	}
	if h > s.rowH {
		s.rowH = h
	}
	x, y := s.x, s.y
	s.x += w
	return x, y, true
}
