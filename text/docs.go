// Package text rasterizes TrueType glyphs into the renderer's shared
// texture atlas and emits textured quads for strings. Glyphs are rasterized
// lazily on first use and cached; the atlas region a glyph occupies never
// moves, so cached texture coordinates stay valid for the face's lifetime.
package text
