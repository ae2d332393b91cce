// Package atlas rasterizes a font into a single-channel glyph atlas.
//
// The atlas is a square coverage bitmap (one byte per pixel) packed with
// shelf-style rows, plus a per-codepoint glyph table and font-wide metrics.
// A solid white block is reserved at the origin so flat rectangles (panel
// backgrounds, markers, separators) can be drawn with the same texture and
// pipeline as text.
package atlas

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Build errors.
var (
	ErrEmptyFontData = errors.New("atlas: empty font data")
	ErrBadConfig     = errors.New("atlas: invalid config")
)

// Config controls atlas construction. The zero value is not valid; start
// from DefaultConfig.
type Config struct {
	// Size is the width and height of the square atlas in pixels.
	Size int

	// FontSize is the rasterization size in pixels (ppem at 72 DPI).
	FontSize float64

	// Padding is the gap between packed glyphs in pixels.
	Padding int

	// WhiteBlock is the side of the solid block reserved at the origin.
	// Zero disables the block.
	WhiteBlock int

	// Codepoints lists the scalars to pack. Nil means Required().
	Codepoints []rune
}

// DefaultConfig returns the standard dialogue-panel configuration:
// 512x512 atlas, 32px glyphs, 2px padding, 32px white block.
func DefaultConfig() Config {
	return Config{
		Size:       512,
		FontSize:   32,
		Padding:    2,
		WhiteBlock: 32,
	}
}

func (c Config) validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("%w: size %d", ErrBadConfig, c.Size)
	case c.FontSize <= 0:
		return fmt.Errorf("%w: font size %g", ErrBadConfig, c.FontSize)
	case c.Padding < 0:
		return fmt.Errorf("%w: padding %d", ErrBadConfig, c.Padding)
	case c.WhiteBlock < 0 || c.WhiteBlock >= c.Size:
		return fmt.Errorf("%w: white block %d in %d atlas", ErrBadConfig, c.WhiteBlock, c.Size)
	}
	return nil
}

// Atlas is an immutable packed font atlas. Pix holds Size*Size coverage
// bytes in row-major order, suitable for upload as an R8 texture.
type Atlas struct {
	Pix     []byte
	Size    int
	Metrics Metrics

	glyphs map[rune]Glyph
	whiteU float32
	whiteV float32
}

// Glyph returns the packed glyph for cp.
func (a *Atlas) Glyph(cp rune) (Glyph, bool) {
	g, ok := a.glyphs[cp]
	return g, ok
}

// GlyphCount returns the number of packed glyphs, the space glyph included.
func (a *Atlas) GlyphCount() int { return len(a.glyphs) }

// WhiteUV returns a texture-space rectangle lying inside the solid white
// block. Quads textured with it render as flat color.
func (a *Atlas) WhiteUV() (u0, v0, u1, v1 float32) {
	return 0, 0, a.whiteU, a.whiteV
}

// Build rasterizes fontData at cfg.FontSize and packs the configured
// codepoints into a new atlas.
//
// Codepoints missing from the font's cmap are skipped. Glyphs with an empty
// bounding box (the space above all) still record their advance. When the
// atlas runs out of vertical space, packing stops with a warning and the
// glyphs placed so far remain usable.
func Build(fontData []byte, cfg Config) (*Atlas, error) {
	if len(fontData) == 0 {
		return nil, ErrEmptyFontData
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("atlas: parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    cfg.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("atlas: create face: %w", err)
	}
	defer func() { _ = face.Close() }()

	fm := face.Metrics()
	ascent := fixedToFloat(fm.Ascent)

	a := &Atlas{
		Pix:  make([]byte, cfg.Size*cfg.Size),
		Size: cfg.Size,
		Metrics: Metrics{
			Ascent:     ascent,
			Descent:    fixedToFloat(fm.Descent),
			LineHeight: fixedToFloat(fm.Height),
			Scale:      cfg.FontSize,
		},
		glyphs: make(map[rune]Glyph, 256),
	}

	packer := newShelfPacker(cfg.Size, cfg.Size, cfg.Padding)
	if cfg.WhiteBlock > 0 {
		packer.reserve(cfg.WhiteBlock, cfg.WhiteBlock)
		fillWhiteBlock(a.Pix, cfg.Size, cfg.WhiteBlock)
		// Sample well inside the block so linear filtering never bleeds
		// into neighbouring glyphs.
		inset := float32(cfg.WhiteBlock) / 4 / float32(cfg.Size)
		a.whiteU, a.whiteV = inset, inset
	}

	cps := cfg.Codepoints
	if cps == nil {
		cps = Required()
	}

	var sbuf sfnt.Buffer
	full := false
	for _, cp := range cps {
		gid, err := f.GlyphIndex(&sbuf, cp)
		if err != nil || gid == 0 {
			continue
		}

		bounds, advance, ok := face.GlyphBounds(cp)
		if !ok {
			continue
		}
		adv := fixedToFloat(advance)

		minX := bounds.Min.X.Floor()
		minY := bounds.Min.Y.Floor()
		maxX := bounds.Max.X.Ceil()
		maxY := bounds.Max.Y.Ceil()
		w, h := maxX-minX, maxY-minY

		if w <= 0 || h <= 0 {
			// Advance-only glyph: the space, NBSP and friends.
			a.glyphs[cp] = Glyph{Advance: adv}
			if cp == ' ' {
				a.Metrics.SpaceWidth = adv
			}
			continue
		}
		if full {
			continue
		}

		x, y, ok := packer.alloc(w, h)
		if !ok {
			logger().Warn("atlas full, remaining glyphs skipped",
				"codepoint", fmt.Sprintf("U+%04X", cp),
				"packed", len(a.glyphs))
			full = true
			continue
		}

		mask := image.NewAlpha(image.Rect(0, 0, w, h))
		d := &font.Drawer{
			Dst:  mask,
			Src:  image.White,
			Face: face,
			Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
		}
		d.DrawString(string(cp))
		blit(a.Pix, cfg.Size, x, y, mask)

		fs := float32(a.Size)
		a.glyphs[cp] = Glyph{
			U0:      float32(x) / fs,
			V0:      float32(y) / fs,
			U1:      float32(x+w) / fs,
			V1:      float32(y+h) / fs,
			Width:   float64(w),
			Height:  float64(h),
			Advance: adv,
			XOffset: float64(minX),
			YOffset: float64(minY) + ascent,
		}
	}

	if a.Metrics.SpaceWidth == 0 {
		// Font without a space: fall back to a third of the em.
		a.Metrics.SpaceWidth = cfg.FontSize / 3
	}
	if a.Metrics.LineHeight == 0 {
		a.Metrics.LineHeight = a.Metrics.Ascent + a.Metrics.Descent
	}

	logger().Debug("atlas built",
		"size", cfg.Size,
		"fontSize", cfg.FontSize,
		"glyphs", len(a.glyphs),
		"truncated", full)
	return a, nil
}

func fillWhiteBlock(pix []byte, stride, block int) {
	for y := 0; y < block; y++ {
		row := pix[y*stride : y*stride+block]
		for i := range row {
			row[i] = 0xFF
		}
	}
}

// blit copies an alpha mask into the atlas bitmap at (x, y).
func blit(pix []byte, stride, x, y int, mask *image.Alpha) {
	w := mask.Rect.Dx()
	for r := 0; r < mask.Rect.Dy(); r++ {
		src := mask.Pix[r*mask.Stride : r*mask.Stride+w]
		copy(pix[(y+r)*stride+x:], src)
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
