package atlas

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func buildDefault(t *testing.T) *Atlas {
	t.Helper()
	a, err := Build(goregular.TTF, DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return a
}

func TestBuildDefault(t *testing.T) {
	a := buildDefault(t)

	if a.Size != 512 {
		t.Errorf("Size = %d, want 512", a.Size)
	}
	if len(a.Pix) != 512*512 {
		t.Errorf("len(Pix) = %d, want %d", len(a.Pix), 512*512)
	}
	if n := a.GlyphCount(); n < 150 {
		t.Errorf("GlyphCount = %d, want most of the required set", n)
	}

	m := a.Metrics
	if m.Ascent <= 0 || m.Descent <= 0 {
		t.Errorf("ascent/descent = %g/%g, want positive", m.Ascent, m.Descent)
	}
	if m.LineHeight < m.Ascent+m.Descent-1 {
		t.Errorf("LineHeight = %g, want >= ascent+descent (%g)",
			m.LineHeight, m.Ascent+m.Descent)
	}
	if m.SpaceWidth <= 0 {
		t.Errorf("SpaceWidth = %g, want positive", m.SpaceWidth)
	}
	if m.Scale != 32 {
		t.Errorf("Scale = %g, want 32", m.Scale)
	}
}

func TestSpaceIsAdvanceOnly(t *testing.T) {
	a := buildDefault(t)

	g, ok := a.Glyph(' ')
	if !ok {
		t.Fatal("space glyph missing")
	}
	if g.Width != 0 || g.Height != 0 {
		t.Errorf("space size = %gx%g, want 0x0", g.Width, g.Height)
	}
	if g.Advance <= 0 {
		t.Errorf("space advance = %g, want positive", g.Advance)
	}
	if g.Advance != a.Metrics.SpaceWidth {
		t.Errorf("space advance %g != SpaceWidth %g", g.Advance, a.Metrics.SpaceWidth)
	}
}

func TestGlyphShapes(t *testing.T) {
	a := buildDefault(t)

	for _, cp := range []rune{'A', 'g', '?', 0xE9, 0x2014, 0x0394} {
		g, ok := a.Glyph(cp)
		if !ok {
			t.Errorf("glyph U+%04X missing", cp)
			continue
		}
		if g.Width <= 0 || g.Height <= 0 {
			t.Errorf("glyph U+%04X size = %gx%g, want positive", cp, g.Width, g.Height)
			continue
		}
		if g.U0 >= g.U1 || g.V0 >= g.V1 {
			t.Errorf("glyph U+%04X UV rect (%g,%g)-(%g,%g) inverted",
				cp, g.U0, g.V0, g.U1, g.V1)
		}
		if g.U1 > 1 || g.V1 > 1 || g.U0 < 0 || g.V0 < 0 {
			t.Errorf("glyph U+%04X UV rect outside texture", cp)
		}
		if g.Advance <= 0 {
			t.Errorf("glyph U+%04X advance = %g, want positive", cp, g.Advance)
		}
		if g.YOffset < 0 || g.YOffset > a.Metrics.Ascent+a.Metrics.Descent {
			t.Errorf("glyph U+%04X YOffset = %g outside line box", cp, g.YOffset)
		}
	}
}

func TestWhiteBlock(t *testing.T) {
	a := buildDefault(t)

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if a.Pix[y*a.Size+x] != 0xFF {
				t.Fatalf("white block pixel (%d,%d) = %d, want 255",
					x, y, a.Pix[y*a.Size+x])
			}
		}
	}

	u0, v0, u1, v1 := a.WhiteUV()
	if u0 != 0 || v0 != 0 {
		t.Errorf("WhiteUV origin = (%g,%g), want (0,0)", u0, v0)
	}
	limit := float32(32) / float32(a.Size)
	if u1 <= 0 || u1 >= limit || v1 <= 0 || v1 >= limit {
		t.Errorf("WhiteUV extent = (%g,%g), want inside (0,%g)", u1, v1, limit)
	}

	// No packed glyph may overlap the reserved block.
	for _, cp := range Required() {
		g, ok := a.Glyph(cp)
		if !ok || g.Width == 0 {
			continue
		}
		x0 := int(g.U0 * float32(a.Size))
		y0 := int(g.V0 * float32(a.Size))
		if x0 < 32 && y0 < 32 {
			t.Errorf("glyph U+%04X at (%d,%d) overlaps white block", cp, x0, y0)
		}
	}
}

func TestMissingCodepointSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Codepoints = []rune{'A', 0x4E2D} // CJK, not in the test font
	a, err := Build(goregular.TTF, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := a.Glyph('A'); !ok {
		t.Error("glyph A missing")
	}
	if _, ok := a.Glyph(0x4E2D); ok {
		t.Error("unmapped codepoint should be skipped")
	}
}

func TestBuildTruncatesWhenFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 64
	a, err := Build(goregular.TTF, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if n := a.GlyphCount(); n == 0 || n >= len(Required()) {
		t.Errorf("GlyphCount = %d, want partial set in a 64px atlas", n)
	}
	if _, ok := a.Glyph(' '); !ok {
		t.Error("advance-only space should survive truncation")
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(nil, DefaultConfig()); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("empty data: err = %v, want ErrEmptyFontData", err)
	}
	if _, err := Build([]byte("not a font"), DefaultConfig()); err == nil {
		t.Error("garbage data: want parse error")
	}

	bad := DefaultConfig()
	bad.Size = 0
	if _, err := Build(goregular.TTF, bad); !errors.Is(err, ErrBadConfig) {
		t.Errorf("zero size: err = %v, want ErrBadConfig", err)
	}
	bad = DefaultConfig()
	bad.WhiteBlock = 512
	if _, err := Build(goregular.TTF, bad); !errors.Is(err, ErrBadConfig) {
		t.Errorf("oversized white block: err = %v, want ErrBadConfig", err)
	}
}

func TestRequiredSet(t *testing.T) {
	cps := Required()
	seen := make(map[rune]bool, len(cps))
	for _, cp := range cps {
		if seen[cp] {
			t.Errorf("duplicate codepoint U+%04X", cp)
		}
		seen[cp] = true
	}
	for _, cp := range []rune{' ', '~', 0xA0, 0xFF, 0x0153, 0x2014, 0x2026, 0x0394} {
		if !seen[cp] {
			t.Errorf("required set missing U+%04X", cp)
		}
	}
	if seen[0x7F] || seen[0x9F] {
		t.Error("required set must not contain control codepoints")
	}
}
