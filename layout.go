package storyglyph

import (
	"strings"

	"github.com/storyglyph/storyglyph/atlas"
	"github.com/storyglyph/storyglyph/codepoint"
)

// measure returns the advance width of s in screen pixels at the given
// scale. Codepoints missing from the atlas fall back to the '?' glyph, or
// to the space width when the font has no '?' either.
func measure(a *atlas.Atlas, s string, scale float64) float64 {
	w := 0.0
	for i := 0; i < len(s); {
		var cp rune
		cp, i = codepoint.Decode(s, i)
		if cp == ' ' {
			w += a.Metrics.SpaceWidth
			continue
		}
		g, ok := a.Glyph(cp)
		if !ok {
			if g, ok = a.Glyph('?'); !ok {
				w += a.Metrics.SpaceWidth
				continue
			}
		}
		w += g.Advance
	}
	return w * scale
}

// wrap splits s into lines no wider than maxWidth using greedy word
// placement. An explicit '\n' always breaks; runs of newlines collapse
// rather than producing blank lines. A single word wider than maxWidth
// gets a line of its own rather than being split. Space runs inside a
// line keep their advances. wrap never fails; it returns at least one
// line.
func wrap(a *atlas.Atlas, s string, maxWidth, scale float64) []string {
	var lines []string
	for _, seg := range strings.Split(s, "\n") {
		if seg == "" {
			continue
		}
		words := strings.Split(seg, " ")
		cur := words[0]
		for _, word := range words[1:] {
			test := cur + " " + word
			if measure(a, test, scale) <= maxWidth {
				cur = test
				continue
			}
			lines = append(lines, cur)
			cur = word
		}
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// drawText emits glyph quads for s starting at pen position (x, y), where y
// is the top of the line box. Returns the final pen x.
func drawText(f *frame, a *atlas.Atlas, s string, x, y, scale float64, c Color) float64 {
	pen := x
	for i := 0; i < len(s); {
		var cp rune
		cp, i = codepoint.Decode(s, i)
		if cp == ' ' {
			pen += a.Metrics.SpaceWidth * scale
			continue
		}
		g, ok := a.Glyph(cp)
		if !ok {
			if g, ok = a.Glyph('?'); !ok {
				pen += a.Metrics.SpaceWidth * scale
				continue
			}
		}
		if g.Width > 0 {
			f.addQuad(
				pen+g.XOffset*scale, y+g.YOffset*scale,
				g.Width*scale, g.Height*scale,
				g.U0, g.V0, g.U1, g.V1, c)
		}
		pen += g.Advance * scale
	}
	return pen
}

// speakerMarkerGap separates the marker quad from the speaker label.
const speakerMarkerGap = 8.0

// renderEntry draws one entry at vertical offset y and returns the y below
// it. textX/textW bound the body column; choices are indented inside it.
// The layout here must stay in step with entryHeight.
func renderEntry(f *frame, a *atlas.Atlas, st *Style, e Entry, textX, textW, y float64, hovered bool) float64 {
	scale := st.TextScale
	lineAdv := a.Metrics.LineHeight*scale + st.LineSpacing

	if e.Speaker != "" {
		sscale := scale * st.SpeakerScale
		speakerAdv := a.Metrics.LineHeight*sscale + st.LineSpacing

		size := a.Metrics.LineHeight * sscale * 0.40
		u0, v0, u1, v1 := a.WhiteUV()
		f.addQuad(
			textX-speakerMarkerGap-size, y+(speakerAdv-size)/2,
			size, size,
			u0, v0, u1, v1, e.SpeakerColor)

		drawText(f, a, e.Speaker, textX, y, sscale, e.SpeakerColor)
		y += speakerAdv
	}

	x, w := textX, textW
	if indented(e.Kind) {
		x += st.ChoiceIndent
		w -= st.ChoiceIndent
	}

	c := st.bodyColor(e.Kind, hovered)
	for _, line := range wrap(a, e.Text, w, scale) {
		drawText(f, a, line, x, y, scale, c)
		y += lineAdv
	}
	return y + st.LineSpacing*2
}

// entryHeight computes the vertical extent renderEntry would consume for e,
// without emitting quads. Used for entries scrolled far above the viewport
// and for choice hit-test spans.
func entryHeight(a *atlas.Atlas, st *Style, e Entry, textW float64) float64 {
	scale := st.TextScale
	lineAdv := a.Metrics.LineHeight*scale + st.LineSpacing

	w := textW
	if indented(e.Kind) {
		w -= st.ChoiceIndent
	}
	h := float64(len(wrap(a, e.Text, w, scale)))*lineAdv + st.LineSpacing*2
	if e.Speaker != "" {
		h += a.Metrics.LineHeight*scale*st.SpeakerScale + st.LineSpacing
	}
	return h
}
