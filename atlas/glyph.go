package atlas

// Glyph describes one packed glyph: where its bitmap sits in the atlas
// texture and how it is positioned relative to the pen.
//
// U0..V1 are texture-space coordinates in [0, 1]. Width and Height are the
// bitmap dimensions in pixels at the atlas's font size. XOffset and YOffset
// are added to the pen position when emitting the glyph quad; YOffset
// already includes the font ascent, so quads are positioned from the top of
// the line box rather than the baseline.
type Glyph struct {
	U0, V0, U1, V1 float32

	Width   float64
	Height  float64
	Advance float64
	XOffset float64
	YOffset float64
}

// Metrics holds font-wide vertical metrics at the atlas's font size,
// in pixels.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the line box
	// (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the line
	// box (positive, below baseline).
	Descent float64

	// LineHeight is the recommended baseline-to-baseline distance
	// (ascent + descent + line gap).
	LineHeight float64

	// SpaceWidth is the advance of U+0020 at the atlas font size.
	SpaceWidth float64

	// Scale is the pixel size the atlas was rasterized at.
	Scale float64
}
