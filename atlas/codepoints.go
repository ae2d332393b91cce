package atlas

// Required returns the codepoints a dialogue atlas must carry: printable
// ASCII, the Latin-1 supplement, and the typographic punctuation narrative
// prose actually uses (ligatures, dashes, curly quotes, ellipsis) plus
// U+0394 for stat deltas.
func Required() []rune {
	cps := make([]rune, 0, 96+96+11)
	for cp := rune(0x20); cp <= 0x7E; cp++ {
		cps = append(cps, cp)
	}
	for cp := rune(0xA0); cp <= 0xFF; cp++ {
		cps = append(cps, cp)
	}
	cps = append(cps,
		0x0152, 0x0153, // Œ œ
		0x0178,         // Ÿ
		0x2013, 0x2014, // – —
		0x2018, 0x2019, // ‘ ’
		0x201C, 0x201D, // “ ”
		0x2026, // …
		0x0394, // Δ
	)
	return cps
}
