package storyglyph

// Style holds the visual parameters of the dialogue panel. PanelX and
// PanelWidth are fractions of the screen width; every other length is in
// screen pixels at TextScale 1.
type Style struct {
	// PanelX is the left edge of the panel as a fraction of screen width.
	PanelX float64

	// PanelWidth is the panel width as a fraction of screen width.
	PanelWidth float64

	// Padding is the inner margin between the panel edge and text.
	Padding float64

	// BottomMargin is the space kept below the last entry when scrolled
	// to the bottom.
	BottomMargin float64

	// LineSpacing is the extra gap between wrapped lines.
	LineSpacing float64

	// EntrySpacing scales LineSpacing to form the gap between entries.
	EntrySpacing float64

	// ChoiceIndent shifts choice bodies right of regular text.
	ChoiceIndent float64

	// TextScale scales all glyph rendering relative to the atlas font size.
	TextScale float64

	// SpeakerScale scales speaker label lines relative to TextScale.
	SpeakerScale float64

	Background          Color
	Text                Color
	Narration           Color
	Choice              Color
	ChoiceHover         Color
	ChoiceSelected      Color
	ChoiceSelectedHover Color
}

// DefaultStyle returns the standard right-side panel look: panel over the
// right 30% of the screen, warm amber choices, muted gray history.
func DefaultStyle() Style {
	return Style{
		PanelX:       0.70,
		PanelWidth:   0.30,
		Padding:      20,
		BottomMargin: 250,
		LineSpacing:  4,
		EntrySpacing: 2,
		ChoiceIndent: 20,
		TextScale:    1.0,
		SpeakerScale: 1.25,

		Background:          RGBA(0, 0, 0, 0),
		Text:                RGB(0.8, 0.8, 0.8),
		Narration:           RGB(0.75, 0.75, 0.78),
		Choice:              RGB(0.85, 0.55, 0.25),
		ChoiceHover:         RGB(1.0, 0.8, 0.4),
		ChoiceSelected:      RGB(0.5, 0.5, 0.5),
		ChoiceSelectedHover: RGB(0.7, 0.7, 0.7),
	}
}

// bodyColor returns the body text color for an entry of kind k.
func (s *Style) bodyColor(k EntryKind, hovered bool) Color {
	switch k {
	case KindNarration:
		return s.Narration
	case KindChoice:
		if hovered {
			return s.ChoiceHover
		}
		return s.Choice
	case KindChoiceSelected:
		if hovered {
			return s.ChoiceSelectedHover
		}
		return s.ChoiceSelected
	default:
		return s.Text
	}
}

// indented reports whether entries of kind k are shifted by ChoiceIndent.
func indented(k EntryKind) bool {
	return k == KindChoice || k == KindChoiceSelected
}
