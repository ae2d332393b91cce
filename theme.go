package storyglyph

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// themeFile mirrors the TOML theme layout. Every field is optional; unset
// fields keep their DefaultStyle value.
//
//	[panel]
//	x = 0.70
//	width = 0.30
//	padding = 20.0
//	bottom_margin = 250.0
//	line_spacing = 4.0
//	entry_spacing = 2.0
//	choice_indent = 20.0
//	text_scale = 1.0
//	speaker_scale = 1.25
//
//	[colors]
//	background = "#00000000"
//	text = "#cccccc"
//	narration = "#bfbfc7"
//	choice = "#d98c40"
//	choice_hover = "#ffcc66"
//	choice_selected = "#808080"
//	choice_selected_hover = "#b3b3b3"
type themeFile struct {
	Panel struct {
		X            *float64 `toml:"x"`
		Width        *float64 `toml:"width"`
		Padding      *float64 `toml:"padding"`
		BottomMargin *float64 `toml:"bottom_margin"`
		LineSpacing  *float64 `toml:"line_spacing"`
		EntrySpacing *float64 `toml:"entry_spacing"`
		ChoiceIndent *float64 `toml:"choice_indent"`
		TextScale    *float64 `toml:"text_scale"`
		SpeakerScale *float64 `toml:"speaker_scale"`
	} `toml:"panel"`
	Colors struct {
		Background          *string `toml:"background"`
		Text                *string `toml:"text"`
		Narration           *string `toml:"narration"`
		Choice              *string `toml:"choice"`
		ChoiceHover         *string `toml:"choice_hover"`
		ChoiceSelected      *string `toml:"choice_selected"`
		ChoiceSelectedHover *string `toml:"choice_selected_hover"`
	} `toml:"colors"`
}

// LoadTheme reads a TOML theme file and returns DefaultStyle with the
// file's settings applied on top.
func LoadTheme(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultStyle(), fmt.Errorf("load theme: %w", err)
	}
	return ParseTheme(data)
}

// ParseTheme decodes TOML theme data over DefaultStyle.
func ParseTheme(data []byte) (Style, error) {
	st := DefaultStyle()

	var tf themeFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return st, fmt.Errorf("parse theme: %w", err)
	}

	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&st.PanelX, tf.Panel.X)
	setF(&st.PanelWidth, tf.Panel.Width)
	setF(&st.Padding, tf.Panel.Padding)
	setF(&st.BottomMargin, tf.Panel.BottomMargin)
	setF(&st.LineSpacing, tf.Panel.LineSpacing)
	setF(&st.EntrySpacing, tf.Panel.EntrySpacing)
	setF(&st.ChoiceIndent, tf.Panel.ChoiceIndent)
	setF(&st.TextScale, tf.Panel.TextScale)
	setF(&st.SpeakerScale, tf.Panel.SpeakerScale)

	setC := func(dst *Color, src *string) {
		if src != nil {
			*dst = Hex(*src)
		}
	}
	setC(&st.Background, tf.Colors.Background)
	setC(&st.Text, tf.Colors.Text)
	setC(&st.Narration, tf.Colors.Narration)
	setC(&st.Choice, tf.Colors.Choice)
	setC(&st.ChoiceHover, tf.Colors.ChoiceHover)
	setC(&st.ChoiceSelected, tf.Colors.ChoiceSelected)
	setC(&st.ChoiceSelectedHover, tf.Colors.ChoiceSelectedHover)

	return st, nil
}
