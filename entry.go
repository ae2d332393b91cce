package storyglyph

// EntryKind classifies a dialogue entry. The kind selects the body color
// and, for choices, the indent and hover behavior.
type EntryKind int

const (
	// KindDialogue is a spoken line, usually with a Speaker.
	KindDialogue EntryKind = iota

	// KindNarration is descriptive prose without a speaker.
	KindNarration

	// KindChoice is a selectable option presented to the player.
	KindChoice

	// KindChoiceSelected is a choice already taken, kept in the history
	// in a muted color.
	KindChoiceSelected
)

// String returns the kind name for logs.
func (k EntryKind) String() string {
	switch k {
	case KindDialogue:
		return "dialogue"
	case KindNarration:
		return "narration"
	case KindChoice:
		return "choice"
	case KindChoiceSelected:
		return "choice-selected"
	default:
		return "unknown"
	}
}

// Entry is one unit of panel content: a spoken line, a narration paragraph,
// or a choice.
type Entry struct {
	Kind EntryKind

	// Speaker, when non-empty, renders as a label line above the body at
	// the speaker scale, with a marker quad in SpeakerColor to its left.
	Speaker      string
	SpeakerColor Color

	Text string
}

// ChoiceBounds is the vertical hit-test span [Y0, Y1) of one rendered
// choice, in screen pixels. Spans are recorded during rebuild and consumed
// by hover and click queries; the half-open range keeps touching spans
// unambiguous.
type ChoiceBounds struct {
	Y0, Y1 float64
	Index  int
}
