package storyglyph

import (
	"fmt"
	"math"

	"github.com/storyglyph/storyglyph/atlas"
	"github.com/storyglyph/storyglyph/backend"
	"github.com/storyglyph/storyglyph/gpucore"
)

// offscreenMargin is how far above the viewport an entry may start and
// still be rendered. Entries higher than that take the height-only path.
const offscreenMargin = 200

// Renderer turns dialogue history and pending choices into a per-frame
// vertex stream and feeds it to a backend. It owns the glyph atlas, the
// scroll state, and the choice hit-test spans.
//
// Not safe for concurrent use; drive it from the frame loop.
type Renderer struct {
	atlas   *atlas.Atlas
	backend gpucore.Backend
	style   Style

	width  float64
	height float64

	history []Entry
	choices []Entry

	scroller   Scroller
	autoScroll bool
	lastCount  int

	mouseX float64
	mouseY float64

	frame     *frame
	bounds    []ChoiceBounds
	maxScroll float64

	droppedQuads int
	initialized  bool
}

// NewRenderer builds the glyph atlas from fontData, selects a backend, and
// uploads the atlas. width and height are the viewport size in pixels;
// changing them requires a new Renderer.
//
// On error the returned Renderer is still non-nil with
// Initialized() == false: every operation on it is a safe no-op, so a host
// may keep running without text.
func NewRenderer(fontData []byte, width, height int, opts ...Option) (*Renderer, error) {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{
		style:      o.style,
		width:      float64(width),
		height:     float64(height),
		autoScroll: o.autoScroll,
		frame:      newFrame(o.maxVertices),
	}

	a, err := atlas.Build(fontData, o.atlasConfig)
	if err != nil {
		return r, fmt.Errorf("storyglyph: build atlas: %w", err)
	}
	r.atlas = a

	b := o.backend
	if b == nil {
		b = backend.Default()
	}
	if b == nil {
		return r, backend.ErrNotAvailable
	}
	if ls, ok := b.(loggerSetter); ok {
		ls.SetLogger(Logger())
	}
	if err := b.Init(width, height); err != nil {
		return r, fmt.Errorf("storyglyph: init %s backend: %w", b.Name(), err)
	}
	if err := b.UploadAtlas(a.Pix, a.Size); err != nil {
		_ = b.Close()
		return r, fmt.Errorf("storyglyph: upload atlas: %w", err)
	}

	r.backend = b
	r.initialized = true
	Logger().Info("renderer initialized",
		"backend", b.Name(),
		"viewport", fmt.Sprintf("%dx%d", width, height),
		"glyphs", a.GlyphCount())
	return r, nil
}

// Initialized reports whether construction fully succeeded. When false all
// operations are no-ops.
func (r *Renderer) Initialized() bool { return r.initialized }

// Atlas exposes the built glyph atlas, nil when uninitialized.
func (r *Renderer) Atlas() *atlas.Atlas { return r.atlas }

// Style returns the current panel style.
func (r *Renderer) Style() Style { return r.style }

// SetStyle replaces the panel style. Takes effect on the next Rebuild.
func (r *Renderer) SetStyle(s Style) { r.style = s }

// ClearPendingEntries empties the history and choice lists. The next
// Rebuild renders an empty panel.
func (r *Renderer) ClearPendingEntries() {
	r.history = r.history[:0]
	r.choices = r.choices[:0]
	r.bounds = r.bounds[:0]
}

// AddHistoryEntry appends an entry to the scrollback.
func (r *Renderer) AddHistoryEntry(e Entry) {
	r.history = append(r.history, e)
}

// AddChoiceEntry appends a selectable option below the history. selected
// renders it in the muted already-taken colors.
func (r *Renderer) AddChoiceEntry(text string, selected bool) {
	kind := KindChoice
	if selected {
		kind = KindChoiceSelected
	}
	r.choices = append(r.choices, Entry{Kind: kind, Text: text})
}

// HistoryCount returns the number of history entries.
func (r *Renderer) HistoryCount() int { return len(r.history) }

// ChoiceCount returns the number of pending choices.
func (r *Renderer) ChoiceCount() int { return len(r.choices) }

// UpdateMousePosition records the cursor position in screen pixels for
// hover and click evaluation.
func (r *Renderer) UpdateMousePosition(x, y float64) {
	r.mouseX, r.mouseY = x, y
}

// ScrollDialogue applies a manual scroll delta in pixels, cancelling any
// running auto-scroll.
func (r *Renderer) ScrollDialogue(delta float64) {
	if !r.initialized {
		return
	}
	r.scroller.ScrollBy(delta, r.maxScroll)
}

// ScrollToBottom scrolls to the newest content, eased when animated.
func (r *Renderer) ScrollToBottom(animated bool) {
	if !r.initialized {
		return
	}
	r.scroller.ScrollTo(r.maxScroll, animated)
}

// ScrollOffset returns the current scroll offset in pixels.
func (r *Renderer) ScrollOffset() float64 { return r.scroller.Offset() }

// ScrollState returns the scroller's animation state.
func (r *Renderer) ScrollState() ScrollState { return r.scroller.State() }

// SetAutoScroll toggles automatic scrolling toward new content.
func (r *Renderer) SetAutoScroll(enabled bool) { r.autoScroll = enabled }

// DroppedQuads returns the total number of quads discarded at the vertex
// cap since creation.
func (r *Renderer) DroppedQuads() int { return r.droppedQuads }

// VertexCount returns the size of the last rebuilt vertex stream.
func (r *Renderer) VertexCount() int { return len(r.frame.verts) }

// Vertices exposes the last rebuilt vertex stream. The slice is reused by
// the next Rebuild.
func (r *Renderer) Vertices() []Vertex { return r.frame.verts }

// Rebuild regenerates the whole vertex stream from current state and
// uploads it to the backend. dt is the seconds since the previous frame,
// used to advance the scroll animation. Call once per frame before Draw.
func (r *Renderer) Rebuild(dt float64) {
	if !r.initialized {
		return
	}

	r.scroller.Tick(dt, r.atlas.Metrics.LineHeight, r.style.TextScale)

	bottom := buildFrame(r.frame, r.atlas, &r.style,
		r.history, r.choices,
		r.width, r.height,
		r.scroller.Offset(), r.mouseX, r.mouseY,
		&r.bounds)

	contentHeight := bottom + r.scroller.Offset()
	r.maxScroll = math.Max(0, contentHeight-r.height+r.style.BottomMargin)
	r.scroller.Clamp(r.maxScroll)

	// New content pulls the view down when auto-scroll is on. Choices
	// count too: freshly presented options must not sit below the fold.
	entryCount := len(r.history) + len(r.choices)
	if entryCount > r.lastCount && r.autoScroll && r.maxScroll > 0 {
		r.scroller.ScrollTo(r.maxScroll, true)
	}
	r.lastCount = entryCount

	if r.frame.dropped > 0 {
		r.droppedQuads += r.frame.dropped
		Logger().Warn("vertex capacity exceeded, quads dropped",
			"dropped", r.frame.dropped,
			"maxVertices", r.frame.max)
	}

	if err := r.backend.UploadVertices(vertexBytes(r.frame.verts), len(r.frame.verts)); err != nil {
		Logger().Warn("vertex upload failed", "error", err)
	}
}

// Draw renders the last rebuilt stream into the backend-specific pass.
func (r *Renderer) Draw(pass any) error {
	if !r.initialized {
		return nil
	}
	return r.backend.Draw(pass)
}

// HoveredChoice returns the index of the choice under the cursor, or -1.
// Uses the spans recorded by the last Rebuild.
func (r *Renderer) HoveredChoice() int {
	return hitTest(r.bounds, &r.style, r.width, r.mouseX, r.mouseY)
}

// ClickedChoice returns the index of the choice under the cursor at click
// time, or -1 when the cursor is outside the panel or over no choice.
func (r *Renderer) ClickedChoice() int {
	return hitTest(r.bounds, &r.style, r.width, r.mouseX, r.mouseY)
}

// Close releases the backend. The renderer becomes uninitialized.
func (r *Renderer) Close() error {
	if !r.initialized {
		return nil
	}
	r.initialized = false
	return r.backend.Close()
}

// hitTest resolves a cursor position against recorded choice spans. The
// cursor must be horizontally inside the panel; the first matching span
// wins.
func hitTest(bounds []ChoiceBounds, st *Style, width, mouseX, mouseY float64) int {
	panelX := width * st.PanelX
	panelW := width * st.PanelWidth
	if mouseX < panelX || mouseX > panelX+panelW {
		return -1
	}
	for _, b := range bounds {
		if mouseY >= b.Y0 && mouseY < b.Y1 {
			return b.Index
		}
	}
	return -1
}

// buildFrame regenerates the vertex stream into f from explicit inputs
// only: entries, style, viewport, scroll offset, and cursor. It returns
// the y coordinate below the last entry (still offset by scrollOffset) and
// records choice hit-test spans into *bounds.
func buildFrame(f *frame, a *atlas.Atlas, st *Style,
	history, choices []Entry,
	width, height, scrollOffset, mouseX, mouseY float64,
	bounds *[]ChoiceBounds) float64 {

	f.reset()
	*bounds = (*bounds)[:0]

	panelX := width * st.PanelX
	panelW := width * st.PanelWidth
	textX := panelX + st.Padding
	textW := panelW - 2*st.Padding

	wu0, wv0, wu1, wv1 := a.WhiteUV()
	f.addQuad(panelX, 0, panelW, height, wu0, wv0, wu1, wv1, st.Background)

	mouseInPanel := mouseX >= panelX && mouseX <= panelX+panelW
	entryGap := st.LineSpacing * st.EntrySpacing

	y := st.Padding - scrollOffset
	for i, e := range history {
		if i > 0 {
			y += entryGap
		}
		if y > height {
			// Everything below is off screen; heights no longer matter
			// for the frame, only for maxScroll, so keep summing.
			y += entryHeight(a, st, e, textW)
			continue
		}
		if y+offscreenMargin > 0 {
			y = renderEntry(f, a, st, e, textX, textW, y, false)
		} else {
			y += entryHeight(a, st, e, textW)
		}
	}

	if len(choices) > 0 {
		sepY := y + 10
		f.addQuad(panelX+st.Padding, sepY, panelW-2*st.Padding, 1,
			wu0, wv0, wu1, wv1, RGBA(0.4, 0.4, 0.4, 0.5))
		y = sepY + 20

		for i, c := range choices {
			if i > 0 {
				y += entryGap
			}
			c.Text = fmt.Sprintf("%d. %s", i+1, c.Text)
			h := entryHeight(a, st, c, textW)
			*bounds = append(*bounds, ChoiceBounds{Y0: y, Y1: y + h, Index: i})

			hovered := mouseInPanel && mouseY >= y && mouseY < y+h
			y = renderEntry(f, a, st, c, textX, textW, y, hovered)
		}
	}

	return y
}
