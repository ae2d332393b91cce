package storyglyph

import "math"

// ScrollState is the scroller's animation state.
type ScrollState int

const (
	// ScrollIdle means the offset only moves under manual control.
	ScrollIdle ScrollState = iota

	// ScrollAuto means the offset is easing toward a target each tick.
	ScrollAuto
)

func (s ScrollState) String() string {
	if s == ScrollAuto {
		return "auto-scrolling"
	}
	return "idle"
}

const (
	// scrollRate is the animation speed in text lines per second.
	scrollRate = 16.0

	// snapEpsilon is the remaining distance below which the animation
	// snaps to its target and goes idle.
	snapEpsilon = 0.5
)

// Scroller tracks the panel's vertical scroll offset and its easing
// animation. Offset 0 shows the top of the history; larger offsets shift
// content up. Not safe for concurrent use; the renderer owns it.
type Scroller struct {
	offset float64
	target float64
	state  ScrollState
}

// Offset returns the current scroll offset in pixels.
func (s *Scroller) Offset() float64 { return s.offset }

// State returns the current animation state.
func (s *Scroller) State() ScrollState { return s.state }

// ScrollBy applies a manual scroll delta. Any running animation is
// cancelled and the offset clamps to [0, maxScroll].
func (s *Scroller) ScrollBy(delta, maxScroll float64) {
	s.state = ScrollIdle
	s.offset = clamp(s.offset+delta, 0, maxScroll)
}

// ScrollTo starts easing toward target when animated, or jumps there
// immediately.
func (s *Scroller) ScrollTo(target float64, animated bool) {
	if !animated {
		s.state = ScrollIdle
		s.offset = target
		return
	}
	s.state = ScrollAuto
	s.target = target
}

// Clamp restricts the offset (and any animation target) to [0, maxScroll].
// Called after every rebuild since content growth moves the limit.
func (s *Scroller) Clamp(maxScroll float64) {
	s.offset = clamp(s.offset, 0, maxScroll)
	if s.state == ScrollAuto {
		s.target = clamp(s.target, 0, maxScroll)
	}
}

// Tick advances the animation by dt seconds. The step is proportional to
// the rendered line height so large panels and small panels feel the same.
// Within snapEpsilon of the target the offset snaps and the scroller goes
// idle.
func (s *Scroller) Tick(dt, lineHeight, textScale float64) {
	if s.state != ScrollAuto {
		return
	}
	diff := s.target - s.offset
	if math.Abs(diff) <= snapEpsilon {
		s.offset = s.target
		s.state = ScrollIdle
		return
	}
	step := scrollRate * lineHeight * textScale * dt
	if step >= math.Abs(diff) {
		s.offset = s.target
		s.state = ScrollIdle
		return
	}
	if diff > 0 {
		s.offset += step
	} else {
		s.offset -= step
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
