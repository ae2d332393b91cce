package atlas

import "testing"

func TestShelfPackerDisjoint(t *testing.T) {
	p := newShelfPacker(128, 128, 2)
	p.reserve(32, 32)

	type rect struct{ x, y, w, h int }
	var placed []rect
	sizes := [][2]int{
		{10, 14}, {8, 12}, {20, 18}, {5, 5}, {30, 10},
		{12, 22}, {40, 16}, {7, 9}, {25, 25}, {16, 16},
	}
	for _, s := range sizes {
		x, y, ok := p.alloc(s[0], s[1])
		if !ok {
			t.Fatalf("alloc(%d,%d) failed early", s[0], s[1])
		}
		r := rect{x, y, s[0], s[1]}
		if r.x < 0 || r.y < 0 || r.x+r.w > 128 || r.y+r.h > 128 {
			t.Fatalf("rect %+v outside atlas", r)
		}
		if r.x < 34 && r.y < 34 {
			t.Fatalf("rect %+v overlaps reserved block", r)
		}
		for _, o := range placed {
			if r.x < o.x+o.w && o.x < r.x+r.w && r.y < o.y+o.h && o.y < r.y+r.h {
				t.Fatalf("rect %+v overlaps %+v", r, o)
			}
		}
		placed = append(placed, r)
	}
}

func TestShelfPackerNewRowOnOverflow(t *testing.T) {
	p := newShelfPacker(64, 64, 0)

	_, y0, ok := p.alloc(40, 10)
	if !ok || y0 != 0 {
		t.Fatalf("first alloc y = %d, ok = %v", y0, ok)
	}
	// Does not fit beside the first: must start a new shelf below.
	_, y1, ok := p.alloc(40, 10)
	if !ok {
		t.Fatal("second alloc failed")
	}
	if y1 < 10 {
		t.Errorf("second shelf y = %d, want >= 10", y1)
	}
}

func TestShelfPackerFull(t *testing.T) {
	p := newShelfPacker(32, 32, 0)
	if _, _, ok := p.alloc(32, 32); !ok {
		t.Fatal("exact-fit alloc failed")
	}
	if _, _, ok := p.alloc(1, 1); ok {
		t.Error("alloc in a full packer should fail")
	}
}
