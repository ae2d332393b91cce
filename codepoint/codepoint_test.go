package codepoint

import (
	"testing"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// TestDecodeASCII tests single-byte decoding.
func TestDecodeASCII(t *testing.T) {
	s := "Hello!"
	for i := 0; i < len(s); i++ {
		cp, next := Decode(s, i)
		if cp != rune(s[i]) {
			t.Errorf("Decode(%q, %d) = %q, want %q", s, i, cp, rune(s[i]))
		}
		if next != i+1 {
			t.Errorf("Decode(%q, %d) next = %d, want %d", s, i, next, i+1)
		}
	}
}

// TestDecodeMultibyte tests 2-4 byte sequences.
func TestDecodeMultibyte(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want rune
		n    int
	}{
		{"e acute", "é", 0x00E9, 2},
		{"oe ligature", "œ", 0x0153, 2},
		{"em dash", "—", 0x2014, 3},
		{"left curly quote", "“", 0x201C, 3},
		{"ellipsis", "…", 0x2026, 3},
		{"delta", "Δ", 0x0394, 2},
		{"emoji", "\U0001F600", 0x1F600, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, next := Decode(tt.s, 0)
			if cp != tt.want {
				t.Errorf("Decode(%q) = %#x, want %#x", tt.s, cp, tt.want)
			}
			if next != tt.n {
				t.Errorf("Decode(%q) consumed %d bytes, want %d", tt.s, next, tt.n)
			}
		})
	}
}

// TestDecodeTotalCoverage verifies that repeated decoding of valid UTF-8
// consumes every byte exactly once and matches the stdlib decoder.
func TestDecodeTotalCoverage(t *testing.T) {
	inputs := []string{
		"",
		"plain ascii",
		"café naïve “quoted” — and… done",
		"Œuvre Ÿ Δ",
		"mixed \U0001F600 astral \U0001F680 planes",
	}

	for _, s := range inputs {
		var got []rune
		i := 0
		for i < len(s) {
			var cp rune
			cp, i = Decode(s, i)
			got = append(got, cp)
		}
		if i != len(s) {
			t.Errorf("decoding %q stopped at byte %d of %d", s, i, len(s))
		}

		want := []rune(s)
		if len(got) != len(want) {
			t.Fatalf("decoding %q yielded %d scalars, want %d", s, len(got), len(want))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("decoding %q: scalar %d = %#x, want %#x", s, j, got[j], want[j])
			}
		}
		if n := utf8.RuneCountInString(s); Count(s) != n {
			t.Errorf("Count(%q) = %d, want %d", s, Count(s), n)
		}
	}
}

// TestDecodeMalformed verifies the one-byte fallback: a Latin-1 byte stream
// decodes to the same scalars charmap.ISO8859_1 produces, because each raw
// byte value equals its Latin-1 codepoint.
func TestDecodeMalformed(t *testing.T) {
	raw := []byte{'c', 'a', 'f', 0xE9, ' ', 0xAB, 'o', 'k', 0xBB}
	s := string(raw)

	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		t.Fatalf("charmap reference decode: %v", err)
	}
	want := []rune(decoded)

	var got []rune
	for i := 0; i < len(s); {
		var cp rune
		cp, i = Decode(s, i)
		got = append(got, cp)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d scalars, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scalar %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

// TestDecodeTruncated verifies truncated tails consume one byte at a time.
func TestDecodeTruncated(t *testing.T) {
	tests := []struct {
		name string
		s    string
	}{
		{"lone continuation", "\x80"},
		{"truncated 2-byte", "\xC3"},
		{"truncated 3-byte", "\xE2\x80"},
		{"truncated 4-byte", "\xF0\x9F\x98"},
		{"bad continuation", "\xC3\x28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := 0
			steps := 0
			for i < len(tt.s) {
				prev := i
				_, i = Decode(tt.s, i)
				if i <= prev {
					t.Fatalf("Decode made no progress at byte %d", prev)
				}
				steps++
			}
			if steps != len(tt.s) {
				t.Errorf("consumed %q in %d steps, want %d (one byte each)",
					tt.s, steps, len(tt.s))
			}
		})
	}
}

// TestDecodePastEnd verifies out-of-range cursors are a no-op.
func TestDecodePastEnd(t *testing.T) {
	cp, next := Decode("ab", 5)
	if cp != 0 || next != 5 {
		t.Errorf("Decode past end = (%d, %d), want (0, 5)", cp, next)
	}
}

// TestAppend tests the bulk decoding helper.
func TestAppend(t *testing.T) {
	got := Append(nil, "aéb")
	want := []rune{'a', 0xE9, 'b'}
	if len(got) != len(want) {
		t.Fatalf("Append yielded %d scalars, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Append[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}
