// Package codepoint decodes UTF-8 byte sequences into Unicode scalar values.
//
// The decoder differs from unicode/utf8 in its handling of malformed input:
// instead of substituting U+FFFD, a malformed byte is consumed on its own and
// returned as its raw value. Narrative scripts occasionally arrive with
// stray single-byte-encoded punctuation, and swallowing the neighbouring
// letters along with the bad byte garbles visible text.
package codepoint

// Decode decodes exactly one Unicode scalar value from s starting at byte
// offset i and returns it together with the offset of the following byte.
//
// Well-formed 1-4 byte UTF-8 sequences decode per the usual rules. Any
// malformed pattern (bad leading byte, missing or invalid continuation
// bytes, truncated tail) consumes exactly one byte and yields that byte's
// raw value. Decode never fails; i >= len(s) returns (0, i).
func Decode(s string, i int) (cp rune, next int) {
	if i >= len(s) {
		return 0, i
	}

	c := s[i]
	if c&0x80 == 0 {
		return rune(c), i + 1
	}

	cont := func(idx int) bool {
		return idx < len(s) && s[idx]&0xC0 == 0x80
	}

	switch {
	case c&0xE0 == 0xC0 && cont(i+1):
		cp = rune(c&0x1F)<<6 | rune(s[i+1]&0x3F)
		return cp, i + 2
	case c&0xF0 == 0xE0 && cont(i+1) && cont(i+2):
		cp = rune(c&0x0F)<<12 | rune(s[i+1]&0x3F)<<6 | rune(s[i+2]&0x3F)
		return cp, i + 3
	case c&0xF8 == 0xF0 && cont(i+1) && cont(i+2) && cont(i+3):
		cp = rune(c&0x07)<<18 | rune(s[i+1]&0x3F)<<12 |
			rune(s[i+2]&0x3F)<<6 | rune(s[i+3]&0x3F)
		return cp, i + 4
	}

	// Malformed: consume one byte only so neighbouring letters survive.
	return rune(c), i + 1
}

// Append appends every scalar value of s to dst and returns the extended
// slice. It is the bulk form of Decode and shares its malformed-input
// behavior.
func Append(dst []rune, s string) []rune {
	for i := 0; i < len(s); {
		var cp rune
		cp, i = Decode(s, i)
		dst = append(dst, cp)
	}
	return dst
}

// Count returns the number of scalar values Decode would yield for s.
func Count(s string) int {
	n := 0
	for i := 0; i < len(s); {
		_, i = Decode(s, i)
		n++
	}
	return n
}
