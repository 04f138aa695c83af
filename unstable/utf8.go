package unstable

// decodeUTF8 validates the UTF-8 sequence starting at b[0] against RFC 3629
// and returns its length in bytes. It is the single validator behind every
// string flavor the scanner supports (basic key, literal key, basic value,
// multi-line basic, literal, multi-line literal, and comments): TOML's
// grammar repeats the same byte-range constraints in each of those
// contexts, but there is no reason to duplicate the state machine that
// enforces them textually — a context-free byte validator produces the
// same accept/reject decision everywhere it's called from.
//
// ok is false when b[0] is not a valid UTF-8 lead byte, or when the
// sequence it starts is truncated or uses a disallowed continuation byte.
// When ok is false, size is the number of bytes the caller should treat as
// offending (at least 1 unless b is empty), so error highlighting can point at
// something of bounded width instead of the rest of the input.
func decodeUTF8(b []byte) (size int, ok bool) {
	if len(b) == 0 {
		return 0, false
	}

	lead := b[0]

	switch {
	case lead < 0x80:
		// 1-byte: 00..7F.
		return 1, true

	case lead >= 0xC2 && lead <= 0xDF:
		// 2-byte: lead C2..DF, then one continuation 80..BF.
		if len(b) < 2 || !isContinuation(b[1]) {
			return 1, false
		}
		return 2, true

	case lead == 0xE0:
		// 3-byte, E0: second byte restricted to A0..BF to exclude
		// overlong encodings of codepoints below U+0800.
		if len(b) < 3 || !inRange(b[1], 0xA0, 0xBF) || !isContinuation(b[2]) {
			return 1, false
		}
		return 3, true

	case (lead >= 0xE1 && lead <= 0xEC) || (lead >= 0xEE && lead <= 0xEF):
		if len(b) < 3 || !isContinuation(b[1]) || !isContinuation(b[2]) {
			return 1, false
		}
		return 3, true

	case lead == 0xED:
		// 3-byte, ED: second byte restricted to 80..9F to exclude the
		// UTF-16 surrogate range D800..DFFF.
		if len(b) < 3 || !inRange(b[1], 0x80, 0x9F) || !isContinuation(b[2]) {
			return 1, false
		}
		return 3, true

	case lead == 0xF0:
		// 4-byte, F0: second byte restricted to 90..BF to exclude
		// overlong encodings of codepoints below U+10000.
		if len(b) < 4 || !inRange(b[1], 0x90, 0xBF) || !isContinuation(b[2]) || !isContinuation(b[3]) {
			return 1, false
		}
		return 4, true

	case lead >= 0xF1 && lead <= 0xF3:
		if len(b) < 4 || !isContinuation(b[1]) || !isContinuation(b[2]) || !isContinuation(b[3]) {
			return 1, false
		}
		return 4, true

	case lead == 0xF4:
		// 4-byte, F4: second byte restricted to 80..8F to stay at or
		// below U+10FFFF, the largest valid codepoint.
		if len(b) < 4 || !inRange(b[1], 0x80, 0x8F) || !isContinuation(b[2]) || !isContinuation(b[3]) {
			return 1, false
		}
		return 4, true

	default:
		// 80..BF (stray continuation), C0..C1 (overlong 2-byte), F5..FF
		// (codepoint beyond U+10FFFF or reserved).
		return 1, false
	}
}

func isContinuation(b byte) bool {
	return inRange(b, 0x80, 0xBF)
}

func inRange(b, lo, hi byte) bool {
	return b >= lo && b <= hi
}
