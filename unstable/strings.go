package unstable

import "unicode/utf8"

// scanKeyString scans one basic- or literal-string key segment. Keys never
// span multiple lines, so this never enters the multi-line sub-states.
func (s *Scanner) scanKeyString(quote byte) error {
	return s.scanQuotedString(quote, true)
}

// scanValueString scans a value-position string. It first checks for a
// tripled quote to switch into the multi-line sub-state, then falls back
// to the single-line scanner shared with keys.
func (s *Scanner) scanValueString(quote byte) error {
	if b1, ok1 := s.peekAt(1); ok1 && b1 == quote {
		if b2, ok2 := s.peekAt(2); ok2 && b2 == quote {
			return s.scanMultilineString(quote)
		}
	}
	return s.scanQuotedString(quote, false)
}

// scanQuotedString scans a single-line basic (quote == '"') or literal
// (quote == '\'') string. It emits a single borrowed Key/String token when
// the content is one contiguous span with no escapes, or a fragmented
// Partial* sequence terminated by a Key/String token otherwise.
func (s *Scanner) scanQuotedString(quote byte, isKey bool) error {
	basic := quote == '"'
	beginKind, escKind, finalKind := PartialString, PartialStringEscaped, String
	if isKey {
		beginKind, escKind, finalKind = PartialKey, PartialKeyEscaped, Key
	}

	s.advance() // opening quote
	lexemeStart := s.cursor
	start := s.cursor

	flush := func(end int) {
		if end > start {
			s.push(Token{Kind: beginKind, Data: s.input[start:end]})
		}
	}

	for {
		b, ok := s.peek()
		if !ok {
			return s.errf(0, UnexpectedEndOfInput, "unexpected end of input in string")
		}

		switch {
		case b == quote:
			s.push(Token{Kind: finalKind, Data: s.input[start:s.cursor]})
			s.advance()
			return nil

		case basic && b == '\\':
			flush(s.cursor)
			s.advance() // backslash
			if err := s.scanEscape(escKind); err != nil {
				return err
			}
			start = s.cursor

		case b == '\n':
			return s.errf(1, SyntaxError, "newlines are not allowed in a single-line string")

		case b == '\r':
			return s.errf(1, SyntaxError, "bare carriage return is not allowed in a string")

		case b < 0x20 && b != '\t':
			return s.errf(1, SyntaxError, "control character in string: %#U", b)

		case b >= 0x80:
			n, ok := decodeUTF8(s.input[s.cursor:])
			if !ok {
				return s.errf(n, SyntaxError, "invalid UTF-8 sequence in string")
			}
			s.advanceN(n)

		default:
			s.advance()
		}

		// Measured against lexemeStart, which never resets, so a string
		// built from many small escape-separated fragments is bounded by
		// its total length rather than the length of its longest fragment.
		if s.cursor-lexemeStart > s.maxValueLen {
			return s.errf(0, ValueTooLong, "string exceeds maximum length")
		}
	}
}

// scanEscape decodes one backslash escape (cursor is positioned right
// after the backslash) and pushes the resulting byte(s) as escKind
// fragments. \u and \U escapes may decode to a multi-byte UTF-8 sequence;
// each byte of it is pushed as its own fragment, per token contract.
func (s *Scanner) scanEscape(escKind Kind) error {
	b, ok := s.peek()
	if !ok {
		return s.errf(0, UnexpectedEndOfInput, "unexpected end of input in escape sequence")
	}

	switch b {
	case 'b':
		s.advance()
		s.push(Token{Kind: escKind, Data: []byte{0x08}})
	case 't':
		s.advance()
		s.push(Token{Kind: escKind, Data: []byte{0x09}})
	case 'n':
		s.advance()
		s.push(Token{Kind: escKind, Data: []byte{0x0A}})
	case 'f':
		s.advance()
		s.push(Token{Kind: escKind, Data: []byte{0x0C}})
	case 'r':
		s.advance()
		s.push(Token{Kind: escKind, Data: []byte{0x0D}})
	case '"':
		s.advance()
		s.push(Token{Kind: escKind, Data: []byte{'"'}})
	case '\\':
		s.advance()
		s.push(Token{Kind: escKind, Data: []byte{'\\'}})
	case 'u':
		s.advance()
		return s.scanUnicodeEscape(escKind, 4)
	case 'U':
		s.advance()
		return s.scanUnicodeEscape(escKind, 8)
	default:
		return s.errf(1, SyntaxError, "invalid escape character %#U", b)
	}
	return nil
}

func (s *Scanner) scanUnicodeEscape(escKind Kind, digits int) error {
	start := s.cursor
	var cp rune
	for i := 0; i < digits; i++ {
		b, ok := s.peek()
		if !ok {
			return s.errf(0, UnexpectedEndOfInput, "unexpected end of input in unicode escape")
		}
		v, ok := hexDigitValue(b)
		if !ok {
			return s.errf(1, SyntaxError, "invalid hex digit in unicode escape: %#U", b)
		}
		cp = cp<<4 | rune(v)
		s.advance()
	}

	if cp > 0x10FFFF {
		return s.errf(0, CodepointTooLarge, "unicode escape %#U exceeds maximum codepoint", cp)
	}
	if cp >= 0xD800 && cp <= 0xDFFF {
		return NewError(CannotEncodeSurrogateHalf, s.input[start:s.cursor], "unicode escape refers to a surrogate half")
	}

	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], cp)
	for i := 0; i < n; i++ {
		s.push(Token{Kind: escKind, Data: []byte{buf[i]}})
	}
	return nil
}

func hexDigitValue(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

// scanMultilineString scans a multi-line basic (""\"...\"\"") or literal
// ('''...''') string. The opening delimiter has already been confirmed
// tripled but not consumed.
func (s *Scanner) scanMultilineString(quote byte) error {
	basic := quote == '"'
	s.advanceN(3)

	// A newline immediately following the opening delimiter is trimmed.
	if b, ok := s.peek(); ok {
		if b == '\n' {
			s.advance()
		} else if b == '\r' {
			if nb, ok2 := s.peekAt(1); ok2 && nb == '\n' {
				s.advanceN(2)
			}
		}
	}

	lexemeStart := s.cursor
	start := s.cursor

	flush := func(end int) {
		if end > start {
			s.push(Token{Kind: PartialString, Data: s.input[start:end]})
		}
	}

	for {
		b, ok := s.peek()
		if !ok {
			return s.errf(0, UnexpectedEndOfInput, "unexpected end of input in multi-line string")
		}

		switch {
		case b == quote:
			count := 0
			for {
				qb, ok := s.peekAt(count)
				if !ok || qb != quote {
					break
				}
				count++
			}
			if count < 3 {
				s.advance()
				continue
			}
			// Up to 5 consecutive quotes are allowed: the last 3 close
			// the string, any before that are literal content.
			extra := count - 3
			if extra > 2 {
				return s.errf(count, SyntaxError, "too many consecutive quotes at end of multi-line string")
			}
			end := s.cursor + extra
			s.push(Token{Kind: String, Data: s.input[start:end]})
			s.advanceN(extra + 3)
			return nil

		case basic && b == '\\':
			// A backslash immediately followed (modulo horizontal
			// whitespace) by a newline collapses that newline and all
			// leading whitespace of the following line(s); otherwise
			// it is an ordinary escape.
			backslash := s.cursor
			if s.tryLineEndingBackslash() {
				flush(backslash)
				start = s.cursor
				continue
			}
			flush(s.cursor)
			s.advance() // backslash
			if err := s.scanEscape(PartialStringEscaped); err != nil {
				return err
			}
			start = s.cursor

		case b == '\r':
			if nb, ok := s.peekAt(1); !ok || nb != '\n' {
				return s.errf(1, SyntaxError, "bare carriage return in multi-line string")
			}
			s.advanceN(2)

		case b < 0x20 && b != '\t' && b != '\n':
			return s.errf(1, SyntaxError, "control character in multi-line string: %#U", b)

		case b >= 0x80:
			n, ok := decodeUTF8(s.input[s.cursor:])
			if !ok {
				return s.errf(n, SyntaxError, "invalid UTF-8 sequence in multi-line string")
			}
			s.advanceN(n)

		default:
			s.advance()
		}

		// Measured against lexemeStart, which never resets, so a string
		// built from many small escape-separated fragments is bounded by
		// its total length rather than the length of its longest fragment.
		if s.cursor-lexemeStart > s.maxValueLen {
			return s.errf(0, ValueTooLong, "string exceeds maximum length")
		}
	}
}

// tryLineEndingBackslash looks ahead (without moving the cursor) for a
// backslash followed by optional horizontal whitespace and a newline
// (possibly several blank lines' worth), per the multi-line basic string
// line-continuation rule. If found, it consumes the whole span and returns
// true; otherwise it consumes nothing and returns false, leaving the
// backslash for the caller to handle as an ordinary escape.
func (s *Scanner) tryLineEndingBackslash() bool {
	n := 1 // the backslash itself
	sawNewline := false
loop:
	for {
		b, ok := s.peekAt(n)
		if !ok {
			break
		}
		switch b {
		case ' ', '\t':
			n++
		case '\n':
			n++
			sawNewline = true
		case '\r':
			if nb, ok2 := s.peekAt(n + 1); ok2 && nb == '\n' {
				n += 2
				sawNewline = true
			} else {
				break loop
			}
		default:
			break loop
		}
	}
	if !sawNewline {
		return false
	}
	s.advanceN(n)
	return true
}
