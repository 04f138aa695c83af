package unstable

// scanNumberOrDatetime scans the value-position lexeme starting at the
// cursor and classifies it as Int, Float, or Datetime without performing
// the actual numeric conversion — that belongs to the tree builder's
// value-decoding step, which needs to know the target type (and, for
// integers, the base) to do it correctly.
func (s *Scanner) scanNumberOrDatetime() (Token, error) {
	start := s.cursor

	if b, ok := s.peek(); ok && (b == '+' || b == '-') {
		s.advance()
	}

	if s.followsLiteral("inf") || s.followsLiteral("nan") {
		s.advanceN(3)
		return s.finishNumber(start, Float)
	}

	b, ok := s.peek()
	if !ok {
		return Token{}, s.errf(0, UnexpectedEndOfInput, "unexpected end of input while scanning a number")
	}
	if !isDigitByte(b) {
		return Token{}, s.errf(1, SyntaxError, "invalid number: %#U", b)
	}

	signed := start != s.cursor
	if b == '0' {
		if nb, ok2 := s.peekAt(1); ok2 && (nb == 'x' || nb == 'o' || nb == 'b') {
			if signed {
				return Token{}, s.errf(s.cursor-start+2, SyntaxError, "sign is not allowed on based integers")
			}
			switch nb {
			case 'x':
				return s.scanBasedInteger(start, 16)
			case 'o':
				return s.scanBasedInteger(start, 8)
			case 'b':
				return s.scanBasedInteger(start, 2)
			}
		}
	}

	digitStart := s.cursor
	s.advance() // the digit already confirmed present
	for {
		bb, ok2 := s.peek()
		if !ok2 || !(isDigitByte(bb) || bb == '_') {
			break
		}
		s.advance()
	}
	firstRunLen := s.cursor - digitStart

	// Date form: a 4-digit year followed by '-' and another digit. Checked
	// before the bare-integer leading-zero rule below, since a date's year
	// (e.g. "0001") or a local time's hour (e.g. "07") legitimately starts
	// with '0' and is not an integer at all.
	if firstRunLen == 4 && !signed {
		if nb, ok2 := s.peek(); ok2 && nb == '-' {
			if nb2, ok3 := s.peekAt(1); ok3 && isDigitByte(nb2) {
				return s.scanDatetimeFromDate(start)
			}
		}
	}
	// Local-time form: a 2-digit hour followed by ':'.
	if firstRunLen == 2 && !signed {
		if nb, ok2 := s.peek(); ok2 && nb == ':' {
			return s.scanDatetimeFromTime(start)
		}
	}

	if s.input[digitStart] == '0' && firstRunLen > 1 {
		return Token{}, s.errf(firstRunLen, SyntaxError, "leading zeros are not allowed in a number")
	}

	isFloat := false
	if b2, ok2 := s.peek(); ok2 && b2 == '.' {
		isFloat = true
		s.advance()
		fracStart := s.cursor
		for {
			bb, ok3 := s.peek()
			if !ok3 || !(isDigitByte(bb) || bb == '_') {
				break
			}
			s.advance()
		}
		if s.cursor == fracStart {
			return Token{}, s.errf(1, SyntaxError, "expected digit after decimal point")
		}
	}
	if b2, ok2 := s.peek(); ok2 && (b2 == 'e' || b2 == 'E') {
		isFloat = true
		s.advance()
		if sb, ok3 := s.peek(); ok3 && (sb == '+' || sb == '-') {
			s.advance()
		}
		expStart := s.cursor
		for {
			bb, ok3 := s.peek()
			if !ok3 || !(isDigitByte(bb) || bb == '_') {
				break
			}
			s.advance()
		}
		if s.cursor == expStart {
			return Token{}, s.errf(1, SyntaxError, "expected digit in exponent")
		}
	}

	kind := Int
	if isFloat {
		kind = Float
	}
	return s.finishNumber(start, kind)
}

func (s *Scanner) finishNumber(start int, kind Kind) (Token, error) {
	if s.cursor-start > s.maxValueLen {
		return Token{}, s.errf(0, ValueTooLong, "number exceeds maximum length")
	}
	return Token{Kind: kind, Data: s.input[start:s.cursor]}, nil
}

func (s *Scanner) scanBasedInteger(start int, base int) (Token, error) {
	s.advanceN(2) // "0x" / "0o" / "0b"

	valid := func(b byte) bool {
		switch base {
		case 16:
			return isDigitByte(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
		case 8:
			return b >= '0' && b <= '7'
		default:
			return b == '0' || b == '1'
		}
	}

	hasDigit := false
	lastWasUnderscore := false
	for {
		b, ok := s.peek()
		if !ok {
			break
		}
		if b == '_' {
			if !hasDigit || lastWasUnderscore {
				return Token{}, s.errf(1, SyntaxError, "invalid use of '_' in number")
			}
			s.advance()
			lastWasUnderscore = true
			continue
		}
		if !valid(b) {
			break
		}
		s.advance()
		hasDigit = true
		lastWasUnderscore = false
	}
	if !hasDigit {
		return Token{}, s.errf(0, SyntaxError, "expected digits after base prefix")
	}
	if lastWasUnderscore {
		return Token{}, s.errf(0, SyntaxError, "number cannot end with '_'")
	}

	return s.finishNumber(start, Int)
}

// scanDatetimeFromDate consumes the rest of a datetime lexeme whose
// 4-digit year has already been scanned into input[start:cursor].
func (s *Scanner) scanDatetimeFromDate(start int) (Token, error) {
	if err := s.expectByte('-'); err != nil {
		return Token{}, err
	}
	if err := s.consumeDigits(2); err != nil {
		return Token{}, err
	}
	if err := s.expectByte('-'); err != nil {
		return Token{}, err
	}
	if err := s.consumeDigits(2); err != nil {
		return Token{}, err
	}

	if b, ok := s.peek(); ok && (b == 'T' || b == 't' || b == ' ') {
		if nb, ok2 := s.peekAt(1); ok2 && isDigitByte(nb) {
			s.advance() // separator
			if err := s.consumeDigits(2); err != nil {
				return Token{}, err
			}
			if err := s.consumeClockTail(); err != nil {
				return Token{}, err
			}
			if err := s.consumeOffset(); err != nil {
				return Token{}, err
			}
		}
	}

	return s.finishNumber(start, Datetime)
}

// scanDatetimeFromTime consumes the rest of a local-time lexeme whose
// 2-digit hour has already been scanned into input[start:cursor].
func (s *Scanner) scanDatetimeFromTime(start int) (Token, error) {
	if err := s.consumeClockTail(); err != nil {
		return Token{}, err
	}
	return s.finishNumber(start, Datetime)
}

// consumeClockTail consumes ":MM:SS[.fraction]"; the hour has already been
// scanned by the caller.
func (s *Scanner) consumeClockTail() error {
	if err := s.expectByte(':'); err != nil {
		return err
	}
	if err := s.consumeDigits(2); err != nil {
		return err
	}
	if err := s.expectByte(':'); err != nil {
		return err
	}
	if err := s.consumeDigits(2); err != nil {
		return err
	}
	if b, ok := s.peek(); ok && b == '.' {
		s.advance()
		n := 0
		for {
			bb, ok2 := s.peek()
			if !ok2 || !isDigitByte(bb) {
				break
			}
			s.advance()
			n++
		}
		if n == 0 {
			return s.errf(1, SyntaxError, "expected digit after decimal point in time")
		}
	}
	return nil
}

// consumeOffset consumes an optional "Z"/"z" or "±HH:MM" timezone offset.
func (s *Scanner) consumeOffset() error {
	b, ok := s.peek()
	if !ok {
		return nil
	}
	if b == 'Z' || b == 'z' {
		s.advance()
		return nil
	}
	if b == '+' || b == '-' {
		s.advance()
		if err := s.consumeDigits(2); err != nil {
			return err
		}
		if err := s.expectByte(':'); err != nil {
			return err
		}
		if err := s.consumeDigits(2); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) expectByte(want byte) error {
	b, ok := s.peek()
	if !ok {
		return s.errf(0, UnexpectedEndOfInput, "unexpected end of input, expected '%c'", want)
	}
	if b != want {
		return s.errf(1, SyntaxError, "expected '%c', got %#U", want, b)
	}
	s.advance()
	return nil
}

func (s *Scanner) consumeDigits(n int) error {
	for i := 0; i < n; i++ {
		b, ok := s.peek()
		if !ok {
			return s.errf(0, UnexpectedEndOfInput, "unexpected end of input, expected a digit")
		}
		if !isDigitByte(b) {
			return s.errf(1, SyntaxError, "expected a digit, got %#U", b)
		}
		s.advance()
	}
	return nil
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}
