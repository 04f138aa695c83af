package unstable

import "fmt"

// principal is the scanner's top-level state: the lexical region the
// cursor is currently in. Sub-states for escapes, UTF-8 continuation bytes
// and number/datetime lexemes live inside helpers (scanQuotedString,
// scanMultilineString, scanEscape, decodeUTF8, scanNumberOrDatetime)
// instead of being inlined here — the byte-range checks they do are
// identical regardless of which principal state called them.
type principal uint8

const (
	atLineStart principal = iota // top of a statement: key, header, comment, or EOF
	atTableHeaderKey
	atArrayTableHeaderKey
	atAssignEqual  // just scanned an assignment key chain, '=' is next
	atHeaderClose  // just scanned a header key chain, ']' (or ']]') is next
	atValue
	atPostValue
	atInlineTableKey
	atDone
)

// Scanner turns a complete UTF-8 byte buffer into a stream of Tokens. It is
// not safe for concurrent use; create one Scanner per input.
type Scanner struct {
	input []byte
	cursor int

	mode    modeStack
	state   principal
	pending []Token

	// headerArray remembers whether the header key chain currently being
	// closed was opened with "[[" (array-of-tables) or "[" (table), so
	// stepHeaderClose can require and consume the matching number of
	// closing brackets.
	headerArray bool

	maxValueLen int

	Diagnostics *Diagnostics
}

// New returns a Scanner over input. maxValueLen bounds the length of any
// single string/key/number lexeme (0 means "no limit beyond len(input)").
func New(input []byte, maxValueLen int) *Scanner {
	if maxValueLen <= 0 {
		maxValueLen = len(input)
	}
	return &Scanner{
		input:       input,
		state:       atLineStart,
		maxValueLen: maxValueLen,
		Diagnostics: newDiagnostics(),
	}
}

func (s *Scanner) push(t Token) {
	s.pending = append(s.pending, t)
}

// Next returns the next Token in the stream. Once it returns a Token with
// Kind == EndOfDocument, every subsequent call returns the same thing.
func (s *Scanner) Next() (Token, error) {
	for len(s.pending) == 0 {
		if err := s.step(); err != nil {
			return Token{}, err
		}
	}
	t := s.pending[0]
	s.pending = s.pending[1:]
	return t, nil
}

// NextAllocated is like Next, but coalesces a run of partial key/string
// fragments into one token before returning: a borrowed Key/String (the
// exact token Next would have returned) when the content was a single
// contiguous span with no escapes, or an owned AllocatedKey/AllocatedString
// buffer when the scanner had to fragment it (an escape occurred, or a
// multi-line string's backslash-newline continuation split it).
//
// Non-string tokens pass through unchanged.
func (s *Scanner) NextAllocated() (Token, error) {
	first, err := s.Next()
	if err != nil || !first.Kind.IsPartial() {
		return first, err
	}

	allocated := AllocatedString
	if first.Kind == PartialKey || first.Kind == PartialKeyEscaped {
		allocated = AllocatedKey
	}

	buf := append([]byte(nil), first.Data...)
	for {
		t, err := s.Next()
		if err != nil {
			return Token{}, err
		}
		if t.Kind.IsPartial() {
			buf = append(buf, t.Data...)
			continue
		}
		// Terminal Key/String token: its Data, if any, is the final
		// contiguous chunk.
		buf = append(buf, t.Data...)
		return Token{Kind: allocated, Data: buf}, nil
	}
}

// step advances the state machine until at least one token is queued in
// s.pending, or returns an error.
func (s *Scanner) step() error {
	switch s.state {
	case atLineStart:
		return s.stepLineStart()
	case atTableHeaderKey:
		return s.stepHeaderKey(false)
	case atArrayTableHeaderKey:
		return s.stepHeaderKey(true)
	case atAssignEqual:
		return s.stepAssignEqual()
	case atHeaderClose:
		return s.stepHeaderClose()
	case atValue:
		return s.stepValue()
	case atPostValue:
		return s.stepPostValue()
	case atInlineTableKey:
		return s.stepInlineTableKey()
	case atDone:
		s.push(Token{Kind: EndOfDocument})
		return nil
	default:
		panic(fmt.Errorf("unstable: unhandled state %d", s.state))
	}
}

func (s *Scanner) eof() bool {
	return s.cursor >= len(s.input)
}

func (s *Scanner) peek() (byte, bool) {
	if s.eof() {
		return 0, false
	}
	return s.input[s.cursor], true
}

func (s *Scanner) advance() byte {
	b := s.input[s.cursor]
	s.cursor++
	s.Diagnostics.advance(b)
	return b
}

func (s *Scanner) advanceN(n int) {
	for i := 0; i < n; i++ {
		s.advance()
	}
}

func (s *Scanner) peekAt(n int) (byte, bool) {
	if s.cursor+n >= len(s.input) {
		return 0, false
	}
	return s.input[s.cursor+n], true
}

func (s *Scanner) errf(highlightLen int, kind ErrorKind, format string, args ...interface{}) error {
	start := s.cursor
	end := start + highlightLen
	if end > len(s.input) {
		end = len(s.input)
	}
	if start > end {
		start = end
	}
	return NewError(kind, s.input[start:end], fmt.Sprintf(format, args...))
}

// skipWhitespace consumes runs of space and tab (ws = *wschar).
func (s *Scanner) skipWhitespace() {
	for {
		b, ok := s.peek()
		if !ok || (b != ' ' && b != '\t') {
			return
		}
		s.advance()
	}
}

// skipComment consumes a leading '#' and everything up to (excluding) the
// terminating newline or end of input. Comment bytes are validated as
// UTF-8 and must not contain raw control characters (other than tab).
func (s *Scanner) skipComment() error {
	s.advance() // '#'
	for {
		b, ok := s.peek()
		if !ok || b == '\n' {
			return nil
		}
		if b == '\r' {
			if s.cursor+1 < len(s.input) && s.input[s.cursor+1] == '\n' {
				return nil
			}
			return s.errf(1, SyntaxError, "bare carriage return in comment")
		}
		if b < 0x20 && b != '\t' {
			return s.errf(1, SyntaxError, "control character in comment: %#U", b)
		}
		n, ok := decodeUTF8(s.input[s.cursor:])
		if !ok {
			return s.errf(n, SyntaxError, "invalid UTF-8 sequence in comment")
		}
		for i := 0; i < n; i++ {
			s.advance()
		}
	}
}

// consumeNewline consumes '\n' or '\r\n'. Callers must have already
// confirmed the cursor is on a newline.
func (s *Scanner) consumeNewline() error {
	b := s.advance()
	if b == '\r' {
		if s.eof() || s.input[s.cursor] != '\n' {
			return s.errf(1, SyntaxError, "bare carriage return is not a valid newline")
		}
		s.advance()
	}
	return nil
}

func isBareKeyByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '_' || b == '-'
}

// stepLineStart scans whitespace, comments, blank lines, end of input, and
// dispatches on what starts a statement: '[' for a table header (single or
// double bracket), or a key for an assignment.
func (s *Scanner) stepLineStart() error {
	s.skipWhitespace()

	b, ok := s.peek()
	if !ok {
		if !s.mode.empty() {
			return s.errf(0, UnexpectedEndOfInput, "unexpected end of input")
		}
		s.state = atDone
		return nil
	}

	switch {
	case b == '\n' || b == '\r':
		return s.consumeNewline()
	case b == '#':
		return s.skipComment()
	case b == '[':
		s.advance()
		if next, ok := s.peek(); ok && next == '[' {
			s.advance()
			s.state = atArrayTableHeaderKey
			return nil
		}
		s.state = atTableHeaderKey
		return nil
	default:
		s.state = atLineStart // stays here for the continuation key_begin chain
		return s.scanKeyChain(KeyBegin, '=', atAssignEqual)
	}
}

// scanKeyChain scans one dotted key ("a.b.c") made of bare, basic-string,
// or literal-string segments, pushing a beginTok/Key pair per segment, and
// stops right before the byte in closers (without consuming it). It
// transitions to next once done.
func (s *Scanner) scanKeyChain(beginKind Kind, closer byte, next principal) error {
	for {
		s.skipWhitespace()
		s.push(Token{Kind: beginKind})

		b, ok := s.peek()
		if !ok {
			return s.errf(0, UnexpectedEndOfInput, "unexpected end of input while scanning a key")
		}

		switch b {
		case '"':
			if err := s.scanKeyString('"'); err != nil {
				return err
			}
		case '\'':
			if err := s.scanKeyString('\''); err != nil {
				return err
			}
		default:
			if !isBareKeyByte(b) {
				return s.errf(1, SyntaxError, "invalid bare key character: %#U", b)
			}
			start := s.cursor
			for {
				bb, ok := s.peek()
				if !ok || !isBareKeyByte(bb) {
					break
				}
				s.advance()
			}
			if s.cursor-start > s.maxValueLen {
				return s.errf(0, ValueTooLong, "bare key exceeds maximum length")
			}
			s.push(Token{Kind: Key, Data: s.input[start:s.cursor]})
		}

		s.skipWhitespace()

		bb, ok := s.peek()
		if !ok {
			return s.errf(0, UnexpectedEndOfInput, "unexpected end of input after key")
		}
		if bb == '.' {
			s.advance()
			continue
		}
		if bb != closer {
			return s.errf(1, UnexpectedToken, "expected '%c' or '.', got %#U", closer, bb)
		}
		s.state = next
		return nil
	}
}

func (s *Scanner) stepHeaderKey(array bool) error {
	beginKind := TableKeyBegin
	next := atHeaderClose
	if array {
		beginKind = ArrayTableKeyBegin
	}
	s.headerArray = array
	return s.scanKeyChain(beginKind, ']', next)
}

func (s *Scanner) stepHeaderClose() error {
	if err := s.expectByte(']'); err != nil {
		return err
	}
	if s.headerArray {
		if err := s.expectByte(']'); err != nil {
			return err
		}
	}
	s.skipWhitespace()
	if err := s.expectLineTerminator(); err != nil {
		return err
	}
	s.push(Token{Kind: TableBegin})
	s.state = atLineStart
	return nil
}

func (s *Scanner) stepAssignEqual() error {
	s.skipWhitespace()
	b, ok := s.peek()
	if !ok {
		return s.errf(0, UnexpectedEndOfInput, "unexpected end of input, expected '='")
	}
	if b != '=' {
		return s.errf(1, UnexpectedToken, "expected '=', got %#U", b)
	}
	s.advance()
	s.skipWhitespace()
	s.push(Token{Kind: ValueBegin})
	s.state = atValue
	return nil
}

// expectLineTerminator consumes an optional comment and requires a
// newline or end of input next (used after a table header, and after a
// top-level value that isn't inside an array or inline table).
func (s *Scanner) expectLineTerminator() error {
	s.skipWhitespace()
	b, ok := s.peek()
	if !ok {
		return nil
	}
	if b == '#' {
		return s.skipComment()
	}
	if b != '\n' && b != '\r' {
		return s.errf(1, UnexpectedToken, "expected newline or comment, got %#U", b)
	}
	return nil
}

func (s *Scanner) stepValue() error {
	b, ok := s.peek()
	if !ok {
		return s.errf(0, UnexpectedEndOfInput, "unexpected end of input, expected a value")
	}

	switch {
	case b == '"':
		if err := s.scanValueString('"'); err != nil {
			return err
		}
	case b == '\'':
		if err := s.scanValueString('\''); err != nil {
			return err
		}
	case b == '[':
		s.advance()
		s.mode.push(modeArray)
		s.push(Token{Kind: ArrayBegin})
		s.skipArrayLeadingSpace()
		if peeked, ok := s.peek(); ok && peeked == ']' {
			s.advance()
			s.mode.pop()
			s.push(Token{Kind: ArrayEnd})
			s.state = atPostValue
			return nil
		}
		s.state = atValue
		return nil
	case b == '{':
		s.advance()
		s.mode.push(modeInlineTable)
		s.push(Token{Kind: InlineTableBegin})
		s.skipWhitespace()
		if peeked, ok := s.peek(); ok && peeked == '}' {
			s.advance()
			s.mode.pop()
			s.push(Token{Kind: InlineTableEnd})
			s.state = atPostValue
			return nil
		}
		s.state = atInlineTableKey
		return nil
	case s.followsLiteral("true"):
		s.advanceN(4)
		s.push(Token{Kind: True})
		s.state = atPostValue
		return nil
	case s.followsLiteral("false"):
		s.advanceN(5)
		s.push(Token{Kind: False})
		s.state = atPostValue
		return nil
	default:
		tok, err := s.scanNumberOrDatetime()
		if err != nil {
			return err
		}
		s.push(tok)
		s.state = atPostValue
		return nil
	}
	s.state = atPostValue
	return nil
}

func (s *Scanner) followsLiteral(lit string) bool {
	if s.cursor+len(lit) > len(s.input) {
		return false
	}
	if string(s.input[s.cursor:s.cursor+len(lit)]) != lit {
		return false
	}
	if s.cursor+len(lit) < len(s.input) && isBareKeyByte(s.input[s.cursor+len(lit)]) {
		return false
	}
	return true
}

func (s *Scanner) skipArrayLeadingSpace() {
	for {
		b, ok := s.peek()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t':
			s.advance()
		case '\n':
			s.advance()
		case '\r':
			_ = s.consumeNewline()
		case '#':
			_ = s.skipComment()
		default:
			return
		}
	}
}

func (s *Scanner) stepPostValue() error {
	top, hasMode := s.mode.top()

	if !hasMode {
		if err := s.expectLineTerminator(); err != nil {
			return err
		}
		s.state = atLineStart
		return nil
	}

	switch top {
	case modeArray:
		s.skipArrayLeadingSpace()
		b, ok := s.peek()
		if !ok {
			return s.errf(0, UnexpectedEndOfInput, "unexpected end of input in array")
		}
		switch b {
		case ',':
			s.advance()
			s.skipArrayLeadingSpace()
			if peeked, ok := s.peek(); ok && peeked == ']' {
				s.advance()
				s.mode.pop()
				s.push(Token{Kind: ArrayEnd})
				s.state = atPostValue
				return nil
			}
			s.state = atValue
			return nil
		case ']':
			s.advance()
			s.mode.pop()
			s.push(Token{Kind: ArrayEnd})
			s.state = atPostValue
			return nil
		default:
			return s.errf(1, UnexpectedToken, "expected ',' or ']' in array, got %#U", b)
		}

	case modeInlineTable:
		s.skipWhitespace()
		b, ok := s.peek()
		if !ok {
			return s.errf(0, UnexpectedEndOfInput, "unexpected end of input in inline table")
		}
		switch b {
		case ',':
			s.advance()
			s.skipWhitespace()
			s.state = atInlineTableKey
			return nil
		case '}':
			s.advance()
			s.mode.pop()
			s.push(Token{Kind: InlineTableEnd})
			s.state = atPostValue
			return nil
		case '\n', '\r':
			return s.errf(1, SyntaxError, "newlines are not allowed inside an inline table")
		default:
			return s.errf(1, UnexpectedToken, "expected ',' or '}' in inline table, got %#U", b)
		}

	default:
		panic(fmt.Errorf("unstable: unexpected mode %d in stepPostValue", top))
	}
}

func (s *Scanner) stepInlineTableKey() error {
	return s.scanKeyChain(KeyBegin, '=', atAssignEqual)
}
