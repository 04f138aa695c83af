package toml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomlkit-go/tomlcore/internal/unsafe"
	"github.com/tomlkit-go/tomlcore/unstable"
)

// ErrorKind classifies why a parse failed, per spec.md §7. It is the same
// flat taxonomy the scanner uses internally (unstable.ErrorKind); the tree
// builder raises the structural kinds (DuplicateKey among them) that the
// scanner itself never needs.
type ErrorKind = unstable.ErrorKind

const (
	SyntaxError               = unstable.SyntaxError
	UnexpectedEndOfInput      = unstable.UnexpectedEndOfInput
	UnexpectedToken           = unstable.UnexpectedToken
	DuplicateKey              = unstable.DuplicateKey
	ValueTooLong              = unstable.ValueTooLong
	InvalidCharacter          = unstable.InvalidCharacter
	Overflow                  = unstable.Overflow
	CodepointTooLarge         = unstable.CodepointTooLarge
	CannotEncodeSurrogateHalf = unstable.CannotEncodeSurrogateHalf
	OutOfMemory               = unstable.OutOfMemory
)

// Position identifies a location within a parsed document. Line and
// Column are 1-based; Offset is 0-based bytes from the start of input.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders p as "(line, column)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Line, p.Column)
}

// ParseError is returned by Parse when a document fails to parse. It
// carries enough information for a caller to branch on Kind and render a
// human-readable, source-contextualized message.
type ParseError struct {
	Kind     ErrorKind
	Position Position
	message  string
	human    string
}

func (e *ParseError) Error() string { return e.message }

// String returns the human-readable, multi-line contextualized rendering
// of the error: a few lines of surrounding source with a "~~~~" underline
// beneath the offending span.
func (e *ParseError) String() string { return e.human }

// decodeError is the error shape raised while a document is still in
// scope (highlight is a sub-slice of that document); it is promoted to a
// *ParseError, with position and source context filled in, once it
// escapes to the Parse caller.
type decodeError struct {
	kind      ErrorKind
	highlight []byte
	message   string
}

func (de *decodeError) Error() string { return de.message }

func newDecodeError(highlight []byte, format string, args ...interface{}) error {
	return &decodeError{kind: SyntaxError, highlight: highlight, message: fmt.Sprintf(format, args...)}
}

func newKindError(kind ErrorKind, highlight []byte, format string, args ...interface{}) error {
	return &decodeError{kind: kind, highlight: highlight, message: fmt.Sprintf(format, args...)}
}

// wrapParseError promotes err into a *ParseError positioned within
// document. err may be a *decodeError (from the builder or the numeric
// decoders), a *unstable.Error (from the scanner), or nil.
func wrapParseError(document []byte, err error) error {
	if err == nil {
		return nil
	}

	var kind ErrorKind
	var highlight []byte
	var message string

	switch e := err.(type) {
	case *decodeError:
		kind, highlight, message = e.kind, e.highlight, e.message
	case *unstable.Error:
		kind, highlight, message = e.Kind, e.Highlight, e.Message
	default:
		return err
	}

	pe := &ParseError{Kind: kind, message: message}

	offset := unsafe.SubsliceOffset(document, highlight)
	pe.Position.Offset = offset
	pe.Position.Line, pe.Position.Column = positionAtEnd(document[:offset])
	pe.human = renderExcerpt(document, highlight, pe.Position.Line, message)

	return pe
}

func positionAtEnd(b []byte) (line, column int) {
	line, column = 1, 1
	for _, c := range b {
		if c == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return
}

// renderExcerpt builds the "N lines of context + ~~~~ underline" message
// ParseError.String returns.
func renderExcerpt(document, highlight []byte, line int, message string) string {
	offset := unsafe.SubsliceOffset(document, highlight)
	before, after := linesOfContext(document, highlight, offset, 3)

	var buf strings.Builder
	maxLine := line + len(after) - 1
	width := len(strconv.Itoa(maxLine))

	for i := len(before) - 1; i > 0; i-- {
		buf.WriteString(formatLineNumber(line-i, width))
		buf.WriteString("| ")
		buf.Write(before[i])
		buf.WriteByte('\n')
	}

	buf.WriteString(formatLineNumber(line, width))
	buf.WriteString("| ")
	if len(before) > 0 {
		buf.Write(before[0])
	}
	buf.Write(highlight)
	if len(after) > 0 {
		buf.Write(after[0])
	}
	buf.WriteByte('\n')

	buf.WriteString(strings.Repeat(" ", width))
	buf.WriteString("| ")
	if len(before) > 0 {
		buf.WriteString(strings.Repeat(" ", len(before[0])))
	}
	underlineLen := len(highlight)
	if underlineLen == 0 {
		underlineLen = 1
	}
	buf.WriteString(strings.Repeat("~", underlineLen))
	buf.WriteString(" ")
	buf.WriteString(message)

	for i := 1; i < len(after); i++ {
		buf.WriteByte('\n')
		buf.WriteString(formatLineNumber(line+i, width))
		buf.WriteString("| ")
		buf.Write(after[i])
	}

	return buf.String()
}

func formatLineNumber(line, width int) string {
	return fmt.Sprintf("%"+strconv.Itoa(width)+"d", line)
}

func linesOfContext(document, highlight []byte, offset, around int) (before, after [][]byte) {
	for beforeOffset, lastOffset := offset-1, offset; beforeOffset >= 0 && len(before) <= around; beforeOffset-- {
		if document[beforeOffset] == '\n' {
			before = append(before, document[beforeOffset+1:lastOffset])
			lastOffset = beforeOffset
		} else if beforeOffset == 0 && beforeOffset != lastOffset {
			before = append(before, document[beforeOffset:lastOffset])
		}
	}

	rest := document[offset+len(highlight):]
	for afterOffset, lastOffset := 0, 0; afterOffset < len(rest) && len(after) <= around; afterOffset++ {
		if rest[afterOffset] == '\n' {
			after = append(after, rest[lastOffset:afterOffset])
			afterOffset++
			lastOffset = afterOffset
		} else if afterOffset == len(rest)-1 && lastOffset != afterOffset+1 {
			after = append(after, rest[lastOffset:afterOffset+1])
		}
	}
	return before, after
}
