// Package unstable implements the lexical scanner at the heart of the TOML
// parser: a single-pass, byte-oriented state machine that turns a complete
// UTF-8 input buffer into a stream of Tokens. It enforces lexical validity
// (quoting, escapes, UTF-8 well-formedness, whitespace discipline) but
// knows nothing about TOML's structural rules — duplicate keys, table
// merging, and so on are the Tree Builder's job, one layer up.
//
// The package is named unstable because its token stream is an
// implementation detail of the toml package: callers should use
// toml.Parse, not this package, directly.
package unstable

import "fmt"

// Kind identifies what a Token represents.
type Kind uint8

const (
	Invalid Kind = iota

	// Structural tokens carry no payload in Data.
	KeyBegin
	TableKeyBegin
	ArrayTableKeyBegin
	TableBegin
	ValueBegin
	ArrayBegin
	ArrayEnd
	InlineTableBegin
	InlineTableEnd
	True
	False
	EndOfDocument

	// Contentful, borrowed: Data is a slice into the scanner's input.
	Key
	String
	Int
	Float
	Datetime

	// Contentful, fragmentary: Data is either a raw chunk of the input
	// (PartialKey, PartialString) or a single decoded escape byte
	// (PartialKeyEscaped, PartialStringEscaped). A run of these always
	// ends in a Key or String token carrying the final chunk.
	PartialKey
	PartialString
	PartialKeyEscaped
	PartialStringEscaped

	// Contentful, owned: Data is a scanner-allocated buffer, produced by
	// the allocating accessor (see Scanner.NextAllocated) when a key or
	// string could not be returned as a single borrowed slice.
	AllocatedKey
	AllocatedString
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case KeyBegin:
		return "key_begin"
	case TableKeyBegin:
		return "table_key_begin"
	case ArrayTableKeyBegin:
		return "array_table_key_begin"
	case TableBegin:
		return "table_begin"
	case ValueBegin:
		return "value_begin"
	case ArrayBegin:
		return "array_begin"
	case ArrayEnd:
		return "array_end"
	case InlineTableBegin:
		return "inline_table_begin"
	case InlineTableEnd:
		return "inline_table_end"
	case True:
		return "true"
	case False:
		return "false"
	case EndOfDocument:
		return "end_of_document"
	case Key:
		return "key"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Datetime:
		return "datetime"
	case PartialKey:
		return "partial_key"
	case PartialString:
		return "partial_string"
	case PartialKeyEscaped:
		return "partial_key_escaped_1"
	case PartialStringEscaped:
		return "partial_string_escaped_1"
	case AllocatedKey:
		return "allocated_key"
	case AllocatedString:
		return "allocated_string"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPartial reports whether k is one of the fragment kinds that must be
// coalesced by a higher layer before use.
func (k Kind) IsPartial() bool {
	switch k {
	case PartialKey, PartialString, PartialKeyEscaped, PartialStringEscaped:
		return true
	default:
		return false
	}
}

// Token is one unit of the scanner's output stream.
type Token struct {
	Kind Kind

	// Data holds the token's payload:
	//   - nil for purely structural tokens.
	//   - a slice into the scanner's input for Key, String, Int, Float,
	//     Datetime, PartialKey and PartialString.
	//   - exactly one byte, decoded from an escape sequence, for
	//     PartialKeyEscaped and PartialStringEscaped.
	//   - a scanner-owned buffer for AllocatedKey and AllocatedString.
	Data []byte
}

func (t Token) String() string {
	if t.Data == nil {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Data)
}
