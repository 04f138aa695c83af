package toml

import (
	"github.com/tomlkit-go/tomlcore/internal/danger"
	"github.com/tomlkit-go/tomlcore/internal/tracker"
	"github.com/tomlkit-go/tomlcore/unstable"
)

// builder drives a Scanner and assembles its token stream into a root
// Value, per spec.md §4.2. It resolves dotted key paths, maintains the
// declaration registry that enforces TOML's duplicate-key and
// table/array-of-tables merge rules, and delegates numeric/datetime
// lexeme decoding to decode.go and datetime.go.
type builder struct {
	scanner *unstable.Scanner
	opts    Options
	input   []byte

	root *Table
	reg  *tracker.Registry
}

func newBuilder(input []byte, opts Options) *builder {
	s := unstable.New(input, opts.MaxValueLen)
	if opts.Diagnostics != nil {
		s.Diagnostics = opts.Diagnostics
	}
	return &builder{
		scanner: s,
		opts:    opts,
		input:   input,
		root:    NewTable(),
		reg:     tracker.New(),
	}
}

// run drives the scanner to completion and returns the assembled root
// table. cur/curReg/curRegID track the table and registry scope that a
// bare "key = value" line (as opposed to a [header]) currently targets:
// the most recently opened table header, or the root.
func (b *builder) run() (*Table, error) {
	cur := b.root
	curReg := b.reg
	curRegID := tracker.Root

	for {
		tok, err := b.scanner.Next()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case unstable.EndOfDocument:
			return b.root, nil

		case unstable.KeyBegin:
			if err := b.parseAssignment(cur, curReg, curRegID); err != nil {
				return nil, err
			}

		case unstable.TableKeyBegin:
			cur, curReg, curRegID, err = b.openTable()
			if err != nil {
				return nil, err
			}

		case unstable.ArrayTableKeyBegin:
			cur, curReg, curRegID, err = b.openArrayTable()
			if err != nil {
				return nil, err
			}

		default:
			return nil, unstable.NewError(unstable.UnexpectedToken, tok.Data, "unexpected token "+tok.Kind.String()+" at top level")
		}
	}
}

// readKeyPath consumes the Key(/AllocatedKey) chain that follows a
// KeyBegin, TableKeyBegin or ArrayTableKeyBegin token already consumed by
// the caller (the scanner repeats that begin token before every further
// segment of a dotted key), stopping once it
// reaches the ValueBegin (assignments) or TableBegin (headers) token that
// ends it, and returns that terminating token alongside the segments.
//
// spans[i] is a document highlight for segments[i], for use by a later
// registry check that rejects it: the token's own Data when it's a bare
// Key (always a genuine sub-slice of b.input, scanned before any
// queueing delay, so it stays valid however much later it's read), or a
// zero-width slice at the scanner's current position as a fallback for
// the rare AllocatedKey case (an escaped or line-continued quoted key),
// whose coalesced Data is a scanner-owned buffer rather than input bytes.
func (b *builder) readKeyPath() ([]string, [][]byte, unstable.Token, error) {
	var segments []string
	var spans [][]byte
	for {
		tok, err := b.scanner.NextAllocated()
		if err != nil {
			return nil, nil, unstable.Token{}, err
		}
		switch tok.Kind {
		case unstable.Key:
			segments = append(segments, b.internString(tok))
			spans = append(spans, tok.Data)
		case unstable.AllocatedKey:
			segments = append(segments, b.internString(tok))
			off := b.scanner.Diagnostics.Offset
			spans = append(spans, b.input[off:off])
		default:
			return nil, nil, unstable.Token{}, unstable.NewError(unstable.UnexpectedToken, tok.Data, "unexpected token "+tok.Kind.String()+" in key")
		}

		next, err := b.scanner.Next()
		if err != nil {
			return nil, nil, unstable.Token{}, err
		}
		switch next.Kind {
		case unstable.KeyBegin, unstable.TableKeyBegin, unstable.ArrayTableKeyBegin:
			continue
		case unstable.ValueBegin, unstable.TableBegin:
			return segments, spans, next, nil
		default:
			return nil, nil, unstable.Token{}, unstable.NewError(unstable.UnexpectedToken, next.Data, "unexpected token "+next.Kind.String()+" after key")
		}
	}
}

// internString converts tok.Data per b.opts.Allocate: a zero-copy view
// into the scanner's input by default, or a copy when the caller asked
// for the result to outlive (or survive mutation of) that input.
func (b *builder) internString(tok unstable.Token) string {
	if b.opts.Allocate == AllocateAlways {
		return string(tok.Data)
	}
	return danger.BytesToString(tok.Data)
}

// walkToParent ensures (creating as needed) every implicit table named by
// segments[:len(segments)-1] under table/regID, and returns the resulting
// table, registry scope, the path's final segment, and that segment's
// document span (for the caller's own registry check).
func walkToParent(reg *tracker.Registry, table *Table, regID int, segments []string, spans [][]byte) (*Table, int, string, []byte, error) {
	last := len(segments) - 1
	for i, seg := range segments[:last] {
		id, err := reg.EnsureImplicitTable(regID, []byte(seg))
		if err != nil {
			return nil, 0, "", nil, newKindError(DuplicateKey, spans[i], "%s", err)
		}
		regID = id
		table = subtable(table, seg)
	}
	return table, regID, segments[last], spans[last], nil
}

// subtable returns (creating if absent) the *Table stored under key in t.
// Called only after the registry has confirmed key is safe to walk
// through (an implicit table, an explicit table, or an array of tables),
// so the value at key is either absent, already a KindTable, or a
// KindArray of tables produced by [[array-of-tables]] headers — in which
// case walking "through" the key means walking into its last element, per
// TOML's rule that a dotted key or nested header following an
// array-of-tables header always refers to the most recently appended
// element.
func subtable(t *Table, key string) *Table {
	if v, ok := t.Get(key); ok {
		if v.kind == KindArray {
			return v.arr[len(v.arr)-1].tbl
		}
		return v.tbl
	}
	nt := NewTable()
	t.set(key, tableValue(nt))
	return nt
}

// parseAssignment handles a KeyBegin already consumed by the caller: it
// reads the rest of the dotted key, walks/creates intermediate implicit
// tables, decodes the value, and installs it in cur/reg (the table and
// registry scope this key chain is relative to).
func (b *builder) parseAssignment(cur *Table, reg *tracker.Registry, regID int) error {
	segments, spans, _, err := b.readKeyPath()
	if err != nil {
		return err
	}

	table, leafRegID, last, lastSpan, err := walkToParent(reg, cur, regID, segments, spans)
	if err != nil {
		return err
	}

	value, kind, err := b.parseValue()
	if err != nil {
		return err
	}

	if kind == tracker.Table {
		if _, err := reg.DeclareInlineTable(leafRegID, []byte(last)); err != nil {
			return newKindError(DuplicateKey, lastSpan, "%s", err)
		}
	} else {
		if _, err := reg.DeclareValue(leafRegID, []byte(last), kind); err != nil {
			return newKindError(DuplicateKey, lastSpan, "%s", err)
		}
	}
	table.set(last, value)
	return nil
}

// parseValue consumes one value (the ValueBegin separator has already
// been consumed by readKeyPath) and returns the decoded Value and the
// declaration kind to register for it. Inline tables register as
// tracker.Table; their contents are parsed under a fresh, isolated
// registry, per spec.md §4.2 "Inline tables".
func (b *builder) parseValue() (Value, tracker.Kind, error) {
	tok, err := b.scanner.NextAllocated()
	if err != nil {
		return Value{}, 0, err
	}
	return b.decodeValueToken(tok)
}

// decodeValueToken decodes a single already-read value-starting token,
// shared by top-level/inline-table assignments (parseValue) and array
// elements (parseArray), which differ only in what precedes the token.
func (b *builder) decodeValueToken(tok unstable.Token) (Value, tracker.Kind, error) {
	switch tok.Kind {
	case unstable.String, unstable.AllocatedString:
		return stringValue(b.internString(tok)), tracker.String, nil

	case unstable.Int:
		i, err := parseInteger(tok.Data)
		if err != nil {
			return Value{}, 0, err
		}
		return integerValue(i), tracker.Int, nil

	case unstable.Float:
		f, err := parseFloat(tok.Data)
		if err != nil {
			return Value{}, 0, err
		}
		return floatValue(f), tracker.Float, nil

	case unstable.Datetime:
		dt, err := parseDatetime(tok.Data)
		if err != nil {
			return Value{}, 0, err
		}
		return datetimeValue(dt), tracker.Datetime, nil

	case unstable.True:
		return boolValue(true), tracker.Bool, nil

	case unstable.False:
		return boolValue(false), tracker.Bool, nil

	case unstable.ArrayBegin:
		arr, err := b.parseArray()
		if err != nil {
			return Value{}, 0, err
		}
		return arrayValue(arr), tracker.Array, nil

	case unstable.InlineTableBegin:
		t, err := b.parseInlineTable()
		if err != nil {
			return Value{}, 0, err
		}
		return tableValue(t), tracker.Table, nil

	default:
		return Value{}, 0, unstable.NewError(unstable.UnexpectedToken, tok.Data, "unexpected token "+tok.Kind.String()+" where a value was expected")
	}
}

// parseArray repeatedly decodes elements until ArrayEnd. Each element may
// itself be any value, including a nested array or inline table; TOML 1.0
// allows arrays to be heterogeneous.
func (b *builder) parseArray() ([]Value, error) {
	var elems []Value
	for {
		tok, err := b.scanner.NextAllocated()
		if err != nil {
			return nil, err
		}
		if tok.Kind == unstable.ArrayEnd {
			return elems, nil
		}

		v, _, err := b.decodeValueToken(tok)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
}

// parseInlineTable parses key/value pairs with a fresh, isolated
// declaration registry (spec.md §3 "Inline tables are sealed at their
// closing brace") until InlineTableEnd.
func (b *builder) parseInlineTable() (*Table, error) {
	t := NewTable()
	reg := tracker.New()

	tok, err := b.scanner.Next()
	if err != nil {
		return nil, err
	}
	if tok.Kind == unstable.InlineTableEnd {
		return t, nil
	}
	if tok.Kind != unstable.KeyBegin {
		return nil, unstable.NewError(unstable.UnexpectedToken, tok.Data, "expected a key or '}' in inline table")
	}

	for {
		if err := b.parseAssignment(t, reg, tracker.Root); err != nil {
			return nil, err
		}

		tok, err := b.scanner.Next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case unstable.InlineTableEnd:
			return t, nil
		case unstable.KeyBegin:
			continue
		default:
			return nil, unstable.NewError(unstable.UnexpectedToken, tok.Data, "expected ',' or '}' in inline table")
		}
	}
}

// openTable handles a [a.b.c] header: walk/create intermediate implicit
// tables from the document root, then declare (or promote) the final
// segment as an explicit table, per spec.md §4.2 "Table headers". Header
// paths are always absolute from the root, never relative to whatever
// table preceded them.
func (b *builder) openTable() (*Table, *tracker.Registry, int, error) {
	segments, spans, _, err := b.readKeyPath()
	if err != nil {
		return nil, nil, 0, err
	}

	table, parentID, last, lastSpan, err := walkToParent(b.reg, b.root, tracker.Root, segments, spans)
	if err != nil {
		return nil, nil, 0, err
	}

	id, err := b.reg.DeclareTable(parentID, []byte(last))
	if err != nil {
		return nil, nil, 0, newKindError(DuplicateKey, lastSpan, "%s", err)
	}

	return subtable(table, last), b.reg, id, nil
}

// openArrayTable handles a [[a.b.c]] header: walk/create intermediate
// implicit tables from the document root, then append a fresh table to
// (or create) the array at the final segment. The new element's body is
// parsed under a fresh, isolated registry, per spec.md §4.2
// "Array-of-tables headers".
func (b *builder) openArrayTable() (*Table, *tracker.Registry, int, error) {
	segments, spans, _, err := b.readKeyPath()
	if err != nil {
		return nil, nil, 0, err
	}

	table, parentID, last, lastSpan, err := walkToParent(b.reg, b.root, tracker.Root, segments, spans)
	if err != nil {
		return nil, nil, 0, err
	}

	if _, err := b.reg.DeclareArrayTable(parentID, []byte(last)); err != nil {
		return nil, nil, 0, newKindError(DuplicateKey, lastSpan, "%s", err)
	}

	fresh := NewTable()
	if existing, ok := table.Get(last); ok {
		table.set(last, arrayValue(append(existing.arr, tableValue(fresh))))
	} else {
		table.set(last, arrayValue([]Value{tableValue(fresh)}))
	}

	return fresh, tracker.New(), tracker.Root, nil
}
