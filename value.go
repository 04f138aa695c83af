package toml

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant of Value is populated.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBool
	KindDatetime
	KindArray
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindDatetime:
		return "datetime"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	default:
		return "invalid"
	}
}

// Value is the tagged union produced by Parse: a TOML scalar, array, or
// table. The zero Value is KindInvalid.
//
// Values returned by Parse may hold string data that borrows the input
// byte slice passed to Parse; callers that need the result to outlive (or
// survive mutation of) the input must pass Options.Allocate = AllocateAlways.
type Value struct {
	kind Kind

	str string
	i64 int64
	f64 float64
	b   bool
	dt  Datetime
	arr []Value
	tbl *Table
}

func stringValue(s string) Value   { return Value{kind: KindString, str: s} }
func integerValue(i int64) Value   { return Value{kind: KindInteger, i64: i} }
func floatValue(f float64) Value   { return Value{kind: KindFloat, f64: f} }
func boolValue(b bool) Value       { return Value{kind: KindBool, b: b} }
func datetimeValue(d Datetime) Value { return Value{kind: KindDatetime, dt: d} }
func arrayValue(a []Value) Value   { return Value{kind: KindArray, arr: a} }
func tableValue(t *Table) Value    { return Value{kind: KindTable, tbl: t} }

// Kind reports which variant of Value is populated.
func (v Value) Kind() Kind { return v.kind }

// String returns the value's string content. It panics if Kind() != KindString.
func (v Value) String() string {
	if v.kind != KindString {
		panic(fmt.Errorf("toml: Value.String called on a %s", v.kind))
	}
	return v.str
}

// Int returns the value's integer content. It panics if Kind() != KindInteger.
func (v Value) Int() int64 {
	if v.kind != KindInteger {
		panic(fmt.Errorf("toml: Value.Int called on a %s", v.kind))
	}
	return v.i64
}

// Float returns the value's float content. It panics if Kind() != KindFloat.
func (v Value) Float() float64 {
	if v.kind != KindFloat {
		panic(fmt.Errorf("toml: Value.Float called on a %s", v.kind))
	}
	return v.f64
}

// Bool returns the value's boolean content. It panics if Kind() != KindBool.
func (v Value) Bool() bool {
	if v.kind != KindBool {
		panic(fmt.Errorf("toml: Value.Bool called on a %s", v.kind))
	}
	return v.b
}

// AsDatetime returns the value's datetime content. It panics if
// Kind() != KindDatetime.
func (v Value) AsDatetime() Datetime {
	if v.kind != KindDatetime {
		panic(fmt.Errorf("toml: Value.AsDatetime called on a %s", v.kind))
	}
	return v.dt
}

// Array returns the value's element slice. It panics if Kind() != KindArray.
// The returned slice shares storage with v; callers must not mutate it.
func (v Value) Array() []Value {
	if v.kind != KindArray {
		panic(fmt.Errorf("toml: Value.Array called on a %s", v.kind))
	}
	return v.arr
}

// Table returns the value's table content. It panics if Kind() != KindTable.
func (v Value) Table() *Table {
	if v.kind != KindTable {
		panic(fmt.Errorf("toml: Value.Table called on a %s", v.kind))
	}
	return v.tbl
}

// GoString renders v for debugging, following the shape of Go's %#v for
// the scalar kinds and recursing for arrays and tables.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindInteger:
		return strconv.FormatInt(v.i64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDatetime:
		return v.dt.String()
	case KindArray:
		s := "["
		for i, e := range v.arr {
			if i > 0 {
				s += ", "
			}
			s += e.GoString()
		}
		return s + "]"
	case KindTable:
		return v.tbl.GoString()
	default:
		return "<invalid>"
	}
}

// Table is an insertion-ordered mapping from string key to Value.
type Table struct {
	keys   []string
	values map[string]Value
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{values: make(map[string]Value)}
}

// Len returns the number of direct keys in t.
func (t *Table) Len() int { return len(t.keys) }

// Keys returns t's keys in source insertion order. The returned slice must
// not be mutated.
func (t *Table) Keys() []string { return t.keys }

// Get returns the value at key and whether it was present.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.values[key]
	return v, ok
}

// set inserts or overwrites key, appending to the key order the first time
// key is seen. The tree builder is the only caller; it has already
// enforced duplicate-key rules through the declaration registry by the
// time it calls this.
func (t *Table) set(key string, v Value) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// GoString renders t for debugging.
func (t *Table) GoString() string {
	s := "{"
	for i, k := range t.keys {
		if i > 0 {
			s += ", "
		}
		s += strconv.Quote(k) + ": " + t.values[k].GoString()
	}
	return s + "}"
}

// ToInterface projects v into a generic interface{} tree made of string,
// int64, float64, bool, Datetime, []interface{}, and map[string]interface{}.
// It is a generic tagged-union-to-interface{} conversion used by the
// JSON-emitting CLI tools and the conformance test harness; it is not
// schema-driven decoding into an application-defined type.
func ToInterface(v Value) interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return v.i64
	case KindFloat:
		return v.f64
	case KindBool:
		return v.b
	case KindDatetime:
		return v.dt
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, e := range v.arr {
			out[i] = ToInterface(e)
		}
		return out
	case KindTable:
		out := make(map[string]interface{}, v.tbl.Len())
		for _, k := range v.tbl.Keys() {
			ev, _ := v.tbl.Get(k)
			out[k] = ToInterface(ev)
		}
		return out
	default:
		return nil
	}
}
