// Package testsuite exercises Parse end to end and exposes a decode
// binary interface compatible with the tagged-JSON format used by
// language-agnostic TOML conformance suites: a document on stdin,
// type-tagged JSON on stdout.
package testsuite

import (
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/tomlkit-go/tomlcore"
)

// Decode reads a TOML document from stdin and writes its tagged JSON
// representation to stdout.
func Decode() {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("error reading input: %s", err)
	}

	v, err := toml.Parse(data, toml.Options{})
	if err != nil {
		log.Fatalf("error decoding TOML: %s", err)
	}

	j := json.NewEncoder(os.Stdout)
	j.SetIndent("", "  ")
	if err := j.Encode(addTag(v)); err != nil {
		log.Fatalf("error encoding JSON: %s", err)
	}
}

// addTag recursively wraps v's scalars in the {"type": ..., "value": ...}
// shape used to disambiguate TOML types that JSON collapses (e.g.
// distinguishing an integer from a float, or a datetime from a string).
func addTag(v toml.Value) interface{} {
	switch v.Kind() {
	case toml.KindString:
		return tagged("string", v.String())
	case toml.KindInteger:
		return tagged("integer", v.GoString())
	case toml.KindFloat:
		return tagged("float", v.GoString())
	case toml.KindBool:
		return tagged("bool", v.GoString())
	case toml.KindDatetime:
		dt := v.AsDatetime()
		return tagged(datetimeTag(dt), dt.String())
	case toml.KindArray:
		arr := v.Array()
		out := make([]interface{}, len(arr))
		for i, e := range arr {
			out[i] = addTag(e)
		}
		return out
	case toml.KindTable:
		t := v.Table()
		out := make(map[string]interface{}, t.Len())
		for _, k := range t.Keys() {
			ev, _ := t.Get(k)
			out[k] = addTag(ev)
		}
		return out
	default:
		return nil
	}
}

func tagged(typ, value string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "value": value}
}

func datetimeTag(dt toml.Datetime) string {
	switch {
	case dt.HasDate && dt.HasTime && dt.HasOffset:
		return "datetime"
	case dt.HasDate && dt.HasTime:
		return "datetime-local"
	case dt.HasDate:
		return "date-local"
	default:
		return "time-local"
	}
}
