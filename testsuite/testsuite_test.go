package testsuite

import (
	"testing"

	"github.com/stretchr/testify/require"

	toml "github.com/tomlkit-go/tomlcore"
)

// fixture is one test case: a document, whether it should fail to parse, and
// (for the documents expected to succeed) its tagged JSON shape.
type fixture struct {
	name    string
	input   string
	wantErr bool
	want    interface{}
}

var fixtures = []fixture{
	{
		name:  "simple key value",
		input: `key = "value"` + "\n",
		want: map[string]interface{}{
			"key": tagged("string", "value"),
		},
	},
	{
		name: "dotted keys build nested tables",
		input: "a.b.c = 1\n",
		want: map[string]interface{}{
			"a": map[string]interface{}{
				"b": map[string]interface{}{
					"c": tagged("integer", "1"),
				},
			},
		},
	},
	{
		name: "table header",
		input: "[a.b]\nc = 1\n",
		want: map[string]interface{}{
			"a": map[string]interface{}{
				"b": map[string]interface{}{
					"c": tagged("integer", "1"),
				},
			},
		},
	},
	{
		name: "array of tables",
		input: "[[fruit]]\nname = \"apple\"\n[[fruit]]\nname = \"banana\"\n",
		want: map[string]interface{}{
			"fruit": []interface{}{
				map[string]interface{}{"name": tagged("string", "apple")},
				map[string]interface{}{"name": tagged("string", "banana")},
			},
		},
	},
	{
		name: "inline table",
		input: `point = { x = 1, y = 2 }` + "\n",
		want: map[string]interface{}{
			"point": map[string]interface{}{
				"x": tagged("integer", "1"),
				"y": tagged("integer", "2"),
			},
		},
	},
	{
		name: "array with mixed element kinds",
		input: `mixed = [1, "two", 3.0]` + "\n",
		want: map[string]interface{}{
			"mixed": []interface{}{
				tagged("integer", "1"),
				tagged("string", "two"),
				tagged("float", "3"),
			},
		},
	},
	{
		name: "basic string escapes",
		input: `s = "a\tb\nc\u00e9"` + "\n",
		want: map[string]interface{}{
			"s": tagged("string", "a\tb\nc\u00e9"),
		},
	},
	{
		name: "literal string has no escapes",
		input: `s = 'C:\temp'` + "\n",
		want: map[string]interface{}{
			"s": tagged("string", `C:\temp`),
		},
	},
	{
		name: "integer bases",
		input: "hex = 0xDEADBEEF\noct = 0o755\nbin = 0b1010\n",
		want: map[string]interface{}{
			"hex": tagged("integer", "3735928559"),
			"oct": tagged("integer", "493"),
			"bin": tagged("integer", "10"),
		},
	},
	{
		name: "float special values",
		input: "a = inf\nb = -inf\nc = nan\n",
		want: map[string]interface{}{
			"a": tagged("float", "+Inf"),
			"b": tagged("float", "-Inf"),
			"c": tagged("float", "NaN"),
		},
	},
	{
		name: "offset datetime",
		input: "d = 1979-05-27T07:32:00-07:00\n",
		want: map[string]interface{}{
			"d": tagged("datetime", "1979-05-27T07:32:00-07:00"),
		},
	},
	{
		name: "local date",
		input: "d = 1979-05-27\n",
		want: map[string]interface{}{
			"d": tagged("date-local", "1979-05-27"),
		},
	},
	{
		name: "local time",
		input: "d = 07:32:00\n",
		want: map[string]interface{}{
			"d": tagged("time-local", "07:32:00"),
		},
	},
	{
		name:    "duplicate key is an error",
		input:   "a = 1\na = 2\n",
		wantErr: true,
	},
	{
		name:    "redefining a table header is an error",
		input:   "[a]\nb = 1\n[a]\n",
		wantErr: true,
	},
	{
		name:    "unterminated basic string is an error",
		input:   "a = \"unterminated\n",
		wantErr: true,
	},
	{
		name:    "leading zero in integer is an error",
		input:   "a = 007\n",
		wantErr: true,
	},
	{
		name:    "array-of-tables header requires matching double brackets",
		input:   "[[a]\n",
		wantErr: true,
	},
}

func TestSuite(t *testing.T) {
	for _, f := range fixtures {
		f := f
		t.Run(f.name, func(t *testing.T) {
			v, err := toml.Parse([]byte(f.input), toml.Options{})
			if f.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			got := addTag(v)
			require.Equal(t, f.want, got)
		})
	}
}
