package benchmark_test

import (
	"testing"

	toml "github.com/tomlkit-go/tomlcore"
	"github.com/stretchr/testify/require"
)

const referenceDoc = `
[table]
key = "value"

[table.subtable]
key = "another value"

[table.inline]
name = { first = "Tom", last = "Preston-Werner" }
point = { x = 1, y = 2 }

[string.basic]
basic = "I'm a string. \"You can quote me\". Name\tJos\u00e9\nLocation\tSF."

[string.multiline]
key1 = "One\nTwo"
key2 = """One\nTwo"""
key3 = """
One
Two"""

[string.literal]
winpath  = 'C:\Users\nodejs\templates'
winpath2 = '\\ServerX\admin$\system32\'
quoted   = 'Tom "Dubs" Preston-Werner'
regex    = '<\i\c*\s*>'

[integer]
key1 = 99
key2 = 42
key3 = 0
key4 = -17

[integer.underscores]
key1 = 1_000
key2 = 5_349_221
key3 = 53_49_221

[float.fractional]
key1 = 1.0
key2 = 3.1415
key3 = -0.01

[float.exponent]
key1 = 5e+22
key2 = 1e06
key3 = -2E-2

[float.both]
key = 6.626e-34

[float.underscores]
key1 = 9_224_617.445_991_228_313
key2 = 1e1_00

[boolean]
True = true
False = false

[datetime]
key1 = 1979-05-27T07:32:00Z
key2 = 1979-05-27T00:32:00-07:00
key3 = 1979-05-27T00:32:00.999999-07:00

[array]
key1 = [1, 2, 3]
key2 = ["red", "yellow", "green"]
key3 = [[1, 2], [3, 4, 5]]
key5 = [1, 2, 3]
key6 = [1, 2]

[[products]]
name = "Hammer"
sku = 738594937

[[products]]
name = "Nail"
sku = 284758393
color = "gray"

[[fruit]]
name = "apple"

  [fruit.physical]
  color = "red"
  shape = "round"

  [[fruit.variety]]
  name = "red delicious"

  [[fruit.variety]]
  name = "granny smith"

[[fruit]]
name = "banana"

  [[fruit.variety]]
  name = "plantain"
`

func BenchmarkParseSimple(b *testing.B) {
	doc := []byte(`A = "hello"`)
	for i := 0; i < b.N; i++ {
		if _, err := toml.Parse(doc, toml.Options{}); err != nil {
			panic(err)
		}
	}
}

func BenchmarkParseReferenceDoc(b *testing.B) {
	doc := []byte(referenceDoc)
	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := toml.Parse(doc, toml.Options{}); err != nil {
			panic(err)
		}
	}
}

func BenchmarkParseReferenceDocToInterface(b *testing.B) {
	doc := []byte(referenceDoc)
	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v, err := toml.Parse(doc, toml.Options{})
		if err != nil {
			panic(err)
		}
		_ = toml.ToInterface(v)
	}
}

func TestReferenceDoc(t *testing.T) {
	v, err := toml.Parse([]byte(referenceDoc), toml.Options{})
	require.NoError(t, err)
	require.Equal(t, toml.KindTable, v.Kind())
}
