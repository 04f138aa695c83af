package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	input := `
[mytoml]
a = 42`

	out := new(bytes.Buffer)
	err := convert(strings.NewReader(input), out)
	require.NoError(t, err)

	assert.Equal(t, `{
  "mytoml": {
    "a": 42
  }
}
`, out.String())
}

func TestConvertInvalid(t *testing.T) {
	out := new(bytes.Buffer)
	err := convert(strings.NewReader("a = \n"), out)
	require.Error(t, err)
	assert.Empty(t, out.String())
}
