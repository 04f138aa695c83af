package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValid(t *testing.T) {
	out := new(bytes.Buffer)
	err := validate(strings.NewReader("a = 1\n"), out)
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out.String())
}

func TestValidateInvalid(t *testing.T) {
	out := new(bytes.Buffer)
	err := validate(strings.NewReader("a = 1\na = 2\n"), out)
	require.Error(t, err)
	assert.Empty(t, out.String())
}
