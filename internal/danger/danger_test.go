package danger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomlkit-go/tomlcore/internal/danger"
)

func TestBytesToStringRoundTrip(t *testing.T) {
	b := []byte("hello world")
	s := danger.BytesToString(b)
	require.Equal(t, "hello world", s)
}

func TestBytesToStringEmpty(t *testing.T) {
	require.Equal(t, "", danger.BytesToString(nil))
	require.Equal(t, "", danger.BytesToString([]byte{}))
}

func TestStringToBytesRoundTrip(t *testing.T) {
	s := "hello world"
	b := danger.StringToBytes(s)
	require.Equal(t, []byte("hello world"), b)
}

func TestStringToBytesEmpty(t *testing.T) {
	require.Nil(t, danger.StringToBytes(""))
}
