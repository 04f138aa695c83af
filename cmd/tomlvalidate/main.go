// Tomlvalidate checks that a document is well-formed TOML, printing a
// positioned diagnostic and exiting non-zero if it isn't.
//
// Usage:
//
//	cat file.toml | tomlvalidate
//	tomlvalidate file.toml
package main

import (
	"fmt"
	"io"

	toml "github.com/tomlkit-go/tomlcore"
	"github.com/tomlkit-go/tomlcore/internal/cli"
)

const usage = `tomlvalidate can be used in two ways:
Reading from stdin:
  cat file.toml | tomlvalidate

Reading from a file:
  tomlvalidate file.toml
`

func main() {
	cli.Execute(usage, validate)
}

func validate(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	if _, err := toml.Parse(data, toml.Options{}); err != nil {
		pe, ok := err.(*toml.ParseError)
		if !ok {
			return err
		}
		return fmt.Errorf("%s at %s: %s", pe.Kind, pe.Position, pe.String())
	}

	_, err = fmt.Fprintln(w, "valid")
	return err
}
