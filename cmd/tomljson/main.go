// Tomljson reads TOML and converts it to JSON.
//
// Usage:
//
//	cat file.toml | tomljson > file.json
//	tomljson file.toml > file.json
package main

import (
	"encoding/json"
	"io"

	toml "github.com/tomlkit-go/tomlcore"
	"github.com/tomlkit-go/tomlcore/internal/cli"
)

const usage = `tomljson can be used in two ways:
Reading from stdin:
  cat file.toml | tomljson > file.json

Reading from a file:
  tomljson file.toml > file.json
`

func main() {
	cli.Execute(usage, convert)
}

func convert(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	v, err := toml.Parse(data, toml.Options{})
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(toml.ToInterface(v), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
