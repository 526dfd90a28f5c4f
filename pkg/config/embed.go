package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded defaults file verbatim.
func DefaultsContent() string {
	return string(defaultConfig)
}

// rawBytesProvider feeds the embedded defaults to koanf's TOML parser.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }

// Read is unused: koanf only calls it when no parser is given.
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("rawBytesProvider requires a parser")
}
