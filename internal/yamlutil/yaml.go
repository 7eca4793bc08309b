// Package yamlutil decodes bounded YAML documents. It is the only place that
// imports the YAML library.
package yamlutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to 1MB.
var MaxInputSize int64 = 1 << 20

var (
	ErrEmptyInput     = errors.New("yamlutil: empty input")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Option tunes decoding.
type Option func(*options)

type options struct {
	strict bool
}

// Strict rejects keys that do not map to a destination field.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// Decode reads at most MaxInputSize bytes from r into v.
func Decode(r io.Reader, v any, opts ...Option) error {
	if v == nil {
		return ErrNilDestination
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading input: %w", err)
	}
	return DecodeBytes(data, v, opts...)
}

// DecodeBytes decodes data into v.
func DecodeBytes(data []byte, v any, opts ...Option) error {
	if v == nil {
		return ErrNilDestination
	}
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if int64(len(data)) > MaxInputSize {
		return fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, MaxInputSize)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var yopts []yaml.DecodeOption
	if o.strict {
		yopts = append(yopts, yaml.Strict())
	}

	if err := yaml.UnmarshalWithOptions(data, v, yopts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
