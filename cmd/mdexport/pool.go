package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdexport"
)

// Converter is the conversion surface the CLI needs.
type Converter interface {
	Convert(ctx context.Context, input mdexport.Input) (*mdexport.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*mdexport.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (Converter, error)
	Release(Converter)
	Size() int
	Close() error
}

// converterPool adapts mdexport.ConverterPool to Pool.
type converterPool struct {
	inner *mdexport.ConverterPool
}

var _ Pool = (*converterPool)(nil)

func newConverterPool(size int, opts ...mdexport.Option) Pool {
	return &converterPool{inner: mdexport.NewConverterPool(size, opts...)}
}

func (p *converterPool) Acquire() (Converter, error) {
	conv, err := p.inner.Acquire()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	return conv, nil
}

func (p *converterPool) Release(c Converter) {
	if conv, ok := c.(*mdexport.Converter); ok {
		p.inner.Release(conv)
	}
}

func (p *converterPool) Size() int    { return p.inner.Size() }
func (p *converterPool) Close() error { return p.inner.Close() }
