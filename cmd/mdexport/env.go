package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-mdexport"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// NewPool builds the converter pool used by convert.
	NewPool func(size int, opts ...mdexport.Option) Pool

	// ProbeEngines reports PDF engine availability for doctor.
	ProbeEngines func(ctx context.Context, names []string) []mdexport.EngineStatus
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		NewPool:      newConverterPool,
		ProbeEngines: mdexport.ProbePDFEngines,
	}
}
