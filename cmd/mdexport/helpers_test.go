package main

// Notes:
// - Shared fakes for the convert and doctor tests. The fake pool hands out
//   a single fake converter, which is enough because results are indexed
//   by file and the fake is mutex guarded.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-mdexport"
)

var fixedNow = time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC)

// fakeConverter returns a fixed result (or error) and records inputs.
type fakeConverter struct {
	mu     sync.Mutex
	result *mdexport.Result
	err    error
	inputs []mdexport.Input
}

func (f *fakeConverter) Convert(_ context.Context, in mdexport.Input) (*mdexport.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	res := *f.result
	return &res, nil
}

func (f *fakeConverter) calls() []mdexport.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mdexport.Input(nil), f.inputs...)
}

// fakePool serves one converter.
type fakePool struct {
	conv       Converter
	acquireErr error
	size       int

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func (p *fakePool) Acquire() (Converter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.conv, nil
}

func (p *fakePool) Release(Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *fakePool) Size() int {
	if p.size == 0 {
		return 2
	}
	return p.size
}

func (p *fakePool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// testEnv returns an environment writing to buffers and using pool.
func testEnv(pool Pool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: &stdout,
		Stderr: &stderr,
		NewPool: func(int, ...mdexport.Option) Pool {
			return pool
		},
		ProbeEngines: func(context.Context, []string) []mdexport.EngineStatus {
			return nil
		},
	}
	return env, &stdout, &stderr
}

// writeFile creates path (and parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// parseConvert parses convert flags the way cobra would and loads settings.
func parseConvert(t *testing.T, env *Environment, args ...string) (*settings, error) {
	t.Helper()
	root := newRootCmd(env)
	cmd, _, err := root.Find([]string{"convert"})
	if err != nil {
		t.Fatalf("finding convert: %v", err)
	}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parsing flags %v: %v", args, err)
	}
	return loadSettings(cmd, cmd.Flags().Args(), env)
}

// clearMDExportEnv blanks the variables the CLI reads so the host
// environment cannot leak into a test.
func clearMDExportEnv(t *testing.T) {
	t.Helper()
	for name := range knownEnvVars {
		t.Setenv(name, "")
	}
}
