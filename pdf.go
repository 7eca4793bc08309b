package mdexport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PDF engine names.
const (
	EngineWeasyPrint  = "weasyprint"
	EngineWkhtmltopdf = "wkhtmltopdf"
	EngineChrome      = "chrome"
)

// DefaultPDFEngines returns the engine priority used when none is
// configured. Chrome comes last because it may download Chromium.
func DefaultPDFEngines() []string {
	return []string{EngineWeasyPrint, EngineWkhtmltopdf, EngineChrome}
}

// PDFEngine renders a complete HTML document to PDF.
type PDFEngine interface {
	// Name identifies the engine in results and diagnostics.
	Name() string

	// Available reports whether the engine can run on this host.
	// Returns nil when usable, ErrEngineNotFound (wrapped) otherwise.
	Available(ctx context.Context) error

	// Render converts htmlContent to PDF bytes.
	Render(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error)

	// Close releases engine resources. Safe to call more than once.
	Close() error
}

// NewPDFEngine creates an engine by name. The timeout bounds a single
// Render call.
func NewPDFEngine(name string, timeout time.Duration) (PDFEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EngineWeasyPrint:
		return newWeasyPrintEngine(timeout), nil
	case EngineWkhtmltopdf:
		return newWkhtmltopdfEngine(timeout), nil
	case EngineChrome:
		return newChromeEngine(timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s)", ErrUnknownPDFEngine, name, strings.Join(DefaultPDFEngines(), ", "))
	}
}

// EngineError records why one engine could not render.
type EngineError struct {
	Engine string
	Err    error
}

func (e *EngineError) Error() string {
	return e.Engine + ": " + e.Err.Error()
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// pdfChain tries engines in priority order until one renders.
type pdfChain struct {
	engines []PDFEngine
}

func newPDFChain(engines ...PDFEngine) *pdfChain {
	return &pdfChain{engines: engines}
}

// Render returns the PDF and the name of the engine that produced it.
// Unavailable engines are skipped and render failures fall through to the
// next engine. Context cancellation stops the chain immediately. When every
// engine fails the error wraps ErrNoPDFEngine and each *EngineError.
func (c *pdfChain) Render(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, string, error) {
	if len(c.engines) == 0 {
		return nil, "", fmt.Errorf("%w: no engines configured", ErrNoPDFEngine)
	}

	var errs []error
	for _, engine := range c.engines {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		if err := engine.Available(ctx); err != nil {
			errs = append(errs, &EngineError{Engine: engine.Name(), Err: err})
			continue
		}

		pdf, err := engine.Render(ctx, htmlContent, page)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, "", ctxErr
			}
			errs = append(errs, &EngineError{Engine: engine.Name(), Err: err})
			continue
		}
		return pdf, engine.Name(), nil
	}

	return nil, "", fmt.Errorf("%w: %w", ErrNoPDFEngine, errors.Join(errs...))
}

// Close closes every engine and joins their errors.
func (c *pdfChain) Close() error {
	var errs []error
	for _, engine := range c.engines {
		if err := engine.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", engine.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// EngineStatus is the availability of one engine.
type EngineStatus struct {
	Name string
	Err  error // nil when available
}

// ProbePDFEngines checks the availability of the named engines without
// rendering anything. Unknown names are reported with ErrUnknownPDFEngine.
func ProbePDFEngines(ctx context.Context, names []string) []EngineStatus {
	statuses := make([]EngineStatus, 0, len(names))
	for _, name := range names {
		engine, err := NewPDFEngine(name, defaultTimeout)
		if err != nil {
			statuses = append(statuses, EngineStatus{Name: name, Err: err})
			continue
		}
		statuses = append(statuses, EngineStatus{Name: engine.Name(), Err: engine.Available(ctx)})
		_ = engine.Close()
	}
	return statuses
}
