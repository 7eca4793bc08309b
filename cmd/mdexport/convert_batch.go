package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/hints"
)

// ErrConverterInit reports that a converter could not be built.
var ErrConverterInit = errors.New("failed to initialize converter")

// ConversionResult holds the outcome of a single file.
type ConversionResult struct {
	InputPath string
	Outputs   []string
	Fallback  string                    // fallback file written, if any
	Failures  []mdexport.RenditionError // renditions replaced by the fallback
	Err       error
	Duration  time.Duration
}

// convertBatch processes files concurrently, one converter per worker.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, s *settings) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], s)
			}
		}()
	}

	wg.Wait()
	return results
}

// convertFile converts one source and writes its renditions.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, s *settings) (result ConversionResult) {
	start := time.Now()
	result.InputPath = f.InputPath
	defer func() { result.Duration = time.Since(start) }()

	markdown, err := readMarkdown(f.InputPath)
	if err != nil {
		result.Err = err
		return result
	}

	doc := s.document
	doc.Title = documentTitle(s.document.Title, markdown, f.InputPath)

	sourceDir, err := filepath.Abs(filepath.Dir(f.InputPath))
	if err != nil {
		sourceDir = filepath.Dir(f.InputPath)
	}

	page := s.page
	res, err := conv.Convert(ctx, mdexport.Input{
		Markdown:  markdown,
		SourceDir: sourceDir,
		Formats:   s.formats,
		Document:  &doc,
		CSS:       s.css,
		Page:      &page,
	})
	if err != nil {
		result.Err = err
		return result
	}

	for _, format := range mdexport.AllFormats() {
		data := rendition(res, format)
		if data == nil {
			continue
		}
		out := f.OutputPath(format)
		if err := fileutil.WriteFile(out, data); err != nil {
			result.Err = err
			return result
		}
		result.Outputs = append(result.Outputs, out)
	}

	if len(res.Failures) > 0 {
		result.Failures = res.Failures
		fallback := fileutil.FallbackPath(f.OutputPath(res.Failures[0].Format))
		if err := fileutil.WriteFile(fallback, res.Fallback); err != nil {
			result.Err = err
			return result
		}
		result.Fallback = fallback
		if s.strict {
			result.Err = fmt.Errorf("fallback written to %s: %w", fallback, res.Failures[0])
		}
	}

	return result
}

func rendition(res *mdexport.Result, f mdexport.Format) []byte {
	switch f {
	case mdexport.FormatHTML:
		return res.HTML
	case mdexport.FormatPDF:
		return res.PDF
	case mdexport.FormatDOCX:
		return res.DOCX
	case mdexport.FormatText:
		return res.Text
	}
	return nil
}

// ResultSummary tallies a batch.
type ResultSummary struct {
	Succeeded int
	Fallbacks int
	Failed    int
}

func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Fallback != "":
			summary.Fallbacks++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// reportResults prints per-file lines and returns an error when any file
// failed. The first failure is wrapped so its exit code survives.
func reportResults(results []ConversionResult, s *settings, env *Environment) error {
	summary := countResults(results)
	var firstErr error

	for _, r := range results {
		for _, fe := range r.Failures {
			fmt.Fprintf(env.Stderr, "warning: %s: %v%s\n", r.InputPath, fe, failureHint(fe))
		}
		if r.Fallback != "" && r.Err == nil {
			fmt.Fprintf(env.Stderr, "warning: %s: wrote fallback %s\n", r.InputPath, r.Fallback)
		}

		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if s.quiet {
			continue
		}
		for _, out := range r.Outputs {
			if s.verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, out, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
	}

	if !s.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d with fallback, %d failed\n",
			summary.Succeeded, summary.Fallbacks, summary.Failed)
	}

	if firstErr != nil {
		return fmt.Errorf("%d of %d file(s) failed: %w", summary.Failed, len(results), firstErr)
	}
	return nil
}

// failureHint suggests a fix for a rendition failure.
func failureHint(fe mdexport.RenditionError) string {
	if errors.Is(fe.Err, mdexport.ErrNoPDFEngine) {
		return hints.ForNoPDFEngine(failedEngines(fe.Err))
	}
	return ""
}

// failedEngines collects engine names from the joined EngineErrors of a
// chain failure.
func failedEngines(err error) []string {
	var names []string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if ee, ok := e.(*mdexport.EngineError); ok {
			names = append(names, ee.Engine)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return names
}
