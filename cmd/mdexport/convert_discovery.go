package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/transliterate"
)

// Sentinel errors for file discovery and input.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrReadCSS            = errors.New("failed to read CSS file")
)

// FileToConvert is one source file and the directory its renditions go to.
type FileToConvert struct {
	InputPath string
	OutputDir string
}

// OutputPath returns the rendition path for format f.
func (f FileToConvert) OutputPath(format mdexport.Format) string {
	dir := f.OutputDir
	if dir == "" {
		dir = filepath.Dir(f.InputPath)
	}
	return fileutil.OutputPath(f.InputPath, dir, string(format))
}

// discoverFiles finds the Markdown files under inputPath. With an output
// directory, files found in subdirectories keep their relative layout.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkdownFile(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []FileToConvert{{InputPath: inputPath, OutputDir: outputDir}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdownFile(path) {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath: path,
			OutputDir: mirrorDir(inputPath, path, outputDir),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b FileToConvert) int {
		return strings.Compare(a.InputPath, b.InputPath)
	})
	return files, nil
}

// mirrorDir maps the directory of path (under root) into outputDir.
func mirrorDir(root, path, outputDir string) string {
	if outputDir == "" {
		return ""
	}
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		return outputDir
	}
	return filepath.Join(outputDir, rel)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdexport.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdexport.MaxPoolSize)
	}
	return nil
}

// readMarkdown reads a source file as UTF-8. A UTF-8 or UTF-16 byte order
// mark selects the encoding and is stripped; invalid bytes become U+FFFD.
func readMarkdown(path string) (string, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	return decodeText(raw)
}

func decodeText(raw []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", fmt.Errorf("%w: decoding: %v", ErrReadMarkdown, err)
	}
	return string(text), nil
}

// documentTitle picks the title for a file: the configured one, else the
// first Heading1 directive, else the file name without extension. Headings
// are detected the same way the DOCX body classifies them.
func documentTitle(configured, markdown, path string) string {
	if configured != "" {
		return configured
	}
	for d := range transliterate.Transliterate(markdown) {
		if d.Kind != transliterate.Heading1 {
			continue
		}
		if h := strings.TrimSpace(d.Text); h != "" {
			return h
		}
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
