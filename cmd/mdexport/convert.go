package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-mdexport"
)

func newConvertCmd(env *Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file|directory]",
		Short: "Convert Markdown files to HTML, PDF, DOCX and text",
		Long: `Convert renders every .md or .markdown file into the requested formats
(html, pdf, docx, txt; all by default). Directories are walked recursively.

PDF engines are tried in order (weasyprint, wkhtmltopdf, chrome by default).
When a PDF or DOCX rendition cannot be produced, the raw Markdown is saved
next to the output as <name>_fallback.txt and the run continues.

Settings come from flags, then MDEXPORT_* environment variables (for
example MDEXPORT_OUTPUT_DIR, MDEXPORT_PDF_PAGE_SIZE), then the --config
file. List variables are comma separated, except MDEXPORT_DOCUMENT_FOOTER
whose lines are separated by "|".`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("%w: convert takes at most one path, got %d", ErrUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, args, env)
			if err != nil {
				return err
			}
			return runConvert(cmd, s, env)
		},
	}

	addConvertFlags(cmd.Flags())
	return cmd
}

// runConvert discovers files, converts them in parallel and reports.
func runConvert(cmd *cobra.Command, s *settings, env *Environment) error {
	files, err := discoverFiles(s.inputPath, s.outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, s.inputPath)
	}

	size := mdexport.ResolvePoolSize(s.workers)
	if size > len(files) {
		size = len(files)
	}
	if s.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d file(s) with %d worker(s)\n", len(files), size)
	}

	pool := env.NewPool(size, s.converterOptions()...)
	defer func() {
		if err := pool.Close(); err != nil && s.verbose {
			fmt.Fprintf(env.Stderr, "warning: releasing converters: %v\n", err)
		}
	}()

	// Invalid converter options surface here, before any file is read.
	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	pool.Release(conv)

	results := convertBatch(cmd.Context(), pool, files, s)
	return reportResults(results, s, env)
}
