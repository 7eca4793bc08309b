package mdexport

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/process"
)

// maxStderrInError caps the engine output quoted in errors.
const maxStderrInError = 512

// argsBuilder returns the command line for converting inPath to outPath.
// extraFiles are temporary files created for the call, removed afterwards.
type argsBuilder func(inPath, outPath string, page *PageSettings) (args []string, extraFiles []string, err error)

// commandEngine renders PDF by running an external converter binary on a
// temporary HTML file.
type commandEngine struct {
	name     string
	binary   string
	envVar   string // overrides binary when set
	timeout  time.Duration
	args     argsBuilder
	lookPath func(string) (string, error)
}

// Compile-time interface checks.
var (
	_ PDFEngine = (*commandEngine)(nil)
	_ PDFEngine = (*chromeEngine)(nil)
)

func newWeasyPrintEngine(timeout time.Duration) *commandEngine {
	return &commandEngine{
		name:     EngineWeasyPrint,
		binary:   "weasyprint",
		envVar:   "WEASYPRINT_BIN",
		timeout:  timeout,
		args:     weasyPrintArgs,
		lookPath: exec.LookPath,
	}
}

func newWkhtmltopdfEngine(timeout time.Duration) *commandEngine {
	return &commandEngine{
		name:     EngineWkhtmltopdf,
		binary:   "wkhtmltopdf",
		envVar:   "WKHTMLTOPDF_BIN",
		timeout:  timeout,
		args:     wkhtmltopdfArgs,
		lookPath: exec.LookPath,
	}
}

func (e *commandEngine) Name() string { return e.name }

// Available checks the binary can be found.
func (e *commandEngine) Available(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := e.resolveBinary()
	return err
}

func (e *commandEngine) resolveBinary() (string, error) {
	bin := e.binary
	if e.envVar != "" {
		if override := os.Getenv(e.envVar); override != "" {
			bin = override
		}
	}
	path, err := e.lookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrEngineNotFound, bin)
	}
	return path, nil
}

// Render writes htmlContent to a temp file, runs the binary and reads the
// produced PDF. The whole process group is killed on cancellation.
func (e *commandEngine) Render(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bin, err := e.resolveBinary()
	if err != nil {
		return nil, err
	}

	inPath, cleanupIn, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanupIn()

	outDir, err := os.MkdirTemp("", "mdexport-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("%w: creating output dir: %v", ErrPDFGeneration, err)
	}
	defer func() { _ = os.RemoveAll(outDir) }()
	outPath := filepath.Join(outDir, "out.pdf")

	args, extraFiles, err := e.args(inPath, outPath, page.orDefault())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer func() {
		for _, f := range extraFiles {
			_ = os.Remove(f)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, bin, args...) // #nosec G204 -- binary resolved from PATH or operator env
	cmd.Stderr = &stderr
	process.SetProcessGroup(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = 2 * time.Second

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if runCtx.Err() != nil {
			return nil, fmt.Errorf("%w: %s timed out after %s", ErrPDFGeneration, e.name, e.timeout)
		}
		return nil, fmt.Errorf("%w: %s: %v%s", ErrPDFGeneration, e.name, err, stderrSuffix(stderr.Bytes()))
	}

	pdf, err := os.ReadFile(outPath) // #nosec G304 -- path created above
	if err != nil {
		return nil, fmt.Errorf("%w: reading output: %v", ErrPDFGeneration, err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: %s produced an empty file", ErrPDFGeneration, e.name)
	}
	return pdf, nil
}

// Close is a no-op: no process outlives Render.
func (e *commandEngine) Close() error { return nil }

// stderrSuffix formats the tail of the engine output for an error message.
func stderrSuffix(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return ""
	}
	if len(msg) > maxStderrInError {
		msg = "..." + msg[len(msg)-maxStderrInError:]
	}
	return ": " + msg
}

// pageCSS returns an @page rule for engines that take page geometry from CSS.
func pageCSS(page *PageSettings) string {
	return fmt.Sprintf("@page { size: %s %s; margin: %sin; }",
		cssPageSize(page.Size), strings.ToLower(page.Orientation), formatInches(page.Margin))
}

// cssPageSize maps a page size to its CSS keyword.
func cssPageSize(size string) string {
	switch strings.ToLower(size) {
	case PageSizeLetter:
		return "letter"
	case PageSizeLegal:
		return "legal"
	default:
		return "A4"
	}
}

// wkhtmltopdfPageSize maps a page size to the wkhtmltopdf (Qt) name.
func wkhtmltopdfPageSize(size string) string {
	switch strings.ToLower(size) {
	case PageSizeLetter:
		return "Letter"
	case PageSizeLegal:
		return "Legal"
	default:
		return "A4"
	}
}

func formatInches(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

// weasyPrintArgs passes page geometry as a user stylesheet.
func weasyPrintArgs(inPath, outPath string, page *PageSettings) ([]string, []string, error) {
	cssPath, _, err := fileutil.WriteTempFile(pageCSS(page), "css")
	if err != nil {
		return nil, nil, err
	}
	args := []string{
		"--encoding", "utf-8",
		"--stylesheet", cssPath,
		inPath, outPath,
	}
	return args, []string{cssPath}, nil
}

// wkhtmltopdfArgs mirrors the pdfkit options: page size, margins, UTF-8
// and no outline.
func wkhtmltopdfArgs(inPath, outPath string, page *PageSettings) ([]string, []string, error) {
	margin := formatInches(page.Margin) + "in"
	orientation := "Portrait"
	if strings.EqualFold(page.Orientation, OrientationLandscape) {
		orientation = "Landscape"
	}
	args := []string{
		"--quiet",
		"--page-size", wkhtmltopdfPageSize(page.Size),
		"--orientation", orientation,
		"--margin-top", margin,
		"--margin-right", margin,
		"--margin-bottom", margin,
		"--margin-left", margin,
		"--encoding", "UTF-8",
		"--no-outline",
		"--enable-local-file-access",
		inPath, outPath,
	}
	return args, nil, nil
}
