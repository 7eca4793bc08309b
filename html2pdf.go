package mdexport

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/process"
)

// chromeEngine renders PDF with headless Chrome via go-rod.
// The browser is launched lazily on first Render and reused until Close.
type chromeEngine struct {
	timeout  time.Duration
	lookPath func() (string, bool)

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func newChromeEngine(timeout time.Duration) *chromeEngine {
	return &chromeEngine{timeout: timeout, lookPath: launcher.LookPath}
}

func (e *chromeEngine) Name() string { return EngineChrome }

// Available always succeeds unless browser downloads are disabled and no
// browser is installed: rod fetches a managed Chromium when none is found.
func (e *chromeEngine) Available(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if os.Getenv("ROD_BROWSER_BIN") != "" {
		return nil
	}
	if _, found := e.lookPath(); found {
		return nil
	}
	if os.Getenv("MDEXPORT_NO_BROWSER_DOWNLOAD") != "" {
		return fmt.Errorf("%w: no Chrome or Chromium installed and downloads disabled", ErrEngineNotFound)
	}
	return nil
}

// ensureBrowser lazily launches and connects to the browser.
// Caller must hold e.mu.
func (e *chromeEngine) ensureBrowser() error {
	if e.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	e.browser = browser
	e.launcher = l
	return nil
}

// Render opens htmlContent from a temp file and prints it to PDF.
func (e *chromeEngine) Render(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureBrowser(); err != nil {
		return nil, err
	}

	p, err := e.browser.Page(proto.TargetCreateTarget{URL: fileURL(tmpPath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = p.Close() }()

	// Wait for page to load with timeout from context or default
	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	p = p.Context(ctx).Timeout(timeout)
	if err := p.WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := p.PDF(buildPrintOptions(page.orDefault()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// Close shuts down the browser and kills its process group.
func (e *chromeEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser == nil {
		return nil
	}

	err := e.browser.Close()
	if e.launcher != nil {
		process.KillProcessGroup(e.launcher.PID())
		e.launcher.Kill()
	}
	e.browser = nil
	e.launcher = nil
	return err
}

// buildPrintOptions converts page settings to Chrome print options.
func buildPrintOptions(page *PageSettings) *proto.PagePrintToPDF {
	width, height := page.Dimensions()
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(page.Margin),
		MarginBottom:    floatPtr(page.Margin),
		MarginLeft:      floatPtr(page.Margin),
		MarginRight:     floatPtr(page.Margin),
		PrintBackground: true,
	}
}

// fileURL builds a file:// URL for an absolute local path.
func fileURL(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func floatPtr(v float64) *float64 {
	return &v
}
