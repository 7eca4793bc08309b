package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdexport/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-mdexport"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxTitleLength       = 200
	MaxSubtitleLength    = 200
	MaxDescriptionLength = 1000
	MaxFooterLineLength  = 500
	MaxFooterLines       = 10
	MaxDateLength        = 30
	MaxStyleLength       = 4096
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxTimeout           = 10 * time.Minute
)

var (
	knownFormats      = []string{"html", "pdf", "docx", "txt", "text"}
	knownEngines      = []string{"weasyprint", "wkhtmltopdf", "chrome"}
	knownPageSizes    = []string{"letter", "a4", "legal"}
	knownOrientations = []string{"portrait", "landscape"}
)

// Config holds all settings a conversion run can take from a file.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	Style    string         `yaml:"style"` // name, .css path or inline CSS
	Assets   AssetsConfig   `yaml:"assets"`
	PDF      PDFConfig      `yaml:"pdf"`
	DOCX     DOCXConfig     `yaml:"docx"`
}

type InputConfig struct {
	Path string `yaml:"path"` // file or directory
}

type OutputConfig struct {
	Dir     string   `yaml:"dir"`     // empty = next to each source
	Formats []string `yaml:"formats"` // empty = all
}

// DocumentConfig carries metadata shown on title pages and footers.
type DocumentConfig struct {
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Description string   `yaml:"description"`
	Footer      []string `yaml:"footer"`
	Date        string   `yaml:"date"` // literal or "auto[:FORMAT]"
}

type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets
}

type PDFConfig struct {
	Engines []string   `yaml:"engines"` // priority order
	Page    PageConfig `yaml:"page"`
	Timeout string     `yaml:"timeout"` // Go duration, e.g. "45s"
}

type PageConfig struct {
	Size        string  `yaml:"size"`
	Orientation string  `yaml:"orientation"`
	Margin      float64 `yaml:"margin"` // inches
}

type DOCXConfig struct {
	TitlePage bool `yaml:"titlePage"`
	PageBreak bool `yaml:"pageBreak"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		PDF: PDFConfig{
			Engines: []string{"weasyprint", "wkhtmltopdf", "chrome"},
			Page:    PageConfig{Size: "a4", Orientation: "portrait", Margin: 0.75},
			Timeout: "30s",
		},
		DOCX: DOCXConfig{TitlePage: true, PageBreak: true},
	}
}

// Validate checks lengths and enumerated values. Called by LoadConfig and
// available for configs built in code.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"input.path", c.Input.Path, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.subtitle", c.Document.Subtitle, MaxSubtitleLength},
		{"document.description", c.Document.Description, MaxDescriptionLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"style", c.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"pdf.page.size", c.PDF.Page.Size, MaxPageSizeLength},
		{"pdf.page.orientation", c.PDF.Page.Orientation, MaxOrientationLength},
	}
	for _, chk := range checks {
		if err := validateFieldLength(chk.field, chk.value, chk.max); err != nil {
			return err
		}
	}

	if len(c.Document.Footer) > MaxFooterLines {
		return fmt.Errorf("%w: document.footer (%d lines, max %d)", ErrFieldTooLong, len(c.Document.Footer), MaxFooterLines)
	}
	for i, line := range c.Document.Footer {
		if err := validateFieldLength(fmt.Sprintf("document.footer[%d]", i), line, MaxFooterLineLength); err != nil {
			return err
		}
	}

	for i, f := range c.Output.Formats {
		if err := validateChoice(fmt.Sprintf("output.formats[%d]", i), strings.TrimPrefix(f, "."), knownFormats); err != nil {
			return err
		}
	}
	for i, e := range c.PDF.Engines {
		if err := validateChoice(fmt.Sprintf("pdf.engines[%d]", i), e, knownEngines); err != nil {
			return err
		}
	}
	if c.PDF.Page.Size != "" {
		if err := validateChoice("pdf.page.size", c.PDF.Page.Size, knownPageSizes); err != nil {
			return err
		}
	}
	if c.PDF.Page.Orientation != "" {
		if err := validateChoice("pdf.page.orientation", c.PDF.Page.Orientation, knownOrientations); err != nil {
			return err
		}
	}
	if c.PDF.Page.Margin < 0 {
		return fmt.Errorf("%w: pdf.page.margin must not be negative, got %.2f", ErrInvalidValue, c.PDF.Page.Margin)
	}

	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses pdf.timeout. Empty means zero (use the converter default).
func (c *Config) Timeout() (time.Duration, error) {
	if c.PDF.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.PDF.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 || d > MaxTimeout {
		return 0, fmt.Errorf("%w: pdf.timeout must be in (0, %s], got %s", ErrInvalidValue, MaxTimeout, d)
	}
	return d, nil
}

// Settings flattens the config into dotted keys, ready to be layered under
// flags and environment variables.
func (c *Config) Settings() map[string]any {
	return map[string]any{
		"input.path":           c.Input.Path,
		"output.dir":           c.Output.Dir,
		"output.formats":       c.Output.Formats,
		"document.title":       c.Document.Title,
		"document.subtitle":    c.Document.Subtitle,
		"document.description": c.Document.Description,
		"document.footer":      c.Document.Footer,
		"document.date":        c.Document.Date,
		"style":                c.Style,
		"assets.basepath":      c.Assets.BasePath,
		"pdf.engines":          c.PDF.Engines,
		"pdf.page.size":        c.PDF.Page.Size,
		"pdf.page.orientation": c.PDF.Page.Orientation,
		"pdf.page.margin":      c.PDF.Page.Margin,
		"pdf.timeout":          c.PDF.Timeout,
		"docx.titlepage":       c.DOCX.TitlePage,
		"docx.pagebreak":       c.DOCX.PageBreak,
	}
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateChoice(fieldName, value string, allowed []string) error {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// LoadConfig loads configuration from a file path or config name.
// Names (no path separator) are searched with .yaml then .yml in the
// current directory, then in the user config directory under AppDir.
// Keys absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := DefaultConfig()
	if err := yamlutil.Decode(f, cfg, yamlutil.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
