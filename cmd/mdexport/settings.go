package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/config"
)

const (
	envPrefix = "MDEXPORT"

	// defaultConfigName is suggested when a named config is missing.
	defaultConfigName = "mdexport"

	// footerEnvSeparator splits MDEXPORT_DOCUMENT_FOOTER into lines, since
	// footer lines may contain commas.
	footerEnvSeparator = "|"
)

// ErrUsage marks command line misuse.
var ErrUsage = errors.New("invalid usage")

// flagKeys binds convert flags to their dotted setting keys.
var flagKeys = map[string]string{
	"output":          "output.dir",
	"format":          "output.formats",
	"title":           "document.title",
	"subtitle":        "document.subtitle",
	"description":     "document.description",
	"footer":          "document.footer",
	"date":            "document.date",
	"style":           "style",
	"asset-path":      "assets.basepath",
	"engine":          "pdf.engines",
	"page-size":       "pdf.page.size",
	"orientation":     "pdf.page.orientation",
	"margin":          "pdf.page.margin",
	"timeout":         "pdf.timeout",
	"docx-title-page": "docx.titlepage",
	"docx-page-break": "docx.pagebreak",
	"workers":         "workers",
}

// knownEnvVars lists the MDEXPORT_* variables read by the CLI. Anything
// else with the prefix is reported as a probable typo.
var knownEnvVars = map[string]bool{
	"MDEXPORT_CONFIG":              true,
	"MDEXPORT_INPUT_PATH":          true,
	"MDEXPORT_NO_BROWSER_DOWNLOAD": true,
}

func init() {
	for _, key := range flagKeys {
		knownEnvVars[envName(key)] = true
	}
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// settings is the resolved configuration of one convert run.
type settings struct {
	inputPath     string
	outputDir     string
	formats       []mdexport.Format
	document      mdexport.Document
	style         string
	css           string
	assetPath     string
	engines       []string
	page          mdexport.PageSettings
	timeout       time.Duration
	docxTitlePage bool
	docxPageBreak bool
	workers       int
	strict        bool
	quiet         bool
	verbose       bool
}

// loadSettings layers flags over MDEXPORT_* variables over the config
// file over built-in defaults.
func loadSettings(cmd *cobra.Command, args []string, env *Environment) (*settings, error) {
	cfg, err := loadConfigFile(cmd)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	for key, val := range cfg.Settings() {
		v.SetDefault(key, val)
	}
	v.SetDefault("workers", 0)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	flags := cmd.Flags()
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	s := &settings{
		outputDir:     v.GetString("output.dir"),
		style:         v.GetString("style"),
		assetPath:     v.GetString("assets.basepath"),
		docxTitlePage: v.GetBool("docx.titlepage"),
		docxPageBreak: v.GetBool("docx.pagebreak"),
		workers:       v.GetInt("workers"),
		document: mdexport.Document{
			Title:       v.GetString("document.title"),
			Subtitle:    v.GetString("document.subtitle"),
			Description: v.GetString("document.description"),
			Footer:      listSetting(v, "document.footer", footerEnvSeparator),
		},
	}
	s.strict, _ = flags.GetBool("strict")
	s.quiet, _ = flags.GetBool("quiet")
	s.verbose, _ = flags.GetBool("verbose")

	if len(args) > 0 {
		s.inputPath = args[0]
	} else {
		s.inputPath = v.GetString("input.path")
	}
	if s.inputPath == "" {
		return nil, fmt.Errorf("%w: pass a file or directory, or set input.path", ErrNoInput)
	}

	if err := validateWorkers(s.workers); err != nil {
		return nil, err
	}

	if s.formats, err = parseFormats(listSetting(v, "output.formats", ",")); err != nil {
		return nil, err
	}
	if s.engines, err = parseEngines(listSetting(v, "pdf.engines", ",")); err != nil {
		return nil, err
	}

	s.page = pageSettings(v.GetString("pdf.page.size"), v.GetString("pdf.page.orientation"), v.GetFloat64("pdf.page.margin"))
	if err := s.page.Validate(); err != nil {
		return nil, err
	}

	if raw := v.GetString("pdf.timeout"); raw != "" {
		if s.timeout, err = time.ParseDuration(raw); err != nil || s.timeout <= 0 {
			return nil, fmt.Errorf("%w: timeout %q must be a positive duration", ErrUsage, raw)
		}
	}

	if s.document.Date, err = mdexport.ResolveDate(v.GetString("document.date"), env.Now()); err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	if err := s.document.Validate(); err != nil {
		return nil, err
	}

	if cssPath, _ := flags.GetString("css"); cssPath != "" {
		data, err := os.ReadFile(cssPath) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadCSS, err)
		}
		s.css = string(data)
	}

	return s, nil
}

// loadConfigFile loads --config (or MDEXPORT_CONFIG) when set.
func loadConfigFile(cmd *cobra.Command) (*config.Config, error) {
	name, _ := cmd.Flags().GetString("config")
	if name == "" {
		name = os.Getenv("MDEXPORT_CONFIG")
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// listSetting reads a list that may come from a flag, the config file or
// a separator-joined environment variable.
func listSetting(v *viper.Viper, key, sep string) []string {
	var raw []string
	switch val := v.Get(key).(type) {
	case nil:
		return nil
	case string:
		raw = strings.Split(val, sep)
	default:
		raw = v.GetStringSlice(key)
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseFormats(names []string) ([]mdexport.Format, error) {
	formats := make([]mdexport.Format, 0, len(names))
	for _, name := range names {
		f, err := mdexport.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats, nil
}

func parseEngines(names []string) ([]string, error) {
	known := mdexport.DefaultPDFEngines()
	engines := make([]string, 0, len(names))
	for _, name := range names {
		lower := strings.ToLower(name)
		if !slices.Contains(known, lower) {
			return nil, fmt.Errorf("%w: %q (known: %s)", mdexport.ErrUnknownPDFEngine, name, strings.Join(known, ", "))
		}
		engines = append(engines, lower)
	}
	return engines, nil
}

// pageSettings fills unset fields from the defaults.
func pageSettings(size, orientation string, margin float64) mdexport.PageSettings {
	page := *mdexport.DefaultPageSettings()
	if size != "" {
		page.Size = strings.ToLower(size)
	}
	if orientation != "" {
		page.Orientation = strings.ToLower(orientation)
	}
	if margin != 0 {
		page.Margin = margin
	}
	return page
}

// warnUnknownEnvVars reports MDEXPORT_* variables the CLI does not read.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix+"_") && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// converterOptions maps settings to converter options.
func (s *settings) converterOptions() []mdexport.Option {
	opts := []mdexport.Option{
		mdexport.WithStyle(s.style),
		mdexport.WithDOCXTitlePage(s.docxTitlePage),
		mdexport.WithDOCXPageBreak(s.docxPageBreak),
	}
	if s.assetPath != "" {
		opts = append(opts, mdexport.WithAssetPath(s.assetPath))
	}
	if len(s.engines) > 0 {
		opts = append(opts, mdexport.WithPDFEngines(s.engines...))
	}
	if s.timeout > 0 {
		opts = append(opts, mdexport.WithTimeout(s.timeout))
	}
	return opts
}
