package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/hints"
)

// ErrNotReady is returned by doctor when no PDF engine is usable or the
// system cannot host conversions.
var ErrNotReady = errors.New("environment not ready")

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"`
	Engines  []engineInfo `json:"engines"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

type engineInfo struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func newDoctorCmd(env *Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check which PDF engines and system features are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			noColor, _ := cmd.Flags().GetBool("no-color")
			names, _ := cmd.Flags().GetStringSlice("engine")
			if len(names) == 0 {
				names = mdexport.DefaultPDFEngines()
			}

			result := runDoctor(env.ProbeEngines(cmd.Context(), names))

			if asJSON {
				enc := json.NewEncoder(env.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
			} else {
				printDoctorResult(env.Stdout, result, newPalette(noColor))
			}

			if result.Status == statusErrors {
				return ErrNotReady
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print the report as JSON")
	cmd.Flags().Bool("no-color", false, "disable colored output")
	cmd.Flags().StringSlice("engine", nil, "engines to check (default: all)")
	return cmd
}

// runDoctor assembles the report from engine probes and local checks.
func runDoctor(statuses []mdexport.EngineStatus) *doctorResult {
	result := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkEngines(result, statuses)
	checkEnvironment(result)
	checkSystem(result)

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	default:
		result.Status = statusReady
	}
	return result
}

// checkEngines records each probe. One usable engine is enough to
// render PDF; unusable ones are warnings.
func checkEngines(result *doctorResult, statuses []mdexport.EngineStatus) {
	usable := 0
	for _, st := range statuses {
		info := engineInfo{Name: st.Name, Available: st.Err == nil}
		if st.Err != nil {
			info.Error = st.Err.Error()
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s unavailable: %v%s", st.Name, st.Err, hints.ForEngine(st.Name)))
		} else {
			usable++
		}
		result.Engines = append(result.Engines, info)
	}
	if usable == 0 {
		result.Errors = append(result.Errors,
			"no PDF engine available; PDF output will fall back to <name>_fallback.txt")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"container/CI detected but ROD_NO_SANDBOX not set; the chrome engine may need ROD_NO_SANDBOX=1")
	}
}

// isContainer reports whether we run in a container and which signal said so.
func isContainer() (bool, string) {
	if os.Getenv("MDEXPORT_CONTAINER") == "1" {
		return true, "MDEXPORT_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies that engines can exchange temp files.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	f, err := os.CreateTemp(tmpDir, "mdexport-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("temp directory not writable: %s", tmpDir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(filepath.Clean(name))
	result.System.TempWritable = true
}

// palette colors the status tags of the human report.
type palette struct {
	ok, warn, fail, bold *color.Color
}

func newPalette(disabled bool) palette {
	p := palette{
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed, color.Bold),
		bold: color.New(color.Bold),
	}
	if disabled {
		for _, c := range []*color.Color{p.ok, p.warn, p.fail, p.bold} {
			c.DisableColor()
		}
	}
	return p
}

// printDoctorResult outputs the human-readable report.
func printDoctorResult(w io.Writer, r *doctorResult, p palette) {
	okTag := p.ok.Sprint("[OK]")
	warnTag := p.warn.Sprint("[WARN]")
	failTag := p.fail.Sprint("[ERROR]")

	fmt.Fprintln(w, p.bold.Sprint("mdexport doctor"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, p.bold.Sprint("PDF engines"))
	for _, e := range r.Engines {
		if e.Available {
			fmt.Fprintf(w, "  %s %s\n", okTag, e.Name)
		} else {
			fmt.Fprintf(w, "  %s %s: %s\n", warnTag, e.Name, e.Error)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, p.bold.Sprint("Environment"))
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", okTag, r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  %s Container: detected (%s)\n", okTag, r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", okTag)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, p.bold.Sprint("System"))
	if r.System.TempWritable {
		fmt.Fprintf(w, "  %s Temp directory: writable\n", okTag)
	} else {
		fmt.Fprintf(w, "  %s Temp directory: not writable\n", failTag)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", warnTag, warn)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", failTag, e)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status:", p.ok.Sprint("Ready to convert"))
	case statusWarnings:
		fmt.Fprintln(w, "Status:", p.warn.Sprint("Ready with warnings"))
	case statusErrors:
		fmt.Fprintln(w, "Status:", p.fail.Sprint("Not ready (see errors above)"))
	}
}
