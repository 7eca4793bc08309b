// Package hints builds short remediation hints appended to CLI errors.
// Every hint renders as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdexport/internal/fileutil"
)

// IsInContainer reports whether the process runs in a Docker-like container.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

func inCI() bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForEngine returns the remediation for a single PDF engine by name.
// Unknown names yield no hint.
func ForEngine(name string) string {
	return format(engineHint(name))
}

func engineHint(name string) string {
	switch strings.ToLower(name) {
	case "weasyprint":
		if os.Getenv("WEASYPRINT_BIN") != "" {
			return "check WEASYPRINT_BIN points to a working weasyprint"
		}
		return "install weasyprint (pip install weasyprint) or set WEASYPRINT_BIN"
	case "wkhtmltopdf":
		if os.Getenv("WKHTMLTOPDF_BIN") != "" {
			return "check WKHTMLTOPDF_BIN points to a working wkhtmltopdf"
		}
		return "install wkhtmltopdf or set WKHTMLTOPDF_BIN"
	case "chrome":
		return strings.Join(browserHints(), "; ")
	}
	return ""
}

// ForNoPDFEngine combines the hints of every engine that was tried.
func ForNoPDFEngine(tried []string) string {
	var hs []string
	for _, name := range tried {
		if h := engineHint(name); h != "" {
			hs = append(hs, h)
		}
	}
	hs = append(hs, "run 'mdexport doctor' to see which engines are usable")
	return formatHints(hs)
}

// ForBrowserConnect returns hints for headless browser launch failures.
func ForBrowserConnect() string {
	return formatHints(browserHints())
}

func browserHints() []string {
	var hs []string
	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hs = append(hs, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hs = append(hs, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	if os.Getenv("MDEXPORT_NO_BROWSER_DOWNLOAD") != "" {
		hs = append(hs, "unset MDEXPORT_NO_BROWSER_DOWNLOAD to allow a Chromium download")
	}
	return hs
}

// ForTimeout suggests raising the render timeout.
func ForTimeout() string {
	return format("for large documents, raise --timeout")
}

// ForConfigNotFound suggests --config or the first user config path searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(slashPath(p), "/go-mdexport/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// slashPath normalises separators so Windows paths match too.
func slashPath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check the output directory exists and is writable")
}

// ForStyleNotFound lists the embedded styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hs []string) string {
	if len(hs) == 0 {
		return ""
	}
	return format(strings.Join(hs, "; "))
}
