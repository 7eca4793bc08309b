package main

// Notes:
// - runDoctor reads CI and container variables, so these tests clear them
//   and do not run in parallel.

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/hints"
)

func clearDoctorEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI",
		"MDEXPORT_CONTAINER", "container", "KUBERNETES_SERVICE_HOST", "ROD_NO_SANDBOX", "ROD_BROWSER_BIN"} {
		t.Setenv(key, "")
	}
	orig := hints.IsInContainer
	t.Cleanup(func() { hints.IsInContainer = orig })
	hints.IsInContainer = func() bool { return false }
}

func statuses(available ...bool) []mdexport.EngineStatus {
	names := []string{"weasyprint", "wkhtmltopdf", "chrome"}
	out := make([]mdexport.EngineStatus, len(available))
	for i, ok := range available {
		out[i] = mdexport.EngineStatus{Name: names[i]}
		if !ok {
			out[i].Err = mdexport.ErrEngineNotFound
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// runDoctor
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	clearDoctorEnv(t)

	tests := []struct {
		name         string
		statuses     []mdexport.EngineStatus
		wantStatus   string
		wantWarnings int
	}{
		{"all engines usable", statuses(true, true, true), statusReady, 0},
		{"one engine missing", statuses(false, true, true), statusWarnings, 1},
		{"no engine usable", statuses(false, false, false), statusErrors, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runDoctor(tt.statuses)

			if r.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (warnings %v, errors %v)", r.Status, tt.wantStatus, r.Warnings, r.Errors)
			}
			if len(r.Warnings) != tt.wantWarnings {
				t.Errorf("Warnings = %v, want %d", r.Warnings, tt.wantWarnings)
			}
			if len(r.Engines) != len(tt.statuses) {
				t.Errorf("Engines = %d, want %d", len(r.Engines), len(tt.statuses))
			}
			if !r.System.TempWritable {
				t.Error("TempWritable = false")
			}
		})
	}
}

func TestRunDoctor_ContainerWithoutSandbox(t *testing.T) {
	clearDoctorEnv(t)
	t.Setenv("MDEXPORT_CONTAINER", "1")

	r := runDoctor(statuses(true))

	if !r.Env.Container || r.Env.ContainerHint != "MDEXPORT_CONTAINER=1" {
		t.Errorf("Env = %+v, want container detected", r.Env)
	}
	if r.Status != statusWarnings {
		t.Errorf("Status = %q, want warnings", r.Status)
	}
	if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], "ROD_NO_SANDBOX") {
		t.Errorf("Warnings = %v, want sandbox warning", r.Warnings)
	}

	t.Setenv("ROD_NO_SANDBOX", "1")
	if r := runDoctor(statuses(true)); r.Status != statusReady {
		t.Errorf("Status with ROD_NO_SANDBOX = %q, want ready", r.Status)
	}
}

func TestRunDoctor_WarningCarriesHint(t *testing.T) {
	clearDoctorEnv(t)
	t.Setenv("WEASYPRINT_BIN", "")

	r := runDoctor(statuses(false, true))

	if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], "pip install weasyprint") {
		t.Errorf("Warnings = %v, want install hint", r.Warnings)
	}
	if r.Engines[0].Available || r.Engines[0].Error == "" {
		t.Errorf("Engines[0] = %+v, want unavailable with error", r.Engines[0])
	}
}

// ---------------------------------------------------------------------------
// doctor command
// ---------------------------------------------------------------------------

func TestRun_Doctor(t *testing.T) {
	clearDoctorEnv(t)

	t.Run("human report", func(t *testing.T) {
		env, stdout, _ := testEnv(nil)
		env.ProbeEngines = func(context.Context, []string) []mdexport.EngineStatus {
			return statuses(true, false)
		}

		if code := run(context.Background(), []string{"doctor", "--no-color"}, env); code != ExitSuccess {
			t.Fatalf("run() = %d, want success", code)
		}
		for _, want := range []string{"[OK] weasyprint", "[WARN] wkhtmltopdf", "Ready with warnings"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("output missing %q:\n%s", want, stdout)
			}
		}
	})

	t.Run("json report", func(t *testing.T) {
		env, stdout, _ := testEnv(nil)
		var probed []string
		env.ProbeEngines = func(_ context.Context, names []string) []mdexport.EngineStatus {
			probed = names
			return statuses(false)
		}

		code := run(context.Background(), []string{"doctor", "--json", "--engine", "weasyprint"}, env)
		if code != ExitGeneral {
			t.Errorf("run() = %d, want ExitGeneral when not ready", code)
		}
		if len(probed) != 1 || probed[0] != "weasyprint" {
			t.Errorf("probed = %v, want [weasyprint]", probed)
		}

		var got doctorResult
		if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if got.Status != statusErrors || len(got.Engines) != 1 || got.Engines[0].Available {
			t.Errorf("report = %+v", got)
		}
	})

	t.Run("default engines", func(t *testing.T) {
		env, _, _ := testEnv(nil)
		var probed []string
		env.ProbeEngines = func(_ context.Context, names []string) []mdexport.EngineStatus {
			probed = names
			return statuses(true)
		}

		run(context.Background(), []string{"doctor", "--no-color"}, env)
		if len(probed) != len(mdexport.DefaultPDFEngines()) {
			t.Errorf("probed = %v, want default engines", probed)
		}
	})
}
