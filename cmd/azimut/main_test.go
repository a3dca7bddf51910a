package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/azimut/internal/config"
)

// run executes the CLI against root and returns stdout.
func run(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(io.Discard)

	base := []string{
		"--config", filepath.Join(root, config.FileName),
		"--root", root,
	}
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(base, args...))

	err := cmd.Execute()
	return out.String(), err
}

func user(args ...string) []string {
	return append([]string{"--name", "Ana", "--email", "ana@example.com", "--pin", "1234"}, args...)
}

func TestCLI_AddListInsights(t *testing.T) {
	root := t.TempDir()

	for _, args := range [][]string{
		user("add", "--block", "3", "--date", "2026-03-01", "--label", "Pecho", "--value", "ansiedad", "--meta", "contexto=trabajo"),
		user("add", "--block", "3", "--date", "2026-03-02", "--label", "Garganta", "--value", "ansiedad", "--meta", "contexto=trabajo"),
		user("add", "--block", "9", "--label", "Reflexión final", "--value", "nuevo rumbo"),
	} {
		if _, err := run(t, root, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	out, err := run(t, root, user("list", "--block", "3")...)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "### 2026-03-02") || strings.Contains(out, "nuevo rumbo") {
		t.Errorf("list output:\n%s", out)
	}

	out, err = run(t, root, user("insights", "--block", "3", "--as-of", "2026-03-02")...)
	if err != nil {
		t.Fatalf("insights failed: %v", err)
	}
	for _, want := range []string{"Current streak: 2", "Dominant emotion: ansiedad", "Recurring context: trabajo"} {
		if !strings.Contains(out, want) {
			t.Errorf("insights missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_SQLiteBackend(t *testing.T) {
	root := t.TempDir()
	if _, err := run(t, root, user("--backend", "sqlite", "add", "--block", "1", "--value", "azúcar")...); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	out, err := run(t, root, user("--backend", "sqlite", "stats")...)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out, "Backend: sqlite") || !strings.Contains(out, "Entries: 1") {
		t.Errorf("stats output:\n%s", out)
	}
}

func TestCLI_AnonymousWritesNothing(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	if _, err := run(t, root, "add", "--block", "1", "--value", "x"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("anonymous add created the storage root")
	}
}

func TestCLI_Errors(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"bad block", user("add", "--block", "0", "--value", "x")},
		{"missing value", user("add", "--block", "1")},
		{"bad meta", user("add", "--block", "1", "--value", "x", "--meta", "novalue")},
		{"bad date", user("add", "--block", "1", "--value", "x", "--date", "mañana")},
		{"bad backend", user("--backend", "mongo", "list")},
		{"clear without yes", user("clear")},
		{"xlsx to stdout", user("export")},
		{"bad filter", user("list", "--block", "10")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, root, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCLI_ExportAndClear(t *testing.T) {
	root := t.TempDir()
	if _, err := run(t, root, user("add", "--block", "5", "--label", "gasto", "--value", "20")...); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	out, err := run(t, root, user("export", "--format", "csv", "--out", "-")...)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.HasPrefix(out, "recorded_at,category") || !strings.Contains(out, "gasto,20") {
		t.Errorf("csv:\n%s", out)
	}

	xlsx := filepath.Join(t.TempDir(), "out.xlsx")
	if _, err := run(t, root, user("export", "--out", xlsx)...); err != nil {
		t.Fatalf("xlsx export failed: %v", err)
	}
	if _, err := os.Stat(xlsx); err != nil {
		t.Errorf("xlsx not written: %v", err)
	}

	out, err = run(t, root, user("clear", "--yes")...)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out, "1 entries removed") {
		t.Errorf("clear output: %q", out)
	}
}

func TestCLI_ProfileAndConfig(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, root, user("profile", "--start", "2026-03-01", "--days-per-week", "4")...)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if !strings.Contains(out, "Target days per week: 4") {
		t.Errorf("profile output:\n%s", out)
	}

	if _, err := run(t, root, "--backend", "sqlite", "init-config"); err != nil {
		t.Fatalf("init-config failed: %v", err)
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != "sqlite" || cfg.StorageRoot != root {
		t.Errorf("saved config = %+v", cfg)
	}
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "azimut v") {
		t.Errorf("version output = %q", out)
	}
}
