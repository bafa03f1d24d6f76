package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lockweak/internal/config"
	"lockweak/internal/version"
)

// runCLI выполняет rootCmd; флаги cobra живут между вызовами, поэтому
// каждый тест передаёт всё, что ему важно, явно.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExpandCommandPrintsExpansion(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, config.FileName, "")
	src := writeFile(t, dir, "hub.swift", "@LockedWeakReference\nfinal class Hub {\n    weak var delegate: Delegate?\n}\n")

	out, err := runCLI(t, "--config", cfg, "--color", "off", "--quiet", "expand", "--write=false", "--ui", "off", src)
	if err != nil {
		t.Fatalf("expand failed: %v\n%s", err, out)
	}
	for _, want := range []string{
		"private let _delegate = LockedWeakReference()",
		"$0 as? Delegate",
		"private extension Hub {",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckCommandReportsRejection(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, config.FileName, "")
	src := writeFile(t, dir, "s.swift", "@LockedWeakReference\nstruct S {}\n")

	out, err := runCLI(t, "--config", cfg, "--color", "off", "check", "--format", "json", src)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected errDiagnostics, got %v\n%s", err, out)
	}
	if !strings.Contains(out, "MAC3001") || !strings.Contains(out, "struct type 'S'") {
		t.Fatalf("unexpected check output:\n%s", out)
	}
}

func TestInitWritesLoadableConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	if _, err := runCLI(t, "--quiet", "init", dir); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	path := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(path, version.Version)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Requires == "" {
		t.Fatalf("init should pin requires")
	}
	if _, err := runCLI(t, "--quiet", "init", dir); err == nil {
		t.Fatalf("second init without --force should fail")
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]switchMode{"": switchAuto, "AUTO": switchAuto, "on": switchOn, " off ": switchOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Errorf("expected error for invalid mode")
	}
	if shouldUseTUI(switchAuto, true) {
		t.Errorf("quiet runs must not start the TUI")
	}
}

func TestReportErrorSkipsPrintedDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errDiagnostics)
	if buf.Len() != 0 {
		t.Fatalf("errDiagnostics must be silent, got %q", buf.String())
	}
	reportError(&buf, errors.New("boom"))
	if buf.String() != "lockweak: boom\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, config.FileName, "[cache]\ndir = \"cachedir\"\n")
	src := writeFile(t, dir, "hub.swift", "@LockedWeakReference\nfinal class Hub {\n    weak var delegate: Delegate?\n}\n")

	if out, err := runCLI(t, "--config", cfg, "--quiet", "expand", "--write=false", "--ui", "off", "--cache", src); err != nil {
		t.Fatalf("expand: %v\n%s", err, out)
	}
	out, err := runCLI(t, "--config", cfg, "cache", "info")
	if err != nil {
		t.Fatalf("cache info: %v", err)
	}
	if !strings.Contains(out, filepath.ToSlash(filepath.Join(dir, "cachedir"))) && !strings.Contains(out, filepath.Join(dir, "cachedir")) {
		t.Fatalf("cache dir missing from %q", out)
	}
	if !strings.Contains(out, "entries: 1") {
		t.Fatalf("expected one entry:\n%s", out)
	}
	if _, err := runCLI(t, "--config", cfg, "--quiet", "cache", "clean"); err != nil {
		t.Fatalf("cache clean: %v", err)
	}
	out, _ = runCLI(t, "--config", cfg, "cache", "info")
	if !strings.Contains(out, "entries: 0") {
		t.Fatalf("clean left entries:\n%s", out)
	}
}
