package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"glsles/internal/diag"
	"glsles/internal/diagfmt"
	"glsles/internal/driver"
	"glsles/internal/source"
)

// newTestCommand собирает свежий root, чтобы флаги не протекали между тестами
func newTestCommand(t *testing.T, name string, run func(*cobra.Command, []string) error, addFlags func(*cobra.Command)) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "glsles", SilenceUsage: true, SilenceErrors: true}
	registerPersistentFlags(root)
	cmd := &cobra.Command{Use: name, RunE: run}
	if addFlags != nil {
		addFlags(cmd)
	}
	root.AddCommand(cmd)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	return root, &stdout, &stderr
}

func writeShader(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSettingsManifestAndFlags(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, filepath.Join(dir, "glsles.toml"), "[output]\nformat = \"yaml\"\n[diagnostics]\nmax = 5\n[scan]\ndirs = [\"shaders\"]\nbogus = 1\n")
	t.Chdir(dir)

	var got *settings
	root, _, stderr := newTestCommand(t, "probe", func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		got = s
		return err
	}, nil)
	root.SetArgs([]string{"probe", "--max-diagnostics", "9", "--color", "off"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.format != "yaml" || got.cfg.Diagnostics.Max != 9 || got.color {
		t.Errorf("settings = %+v", got)
	}
	dirs := got.scanDirs()
	if len(dirs) != 1 || filepath.Base(dirs[0]) != "shaders" {
		t.Errorf("scan dirs = %v", dirs)
	}
	if !strings.Contains(stderr.String(), `unknown key "scan.bogus"`) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestLoadSettingsRejectsBadFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	root, _, _ := newTestCommand(t, "probe", func(cmd *cobra.Command, args []string) error {
		_, err := loadSettings(cmd)
		return err
	}, nil)
	root.SetArgs([]string{"probe", "--format", "xml"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected format error")
	}
}

func TestDiagCommandExitStatus(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, filepath.Join(dir, "ok.vert"), "attribute vec4 p;\nvoid main() { gl_Position = p; }\n")
	writeShader(t, filepath.Join(dir, "bad.frag"), "uniform float x\n")
	t.Chdir(dir)

	root, stdout, stderr := newTestCommand(t, "diag", runDiagnose, addDiagFlags)
	root.SetArgs([]string{"diag", "--no-cache", "--ui", "off", "--format", "json", dir})
	err := root.Execute()

	var exit exitCodeError
	if !errors.As(err, &exit) || exit.code != 2 {
		t.Fatalf("err = %v, want exit status 2", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("json: %v\n%s", err, stdout.String())
	}
	if out.Count == 0 || out.Diagnostics[0].Kind != "syntactic" {
		t.Errorf("diagnostics = %+v", out.Diagnostics)
	}
	if !strings.HasSuffix(out.Diagnostics[0].Location.File, "bad.frag") {
		t.Errorf("file = %q", out.Diagnostics[0].Location.File)
	}
	if stderr.Len() != 0 {
		t.Errorf("json mode wrote to stderr: %q", stderr.String())
	}
}

func analyzed(t *testing.T, name, src string) target {
	t.Helper()
	res, err := driver.AnalyzeSource(context.Background(), name, []byte(src), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return target{fs: res.FileSet, path: name, result: res, bag: res.Bag}
}

func TestWriteDeclsSeveralFiles(t *testing.T) {
	targets := []target{
		analyzed(t, "a.vert", "attribute vec4 p;\nvoid main() {}\n"),
		analyzed(t, "b.frag", "uniform sampler2D tex;\nvoid main() {}\n"),
		{path: "missing.vert", bag: diag.NewBag(0)},
	}

	var buf bytes.Buffer
	if err := writeDecls(&buf, &settings{format: "json"}, targets, false); err != nil {
		t.Fatal(err)
	}
	var outs []diagfmt.DeclsOutput
	if err := json.Unmarshal(buf.Bytes(), &outs); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(outs) != 2 || outs[0].Stage != "vertex" || outs[1].Decls[0].Name != "tex" {
		t.Errorf("outputs = %+v", outs)
	}

	buf.Reset()
	if err := writeDecls(&buf, &settings{format: "pretty"}, targets, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "a.vert (version 100, vertex)") || !strings.Contains(buf.String(), "\n\nb.frag (version 100, fragment)") {
		t.Errorf("pretty:\n%s", buf.String())
	}
}

func TestWithoutWarnings(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.ExtNoMain, source.Span{}, "w"))
	bag.Add(diag.New(diag.SevError, diag.SynUnexpectedToken, source.Span{}, "e"))
	out := withoutWarnings(bag)
	if out.Len() != 1 || out.HasWarnings() {
		t.Errorf("filtered = %v", out.Items())
	}
}

func TestPluralAndUIMode(t *testing.T) {
	if plural(1, "error") != "1 error" || plural(3, "file") != "3 files" || plural(0, "warning") != "0 warnings" {
		t.Error("plural")
	}
	if m, err := readUIMode(" ON "); err != nil || m != uiModeOn {
		t.Errorf("readUIMode = %v %v", m, err)
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error")
	}
	if shouldUseTUI(uiModeOff) || !shouldUseTUI(uiModeOn) {
		t.Error("shouldUseTUI")
	}
}
