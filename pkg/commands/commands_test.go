package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/heatcal/pkg/commands/options"
	"tableflip.dev/heatcal/pkg/source"
)

const posts = `[
  {"date": "2024-11-08", "title": "A"},
  {"date": "2024-11-08", "title": "B", "slug": "/b"},
  {"date": "2024-11-07", "title": "C"},
  {"date": "2024-12-02", "title": "D"}
]`

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Setenv("HOME", dir)
	t.Setenv("HEATCAL_CONFIG_PATH", dir)
	path := filepath.Join(dir, "posts.json")
	if err := os.WriteFile(path, []byte(posts), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPrintPinned(t *testing.T) {
	path := setup(t)
	out, err := run(t, "print", "-e", path, "--month", "2024-11", "--color", "never", "--pin", "2024-11-08")
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	for _, want := range []string{"November 2024", "Mon", "2024-11-08 - 2 posts", "• A", "• B /b"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestPrintRejectsBadFlags(t *testing.T) {
	path := setup(t)
	if _, err := run(t, "print", "-e", path, "--month", "2024-11", "--year", "2024"); err == nil {
		t.Fatalf("expected --month with --year to fail")
	}
	if _, err := run(t, "print", "-e", path, "--month", "2024-13"); err == nil {
		t.Fatalf("expected an invalid month to fail")
	}
	if _, err := run(t, "print", "-e", path, "--color", "sometimes"); err == nil {
		t.Fatalf("expected an unknown colour mode to fail")
	}
	if _, err := run(t, "print", "-e", path, "--month", "2024-11", "--pin", "2024-11-06"); err == nil {
		t.Fatalf("expected pinning an empty day to fail")
	}
	if _, err := run(t, "print", "-e", path, "--month", "2024-11", "--pin", "2024-12-02"); err == nil {
		t.Fatalf("expected pinning outside the period to fail")
	}
}

func TestSVGToFile(t *testing.T) {
	path := setup(t)
	dest := filepath.Join(t.TempDir(), "nov.svg")
	if _, err := run(t, "svg", "-e", path, "--month", "2024-11", "--pin", "2024-11-08", "-o", dest); err != nil {
		t.Fatalf("svg: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	if !strings.HasPrefix(doc, "<svg") || !strings.Contains(doc, `data-state="pinned"`) {
		t.Fatalf("expected a pinned SVG document, got:\n%s", doc)
	}
}

func TestDaysJSON(t *testing.T) {
	path := setup(t)
	out, err := run(t, "days", "-e", path, "--year", "2024", "--json")
	if err != nil {
		t.Fatalf("days: %v", err)
	}
	var got []dayRecord
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("expected JSON, got %v:\n%s", err, out)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 days, got %d", len(got))
	}
	if got[1].Date.String() != "2024-11-08" || got[1].Count != 2 || got[1].Events[1].Link != "/b" {
		t.Fatalf("unexpected second day %+v", got[1])
	}
}

func TestDaysTable(t *testing.T) {
	path := setup(t)
	out, err := run(t, "days", "-e", path, "--month", "2024-11")
	if err != nil {
		t.Fatalf("days: %v", err)
	}
	if !strings.Contains(out, "November 2024 - 3 posts") || strings.Contains(out, "2024-12-02") {
		t.Fatalf("expected November only, got:\n%s", out)
	}
}

func TestGenerateYAML(t *testing.T) {
	setup(t)
	dest := filepath.Join(t.TempDir(), "posts.yaml")
	if _, err := run(t, "generate", "--count", "5", "--year", "2023", "--seed", "7", "-o", dest); err != nil {
		t.Fatalf("generate: %v", err)
	}
	src, err := source.New(dest, source.FormatAuto, nil)
	if err != nil {
		t.Fatal(err)
	}
	events, err := src.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 5 || events[0].Title != "Blog Post 1" || events[0].Date.Year != 2023 {
		t.Fatalf("unexpected generated posts %+v", events)
	}
}

func TestMalformedConfigFails(t *testing.T) {
	dir := filepath.Dir(setup(t))
	if err := os.WriteFile(filepath.Join(dir, ".heatcal.yaml"), []byte("mode: decade\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "days"); err == nil {
		t.Fatalf("expected an invalid mode in the config file to fail")
	}
}

func TestVersionShort(t *testing.T) {
	setup(t)
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("expected dev version, got %q", out)
	}
}

func TestCompletion(t *testing.T) {
	setup(t)
	out, err := run(t, "completion", "zsh")
	if err != nil || !strings.Contains(out, "heatcal") {
		t.Fatalf("expected a zsh script, got %v: %.80q", err, out)
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Fatalf("expected an unknown shell to fail")
	}
}

func TestLogFileClosedWhenCommandFails(t *testing.T) {
	path := setup(t)
	dir := filepath.Dir(path)
	logFile := filepath.Join(dir, "heatcal.log")
	cfg := "log:\n  file: " + logFile + "\n  level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, ".heatcal.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	e := &env{v: viper.New(), co: &options.ConfigOptions{}, logOut: &bytes.Buffer{}}
	cmd := newRoot(e)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"print", "-e", path, "--month", "2024-11", "--pin", "2024-11-06"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected pinning an empty day to fail")
	}
	if e.log == nil {
		t.Fatalf("expected the logger to be built before the command ran")
	}
	if e.closer != nil {
		t.Fatalf("expected the log file closed after a failed command")
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "configuration loaded") {
		t.Fatalf("expected debug output in the log file, got %q", data)
	}
}
