package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func newCheckLikeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "check"}
	cmd.Flags().String("color", "auto", "")
	cmd.Flags().String("path-mode", "auto", "")
	cmd.Flags().String("format", "pretty", "")
	cmd.Flags().Int("jobs", 0, "")
	cmd.Flags().String("ui", "auto", "")
	return cmd
}

func TestLoadConfigApply(t *testing.T) {
	path := writeConfig(t, `
[parse]
args = ["-std=c99"]
error_limit = 5

[output]
format = "json"
color = "off"

[check]
jobs = 3
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got := strings.Join(cfg.Parse.Args, " "); got != "-std=c99" {
		t.Fatalf("parse.args = %q", got)
	}
	if n, ok := cfg.errorLimit(); !ok || n != 5 {
		t.Fatalf("errorLimit = %d, %v", n, ok)
	}

	cmd := newCheckLikeCmd()
	if err := cmd.Flags().Set("color", "on"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.apply(cmd); err != nil {
		t.Fatalf("apply: %v", err)
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("color"); v != "on" {
		t.Errorf("explicit --color overridden: %q", v)
	}
	if v, _ := flags.GetInt("jobs"); v != 3 {
		t.Errorf("jobs = %d, want 3", v)
	}
	// output.format относится только к dump и query
	if v, _ := flags.GetString("format"); v != "pretty" {
		t.Errorf("format = %q, want pretty", v)
	}
	// ключа нет в файле, значение по умолчанию остаётся
	if v, _ := flags.GetString("ui"); v != "auto" {
		t.Errorf("ui = %q, want auto", v)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[parse]\nargz = [\"-w\"]\n")
	_, err := loadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "parse.argz") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigBadValue(t *testing.T) {
	path := writeConfig(t, "[output]\ncolor = \"sometimes\"\n")
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	// значение проверяется позже, при разборе --color
	if err := cfg.apply(newCheckLikeCmd()); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := readColorMode(cfg.Output.Color); err == nil {
		t.Fatal("expected invalid color mode")
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, configFileName), []byte("[check]\nui = \"off\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: %v, %v", ok, err)
	}
	if got != filepath.Join(root, configFileName) {
		t.Fatalf("found %q", got)
	}
}

func TestErrorLimitUnsetWithoutFile(t *testing.T) {
	if _, ok := (&cliConfig{}).errorLimit(); ok {
		t.Fatal("empty config must not set an error limit")
	}
}
