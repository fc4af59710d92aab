package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"cbridge/cnode"
	"cbridge/internal/sema"
)

func withConfig(t *testing.T, cfg *cliConfig) {
	t.Helper()
	prev := activeConfig
	activeConfig = cfg
	t.Cleanup(func() { activeConfig = prev })
}

func TestCompilerArgv(t *testing.T) {
	withConfig(t, &cliConfig{Path: "cnode.toml", Parse: parseConfig{Args: []string{"-std=c99", "-w"}}})

	cmd := &cobra.Command{Use: "dump"}
	if err := cmd.ParseFlags([]string{"a.c", "--", "-std=c11"}); err != nil {
		t.Fatal(err)
	}
	got, err := compilerArgv(cmd, cmd.Flags().Args())
	if err != nil {
		t.Fatalf("compilerArgv: %v", err)
	}
	// флаги после "--" идут последними и побеждают
	if diff := cmp.Diff([]string{"a.c", "-std=c99", "-w", "-std=c11"}, got); diff != "" {
		t.Fatalf("argv (-want +got):\n%s", diff)
	}

	two := &cobra.Command{Use: "dump"}
	if err := two.ParseFlags([]string{"a.c", "b.c"}); err != nil {
		t.Fatal(err)
	}
	if _, err := compilerArgv(two, two.Flags().Args()); err == nil {
		t.Fatal("expected error for two inputs")
	}
}

func TestCheckOptions(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, "[parse]\nargs = [\"-std=c99\"]\nerror_limit = 7\n"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	withConfig(t, cfg)

	opts, err := checkOptions([]string{"-Werror"})
	if err != nil {
		t.Fatalf("checkOptions: %v", err)
	}
	if opts.Standard != sema.StdC99 || !opts.WarningsAsErrors || opts.ErrorLimit != 7 {
		t.Fatalf("options = %+v", opts)
	}
	if _, err := checkOptions([]string{"stray.c"}); err == nil {
		t.Fatal("expected an error for an input after --")
	}
}

func parseFile(t *testing.T, src string) *cnode.Unit {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.c")
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	u, err := cnode.Parse(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	t.Cleanup(func() { _ = u.Close() })
	return u
}

const dumpSource = "int main(void) { return 0; }\nint max;\nint other;\n"

func TestWriteDumpTextFilter(t *testing.T) {
	u := parseFile(t, dumpSource)
	var buf bytes.Buffer
	if err := writeDump(&buf, u, dumpOptions{format: "text", depth: -1, filter: "ma"}); err != nil {
		t.Fatalf("writeDump: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Dumping main:\nFunctionDecl ", "Dumping max:\nVarDecl ", "ReturnStmt"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "other") {
		t.Errorf("filter leaked a non-matching declaration:\n%s", out)
	}
}

func TestWriteDumpJSON(t *testing.T) {
	u := parseFile(t, dumpSource)
	var buf bytes.Buffer
	if err := writeDump(&buf, u, dumpOptions{format: "json", depth: 0, filter: "max"}); err != nil {
		t.Fatalf("writeDump: %v", err)
	}
	var v cnode.View
	if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if v.Kind != "VarDecl" || v.Name != "max" || v.Type != "int" || len(v.Children) != 0 {
		t.Fatalf("view = %+v", v)
	}
}

func TestDumpRootsWithoutFilter(t *testing.T) {
	u := parseFile(t, dumpSource)
	roots, _ := dumpRoots(u, "")
	if len(roots) != 1 || roots[0].ID() != u.Decl().ID() {
		t.Fatalf("roots = %v", roots)
	}
}

func TestWatchFileDebounces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.c")
	if err := os.WriteFile(path, []byte("int a;\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 20*time.Millisecond, func() { changed <- struct{}{} })
	}()

	// наблюдатель поднимается асинхронно, поэтому пишем, пока не увидим событие
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-changed:
			break wait
		case <-tick.C:
			if err := os.WriteFile(path, []byte("int b;\n"), 0o600); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no change notification")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watchFile: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watchFile did not stop on cancel")
	}
}
