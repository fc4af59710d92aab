package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"cbridge/cnode"
)

func parseUnit(t *testing.T, src string) *cnode.Unit {
	t.Helper()
	u, err := cnode.ParseSource(context.Background(), "view.c", []byte(src))
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	t.Cleanup(func() { _ = u.Close() })
	return u
}

func TestWriteViewsRoundTrip(t *testing.T) {
	u := parseUnit(t, "int g = 1 + 2;")
	views := []cnode.View{cnode.NewView(u.Decls()[0], -1)}

	var js bytes.Buffer
	if err := WriteViews(&js, views, ViewJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	var fromJSON cnode.View
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatalf("decode json: %v\n%s", err, js.String())
	}

	var ym bytes.Buffer
	if err := WriteViews(&ym, views, ViewYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var fromYAML cnode.View
	if err := yaml.Unmarshal(ym.Bytes(), &fromYAML); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, ym.String())
	}

	want := stripPositions(views[0])
	if diff := cmp.Diff(want, fromJSON); diff != "" {
		t.Errorf("json round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, fromYAML); diff != "" {
		t.Errorf("yaml round trip (-want +got):\n%s", diff)
	}
}

// stripPositions обнуляет File и Line во всём поддереве: они не сериализуются.
func stripPositions(v cnode.View) cnode.View {
	v.File, v.Line = "", 0
	if v.Children != nil {
		kids := make([]cnode.View, len(v.Children))
		for i, c := range v.Children {
			kids[i] = stripPositions(c)
		}
		v.Children = kids
	}
	return v
}

func TestWriteViewsRaw(t *testing.T) {
	u := parseUnit(t, "int g = 7;")
	var buf bytes.Buffer
	if err := WriteViews(&buf, []cnode.View{cnode.NewView(u.Decls()[0], -1)}, ViewRaw); err != nil {
		t.Fatalf("raw: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"View{", `Kind: "VarDecl"`, `Name: "g"`, `Kind: "IntegerLiteral"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in raw dump:\n%s", want, out)
		}
	}
}

func TestParseViewFormat(t *testing.T) {
	for in, want := range map[string]ViewFormat{"json": ViewJSON, "yaml": ViewYAML, "yml": ViewYAML, "raw": ViewRaw} {
		got, err := ParseViewFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseViewFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseViewFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestColorFormatterDisabledIsTransparent(t *testing.T) {
	u := parseUnit(t, "int f(int a) { return a + 1; }")
	var plain, colored bytes.Buffer
	if err := cnode.Dump(&plain, u.Decl(), nil); err != nil {
		t.Fatal(err)
	}
	if err := cnode.Dump(&colored, u.Decl(), NewColorFormatter(nil, false)); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(plain.String(), colored.String()); diff != "" {
		t.Fatalf("disabled colors changed the dump (-plain +colored):\n%s", diff)
	}
}

func TestColorFormatterEnabled(t *testing.T) {
	u := parseUnit(t, "int x;")
	f := NewColorFormatter(cnode.FormatterFunc(cnode.ClassName), true)
	got := f.FormatNode(u.Decls()[0])
	if !strings.Contains(got, "\x1b[") || !strings.Contains(got, "VarDecl") {
		t.Fatalf("expected escape codes around class name, got %q", got)
	}
}

func TestPrettyDiagnostics(t *testing.T) {
	_, err := cnode.ParseSource(context.Background(), "bad.c", []byte("int x = @;\n"))
	var perr *cnode.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *cnode.ParseError, got %v", err)
	}
	var buf bytes.Buffer
	PrettyDiagnostics(&buf, perr.Errors()[:1], false)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("short output:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[0], "bad.c:1:9: ERROR LEX1001: ") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != " | int x = @;" || lines[2] != " |         ^" {
		t.Errorf("snippet = %q / %q", lines[1], lines[2])
	}
}
