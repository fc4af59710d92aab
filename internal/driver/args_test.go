package driver

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cbridge/internal/diag"
	"cbridge/internal/sema"
)

func collectArgs(argv ...string) (Args, *diag.Bag) {
	bag := diag.NewBag(0)
	return ParseArgs(argv, DefaultOptions(), diag.BagReporter{Bag: bag}), bag
}

func TestParseArgsFlags(t *testing.T) {
	args, bag := collectArgs("main.c", "-std=c99", "-w", "-Werror", "-ferror-limit=5", "-x", "c", "-fsyntax-only", "-O2", "-Wall")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diag.FormatShort(bag.Items(), nil, false))
	}
	want := Args{Input: "main.c", Options: Options{
		Standard:         sema.StdC99,
		ErrorLimit:       5,
		SuppressWarnings: true,
		WarningsAsErrors: true,
		SyntaxOnly:       true,
	}}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArgsProblems(t *testing.T) {
	cases := []struct {
		name string
		argv []string
		code diag.Code
		sev  diag.Severity
	}{
		{"no input", []string{"-std=c11"}, diag.DrvNoInput, diag.SevError},
		{"bad std", []string{"a.c", "-std=c77"}, diag.DrvInvalidValue, diag.SevError},
		{"bad limit", []string{"a.c", "-ferror-limit=many"}, diag.DrvInvalidValue, diag.SevError},
		{"bad language", []string{"a.c", "-x", "c++"}, diag.DrvInvalidValue, diag.SevError},
		{"missing value", []string{"a.c", "-x"}, diag.DrvInvalidValue, diag.SevError},
		{"unknown", []string{"a.c", "--frobnicate"}, diag.DrvUnknownArgument, diag.SevError},
		{"second input", []string{"a.c", "b.c"}, diag.DrvUnknownArgument, diag.SevError},
		{"define", []string{"a.c", "-DFOO=1"}, diag.DrvUnusedArgument, diag.SevWarning},
		{"include dir", []string{"a.c", "-I", "inc"}, diag.DrvUnusedArgument, diag.SevWarning},
		{"include file", []string{"a.c", "-include", "pre.h"}, diag.DrvUnusedArgument, diag.SevWarning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bag := collectArgs(tc.argv...)
			if bag.Len() != 1 {
				t.Fatalf("expected one diagnostic, got %d: %s", bag.Len(), diag.FormatShort(bag.Items(), nil, false))
			}
			d := bag.Items()[0]
			if d.Code != tc.code || d.Severity != tc.sev {
				t.Fatalf("got %s %s %q, want %s %s", d.Severity, d.Code.ID(), d.Message, tc.sev, tc.code.ID())
			}
		})
	}
}

func TestParseArgsSeparateValueIsConsumed(t *testing.T) {
	args, bag := collectArgs("-I", "include", "main.c")
	if args.Input != "main.c" {
		t.Fatalf("input = %q; the -I value must not become the input", args.Input)
	}
	if !strings.Contains(bag.Items()[0].Message, "-I include") {
		t.Fatalf("unexpected message: %q", bag.Items()[0].Message)
	}
}

func TestParseStandardAliases(t *testing.T) {
	for name, want := range map[string]sema.Standard{"c90": sema.StdC89, "gnu11": sema.StdGNU11, "C2X": sema.StdC23} {
		got, err := ParseStandard(name)
		if err != nil || got != want {
			t.Errorf("ParseStandard(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
}

func TestParseFlagsWithoutInput(t *testing.T) {
	bag := diag.NewBag(0)
	args := ParseFlags([]string{"-std=c11", "-Werror"}, DefaultOptions(), diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diag.FormatShort(bag.Items(), nil, false))
	}
	if args.Input != "" || args.Options.Standard != sema.StdC11 || !args.Options.WarningsAsErrors {
		t.Fatalf("args = %+v", args)
	}
}
