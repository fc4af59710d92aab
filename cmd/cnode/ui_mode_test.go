package main

import (
	"os"
	"testing"
)

func TestReadTristate(t *testing.T) {
	tests := []struct {
		in   string
		want uiMode
		ok   bool
	}{
		{"", uiModeAuto, true},
		{"AUTO", uiModeAuto, true},
		{"on", uiModeOn, true},
		{"always", uiModeOn, true},
		{" off ", uiModeOff, true},
		{"never", uiModeOff, true},
		{"maybe", "", false},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestUseColorExplicitModes(t *testing.T) {
	if !useColor(uiModeOn, os.Stdout) {
		t.Error("on must force color")
	}
	if useColor(uiModeOff, os.Stdout) {
		t.Error("off must disable color")
	}
	t.Setenv("NO_COLOR", "1")
	if useColor(uiModeAuto, os.Stdout) {
		t.Error("NO_COLOR must disable auto color")
	}
	if colorFor("bogus", os.Stdout) {
		t.Error("invalid flag value must not enable color")
	}
}
