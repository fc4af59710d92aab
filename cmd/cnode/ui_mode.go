package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	return readTristate("--ui", value)
}

// readColorMode разбирает --color; значения те же, что у --ui.
func readColorMode(value string) (uiMode, error) {
	return readTristate("--color", value)
}

func readTristate(flag, value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on", "always":
		return uiModeOn, nil
	case "off", "never":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid %s value %q (expected auto|on|off)", flag, value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// useColor решает, красить ли вывод в f. NO_COLOR отключает auto-режим.
func useColor(mode uiMode, f *os.File) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		return isTerminal(f)
	}
}

// colorFor reads --color and decides for f.
func colorFor(flagValue string, f *os.File) bool {
	mode, err := readColorMode(flagValue)
	if err != nil {
		return false
	}
	return useColor(mode, f)
}
