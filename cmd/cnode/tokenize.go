package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cbridge/internal/diagfmt"
	"cbridge/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.c",
	Short: "Tokenize a C source file",
	Long:  `Tokenize prints the raw token stream of a (preprocessed) C file with spans and trivia`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	pathMode, err := pathModeFlag(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		colorFlag, _ := cmd.Flags().GetString("color")
		result.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:    colorFor(colorFlag, os.Stderr),
			Context:  1,
			PathMode: pathMode,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func pathModeFlag(cmd *cobra.Command) (diagfmt.PathMode, error) {
	value, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return diagfmt.PathModeAuto, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(value)
	if !ok {
		return diagfmt.PathModeAuto, fmt.Errorf("invalid --path-mode value %q (expected auto|absolute|relative|basename)", value)
	}
	return mode, nil
}
