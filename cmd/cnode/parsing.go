package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cbridge/cnode"
	"cbridge/internal/diagfmt"
)

// compilerArgv builds the compiler command line of a single-file command:
// the input, then [parse] args from cnode.toml, then everything after "--".
// Later flags win, so the command line overrides the file.
func compilerArgv(cmd *cobra.Command, args []string) ([]string, error) {
	inputs := args
	var extra []string
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		inputs, extra = args[:dash], args[dash:]
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("expected exactly one input file, got %d", len(inputs))
	}
	argv := make([]string, 0, 1+len(activeConfig.Parse.Args)+len(extra))
	argv = append(argv, inputs[0])
	argv = append(argv, activeConfig.Parse.Args...)
	return append(argv, extra...), nil
}

// parseOptions turns persistent flags and the config file into cnode options.
func parseOptions() []cnode.Option {
	var opts []cnode.Option
	if n, ok := activeConfig.errorLimit(); ok {
		opts = append(opts, cnode.WithErrorLimit(n))
	}
	return opts
}

// parseForCommand parses argv and prints diagnostics to stderr. A failed
// parse has already been reported when errSilent comes back.
func parseForCommand(cmd *cobra.Command, argv []string) (*cnode.Unit, error) {
	u, err := cnode.Parse(cmd.Context(), argv, parseOptions()...)
	colorFlag, _ := cmd.Flags().GetString("color")
	useColor := colorFor(colorFlag, os.Stderr)
	quiet, _ := cmd.Flags().GetBool("quiet")

	var perr *cnode.ParseError
	if errors.As(err, &perr) && perr.Err == nil {
		diagfmt.PrettyDiagnostics(cmd.ErrOrStderr(), limitDiagnostics(cmd, perr.Diagnostics), useColor)
		return nil, errSilent
	}
	if err != nil {
		return nil, err
	}
	if !quiet {
		diagfmt.PrettyDiagnostics(cmd.ErrOrStderr(), limitDiagnostics(cmd, u.Diagnostics()), useColor)
	}
	return u, nil
}

func limitDiagnostics(cmd *cobra.Command, diags []cnode.Diagnostic) []cnode.Diagnostic {
	maxDiags, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil || maxDiags <= 0 || len(diags) <= maxDiags {
		return diags
	}
	return diags[:maxDiags]
}
