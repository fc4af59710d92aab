package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cbridge/internal/trace"
)

// setupTracing builds the tracer described by --trace, --trace-level and
// --trace-format and installs it in the command context. The returned
// cleanup flushes it; at level "error" the in-memory ring is printed to
// stderr only when the command failed.
func setupTracing(cmd *cobra.Command) (func(failed bool), error) {
	flags := cmd.Flags()
	output, _ := flags.GetString("trace")
	levelFlag, _ := flags.GetString("trace-level")
	formatFlag, _ := flags.GetString("trace-format")

	level, err := trace.ParseLevel(levelFlag)
	if err != nil {
		return nil, err
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	format, err := trace.ParseFormat(formatFlag)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff {
		return func(bool) {}, nil
	}

	tracer, err := trace.New(trace.Config{Level: level, Format: format, OutputPath: output})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	return func(failed bool) {
		if ring, ok := tracer.(*trace.RingTracer); ok && failed {
			if format == trace.FormatAuto {
				format = trace.FormatText
			}
			if err := ring.Dump(os.Stderr, format); err != nil {
				fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
		}
	}, nil
}
