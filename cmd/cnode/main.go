package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cbridge/internal/prof"
	"cbridge/internal/version"
)

// errSilent marks failures already reported to the user (diagnostics were
// printed); main only sets the exit code.
var errSilent = errors.New("silent failure")

var rootCmd = &cobra.Command{
	Use:   "cnode",
	Short: "Inspect C translation units through the cnode handle API",
	Long: `cnode parses C sources with its built-in front end and exposes the
resulting AST: clang-style dumps, structured snapshots, expression queries
and batch checks.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

// main initializes the CLI by setting the command version, registering subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	rootCmd.Version = version.Version()

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	rootCmd.PersistentFlags().String("config", "", "path to cnode.toml (default: search from the working directory up)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file ('-' for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime execution trace to file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	traceCleanup(err != nil)
	if perr := profiling.Stop(); perr != nil {
		fmt.Fprintf(os.Stderr, "cnode: profiling: %v\n", perr)
	}
	stop()
	if err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(os.Stderr, "cnode: %v\n", err)
		}
		os.Exit(1)
	}
}

// setupRun применяет cnode.toml к флагам, которые не заданы явно, и поднимает трассировку.
func setupRun(cmd *cobra.Command, _ []string) error {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.apply(cmd); err != nil {
		return err
	}
	activeConfig = cfg

	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readColorMode(colorFlag)
	if err != nil {
		return err
	}
	color.NoColor = !useColor(mode, os.Stdout)

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup

	return startProfiling(cmd)
}

// profiling is stopped by main after the command returns.
var profiling *prof.Session

func startProfiling(cmd *cobra.Command) error {
	var opts prof.Options
	flags := cmd.Flags()
	opts.CPU, _ = flags.GetString("cpuprofile")
	opts.Mem, _ = flags.GetString("memprofile")
	opts.Trace, _ = flags.GetString("runtime-trace")
	if !opts.Enabled() {
		return nil
	}
	s, err := prof.Start(opts)
	if err != nil {
		return err
	}
	profiling = s
	return nil
}

// traceCleanup сбрасывает и закрывает трассировщик; main вызывает его и после ошибок.
var traceCleanup = func(failed bool) {}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
