package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cbridge/internal/diag"
	"cbridge/internal/diagfmt"
	"cbridge/internal/driver"
	"cbridge/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.c|directory>... [-- compiler flags]",
	Short: "Parse many C files concurrently and report diagnostics",
	Long: `Check parses every input (directories are searched for .c, .i and .h
files) with a bounded worker pool, shows progress on a terminal and prints
the diagnostics of each unit. It fails when any unit has errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0 = GOMAXPROCS)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	inputs := args
	var extra []string
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		inputs, extra = args[:dash], args[dash:]
	}

	flags := cmd.Flags()
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, _ := flags.GetBool("with-notes")
	suggest, _ := flags.GetBool("suggest")
	quiet, _ := flags.GetBool("quiet")
	timings, _ := flags.GetBool("timings")
	maxDiagnostics, _ := flags.GetInt("max-diagnostics")
	colorFlag, _ := flags.GetString("color")
	pathMode, err := pathModeFlag(cmd)
	if err != nil {
		return err
	}

	opts, err := checkOptions(extra)
	if err != nil {
		return err
	}
	files, err := driver.CollectInputs(inputs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no C sources found in %v", inputs)
	}

	batch := driver.BatchOptions{Jobs: jobs}
	var results []*driver.ParseResult
	if !quiet && format == "pretty" && shouldUseTUI(mode) {
		results, err = parseAllWithUI(cmd.Context(), "cnode check", files, opts, batch)
	} else {
		results, err = driver.ParseAll(cmd.Context(), files, opts, batch)
	}
	if err != nil {
		return err
	}

	// один общий Bag: FileSet у каждой единицы свой, поэтому печатаем по файлам
	out := cmd.OutOrStdout()
	var (
		errorsTotal, warningsTotal, failedUnits int
		total                                   observ.Report
	)
	for i, res := range results {
		if res == nil {
			continue
		}
		res.Bag.Sort()
		errorsTotal += res.Bag.CountBySeverity(diag.SevError)
		warningsTotal += res.Bag.CountBySeverity(diag.SevWarning)
		if res.Failed() {
			failedUnits++
		}
		total = total.Merge(res.Timing)
		if timings {
			driver.AppendTimingDiagnostic(res.Bag, files[i], res.Timing)
		}
		if err := printUnitDiagnostics(out, res, format, diagfmt.PrettyOpts{
			Color:     colorFor(colorFlag, os.Stdout),
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowFixes: suggest,
		}, maxDiagnostics); err != nil {
			return err
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s) checked: %d error(s), %d warning(s), %d unit(s) failed\n",
			len(files), errorsTotal, warningsTotal, failedUnits)
	}
	if timings && format == "pretty" {
		fmt.Fprint(cmd.ErrOrStderr(), total.Summary())
	}
	if failedUnits > 0 {
		return errSilent
	}
	return nil
}

// checkOptions resolves the compiler flags shared by every unit: [parse]
// args from cnode.toml, then the flags after "--". An input file among
// them is rejected; inputs go before "--".
func checkOptions(extra []string) (driver.Options, error) {
	base := driver.DefaultOptions()
	if n, ok := activeConfig.errorLimit(); ok {
		base.ErrorLimit = n
	}
	argv := append(append([]string(nil), activeConfig.Parse.Args...), extra...)
	bag := diag.NewBag(0)
	args := driver.ParseFlags(argv, base, diag.BagReporter{Bag: bag})
	if args.Input != "" {
		return base, fmt.Errorf("unexpected input %q after --; list inputs before it", args.Input)
	}
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			return base, fmt.Errorf("%s", d.Message)
		}
	}
	return args.Options, nil
}

func printUnitDiagnostics(w io.Writer, res *driver.ParseResult, format string, pretty diagfmt.PrettyOpts, maxDiagnostics int) error {
	if res.Bag.Len() == 0 {
		return nil
	}
	switch format {
	case "pretty":
		bag := res.Bag
		if maxDiagnostics > 0 && bag.Len() > maxDiagnostics {
			bag = truncatedBag(bag, maxDiagnostics)
		}
		diagfmt.Pretty(w, bag, res.FileSet, pretty)
		fmt.Fprintln(w)
		return nil
	case "short":
		_, err := io.WriteString(w, diag.FormatShort(res.Bag.Items(), res.FileSet, pretty.ShowNotes))
		return err
	case "json":
		return diagfmt.JSON(w, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pretty.PathMode,
			Max:              maxDiagnostics,
			IncludeNotes:     pretty.ShowNotes,
			IncludeFixes:     pretty.ShowFixes,
			IncludePreviews:  pretty.ShowFixes,
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func truncatedBag(bag *diag.Bag, n int) *diag.Bag {
	out := diag.NewBag(n)
	for _, d := range bag.Items() {
		out.Add(d)
	}
	return out
}
