package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cbridge/cnode"
	"cbridge/internal/diagfmt"
	"cbridge/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query [flags] <expr> file.c... [-- compiler flags]",
	Short: "Find AST nodes matching an expression",
	Long: `Query walks every node of each file and prints those for which the
expression holds. The expression sees id, kind, name, type, loc, file, line,
implicit, attrs, classes, depth, parent and children, e.g.

  cnode query 'kind == "VarDecl" && attrs["storage"] == "static"' a.c
  cnode query '"CastExpr" in classes && attrs["cast"] == "IntegralCast"' a.c`,
	Args: cobra.MinimumNArgs(2),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("format", "text", "output format (text|json|yaml|raw)")
	queryCmd.Flags().Int("limit", 0, "stop after this many matches per file (0 = unlimited)")
	queryCmd.Flags().Int("max-depth", 0, "do not descend below this depth (0 = unlimited)")
	queryCmd.Flags().Bool("skip-implicit", false, "ignore implicit nodes and their subtrees")
	queryCmd.Flags().Bool("count", false, "print only the number of matches per file")
}

func runQuery(cmd *cobra.Command, args []string) error {
	q, err := query.Compile(args[0])
	if err != nil {
		return err
	}
	rest := args[1:]
	var extra []string
	if dash := cmd.ArgsLenAtDash(); dash >= 1 {
		rest, extra = args[1:dash], args[dash:]
	}
	if len(rest) == 0 {
		return errors.New("no input files")
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	var opts query.Options
	if opts.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return fmt.Errorf("failed to get limit flag: %w", err)
	}
	if opts.MaxDepth, err = cmd.Flags().GetInt("max-depth"); err != nil {
		return fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	if opts.SkipImplicit, err = cmd.Flags().GetBool("skip-implicit"); err != nil {
		return fmt.Errorf("failed to get skip-implicit flag: %w", err)
	}
	countOnly, err := cmd.Flags().GetBool("count")
	if err != nil {
		return fmt.Errorf("failed to get count flag: %w", err)
	}

	var views []cnode.View
	failed := false
	for _, file := range rest {
		argv := append([]string{file}, activeConfig.Parse.Args...)
		u, err := parseForCommand(cmd, append(argv, extra...))
		if errors.Is(err, errSilent) {
			failed = true
			continue
		}
		if err != nil {
			return err
		}
		matches, err := query.Run(cmd.Context(), q, u.Decl(), opts)
		_ = u.Close()
		if err != nil {
			return err
		}
		switch {
		case countOnly:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", file, len(matches))
		case format == "text":
			printMatches(cmd.OutOrStdout(), matches)
		default:
			for _, m := range matches {
				views = append(views, m.View)
			}
		}
	}

	if !countOnly && format != "text" {
		vf, err := diagfmt.ParseViewFormat(format)
		if err != nil {
			return err
		}
		if views == nil {
			views = []cnode.View{}
		}
		if err := diagfmt.WriteViews(cmd.OutOrStdout(), views, vf); err != nil {
			return err
		}
	}
	if failed {
		return errSilent
	}
	return nil
}

func printMatches(w io.Writer, matches []query.Match) {
	locColor := color.New(color.Bold)
	kindColor := color.New(color.FgMagenta, color.Bold)
	for _, m := range matches {
		loc := m.View.Location
		if loc == "" {
			loc = "<invalid sloc>"
		}
		line := locColor.Sprint(loc) + ": " + kindColor.Sprint(m.View.Kind)
		if m.View.Name != "" {
			line += " " + m.View.Name
		}
		if m.View.Type != "" {
			line += " '" + m.View.Type + "'"
		}
		fmt.Fprintln(w, line)
	}
}
