package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cbridge/cnode"
	"cbridge/internal/diagfmt"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] file.c [-- compiler flags]",
	Short: "Print the AST of a C translation unit",
	Long: `Dump parses a C file and prints its AST: a clang-style tree (text) or a
snapshot of node views (json, yaml, raw). Compiler flags such as -std=c99
go after "--".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("format", "text", "output format (text|json|yaml|raw)")
	dumpCmd.Flags().Int("depth", -1, "snapshot depth for json|yaml|raw (-1 = whole tree)")
	dumpCmd.Flags().String("filter", "", "dump only top-level declarations whose name contains this string")
	dumpCmd.Flags().Bool("watch", false, "re-dump whenever the file changes")
}

type dumpOptions struct {
	format string
	depth  int
	filter string
	color  bool
}

func runDump(cmd *cobra.Command, args []string) error {
	argv, err := compilerArgv(cmd, args)
	if err != nil {
		return err
	}
	opts := dumpOptions{color: !color.NoColor}
	if opts.format, err = cmd.Flags().GetString("format"); err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if opts.depth, err = cmd.Flags().GetInt("depth"); err != nil {
		return fmt.Errorf("failed to get depth flag: %w", err)
	}
	if opts.filter, err = cmd.Flags().GetString("filter"); err != nil {
		return fmt.Errorf("failed to get filter flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	if opts.format != "text" {
		if _, err := diagfmt.ParseViewFormat(opts.format); err != nil {
			return err
		}
	}

	once := func() error {
		u, err := parseForCommand(cmd, argv)
		if err != nil {
			return err
		}
		defer u.Close()
		return writeDump(cmd.OutOrStdout(), u, opts)
	}

	if !watch {
		return once()
	}
	if err := once(); err != nil && !errors.Is(err, errSilent) {
		return err
	}
	return watchFile(cmd.Context(), argv[0], 100*time.Millisecond, func() {
		fmt.Fprintf(cmd.ErrOrStderr(), "--- %s changed, %s\n", argv[0], time.Now().Format(time.TimeOnly))
		if err := once(); err != nil && !errors.Is(err, errSilent) {
			fmt.Fprintf(cmd.ErrOrStderr(), "cnode: %v\n", err)
		}
	})
}

// dumpRoots selects the translation unit, or the matching top-level
// declarations when a filter is given (clang -ast-dump-filter).
func dumpRoots(u *cnode.Unit, filter string) (roots []cnode.Node, names []string) {
	if filter == "" {
		return []cnode.Node{u.Decl()}, []string{""}
	}
	for _, d := range u.Decls() {
		if nd, ok := cnode.As[cnode.NamedDecl](d); ok && strings.Contains(nd.Name(), filter) {
			roots = append(roots, d)
			names = append(names, nd.Name())
		}
	}
	return roots, names
}

func writeDump(w io.Writer, u *cnode.Unit, opts dumpOptions) error {
	roots, names := dumpRoots(u, opts.filter)
	if opts.format == "text" {
		for i, r := range roots {
			if opts.filter != "" {
				fmt.Fprintf(w, "Dumping %s:\n", names[i])
			}
			if err := cnode.Dump(w, r, diagfmt.NewColorFormatter(nil, opts.color)); err != nil {
				return err
			}
		}
		return nil
	}
	format, err := diagfmt.ParseViewFormat(opts.format)
	if err != nil {
		return err
	}
	views := make([]cnode.View, 0, len(roots))
	for _, r := range roots {
		views = append(views, cnode.NewView(r, opts.depth))
	}
	return diagfmt.WriteViews(w, views, format)
}
