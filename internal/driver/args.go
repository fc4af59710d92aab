package driver

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"cbridge/internal/diag"
	"cbridge/internal/sema"
	"cbridge/internal/source"
)

// DefaultErrorLimit matches clang's -ferror-limit default.
const DefaultErrorLimit = 20

// Options is the resolved compiler configuration of one unit.
type Options struct {
	Standard         sema.Standard
	ErrorLimit       uint // 0 means unlimited
	SuppressWarnings bool // -w
	WarningsAsErrors bool // -Werror
	SyntaxOnly       bool // -fsyntax-only; accepted, parsing never goes further
}

// DefaultOptions returns the configuration used when argv says nothing.
func DefaultOptions() Options {
	return Options{Standard: sema.StdGNU17, ErrorLimit: DefaultErrorLimit}
}

// Args is a parsed compiler command line.
type Args struct {
	Input   string
	Options Options
}

var standards = map[string]sema.Standard{
	"c89": sema.StdC89, "c90": sema.StdC89, "iso9899:1990": sema.StdC89,
	"gnu89": sema.StdGNU89, "gnu90": sema.StdGNU89,
	"c99": sema.StdC99, "iso9899:1999": sema.StdC99, "gnu99": sema.StdGNU99,
	"c11": sema.StdC11, "iso9899:2011": sema.StdC11, "gnu11": sema.StdGNU11,
	"c17": sema.StdC17, "c18": sema.StdC17, "iso9899:2017": sema.StdC17,
	"gnu17": sema.StdGNU17, "gnu18": sema.StdGNU17,
	"c23": sema.StdC23, "c2x": sema.StdC23, "gnu23": sema.StdC23, "gnu2x": sema.StdC23,
}

// ParseStandard maps a -std= value to a dialect.
func ParseStandard(name string) (sema.Standard, error) {
	std, ok := standards[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("invalid value '%s' in '-std=%s'", name, name)
	}
	return std, nil
}

// ParseArgs interprets argv on top of base. The first argument that is not
// an option is the input file. Problems are reported to r with no source
// span; the caller decides whether errors are fatal.
func ParseArgs(argv []string, base Options, r diag.Reporter) Args {
	args := ParseFlags(argv, base, r)
	if args.Input == "" {
		reportArg(r, diag.SevError, diag.DrvNoInput, "no input files")
	}
	return args
}

func reportArg(r diag.Reporter, sev diag.Severity, code diag.Code, format string, a ...any) {
	if r != nil {
		r.Report(code, sev, source.Span{}, fmt.Sprintf(format, a...), nil, nil)
	}
}

// ParseFlags is ParseArgs without the input requirement: flags shared by
// several inputs are resolved once, and Input stays empty unless argv names one.
func ParseFlags(argv []string, base Options, r diag.Reporter) Args {
	args := Args{Options: base}
	report := func(sev diag.Severity, code diag.Code, format string, a ...any) {
		reportArg(r, sev, code, format, a...)
	}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		// значение опции может идти отдельным аргументом: -x c, -I dir
		next := func() (string, bool) {
			if i+1 >= len(argv) {
				report(diag.SevError, diag.DrvInvalidValue, "argument to '%s' is missing (expected 1 value)", arg)
				return "", false
			}
			i++
			return argv[i], true
		}

		switch {
		case arg == "" || arg == "-":
			report(diag.SevError, diag.DrvUnknownArgument, "reading from standard input is not supported")
		case !strings.HasPrefix(arg, "-"):
			if args.Input != "" {
				report(diag.SevError, diag.DrvUnknownArgument, "unable to handle compilation, expected exactly one input: extra input '%s'", arg)
				continue
			}
			args.Input = arg
		case strings.HasPrefix(arg, "-std="):
			std, err := ParseStandard(strings.TrimPrefix(arg, "-std="))
			if err != nil {
				report(diag.SevError, diag.DrvInvalidValue, "%s", err.Error())
				continue
			}
			args.Options.Standard = std
		case arg == "-ansi":
			args.Options.Standard = sema.StdC89
		case arg == "-w":
			args.Options.SuppressWarnings = true
		case arg == "-Werror":
			args.Options.WarningsAsErrors = true
		case arg == "-Wno-error":
			args.Options.WarningsAsErrors = false
		case strings.HasPrefix(arg, "-ferror-limit="):
			value := strings.TrimPrefix(arg, "-ferror-limit=")
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				report(diag.SevError, diag.DrvInvalidValue, "invalid integral value '%s' in '%s'", value, arg)
				continue
			}
			limit, err := safecast.Conv[uint](n)
			if err != nil {
				report(diag.SevError, diag.DrvInvalidValue, "invalid integral value '%s' in '%s'", value, arg)
				continue
			}
			args.Options.ErrorLimit = limit
		case arg == "-fsyntax-only":
			args.Options.SyntaxOnly = true
		case arg == "-x" || strings.HasPrefix(arg, "-x"):
			lang := strings.TrimPrefix(arg, "-x")
			if lang == "" {
				v, ok := next()
				if !ok {
					continue
				}
				lang = v
			}
			if lang != "c" && lang != "cpp-output" {
				report(diag.SevError, diag.DrvInvalidValue, "invalid value '%s' in '-x %s'", lang, lang)
			}
		case arg == "-D" || arg == "-U" || arg == "-I" || arg == "-include" || arg == "-isystem":
			if v, ok := next(); ok {
				report(diag.SevWarning, diag.DrvUnusedArgument, "argument unused during compilation: '%s %s'", arg, v)
			}
		case strings.HasPrefix(arg, "-D"), strings.HasPrefix(arg, "-U"), strings.HasPrefix(arg, "-I"):
			report(diag.SevWarning, diag.DrvUnusedArgument, "argument unused during compilation: '%s'", arg)
		case strings.HasPrefix(arg, "-W"), strings.HasPrefix(arg, "-O"),
			arg == "-g", arg == "-c", arg == "-pedantic":
			// влияют только на кодогенерацию или наборы предупреждений; молча принимаем
		case strings.HasPrefix(arg, "-f"), strings.HasPrefix(arg, "-m"):
			report(diag.SevWarning, diag.DrvUnusedArgument, "argument unused during compilation: '%s'", arg)
		default:
			report(diag.SevError, diag.DrvUnknownArgument, "unknown argument: '%s'", arg)
		}
	}

	return args
}
