package cnode

import (
	"io"

	"cbridge/internal/driver"
	"cbridge/internal/trace"
)

// Tracer receives phase spans of a parse (lex, parse, sema). See NewTracer.
type Tracer = trace.Tracer

// NewTracer returns a Tracer writing human-readable events to w at level
// ("off", "error", "phase", "detail" or "debug").
func NewTracer(w io.Writer, level string) (Tracer, error) {
	lvl, err := trace.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return trace.New(trace.Config{Level: lvl, Format: trace.FormatText, Output: w})
}

// Option configures Parse and ParseSource. Flags in argv are applied after
// options, so an explicit -std= or -Werror on the command line wins.
type Option func(*config)

type config struct {
	tracer     Tracer
	errorLimit *uint
	werror     bool
	standard   string
	args       []string
}

// WithTracer traces the parse into t.
func WithTracer(t Tracer) Option {
	return func(c *config) { c.tracer = t }
}

// WithErrorLimit stops reporting after n errors; 0 means unlimited.
func WithErrorLimit(n uint) Option {
	return func(c *config) { c.errorLimit = &n }
}

// WithWarningsAsErrors makes every warning fail the parse, like -Werror.
func WithWarningsAsErrors() Option {
	return func(c *config) { c.werror = true }
}

// WithStandard selects the language dialect by its -std= name ("c99", "gnu11").
func WithStandard(name string) Option {
	return func(c *config) { c.standard = name }
}

// WithArgs appends compiler flags; ParseSource takes all of its flags this way.
func WithArgs(flags ...string) Option {
	return func(c *config) { c.args = append(c.args, flags...) }
}

func (c *config) driverOptions() (driver.Options, error) {
	opts := driver.DefaultOptions()
	if c.standard != "" {
		std, err := driver.ParseStandard(c.standard)
		if err != nil {
			return opts, err
		}
		opts.Standard = std
	}
	if c.errorLimit != nil {
		opts.ErrorLimit = *c.errorLimit
	}
	opts.WarningsAsErrors = c.werror
	return opts, nil
}
