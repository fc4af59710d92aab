package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer is the sink for trace events. Implementations must be safe for
// concurrent use: ParseAll emits from several goroutines.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Format     Format    // FormatAuto picks by OutputPath extension
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "-" or empty for stderr
	RingSize   int       // LevelError only (default 4096)
}

// New creates a Tracer: Nop when off, a RingTracer at LevelError and a
// StreamTracer otherwise.
func New(cfg Config) (Tracer, error) {
	switch cfg.Level {
	case LevelOff:
		return Nop, nil
	case LevelError:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}
	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// nopCloser keeps Close from closing stderr.
type nopCloser struct{ io.Writer }
