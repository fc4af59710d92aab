package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "cnode.toml"

// cliConfig is the optional cnode.toml:
//
//	[parse]
//	args = ["-std=c99", "-Werror"]
//	error_limit = 50
//
//	[output]
//	format = "json"
//	color = "off"
//	path_mode = "relative"
//
//	[trace]
//	level = "phase"
//	format = "ndjson"
//	output = "trace.ndjson"
//
//	[check]
//	jobs = 4
//	ui = "off"
type cliConfig struct {
	Path   string       `toml:"-"`
	Parse  parseConfig  `toml:"parse"`
	Output outputConfig `toml:"output"`
	Trace  traceConfig  `toml:"trace"`
	Check  checkConfig  `toml:"check"`

	meta toml.MetaData
}

type parseConfig struct {
	Args       []string `toml:"args"`
	ErrorLimit uint     `toml:"error_limit"`
}

type outputConfig struct {
	Format   string `toml:"format"`
	Color    string `toml:"color"`
	PathMode string `toml:"path_mode"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

type checkConfig struct {
	Jobs int    `toml:"jobs"`
	UI   string `toml:"ui"`
}

// activeConfig is the configuration of the running command; empty when no file was found.
var activeConfig = &cliConfig{}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads path, or searches for cnode.toml from the working
// directory upwards when path is empty. A missing file is not an error
// unless it was named explicitly.
func loadConfig(path string) (*cliConfig, error) {
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil {
			return nil, err
		}
		if !ok {
			return &cliConfig{}, nil
		}
		path = found
	}
	cfg := &cliConfig{Path: path}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.meta = meta
	return cfg, nil
}

// flagBindings maps config keys onto command-line flags.
// An empty command restricts nothing.
var flagBindings = []struct {
	key     []string
	flag    string
	command string
}{
	{[]string{"output", "format"}, "format", "dump"},
	{[]string{"output", "format"}, "format", "query"},
	{[]string{"output", "color"}, "color", ""},
	{[]string{"output", "path_mode"}, "path-mode", ""},
	{[]string{"trace", "level"}, "trace-level", ""},
	{[]string{"trace", "format"}, "trace-format", ""},
	{[]string{"trace", "output"}, "trace", ""},
	{[]string{"check", "jobs"}, "jobs", "check"},
	{[]string{"check", "ui"}, "ui", "check"},
}

// apply copies every key defined in the file onto flags the user did not
// set explicitly. Flags the current command lacks are skipped.
func (c *cliConfig) apply(cmd *cobra.Command) error {
	if c.Path == "" {
		return nil
	}
	flags := cmd.Flags()
	for _, b := range flagBindings {
		if !c.meta.IsDefined(b.key...) || (b.command != "" && b.command != cmd.Name()) {
			continue
		}
		f := flags.Lookup(b.flag)
		if f == nil || f.Changed {
			continue
		}
		if err := flags.Set(b.flag, c.value(b.key)); err != nil {
			return fmt.Errorf("%s: [%s] %s: %w", c.Path, b.key[0], b.key[1], err)
		}
	}
	return nil
}

func (c *cliConfig) value(key []string) string {
	switch strings.Join(key, ".") {
	case "output.format":
		return c.Output.Format
	case "output.color":
		return c.Output.Color
	case "output.path_mode":
		return c.Output.PathMode
	case "trace.level":
		return c.Trace.Level
	case "trace.format":
		return c.Trace.Format
	case "trace.output":
		return c.Trace.Output
	case "check.jobs":
		return strconv.Itoa(c.Check.Jobs)
	case "check.ui":
		return c.Check.UI
	}
	return ""
}

// errorLimit reports the [parse] error_limit when the file sets it.
func (c *cliConfig) errorLimit() (uint, bool) {
	if c.Path == "" || !c.meta.IsDefined("parse", "error_limit") {
		return 0, false
	}
	return c.Parse.ErrorLimit, true
}
