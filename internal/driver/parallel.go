package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cbridge/internal/trace"
)

// sourceExts are the inputs CollectInputs picks up from directories.
var sourceExts = map[string]bool{".c": true, ".i": true, ".h": true}

// CollectInputs expands directories into the sorted list of C files under
// them; plain file arguments are kept as given.
func CollectInputs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && sourceExts[strings.ToLower(filepath.Ext(path))] {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
		// детерминированный порядок внутри директории
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// BatchOptions tunes ParseAll.
type BatchOptions struct {
	Jobs int          // <= 0 means GOMAXPROCS
	Sink ProgressSink // may be nil
}

// ParseAll parses every path independently with at most Jobs units in
// flight. Results keep the order of paths; a unit with errors does not stop
// the others. The error is non-nil only when ctx is cancelled.
func ParseAll(ctx context.Context, paths []string, opts Options, batch BatchOptions) ([]*ParseResult, error) {
	results := make([]*ParseResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	emit := func(ev Event) {
		if batch.Sink != nil {
			batch.Sink.OnEvent(ev)
		}
	}
	for _, path := range paths {
		emit(Event{File: path, Stage: StageLex, Status: StatusQueued})
	}

	jobs := batch.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "parse_all")
	span.WithExtra("units", strconv.Itoa(len(paths))).WithExtra("jobs", strconv.Itoa(jobs))
	defer span.End("")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			last := StageLex
			res, err := parseTracked(gctx, path, opts, func(st Stage) {
				last = st
				emit(Event{File: path, Stage: st, Status: StatusWorking, Elapsed: time.Since(start)})
			})
			results[i] = res // индексы уникальны, мьютекс не нужен
			if err != nil {
				emit(Event{File: path, Stage: last, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				return err
			}
			status := StatusDone
			if res.Failed() {
				status = StatusError
			}
			emit(Event{File: path, Stage: last, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func parseTracked(ctx context.Context, path string, opts Options, onStage func(Stage)) (*ParseResult, error) {
	res := newResult(opts)
	res.onStage = onStage
	return res, res.load(ctx, path, reporterFor(res.Bag, opts))
}
