package driver

import (
	"sync"

	"cbridge/internal/diag"
	"cbridge/internal/source"
)

// limitReporter stops forwarding errors after limit of them and reports
// DrvTooManyErrors once, the way -ferror-limit does.
type limitReporter struct {
	mu      sync.Mutex
	next    diag.Reporter
	limit   uint
	errors  uint
	stopped bool
}

func newLimitReporter(next diag.Reporter, limit uint) *limitReporter {
	return &limitReporter{next: next, limit: limit}
}

func (r *limitReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if sev >= diag.SevError && r.limit > 0 {
		if r.errors == r.limit {
			r.stopped = true
			r.next.Report(diag.DrvTooManyErrors, diag.SevError, source.Span{}, "too many errors emitted, stopping now", nil, nil)
			return
		}
		r.errors++
	}
	r.next.Report(code, sev, primary, msg, notes, fixes)
}

// Stopped reports whether the limit was hit.
func (r *limitReporter) Stopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}
