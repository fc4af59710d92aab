package diag

import "cbridge/internal/source"

// DedupReporter drops a diagnostic when the same code was already reported
// with the same severity, primary span and message. Parser recovery can
// retry a production at one position and would repeat itself otherwise.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[dedupKey]struct{}{}}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil || r.next == nil {
		return
	}
	k := dedupKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[k]; dup {
		return
	}
	r.seen[k] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes, fixes)
}
