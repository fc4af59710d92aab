package diag

import "cbridge/internal/source"

// Reporter receives diagnostics from the front-end phases. The driver
// chains PromoteReporter, DedupReporter and an error limit in front of a
// BagReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// ReportBuilder collects notes and fixes; Emit hands the result to the
// Reporter once, later calls do nothing.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(sp, msg)
	}
	return b
}

func (b *ReportBuilder) WithFix(title string, edits ...FixEdit) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithFix(title, edits...)
	}
	return b
}

func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	if b.to != nil {
		b.to.Report(b.d.Code, b.d.Severity, b.d.Primary, b.d.Message, b.d.Notes, b.d.Fixes)
	}
}

// BagReporter stores everything it gets in Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes, Fixes: fixes})
	}
}

// PromoteReporter implements -w (drop warnings) and -Werror (raise them).
// -w wins when both are set, as in clang.
type PromoteReporter struct {
	Next             Reporter
	SuppressWarnings bool
	WarningsAsErrors bool
}

func (r PromoteReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r.Next == nil {
		return
	}
	if sev == SevWarning {
		if r.SuppressWarnings {
			return
		}
		if r.WarningsAsErrors {
			sev = SevError
		}
	}
	r.Next.Report(code, sev, primary, msg, notes, fixes)
}
