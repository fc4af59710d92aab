package lexer

import (
	"cbridge/internal/diag"
	"cbridge/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// KeepLineMarkers records `#line` and `# N "file"` directives on the file
	// so presumed locations follow them.
	KeepLineMarkers bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
