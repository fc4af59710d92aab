package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func emit(t Tracer, ev Event) {
	ev.Time = time.Now()
	ev.Seq = seqCounter.Add(1)
	t.Emit(&ev)
}

// Span is one begin/end pair; a nil or disabled span is safe to use.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

var inert = &Span{}

func (s *Span) live() bool { return s != nil && s.tracer != nil }

// Begin emits a SpanBegin event under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope, KindSpanBegin) {
		return inert
	}
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	emit(t, Event{Kind: KindSpanBegin, Scope: scope, SpanID: s.id, ParentID: parent, Name: name})
	return s
}

// End emits the SpanEnd event carrying detail, the extras and the elapsed time.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	d := time.Since(s.started)
	emit(s.tracer, Event{
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
		Elapsed:  d,
	})
	return d
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = map[string]string{}
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope, KindPoint) {
		return
	}
	emit(t, Event{Kind: KindPoint, Scope: scope, ParentID: parent, Name: name, Detail: detail})
}

// ctxState is what a context carries: the tracer and the innermost open span.
type ctxState struct {
	tracer Tracer
	span   uint64
}

type ctxKey struct{}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer attaches t to ctx; spans started from the result are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: t})
}

// StartSpan begins a span under the one open in ctx and returns a context
// in which the new span is the parent of nested work.
func StartSpan(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	st := stateOf(ctx)
	sp := Begin(st.tracer, scope, name, st.span)
	if !sp.live() {
		return sp, ctx
	}
	st.span = sp.id
	return sp, context.WithValue(ctx, ctxKey{}, st)
}
