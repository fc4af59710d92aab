package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint // instant event, e.g. a diagnostic count or a cache decision
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of an event.
// Lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers whole CLI commands and ParseAll batches.
	ScopeDriver Scope = iota + 1
	// ScopeUnit covers one translation unit.
	ScopeUnit
	// ScopePass covers lex, parse and sema of a unit.
	ScopePass
	// ScopeNode covers per-node work such as projection walks.
	ScopeNode
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeUnit:
		return "unit"
	case ScopePass:
		return "pass"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string // "parse", "unit:foo.c", ...
	Detail   string
	Extra    map[string]string
	Elapsed  time.Duration // span length, set on KindSpanEnd
}
