package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // keep events in memory, write them only when a unit fails
	LevelPhase        // driver, unit and pass boundaries
	LevelDetail       // same as phase plus instant events
	LevelDebug        // everything including node walks
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// ShouldEmit reports whether an event of kind at scope passes the level.
func (l Level) ShouldEmit(scope Scope, kind Kind) bool {
	switch l {
	case LevelOff:
		return false
	case LevelError:
		// ring-буфер держит всё до уровня проходов
		return scope <= ScopePass
	case LevelPhase:
		return scope <= ScopePass && kind != KindPoint
	case LevelDetail:
		return scope <= ScopePass
	case LevelDebug:
		return true
	}
	return false
}
