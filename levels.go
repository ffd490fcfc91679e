package fanlog

import (
	"errors"
	"reflect"
	"strings"
)

// Level represents the severity of a log message.
//
// The level set is open: the package ships five built-in levels (Error,
// Warn, Info, Debug, Trace) and consumers may define their own by
// implementing this interface with a dedicated type.
//
// Level equality is nominal, not structural: two values are the same level
// if and only if they share the same dynamic type. A custom level type that
// carries data therefore always compares equal to other instances of
// itself, regardless of that data. Use SameLevel to compare.
type Level interface {
	// LevelName returns the human-readable name of the level,
	// e.g. "Error".
	LevelName() string
}

type errLevel struct{}
type warnLevel struct{}
type infoLevel struct{}
type debugLevel struct{}
type traceLevel struct{}

func (errLevel) LevelName() string   { return "Error" }
func (warnLevel) LevelName() string  { return "Warn" }
func (infoLevel) LevelName() string  { return "Info" }
func (debugLevel) LevelName() string { return "Debug" }
func (traceLevel) LevelName() string { return "Trace" }

// Built-in severity levels, ordered from most to least severe.
var (
	Error Level = errLevel{}
	Warn  Level = warnLevel{}
	Info  Level = infoLevel{}
	Debug Level = debugLevel{}
	Trace Level = traceLevel{}
)

// SameLevel reports whether a and b are the same level variant.
// Comparison is by dynamic type only; any data carried by a custom level
// type is ignored.
func SameLevel(a, b Level) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

// ParseLevel converts a string to its corresponding built-in level.
// Matching is case-insensitive; "warning" is accepted for Warn.
//
// Example:
//
//	level, err := fanlog.ParseLevel("info")
//	if err != nil {
//	    panic(err)
//	}
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return Error, nil
	case "warn", "warning":
		return Warn, nil
	case "info":
		return Info, nil
	case "debug":
		return Debug, nil
	case "trace":
		return Trace, nil
	default:
		return nil, errors.New("invalid log level: " + name)
	}
}

// LevelSet is a small unordered collection of enabled levels. Membership
// uses SameLevel, so at most one instance of any level variant is held.
type LevelSet []Level

// DefaultLevels returns a set with all five built-in levels enabled.
// A freshly created backend starts with this set.
func DefaultLevels() LevelSet {
	return LevelSet{Error, Warn, Info, Debug, Trace}
}

// Has reports whether the set contains the given level variant.
func (s LevelSet) Has(level Level) bool {
	for _, l := range s {
		if SameLevel(l, level) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no storage with the receiver.
func (s LevelSet) Clone() LevelSet {
	if s == nil {
		return nil
	}
	out := make(LevelSet, len(s))
	copy(out, s)
	return out
}

// union returns s plus any of levels not already present, and whether
// anything was added. The receiver is not modified.
func (s LevelSet) union(levels []Level) (LevelSet, bool) {
	out := s
	changed := false
	for _, l := range levels {
		if l == nil || out.Has(l) {
			continue
		}
		if !changed {
			out = s.Clone()
			changed = true
		}
		out = append(out, l)
	}
	return out, changed
}

// difference returns s minus levels, and whether anything was removed.
// The receiver is not modified.
func (s LevelSet) difference(levels []Level) (LevelSet, bool) {
	drop := func(l Level) bool {
		for _, d := range levels {
			if SameLevel(d, l) {
				return true
			}
		}
		return false
	}
	changed := false
	out := make(LevelSet, 0, len(s))
	for _, l := range s {
		if drop(l) {
			changed = true
			continue
		}
		out = append(out, l)
	}
	if !changed {
		return s, false
	}
	return out, true
}
