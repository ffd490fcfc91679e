package fanlog

import "reflect"

// Source identifies the origin of a log message: a subsystem, a component,
// a request class. Like Level, the source set is open; consumers define
// their own sources by implementing this interface with a dedicated type.
//
// Source equality is nominal by variant: two values are the same source if
// and only if they share the same dynamic type. A source type that carries
// data (say, a connection id) filters as one source for all of its
// instances. That is deliberate, documented behavior, not a bug: filters
// act on source variants, never on individual instances.
type Source interface {
	// SourceName returns the renderable name of the source. NoSource
	// returns the empty string.
	SourceName() string
}

type noSource struct{}

func (noSource) SourceName() string { return "" }

// NoSource is the distinguished "no particular origin" source. Formatters
// omit the source segment for it. It is filterable like any other source
// and is never implicitly excluded: a whitelist that should admit unsourced
// messages must include NoSource explicitly.
var NoSource Source = noSource{}

// SameSource reports whether a and b are the same source variant.
// Comparison is by dynamic type only. A nil source counts as NoSource.
func SameSource(a, b Source) bool {
	if a == nil {
		a = NoSource
	}
	if b == nil {
		b = NoSource
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}
