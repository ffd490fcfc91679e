package fanlog

import (
	"errors"
	"strings"
)

// FilterMode selects how a SourceFilter interprets its entry set.
type FilterMode int

const (
	// Blacklist suppresses exactly the sources present in the filter.
	// An empty blacklist suppresses nothing.
	Blacklist FilterMode = iota
	// Whitelist suppresses every source absent from the filter.
	// An empty whitelist suppresses everything.
	Whitelist
)

// String returns the lowercase name of the mode.
func (m FilterMode) String() string {
	switch m {
	case Blacklist:
		return "blacklist"
	case Whitelist:
		return "whitelist"
	}
	return "unknown"
}

// ParseFilterMode converts a string to its FilterMode, case-insensitive.
func ParseFilterMode(name string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "blacklist":
		return Blacklist, nil
	case "whitelist":
		return Whitelist, nil
	default:
		return Blacklist, errors.New("invalid filter mode: " + name)
	}
}

// SourceFilter decides whether a source is suppressed. It is a plain value
// object: no operation blocks, fails, or is safe for concurrent mutation.
// Each backend owns its own clone and mutates it only from its own actor
// loop; hand a filter across that boundary via Clone.
//
// Entry membership uses SameSource, so filters hold source variants, not
// instances. Containment checks are linear; filters are expected to hold a
// handful of sources.
type SourceFilter struct {
	mode    FilterMode
	entries []Source
}

// NewSourceFilter returns an empty filter in the given mode.
func NewSourceFilter(mode FilterMode) *SourceFilter {
	return &SourceFilter{mode: mode}
}

// Mode returns the filter's mode.
func (f *SourceFilter) Mode() FilterMode { return f.mode }

// Include makes s pass the filter: on a blacklist it removes s if present,
// on a whitelist it adds s if absent. Idempotent.
func (f *SourceFilter) Include(s Source) {
	if s == nil {
		s = NoSource
	}
	if f.mode == Blacklist {
		f.remove(s)
	} else {
		f.add(s)
	}
}

// Exclude makes s suppressed by the filter: on a blacklist it adds s if
// absent, on a whitelist it removes s if present. Idempotent.
func (f *SourceFilter) Exclude(s Source) {
	if s == nil {
		s = NoSource
	}
	if f.mode == Blacklist {
		f.add(s)
	} else {
		f.remove(s)
	}
}

// Filtered reports whether s is suppressed: present on a blacklist, or
// absent from a whitelist.
func (f *SourceFilter) Filtered(s Source) bool {
	if s == nil {
		s = NoSource
	}
	if f.mode == Blacklist {
		return f.contains(s)
	}
	return !f.contains(s)
}

// Clone returns a deep copy; the entry set is never shared.
func (f *SourceFilter) Clone() *SourceFilter {
	out := &SourceFilter{mode: f.mode}
	if len(f.entries) > 0 {
		out.entries = make([]Source, len(f.entries))
		copy(out.entries, f.entries)
	}
	return out
}

// Equal reports whether f and other have the same mode and the same entry
// set. Entry order is irrelevant.
func (f *SourceFilter) Equal(other *SourceFilter) bool {
	if other == nil {
		return false
	}
	if f.mode != other.mode || len(f.entries) != len(other.entries) {
		return false
	}
	for _, s := range f.entries {
		if !other.contains(s) {
			return false
		}
	}
	return true
}

func (f *SourceFilter) contains(s Source) bool {
	for _, e := range f.entries {
		if SameSource(e, s) {
			return true
		}
	}
	return false
}

func (f *SourceFilter) add(s Source) {
	if f.contains(s) {
		return
	}
	f.entries = append(f.entries, s)
}

func (f *SourceFilter) remove(s Source) {
	for i, e := range f.entries {
		if SameSource(e, s) {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return
		}
	}
}
