// Package zerolog bridges the fanlog Backend contract to rs/zerolog: a
// registered Backend applies fanlog's level and source filtering, then
// forwards admitted messages to a zerolog.Logger, which owns rendering.
package zerolog

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/fanlog/fanlog"
)

// Backend forwards admitted log calls to a zerolog.Logger.
//
// The fanlog side of the contract (enabled levels, source filter) is
// applied before forwarding; zerolog's own level threshold still applies
// afterwards. Formatter and style hint have no effect here: zerolog's
// encoder owns the output format, so SetFormatter and SetStyled are
// accepted and ignored.
//
// zerolog loggers are safe for concurrent use, so this backend keeps its
// filter state under a mutex instead of an actor loop; operations are
// applied synchronously in lock-acquisition order.
type Backend struct {
	mu     sync.RWMutex
	logger zerolog.Logger
	levels fanlog.LevelSet
	filter *fanlog.SourceFilter
}

var _ fanlog.Backend = (*Backend)(nil)

// New creates a backend forwarding to the given logger, with all built-in
// levels enabled and an empty blacklist filter.
func New(logger zerolog.Logger) *Backend {
	return &Backend{
		logger: logger,
		levels: fanlog.DefaultLevels(),
		filter: fanlog.NewSourceFilter(fanlog.Blacklist),
	}
}

func (b *Backend) SetLevels(levels ...fanlog.Level) {
	set := fanlog.LevelSet(levels).Clone()
	if set == nil {
		set = fanlog.LevelSet{}
	}
	b.mu.Lock()
	b.levels = set
	b.mu.Unlock()
}

func (b *Backend) EnableLevels(levels ...fanlog.Level) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range levels {
		if l != nil && !b.levels.Has(l) {
			b.levels = append(b.levels, l)
		}
	}
}

func (b *Backend) DisableLevels(levels ...fanlog.Level) {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := b.levels[:0]
	for _, have := range b.levels {
		drop := false
		for _, l := range levels {
			if fanlog.SameLevel(have, l) {
				drop = true
				break
			}
		}
		if !drop {
			next = append(next, have)
		}
	}
	b.levels = next
}

func (b *Backend) SetSourceFilter(filter *fanlog.SourceFilter) {
	next := fanlog.NewSourceFilter(fanlog.Blacklist)
	if filter != nil {
		next = filter.Clone()
	}
	b.mu.Lock()
	b.filter = next
	b.mu.Unlock()
}

func (b *Backend) IncludeSource(s fanlog.Source) {
	b.mu.Lock()
	b.filter.Include(s)
	b.mu.Unlock()
}

func (b *Backend) ExcludeSource(s fanlog.Source) {
	b.mu.Lock()
	b.filter.Exclude(s)
	b.mu.Unlock()
}

// SetFormatter is accepted and ignored; zerolog's encoder owns rendering.
func (b *Backend) SetFormatter(fanlog.Formatter) {}

// SetStyled is accepted and ignored; styling belongs to the writer behind
// the zerolog logger (e.g. zerolog.ConsoleWriter).
func (b *Backend) SetStyled(bool) {}

func (b *Backend) Log(level fanlog.Level, message string, source fanlog.Source) {
	if source == nil {
		source = fanlog.NoSource
	}
	b.mu.RLock()
	admitted := b.levels.Has(level) && !b.filter.Filtered(source)
	b.mu.RUnlock()
	if !admitted {
		return
	}

	zlvl := mapLevel(level)
	ev := b.logger.WithLevel(zlvl)
	if zlvl == zerolog.NoLevel {
		// Custom level: keep its name visible in the output.
		ev = ev.Str("level_name", level.LevelName())
	}
	if name := source.SourceName(); name != "" {
		ev = ev.Str("source", name)
	}
	ev.Msg(message)
}

// Sync is a no-op: zerolog writes synchronously.
func (b *Backend) Sync() {}

// mapLevel converts a fanlog level to its zerolog counterpart. Custom
// levels map to NoLevel.
func mapLevel(l fanlog.Level) zerolog.Level {
	switch {
	case fanlog.SameLevel(l, fanlog.Error):
		return zerolog.ErrorLevel
	case fanlog.SameLevel(l, fanlog.Warn):
		return zerolog.WarnLevel
	case fanlog.SameLevel(l, fanlog.Info):
		return zerolog.InfoLevel
	case fanlog.SameLevel(l, fanlog.Debug):
		return zerolog.DebugLevel
	case fanlog.SameLevel(l, fanlog.Trace):
		return zerolog.TraceLevel
	default:
		return zerolog.NoLevel
	}
}
