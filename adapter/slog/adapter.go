// Package slogadapter bridges the fanlog Backend contract to the standard
// library's log/slog: a registered Backend applies fanlog's level and
// source filtering, then forwards admitted messages to a slog.Logger.
package slogadapter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fanlog/fanlog"
)

// LevelTrace is the slog level fanlog.Trace maps to; slog defines no trace
// level of its own, so the conventional Debug-4 slot is used.
const LevelTrace = slog.LevelDebug - 4

// Backend forwards admitted log calls to a slog.Logger.
//
// fanlog's enabled levels and source filter are applied before
// forwarding; the slog handler's own threshold still applies afterwards.
// SetFormatter and SetStyled are accepted and ignored: the slog handler
// owns rendering. slog loggers are safe for concurrent use, so the filter
// state lives under a mutex rather than an actor loop.
type Backend struct {
	mu     sync.RWMutex
	logger *slog.Logger
	levels fanlog.LevelSet
	filter *fanlog.SourceFilter
}

var _ fanlog.Backend = (*Backend)(nil)

// New creates a backend forwarding to the given logger, with all built-in
// levels enabled and an empty blacklist filter. A nil logger falls back to
// slog.Default.
func New(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
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

// SetFormatter is accepted and ignored; the slog handler owns rendering.
func (b *Backend) SetFormatter(fanlog.Formatter) {}

// SetStyled is accepted and ignored; styling is a handler concern.
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

	attrs := make([]slog.Attr, 0, 2)
	if !isBuiltin(level) {
		attrs = append(attrs, slog.String("level_name", level.LevelName()))
	}
	if name := source.SourceName(); name != "" {
		attrs = append(attrs, slog.String("source", name))
	}
	b.logger.LogAttrs(context.Background(), mapLevel(level), message, attrs...)
}

// Sync is a no-op: slog handlers write synchronously.
func (b *Backend) Sync() {}

// mapLevel converts a fanlog level to its slog counterpart. Custom levels
// map to Info with their name carried as a field.
func mapLevel(l fanlog.Level) slog.Level {
	switch {
	case fanlog.SameLevel(l, fanlog.Error):
		return slog.LevelError
	case fanlog.SameLevel(l, fanlog.Warn):
		return slog.LevelWarn
	case fanlog.SameLevel(l, fanlog.Info):
		return slog.LevelInfo
	case fanlog.SameLevel(l, fanlog.Debug):
		return slog.LevelDebug
	case fanlog.SameLevel(l, fanlog.Trace):
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

func isBuiltin(l fanlog.Level) bool {
	for _, b := range []fanlog.Level{fanlog.Error, fanlog.Warn, fanlog.Info, fanlog.Debug, fanlog.Trace} {
		if fanlog.SameLevel(l, b) {
			return true
		}
	}
	return false
}
