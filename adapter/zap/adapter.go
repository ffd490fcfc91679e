// Package zap bridges the fanlog Backend contract to go.uber.org/zap: a
// registered Backend applies fanlog's level and source filtering, then
// forwards admitted messages to a zap.Logger, which owns rendering.
package zap

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fanlog/fanlog"
)

// Backend forwards admitted log calls to a zap.Logger.
//
// fanlog's enabled levels and source filter are applied before
// forwarding; zap's own core threshold still applies afterwards.
// SetFormatter and SetStyled are accepted and ignored: zap's encoder owns
// the output format. Sync flushes the underlying logger.
//
// zap loggers are safe for concurrent use, so the filter state lives
// under a mutex rather than an actor loop.
type Backend struct {
	mu     sync.RWMutex
	logger *zap.Logger
	levels fanlog.LevelSet
	filter *fanlog.SourceFilter
}

var _ fanlog.Backend = (*Backend)(nil)

// New creates a backend forwarding to the given logger, with all built-in
// levels enabled and an empty blacklist filter. A nil logger falls back to
// zap.NewNop.
func New(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
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

// SetFormatter is accepted and ignored; zap's encoder owns rendering.
func (b *Backend) SetFormatter(fanlog.Formatter) {}

// SetStyled is accepted and ignored; coloring is a property of the zap
// encoder configuration.
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

	ce := b.logger.Check(mapLevel(level), message)
	if ce == nil {
		return
	}
	fields := make([]zap.Field, 0, 2)
	if !isBuiltin(level) {
		fields = append(fields, zap.String("level_name", level.LevelName()))
	}
	if name := source.SourceName(); name != "" {
		fields = append(fields, zap.String("source", name))
	}
	ce.Write(fields...)
}

// Sync flushes the underlying zap logger. Flush errors stay internal; the
// Backend contract has no error channel.
func (b *Backend) Sync() {
	_ = b.logger.Sync()
}

// mapLevel converts a fanlog level to its zap counterpart. zap has no
// trace level, so Trace maps to Debug; custom levels map to Info with
// their name carried as a field.
func mapLevel(l fanlog.Level) zapcore.Level {
	switch {
	case fanlog.SameLevel(l, fanlog.Error):
		return zapcore.ErrorLevel
	case fanlog.SameLevel(l, fanlog.Warn):
		return zapcore.WarnLevel
	case fanlog.SameLevel(l, fanlog.Info):
		return zapcore.InfoLevel
	case fanlog.SameLevel(l, fanlog.Debug), fanlog.SameLevel(l, fanlog.Trace):
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
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
