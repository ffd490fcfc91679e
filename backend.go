package fanlog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"golang.org/x/time/rate"
)

// Backend is an independently configured log sink consumer: it owns its
// own enabled-level set, source filter, formatter, and style preference,
// and decides for itself whether a given log call produces output.
//
// Every operation is an asynchronous message: it returns before the
// backend has applied it, and a single backend processes its messages one
// at a time in receipt order. Messages issued by one goroutine to one
// backend are applied in issue order; nothing is guaranteed across
// different backends, so a log call racing a configuration change may be
// filtered under either the old or the new configuration.
//
// All operations are total. Suppression is not an error and is not
// reported; there is no error channel anywhere in the contract.
type Backend interface {
	// SetLevels replaces the enabled level set with exactly the given
	// levels. The backend stores its own copy.
	SetLevels(levels ...Level)
	// EnableLevels adds the given levels to the enabled set.
	EnableLevels(levels ...Level)
	// DisableLevels removes the given levels from the enabled set.
	DisableLevels(levels ...Level)

	// SetSourceFilter replaces the backend's source filter with a clone
	// of the given filter. A nil filter resets to an empty blacklist.
	SetSourceFilter(filter *SourceFilter)
	// IncludeSource makes the source pass the backend's filter.
	IncludeSource(s Source)
	// ExcludeSource makes the source suppressed by the backend's filter.
	ExcludeSource(s Source)

	// SetFormatter replaces the active formatter. A nil formatter resets
	// to BasicFormatter.
	SetFormatter(f Formatter)
	// SetStyled sets the style hint passed to the formatter. It is
	// strictly a hint: a backend whose sink cannot render styled output
	// forces it to false.
	SetStyled(styled bool)

	// Log emits the message iff level is enabled and source is not
	// filtered; otherwise it is a silent no-op.
	Log(level Level, message string, source Source)

	// Sync blocks until every message accepted before the call has been
	// processed.
	Sync()
}

// WriterBackend is the reference Backend: an actor around an io.Writer
// sink. Each emitted message is rendered fresh and handed to the sink as a
// single line-terminated Write.
//
// The sink is assumed fast and append-only. Write failures never reach the
// logging caller; they go to the configured ErrorHandler, and the message
// is replayed on the fallback writer.
type WriterBackend struct {
	mbox *mailbox
	w    io.Writer

	// canStyle is fixed at construction: false when the sink is a
	// non-terminal file, so the style hint can never turn escapes on for
	// a plain-text log.
	canStyle bool

	// Actor-owned state, touched only from mailbox jobs.
	levels    LevelSet
	filter    *SourceFilter
	formatter Formatter
	styled    bool

	limiter      *rate.Limiter
	errorHandler func(error)
	fallback     io.Writer
	bufferPool   sync.Pool
}

var _ Backend = (*WriterBackend)(nil)

// NewWriterBackend creates a backend writing to cfg.Writer and starts its
// actor goroutine. The zero-value defaults are: all built-in levels
// enabled, an empty blacklist filter, BasicFormatter, styling off.
func NewWriterBackend(cfg BackendConfig) (*WriterBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backend config: %w", err)
	}
	if cfg.Writer == nil {
		return nil, fmt.Errorf("invalid backend config: Writer is required")
	}

	levels := LevelSet(cfg.Levels).Clone()
	if levels == nil {
		var err error
		levels, err = resolveLevelNames(cfg.LevelNames)
		if err != nil {
			return nil, fmt.Errorf("invalid backend config: %w", err)
		}
	}
	if levels == nil {
		levels = DefaultLevels()
	}

	filter := cfg.Filter
	if filter != nil {
		filter = filter.Clone()
	} else {
		mode := Blacklist
		if cfg.FilterModeName != "" {
			var err error
			if mode, err = ParseFilterMode(cfg.FilterModeName); err != nil {
				return nil, fmt.Errorf("invalid backend config: %w", err)
			}
		}
		filter = NewSourceFilter(mode)
	}

	formatter := cfg.Formatter
	if formatter == nil {
		formatter = BasicFormatter{}
	}

	fallback := cfg.FallbackWriter
	if fallback == nil {
		fallback = os.Stderr
	}

	b := &WriterBackend{
		w:            cfg.Writer,
		canStyle:     cfg.ForceStyled || writerCanStyle(cfg.Writer),
		levels:       levels,
		filter:       filter,
		formatter:    formatter,
		styled:       cfg.Styled,
		errorHandler: cfg.ErrorHandler,
		fallback:     fallback,
		bufferPool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 256))
			},
		},
	}
	if cfg.MaxLogRate > 0 {
		b.limiter = rate.NewLimiter(rate.Limit(cfg.MaxLogRate), cfg.MaxLogRate)
	}
	b.mbox = newMailbox()
	return b, nil
}

// writerCanStyle reports whether the sink may render escape sequences.
// Only files can be probed; a non-terminal file gets plain text, anything
// that is not an *os.File is taken at the caller's word.
func writerCanStyle(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (b *WriterBackend) SetLevels(levels ...Level) {
	set := LevelSet(levels).Clone()
	if set == nil {
		set = LevelSet{}
	}
	b.mbox.post(func() { b.levels = set })
}

func (b *WriterBackend) EnableLevels(levels ...Level) {
	add := append([]Level(nil), levels...)
	b.mbox.post(func() {
		// Skip the reassignment when nothing was added.
		if next, changed := b.levels.union(add); changed {
			b.levels = next
		}
	})
}

func (b *WriterBackend) DisableLevels(levels ...Level) {
	drop := append([]Level(nil), levels...)
	b.mbox.post(func() {
		if next, changed := b.levels.difference(drop); changed {
			b.levels = next
		}
	})
}

func (b *WriterBackend) SetSourceFilter(filter *SourceFilter) {
	var next *SourceFilter
	if filter != nil {
		next = filter.Clone()
	} else {
		next = NewSourceFilter(Blacklist)
	}
	b.mbox.post(func() { b.filter = next })
}

func (b *WriterBackend) IncludeSource(s Source) {
	b.mbox.post(func() { b.filter.Include(s) })
}

func (b *WriterBackend) ExcludeSource(s Source) {
	b.mbox.post(func() { b.filter.Exclude(s) })
}

func (b *WriterBackend) SetFormatter(f Formatter) {
	if f == nil {
		f = BasicFormatter{}
	}
	b.mbox.post(func() { b.formatter = f })
}

func (b *WriterBackend) SetStyled(styled bool) {
	b.mbox.post(func() { b.styled = styled })
}

func (b *WriterBackend) Log(level Level, message string, source Source) {
	if source == nil {
		source = NoSource
	}
	b.mbox.post(func() { b.write(level, message, source) })
}

// Sync blocks until every message accepted before the call has been
// processed. Returns immediately on a closed backend.
func (b *WriterBackend) Sync() {
	b.mbox.sync()
}

// Close drains outstanding messages and stops the actor goroutine.
// Messages issued after Close are dropped silently.
func (b *WriterBackend) Close() {
	b.mbox.close()
}

// write runs inside the actor loop and holds the filtering gate: a message
// reaches the sink iff its level is enabled and its source not filtered.
// Rendering happens fresh on every call; configuration may have changed
// since the previous one.
func (b *WriterBackend) write(level Level, message string, source Source) {
	if b.limiter != nil && !b.limiter.Allow() {
		return
	}
	if !b.levels.Has(level) {
		return
	}
	if b.filter.Filtered(source) {
		return
	}

	line := b.formatter.Format(level, message, source, b.styled && b.canStyle)

	buf := b.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.WriteString(line)
	buf.WriteByte('\n')

	if _, err := b.w.Write(buf.Bytes()); err != nil {
		b.handleError(fmt.Errorf("log write error: %w", err))
		if b.fallback != nil {
			fmt.Fprintf(b.fallback, "FALLBACK LOG: %s", buf.Bytes())
		}
	}
	b.bufferPool.Put(buf)
}

func (b *WriterBackend) handleError(err error) {
	if b.errorHandler != nil {
		b.errorHandler(err)
	} else if b.fallback != nil {
		fmt.Fprintf(b.fallback, "LOGGER ERROR: %v\n", err)
	}
}
