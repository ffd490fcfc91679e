package fanlog

import (
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/trickstertwo/xclock"
)

// The time-prefixed formatters share the layout
//
//	[<time>] [<level>] <source>: <message>
//
// with the source segment, separator included, dropped for NoSource. All of
// them read the wall clock through xclock and none use a monotonic source:
// if the system clock is adjusted, the rendered timestamps jump with it.

// formattingErrorSentinel replaces the whole timestamp segment when a
// pattern cannot be rendered. It is part of the formatter contract: a
// broken pattern must never suppress the rest of the message.
const formattingErrorSentinel = "FORMATTING ERROR"

// AbsoluteTimeFormatter prefixes messages with the wall-clock time as Unix
// seconds, optionally with a zero-padded 3-digit sub-second fraction.
type AbsoluteTimeFormatter struct {
	subSecond bool
}

// NewAbsoluteTimeFormatter returns an absolute-time formatter. When
// subSecond is true the timestamp carries a ".mmm" millisecond fraction.
func NewAbsoluteTimeFormatter(subSecond bool) *AbsoluteTimeFormatter {
	return &AbsoluteTimeFormatter{subSecond: subSecond}
}

func (f *AbsoluteTimeFormatter) Format(level Level, message string, source Source, _ bool) string {
	now := xclock.Now()
	ts := strconv.FormatInt(now.Unix(), 10)
	if f.subSecond {
		ts += "." + pad3(now.Nanosecond()/int(time.Millisecond))
	}
	return timePrefixed(ts, level, message, source)
}

// RelativeTimeFormatter prefixes messages with the seconds elapsed since
// the formatter was created, optionally with a ".mmm" fraction.
//
// Elapsed time is a plain borrow-subtraction of (seconds, nanoseconds)
// wall-clock pairs, not a monotonic reading: if the system clock moves
// backward past the creation instant, the reported seconds go negative.
type RelativeTimeFormatter struct {
	startSec  int64
	startNsec int64
	subSecond bool
}

// NewRelativeTimeFormatter returns a relative-time formatter anchored at
// the current wall-clock instant.
func NewRelativeTimeFormatter(subSecond bool) *RelativeTimeFormatter {
	now := xclock.Now()
	return &RelativeTimeFormatter{
		startSec:  now.Unix(),
		startNsec: int64(now.Nanosecond()),
		subSecond: subSecond,
	}
}

func (f *RelativeTimeFormatter) Format(level Level, message string, source Source, _ bool) string {
	now := xclock.Now()
	sec := now.Unix() - f.startSec
	nsec := int64(now.Nanosecond()) - f.startNsec
	if nsec < 0 {
		sec--
		nsec += int64(time.Second)
	}
	ts := strconv.FormatInt(sec, 10)
	if f.subSecond {
		ts += "." + pad3(int(nsec/int64(time.Millisecond)))
	}
	return timePrefixed(ts, level, message, source)
}

// PatternTimeFormatter prefixes messages with the wall-clock time rendered
// through a strftime(3)-style pattern, e.g. "%Y-%m-%d %H:%M:%S".
//
// The pattern is compiled once at construction. If it is invalid, the
// formatter stays usable and substitutes the sentinel "FORMATTING ERROR"
// for the timestamp segment on every call; the rest of the message framing
// is emitted normally.
type PatternTimeFormatter struct {
	pattern *strftime.Strftime
}

// NewPatternTimeFormatter returns a pattern-time formatter. It never fails:
// an invalid pattern yields a formatter that renders the error sentinel in
// place of the timestamp.
func NewPatternTimeFormatter(pattern string) *PatternTimeFormatter {
	p, err := strftime.New(pattern)
	if err != nil {
		return &PatternTimeFormatter{}
	}
	return &PatternTimeFormatter{pattern: p}
}

func (f *PatternTimeFormatter) Format(level Level, message string, source Source, _ bool) string {
	ts := formattingErrorSentinel
	if f.pattern != nil {
		ts = f.pattern.FormatString(xclock.Now())
	}
	return timePrefixed(ts, level, message, source)
}

func timePrefixed(ts string, level Level, message string, source Source) string {
	var b strings.Builder
	b.Grow(len(ts) + len(message) + 32)
	b.WriteByte('[')
	b.WriteString(ts)
	b.WriteString("] [")
	b.WriteString(levelName(level))
	b.WriteString("] ")
	if name := sourceName(source); name != "" {
		b.WriteString(name)
		b.WriteString(": ")
	}
	b.WriteString(message)
	return b.String()
}

// pad3 renders 0..999 zero-padded to three digits.
func pad3(n int) string {
	if n < 0 {
		n = 0
	}
	s := strconv.Itoa(n)
	switch len(s) {
	case 1:
		return "00" + s
	case 2:
		return "0" + s
	default:
		return s
	}
}
