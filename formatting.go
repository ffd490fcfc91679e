package fanlog

import "strings"

// Formatter turns a log event that passed a backend's filters into the text
// the backend emits.
//
// Format must be pure and total: no blocking, no shared mutable state, and
// no error return. A formatter that cannot render (a broken pattern, say)
// substitutes a fixed sentinel for the broken segment instead of failing,
// so the rest of the message framing is still emitted.
//
// The styled flag is the backend's style hint. Formatters that have no
// styled rendering simply ignore it.
type Formatter interface {
	Format(level Level, message string, source Source, styled bool) string
}

// BasicFormatter renders "[<source>] <level>: <message>", dropping the
// bracketed source segment for NoSource. It ignores the style hint and is
// the default formatter of every backend.
type BasicFormatter struct{}

func (BasicFormatter) Format(level Level, message string, source Source, _ bool) string {
	var b strings.Builder
	b.Grow(len(message) + 32)
	if name := sourceName(source); name != "" {
		b.WriteByte('[')
		b.WriteString(name)
		b.WriteString("] ")
	}
	b.WriteString(levelName(level))
	b.WriteString(": ")
	b.WriteString(message)
	return b.String()
}

// ANSI escape sequences used by ANSIFormatter. Bright variants use the
// 90–97 foreground range; Warn keeps the classic yellow.
const (
	ansiReset        = "\x1b[0m"
	ansiBold         = "\x1b[1m"
	ansiYellow       = "\x1b[33m"
	ansiBrightRed    = "\x1b[91m"
	ansiBrightGreen  = "\x1b[92m"
	ansiBrightYellow = "\x1b[93m"
	ansiBrightBlue   = "\x1b[94m"
	ansiBrightCyan   = "\x1b[96m"
)

// ANSIFormatter renders "[<level>] <source>: <message>": the level name
// bracketed and colored by severity, the source unbracketed and bold. The
// source segment, separator included, is dropped for NoSource.
//
// Styling is applied only when the style hint is true; with the hint off
// the output contains no escape sequences at all. Every styled segment is
// reset before the text that follows it, so surrounding text never
// inherits color.
type ANSIFormatter struct{}

func (ANSIFormatter) Format(level Level, message string, source Source, styled bool) string {
	var b strings.Builder
	b.Grow(len(message) + 48)
	b.WriteByte('[')
	if styled {
		b.WriteString(levelColor(level))
		b.WriteString(levelName(level))
		b.WriteString(ansiReset)
	} else {
		b.WriteString(levelName(level))
	}
	b.WriteString("] ")
	if name := sourceName(source); name != "" {
		if styled {
			b.WriteString(ansiBold)
			b.WriteString(name)
			b.WriteString(ansiReset)
		} else {
			b.WriteString(name)
		}
		b.WriteString(": ")
	}
	b.WriteString(message)
	return b.String()
}

// levelColor maps a level to its fixed color. Levels outside the built-in
// five render bright-yellow.
func levelColor(level Level) string {
	switch {
	case SameLevel(level, Error):
		return ansiBrightRed
	case SameLevel(level, Warn):
		return ansiYellow
	case SameLevel(level, Info):
		return ansiBrightGreen
	case SameLevel(level, Debug):
		return ansiBrightBlue
	case SameLevel(level, Trace):
		return ansiBrightCyan
	default:
		return ansiBrightYellow
	}
}

// levelName tolerates a nil level so a formatter never panics on
// adversarial input.
func levelName(level Level) string {
	if level == nil {
		return "Unknown"
	}
	return level.LevelName()
}

// sourceName returns "" for nil and NoSource.
func sourceName(source Source) string {
	if source == nil {
		return ""
	}
	return source.SourceName()
}
