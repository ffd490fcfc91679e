// Package fanlog is a pluggable, level- and source-filtered log dispatch
// core: one Dispatcher accepts log calls (level, message, source) and
// asynchronously fans them out to any number of independently configured
// backends, each applying its own enabled-level set, source filter, and
// formatter before writing.
//
// Overview:
// fanlog models messages as opaque strings tagged with a severity Level
// and an origin Source. Levels and sources are open sets: the package
// ships five levels (Error, Warn, Info, Debug, Trace) and the NoSource
// origin, and consumers add their own variants by implementing the Level
// or Source interface with a dedicated type. Equality between tags is
// nominal (same type means same tag), never structural.
//
// Key features:
// - Concurrent fan-out: log and configuration calls never block the caller
// - Per-backend enabled-level sets with union/difference updates
// - Blacklist/whitelist source filtering with mode-aware include/exclude
// - Pluggable formatters: plain, ANSI-colored, and a time-prefixed family
//   (absolute seconds, seconds since formatter creation, strftime pattern)
// - Advisory style hint with terminal detection on file sinks
// - Optional per-backend rate limiting
// - Adapters bridging the Backend contract to zerolog, zap, and slog
//
// Getting started:
//
//	package main
//
//	import (
//	    "os"
//
//	    "github.com/fanlog/fanlog"
//	)
//
//	func main() {
//	    backend, err := fanlog.NewWriterBackend(fanlog.BackendConfig{
//	        Writer:    os.Stdout,
//	        Formatter: fanlog.ANSIFormatter{},
//	        Styled:    true,
//	    })
//	    if err != nil {
//	        panic(err)
//	    }
//	    defer backend.Close()
//
//	    log := fanlog.NewDispatcher(backend)
//	    defer log.Close()
//
//	    log.Info("service starting", fanlog.NoSource)
//	    log.Err("listener failed", fanlog.NoSource)
//	    log.Sync()
//	}
//
// Sources and filtering:
//
// A source is any type implementing SourceName. Filters act on source
// variants: two instances of one source type always filter together,
// whatever data the type carries.
//
//	type dbSource struct{}
//
//	func (dbSource) SourceName() string { return "db" }
//
//	log.ExcludeSource(dbSource{})          // silence the db subsystem
//	log.Debug("slow query", dbSource{})    // suppressed on every backend
//
// NoSource is a source like any other: a whitelist admits unsourced
// messages only after IncludeSource(fanlog.NoSource).
//
// Concurrency model:
//
// The Dispatcher and each WriterBackend is a sequential actor with an
// unbounded mailbox: it applies its messages one at a time in receipt
// order, concurrently with every other actor and with the caller. Calls
// from one goroutine to one actor are applied in issue order; nothing is
// ordered across actors, so a log call racing a reconfiguration may see
// the old or the new configuration. Sync() is the only barrier.
//
// There are no fatal error conditions: every operation is total,
// suppression is silent, sink write failures go to the backend's error
// handler and fallback writer, and a formatter that cannot render
// substitutes a sentinel string instead of failing.
package fanlog
