package fanlog

// Dispatcher is the front line of the logging system: callers log against
// it, and it fans every log and configuration call out to all registered
// backends, in registration order, fire-and-forget. A dispatcher call
// returns once the broadcast sends have been issued, not once the backends
// have applied them.
//
// The dispatcher mirrors the whole Backend configuration surface; each
// mirrored call is broadcast unconditionally, and every backend applies it
// to its own private state. The dispatcher never inspects a backend's
// filtering decision, aggregates nothing, and guarantees no ordering
// across backends.
//
// Backend references are non-owning: a backend may be registered with
// several dispatchers or addressed directly at the same time.
type Dispatcher struct {
	mbox *mailbox

	// Actor-owned; touched only from mailbox jobs.
	backends []Backend
}

// NewDispatcher creates a dispatcher over the given backends, if any, and
// starts its actor goroutine.
func NewDispatcher(backends ...Backend) *Dispatcher {
	d := &Dispatcher{
		backends: append([]Backend(nil), backends...),
	}
	d.mbox = newMailbox()
	return d
}

// AppendBackend adds a backend to the tail of the broadcast list.
func (d *Dispatcher) AppendBackend(b Backend) {
	if b == nil {
		return
	}
	d.mbox.post(func() { d.backends = append(d.backends, b) })
}

// SetBackends replaces the whole broadcast list with a copy of backends.
// Backends dropped by the replacement are simply no longer addressed; no
// shutdown signal is sent to them.
func (d *Dispatcher) SetBackends(backends []Backend) {
	next := append([]Backend(nil), backends...)
	d.mbox.post(func() { d.backends = next })
}

// broadcast issues send to every registered backend in order.
func (d *Dispatcher) broadcast(send func(Backend)) {
	d.mbox.post(func() {
		for _, b := range d.backends {
			send(b)
		}
	})
}

// SetLevels broadcasts a level-set replacement to every backend.
func (d *Dispatcher) SetLevels(levels ...Level) {
	set := append([]Level(nil), levels...)
	d.broadcast(func(b Backend) { b.SetLevels(set...) })
}

// EnableLevels broadcasts a level-set union to every backend.
func (d *Dispatcher) EnableLevels(levels ...Level) {
	add := append([]Level(nil), levels...)
	d.broadcast(func(b Backend) { b.EnableLevels(add...) })
}

// DisableLevels broadcasts a level-set difference to every backend.
func (d *Dispatcher) DisableLevels(levels ...Level) {
	drop := append([]Level(nil), levels...)
	d.broadcast(func(b Backend) { b.DisableLevels(drop...) })
}

// SetSourceFilter broadcasts a filter replacement; every backend stores
// its own clone.
func (d *Dispatcher) SetSourceFilter(filter *SourceFilter) {
	var snapshot *SourceFilter
	if filter != nil {
		snapshot = filter.Clone()
	}
	d.broadcast(func(b Backend) { b.SetSourceFilter(snapshot) })
}

// IncludeSource broadcasts a filter inclusion to every backend.
func (d *Dispatcher) IncludeSource(s Source) {
	d.broadcast(func(b Backend) { b.IncludeSource(s) })
}

// ExcludeSource broadcasts a filter exclusion to every backend.
func (d *Dispatcher) ExcludeSource(s Source) {
	d.broadcast(func(b Backend) { b.ExcludeSource(s) })
}

// SetFormatter broadcasts a formatter replacement to every backend.
// Formatters are immutable values, so sharing one reference is safe.
func (d *Dispatcher) SetFormatter(f Formatter) {
	d.broadcast(func(b Backend) { b.SetFormatter(f) })
}

// SetStyled broadcasts the style hint to every backend.
func (d *Dispatcher) SetStyled(styled bool) {
	d.broadcast(func(b Backend) { b.SetStyled(styled) })
}

// Log broadcasts a log call to every backend; each backend applies its own
// level and source filtering before deciding whether to emit.
func (d *Dispatcher) Log(level Level, message string, source Source) {
	if source == nil {
		source = NoSource
	}
	d.broadcast(func(b Backend) { b.Log(level, message, source) })
}

// Err logs a message at the Error level.
func (d *Dispatcher) Err(message string, source Source) {
	d.Log(Error, message, source)
}

// Warn logs a message at the Warn level.
func (d *Dispatcher) Warn(message string, source Source) {
	d.Log(Warn, message, source)
}

// Info logs a message at the Info level.
func (d *Dispatcher) Info(message string, source Source) {
	d.Log(Info, message, source)
}

// Debug logs a message at the Debug level.
func (d *Dispatcher) Debug(message string, source Source) {
	d.Log(Debug, message, source)
}

// Trace logs a message at the Trace level.
func (d *Dispatcher) Trace(message string, source Source) {
	d.Log(Trace, message, source)
}

// Sync drains the dispatcher's own mailbox, then waits for every
// registered backend to catch up. After Sync returns, every call issued to
// the dispatcher before it has been fully applied.
func (d *Dispatcher) Sync() {
	var snapshot []Backend
	done := make(chan struct{})
	if !d.mbox.post(func() {
		snapshot = append(snapshot, d.backends...)
		close(done)
	}) {
		return
	}
	<-done
	for _, b := range snapshot {
		b.Sync()
	}
}

// Close stops the dispatcher's actor goroutine after draining its mailbox.
// Registered backends stay untouched; close them separately if the
// dispatcher was their only user.
func (d *Dispatcher) Close() {
	d.mbox.close()
}
