package fanlog

import "sync"

// mailbox is the actor primitive shared by WriterBackend and Dispatcher: an
// unbounded FIFO of jobs drained by a single goroutine. Posting never
// blocks, and jobs posted by one goroutine run in post order. State touched
// only from inside jobs needs no further locking.
type mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	jobs   []func()
	closed bool
	done   chan struct{}
}

func newMailbox() *mailbox {
	m := &mailbox{done: make(chan struct{})}
	m.cond = sync.NewCond(&m.mu)
	go m.loop()
	return m
}

// post enqueues a job. It reports false when the mailbox is closed and the
// job was dropped.
func (m *mailbox) post(job func()) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.jobs = append(m.jobs, job)
	m.cond.Signal()
	m.mu.Unlock()
	return true
}

// sync blocks until every job posted before it has run. On a closed
// mailbox it returns immediately.
func (m *mailbox) sync() {
	ch := make(chan struct{})
	if !m.post(func() { close(ch) }) {
		return
	}
	<-ch
}

// close drains outstanding jobs, stops the consumer goroutine, and waits
// for it to exit. Safe to call more than once.
func (m *mailbox) close() {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		m.cond.Signal()
	}
	m.mu.Unlock()
	<-m.done
}

func (m *mailbox) loop() {
	var batch []func()
	for {
		m.mu.Lock()
		for len(m.jobs) == 0 && !m.closed {
			m.cond.Wait()
		}
		if len(m.jobs) == 0 {
			m.mu.Unlock()
			close(m.done)
			return
		}
		batch, m.jobs = m.jobs, batch[:0]
		m.mu.Unlock()

		for i, job := range batch {
			job()
			batch[i] = nil
		}
		// Cap retained capacity after a burst.
		if cap(batch) > 1024 {
			batch = nil
		}
	}
}
