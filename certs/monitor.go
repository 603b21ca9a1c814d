package certs

import (
	"sync"
)

// Status is the availability of the local development certificates.
type Status string

const (
	StatusUnknown Status = "unknown"
	StatusLoaded  Status = "loaded"
	StatusMissing Status = "missing"
)

// Monitor holds the process-wide certificate status. Set is meant to be
// called by a single writer (the Loader); readers use Get or Subscribe.
type Monitor struct {
	mu          sync.RWMutex
	status      Status
	nextID      int
	subscribers map[int]func(Status)
}

// NewMonitor creates a monitor in the unknown state.
func NewMonitor() *Monitor {
	return &Monitor{
		status:      StatusUnknown,
		subscribers: make(map[int]func(Status)),
	}
}

// Get returns the current status.
func (m *Monitor) Get() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Set publishes a new status. Subscribers are notified only on change and
// are called outside the lock.
func (m *Monitor) Set(status Status) {
	m.mu.Lock()
	if m.status == status {
		m.mu.Unlock()
		return
	}
	m.status = status
	subs := make([]func(Status), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(status)
	}
}

// Subscribe registers fn for status changes and returns a function that
// removes the subscription.
func (m *Monitor) Subscribe(fn func(Status)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}
