package session

import (
	"context"
	"sync"
	"time"

	"github.com/hairizuan-noorazman/scenario-builder/editor"
	"github.com/hairizuan-noorazman/scenario-builder/internal/uuidutil"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
)

// Factory builds the editor for a new session.
type Factory func() *editor.Editor

// Manager creates editor sessions and expires idle ones. Every access
// through Get extends a session by the configured duration.
type Manager struct {
	store    *Store
	duration time.Duration
	factory  Factory
	ids      uuidutil.Generator
	logger   logger.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewManager creates a new session manager with the given idle duration.
func NewManager(duration time.Duration, factory Factory, log logger.Logger) *Manager {
	return &Manager{
		store:    NewStore(),
		duration: duration,
		factory:  factory,
		ids:      uuidutil.Random{},
		logger:   log,
		stopCh:   make(chan struct{}),
	}
}

// Create starts a session with a fresh editor.
func (m *Manager) Create(ctx context.Context) *Session {
	now := time.Now()
	session := &Session{
		ID:        m.ids.NewID(),
		Editor:    m.factory(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.duration),
	}

	m.store.Set(session)

	m.logger.Info(ctx, "session created", map[string]interface{}{
		"session_id": session.ID,
	})

	return session
}

// Get retrieves a session by ID.
func (m *Manager) Get(sessionID string) (*Session, error) {
	return m.store.Get(sessionID, time.Now().Add(m.duration))
}

// Delete deletes a session by ID.
func (m *Manager) Delete(ctx context.Context, sessionID string) {
	m.store.Delete(sessionID)
	m.logger.Info(ctx, "session deleted", map[string]interface{}{
		"session_id": sessionID,
	})
}

// Len returns the number of tracked sessions.
func (m *Manager) Len() int {
	return m.store.Len()
}

// StartCleanup starts a background goroutine that periodically cleans up expired sessions.
func (m *Manager) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				removed := m.store.Cleanup()
				if removed > 0 {
					m.logger.Info(context.Background(), "cleaned up expired sessions", map[string]interface{}{
						"removed_count": removed,
					})
				}
			case <-m.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// StopCleanup stops the cleanup goroutine. It is safe to call more than once.
func (m *Manager) StopCleanup() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
}
