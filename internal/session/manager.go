package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/rewriting"
	"github.com/jonathan/resume-builder/internal/types"
)

// Config controls session lifetime.
type Config struct {
	IdleTimeout     time.Duration // sessions idle longer than this are dropped
	CleanupInterval time.Duration // how often the janitor runs; 0 disables it
	Seed            func() types.ResumeData
	NewTracker      func() *rewriting.Tracker
}

// Manager owns every live session. Nothing is persisted: a dropped session
// (idle timeout or process exit) is gone.
type Manager struct {
	cfg Config

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewManager creates a manager and starts its janitor when configured.
func NewManager(cfg Config) *Manager {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 12 * time.Hour
	}
	if cfg.Seed == nil {
		cfg.Seed = types.SeedResume
	}
	if cfg.NewTracker == nil {
		cfg.NewTracker = func() *rewriting.Tracker { return rewriting.NewTracker(rewriting.DefaultFailureDisplayWindow) }
	}

	m := &Manager{
		cfg:      cfg,
		sessions: make(map[uuid.UUID]*Session),
	}
	if cfg.CleanupInterval > 0 {
		m.cleanupTicker = time.NewTicker(cfg.CleanupInterval)
		m.cleanupStop = make(chan struct{})
		go m.cleanup()
	}
	return m
}

// Create starts a new session with the seed résumé.
func (m *Manager) Create() *Session {
	s := New(uuid.New(), m.cfg.Seed(), m.cfg.NewTracker())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id, or nil.
func (m *Manager) Get(id uuid.UUID) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the configured timeout.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.idleSince(now) > m.cfg.IdleTimeout {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) cleanup() {
	for {
		select {
		case now := <-m.cleanupTicker.C:
			m.Sweep(now)
		case <-m.cleanupStop:
			return
		}
	}
}

// Stop stops the janitor goroutine. Safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		if m.cleanupTicker != nil {
			m.cleanupTicker.Stop()
		}
		if m.cleanupStop != nil {
			close(m.cleanupStop)
		}
	})
}
