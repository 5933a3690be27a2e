// Package session keeps the per-browser résumé state in memory.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/rewriting"
	"github.com/jonathan/resume-builder/internal/types"
)

// Session is one user's editing state. The résumé is published through an
// atomic pointer; writers serialize on mu and commit with a single swap, so
// Snapshot never returns a half-applied edit.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	data     atomic.Pointer[types.ResumeData]
	ids      *editing.Counter
	rewrites *rewriting.Tracker
	export   ExportGuard
	lastSeen atomic.Int64
}

// New creates a session seeded with data.
func New(id uuid.UUID, data types.ResumeData, tracker *rewriting.Tracker) *Session {
	s := &Session{
		ID:       id,
		ids:      editing.NewCounter(data.MaxID()),
		rewrites: tracker,
	}
	s.data.Store(&data)
	s.touch()
	return s
}

// Snapshot returns the last committed résumé.
func (s *Session) Snapshot() types.ResumeData {
	return *s.data.Load()
}

// Update runs fn against the current snapshot and commits its result.
// When fn fails nothing is committed.
func (s *Session) Update(fn func(types.ResumeData) (types.ResumeData, error)) (types.ResumeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	next, err := fn(*s.data.Load())
	if err != nil {
		return *s.data.Load(), err
	}
	s.data.Store(&next)
	return next, nil
}

// Apply commits one edit through the field edit controller.
func (s *Session) Apply(e editing.Edit) (types.ResumeData, editing.Result, error) {
	var res editing.Result
	data, err := s.Update(func(d types.ResumeData) (types.ResumeData, error) {
		next, r, err := editing.Apply(d, e, s.ids)
		res = r
		return next, err
	})
	return data, res, err
}

// Replace swaps in a whole résumé, e.g. one imported from JSON.
func (s *Session) Replace(data types.ResumeData) types.ResumeData {
	s.ids.Observe(data.MaxID())
	out, _ := s.Update(func(types.ResumeData) (types.ResumeData, error) {
		return data, nil
	})
	return out
}

// Rewrites returns the AI rewrite status tracker of this session.
func (s *Session) Rewrites() *rewriting.Tracker {
	return s.rewrites
}

// Export returns the export in-flight guard of this session.
func (s *Session) Export() *ExportGuard {
	return &s.export
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}
