// File: services/chat/session.go
package chat

import (
	"sync"
	"time"

	"adeonabot/models"

	"github.com/google/uuid"
)

// SessionStore holds in-memory conversation state keyed by session ID.
// All mutation of a given session happens under that session's own
// lock, so two requests racing on the same ID are serialized while
// unrelated sessions proceed in parallel.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *models.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{entries: make(map[string]*sessionEntry)}
}

// With runs fn against the session for id, creating the session if it
// does not exist. It returns the session ID actually used (a fresh
// UUID when id was empty) so callers can echo it back to the client.
func (s *SessionStore) With(id string, fn func(sess *models.Session)) string {
	if id == "" {
		id = uuid.New().String()
	}

	s.mu.Lock()
	entry, ok := s.entries[id]
	if !ok {
		entry = &sessionEntry{session: &models.Session{
			ID:           id,
			LastActivity: time.Now(),
		}}
		s.entries[id] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.session)
	entry.session.LastActivity = time.Now()
	return id
}

// Peek returns a point-in-time copy of the session, or false if none
// exists. Intended for stats and tests, not for mutation.
func (s *SessionStore) Peek(id string) (models.Session, bool) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return models.Session{}, false
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return *entry.session, true
}

// Sweep evicts sessions idle longer than maxIdle and reports how many
// were removed. Eviction iterates a snapshot of the keys so new
// sessions created mid-sweep are never considered. Lock order is
// store then entry, same as Stats: holding the entry lock while
// reading LastActivity means a session with a turn in flight blocks
// the sweep until the turn finishes, at which point its refreshed
// activity clock keeps it alive.
func (s *SessionStore) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.RLock()
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	removed := 0
	for _, id := range ids {
		s.mu.Lock()
		entry, ok := s.entries[id]
		if !ok {
			s.mu.Unlock()
			continue
		}
		entry.mu.Lock()
		if entry.session.LastActivity.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
		entry.mu.Unlock()
		s.mu.Unlock()
	}
	return removed
}

// Stats reports aggregate counts for the admin surface.
func (s *SessionStore) Stats() models.SessionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.SessionStats{
		ActiveSessions: len(s.entries),
		Timestamp:      time.Now(),
	}
	for _, entry := range s.entries {
		entry.mu.Lock()
		stats.TotalMessages += len(entry.session.History)
		if entry.session.BookingDraft != nil {
			stats.ActiveBookings++
		}
		if entry.session.CancellationPending {
			stats.PendingCancellations++
		}
		entry.mu.Unlock()
	}
	return stats
}
