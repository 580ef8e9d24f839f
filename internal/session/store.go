package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/your-username/game-event-analytics/internal/models"
)

// Store keeps each operator session's accumulated time periods. State is
// explicit and session-scoped rather than ambient: every handler passes the
// session ID it got from the auth middleware. Lists are copied out, so an
// in-flight analysis never observes a concurrent add or remove.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	idleTTL  time.Duration
}

type entry struct {
	periods  []models.TimePeriod
	lastSeen time.Time
}

// NewStore creates a session store and starts its idle-expiry routine.
func NewStore(idleTTL time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		idleTTL:  idleTTL,
	}

	go s.expireIdle()

	return s
}

// Add validates and appends a period, assigning its ID. The stored period is
// immutable afterwards; only removal is possible.
func (s *Store) Add(sessionID string, p models.TimePeriod) (models.TimePeriod, error) {
	if err := p.Validate(); err != nil {
		return models.TimePeriod{}, err
	}
	p.ID = uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.touch(sessionID)
	e.periods = append(e.periods, p)

	log.Debug().Str("session_id", sessionID).Str("period_id", p.ID).Msg("Time period added")
	return p, nil
}

// Remove deletes one period by ID. It reports whether the period existed.
func (s *Store) Remove(sessionID, periodID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.touch(sessionID)
	for i, p := range e.periods {
		if p.ID == periodID {
			e.periods = append(e.periods[:i], e.periods[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every period from the session.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.touch(sessionID)
	e.periods = nil
}

// List returns a copy of the session's periods in insertion order.
func (s *Store) List(sessionID string) []models.TimePeriod {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.touch(sessionID)
	out := make([]models.TimePeriod, len(e.periods))
	copy(out, e.periods)
	return out
}

// touch returns the session entry, creating it if needed. Caller holds the lock.
func (s *Store) touch(sessionID string) *entry {
	e, ok := s.sessions[sessionID]
	if !ok {
		e = &entry{}
		s.sessions[sessionID] = e
	}
	e.lastSeen = time.Now()
	return e
}

func (s *Store) expireIdle() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		cutoff := time.Now().Add(-s.idleTTL)
		for id, e := range s.sessions {
			if e.lastSeen.Before(cutoff) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
