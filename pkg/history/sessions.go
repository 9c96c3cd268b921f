package history

import (
	"sync"
	"time"

	"github.com/getzep/nerlog/pkg/models"
)

var _ models.SessionStore = &Sessions{}

type session struct {
	store    *Store
	lastSeen time.Time
}

// Sessions maps session IDs to their history. Sessions idle for longer than idleTimeout are
// dropped the next time the registry is touched; there is no background sweeper. A zero
// idleTimeout keeps sessions for the life of the process.
type Sessions struct {
	mu          sync.Mutex
	sessions    map[string]*session
	idleTimeout time.Duration
	now         func() time.Time
}

func NewSessions(idleTimeout time.Duration) *Sessions {
	return &Sessions{
		sessions:    make(map[string]*session),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// GetOrCreate returns the history for sessionID, starting an empty one if needed.
func (s *Sessions) GetOrCreate(sessionID string) models.HistoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	sess, ok := s.sessions[sessionID]
	if !ok {
		log.Debugf("starting session %s", sessionID)
		sess = &session{store: NewStore()}
		s.sessions[sessionID] = sess
	}
	sess.lastSeen = now
	return sess.store
}

// Get returns the history for an existing session or a NotFoundError.
func (s *Sessions) Get(sessionID string) (models.HistoryStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, models.NewNotFoundError("session " + sessionID)
	}
	sess.lastSeen = now
	return sess.store, nil
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Sessions) evictLocked(now time.Time) {
	if s.idleTimeout <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.idleTimeout {
			log.Debugf("discarding idle session %s", id)
			delete(s.sessions, id)
		}
	}
}
