package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/vatly/vatly/internal/chat"
)

const (
	defaultSessionTTL  = 2 * time.Hour
	defaultMaxSessions = 500
)

type sessionEntry struct {
	sess     *chat.Session
	lastUsed time.Time
}

// sessionStore keeps chat sessions in memory. A session expires after ttl
// without use; past limit sessions the least recently used one is evicted.
type sessionStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	limit int
	now   func() time.Time
	data  map[string]*sessionEntry
}

func newSessionStore(ttl time.Duration, limit int) *sessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if limit <= 0 {
		limit = defaultMaxSessions
	}
	return &sessionStore{
		ttl:   ttl,
		limit: limit,
		now:   time.Now,
		data:  make(map[string]*sessionEntry),
	}
}

func (st *sessionStore) add(sess *chat.Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.pruneLocked(now)
	for len(st.data) >= st.limit {
		st.evictOldestLocked()
	}
	st.data[sess.ID] = &sessionEntry{sess: sess, lastUsed: now}
}

// get returns a live session and marks it used.
func (st *sessionStore) get(id string) (*chat.Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.data[id]
	if !ok {
		return nil, false
	}
	now := st.now()
	if st.expired(e, now) {
		delete(st.data, id)
		return nil, false
	}
	e.lastUsed = now
	return e.sess, true
}

func (st *sessionStore) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.data[id]; !ok {
		return false
	}
	delete(st.data, id)
	return true
}

func (st *sessionStore) count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.data)
}

// A session with a reply in flight never expires.
func (st *sessionStore) expired(e *sessionEntry, now time.Time) bool {
	return !e.sess.Busy() && now.Sub(e.lastUsed) > st.ttl
}

func (st *sessionStore) pruneLocked(now time.Time) {
	for id, e := range st.data {
		if st.expired(e, now) {
			delete(st.data, id)
		}
	}
}

func (st *sessionStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range st.data {
		if oldestID == "" || e.lastUsed.Before(oldest) {
			oldestID, oldest = id, e.lastUsed
		}
	}
	if oldestID == "" {
		return
	}
	slog.Info("evicting chat session", "session_id", oldestID, "idle", st.now().Sub(oldest))
	delete(st.data, oldestID)
}
