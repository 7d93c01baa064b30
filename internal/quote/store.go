package quote

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/quote.works/internal/logger"
)

// StoreOptions bounds how many sessions stay in memory and for how long. Zero values
// disable the corresponding limit.
type StoreOptions struct {
	IdleTTL     time.Duration
	MaxSessions int
}

type storeEntry struct {
	session  *Session
	lastUsed time.Time
}

// Store keeps the live sessions of the running process. Sessions idle for longer than
// IdleTTL are dropped, and once MaxSessions is reached the least recently used session
// makes room for a new one.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*storeEntry
	opts     StoreOptions
	now      func() time.Time
	log      *logger.Logger
}

func NewStore(log *logger.Logger, opts StoreOptions) *Store {
	return &Store{
		sessions: make(map[string]*storeEntry),
		opts:     opts,
		now:      time.Now,
		log:      log,
	}
}

// Create starts a new empty session.
func (st *Store) Create() *Session {
	s := NewSession(uuid.NewString(), st.log)

	st.mu.Lock()
	now := st.now()
	st.sweepLocked(now)
	if st.opts.MaxSessions > 0 {
		for len(st.sessions) >= st.opts.MaxSessions {
			st.evictOldestLocked()
		}
	}
	st.sessions[s.ID] = &storeEntry{session: s, lastUsed: now}
	st.mu.Unlock()

	st.log.Info("quote session started", "session", s.ID)
	return s
}

// Get returns a live session and marks it as used.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	now := st.now()
	if st.expired(e, now) {
		delete(st.sessions, id)
		return nil, false
	}
	e.lastUsed = now
	return e.session, true
}

// Delete drops a session and reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		st.log.Info("quote session discarded", "session", id)
	}
	return ok
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops every idle session and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	n := st.sweepLocked(st.now())
	st.mu.Unlock()

	if n > 0 {
		st.log.Info("idle quote sessions expired", "count", n)
	}
	return n
}

// Run sweeps idle sessions every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if st.opts.IdleTTL <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}

func (st *Store) expired(e *storeEntry, now time.Time) bool {
	return st.opts.IdleTTL > 0 && now.Sub(e.lastUsed) > st.opts.IdleTTL
}

func (st *Store) sweepLocked(now time.Time) int {
	n := 0
	for id, e := range st.sessions {
		if st.expired(e, now) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

func (st *Store) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range st.sessions {
		if oldestID == "" || e.lastUsed.Before(oldest) {
			oldestID, oldest = id, e.lastUsed
		}
	}
	if oldestID == "" {
		return
	}
	delete(st.sessions, oldestID)
	st.log.Warn("quote session evicted", "session", oldestID, "max_sessions", st.opts.MaxSessions)
}
