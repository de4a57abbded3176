// Package store provides session storage backends for eSahyog.
//
// Sessions live only in process memory. By default they are never evicted;
// WithTTL and WithMaxSessions bound the store with an expiring LRU.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/BTreeMap/eSahyog/internal/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// SessionStore persists intake sessions keyed by sender.
type SessionStore interface {
	// GetSession returns the session for sender, or nil if none exists.
	GetSession(sender string) (*models.Session, error)
	// SaveSession stores s, replacing any previous session of s.Sender.
	SaveSession(s models.Session) error
	// CountSessions returns the number of stored sessions.
	CountSessions() (int, error)
}

// Opts holds configuration options for the in-memory store.
type Opts struct {
	TTL         time.Duration // idle time before a session is dropped; 0 keeps forever
	MaxSessions int           // upper bound on stored sessions; 0 is unbounded
}

// Option defines a configuration option for the store.
type Option func(*Opts)

// WithTTL drops sessions that have not been saved for ttl.
func WithTTL(ttl time.Duration) Option {
	return func(o *Opts) { o.TTL = ttl }
}

// WithMaxSessions evicts the least recently used session beyond n.
func WithMaxSessions(n int) Option {
	return func(o *Opts) { o.MaxSessions = n }
}

// InMemoryStore is a concurrency-safe in-memory SessionStore.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	lru      *expirable.LRU[string, models.Session]
}

// NewInMemoryStore creates a new InMemoryStore.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &InMemoryStore{}
	if cfg.TTL > 0 || cfg.MaxSessions > 0 {
		s.lru = expirable.NewLRU[string, models.Session](cfg.MaxSessions, func(sender string, _ models.Session) {
			slog.Debug("InMemoryStore: session evicted", "sender", sender)
		}, cfg.TTL)
		slog.Debug("InMemoryStore created with eviction", "ttl", cfg.TTL, "max_sessions", cfg.MaxSessions)
	} else {
		s.sessions = make(map[string]models.Session)
		slog.Debug("InMemoryStore created without eviction")
	}
	return s
}

// GetSession returns a copy of the stored session, or nil if absent.
func (s *InMemoryStore) GetSession(sender string) (*models.Session, error) {
	var (
		sess models.Session
		ok   bool
	)
	if s.lru != nil {
		sess, ok = s.lru.Get(sender)
	} else {
		s.mu.RLock()
		sess, ok = s.sessions[sender]
		s.mu.RUnlock()
	}
	if !ok {
		return nil, nil
	}
	c := sess.Clone()
	return &c, nil
}

// SaveSession stores a copy of sess.
func (s *InMemoryStore) SaveSession(sess models.Session) error {
	c := sess.Clone()
	if s.lru != nil {
		s.lru.Add(sess.Sender, c)
		return nil
	}
	s.mu.Lock()
	s.sessions[sess.Sender] = c
	s.mu.Unlock()
	return nil
}

// CountSessions returns the number of stored sessions.
func (s *InMemoryStore) CountSessions() (int, error) {
	if s.lru != nil {
		return s.lru.Len(), nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}
