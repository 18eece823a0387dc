package catalog

import (
	"sync"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

// LoadToken identifies one load started with Store.Begin.
type LoadToken uint64

// Store holds the raw catalog records. The record list is replaced
// wholesale; callers must treat the slice returned by Get as read-only.
type Store struct {
	// publish orders replacements and their notifications; subscribers
	// must not call Set or Commit.
	publish     sync.Mutex
	mu          sync.Mutex
	records     []models.Application
	version     uint64
	lastToken   LoadToken
	subscribers map[int]func([]models.Application)
	nextSubID   int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		subscribers: make(map[int]func([]models.Application)),
	}
}

// Get returns the current records
func (s *Store) Get() []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records
}

// Version returns a counter bumped on every Set
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Set replaces the records and notifies subscribers
func (s *Store) Set(records []models.Application) {
	s.publish.Lock()
	defer s.publish.Unlock()
	s.mu.Lock()
	subs := s.replaceLocked(records)
	s.mu.Unlock()
	notify(subs, records)
}

func (s *Store) replaceLocked(records []models.Application) []func([]models.Application) {
	s.records = records
	s.version++
	subs := make([]func([]models.Application), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func([]models.Application), records []models.Application) {
	for _, fn := range subs {
		fn(records)
	}
}

// Subscribe registers fn to be called after every Set. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func([]models.Application)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Begin starts a load and returns its token
func (s *Store) Begin() LoadToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastToken++
	return s.lastToken
}

// Commit stores the records of a load started with Begin. A response that
// belongs to a load superseded by a newer Begin is dropped and Commit
// returns false.
func (s *Store) Commit(token LoadToken, records []models.Application) bool {
	s.publish.Lock()
	defer s.publish.Unlock()
	s.mu.Lock()
	if token != s.lastToken {
		s.mu.Unlock()
		return false
	}
	subs := s.replaceLocked(records)
	s.mu.Unlock()
	notify(subs, records)
	return true
}
