// Package session provides the bounded in-memory store for review sessions.
// Nothing is persisted: state lives for the lifetime of the process and the
// LRU cap keeps an abandoned-session pile from growing without bound.
package session

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrNotFound = errors.New("session not found")

// Store is an LRU-bounded map from session ID to session state.
type Store[V any] struct {
	cache *lru.Cache[string, V]
}

// NewStore creates a store holding at most size sessions; the least
// recently used session is evicted when the cap is exceeded.
func NewStore[V any](size int) (*Store[V], error) {
	cache, err := lru.New[string, V](size)
	if err != nil {
		return nil, err
	}
	return &Store[V]{cache: cache}, nil
}

// Put inserts or replaces a session.
func (s *Store[V]) Put(id string, v V) {
	s.cache.Add(id, v)
}

// Get returns the session with the given ID, refreshing its recency.
func (s *Store[V]) Get(id string) (V, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	return v, nil
}

// Delete removes a session. Deleting an absent ID is not an error.
func (s *Store[V]) Delete(id string) {
	s.cache.Remove(id)
}

// Len reports how many sessions are currently held.
func (s *Store[V]) Len() int {
	return s.cache.Len()
}
