package storage

import (
	"sync"
	"time"
)

type sessionEntry[T any] struct {
	value    T
	lastUsed time.Time
}

// SessionRegistry keeps one value per user in memory and tracks when each
// was last used so idle entries can be evicted.
type SessionRegistry[T any] struct {
	mu       sync.RWMutex
	sessions map[int64]*sessionEntry[T]
	now      func() time.Time
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry[T any]() *SessionRegistry[T] {
	return &SessionRegistry[T]{
		sessions: make(map[int64]*sessionEntry[T]),
		now:      time.Now,
	}
}

// GetOrCreate returns the user's value, creating it with create when missing.
// create runs under the registry lock and must not call back into the registry.
func (r *SessionRegistry[T]) GetOrCreate(userID int64, create func() (T, error)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[userID]; ok {
		e.lastUsed = r.now()
		return e.value, nil
	}

	v, err := create()
	if err != nil {
		var zero T
		return zero, err
	}

	r.sessions[userID] = &sessionEntry[T]{value: v, lastUsed: r.now()}
	return v, nil
}

// Len returns the number of registered values.
func (r *SessionRegistry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle removes values unused for longer than ttl and returns how many were removed.
func (r *SessionRegistry[T]) EvictIdle(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	evicted := 0
	for id, e := range r.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}
