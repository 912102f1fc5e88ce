package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/storage"
)

// SessionManager hands out one Session per user over a shared catalog.
// Each user's progress lives under its own key prefix in the shared store.
type SessionManager struct {
	cards    CardRepository
	store    KVStore
	opts     SessionOptions
	logger   *zap.Logger
	registry *storage.SessionRegistry[*Session]
}

// NewSessionManager creates a manager with no sessions.
func NewSessionManager(cards CardRepository, store KVStore, opts SessionOptions, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SessionManager{
		cards:    cards,
		store:    store,
		opts:     opts,
		logger:   logger,
		registry: storage.NewSessionRegistry[*Session](),
	}
}

// Session returns the user's session, opening it on first use.
func (m *SessionManager) Session(ctx context.Context, userID int64) (*Session, error) {
	return m.registry.GetOrCreate(userID, func() (*Session, error) {
		store := storage.Prefixed(m.store, UserKeyPrefix(userID))
		logger := m.logger.With(zap.Int64("user_id", userID))

		s, err := OpenSession(ctx, m.cards, store, m.opts, logger)
		if err != nil {
			return nil, fmt.Errorf("open session for user %d: %w", userID, err)
		}

		logger.Debug("session opened")
		return s, nil
	})
}

// EvictIdle drops sessions unused for longer than ttl. Progress stays in the store.
func (m *SessionManager) EvictIdle(ttl time.Duration) int {
	n := m.registry.EvictIdle(ttl)
	if n > 0 {
		m.logger.Info("idle sessions evicted",
			zap.Int("evicted", n),
			zap.Int("active", m.registry.Len()),
		)
	}
	return n
}

// Len returns the number of open sessions.
func (m *SessionManager) Len() int {
	return m.registry.Len()
}

// UserKeyPrefix is the key namespace of a user's progress records.
func UserKeyPrefix(userID int64) string {
	return fmt.Sprintf("user:%d:", userID)
}
