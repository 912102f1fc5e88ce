package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

// Storage keys of the three progress records.
const (
	KeyKnown   = "dgt-vocab-progress" // JSON array of known card ids
	KeyHistory = "dgt-vocab-history"  // JSON object card id -> epoch ms of the last interaction
	KeyUnknown = "dgt-vocab-unknown"  // JSON array of ids answered wrongly in a quiz
)

var ErrCardNotFound = errors.New("card not found")

// ProgressTracker holds the learner's known set and interaction history and
// writes the complete state to the store on every mutation.
type ProgressTracker struct {
	mu     sync.RWMutex
	store  KVStore
	exists func(id int) bool
	now    func() time.Time
	logger *zap.Logger

	known          map[int]struct{}
	attemptedWrong map[int]struct{}
	history        map[int]int64
}

// NewProgressTracker creates an empty tracker. exists reports whether a card id
// belongs to the catalog; ids it rejects are never stored.
func NewProgressTracker(store KVStore, exists func(id int) bool, logger *zap.Logger) *ProgressTracker {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ProgressTracker{
		store:          store,
		exists:         exists,
		now:            time.Now,
		logger:         logger,
		known:          make(map[int]struct{}),
		attemptedWrong: make(map[int]struct{}),
		history:        make(map[int]int64),
	}
}

// Load merges the persisted records into the tracker; stored data wins.
// A corrupt record is logged and ignored. Store failures are returned.
func (t *ProgressTracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var known []int
	ok, err := t.read(ctx, KeyKnown, &known)
	if err != nil {
		return err
	}
	if ok {
		t.known = t.idSet(known)
	}

	var wrong []int
	ok, err = t.read(ctx, KeyUnknown, &wrong)
	if err != nil {
		return err
	}
	if ok {
		t.attemptedWrong = t.idSet(wrong)
	}

	var history map[int]int64
	ok, err = t.read(ctx, KeyHistory, &history)
	if err != nil {
		return err
	}
	if ok {
		for id, ts := range history {
			if t.exists(id) {
				t.history[id] = ts
			}
		}
	}

	t.logger.Debug("progress loaded",
		zap.Int("known", len(t.known)),
		zap.Int("attempted_wrong", len(t.attemptedWrong)),
		zap.Int("history", len(t.history)),
	)

	return nil
}

// IsKnown reports whether the card is in the known set.
func (t *ProgressTracker) IsKnown(id int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.known[id]
	return ok
}

// AttemptedWrong reports whether the card was answered wrongly in a quiz
// since it was last marked known.
func (t *ProgressTracker) AttemptedWrong(id int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.attemptedWrong[id]
	return ok
}

// LastInteraction returns the last interaction in epoch milliseconds, 0 if never.
func (t *ProgressTracker) LastInteraction(id int) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.history[id]
}

// KnownIDs returns the known card ids in ascending order.
func (t *ProgressTracker) KnownIDs() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return sortedIDs(t.known)
}

// MarkKnown adds the card to the known set and clears its wrong-attempt flag.
func (t *ProgressTracker) MarkKnown(ctx context.Context, id int) error {
	return t.mutate(ctx, []int{id}, func() {
		t.known[id] = struct{}{}
		delete(t.attemptedWrong, id)
	})
}

// MarkUnknown removes the card from the known set.
func (t *ProgressTracker) MarkUnknown(ctx context.Context, id int) error {
	return t.mutate(ctx, []int{id}, func() {
		delete(t.known, id)
	})
}

// MarkReviewed sets the card's known state and stamps it with the current
// time in a single write. Flashcard marking goes through here.
func (t *ProgressTracker) MarkReviewed(ctx context.Context, id int, known bool) error {
	return t.mutate(ctx, []int{id}, func() {
		if known {
			t.known[id] = struct{}{}
			delete(t.attemptedWrong, id)
		} else {
			delete(t.known, id)
		}
		t.history[id] = t.now().UnixMilli()
	})
}

// RecordInteraction stamps the cards with the current time.
func (t *ProgressTracker) RecordInteraction(ctx context.Context, ids ...int) error {
	return t.mutate(ctx, ids, func() {
		ts := t.now().UnixMilli()
		for _, id := range ids {
			t.history[id] = ts
		}
	})
}

// MarkAttemptedWrong flags the cards as answered wrongly.
func (t *ProgressTracker) MarkAttemptedWrong(ctx context.Context, ids ...int) error {
	return t.mutate(ctx, ids, func() {
		for _, id := range ids {
			t.attemptedWrong[id] = struct{}{}
		}
	})
}

// Reset clears all progress when ids is nil. Otherwise only the interaction
// timestamps of the given ids are cleared; their known state is kept.
func (t *ProgressTracker) Reset(ctx context.Context, ids []int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ids == nil {
		t.known = make(map[int]struct{})
		t.attemptedWrong = make(map[int]struct{})
		t.history = make(map[int]int64)

		if err := t.store.Remove(ctx, KeyKnown, KeyHistory, KeyUnknown); err != nil {
			return fmt.Errorf("persist progress: %w", err)
		}
		t.logger.Info("progress reset")
		return nil
	}

	for _, id := range ids {
		delete(t.history, id)
	}
	return t.persist(ctx)
}

// Snapshot returns a copy of the current state.
func (t *ProgressTracker) Snapshot() entities.ProgressSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return entities.ProgressSnapshot{
		Known:           sortedIDs(t.known),
		AttemptedWrong:  sortedIDs(t.attemptedWrong),
		LastInteraction: maps.Clone(t.history),
	}
}

// Restore replaces the state with a snapshot and persists it.
func (t *ProgressTracker) Restore(ctx context.Context, snap entities.ProgressSnapshot) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.known = t.idSet(snap.Known)
	t.attemptedWrong = t.idSet(snap.AttemptedWrong)
	t.history = make(map[int]int64, len(snap.LastInteraction))
	for id, ts := range snap.LastInteraction {
		if t.exists(id) {
			t.history[id] = ts
		}
	}

	return t.persist(ctx)
}

// mutate validates ids, applies fn and writes the full state.
// The in-memory change is kept even if the write fails.
func (t *ProgressTracker) mutate(ctx context.Context, ids []int, fn func()) error {
	for _, id := range ids {
		if !t.exists(id) {
			return fmt.Errorf("%w: %d", ErrCardNotFound, id)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fn()
	return t.persist(ctx)
}

// persist writes all records in one SetMany call. Callers hold t.mu.
func (t *ProgressTracker) persist(ctx context.Context) error {
	known, err := json.Marshal(sortedIDs(t.known))
	if err != nil {
		return fmt.Errorf("encode known: %w", err)
	}
	wrong, err := json.Marshal(sortedIDs(t.attemptedWrong))
	if err != nil {
		return fmt.Errorf("encode attempted wrong: %w", err)
	}
	history, err := json.Marshal(t.history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	err = t.store.SetMany(ctx, map[string]string{
		KeyKnown:   string(known),
		KeyUnknown: string(wrong),
		KeyHistory: string(history),
	})
	if err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}

	return nil
}

// read decodes key into dst. It reports false when the key is missing or corrupt.
func (t *ProgressTracker) read(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := t.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		t.logger.Warn("corrupt progress record, starting empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return false, nil
	}

	return true, nil
}

func (t *ProgressTracker) idSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if t.exists(id) {
			set[id] = struct{}{}
		}
	}
	return set
}

func sortedIDs(set map[int]struct{}) []int {
	return slices.Sorted(maps.Keys(set))
}
