package service

import (
	"context"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

// CardRepository is the read-only catalog the engine works on.
type CardRepository interface {
	All() []*entities.Card
	GetByID(id int) (*entities.Card, error)
	Exists(id int) bool
}

// KVStore persists progress records as strings.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, kv map[string]string) error
	Remove(ctx context.Context, keys ...string) error
}

// ProgressReader exposes the progress queries used for selection.
type ProgressReader interface {
	IsKnown(id int) bool
	LastInteraction(id int) int64
}

// ProgressWriter records the effects of quiz answers.
type ProgressWriter interface {
	ProgressReader
	MarkKnown(ctx context.Context, id int) error
	MarkUnknown(ctx context.Context, id int) error
	RecordInteraction(ctx context.Context, ids ...int) error
	MarkAttemptedWrong(ctx context.Context, ids ...int) error
}
