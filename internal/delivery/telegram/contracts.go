package telegram

import (
	"context"

	"github.com/aliskhannn/dgt-vocab-bot/internal/service"
)

// SessionProvider returns the learning session of a Telegram user.
type SessionProvider interface {
	Session(ctx context.Context, userID int64) (*service.Session, error)
}
