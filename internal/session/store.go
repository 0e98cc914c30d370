package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound - сессии нет или срок ее действия истек.
var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
}

// Store хранит серверную часть сессии. Cookie несет только подписанный ID.
type Store interface {
	Create(ctx context.Context, userID uint) (*Session, error)
	Get(ctx context.Context, id string) (uint, error)
	Delete(ctx context.Context, id string) error
}
