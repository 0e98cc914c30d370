package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhire_backend/internal/models"
	"eventhire_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DBStore хранит сессии в таблице sessions.
type DBStore struct {
	db   *gorm.DB
	repo repositories.SessionRepository
	ttl  time.Duration
}

func NewDBStore(db *gorm.DB, repo repositories.SessionRepository, ttl time.Duration) *DBStore {
	return &DBStore{db: db, repo: repo, ttl: ttl}
}

func (s *DBStore) Create(ctx context.Context, userID uint) (*Session, error) {
	now := time.Now().UTC()
	row := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(s.db.WithContext(ctx), row); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &Session{ID: row.ID, UserID: row.UserID, ExpiresAt: row.ExpiresAt}, nil
}

func (s *DBStore) Get(ctx context.Context, id string) (uint, error) {
	row, err := s.repo.FindActive(s.db.WithContext(ctx), id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return row.UserID, nil
}

func (s *DBStore) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(s.db.WithContext(ctx), id)
}

// PurgeExpired удаляет просроченные сессии, вызывается из фонового воркера.
func (s *DBStore) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(s.db.WithContext(ctx), time.Now().UTC())
}
