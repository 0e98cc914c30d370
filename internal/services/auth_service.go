package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"eventhire_backend/internal/auth"
	"eventhire_backend/internal/logger"
	"eventhire_backend/internal/models"
	"eventhire_backend/internal/repositories"
	"eventhire_backend/internal/services/dto"
	"eventhire_backend/internal/session"
	"eventhire_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResult, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, db *gorm.DB, userID uint) (*models.User, error)
	// Authenticate проверяет токен и наличие сессии в хранилище.
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	sessions session.Store
	secret   string
}

func NewAuthService(userRepo repositories.UserRepository, sessions session.Store, secret string) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		sessions: sessions,
		secret:   secret,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResult, error) {
	if !req.UserType.IsValid() {
		return nil, apperrors.ValidationError(map[string]string{"userType": "Must be one of: client, vendor"})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &models.User{
		Username:    req.Username,
		Password:    hash,
		UserType:    req.UserType,
		FullName:    req.FullName,
		Description: req.Description,
		Skills:      models.StringList(req.Skills),
		Portfolio:   req.Portfolio,
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID, "user_type", user.UserType)
	return s.openSession(ctx, user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResult, error) {
	user, err := s.userRepo.FindByUsername(db.WithContext(ctx), req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		logger.CtxWarn(ctx, "Login failed: wrong password", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) CurrentUser(ctx context.Context, db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db.WithContext(ctx), userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(s.secret, token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid session token", http.StatusUnauthorized).WithError(err)
	}

	userID, err := s.sessions.Get(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.InternalError(err)
	}

	tokenUserID, _ := claims.UserID()
	if userID != tokenUserID {
		return nil, apperrors.ErrSessionExpired
	}
	return claims, nil
}

func (s *AuthServiceImpl) openSession(ctx context.Context, user *models.User) (*dto.AuthResult, error) {
	sess, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(s.secret, user.ID, user.UserType, sess.ID, sess.ExpiresAt)
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("sign token: %w", err))
	}

	return &dto.AuthResult{
		User:      user,
		Token:     token,
		SessionID: sess.ID,
		ExpiresAt: sess.ExpiresAt.Truncate(time.Second),
	}, nil
}
