package dto

import (
	"time"

	"eventhire_backend/internal/models"
)

// Actor - аутентифицированный пользователь, выполняющий операцию.
type Actor struct {
	UserID uint
	Role   models.UserRole
}

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Username    string                  `json:"username" validate:"required,min=3,max=50"`
	Password    string                  `json:"password" validate:"required,min=6,max=72"`
	UserType    models.UserRole         `json:"userType" validate:"required,is-user-role"`
	FullName    string                  `json:"fullName" validate:"max=100"`
	Description string                  `json:"description" validate:"max=2000"`
	Skills      []string                `json:"skills" validate:"max=50,dive,required,max=50"`
	Portfolio   []models.PortfolioEntry `json:"portfolio" validate:"max=50,dive"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult - пользователь и подписанный токен открытой сессии.
type AuthResult struct {
	User      *models.User
	Token     string
	SessionID string
	ExpiresAt time.Time
}
