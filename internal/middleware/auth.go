package middleware

import (
	"context"
	"strings"

	"eventhire_backend/internal/auth"
	"eventhire_backend/internal/logger"
	"eventhire_backend/internal/models"
	"eventhire_backend/pkg/apperrors"
	"eventhire_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// Authenticator проверяет токен сессии.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// SessionAuthMiddleware берет токен из cookie сессии или заголовка
// Authorization: Bearer и кладет userID, роль и ID сессии в контекст.
func SessionAuthMiddleware(authenticator Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c, cookieName)
		if token == "" {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			return
		}

		claims, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Session rejected", "error", err.Error(), "path", c.Request.URL.Path)
			apperrors.HandleError(c, err)
			return
		}

		userID, _ := claims.UserID()
		c.Set(string(contextkeys.UserIDKey), userID)
		c.Set(string(contextkeys.RoleKey), claims.Role)
		c.Set(string(contextkeys.SessionIDKey), claims.SessionID())
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), userID))

		c.Next()
	}
}

// ExtractToken: сначала cookie, затем заголовок Authorization.
func ExtractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireRoles - middleware для проверки нескольких возможных ролей
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(string(contextkeys.RoleKey))
		if !exists {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok || !roleSet[role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		c.Next()
	}
}
