package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - *gorm.DB (пул или транзакция) текущего запроса
	DBContextKey = contextKey("db")
	// UserIDKey - uint ID пользователя из сессии
	UserIDKey = contextKey("userID")
	// RoleKey - models.UserRole пользователя из сессии
	RoleKey = contextKey("role")
	// SessionIDKey - ID сессии (jti токена)
	SessionIDKey = contextKey("sessionID")
)
