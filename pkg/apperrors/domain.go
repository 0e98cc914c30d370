package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики
// =========================================================================

// ErrNotFound оборачивает ошибку репозитория (напр. gorm.ErrRecordNotFound) в 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ошибки
// =========================================================================

// --- Auth ---

var ErrUnauthorized = New(
	CodeUnauthorized,
	"auth",
	"Authentication required",
	http.StatusUnauthorized,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

var ErrSessionExpired = New(
	CodeTokenExpired,
	"auth",
	"Session expired or revoked",
	http.StatusUnauthorized,
)

var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"user",
	"Username already exists",
	http.StatusConflict,
)

// ErrInsufficientPermissions - роль пользователя не допускает операцию.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrNotOwner - ресурс принадлежит другому пользователю.
var ErrNotOwner = New(
	CodeForbidden,
	"auth",
	"Only the owner of this job can perform this action",
	http.StatusForbidden,
)

// --- Marketplace ---

var ErrProposalAlreadyExists = New(
	CodeAlreadyExists,
	"proposal",
	"You have already submitted a proposal for this job",
	http.StatusConflict,
)

var ErrCannotMessageSelf = New(
	CodeInvalidOperation,
	"message",
	"Cannot send a message to yourself",
	http.StatusBadRequest,
)
