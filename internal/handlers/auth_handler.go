package handlers

import (
	"net/http"
	"time"

	"eventhire_backend/internal/services"
	"eventhire_backend/internal/services/dto"
	"eventhire_backend/pkg/apperrors"
	"eventhire_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// CookieConfig - параметры cookie сессии.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookie:      cookie,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	protected := r.Group("", h.RequireAuth())
	{
		protected.POST("/logout", h.Logout)
		protected.GET("/user", h.CurrentUser)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, result)
	c.JSON(http.StatusCreated, result.User)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, result)
	c.JSON(http.StatusOK, result.User)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(string(contextkeys.SessionIDKey))
	if sessionID == "" {
		apperrors.HandleError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.Status(http.StatusOK)
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), h.GetDB(c), actor.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, result *dto.AuthResult) {
	maxAge := int(time.Until(result.ExpiresAt).Seconds())

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, result.Token, maxAge, "/", "", h.cookie.Secure, true)
}
