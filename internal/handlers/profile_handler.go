package handlers

import (
	"net/http"

	"eventhire_backend/internal/services"
	"eventhire_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.PATCH("/profile", h.RequireAuth(), h.UpdateProfile)
}

// UpdateProfile меняет только переданные поля профиля текущего пользователя.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), h.GetDB(c), actor.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
