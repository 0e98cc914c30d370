package handlers

import (
	"net/http"

	"eventhire_backend/internal/middleware"
	"eventhire_backend/internal/models"
	"eventhire_backend/internal/services"
	"eventhire_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	*BaseHandler
	milestoneService services.MilestoneService
}

func NewMilestoneHandler(base *BaseHandler, milestoneService services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{
		BaseHandler:      base,
		milestoneService: milestoneService,
	}
}

func (h *MilestoneHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobMilestones := r.Group("/jobs/:id/milestones", h.RequireAuth())
	{
		jobMilestones.POST("", middleware.RequireRoles(models.UserRoleClient), h.CreateMilestone)
		jobMilestones.GET("", h.ListMilestones)
	}

	milestones := r.Group("/milestones", h.RequireAuth())
	{
		milestones.PATCH("/:id/status", h.UpdateStatus)
		milestones.GET("/:id/escrow", h.GetEscrow)
	}
}

func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	jobID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.CreateMilestoneRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	milestone, err := h.milestoneService.CreateMilestone(c.Request.Context(), h.GetDB(c), actor, jobID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, milestone)
}

func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	jobID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	milestones, err := h.milestoneService.ListMilestones(c.Request.Context(), h.GetDB(c), jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, milestones)
}

// UpdateStatus - PATCH /milestones/:id/status {"status": "..."}
func (h *MilestoneHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	milestoneID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateMilestoneStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	milestone, err := h.milestoneService.UpdateStatus(c.Request.Context(), h.GetDB(c), actor, milestoneID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, milestone)
}

func (h *MilestoneHandler) GetEscrow(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	milestoneID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	escrows, err := h.milestoneService.GetEscrow(c.Request.Context(), h.GetDB(c), actor, milestoneID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, escrows)
}
