package handlers

import (
	"net/http"

	"eventhire_backend/internal/middleware"
	"eventhire_backend/internal/models"
	"eventhire_backend/internal/services"
	"eventhire_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProposalHandler struct {
	*BaseHandler
	proposalService services.ProposalService
}

func NewProposalHandler(base *BaseHandler, proposalService services.ProposalService) *ProposalHandler {
	return &ProposalHandler{
		BaseHandler:     base,
		proposalService: proposalService,
	}
}

func (h *ProposalHandler) RegisterRoutes(r *gin.RouterGroup) {
	proposals := r.Group("/proposals", h.RequireAuth(), middleware.RequireRoles(models.UserRoleVendor))
	{
		proposals.POST("", h.CreateProposal)
		proposals.GET("", h.ListMyProposals)
	}

	r.GET("/jobs/:id/proposals", h.RequireAuth(), h.ListJobProposals)
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

func (h *ProposalHandler) ListMyProposals(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	proposals, err := h.proposalService.ListMyProposals(c.Request.Context(), h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, proposals)
}

func (h *ProposalHandler) ListJobProposals(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	jobID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	proposals, err := h.proposalService.ListJobProposals(c.Request.Context(), h.GetDB(c), actor, jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, proposals)
}
