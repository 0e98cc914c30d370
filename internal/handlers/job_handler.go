package handlers

import (
	"net/http"

	"eventhire_backend/internal/middleware"
	"eventhire_backend/internal/models"
	"eventhire_backend/internal/services"
	"eventhire_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs", h.RequireAuth())
	{
		jobs.POST("", middleware.RequireRoles(models.UserRoleClient), h.CreateJob)
		jobs.GET("", h.ListJobs)
		jobs.GET("/:id", h.GetJob)
	}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// ListJobs - все вакансии или вакансии клиента (?clientId=).
func (h *JobHandler) ListJobs(c *gin.Context) {
	clientID, err := ParseQueryID(c, "clientId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	jobs, err := h.jobService.ListJobs(c.Request.Context(), h.GetDB(c), clientID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	job, err := h.jobService.GetJob(c.Request.Context(), h.GetDB(c), jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
