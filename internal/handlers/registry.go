package handlers

import (
	"eventhire_backend/internal/services"
	"eventhire_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// AppHandlers - все обработчики приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	ProfileHandler   *ProfileHandler
	JobHandler       *JobHandler
	ProposalHandler  *ProposalHandler
	MessageHandler   *MessageHandler
	MilestoneHandler *MilestoneHandler
	HealthHandler    *HealthHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator, requireAuth gin.HandlerFunc, cookie CookieConfig) *AppHandlers {
	base := NewBaseHandler(v, requireAuth)

	return &AppHandlers{
		AuthHandler:      NewAuthHandler(base, svc.AuthService, cookie),
		ProfileHandler:   NewProfileHandler(base, svc.ProfileService),
		JobHandler:       NewJobHandler(base, svc.JobService),
		ProposalHandler:  NewProposalHandler(base, svc.ProposalService),
		MessageHandler:   NewMessageHandler(base, svc.MessageService),
		MilestoneHandler: NewMilestoneHandler(base, svc.MilestoneService),
		HealthHandler:    NewHealthHandler(base),
	}
}
