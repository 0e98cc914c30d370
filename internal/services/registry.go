package services

import (
	"eventhire_backend/internal/repositories"
	"eventhire_backend/internal/session"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService      AuthService
	ProfileService   ProfileService
	JobService       JobService
	ProposalService  ProposalService
	MessageService   MessageService
	MilestoneService MilestoneService
}

// NewServiceContainer собирает сервисы поверх stateless репозиториев.
func NewServiceContainer(sessions session.Store, sessionSecret string) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	jobRepo := repositories.NewJobRepository()
	proposalRepo := repositories.NewProposalRepository()
	messageRepo := repositories.NewMessageRepository()
	milestoneRepo := repositories.NewMilestoneRepository()
	escrowRepo := repositories.NewEscrowRepository()
	outboxRepo := repositories.NewOutboxRepository()

	return &ServiceContainer{
		AuthService:      NewAuthService(userRepo, sessions, sessionSecret),
		ProfileService:   NewProfileService(userRepo),
		JobService:       NewJobService(jobRepo),
		ProposalService:  NewProposalService(proposalRepo, jobRepo),
		MessageService:   NewMessageService(messageRepo, userRepo),
		MilestoneService: NewMilestoneService(milestoneRepo, escrowRepo, jobRepo, outboxRepo),
	}
}
