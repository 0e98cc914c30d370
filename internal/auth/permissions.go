package auth

import "eventhire_backend/internal/models"

// Разрешения на действия, зависящие только от роли.
// Владение ресурсом проверяется в сервисах отдельно, переходы этапов
// описаны в models.UserRole.CanSetMilestoneStatus.
const (
	PermJobsCreate       = "jobs:create"
	PermProposalsCreate  = "proposals:create"
	PermProposalsReadOwn = "proposals:read:self"
	PermMilestonesCreate = "milestones:create"
	PermMessagesSend     = "messages:send"
	PermProfileWriteSelf = "profile:write:self"
)

var Permissions = map[models.UserRole][]string{
	models.UserRoleClient: {
		PermJobsCreate,
		PermMilestonesCreate,
		PermMessagesSend,
		PermProfileWriteSelf,
	},
	models.UserRoleVendor: {
		PermProposalsCreate,
		PermProposalsReadOwn,
		PermMessagesSend,
		PermProfileWriteSelf,
	},
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role models.UserRole, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
