package models

type UserRole string
type JobCategory string
type JobStatus string
type ProposalStatus string
type MilestoneStatus string
type EscrowStatus string

const (
	UserRoleClient UserRole = "client"
	UserRoleVendor UserRole = "vendor"

	JobCategoryWedding        JobCategory = "Wedding"
	JobCategoryCorporateEvent JobCategory = "Corporate Event"
	JobCategoryBirthdayParty  JobCategory = "Birthday Party"
	JobCategoryConference     JobCategory = "Conference"
	JobCategoryConcert        JobCategory = "Concert"
	JobCategoryPrivateParty   JobCategory = "Private Party"
	JobCategoryExhibition     JobCategory = "Exhibition"
	JobCategoryOther          JobCategory = "Other"

	JobStatusOpen JobStatus = "open"

	ProposalStatusPending ProposalStatus = "pending"

	MilestoneStatusPending   MilestoneStatus = "pending"
	MilestoneStatusCompleted MilestoneStatus = "completed"
	MilestoneStatusApproved  MilestoneStatus = "approved"
	MilestoneStatusReleased  MilestoneStatus = "released"

	EscrowStatusHeld     EscrowStatus = "held"
	EscrowStatusReleased EscrowStatus = "released"
	// Объявлен в схеме, ни один переход его не выставляет.
	EscrowStatusRefunded EscrowStatus = "refunded"
)

var JobCategories = []JobCategory{
	JobCategoryWedding,
	JobCategoryCorporateEvent,
	JobCategoryBirthdayParty,
	JobCategoryConference,
	JobCategoryConcert,
	JobCategoryPrivateParty,
	JobCategoryExhibition,
	JobCategoryOther,
}

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleClient, UserRoleVendor:
		return true
	}
	return false
}

// CanSetMilestoneStatus reports whether the role is the one allowed to move a
// milestone into target. Ownership of the job is checked separately.
func (r UserRole) CanSetMilestoneStatus(target MilestoneStatus) bool {
	switch target {
	case MilestoneStatusCompleted:
		return r == UserRoleVendor
	case MilestoneStatusApproved, MilestoneStatusReleased:
		return r == UserRoleClient
	default:
		return false
	}
}

func (c JobCategory) IsValid() bool {
	for _, v := range JobCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Next returns the only status a milestone may move to from s.
func (s MilestoneStatus) Next() (MilestoneStatus, bool) {
	switch s {
	case MilestoneStatusPending:
		return MilestoneStatusCompleted, true
	case MilestoneStatusCompleted:
		return MilestoneStatusApproved, true
	case MilestoneStatusApproved:
		return MilestoneStatusReleased, true
	default:
		return "", false
	}
}

func (s MilestoneStatus) CanTransitionTo(target MilestoneStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// IsTarget reports whether s can be requested through a status update.
func (s MilestoneStatus) IsTarget() bool {
	switch s {
	case MilestoneStatusCompleted, MilestoneStatusApproved, MilestoneStatusReleased:
		return true
	}
	return false
}
