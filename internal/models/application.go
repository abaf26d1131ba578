package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewing   ApplicationStatus = "reviewing"
	ApplicationInterviewed ApplicationStatus = "interviewed"
	ApplicationHired       ApplicationStatus = "hired"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// Application is one candidate's submission against one job role.
// Duplicate protection for (job_role_id, candidate_email) is a pre-insert
// existence check in the service layer, not a unique constraint; two
// concurrent identical submissions can both land.
type Application struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobRoleID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"job_role_id"`
	CandidateName  string            `gorm:"type:text;not null" json:"candidate_name"`
	CandidateEmail string            `gorm:"type:text;not null;index" json:"candidate_email"`
	CandidatePhone string            `gorm:"type:text" json:"candidate_phone,omitempty"`
	CVFileKey      string            `gorm:"type:text;not null" json:"cv_file_key"`
	CVText         string            `gorm:"type:text" json:"-"`
	Status         ApplicationStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	SubmittedAt    time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"submitted_at"`
	UpdatedAt      time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	JobRole JobRole `gorm:"foreignKey:JobRoleID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewing, ApplicationInterviewed,
		ApplicationHired, ApplicationRejected:
		return true
	}
	return false
}
