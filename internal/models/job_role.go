package models

import (
	"time"

	"github.com/google/uuid"
)

type JobRoleStatus string

const (
	JobRoleActive   JobRoleStatus = "active"
	JobRoleInactive JobRoleStatus = "inactive"
	JobRoleClosed   JobRoleStatus = "closed"
)

type JobRole struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string        `gorm:"type:text;not null" json:"title"`
	Description  string        `gorm:"type:text;not null" json:"description"`
	Requirements string        `gorm:"type:text" json:"requirements"`
	Status       JobRoleStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedBy    uuid.UUID     `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt    time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Owner User `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (JobRole) TableName() string {
	return "job_roles"
}

func (s JobRoleStatus) Valid() bool {
	switch s {
	case JobRoleActive, JobRoleInactive, JobRoleClosed:
		return true
	}
	return false
}
