package models

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation is the AI-generated scoring record for an application,
// logically one-to-one. A re-evaluation overwrites the row in place.
type Evaluation struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`
	Score         int       `gorm:"not null" json:"score"`
	Strengths     []string  `gorm:"serializer:json;type:text" json:"strengths"`
	Weaknesses    []string  `gorm:"serializer:json;type:text" json:"weaknesses"`
	Summary       string    `gorm:"type:text" json:"summary"`
	Model         string    `gorm:"type:text" json:"model"`
	EvaluatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"evaluated_at"`

	Application Application `gorm:"foreignKey:ApplicationID" json:"-"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
