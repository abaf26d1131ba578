package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talenthub/recruitment-api/internal/models"
)

type EvaluationRepository interface {
	Upsert(eval *models.Evaluation) error
	FindByApplicationID(applicationID uuid.UUID) (*models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// Upsert overwrites the existing evaluation for the application in place,
// or inserts a new row if none exists yet.
func (r *evaluationRepository) Upsert(eval *models.Evaluation) error {
	var existing models.Evaluation
	err := r.db.Where("application_id = ?", eval.ApplicationID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up evaluation: %w", err)
		}
		if err := r.db.Create(eval).Error; err != nil {
			return fmt.Errorf("failed to create evaluation: %w", err)
		}
		return nil
	}

	// Select forces zero values through (a fallback score is 0) and keeps
	// the JSON serializer applied to the slice columns.
	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", existing.ID).
		Select("score", "strengths", "weaknesses", "summary", "model", "evaluated_at").
		Updates(models.Evaluation{
			Score:       eval.Score,
			Strengths:   eval.Strengths,
			Weaknesses:  eval.Weaknesses,
			Summary:     eval.Summary,
			Model:       eval.Model,
			EvaluatedAt: time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update evaluation: %w", result.Error)
	}

	eval.ID = existing.ID
	return nil
}

func (r *evaluationRepository) FindByApplicationID(applicationID uuid.UUID) (*models.Evaluation, error) {
	var eval models.Evaluation
	if err := r.db.Where("application_id = ?", applicationID).First(&eval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &eval, nil
}
