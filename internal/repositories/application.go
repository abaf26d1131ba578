package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talenthub/recruitment-api/internal/models"
)

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	ExistsForJobRoleAndEmail(jobRoleID uuid.UUID, email string) (bool, error)
	ListByJobRole(jobRoleID uuid.UUID) ([]models.Application, error)
	List() ([]models.Application, error)
	CountByJobRole(jobRoleID uuid.UUID) (int64, error)
	UpdateStatus(id uuid.UUID, status models.ApplicationStatus) error
	DeleteWithEvaluations(id uuid.UUID) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts the application row. A single insert runs in its own
// transaction; rollback on failure leaves nothing behind.
func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) ExistsForJobRoleAndEmail(jobRoleID uuid.UUID, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("job_role_id = ? AND candidate_email = ?", jobRoleID, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existing application: %w", err)
	}
	return count > 0, nil
}

func (r *applicationRepository) ListByJobRole(jobRoleID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("job_role_id = ?", jobRoleID).
		Order("submitted_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) List() ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Order("submitted_at DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) CountByJobRole(jobRoleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("job_role_id = ?", jobRoleID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

func (r *applicationRepository) UpdateStatus(id uuid.UUID, status models.ApplicationStatus) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update application status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWithEvaluations removes the application and its evaluation rows in
// one transaction. File cleanup is the caller's responsibility after commit.
func (r *applicationRepository) DeleteWithEvaluations(id uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", id).Delete(&models.Evaluation{}).Error; err != nil {
			return fmt.Errorf("failed to delete evaluations: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Application{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete application: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return err
}
