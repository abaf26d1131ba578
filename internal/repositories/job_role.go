package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talenthub/recruitment-api/internal/models"
)

type JobRoleRepository interface {
	Create(role *models.JobRole) error
	FindByID(id uuid.UUID) (*models.JobRole, error)
	List(onlyActive bool) ([]models.JobRole, error)
	Update(role *models.JobRole) error
	Delete(id uuid.UUID) error
}

type jobRoleRepository struct {
	db *gorm.DB
}

func NewJobRoleRepository(db *gorm.DB) JobRoleRepository {
	return &jobRoleRepository{db: db}
}

func (r *jobRoleRepository) Create(role *models.JobRole) error {
	if err := r.db.Create(role).Error; err != nil {
		return fmt.Errorf("failed to create job role: %w", err)
	}
	return nil
}

func (r *jobRoleRepository) FindByID(id uuid.UUID) (*models.JobRole, error) {
	var role models.JobRole
	if err := r.db.Where("id = ?", id).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job role: %w", err)
	}
	return &role, nil
}

func (r *jobRoleRepository) List(onlyActive bool) ([]models.JobRole, error) {
	query := r.db.Order("created_at DESC")
	if onlyActive {
		query = query.Where("status = ?", models.JobRoleActive)
	}

	var roles []models.JobRole
	if err := query.Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to list job roles: %w", err)
	}
	return roles, nil
}

func (r *jobRoleRepository) Update(role *models.JobRole) error {
	if err := r.db.Save(role).Error; err != nil {
		return fmt.Errorf("failed to update job role: %w", err)
	}
	return nil
}

func (r *jobRoleRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.JobRole{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
