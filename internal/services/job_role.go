package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"talenthub/recruitment-api/internal/apperrors"
	"talenthub/recruitment-api/internal/models"
	"talenthub/recruitment-api/internal/repositories"
)

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role models.UserRole
}

func (a Actor) canManage(role *models.JobRole) bool {
	return a.Role == models.RoleAdmin || role.CreatedBy == a.ID
}

type JobRoleService interface {
	Create(actor Actor, req models.CreateJobRoleRequest) (*models.JobRole, error)
	Get(id uuid.UUID) (*models.JobRole, error)
	List(onlyActive bool) ([]models.JobRole, error)
	Update(actor Actor, id uuid.UUID, req models.UpdateJobRoleRequest) (*models.JobRole, error)
	Delete(actor Actor, id uuid.UUID) error
}

type jobRoleService struct {
	roleRepo repositories.JobRoleRepository
	appRepo  repositories.ApplicationRepository
}

func NewJobRoleService(
	roleRepo repositories.JobRoleRepository,
	appRepo repositories.ApplicationRepository,
) JobRoleService {
	return &jobRoleService{
		roleRepo: roleRepo,
		appRepo:  appRepo,
	}
}

func (s *jobRoleService) Create(actor Actor, req models.CreateJobRoleRequest) (*models.JobRole, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.InvalidInput("description is required")
	}

	role := &models.JobRole{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Requirements: strings.TrimSpace(req.Requirements),
		Status:       models.JobRoleActive,
		CreatedBy:    actor.ID,
	}

	if err := s.roleRepo.Create(role); err != nil {
		return nil, apperrors.Internal("failed to create job role", err)
	}
	return role, nil
}

func (s *jobRoleService) Get(id uuid.UUID) (*models.JobRole, error) {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("job role not found")
		}
		return nil, apperrors.Internal("failed to look up job role", err)
	}
	return role, nil
}

func (s *jobRoleService) List(onlyActive bool) ([]models.JobRole, error) {
	roles, err := s.roleRepo.List(onlyActive)
	if err != nil {
		return nil, apperrors.Internal("failed to list job roles", err)
	}
	return roles, nil
}

func (s *jobRoleService) Update(actor Actor, id uuid.UUID, req models.UpdateJobRoleRequest) (*models.JobRole, error) {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("job role not found")
		}
		return nil, apperrors.Internal("failed to look up job role", err)
	}

	if !actor.canManage(role) {
		return nil, apperrors.Forbidden("only the owner or an admin may modify this job role")
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperrors.InvalidInput("title cannot be empty")
		}
		role.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, apperrors.InvalidInput("description cannot be empty")
		}
		role.Description = strings.TrimSpace(*req.Description)
	}
	if req.Requirements != nil {
		role.Requirements = strings.TrimSpace(*req.Requirements)
	}
	if req.Status != nil {
		status := models.JobRoleStatus(*req.Status)
		if !status.Valid() {
			return nil, apperrors.InvalidInput("invalid job role status")
		}
		role.Status = status
	}

	if err := s.roleRepo.Update(role); err != nil {
		return nil, apperrors.Internal("failed to update job role", err)
	}
	return role, nil
}

func (s *jobRoleService) Delete(actor Actor, id uuid.UUID) error {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("job role not found")
		}
		return apperrors.Internal("failed to look up job role", err)
	}

	if !actor.canManage(role) {
		return apperrors.Forbidden("only the owner or an admin may delete this job role")
	}

	count, err := s.appRepo.CountByJobRole(id)
	if err != nil {
		return apperrors.Internal("failed to count applications", err)
	}
	if count > 0 {
		return apperrors.Conflict("job role has applications; close it instead of deleting")
	}

	if err := s.roleRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("job role not found")
		}
		return apperrors.Internal("failed to delete job role", err)
	}
	return nil
}
