package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"talenthub/recruitment-api/internal/apperrors"
	"talenthub/recruitment-api/internal/models"
	"talenthub/recruitment-api/internal/repositories"
)

// CVContentType is the only accepted upload type.
const CVContentType = "application/pdf"

type SubmitInput struct {
	JobRoleID      uuid.UUID
	CandidateName  string
	CandidateEmail string
	CandidatePhone string
	FileBytes      []byte
	ContentType    string
}

// ApplicationService coordinates the submission pipeline: object store
// write, text extraction, transactional insert, detached scoring, and
// compensating file cleanup when a step after the upload fails.
type ApplicationService interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Application, error)
	Get(id uuid.UUID) (*models.Application, error)
	List(jobRoleID *uuid.UUID) ([]models.Application, error)
	UpdateStatus(id uuid.UUID, status models.ApplicationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reevaluate(ctx context.Context, id uuid.UUID) (*models.Evaluation, error)
	GetEvaluation(id uuid.UUID) (*models.Evaluation, error)
	FindSimilar(ctx context.Context, id uuid.UUID, limit int) ([]SimilarCandidate, error)
}

type applicationService struct {
	appRepo     repositories.ApplicationRepository
	jobRoleRepo repositories.JobRoleRepository
	evalRepo    repositories.EvaluationRepository
	store       ObjectStore
	extractor   TextExtractor
	scorer      Scorer
	queue       ScoringQueue
	index       SimilarityIndex
}

// NewApplicationService builds the pipeline. index may be nil; similarity
// lookups then report unavailable.
func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRoleRepo repositories.JobRoleRepository,
	evalRepo repositories.EvaluationRepository,
	store ObjectStore,
	extractor TextExtractor,
	scorer Scorer,
	queue ScoringQueue,
	index SimilarityIndex,
) ApplicationService {
	return &applicationService{
		appRepo:     appRepo,
		jobRoleRepo: jobRoleRepo,
		evalRepo:    evalRepo,
		store:       store,
		extractor:   extractor,
		scorer:      scorer,
		queue:       queue,
		index:       index,
	}
}

func (s *applicationService) Submit(ctx context.Context, input SubmitInput) (*models.Application, error) {
	if len(input.FileBytes) == 0 {
		return nil, apperrors.InvalidInput("CV file is required")
	}
	if input.ContentType != CVContentType {
		return nil, apperrors.InvalidInput("CV must be a PDF file")
	}
	if strings.TrimSpace(input.CandidateName) == "" {
		return nil, apperrors.InvalidInput("candidate_name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.CandidateEmail))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.InvalidInput("a valid candidate_email is required")
	}

	role, err := s.jobRoleRepo.FindByID(input.JobRoleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("job role not found")
		}
		return nil, apperrors.Internal("failed to look up job role", err)
	}
	if role.Status != models.JobRoleActive {
		return nil, apperrors.NotFound("job role is not accepting applications")
	}

	// Check-then-insert: not atomic with respect to a concurrent identical
	// submission. Sequential duplicates are rejected; the race is accepted.
	exists, err := s.appRepo.ExistsForJobRoleAndEmail(input.JobRoleID, email)
	if err != nil {
		return nil, apperrors.Internal("failed to check existing applications", err)
	}
	if exists {
		return nil, apperrors.Conflict("an application for this job role with this email already exists")
	}

	key := buildCVKey(input.CandidateName)

	locator, err := s.store.Put(key, input.FileBytes, input.ContentType)
	if err != nil {
		return nil, apperrors.Storage("failed to store CV file", err)
	}

	cvText, err := s.extractor.ExtractText(input.FileBytes)
	if err != nil {
		s.cleanupFile(key)
		return nil, apperrors.Extraction("failed to extract text from CV", err)
	}

	app := &models.Application{
		ID:             uuid.New(),
		JobRoleID:      input.JobRoleID,
		CandidateName:  strings.TrimSpace(input.CandidateName),
		CandidateEmail: email,
		CandidatePhone: strings.TrimSpace(input.CandidatePhone),
		CVFileKey:      locator,
		CVText:         cvText,
		Status:         models.ApplicationPending,
		SubmittedAt:    time.Now(),
	}

	if err := s.appRepo.Create(app); err != nil {
		s.cleanupFile(key)
		return nil, apperrors.Internal("failed to save application", err)
	}

	// Detached: the caller's response never waits on scoring.
	s.queue.Enqueue(ScoringJob{
		ApplicationID:  app.ID,
		JobRoleID:      app.JobRoleID,
		CandidateName:  app.CandidateName,
		CVText:         cvText,
		JobDescription: role.Description,
	})

	return app, nil
}

func (s *applicationService) Get(id uuid.UUID) (*models.Application, error) {
	app, err := s.appRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("application not found")
		}
		return nil, apperrors.Internal("failed to look up application", err)
	}
	return app, nil
}

func (s *applicationService) List(jobRoleID *uuid.UUID) ([]models.Application, error) {
	var (
		apps []models.Application
		err  error
	)
	if jobRoleID != nil {
		apps, err = s.appRepo.ListByJobRole(*jobRoleID)
	} else {
		apps, err = s.appRepo.List()
	}
	if err != nil {
		return nil, apperrors.Internal("failed to list applications", err)
	}
	return apps, nil
}

func (s *applicationService) UpdateStatus(id uuid.UUID, status models.ApplicationStatus) error {
	if !status.Valid() {
		return apperrors.InvalidInput(fmt.Sprintf("invalid application status: %s", status))
	}

	if err := s.appRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("application not found")
		}
		return apperrors.Internal("failed to update application status", err)
	}
	return nil
}

// Delete removes the application and its evaluation in one transaction,
// then best-effort deletes the stored CV. A file-cleanup failure is logged
// and never reverts the committed deletion.
func (s *applicationService) Delete(ctx context.Context, id uuid.UUID) error {
	app, err := s.appRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("application not found")
		}
		return apperrors.Internal("failed to look up application", err)
	}

	if err := s.appRepo.DeleteWithEvaluations(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("application not found")
		}
		return apperrors.Internal("failed to delete application", err)
	}

	s.cleanupFile(app.CVFileKey)

	if s.index != nil {
		if err := s.index.DeleteApplication(ctx, id); err != nil {
			log.Printf("⚠️  Failed to remove application %s from similarity index: %v\n", id, err)
		}
	}

	return nil
}

// Reevaluate scores the stored CV text again, synchronously, and overwrites
// the existing evaluation in place.
func (s *applicationService) Reevaluate(ctx context.Context, id uuid.UUID) (*models.Evaluation, error) {
	app, err := s.appRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("application not found")
		}
		return nil, apperrors.Internal("failed to look up application", err)
	}

	if strings.TrimSpace(app.CVText) == "" {
		return nil, apperrors.InvalidState("application has no extracted CV text to score")
	}

	role, err := s.jobRoleRepo.FindByID(app.JobRoleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("job role not found")
		}
		return nil, apperrors.Internal("failed to look up job role", err)
	}

	result := s.scorer.Evaluate(ctx, app.CVText, role.Description)

	eval := &models.Evaluation{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		Score:         result.Score,
		Strengths:     result.Strengths,
		Weaknesses:    result.Weaknesses,
		Summary:       result.Summary,
		Model:         result.Model,
		EvaluatedAt:   time.Now(),
	}

	if err := s.evalRepo.Upsert(eval); err != nil {
		return nil, apperrors.Internal("failed to save evaluation", err)
	}

	return eval, nil
}

func (s *applicationService) GetEvaluation(id uuid.UUID) (*models.Evaluation, error) {
	eval, err := s.evalRepo.FindByApplicationID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("evaluation not found")
		}
		return nil, apperrors.Internal("failed to look up evaluation", err)
	}
	return eval, nil
}

func (s *applicationService) FindSimilar(ctx context.Context, id uuid.UUID, limit int) ([]SimilarCandidate, error) {
	if s.index == nil {
		return nil, apperrors.Internal("similarity index is not configured", nil)
	}

	app, err := s.appRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("application not found")
		}
		return nil, apperrors.Internal("failed to look up application", err)
	}

	if strings.TrimSpace(app.CVText) == "" {
		return nil, apperrors.InvalidState("application has no extracted CV text to compare")
	}

	if limit <= 0 {
		limit = 5
	}

	results, err := s.index.FindSimilar(ctx, app, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to search similar candidates", err)
	}
	return results, nil
}

// cleanupFile is the compensating delete for a file uploaded before a later
// pipeline step failed, and the post-commit cleanup on Delete. Failures are
// logged, never propagated.
func (s *applicationService) cleanupFile(key string) {
	if err := s.store.Delete(key); err != nil {
		log.Printf("⚠️  Failed to delete stored CV %s: %v\n", key, err)
	}
}

// buildCVKey derives a unique storage key from a fresh identifier and the
// sanitized candidate name.
func buildCVKey(candidateName string) string {
	return fmt.Sprintf("cv_%s_%s.pdf", uuid.New().String(), sanitizeName(candidateName))
}

func sanitizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}

	sanitized := b.String()
	if sanitized == "" {
		return "candidate"
	}
	if len(sanitized) > 40 {
		sanitized = sanitized[:40]
	}
	return sanitized
}
