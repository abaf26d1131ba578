package handlers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talenthub/recruitment-api/internal/apperrors"
	"talenthub/recruitment-api/internal/models"
	"talenthub/recruitment-api/internal/services"
)

type ApplicationHandler struct {
	appService  services.ApplicationService
	maxFileSize int64
}

func NewApplicationHandler(appService services.ApplicationService, maxFileSize int64) *ApplicationHandler {
	return &ApplicationHandler{
		appService:  appService,
		maxFileSize: maxFileSize,
	}
}

// HandleSubmit handles POST /applications: a multipart form with the CV
// file and candidate fields.
func (h *ApplicationHandler) HandleSubmit(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("cv")
	if err != nil {
		return apperrors.InvalidInput("cv file is required")
	}

	if fileHeader.Size > h.maxFileSize {
		return apperrors.InvalidInput(fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize))
	}

	jobRoleID, err := uuid.Parse(c.FormValue("job_role_id"))
	if err != nil {
		return apperrors.InvalidInput("invalid job_role_id")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.InvalidInput("failed to open uploaded file")
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return apperrors.InvalidInput("failed to read uploaded file")
	}

	app, err := h.appService.Submit(c.Context(), services.SubmitInput{
		JobRoleID:      jobRoleID,
		CandidateName:  c.FormValue("candidate_name"),
		CandidateEmail: c.FormValue("candidate_email"),
		CandidatePhone: c.FormValue("candidate_phone"),
		FileBytes:      fileBytes,
		ContentType:    fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewApplicationResponse(app))
}

func (h *ApplicationHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid application ID")
	}

	app, err := h.appService.Get(id)
	if err != nil {
		return err
	}

	return c.JSON(models.NewApplicationResponse(app))
}

func (h *ApplicationHandler) HandleList(c *fiber.Ctx) error {
	var jobRoleID *uuid.UUID
	if raw := c.Query("job_role_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.InvalidInput("invalid job_role_id")
		}
		jobRoleID = &id
	}

	apps, err := h.appService.List(jobRoleID)
	if err != nil {
		return err
	}

	responses := make([]models.ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, models.NewApplicationResponse(&apps[i]))
	}

	return c.JSON(fiber.Map{"applications": responses})
}

func (h *ApplicationHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid application ID")
	}

	var req models.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}

	if err := h.appService.UpdateStatus(id, models.ApplicationStatus(req.Status)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "application status updated"})
}

func (h *ApplicationHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid application ID")
	}

	if err := h.appService.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "application deleted"})
}

// HandleReevaluate handles POST /applications/:id/reevaluate. Unlike the
// submission path this scores synchronously; the caller waits.
func (h *ApplicationHandler) HandleReevaluate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid application ID")
	}

	eval, err := h.appService.Reevaluate(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(eval)
}

func (h *ApplicationHandler) HandleGetEvaluation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid application ID")
	}

	eval, err := h.appService.GetEvaluation(id)
	if err != nil {
		return err
	}

	return c.JSON(eval)
}

func (h *ApplicationHandler) HandleSimilar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid application ID")
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}

	results, err := h.appService.FindSimilar(c.Context(), id, limit)
	if err != nil {
		return err
	}

	responses := make([]models.SimilarApplicationResponse, 0, len(results))
	for _, r := range results {
		responses = append(responses, models.SimilarApplicationResponse{
			ApplicationID: r.ApplicationID,
			JobRoleID:     r.JobRoleID,
			CandidateName: r.CandidateName,
			Score:         r.Score,
		})
	}

	return c.JSON(fiber.Map{"similar": responses})
}
