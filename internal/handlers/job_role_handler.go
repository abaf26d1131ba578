package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talenthub/recruitment-api/internal/apperrors"
	"talenthub/recruitment-api/internal/middleware"
	"talenthub/recruitment-api/internal/models"
	"talenthub/recruitment-api/internal/services"
)

type JobRoleHandler struct {
	roleService services.JobRoleService
}

func NewJobRoleHandler(roleService services.JobRoleService) *JobRoleHandler {
	return &JobRoleHandler{roleService: roleService}
}

func (h *JobRoleHandler) HandleCreate(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return apperrors.Unauthorized("authentication required")
	}

	var req models.CreateJobRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}

	role, err := h.roleService.Create(actor, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(role)
}

func (h *JobRoleHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid job role ID")
	}

	role, err := h.roleService.Get(id)
	if err != nil {
		return err
	}

	return c.JSON(role)
}

func (h *JobRoleHandler) HandleList(c *fiber.Ctx) error {
	onlyActive := c.Query("status") == "active"

	roles, err := h.roleService.List(onlyActive)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"job_roles": roles})
}

func (h *JobRoleHandler) HandleUpdate(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return apperrors.Unauthorized("authentication required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid job role ID")
	}

	var req models.UpdateJobRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}

	role, err := h.roleService.Update(actor, id, req)
	if err != nil {
		return err
	}

	return c.JSON(role)
}

func (h *JobRoleHandler) HandleDelete(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return apperrors.Unauthorized("authentication required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid job role ID")
	}

	if err := h.roleService.Delete(actor, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "job role deleted"})
}
