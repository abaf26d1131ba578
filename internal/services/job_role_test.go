package services

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/recruitment-api/internal/apperrors"
	"talenthub/recruitment-api/internal/models"
)

func newJobRoleFixture(t *testing.T) (JobRoleService, *fakeJobRoleRepo, *fakeAppRepo) {
	t.Helper()
	roleRepo := newFakeJobRoleRepo()
	appRepo := newFakeAppRepo(newFakeEvalRepo())
	return NewJobRoleService(roleRepo, appRepo), roleRepo, appRepo
}

func TestJobRoleCreate_RequiresTitleAndDescription(t *testing.T) {
	svc, _, _ := newJobRoleFixture(t)
	actor := Actor{ID: uuid.New(), Role: models.RoleRecruiter}

	_, err := svc.Create(actor, models.CreateJobRoleRequest{Description: "d"})
	assert.True(t, apperrors.IsStatus(err, fiber.StatusBadRequest))

	_, err = svc.Create(actor, models.CreateJobRoleRequest{Title: "t"})
	assert.True(t, apperrors.IsStatus(err, fiber.StatusBadRequest))
}

func TestJobRoleCreate_RecordsOwner(t *testing.T) {
	svc, _, _ := newJobRoleFixture(t)
	actor := Actor{ID: uuid.New(), Role: models.RoleRecruiter}

	role, err := svc.Create(actor, models.CreateJobRoleRequest{
		Title:       "Backend Engineer",
		Description: "Build Go services",
	})
	require.NoError(t, err)

	assert.Equal(t, actor.ID, role.CreatedBy)
	assert.Equal(t, models.JobRoleActive, role.Status)
}

func TestJobRoleUpdate_NonOwnerIsForbidden(t *testing.T) {
	svc, _, _ := newJobRoleFixture(t)
	owner := Actor{ID: uuid.New(), Role: models.RoleRecruiter}
	stranger := Actor{ID: uuid.New(), Role: models.RoleRecruiter}

	role, err := svc.Create(owner, models.CreateJobRoleRequest{Title: "t", Description: "d"})
	require.NoError(t, err)

	newTitle := "changed"
	_, err = svc.Update(stranger, role.ID, models.UpdateJobRoleRequest{Title: &newTitle})
	assert.True(t, apperrors.IsStatus(err, fiber.StatusForbidden))
}

func TestJobRoleUpdate_AdminMayManageAnyRole(t *testing.T) {
	svc, _, _ := newJobRoleFixture(t)
	owner := Actor{ID: uuid.New(), Role: models.RoleRecruiter}
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	role, err := svc.Create(owner, models.CreateJobRoleRequest{Title: "t", Description: "d"})
	require.NoError(t, err)

	status := string(models.JobRoleClosed)
	updated, err := svc.Update(admin, role.ID, models.UpdateJobRoleRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.JobRoleClosed, updated.Status)
}

func TestJobRoleUpdate_RejectsInvalidStatus(t *testing.T) {
	svc, _, _ := newJobRoleFixture(t)
	owner := Actor{ID: uuid.New(), Role: models.RoleRecruiter}

	role, err := svc.Create(owner, models.CreateJobRoleRequest{Title: "t", Description: "d"})
	require.NoError(t, err)

	status := "archived"
	_, err = svc.Update(owner, role.ID, models.UpdateJobRoleRequest{Status: &status})
	assert.True(t, apperrors.IsStatus(err, fiber.StatusBadRequest))
}

func TestJobRoleDelete_WithApplicationsIsConflict(t *testing.T) {
	svc, _, appRepo := newJobRoleFixture(t)
	owner := Actor{ID: uuid.New(), Role: models.RoleRecruiter}

	role, err := svc.Create(owner, models.CreateJobRoleRequest{Title: "t", Description: "d"})
	require.NoError(t, err)

	require.NoError(t, appRepo.Create(&models.Application{
		ID:             uuid.New(),
		JobRoleID:      role.ID,
		CandidateEmail: "a@x.com",
	}))

	err = svc.Delete(owner, role.ID)
	assert.True(t, apperrors.IsStatus(err, fiber.StatusConflict))

	_, err = svc.Get(role.ID)
	assert.NoError(t, err)
}

func TestJobRoleDelete_RemovesEmptyRole(t *testing.T) {
	svc, _, _ := newJobRoleFixture(t)
	owner := Actor{ID: uuid.New(), Role: models.RoleRecruiter}

	role, err := svc.Create(owner, models.CreateJobRoleRequest{Title: "t", Description: "d"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(owner, role.ID))

	_, err = svc.Get(role.ID)
	assert.True(t, apperrors.IsStatus(err, fiber.StatusNotFound))
}
